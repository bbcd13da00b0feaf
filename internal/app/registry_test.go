package app

import (
	"context"
	"testing"

	"github.com/spf13/pflag"
)

type stubRunner struct{ name string }

func (s *stubRunner) Name() string                      { return s.name }
func (s *stubRunner) Desc() string                      { return "stub" }
func (s *stubRunner) Init(fs *pflag.FlagSet)            {}
func (s *stubRunner) PreRun(ctx context.Context) error  { return nil }
func (s *stubRunner) Run(ctx context.Context) error     { return nil }
func (s *stubRunner) PostRun(ctx context.Context) error { return nil }

func TestRegisterAndResolveRunner(t *testing.T) {
	RegisterRunner("stub-test", func() IRunner { return &stubRunner{name: "stub-test"} })

	r, err := ResolveRunner("stub-test")
	if err != nil {
		t.Fatalf("ResolveRunner failed: %v", err)
	}
	if r.Name() != "stub-test" {
		t.Fatalf("expected resolved runner's name to be stub-test, got %q", r.Name())
	}
}

func TestResolveRunnerUnknown(t *testing.T) {
	if _, err := ResolveRunner("does-not-exist"); err == nil {
		t.Fatalf("expected resolving an unregistered runner to fail")
	}
}

func TestRunnerListIncludesBuiltinCommands(t *testing.T) {
	names := RunnerList()
	want := map[string]bool{"ingest": false, "list": false, "set": false, "find": false}
	for _, n := range names {
		if _, ok := want[n]; ok {
			want[n] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Fatalf("expected %q to be registered via its package init(), got %v", name, names)
		}
	}
}

func TestRunnerListIsSorted(t *testing.T) {
	names := RunnerList()
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("expected RunnerList to be sorted, got %v", names)
		}
	}
}
