package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/mameset/internal/model"
	"github.com/xxxsen/mameset/internal/render"
	"github.com/xxxsen/mameset/internal/sdk"
)

// SetCommand derives one of the seven ROM-set views for a machine.
type SetCommand struct {
	storePath string
	machine   string
	kind      string
}

func NewSetCommand() *SetCommand { return &SetCommand{} }

func (c *SetCommand) Name() string { return "set" }

func (c *SetCommand) Desc() string { return "derive a ROM-set view for one machine" }

func (c *SetCommand) Init(f *pflag.FlagSet) {
	f.StringVar(&c.storePath, "store", "", "path to the store file")
	f.StringVar(&c.machine, "machine", "", "machine name")
	f.StringVar(&c.kind, "kind", string(model.SetMerged), setKindUsage())
}

func (c *SetCommand) PreRun(ctx context.Context) error {
	if strings.TrimSpace(c.storePath) == "" {
		return errors.New("set requires --store")
	}
	if strings.TrimSpace(c.machine) == "" {
		return errors.New("set requires --machine")
	}
	if !validSetKind(c.kind) {
		return fmt.Errorf("set kind %q is not one of: %s", c.kind, setKindUsage())
	}
	logutil.GetLogger(ctx).Info("starting set",
		zap.String("store", c.storePath),
		zap.String("machine", c.machine),
		zap.String("kind", c.kind),
	)
	return nil
}

func (c *SetCommand) Run(ctx context.Context) error {
	h, err := sdk.OpenStore(c.storePath)
	if err != nil {
		return err
	}

	d, err := sdk.LoadDossier(ctx, h, c.machine)
	if err != nil {
		return err
	}

	roms := sdk.DeriveSet(d, model.SetKind(c.kind))
	_, err = os.Stdout.WriteString(render.RomSet(roms))
	return err
}

func (c *SetCommand) PostRun(ctx context.Context) error { return nil }

// SetDefaultStorePath fills --store from configuration when the flag was left unset.
func (c *SetCommand) SetDefaultStorePath(path string) {
	if c.storePath == "" {
		c.storePath = path
	}
}

func validSetKind(kind string) bool {
	for _, k := range model.AllSetKinds() {
		if string(k) == kind {
			return true
		}
	}
	return false
}

func setKindUsage() string {
	kinds := model.AllSetKinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, "|")
}

func init() {
	RegisterRunner("set", func() IRunner { return NewSetCommand() })
}
