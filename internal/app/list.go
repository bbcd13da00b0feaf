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

	"github.com/xxxsen/mameset/internal/render"
	"github.com/xxxsen/mameset/internal/sdk"
)

// ListCommand prints every machine in a store as a table, or just the
// catalog's build metadata when --version is set.
type ListCommand struct {
	storePath string
	version   bool
}

func NewListCommand() *ListCommand { return &ListCommand{} }

func (c *ListCommand) Name() string { return "list" }

func (c *ListCommand) Desc() string { return "list every machine in a store" }

func (c *ListCommand) Init(f *pflag.FlagSet) {
	f.StringVar(&c.storePath, "store", "", "path to the store file")
	f.BoolVar(&c.version, "version", false, "print the ingested catalog's build metadata instead of listing machines")
}

func (c *ListCommand) PreRun(ctx context.Context) error {
	if strings.TrimSpace(c.storePath) == "" {
		return errors.New("list requires --store")
	}
	logutil.GetLogger(ctx).Info("starting list", zap.String("store", c.storePath))
	return nil
}

func (c *ListCommand) Run(ctx context.Context) error {
	h, err := sdk.OpenStore(c.storePath)
	if err != nil {
		return err
	}

	if c.version {
		build, err := sdk.CatalogVersion(ctx, h)
		if err != nil {
			return err
		}
		if build == "" {
			build = "(no catalog metadata recorded)"
		}
		fmt.Println(build)
		return nil
	}

	machines, err := sdk.ListMachines(ctx, h)
	if err != nil {
		return err
	}

	_, err = os.Stdout.WriteString(render.MachineList(machines))
	return err
}

func (c *ListCommand) PostRun(ctx context.Context) error { return nil }

// SetDefaultStorePath fills --store from configuration when the flag was left unset.
func (c *ListCommand) SetDefaultStorePath(path string) {
	if c.storePath == "" {
		c.storePath = path
	}
}

func init() {
	RegisterRunner("list", func() IRunner { return NewListCommand() })
}
