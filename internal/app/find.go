package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/mameset/internal/sdk"
)

// FindCommand resolves a machine by the set of CRCs its ROMs carry.
type FindCommand struct {
	storePath string
	crcList   string
}

func NewFindCommand() *FindCommand { return &FindCommand{} }

func (c *FindCommand) Name() string { return "find" }

func (c *FindCommand) Desc() string { return "find the machine matching a set of ROM CRCs" }

func (c *FindCommand) Init(f *pflag.FlagSet) {
	f.StringVar(&c.storePath, "store", "", "path to the store file")
	f.StringVar(&c.crcList, "crcs", "", "comma-separated list of ROM CRCs")
}

func (c *FindCommand) PreRun(ctx context.Context) error {
	if strings.TrimSpace(c.storePath) == "" {
		return errors.New("find requires --store")
	}
	if strings.TrimSpace(c.crcList) == "" {
		return errors.New("find requires --crcs")
	}
	logutil.GetLogger(ctx).Info("starting find",
		zap.String("store", c.storePath),
		zap.String("crcs", c.crcList),
	)
	return nil
}

func (c *FindCommand) Run(ctx context.Context) error {
	h, err := sdk.OpenStore(c.storePath)
	if err != nil {
		return err
	}

	crcs := splitNonEmpty(c.crcList, ",")
	machineID, err := sdk.FindMachineByCRCs(ctx, h, crcs)
	if err != nil {
		return err
	}
	if machineID == nil {
		fmt.Println("no match")
		return nil
	}

	name, err := sdk.MachineName(ctx, h, *machineID)
	if err != nil {
		return err
	}
	fmt.Printf("%d\t%s\n", *machineID, name)
	return nil
}

func (c *FindCommand) PostRun(ctx context.Context) error { return nil }

// SetDefaultStorePath fills --store from configuration when the flag was left unset.
func (c *FindCommand) SetDefaultStorePath(path string) {
	if c.storePath == "" {
		c.storePath = path
	}
}

func splitNonEmpty(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func init() {
	RegisterRunner("find", func() IRunner { return NewFindCommand() })
}
