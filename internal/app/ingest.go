package app

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/pflag"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/mameset/internal/sdk"
)

// IngestCommand parses a MAME catalog XML file and writes a new store.
type IngestCommand struct {
	xmlPath   string
	outPath   string
	overwrite bool
}

func NewIngestCommand() *IngestCommand { return &IngestCommand{} }

func (c *IngestCommand) Name() string { return "ingest" }

func (c *IngestCommand) Desc() string {
	return "parse a MAME catalog XML file and build a ROM store"
}

func (c *IngestCommand) Init(f *pflag.FlagSet) {
	f.StringVar(&c.xmlPath, "xml", "", "path to the catalog XML file")
	f.StringVar(&c.outPath, "out", "", "path to write the store file")
	f.BoolVar(&c.overwrite, "overwrite", false, "overwrite an existing store file")
}

func (c *IngestCommand) PreRun(ctx context.Context) error {
	if strings.TrimSpace(c.xmlPath) == "" {
		return errors.New("ingest requires --xml")
	}
	if strings.TrimSpace(c.outPath) == "" {
		return errors.New("ingest requires --out")
	}
	logutil.GetLogger(ctx).Info("starting ingest",
		zap.String("xml", c.xmlPath),
		zap.String("out", c.outPath),
		zap.Bool("overwrite", c.overwrite),
	)
	return nil
}

func (c *IngestCommand) Run(ctx context.Context) error {
	h, err := sdk.Ingest(ctx, c.xmlPath, c.outPath, c.overwrite)
	if err != nil {
		return err
	}

	machines, err := sdk.ListMachines(ctx, h)
	if err != nil {
		return err
	}

	logutil.GetLogger(ctx).Info("ingest completed",
		zap.String("out", c.outPath),
		zap.Int("machines", len(machines)),
	)
	return nil
}

func (c *IngestCommand) PostRun(ctx context.Context) error { return nil }

func init() {
	RegisterRunner("ingest", func() IRunner { return NewIngestCommand() })
}
