// Package sdk is the external-collaborator facade: the CLI, table renderer,
// and enrichment layer reach the ingestion pipeline and query engine only
// through these functions.
package sdk

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/xxxsen/mameset/internal/apperr"
	"github.com/xxxsen/mameset/internal/dossier"
	"github.com/xxxsen/mameset/internal/model"
	"github.com/xxxsen/mameset/internal/store"
)

// OpenStore opens the store file at path, or ErrNotFound if it is absent.
func OpenStore(path string) (*store.Handle, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", apperr.ErrNotFound, path)
	}
	return store.Open(path)
}

// Ingest parses the catalog XML at xmlPath and writes a new store to outPath.
func Ingest(ctx context.Context, xmlPath, outPath string, overwrite bool) (*store.Handle, error) {
	f, err := os.Open(xmlPath)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", apperr.ErrIngestParseFailed, xmlPath, err)
	}
	defer f.Close()
	return store.Ingest(ctx, f, outPath, overwrite)
}

// CatalogVersion returns a human-readable summary of the ingested catalog's
// build metadata, or "" if no header row was written.
func CatalogVersion(ctx context.Context, h *store.Handle) (string, error) {
	meta, err := h.CatalogVersion(ctx)
	if err != nil {
		return "", err
	}
	if meta == nil {
		return "", nil
	}
	return meta.Build, nil
}

// ListMachines returns every machine in the store as a lightweight summary.
func ListMachines(ctx context.Context, h *store.Handle) ([]model.MachineSummary, error) {
	return h.ListMachines(ctx)
}

// LoadDossier loads the full Dossier for the named machine.
func LoadDossier(ctx context.Context, h *store.Handle, name string) (*model.Dossier, error) {
	return dossier.Load(ctx, h, name)
}

// DeriveSet derives one of the seven ROM-set views from an already-loaded Dossier.
func DeriveSet(d *model.Dossier, kind model.SetKind) []model.Rom {
	return dossier.Derive(d, kind)
}

// FindMachineByCRCs returns the id of the machine whose ROM CRCs include
// every one of the given CRCs, or nil if no machine qualifies. The machine
// may carry further CRCs; on a tie the lowest machine_id wins.
func FindMachineByCRCs(ctx context.Context, h *store.Handle, crcs []string) (*int64, error) {
	normalized := make([]string, len(crcs))
	for i, c := range crcs {
		normalized[i] = strings.ToUpper(strings.TrimSpace(c))
	}
	return h.FindMachineByCRCs(ctx, normalized)
}

// MachineName resolves a machine_id back to its natural name.
func MachineName(ctx context.Context, h *store.Handle, machineID int64) (string, error) {
	return h.MachineName(ctx, machineID)
}
