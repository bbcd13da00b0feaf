package store

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/didi/gendry/builder"

	"github.com/xxxsen/mameset/internal/apperr"
	"github.com/xxxsen/mameset/internal/catalog"
	"github.com/xxxsen/mameset/internal/model"
)

// Ingest parses r as catalog XML, normalizes it, resolves device closures,
// and bulk-loads the result into a fresh in-memory store before snapshotting
// it to outPath. On success it returns a Handle opened on outPath.
func Ingest(ctx context.Context, r io.Reader, outPath string, overwrite bool) (*Handle, error) {
	if !overwrite {
		if _, err := os.Stat(outPath); err == nil {
			return nil, fmt.Errorf("%w: %s", apperr.ErrAlreadyExists, outPath)
		}
	}

	header, records, err := catalog.CollectAll(r)
	if err != nil {
		return nil, err
	}

	nc := catalog.Normalize(records)
	closures := catalog.ComputeDeviceClosures(nc)
	referenced := referencedAsDevice(nc)

	mem, err := openMemory()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrIngestWriteFailed, err)
	}
	defer mem.db.Close()

	if _, err := mem.db.ExecContext(ctx, schemaDDL); err != nil {
		return nil, fmt.Errorf("%w: create schema: %v", apperr.ErrIngestWriteFailed, err)
	}

	if header != nil {
		if err := insertHeader(ctx, mem, *header); err != nil {
			return nil, fmt.Errorf("%w: %v", apperr.ErrIngestWriteFailed, err)
		}
	}

	machineIDs := make(map[int]int64, len(nc.Machines))
	if err := mem.withTx(ctx, func(tx *sql.Tx) error {
		for _, m := range nc.Machines {
			if len(m.DirectRoms) == 0 && !referenced[m.Index] {
				continue
			}
			id, err := insertMachine(ctx, tx, m)
			if err != nil {
				return err
			}
			machineIDs[m.Index] = id
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("%w: insert machines: %v", apperr.ErrIngestWriteFailed, err)
	}

	romIDs := make([]int64, len(nc.Roms))
	if err := mem.withTx(ctx, func(tx *sql.Tx) error {
		for i, rom := range nc.Roms {
			id, err := insertRom(ctx, tx, rom)
			if err != nil {
				return err
			}
			romIDs[i] = id
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("%w: insert roms: %v", apperr.ErrIngestWriteFailed, err)
	}

	if err := mem.withTx(ctx, func(tx *sql.Tx) error {
		for _, m := range nc.Machines {
			machineID, ok := machineIDs[m.Index]
			if !ok {
				continue
			}
			for _, ref := range m.DirectRoms {
				if err := insertEdge(ctx, tx, machineID, romIDs[ref.RomIndex], ref.Merge); err != nil {
					return err
				}
			}
			for _, devIdx := range closures[m.Index] {
				for _, ref := range nc.Machines[devIdx].DirectRoms {
					if err := insertEdge(ctx, tx, machineID, romIDs[ref.RomIndex], ""); err != nil {
						return err
					}
				}
			}
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("%w: insert machine_rom edges: %v", apperr.ErrIngestWriteFailed, err)
	}

	// VACUUM INTO refuses an existing target file; clear it now that the
	// new store is fully built, so a failed build leaves a prior file in
	// place. A failure of the snapshot itself still loses the prior file.
	if overwrite {
		if err := os.Remove(outPath); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: remove %s: %v", apperr.ErrIngestWriteFailed, outPath, err)
		}
	}
	if err := mem.backupTo(ctx, outPath); err != nil {
		return nil, fmt.Errorf("%w: backup to %s: %v", apperr.ErrIngestWriteFailed, outPath, err)
	}

	return Open(outPath)
}

// referencedAsDevice reports, per machine index, whether some other machine
// names it in a device_ref, regardless of the depth of that reference.
func referencedAsDevice(nc *catalog.NormalizedCatalog) map[int]bool {
	result := make(map[int]bool, len(nc.Machines))
	for _, m := range nc.Machines {
		for _, ref := range m.Record.DeviceRefs {
			if idx, ok := nc.NameToIndex[ref]; ok {
				result[idx] = true
			}
		}
	}
	return result
}

func insertHeader(ctx context.Context, h *Handle, header catalog.CatalogHeader) error {
	payload := []map[string]interface{}{{
		"build":      header.Build,
		"debug":      boolToInt(header.Debug),
		"mameconfig": header.MameConfig,
	}}
	query, args, err := builder.BuildInsert("mame", payload)
	if err != nil {
		return err
	}
	_, err = h.db.ExecContext(ctx, query, args...)
	return err
}

func insertMachine(ctx context.Context, tx *sql.Tx, m catalog.NormalizedMachine) (int64, error) {
	rec := m.Record
	payload := []map[string]interface{}{{
		"name":         rec.Name,
		"description":  rec.Description,
		"year":         rec.Year,
		"manufacturer": rec.Manufacturer,
		"romof":        rec.RomOf,
		"cloneof":      rec.CloneOf,
		"machine_type": machineTypeCode(m.Type),
	}}
	query, args, err := builder.BuildInsert("machine", payload)
	if err != nil {
		return 0, err
	}
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("insert machine %s: %w", rec.Name, err)
	}
	return res.LastInsertId()
}

func insertRom(ctx context.Context, tx *sql.Tx, rom model.Rom) (int64, error) {
	payload := []map[string]interface{}{{
		"name":     rom.Name,
		"size":     rom.Size,
		"crc":      rom.CRC,
		"rom_type": romTypeCode(rom.Type),
	}}
	query, args, err := builder.BuildInsert("rom", payload)
	if err != nil {
		return 0, err
	}
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("insert rom %s: %w", rom.Name, err)
	}
	return res.LastInsertId()
}

const insertEdgeSQL = `INSERT OR IGNORE INTO machine_rom (machine_id, rom_id, merge) VALUES (?, ?, ?)`

func insertEdge(ctx context.Context, tx *sql.Tx, machineID, romID int64, merge string) error {
	var mergeVal interface{}
	if merge != "" {
		mergeVal = merge
	}
	_, err := tx.ExecContext(ctx, insertEdgeSQL, machineID, romID, mergeVal)
	return err
}

func machineTypeCode(t model.MachineType) interface{} {
	if t == model.MachineTypeRegular {
		return nil
	}
	return string(t)
}

func romTypeCode(t model.RomType) interface{} {
	if t == model.RomTypeRegular {
		return nil
	}
	return string(t)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
