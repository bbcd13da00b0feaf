// Package dossier loads per-query machine dossiers and derives the seven
// canonical ROM-set views from them.
package dossier

import (
	"context"

	"github.com/xxxsen/mameset/internal/model"
	"github.com/xxxsen/mameset/internal/store"
)

// Load fetches name's machine, its parent, and every ROM reachable through
// parent/clone/device/BIOS relations, returning a fully annotated Dossier.
// Two statements run against the store: one resolving the machine family
// (target, parent, clone and sibling ids), one fetching the unioned ROM edges.
func Load(ctx context.Context, h *store.Handle, name string) (*model.Dossier, error) {
	fam, err := h.MachineFamilyByName(ctx, name)
	if err != nil {
		return nil, err
	}
	target := &fam.Machine

	ids := []int64{target.ID}
	if fam.Parent != nil {
		ids = append(ids, fam.Parent.ID)
	}
	ids = append(ids, fam.CloneIDs...)
	ids = append(ids, fam.SiblingIDs...)

	edges, err := h.RomEdgesForMachines(ctx, ids)
	if err != nil {
		return nil, err
	}

	roms := make([]model.RomWithProvenance, 0, len(edges))
	for _, e := range edges {
		roms = append(roms, annotateSource(e, target, fam.Parent))
	}

	d := &model.Dossier{Machine: *target, Parent: fam.Parent, Roms: roms}
	annotateReplacedBy(d)
	return d, nil
}

func annotateSource(e store.RomEdgeRow, target *model.Machine, parent *model.Machine) model.RomWithProvenance {
	r := model.RomWithProvenance{
		Rom: model.Rom{
			ID:   e.RomID,
			Name: e.Name,
			Size: e.Size,
			CRC:  e.CRC,
			Type: e.RomType,
		},
		MachineID:   e.MachineID,
		MachineName: e.MachineName,
		Replaces:    e.Merge,
	}

	switch {
	case e.RomType == model.RomTypeBios:
		r.Source = model.SourceBios
		r.InfoType = model.RomInfoBios
	case e.RomType == model.RomTypeDevice:
		r.Source = model.SourceDevice
		r.InfoType = model.RomInfoDevice
	case e.MachineID == target.ID:
		r.Source = model.SourceMachine
		if parent != nil {
			r.InfoType = model.RomInfoClone
		} else {
			r.InfoType = model.RomInfoGame
		}
	case parent != nil && e.MachineID == parent.ID:
		r.Source = model.SourceParent
		r.InfoType = model.RomInfoGame
	default:
		r.Source = model.SourceClone
		r.InfoType = model.RomInfoGame
	}
	return r
}

// annotateReplacedBy builds a name→index map (last writer wins) and, for
// every row with a non-empty Replaces, appends that row's name to the
// replaced_by list of the row it names.
func annotateReplacedBy(d *model.Dossier) {
	nameToIndex := make(map[string]int, len(d.Roms))
	for i, r := range d.Roms {
		nameToIndex[r.Rom.Name] = i
	}
	for _, r := range d.Roms {
		if r.Replaces == "" {
			continue
		}
		if idx, ok := nameToIndex[r.Replaces]; ok {
			d.Roms[idx].ReplacedBy = append(d.Roms[idx].ReplacedBy, r.Rom.Name)
		}
	}
}
