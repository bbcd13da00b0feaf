package dossier

import "github.com/xxxsen/mameset/internal/model"

// Derive is the pure function from a Dossier and a SetKind to an ordered
// list of ROMs, implementing the seven canonical set views. The merged kinds
// and the device/bios scans appended to nonmerged are deduplicated by
// (name, crc); split and the nonmerged base list are not.
func Derive(d *model.Dossier, kind model.SetKind) []model.Rom {
	switch kind {
	case model.SetSplit:
		return split(d)
	case model.SetMerged:
		return deduped(d, sourceSet(model.SourceMachine, model.SourceParent, model.SourceClone), false)
	case model.SetMergedPlus:
		return deduped(d, sourceSet(model.SourceMachine, model.SourceParent, model.SourceClone, model.SourceDevice), false)
	case model.SetMergedFull:
		return deduped(d, sourceSet(model.SourceMachine, model.SourceParent, model.SourceClone, model.SourceDevice, model.SourceBios), false)
	case model.SetNonMerged:
		return nonMerged(d)
	case model.SetNonMergedPlus:
		return append(nonMerged(d), deduped(d, sourceSet(model.SourceDevice), false)...)
	case model.SetNonMergedFull:
		out := append(nonMerged(d), deduped(d, sourceSet(model.SourceDevice), false)...)
		return append(out, deduped(d, sourceSet(model.SourceBios), false)...)
	default:
		return nil
	}
}

func split(d *model.Dossier) []model.Rom {
	var direct []model.RomWithProvenance
	for _, r := range d.Roms {
		if r.Source == model.SourceMachine {
			direct = append(direct, r)
		}
	}

	if !d.Machine.IsClone() {
		out := make([]model.Rom, len(direct))
		for i, r := range direct {
			out[i] = r.Rom
		}
		return out
	}

	parentNames := make(map[string]struct{})
	for _, r := range d.Roms {
		if r.Source == model.SourceParent {
			parentNames[r.Rom.Name] = struct{}{}
		}
	}

	var out []model.Rom
	for _, r := range direct {
		if _, inParent := parentNames[r.Rom.Name]; !inParent {
			out = append(out, r.Rom)
		}
	}
	return out
}

func nonMerged(d *model.Dossier) []model.Rom {
	var out []model.Rom
	replacesSet := make(map[string]struct{})
	for _, r := range d.Roms {
		if r.Source == model.SourceMachine {
			out = append(out, r.Rom)
			if r.Replaces != "" {
				replacesSet[r.Replaces] = struct{}{}
			}
		}
	}

	if !d.Machine.IsClone() {
		return out
	}

	for _, r := range d.Roms {
		if r.Source != model.SourceParent {
			continue
		}
		if _, replaced := replacesSet[r.Rom.Name]; replaced {
			continue
		}
		if len(r.ReplacedBy) > 0 {
			continue
		}
		out = append(out, r.Rom)
	}
	return out
}

// deduped scans d.Roms in order, keeping rows whose source is in sourceSet
// and (unless includeReplaced) whose ReplacedBy is empty, emitting each
// distinct (name, crc) pair once in first-seen order.
func deduped(d *model.Dossier, sources map[model.RomSource]struct{}, includeReplaced bool) []model.Rom {
	type key struct {
		name string
		crc  string
	}
	seen := make(map[key]struct{})
	var out []model.Rom
	for _, r := range d.Roms {
		if _, ok := sources[r.Source]; !ok {
			continue
		}
		if !includeReplaced && len(r.ReplacedBy) > 0 {
			continue
		}
		k := key{r.Rom.Name, r.Rom.CRC}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r.Rom)
	}
	return out
}

func sourceSet(sources ...model.RomSource) map[model.RomSource]struct{} {
	set := make(map[model.RomSource]struct{}, len(sources))
	for _, s := range sources {
		set[s] = struct{}{}
	}
	return set
}
