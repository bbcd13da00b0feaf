package catalog

import "github.com/xxxsen/mameset/internal/model"

// RomRef points at a deduplicated Rom and carries the merge value the
// referencing machine's own <rom> entry declared, if any.
type RomRef struct {
	RomIndex int
	Merge    string
}

// NormalizedMachine is one MachineRecord after type classification, keeping
// its insertion index stable for surrogate-key assignment downstream.
type NormalizedMachine struct {
	Index      int
	Record     MachineRecord
	Type       model.MachineType
	DirectRoms []RomRef
}

// NormalizedCatalog is the deduplicated, classified result of C2, ready for
// the Store Writer once device closures (C3) are folded in.
type NormalizedCatalog struct {
	Machines    []NormalizedMachine
	Roms        []model.Rom
	NameToIndex map[string]int
}

type romIdentity struct {
	name string
	size int64
	crc  string
}

// Normalize classifies machines and deduplicates ROMs by (name, size, crc),
// assigning each unique ROM a surrogate index on first sight. The rom_type
// classification requires knowing every BIOS/device machine up front, so
// this runs over the full collected record set rather than machine-by-machine.
func Normalize(records []MachineRecord) *NormalizedCatalog {
	types := make([]model.MachineType, len(records))
	nameToIndex := make(map[string]int, len(records))
	biosRomNames := make(map[string]struct{})
	deviceRomNames := make(map[string]struct{})

	for i, rec := range records {
		t := model.MachineTypeRegular
		switch {
		case rec.IsBios:
			t = model.MachineTypeBios
		case rec.IsDevice:
			t = model.MachineTypeDevice
		}
		types[i] = t
		nameToIndex[rec.Name] = i

		if t == model.MachineTypeBios {
			for _, rom := range rec.Roms {
				biosRomNames[rom.Name] = struct{}{}
			}
		}
		if t == model.MachineTypeDevice {
			for _, rom := range rec.Roms {
				deviceRomNames[rom.Name] = struct{}{}
			}
		}
		for _, rom := range rec.Roms {
			if rom.Bios != "" {
				biosRomNames[rom.Name] = struct{}{}
			}
		}
	}

	romIndex := make(map[romIdentity]int)
	var roms []model.Rom

	resolveRom := func(entry RomEntry) int {
		key := romIdentity{entry.Name, entry.Size, entry.CRC}
		if idx, ok := romIndex[key]; ok {
			return idx
		}
		rt := model.RomTypeRegular
		switch {
		case isInSet(biosRomNames, entry.Name):
			rt = model.RomTypeBios
		case isInSet(deviceRomNames, entry.Name):
			rt = model.RomTypeDevice
		}
		idx := len(roms)
		roms = append(roms, model.Rom{Name: entry.Name, Size: entry.Size, CRC: entry.CRC, Type: rt})
		romIndex[key] = idx
		return idx
	}

	machines := make([]NormalizedMachine, len(records))
	for i, rec := range records {
		nm := NormalizedMachine{Index: i, Record: rec, Type: types[i]}
		for _, rom := range rec.Roms {
			idx := resolveRom(rom)
			nm.DirectRoms = append(nm.DirectRoms, RomRef{RomIndex: idx, Merge: rom.Merge})
		}
		machines[i] = nm
	}

	return &NormalizedCatalog{Machines: machines, Roms: roms, NameToIndex: nameToIndex}
}

func isInSet(set map[string]struct{}, name string) bool {
	_, ok := set[name]
	return ok
}
