package model

// RomSource is the provenance bucket a RomWithProvenance row belongs to
// inside one Dossier, assigned by the Dossier Loader (C6).
type RomSource string

const (
	SourceMachine RomSource = "machine"
	SourceParent  RomSource = "parent"
	SourceClone   RomSource = "clone"
	SourceDevice  RomSource = "device"
	SourceBios    RomSource = "bios"
)

// RomInfoType is the renderer-facing tag assigned alongside RomSource.
type RomInfoType string

const (
	RomInfoGame   RomInfoType = "gameRom"
	RomInfoClone  RomInfoType = "cloneRom"
	RomInfoDevice RomInfoType = "deviceRom"
	RomInfoBios   RomInfoType = "biosRom"
)

// RomWithProvenance is a Rom annotated with where it came from inside one Dossier.
type RomWithProvenance struct {
	Rom         Rom
	Source      RomSource
	InfoType    RomInfoType
	MachineID   int64
	MachineName string
	Replaces    string
	ReplacedBy  []string
}

// Dossier is the per-query in-memory bundle covering a target machine and
// everything reachable from it: its parent, its clones/siblings, its
// transitive devices, and all BIOS artifacts any of those pull in.
type Dossier struct {
	Machine Machine
	Parent  *Machine
	Roms    []RomWithProvenance
}

// SetKind names one of the seven canonical ROM-set views over a Dossier.
type SetKind string

const (
	SetSplit         SetKind = "split"
	SetMerged        SetKind = "merged"
	SetMergedPlus    SetKind = "mergedplus"
	SetMergedFull    SetKind = "mergedfull"
	SetNonMerged     SetKind = "nonmerged"
	SetNonMergedPlus SetKind = "nonmergedplus"
	SetNonMergedFull SetKind = "nonmergedfull"
)

// AllSetKinds lists the seven kinds in a stable order, for CLI enumeration.
func AllSetKinds() []SetKind {
	return []SetKind{
		SetSplit, SetMerged, SetMergedPlus, SetMergedFull,
		SetNonMerged, SetNonMergedPlus, SetNonMergedFull,
	}
}
