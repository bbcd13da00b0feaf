// Package model holds the entity types shared across ingestion and query.
package model

// MachineType classifies a Machine as the catalog's <machine> attributes declare it.
type MachineType string

const (
	MachineTypeRegular MachineType = ""
	MachineTypeBios    MachineType = "b"
	MachineTypeDevice  MachineType = "d"
)

// RomType classifies a Rom by provenance category, independent of any one machine.
type RomType string

const (
	RomTypeRegular RomType = ""
	RomTypeBios    RomType = "b"
	RomTypeDevice  RomType = "d"
)

// Machine is one catalog entry: a runnable system, a BIOS provider, or a device provider.
type Machine struct {
	ID           int64
	Name         string
	Description  string
	Year         string
	Manufacturer string
	RomOf        string
	CloneOf      string
	Type         MachineType
}

// IsClone reports whether this machine declares a parent via cloneof.
func (m Machine) IsClone() bool {
	return m.CloneOf != ""
}

// Rom is one binary artifact identified by (name, size, crc).
type Rom struct {
	ID   int64
	Name string
	Size int64
	CRC  string
	Type RomType
}

// MachineRom is a machine's claim on a rom, carrying the optional merge provenance.
type MachineRom struct {
	ID        int64
	MachineID int64
	RomID     int64
	Merge     string
}

// CatalogMeta is the single-row record describing the ingested catalog.
type CatalogMeta struct {
	Build      string
	Debug      bool
	MameConfig string
}

// MachineSummary is the lightweight listing row used by list_machines.
type MachineSummary struct {
	ID           int64
	Name         string
	Description  string
	Year         string
	Manufacturer string
	Type         MachineType
}
