package store

// schemaDDL creates the four tables described in the persisted store schema.
// machine_type and rom_type are stored as single-character codes ('b', 'd',
// or NULL for regular) matching model.MachineType / model.RomType.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS mame (
	mame_id    INTEGER PRIMARY KEY AUTOINCREMENT,
	build      TEXT,
	debug      INTEGER NOT NULL DEFAULT 0,
	mameconfig TEXT
);

CREATE TABLE IF NOT EXISTS machine (
	machine_id   INTEGER PRIMARY KEY AUTOINCREMENT,
	name         TEXT NOT NULL UNIQUE,
	description  TEXT,
	year         TEXT,
	manufacturer TEXT,
	romof        TEXT,
	cloneof      TEXT,
	machine_type TEXT CHECK (machine_type IN ('b', 'd') OR machine_type IS NULL)
);

CREATE TABLE IF NOT EXISTS rom (
	rom_id   INTEGER PRIMARY KEY AUTOINCREMENT,
	name     TEXT NOT NULL,
	size     INTEGER NOT NULL,
	crc      TEXT NOT NULL,
	rom_type TEXT CHECK (rom_type IN ('b', 'd') OR rom_type IS NULL),
	UNIQUE(name, size, crc)
);

CREATE TABLE IF NOT EXISTS machine_rom (
	machine_rom_id INTEGER PRIMARY KEY AUTOINCREMENT,
	machine_id     INTEGER NOT NULL REFERENCES machine(machine_id),
	rom_id         INTEGER NOT NULL REFERENCES rom(rom_id),
	merge          TEXT,
	UNIQUE(machine_id, rom_id)
);

CREATE INDEX IF NOT EXISTS idx_machine_cloneof ON machine(cloneof);
CREATE INDEX IF NOT EXISTS idx_machine_rom_rom_id ON machine_rom(rom_id);
`
