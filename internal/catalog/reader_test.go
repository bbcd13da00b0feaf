package catalog

import (
	"strings"
	"testing"
)

const sampleCatalog = `<?xml version="1.0"?>
<!DOCTYPE mame PUBLIC "-//Logiqx//DTD ROM Management Datafile//EN" "mame.dtd">
<mame build="0.250 (mame-test)" debug="no" mameconfig="10">
	<machine name="neogeo" isbios="yes">
		<description>Neo Geo BIOS</description>
		<rom name="neo-bios" size="131072" crc="deadbeef"/>
	</machine>
	<machine name="d1" isdevice="yes">
		<description>Support Device</description>
		<rom name="z.rom" size="16" crc="aaaaaaaa"/>
	</machine>
	<machine name="puckman">
		<description>PuckMan</description>
		<year>1980</year>
		<manufacturer>Namco</manufacturer>
		<device_ref name="d1"/>
		<rom name="a.rom" size="1024" crc="1111"/>
		<rom name="b.rom" size="1024" crc="2222"/>
	</machine>
	<machine name="pacman" cloneof="puckman" romof="puckman">
		<description>Pac-Man</description>
		<rom name="bp.rom" size="1024" crc="2233" merge="b.rom"/>
	</machine>
	<machine name="broken">
		<rom name="missingsize.rom" crc="ffff"/>
	</machine>
	<machine cloneof="nope">
		<description>No name, dropped</description>
	</machine>
</mame>`

func TestParseCollectsHeaderAndMachines(t *testing.T) {
	header, records, err := CollectAll(strings.NewReader(sampleCatalog))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if header == nil || header.Build != "0.250 (mame-test)" || header.Debug {
		t.Fatalf("unexpected header: %+v", header)
	}
	if len(records) != 5 {
		t.Fatalf("expected 5 machines (the nameless one is dropped), got %d", len(records))
	}

	var puckman *MachineRecord
	for i := range records {
		if records[i].Name == "puckman" {
			puckman = &records[i]
		}
	}
	if puckman == nil {
		t.Fatalf("expected to find puckman")
	}
	if puckman.Year != "1980" || puckman.Manufacturer != "Namco" {
		t.Fatalf("unexpected scalar fields: %+v", puckman)
	}
	if len(puckman.DeviceRefs) != 1 || puckman.DeviceRefs[0] != "d1" {
		t.Fatalf("unexpected device refs: %+v", puckman.DeviceRefs)
	}
	if len(puckman.Roms) != 2 {
		t.Fatalf("expected 2 roms, got %d", len(puckman.Roms))
	}
}

func TestParseDropsIncompleteRomEntries(t *testing.T) {
	_, records, err := CollectAll(strings.NewReader(sampleCatalog))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	for _, rec := range records {
		if rec.Name == "broken" {
			if len(rec.Roms) != 0 {
				t.Fatalf("expected rom missing size to be dropped, got %+v", rec.Roms)
			}
			return
		}
	}
	t.Fatalf("expected to find machine 'broken'")
}

func TestParseUppercasesCRC(t *testing.T) {
	_, records, err := CollectAll(strings.NewReader(sampleCatalog))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	for _, rec := range records {
		for _, rom := range rec.Roms {
			if rom.CRC != strings.ToUpper(rom.CRC) {
				t.Fatalf("expected crc %s to be uppercased", rom.CRC)
			}
		}
	}
}

func TestParseRejectsMalformedXML(t *testing.T) {
	_, _, err := CollectAll(strings.NewReader(`<mame><machine name="a">`))
	if err == nil {
		t.Fatalf("expected malformed xml to fail")
	}
}
