package dossier

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xxxsen/mameset/internal/model"
	"github.com/xxxsen/mameset/internal/store"
)

// sampleXML models a small family: a bios machine, a device, a parent with a
// device_ref and its own bios roms, and a clone that replaces one parent rom
// and keeps another via its merge attribute.
const sampleXML = `<?xml version="1.0"?>
<mame build="0.250 (dossier-test)" debug="no" mameconfig="10">
	<machine name="neogeo" isbios="yes">
		<description>Neo Geo BIOS</description>
		<rom name="neo-bios" size="131072" crc="DEADBEEF"/>
	</machine>
	<machine name="d1" isdevice="yes">
		<description>Support Device</description>
		<rom name="z.rom" size="16" crc="AAAAAAAA"/>
	</machine>
	<machine name="puckman">
		<description>PuckMan</description>
		<year>1980</year>
		<manufacturer>Namco</manufacturer>
		<device_ref name="d1"/>
		<rom name="neo-bios" size="131072" crc="DEADBEEF" bios="neogeo"/>
		<rom name="a.rom" size="1024" crc="11111111"/>
		<rom name="b.rom" size="1024" crc="22222222"/>
	</machine>
	<machine name="pacman" cloneof="puckman" romof="puckman">
		<description>Pac-Man</description>
		<rom name="neo-bios" size="131072" crc="DEADBEEF" bios="neogeo"/>
		<rom name="a.rom" size="1024" crc="11111111" merge="a.rom"/>
		<rom name="bp.rom" size="1024" crc="33333333" merge="b.rom"/>
	</machine>
</mame>`

func loadSampleStore(t *testing.T) *store.Handle {
	t.Helper()
	dir := t.TempDir()
	outPath := filepath.Join(dir, "dossier-sample.db")
	h, err := store.Ingest(context.Background(), strings.NewReader(sampleXML), outPath, false)
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
	t.Cleanup(func() { h.Close() })
	return h
}

func romByName(d *model.Dossier, name string) (model.RomWithProvenance, bool) {
	for _, r := range d.Roms {
		if r.Rom.Name == name {
			return r, true
		}
	}
	return model.RomWithProvenance{}, false
}

func TestLoadNonCloneMachineHasNoParent(t *testing.T) {
	h := loadSampleStore(t)
	d, err := Load(context.Background(), h, "puckman")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if d.Parent != nil {
		t.Fatalf("expected puckman to have no parent, got %+v", d.Parent)
	}
	if _, ok := romByName(d, "z.rom"); !ok {
		t.Fatalf("expected puckman's dossier to include its device's rom via closure")
	}
}

func TestLoadCloneResolvesParentAndProvenance(t *testing.T) {
	h := loadSampleStore(t)
	d, err := Load(context.Background(), h, "pacman")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if d.Parent == nil || d.Parent.Name != "puckman" {
		t.Fatalf("expected pacman's dossier to resolve puckman as parent, got %+v", d.Parent)
	}

	bios, ok := romByName(d, "neo-bios")
	if !ok || bios.Source != model.SourceBios {
		t.Fatalf("expected neo-bios to be sourced as bios, got %+v", bios)
	}

	device, ok := romByName(d, "z.rom")
	if !ok || device.Source != model.SourceDevice {
		t.Fatalf("expected z.rom to be sourced as device, got %+v", device)
	}

	own, ok := romByName(d, "bp.rom")
	if !ok || own.Source != model.SourceMachine {
		t.Fatalf("expected bp.rom to be sourced from pacman itself, got %+v", own)
	}
	if own.Replaces != "b.rom" {
		t.Fatalf("expected bp.rom to declare it replaces b.rom, got %q", own.Replaces)
	}
}

func TestLoadAnnotatesReplacedBy(t *testing.T) {
	h := loadSampleStore(t)
	d, err := Load(context.Background(), h, "pacman")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	parentRom, ok := romByName(d, "b.rom")
	if !ok {
		t.Fatalf("expected b.rom to still appear in pacman's dossier via its parent")
	}
	if len(parentRom.ReplacedBy) != 1 || parentRom.ReplacedBy[0] != "bp.rom" {
		t.Fatalf("expected b.rom to be marked replaced by bp.rom, got %+v", parentRom.ReplacedBy)
	}
}

func TestLoadUnknownMachineFails(t *testing.T) {
	h := loadSampleStore(t)
	if _, err := Load(context.Background(), h, "ghost"); err == nil {
		t.Fatalf("expected loading an unknown machine to fail")
	}
}
