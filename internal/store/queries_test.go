package store

import (
	"context"
	"errors"
	"testing"

	"github.com/xxxsen/mameset/internal/apperr"
)

func TestMachineByNameNotFound(t *testing.T) {
	h := ingestTestCatalog(t)
	_, err := h.MachineByName(context.Background(), "does-not-exist")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMachineByNameResolvesCloneFields(t *testing.T) {
	h := ingestTestCatalog(t)
	m, err := h.MachineByName(context.Background(), "pacman")
	if err != nil {
		t.Fatalf("MachineByName failed: %v", err)
	}
	if !m.IsClone() || m.CloneOf != "puckman" {
		t.Fatalf("expected pacman to be a clone of puckman, got %+v", m)
	}
}

func TestMachineFamilyOfParentListsClones(t *testing.T) {
	h := ingestTestCatalog(t)
	ctx := context.Background()

	fam, err := h.MachineFamilyByName(ctx, "puckman")
	if err != nil {
		t.Fatalf("MachineFamilyByName failed: %v", err)
	}
	if fam.Parent != nil {
		t.Fatalf("expected puckman to have no parent, got %+v", fam.Parent)
	}
	if len(fam.SiblingIDs) != 0 {
		t.Fatalf("expected a non-clone target to have no siblings, got %v", fam.SiblingIDs)
	}

	if len(fam.CloneIDs) != 2 {
		t.Fatalf("expected puckman's clone ids to cover pacman and puckmod, got %v", fam.CloneIDs)
	}
}

func TestMachineFamilyOfCloneResolvesParent(t *testing.T) {
	h := ingestTestCatalog(t)

	fam, err := h.MachineFamilyByName(context.Background(), "pacman")
	if err != nil {
		t.Fatalf("MachineFamilyByName failed: %v", err)
	}
	if fam.Parent == nil || fam.Parent.Name != "puckman" {
		t.Fatalf("expected pacman's family to resolve puckman as parent, got %+v", fam.Parent)
	}
	if len(fam.CloneIDs) != 0 {
		t.Fatalf("expected a clone target to have no clones of its own, got %v", fam.CloneIDs)
	}

	puckmod, err := h.MachineByName(context.Background(), "puckmod")
	if err != nil {
		t.Fatalf("MachineByName failed: %v", err)
	}
	if len(fam.SiblingIDs) != 1 || fam.SiblingIDs[0] != puckmod.ID {
		t.Fatalf("expected pacman's sibling ids to be [%d], got %v", puckmod.ID, fam.SiblingIDs)
	}
}

func TestMachineFamilyUnknownName(t *testing.T) {
	h := ingestTestCatalog(t)
	_, err := h.MachineFamilyByName(context.Background(), "ghost")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMachineNameRoundTrips(t *testing.T) {
	h := ingestTestCatalog(t)
	ctx := context.Background()
	m, err := h.MachineByName(ctx, "puckman")
	if err != nil {
		t.Fatalf("MachineByName failed: %v", err)
	}
	name, err := h.MachineName(ctx, m.ID)
	if err != nil {
		t.Fatalf("MachineName failed: %v", err)
	}
	if name != "puckman" {
		t.Fatalf("expected puckman, got %q", name)
	}
}

func TestFindMachineByCRCsExactMatch(t *testing.T) {
	h := ingestTestCatalog(t)
	ctx := context.Background()

	id, err := h.FindMachineByCRCs(ctx, []string{"11111111", "22222222"})
	if err != nil {
		t.Fatalf("FindMachineByCRCs failed: %v", err)
	}
	if id == nil {
		t.Fatalf("expected a match for puckman's crcs")
	}
	name, err := h.MachineName(ctx, *id)
	if err != nil {
		t.Fatalf("MachineName failed: %v", err)
	}
	if name != "puckman" {
		t.Fatalf("expected puckman, got %q", name)
	}
}

func TestFindMachineByCRCsLowercaseInput(t *testing.T) {
	h := ingestTestCatalog(t)
	id, err := h.FindMachineByCRCs(context.Background(), []string{"deadbeef"})
	if err != nil {
		t.Fatalf("FindMachineByCRCs failed: %v", err)
	}
	if id == nil {
		t.Fatalf("expected lowercase crc input to still match the uppercased stored crc")
	}
}

func TestFindMachineByCRCsNoMatch(t *testing.T) {
	h := ingestTestCatalog(t)
	id, err := h.FindMachineByCRCs(context.Background(), []string{"ffffffff"})
	if err != nil {
		t.Fatalf("FindMachineByCRCs failed: %v", err)
	}
	if id != nil {
		t.Fatalf("expected no match, got %v", *id)
	}
}

func TestRomEdgesForMachinesGroupsByRom(t *testing.T) {
	h := ingestTestCatalog(t)
	ctx := context.Background()

	puckman, err := h.MachineByName(ctx, "puckman")
	if err != nil {
		t.Fatalf("MachineByName failed: %v", err)
	}
	pacman, err := h.MachineByName(ctx, "pacman")
	if err != nil {
		t.Fatalf("MachineByName failed: %v", err)
	}

	edges, err := h.RomEdgesForMachines(ctx, []int64{puckman.ID, pacman.ID})
	if err != nil {
		t.Fatalf("RomEdgesForMachines failed: %v", err)
	}

	seen := make(map[int64]int)
	for _, e := range edges {
		seen[e.RomID]++
	}
	for romID, count := range seen {
		if count != 1 {
			t.Fatalf("expected rom %d to appear exactly once across the unioned edges, got %d", romID, count)
		}
	}
}
