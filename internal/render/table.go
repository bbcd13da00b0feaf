package render

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/xxxsen/mameset/internal/model"
)

// Table renders headers and rows as an ANSI-colored table.
func Table(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return dimStyle.Render("(no rows)") + "\n"
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			if row%2 == 0 {
				return tableEvenRowStyle
			}
			return tableOddRowStyle
		}).
		Headers(headers...).
		Rows(rows...)

	return t.Render() + "\n"
}

// MachineList renders a list of machine summaries.
func MachineList(machines []model.MachineSummary) string {
	headers := []string{"ID", "Name", "Description", "Year", "Manufacturer", "Type"}
	rows := make([][]string, 0, len(machines))
	for _, m := range machines {
		rows = append(rows, []string{
			strconv.FormatInt(m.ID, 10),
			m.Name,
			m.Description,
			m.Year,
			m.Manufacturer,
			machineTypeLabel(m.Type),
		})
	}
	return Table(headers, rows)
}

// RomSet renders a derived ROM-set view, with human-readable sizes.
func RomSet(roms []model.Rom) string {
	headers := []string{"Name", "Size", "CRC", "Type"}
	rows := make([][]string, 0, len(roms))
	for _, r := range roms {
		rows = append(rows, []string{
			r.Name,
			humanize.Bytes(uint64(r.Size)),
			r.CRC,
			romTypeLabel(r.Type),
		})
	}
	return Table(headers, rows)
}

func machineTypeLabel(t model.MachineType) string {
	switch t {
	case model.MachineTypeBios:
		return "bios"
	case model.MachineTypeDevice:
		return "device"
	default:
		return "regular"
	}
}

func romTypeLabel(t model.RomType) string {
	switch t {
	case model.RomTypeBios:
		return "bios"
	case model.RomTypeDevice:
		return "device"
	default:
		return "regular"
	}
}
