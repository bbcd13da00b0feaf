package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/xxxsen/mameset/internal/apperr"
	"github.com/xxxsen/mameset/internal/model"
)

// CatalogVersion returns the single catalog metadata row, if one was written.
func (h *Handle) CatalogVersion(ctx context.Context) (*model.CatalogMeta, error) {
	row := h.QueryRow(ctx, `SELECT build, debug, mameconfig FROM mame LIMIT 1`)
	var meta model.CatalogMeta
	var debug int
	if err := row.Scan(&meta.Build, &debug, &meta.MameConfig); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", apperr.ErrQueryFailed, err)
	}
	meta.Debug = debug != 0
	return &meta, nil
}

// ListMachines returns every machine as a lightweight summary, ordered by machine_id.
func (h *Handle) ListMachines(ctx context.Context) ([]model.MachineSummary, error) {
	rows, err := h.Query(ctx, `SELECT machine_id, name, description, year, manufacturer, machine_type FROM machine ORDER BY machine_id`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrQueryFailed, err)
	}
	defer rows.Close()

	var result []model.MachineSummary
	for rows.Next() {
		var s model.MachineSummary
		var mtype sql.NullString
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Year, &s.Manufacturer, &mtype); err != nil {
			return nil, fmt.Errorf("%w: %v", apperr.ErrQueryFailed, err)
		}
		s.Type = model.MachineType(mtype.String)
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrQueryFailed, err)
	}
	return result, nil
}

// MachineByName fetches one machine row by its natural name.
func (h *Handle) MachineByName(ctx context.Context, name string) (*model.Machine, error) {
	row := h.QueryRow(ctx, `SELECT machine_id, name, description, year, manufacturer, romof, cloneof, machine_type FROM machine WHERE name = ?`, name)
	m, err := scanMachine(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: machine %s", apperr.ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrQueryFailed, err)
	}
	return m, nil
}

// MachineName resolves a machine_id back to its natural name.
func (h *Handle) MachineName(ctx context.Context, machineID int64) (string, error) {
	row := h.QueryRow(ctx, `SELECT name FROM machine WHERE machine_id = ?`, machineID)
	var name string
	if err := row.Scan(&name); err != nil {
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("%w: machine id %d", apperr.ErrNotFound, machineID)
		}
		return "", fmt.Errorf("%w: %v", apperr.ErrQueryFailed, err)
	}
	return name, nil
}

// FindMachineByCRCs returns the id of the unique machine whose ROM CRCs
// contain every crc in crcs with an exact match count, or nil if no machine
// qualifies. On a tie, the lowest machine_id wins.
func (h *Handle) FindMachineByCRCs(ctx context.Context, crcs []string) (*int64, error) {
	if len(crcs) == 0 {
		return nil, nil
	}
	upper := make([]interface{}, len(crcs))
	placeholders := ""
	for i, c := range crcs {
		upper[i] = upperCRC(c)
		if i > 0 {
			placeholders += ","
		}
		placeholders += "?"
	}

	query := fmt.Sprintf(`
SELECT mr.machine_id, COUNT(DISTINCT r.crc) AS match_count
FROM machine_rom mr
JOIN rom r ON r.rom_id = mr.rom_id
WHERE r.crc IN (%s)
GROUP BY mr.machine_id
HAVING match_count = ?
ORDER BY mr.machine_id
LIMIT 1`, placeholders)

	args := append(append([]interface{}{}, upper...), len(crcs))
	row := h.QueryRow(ctx, query, args...)

	var machineID int64
	var matchCount int
	if err := row.Scan(&machineID, &matchCount); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", apperr.ErrQueryFailed, err)
	}
	return &machineID, nil
}

// MachineFamily is the first dossier query's single result row: the target
// machine, its parent when one exists, and the ids of its clones (children
// pointing at it) and siblings (other clones of the same parent, only
// populated when the target is itself a clone).
type MachineFamily struct {
	Machine    model.Machine
	Parent     *model.Machine
	CloneIDs   []int64
	SiblingIDs []int64
}

// The clone and sibling subqueries surface their ids as comma-joined
// strings, so the whole family arrives in one row. The target name binds
// three times: once per subquery, once for the row itself. The sibling
// subquery keys off the target's own cloneof and is empty for non-clones.
const machineFamilySQL = `
SELECT m.machine_id, m.name, m.description, m.year, m.manufacturer, m.romof, m.cloneof, m.machine_type,
       p.machine_id, p.name, p.description, p.year, p.manufacturer, p.romof, p.cloneof, p.machine_type,
       (SELECT GROUP_CONCAT(c.machine_id) FROM machine c WHERE c.cloneof = ?) AS clone_ids,
       (SELECT GROUP_CONCAT(s.machine_id) FROM machine s JOIN machine t ON t.name = ?
        WHERE t.cloneof <> '' AND s.cloneof = t.cloneof AND s.name <> t.name) AS sibling_ids
FROM machine m
LEFT JOIN machine p ON p.name = m.cloneof AND m.cloneof <> ''
WHERE m.name = ?`

// MachineFamilyByName runs the first dossier query for name, returning
// ErrNotFound when the name resolves to no machine row.
func (h *Handle) MachineFamilyByName(ctx context.Context, name string) (*MachineFamily, error) {
	row := h.QueryRow(ctx, machineFamilySQL, name, name, name)

	var fam MachineFamily
	var mtype sql.NullString
	var pID sql.NullInt64
	var pName, pDesc, pYear, pManu, pRomOf, pCloneOf, pType sql.NullString
	var cloneIDs, siblingIDs sql.NullString

	err := row.Scan(
		&fam.Machine.ID, &fam.Machine.Name, &fam.Machine.Description, &fam.Machine.Year,
		&fam.Machine.Manufacturer, &fam.Machine.RomOf, &fam.Machine.CloneOf, &mtype,
		&pID, &pName, &pDesc, &pYear, &pManu, &pRomOf, &pCloneOf, &pType,
		&cloneIDs, &siblingIDs,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: machine %s", apperr.ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrQueryFailed, err)
	}
	fam.Machine.Type = model.MachineType(mtype.String)

	if pID.Valid {
		fam.Parent = &model.Machine{
			ID:           pID.Int64,
			Name:         pName.String,
			Description:  pDesc.String,
			Year:         pYear.String,
			Manufacturer: pManu.String,
			RomOf:        pRomOf.String,
			CloneOf:      pCloneOf.String,
			Type:         model.MachineType(pType.String),
		}
	}

	if fam.CloneIDs, err = splitIDList(cloneIDs.String); err != nil {
		return nil, fmt.Errorf("%w: clone ids: %v", apperr.ErrQueryFailed, err)
	}
	if fam.SiblingIDs, err = splitIDList(siblingIDs.String); err != nil {
		return nil, fmt.Errorf("%w: sibling ids: %v", apperr.ErrQueryFailed, err)
	}
	return &fam, nil
}

// RomEdgeRow is one joined machine_rom/rom row, as fetched for a Dossier's
// Query 2: every ROM edge reachable from a set of machine ids.
type RomEdgeRow struct {
	RomID       int64
	Name        string
	Size        int64
	CRC         string
	RomType     model.RomType
	MachineID   int64
	MachineName string
	Merge       string
}

// RomEdgesForMachines fetches every machine_rom edge joined to its ROM and
// owning machine, for the given machine ids. Rows are grouped by rom_id so
// each ROM appears once; the MIN(machine_rom_id) tie-break picks a stable
// originating (machine_id, machine_name) pair per ROM.
func (h *Handle) RomEdgesForMachines(ctx context.Context, machineIDs []int64) ([]RomEdgeRow, error) {
	if len(machineIDs) == 0 {
		return nil, nil
	}
	placeholders := ""
	args := make([]interface{}, len(machineIDs))
	for i, id := range machineIDs {
		args[i] = id
		if i > 0 {
			placeholders += ","
		}
		placeholders += "?"
	}

	query := fmt.Sprintf(`
SELECT r.rom_id, r.name, r.size, r.crc, r.rom_type, m.machine_id, m.name, mr.merge
FROM machine_rom mr
JOIN rom r ON r.rom_id = mr.rom_id
JOIN machine m ON m.machine_id = mr.machine_id
WHERE mr.machine_rom_id IN (
	SELECT MIN(mr2.machine_rom_id)
	FROM machine_rom mr2
	WHERE mr2.machine_id IN (%s)
	GROUP BY mr2.rom_id
)
ORDER BY r.rom_id`, placeholders)

	rows, err := h.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrQueryFailed, err)
	}
	defer rows.Close()

	var result []RomEdgeRow
	for rows.Next() {
		var e RomEdgeRow
		var romType, merge sql.NullString
		if err := rows.Scan(&e.RomID, &e.Name, &e.Size, &e.CRC, &romType, &e.MachineID, &e.MachineName, &merge); err != nil {
			return nil, fmt.Errorf("%w: %v", apperr.ErrQueryFailed, err)
		}
		e.RomType = model.RomType(romType.String)
		e.Merge = merge.String
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrQueryFailed, err)
	}
	return result, nil
}

func scanMachine(row *sql.Row) (*model.Machine, error) {
	var m model.Machine
	var mtype sql.NullString
	if err := row.Scan(&m.ID, &m.Name, &m.Description, &m.Year, &m.Manufacturer, &m.RomOf, &m.CloneOf, &mtype); err != nil {
		return nil, err
	}
	m.Type = model.MachineType(mtype.String)
	return &m, nil
}

func splitIDList(joined string) ([]int64, error) {
	if joined == "" {
		return nil, nil
	}
	parts := strings.Split(joined, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func upperCRC(crc string) string {
	out := make([]byte, len(crc))
	for i := 0; i < len(crc); i++ {
		c := crc[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}
