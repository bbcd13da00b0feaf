package catalog

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xxxsen/mameset/internal/apperr"
)

// CatalogHeader carries the <mame> root element's attributes, emitted once
// before any MachineRecord.
type CatalogHeader struct {
	Build      string
	Debug      bool
	MameConfig string
}

// RomEntry is one <rom> child of a <machine>, as seen on the wire.
type RomEntry struct {
	Name  string
	Size  int64
	CRC   string
	Merge string
	Bios  string
}

// MachineRecord is one <machine> element with its scalar fields, ROM
// entries, and device references, as seen on the wire.
type MachineRecord struct {
	Name         string
	Description  string
	Year         string
	Manufacturer string
	CloneOf      string
	RomOf        string
	IsBios       bool
	IsDevice     bool
	Roms         []RomEntry
	DeviceRefs   []string
}

// MachineHandler is called once per emitted MachineRecord. Returning an
// error aborts the parse.
type MachineHandler func(MachineRecord) error

// scalarFields are the machine child elements whose trimmed text content is
// captured verbatim, keyed by element name.
var scalarFields = map[string]struct{}{
	"description":  {},
	"year":         {},
	"manufacturer": {},
}

// Parse streams a MAME-style catalog document, invoking onHeader once for
// the root element and onMachine once per well-formed <machine>. It never
// materializes the whole document at once: tokens are consumed and
// discarded as the scan proceeds.
func Parse(r io.Reader, onHeader func(CatalogHeader), onMachine MachineHandler) error {
	decoder := xml.NewDecoder(r)
	decoder.Strict = false // the catalog references a DTD; relax strict parsing.

	var current *MachineRecord
	var scalarName string
	var scalarBuf strings.Builder

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			if offset := decoder.InputOffset(); offset > 0 {
				return fmt.Errorf("%w: at offset %d: %v", apperr.ErrIngestParseFailed, offset, err)
			}
			return fmt.Errorf("%w: %v", apperr.ErrIngestParseFailed, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case t.Name.Local == "mame" && current == nil:
				if onHeader != nil {
					onHeader(parseHeader(t))
				}
			case t.Name.Local == "machine":
				rec := parseMachineAttrs(t)
				current = &rec
			case current != nil && t.Name.Local == "rom":
				if entry, ok := parseRomEntry(t); ok {
					current.Roms = append(current.Roms, entry)
				}
			case current != nil && t.Name.Local == "device_ref":
				if name := attrValue(t, "name"); name != "" {
					current.DeviceRefs = append(current.DeviceRefs, name)
				}
			case current != nil:
				if _, ok := scalarFields[t.Name.Local]; ok {
					scalarName = t.Name.Local
					scalarBuf.Reset()
				}
			}
		case xml.CharData:
			if current != nil && scalarName != "" {
				scalarBuf.Write(t)
			}
		case xml.EndElement:
			switch {
			case current != nil && t.Name.Local == scalarName:
				if text := strings.TrimSpace(scalarBuf.String()); text != "" {
					assignScalar(current, scalarName, text)
				}
				scalarName = ""
				scalarBuf.Reset()
			case t.Name.Local == "machine" && current != nil:
				rec := *current
				current = nil
				if rec.Name == "" {
					continue
				}
				if onMachine != nil {
					if err := onMachine(rec); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

// CollectAll drains r through Parse and buffers every machine record in
// document order. The Normalizer needs the full set before it can classify
// any single ROM, so ingestion collects before it normalizes.
func CollectAll(r io.Reader) (*CatalogHeader, []MachineRecord, error) {
	var header *CatalogHeader
	var records []MachineRecord

	err := Parse(r, func(h CatalogHeader) {
		header = &h
	}, func(rec MachineRecord) error {
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return header, records, nil
}

func parseHeader(t xml.StartElement) CatalogHeader {
	return CatalogHeader{
		Build:      attrValue(t, "build"),
		Debug:      attrValue(t, "debug") == "yes",
		MameConfig: attrValue(t, "mameconfig"),
	}
}

func parseMachineAttrs(t xml.StartElement) MachineRecord {
	return MachineRecord{
		Name:     attrValue(t, "name"),
		CloneOf:  attrValue(t, "cloneof"),
		RomOf:    attrValue(t, "romof"),
		IsBios:   attrValue(t, "isbios") == "yes",
		IsDevice: attrValue(t, "isdevice") == "yes",
	}
}

func parseRomEntry(t xml.StartElement) (RomEntry, bool) {
	name := attrValue(t, "name")
	sizeStr := attrValue(t, "size")
	crc := attrValue(t, "crc")
	if name == "" || sizeStr == "" || crc == "" {
		return RomEntry{}, false
	}
	size, err := strconv.ParseInt(sizeStr, 10, 64)
	if err != nil {
		return RomEntry{}, false
	}
	return RomEntry{
		Name:  name,
		Size:  size,
		CRC:   strings.ToUpper(crc),
		Merge: attrValue(t, "merge"),
		Bios:  attrValue(t, "bios"),
	}, true
}

func assignScalar(m *MachineRecord, field, value string) {
	switch field {
	case "description":
		m.Description = value
	case "year":
		m.Year = value
	case "manufacturer":
		m.Manufacturer = value
	}
}

func attrValue(t xml.StartElement, name string) string {
	for _, a := range t.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}
