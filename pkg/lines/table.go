package lines

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/Semihazah/skein/pkg/domain"
)

// Record is one entry of a string table.
type Record struct {
	ID   string
	Text string
}

// Table is an ordered string table. Lookup scans in file order; on duplicate
// ids the first record wins. Tables are immutable once loaded.
type Table struct {
	records []Record
}

// NewTable builds a table from ordered records.
func NewTable(records []Record) *Table {
	return &Table{records: records}
}

// Len returns the number of records, duplicates included.
func (t *Table) Len() int { return len(t.records) }

// Records returns the ordered records. Callers must not mutate the slice.
func (t *Table) Records() []Record { return t.records }

// Lookup returns the text for id, scanning records in order. The first match
// wins. The boolean is false when the id is absent.
func (t *Table) Lookup(id string) (string, bool) {
	for _, r := range t.records {
		if r.ID == id {
			return r.Text, true
		}
	}
	return "", false
}

// Resolve looks up id and applies ordered substitutions to its text. A
// missing id is a fatal contract violation surfaced as *domain.ContentError.
func (t *Table) Resolve(id string, subs []string) (string, error) {
	text, ok := t.Lookup(id)
	if !ok {
		return "", &domain.ContentError{
			Kind:   domain.ContentMissingLine,
			LineID: id,
			Detail: "line id not present in bound string table",
		}
	}
	out, err := Substitute(text, subs)
	if err != nil {
		if ce, ok := domain.IsContentError(err); ok {
			ce.LineID = id
		}
		return "", err
	}
	return out, nil
}

// ReadTable parses the delimited string-table format: CSV with a header row
// whose first two columns are id and text. Extra columns (comments, files,
// line numbers) are ignored. Record order is preserved.
func ReadTable(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return NewTable(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading string table header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("string table header needs id and text columns, got %d columns", len(header))
	}

	var records []Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading string table row: %w", err)
		}
		if len(row) < 2 {
			return nil, fmt.Errorf("string table row %d has %d columns, need at least 2", len(records)+2, len(row))
		}
		records = append(records, Record{ID: row[0], Text: row[1]})
	}
	return NewTable(records), nil
}
