// Package tabular reads and writes delimited tables as rows keyed by column name.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrNoHeader is returned when the input has no header row
var ErrNoHeader = errors.New("table has no header row")

const utf8BOM = "\ufeff"

// Table is an ordered list of columns plus rows keyed by column name
type Table struct {
	Columns []string
	Rows    []map[string]string
}

// New creates an empty table with the given header
func New(columns ...string) *Table {
	return &Table{Columns: columns}
}

// Has reports whether the table has a column named name
func (t *Table) Has(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Append adds a row. Keys outside Columns are ignored on write.
func (t *Table) Append(row map[string]string) {
	t.Rows = append(t.Rows, row)
}

// Read parses a CSV document. Short rows are padded with empty cells and extra cells are dropped.
func Read(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	table := New(header...)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV: %w", err)
		}

		row := make(map[string]string, len(header))
		for i, column := range header {
			if i < len(record) {
				row[column] = record[i]
			} else {
				row[column] = ""
			}
		}
		table.Append(row)
	}

	return table, nil
}

// Write renders the table as CSV with the header in Columns order
func Write(w io.Writer, t *Table) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(t.Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, column := range t.Columns {
			record[i] = row[column]
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// ReadFile reads the CSV file at path
func ReadFile(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open table file: %w", err)
	}
	defer file.Close()

	return Read(file)
}

// WriteFile writes the table to path, replacing any existing file
func WriteFile(path string, t *Table) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create table file: %w", err)
	}

	if err := Write(file, t); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
