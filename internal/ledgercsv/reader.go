// Package ledgercsv reads ledger CSV exports and maps each row onto a
// domain.LedgerEntry. It performs no I/O beyond the reader it is given.
package ledgercsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/heartmarshall/extrato-backend/internal/domain"
)

// headerLine is the file line of the header row.
const headerLine = 1

// Row is one data row keyed by canonical column name.
// Line is the 1-based file line the row starts on.
type Row struct {
	Line  int
	cells map[string]string
}

// NewRow builds a Row from canonical column names to raw cell values.
func NewRow(line int, cells map[string]string) Row {
	return Row{Line: line, cells: cells}
}

// Value returns the trimmed cell for column, or "" when absent.
func (r Row) Value(column string) string {
	return strings.TrimSpace(r.cells[column])
}

// Reader yields validated rows from a ledger CSV.
type Reader struct {
	csv    *csv.Reader
	header []string // canonical name per position
}

// NewReader reads and validates the header row. A leading UTF-8 byte order
// mark is dropped. The header must contain every required column, no unknown
// column and no column twice. Violations are reported as *domain.RowError on
// line 1 before any data row is read. Blank header cells are ignored along
// with their column.
func NewReader(r io.Reader) (*Reader, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	cr := csv.NewReader(decoded)
	cr.FieldsPerRecord = -1 // row width is checked against the header
	cr.TrimLeadingSpace = true

	record, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &domain.RowError{
				Line: headerLine,
				Err:  fmt.Errorf("%w: empty file", domain.ErrValidation),
			}
		}
		return nil, readError(err)
	}

	header, err := validateHeader(record)
	if err != nil {
		return nil, err
	}
	return &Reader{csv: cr, header: header}, nil
}

func validateHeader(record []string) ([]string, error) {
	header := make([]string, len(record))
	seen := make(map[string]bool, len(record))

	for i, cell := range record {
		if strings.TrimSpace(cell) == "" {
			continue
		}
		name, ok := lookupColumn(cell)
		if !ok {
			raw := strings.TrimSpace(cell)
			return nil, &domain.RowError{
				Line:   headerLine,
				Column: raw,
				Raw:    raw,
				Err:    &domain.UnknownColumnError{Column: raw},
			}
		}
		if seen[name] {
			return nil, &domain.RowError{
				Line:   headerLine,
				Column: name,
				Err:    domain.NewValidationError(name, "duplicate column"),
			}
		}
		seen[name] = true
		header[i] = name
	}

	for _, c := range Columns {
		if c.Required && !seen[c.Name] {
			return nil, &domain.RowError{
				Line:   headerLine,
				Column: c.Name,
				Err:    &domain.MissingFieldError{Column: c.Name},
			}
		}
	}
	return header, nil
}

// Next returns the next non-blank row, or io.EOF when the input is exhausted.
func (r *Reader) Next() (Row, error) {
	for {
		record, err := r.csv.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return Row{}, io.EOF
			}
			return Row{}, readError(err)
		}

		line, _ := r.csv.FieldPos(0)

		if len(record) > len(r.header) {
			return Row{}, &domain.RowError{
				Line: line,
				Err: fmt.Errorf("%w: row has %d fields, header has %d",
					domain.ErrValidation, len(record), len(r.header)),
			}
		}

		if isBlank(record) {
			continue
		}

		cells := make(map[string]string, len(r.header))
		for i, v := range record {
			if r.header[i] != "" {
				cells[r.header[i]] = v
			}
		}
		return Row{Line: line, cells: cells}, nil
	}
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// readError converts a csv syntax error into a positioned validation error.
func readError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &domain.RowError{
			Line: pe.StartLine,
			Err:  fmt.Errorf("%w: %w", domain.ErrValidation, pe.Err),
		}
	}
	return fmt.Errorf("read csv: %w", err)
}

// Parse reads a whole ledger CSV and maps every row. It stops at the first
// error; no partial result is returned.
func Parse(r io.Reader) ([]domain.LedgerEntry, error) {
	reader, err := NewReader(r)
	if err != nil {
		return nil, err
	}

	var entries []domain.LedgerEntry
	for {
		row, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		entry, err := MapRow(row)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
