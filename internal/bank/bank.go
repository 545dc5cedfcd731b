// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bank reads a tabular question bank (CSV or XLSX) into validated,
// immutable questions. Problems with individual rows are collected and
// reported; only an unreadable source is fatal.
package bank

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/examgen/internal/subjects"
	"github.com/pdiddy/examgen/pkg/types"
)

// Options configures parsing.
type Options struct {
	// Catalog validates subject codes. Nil uses the built-in catalog.
	Catalog *subjects.Catalog

	// Supports reports whether a question type can be rendered. Nil accepts
	// every known type.
	Supports func(types.QuestionType) bool

	// Sheet selects an XLSX worksheet. Empty reads the first sheet.
	Sheet string
}

func (o Options) catalog() *subjects.Catalog {
	if o.Catalog == nil {
		return subjects.Default()
	}
	return o.Catalog
}

func (o Options) supports() func(types.QuestionType) bool {
	if o.Supports == nil {
		return types.QuestionType.Known
	}
	return o.Supports
}

// Bank is the validated content of one question source.
type Bank struct {
	source    string
	rows      int
	questions []*types.Question
	byID      map[string]*types.Question
	errors    []*RowError
	warnings  []*RowError
}

// Questions returns the accepted questions in source order. The slice is a
// copy; the questions themselves are shared and must not be modified.
func (b *Bank) Questions() []*types.Question {
	out := make([]*types.Question, len(b.questions))
	copy(out, b.questions)
	return out
}

// Lookup returns the question with id.
func (b *Bank) Lookup(id string) (*types.Question, bool) {
	q, ok := b.byID[id]
	return q, ok
}

// Len returns the number of accepted questions.
func (b *Bank) Len() int { return len(b.questions) }

// Rows returns the number of data rows read, rejected ones included.
func (b *Bank) Rows() int { return b.rows }

// Errors returns the rejected rows in source order.
func (b *Bank) Errors() []*RowError { return b.errors }

// Warnings returns problems that dropped content but kept the row.
func (b *Bank) Warnings() []*RowError { return b.warnings }

// HasErrors reports whether any row was rejected.
func (b *Bank) HasErrors() bool { return len(b.errors) > 0 }

// Source returns the path the bank was read from, if any.
func (b *Bank) Source() string { return b.source }

// FormatFromPath infers the bank format from a file extension. Unknown
// extensions are read as CSV.
func FormatFromPath(path string) types.SourceFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return types.FormatXLSX
	}
	return types.FormatCSV
}

// LoadFile reads the bank at cfg.Path. The file is closed before any row
// is validated.
func LoadFile(cfg types.BankConfig, opts Options) (*Bank, error) {
	data, err := readFile(cfg.Path)
	if err != nil {
		return nil, &SourceError{Path: cfg.Path, Err: err}
	}

	format := cfg.Format
	if format == "" {
		format = FormatFromPath(cfg.Path)
	}
	if cfg.Sheet != "" {
		opts.Sheet = cfg.Sheet
	}

	b, err := Parse(data, format, opts)
	if err != nil {
		if se, ok := err.(*SourceError); ok {
			se.Path = cfg.Path
		}
		return nil, err
	}
	b.source = cfg.Path
	slog.Info("loaded question bank", "path", cfg.Path, "rows", b.rows,
		"questions", len(b.questions), "errors", len(b.errors), "warnings", len(b.warnings))
	return b, nil
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// Load reads a bank from r in the given format.
func Load(r io.Reader, format types.SourceFormat, opts Options) (*Bank, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &SourceError{Err: err}
	}
	return Parse(data, format, opts)
}

// Parse validates raw bank bytes. It fails only when the source as a whole
// cannot be read; row problems are collected in the returned bank.
func Parse(data []byte, format types.SourceFormat, opts Options) (*Bank, error) {
	var (
		t   *table
		err error
	)
	switch format {
	case types.FormatXLSX:
		t, err = readXLSX(data, opts.Sheet)
	case types.FormatCSV, "":
		var text string
		text, err = decodeText(data)
		if err == nil {
			t, err = readCSV(text)
		}
	default:
		err = fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return nil, &SourceError{Err: err}
	}

	columns, err := headerIndex(t.header)
	if err != nil {
		return nil, &SourceError{Err: err}
	}

	b := &Bank{byID: make(map[string]*types.Question)}
	b.errors = append(b.errors, t.broken...)
	b.rows = len(t.broken)

	catalog := opts.catalog()
	supports := opts.supports()
	firstRow := make(map[string]int)

	for _, raw := range t.rows {
		rec, extra := toRecord(raw, t.header, columns)
		if rec.empty() {
			continue
		}
		b.rows++
		if extra != "" {
			b.reject(&RowError{Row: raw.row, ID: rec.get(colID), Reason: extra, Err: ErrInvalidRow})
			continue
		}

		q, warnings, rowErr := buildQuestion(rec, catalog, supports)
		if rowErr != nil {
			b.reject(rowErr)
			continue
		}
		if first, dup := firstRow[q.ID]; dup {
			b.reject(&RowError{
				Row:    raw.row,
				ID:     q.ID,
				Field:  colID,
				Reason: fmt.Sprintf("id %q already used on row %d", q.ID, first),
				Err:    ErrDuplicateID,
			})
			continue
		}

		firstRow[q.ID] = raw.row
		b.byID[q.ID] = q
		b.questions = append(b.questions, q)
		b.warnings = append(b.warnings, warnings...)
	}

	sortByRow(b.errors)
	return b, nil
}

func (b *Bank) reject(e *RowError) {
	slog.Debug("rejected bank row", "row", e.Row, "id", e.ID, "reason", e.Reason)
	b.errors = append(b.errors, e)
}

// headerIndex maps lower-case column names to their first position and
// checks the required columns.
func headerIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(cleanCell(h))
		if name == "" {
			continue
		}
		if _, seen := idx[name]; !seen {
			idx[name] = i
		}
	}
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("header is missing required columns: %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

// toRecord maps a raw row onto the header. The second result describes
// non-empty cells beyond the header, which make the row malformed.
func toRecord(raw rawRow, header []string, columns map[string]int) (record, string) {
	rec := record{row: raw.row, fields: make(map[string]string, len(columns))}
	for name, i := range columns {
		if i < len(raw.cells) {
			rec.fields[name] = cleanCell(raw.cells[i])
		}
	}
	for i := len(header); i < len(raw.cells); i++ {
		if cleanCell(raw.cells[i]) != "" {
			return rec, fmt.Sprintf("row has %d cells but the header has %d columns", len(raw.cells), len(header))
		}
	}
	return rec, ""
}

func (r record) empty() bool {
	for _, v := range r.fields {
		if v != "" {
			return false
		}
	}
	return true
}

// sortByRow orders errors by source row, keeping insertion order for ties.
func sortByRow(errs []*RowError) {
	sort.SliceStable(errs, func(i, j int) bool { return errs[i].Row < errs[j].Row })
}
