// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bank

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// rawRow is one logical record with the source row it starts on.
type rawRow struct {
	row   int
	cells []string
}

// table is the header plus the logical records of a tabular source.
type table struct {
	header []string
	rows   []rawRow
	// broken holds records the tabular reader itself could not split.
	broken []*RowError
}

// readCSV splits decoded text into records using RFC 4180 quoting, so a
// quoted cell may span several physical lines. Each record keeps the line
// it starts on.
func readCSV(text string) (*table, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, errors.New("no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	t := &table{header: header}
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				t.broken = append(t.broken, &RowError{
					Row:    pe.StartLine,
					Reason: pe.Err.Error(),
					Err:    ErrInvalidRow,
				})
				continue
			}
			return nil, err
		}
		line, _ := r.FieldPos(0)
		t.rows = append(t.rows, rawRow{row: line, cells: rec})
	}
	return t, nil
}

// readXLSX reads the named worksheet, or the first one when sheet is empty.
// Row numbers are the worksheet's own (header on row 1).
func readXLSX(data []byte, sheet string) (*table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, errors.New("no header row")
	}

	t := &table{header: rows[0]}
	for i, cells := range rows[1:] {
		t.rows = append(t.rows, rawRow{row: i + 2, cells: cells})
	}
	return t, nil
}
