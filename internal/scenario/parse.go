package scenario

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ErrNoColumns is returned for a source without a header line.
var ErrNoColumns = errors.New("no columns to parse from file")

// Parse reads an aggregation export and builds the record for name. Only
// the first data row is used. Columns outside the vocabulary are ignored;
// vocabulary columns that are absent, or empty in the first row, count as
// zero. A header with no data rows yields an all-zero record.
func Parse(r io.Reader, name string) (*Record, error) {
	rec, _, err := parse(r, name)
	return rec, err
}

// parse also reports how many data rows after the first were ignored.
func parse(r io.Reader, name string) (*Record, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, 0, ErrNoColumns
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		col = strings.TrimSpace(col)
		if i == 0 {
			col = strings.TrimPrefix(col, "\ufeff")
		}
		if _, dup := index[col]; !dup {
			index[col] = i
		}
	}

	var first []string
	ignored := 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to read row: %w", err)
		}
		if len(row) > len(header) {
			line, _ := reader.FieldPos(0)
			return nil, 0, fmt.Errorf("line %d: expected %d fields, saw %d", line, len(header), len(row))
		}
		if first == nil {
			first = row
			continue
		}
		ignored++
	}

	row := sourceRow{index: index, cells: first}
	groups := make(map[string]Breakdown, 3)
	for _, g := range Groups() {
		raw, err := row.values(g.Names())
		if err != nil {
			return nil, 0, err
		}
		groups[g.Key] = newBreakdown(raw)
	}
	totals, err := row.values([]string{TotalUnitsColumn, AffordableUnitsColumn})
	if err != nil {
		return nil, 0, err
	}

	return &Record{
		Name:            name,
		Income:          groups[IncomeKey],
		Bedroom:         groups[BedroomKey],
		Parking:         groups[ParkingKey],
		TotalUnits:      totals[0],
		AffordableUnits: totals[1],
	}, ignored, nil
}

// sourceRow fills the declared vocabulary from the first data row,
// substituting zero for anything missing.
type sourceRow struct {
	index map[string]int
	cells []string
}

func (s sourceRow) values(columns []string) ([]float64, error) {
	values := make([]float64, len(columns))
	for i, col := range columns {
		v, err := s.value(col)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

func (s sourceRow) value(column string) (float64, error) {
	idx, ok := s.index[column]
	if !ok || idx >= len(s.cells) {
		return 0, nil
	}
	cell := strings.TrimSpace(s.cells[idx])
	if cell == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, fmt.Errorf("column %s: invalid number %q", column, cell)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("column %s: non-finite value %q", column, cell)
	}
	return v, nil
}
