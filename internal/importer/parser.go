// Package importer turns CSV exports into expenses ready for the ledger.
package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/pocket/internal/transaction"
)

var ErrUnknownFormat = errors.New("no matching CSV format found")

var dateLayouts = []string{time.DateOnly, "02-01-2006", "02/01/2006"}

// Parser reads CSV exports in any of the known profiles and produces expense
// params. Rows without a category keep CategoryName empty.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]transaction.ExpenseParams, error) {
	utf8r, charset, err := utf8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	for _, comma := range []rune{';', ','} {
		rows, err := readRows(data, comma)
		if err != nil {
			continue
		}

		profile, cols, headerIdx := detectProfile(rows)
		if profile == nil {
			continue
		}

		slog.Debug("csv format detected", "profile", profile.Name, "charset", charset, "separator", string(comma))

		return parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
	}

	return nil, fmt.Errorf("%w: expected date, concept and amount columns", ErrUnknownFormat)
}

func readRows(data []byte, comma rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	return reader.ReadAll()
}

// colIndex maps lower-cased column names to their index in the row.
type colIndex map[string]int

func (c colIndex) get(name string) int {
	if name == "" {
		return -1
	}

	idx, ok := c[name]
	if !ok {
		return -1
	}

	return idx
}

// detectProfile scans rows for a header matching a known profile and returns
// it with its column map and the header row index.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows extracts expenses from the data rows. headerRowNum is the 0-based
// index of the header in the file, used for error messages.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]transaction.ExpenseParams, error) {
	var params []transaction.ExpenseParams

	for i, row := range rows {
		rowNum := headerRowNum + i + 2

		date, ok := parseDate(cellValue(row, cols.get(p.DateCol)))
		if !ok {
			continue
		}

		concept := cellValue(row, cols.get(p.ConceptCol))
		if concept == "" {
			return nil, fmt.Errorf("row %d: missing concept", rowNum)
		}

		amount, ok := expenseAmount(p, cols, row)
		if !ok {
			continue
		}

		ep := transaction.ExpenseParams{
			Concept:      concept,
			Amount:       amount,
			Date:         date,
			CategoryName: cellValue(row, cols.get(p.CategoryCol)),
		}

		if s := cellValue(row, cols.get(p.IconCol)); s != "" {
			icon, err := strconv.Atoi(s)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid icon %q", rowNum, s)
			}

			ep.IconID = icon
		}

		params = append(params, ep)
	}

	return params, nil
}

// parseDate returns false for empty or unparseable cells (footers and the like).
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// expenseAmount returns the expense in cents, or false for rows that are not
// expenses (credits, zero or unreadable amounts).
func expenseAmount(p *Profile, cols colIndex, row []string) (int64, bool) {
	switch p.AmountMode {
	case amountPositive:
		cents, ok := cellAmount(row, cols.get(p.AmountCol))
		return abs(cents), ok
	case amountSigned:
		cents, ok := cellAmount(row, cols.get(p.AmountCol))
		if !ok || cents > 0 {
			return 0, false
		}

		return -cents, true
	case amountSplit:
		cents, ok := cellAmount(row, cols.get(p.DebitCol))
		return abs(cents), ok
	}

	return 0, false
}

func cellAmount(row []string, idx int) (int64, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return 0, false
	}

	cents, err := parseAmount(s)
	if err != nil || cents == 0 {
		return 0, false
	}

	return cents, true
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}

	return n
}
