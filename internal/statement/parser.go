// Package statement parses bank statement exports into rows ready for import.
package statement

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/travel_ledger/internal/core/domain"
)

var (
	// ErrUnknownProfile is returned for a profile name that is not registered.
	ErrUnknownProfile = errors.New("unknown statement profile")
	// ErrNoHeader is returned when no row matches the requested layout.
	ErrNoHeader = errors.New("no matching statement header found")
)

var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02/01/06",
	"02-01-2006",
	"02-01-06",
	"02 Jan 2006",
	"02-Jan-2006",
	"02.01.2006",
}

// Parse decodes raw to UTF-8 and extracts statement rows using the named
// profile, or the first profile whose header is found when profile is empty.
// Lines that cannot be parsed are reported as RowErrors; the returned error
// is reserved for a file that cannot be read at all.
func Parse(raw []byte, profile string) ([]domain.StatementRow, []domain.RowError, error) {
	r, err := NewUTF8Reader(bytes.NewReader(raw))
	if err != nil {
		return nil, nil, fmt.Errorf("detect encoding: %w", err)
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("decode: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(content))
	reader.Comma = sniffDelimiter(content)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var (
		records [][]string
		lines   []int
	)
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read csv: %w", err)
		}
		line, _ := reader.FieldPos(0)
		records = append(records, rec)
		lines = append(lines, line)
	}

	candidates := profiles
	if profile != "" {
		p, ok := findProfile(profile)
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrUnknownProfile, profile)
		}
		candidates = []Profile{*p}
	}

	p, cols, headerIdx := detectProfile(records, candidates)
	if p == nil {
		return nil, nil, ErrNoHeader
	}
	rows, rowErrs := parseRows(p, cols, records[headerIdx+1:], lines[headerIdx+1:])
	return rows, rowErrs, nil
}

// sniffDelimiter picks the most frequent candidate delimiter over the first
// lines of the file.
func sniffDelimiter(content []byte) rune {
	head := content
	for i, n := 0, 0; i < len(content); i++ {
		if content[i] == '\n' {
			n++
			if n == 10 {
				head = content[:i]
				break
			}
		}
	}
	best, bestCount := ',', bytes.Count(head, []byte{','})
	for _, d := range []rune{';', '\t', '|'} {
		if n := bytes.Count(head, []byte(string(d))); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}

type colIndex map[string]int

func detectProfile(records [][]string, candidates []Profile) (*Profile, colIndex, int) {
	for rowIdx, row := range records {
		cols := make(colIndex)
		for i, cell := range row {
			if name := normalizeHeader(cell); name != "" {
				cols[name] = i
			}
		}
		for i := range candidates {
			if matchesProfile(&candidates[i], cols) {
				return &candidates[i], cols, rowIdx
			}
		}
	}
	return nil, nil, 0
}

func normalizeHeader(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}
	return true
}

// parseRows converts data rows; lines holds the 1-based file line of each record.
func parseRows(p *Profile, cols colIndex, records [][]string, lines []int) ([]domain.StatementRow, []domain.RowError) {
	var (
		rows []domain.StatementRow
		errs []domain.RowError
	)
	for i, rec := range records {
		line := lines[i]
		if blank(rec) {
			continue
		}
		row, err := parseRow(p, cols, rec)
		if err != nil {
			errs = append(errs, domain.RowError{Line: line, Message: err.Error()})
			continue
		}
		row.Line = line
		rows = append(rows, row)
	}
	return rows, errs
}

func parseRow(p *Profile, cols colIndex, rec []string) (domain.StatementRow, error) {
	var row domain.StatementRow

	date, err := parseDate(cell(rec, cols, p.DateCol))
	if err != nil {
		return row, err
	}
	row.Date = date
	if p.ValueDateCol != "" {
		if s := cell(rec, cols, p.ValueDateCol); s != "" {
			if vd, err := parseDate(s); err == nil {
				row.ValueDate = &vd
			}
		}
	}

	row.Description = cell(rec, cols, p.DescCol)
	if row.Description == "" {
		return row, errors.New("missing description")
	}
	if p.RefCol != "" {
		row.Reference = cell(rec, cols, p.RefCol)
	}

	switch p.AmountMode {
	case amountSplit:
		debit, err := parseAmountOrZero(cell(rec, cols, p.DebitCol))
		if err != nil {
			return row, fmt.Errorf("withdrawal: %w", err)
		}
		credit, err := parseAmountOrZero(cell(rec, cols, p.CreditCol))
		if err != nil {
			return row, fmt.Errorf("deposit: %w", err)
		}
		row.Amount = credit.Sub(debit.Abs())
	default:
		s := cell(rec, cols, p.AmountCol)
		if s == "" {
			return row, errors.New("missing amount")
		}
		amt, err := parseAmount(s)
		if err != nil {
			return row, err
		}
		row.Amount = amt
	}
	if row.Amount.IsZero() {
		return row, errors.New("amount is zero")
	}
	return row, nil
}

func cell(rec []string, cols colIndex, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.New("missing date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return domain.DateOnly(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// parseAmount accepts grouping commas, a currency prefix, parentheses for
// negatives and a trailing Dr/Cr marker.
func parseAmount(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	neg := false
	if strings.HasPrefix(clean, "(") && strings.HasSuffix(clean, ")") {
		neg = true
		clean = strings.Trim(clean, "()")
	}
	upper := strings.ToUpper(clean)
	switch {
	case strings.HasSuffix(upper, "DR"):
		neg = true
		clean = clean[:len(clean)-2]
	case strings.HasSuffix(upper, "CR"):
		clean = clean[:len(clean)-2]
	}
	clean = strings.NewReplacer(",", "", "₹", "", "INR", "", "Rs.", "", " ", "").Replace(clean)

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	if neg {
		d = d.Abs().Neg()
	}
	return d.Round(2), nil
}

func parseAmountOrZero(s string) (decimal.Decimal, error) {
	if s == "" || s == "-" {
		return decimal.Zero, nil
	}
	return parseAmount(s)
}
