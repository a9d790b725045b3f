// Package parser turns delimited broker export text into execution records.
// Header names vary wildly between platforms, so columns are resolved by
// case-insensitive substring match rather than exact name.
package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"trade-journal-go/internal/models"
)

// ErrNoValidRows is returned when the input is empty or the required
// columns (instrument, side, price) cannot be resolved from the header.
var ErrNoValidRows = errors.New("no valid rows found")

// Result is the outcome of one parse: the executions in input order plus
// one human-readable warning per skipped row.
type Result struct {
	Executions []models.Execution
	Warnings   []string
}

// columns holds the resolved header index for each recognized field.
// -1 means the column is not present.
type columns struct {
	instrument int
	side       int
	quantity   int
	price      int
	timestamp  int
	commission int
}

// timestampLayouts are tried in order for each row's time field.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"01/02/2006 15:04:05",
	"1/2/2006 3:04:05 PM",
	"01/02/2006 15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Parse reads delimited text with a header row and returns the executions
// it describes. Timestamps without zone information are interpreted in loc.
// Missing required columns or an empty input fail the whole parse; bad rows
// are skipped and reported as warnings.
func Parse(r io.Reader, loc *time.Location) (*Result, error) {
	if loc == nil {
		loc = time.Local
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not read input: %w", err)
	}
	if len(records) < 2 {
		return nil, ErrNoValidRows
	}

	cols, err := resolveColumns(records[0])
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for i, record := range records[1:] {
		rowNum := i + 2 // 1-based, counting the header row

		exec, warn := parseRow(record, cols, loc)
		if warn != "" {
			result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: %s", rowNum, warn))
			continue
		}
		result.Executions = append(result.Executions, exec)
	}

	if len(result.Executions) == 0 {
		return nil, ErrNoValidRows
	}
	return result, nil
}

// resolveColumns maps recognized keywords to header positions. The first
// header containing a keyword wins.
func resolveColumns(header []string) (columns, error) {
	cols := columns{instrument: -1, side: -1, quantity: -1, price: -1, timestamp: -1, commission: -1}

	for i, h := range header {
		name := strings.ToLower(strings.Trim(h, `" `))
		switch {
		case cols.instrument == -1 && (strings.Contains(name, "instrument") || strings.Contains(name, "symbol")):
			cols.instrument = i
		case cols.side == -1 && (strings.Contains(name, "action") || strings.Contains(name, "side")):
			cols.side = i
		case cols.quantity == -1 && (strings.Contains(name, "qty") || strings.Contains(name, "quant")):
			cols.quantity = i
		case cols.commission == -1 && (strings.Contains(name, "comm") || strings.Contains(name, "fee")):
			cols.commission = i
		case cols.price == -1 && strings.Contains(name, "price"):
			cols.price = i
		case cols.timestamp == -1 && (strings.Contains(name, "time") || strings.Contains(name, "date")):
			cols.timestamp = i
		}
	}

	if cols.instrument == -1 || cols.side == -1 || cols.price == -1 {
		return cols, ErrNoValidRows
	}
	return cols, nil
}

// parseRow converts one data record. A non-empty warning means the row must
// be skipped.
func parseRow(record []string, cols columns, loc *time.Location) (models.Execution, string) {
	instrument := field(record, cols.instrument)
	if instrument == "" {
		return models.Execution{}, "missing instrument"
	}

	side, ok := parseSide(field(record, cols.side))
	if !ok {
		return models.Execution{}, fmt.Sprintf("unrecognized side %q", field(record, cols.side))
	}

	price, err := parseNumber(field(record, cols.price))
	if err != nil {
		return models.Execution{}, "missing or invalid price"
	}

	quantity := 1.0
	if cols.quantity != -1 {
		quantity, err = parseNumber(field(record, cols.quantity))
		if err != nil || quantity <= 0 {
			return models.Execution{}, "missing or invalid quantity"
		}
	}

	var timestamp time.Time
	if cols.timestamp != -1 {
		timestamp, err = parseTimestamp(field(record, cols.timestamp), loc)
		if err != nil {
			return models.Execution{}, "unparseable timestamp"
		}
	} else {
		return models.Execution{}, "missing timestamp"
	}

	// Commission is optional; an unparseable value is treated as zero.
	commission := 0.0
	if cols.commission != -1 {
		if c, err := parseNumber(field(record, cols.commission)); err == nil {
			commission = c
		}
	}

	return models.Execution{
		Instrument: instrument,
		Side:       side,
		Quantity:   quantity,
		Price:      price,
		Timestamp:  timestamp,
		Commission: commission,
	}, ""
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.Trim(record[idx], `" `)
}

func parseSide(raw string) (models.Side, bool) {
	s := strings.ToLower(raw)
	switch {
	case strings.Contains(s, "buy"), s == "b", strings.Contains(s, "long"):
		return models.SideBuy, true
	case strings.Contains(s, "sell"), s == "s", strings.Contains(s, "short"):
		return models.SideSell, true
	}
	return "", false
}

// parseNumber strips currency symbols and thousands separators before
// conversion, so "$4,501.25" parses as 4501.25.
func parseNumber(raw string) (float64, error) {
	cleaned := strings.NewReplacer("$", "", ",", "", "(", "-", ")", "").Replace(raw)
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return 0, fmt.Errorf("empty numeric field")
	}
	return strconv.ParseFloat(cleaned, 64)
}

func parseTimestamp(raw string, loc *time.Location) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format %q", raw)
}
