package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	enc "github.com/alisson/payable/internal/encoding"
)

// ErrEmptyFile means the upload had no header row to decode.
var ErrEmptyFile = errors.New("CSV file is empty or missing headers")

// MissingColumnError names the first required column absent from the header.
type MissingColumnError struct {
	Name string
}

func (e *MissingColumnError) Error() string {
	return "Missing required column: " + e.Name
}

const (
	colAmount      = "amount"
	colDueDate     = "duedate"
	colPaymentDate = "paymentdate"
	colDescription = "description"
	colStatus      = "status"
)

// requiredColumns is checked in order so the error always names the
// first absent column.
var requiredColumns = []string{colAmount, colDueDate, colPaymentDate, colDescription, colStatus}

const dateLayout = "2006-01-02"

// Decode reads an uploaded CSV stream into one Record per data row,
// preserving row order. Column lookup is by header name: case-insensitive,
// whitespace-trimmed, order-independent, extra columns ignored.
//
// Only structural problems are decode errors: an empty stream, a missing
// required column, or an unreadable/ragged file. A malformed amount or
// date inside a row is recorded on that row and reported as a row-level
// ERROR during orchestration, so one bad cell cannot sink the batch.
func Decode(r io.Reader) ([]*Record, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}

	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var records []*Record

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		if isBlank(row) {
			continue
		}

		records = append(records, decodeRow(cols, row))
	}

	return records, nil
}

// colIndex maps normalized column names to their index in the row.
type colIndex map[string]int

func mapColumns(header []string) (colIndex, error) {
	cols := make(colIndex, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, &MissingColumnError{Name: name}
		}
	}

	return cols, nil
}

func decodeRow(cols colIndex, row []string) *Record {
	rec := &Record{
		RawAmount:      cellValue(row, cols[colAmount]),
		RawDueDate:     cellValue(row, cols[colDueDate]),
		RawPaymentDate: cellValue(row, cols[colPaymentDate]),
		Description:    cellValue(row, cols[colDescription]),
		Status:         cellValue(row, cols[colStatus]),
	}

	if rec.RawAmount != "" {
		amount, err := decimal.NewFromString(rec.RawAmount)
		if err != nil {
			rec.parseErrs = append(rec.parseErrs,
				fmt.Sprintf("Invalid amount: '%s'", rec.RawAmount))
		} else {
			rec.Amount = &amount
		}
	}

	rec.DueDate = parseDate(rec.RawDueDate, "due date", &rec.parseErrs)
	rec.PaymentDate = parseDate(rec.RawPaymentDate, "payment date", &rec.parseErrs)

	return rec
}

// parseDate parses an ISO 8601 calendar date; empty means absent.
func parseDate(s, field string, errs *[]string) *time.Time {
	if s == "" {
		return nil
	}

	t, err := time.Parse(dateLayout, s)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("Invalid %s: '%s' (expected YYYY-MM-DD)", field, s))
		return nil
	}

	return &t
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
