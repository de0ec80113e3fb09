package importer

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

// resultHeader is the fixed column set of the import-results report.
var resultHeader = []string{
	"amount", "dueDate", "paymentDate", "description", "status", "importStatus", "errorMessage",
}

// Encode writes the annotated records as the downloadable results CSV,
// one row per record in input order. Absent payment dates and absent
// error messages serialize as empty fields. Encode fails only when the
// destination does, never because of record content.
func Encode(w io.Writer, records []*Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(resultHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, rec := range records {
		if err := cw.Write(encodeRecord(rec)); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	return nil
}

func encodeRecord(rec *Record) []string {
	amount := rec.RawAmount
	if rec.Amount != nil {
		amount = formatAmount(*rec.Amount)
	}

	dueDate := rec.RawDueDate
	if rec.DueDate != nil {
		dueDate = rec.DueDate.Format(dateLayout)
	}

	paymentDate := rec.RawPaymentDate
	if rec.PaymentDate != nil {
		paymentDate = rec.PaymentDate.Format(dateLayout)
	}

	return []string{
		amount,
		dueDate,
		paymentDate,
		rec.Description,
		rec.Status,
		string(rec.ImportStatus),
		rec.ErrorMessage,
	}
}

// formatAmount keeps the scale the value was uploaded with: "100.50"
// must come back as "100.50", not "100.5". Decimal's String trims
// trailing zeros, so rows with a fractional exponent are fixed instead.
func formatAmount(d decimal.Decimal) string {
	if d.Exponent() < 0 {
		return d.StringFixed(-d.Exponent())
	}

	return d.String()
}
