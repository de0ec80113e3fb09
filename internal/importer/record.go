package importer

import (
	"time"

	"github.com/shopspring/decimal"
)

// ImportStatus is the per-row outcome of a bulk import.
type ImportStatus string

const (
	ImportSuccess ImportStatus = "SUCCESS"
	ImportError   ImportStatus = "ERROR"
)

// Record is one row of a bulk-import file: the candidate fields decoded
// from the upload plus the outcome fields filled in by Service.Import.
// Exactly one Record exists per data row, in file order.
type Record struct {
	Amount      *decimal.Decimal
	DueDate     *time.Time
	PaymentDate *time.Time
	Description string
	Status      string

	// Raw cell values, kept so rejected rows echo back exactly what
	// was uploaded rather than a reformatted value.
	RawAmount      string
	RawDueDate     string
	RawPaymentDate string

	// parseErrs holds field-level parse failures from decoding. They
	// surface as row-level errors during orchestration; a bad cell never
	// aborts the batch.
	parseErrs []string

	ImportStatus ImportStatus
	ErrorMessage string
}
