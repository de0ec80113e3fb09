package account

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const maxDescriptionLen = 255

var minAmount = decimal.RequireFromString("0.01")

// ValidateImport checks a candidate against the bulk-import rules and
// returns every violation found, in rule order. An empty slice means the
// candidate is valid. All rules are evaluated; validation never stops at
// the first failure, so one row can report several defects at once.
//
// The bulk path deliberately does not constrain due date or payment date
// to the future/past: imported files routinely carry historical rows.
// The interactive rules live in ValidateCreate.
func ValidateImport(p CreateParams) []string {
	var violations []string

	switch {
	case p.Amount == nil:
		violations = append(violations, "Amount is required")
	case p.Amount.LessThan(minAmount):
		violations = append(violations, "Amount must be greater than or equal to 0.01")
	}

	switch {
	case strings.TrimSpace(p.Description) == "":
		violations = append(violations, "Description is required")
	case len(p.Description) > maxDescriptionLen:
		violations = append(violations, "Description must be less than 255 characters")
	}

	if strings.TrimSpace(p.Status) == "" {
		violations = append(violations, "Status is required")
	} else if _, err := ParseStatus(p.Status); err != nil {
		violations = append(violations, err.Error())
	}

	if p.DueDate == nil {
		violations = append(violations, "Due date is required")
	}

	return violations
}

// ValidateCreate checks a candidate against the interactive-create rules:
// everything ValidateImport checks, plus the due date must not be in the
// past and the payment date, when present, must not be in the future.
func ValidateCreate(p CreateParams) []string {
	violations := ValidateImport(p)

	today := toDate(time.Now())

	if p.DueDate != nil && toDate(*p.DueDate).Before(today) {
		violations = append(violations, "Due date must be in the present or future")
	}

	if p.PaymentDate != nil && toDate(*p.PaymentDate).After(today) {
		violations = append(violations, "Payment date must be in the past or present")
	}

	return violations
}

// toDate drops the time-of-day component so rules compare calendar days.
func toDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
