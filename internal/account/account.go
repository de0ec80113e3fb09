package account

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the payment state of a payable account.
type Status string

const (
	StatusPendente Status = "PENDENTE"
	StatusPago     Status = "PAGO"
)

// statuses is the closed set of valid values, in declaration order.
var statuses = []Status{StatusPendente, StatusPago}

// ErrNotFound is returned when an account does not exist.
var ErrNotFound = errors.New("account not found")

// InvalidStatusError is returned when a status token is not a member of
// the known status set.
type InvalidStatusError struct {
	Value string
}

func (e *InvalidStatusError) Error() string {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}

	return fmt.Sprintf("invalid status value: '%s'. Allowed values: [%s]",
		e.Value, strings.Join(names, ", "))
}

// ParseStatus resolves a free-text token to its canonical status,
// case-insensitively. The lookup is the single place status membership
// is decided; callers never compare raw strings.
func ParseStatus(value string) (Status, error) {
	for _, s := range statuses {
		if strings.EqualFold(value, string(s)) {
			return s, nil
		}
	}

	return "", &InvalidStatusError{Value: value}
}

// Account represents a persisted payable account.
type Account struct {
	ID          uuid.UUID
	Amount      decimal.Decimal
	DueDate     time.Time
	PaymentDate *time.Time
	Description string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
