package importer

import (
	"context"
	"strings"

	"github.com/alisson/payable/internal/account"
)

// AccountCreator persists one validated candidate account per call.
type AccountCreator interface {
	CreateFromImport(ctx context.Context, params account.CreateParams) (*account.Account, error)
}

// ValidateFunc applies the bulk-import field rules to one candidate and
// returns every violation found.
type ValidateFunc func(account.CreateParams) []string

type Service struct {
	accounts AccountCreator
	validate ValidateFunc
}

func NewService(accounts AccountCreator) *Service {
	return &Service{
		accounts: accounts,
		validate: account.ValidateImport,
	}
}

// Import drives each record through validation and persistence and fills
// in its outcome fields. Rows are processed strictly in order and in
// isolation: a rejected or failed row is reported on that row alone and
// never stops the remaining rows from being attempted. The returned
// slice has exactly one outcome per input record, in input order.
func (s *Service) Import(ctx context.Context, records []*Record) []*Record {
	for _, rec := range records {
		s.importOne(ctx, rec)
	}

	return records
}

func (s *Service) importOne(ctx context.Context, rec *Record) {
	params := account.CreateParams{
		Amount:      rec.Amount,
		DueDate:     rec.DueDate,
		PaymentDate: rec.PaymentDate,
		Description: rec.Description,
		Status:      rec.Status,
	}

	violations := append([]string{}, rec.parseErrs...)
	violations = append(violations, s.validate(params)...)

	if len(violations) > 0 {
		rec.ImportStatus = ImportError
		rec.ErrorMessage = strings.Join(violations, ". ")

		return
	}

	if _, err := s.accounts.CreateFromImport(ctx, params); err != nil {
		rec.ImportStatus = ImportError
		rec.ErrorMessage = "An unexpected error occurred: " + err.Error()

		return
	}

	rec.ImportStatus = ImportSuccess
	rec.ErrorMessage = ""
}
