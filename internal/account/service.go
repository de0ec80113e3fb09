package account

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=account
type Repository interface {
	CreateAccount(ctx context.Context, acc *Account) error
	GetAccount(ctx context.Context, id uuid.UUID) (*Account, error)
	UpdateAccount(ctx context.Context, acc *Account) error
	ListAccounts(ctx context.Context, filter ListFilter) ([]*Account, int, error)
	DeleteAccount(ctx context.Context, id uuid.UUID) error
	TotalPaidInPeriod(ctx context.Context, start, end time.Time) (decimal.Decimal, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateParams carries an unvalidated candidate account. Pointer fields
// distinguish absent from zero so validation can report "required"
// separately from range violations.
type CreateParams struct {
	Amount      *decimal.Decimal
	DueDate     *time.Time
	PaymentDate *time.Time
	Description string
	Status      string
}

type ListFilter struct {
	Description  string
	DueDateStart *time.Time
	DueDateEnd   *time.Time
	Page         int
	Size         int
}

// ValidationError carries the full list of rule violations for a
// rejected candidate.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Violations, ". ")
}

// Create validates a candidate under the interactive rules and persists it.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Account, error) {
	if violations := ValidateCreate(params); len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	acc, err := fromParams(params)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateAccount(ctx, acc); err != nil {
		return nil, err
	}

	return acc, nil
}

// CreateFromImport persists an already-validated bulk-import candidate.
// The import path runs ValidateImport before calling this, so the
// interactive date rules are intentionally not applied here.
func (s *Service) CreateFromImport(ctx context.Context, params CreateParams) (*Account, error) {
	acc, err := fromParams(params)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateAccount(ctx, acc); err != nil {
		return nil, err
	}

	return acc, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Account, error) {
	return s.repo.GetAccount(ctx, id)
}

// Update replaces an existing account with a validated candidate.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params CreateParams) (*Account, error) {
	if _, err := s.repo.GetAccount(ctx, id); err != nil {
		return nil, err
	}

	if violations := ValidateCreate(params); len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	acc, err := fromParams(params)
	if err != nil {
		return nil, err
	}

	acc.ID = id
	if err := s.repo.UpdateAccount(ctx, acc); err != nil {
		return nil, err
	}

	return acc, nil
}

// UpdateStatus changes only the payment state of an existing account.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*Account, error) {
	parsed, err := ParseStatus(status)
	if err != nil {
		return nil, err
	}

	acc, err := s.repo.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}

	acc.Status = parsed
	if err := s.repo.UpdateAccount(ctx, acc); err != nil {
		return nil, err
	}

	return acc, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Account, int, error) {
	if filter.Page < 0 {
		filter.Page = 0
	}

	if filter.Size <= 0 {
		filter.Size = 20
	}

	return s.repo.ListAccounts(ctx, filter)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetAccount(ctx, id); err != nil {
		return err
	}

	return s.repo.DeleteAccount(ctx, id)
}

// TotalPaid sums account amounts whose payment date falls inside the
// inclusive period. Periods with no payments yield zero.
func (s *Service) TotalPaid(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	total, err := s.repo.TotalPaidInPeriod(ctx, start, end)
	if err != nil {
		return decimal.Zero, fmt.Errorf("total paid in period: %w", err)
	}

	return total, nil
}

// fromParams builds the entity from a validated candidate, normalizing
// the status token to its canonical form.
func fromParams(params CreateParams) (*Account, error) {
	status, err := ParseStatus(params.Status)
	if err != nil {
		return nil, err
	}

	if params.Amount == nil || params.DueDate == nil {
		return nil, fmt.Errorf("candidate missing required fields")
	}

	return &Account{
		Amount:      *params.Amount,
		DueDate:     *params.DueDate,
		PaymentDate: params.PaymentDate,
		Description: params.Description,
		Status:      status,
	}, nil
}
