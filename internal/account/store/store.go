package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/alisson/payable/internal/account"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanAccount reads an account row from the scanner.
// Expected column order: id, amount, due_date, payment_date, description, status, created_at, updated_at
func scanAccount(s scanner) (*account.Account, error) {
	var acc account.Account

	var statusStr string

	var paymentDate sql.NullTime

	if err := s.Scan(
		&acc.ID, &acc.Amount, &acc.DueDate, &paymentDate,
		&acc.Description, &statusStr, &acc.CreatedAt, &acc.UpdatedAt,
	); err != nil {
		return nil, err
	}

	acc.Status = account.Status(statusStr)

	if paymentDate.Valid {
		acc.PaymentDate = &paymentDate.Time
	}

	return &acc, nil
}

const selectAccountColumns = `
	id, amount, due_date, payment_date, description, status, created_at, updated_at
`

func (s *Store) CreateAccount(ctx context.Context, acc *account.Account) error {
	query := `
		INSERT INTO accounts (amount, due_date, payment_date, description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		acc.Amount,
		acc.DueDate,
		acc.PaymentDate,
		acc.Description,
		acc.Status,
	).Scan(&acc.ID, &acc.CreatedAt, &acc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating account: %w", err)
	}

	return nil
}

func (s *Store) GetAccount(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	query := `SELECT ` + selectAccountColumns + ` FROM accounts WHERE id = $1`

	acc, err := scanAccount(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, account.ErrNotFound
		}

		return nil, fmt.Errorf("getting account: %w", err)
	}

	return acc, nil
}

func (s *Store) UpdateAccount(ctx context.Context, acc *account.Account) error {
	query := `
		UPDATE accounts
		SET amount = $1, due_date = $2, payment_date = $3, description = $4, status = $5, updated_at = NOW()
		WHERE id = $6
	`

	res, err := s.db.ExecContext(ctx, query,
		acc.Amount,
		acc.DueDate,
		acc.PaymentDate,
		acc.Description,
		acc.Status,
		acc.ID,
	)
	if err != nil {
		return fmt.Errorf("updating account: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return account.ErrNotFound
	}

	return nil
}

func (s *Store) ListAccounts(ctx context.Context, filter account.ListFilter) ([]*account.Account, int, error) {
	where := " WHERE 1=1"

	var args []any

	argIdx := 1

	if filter.Description != "" {
		where += fmt.Sprintf(" AND description ILIKE '%%' || $%d || '%%'", argIdx)

		args = append(args, filter.Description)
		argIdx++
	}

	if filter.DueDateStart != nil {
		where += fmt.Sprintf(" AND due_date >= $%d", argIdx)

		args = append(args, *filter.DueDateStart)
		argIdx++
	}

	if filter.DueDateEnd != nil {
		where += fmt.Sprintf(" AND due_date <= $%d", argIdx)

		args = append(args, *filter.DueDateEnd)
		argIdx++
	}

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM accounts"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting accounts: %w", err)
	}

	query := `SELECT ` + selectAccountColumns + ` FROM accounts` + where +
		fmt.Sprintf(" ORDER BY due_date ASC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.Size, filter.Page*filter.Size)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var accs []*account.Account

	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning account: %w", err)
		}

		accs = append(accs, acc)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating account rows: %w", err)
	}

	return accs, total, nil
}

func (s *Store) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM accounts WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting account: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return account.ErrNotFound
	}

	return nil
}

func (s *Store) TotalPaidInPeriod(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM accounts
		WHERE payment_date BETWEEN $1 AND $2
	`

	var total decimal.Decimal
	if err := s.db.QueryRowContext(ctx, query, start, end).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("summing paid accounts: %w", err)
	}

	return total, nil
}
