package account_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/alisson/payable/internal/account"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func validParams() account.CreateParams {
	return account.CreateParams{
		Amount:      dec("100.00"),
		DueDate:     date(2025, 1, 1),
		Description: "Rent",
		Status:      "PENDENTE",
	}
}

func TestValidateImport(t *testing.T) {
	type testCase struct {
		name   string
		modify func(*account.CreateParams)
		want   []string
	}

	tests := []testCase{
		{
			name:   "Valid",
			modify: func(p *account.CreateParams) {},
			want:   nil,
		},
		{
			name:   "MissingAmount",
			modify: func(p *account.CreateParams) { p.Amount = nil },
			want:   []string{"Amount is required"},
		},
		{
			name:   "AmountBelowMinimum",
			modify: func(p *account.CreateParams) { p.Amount = dec("0.00") },
			want:   []string{"Amount must be greater than or equal to 0.01"},
		},
		{
			name:   "NegativeAmount",
			modify: func(p *account.CreateParams) { p.Amount = dec("-5.00") },
			want:   []string{"Amount must be greater than or equal to 0.01"},
		},
		{
			name:   "MissingDescription",
			modify: func(p *account.CreateParams) { p.Description = "  " },
			want:   []string{"Description is required"},
		},
		{
			name:   "MissingStatus",
			modify: func(p *account.CreateParams) { p.Status = "" },
			want:   []string{"Status is required"},
		},
		{
			name:   "UnknownStatus",
			modify: func(p *account.CreateParams) { p.Status = "CANCELADO" },
			want:   []string{"invalid status value: 'CANCELADO'. Allowed values: [PENDENTE, PAGO]"},
		},
		{
			name:   "LowercaseStatusAccepted",
			modify: func(p *account.CreateParams) { p.Status = "pago" },
			want:   nil,
		},
		{
			name:   "MissingDueDate",
			modify: func(p *account.CreateParams) { p.DueDate = nil },
			want:   []string{"Due date is required"},
		},
		{
			name: "PastDueDateAllowedInBulk",
			modify: func(p *account.CreateParams) {
				p.DueDate = date(2000, 1, 1)
			},
			want: nil,
		},
		{
			name: "AllRulesReported",
			modify: func(p *account.CreateParams) {
				p.Amount = nil
				p.Description = ""
				p.Status = ""
				p.DueDate = nil
			},
			want: []string{
				"Amount is required",
				"Description is required",
				"Status is required",
				"Due date is required",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := validParams()
			tt.modify(&params)

			assert.Equal(t, tt.want, account.ValidateImport(params))
		})
	}
}

func TestValidateImport_LongDescriptionMessage(t *testing.T) {
	params := validParams()
	params.Description = string(bytesOf(256, 'x'))

	got := account.ValidateImport(params)
	assert.Equal(t, []string{"Description must be less than 255 characters"}, got)
}

func TestValidateCreate_DateRules(t *testing.T) {
	past := time.Now().AddDate(0, 0, -7)
	future := time.Now().AddDate(0, 0, 7)
	today := time.Now()

	t.Run("PastDueDateRejected", func(t *testing.T) {
		params := validParams()
		params.DueDate = &past

		got := account.ValidateCreate(params)
		assert.Contains(t, got, "Due date must be in the present or future")
	})

	t.Run("TodayDueDateAccepted", func(t *testing.T) {
		params := validParams()
		params.DueDate = &today

		assert.Empty(t, account.ValidateCreate(params))
	})

	t.Run("FuturePaymentDateRejected", func(t *testing.T) {
		params := validParams()
		params.DueDate = &future
		params.PaymentDate = &future

		got := account.ValidateCreate(params)
		assert.Contains(t, got, "Payment date must be in the past or present")
	})

	t.Run("PastPaymentDateAccepted", func(t *testing.T) {
		params := validParams()
		params.DueDate = &future
		params.PaymentDate = &past

		assert.Empty(t, account.ValidateCreate(params))
	})

	// The bulk path must stay relaxed where the interactive path is strict.
	t.Run("BulkAcceptsWhatCreateRejects", func(t *testing.T) {
		params := validParams()
		params.DueDate = &past
		params.PaymentDate = &future

		assert.Empty(t, account.ValidateImport(params))
		assert.Len(t, account.ValidateCreate(params), 2)
	})
}

func bytesOf(n int, b byte) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = b
	}

	return out
}
