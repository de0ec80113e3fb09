package account

import (
	"time"

	"github.com/google/uuid"

	"github.com/alisson/payable/internal/account"
)

const dateLayout = time.DateOnly

// accountResponse serializes amounts and calendar dates as their
// canonical text forms so clients see the original decimal scale.
type accountResponse struct {
	ID          uuid.UUID `json:"id"`
	Amount      string    `json:"amount"`
	DueDate     string    `json:"dueDate"`
	PaymentDate string    `json:"paymentDate,omitempty"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type pageResponse struct {
	Content       []accountResponse `json:"content"`
	Page          int               `json:"page"`
	Size          int               `json:"size"`
	TotalElements int               `json:"totalElements"`
}

type totalPaidResponse struct {
	TotalPaid string `json:"totalPaid"`
}

func toResponse(acc *account.Account) accountResponse {
	resp := accountResponse{
		ID:          acc.ID,
		Amount:      acc.Amount.String(),
		DueDate:     acc.DueDate.Format(dateLayout),
		Description: acc.Description,
		Status:      string(acc.Status),
		CreatedAt:   acc.CreatedAt,
	}

	if acc.PaymentDate != nil {
		resp.PaymentDate = acc.PaymentDate.Format(dateLayout)
	}

	return resp
}

func toResponseList(accs []*account.Account) []accountResponse {
	responses := make([]accountResponse, 0, len(accs))
	for _, acc := range accs {
		responses = append(responses, toResponse(acc))
	}

	return responses
}
