package contracts

import (
	"Parcelo/internal/domain/creditcard"

	"github.com/shopspring/decimal"
)

type CreditCardCreateRequest struct {
	Name                 string          `json:"name" binding:"required,max=100"`
	CreditLimit          decimal.Decimal `json:"credit_limit" binding:"required"`
	ClosingDay           int             `json:"closing_day" binding:"required,min=1,max=31"`
	DueDay               int             `json:"due_day" binding:"required,min=1,max=31"`
	AllowsPartialPayment bool            `json:"allows_partial_payment"`
}

type CreditCardUpdateRequest struct {
	Name                 *string          `json:"name" binding:"omitempty,max=100"`
	CreditLimit          *decimal.Decimal `json:"credit_limit" binding:"omitempty"`
	ClosingDay           *int             `json:"closing_day" binding:"omitempty,min=1,max=31"`
	DueDay               *int             `json:"due_day" binding:"omitempty,min=1,max=31"`
	AllowsPartialPayment *bool            `json:"allows_partial_payment" binding:"omitempty"`
	IsActive             *bool            `json:"is_active" binding:"omitempty"`
}

type CreditCardCreateResponse struct {
	Message    string                 `json:"message"`
	CreditCard *creditcard.CreditCard `json:"creditCard"`
}

type CreditCardSingleResponse struct {
	CreditCard *creditcard.CreditCard `json:"creditCard"`
}

type CreditCardListResponse struct {
	CreditCards []*creditcard.CreditCard `json:"creditCards"`
	Total       int64                    `json:"total"`
}

type AvailableLimitResponse struct {
	AvailableLimit *creditcard.AvailableLimit `json:"availableLimit"`
}
