package contracts

import (
	"Parcelo/internal/domain/creditcard"

	"github.com/shopspring/decimal"
)

type InvoiceTotalUpdateRequest struct {
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	MarkAbsolute bool            `json:"mark_absolute"`
}

type RegisteredLimitRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

type PartialPaymentCreateRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"omitempty,max=255"`
}

type InvoiceSingleResponse struct {
	Invoice *creditcard.Invoice `json:"invoice"`
}

type InvoiceListResponse struct {
	Invoices []*creditcard.Invoice `json:"invoices"`
	Total    int64                 `json:"total"`
}

type InvoiceBalanceResponse struct {
	InvoiceId string          `json:"invoiceId"`
	Balance   decimal.Decimal `json:"balance"`
}

type PartialPaymentCreateResponse struct {
	Message        string                     `json:"message"`
	Payment        *creditcard.PartialPayment `json:"payment"`
	AvailableLimit *creditcard.AvailableLimit `json:"availableLimit"`
}

type PartialPaymentListResponse struct {
	Payments []*creditcard.PartialPayment `json:"payments"`
	Total    int                          `json:"total"`
}
