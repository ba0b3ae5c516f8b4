package contracts

import (
	"time"

	"Parcelo/internal/domain/bill"
	"Parcelo/internal/domain/creditcard"

	"github.com/shopspring/decimal"
)

type BillCreateRequest struct {
	Name                 string          `json:"name" binding:"required,max=100"`
	ExecutionDate        time.Time       `json:"execution_date" binding:"required"`
	TotalAmount          decimal.Decimal `json:"total_amount" binding:"required"`
	NumberOfInstallments int             `json:"number_of_installments" binding:"omitempty,min=1"`
	Description          string          `json:"description" binding:"omitempty,max=255"`
	IsRecurring          bool            `json:"is_recurring"`
	Category             string          `json:"category" binding:"omitempty,max=100"`
	CreditCardId         string          `json:"credit_card_id" binding:"required"`
}

type BillCreateResponse struct {
	Message string     `json:"message"`
	Bill    *bill.Bill `json:"bill"`
}

type BillSingleResponse struct {
	Bill *bill.Bill `json:"bill"`
}

type BillListResponse struct {
	Bills []*bill.Bill `json:"bills"`
	Total int64        `json:"total"`
}

type InstallmentListResponse struct {
	Installments []*creditcard.Installment `json:"installments"`
	Total        int                       `json:"total"`
}
