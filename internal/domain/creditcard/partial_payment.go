package creditcard

import (
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type PartialPayment struct {
	Id          ulid.ULID       `gorm:"type:varchar(26);primaryKey" json:"id"`
	InvoiceId   ulid.ULID       `gorm:"type:varchar(26);index:idx_partial_payments_invoice_id;not null" json:"invoiceId"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Description string          `gorm:"type:varchar(255)" json:"description"`
	PaymentDate time.Time       `gorm:"not null" json:"paymentDate"`
	CreatedAt   time.Time       `gorm:"autoCreateTime;not null" json:"createdAt"`
}

func (PartialPayment) TableName() string {
	return "partial_payments"
}
