package creditcard

import (
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type Installment struct {
	Id                ulid.ULID       `gorm:"type:varchar(26);primaryKey" json:"id"`
	BillId            ulid.ULID       `gorm:"type:varchar(26);index:idx_installments_bill_id;uniqueIndex:idx_installments_bill_number;not null" json:"billId"`
	CreditCardId      ulid.ULID       `gorm:"type:varchar(26);index:idx_installments_credit_card_id;not null" json:"creditCardId"`
	InvoiceId         ulid.ULID       `gorm:"type:varchar(26);index:idx_installments_invoice_id;not null" json:"invoiceId"`
	InstallmentNumber int             `gorm:"not null;uniqueIndex:idx_installments_bill_number" json:"installmentNumber"`
	Amount            decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	DueDate           time.Time       `gorm:"type:date;not null" json:"dueDate"`
	CreatedAt         time.Time       `gorm:"autoCreateTime;not null" json:"createdAt"`
}

func (Installment) TableName() string {
	return "installments"
}
