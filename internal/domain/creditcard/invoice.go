package creditcard

import (
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type Invoice struct {
	Id                       ulid.ULID       `gorm:"type:varchar(26);primaryKey" json:"id"`
	CreditCardId             ulid.ULID       `gorm:"type:varchar(26);uniqueIndex:idx_invoices_card_month;not null" json:"creditCardId"`
	ReferenceMonth           time.Time       `gorm:"type:date;uniqueIndex:idx_invoices_card_month;not null" json:"referenceMonth"`
	TotalAmount              decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"totalAmount"`
	PreviousBalance          decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"previousBalance"`
	Closed                   bool            `gorm:"not null;default:false;index:idx_invoices_closed" json:"closed"`
	Paid                     bool            `gorm:"not null;default:false" json:"paid"`
	UseAbsoluteValue         bool            `gorm:"not null;default:false" json:"useAbsoluteValue"`
	RegisterAvailableLimit   bool            `gorm:"not null;default:false" json:"registerAvailableLimit"`
	RegisteredAvailableLimit decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"registeredAvailableLimit"`
	CreatedAt                time.Time       `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt                time.Time       `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (Invoice) TableName() string {
	return "invoices"
}

func (i *Invoice) IsOpen() bool {
	return !i.Closed
}

// ClosingDate é o dia de fechamento do cartão aplicado ao mês de
// referência da fatura, com clamp para meses curtos.
func (i *Invoice) ClosingDate(closingDay int) time.Time {
	return dateWithDay(i.ReferenceMonth.Year(), i.ReferenceMonth.Month(), closingDay)
}
