package creditcard

import (
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type CreditCard struct {
	Id                   ulid.ULID       `gorm:"type:varchar(26);primaryKey" json:"id"`
	Name                 string          `gorm:"type:varchar(100);uniqueIndex:idx_credit_cards_name;not null" json:"name"`
	CreditLimit          decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"creditLimit"`
	ClosingDay           int             `gorm:"not null;check:closing_day >= 1 AND closing_day <= 31" json:"closingDay"`
	DueDay               int             `gorm:"not null;check:due_day >= 1 AND due_day <= 31" json:"dueDay"`
	AllowsPartialPayment bool            `gorm:"not null;default:false" json:"allowsPartialPayment"`
	IsActive             bool            `gorm:"not null;default:true;index:idx_credit_cards_active" json:"isActive"`
	CreatedAt            time.Time       `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt            time.Time       `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (CreditCard) TableName() string {
	return "credit_cards"
}

// AvailableLimit é o resultado derivado do cálculo de limite disponível.
// Não é persistido.
type AvailableLimit struct {
	CreditCardId         ulid.ULID       `json:"creditCardId"`
	CreditLimit          decimal.Decimal `json:"creditLimit"`
	UsedLimit            decimal.Decimal `json:"usedLimit"`
	PartialPaymentsTotal decimal.Decimal `json:"partialPaymentsTotal"`
	AvailableLimit       decimal.Decimal `json:"availableLimit"`
}
