package bill

import (
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type Bill struct {
	Id                   ulid.ULID       `gorm:"type:varchar(26);primaryKey" json:"id"`
	Name                 string          `gorm:"type:varchar(100);not null" json:"name"`
	ExecutionDate        time.Time       `gorm:"not null" json:"executionDate"`
	TotalAmount          decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"totalAmount"`
	NumberOfInstallments int             `gorm:"not null;default:1;check:number_of_installments >= 1" json:"numberOfInstallments"`
	InstallmentAmount    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"installmentAmount"`
	Description          string          `gorm:"type:varchar(255)" json:"description"`
	IsRecurring          bool            `gorm:"not null;default:false" json:"isRecurring"`
	Category             string          `gorm:"type:varchar(100)" json:"category"`
	CreditCardId         ulid.ULID       `gorm:"type:varchar(26);index:idx_bills_credit_card_id;not null" json:"creditCardId"`
	CreatedAt            time.Time       `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt            time.Time       `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (Bill) TableName() string {
	return "bills"
}
