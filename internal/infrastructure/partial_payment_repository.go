package infrastructure

import (
	"context"
	"errors"
	"time"

	"Parcelo/internal/domain/creditcard"
	"Parcelo/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PartialPaymentRepository struct {
	DB *gorm.DB
}

func NewPartialPaymentRepository(db *gorm.DB) *PartialPaymentRepository {
	return &PartialPaymentRepository{DB: db}
}

type partialPaymentDB struct {
	Id          string          `gorm:"type:varchar(26);primaryKey"`
	InvoiceId   string          `gorm:"type:varchar(26);index;not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Description string          `gorm:"type:varchar(255)"`
	PaymentDate time.Time       `gorm:"not null"`
	CreatedAt   time.Time       `gorm:"not null"`
}

func (partialPaymentDB) TableName() string {
	return "partial_payments"
}

func toDomainPartialPayment(pdb *partialPaymentDB) (*creditcard.PartialPayment, error) {
	id, err := pkg.ParseULID(pdb.Id)
	if err != nil {
		return nil, err
	}
	invid, err := pkg.ParseULID(pdb.InvoiceId)
	if err != nil {
		return nil, err
	}

	return &creditcard.PartialPayment{
		Id:          id,
		InvoiceId:   invid,
		Amount:      pdb.Amount,
		Description: pdb.Description,
		PaymentDate: pdb.PaymentDate,
		CreatedAt:   pdb.CreatedAt,
	}, nil
}

func toDBPartialPayment(p *creditcard.PartialPayment) *partialPaymentDB {
	return &partialPaymentDB{
		Id:          p.Id.String(),
		InvoiceId:   p.InvoiceId.String(),
		Amount:      p.Amount,
		Description: p.Description,
		PaymentDate: p.PaymentDate,
		CreatedAt:   p.CreatedAt,
	}
}

func (r *PartialPaymentRepository) CreatePartialPayment(ctx context.Context, payment *creditcard.PartialPayment) error {
	pdb := toDBPartialPayment(payment)
	return dbFrom(ctx, r.DB).Table("partial_payments").Create(pdb).Error
}

func (r *PartialPaymentRepository) DeletePartialPayment(ctx context.Context, paymentID ulid.ULID) error {
	return dbFrom(ctx, r.DB).Where("id = ?", paymentID.String()).Delete(&partialPaymentDB{}).Error
}

func (r *PartialPaymentRepository) GetPartialPaymentById(ctx context.Context, paymentID ulid.ULID) (*creditcard.PartialPayment, error) {
	var pdb partialPaymentDB
	err := dbFrom(ctx, r.DB).Where("id = ?", paymentID.String()).First(&pdb).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toDomainPartialPayment(&pdb)
}

func (r *PartialPaymentRepository) GetPartialPaymentsByInvoiceId(ctx context.Context, invoiceID ulid.ULID) ([]*creditcard.PartialPayment, error) {
	var rows []partialPaymentDB
	err := dbFrom(ctx, r.DB).
		Where("invoice_id = ?", invoiceID.String()).
		Order("payment_date ASC, created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	payments := make([]*creditcard.PartialPayment, 0, len(rows))
	for i := range rows {
		payment, err := toDomainPartialPayment(&rows[i])
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, nil
}

func (r *PartialPaymentRepository) SumPartialPaymentsByInvoiceId(ctx context.Context, invoiceID ulid.ULID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := dbFrom(ctx, r.DB).Table("partial_payments").
		Select("COALESCE(SUM(amount), 0)").
		Where("invoice_id = ?", invoiceID.String()).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (r *PartialPaymentRepository) SumPartialPaymentsByInvoiceIds(ctx context.Context, invoiceIDs []ulid.ULID) (decimal.Decimal, error) {
	if len(invoiceIDs) == 0 {
		return decimal.Zero, nil
	}

	ids := make([]string, 0, len(invoiceIDs))
	for _, id := range invoiceIDs {
		ids = append(ids, id.String())
	}

	var total decimal.Decimal
	err := dbFrom(ctx, r.DB).Table("partial_payments").
		Select("COALESCE(SUM(amount), 0)").
		Where("invoice_id IN ?", ids).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
