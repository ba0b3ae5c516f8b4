package infrastructure

import (
	"context"
	"time"

	"Parcelo/internal/domain/creditcard"
	"Parcelo/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InstallmentRepository struct {
	DB *gorm.DB
}

func NewInstallmentRepository(db *gorm.DB) *InstallmentRepository {
	return &InstallmentRepository{DB: db}
}

type installmentDB struct {
	Id                string          `gorm:"type:varchar(26);primaryKey"`
	BillId            string          `gorm:"type:varchar(26);index;not null"`
	CreditCardId      string          `gorm:"type:varchar(26);index;not null"`
	InvoiceId         string          `gorm:"type:varchar(26);index;not null"`
	InstallmentNumber int             `gorm:"not null"`
	Amount            decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	DueDate           time.Time       `gorm:"type:date;not null"`
	CreatedAt         time.Time       `gorm:"not null"`
}

func (installmentDB) TableName() string {
	return "installments"
}

func toDomainInstallment(pdb *installmentDB) (*creditcard.Installment, error) {
	id, err := pkg.ParseULID(pdb.Id)
	if err != nil {
		return nil, err
	}
	bid, err := pkg.ParseULID(pdb.BillId)
	if err != nil {
		return nil, err
	}
	ccid, err := pkg.ParseULID(pdb.CreditCardId)
	if err != nil {
		return nil, err
	}
	invid, err := pkg.ParseULID(pdb.InvoiceId)
	if err != nil {
		return nil, err
	}

	return &creditcard.Installment{
		Id:                id,
		BillId:            bid,
		CreditCardId:      ccid,
		InvoiceId:         invid,
		InstallmentNumber: pdb.InstallmentNumber,
		Amount:            pdb.Amount,
		DueDate:           pdb.DueDate,
		CreatedAt:         pdb.CreatedAt,
	}, nil
}

func toDBInstallment(p *creditcard.Installment) *installmentDB {
	return &installmentDB{
		Id:                p.Id.String(),
		BillId:            p.BillId.String(),
		CreditCardId:      p.CreditCardId.String(),
		InvoiceId:         p.InvoiceId.String(),
		InstallmentNumber: p.InstallmentNumber,
		Amount:            p.Amount,
		DueDate:           p.DueDate,
		CreatedAt:         p.CreatedAt,
	}
}

func (r *InstallmentRepository) CreateInstallments(ctx context.Context, installments []*creditcard.Installment) error {
	if len(installments) == 0 {
		return nil
	}
	rows := make([]*installmentDB, 0, len(installments))
	for _, installment := range installments {
		rows = append(rows, toDBInstallment(installment))
	}
	return dbFrom(ctx, r.DB).Table("installments").Create(rows).Error
}

func (r *InstallmentRepository) GetInstallmentsByBillId(ctx context.Context, billID ulid.ULID) ([]*creditcard.Installment, error) {
	var rows []installmentDB
	err := dbFrom(ctx, r.DB).
		Where("bill_id = ?", billID.String()).
		Order("installment_number ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainInstallments(rows)
}

func (r *InstallmentRepository) GetInstallmentsByInvoiceId(ctx context.Context, invoiceID ulid.ULID) ([]*creditcard.Installment, error) {
	var rows []installmentDB
	err := dbFrom(ctx, r.DB).
		Where("invoice_id = ?", invoiceID.String()).
		Order("due_date ASC, installment_number ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainInstallments(rows)
}

func (r *InstallmentRepository) SumInstallmentsByInvoiceIds(ctx context.Context, invoiceIDs []ulid.ULID) (decimal.Decimal, error) {
	if len(invoiceIDs) == 0 {
		return decimal.Zero, nil
	}

	ids := make([]string, 0, len(invoiceIDs))
	for _, id := range invoiceIDs {
		ids = append(ids, id.String())
	}

	var total decimal.Decimal
	err := dbFrom(ctx, r.DB).Table("installments").
		Select("COALESCE(SUM(amount), 0)").
		Where("invoice_id IN ?", ids).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (r *InstallmentRepository) DeleteInstallmentsByBillId(ctx context.Context, billID ulid.ULID) error {
	return dbFrom(ctx, r.DB).Where("bill_id = ?", billID.String()).Delete(&installmentDB{}).Error
}

func toDomainInstallments(rows []installmentDB) ([]*creditcard.Installment, error) {
	installments := make([]*creditcard.Installment, 0, len(rows))
	for i := range rows {
		installment, err := toDomainInstallment(&rows[i])
		if err != nil {
			return nil, err
		}
		installments = append(installments, installment)
	}
	return installments, nil
}
