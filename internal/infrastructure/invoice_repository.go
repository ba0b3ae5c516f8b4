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

type InvoiceRepository struct {
	DB *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{DB: db}
}

type invoiceDB struct {
	Id                       string          `gorm:"type:varchar(26);primaryKey"`
	CreditCardId             string          `gorm:"type:varchar(26);index;not null"`
	ReferenceMonth           time.Time       `gorm:"type:date;not null"`
	TotalAmount              decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	PreviousBalance          decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Closed                   bool            `gorm:"not null;default:false"`
	Paid                     bool            `gorm:"not null;default:false"`
	UseAbsoluteValue         bool            `gorm:"not null;default:false"`
	RegisterAvailableLimit   bool            `gorm:"not null;default:false"`
	RegisteredAvailableLimit decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	CreatedAt                time.Time       `gorm:"not null"`
	UpdatedAt                time.Time       `gorm:"not null"`
}

func (invoiceDB) TableName() string {
	return "invoices"
}

func toDomainInvoice(idb *invoiceDB) (*creditcard.Invoice, error) {
	id, err := pkg.ParseULID(idb.Id)
	if err != nil {
		return nil, err
	}
	ccid, err := pkg.ParseULID(idb.CreditCardId)
	if err != nil {
		return nil, err
	}

	return &creditcard.Invoice{
		Id:                       id,
		CreditCardId:             ccid,
		ReferenceMonth:           creditcard.MonthStart(idb.ReferenceMonth),
		TotalAmount:              idb.TotalAmount,
		PreviousBalance:          idb.PreviousBalance,
		Closed:                   idb.Closed,
		Paid:                     idb.Paid,
		UseAbsoluteValue:         idb.UseAbsoluteValue,
		RegisterAvailableLimit:   idb.RegisterAvailableLimit,
		RegisteredAvailableLimit: idb.RegisteredAvailableLimit,
		CreatedAt:                idb.CreatedAt,
		UpdatedAt:                idb.UpdatedAt,
	}, nil
}

func toDBInvoice(inv *creditcard.Invoice) *invoiceDB {
	return &invoiceDB{
		Id:                       inv.Id.String(),
		CreditCardId:             inv.CreditCardId.String(),
		ReferenceMonth:           inv.ReferenceMonth,
		TotalAmount:              inv.TotalAmount,
		PreviousBalance:          inv.PreviousBalance,
		Closed:                   inv.Closed,
		Paid:                     inv.Paid,
		UseAbsoluteValue:         inv.UseAbsoluteValue,
		RegisterAvailableLimit:   inv.RegisterAvailableLimit,
		RegisteredAvailableLimit: inv.RegisteredAvailableLimit,
		CreatedAt:                inv.CreatedAt,
		UpdatedAt:                inv.UpdatedAt,
	}
}

func (r *InvoiceRepository) CreateInvoice(ctx context.Context, invoice *creditcard.Invoice) error {
	idb := toDBInvoice(invoice)
	return dbFrom(ctx, r.DB).Table("invoices").Create(idb).Error
}

func (r *InvoiceRepository) UpdateInvoice(ctx context.Context, invoice *creditcard.Invoice) error {
	idb := toDBInvoice(invoice)
	return dbFrom(ctx, r.DB).Model(&invoiceDB{}).Where("id = ?", idb.Id).
		Select("*").Omit("id", "created_at").Updates(idb).Error
}

func (r *InvoiceRepository) SaveInvoices(ctx context.Context, invoices []*creditcard.Invoice) error {
	for _, invoice := range invoices {
		if err := r.UpdateInvoice(ctx, invoice); err != nil {
			return err
		}
	}
	return nil
}

func (r *InvoiceRepository) GetInvoiceById(ctx context.Context, invoiceID ulid.ULID) (*creditcard.Invoice, error) {
	var idb invoiceDB
	err := dbFrom(ctx, r.DB).Where("id = ?", invoiceID.String()).First(&idb).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toDomainInvoice(&idb)
}

func (r *InvoiceRepository) GetInvoiceByCardAndMonth(ctx context.Context, cardID ulid.ULID, referenceMonth time.Time) (*creditcard.Invoice, error) {
	var idb invoiceDB
	err := dbFrom(ctx, r.DB).
		Where("credit_card_id = ? AND reference_month = ?", cardID.String(), creditcard.MonthStart(referenceMonth)).
		First(&idb).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toDomainInvoice(&idb)
}

func (r *InvoiceRepository) GetInvoicesByCreditCardId(ctx context.Context, cardID ulid.ULID, pagination *pkg.PaginationParams) ([]*creditcard.Invoice, int64, error) {
	query := dbFrom(ctx, r.DB).Table("invoices").Where("credit_card_id = ?", cardID.String())
	return pkg.Paginate[creditcard.Invoice, invoiceDB](query, pagination, "reference_month DESC", toDomainInvoice)
}

func (r *InvoiceRepository) GetOpenInvoicesByCreditCardId(ctx context.Context, cardID ulid.ULID) ([]*creditcard.Invoice, error) {
	var rows []invoiceDB
	err := dbFrom(ctx, r.DB).
		Where("credit_card_id = ? AND closed = ?", cardID.String(), false).
		Order("reference_month ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	invoices := make([]*creditcard.Invoice, 0, len(rows))
	for i := range rows {
		invoice, err := toDomainInvoice(&rows[i])
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, invoice)
	}
	return invoices, nil
}
