package infrastructure

import (
	"context"
	"errors"
	"time"

	"Parcelo/internal/domain/bill"
	"Parcelo/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BillRepository struct {
	DB *gorm.DB
}

func NewBillRepository(db *gorm.DB) *BillRepository {
	return &BillRepository{DB: db}
}

type billDB struct {
	Id                   string          `gorm:"type:varchar(26);primaryKey"`
	Name                 string          `gorm:"type:varchar(100);not null"`
	ExecutionDate        time.Time       `gorm:"not null"`
	TotalAmount          decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	NumberOfInstallments int             `gorm:"not null;default:1"`
	InstallmentAmount    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Description          string          `gorm:"type:varchar(255)"`
	IsRecurring          bool            `gorm:"not null;default:false"`
	Category             string          `gorm:"type:varchar(100)"`
	CreditCardId         string          `gorm:"type:varchar(26);index;not null"`
	CreatedAt            time.Time       `gorm:"not null"`
	UpdatedAt            time.Time       `gorm:"not null"`
}

func (billDB) TableName() string {
	return "bills"
}

func toDomainBill(bdb *billDB) (*bill.Bill, error) {
	id, err := pkg.ParseULID(bdb.Id)
	if err != nil {
		return nil, err
	}
	ccid, err := pkg.ParseULID(bdb.CreditCardId)
	if err != nil {
		return nil, err
	}

	return &bill.Bill{
		Id:                   id,
		Name:                 bdb.Name,
		ExecutionDate:        bdb.ExecutionDate,
		TotalAmount:          bdb.TotalAmount,
		NumberOfInstallments: bdb.NumberOfInstallments,
		InstallmentAmount:    bdb.InstallmentAmount,
		Description:          bdb.Description,
		IsRecurring:          bdb.IsRecurring,
		Category:             bdb.Category,
		CreditCardId:         ccid,
		CreatedAt:            bdb.CreatedAt,
		UpdatedAt:            bdb.UpdatedAt,
	}, nil
}

func toDBBill(b *bill.Bill) *billDB {
	return &billDB{
		Id:                   b.Id.String(),
		Name:                 b.Name,
		ExecutionDate:        b.ExecutionDate,
		TotalAmount:          b.TotalAmount,
		NumberOfInstallments: b.NumberOfInstallments,
		InstallmentAmount:    b.InstallmentAmount,
		Description:          b.Description,
		IsRecurring:          b.IsRecurring,
		Category:             b.Category,
		CreditCardId:         b.CreditCardId.String(),
		CreatedAt:            b.CreatedAt,
		UpdatedAt:            b.UpdatedAt,
	}
}

func (r *BillRepository) CreateBill(ctx context.Context, b *bill.Bill) error {
	bdb := toDBBill(b)
	return dbFrom(ctx, r.DB).Table("bills").Create(bdb).Error
}

func (r *BillRepository) UpdateBill(ctx context.Context, b *bill.Bill) error {
	bdb := toDBBill(b)
	return dbFrom(ctx, r.DB).Model(&billDB{}).Where("id = ?", bdb.Id).
		Select("*").Omit("id", "created_at").Updates(bdb).Error
}

func (r *BillRepository) DeleteBillById(ctx context.Context, billID ulid.ULID) error {
	return dbFrom(ctx, r.DB).Where("id = ?", billID.String()).Delete(&billDB{}).Error
}

func (r *BillRepository) GetBillById(ctx context.Context, billID ulid.ULID) (*bill.Bill, error) {
	var bdb billDB
	err := dbFrom(ctx, r.DB).Where("id = ?", billID.String()).First(&bdb).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toDomainBill(&bdb)
}

func (r *BillRepository) GetBills(ctx context.Context, pagination *pkg.PaginationParams) ([]*bill.Bill, int64, error) {
	query := dbFrom(ctx, r.DB).Table("bills")
	return pkg.Paginate[bill.Bill, billDB](query, pagination, "created_at DESC", toDomainBill)
}
