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
	"gorm.io/gorm/clause"
)

type CreditCardRepository struct {
	DB *gorm.DB
}

func NewCreditCardRepository(db *gorm.DB) *CreditCardRepository {
	return &CreditCardRepository{DB: db}
}

type creditCardDB struct {
	Id                   string          `gorm:"type:varchar(26);primaryKey"`
	Name                 string          `gorm:"type:varchar(100);not null"`
	CreditLimit          decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	ClosingDay           int             `gorm:"not null"`
	DueDay               int             `gorm:"not null"`
	AllowsPartialPayment bool            `gorm:"not null;default:false"`
	IsActive             bool            `gorm:"not null;default:true"`
	CreatedAt            time.Time       `gorm:"not null"`
	UpdatedAt            time.Time       `gorm:"not null"`
}

func (creditCardDB) TableName() string {
	return "credit_cards"
}

func toDomainCreditCard(ccdb *creditCardDB) (*creditcard.CreditCard, error) {
	id, err := pkg.ParseULID(ccdb.Id)
	if err != nil {
		return nil, err
	}

	return &creditcard.CreditCard{
		Id:                   id,
		Name:                 ccdb.Name,
		CreditLimit:          ccdb.CreditLimit,
		ClosingDay:           ccdb.ClosingDay,
		DueDay:               ccdb.DueDay,
		AllowsPartialPayment: ccdb.AllowsPartialPayment,
		IsActive:             ccdb.IsActive,
		CreatedAt:            ccdb.CreatedAt,
		UpdatedAt:            ccdb.UpdatedAt,
	}, nil
}

func toDBCreditCard(cc *creditcard.CreditCard) *creditCardDB {
	return &creditCardDB{
		Id:                   cc.Id.String(),
		Name:                 cc.Name,
		CreditLimit:          cc.CreditLimit,
		ClosingDay:           cc.ClosingDay,
		DueDay:               cc.DueDay,
		AllowsPartialPayment: cc.AllowsPartialPayment,
		IsActive:             cc.IsActive,
		CreatedAt:            cc.CreatedAt,
		UpdatedAt:            cc.UpdatedAt,
	}
}

func (r *CreditCardRepository) CreateCreditCard(ctx context.Context, card *creditcard.CreditCard) error {
	ccdb := toDBCreditCard(card)
	return dbFrom(ctx, r.DB).Table("credit_cards").Create(ccdb).Error
}

func (r *CreditCardRepository) UpdateCreditCard(ctx context.Context, card *creditcard.CreditCard) error {
	ccdb := toDBCreditCard(card)
	return dbFrom(ctx, r.DB).Model(&creditCardDB{}).Where("id = ?", ccdb.Id).
		Select("*").Omit("id", "created_at").Updates(ccdb).Error
}

func (r *CreditCardRepository) DeleteCreditCard(ctx context.Context, cardID ulid.ULID) error {
	return dbFrom(ctx, r.DB).Where("id = ?", cardID.String()).Delete(&creditCardDB{}).Error
}

func (r *CreditCardRepository) GetCreditCardById(ctx context.Context, cardID ulid.ULID) (*creditcard.CreditCard, error) {
	var ccdb creditCardDB
	err := dbFrom(ctx, r.DB).Where("id = ?", cardID.String()).First(&ccdb).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toDomainCreditCard(&ccdb)
}

// GetCreditCardByIdForUpdate lê o cartão com SELECT ... FOR UPDATE. Só faz
// sentido dentro de uma transação; o lock vive até o commit.
func (r *CreditCardRepository) GetCreditCardByIdForUpdate(ctx context.Context, cardID ulid.ULID) (*creditcard.CreditCard, error) {
	var ccdb creditCardDB
	err := dbFrom(ctx, r.DB).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", cardID.String()).
		First(&ccdb).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toDomainCreditCard(&ccdb)
}

func (r *CreditCardRepository) GetCreditCardByName(ctx context.Context, name string) (*creditcard.CreditCard, error) {
	var ccdb creditCardDB
	err := dbFrom(ctx, r.DB).Where("name = ?", name).First(&ccdb).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toDomainCreditCard(&ccdb)
}

func (r *CreditCardRepository) GetCreditCards(ctx context.Context, pagination *pkg.PaginationParams) ([]*creditcard.CreditCard, int64, error) {
	if pagination == nil {
		pagination = &pkg.PaginationParams{Page: 1, Limit: 10}
	}
	pagination.Normalize()

	baseQuery := dbFrom(ctx, r.DB).Table("credit_cards")

	var total int64
	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []creditCardDB
	err := baseQuery.Order("created_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	cards := make([]*creditcard.CreditCard, 0, len(rows))
	for i := range rows {
		card, err := toDomainCreditCard(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		cards = append(cards, card)
	}
	return cards, total, nil
}
