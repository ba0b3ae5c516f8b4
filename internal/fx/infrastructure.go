package fx

import (
	"Parcelo/config"
	"Parcelo/internal/domain/bill"
	"Parcelo/internal/domain/creditcard"
	"Parcelo/internal/domain/shared"
	"Parcelo/internal/infrastructure"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

var InfrastructureModule = fx.Module("infrastructure",
	fx.Provide(
		newDatabase,
		newTxManager,
		newCreditCardRepository,
		newInvoiceRepository,
		newInstallmentRepository,
		newPartialPaymentRepository,
		newBillRepository,
	),
)

func newDatabase(cfg *config.Config) (*gorm.DB, error) {
	return infrastructure.NewDb(cfg)
}

func newTxManager(db *gorm.DB) shared.TxManager {
	return infrastructure.NewGormTxManager(db)
}

func newCreditCardRepository(db *gorm.DB) creditcard.Repository {
	return &infrastructure.CreditCardRepository{DB: db}
}

func newInvoiceRepository(db *gorm.DB) creditcard.InvoiceRepository {
	return &infrastructure.InvoiceRepository{DB: db}
}

func newInstallmentRepository(db *gorm.DB) creditcard.InstallmentRepository {
	return &infrastructure.InstallmentRepository{DB: db}
}

func newPartialPaymentRepository(db *gorm.DB) creditcard.PartialPaymentRepository {
	return &infrastructure.PartialPaymentRepository{DB: db}
}

func newBillRepository(db *gorm.DB) bill.Repository {
	return &infrastructure.BillRepository{DB: db}
}
