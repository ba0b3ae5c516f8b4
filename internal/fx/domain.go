package fx

import (
	"Parcelo/internal/domain/bill"
	"Parcelo/internal/domain/creditcard"
	"Parcelo/internal/domain/shared"

	"go.uber.org/fx"
)

// DomainModule fornece todos os services do domínio
var DomainModule = fx.Module("domain",
	fx.Provide(
		newCreditCardService,
		newInvoiceService,
		newPartialPaymentService,
		newBillService,
	),
)

func newCreditCardService(
	repo creditcard.Repository,
	invoiceRepo creditcard.InvoiceRepository,
	installmentRepo creditcard.InstallmentRepository,
	paymentRepo creditcard.PartialPaymentRepository,
) *creditcard.Service {
	return &creditcard.Service{
		Repository:               repo,
		InvoiceRepository:        invoiceRepo,
		InstallmentRepository:    installmentRepo,
		PartialPaymentRepository: paymentRepo,
	}
}

func newInvoiceService(
	invoiceRepo creditcard.InvoiceRepository,
	cardRepo creditcard.Repository,
	installmentRepo creditcard.InstallmentRepository,
	paymentRepo creditcard.PartialPaymentRepository,
	tx shared.TxManager,
) *creditcard.InvoiceService {
	return &creditcard.InvoiceService{
		Repository:               invoiceRepo,
		CardRepository:           cardRepo,
		InstallmentRepository:    installmentRepo,
		PartialPaymentRepository: paymentRepo,
		Tx:                       tx,
	}
}

func newPartialPaymentService(
	paymentRepo creditcard.PartialPaymentRepository,
	invoiceRepo creditcard.InvoiceRepository,
	cardSvc *creditcard.Service,
	tx shared.TxManager,
) *creditcard.PartialPaymentService {
	return &creditcard.PartialPaymentService{
		Repository:        paymentRepo,
		InvoiceRepository: invoiceRepo,
		CardService:       cardSvc,
		Tx:                tx,
	}
}

func newBillService(
	repo bill.Repository,
	cardRepo creditcard.Repository,
	cardSvc *creditcard.Service,
	invoiceSvc *creditcard.InvoiceService,
	invoiceRepo creditcard.InvoiceRepository,
	installmentRepo creditcard.InstallmentRepository,
	tx shared.TxManager,
) *bill.Service {
	return &bill.Service{
		Repository:            repo,
		CardRepository:        cardRepo,
		CardService:           cardSvc,
		InvoiceService:        invoiceSvc,
		InvoiceRepository:     invoiceRepo,
		InstallmentRepository: installmentRepo,
		Tx:                    tx,
	}
}
