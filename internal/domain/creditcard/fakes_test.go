package creditcard_test

import (
	"context"
	"time"

	"Parcelo/internal/domain/creditcard"
	"Parcelo/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type fakeCardRepository struct {
	createFn         func(ctx context.Context, card *creditcard.CreditCard) error
	updateFn         func(ctx context.Context, card *creditcard.CreditCard) error
	deleteFn         func(ctx context.Context, cardID ulid.ULID) error
	getByIDFn        func(ctx context.Context, cardID ulid.ULID) (*creditcard.CreditCard, error)
	getByIDLockedFn  func(ctx context.Context, cardID ulid.ULID) (*creditcard.CreditCard, error)
	getByNameFn      func(ctx context.Context, name string) (*creditcard.CreditCard, error)
	listFn           func(ctx context.Context, pagination *pkg.PaginationParams) ([]*creditcard.CreditCard, int64, error)
}

func (f *fakeCardRepository) CreateCreditCard(ctx context.Context, card *creditcard.CreditCard) error {
	if f.createFn != nil {
		return f.createFn(ctx, card)
	}
	return nil
}

func (f *fakeCardRepository) UpdateCreditCard(ctx context.Context, card *creditcard.CreditCard) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, card)
	}
	return nil
}

func (f *fakeCardRepository) DeleteCreditCard(ctx context.Context, cardID ulid.ULID) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, cardID)
	}
	return nil
}

func (f *fakeCardRepository) GetCreditCardById(ctx context.Context, cardID ulid.ULID) (*creditcard.CreditCard, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, cardID)
	}
	return nil, nil
}

func (f *fakeCardRepository) GetCreditCardByIdForUpdate(ctx context.Context, cardID ulid.ULID) (*creditcard.CreditCard, error) {
	if f.getByIDLockedFn != nil {
		return f.getByIDLockedFn(ctx, cardID)
	}
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, cardID)
	}
	return nil, nil
}

func (f *fakeCardRepository) GetCreditCardByName(ctx context.Context, name string) (*creditcard.CreditCard, error) {
	if f.getByNameFn != nil {
		return f.getByNameFn(ctx, name)
	}
	return nil, nil
}

func (f *fakeCardRepository) GetCreditCards(ctx context.Context, pagination *pkg.PaginationParams) ([]*creditcard.CreditCard, int64, error) {
	if f.listFn != nil {
		return f.listFn(ctx, pagination)
	}
	return nil, 0, nil
}

type fakeInvoiceRepository struct {
	createFn          func(ctx context.Context, invoice *creditcard.Invoice) error
	updateFn          func(ctx context.Context, invoice *creditcard.Invoice) error
	saveAllFn         func(ctx context.Context, invoices []*creditcard.Invoice) error
	getByIDFn         func(ctx context.Context, invoiceID ulid.ULID) (*creditcard.Invoice, error)
	getByCardMonthFn  func(ctx context.Context, cardID ulid.ULID, referenceMonth time.Time) (*creditcard.Invoice, error)
	listByCardFn      func(ctx context.Context, cardID ulid.ULID, pagination *pkg.PaginationParams) ([]*creditcard.Invoice, int64, error)
	listOpenByCardFn  func(ctx context.Context, cardID ulid.ULID) ([]*creditcard.Invoice, error)
}

func (f *fakeInvoiceRepository) CreateInvoice(ctx context.Context, invoice *creditcard.Invoice) error {
	if f.createFn != nil {
		return f.createFn(ctx, invoice)
	}
	return nil
}

func (f *fakeInvoiceRepository) UpdateInvoice(ctx context.Context, invoice *creditcard.Invoice) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, invoice)
	}
	return nil
}

func (f *fakeInvoiceRepository) SaveInvoices(ctx context.Context, invoices []*creditcard.Invoice) error {
	if f.saveAllFn != nil {
		return f.saveAllFn(ctx, invoices)
	}
	return nil
}

func (f *fakeInvoiceRepository) GetInvoiceById(ctx context.Context, invoiceID ulid.ULID) (*creditcard.Invoice, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, invoiceID)
	}
	return nil, nil
}

func (f *fakeInvoiceRepository) GetInvoiceByCardAndMonth(ctx context.Context, cardID ulid.ULID, referenceMonth time.Time) (*creditcard.Invoice, error) {
	if f.getByCardMonthFn != nil {
		return f.getByCardMonthFn(ctx, cardID, referenceMonth)
	}
	return nil, nil
}

func (f *fakeInvoiceRepository) GetInvoicesByCreditCardId(ctx context.Context, cardID ulid.ULID, pagination *pkg.PaginationParams) ([]*creditcard.Invoice, int64, error) {
	if f.listByCardFn != nil {
		return f.listByCardFn(ctx, cardID, pagination)
	}
	return nil, 0, nil
}

func (f *fakeInvoiceRepository) GetOpenInvoicesByCreditCardId(ctx context.Context, cardID ulid.ULID) ([]*creditcard.Invoice, error) {
	if f.listOpenByCardFn != nil {
		return f.listOpenByCardFn(ctx, cardID)
	}
	return nil, nil
}

type fakeInstallmentRepository struct {
	createAllFn      func(ctx context.Context, installments []*creditcard.Installment) error
	getByBillFn      func(ctx context.Context, billID ulid.ULID) ([]*creditcard.Installment, error)
	getByInvoiceFn   func(ctx context.Context, invoiceID ulid.ULID) ([]*creditcard.Installment, error)
	sumByInvoicesFn  func(ctx context.Context, invoiceIDs []ulid.ULID) (decimal.Decimal, error)
	deleteByBillFn   func(ctx context.Context, billID ulid.ULID) error
}

func (f *fakeInstallmentRepository) CreateInstallments(ctx context.Context, installments []*creditcard.Installment) error {
	if f.createAllFn != nil {
		return f.createAllFn(ctx, installments)
	}
	return nil
}

func (f *fakeInstallmentRepository) GetInstallmentsByBillId(ctx context.Context, billID ulid.ULID) ([]*creditcard.Installment, error) {
	if f.getByBillFn != nil {
		return f.getByBillFn(ctx, billID)
	}
	return nil, nil
}

func (f *fakeInstallmentRepository) GetInstallmentsByInvoiceId(ctx context.Context, invoiceID ulid.ULID) ([]*creditcard.Installment, error) {
	if f.getByInvoiceFn != nil {
		return f.getByInvoiceFn(ctx, invoiceID)
	}
	return nil, nil
}

func (f *fakeInstallmentRepository) SumInstallmentsByInvoiceIds(ctx context.Context, invoiceIDs []ulid.ULID) (decimal.Decimal, error) {
	if f.sumByInvoicesFn != nil {
		return f.sumByInvoicesFn(ctx, invoiceIDs)
	}
	return decimal.Zero, nil
}

func (f *fakeInstallmentRepository) DeleteInstallmentsByBillId(ctx context.Context, billID ulid.ULID) error {
	if f.deleteByBillFn != nil {
		return f.deleteByBillFn(ctx, billID)
	}
	return nil
}

type fakePartialPaymentRepository struct {
	createFn         func(ctx context.Context, payment *creditcard.PartialPayment) error
	deleteFn         func(ctx context.Context, paymentID ulid.ULID) error
	getByIDFn        func(ctx context.Context, paymentID ulid.ULID) (*creditcard.PartialPayment, error)
	getByInvoiceFn   func(ctx context.Context, invoiceID ulid.ULID) ([]*creditcard.PartialPayment, error)
	sumByInvoiceFn   func(ctx context.Context, invoiceID ulid.ULID) (decimal.Decimal, error)
	sumByInvoicesFn  func(ctx context.Context, invoiceIDs []ulid.ULID) (decimal.Decimal, error)
}

func (f *fakePartialPaymentRepository) CreatePartialPayment(ctx context.Context, payment *creditcard.PartialPayment) error {
	if f.createFn != nil {
		return f.createFn(ctx, payment)
	}
	return nil
}

func (f *fakePartialPaymentRepository) DeletePartialPayment(ctx context.Context, paymentID ulid.ULID) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, paymentID)
	}
	return nil
}

func (f *fakePartialPaymentRepository) GetPartialPaymentById(ctx context.Context, paymentID ulid.ULID) (*creditcard.PartialPayment, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, paymentID)
	}
	return nil, nil
}

func (f *fakePartialPaymentRepository) GetPartialPaymentsByInvoiceId(ctx context.Context, invoiceID ulid.ULID) ([]*creditcard.PartialPayment, error) {
	if f.getByInvoiceFn != nil {
		return f.getByInvoiceFn(ctx, invoiceID)
	}
	return nil, nil
}

func (f *fakePartialPaymentRepository) SumPartialPaymentsByInvoiceId(ctx context.Context, invoiceID ulid.ULID) (decimal.Decimal, error) {
	if f.sumByInvoiceFn != nil {
		return f.sumByInvoiceFn(ctx, invoiceID)
	}
	return decimal.Zero, nil
}

func (f *fakePartialPaymentRepository) SumPartialPaymentsByInvoiceIds(ctx context.Context, invoiceIDs []ulid.ULID) (decimal.Decimal, error) {
	if f.sumByInvoicesFn != nil {
		return f.sumByInvoicesFn(ctx, invoiceIDs)
	}
	return decimal.Zero, nil
}
