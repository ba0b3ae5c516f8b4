package creditcard

import (
	"context"
	"time"

	"Parcelo/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type Repository interface {
	CreateCreditCard(ctx context.Context, card *CreditCard) error
	UpdateCreditCard(ctx context.Context, card *CreditCard) error
	DeleteCreditCard(ctx context.Context, cardID ulid.ULID) error
	GetCreditCardById(ctx context.Context, cardID ulid.ULID) (*CreditCard, error)
	// GetCreditCardByIdForUpdate trava a linha do cartão até o fim da
	// transação corrente, serializando escritas concorrentes por cartão.
	GetCreditCardByIdForUpdate(ctx context.Context, cardID ulid.ULID) (*CreditCard, error)
	GetCreditCardByName(ctx context.Context, name string) (*CreditCard, error)
	GetCreditCards(ctx context.Context, pagination *pkg.PaginationParams) ([]*CreditCard, int64, error)
}

type InvoiceRepository interface {
	CreateInvoice(ctx context.Context, invoice *Invoice) error
	UpdateInvoice(ctx context.Context, invoice *Invoice) error
	SaveInvoices(ctx context.Context, invoices []*Invoice) error
	GetInvoiceById(ctx context.Context, invoiceID ulid.ULID) (*Invoice, error)
	GetInvoiceByCardAndMonth(ctx context.Context, cardID ulid.ULID, referenceMonth time.Time) (*Invoice, error)
	GetInvoicesByCreditCardId(ctx context.Context, cardID ulid.ULID, pagination *pkg.PaginationParams) ([]*Invoice, int64, error)
	GetOpenInvoicesByCreditCardId(ctx context.Context, cardID ulid.ULID) ([]*Invoice, error)
}

type InstallmentRepository interface {
	CreateInstallments(ctx context.Context, installments []*Installment) error
	GetInstallmentsByBillId(ctx context.Context, billID ulid.ULID) ([]*Installment, error)
	GetInstallmentsByInvoiceId(ctx context.Context, invoiceID ulid.ULID) ([]*Installment, error)
	SumInstallmentsByInvoiceIds(ctx context.Context, invoiceIDs []ulid.ULID) (decimal.Decimal, error)
	DeleteInstallmentsByBillId(ctx context.Context, billID ulid.ULID) error
}

type PartialPaymentRepository interface {
	CreatePartialPayment(ctx context.Context, payment *PartialPayment) error
	DeletePartialPayment(ctx context.Context, paymentID ulid.ULID) error
	GetPartialPaymentById(ctx context.Context, paymentID ulid.ULID) (*PartialPayment, error)
	GetPartialPaymentsByInvoiceId(ctx context.Context, invoiceID ulid.ULID) ([]*PartialPayment, error)
	SumPartialPaymentsByInvoiceId(ctx context.Context, invoiceID ulid.ULID) (decimal.Decimal, error)
	SumPartialPaymentsByInvoiceIds(ctx context.Context, invoiceIDs []ulid.ULID) (decimal.Decimal, error)
}
