package creditcard

import (
	"context"
	"strings"
	"time"

	"Parcelo/internal/domain/shared"
	appErrors "Parcelo/internal/errors"
	"Parcelo/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type PartialPaymentService struct {
	Repository        PartialPaymentRepository
	InvoiceRepository InvoiceRepository
	CardService       *Service
	Tx                shared.TxManager
}

type RegisterPartialPaymentRequest struct {
	Amount      decimal.Decimal
	Description string
}

// RegisterPartialPayment registra um pagamento parcial contra uma fatura
// aberta de um cartão que permite pagamento parcial. O valor pode exceder o
// saldo da fatura, gerando crédito. A data do pagamento é atribuída no
// momento do registro. Devolve também o limite disponível recalculado.
func (s *PartialPaymentService) RegisterPartialPayment(ctx context.Context, invoiceID ulid.ULID, req *RegisterPartialPaymentRequest) (*PartialPayment, *AvailableLimit, error) {
	if req.Amount.Sign() <= 0 {
		return nil, nil, appErrors.NewValidationError("amount", "deve ser maior que zero")
	}

	invoice, err := s.InvoiceRepository.GetInvoiceById(ctx, invoiceID)
	if err != nil || invoice == nil {
		return nil, nil, appErrors.ErrInvoiceNotFound.WithError(err)
	}

	card, err := s.CardService.GetCreditCardById(ctx, invoice.CreditCardId)
	if err != nil {
		return nil, nil, err
	}

	if !card.AllowsPartialPayment {
		return nil, nil, appErrors.ErrPartialPaymentNotAllowed.WithDetails(map[string]interface{}{
			"credit_card_id": card.Id.String(),
		})
	}

	if invoice.Closed {
		return nil, nil, appErrors.ErrInvoiceClosed.WithDetails(map[string]interface{}{
			"invoice_id": invoice.Id.String(),
		})
	}

	now := time.Now()
	payment := &PartialPayment{
		Id:          pkg.GenerateULIDObject(),
		InvoiceId:   invoice.Id,
		Amount:      req.Amount,
		Description: strings.TrimSpace(req.Description),
		PaymentDate: now,
		CreatedAt:   now,
	}

	err = s.Tx.RunInTx(ctx, func(ctx context.Context) error {
		return s.Repository.CreatePartialPayment(ctx, payment)
	})
	if err != nil {
		return nil, nil, appErrors.NewDatabaseError(err)
	}

	limit, err := s.CardService.GetAvailableLimit(ctx, card.Id)
	if err != nil {
		return nil, nil, err
	}

	return payment, limit, nil
}

// DeletePartialPayment remove um pagamento parcial enquanto a fatura dele
// ainda está aberta. Pagamentos de faturas fechadas são imutáveis.
func (s *PartialPaymentService) DeletePartialPayment(ctx context.Context, paymentID ulid.ULID) error {
	payment, err := s.Repository.GetPartialPaymentById(ctx, paymentID)
	if err != nil || payment == nil {
		return appErrors.ErrPartialPaymentNotFound.WithError(err)
	}

	invoice, err := s.InvoiceRepository.GetInvoiceById(ctx, payment.InvoiceId)
	if err != nil || invoice == nil {
		return appErrors.ErrInvoiceNotFound.WithError(err)
	}

	if invoice.Closed {
		return appErrors.ErrInvoiceClosed.WithDetails(map[string]interface{}{
			"invoice_id": invoice.Id.String(),
		})
	}

	err = s.Tx.RunInTx(ctx, func(ctx context.Context) error {
		return s.Repository.DeletePartialPayment(ctx, paymentID)
	})
	if err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (s *PartialPaymentService) ListPartialPayments(ctx context.Context, invoiceID ulid.ULID) ([]*PartialPayment, error) {
	invoice, err := s.InvoiceRepository.GetInvoiceById(ctx, invoiceID)
	if err != nil || invoice == nil {
		return nil, appErrors.ErrInvoiceNotFound.WithError(err)
	}

	payments, err := s.Repository.GetPartialPaymentsByInvoiceId(ctx, invoiceID)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return payments, nil
}
