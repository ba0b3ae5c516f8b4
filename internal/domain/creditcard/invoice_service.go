package creditcard

import (
	"context"
	"time"

	"Parcelo/internal/domain/shared"
	appErrors "Parcelo/internal/errors"
	"Parcelo/internal/logger"
	"Parcelo/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type InvoiceService struct {
	Repository               InvoiceRepository
	CardRepository           Repository
	InstallmentRepository    InstallmentRepository
	PartialPaymentRepository PartialPaymentRepository
	Tx                       shared.TxManager
}

// NewInvoice monta uma fatura recém-provisionada para o cartão e mês de
// referência, com totais zerados, aberta e não paga.
func NewInvoice(cardID ulid.ULID, referenceMonth time.Time) *Invoice {
	now := time.Now()
	return &Invoice{
		Id:                       pkg.GenerateULIDObject(),
		CreditCardId:             cardID,
		ReferenceMonth:           MonthStart(referenceMonth),
		TotalAmount:              decimal.Zero,
		PreviousBalance:          decimal.Zero,
		Closed:                   false,
		Paid:                     false,
		UseAbsoluteValue:         false,
		RegisterAvailableLimit:   false,
		RegisteredAvailableLimit: decimal.Zero,
		CreatedAt:                now,
		UpdatedAt:                now,
	}
}

// GetOrCreateInvoice garante a invariante de uma fatura por cartão e mês:
// busca por (cartão, mês de referência) e cria quando ausente. Chamadas
// repetidas com os mesmos argumentos devolvem a mesma fatura; chamadores em
// lote devem memoizar por mês de referência antes de escrever.
func (s *InvoiceService) GetOrCreateInvoice(ctx context.Context, cardID ulid.ULID, referenceMonth time.Time) (*Invoice, error) {
	month := MonthStart(referenceMonth)

	invoice, err := s.Repository.GetInvoiceByCardAndMonth(ctx, cardID, month)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	if invoice != nil {
		return invoice, nil
	}

	invoice = NewInvoice(cardID, month)
	if err := s.Repository.CreateInvoice(ctx, invoice); err != nil {
		if shared.IsUniqueConstraintError(err) {
			// outra requisição provisionou primeiro; a fatura existente vale
			existing, lookupErr := s.Repository.GetInvoiceByCardAndMonth(ctx, cardID, month)
			if lookupErr == nil && existing != nil {
				return existing, nil
			}
		}
		return nil, appErrors.NewDatabaseError(err)
	}

	return invoice, nil
}

func (s *InvoiceService) GetInvoiceById(ctx context.Context, invoiceID ulid.ULID) (*Invoice, error) {
	invoice, err := s.Repository.GetInvoiceById(ctx, invoiceID)
	if err != nil || invoice == nil {
		return nil, appErrors.ErrInvoiceNotFound.WithError(err)
	}
	return invoice, nil
}

// ListInvoiceInstallments lista as parcelas lançadas na fatura, na ordem de
// criação.
func (s *InvoiceService) ListInvoiceInstallments(ctx context.Context, invoiceID ulid.ULID) ([]*Installment, error) {
	if _, err := s.GetInvoiceById(ctx, invoiceID); err != nil {
		return nil, err
	}

	installments, err := s.InstallmentRepository.GetInstallmentsByInvoiceId(ctx, invoiceID)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return installments, nil
}

// GetInvoiceBalance é o saldo corrente da fatura: total lançado menos
// pagamentos parciais. É a mesma fórmula usada no fechamento.
func (s *InvoiceService) GetInvoiceBalance(ctx context.Context, invoiceID ulid.ULID) (decimal.Decimal, error) {
	invoice, err := s.GetInvoiceById(ctx, invoiceID)
	if err != nil {
		return decimal.Zero, err
	}

	payments, err := s.PartialPaymentRepository.SumPartialPaymentsByInvoiceId(ctx, invoiceID)
	if err != nil {
		return decimal.Zero, appErrors.NewDatabaseError(err)
	}

	return invoice.TotalAmount.Sub(payments), nil
}

// CloseInvoice fecha a fatura: aplica os pagamentos parciais, marca paga ou
// não paga conforme o saldo final e carrega o saldo (positivo = dívida,
// negativo = crédito) para o previousBalance da fatura do mês seguinte,
// provisionando-a se necessário.
func (s *InvoiceService) CloseInvoice(ctx context.Context, invoiceID ulid.ULID) error {
	return s.Tx.RunInTx(ctx, func(ctx context.Context) error {
		invoice, err := s.GetInvoiceById(ctx, invoiceID)
		if err != nil {
			return err
		}

		if invoice.Closed {
			return appErrors.ErrInvoiceAlreadyClosed.WithDetails(map[string]interface{}{
				"invoice_id": invoice.Id.String(),
			})
		}

		payments, err := s.PartialPaymentRepository.SumPartialPaymentsByInvoiceId(ctx, invoiceID)
		if err != nil {
			return appErrors.NewDatabaseError(err)
		}

		finalAmount := invoice.TotalAmount.Sub(payments)
		invoice.Paid = finalAmount.Sign() <= 0

		if finalAmount.Sign() != 0 {
			next, err := s.GetOrCreateInvoice(ctx, invoice.CreditCardId, invoice.ReferenceMonth.AddDate(0, 1, 0))
			if err != nil {
				return err
			}
			next.PreviousBalance = next.PreviousBalance.Add(finalAmount)
			next.UpdatedAt = time.Now()
			if err := s.Repository.UpdateInvoice(ctx, next); err != nil {
				return appErrors.NewDatabaseError(err)
			}
		}

		invoice.Closed = true
		invoice.UpdatedAt = time.Now()
		if err := s.Repository.UpdateInvoice(ctx, invoice); err != nil {
			return appErrors.NewDatabaseError(err)
		}

		return nil
	})
}

// AutoCloseIfNeeded fecha as faturas abertas cuja data de fechamento já
// passou. Falhas individuais são registradas e não interrompem o lote.
func (s *InvoiceService) AutoCloseIfNeeded(ctx context.Context, invoices []*Invoice) {
	today := time.Now()
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	for _, invoice := range invoices {
		if invoice.Closed {
			continue
		}

		card, err := s.CardRepository.GetCreditCardById(ctx, invoice.CreditCardId)
		if err != nil || card == nil {
			logger.Warn().
				Err(err).
				Str("invoice_id", invoice.Id.String()).
				Str("credit_card_id", invoice.CreditCardId.String()).
				Msg("Fechamento automático: cartão da fatura não encontrado")
			continue
		}

		closingDate := invoice.ClosingDate(card.ClosingDay)
		if today.Before(closingDate) {
			continue
		}

		if err := s.CloseInvoice(ctx, invoice.Id); err != nil {
			logger.Warn().
				Err(err).
				Str("invoice_id", invoice.Id.String()).
				Msg("Fechamento automático: falha ao fechar fatura")
		}
	}
}

// ListInvoices lista as faturas do cartão. A leitura dispara o fechamento
// oportunista das faturas vencidas antes de paginar.
func (s *InvoiceService) ListInvoices(ctx context.Context, cardID ulid.ULID, pagination *pkg.PaginationParams) ([]*Invoice, int64, error) {
	card, err := s.CardRepository.GetCreditCardById(ctx, cardID)
	if err != nil || card == nil {
		return nil, 0, appErrors.ErrCreditCardNotFound.WithError(err)
	}

	open, err := s.Repository.GetOpenInvoicesByCreditCardId(ctx, cardID)
	if err != nil {
		return nil, 0, appErrors.NewDatabaseError(err)
	}
	s.AutoCloseIfNeeded(ctx, open)

	return s.Repository.GetInvoicesByCreditCardId(ctx, cardID, pagination)
}

// UpdateInvoiceTotal sobrescreve o total de uma fatura que usa valor
// absoluto. Faturas sem valor absoluto recalculam o total automaticamente e
// rejeitam a edição.
func (s *InvoiceService) UpdateInvoiceTotal(ctx context.Context, invoiceID ulid.ULID, amount decimal.Decimal) error {
	invoice, err := s.GetInvoiceById(ctx, invoiceID)
	if err != nil {
		return err
	}

	if invoice.Closed {
		return appErrors.ErrInvoiceClosed
	}

	if !invoice.UseAbsoluteValue {
		return appErrors.ErrInvalidState.WithDetails(map[string]interface{}{
			"invoice_id": invoice.Id.String(),
			"reason":     "fatura não usa valor absoluto",
		})
	}

	if amount.Sign() < 0 {
		return appErrors.NewValidationError("amount", "não pode ser negativo")
	}

	invoice.TotalAmount = amount
	invoice.UpdatedAt = time.Now()
	if err := s.Repository.UpdateInvoice(ctx, invoice); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

// MarkAbsoluteValue congela o total da fatura, impedindo o recálculo
// automático feito pelo orquestrador de parcelas.
func (s *InvoiceService) MarkAbsoluteValue(ctx context.Context, invoiceID ulid.ULID, amount decimal.Decimal) error {
	invoice, err := s.GetInvoiceById(ctx, invoiceID)
	if err != nil {
		return err
	}

	if invoice.Closed {
		return appErrors.ErrInvoiceClosed
	}

	if amount.Sign() < 0 {
		return appErrors.NewValidationError("amount", "não pode ser negativo")
	}

	invoice.UseAbsoluteValue = true
	invoice.TotalAmount = amount
	invoice.UpdatedAt = time.Now()
	if err := s.Repository.UpdateInvoice(ctx, invoice); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

// RegisterAvailableLimit registra um limite disponível de referência em uma
// fatura fechada, tornando-a a nova linha de base do cálculo de limite.
func (s *InvoiceService) RegisterAvailableLimit(ctx context.Context, invoiceID ulid.ULID, amount decimal.Decimal) error {
	invoice, err := s.GetInvoiceById(ctx, invoiceID)
	if err != nil {
		return err
	}

	if !invoice.Closed {
		return appErrors.ErrInvalidState.WithDetails(map[string]interface{}{
			"invoice_id": invoice.Id.String(),
			"reason":     "limite só pode ser registrado em fatura fechada",
		})
	}

	if amount.Sign() < 0 {
		return appErrors.NewValidationError("amount", "não pode ser negativo")
	}

	invoice.RegisterAvailableLimit = true
	invoice.RegisteredAvailableLimit = amount
	invoice.UpdatedAt = time.Now()
	if err := s.Repository.UpdateInvoice(ctx, invoice); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}
