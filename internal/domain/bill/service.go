package bill

import (
	"context"
	"strings"
	"time"

	"Parcelo/internal/domain/creditcard"
	"Parcelo/internal/domain/shared"
	appErrors "Parcelo/internal/errors"
	"Parcelo/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// Service orquestra a criação de contas parceladas: valida o limite do
// cartão, distribui as parcelas pelas faturas via o ciclo de faturamento e
// grava faturas e parcelas em lote, tudo dentro de uma única transação.
type Service struct {
	Repository            Repository
	CardRepository        creditcard.Repository
	CardService           *creditcard.Service
	InvoiceService        *creditcard.InvoiceService
	InvoiceRepository     creditcard.InvoiceRepository
	InstallmentRepository creditcard.InstallmentRepository
	Tx                    shared.TxManager
}

type CreateBillRequest struct {
	Name                 string
	ExecutionDate        time.Time
	TotalAmount          decimal.Decimal
	NumberOfInstallments int
	Description          string
	IsRecurring          bool
	Category             string
	CreditCardId         ulid.ULID
}

func (s *Service) CreateBill(ctx context.Context, req *CreateBillRequest) (*Bill, error) {
	if err := validateBillRequest(req); err != nil {
		return nil, err
	}

	var created *Bill
	err := s.Tx.RunInTx(ctx, func(ctx context.Context) error {
		// trava a linha do cartão: serializa validação de limite e
		// provisionamento de fatura entre requisições concorrentes
		card, err := s.CardRepository.GetCreditCardByIdForUpdate(ctx, req.CreditCardId)
		if err != nil || card == nil {
			return appErrors.ErrCreditCardNotFound.WithError(err)
		}

		if err := s.validateLimit(ctx, card, req.TotalAmount); err != nil {
			return err
		}

		now := time.Now()
		created = &Bill{
			Id:                   pkg.GenerateULIDObject(),
			Name:                 strings.TrimSpace(req.Name),
			ExecutionDate:        req.ExecutionDate,
			TotalAmount:          req.TotalAmount,
			NumberOfInstallments: req.NumberOfInstallments,
			InstallmentAmount:    installmentAmount(req.TotalAmount, req.NumberOfInstallments),
			Description:          strings.TrimSpace(req.Description),
			IsRecurring:          req.IsRecurring,
			Category:             strings.TrimSpace(req.Category),
			CreditCardId:         card.Id,
			CreatedAt:            now,
			UpdatedAt:            now,
		}

		if err := s.Repository.CreateBill(ctx, created); err != nil {
			return appErrors.NewDatabaseError(err)
		}

		return s.generateInstallments(ctx, created, card)
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// UpdateBill remove as parcelas existentes, estorna os totais das faturas e
// regenera tudo como se a conta nunca tivesse existido.
func (s *Service) UpdateBill(ctx context.Context, billID ulid.ULID, req *CreateBillRequest) (*Bill, error) {
	if err := validateBillRequest(req); err != nil {
		return nil, err
	}

	var updated *Bill
	err := s.Tx.RunInTx(ctx, func(ctx context.Context) error {
		existing, err := s.Repository.GetBillById(ctx, billID)
		if err != nil || existing == nil {
			return appErrors.ErrBillNotFound.WithError(err)
		}

		card, err := s.CardRepository.GetCreditCardByIdForUpdate(ctx, req.CreditCardId)
		if err != nil || card == nil {
			return appErrors.ErrCreditCardNotFound.WithError(err)
		}

		if err := s.removeInstallments(ctx, existing.Id); err != nil {
			return err
		}

		if err := s.validateLimit(ctx, card, req.TotalAmount); err != nil {
			return err
		}

		existing.Name = strings.TrimSpace(req.Name)
		existing.ExecutionDate = req.ExecutionDate
		existing.TotalAmount = req.TotalAmount
		existing.NumberOfInstallments = req.NumberOfInstallments
		existing.InstallmentAmount = installmentAmount(req.TotalAmount, req.NumberOfInstallments)
		existing.Description = strings.TrimSpace(req.Description)
		existing.IsRecurring = req.IsRecurring
		existing.Category = strings.TrimSpace(req.Category)
		existing.CreditCardId = card.Id
		existing.UpdatedAt = time.Now()

		if err := s.Repository.UpdateBill(ctx, existing); err != nil {
			return appErrors.NewDatabaseError(err)
		}

		if err := s.generateInstallments(ctx, existing, card); err != nil {
			return err
		}

		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteBill desvincula a conta do cartão: estorna as parcelas das faturas,
// remove-as em lote e apaga a conta.
func (s *Service) DeleteBill(ctx context.Context, billID ulid.ULID) error {
	return s.Tx.RunInTx(ctx, func(ctx context.Context) error {
		existing, err := s.Repository.GetBillById(ctx, billID)
		if err != nil || existing == nil {
			return appErrors.ErrBillNotFound.WithError(err)
		}

		if err := s.removeInstallments(ctx, existing.Id); err != nil {
			return err
		}

		if err := s.Repository.DeleteBillById(ctx, existing.Id); err != nil {
			return appErrors.NewDatabaseError(err)
		}
		return nil
	})
}

func (s *Service) GetBillById(ctx context.Context, billID ulid.ULID) (*Bill, error) {
	existing, err := s.Repository.GetBillById(ctx, billID)
	if err != nil || existing == nil {
		return nil, appErrors.ErrBillNotFound.WithError(err)
	}
	return existing, nil
}

func (s *Service) ListBills(ctx context.Context, pagination *pkg.PaginationParams) ([]*Bill, int64, error) {
	return s.Repository.GetBills(ctx, pagination)
}

func (s *Service) ListInstallments(ctx context.Context, billID ulid.ULID) ([]*creditcard.Installment, error) {
	if _, err := s.GetBillById(ctx, billID); err != nil {
		return nil, err
	}
	installments, err := s.InstallmentRepository.GetInstallmentsByBillId(ctx, billID)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return installments, nil
}

// validateLimit confere o limite uma única vez, antes de qualquer escrita.
func (s *Service) validateLimit(ctx context.Context, card *creditcard.CreditCard, totalAmount decimal.Decimal) error {
	limit, err := s.CardService.GetAvailableLimit(ctx, card.Id)
	if err != nil {
		return err
	}

	if totalAmount.GreaterThan(limit.AvailableLimit) {
		return appErrors.ErrLimitExceeded.WithDetails(map[string]interface{}{
			"credit_card_id":  card.Id.String(),
			"total_amount":    totalAmount.String(),
			"available_limit": limit.AvailableLimit.String(),
		})
	}
	return nil
}

// generateInstallments posiciona cada parcela no ciclo do cartão, acumula o
// valor no total da fatura correspondente (exceto faturas com valor
// absoluto) e grava faturas e parcelas em lote. As faturas tocadas por mais
// de uma parcela são buscadas uma única vez, via cache por mês de
// referência.
func (s *Service) generateInstallments(ctx context.Context, b *Bill, card *creditcard.CreditCard) error {
	invoiceCache := make(map[time.Time]*creditcard.Invoice, b.NumberOfInstallments)
	touched := make([]*creditcard.Invoice, 0, b.NumberOfInstallments)
	installments := make([]*creditcard.Installment, 0, b.NumberOfInstallments)
	now := time.Now()

	for number := 1; number <= b.NumberOfInstallments; number++ {
		placement := creditcard.CalculateCycle(b.ExecutionDate, card.ClosingDay, card.DueDay, number)

		invoice, ok := invoiceCache[placement.ReferenceMonth]
		if !ok {
			var err error
			invoice, err = s.InvoiceService.GetOrCreateInvoice(ctx, card.Id, placement.ReferenceMonth)
			if err != nil {
				return err
			}
			invoiceCache[placement.ReferenceMonth] = invoice
			touched = append(touched, invoice)
		}

		if !invoice.UseAbsoluteValue {
			invoice.TotalAmount = invoice.TotalAmount.Add(b.InstallmentAmount)
			invoice.UpdatedAt = now
		}

		installments = append(installments, &creditcard.Installment{
			Id:                pkg.GenerateULIDObject(),
			BillId:            b.Id,
			CreditCardId:      card.Id,
			InvoiceId:         invoice.Id,
			InstallmentNumber: number,
			Amount:            b.InstallmentAmount,
			DueDate:           placement.DueDate,
			CreatedAt:         now,
		})
	}

	if err := s.InvoiceRepository.SaveInvoices(ctx, touched); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	if err := s.InstallmentRepository.CreateInstallments(ctx, installments); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

// removeInstallments estorna as parcelas da conta nas faturas em que foram
// lançadas (agrupadas por fatura) e as apaga em lote.
func (s *Service) removeInstallments(ctx context.Context, billID ulid.ULID) error {
	existing, err := s.InstallmentRepository.GetInstallmentsByBillId(ctx, billID)
	if err != nil {
		return appErrors.NewDatabaseError(err)
	}
	if len(existing) == 0 {
		return nil
	}

	amountByInvoice := make(map[ulid.ULID]decimal.Decimal)
	order := make([]ulid.ULID, 0)
	for _, installment := range existing {
		if _, ok := amountByInvoice[installment.InvoiceId]; !ok {
			order = append(order, installment.InvoiceId)
		}
		amountByInvoice[installment.InvoiceId] = amountByInvoice[installment.InvoiceId].Add(installment.Amount)
	}

	touched := make([]*creditcard.Invoice, 0, len(order))
	now := time.Now()
	for _, invoiceID := range order {
		invoice, err := s.InvoiceRepository.GetInvoiceById(ctx, invoiceID)
		if err != nil {
			return appErrors.NewDatabaseError(err)
		}
		if invoice == nil || invoice.UseAbsoluteValue {
			continue
		}
		invoice.TotalAmount = invoice.TotalAmount.Sub(amountByInvoice[invoiceID])
		invoice.UpdatedAt = now
		touched = append(touched, invoice)
	}

	if err := s.InvoiceRepository.SaveInvoices(ctx, touched); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	if err := s.InstallmentRepository.DeleteInstallmentsByBillId(ctx, billID); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

// installmentAmount divide o total pelo número de parcelas com
// arredondamento HALF_UP para duas casas. Conta de parcela única mantém o
// total exato, sem divisão.
func installmentAmount(totalAmount decimal.Decimal, installments int) decimal.Decimal {
	if installments <= 1 {
		return totalAmount
	}
	return totalAmount.Div(decimal.NewFromInt(int64(installments))).Round(2)
}

func validateBillRequest(req *CreateBillRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return appErrors.NewValidationError("name", "é obrigatório")
	}
	if req.TotalAmount.Sign() < 0 {
		return appErrors.NewValidationError("total_amount", "não pode ser negativo")
	}
	if req.NumberOfInstallments < 1 {
		return appErrors.NewValidationError("installments", "deve ser no mínimo 1")
	}
	if req.ExecutionDate.IsZero() {
		return appErrors.NewValidationError("execution_date", "é obrigatória")
	}
	if pkg.IsEmptyULID(req.CreditCardId) {
		return appErrors.NewValidationError("credit_card_id", "é obrigatório")
	}
	return nil
}
