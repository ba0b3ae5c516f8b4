package creditcard

import (
	"context"
	"time"

	"Parcelo/internal/domain/shared"
	appErrors "Parcelo/internal/errors"
	"Parcelo/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type Service struct {
	Repository               Repository
	InvoiceRepository        InvoiceRepository
	InstallmentRepository    InstallmentRepository
	PartialPaymentRepository PartialPaymentRepository
}

func (s *Service) CreateCreditCard(ctx context.Context, req *CreateCreditCardRequest) (*CreditCard, error) {
	if err := validateCardRequest(req.Name, req.CreditLimit, req.ClosingDay, req.DueDay); err != nil {
		return nil, err
	}

	name := shared.NormalizeName(req.Name)
	existing, _ := s.Repository.GetCreditCardByName(ctx, name)
	if existing != nil {
		return nil, appErrors.NewConflictError("Cartão de crédito")
	}

	now := time.Now()
	card := &CreditCard{
		Id:                   pkg.GenerateULIDObject(),
		Name:                 name,
		CreditLimit:          req.CreditLimit,
		ClosingDay:           req.ClosingDay,
		DueDay:               req.DueDay,
		AllowsPartialPayment: req.AllowsPartialPayment,
		IsActive:             true,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.Repository.CreateCreditCard(ctx, card); err != nil {
		if shared.IsUniqueConstraintError(err) {
			return nil, appErrors.NewConflictError("Cartão de crédito")
		}
		return nil, appErrors.NewDatabaseError(err)
	}

	return card, nil
}

func (s *Service) UpdateCreditCard(ctx context.Context, cardID ulid.ULID, req *UpdateCreditCardRequest) error {
	card, err := s.GetCreditCardById(ctx, cardID)
	if err != nil {
		return err
	}

	if req.Name != nil {
		name := shared.NormalizeName(*req.Name)
		if name == "" {
			return appErrors.NewValidationError("name", "não pode ser vazio")
		}
		card.Name = name
	}

	if req.CreditLimit != nil {
		if req.CreditLimit.Sign() <= 0 {
			return appErrors.NewValidationError("credit_limit", "deve ser maior que zero")
		}
		card.CreditLimit = *req.CreditLimit
	}

	if req.ClosingDay != nil {
		if *req.ClosingDay < 1 || *req.ClosingDay > 31 {
			return appErrors.NewValidationError("closing_day", "deve estar entre 1 e 31")
		}
		card.ClosingDay = *req.ClosingDay
	}

	if req.DueDay != nil {
		if *req.DueDay < 1 || *req.DueDay > 31 {
			return appErrors.NewValidationError("due_day", "deve estar entre 1 e 31")
		}
		card.DueDay = *req.DueDay
	}

	if req.AllowsPartialPayment != nil {
		card.AllowsPartialPayment = *req.AllowsPartialPayment
	}

	if req.IsActive != nil {
		card.IsActive = *req.IsActive
	}

	card.UpdatedAt = time.Now()

	if err := s.Repository.UpdateCreditCard(ctx, card); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (s *Service) DeleteCreditCard(ctx context.Context, cardID ulid.ULID) error {
	_, err := s.GetCreditCardById(ctx, cardID)
	if err != nil {
		return err
	}

	openInvoices, err := s.InvoiceRepository.GetOpenInvoicesByCreditCardId(ctx, cardID)
	if err != nil {
		return appErrors.NewDatabaseError(err)
	}
	for _, invoice := range openInvoices {
		if invoice.TotalAmount.Sign() > 0 {
			return appErrors.NewValidationError("credit_card", "Cartão possui fatura em aberto, não pode remover")
		}
	}

	if err := s.Repository.DeleteCreditCard(ctx, cardID); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (s *Service) GetCreditCardById(ctx context.Context, cardID ulid.ULID) (*CreditCard, error) {
	card, err := s.Repository.GetCreditCardById(ctx, cardID)
	if err != nil || card == nil {
		return nil, appErrors.ErrCreditCardNotFound.WithError(err)
	}
	return card, nil
}

func (s *Service) ListCreditCards(ctx context.Context, pagination *pkg.PaginationParams) ([]*CreditCard, int64, error) {
	return s.Repository.GetCreditCards(ctx, pagination)
}

// GetAvailableLimit deriva o limite disponível do cartão a partir das
// faturas abertas: limite − parcelas lançadas + pagamentos parciais. Faturas
// fechadas são ignoradas; o saldo delas já foi carregado para o
// previousBalance da fatura seguinte no fechamento. O limite disponível pode
// ultrapassar o limite do cartão quando pagamentos parciais geram crédito.
func (s *Service) GetAvailableLimit(ctx context.Context, cardID ulid.ULID) (*AvailableLimit, error) {
	card, err := s.GetCreditCardById(ctx, cardID)
	if err != nil {
		return nil, err
	}

	openInvoices, err := s.InvoiceRepository.GetOpenInvoicesByCreditCardId(ctx, cardID)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	result := &AvailableLimit{
		CreditCardId:         card.Id,
		CreditLimit:          card.CreditLimit,
		UsedLimit:            decimal.Zero,
		PartialPaymentsTotal: decimal.Zero,
		AvailableLimit:       card.CreditLimit,
	}

	if len(openInvoices) == 0 {
		return result, nil
	}

	invoiceIDs := make([]ulid.ULID, 0, len(openInvoices))
	for _, invoice := range openInvoices {
		invoiceIDs = append(invoiceIDs, invoice.Id)
	}

	usedLimit, err := s.InstallmentRepository.SumInstallmentsByInvoiceIds(ctx, invoiceIDs)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	paymentsTotal, err := s.PartialPaymentRepository.SumPartialPaymentsByInvoiceIds(ctx, invoiceIDs)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	result.UsedLimit = usedLimit
	result.PartialPaymentsTotal = paymentsTotal
	result.AvailableLimit = card.CreditLimit.Sub(usedLimit).Add(paymentsTotal)

	return result, nil
}

func validateCardRequest(name string, creditLimit decimal.Decimal, closingDay, dueDay int) error {
	if shared.NormalizeName(name) == "" {
		return appErrors.NewValidationError("name", "é obrigatório")
	}
	if creditLimit.Sign() <= 0 {
		return appErrors.NewValidationError("credit_limit", "deve ser maior que zero")
	}
	if closingDay < 1 || closingDay > 31 {
		return appErrors.NewValidationError("closing_day", "deve estar entre 1 e 31")
	}
	if dueDay < 1 || dueDay > 31 {
		return appErrors.NewValidationError("due_day", "deve estar entre 1 e 31")
	}
	return nil
}

type CreateCreditCardRequest struct {
	Name                 string
	CreditLimit          decimal.Decimal
	ClosingDay           int
	DueDay               int
	AllowsPartialPayment bool
}

type UpdateCreditCardRequest struct {
	Name                 *string
	CreditLimit          *decimal.Decimal
	ClosingDay           *int
	DueDay               *int
	AllowsPartialPayment *bool
	IsActive             *bool
}
