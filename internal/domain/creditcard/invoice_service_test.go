package creditcard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"Parcelo/internal/domain/creditcard"
	"Parcelo/internal/domain/shared"
	appErrors "Parcelo/internal/errors"
	"Parcelo/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

func march2025() time.Time {
	return time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
}

func TestGetOrCreateInvoiceReturnsExisting(t *testing.T) {
	t.Parallel()

	cardID := pkg.GenerateULIDObject()
	existing := creditcard.NewInvoice(cardID, march2025())

	created := false
	svc := &creditcard.InvoiceService{
		Repository: &fakeInvoiceRepository{
			getByCardMonthFn: func(ctx context.Context, id ulid.ULID, month time.Time) (*creditcard.Invoice, error) {
				return existing, nil
			},
			createFn: func(ctx context.Context, invoice *creditcard.Invoice) error {
				created = true
				return nil
			},
		},
		Tx: shared.NoopTxManager{},
	}

	got, err := svc.GetOrCreateInvoice(context.Background(), cardID, march2025())
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if got.Id != existing.Id {
		t.Errorf("fatura devolvida %s, esperado a existente %s", got.Id, existing.Id)
	}
	if created {
		t.Error("não deveria criar fatura quando já existe")
	}
}

func TestGetOrCreateInvoiceProvisionsWhenAbsent(t *testing.T) {
	t.Parallel()

	cardID := pkg.GenerateULIDObject()

	var created *creditcard.Invoice
	svc := &creditcard.InvoiceService{
		Repository: &fakeInvoiceRepository{
			createFn: func(ctx context.Context, invoice *creditcard.Invoice) error {
				created = invoice
				return nil
			},
		},
		Tx: shared.NoopTxManager{},
	}

	// data no meio do mês normaliza para o primeiro dia
	got, err := svc.GetOrCreateInvoice(context.Background(), cardID, time.Date(2025, time.March, 15, 10, 30, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if created == nil {
		t.Fatal("fatura deveria ter sido criada")
	}
	if !got.ReferenceMonth.Equal(march2025()) {
		t.Errorf("ReferenceMonth = %v, esperado %v", got.ReferenceMonth, march2025())
	}
	if !got.TotalAmount.IsZero() || !got.PreviousBalance.IsZero() {
		t.Error("fatura nova deveria nascer com totais zerados")
	}
	if got.Closed || got.Paid {
		t.Error("fatura nova deveria nascer aberta e não paga")
	}
}

func TestListInvoiceInstallments(t *testing.T) {
	t.Parallel()

	cardID := pkg.GenerateULIDObject()
	invoice := creditcard.NewInvoice(cardID, march2025())
	stored := []*creditcard.Installment{
		{Id: pkg.GenerateULIDObject(), InvoiceId: invoice.Id, Amount: decimal.RequireFromString("250.00"), InstallmentNumber: 1},
		{Id: pkg.GenerateULIDObject(), InvoiceId: invoice.Id, Amount: decimal.RequireFromString("99.90"), InstallmentNumber: 3},
	}

	svc := &creditcard.InvoiceService{
		Repository: &fakeInvoiceRepository{
			getByIDFn: func(ctx context.Context, id ulid.ULID) (*creditcard.Invoice, error) {
				if id == invoice.Id {
					return invoice, nil
				}
				return nil, nil
			},
		},
		InstallmentRepository: &fakeInstallmentRepository{
			getByInvoiceFn: func(ctx context.Context, id ulid.ULID) ([]*creditcard.Installment, error) {
				return stored, nil
			},
		},
		Tx: shared.NoopTxManager{},
	}

	got, err := svc.ListInvoiceInstallments(context.Background(), invoice.Id)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("esperava 2 parcelas, recebeu %d", len(got))
	}

	_, err = svc.ListInvoiceInstallments(context.Background(), pkg.GenerateULIDObject())
	appErr, ok := appErrors.AsAppError(err)
	if !ok || appErr.Code != appErrors.ErrInvoiceNotFound.Code {
		t.Errorf("fatura inexistente deveria devolver %s, recebeu %v", appErrors.ErrInvoiceNotFound.Code, err)
	}
}

func TestGetOrCreateInvoiceRecoversFromConcurrentCreate(t *testing.T) {
	t.Parallel()

	cardID := pkg.GenerateULIDObject()
	winner := creditcard.NewInvoice(cardID, march2025())

	lookups := 0
	svc := &creditcard.InvoiceService{
		Repository: &fakeInvoiceRepository{
			getByCardMonthFn: func(ctx context.Context, id ulid.ULID, month time.Time) (*creditcard.Invoice, error) {
				lookups++
				if lookups == 1 {
					return nil, nil
				}
				return winner, nil
			},
			createFn: func(ctx context.Context, invoice *creditcard.Invoice) error {
				return errors.New(`ERROR: duplicate key value violates unique constraint "idx_invoices_card_month" (SQLSTATE 23505)`)
			},
		},
		Tx: shared.NoopTxManager{},
	}

	got, err := svc.GetOrCreateInvoice(context.Background(), cardID, march2025())
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if got.Id != winner.Id {
		t.Errorf("deveria devolver a fatura criada pela requisição concorrente")
	}
}

type closeFixture struct {
	invoice *creditcard.Invoice
	next    *creditcard.Invoice
	updated []*creditcard.Invoice
	svc     *creditcard.InvoiceService
}

func newCloseFixture(t *testing.T, total, payments string) *closeFixture {
	t.Helper()

	cardID := pkg.GenerateULIDObject()
	invoice := creditcard.NewInvoice(cardID, march2025())
	invoice.TotalAmount = decimal.RequireFromString(total)

	f := &closeFixture{invoice: invoice}
	f.svc = &creditcard.InvoiceService{
		Repository: &fakeInvoiceRepository{
			getByIDFn: func(ctx context.Context, invoiceID ulid.ULID) (*creditcard.Invoice, error) {
				if invoiceID == invoice.Id {
					return invoice, nil
				}
				return nil, nil
			},
			getByCardMonthFn: func(ctx context.Context, id ulid.ULID, month time.Time) (*creditcard.Invoice, error) {
				if f.next != nil && f.next.ReferenceMonth.Equal(month) {
					return f.next, nil
				}
				return nil, nil
			},
			createFn: func(ctx context.Context, inv *creditcard.Invoice) error {
				f.next = inv
				return nil
			},
			updateFn: func(ctx context.Context, inv *creditcard.Invoice) error {
				f.updated = append(f.updated, inv)
				return nil
			},
		},
		PartialPaymentRepository: &fakePartialPaymentRepository{
			sumByInvoiceFn: func(ctx context.Context, invoiceID ulid.ULID) (decimal.Decimal, error) {
				return decimal.RequireFromString(payments), nil
			},
		},
		Tx: shared.NoopTxManager{},
	}
	return f
}

func TestCloseInvoiceWithDebtCarriesForward(t *testing.T) {
	t.Parallel()

	f := newCloseFixture(t, "1000.00", "400.00")

	if err := f.svc.CloseInvoice(context.Background(), f.invoice.Id); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	if !f.invoice.Closed {
		t.Error("fatura deveria estar fechada")
	}
	if f.invoice.Paid {
		t.Error("fatura com dívida não deveria ficar marcada como paga")
	}
	if f.next == nil {
		t.Fatal("fatura do mês seguinte deveria ter sido provisionada")
	}
	want := decimal.RequireFromString("600.00")
	if !f.next.PreviousBalance.Equal(want) {
		t.Errorf("PreviousBalance da próxima = %s, esperado %s", f.next.PreviousBalance, want)
	}
	if !f.next.ReferenceMonth.Equal(march2025().AddDate(0, 1, 0)) {
		t.Errorf("próxima fatura em %v, esperado abril", f.next.ReferenceMonth)
	}
}

func TestCloseInvoiceOverpaidCarriesCredit(t *testing.T) {
	t.Parallel()

	// fatura de 1000 com 1500 pagos: paga, e -500 de crédito vai adiante
	f := newCloseFixture(t, "1000.00", "1500.00")

	if err := f.svc.CloseInvoice(context.Background(), f.invoice.Id); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	if !f.invoice.Paid {
		t.Error("fatura paga em excesso deveria ficar marcada como paga")
	}
	if f.next == nil {
		t.Fatal("crédito deveria ser carregado para a fatura seguinte")
	}
	want := decimal.RequireFromString("-500.00")
	if !f.next.PreviousBalance.Equal(want) {
		t.Errorf("PreviousBalance da próxima = %s, esperado %s", f.next.PreviousBalance, want)
	}
}

func TestCloseInvoiceExactPaymentCarriesNothing(t *testing.T) {
	t.Parallel()

	f := newCloseFixture(t, "1000.00", "1000.00")

	if err := f.svc.CloseInvoice(context.Background(), f.invoice.Id); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	if !f.invoice.Paid {
		t.Error("fatura quitada deveria ficar marcada como paga")
	}
	if f.next != nil {
		t.Error("saldo zero não deveria provisionar fatura seguinte")
	}
}

func TestCloseInvoiceAlreadyClosed(t *testing.T) {
	t.Parallel()

	f := newCloseFixture(t, "1000.00", "0")
	f.invoice.Closed = true

	err := f.svc.CloseInvoice(context.Background(), f.invoice.Id)
	if err == nil {
		t.Fatal("esperado erro de fatura já fechada")
	}

	appErr, ok := appErrors.AsAppError(err)
	if !ok || appErr.Code != appErrors.ErrInvoiceAlreadyClosed.Code {
		t.Errorf("erro = %v, esperado %s", err, appErrors.ErrInvoiceAlreadyClosed.Code)
	}
}

func TestAutoCloseSkipsFutureAndContinuesOnFailure(t *testing.T) {
	t.Parallel()

	card := newTestCard("1000.00")
	past := creditcard.NewInvoice(card.Id, march2025())
	past.TotalAmount = decimal.RequireFromString("100.00")
	future := creditcard.NewInvoice(card.Id, creditcard.MonthStart(time.Now()).AddDate(0, 2, 0))

	broken := creditcard.NewInvoice(card.Id, march2025().AddDate(0, -1, 0))

	updates := map[ulid.ULID]int{}
	svc := &creditcard.InvoiceService{
		Repository: &fakeInvoiceRepository{
			getByIDFn: func(ctx context.Context, invoiceID ulid.ULID) (*creditcard.Invoice, error) {
				switch invoiceID {
				case past.Id:
					return past, nil
				case future.Id:
					return future, nil
				case broken.Id:
					return nil, errors.New("leitura falhou")
				}
				return nil, nil
			},
			updateFn: func(ctx context.Context, inv *creditcard.Invoice) error {
				updates[inv.Id]++
				return nil
			},
		},
		CardRepository: &fakeCardRepository{
			getByIDFn: func(ctx context.Context, cardID ulid.ULID) (*creditcard.CreditCard, error) {
				return card, nil
			},
		},
		PartialPaymentRepository: &fakePartialPaymentRepository{},
		Tx:                       shared.NoopTxManager{},
	}

	svc.AutoCloseIfNeeded(context.Background(), []*creditcard.Invoice{broken, past, future})

	if !past.Closed {
		t.Error("fatura vencida deveria ter sido fechada mesmo com falha em outra")
	}
	if future.Closed {
		t.Error("fatura futura não deveria ser fechada")
	}
	if updates[future.Id] != 0 {
		t.Error("fatura futura não deveria ser alterada")
	}
}

func TestUpdateInvoiceTotalRequiresAbsoluteValue(t *testing.T) {
	t.Parallel()

	invoice := creditcard.NewInvoice(pkg.GenerateULIDObject(), march2025())
	svc := &creditcard.InvoiceService{
		Repository: &fakeInvoiceRepository{
			getByIDFn: func(ctx context.Context, invoiceID ulid.ULID) (*creditcard.Invoice, error) {
				return invoice, nil
			},
		},
		Tx: shared.NoopTxManager{},
	}

	err := svc.UpdateInvoiceTotal(context.Background(), invoice.Id, decimal.RequireFromString("800.00"))
	if err == nil {
		t.Fatal("esperado erro para fatura sem valor absoluto")
	}

	appErr, ok := appErrors.AsAppError(err)
	if !ok || appErr.Code != appErrors.ErrInvalidState.Code {
		t.Errorf("erro = %v, esperado %s", err, appErrors.ErrInvalidState.Code)
	}
}

func TestMarkAbsoluteValueFreezesTotal(t *testing.T) {
	t.Parallel()

	invoice := creditcard.NewInvoice(pkg.GenerateULIDObject(), march2025())
	svc := &creditcard.InvoiceService{
		Repository: &fakeInvoiceRepository{
			getByIDFn: func(ctx context.Context, invoiceID ulid.ULID) (*creditcard.Invoice, error) {
				return invoice, nil
			},
		},
		Tx: shared.NoopTxManager{},
	}

	amount := decimal.RequireFromString("750.00")
	if err := svc.MarkAbsoluteValue(context.Background(), invoice.Id, amount); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	if !invoice.UseAbsoluteValue {
		t.Error("fatura deveria usar valor absoluto")
	}
	if !invoice.TotalAmount.Equal(amount) {
		t.Errorf("TotalAmount = %s, esperado %s", invoice.TotalAmount, amount)
	}

	// com o valor congelado, editar o total passa a ser permitido
	if err := svc.UpdateInvoiceTotal(context.Background(), invoice.Id, decimal.RequireFromString("900.00")); err != nil {
		t.Fatalf("edição do total deveria ser aceita: %v", err)
	}
}

func TestRegisterAvailableLimitOnlyOnClosedInvoice(t *testing.T) {
	t.Parallel()

	invoice := creditcard.NewInvoice(pkg.GenerateULIDObject(), march2025())
	svc := &creditcard.InvoiceService{
		Repository: &fakeInvoiceRepository{
			getByIDFn: func(ctx context.Context, invoiceID ulid.ULID) (*creditcard.Invoice, error) {
				return invoice, nil
			},
		},
		Tx: shared.NoopTxManager{},
	}

	amount := decimal.RequireFromString("4200.00")
	if err := svc.RegisterAvailableLimit(context.Background(), invoice.Id, amount); err == nil {
		t.Fatal("fatura aberta não deveria aceitar registro de limite")
	}

	invoice.Closed = true
	if err := svc.RegisterAvailableLimit(context.Background(), invoice.Id, amount); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if !invoice.RegisterAvailableLimit || !invoice.RegisteredAvailableLimit.Equal(amount) {
		t.Error("limite registrado não foi gravado na fatura")
	}
}

func TestGetInvoiceBalance(t *testing.T) {
	t.Parallel()

	invoice := creditcard.NewInvoice(pkg.GenerateULIDObject(), march2025())
	invoice.TotalAmount = decimal.RequireFromString("320.50")

	svc := &creditcard.InvoiceService{
		Repository: &fakeInvoiceRepository{
			getByIDFn: func(ctx context.Context, invoiceID ulid.ULID) (*creditcard.Invoice, error) {
				return invoice, nil
			},
		},
		PartialPaymentRepository: &fakePartialPaymentRepository{
			sumByInvoiceFn: func(ctx context.Context, invoiceID ulid.ULID) (decimal.Decimal, error) {
				return decimal.RequireFromString("120.50"), nil
			},
		},
		Tx: shared.NoopTxManager{},
	}

	balance, err := svc.GetInvoiceBalance(context.Background(), invoice.Id)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	want := decimal.RequireFromString("200.00")
	if !balance.Equal(want) {
		t.Errorf("saldo = %s, esperado %s", balance, want)
	}
}
