package creditcard_test

import (
	"testing"
	"time"

	"Parcelo/internal/domain/creditcard"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestCalculateCycleFirstInstallment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		executionDate time.Time
		closingDay    int
		dueDay        int
		wantReference time.Time
		wantDueDate   time.Time
	}{
		{
			name:          "execução antes do fechamento entra na fatura do mês",
			executionDate: date(2025, time.March, 5),
			closingDay:    10,
			dueDay:        17,
			wantReference: date(2025, time.March, 1),
			wantDueDate:   date(2025, time.March, 17),
		},
		{
			name:          "execução no dia do fechamento ainda entra na fatura do mês",
			executionDate: date(2025, time.March, 10),
			closingDay:    10,
			dueDay:        17,
			wantReference: date(2025, time.March, 1),
			wantDueDate:   date(2025, time.March, 17),
		},
		{
			name:          "execução após o fechamento cai na fatura seguinte",
			executionDate: date(2025, time.March, 11),
			closingDay:    10,
			dueDay:        17,
			wantReference: date(2025, time.April, 1),
			wantDueDate:   date(2025, time.April, 17),
		},
		{
			name:          "vencimento antes do fechamento avança um mês",
			executionDate: date(2025, time.March, 5),
			closingDay:    25,
			dueDay:        5,
			wantReference: date(2025, time.March, 1),
			wantDueDate:   date(2025, time.April, 5),
		},
		{
			name:          "vencimento igual ao fechamento não avança",
			executionDate: date(2025, time.March, 5),
			closingDay:    15,
			dueDay:        15,
			wantReference: date(2025, time.March, 1),
			wantDueDate:   date(2025, time.March, 15),
		},
		{
			name:          "dia de vencimento 31 ajusta para o fim de abril",
			executionDate: date(2025, time.April, 1),
			closingDay:    20,
			dueDay:        31,
			wantReference: date(2025, time.April, 1),
			wantDueDate:   date(2025, time.April, 30),
		},
		{
			name:          "fechamento 31 em fevereiro ajusta e mantém a fatura do mês",
			executionDate: date(2025, time.February, 28),
			closingDay:    31,
			dueDay:        10,
			wantReference: date(2025, time.February, 1),
			wantDueDate:   date(2025, time.March, 10),
		},
		{
			name:          "virada de ano",
			executionDate: date(2025, time.December, 20),
			closingDay:    10,
			dueDay:        17,
			wantReference: date(2026, time.January, 1),
			wantDueDate:   date(2026, time.January, 17),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := creditcard.CalculateCycle(tt.executionDate, tt.closingDay, tt.dueDay, 1)
			if !got.ReferenceMonth.Equal(tt.wantReference) {
				t.Errorf("ReferenceMonth = %v, esperado %v", got.ReferenceMonth, tt.wantReference)
			}
			if !got.DueDate.Equal(tt.wantDueDate) {
				t.Errorf("DueDate = %v, esperado %v", got.DueDate, tt.wantDueDate)
			}
		})
	}
}

func TestCalculateCycleSubsequentInstallments(t *testing.T) {
	t.Parallel()

	// conta em 12x executada em 15/01, fechamento dia 10: primeira parcela em
	// fevereiro, última em janeiro do ano seguinte
	execution := date(2025, time.January, 15)

	first := creditcard.CalculateCycle(execution, 10, 17, 1)
	if !first.ReferenceMonth.Equal(date(2025, time.February, 1)) {
		t.Fatalf("primeira parcela em %v, esperado fevereiro", first.ReferenceMonth)
	}

	for n := 1; n <= 12; n++ {
		got := creditcard.CalculateCycle(execution, 10, 17, n)
		want := date(2025, time.February, 1).AddDate(0, n-1, 0)
		if !got.ReferenceMonth.Equal(want) {
			t.Errorf("parcela %d: ReferenceMonth = %v, esperado %v", n, got.ReferenceMonth, want)
		}
	}

	last := creditcard.CalculateCycle(execution, 10, 17, 12)
	if !last.ReferenceMonth.Equal(date(2026, time.January, 1)) {
		t.Errorf("última parcela em %v, esperado janeiro de 2026", last.ReferenceMonth)
	}
}

func TestCalculateCycleDueDateClampPerMonth(t *testing.T) {
	t.Parallel()

	// vencimento dia 31 com parcelas atravessando fevereiro: cada vencimento
	// ajusta ao tamanho do próprio mês, sem propagar o ajuste
	execution := date(2025, time.January, 5)

	second := creditcard.CalculateCycle(execution, 20, 31, 2)
	if !second.DueDate.Equal(date(2025, time.February, 28)) {
		t.Errorf("vencimento de fevereiro = %v, esperado 28/02", second.DueDate)
	}

	third := creditcard.CalculateCycle(execution, 20, 31, 3)
	if !third.DueDate.Equal(date(2025, time.March, 31)) {
		t.Errorf("vencimento de março = %v, esperado 31/03", third.DueDate)
	}
}

func TestCalculateCycleIsDeterministic(t *testing.T) {
	t.Parallel()

	execution := date(2025, time.June, 9)
	a := creditcard.CalculateCycle(execution, 10, 5, 4)
	b := creditcard.CalculateCycle(execution, 10, 5, 4)

	if !a.ReferenceMonth.Equal(b.ReferenceMonth) || !a.DueDate.Equal(b.DueDate) {
		t.Errorf("resultados divergentes para entradas iguais: %+v vs %+v", a, b)
	}
}
