package creditcard

import (
	"time"
)

// CyclePlacement posiciona uma parcela no ciclo de faturamento do cartão.
type CyclePlacement struct {
	ReferenceMonth time.Time
	DueDate        time.Time
}

// CalculateCycle calcula a fatura (mês de referência) e o vencimento da
// parcela de número installmentNumber (1-based) de uma conta executada em
// executionDate, para um cartão com os dias de fechamento e vencimento
// informados.
//
// A primeira parcela pertence à fatura cujo fechamento é o primeiro
// fechamento igual ou posterior à data de execução; cada parcela seguinte
// cai exatamente um mês depois. O vencimento usa o dia de vencimento do
// cartão aplicado ao mês de referência, avançando um mês quando o dia de
// vencimento precede numericamente o dia de fechamento (ciclos que cruzam a
// virada do mês). Dias que excedem o tamanho do mês são ajustados para o
// último dia do mês.
//
// Função pura: sem efeitos colaterais, determinística para entradas iguais.
func CalculateCycle(executionDate time.Time, closingDay, dueDay, installmentNumber int) CyclePlacement {
	reference := firstInvoiceMonth(executionDate, closingDay).AddDate(0, installmentNumber-1, 0)

	dueYear, dueMonth := reference.Year(), reference.Month()
	if dueDay < closingDay {
		next := reference.AddDate(0, 1, 0)
		dueYear, dueMonth = next.Year(), next.Month()
	}

	return CyclePlacement{
		ReferenceMonth: reference,
		DueDate:        dateWithDay(dueYear, dueMonth, dueDay),
	}
}

// firstInvoiceMonth retorna o primeiro dia do mês da fatura que ainda aceita
// lançamentos na data de execução: o mês cujo fechamento é igual ou
// posterior à data (comparação por dia de calendário).
func firstInvoiceMonth(executionDate time.Time, closingDay int) time.Time {
	execDate := time.Date(executionDate.Year(), executionDate.Month(), executionDate.Day(), 0, 0, 0, 0, time.UTC)
	closing := dateWithDay(execDate.Year(), execDate.Month(), closingDay)
	if closing.Before(execDate) {
		return MonthStart(execDate).AddDate(0, 1, 0)
	}
	return MonthStart(execDate)
}

// MonthStart retorna o primeiro dia do mês de t, como data UTC.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// dateWithDay monta uma data com o dia ajustado ao tamanho do mês.
func dateWithDay(year int, month time.Month, day int) time.Time {
	if last := daysInMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
