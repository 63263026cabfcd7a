package selling

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/order-manager-api/internal/domain"
	"github.com/vfg2006/order-manager-api/pkg/utils"
)

// Clock abstrai o relógio para que a síntese de datas de vencimento seja
// determinística em testes
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// SystemClock retorna o relógio de produção
func SystemClock() Clock {
	return systemClock{}
}

var oneHundred = decimal.NewFromInt(100)

// GenerateInstallments produz o conjunto de parcelas de uma venda.
//
// A divisão é feita em centavos (aritmética inteira, nunca ponto flutuante
// binário): o quociente vai para as parcelas 1..count-1 e o resto é absorvido
// pela última, de modo que a soma das parcelas é exatamente o valor total.
//
// Datas de vencimento: se dueDates for informado com o tamanho exato de
// count, é usado literalmente; se vazio, são sintetizadas datas mensais a
// partir do relógio (primeira parcela vence um mês após a data corrente);
// qualquer outro tamanho é rejeitado.
func GenerateInstallments(total decimal.Decimal, count int, dueDates []time.Time, clock Clock) ([]*domain.SaleInstallment, error) {
	if count < 1 {
		return nil, NewSaleError(ErrInvalidInstallmentCount, "", "")
	}

	if len(dueDates) > 0 && len(dueDates) != count {
		return nil, NewSaleError(ErrInstallmentDateCountMismatch, "", "")
	}

	totalCents := total.Mul(oneHundred).IntPart()
	quotientCents := totalCents / int64(count)
	lastCents := totalCents - quotientCents*int64(count-1)

	installments := make([]*domain.SaleInstallment, 0, count)
	for i := 1; i <= count; i++ {
		cents := quotientCents
		if i == count {
			cents = lastCents
		}

		installments = append(installments, &domain.SaleInstallment{
			InstallmentNumber: i,
			Amount:            decimal.New(cents, -2),
			DueDate:           dueDateFor(i, dueDates, clock),
			Status:            domain.InstallmentPending,
		})
	}

	return installments, nil
}

func dueDateFor(number int, dueDates []time.Time, clock Clock) time.Time {
	if len(dueDates) > 0 {
		return utils.TruncateToDate(dueDates[number-1])
	}
	return utils.TruncateToDate(clock.Now()).AddDate(0, number, 0)
}
