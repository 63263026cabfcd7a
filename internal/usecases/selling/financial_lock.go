package selling

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/order-manager-api/internal/domain"
)

// CanModifyFinancials decide se os campos financeiros de uma venda ainda
// podem ser alterados. A partir do momento em que o financeiro começa a agir
// sobre a venda (qualquer status diferente do inicial), valor total e
// estrutura de parcelas ficam imutáveis para o fluxo operacional.
func CanModifyFinancials(status domain.FinancialStatus) bool {
	return status == domain.FinancialPending
}

// EnforceFinancialLock rejeita qualquer tentativa de alterar valor total ou
// quantidade de parcelas enquanto o bloqueio financeiro está ativo.
//
// A decisão é sempre rederivada do estado persistido da venda: flags do
// cliente (como preserve_financial_data) podem pedir preservação, mas nunca
// são confiadas para garanti-la. Em caso de divergência a requisição é
// rejeitada por inteiro, nunca "corrigida" silenciosamente.
func EnforceFinancialLock(requestedTotal *decimal.Decimal, requestedCount *int, sale *domain.Sale) error {
	if CanModifyFinancials(sale.FinancialStatus) {
		return nil
	}

	if requestedTotal != nil && !requestedTotal.Equal(sale.TotalAmount) {
		return NewSaleErrorWithID(
			ErrFinancialLockViolation,
			"",
			sale.ID,
			fmt.Sprintf(
				"valor total %s diverge do persistido %s com status financeiro %q",
				requestedTotal.StringFixed(2), sale.TotalAmount.StringFixed(2), sale.FinancialStatus,
			),
		)
	}

	if requestedCount != nil && *requestedCount != sale.Installments {
		return NewSaleErrorWithID(
			ErrFinancialLockViolation,
			"",
			sale.ID,
			fmt.Sprintf(
				"quantidade de parcelas %d diverge da persistida %d com status financeiro %q",
				*requestedCount, sale.Installments, sale.FinancialStatus,
			),
		)
	}

	return nil
}
