package selling

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de vendas
var (
	// Erros de validação
	ErrSaleIDRequired          = errors.New("sale ID is required")
	ErrSaleNotFound            = errors.New("sale not found")
	ErrCorrectionNotesRequired = errors.New("correction notes required")
	ErrItemServiceRequired     = errors.New("item service ID is required")
	ErrItemQuantityInvalid     = errors.New("item quantity must be greater than zero")
	ErrItemsRequired           = errors.New("at least one item is required")
	ErrReturnReasonRequired    = errors.New("return reason is required")

	// Erros do gerador de parcelas
	ErrInvalidInstallmentCount      = errors.New("installment count must be at least 1")
	ErrInstallmentDateCountMismatch = errors.New("installment dates do not match installment count")

	// Erros do grafo de estados
	ErrInvalidSaleState  = errors.New("sale state does not allow this operation")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrForbidden         = errors.New("role not allowed for this transition")

	// Erros de integridade financeira
	ErrFinancialLockViolation = errors.New("financial data is locked and cannot be modified")

	// Erros de concorrência e banco de dados
	ErrSaleBusy          = errors.New("sale is being modified by another operation")
	ErrDatabaseOperation = errors.New("database operation error")
)

// SaleError é um erro com contexto adicional para vendas
type SaleError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	SaleID  string // ID da venda envolvida (quando aplicável)
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *SaleError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *SaleError) Unwrap() error {
	return e.Err
}

// NewSaleError cria um novo SaleError
func NewSaleError(err error, code string, details string) *SaleError {
	return &SaleError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// NewSaleErrorWithID cria um novo SaleError com o ID da venda
func NewSaleErrorWithID(err error, code string, saleID string, details string) *SaleError {
	return &SaleError{
		Err:     err,
		Code:    code,
		SaleID:  saleID,
		Details: details,
	}
}
