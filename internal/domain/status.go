package domain

import "fmt"

// OperationalStatus representa o estado do fluxo de execução de uma venda
type OperationalStatus string

const (
	OperationalPending    OperationalStatus = "pending"
	OperationalInProgress OperationalStatus = "in_progress"
	OperationalCompleted  OperationalStatus = "completed"
	OperationalReturned   OperationalStatus = "returned"
	OperationalCorrected  OperationalStatus = "corrected"
	OperationalCanceled   OperationalStatus = "canceled"
)

// FinancialStatus representa o estado do fluxo financeiro de uma venda,
// controlado pelo departamento financeiro
type FinancialStatus string

const (
	FinancialPending        FinancialStatus = "pending"
	FinancialInProgress     FinancialStatus = "in_progress"
	FinancialInAnalysis     FinancialStatus = "in_analysis"
	FinancialApproved       FinancialStatus = "approved"
	FinancialPartialPayment FinancialStatus = "partial_payment"
	FinancialCompleted      FinancialStatus = "completed"
	FinancialPaid           FinancialStatus = "paid"
)

// InstallmentStatus representa o estado de pagamento de uma parcela
type InstallmentStatus string

const (
	InstallmentPending InstallmentStatus = "pending"
	InstallmentPaid    InstallmentStatus = "paid"
)

var operationalStatuses = map[OperationalStatus]struct{}{
	OperationalPending:    {},
	OperationalInProgress: {},
	OperationalCompleted:  {},
	OperationalReturned:   {},
	OperationalCorrected:  {},
	OperationalCanceled:   {},
}

var financialStatuses = map[FinancialStatus]struct{}{
	FinancialPending:        {},
	FinancialInProgress:     {},
	FinancialInAnalysis:     {},
	FinancialApproved:       {},
	FinancialPartialPayment: {},
	FinancialCompleted:      {},
	FinancialPaid:           {},
}

// ParseOperationalStatus valida e converte uma string para OperationalStatus
func ParseOperationalStatus(s string) (OperationalStatus, error) {
	status := OperationalStatus(s)
	if _, ok := operationalStatuses[status]; !ok {
		return "", fmt.Errorf("status operacional inválido: %q", s)
	}
	return status, nil
}

// ParseFinancialStatus valida e converte uma string para FinancialStatus
func ParseFinancialStatus(s string) (FinancialStatus, error) {
	status := FinancialStatus(s)
	if _, ok := financialStatuses[status]; !ok {
		return "", fmt.Errorf("status financeiro inválido: %q", s)
	}
	return status, nil
}

// IsTerminal indica se o status operacional não admite mais transições
func (s OperationalStatus) IsTerminal() bool {
	return s == OperationalCompleted || s == OperationalCanceled
}

func (s OperationalStatus) String() string {
	return string(s)
}

func (s FinancialStatus) String() string {
	return string(s)
}
