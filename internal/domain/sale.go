package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale é a raiz do agregado de vendas. Itens, parcelas e histórico pertencem
// à venda e são removidos em cascata com ela.
type Sale struct {
	ID                string            `json:"id"`
	OrderNumber       string            `json:"order_number"`
	Date              time.Time         `json:"date"`
	CustomerID        string            `json:"customer_id"`
	SellerID          int               `json:"seller_id"`
	ServiceTypeID     *string           `json:"service_type_id"`
	ServiceProviderID *string           `json:"service_provider_id"`
	PaymentMethodID   string            `json:"payment_method_id"`
	Installments      int               `json:"installments"`
	TotalAmount       decimal.Decimal   `json:"total_amount"`
	OperationalStatus OperationalStatus `json:"operational_status"`
	FinancialStatus   FinancialStatus   `json:"financial_status"`
	ReturnReason      *string           `json:"return_reason"`
	Notes             string            `json:"notes"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`

	Items            []*SaleItem        `json:"items,omitempty"`
	InstallmentsList []*SaleInstallment `json:"installments_list,omitempty"`
}

// SaleItem é um item de serviço de uma venda. Itens são substituídos
// integralmente (delete + insert) a cada reenvio bem-sucedido.
type SaleItem struct {
	ID         string          `json:"id"`
	SaleID     string          `json:"sale_id"`
	ServiceID  string          `json:"service_id"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// SaleInstallment é uma parcela do valor total de uma venda
type SaleInstallment struct {
	ID                string            `json:"id"`
	SaleID            string            `json:"sale_id"`
	InstallmentNumber int               `json:"installment_number"`
	Amount            decimal.Decimal   `json:"amount"`
	DueDate           time.Time         `json:"due_date"`
	Status            InstallmentStatus `json:"status"`
	PaymentDate       *time.Time        `json:"payment_date"`
}

// SaleHistoryEntry é um registro imutável de transição de status.
// O evento de criação usa FromStatus vazio.
type SaleHistoryEntry struct {
	ID         string    `json:"id"`
	SaleID     string    `json:"sale_id"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	UserID     int       `json:"user_id"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
}

// SaleItemInput é um item informado pelo cliente na criação ou no reenvio
type SaleItemInput struct {
	ServiceID string          `json:"service_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// CreateSaleRequest é o corpo da criação de uma venda
type CreateSaleRequest struct {
	Date              string           `json:"date"`
	CustomerID        string           `json:"customer_id"`
	ServiceTypeID     *string          `json:"service_type_id"`
	ServiceProviderID *string          `json:"service_provider_id"`
	PaymentMethodID   string           `json:"payment_method_id"`
	Installments      int              `json:"installments"`
	TotalAmount       *decimal.Decimal `json:"total_amount"`
	InstallmentDates  []string         `json:"installment_dates"`
	Notes             string           `json:"notes"`
	Items             []*SaleItemInput `json:"items"`
}

// ResendSaleRequest é o corpo do reenvio de uma venda devolvida.
// PreserveFinancialData é apenas uma intenção do cliente; a decisão real
// é sempre rederivada do estado persistido pelo motor.
type ResendSaleRequest struct {
	CorrectionNotes       string           `json:"correction_notes"`
	Items                 []*SaleItemInput `json:"items"`
	ServiceTypeID         *string          `json:"service_type_id"`
	ServiceProviderID     *string          `json:"service_provider_id"`
	PaymentMethodID       *string          `json:"payment_method_id"`
	TotalAmount           *decimal.Decimal `json:"total_amount"`
	Installments          *int             `json:"installments"`
	InstallmentDates      []string         `json:"installment_dates"`
	PreserveFinancialData bool             `json:"preserve_financial_data"`
}

// UpdateSaleStatusRequest é o corpo de uma transição de status operacional
type UpdateSaleStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
	Notes  string `json:"notes"`
}
