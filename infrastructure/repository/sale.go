package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/order-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/order-manager-api/internal/domain"
)

const salesTable = "sales"

var saleColumns = []string{
	"id",
	"order_number",
	"date",
	"customer_id",
	"seller_id",
	"service_type_id",
	"service_provider_id",
	"payment_method_id",
	"installments",
	"total_amount",
	"operational_status",
	"financial_status",
	"return_reason",
	"notes",
	"created_at",
	"updated_at",
}

// ErrRowLocked indica que a linha da venda está bloqueada por outra transação
var ErrRowLocked = errors.New("linha da venda bloqueada por outra transação")

type SaleRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Sale, error)
	// GetForUpdate lê a venda com SELECT ... FOR UPDATE, serializando
	// operações concorrentes sobre a mesma venda dentro da transação.
	GetForUpdate(ctx context.Context, tx *sql.Tx, id string) (*domain.Sale, error)
	Insert(ctx context.Context, tx *sql.Tx, sale *domain.Sale) error
	Update(ctx context.Context, tx *sql.Tx, sale *domain.Sale) error
}

type saleRepository struct {
	conn *postgres.Connection
}

func NewSaleRepository(conn *postgres.Connection) SaleRepository {
	return &saleRepository{
		conn: conn,
	}
}

func (r *saleRepository) GetByID(ctx context.Context, id string) (*domain.Sale, error) {
	return r.get(ctx, r.conn.DB, id, false)
}

func (r *saleRepository) GetForUpdate(ctx context.Context, tx *sql.Tx, id string) (*domain.Sale, error) {
	return r.get(ctx, tx, id, true)
}

func (r *saleRepository) get(ctx context.Context, q postgres.Queryer, id string, forUpdate bool) (*domain.Sale, error) {
	builder := squirrel.
		Select(saleColumns...).
		From(salesTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	row := q.QueryRowContext(ctx, query, args...)
	sale, err := r.scanSale(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		if isLockError(err) {
			return nil, ErrRowLocked
		}
		return nil, errors.Wrap(err, "erro ao escanear venda")
	}

	return sale, nil
}

func (r *saleRepository) Insert(ctx context.Context, tx *sql.Tx, sale *domain.Sale) error {
	query, args, err := squirrel.
		Insert(salesTable).
		Columns(saleColumns...).
		Values(
			sale.ID,
			sale.OrderNumber,
			sale.Date.Format(time.DateOnly),
			sale.CustomerID,
			sale.SellerID,
			sale.ServiceTypeID,
			sale.ServiceProviderID,
			sale.PaymentMethodID,
			sale.Installments,
			sale.TotalAmount,
			sale.OperationalStatus.String(),
			sale.FinancialStatus.String(),
			sale.ReturnReason,
			sale.Notes,
			sale.CreatedAt,
			sale.UpdatedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return wrapPqError(err, "erro ao inserir venda")
	}

	return nil
}

func (r *saleRepository) Update(ctx context.Context, tx *sql.Tx, sale *domain.Sale) error {
	query, args, err := squirrel.
		Update(salesTable).
		Set("date", sale.Date.Format(time.DateOnly)).
		Set("service_type_id", sale.ServiceTypeID).
		Set("service_provider_id", sale.ServiceProviderID).
		Set("payment_method_id", sale.PaymentMethodID).
		Set("installments", sale.Installments).
		Set("total_amount", sale.TotalAmount).
		Set("operational_status", sale.OperationalStatus.String()).
		Set("financial_status", sale.FinancialStatus.String()).
		Set("return_reason", sale.ReturnReason).
		Set("notes", sale.Notes).
		Set("updated_at", sale.UpdatedAt).
		Where(squirrel.Eq{"id": sale.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapPqError(err, "erro ao atualizar venda")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "erro ao obter número de linhas afetadas")
	}
	if rowsAffected == 0 {
		return errors.Errorf("venda não encontrada para atualização: %s", sale.ID)
	}

	return nil
}

func (r *saleRepository) scanSale(row *sql.Row) (*domain.Sale, error) {
	sale := &domain.Sale{}
	var operationalStatus, financialStatus string

	err := row.Scan(
		&sale.ID,
		&sale.OrderNumber,
		&sale.Date,
		&sale.CustomerID,
		&sale.SellerID,
		&sale.ServiceTypeID,
		&sale.ServiceProviderID,
		&sale.PaymentMethodID,
		&sale.Installments,
		&sale.TotalAmount,
		&operationalStatus,
		&financialStatus,
		&sale.ReturnReason,
		&sale.Notes,
		&sale.CreatedAt,
		&sale.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	sale.OperationalStatus, err = domain.ParseOperationalStatus(operationalStatus)
	if err != nil {
		return nil, err
	}

	sale.FinancialStatus, err = domain.ParseFinancialStatus(financialStatus)
	if err != nil {
		return nil, err
	}

	return sale, nil
}

// isLockError identifica lock_not_available (55P03), retornado quando a
// espera pelo FOR UPDATE estoura o lock_timeout configurado no banco
func isLockError(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "55P03"
	}
	return false
}

func wrapPqError(err error, msg string) error {
	if pqErr, ok := err.(*pq.Error); ok {
		return errors.Wrapf(err, "%s (código: %s)", msg, pqErr.Code)
	}
	return errors.Wrap(err, msg)
}
