package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/vfg2006/order-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/order-manager-api/internal/domain"
)

const installmentsTable = "sale_installments"

var installmentColumns = []string{
	"id",
	"sale_id",
	"installment_number",
	"amount",
	"due_date",
	"status",
	"payment_date",
}

type InstallmentRepository interface {
	ListBySale(ctx context.Context, saleID string) ([]*domain.SaleInstallment, error)
	// ListBySaleTx lê as parcelas dentro da transação corrente, garantindo
	// que as datas preservadas no reenvio sejam consistentes com o restante
	// da operação
	ListBySaleTx(ctx context.Context, tx *sql.Tx, saleID string) ([]*domain.SaleInstallment, error)
	// ReplaceForSale remove todas as parcelas da venda e insere as novas,
	// dentro da transação corrente
	ReplaceForSale(ctx context.Context, tx *sql.Tx, saleID string, installments []*domain.SaleInstallment) error
	// ListOverdue retorna parcelas pendentes com vencimento anterior à data
	// de referência
	ListOverdue(ctx context.Context, reference time.Time) ([]*domain.SaleInstallment, error)
}

type installmentRepository struct {
	conn *postgres.Connection
}

func NewInstallmentRepository(conn *postgres.Connection) InstallmentRepository {
	return &installmentRepository{
		conn: conn,
	}
}

func (r *installmentRepository) ListBySale(ctx context.Context, saleID string) ([]*domain.SaleInstallment, error) {
	return r.listBySale(ctx, r.conn.DB, saleID)
}

func (r *installmentRepository) ListBySaleTx(ctx context.Context, tx *sql.Tx, saleID string) ([]*domain.SaleInstallment, error) {
	return r.listBySale(ctx, tx, saleID)
}

func (r *installmentRepository) listBySale(ctx context.Context, q postgres.Queryer, saleID string) ([]*domain.SaleInstallment, error) {
	query, args, err := squirrel.
		Select(installmentColumns...).
		From(installmentsTable).
		Where(squirrel.Eq{"sale_id": saleID}).
		OrderBy("installment_number ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapPqError(err, "erro ao listar parcelas da venda")
	}
	defer rows.Close()

	return r.scanInstallments(rows)
}

func (r *installmentRepository) ReplaceForSale(ctx context.Context, tx *sql.Tx, saleID string, installments []*domain.SaleInstallment) error {
	deleteQuery, deleteArgs, err := squirrel.
		Delete(installmentsTable).
		Where(squirrel.Eq{"sale_id": saleID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return wrapPqError(err, "erro ao remover parcelas da venda")
	}

	if len(installments) == 0 {
		return nil
	}

	builder := squirrel.
		Insert(installmentsTable).
		Columns(installmentColumns...).
		PlaceholderFormat(squirrel.Dollar)

	for _, installment := range installments {
		if installment.ID == "" {
			installment.ID = uuid.New().String()
		}
		installment.SaleID = saleID
		builder = builder.Values(
			installment.ID,
			installment.SaleID,
			installment.InstallmentNumber,
			installment.Amount,
			installment.DueDate.Format(time.DateOnly),
			string(installment.Status),
			installment.PaymentDate,
		)
	}

	insertQuery, insertArgs, err := builder.ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return wrapPqError(err, "erro ao inserir parcelas da venda")
	}

	return nil
}

func (r *installmentRepository) ListOverdue(ctx context.Context, reference time.Time) ([]*domain.SaleInstallment, error) {
	query, args, err := squirrel.
		Select(installmentColumns...).
		From(installmentsTable).
		Where(squirrel.Eq{"status": string(domain.InstallmentPending)}).
		Where(squirrel.Lt{"due_date": reference.Format(time.DateOnly)}).
		OrderBy("sale_id ASC", "installment_number ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapPqError(err, "erro ao listar parcelas vencidas")
	}
	defer rows.Close()

	return r.scanInstallments(rows)
}

func (r *installmentRepository) scanInstallments(rows *sql.Rows) ([]*domain.SaleInstallment, error) {
	installments := make([]*domain.SaleInstallment, 0)
	for rows.Next() {
		installment := &domain.SaleInstallment{}
		var status string

		err := rows.Scan(
			&installment.ID,
			&installment.SaleID,
			&installment.InstallmentNumber,
			&installment.Amount,
			&installment.DueDate,
			&status,
			&installment.PaymentDate,
		)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao escanear parcela")
		}

		installment.Status = domain.InstallmentStatus(status)
		installments = append(installments, installment)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	return installments, nil
}
