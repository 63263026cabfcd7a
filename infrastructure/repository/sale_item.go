package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/vfg2006/order-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/order-manager-api/internal/domain"
)

const saleItemsTable = "sale_items"

type SaleItemRepository interface {
	ListBySale(ctx context.Context, saleID string) ([]*domain.SaleItem, error)
	// ReplaceForSale remove todos os itens da venda e insere os informados,
	// dentro da transação corrente
	ReplaceForSale(ctx context.Context, tx *sql.Tx, saleID string, items []*domain.SaleItem) error
}

type saleItemRepository struct {
	conn *postgres.Connection
}

func NewSaleItemRepository(conn *postgres.Connection) SaleItemRepository {
	return &saleItemRepository{
		conn: conn,
	}
}

func (r *saleItemRepository) ListBySale(ctx context.Context, saleID string) ([]*domain.SaleItem, error) {
	query, args, err := squirrel.
		Select("id", "sale_id", "service_id", "quantity", "price", "total_price").
		From(saleItemsTable).
		Where(squirrel.Eq{"sale_id": saleID}).
		OrderBy("id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapPqError(err, "erro ao listar itens da venda")
	}
	defer rows.Close()

	items := make([]*domain.SaleItem, 0)
	for rows.Next() {
		item := &domain.SaleItem{}
		err := rows.Scan(
			&item.ID,
			&item.SaleID,
			&item.ServiceID,
			&item.Quantity,
			&item.Price,
			&item.TotalPrice,
		)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao escanear item da venda")
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	return items, nil
}

func (r *saleItemRepository) ReplaceForSale(ctx context.Context, tx *sql.Tx, saleID string, items []*domain.SaleItem) error {
	deleteQuery, deleteArgs, err := squirrel.
		Delete(saleItemsTable).
		Where(squirrel.Eq{"sale_id": saleID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return wrapPqError(err, "erro ao remover itens da venda")
	}

	if len(items) == 0 {
		return nil
	}

	builder := squirrel.
		Insert(saleItemsTable).
		Columns("id", "sale_id", "service_id", "quantity", "price", "total_price").
		PlaceholderFormat(squirrel.Dollar)

	for _, item := range items {
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		item.SaleID = saleID
		builder = builder.Values(
			item.ID,
			item.SaleID,
			item.ServiceID,
			item.Quantity,
			item.Price,
			item.TotalPrice,
		)
	}

	insertQuery, insertArgs, err := builder.ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return wrapPqError(err, "erro ao inserir itens da venda")
	}

	return nil
}
