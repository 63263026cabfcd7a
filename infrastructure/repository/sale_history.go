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

const saleHistoryTable = "sale_status_history"

// SaleHistoryRepository grava o histórico de transições de status.
// A tabela é somente-inserção: não existem operações de UPDATE ou DELETE.
type SaleHistoryRepository interface {
	// Append insere um registro de transição dentro da transação corrente,
	// para que o histórico nunca fique fora de sincronia com a venda
	Append(ctx context.Context, tx *sql.Tx, entry *domain.SaleHistoryEntry) error
	ListBySale(ctx context.Context, saleID string) ([]*domain.SaleHistoryEntry, error)
}

type saleHistoryRepository struct {
	conn *postgres.Connection
}

func NewSaleHistoryRepository(conn *postgres.Connection) SaleHistoryRepository {
	return &saleHistoryRepository{
		conn: conn,
	}
}

func (r *saleHistoryRepository) Append(ctx context.Context, tx *sql.Tx, entry *domain.SaleHistoryEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	query, args, err := squirrel.
		Insert(saleHistoryTable).
		Columns("id", "sale_id", "from_status", "to_status", "user_id", "notes", "created_at").
		Values(
			entry.ID,
			entry.SaleID,
			entry.FromStatus,
			entry.ToStatus,
			entry.UserID,
			entry.Notes,
			entry.CreatedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return wrapPqError(err, "erro ao inserir histórico da venda")
	}

	return nil
}

func (r *saleHistoryRepository) ListBySale(ctx context.Context, saleID string) ([]*domain.SaleHistoryEntry, error) {
	query, args, err := squirrel.
		Select("id", "sale_id", "from_status", "to_status", "user_id", "notes", "created_at").
		From(saleHistoryTable).
		Where(squirrel.Eq{"sale_id": saleID}).
		OrderBy("created_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapPqError(err, "erro ao listar histórico da venda")
	}
	defer rows.Close()

	entries := make([]*domain.SaleHistoryEntry, 0)
	for rows.Next() {
		entry := &domain.SaleHistoryEntry{}
		err := rows.Scan(
			&entry.ID,
			&entry.SaleID,
			&entry.FromStatus,
			&entry.ToStatus,
			&entry.UserID,
			&entry.Notes,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao escanear histórico")
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	return entries, nil
}
