package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Comercial-api/internal/domain"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	"github.com/jhoicas/Comercial-api/internal/domain/repository"
)

var _ repository.AdjustmentRepository = (*AdjustmentRepo)(nil)

// AdjustmentRepo implementación de AdjustmentRepository (usable con pool o tx).
type AdjustmentRepo struct {
	q Querier
}

// NewAdjustmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAdjustmentRepository(q Querier) *AdjustmentRepo {
	return &AdjustmentRepo{q: q}
}

// Create persiste la cabecera del ajuste.
func (r *AdjustmentRepo) Create(adjustment *entity.InventoryAdjustment) error {
	query := `
		INSERT INTO inventory_adjustments (id, type, status, created_by, cancelled_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		adjustment.ID, adjustment.Type, adjustment.Status, adjustment.CreatedBy,
		adjustment.CancelledAt, adjustment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert adjustment: %w", err)
	}
	return nil
}

// CreateLine persiste una línea del ajuste.
func (r *AdjustmentRepo) CreateLine(line *entity.AdjustmentLine) error {
	query := `
		INSERT INTO inventory_adjustment_lines (id, adjustment_id, product_id, quantity)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.AdjustmentID, line.ProductID, line.Quantity,
	)
	if err != nil {
		return fmt.Errorf("insert adjustment line: %w", err)
	}
	return nil
}

func (r *AdjustmentRepo) getByID(id string, forUpdate bool) (*entity.InventoryAdjustment, error) {
	query := `
		SELECT id, type, status, created_by, cancelled_at, created_at
		FROM inventory_adjustments WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var a entity.InventoryAdjustment
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.Type, &a.Status, &a.CreatedBy, &a.CancelledAt, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get adjustment: %w", err)
	}
	return &a, nil
}

// GetByID obtiene la cabecera de un ajuste.
func (r *AdjustmentRepo) GetByID(id string) (*entity.InventoryAdjustment, error) {
	return r.getByID(id, false)
}

// GetForUpdate obtiene la cabecera y bloquea su fila durante la tx.
func (r *AdjustmentRepo) GetForUpdate(id string) (*entity.InventoryAdjustment, error) {
	return r.getByID(id, true)
}

// GetLinesByAdjustmentID obtiene el detalle del ajuste.
func (r *AdjustmentRepo) GetLinesByAdjustmentID(adjustmentID string) ([]entity.AdjustmentLine, error) {
	query := `
		SELECT id, adjustment_id, product_id, quantity
		FROM inventory_adjustment_lines WHERE adjustment_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, adjustmentID)
	if err != nil {
		return nil, fmt.Errorf("list adjustment lines: %w", err)
	}
	defer rows.Close()
	var lines []entity.AdjustmentLine
	for rows.Next() {
		var l entity.AdjustmentLine
		if err := rows.Scan(&l.ID, &l.AdjustmentID, &l.ProductID, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scan adjustment line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// List lista ajustes paginados.
func (r *AdjustmentRepo) List(limit, offset int) ([]*entity.InventoryAdjustment, error) {
	query := `
		SELECT id, type, status, created_by, cancelled_at, created_at
		FROM inventory_adjustments ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list adjustments: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryAdjustment
	for rows.Next() {
		var a entity.InventoryAdjustment
		if err := rows.Scan(&a.ID, &a.Type, &a.Status, &a.CreatedBy, &a.CancelledAt, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan adjustment: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// MarkCancelled fija estado CANCELLED con fecha.
func (r *AdjustmentRepo) MarkCancelled(id string, cancelledAt time.Time) error {
	cmd, err := r.q.Exec(context.Background(), `
		UPDATE inventory_adjustments SET status = $2, cancelled_at = $3 WHERE id = $1`,
		id, entity.AdjustmentStatusCancelled, cancelledAt,
	)
	if err != nil {
		return fmt.Errorf("mark adjustment cancelled: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
