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

var _ repository.ReceiptRepository = (*ReceiptRepo)(nil)

// ReceiptRepo implementación de ReceiptRepository (usable con pool o tx).
type ReceiptRepo struct {
	q Querier
}

// NewReceiptRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReceiptRepository(q Querier) *ReceiptRepo {
	return &ReceiptRepo{q: q}
}

// Create persiste la cabecera de la recepción.
func (r *ReceiptRepo) Create(receipt *entity.WarehouseReceipt) error {
	query := `
		INSERT INTO warehouse_receipts (id, order_id, employee_id, status, cancel_reason, cancelled_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		receipt.ID, receipt.OrderID, receipt.EmployeeID, receipt.Status,
		nullIfEmpty(receipt.CancelReason), receipt.CancelledAt, receipt.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert receipt: %w", err)
	}
	return nil
}

// CreateLine persiste una línea de la recepción.
func (r *ReceiptRepo) CreateLine(line *entity.ReceiptLine) error {
	query := `
		INSERT INTO warehouse_receipt_lines (id, receipt_id, product_id, quantity)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.ReceiptID, line.ProductID, line.Quantity,
	)
	if err != nil {
		return fmt.Errorf("insert receipt line: %w", err)
	}
	return nil
}

func (r *ReceiptRepo) getByID(id string, forUpdate bool) (*entity.WarehouseReceipt, error) {
	query := `
		SELECT id, order_id, employee_id, status, COALESCE(cancel_reason, ''), cancelled_at, created_at
		FROM warehouse_receipts WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var w entity.WarehouseReceipt
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&w.ID, &w.OrderID, &w.EmployeeID, &w.Status, &w.CancelReason, &w.CancelledAt, &w.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get receipt: %w", err)
	}
	return &w, nil
}

// GetByID obtiene la cabecera de una recepción.
func (r *ReceiptRepo) GetByID(id string) (*entity.WarehouseReceipt, error) {
	return r.getByID(id, false)
}

// GetForUpdate obtiene la cabecera y bloquea su fila durante la tx.
func (r *ReceiptRepo) GetForUpdate(id string) (*entity.WarehouseReceipt, error) {
	return r.getByID(id, true)
}

// GetLinesByReceiptID obtiene el detalle de la recepción.
func (r *ReceiptRepo) GetLinesByReceiptID(receiptID string) ([]entity.ReceiptLine, error) {
	query := `
		SELECT id, receipt_id, product_id, quantity
		FROM warehouse_receipt_lines WHERE receipt_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, receiptID)
	if err != nil {
		return nil, fmt.Errorf("list receipt lines: %w", err)
	}
	defer rows.Close()
	var lines []entity.ReceiptLine
	for rows.Next() {
		var l entity.ReceiptLine
		if err := rows.Scan(&l.ID, &l.ReceiptID, &l.ProductID, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scan receipt line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// List lista recepciones paginadas.
func (r *ReceiptRepo) List(limit, offset int) ([]*entity.WarehouseReceipt, error) {
	query := `
		SELECT id, order_id, employee_id, status, COALESCE(cancel_reason, ''), cancelled_at, created_at
		FROM warehouse_receipts ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	defer rows.Close()
	var list []*entity.WarehouseReceipt
	for rows.Next() {
		var w entity.WarehouseReceipt
		if err := rows.Scan(&w.ID, &w.OrderID, &w.EmployeeID, &w.Status, &w.CancelReason, &w.CancelledAt, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan receipt: %w", err)
		}
		list = append(list, &w)
	}
	return list, rows.Err()
}

// CountByOrderID cuenta recepciones en cualquier estado que referencian la orden.
func (r *ReceiptRepo) CountByOrderID(orderID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM warehouse_receipts WHERE order_id = $1`, orderID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count receipts by order: %w", err)
	}
	return n, nil
}

// MarkCancelled fija estado CANCELLED con motivo y fecha.
func (r *ReceiptRepo) MarkCancelled(id, reason string, cancelledAt time.Time) error {
	cmd, err := r.q.Exec(context.Background(), `
		UPDATE warehouse_receipts
		SET status = $2, cancel_reason = $3, cancelled_at = $4
		WHERE id = $1`,
		id, entity.ReceiptStatusCancelled, reason, cancelledAt,
	)
	if err != nil {
		return fmt.Errorf("mark receipt cancelled: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
