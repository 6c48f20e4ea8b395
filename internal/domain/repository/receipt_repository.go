package repository

import (
	"time"

	"github.com/jhoicas/Comercial-api/internal/domain/entity"
)

// ReceiptRepository puerto de persistencia para recepciones de bodega.
type ReceiptRepository interface {
	Create(receipt *entity.WarehouseReceipt) error
	CreateLine(line *entity.ReceiptLine) error
	GetByID(id string) (*entity.WarehouseReceipt, error)
	// GetForUpdate bloquea la cabecera de la recepción durante la tx (evita
	// doble cancelación concurrente).
	GetForUpdate(id string) (*entity.WarehouseReceipt, error)
	GetLinesByReceiptID(receiptID string) ([]entity.ReceiptLine, error)
	List(limit, offset int) ([]*entity.WarehouseReceipt, error)
	// CountByOrderID cuenta recepciones (en cualquier estado) que referencian la orden.
	CountByOrderID(orderID string) (int, error)
	MarkCancelled(id, reason string, cancelledAt time.Time) error
}
