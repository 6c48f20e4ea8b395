package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercial-api/internal/domain/entity"
)

// PurchaseOrderRepository puerto de persistencia para órdenes de compra y sus líneas.
type PurchaseOrderRepository interface {
	Create(order *entity.PurchaseOrder) error
	CreateLine(line *entity.PurchaseOrderLine) error
	GetByID(id string) (*entity.PurchaseOrder, error)
	// GetForUpdate bloquea la cabecera de la orden durante la tx.
	GetForUpdate(id string) (*entity.PurchaseOrder, error)
	GetLinesByOrderID(orderID string) ([]entity.PurchaseOrderLine, error)
	List(limit, offset int) ([]*entity.PurchaseOrder, error)
	// DeleteLines elimina todas las líneas de la orden (reemplazo del detalle).
	DeleteLines(orderID string) error
	UpdateTotals(orderID string, subtotal, total decimal.Decimal, updatedAt time.Time) error
	UpdateStatus(orderID, status string, updatedAt time.Time) error
	// AddReceivedQty suma delta (con signo) a qty_received de la línea del producto
	// en una sola sentencia. domain.ErrNotFound si la orden no tiene línea para
	// ese producto.
	AddReceivedQty(orderID, productID string, delta decimal.Decimal) error
}
