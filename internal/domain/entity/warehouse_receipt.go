package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una recepción de bodega. La transición ACTIVE -> CANCELLED ocurre
// una sola vez y es irreversible.
const (
	ReceiptStatusActive    = "ACTIVE"
	ReceiptStatusCancelled = "CANCELLED"
)

// WarehouseReceipt registra la entrada física de mercancía a bodega, opcionalmente
// asociada a una orden de compra. Al cancelarse se revierte exactamente su efecto
// sobre stock, ingresos y la cantidad recibida de la orden.
type WarehouseReceipt struct {
	ID           string
	OrderID      *string // nil si la recepción es independiente de una orden
	EmployeeID   string
	Status       string
	CancelReason string
	CancelledAt  *time.Time
	CreatedAt    time.Time
}

// ReceiptLine representa un producto recibido y su cantidad (siempre > 0).
type ReceiptLine struct {
	ID        string
	ReceiptID string
	ProductID string
	Quantity  decimal.Decimal
}
