package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de ajuste manual de inventario.
const (
	AdjustmentTypeIn  = "IN"  // entrada: suma a stock y ajustes
	AdjustmentTypeOut = "OUT" // salida: resta de stock y ajustes
)

// Estados de un ajuste. CANCELLED es terminal.
const (
	AdjustmentStatusActive    = "ACTIVE"
	AdjustmentStatusCancelled = "CANCELLED"
)

// InventoryAdjustment representa una corrección manual de existencias no ligada
// a compra ni venta. La cancelación aplica el efecto inverso exacto.
type InventoryAdjustment struct {
	ID          string
	Type        string
	Status      string
	CreatedBy   string
	CancelledAt *time.Time
	CreatedAt   time.Time
}

// AdjustmentLine representa un producto ajustado y su cantidad (siempre > 0;
// el signo lo determina el tipo del ajuste).
type AdjustmentLine struct {
	ID           string
	AdjustmentID string
	ProductID    string
	Quantity     decimal.Decimal
}
