package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra. CANCELLED es terminal y excluyente:
// una vez cancelada, el estado derivado de las líneas deja de aplicar.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusPartial   = "PARTIAL"
	OrderStatusClosed    = "CLOSED"
	OrderStatusCancelled = "CANCELLED"
)

// PurchaseOrder representa la cabecera de una orden de compra a proveedor.
// Subtotal y Total se recalculan con cada cambio de líneas (sin impuesto en compras).
type PurchaseOrder struct {
	ID         string
	SupplierID string
	Status     string
	Subtotal   decimal.Decimal
	Total      decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PurchaseOrderLine representa una línea de la orden: producto, cantidad pedida,
// costo unitario y cantidad ya recibida. QtyReceived la muta únicamente el ciclo
// de recepciones, jamás el ciclo de órdenes.
type PurchaseOrderLine struct {
	ID          string
	OrderID     string
	ProductID   string
	QtyOrdered  decimal.Decimal
	QtyReceived decimal.Decimal
	UnitCost    decimal.Decimal
}

// Subtotal devuelve QtyOrdered * UnitCost.
func (l PurchaseOrderLine) Subtotal() decimal.Decimal {
	return l.QtyOrdered.Mul(l.UnitCost)
}

// Received indica si la línea está completamente recibida (recibido >= pedido).
func (l PurchaseOrderLine) Received() bool {
	return l.QtyReceived.GreaterThanOrEqual(l.QtyOrdered)
}

// DeriveOrderStatus calcula el estado de la orden como función pura de sus líneas:
// CLOSED si toda línea tiene recibido >= pedido, PENDING si nada se ha recibido,
// PARTIAL en cualquier punto intermedio. La comparación es por línea, no agregada:
// una línea cuenta como recibida solo cuando su propio recibido cubre su pedido.
// El estado CANCELLED nunca sale de aquí; es pegajoso y lo fija Cancel.
func DeriveOrderStatus(lines []PurchaseOrderLine) string {
	if len(lines) == 0 {
		return OrderStatusPending
	}
	allReceived := true
	anyReceived := false
	for _, l := range lines {
		if !l.Received() {
			allReceived = false
		}
		if l.QtyReceived.GreaterThan(decimal.Zero) {
			anyReceived = true
		}
	}
	switch {
	case allReceived:
		return OrderStatusClosed
	case anyReceived:
		return OrderStatusPartial
	default:
		return OrderStatusPending
	}
}

// OrderSubtotal suma los subtotales de las líneas.
func OrderSubtotal(lines []PurchaseOrderLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}
