package dto

import "github.com/shopspring/decimal"

// PurchaseOrderLineRequest línea de orden de compra (producto, cantidad, costo).
type PurchaseOrderLineRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// CreatePurchaseOrderRequest body para POST /api/purchase-orders.
type CreatePurchaseOrderRequest struct {
	SupplierID string                     `json:"supplier_id"`
	Lines      []PurchaseOrderLineRequest `json:"lines"`
}

// UpdatePurchaseOrderRequest body para PUT /api/purchase-orders/:id.
// Reemplaza el detalle completo; solo permitido mientras la orden está PENDING.
type UpdatePurchaseOrderRequest struct {
	Lines []PurchaseOrderLineRequest `json:"lines"`
}

// PurchaseOrderLineResponse línea en respuestas.
type PurchaseOrderLineResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	QtyOrdered  decimal.Decimal `json:"qty_ordered"`
	QtyReceived decimal.Decimal `json:"qty_received"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// PurchaseOrderResponse orden con detalle.
type PurchaseOrderResponse struct {
	ID         string                      `json:"id"`
	SupplierID string                      `json:"supplier_id"`
	Status     string                      `json:"status"`
	Subtotal   decimal.Decimal             `json:"subtotal"`
	Total      decimal.Decimal             `json:"total"`
	Lines      []PurchaseOrderLineResponse `json:"lines"`
}
