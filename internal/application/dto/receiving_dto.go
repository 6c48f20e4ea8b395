package dto

import "github.com/shopspring/decimal"

// ReceiptLineRequest línea de recepción (producto y cantidad recibida).
type ReceiptLineRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// CreateReceiptRequest body para POST /api/receipts.
// OrderID es opcional: una recepción puede ser independiente de orden de compra.
type CreateReceiptRequest struct {
	OrderID *string              `json:"order_id,omitempty"`
	Lines   []ReceiptLineRequest `json:"lines"`
}

// CancelReceiptRequest body para POST /api/receipts/:id/cancel.
type CancelReceiptRequest struct {
	Reason string `json:"reason"`
}

// ReceiptLineResponse línea en respuestas.
type ReceiptLineResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// ReceiptResponse recepción con detalle y, si aplica, estado resultante de la orden.
type ReceiptResponse struct {
	ID           string                `json:"id"`
	OrderID      *string               `json:"order_id,omitempty"`
	EmployeeID   string                `json:"employee_id"`
	Status       string                `json:"status"`
	CancelReason string                `json:"cancel_reason,omitempty"`
	OrderStatus  string                `json:"order_status,omitempty"`
	Lines        []ReceiptLineResponse `json:"lines"`
}
