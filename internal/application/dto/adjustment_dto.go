package dto

import "github.com/shopspring/decimal"

// AdjustmentLineRequest línea de ajuste (producto y cantidad, siempre > 0).
type AdjustmentLineRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// CreateAdjustmentRequest body para POST /api/adjustments. Type: IN | OUT.
type CreateAdjustmentRequest struct {
	Type  string                  `json:"type"`
	Lines []AdjustmentLineRequest `json:"lines"`
}

// AdjustmentLineResponse línea en respuestas.
type AdjustmentLineResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// AdjustmentResponse ajuste con detalle.
type AdjustmentResponse struct {
	ID     string                   `json:"id"`
	Type   string                   `json:"type"`
	Status string                   `json:"status"`
	Lines  []AdjustmentLineResponse `json:"lines"`
}
