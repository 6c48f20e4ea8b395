package dto

import "github.com/shopspring/decimal"

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name  string `json:"name"`
	TaxID string `json:"tax_id"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	TaxID string `json:"tax_id"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// InvoiceItemRequest línea de factura (producto, cantidad, precio unitario).
// UnitPrice en cero toma el precio de lista del producto.
type InvoiceItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateInvoiceRequest body para POST /api/invoices.
type CreateInvoiceRequest struct {
	CustomerID      string               `json:"customer_id"`
	Channel         string               `json:"channel"` // WEB | POS
	PaymentMethodID string               `json:"payment_method_id"`
	Items           []InvoiceItemRequest `json:"items"`
}

// EditInvoiceRequest body para PUT /api/invoices/:id. Reemplaza el detalle
// completo; solo permitido mientras la factura está ISSUED.
type EditInvoiceRequest struct {
	Items []InvoiceItemRequest `json:"items"`
}

// InvoiceLineResponse línea de detalle en la respuesta.
type InvoiceLineResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// InvoiceResponse factura con detalle.
type InvoiceResponse struct {
	ID              string                `json:"id"`
	CustomerID      string                `json:"customer_id"`
	CustomerName    string                `json:"customer_name,omitempty"`
	Channel         string                `json:"channel"`
	PaymentMethodID string                `json:"payment_method_id"`
	Status          string                `json:"status"`
	Subtotal        decimal.Decimal       `json:"subtotal"`
	TaxTotal        decimal.Decimal       `json:"tax_total"`
	Total           decimal.Decimal       `json:"total"`
	Lines           []InvoiceLineResponse `json:"lines"`
}

// PaymentMethodResponse medio de pago en respuestas.
type PaymentMethodResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	WebEnabled bool   `json:"web_enabled"`
	POSEnabled bool   `json:"pos_enabled"`
}
