package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura. ISSUED es el único estado editable; CANCELLED y PAID
// son terminales.
const (
	InvoiceStatusIssued    = "ISSUED"
	InvoiceStatusCancelled = "CANCELLED"
	InvoiceStatusPaid      = "PAID"
)

// Canales de venta.
const (
	ChannelWeb      = "WEB"
	ChannelInPerson = "POS"
)

// Invoice representa la cabecera de una factura de venta. Su creación descuenta
// stock por línea; su cancelación lo restituye. Mientras esté en ISSUED admite
// reemplazo completo del detalle aplicando el delta neto por producto.
type Invoice struct {
	ID              string
	CustomerID      string
	Channel         string
	PaymentMethodID string
	Status          string
	Subtotal        decimal.Decimal
	TaxTotal        decimal.Decimal
	Total           decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// InvoiceLine representa una línea de factura.
type InvoiceLine struct {
	ID        string
	InvoiceID string
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}
