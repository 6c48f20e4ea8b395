package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercial-api/internal/domain/entity"
)

// InvoiceRepository puerto de persistencia para facturas y sus líneas.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	CreateLine(line *entity.InvoiceLine) error
	GetByID(id string) (*entity.Invoice, error)
	// GetForUpdate bloquea la cabecera de la factura durante la tx (serializa
	// edición, pago y cancelación concurrentes).
	GetForUpdate(id string) (*entity.Invoice, error)
	GetLinesByInvoiceID(invoiceID string) ([]entity.InvoiceLine, error)
	List(limit, offset int) ([]*entity.Invoice, error)
	// DeleteLines elimina todas las líneas de la factura (reemplazo del detalle).
	DeleteLines(invoiceID string) error
	UpdateTotals(invoiceID string, subtotal, taxTotal, total decimal.Decimal, updatedAt time.Time) error
	UpdateStatus(invoiceID, status string, updatedAt time.Time) error
}
