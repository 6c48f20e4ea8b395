package billing

import (
	"context"

	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	"github.com/jhoicas/Comercial-api/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción que incluye los
// repos de facturación y de producto (para el ledger).
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// InvoiceLineForPDF línea enriquecida con el nombre del producto para la
// representación impresa.
type InvoiceLineForPDF struct {
	entity.InvoiceLine
	ProductName string
}

// InvoicePDFGenerator genera la representación impresa de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(
		ctx context.Context,
		invoice *entity.Invoice,
		customer *entity.Customer,
		lines []InvoiceLineForPDF,
	) ([]byte, error)
}
