package billing

import (
	"context"
	"time"

	"github.com/jhoicas/Comercial-api/internal/application/dto"
	"github.com/jhoicas/Comercial-api/internal/application/ledger"
	"github.com/jhoicas/Comercial-api/internal/domain"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	"github.com/jhoicas/Comercial-api/internal/domain/repository"
)

// EditInvoice reemplaza el detalle completo de una factura ISSUED. El stock se
// ajusta con un único delta neto por producto (cantidad nueva menos vieja), no
// con un restar-todo y sumar-todo: así una edición que solo reorganiza
// cantidades entre productos nunca falla transitoriamente una verificación de
// stock que su efecto neto sí pasa.
func (uc *InvoiceUseCase) EditInvoice(ctx context.Context, id string, in dto.EditInvoiceRequest) (*dto.InvoiceResponse, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.validateItems(in.Items); err != nil {
		return nil, err
	}
	rate, err := uc.currentTaxRate()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var inv *entity.Invoice
	var newLines []entity.InvoiceLine

	err = uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		productRepo repository.ProductRepository,
	) error {
		stock := ledger.New(productRepo)

		var err error
		inv, err = invoiceRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if inv.Status != entity.InvoiceStatusIssued {
			return domain.ErrConflict
		}

		oldLines, err := invoiceRepo.GetLinesByInvoiceID(id)
		if err != nil {
			return err
		}

		oldQty := make([]ledger.LineQuantity, 0, len(oldLines))
		for _, l := range oldLines {
			oldQty = append(oldQty, ledger.LineQuantity{ProductID: l.ProductID, Quantity: l.Quantity})
		}
		newQty := make([]ledger.LineQuantity, 0, len(in.Items))
		for _, item := range in.Items {
			newQty = append(newQty, ledger.LineQuantity{ProductID: item.ProductID, Quantity: item.Quantity})
		}

		// Delta de cantidad facturada por producto; el stock se mueve en sentido
		// contrario (facturar más consume, facturar menos devuelve).
		for _, d := range ledger.NetDeltas(oldQty, newQty) {
			if _, err := stock.ApplyDelta(d.ProductID, d.Delta.Neg()); err != nil {
				return err
			}
		}

		if err := invoiceRepo.DeleteLines(id); err != nil {
			return err
		}
		newLines = buildLines(id, in.Items)
		for i := range newLines {
			if err := invoiceRepo.CreateLine(&newLines[i]); err != nil {
				return err
			}
		}

		inv.Subtotal, inv.TaxTotal, inv.Total = computeTotals(newLines, rate)
		inv.UpdatedAt = now
		return invoiceRepo.UpdateTotals(id, inv.Subtotal, inv.TaxTotal, inv.Total, now)
	})
	if err != nil {
		return nil, err
	}

	customerName := ""
	if customer, _ := uc.customerRepo.GetByID(inv.CustomerID); customer != nil {
		customerName = customer.Name
	}
	return toResponse(inv, customerName, newLines), nil
}
