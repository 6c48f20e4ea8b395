package billing

import (
	"context"
	"time"

	"github.com/jhoicas/Comercial-api/internal/application/ledger"
	"github.com/jhoicas/Comercial-api/internal/domain"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	"github.com/jhoicas/Comercial-api/internal/domain/repository"
)

// CancelInvoice anula una factura ISSUED restituyendo el stock de cada línea.
// Restituir solo puede aumentar stock, así que no hay piso que vigilar.
// CANCELLED y PAID son terminales: desde ellos la cancelación retorna ErrConflict.
func (uc *InvoiceUseCase) CancelInvoice(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		productRepo repository.ProductRepository,
	) error {
		stock := ledger.New(productRepo)

		inv, err := invoiceRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if inv.Status != entity.InvoiceStatusIssued {
			return domain.ErrConflict
		}
		lines, err := invoiceRepo.GetLinesByInvoiceID(id)
		if err != nil {
			return err
		}
		for _, l := range lines {
			if _, err := stock.ApplyDelta(l.ProductID, l.Quantity); err != nil {
				return err
			}
		}
		return invoiceRepo.UpdateStatus(id, entity.InvoiceStatusCancelled, time.Now())
	})
}

// PayInvoice marca una factura ISSUED como PAID (terminal). No toca stock.
func (uc *InvoiceUseCase) PayInvoice(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		_ repository.ProductRepository,
	) error {
		inv, err := invoiceRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if inv.Status != entity.InvoiceStatusIssued {
			return domain.ErrConflict
		}
		return invoiceRepo.UpdateStatus(id, entity.InvoiceStatusPaid, time.Now())
	})
}
