package apptest

import (
	"context"

	"github.com/jhoicas/Comercial-api/internal/domain/repository"
)

// Runner TxRunner falso: toma un snapshot del almacén antes del callback y lo
// restaura si este falla, emulando el rollback de una transacción real.
type Runner struct {
	Store *Store
}

// NewRunner construye el runner sobre el almacén dado.
func NewRunner(s *Store) *Runner {
	return &Runner{Store: s}
}

func (r *Runner) run(fn func() error) error {
	snap := r.Store.snapshot()
	if err := fn(); err != nil {
		r.Store.restore(snap)
		return err
	}
	return nil
}

// RunPurchasing implementa purchasing.TxRunner.
func (r *Runner) RunPurchasing(_ context.Context, fn func(
	orderRepo repository.PurchaseOrderRepository,
	receiptRepo repository.ReceiptRepository,
) error) error {
	return r.run(func() error {
		return fn(r.Store.OrderRepo(), r.Store.ReceiptRepo())
	})
}

// RunReceiving implementa receiving.TxRunner.
func (r *Runner) RunReceiving(_ context.Context, fn func(
	receiptRepo repository.ReceiptRepository,
	orderRepo repository.PurchaseOrderRepository,
	productRepo repository.ProductRepository,
) error) error {
	return r.run(func() error {
		return fn(r.Store.ReceiptRepo(), r.Store.OrderRepo(), r.Store.ProductRepo())
	})
}

// RunAdjustment implementa adjustment.TxRunner.
func (r *Runner) RunAdjustment(_ context.Context, fn func(
	adjustmentRepo repository.AdjustmentRepository,
	productRepo repository.ProductRepository,
) error) error {
	return r.run(func() error {
		return fn(r.Store.AdjustmentRepo(), r.Store.ProductRepo())
	})
}

// RunBilling implementa billing.BillingTxRunner.
func (r *Runner) RunBilling(_ context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
	productRepo repository.ProductRepository,
) error) error {
	return r.run(func() error {
		return fn(r.Store.InvoiceRepo(), r.Store.ProductRepo())
	})
}
