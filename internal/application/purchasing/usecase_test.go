package purchasing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comercial-api/internal/application/apptest"
	"github.com/jhoicas/Comercial-api/internal/application/dto"
	"github.com/jhoicas/Comercial-api/internal/application/purchasing"
	"github.com/jhoicas/Comercial-api/internal/domain"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
)

func newFixture() (*apptest.Store, *purchasing.UseCase) {
	store := apptest.NewStore()
	runner := apptest.NewRunner(store)
	uc := purchasing.NewUseCase(runner, store.SupplierRepo(), store.ProductRepo(), store.OrderRepo())
	return store, uc
}

func orderLine(productID string, qty, cost int64) dto.PurchaseOrderLineRequest {
	return dto.PurchaseOrderLineRequest{
		ProductID: productID,
		Quantity:  decimal.NewFromInt(qty),
		UnitCost:  decimal.NewFromInt(cost),
	}
}

func TestCreatePurchaseOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("crea PENDING con totales calculados", func(t *testing.T) {
		store, uc := newFixture()
		store.SeedSupplier("S1")
		store.SeedProduct("P1", "SKU1", decimal.Zero)
		store.SeedProduct("P2", "SKU2", decimal.Zero)

		resp, err := uc.Create(ctx, dto.CreatePurchaseOrderRequest{
			SupplierID: "S1",
			Lines:      []dto.PurchaseOrderLineRequest{orderLine("P1", 10, 100), orderLine("P2", 5, 20)},
		})
		require.NoError(t, err)
		assert.Equal(t, entity.OrderStatusPending, resp.Status)
		assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(1100)), "10*100 + 5*20")
		require.Len(t, resp.Lines, 2)
		assert.True(t, resp.Lines[0].QtyReceived.IsZero(), "qty_received inicia en cero")

		lines := store.OrderLines[resp.ID]
		assert.Len(t, lines, 2, "las líneas quedan persistidas")
	})

	t.Run("proveedor inexistente", func(t *testing.T) {
		store, uc := newFixture()
		store.SeedProduct("P1", "SKU1", decimal.Zero)

		_, err := uc.Create(ctx, dto.CreatePurchaseOrderRequest{
			SupplierID: "nope",
			Lines:      []dto.PurchaseOrderLineRequest{orderLine("P1", 1, 1)},
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("proveedor inactivo", func(t *testing.T) {
		store, uc := newFixture()
		sp := store.SeedSupplier("S1")
		sp.Active = false
		store.SeedProduct("P1", "SKU1", decimal.Zero)

		_, err := uc.Create(ctx, dto.CreatePurchaseOrderRequest{
			SupplierID: "S1",
			Lines:      []dto.PurchaseOrderLineRequest{orderLine("P1", 1, 1)},
		})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("producto repetido en líneas", func(t *testing.T) {
		store, uc := newFixture()
		store.SeedSupplier("S1")
		store.SeedProduct("P1", "SKU1", decimal.Zero)

		_, err := uc.Create(ctx, dto.CreatePurchaseOrderRequest{
			SupplierID: "S1",
			Lines:      []dto.PurchaseOrderLineRequest{orderLine("P1", 1, 1), orderLine("P1", 2, 1)},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("cantidad o costo no positivos", func(t *testing.T) {
		store, uc := newFixture()
		store.SeedSupplier("S1")
		store.SeedProduct("P1", "SKU1", decimal.Zero)

		_, err := uc.Create(ctx, dto.CreatePurchaseOrderRequest{
			SupplierID: "S1",
			Lines:      []dto.PurchaseOrderLineRequest{orderLine("P1", 0, 1)},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		_, err = uc.Create(ctx, dto.CreatePurchaseOrderRequest{
			SupplierID: "S1",
			Lines:      []dto.PurchaseOrderLineRequest{orderLine("P1", 1, 0)},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("sin líneas", func(t *testing.T) {
		store, uc := newFixture()
		store.SeedSupplier("S1")

		_, err := uc.Create(ctx, dto.CreatePurchaseOrderRequest{SupplierID: "S1"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestUpdatePurchaseOrder(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*apptest.Store, *purchasing.UseCase, string) {
		t.Helper()
		store, uc := newFixture()
		store.SeedSupplier("S1")
		store.SeedProduct("P1", "SKU1", decimal.Zero)
		store.SeedProduct("P2", "SKU2", decimal.Zero)
		resp, err := uc.Create(ctx, dto.CreatePurchaseOrderRequest{
			SupplierID: "S1",
			Lines:      []dto.PurchaseOrderLineRequest{orderLine("P1", 10, 100)},
		})
		require.NoError(t, err)
		return store, uc, resp.ID
	}

	t.Run("reemplaza el detalle completo mientras está PENDING", func(t *testing.T) {
		store, uc, id := setup(t)

		resp, err := uc.Update(ctx, id, dto.UpdatePurchaseOrderRequest{
			Lines: []dto.PurchaseOrderLineRequest{orderLine("P2", 3, 50)},
		})
		require.NoError(t, err)
		require.Len(t, resp.Lines, 1)
		assert.Equal(t, "P2", resp.Lines[0].ProductID)
		assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(150)))

		lines := store.OrderLines[id]
		require.Len(t, lines, 1, "el detalle viejo se elimina")
		assert.Equal(t, "P2", lines[0].ProductID)
	})

	t.Run("orden no PENDING queda bloqueada para reemplazo", func(t *testing.T) {
		store, uc, id := setup(t)
		store.Orders[id].Status = entity.OrderStatusPartial

		_, err := uc.Update(ctx, id, dto.UpdatePurchaseOrderRequest{
			Lines: []dto.PurchaseOrderLineRequest{orderLine("P2", 3, 50)},
		})
		assert.ErrorIs(t, err, domain.ErrConflict)

		lines := store.OrderLines[id]
		require.Len(t, lines, 1, "rollback: el detalle original sobrevive")
		assert.Equal(t, "P1", lines[0].ProductID)
	})

	t.Run("orden inexistente", func(t *testing.T) {
		store, uc := newFixture()
		store.SeedProduct("P1", "SKU1", decimal.Zero)

		_, err := uc.Update(ctx, "nope", dto.UpdatePurchaseOrderRequest{
			Lines: []dto.PurchaseOrderLineRequest{orderLine("P1", 1, 1)},
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestCancelPurchaseOrder(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*apptest.Store, *purchasing.UseCase, string) {
		t.Helper()
		store, uc := newFixture()
		store.SeedSupplier("S1")
		store.SeedProduct("P1", "SKU1", decimal.Zero)
		resp, err := uc.Create(ctx, dto.CreatePurchaseOrderRequest{
			SupplierID: "S1",
			Lines:      []dto.PurchaseOrderLineRequest{orderLine("P1", 10, 100)},
		})
		require.NoError(t, err)
		return store, uc, resp.ID
	}

	t.Run("cancela una orden sin recepciones", func(t *testing.T) {
		store, uc, id := setup(t)

		require.NoError(t, uc.Cancel(ctx, id))
		assert.Equal(t, entity.OrderStatusCancelled, store.Orders[id].Status)
	})

	t.Run("doble cancelación retorna ErrConflict", func(t *testing.T) {
		_, uc, id := setup(t)

		require.NoError(t, uc.Cancel(ctx, id))
		assert.ErrorIs(t, uc.Cancel(ctx, id), domain.ErrConflict)
	})

	t.Run("con recepciones asociadas no procede", func(t *testing.T) {
		store, uc, id := setup(t)
		oid := id
		store.Receipts["R1"] = &entity.WarehouseReceipt{
			ID:      "R1",
			OrderID: &oid,
			Status:  entity.ReceiptStatusActive,
		}

		assert.ErrorIs(t, uc.Cancel(ctx, id), domain.ErrStaleReference)
		assert.Equal(t, entity.OrderStatusPending, store.Orders[id].Status, "la orden no se muta")
	})

	t.Run("recepciones canceladas también bloquean", func(t *testing.T) {
		store, uc, id := setup(t)
		oid := id
		store.Receipts["R1"] = &entity.WarehouseReceipt{
			ID:      "R1",
			OrderID: &oid,
			Status:  entity.ReceiptStatusCancelled,
		}

		assert.ErrorIs(t, uc.Cancel(ctx, id), domain.ErrStaleReference)
	})
}
