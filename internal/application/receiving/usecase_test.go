package receiving_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comercial-api/internal/application/apptest"
	"github.com/jhoicas/Comercial-api/internal/application/dto"
	"github.com/jhoicas/Comercial-api/internal/application/purchasing"
	"github.com/jhoicas/Comercial-api/internal/application/receiving"
	"github.com/jhoicas/Comercial-api/internal/domain"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
)

const employeeID = "emp-1"

type fixture struct {
	store      *apptest.Store
	receiving  *receiving.UseCase
	purchasing *purchasing.UseCase
}

func newFixture() *fixture {
	store := apptest.NewStore()
	runner := apptest.NewRunner(store)
	return &fixture{
		store:      store,
		receiving:  receiving.NewUseCase(runner, store.ProductRepo(), store.OrderRepo(), store.ReceiptRepo()),
		purchasing: purchasing.NewUseCase(runner, store.SupplierRepo(), store.ProductRepo(), store.OrderRepo()),
	}
}

// newOrder crea una orden de compra de una sola línea (P1 x qty).
func (f *fixture) newOrder(t *testing.T, productID string, qty int64) string {
	t.Helper()
	resp, err := f.purchasing.Create(context.Background(), dto.CreatePurchaseOrderRequest{
		SupplierID: "S1",
		Lines: []dto.PurchaseOrderLineRequest{{
			ProductID: productID,
			Quantity:  decimal.NewFromInt(qty),
			UnitCost:  decimal.NewFromInt(10),
		}},
	})
	require.NoError(t, err)
	return resp.ID
}

func receiptLine(productID string, qty int64) dto.ReceiptLineRequest {
	return dto.ReceiptLineRequest{ProductID: productID, Quantity: decimal.NewFromInt(qty)}
}

func TestCreateReceipt(t *testing.T) {
	ctx := context.Background()

	t.Run("recepción libre suma stock e ingresos", func(t *testing.T) {
		f := newFixture()
		f.store.SeedProduct("P1", "SKU1", decimal.NewFromInt(3))

		resp, err := f.receiving.Create(ctx, employeeID, dto.CreateReceiptRequest{
			Lines: []dto.ReceiptLineRequest{receiptLine("P1", 7)},
		})
		require.NoError(t, err)
		assert.Equal(t, entity.ReceiptStatusActive, resp.Status)
		assert.Nil(t, resp.OrderID)

		p := f.store.Products["P1"]
		assert.True(t, p.Stock.Equal(decimal.NewFromInt(10)), "3 + 7")
		assert.True(t, p.Ingresos.Equal(decimal.NewFromInt(7)))
	})

	t.Run("con orden: avanza qty_received y deriva el estado", func(t *testing.T) {
		f := newFixture()
		f.store.SeedSupplier("S1")
		f.store.SeedProduct("P1", "SKU1", decimal.Zero)
		orderID := f.newOrder(t, "P1", 10)

		resp, err := f.receiving.Create(ctx, employeeID, dto.CreateReceiptRequest{
			OrderID: &orderID,
			Lines:   []dto.ReceiptLineRequest{receiptLine("P1", 6)},
		})
		require.NoError(t, err)
		assert.Equal(t, entity.OrderStatusPartial, resp.OrderStatus, "6 de 10 recibidos")

		lines := f.store.OrderLines[orderID]
		require.Len(t, lines, 1)
		assert.True(t, lines[0].QtyReceived.Equal(decimal.NewFromInt(6)))
	})

	t.Run("orden cancelada rechaza recepción", func(t *testing.T) {
		f := newFixture()
		f.store.SeedSupplier("S1")
		f.store.SeedProduct("P1", "SKU1", decimal.Zero)
		orderID := f.newOrder(t, "P1", 10)
		require.NoError(t, f.purchasing.Cancel(ctx, orderID))

		_, err := f.receiving.Create(ctx, employeeID, dto.CreateReceiptRequest{
			OrderID: &orderID,
			Lines:   []dto.ReceiptLineRequest{receiptLine("P1", 6)},
		})
		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.True(t, f.store.Products["P1"].Stock.IsZero(), "el stock no se toca")
	})

	t.Run("línea sin homóloga en la orden", func(t *testing.T) {
		f := newFixture()
		f.store.SeedSupplier("S1")
		f.store.SeedProduct("P1", "SKU1", decimal.Zero)
		f.store.SeedProduct("P2", "SKU2", decimal.Zero)
		orderID := f.newOrder(t, "P1", 10)

		_, err := f.receiving.Create(ctx, employeeID, dto.CreateReceiptRequest{
			OrderID: &orderID,
			Lines:   []dto.ReceiptLineRequest{receiptLine("P2", 1)},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("producto inexistente", func(t *testing.T) {
		f := newFixture()
		_, err := f.receiving.Create(ctx, employeeID, dto.CreateReceiptRequest{
			Lines: []dto.ReceiptLineRequest{receiptLine("nope", 1)},
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("cantidad no positiva o producto repetido", func(t *testing.T) {
		f := newFixture()
		f.store.SeedProduct("P1", "SKU1", decimal.Zero)

		_, err := f.receiving.Create(ctx, employeeID, dto.CreateReceiptRequest{
			Lines: []dto.ReceiptLineRequest{receiptLine("P1", 0)},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		_, err = f.receiving.Create(ctx, employeeID, dto.CreateReceiptRequest{
			Lines: []dto.ReceiptLineRequest{receiptLine("P1", 1), receiptLine("P1", 2)},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestCancelReceipt(t *testing.T) {
	ctx := context.Background()

	t.Run("revierte exactamente stock, ingresos y qty_received", func(t *testing.T) {
		f := newFixture()
		f.store.SeedSupplier("S1")
		f.store.SeedProduct("P1", "SKU1", decimal.NewFromInt(2))
		orderID := f.newOrder(t, "P1", 10)

		created, err := f.receiving.Create(ctx, employeeID, dto.CreateReceiptRequest{
			OrderID: &orderID,
			Lines:   []dto.ReceiptLineRequest{receiptLine("P1", 6)},
		})
		require.NoError(t, err)

		cancelled, err := f.receiving.Cancel(ctx, created.ID, "conteo errado")
		require.NoError(t, err)
		assert.Equal(t, entity.ReceiptStatusCancelled, cancelled.Status)
		assert.Equal(t, "conteo errado", cancelled.CancelReason)
		assert.Equal(t, entity.OrderStatusPending, cancelled.OrderStatus, "la orden vuelve a PENDING")

		p := f.store.Products["P1"]
		assert.True(t, p.Stock.Equal(decimal.NewFromInt(2)), "stock restituido al valor previo")
		assert.True(t, p.Ingresos.IsZero(), "ingresos restituidos")
		assert.True(t, f.store.OrderLines[orderID][0].QtyReceived.IsZero())
	})

	t.Run("doble cancelación retorna ErrConflict sin doble reversión", func(t *testing.T) {
		f := newFixture()
		f.store.SeedProduct("P1", "SKU1", decimal.Zero)

		created, err := f.receiving.Create(ctx, employeeID, dto.CreateReceiptRequest{
			Lines: []dto.ReceiptLineRequest{receiptLine("P1", 5)},
		})
		require.NoError(t, err)

		_, err = f.receiving.Cancel(ctx, created.ID, "error")
		require.NoError(t, err)

		_, err = f.receiving.Cancel(ctx, created.ID, "otra vez")
		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.True(t, f.store.Products["P1"].Stock.IsZero(), "una sola reversión aplicada")
	})

	t.Run("stock ya consumido aborta sin efecto parcial", func(t *testing.T) {
		f := newFixture()
		f.store.SeedProduct("P1", "SKU1", decimal.Zero)

		created, err := f.receiving.Create(ctx, employeeID, dto.CreateReceiptRequest{
			Lines: []dto.ReceiptLineRequest{receiptLine("P1", 5)},
		})
		require.NoError(t, err)

		// Simular consumo externo: el stock recibido ya salió por venta.
		f.store.Products["P1"].Stock = decimal.NewFromInt(2)

		_, err = f.receiving.Cancel(ctx, created.ID, "devolución")
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)

		p := f.store.Products["P1"]
		assert.True(t, p.Stock.Equal(decimal.NewFromInt(2)), "rollback: nada cambió")
		assert.True(t, p.Ingresos.Equal(decimal.NewFromInt(5)))
		assert.Equal(t, entity.ReceiptStatusActive, f.store.Receipts[created.ID].Status)
	})

	t.Run("ingresos insuficientes abortan antes de mutar", func(t *testing.T) {
		f := newFixture()
		f.store.SeedProduct("P1", "SKU1", decimal.Zero)

		created, err := f.receiving.Create(ctx, employeeID, dto.CreateReceiptRequest{
			Lines: []dto.ReceiptLineRequest{receiptLine("P1", 5)},
		})
		require.NoError(t, err)

		// Estado inconsistente inducido: ingresos por debajo de lo recibido.
		f.store.Products["P1"].Ingresos = decimal.NewFromInt(3)

		_, err = f.receiving.Cancel(ctx, created.ID, "devolución")
		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.True(t, f.store.Products["P1"].Stock.Equal(decimal.NewFromInt(5)), "sin efecto parcial")
	})

	t.Run("motivo obligatorio", func(t *testing.T) {
		f := newFixture()
		_, err := f.receiving.Cancel(ctx, "R1", "")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

// TestReceiptOrderLifecycle recorre el ciclo completo: dos recepciones cierran
// la orden y cancelar la primera la reabre a PARTIAL.
func TestReceiptOrderLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.store.SeedSupplier("S1")
	f.store.SeedProduct("P1", "SKU1", decimal.Zero)
	orderID := f.newOrder(t, "P1", 10)

	recA, err := f.receiving.Create(ctx, employeeID, dto.CreateReceiptRequest{
		OrderID: &orderID,
		Lines:   []dto.ReceiptLineRequest{receiptLine("P1", 6)},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPartial, recA.OrderStatus)

	recB, err := f.receiving.Create(ctx, employeeID, dto.CreateReceiptRequest{
		OrderID: &orderID,
		Lines:   []dto.ReceiptLineRequest{receiptLine("P1", 4)},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusClosed, recB.OrderStatus, "6 + 4 cubre los 10 pedidos")
	assert.True(t, f.store.Products["P1"].Stock.Equal(decimal.NewFromInt(10)))

	cancelled, err := f.receiving.Cancel(ctx, recA.ID, "lote rechazado")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPartial, cancelled.OrderStatus, "la orden se reabre")

	assert.True(t, f.store.Products["P1"].Stock.Equal(decimal.NewFromInt(4)))
	assert.True(t, f.store.Products["P1"].Ingresos.Equal(decimal.NewFromInt(4)))
	assert.True(t, f.store.OrderLines[orderID][0].QtyReceived.Equal(decimal.NewFromInt(4)))
}
