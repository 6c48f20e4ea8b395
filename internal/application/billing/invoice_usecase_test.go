package billing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comercial-api/internal/application/apptest"
	"github.com/jhoicas/Comercial-api/internal/application/billing"
	"github.com/jhoicas/Comercial-api/internal/application/dto"
	"github.com/jhoicas/Comercial-api/internal/domain"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
)

func newFixture() (*apptest.Store, *billing.InvoiceUseCase) {
	store := apptest.NewStore()
	runner := apptest.NewRunner(store)
	uc := billing.NewInvoiceUseCase(
		runner,
		store.CustomerRepo(),
		store.ProductRepo(),
		store.PaymentMethodRepo(),
		store.TaxRateRepo(),
		store.InvoiceRepo(),
	)
	return store, uc
}

// seedBase cliente, medio de pago universal y dos productos con stock 10.
func seedBase(store *apptest.Store) {
	store.SeedCustomer("C1")
	store.SeedPaymentMethod("M1", true, true)
	store.SeedProduct("P1", "SKU1", decimal.NewFromInt(10))
	store.SeedProduct("P2", "SKU2", decimal.NewFromInt(10))
}

func item(productID string, qty, price int64) dto.InvoiceItemRequest {
	return dto.InvoiceItemRequest{
		ProductID: productID,
		Quantity:  decimal.NewFromInt(qty),
		UnitPrice: decimal.NewFromInt(price),
	}
}

func createRequest(items ...dto.InvoiceItemRequest) dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		CustomerID:      "C1",
		Channel:         entity.ChannelWeb,
		PaymentMethodID: "M1",
		Items:           items,
	}
}

func TestCreateInvoice(t *testing.T) {
	ctx := context.Background()

	t.Run("emite ISSUED, descuenta stock y calcula totales", func(t *testing.T) {
		store, uc := newFixture()
		seedBase(store)

		resp, err := uc.CreateInvoice(ctx, createRequest(item("P1", 3, 100)))
		require.NoError(t, err)
		assert.Equal(t, entity.InvoiceStatusIssued, resp.Status)
		assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(300)))
		assert.True(t, resp.TaxTotal.Equal(decimal.NewFromInt(57)), "300 * 0.19")
		assert.True(t, resp.Total.Equal(decimal.NewFromInt(357)))

		assert.True(t, store.Products["P1"].Stock.Equal(decimal.NewFromInt(7)))
	})

	t.Run("precio cero toma el precio de lista", func(t *testing.T) {
		store, uc := newFixture()
		seedBase(store)
		store.Products["P1"].Price = decimal.NewFromInt(250)

		resp, err := uc.CreateInvoice(ctx, createRequest(item("P1", 2, 0)))
		require.NoError(t, err)
		assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(500)))
	})

	t.Run("stock insuficiente en cualquier línea anula todo", func(t *testing.T) {
		store, uc := newFixture()
		seedBase(store)

		_, err := uc.CreateInvoice(ctx, createRequest(item("P1", 3, 100), item("P2", 11, 100)))
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)

		assert.True(t, store.Products["P1"].Stock.Equal(decimal.NewFromInt(10)), "P1 restituido")
		assert.True(t, store.Products["P2"].Stock.Equal(decimal.NewFromInt(10)))
		assert.Empty(t, store.Invoices, "no queda factura")
	})

	t.Run("medio de pago no habilitado para el canal", func(t *testing.T) {
		store, uc := newFixture()
		seedBase(store)
		store.SeedPaymentMethod("M2", false, true) // solo POS

		in := createRequest(item("P1", 1, 100))
		in.PaymentMethodID = "M2"
		_, err := uc.CreateInvoice(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("el mismo método sirve en su canal habilitado", func(t *testing.T) {
		store, uc := newFixture()
		seedBase(store)
		store.SeedPaymentMethod("M2", false, true)

		in := createRequest(item("P1", 1, 100))
		in.PaymentMethodID = "M2"
		in.Channel = entity.ChannelInPerson
		_, err := uc.CreateInvoice(ctx, in)
		assert.NoError(t, err)
	})

	t.Run("producto inactivo no es facturable", func(t *testing.T) {
		store, uc := newFixture()
		seedBase(store)
		store.Products["P1"].Active = false

		_, err := uc.CreateInvoice(ctx, createRequest(item("P1", 1, 100)))
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("cliente o método inexistentes", func(t *testing.T) {
		store, uc := newFixture()
		seedBase(store)

		in := createRequest(item("P1", 1, 100))
		in.CustomerID = "nope"
		_, err := uc.CreateInvoice(ctx, in)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		in = createRequest(item("P1", 1, 100))
		in.PaymentMethodID = "nope"
		_, err = uc.CreateInvoice(ctx, in)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEditInvoice(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*apptest.Store, *billing.InvoiceUseCase, string) {
		t.Helper()
		store, uc := newFixture()
		seedBase(store)
		resp, err := uc.CreateInvoice(ctx, createRequest(item("P1", 4, 100), item("P2", 2, 50)))
		require.NoError(t, err)
		return store, uc, resp.ID
	}

	t.Run("aplica solo el delta neto por producto", func(t *testing.T) {
		store, uc, id := setup(t)
		// Tras crear: P1 stock 6, P2 stock 8.

		resp, err := uc.EditInvoice(ctx, id, dto.EditInvoiceRequest{
			Items: []dto.InvoiceItemRequest{item("P1", 6, 100), item("P2", 1, 50)},
		})
		require.NoError(t, err)

		assert.True(t, store.Products["P1"].Stock.Equal(decimal.NewFromInt(4)), "P1: 6 - (6-4)")
		assert.True(t, store.Products["P2"].Stock.Equal(decimal.NewFromInt(9)), "P2: 8 + (2-1)")
		assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(650)), "6*100 + 1*50")
		require.Len(t, store.InvoiceLines[id], 2, "detalle reemplazado")
	})

	t.Run("reorganizar cantidades dentro del stock disponible procede", func(t *testing.T) {
		store, uc, id := setup(t)

		// P1 tiene 6 de stock; subir a 10 pide exactamente el neto (+6).
		_, err := uc.EditInvoice(ctx, id, dto.EditInvoiceRequest{
			Items: []dto.InvoiceItemRequest{item("P1", 10, 100)},
		})
		require.NoError(t, err)
		assert.True(t, store.Products["P1"].Stock.IsZero())
		assert.True(t, store.Products["P2"].Stock.Equal(decimal.NewFromInt(10)), "P2 liberado por completo")
	})

	t.Run("delta neto insuficiente anula la edición completa", func(t *testing.T) {
		store, uc, id := setup(t)

		_, err := uc.EditInvoice(ctx, id, dto.EditInvoiceRequest{
			Items: []dto.InvoiceItemRequest{item("P1", 11, 100)},
		})
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)

		assert.True(t, store.Products["P1"].Stock.Equal(decimal.NewFromInt(6)), "estado previo intacto")
		require.Len(t, store.InvoiceLines[id], 2, "el detalle viejo sobrevive")
	})

	t.Run("solo ISSUED es editable", func(t *testing.T) {
		_, uc, id := setup(t)
		require.NoError(t, uc.PayInvoice(ctx, id))

		_, err := uc.EditInvoice(ctx, id, dto.EditInvoiceRequest{
			Items: []dto.InvoiceItemRequest{item("P1", 1, 100)},
		})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("factura inexistente", func(t *testing.T) {
		store, uc := newFixture()
		seedBase(store)

		_, err := uc.EditInvoice(ctx, "nope", dto.EditInvoiceRequest{
			Items: []dto.InvoiceItemRequest{item("P1", 1, 100)},
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestCancelInvoice(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*apptest.Store, *billing.InvoiceUseCase, string) {
		t.Helper()
		store, uc := newFixture()
		seedBase(store)
		resp, err := uc.CreateInvoice(ctx, createRequest(item("P1", 4, 100)))
		require.NoError(t, err)
		return store, uc, resp.ID
	}

	t.Run("restituye el stock de cada línea", func(t *testing.T) {
		store, uc, id := setup(t)

		require.NoError(t, uc.CancelInvoice(ctx, id))
		assert.Equal(t, entity.InvoiceStatusCancelled, store.Invoices[id].Status)
		assert.True(t, store.Products["P1"].Stock.Equal(decimal.NewFromInt(10)), "4 devueltos")
	})

	t.Run("doble cancelación retorna ErrConflict sin doble restitución", func(t *testing.T) {
		store, uc, id := setup(t)

		require.NoError(t, uc.CancelInvoice(ctx, id))
		assert.ErrorIs(t, uc.CancelInvoice(ctx, id), domain.ErrConflict)
		assert.True(t, store.Products["P1"].Stock.Equal(decimal.NewFromInt(10)), "una sola restitución")
	})

	t.Run("pagada no se cancela", func(t *testing.T) {
		store, uc, id := setup(t)

		require.NoError(t, uc.PayInvoice(ctx, id))
		assert.ErrorIs(t, uc.CancelInvoice(ctx, id), domain.ErrConflict)
		assert.True(t, store.Products["P1"].Stock.Equal(decimal.NewFromInt(6)), "el stock no se restituye")
	})
}

func TestPayInvoice(t *testing.T) {
	ctx := context.Background()
	store, uc := newFixture()
	seedBase(store)

	resp, err := uc.CreateInvoice(ctx, createRequest(item("P1", 1, 100)))
	require.NoError(t, err)

	require.NoError(t, uc.PayInvoice(ctx, resp.ID))
	assert.Equal(t, entity.InvoiceStatusPaid, store.Invoices[resp.ID].Status)

	assert.ErrorIs(t, uc.PayInvoice(ctx, resp.ID), domain.ErrConflict, "PAID es terminal")
	assert.ErrorIs(t, uc.PayInvoice(ctx, "nope"), domain.ErrNotFound)
}
