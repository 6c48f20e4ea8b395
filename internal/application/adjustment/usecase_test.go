package adjustment_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comercial-api/internal/application/adjustment"
	"github.com/jhoicas/Comercial-api/internal/application/apptest"
	"github.com/jhoicas/Comercial-api/internal/application/dto"
	"github.com/jhoicas/Comercial-api/internal/domain"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
)

const userID = "user-1"

func newFixture() (*apptest.Store, *adjustment.UseCase) {
	store := apptest.NewStore()
	runner := apptest.NewRunner(store)
	uc := adjustment.NewUseCase(runner, store.ProductRepo(), store.AdjustmentRepo())
	return store, uc
}

func adjLine(productID string, qty int64) dto.AdjustmentLineRequest {
	return dto.AdjustmentLineRequest{ProductID: productID, Quantity: decimal.NewFromInt(qty)}
}

func TestCreateAdjustment(t *testing.T) {
	ctx := context.Background()

	t.Run("IN suma stock y ajustes", func(t *testing.T) {
		store, uc := newFixture()
		store.SeedProduct("P1", "SKU1", decimal.NewFromInt(3))

		resp, err := uc.Create(ctx, userID, dto.CreateAdjustmentRequest{
			Type:  entity.AdjustmentTypeIn,
			Lines: []dto.AdjustmentLineRequest{adjLine("P1", 5)},
		})
		require.NoError(t, err)
		assert.Equal(t, entity.AdjustmentStatusActive, resp.Status)

		p := store.Products["P1"]
		assert.True(t, p.Stock.Equal(decimal.NewFromInt(8)))
		assert.True(t, p.Ajustes.Equal(decimal.NewFromInt(5)))
	})

	t.Run("OUT resta stock y ajustes", func(t *testing.T) {
		store, uc := newFixture()
		store.SeedProduct("P1", "SKU1", decimal.NewFromInt(10))

		_, err := uc.Create(ctx, userID, dto.CreateAdjustmentRequest{
			Type:  entity.AdjustmentTypeOut,
			Lines: []dto.AdjustmentLineRequest{adjLine("P1", 4)},
		})
		require.NoError(t, err)

		p := store.Products["P1"]
		assert.True(t, p.Stock.Equal(decimal.NewFromInt(6)))
		assert.True(t, p.Ajustes.Equal(decimal.NewFromInt(-4)))
	})

	t.Run("OUT igual al stock deja cero; una unidad más falla", func(t *testing.T) {
		store, uc := newFixture()
		store.SeedProduct("P1", "SKU1", decimal.NewFromInt(10))

		_, err := uc.Create(ctx, userID, dto.CreateAdjustmentRequest{
			Type:  entity.AdjustmentTypeOut,
			Lines: []dto.AdjustmentLineRequest{adjLine("P1", 10)},
		})
		require.NoError(t, err)
		assert.True(t, store.Products["P1"].Stock.IsZero())

		_, err = uc.Create(ctx, userID, dto.CreateAdjustmentRequest{
			Type:  entity.AdjustmentTypeOut,
			Lines: []dto.AdjustmentLineRequest{adjLine("P1", 1)},
		})
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		assert.True(t, store.Products["P1"].Stock.IsZero(), "el stock no baja de cero")
	})

	t.Run("OUT multilínea con una línea insuficiente no aplica nada", func(t *testing.T) {
		store, uc := newFixture()
		store.SeedProduct("P1", "SKU1", decimal.NewFromInt(10))
		store.SeedProduct("P2", "SKU2", decimal.NewFromInt(1))

		_, err := uc.Create(ctx, userID, dto.CreateAdjustmentRequest{
			Type:  entity.AdjustmentTypeOut,
			Lines: []dto.AdjustmentLineRequest{adjLine("P1", 5), adjLine("P2", 2)},
		})
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		assert.True(t, store.Products["P1"].Stock.Equal(decimal.NewFromInt(10)), "P1 no se toca")
		assert.Empty(t, store.Adjustments, "no queda cabecera")
	})

	t.Run("tipo inválido", func(t *testing.T) {
		store, uc := newFixture()
		store.SeedProduct("P1", "SKU1", decimal.NewFromInt(10))

		_, err := uc.Create(ctx, userID, dto.CreateAdjustmentRequest{
			Type:  "SIDEWAYS",
			Lines: []dto.AdjustmentLineRequest{adjLine("P1", 1)},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("producto inexistente", func(t *testing.T) {
		_, uc := newFixture()
		_, err := uc.Create(ctx, userID, dto.CreateAdjustmentRequest{
			Type:  entity.AdjustmentTypeIn,
			Lines: []dto.AdjustmentLineRequest{adjLine("nope", 1)},
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestCancelAdjustment(t *testing.T) {
	ctx := context.Background()

	t.Run("cancelar un IN resta lo sumado", func(t *testing.T) {
		store, uc := newFixture()
		store.SeedProduct("P1", "SKU1", decimal.NewFromInt(3))

		created, err := uc.Create(ctx, userID, dto.CreateAdjustmentRequest{
			Type:  entity.AdjustmentTypeIn,
			Lines: []dto.AdjustmentLineRequest{adjLine("P1", 5)},
		})
		require.NoError(t, err)

		cancelled, err := uc.Cancel(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.AdjustmentStatusCancelled, cancelled.Status)

		p := store.Products["P1"]
		assert.True(t, p.Stock.Equal(decimal.NewFromInt(3)), "stock de vuelta al valor previo")
		assert.True(t, p.Ajustes.IsZero())
	})

	t.Run("cancelar un OUT restituye lo restado", func(t *testing.T) {
		store, uc := newFixture()
		store.SeedProduct("P1", "SKU1", decimal.NewFromInt(10))

		created, err := uc.Create(ctx, userID, dto.CreateAdjustmentRequest{
			Type:  entity.AdjustmentTypeOut,
			Lines: []dto.AdjustmentLineRequest{adjLine("P1", 4)},
		})
		require.NoError(t, err)

		_, err = uc.Cancel(ctx, created.ID)
		require.NoError(t, err)

		p := store.Products["P1"]
		assert.True(t, p.Stock.Equal(decimal.NewFromInt(10)))
		assert.True(t, p.Ajustes.IsZero())
	})

	t.Run("cancelar un IN con stock ya consumido aborta completo", func(t *testing.T) {
		store, uc := newFixture()
		store.SeedProduct("P1", "SKU1", decimal.Zero)

		created, err := uc.Create(ctx, userID, dto.CreateAdjustmentRequest{
			Type:  entity.AdjustmentTypeIn,
			Lines: []dto.AdjustmentLineRequest{adjLine("P1", 5)},
		})
		require.NoError(t, err)

		// El stock ajustado ya salió por otra vía.
		store.Products["P1"].Stock = decimal.NewFromInt(2)

		_, err = uc.Cancel(ctx, created.ID)
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)

		p := store.Products["P1"]
		assert.True(t, p.Stock.Equal(decimal.NewFromInt(2)), "rollback completo")
		assert.True(t, p.Ajustes.Equal(decimal.NewFromInt(5)))
		assert.Equal(t, entity.AdjustmentStatusActive, store.Adjustments[created.ID].Status)
	})

	t.Run("doble cancelación retorna ErrConflict", func(t *testing.T) {
		store, uc := newFixture()
		store.SeedProduct("P1", "SKU1", decimal.NewFromInt(10))

		created, err := uc.Create(ctx, userID, dto.CreateAdjustmentRequest{
			Type:  entity.AdjustmentTypeOut,
			Lines: []dto.AdjustmentLineRequest{adjLine("P1", 4)},
		})
		require.NoError(t, err)

		_, err = uc.Cancel(ctx, created.ID)
		require.NoError(t, err)

		_, err = uc.Cancel(ctx, created.ID)
		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.True(t, store.Products["P1"].Stock.Equal(decimal.NewFromInt(10)), "una sola reversión")
	})

	t.Run("ajuste inexistente", func(t *testing.T) {
		_, uc := newFixture()
		_, err := uc.Cancel(ctx, "nope")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
