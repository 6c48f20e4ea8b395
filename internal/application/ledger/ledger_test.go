package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comercial-api/internal/application/ledger"
)

func lq(productID string, qty int64) ledger.LineQuantity {
	return ledger.LineQuantity{ProductID: productID, Quantity: decimal.NewFromInt(qty)}
}

func TestNetDeltas(t *testing.T) {
	t.Run("edición típica: subir una línea y bajar otra", func(t *testing.T) {
		old := []ledger.LineQuantity{lq("P1", 10), lq("P2", 10)}
		nw := []ledger.LineQuantity{lq("P1", 12), lq("P2", 8)}

		deltas := ledger.NetDeltas(old, nw)
		require.Len(t, deltas, 2)
		assert.Equal(t, "P1", deltas[0].ProductID)
		assert.True(t, deltas[0].Delta.Equal(decimal.NewFromInt(2)), "P1 pasa de 10 a 12: +2")
		assert.Equal(t, "P2", deltas[1].ProductID)
		assert.True(t, deltas[1].Delta.Equal(decimal.NewFromInt(-2)), "P2 pasa de 10 a 8: -2")
	})

	t.Run("producto sin cambio se omite", func(t *testing.T) {
		old := []ledger.LineQuantity{lq("P1", 5), lq("P2", 3)}
		nw := []ledger.LineQuantity{lq("P1", 5), lq("P2", 7)}

		deltas := ledger.NetDeltas(old, nw)
		require.Len(t, deltas, 1)
		assert.Equal(t, "P2", deltas[0].ProductID)
	})

	t.Run("producto eliminado produce delta negativo completo", func(t *testing.T) {
		old := []ledger.LineQuantity{lq("P1", 5)}
		nw := []ledger.LineQuantity{lq("P2", 3)}

		deltas := ledger.NetDeltas(old, nw)
		require.Len(t, deltas, 2)
		assert.True(t, deltas[0].Delta.Equal(decimal.NewFromInt(-5)))
		assert.True(t, deltas[1].Delta.Equal(decimal.NewFromInt(3)))
	})

	t.Run("mismo detalle no produce deltas", func(t *testing.T) {
		old := []ledger.LineQuantity{lq("P1", 5), lq("P2", 3)}
		assert.Empty(t, ledger.NetDeltas(old, old))
	})

	t.Run("juegos vacíos", func(t *testing.T) {
		assert.Empty(t, ledger.NetDeltas(nil, nil))
	})
}
