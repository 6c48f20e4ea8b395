package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Comercial-api/internal/domain/entity"
)

func line(ordered, received int64) entity.PurchaseOrderLine {
	return entity.PurchaseOrderLine{
		QtyOrdered:  decimal.NewFromInt(ordered),
		QtyReceived: decimal.NewFromInt(received),
		UnitCost:    decimal.NewFromInt(10),
	}
}

func TestDeriveOrderStatus(t *testing.T) {
	cases := []struct {
		name  string
		lines []entity.PurchaseOrderLine
		want  string
	}{
		{"sin líneas", nil, entity.OrderStatusPending},
		{"nada recibido", []entity.PurchaseOrderLine{line(10, 0), line(5, 0)}, entity.OrderStatusPending},
		{"recepción parcial en una línea", []entity.PurchaseOrderLine{line(10, 6), line(5, 0)}, entity.OrderStatusPartial},
		{"una línea completa y otra no", []entity.PurchaseOrderLine{line(10, 10), line(5, 0)}, entity.OrderStatusPartial},
		{"todas las líneas completas", []entity.PurchaseOrderLine{line(10, 10), line(5, 5)}, entity.OrderStatusClosed},
		{"sobre-recepción también cierra", []entity.PurchaseOrderLine{line(10, 12)}, entity.OrderStatusClosed},
		{
			// El agregado (15 recibido de 15 pedido) engañaría a una comparación
			// global; por línea la orden sigue parcial.
			"comparación por línea, no agregada",
			[]entity.PurchaseOrderLine{line(10, 15), line(5, 0)},
			entity.OrderStatusPartial,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, entity.DeriveOrderStatus(tc.lines))
		})
	}
}

func TestOrderSubtotal(t *testing.T) {
	lines := []entity.PurchaseOrderLine{
		{QtyOrdered: decimal.NewFromInt(3), UnitCost: decimal.NewFromInt(100)},
		{QtyOrdered: decimal.NewFromInt(2), UnitCost: decimal.NewFromFloat(50.5)},
	}
	assert.True(t, entity.OrderSubtotal(lines).Equal(decimal.NewFromInt(401)),
		"3*100 + 2*50.5 = 401")
}

func TestPaymentMethodAvailableForChannel(t *testing.T) {
	m := entity.PaymentMethod{Active: true, WebEnabled: true, POSEnabled: false}
	assert.True(t, m.AvailableForChannel(entity.ChannelWeb))
	assert.False(t, m.AvailableForChannel(entity.ChannelInPerson))

	m.Active = false
	assert.False(t, m.AvailableForChannel(entity.ChannelWeb), "método inactivo no aplica a ningún canal")
}
