// Package ledger concentra toda mutación de existencias en un solo punto.
// Los cuatro ciclos de documento (órdenes, recepciones, ajustes, facturas)
// pasan por aquí; ningún caso de uso toca stock, ingresos o ajustes directo
// contra el repositorio.
package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercial-api/internal/domain/repository"
)

// StockLedger aplica deltas de stock sobre un ProductRepository atado a la
// transacción en curso. La primitiva subyacente es un UPDATE condicional de una
// sola sentencia, así que el motor de BD serializa operaciones concurrentes
// sobre el mismo producto sin bloqueo en proceso.
type StockLedger struct {
	products repository.ProductRepository
}

// New construye el ledger sobre los repos de la transacción actual.
func New(products repository.ProductRepository) *StockLedger {
	return &StockLedger{products: products}
}

// ApplyDelta suma delta (con signo) al stock del producto y devuelve el saldo
// resultante. domain.ErrInsufficientStock si el saldo quedaría negativo; el
// efecto es todo-o-nada dentro de la transacción abierta por el caller.
func (l *StockLedger) ApplyDelta(productID string, delta decimal.Decimal) (decimal.Decimal, error) {
	return l.products.ApplyStockDelta(productID, delta)
}

// AddIngresos ajusta el acumulado de entradas por recepción. Sin piso: es un
// total histórico, no una existencia.
func (l *StockLedger) AddIngresos(productID string, delta decimal.Decimal) error {
	return l.products.AddIngresos(productID, delta)
}

// AddAjustes ajusta el acumulado neto de ajustes manuales (puede ser negativo).
func (l *StockLedger) AddAjustes(productID string, delta decimal.Decimal) error {
	return l.products.AddAjustes(productID, delta)
}

// LineQuantity es la vista mínima de una línea para calcular deltas netos.
type LineQuantity struct {
	ProductID string
	Quantity  decimal.Decimal
}

// ProductDelta es el delta neto de un producto tras comparar dos juegos de líneas.
type ProductDelta struct {
	ProductID string
	Delta     decimal.Decimal
}

// NetDeltas calcula, por producto, newQty - oldQty entre dos juegos de líneas.
// Se usa en la edición de facturas: aplicar un único delta neto por producto en
// lugar de restar-todo y sumar-todo evita que una reorganización de cantidades
// falle transitoriamente una verificación de stock que el efecto neto sí pasa.
// El resultado viene ordenado por ProductID para que el orden de aplicación sea
// determinista; los productos cuyo neto es cero se omiten.
func NetDeltas(oldLines, newLines []LineQuantity) []ProductDelta {
	net := make(map[string]decimal.Decimal)
	for _, l := range oldLines {
		net[l.ProductID] = net[l.ProductID].Sub(l.Quantity)
	}
	for _, l := range newLines {
		net[l.ProductID] = net[l.ProductID].Add(l.Quantity)
	}

	deltas := make([]ProductDelta, 0, len(net))
	for id, d := range net {
		if d.IsZero() {
			continue
		}
		deltas = append(deltas, ProductDelta{ProductID: id, Delta: d})
	}
	sort.Slice(deltas, func(i, j int) bool { return deltas[i].ProductID < deltas[j].ProductID })
	return deltas
}
