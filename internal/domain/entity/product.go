package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo.
// Stock es la existencia actual y nunca puede quedar negativa tras una transacción
// confirmada. Ingresos es el acumulado histórico de entradas por recepción (monótono
// no negativo) y Ajustes el acumulado neto de ajustes manuales (cualquier signo).
// Los tres contadores se mutan únicamente a través del ledger, nunca directo.
type Product struct {
	ID          string
	SKU         string // código único
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta
	TaxRate     decimal.Decimal // IVA aplicado en facturación: 0, 0.05, 0.19
	Active      bool
	Stock       decimal.Decimal
	Ingresos    decimal.Decimal
	Ajustes     decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
