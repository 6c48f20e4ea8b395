package repository

import "github.com/shopspring/decimal"

// TaxRateRepository expone la tarifa de impuesto vigente para facturación.
// El cálculo tributario en sí es externo; aquí solo se consulta el porcentaje
// actual (ej. 0.19) ya validado.
type TaxRateRepository interface {
	GetCurrentRate() (decimal.Decimal, error)
}
