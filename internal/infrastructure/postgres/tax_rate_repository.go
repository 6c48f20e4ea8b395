package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercial-api/internal/domain/repository"
)

var _ repository.TaxRateRepository = (*TaxRateRepo)(nil)

// TaxRateRepo lee la tarifa de impuesto vigente de la tabla tax_rates. La tabla
// la alimenta el proceso tributario externo; aquí solo se consulta.
type TaxRateRepo struct {
	q Querier
}

// NewTaxRateRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTaxRateRepository(q Querier) *TaxRateRepo {
	return &TaxRateRepo{q: q}
}

// GetCurrentRate devuelve la tarifa vigente (la de fecha efectiva más reciente).
// Sin filas configuradas retorna 0.19 como tarifa por defecto.
func (r *TaxRateRepo) GetCurrentRate() (decimal.Decimal, error) {
	var rate decimal.Decimal
	err := r.q.QueryRow(context.Background(), `
		SELECT rate FROM tax_rates
		WHERE effective_from <= now()
		ORDER BY effective_from DESC LIMIT 1`,
	).Scan(&rate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.NewFromFloat(0.19), nil
		}
		return decimal.Zero, fmt.Errorf("get current tax rate: %w", err)
	}
	return rate, nil
}
