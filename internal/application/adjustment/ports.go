package adjustment

import (
	"context"

	"github.com/jhoicas/Comercial-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios del ciclo de ajustes.
type TxRunner interface {
	RunAdjustment(ctx context.Context, fn func(
		adjustmentRepo repository.AdjustmentRepository,
		productRepo repository.ProductRepository,
	) error) error
}
