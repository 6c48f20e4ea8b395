package receiving

import (
	"context"

	"github.com/jhoicas/Comercial-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios que necesita el ciclo de recepciones: la recepción misma, la
// orden de compra asociada y los contadores de producto (vía ledger).
type TxRunner interface {
	RunReceiving(ctx context.Context, fn func(
		receiptRepo repository.ReceiptRepository,
		orderRepo repository.PurchaseOrderRepository,
		productRepo repository.ProductRepository,
	) error) error
}
