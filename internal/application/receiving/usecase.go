package receiving

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercial-api/internal/application/dto"
	"github.com/jhoicas/Comercial-api/internal/application/ledger"
	"github.com/jhoicas/Comercial-api/internal/domain"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	"github.com/jhoicas/Comercial-api/internal/domain/repository"
)

// UseCase maneja el ciclo de vida de recepciones de bodega. Crear una recepción
// suma stock e ingresos por línea y, si referencia orden de compra, avanza
// qty_received y recalcula el estado derivado de la orden. Cancelarla aplica el
// inverso exacto, todo-o-nada.
type UseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	orderRepo   repository.PurchaseOrderRepository
	receiptRepo repository.ReceiptRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	orderRepo repository.PurchaseOrderRepository,
	receiptRepo repository.ReceiptRepository,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		receiptRepo: receiptRepo,
	}
}

// Create registra la entrada de mercancía. Validaciones de solo lectura fuera
// de la tx; dentro: cabecera ACTIVE + líneas, delta de stock e ingresos por
// línea y, si hay orden, avance de qty_received con recálculo de estado.
func (uc *UseCase) Create(ctx context.Context, employeeID string, in dto.CreateReceiptRequest) (*dto.ReceiptResponse, error) {
	if employeeID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	seen := make(map[string]bool, len(in.Lines))
	for _, l := range in.Lines {
		if l.ProductID == "" || !l.Quantity.GreaterThan(decimal.Zero) || seen[l.ProductID] {
			return nil, domain.ErrInvalidInput
		}
		seen[l.ProductID] = true
		product, err := uc.productRepo.GetByID(l.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
	}

	// Si referencia orden: debe existir, no estar cancelada, y cada línea de la
	// recepción debe tener línea homóloga (mismo producto) en la orden.
	if in.OrderID != nil {
		order, err := uc.orderRepo.GetByID(*in.OrderID)
		if err != nil {
			return nil, err
		}
		if order == nil {
			return nil, domain.ErrNotFound
		}
		if order.Status == entity.OrderStatusCancelled {
			return nil, domain.ErrConflict
		}
		orderLines, err := uc.orderRepo.GetLinesByOrderID(*in.OrderID)
		if err != nil {
			return nil, err
		}
		byProduct := make(map[string]bool, len(orderLines))
		for _, ol := range orderLines {
			byProduct[ol.ProductID] = true
		}
		for _, l := range in.Lines {
			if !byProduct[l.ProductID] {
				return nil, domain.ErrInvalidInput
			}
		}
	}

	now := time.Now()
	receipt := &entity.WarehouseReceipt{
		ID:         uuid.New().String(),
		OrderID:    in.OrderID,
		EmployeeID: employeeID,
		Status:     entity.ReceiptStatusActive,
		CreatedAt:  now,
	}
	lines := make([]entity.ReceiptLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, entity.ReceiptLine{
			ID:        uuid.New().String(),
			ReceiptID: receipt.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
		})
	}

	var orderStatus string
	err := uc.txRunner.RunReceiving(ctx, func(
		receiptRepo repository.ReceiptRepository,
		orderRepo repository.PurchaseOrderRepository,
		productRepo repository.ProductRepository,
	) error {
		stock := ledger.New(productRepo)

		// Revalidar la orden bajo bloqueo: pudo cancelarse entre la lectura de
		// arriba y el inicio de la tx.
		if receipt.OrderID != nil {
			order, err := orderRepo.GetForUpdate(*receipt.OrderID)
			if err != nil {
				return err
			}
			if order == nil {
				return domain.ErrNotFound
			}
			if order.Status == entity.OrderStatusCancelled {
				return domain.ErrConflict
			}
		}

		if err := receiptRepo.Create(receipt); err != nil {
			return err
		}
		for i := range lines {
			if err := receiptRepo.CreateLine(&lines[i]); err != nil {
				return err
			}
			if _, err := stock.ApplyDelta(lines[i].ProductID, lines[i].Quantity); err != nil {
				return err
			}
			if err := stock.AddIngresos(lines[i].ProductID, lines[i].Quantity); err != nil {
				return err
			}
			if receipt.OrderID != nil {
				if err := orderRepo.AddReceivedQty(*receipt.OrderID, lines[i].ProductID, lines[i].Quantity); err != nil {
					return err
				}
			}
		}

		if receipt.OrderID != nil {
			var err error
			orderStatus, err = recomputeOrderStatus(orderRepo, *receipt.OrderID, now)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toResponse(receipt, lines, orderStatus), nil
}

// Cancel revierte la recepción completa: por línea resta stock e ingresos y, si
// hay orden, retrocede qty_received y recalcula su estado. Antes de mutar
// verifica bajo bloqueo de fila que ingresos >= cantidad en cada producto
// (protege contra doble cancelación concurrente o manipulación externa); si
// alguna línea no pasa, aborta sin efecto parcial.
func (uc *UseCase) Cancel(ctx context.Context, id, reason string) (*dto.ReceiptResponse, error) {
	if id == "" || reason == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var receipt *entity.WarehouseReceipt
	var lines []entity.ReceiptLine
	var orderStatus string

	err := uc.txRunner.RunReceiving(ctx, func(
		receiptRepo repository.ReceiptRepository,
		orderRepo repository.PurchaseOrderRepository,
		productRepo repository.ProductRepository,
	) error {
		stock := ledger.New(productRepo)

		var err error
		receipt, err = receiptRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if receipt == nil {
			return domain.ErrNotFound
		}
		if receipt.Status == entity.ReceiptStatusCancelled {
			return domain.ErrConflict
		}
		lines, err = receiptRepo.GetLinesByReceiptID(id)
		if err != nil {
			return err
		}
		if receipt.OrderID != nil {
			order, err := orderRepo.GetForUpdate(*receipt.OrderID)
			if err != nil {
				return err
			}
			if order == nil {
				return domain.ErrNotFound
			}
		}

		// Pasada 1: bloquear productos y verificar el acumulado de ingresos.
		for _, l := range lines {
			product, err := productRepo.GetForUpdate(l.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			if product.Ingresos.LessThan(l.Quantity) {
				return domain.ErrConflict
			}
		}

		// Pasada 2: aplicar el inverso exacto de la creación.
		for _, l := range lines {
			if _, err := stock.ApplyDelta(l.ProductID, l.Quantity.Neg()); err != nil {
				return err
			}
			if err := stock.AddIngresos(l.ProductID, l.Quantity.Neg()); err != nil {
				return err
			}
			if receipt.OrderID != nil {
				if err := orderRepo.AddReceivedQty(*receipt.OrderID, l.ProductID, l.Quantity.Neg()); err != nil {
					return err
				}
			}
		}

		if receipt.OrderID != nil {
			orderStatus, err = recomputeOrderStatus(orderRepo, *receipt.OrderID, now)
			if err != nil {
				return err
			}
		}

		if err := receiptRepo.MarkCancelled(id, reason, now); err != nil {
			return err
		}
		receipt.Status = entity.ReceiptStatusCancelled
		receipt.CancelReason = reason
		receipt.CancelledAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toResponse(receipt, lines, orderStatus), nil
}

// recomputeOrderStatus reevalúa el estado derivado de la orden a partir de sus
// líneas y lo persiste. CANCELLED es pegajoso: jamás se sobreescribe.
func recomputeOrderStatus(orderRepo repository.PurchaseOrderRepository, orderID string, now time.Time) (string, error) {
	order, err := orderRepo.GetByID(orderID)
	if err != nil {
		return "", err
	}
	if order == nil {
		return "", domain.ErrNotFound
	}
	if order.Status == entity.OrderStatusCancelled {
		return entity.OrderStatusCancelled, nil
	}
	orderLines, err := orderRepo.GetLinesByOrderID(orderID)
	if err != nil {
		return "", err
	}
	status := entity.DeriveOrderStatus(orderLines)
	if status != order.Status {
		if err := orderRepo.UpdateStatus(orderID, status, now); err != nil {
			return "", err
		}
	}
	return status, nil
}

// GetByID obtiene una recepción con su detalle.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.ReceiptResponse, error) {
	receipt, err := uc.receiptRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.receiptRepo.GetLinesByReceiptID(id)
	if err != nil {
		return nil, err
	}
	return toResponse(receipt, lines, ""), nil
}

// List lista recepciones paginadas (sin detalle).
func (uc *UseCase) List(ctx context.Context, limit, offset int) ([]*dto.ReceiptResponse, error) {
	receipts, err := uc.receiptRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ReceiptResponse, 0, len(receipts))
	for _, r := range receipts {
		out = append(out, toResponse(r, nil, ""))
	}
	return out, nil
}

func toResponse(receipt *entity.WarehouseReceipt, lines []entity.ReceiptLine, orderStatus string) *dto.ReceiptResponse {
	resp := &dto.ReceiptResponse{
		ID:           receipt.ID,
		OrderID:      receipt.OrderID,
		EmployeeID:   receipt.EmployeeID,
		Status:       receipt.Status,
		CancelReason: receipt.CancelReason,
		OrderStatus:  orderStatus,
		Lines:        make([]dto.ReceiptLineResponse, 0, len(lines)),
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, dto.ReceiptLineResponse{
			ID:        l.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
		})
	}
	return resp
}
