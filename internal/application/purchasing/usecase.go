package purchasing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercial-api/internal/application/dto"
	"github.com/jhoicas/Comercial-api/internal/domain"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	"github.com/jhoicas/Comercial-api/internal/domain/repository"
)

// UseCase maneja el ciclo de vida de órdenes de compra: crear, reemplazar
// detalle y cancelar. El estado derivado (PENDING/PARTIAL/CLOSED) lo recalcula
// el ciclo de recepciones; aquí solo se fija PENDING al crear y CANCELLED al
// cancelar.
type UseCase struct {
	txRunner     TxRunner
	supplierRepo repository.SupplierRepository
	productRepo  repository.ProductRepository
	orderRepo    repository.PurchaseOrderRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.PurchaseOrderRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		orderRepo:    orderRepo,
	}
}

// validateLines verifica producto existente, cantidad y costo positivos y que
// no haya producto repetido (la recepción empareja líneas por producto).
func (uc *UseCase) validateLines(lines []dto.PurchaseOrderLineRequest) error {
	if len(lines) == 0 {
		return domain.ErrInvalidInput
	}
	seen := make(map[string]bool, len(lines))
	for _, l := range lines {
		if l.ProductID == "" || !l.Quantity.GreaterThan(decimal.Zero) || !l.UnitCost.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
		if seen[l.ProductID] {
			return domain.ErrInvalidInput
		}
		seen[l.ProductID] = true
		product, err := uc.productRepo.GetByID(l.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
	}
	return nil
}

// Create valida proveedor y líneas, calcula totales y persiste cabecera PENDING
// más líneas (qty_received en cero) en una sola transacción.
func (uc *UseCase) Create(ctx context.Context, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if in.SupplierID == "" {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	if !supplier.Active {
		return nil, domain.ErrConflict
	}
	if err := uc.validateLines(in.Lines); err != nil {
		return nil, err
	}

	now := time.Now()
	order := &entity.PurchaseOrder{
		ID:         uuid.New().String(),
		SupplierID: in.SupplierID,
		Status:     entity.OrderStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	lines := make([]entity.PurchaseOrderLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, entity.PurchaseOrderLine{
			ID:          uuid.New().String(),
			OrderID:     order.ID,
			ProductID:   l.ProductID,
			QtyOrdered:  l.Quantity,
			QtyReceived: decimal.Zero,
			UnitCost:    l.UnitCost,
		})
	}
	order.Subtotal = entity.OrderSubtotal(lines)
	order.Total = order.Subtotal // compras sin impuesto en este dominio

	err = uc.txRunner.RunPurchasing(ctx, func(
		orderRepo repository.PurchaseOrderRepository,
		_ repository.ReceiptRepository,
	) error {
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		for i := range lines {
			if err := orderRepo.CreateLine(&lines[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toResponse(order, lines), nil
}

// Update reemplaza el detalle completo de una orden PENDING y recalcula totales.
// Con la primera recepción la orden queda bloqueada para reemplazo (ErrConflict).
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.validateLines(in.Lines); err != nil {
		return nil, err
	}

	now := time.Now()
	var order *entity.PurchaseOrder
	var lines []entity.PurchaseOrderLine

	err := uc.txRunner.RunPurchasing(ctx, func(
		orderRepo repository.PurchaseOrderRepository,
		_ repository.ReceiptRepository,
	) error {
		var err error
		order, err = orderRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.OrderStatusPending {
			return domain.ErrConflict
		}
		if err := orderRepo.DeleteLines(id); err != nil {
			return err
		}
		lines = lines[:0]
		for _, l := range in.Lines {
			line := entity.PurchaseOrderLine{
				ID:          uuid.New().String(),
				OrderID:     id,
				ProductID:   l.ProductID,
				QtyOrdered:  l.Quantity,
				QtyReceived: decimal.Zero,
				UnitCost:    l.UnitCost,
			}
			if err := orderRepo.CreateLine(&line); err != nil {
				return err
			}
			lines = append(lines, line)
		}
		order.Subtotal = entity.OrderSubtotal(lines)
		order.Total = order.Subtotal
		order.UpdatedAt = now
		return orderRepo.UpdateTotals(id, order.Subtotal, order.Total, now)
	})
	if err != nil {
		return nil, err
	}
	return toResponse(order, lines), nil
}

// Cancel marca la orden CANCELLED (terminal). Solo procede si ninguna recepción
// la referencia: con recepciones asociadas —activas o canceladas— retorna
// ErrStaleReference y no muta nada.
func (uc *UseCase) Cancel(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.RunPurchasing(ctx, func(
		orderRepo repository.PurchaseOrderRepository,
		receiptRepo repository.ReceiptRepository,
	) error {
		order, err := orderRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status == entity.OrderStatusCancelled {
			return domain.ErrConflict
		}
		count, err := receiptRepo.CountByOrderID(id)
		if err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrStaleReference
		}
		return orderRepo.UpdateStatus(id, entity.OrderStatusCancelled, time.Now())
	})
}

// GetByID obtiene una orden con su detalle.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.orderRepo.GetLinesByOrderID(id)
	if err != nil {
		return nil, err
	}
	return toResponse(order, lines), nil
}

// List lista órdenes paginadas (sin detalle).
func (uc *UseCase) List(ctx context.Context, limit, offset int) ([]*dto.PurchaseOrderResponse, error) {
	orders, err := uc.orderRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PurchaseOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toResponse(o, nil))
	}
	return out, nil
}

func toResponse(order *entity.PurchaseOrder, lines []entity.PurchaseOrderLine) *dto.PurchaseOrderResponse {
	resp := &dto.PurchaseOrderResponse{
		ID:         order.ID,
		SupplierID: order.SupplierID,
		Status:     order.Status,
		Subtotal:   order.Subtotal,
		Total:      order.Total,
		Lines:      make([]dto.PurchaseOrderLineResponse, 0, len(lines)),
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, dto.PurchaseOrderLineResponse{
			ID:          l.ID,
			ProductID:   l.ProductID,
			QtyOrdered:  l.QtyOrdered,
			QtyReceived: l.QtyReceived,
			UnitCost:    l.UnitCost,
			Subtotal:    l.Subtotal(),
		})
	}
	return resp
}
