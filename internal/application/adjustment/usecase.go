package adjustment

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

// UseCase maneja ajustes manuales de inventario (entrada/salida) y su
// cancelación, que aplica el efecto inverso exacto sobre stock y ajustes.
type UseCase struct {
	txRunner       TxRunner
	productRepo    repository.ProductRepository
	adjustmentRepo repository.AdjustmentRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	adjustmentRepo repository.AdjustmentRepository,
) *UseCase {
	return &UseCase{
		txRunner:       txRunner,
		productRepo:    productRepo,
		adjustmentRepo: adjustmentRepo,
	}
}

// Create registra un ajuste IN (suma) u OUT (resta). Para OUT, cada línea se
// pre-valida contra la existencia actual antes de escribir nada; la transacción
// vuelve a imponer el piso al aplicar el delta, así que una carrera entre la
// pre-validación y el commit sigue abortando completa.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreateAdjustmentRequest) (*dto.AdjustmentResponse, error) {
	if in.Type != entity.AdjustmentTypeIn && in.Type != entity.AdjustmentTypeOut {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Lines) == 0 {
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
		if in.Type == entity.AdjustmentTypeOut && product.Stock.LessThan(l.Quantity) {
			return nil, domain.ErrInsufficientStock
		}
	}

	now := time.Now()
	adj := &entity.InventoryAdjustment{
		ID:        uuid.New().String(),
		Type:      in.Type,
		Status:    entity.AdjustmentStatusActive,
		CreatedBy: userID,
		CreatedAt: now,
	}
	lines := make([]entity.AdjustmentLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, entity.AdjustmentLine{
			ID:           uuid.New().String(),
			AdjustmentID: adj.ID,
			ProductID:    l.ProductID,
			Quantity:     l.Quantity,
		})
	}

	err := uc.txRunner.RunAdjustment(ctx, func(
		adjustmentRepo repository.AdjustmentRepository,
		productRepo repository.ProductRepository,
	) error {
		stock := ledger.New(productRepo)
		for _, l := range lines {
			delta := l.Quantity
			if adj.Type == entity.AdjustmentTypeOut {
				delta = delta.Neg()
			}
			if _, err := stock.ApplyDelta(l.ProductID, delta); err != nil {
				return err
			}
			if err := stock.AddAjustes(l.ProductID, delta); err != nil {
				return err
			}
		}
		if err := adjustmentRepo.Create(adj); err != nil {
			return err
		}
		for i := range lines {
			if err := adjustmentRepo.CreateLine(&lines[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toResponse(adj, lines), nil
}

// Cancel aplica el inverso del ajuste. Cancelar un IN resta: si el stock ya se
// consumió en otro lado y quedaría negativo, el ledger aborta la transacción
// completa con ErrInsufficientStock. Cancelar un OUT suma, sin piso que vigilar.
func (uc *UseCase) Cancel(ctx context.Context, id string) (*dto.AdjustmentResponse, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var adj *entity.InventoryAdjustment
	var lines []entity.AdjustmentLine

	err := uc.txRunner.RunAdjustment(ctx, func(
		adjustmentRepo repository.AdjustmentRepository,
		productRepo repository.ProductRepository,
	) error {
		stock := ledger.New(productRepo)

		var err error
		adj, err = adjustmentRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if adj == nil {
			return domain.ErrNotFound
		}
		if adj.Status == entity.AdjustmentStatusCancelled {
			return domain.ErrConflict
		}
		lines, err = adjustmentRepo.GetLinesByAdjustmentID(id)
		if err != nil {
			return err
		}

		for _, l := range lines {
			delta := l.Quantity
			if adj.Type == entity.AdjustmentTypeIn {
				delta = delta.Neg()
			}
			if _, err := stock.ApplyDelta(l.ProductID, delta); err != nil {
				return err
			}
			if err := stock.AddAjustes(l.ProductID, delta); err != nil {
				return err
			}
		}

		if err := adjustmentRepo.MarkCancelled(id, now); err != nil {
			return err
		}
		adj.Status = entity.AdjustmentStatusCancelled
		adj.CancelledAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toResponse(adj, lines), nil
}

// GetByID obtiene un ajuste con su detalle.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.AdjustmentResponse, error) {
	adj, err := uc.adjustmentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if adj == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.adjustmentRepo.GetLinesByAdjustmentID(id)
	if err != nil {
		return nil, err
	}
	return toResponse(adj, lines), nil
}

// List lista ajustes paginados (sin detalle).
func (uc *UseCase) List(ctx context.Context, limit, offset int) ([]*dto.AdjustmentResponse, error) {
	adjustments, err := uc.adjustmentRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.AdjustmentResponse, 0, len(adjustments))
	for _, a := range adjustments {
		out = append(out, toResponse(a, nil))
	}
	return out, nil
}

func toResponse(adj *entity.InventoryAdjustment, lines []entity.AdjustmentLine) *dto.AdjustmentResponse {
	resp := &dto.AdjustmentResponse{
		ID:     adj.ID,
		Type:   adj.Type,
		Status: adj.Status,
		Lines:  make([]dto.AdjustmentLineResponse, 0, len(lines)),
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, dto.AdjustmentLineResponse{
			ID:        l.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
		})
	}
	return resp
}
