package repository

import (
	"time"

	"github.com/jhoicas/Comercial-api/internal/domain/entity"
)

// AdjustmentRepository puerto de persistencia para ajustes manuales de inventario.
type AdjustmentRepository interface {
	Create(adjustment *entity.InventoryAdjustment) error
	CreateLine(line *entity.AdjustmentLine) error
	GetByID(id string) (*entity.InventoryAdjustment, error)
	// GetForUpdate bloquea la cabecera del ajuste durante la tx.
	GetForUpdate(id string) (*entity.InventoryAdjustment, error)
	GetLinesByAdjustmentID(adjustmentID string) ([]entity.AdjustmentLine, error)
	List(limit, offset int) ([]*entity.InventoryAdjustment, error)
	MarkCancelled(id string, cancelledAt time.Time) error
}
