package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercial-api/internal/domain/entity"
)

// ProductRepository puerto de persistencia para productos y sus contadores de
// inventario. ApplyStockDelta es la única primitiva de mutación de stock: un solo
// UPDATE condicional (nunca leer-modificar-escribir en dos sentencias) que falla
// con domain.ErrInsufficientStock si el resultado quedaría negativo.
type ProductRepository interface {
	Create(product *entity.Product) error
	Update(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) para
	// precondiciones que abarcan varias sentencias dentro de la misma tx.
	GetForUpdate(id string) (*entity.Product, error)
	List(limit, offset int, search string) ([]*entity.Product, error)
	// ApplyStockDelta suma delta (con signo) al stock y devuelve el saldo nuevo.
	// domain.ErrInsufficientStock si stock+delta < 0; domain.ErrNotFound si el
	// producto no existe. Jamás trunca a cero.
	ApplyStockDelta(productID string, delta decimal.Decimal) (decimal.Decimal, error)
	// AddIngresos suma delta al acumulado de entradas por recepción.
	AddIngresos(productID string, delta decimal.Decimal) error
	// AddAjustes suma delta al acumulado neto de ajustes manuales.
	AddAjustes(productID string, delta decimal.Decimal) error
}
