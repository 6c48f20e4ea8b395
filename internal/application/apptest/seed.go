package apptest

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercial-api/internal/domain/entity"
)

// Helpers de seed para tests. Cada uno inserta directo en el almacén y devuelve
// la entidad creada.

func (s *Store) SeedProduct(id, sku string, stock decimal.Decimal) *entity.Product {
	now := time.Now()
	p := &entity.Product{
		ID:        id,
		SKU:       sku,
		Name:      "Producto " + sku,
		Price:     decimal.NewFromInt(100),
		TaxRate:   decimal.NewFromFloat(0.19),
		Active:    true,
		Stock:     stock,
		Ingresos:  decimal.Zero,
		Ajustes:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.Products[id] = p
	return p
}

func (s *Store) SeedSupplier(id string) *entity.Supplier {
	now := time.Now()
	sp := &entity.Supplier{
		ID:        id,
		Name:      "Proveedor " + id,
		TaxID:     "900" + id,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.Suppliers[id] = sp
	return sp
}

func (s *Store) SeedCustomer(id string) *entity.Customer {
	now := time.Now()
	c := &entity.Customer{
		ID:        id,
		Name:      "Cliente " + id,
		TaxID:     "800" + id,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.Customers[id] = c
	return c
}

func (s *Store) SeedPaymentMethod(id string, web, pos bool) *entity.PaymentMethod {
	now := time.Now()
	m := &entity.PaymentMethod{
		ID:         id,
		Name:       "Medio " + id,
		Active:     true,
		WebEnabled: web,
		POSEnabled: pos,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.PaymentMethods[id] = m
	return m
}
