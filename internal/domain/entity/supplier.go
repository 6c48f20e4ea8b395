package entity

import "time"

// Supplier representa un proveedor al que se le emiten órdenes de compra.
// Solo proveedores activos pueden recibir órdenes nuevas.
type Supplier struct {
	ID        string
	Name      string
	TaxID     string
	Email     string
	Phone     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
