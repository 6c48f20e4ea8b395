// Package apptest provee un almacén en memoria que implementa los puertos de
// repositorio y un TxRunner falso con semántica de rollback, para probar los
// casos de uso sin PostgreSQL.
package apptest

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	"github.com/jhoicas/Comercial-api/internal/domain/repository"
)

// Store almacén en memoria. No es seguro para uso concurrente; los tests de
// casos de uso son secuenciales.
type Store struct {
	Products        map[string]*entity.Product
	Suppliers       map[string]*entity.Supplier
	Customers       map[string]*entity.Customer
	Users           map[string]*entity.User
	PaymentMethods  map[string]*entity.PaymentMethod
	Orders          map[string]*entity.PurchaseOrder
	OrderLines      map[string][]entity.PurchaseOrderLine
	Receipts        map[string]*entity.WarehouseReceipt
	ReceiptLines    map[string][]entity.ReceiptLine
	Adjustments     map[string]*entity.InventoryAdjustment
	AdjustmentLines map[string][]entity.AdjustmentLine
	Invoices        map[string]*entity.Invoice
	InvoiceLines    map[string][]entity.InvoiceLine
	TaxRate         decimal.Decimal
}

// NewStore crea un almacén vacío con tarifa de impuesto 0.19.
func NewStore() *Store {
	return &Store{
		Products:        map[string]*entity.Product{},
		Suppliers:       map[string]*entity.Supplier{},
		Customers:       map[string]*entity.Customer{},
		Users:           map[string]*entity.User{},
		PaymentMethods:  map[string]*entity.PaymentMethod{},
		Orders:          map[string]*entity.PurchaseOrder{},
		OrderLines:      map[string][]entity.PurchaseOrderLine{},
		Receipts:        map[string]*entity.WarehouseReceipt{},
		ReceiptLines:    map[string][]entity.ReceiptLine{},
		Adjustments:     map[string]*entity.InventoryAdjustment{},
		AdjustmentLines: map[string][]entity.AdjustmentLine{},
		Invoices:        map[string]*entity.Invoice{},
		InvoiceLines:    map[string][]entity.InvoiceLine{},
		TaxRate:         decimal.NewFromFloat(0.19),
	}
}

// Accesores de puertos. Todos los repos comparten el mismo estado subyacente,
// igual que los repos atados a una misma transacción en postgres.
func (s *Store) ProductRepo() repository.ProductRepository             { return &productRepo{s} }
func (s *Store) SupplierRepo() repository.SupplierRepository           { return &supplierRepo{s} }
func (s *Store) CustomerRepo() repository.CustomerRepository           { return &customerRepo{s} }
func (s *Store) UserRepo() repository.UserRepository                   { return &userRepo{s} }
func (s *Store) PaymentMethodRepo() repository.PaymentMethodRepository { return &paymentMethodRepo{s} }
func (s *Store) OrderRepo() repository.PurchaseOrderRepository         { return &orderRepo{s} }
func (s *Store) ReceiptRepo() repository.ReceiptRepository             { return &receiptRepo{s} }
func (s *Store) AdjustmentRepo() repository.AdjustmentRepository       { return &adjustmentRepo{s} }
func (s *Store) InvoiceRepo() repository.InvoiceRepository             { return &invoiceRepo{s} }
func (s *Store) TaxRateRepo() repository.TaxRateRepository             { return &taxRateRepo{s} }

// snapshot copia profunda de todo el estado mutable.
func (s *Store) snapshot() *Store {
	return &Store{
		Products:        cloneMap(s.Products),
		Suppliers:       cloneMap(s.Suppliers),
		Customers:       cloneMap(s.Customers),
		Users:           cloneMap(s.Users),
		PaymentMethods:  cloneMap(s.PaymentMethods),
		Orders:          cloneMap(s.Orders),
		OrderLines:      cloneLines(s.OrderLines),
		Receipts:        cloneMap(s.Receipts),
		ReceiptLines:    cloneLines(s.ReceiptLines),
		Adjustments:     cloneMap(s.Adjustments),
		AdjustmentLines: cloneLines(s.AdjustmentLines),
		Invoices:        cloneMap(s.Invoices),
		InvoiceLines:    cloneLines(s.InvoiceLines),
		TaxRate:         s.TaxRate,
	}
}

// restore reemplaza el estado con el de la copia.
func (s *Store) restore(snap *Store) {
	s.Products = snap.Products
	s.Suppliers = snap.Suppliers
	s.Customers = snap.Customers
	s.Users = snap.Users
	s.PaymentMethods = snap.PaymentMethods
	s.Orders = snap.Orders
	s.OrderLines = snap.OrderLines
	s.Receipts = snap.Receipts
	s.ReceiptLines = snap.ReceiptLines
	s.Adjustments = snap.Adjustments
	s.AdjustmentLines = snap.AdjustmentLines
	s.Invoices = snap.Invoices
	s.InvoiceLines = snap.InvoiceLines
	s.TaxRate = snap.TaxRate
}

func cloneMap[V any](m map[string]*V) map[string]*V {
	out := make(map[string]*V, len(m))
	for k, v := range m {
		c := *v
		out[k] = &c
	}
	return out
}

func cloneLines[T any](m map[string][]T) map[string][]T {
	out := make(map[string][]T, len(m))
	for k, v := range m {
		c := make([]T, len(v))
		copy(c, v)
		out[k] = c
	}
	return out
}

// sortedIDs claves ordenadas para listados deterministas.
func sortedIDs[V any](m map[string]*V) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
