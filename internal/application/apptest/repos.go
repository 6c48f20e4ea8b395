package apptest

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercial-api/internal/domain"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
)

type productRepo struct{ s *Store }

func (r *productRepo) Create(p *entity.Product) error {
	if _, ok := r.s.Products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	c := *p
	r.s.Products[p.ID] = &c
	return nil
}

func (r *productRepo) Update(p *entity.Product) error {
	if _, ok := r.s.Products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *p
	r.s.Products[p.ID] = &c
	return nil
}

func (r *productRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.Products[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r *productRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, id := range sortedIDs(r.s.Products) {
		if r.s.Products[id].SKU == sku {
			c := *r.s.Products[id]
			return &c, nil
		}
	}
	return nil, nil
}

func (r *productRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *productRepo) List(limit, offset int, search string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, id := range sortedIDs(r.s.Products) {
		p := r.s.Products[id]
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), strings.ToLower(search)) &&
			!strings.Contains(strings.ToLower(p.SKU), strings.ToLower(search)) {
			continue
		}
		c := *p
		out = append(out, &c)
	}
	return paginate(out, limit, offset), nil
}

func (r *productRepo) ApplyStockDelta(productID string, delta decimal.Decimal) (decimal.Decimal, error) {
	p, ok := r.s.Products[productID]
	if !ok {
		return decimal.Zero, domain.ErrNotFound
	}
	next := p.Stock.Add(delta)
	if next.IsNegative() {
		return decimal.Zero, domain.ErrInsufficientStock
	}
	p.Stock = next
	return next, nil
}

func (r *productRepo) AddIngresos(productID string, delta decimal.Decimal) error {
	p, ok := r.s.Products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Ingresos = p.Ingresos.Add(delta)
	return nil
}

func (r *productRepo) AddAjustes(productID string, delta decimal.Decimal) error {
	p, ok := r.s.Products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Ajustes = p.Ajustes.Add(delta)
	return nil
}

type supplierRepo struct{ s *Store }

func (r *supplierRepo) Create(sp *entity.Supplier) error {
	c := *sp
	r.s.Suppliers[sp.ID] = &c
	return nil
}

func (r *supplierRepo) Update(sp *entity.Supplier) error {
	if _, ok := r.s.Suppliers[sp.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *sp
	r.s.Suppliers[sp.ID] = &c
	return nil
}

func (r *supplierRepo) GetByID(id string) (*entity.Supplier, error) {
	sp, ok := r.s.Suppliers[id]
	if !ok {
		return nil, nil
	}
	c := *sp
	return &c, nil
}

func (r *supplierRepo) List(limit, offset int, search string) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	for _, id := range sortedIDs(r.s.Suppliers) {
		sp := r.s.Suppliers[id]
		if search != "" && !strings.Contains(strings.ToLower(sp.Name), strings.ToLower(search)) {
			continue
		}
		c := *sp
		out = append(out, &c)
	}
	return paginate(out, limit, offset), nil
}

type customerRepo struct{ s *Store }

func (r *customerRepo) Create(c *entity.Customer) error {
	cc := *c
	r.s.Customers[c.ID] = &cc
	return nil
}

func (r *customerRepo) GetByID(id string) (*entity.Customer, error) {
	c, ok := r.s.Customers[id]
	if !ok {
		return nil, nil
	}
	cc := *c
	return &cc, nil
}

func (r *customerRepo) List(limit, offset int, search string) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, id := range sortedIDs(r.s.Customers) {
		c := r.s.Customers[id]
		if search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(search)) {
			continue
		}
		cc := *c
		out = append(out, &cc)
	}
	return paginate(out, limit, offset), nil
}

type userRepo struct{ s *Store }

func (r *userRepo) Create(u *entity.User) error {
	c := *u
	r.s.Users[u.ID] = &c
	return nil
}

func (r *userRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.s.Users[id]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (r *userRepo) FindByEmail(email string) (*entity.User, error) {
	for _, id := range sortedIDs(r.s.Users) {
		if r.s.Users[id].Email == email {
			c := *r.s.Users[id]
			return &c, nil
		}
	}
	return nil, nil
}

type paymentMethodRepo struct{ s *Store }

func (r *paymentMethodRepo) GetByID(id string) (*entity.PaymentMethod, error) {
	m, ok := r.s.PaymentMethods[id]
	if !ok {
		return nil, nil
	}
	c := *m
	return &c, nil
}

func (r *paymentMethodRepo) List() ([]*entity.PaymentMethod, error) {
	var out []*entity.PaymentMethod
	for _, id := range sortedIDs(r.s.PaymentMethods) {
		c := *r.s.PaymentMethods[id]
		out = append(out, &c)
	}
	return out, nil
}

type taxRateRepo struct{ s *Store }

func (r *taxRateRepo) GetCurrentRate() (decimal.Decimal, error) {
	return r.s.TaxRate, nil
}

type orderRepo struct{ s *Store }

func (r *orderRepo) Create(o *entity.PurchaseOrder) error {
	c := *o
	r.s.Orders[o.ID] = &c
	return nil
}

func (r *orderRepo) CreateLine(l *entity.PurchaseOrderLine) error {
	r.s.OrderLines[l.OrderID] = append(r.s.OrderLines[l.OrderID], *l)
	return nil
}

func (r *orderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	o, ok := r.s.Orders[id]
	if !ok {
		return nil, nil
	}
	c := *o
	return &c, nil
}

func (r *orderRepo) GetForUpdate(id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(id)
}

func (r *orderRepo) GetLinesByOrderID(orderID string) ([]entity.PurchaseOrderLine, error) {
	lines := r.s.OrderLines[orderID]
	out := make([]entity.PurchaseOrderLine, len(lines))
	copy(out, lines)
	return out, nil
}

func (r *orderRepo) List(limit, offset int) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, id := range sortedIDs(r.s.Orders) {
		c := *r.s.Orders[id]
		out = append(out, &c)
	}
	return paginate(out, limit, offset), nil
}

func (r *orderRepo) DeleteLines(orderID string) error {
	delete(r.s.OrderLines, orderID)
	return nil
}

func (r *orderRepo) UpdateTotals(orderID string, subtotal, total decimal.Decimal, updatedAt time.Time) error {
	o, ok := r.s.Orders[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	o.Subtotal = subtotal
	o.Total = total
	o.UpdatedAt = updatedAt
	return nil
}

func (r *orderRepo) UpdateStatus(orderID, status string, updatedAt time.Time) error {
	o, ok := r.s.Orders[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = updatedAt
	return nil
}

func (r *orderRepo) AddReceivedQty(orderID, productID string, delta decimal.Decimal) error {
	lines := r.s.OrderLines[orderID]
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].QtyReceived = lines[i].QtyReceived.Add(delta)
			return nil
		}
	}
	return domain.ErrNotFound
}

type receiptRepo struct{ s *Store }

func (r *receiptRepo) Create(w *entity.WarehouseReceipt) error {
	c := *w
	r.s.Receipts[w.ID] = &c
	return nil
}

func (r *receiptRepo) CreateLine(l *entity.ReceiptLine) error {
	r.s.ReceiptLines[l.ReceiptID] = append(r.s.ReceiptLines[l.ReceiptID], *l)
	return nil
}

func (r *receiptRepo) GetByID(id string) (*entity.WarehouseReceipt, error) {
	w, ok := r.s.Receipts[id]
	if !ok {
		return nil, nil
	}
	c := *w
	return &c, nil
}

func (r *receiptRepo) GetForUpdate(id string) (*entity.WarehouseReceipt, error) {
	return r.GetByID(id)
}

func (r *receiptRepo) GetLinesByReceiptID(receiptID string) ([]entity.ReceiptLine, error) {
	lines := r.s.ReceiptLines[receiptID]
	out := make([]entity.ReceiptLine, len(lines))
	copy(out, lines)
	return out, nil
}

func (r *receiptRepo) List(limit, offset int) ([]*entity.WarehouseReceipt, error) {
	var out []*entity.WarehouseReceipt
	for _, id := range sortedIDs(r.s.Receipts) {
		c := *r.s.Receipts[id]
		out = append(out, &c)
	}
	return paginate(out, limit, offset), nil
}

func (r *receiptRepo) CountByOrderID(orderID string) (int, error) {
	n := 0
	for _, w := range r.s.Receipts {
		if w.OrderID != nil && *w.OrderID == orderID {
			n++
		}
	}
	return n, nil
}

func (r *receiptRepo) MarkCancelled(id, reason string, cancelledAt time.Time) error {
	w, ok := r.s.Receipts[id]
	if !ok {
		return domain.ErrNotFound
	}
	w.Status = entity.ReceiptStatusCancelled
	w.CancelReason = reason
	t := cancelledAt
	w.CancelledAt = &t
	return nil
}

type adjustmentRepo struct{ s *Store }

func (r *adjustmentRepo) Create(a *entity.InventoryAdjustment) error {
	c := *a
	r.s.Adjustments[a.ID] = &c
	return nil
}

func (r *adjustmentRepo) CreateLine(l *entity.AdjustmentLine) error {
	r.s.AdjustmentLines[l.AdjustmentID] = append(r.s.AdjustmentLines[l.AdjustmentID], *l)
	return nil
}

func (r *adjustmentRepo) GetByID(id string) (*entity.InventoryAdjustment, error) {
	a, ok := r.s.Adjustments[id]
	if !ok {
		return nil, nil
	}
	c := *a
	return &c, nil
}

func (r *adjustmentRepo) GetForUpdate(id string) (*entity.InventoryAdjustment, error) {
	return r.GetByID(id)
}

func (r *adjustmentRepo) GetLinesByAdjustmentID(adjustmentID string) ([]entity.AdjustmentLine, error) {
	lines := r.s.AdjustmentLines[adjustmentID]
	out := make([]entity.AdjustmentLine, len(lines))
	copy(out, lines)
	return out, nil
}

func (r *adjustmentRepo) List(limit, offset int) ([]*entity.InventoryAdjustment, error) {
	var out []*entity.InventoryAdjustment
	for _, id := range sortedIDs(r.s.Adjustments) {
		c := *r.s.Adjustments[id]
		out = append(out, &c)
	}
	return paginate(out, limit, offset), nil
}

func (r *adjustmentRepo) MarkCancelled(id string, cancelledAt time.Time) error {
	a, ok := r.s.Adjustments[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.Status = entity.AdjustmentStatusCancelled
	t := cancelledAt
	a.CancelledAt = &t
	return nil
}

type invoiceRepo struct{ s *Store }

func (r *invoiceRepo) Create(inv *entity.Invoice) error {
	c := *inv
	r.s.Invoices[inv.ID] = &c
	return nil
}

func (r *invoiceRepo) CreateLine(l *entity.InvoiceLine) error {
	r.s.InvoiceLines[l.InvoiceID] = append(r.s.InvoiceLines[l.InvoiceID], *l)
	return nil
}

func (r *invoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	inv, ok := r.s.Invoices[id]
	if !ok {
		return nil, nil
	}
	c := *inv
	return &c, nil
}

func (r *invoiceRepo) GetForUpdate(id string) (*entity.Invoice, error) {
	return r.GetByID(id)
}

func (r *invoiceRepo) GetLinesByInvoiceID(invoiceID string) ([]entity.InvoiceLine, error) {
	lines := r.s.InvoiceLines[invoiceID]
	out := make([]entity.InvoiceLine, len(lines))
	copy(out, lines)
	return out, nil
}

func (r *invoiceRepo) List(limit, offset int) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, id := range sortedIDs(r.s.Invoices) {
		c := *r.s.Invoices[id]
		out = append(out, &c)
	}
	return paginate(out, limit, offset), nil
}

func (r *invoiceRepo) DeleteLines(invoiceID string) error {
	delete(r.s.InvoiceLines, invoiceID)
	return nil
}

func (r *invoiceRepo) UpdateTotals(invoiceID string, subtotal, taxTotal, total decimal.Decimal, updatedAt time.Time) error {
	inv, ok := r.s.Invoices[invoiceID]
	if !ok {
		return domain.ErrNotFound
	}
	inv.Subtotal = subtotal
	inv.TaxTotal = taxTotal
	inv.Total = total
	inv.UpdatedAt = updatedAt
	return nil
}

func (r *invoiceRepo) UpdateStatus(invoiceID, status string, updatedAt time.Time) error {
	inv, ok := r.s.Invoices[invoiceID]
	if !ok {
		return domain.ErrNotFound
	}
	inv.Status = status
	inv.UpdatedAt = updatedAt
	return nil
}
