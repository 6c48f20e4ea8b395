package billing

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

// InvoiceUseCase maneja el ciclo de vida de facturas: crear (descuenta stock),
// editar en caliente mientras está ISSUED (delta neto por producto), cancelar
// (restituye stock) y pagar.
type InvoiceUseCase struct {
	txRunner          BillingTxRunner
	customerRepo      repository.CustomerRepository
	productRepo       repository.ProductRepository
	paymentMethodRepo repository.PaymentMethodRepository
	taxRepo           repository.TaxRateRepository
	invoiceRepo       repository.InvoiceRepository
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	txRunner BillingTxRunner,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	paymentMethodRepo repository.PaymentMethodRepository,
	taxRepo repository.TaxRateRepository,
	invoiceRepo repository.InvoiceRepository,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:          txRunner,
		customerRepo:      customerRepo,
		productRepo:       productRepo,
		paymentMethodRepo: paymentMethodRepo,
		taxRepo:           taxRepo,
		invoiceRepo:       invoiceRepo,
	}
}

// validateItems verifica producto existente y activo, cantidad positiva, precio
// no negativo (cero toma el precio de lista) y sin producto repetido. Devuelve
// los productos leídos para no consultarlos dos veces.
func (uc *InvoiceUseCase) validateItems(items []dto.InvoiceItemRequest) (map[string]*entity.Product, error) {
	if len(items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	products := make(map[string]*entity.Product, len(items))
	for i := range items {
		item := &items[i]
		if item.ProductID == "" || !item.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if _, dup := products[item.ProductID]; dup {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		if !product.Active {
			return nil, domain.ErrInvalidInput
		}
		if item.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if item.UnitPrice.IsZero() {
			item.UnitPrice = product.Price
		}
		products[item.ProductID] = product
	}
	return products, nil
}

// currentTaxRate consulta la tarifa vigente y la normaliza a fracción
// (19 -> 0.19; 0.19 queda igual).
func (uc *InvoiceUseCase) currentTaxRate() (decimal.Decimal, error) {
	rate, err := uc.taxRepo.GetCurrentRate()
	if err != nil {
		return decimal.Zero, err
	}
	if rate.GreaterThan(decimal.NewFromInt(1)) {
		rate = rate.Div(decimal.NewFromInt(100))
	}
	return rate, nil
}

// CreateInvoice valida cliente, medio de pago (aplicable al canal) y líneas,
// y en una sola transacción descuenta stock por línea y persiste cabecera
// ISSUED más detalle. Si cualquier línea deja stock insuficiente, rollback
// completo.
func (uc *InvoiceUseCase) CreateInvoice(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.CustomerID == "" || in.PaymentMethodID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Channel != entity.ChannelWeb && in.Channel != entity.ChannelInPerson {
		return nil, domain.ErrInvalidInput
	}

	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	method, err := uc.paymentMethodRepo.GetByID(in.PaymentMethodID)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, domain.ErrNotFound
	}
	if !method.AvailableForChannel(in.Channel) {
		return nil, domain.ErrInvalidInput
	}

	if _, err := uc.validateItems(in.Items); err != nil {
		return nil, err
	}
	rate, err := uc.currentTaxRate()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	inv := &entity.Invoice{
		ID:              uuid.New().String(),
		CustomerID:      in.CustomerID,
		Channel:         in.Channel,
		PaymentMethodID: in.PaymentMethodID,
		Status:          entity.InvoiceStatusIssued,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	lines := buildLines(inv.ID, in.Items)
	inv.Subtotal, inv.TaxTotal, inv.Total = computeTotals(lines, rate)

	err = uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		productRepo repository.ProductRepository,
	) error {
		stock := ledger.New(productRepo)
		for _, l := range lines {
			if _, err := stock.ApplyDelta(l.ProductID, l.Quantity.Neg()); err != nil {
				return err
			}
		}
		if err := invoiceRepo.Create(inv); err != nil {
			return err
		}
		for i := range lines {
			if err := invoiceRepo.CreateLine(&lines[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toResponse(inv, customer.Name, lines), nil
}

// buildLines materializa las líneas de factura a partir de los items ya validados.
func buildLines(invoiceID string, items []dto.InvoiceItemRequest) []entity.InvoiceLine {
	lines := make([]entity.InvoiceLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, entity.InvoiceLine{
			ID:        uuid.New().String(),
			InvoiceID: invoiceID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Quantity.Mul(item.UnitPrice),
		})
	}
	return lines
}

// computeTotals calcula subtotal, impuesto y total con la tarifa vigente.
func computeTotals(lines []entity.InvoiceLine, rate decimal.Decimal) (subtotal, taxTotal, total decimal.Decimal) {
	for _, l := range lines {
		subtotal = subtotal.Add(l.Subtotal)
	}
	taxTotal = subtotal.Mul(rate)
	total = subtotal.Add(taxTotal)
	return subtotal, taxTotal, total
}

// GetInvoice obtiene una factura por ID con su detalle completo.
func (uc *InvoiceUseCase) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.invoiceRepo.GetLinesByInvoiceID(id)
	if err != nil {
		return nil, err
	}
	customerName := ""
	if customer, _ := uc.customerRepo.GetByID(inv.CustomerID); customer != nil {
		customerName = customer.Name
	}
	return toResponse(inv, customerName, lines), nil
}

// ListInvoices lista facturas paginadas (sin detalle).
func (uc *InvoiceUseCase) ListInvoices(ctx context.Context, limit, offset int) ([]*dto.InvoiceResponse, error) {
	invoices, err := uc.invoiceRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, toResponse(inv, "", nil))
	}
	return out, nil
}

func toResponse(inv *entity.Invoice, customerName string, lines []entity.InvoiceLine) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:              inv.ID,
		CustomerID:      inv.CustomerID,
		CustomerName:    customerName,
		Channel:         inv.Channel,
		PaymentMethodID: inv.PaymentMethodID,
		Status:          inv.Status,
		Subtotal:        inv.Subtotal,
		TaxTotal:        inv.TaxTotal,
		Total:           inv.Total,
		Lines:           make([]dto.InvoiceLineResponse, 0, len(lines)),
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, dto.InvoiceLineResponse{
			ID:        l.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal,
		})
	}
	return resp
}
