package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Comercial-api/internal/application/adjustment"
	"github.com/jhoicas/Comercial-api/internal/application/auth"
	"github.com/jhoicas/Comercial-api/internal/application/billing"
	"github.com/jhoicas/Comercial-api/internal/application/purchasing"
	"github.com/jhoicas/Comercial-api/internal/application/receiving"
	"github.com/jhoicas/Comercial-api/internal/application/usecase"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC       *usecase.ProductUseCase
	SupplierUC      *usecase.SupplierUseCase
	CustomerUC      *billing.CustomerUseCase
	PurchaseOrderUC *purchasing.UseCase
	ReceiptUC       *receiving.UseCase
	AdjustmentUC    *adjustment.UseCase
	InvoiceUC       *billing.InvoiceUseCase
	PDFUC           *billing.PDFUseCase
	PaymentMethodUC *billing.PaymentMethodUseCase
	AuthUC          *auth.AuthUseCase
	JWTSecret       string
}

// Router registra las rutas de la API.
//
// Roles: admin tiene acceso total; bodeguero opera recepciones y ajustes;
// vendedor opera facturación. Los catálogos son de lectura para todo usuario
// autenticado y de escritura solo para admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	adminOnly := RequireRole(entity.RoleAdmin)
	warehouseOps := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	salesOps := RequireRole(entity.RoleAdmin, entity.RoleVendedor)

	// Products (protegido; escritura solo admin)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", adminOnly, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", adminOnly, productHandler.Update)

	// Suppliers (protegido; escritura solo admin)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", adminOnly, supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", adminOnly, supplierHandler.Update)

	// Customers (protegido, facturación)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", salesOps, customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)

	// Purchase orders (protegido; admin y bodeguero)
	orders := protected.Group("/purchase-orders", warehouseOps)
	orderHandler := NewPurchaseOrderHandler(deps.PurchaseOrderUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id", orderHandler.Update)
	orders.Post("/:id/cancel", orderHandler.Cancel)

	// Warehouse receipts (protegido; admin y bodeguero)
	receipts := protected.Group("/receipts", warehouseOps)
	receiptHandler := NewReceiptHandler(deps.ReceiptUC)
	receipts.Post("/", receiptHandler.Create)
	receipts.Get("/", receiptHandler.List)
	receipts.Get("/:id", receiptHandler.GetByID)
	receipts.Post("/:id/cancel", receiptHandler.Cancel)

	// Inventory adjustments (protegido; admin y bodeguero)
	adjustments := protected.Group("/adjustments", warehouseOps)
	adjustmentHandler := NewAdjustmentHandler(deps.AdjustmentUC)
	adjustments.Post("/", adjustmentHandler.Create)
	adjustments.Get("/", adjustmentHandler.List)
	adjustments.Get("/:id", adjustmentHandler.GetByID)
	adjustments.Post("/:id/cancel", adjustmentHandler.Cancel)

	// Invoices (protegido; admin y vendedor)
	invoices := protected.Group("/invoices", salesOps)
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.PDFUC)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", invoiceHandler.Edit)
	invoices.Post("/:id/cancel", invoiceHandler.Cancel)
	invoices.Post("/:id/pay", invoiceHandler.Pay)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)

	// Payment methods (protegido, solo lectura)
	methods := protected.Group("/payment-methods")
	paymentMethodHandler := NewPaymentMethodHandler(deps.PaymentMethodUC)
	methods.Get("/", paymentMethodHandler.List)
}
