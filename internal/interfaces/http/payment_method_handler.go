package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Comercial-api/internal/application/billing"
	"github.com/jhoicas/Comercial-api/internal/application/dto"
)

// PaymentMethodHandler expone el registro de medios de pago (solo lectura).
type PaymentMethodHandler struct {
	uc *billing.PaymentMethodUseCase
}

// NewPaymentMethodHandler construye el handler.
func NewPaymentMethodHandler(uc *billing.PaymentMethodUseCase) *PaymentMethodHandler {
	return &PaymentMethodHandler{uc: uc}
}

// List godoc
// @Summary      Listar medios de pago activos
// @Tags         payment-methods
// @Security     Bearer
// @Produce      json
// @Param        channel  query  string  false  "Canal de venta (WEB o POS)"
// @Success      200      {array}  dto.PaymentMethodResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /api/payment-methods [get]
func (h *PaymentMethodHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.Query("channel"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}
