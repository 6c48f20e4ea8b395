package billing

import (
	"context"

	"github.com/jhoicas/Comercial-api/internal/application/dto"
	"github.com/jhoicas/Comercial-api/internal/domain"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	"github.com/jhoicas/Comercial-api/internal/domain/repository"
)

// PaymentMethodUseCase lista los medios de pago del registro, opcionalmente
// filtrados por canal de venta.
type PaymentMethodUseCase struct {
	methodRepo repository.PaymentMethodRepository
}

// NewPaymentMethodUseCase construye el caso de uso.
func NewPaymentMethodUseCase(methodRepo repository.PaymentMethodRepository) *PaymentMethodUseCase {
	return &PaymentMethodUseCase{methodRepo: methodRepo}
}

// List devuelve los medios de pago activos. Con channel vacío devuelve todos;
// con WEB o POS solo los habilitados para ese canal.
func (uc *PaymentMethodUseCase) List(ctx context.Context, channel string) ([]dto.PaymentMethodResponse, error) {
	if channel != "" && channel != entity.ChannelWeb && channel != entity.ChannelInPerson {
		return nil, domain.ErrInvalidInput
	}
	methods, err := uc.methodRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaymentMethodResponse, 0, len(methods))
	for _, m := range methods {
		if !m.Active {
			continue
		}
		if channel != "" && !m.AvailableForChannel(channel) {
			continue
		}
		out = append(out, dto.PaymentMethodResponse{
			ID:         m.ID,
			Name:       m.Name,
			WebEnabled: m.WebEnabled,
			POSEnabled: m.POSEnabled,
		})
	}
	return out, nil
}
