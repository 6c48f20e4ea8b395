package repository

import "github.com/jhoicas/Comercial-api/internal/domain/entity"

// PaymentMethodRepository puerto de lectura del registro de medios de pago.
type PaymentMethodRepository interface {
	GetByID(id string) (*entity.PaymentMethod, error)
	List() ([]*entity.PaymentMethod, error)
}
