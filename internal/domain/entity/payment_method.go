package entity

import "time"

// PaymentMethod representa un medio de pago del registro. Un método puede estar
// habilitado solo para ciertos canales (ej. contra-entrega solo en POS).
type PaymentMethod struct {
	ID         string
	Name       string
	Active     bool
	WebEnabled bool
	POSEnabled bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// AvailableForChannel indica si el método aplica al canal dado.
func (m PaymentMethod) AvailableForChannel(channel string) bool {
	if !m.Active {
		return false
	}
	switch channel {
	case ChannelWeb:
		return m.WebEnabled
	case ChannelInPerson:
		return m.POSEnabled
	}
	return false
}
