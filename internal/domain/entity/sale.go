package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleChannel servicio en el que se registró la recette.
type SaleChannel string

const (
	SaleChannelLunch   SaleChannel = "lunch"
	SaleChannelDinner  SaleChannel = "dinner"
	SaleChannelTakeout SaleChannel = "takeout"
)

// SaleChannels devuelve los canales admitidos, en el orden de la carta.
func SaleChannels() []SaleChannel {
	return []SaleChannel{SaleChannelLunch, SaleChannelDinner, SaleChannelTakeout}
}

// Valid indica si el canal es uno de los admitidos.
func (c SaleChannel) Valid() bool {
	switch c {
	case SaleChannelLunch, SaleChannelDinner, SaleChannelTakeout:
		return true
	}
	return false
}

// SalePaymentMethod medio de cobro de una venta.
type SalePaymentMethod string

const (
	SalePaymentCash         SalePaymentMethod = "cash"
	SalePaymentCard         SalePaymentMethod = "card"
	SalePaymentMealVoucher  SalePaymentMethod = "meal_voucher"
	SalePaymentBankTransfer SalePaymentMethod = "bank_transfer"

	// DefaultSalePaymentMethod se aplica cuando la petición no indica medio de cobro.
	DefaultSalePaymentMethod = SalePaymentCash
)

// Valid indica si el medio de cobro es uno de los admitidos.
func (m SalePaymentMethod) Valid() bool {
	switch m {
	case SalePaymentCash, SalePaymentCard, SalePaymentMealVoucher, SalePaymentBankTransfer:
		return true
	}
	return false
}

// Sale representa una recette del restaurante.
// Date es la fecha de negocio; CreatedAt el instante de registro (inmutable).
type Sale struct {
	ID            int64
	Date          time.Time
	Channel       SaleChannel
	Amount        decimal.Decimal // >= 0, 2 decimales
	PaymentMethod SalePaymentMethod
	Comment       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
