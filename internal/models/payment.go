package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "efectivo"
	PaymentDebit    PaymentMethod = "debito"
	PaymentCredit   PaymentMethod = "credito"
	PaymentTransfer PaymentMethod = "transferencia"
	PaymentOther    PaymentMethod = "otro"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentDebit, PaymentCredit, PaymentTransfer, PaymentOther:
		return true
	}
	return false
}

type PaymentStatus string

const PaymentCompleted PaymentStatus = "completado"

type Payment struct {
	ID        uint `gorm:"primaryKey"`
	OrderID   uint `gorm:"index;not null"`
	Order     Order
	ShiftID   *uint           `gorm:"index"`
	Method    PaymentMethod   `gorm:"size:20;not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status    PaymentStatus   `gorm:"size:20;not null;default:'completado'"`
	CreatedAt time.Time       `gorm:"index"`
}
