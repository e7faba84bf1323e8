package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type MovementType string

const (
	MovementIncome  MovementType = "ingreso"
	MovementExpense MovementType = "egreso"
)

func (t MovementType) Valid() bool {
	return t == MovementIncome || t == MovementExpense
}

// CashMovement es un ajuste manual de caja, ajeno a las ventas.
type CashMovement struct {
	ID            uint            `gorm:"primaryKey"`
	Type          MovementType    `gorm:"size:10;not null;index"`
	Description   string          `gorm:"size:255;not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentMethod string          `gorm:"size:50"` // etiqueta libre
	ArqueoID      *uint           `gorm:"index"`  // arqueo abierto al momento de crearse
	CreatedBy     uint
	CreatedAt     time.Time `gorm:"index"`
}
