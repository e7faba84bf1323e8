package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Arqueo es un período de conciliación de caja. Las cifras calculadas
// quedan en NULL mientras está abierto y se congelan al cerrarse.
type Arqueo struct {
	ID            uint            `gorm:"primaryKey"`
	OpenedBy      uint            `gorm:"not null"`
	OpenedAt      time.Time       `gorm:"not null;index"`
	OpeningAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	ClosedBy *uint
	ClosedAt *time.Time

	CashSales     *decimal.Decimal `gorm:"type:decimal(12,2)"`
	CardSales     *decimal.Decimal `gorm:"type:decimal(12,2)"`
	TransferSales *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Expenses      *decimal.Decimal `gorm:"type:decimal(12,2)"`
	ManualIncome  *decimal.Decimal `gorm:"type:decimal(12,2)"`
	ManualExpense *decimal.Decimal `gorm:"type:decimal(12,2)"`
	ExpectedCash  *decimal.Decimal `gorm:"type:decimal(12,2)"`

	RealCash     *decimal.Decimal `gorm:"type:decimal(12,2)"`
	RealCard     *decimal.Decimal `gorm:"type:decimal(12,2)"`
	RealTransfer *decimal.Decimal `gorm:"type:decimal(12,2)"`

	CashVariance     *decimal.Decimal `gorm:"type:decimal(12,2)"`
	CardVariance     *decimal.Decimal `gorm:"type:decimal(12,2)"`
	TransferVariance *decimal.Decimal `gorm:"type:decimal(12,2)"`

	Notes string `gorm:"size:500"`

	// mismo mecanismo que Shift.OpenSlot
	OpenSlot *bool `gorm:"uniqueIndex"`
}

func (a *Arqueo) IsOpen() bool {
	return a.ClosedAt == nil
}
