package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Shift es un turno de caja. Solo puede haber uno abierto.
type Shift struct {
	ID            uint            `gorm:"primaryKey"`
	OpenedBy      uint            `gorm:"not null"`
	OpenedAt      time.Time       `gorm:"not null;index"`
	OpeningAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	ClosedBy        *uint
	ClosedAt        *time.Time
	EstimatedAmount *decimal.Decimal `gorm:"type:decimal(12,2)"` // apertura + pagos del turno
	ActualAmount    *decimal.Decimal `gorm:"type:decimal(12,2)"` // contado
	Variance        *decimal.Decimal `gorm:"type:decimal(12,2)"` // contado - estimado

	// OpenSlot vale true mientras el turno está abierto y NULL al cerrarse;
	// el índice único impide dos turnos abiertos a la vez.
	OpenSlot *bool `gorm:"uniqueIndex"`
}

func (s *Shift) IsOpen() bool {
	return s.ClosedAt == nil
}
