package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uint            `gorm:"primaryKey"`
	Name        string          `gorm:"size:100;not null"`
	Description string          `gorm:"size:255"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CategoryID  uint            `gorm:"index;not null"`
	Category    Category        `gorm:"constraint:OnDelete:RESTRICT"`
	Image       string          `gorm:"size:255"` // ruta o URL de la imagen
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
