package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ExpenseType string

const (
	ExpenseFixed          ExpenseType = "fijo"
	ExpenseVariable       ExpenseType = "variable"
	ExpenseRunningAccount ExpenseType = "cuenta_corriente"
)

func (t ExpenseType) Valid() bool {
	switch t {
	case ExpenseFixed, ExpenseVariable, ExpenseRunningAccount:
		return true
	}
	return false
}

type Expense struct {
	ID        uint            `gorm:"primaryKey"`
	Type      ExpenseType     `gorm:"size:20;not null;index"`
	Concept   string          `gorm:"size:255;not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Date      time.Time       `gorm:"index;not null"`
	CreatedAt time.Time       `gorm:"index"`
	UpdatedAt time.Time
}
