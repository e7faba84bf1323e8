package models

import "time"

type TableState string

const (
	TableFree     TableState = "libre"
	TableOccupied TableState = "ocupada"
	TableReserved TableState = "reservada"
)

func (s TableState) Valid() bool {
	switch s {
	case TableFree, TableOccupied, TableReserved:
		return true
	}
	return false
}

// Table es una mesa física del salón.
type Table struct {
	ID        uint       `gorm:"primaryKey"`
	Number    int        `gorm:"not null;uniqueIndex"`
	Capacity  int        `gorm:"not null"`
	State     TableState `gorm:"size:20;not null;default:'libre'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
