package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderType string

const (
	OrderTypeCounter  OrderType = "mostrador"
	OrderTypeTable    OrderType = "mesa"
	OrderTypeDelivery OrderType = "delivery"
)

func (t OrderType) Valid() bool {
	switch t {
	case OrderTypeCounter, OrderTypeTable, OrderTypeDelivery:
		return true
	}
	return false
}

type OrderState string

const (
	OrderPending       OrderState = "pendiente"
	OrderToConfirm     OrderState = "por_confirmar"
	OrderInPreparation OrderState = "en_preparacion"
	OrderReady         OrderState = "listo"
	OrderDelivered     OrderState = "entregado"
	OrderPaid          OrderState = "pagado"
	OrderCanceled      OrderState = "cancelado"
)

// OrderStates es la enumeración completa, en el orden del ciclo de vida.
var OrderStates = []OrderState{
	OrderPending,
	OrderToConfirm,
	OrderInPreparation,
	OrderReady,
	OrderDelivered,
	OrderPaid,
	OrderCanceled,
}

func (s OrderState) Valid() bool {
	for _, st := range OrderStates {
		if st == s {
			return true
		}
	}
	return false
}

// Terminal indica que el pedido ya no avanza.
func (s OrderState) Terminal() bool {
	return s == OrderPaid || s == OrderCanceled
}

type Order struct {
	ID              uint `gorm:"primaryKey"`
	TableID         *uint
	Table           *Table     `gorm:"constraint:OnDelete:SET NULL"`
	CustomerName    string     `gorm:"size:100;not null"`
	CustomerPhone   *string    `gorm:"size:50"`
	CustomerAddress *string    `gorm:"size:255"`
	Notes           string     `gorm:"size:500"`
	Type            OrderType  `gorm:"size:20;not null;index"`
	State           OrderState `gorm:"size:20;not null;index"`
	// Total siempre es la suma de los subtotales de Items.
	Total     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt time.Time       `gorm:"index"`
	UpdatedAt time.Time

	Items    []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Payments []Payment   `gorm:"foreignKey:OrderID"`
}

// OrderItem guarda su propia copia del precio: un cambio posterior en el
// producto no altera pedidos ya registrados.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey"`
	OrderID   uint            `gorm:"index;not null"`
	ProductID uint            `gorm:"index;not null"`
	Product   Product         `gorm:"constraint:OnDelete:RESTRICT"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time
}
