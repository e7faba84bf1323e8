package models

import "time"

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
	AuditActionOpen   AuditAction = "open"
	AuditActionClose  AuditAction = "close"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"index"`

	// Quién
	UserID   uint
	UserName string `gorm:"size:100"` // desnormalizado

	// Qué entidad (ej: "pedido", "pago", "turno", "arqueo", "gasto", "movimiento_caja")
	EntityType string `gorm:"size:50;index"`
	EntityID   uint   `gorm:"index"`

	Action      AuditAction `gorm:"size:20"`
	Description string      `gorm:"size:255"`

	// Estado anterior y posterior en JSON
	BeforeData string `gorm:"type:text"`
	AfterData  string `gorm:"type:text"`
}
