package audit

import (
	"encoding/json"
	"fmt"

	"github.com/Nicoczyruk/standburg-project-sub000/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type LogOptions struct {
	UserID      uint
	UserName    string
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

// Entidades registradas en la auditoría.
const (
	EntityOrder    = "pedido"
	EntityPayment  = "pago"
	EntityShift    = "turno"
	EntityArqueo   = "arqueo"
	EntityMovement = "movimiento_caja"
	EntityExpense  = "gasto"
)

var knownEntities = map[string]bool{
	EntityOrder:    true,
	EntityPayment:  true,
	EntityShift:    true,
	EntityArqueo:   true,
	EntityMovement: true,
	EntityExpense:  true,
}

// actorName es el nombre guardado cuando la operación no tiene un
// administrador autenticado, como el pedido de autoservicio.
const actorName = "autoservicio"

func snapshot(v any) (string, error) {
	if v == nil {
		return "null", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// WriteLog guarda una entrada de auditoría sobre db, que puede ser la
// transacción de la operación auditada.
func WriteLog(db *gorm.DB, opts LogOptions) error {
	if !knownEntities[opts.EntityType] {
		return fmt.Errorf("entidad de auditoría desconocida %q", opts.EntityType)
	}

	before, err := snapshot(opts.Before)
	if err != nil {
		return fmt.Errorf("estado anterior de %s %d: %w", opts.EntityType, opts.EntityID, err)
	}
	after, err := snapshot(opts.After)
	if err != nil {
		return fmt.Errorf("estado posterior de %s %d: %w", opts.EntityType, opts.EntityID, err)
	}

	name := opts.UserName
	if opts.UserID == 0 && name == "" {
		name = actorName
	}

	entry := models.AuditLog{
		UserID:      opts.UserID,
		UserName:    name,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  before,
		AfterData:   after,
	}
	if err := db.Create(&entry).Error; err != nil {
		return fmt.Errorf("no se pudo guardar la auditoría de %s %d: %w", opts.EntityType, opts.EntityID, err)
	}
	return nil
}

// Record escribe el registro y solo loguea si falla: la auditoría nunca
// hace fallar la operación auditada.
func Record(db *gorm.DB, opts LogOptions) {
	if err := WriteLog(db, opts); err != nil {
		zap.L().Warn("auditoría no registrada",
			zap.String("entity", opts.EntityType),
			zap.Uint("entity_id", opts.EntityID),
			zap.Error(err),
		)
	}
}
