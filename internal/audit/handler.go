package audit

import (
	"github.com/Nicoczyruk/standburg-project-sub000/internal/apperr"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/database"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AuditLogResponse struct {
	ID          uint               `json:"id"`
	CreatedAt   string             `json:"created_at"`
	UserID      uint               `json:"user_id"`
	UserName    string             `json:"user_name"`
	EntityType  string             `json:"entidad"`
	EntityID    uint               `json:"entidad_id"`
	Action      models.AuditAction `json:"accion"`
	Description string             `json:"descripcion"`
	Before      string             `json:"antes"`
	After       string             `json:"despues"`
}

// GET /api/auditoria?entidad=pedido&entidad_id=1&limite=100
func ListAuditLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.AuditLog{})

		if entity := c.Query("entidad"); entity != "" {
			dbq = dbq.Where("entity_type = ?", entity)
		}
		if eid := c.QueryInt("entidad_id", 0); eid > 0 {
			dbq = dbq.Where("entity_id = ?", eid)
		}

		limit := c.QueryInt("limite", 200)
		if limit <= 0 || limit > 1000 {
			limit = 200
		}

		var logs []models.AuditLog
		if err := dbq.Order("created_at DESC, id DESC").Limit(limit).Find(&logs).Error; err != nil {
			return apperr.FromDB(err, "")
		}

		resp := make([]AuditLogResponse, 0, len(logs))
		for _, log := range logs {
			resp = append(resp, AuditLogResponse{
				ID:          log.ID,
				CreatedAt:   log.CreatedAt.Format("2006-01-02 15:04:05"),
				UserID:      log.UserID,
				UserName:    log.UserName,
				EntityType:  log.EntityType,
				EntityID:    log.EntityID,
				Action:      log.Action,
				Description: log.Description,
				Before:      log.BeforeData,
				After:       log.AfterData,
			})
		}

		return c.JSON(resp)
	}
}
