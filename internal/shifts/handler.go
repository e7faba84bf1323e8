package shifts

import (
	"time"

	"github.com/Nicoczyruk/standburg-project-sub000/internal/audit"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/auth"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/database"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/metrics"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/models"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type ShiftResponse struct {
	ID              uint             `json:"id"`
	OpenedBy        uint             `json:"admin_apertura_id"`
	OpenedAt        time.Time        `json:"fecha_apertura"`
	OpeningAmount   decimal.Decimal  `json:"monto_apertura"`
	ClosedBy        *uint            `json:"admin_cierre_id"`
	ClosedAt        *time.Time       `json:"fecha_cierre"`
	EstimatedAmount *decimal.Decimal `json:"monto_estimado"`
	ActualAmount    *decimal.Decimal `json:"monto_real"`
	Variance        *decimal.Decimal `json:"diferencia"`
	Open            bool             `json:"abierto"`
}

func toResponse(s *models.Shift) ShiftResponse {
	return ShiftResponse{
		ID:              s.ID,
		OpenedBy:        s.OpenedBy,
		OpenedAt:        s.OpenedAt,
		OpeningAmount:   s.OpeningAmount,
		ClosedBy:        s.ClosedBy,
		ClosedAt:        s.ClosedAt,
		EstimatedAmount: s.EstimatedAmount,
		ActualAmount:    s.ActualAmount,
		Variance:        s.Variance,
		Open:            s.IsOpen(),
	}
}

// GET /api/turnos
func ListShiftsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := List(database.DB)
		if err != nil {
			return err
		}
		res := make([]ShiftResponse, 0, len(list))
		for i := range list {
			res = append(res, toResponse(&list[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/turnos/activo
func ActiveShiftHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := Active(database.DB)
		if err != nil {
			return err
		}
		return c.JSON(toResponse(s))
	}
}

// GET /api/turnos/:id
func GetShiftHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ParamID(c)
		if err != nil {
			return err
		}
		s, err := Get(database.DB, id)
		if err != nil {
			return err
		}
		return c.JSON(toResponse(s))
	}
}

// POST /api/turnos/abrir
func OpenShiftHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body OpenInput
		if err := validation.Body(c, &body); err != nil {
			return err
		}

		userID, userName := auth.Actor(c)
		s, err := Open(database.DB, userID, body)
		if err != nil {
			return err
		}

		audit.Record(database.DB, audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  audit.EntityShift,
			EntityID:    s.ID,
			Action:      models.AuditActionOpen,
			Description: "Turno abierto con " + s.OpeningAmount.StringFixed(2),
			After:       toResponse(s),
		})
		return c.Status(fiber.StatusCreated).JSON(toResponse(s))
	}
}

// PUT /api/turnos/:id/cerrar
func CloseShiftHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ParamID(c)
		if err != nil {
			return err
		}
		var body CloseInput
		if err := validation.Body(c, &body); err != nil {
			return err
		}

		userID, userName := auth.Actor(c)
		s, err := Close(database.DB, id, userID, body)
		if err != nil {
			return err
		}

		if s.Variance != nil {
			metrics.CashVariance.WithLabelValues("turno").Observe(s.Variance.InexactFloat64())
		}
		audit.Record(database.DB, audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  audit.EntityShift,
			EntityID:    s.ID,
			Action:      models.AuditActionClose,
			Description: "Turno cerrado",
			After:       toResponse(s),
		})
		return c.JSON(toResponse(s))
	}
}
