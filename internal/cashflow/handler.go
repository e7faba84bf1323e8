package cashflow

import (
	"fmt"
	"time"

	"github.com/Nicoczyruk/standburg-project-sub000/internal/apperr"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/audit"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/auth"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/database"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/models"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CashMovementResponse struct {
	ID            uint                `json:"id"`
	Type          models.MovementType `json:"tipo"`
	Description   string              `json:"descripcion"`
	Amount        decimal.Decimal     `json:"monto"`
	PaymentMethod string              `json:"metodo_pago"`
	ArqueoID      *uint               `json:"arqueo_id"`
	CreatedBy     uint                `json:"admin_id"`
	CreatedAt     time.Time           `json:"fecha"`
}

func toResponse(m *models.CashMovement) CashMovementResponse {
	return CashMovementResponse{
		ID:            m.ID,
		Type:          m.Type,
		Description:   m.Description,
		Amount:        m.Amount,
		PaymentMethod: m.PaymentMethod,
		ArqueoID:      m.ArqueoID,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
	}
}

// parseDay lee una fecha YYYY-MM-DD del query string.
func parseDay(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	d, err := time.ParseInLocation(dayLayout, raw, time.Local)
	if err != nil {
		return nil, apperr.Validation(fmt.Sprintf("La fecha %s debe tener formato YYYY-MM-DD", key))
	}
	return &d, nil
}

// -------------------------------------------------
// POST /api/movimientos-caja
// -------------------------------------------------
func CreateCashMovementHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateInput
		if err := validation.Body(c, &body); err != nil {
			return err
		}

		userID, userName := auth.Actor(c)
		mov, err := Create(database.DB, userID, body)
		if err != nil {
			return err
		}

		audit.Record(database.DB, audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  audit.EntityMovement,
			EntityID:    mov.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Movimiento de caja: %s %s", mov.Type, mov.Amount.StringFixed(2)),
			After:       toResponse(mov),
		})

		return c.Status(fiber.StatusCreated).JSON(toResponse(mov))
	}
}

// -------------------------------------------------
// GET /api/movimientos-caja?tipo=ingreso&arqueo_id=3&desde=2025-12-01&hasta=2025-12-31
// -------------------------------------------------
func ListCashMovementsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		f := Filter{Type: models.MovementType(c.Query("tipo"))}
		if f.Type != "" && !f.Type.Valid() {
			return apperr.Validation("Tipo de movimiento inválido (ingreso|egreso)")
		}

		arqueoID, err := validation.QueryID(c, "arqueo_id")
		if err != nil {
			return err
		}
		f.ArqueoID = arqueoID

		if f.From, err = parseDay(c, "desde"); err != nil {
			return err
		}
		to, err := parseDay(c, "hasta")
		if err != nil {
			return err
		}
		if to != nil {
			next := to.AddDate(0, 0, 1)
			f.To = &next
		}

		list, err := List(database.DB, f)
		if err != nil {
			return err
		}

		resp := make([]CashMovementResponse, 0, len(list))
		for i := range list {
			resp = append(resp, toResponse(&list[i]))
		}
		return c.JSON(resp)
	}
}

// GET /api/movimientos-caja/:id
func GetCashMovementHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ParamID(c)
		if err != nil {
			return err
		}
		mov, err := Get(database.DB, id)
		if err != nil {
			return err
		}
		return c.JSON(toResponse(mov))
	}
}
