package expense

import (
	"fmt"
	"strconv"
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

type ExpenseResponse struct {
	ID        uint               `json:"id"`
	Type      models.ExpenseType `json:"tipo"`
	Concept   string             `json:"concepto"`
	Amount    decimal.Decimal    `json:"monto"`
	Date      string             `json:"fecha"`
	CreatedAt time.Time          `json:"creado"`
}

func toResponse(e *models.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:        e.ID,
		Type:      e.Type,
		Concept:   e.Concept,
		Amount:    e.Amount,
		Date:      e.Date.Format(dateLayout),
		CreatedAt: e.CreatedAt,
	}
}

func queryDate(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, raw, time.Local)
	if err != nil {
		return nil, apperr.Validation(fmt.Sprintf("La fecha %s debe tener formato YYYY-MM-DD", key))
	}
	return &t, nil
}

// -------------------------
// GET /api/gastos?tipo=fijo&desde=2025-12-01&hasta=2025-12-31
// -------------------------
func ListExpensesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		f := Filter{Type: models.ExpenseType(c.Query("tipo"))}
		if f.Type != "" && !f.Type.Valid() {
			return apperr.Validation("Tipo de gasto inválido (fijo|variable|cuenta_corriente)")
		}

		var err error
		if f.From, err = queryDate(c, "desde"); err != nil {
			return err
		}
		if f.To, err = queryDate(c, "hasta"); err != nil {
			return err
		}

		list, err := List(database.DB, f)
		if err != nil {
			return err
		}

		resp := make([]ExpenseResponse, 0, len(list))
		for i := range list {
			resp = append(resp, toResponse(&list[i]))
		}
		return c.JSON(resp)
	}
}

// GET /api/gastos/:id
func GetExpenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ParamID(c)
		if err != nil {
			return err
		}
		e, err := Get(database.DB, id)
		if err != nil {
			return err
		}
		return c.JSON(toResponse(e))
	}
}

// -------------------------
// POST /api/gastos
// -------------------------
func CreateExpenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body Input
		if err := validation.Body(c, &body); err != nil {
			return err
		}

		e, err := Create(database.DB, body)
		if err != nil {
			return err
		}

		userID, userName := auth.Actor(c)
		audit.Record(database.DB, audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  audit.EntityExpense,
			EntityID:    e.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Gasto creado: %s %s", e.Concept, e.Amount.StringFixed(2)),
			After:       toResponse(e),
		})

		return c.Status(fiber.StatusCreated).JSON(toResponse(e))
	}
}

// -------------------------
// PUT /api/gastos/:id
// -------------------------
func UpdateExpenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ParamID(c)
		if err != nil {
			return err
		}
		var body Input
		if err := validation.Body(c, &body); err != nil {
			return err
		}

		before, after, err := Update(database.DB, id, body)
		if err != nil {
			return err
		}

		userID, userName := auth.Actor(c)
		audit.Record(database.DB, audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  audit.EntityExpense,
			EntityID:    id,
			Action:      models.AuditActionUpdate,
			Description: "Gasto actualizado: " + after.Concept,
			Before:      toResponse(before),
			After:       toResponse(after),
		})

		return c.JSON(toResponse(after))
	}
}

// -------------------------
// DELETE /api/gastos/:id
// -------------------------
func DeleteExpenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ParamID(c)
		if err != nil {
			return err
		}

		before, err := Delete(database.DB, id)
		if err != nil {
			return err
		}

		userID, userName := auth.Actor(c)
		audit.Record(database.DB, audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  audit.EntityExpense,
			EntityID:    id,
			Action:      models.AuditActionDelete,
			Description: "Gasto eliminado: " + before.Concept,
			Before:      toResponse(before),
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// -------------------------
// GET /api/gastos/resumen-mensual?anio=2025&mes=12
// -------------------------
func MonthlySummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		now := time.Now()
		year, month := now.Year(), int(now.Month())

		if s := c.Query("anio"); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil || v < 2000 || v > 9999 {
				return apperr.Validation("anio inválido")
			}
			year = v
		}
		if s := c.Query("mes"); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil || v < 1 || v > 12 {
				return apperr.Validation("mes inválido (1-12)")
			}
			month = v
		}

		resp, err := Monthly(database.DB, year, time.Month(month))
		if err != nil {
			return err
		}
		return c.JSON(resp)
	}
}
