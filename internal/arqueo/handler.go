package arqueo

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

type ArqueoResponse struct {
	ID            uint            `json:"id"`
	OpenedBy      uint            `json:"admin_apertura_id"`
	OpenedAt      time.Time       `json:"fecha_apertura"`
	OpeningAmount decimal.Decimal `json:"monto_apertura"`
	ClosedBy      *uint           `json:"admin_cierre_id"`
	ClosedAt      *time.Time      `json:"fecha_cierre"`
	Open          bool            `json:"abierto"`
	Summary

	RealCash         *decimal.Decimal `json:"efectivo_real,omitempty"`
	RealCard         *decimal.Decimal `json:"tarjeta_real,omitempty"`
	RealTransfer     *decimal.Decimal `json:"transferencia_real,omitempty"`
	CashVariance     *decimal.Decimal `json:"diferencia_efectivo,omitempty"`
	CardVariance     *decimal.Decimal `json:"diferencia_tarjeta,omitempty"`
	TransferVariance *decimal.Decimal `json:"diferencia_transferencia,omitempty"`
	Notes            string           `json:"notas,omitempty"`
}

func toResponse(a *models.Arqueo, s Summary) ArqueoResponse {
	return ArqueoResponse{
		ID:               a.ID,
		OpenedBy:         a.OpenedBy,
		OpenedAt:         a.OpenedAt,
		OpeningAmount:    a.OpeningAmount,
		ClosedBy:         a.ClosedBy,
		ClosedAt:         a.ClosedAt,
		Open:             a.IsOpen(),
		Summary:          s,
		RealCash:         a.RealCash,
		RealCard:         a.RealCard,
		RealTransfer:     a.RealTransfer,
		CashVariance:     a.CashVariance,
		CardVariance:     a.CardVariance,
		TransferVariance: a.TransferVariance,
		Notes:            a.Notes,
	}
}

// describe usa las cifras en vivo si está abierto y las congeladas si no.
func describe(a *models.Arqueo) (ArqueoResponse, error) {
	if !a.IsOpen() {
		return toResponse(a, Frozen(a)), nil
	}
	s, err := Compute(database.DB, a)
	if err != nil {
		return ArqueoResponse{}, err
	}
	return toResponse(a, s), nil
}

// GET /api/arqueo/activo
func ActiveArqueoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		a, s, err := Active(database.DB)
		if err != nil {
			return err
		}
		return c.JSON(toResponse(a, s))
	}
}

// GET /api/arqueo/historial
func HistoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := History(database.DB)
		if err != nil {
			return err
		}
		res := make([]ArqueoResponse, 0, len(list))
		for i := range list {
			res = append(res, toResponse(&list[i], Frozen(&list[i])))
		}
		return c.JSON(res)
	}
}

// GET /api/arqueo/:id
func GetArqueoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ParamID(c)
		if err != nil {
			return err
		}
		a, err := Get(database.DB, id)
		if err != nil {
			return err
		}
		res, err := describe(a)
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}

// POST /api/arqueo/abrir
func OpenArqueoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body OpenInput
		if err := validation.Body(c, &body); err != nil {
			return err
		}

		userID, userName := auth.Actor(c)
		a, err := Open(database.DB, userID, body)
		if err != nil {
			return err
		}
		res, err := describe(a)
		if err != nil {
			return err
		}

		audit.Record(database.DB, audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  audit.EntityArqueo,
			EntityID:    a.ID,
			Action:      models.AuditActionOpen,
			Description: "Arqueo abierto con " + a.OpeningAmount.StringFixed(2),
			After:       res,
		})
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// PUT /api/arqueo/cerrar
func CloseArqueoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CloseInput
		if err := validation.Body(c, &body); err != nil {
			return err
		}

		userID, userName := auth.Actor(c)
		a, err := Close(database.DB, userID, body)
		if err != nil {
			return err
		}
		res := toResponse(a, Frozen(a))

		if a.CashVariance != nil {
			metrics.CashVariance.WithLabelValues("arqueo").Observe(a.CashVariance.InexactFloat64())
		}
		audit.Record(database.DB, audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  audit.EntityArqueo,
			EntityID:    a.ID,
			Action:      models.AuditActionClose,
			Description: "Arqueo cerrado",
			After:       res,
		})
		return c.JSON(res)
	}
}
