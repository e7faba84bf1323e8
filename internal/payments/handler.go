package payments

import (
	"fmt"
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

type PaymentResponse struct {
	ID           uint                 `json:"id"`
	OrderID      uint                 `json:"pedido_id"`
	ShiftID      *uint                `json:"turno_id"`
	Method       models.PaymentMethod `json:"metodo"`
	Amount       decimal.Decimal      `json:"monto"`
	Status       models.PaymentStatus `json:"estado"`
	CreatedAt    time.Time            `json:"fecha"`
	OrderState   models.OrderState    `json:"estado_pedido,omitempty"`
	CustomerName string               `json:"cliente_nombre,omitempty"`
}

func toResponse(p *models.Payment) PaymentResponse {
	return PaymentResponse{
		ID:           p.ID,
		OrderID:      p.OrderID,
		ShiftID:      p.ShiftID,
		Method:       p.Method,
		Amount:       p.Amount,
		Status:       p.Status,
		CreatedAt:    p.CreatedAt,
		OrderState:   p.Order.State,
		CustomerName: p.Order.CustomerName,
	}
}

// GET /api/pagos?pedido_id=1
func ListPaymentsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		orderID, err := validation.QueryID(c, "pedido_id")
		if err != nil {
			return err
		}
		list, err := List(database.DB, orderID)
		if err != nil {
			return err
		}
		res := make([]PaymentResponse, 0, len(list))
		for i := range list {
			res = append(res, toResponse(&list[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/pagos/:id
func GetPaymentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ParamID(c)
		if err != nil {
			return err
		}
		p, err := Get(database.DB, id)
		if err != nil {
			return err
		}
		return c.JSON(toResponse(p))
	}
}

// POST /api/pagos
func CreatePaymentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateInput
		if err := validation.Body(c, &body); err != nil {
			return err
		}

		p, err := Create(database.DB, body)
		if err != nil {
			return err
		}

		metrics.PaymentsAmount.WithLabelValues(string(p.Method)).Add(p.Amount.InexactFloat64())
		userID, userName := auth.Actor(c)
		audit.Record(database.DB, audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  audit.EntityPayment,
			EntityID:    p.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Pago de %s (%s) del pedido %d", p.Amount.StringFixed(2), p.Method, p.OrderID),
			After:       toResponse(p),
		})
		return c.Status(fiber.StatusCreated).JSON(toResponse(p))
	}
}

// DELETE /api/pagos/:id
func DeletePaymentHandler() fiber.Handler {
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
			EntityType:  audit.EntityPayment,
			EntityID:    id,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Pago anulado del pedido %d", before.OrderID),
			Before:      toResponse(before),
		})
		return c.SendStatus(fiber.StatusNoContent)
	}
}
