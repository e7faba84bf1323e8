package orders

import (
	"fmt"
	"time"

	"github.com/Nicoczyruk/standburg-project-sub000/internal/apperr"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/audit"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/auth"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/config"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/database"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/metrics"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/models"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type ItemResponse struct {
	ID          uint            `json:"id"`
	ProductID   uint            `json:"producto_id"`
	ProductName string          `json:"producto_nombre"`
	Quantity    int             `json:"cantidad"`
	UnitPrice   decimal.Decimal `json:"precio_unitario"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type PaymentSummary struct {
	ID        uint                 `json:"id"`
	ShiftID   *uint                `json:"turno_id"`
	Method    models.PaymentMethod `json:"metodo"`
	Amount    decimal.Decimal      `json:"monto"`
	Status    models.PaymentStatus `json:"estado"`
	CreatedAt time.Time            `json:"fecha"`
}

type OrderResponse struct {
	ID              uint              `json:"id"`
	TableID         *uint             `json:"mesa_id"`
	TableNumber     *int              `json:"mesa_numero"`
	CustomerName    string            `json:"cliente_nombre"`
	CustomerPhone   *string           `json:"cliente_telefono"`
	CustomerAddress *string           `json:"cliente_direccion"`
	Notes           string            `json:"notas"`
	Type            models.OrderType  `json:"tipo"`
	State           models.OrderState `json:"estado"`
	Total           decimal.Decimal   `json:"total"`
	CreatedAt       time.Time         `json:"fecha"`
	Items           []ItemResponse    `json:"items"`
	Payments        []PaymentSummary  `json:"pagos,omitempty"`
}

type UpdateStateRequest struct {
	State models.OrderState `json:"estado"`
}

func ToResponse(o *models.Order) OrderResponse {
	res := OrderResponse{
		ID:              o.ID,
		TableID:         o.TableID,
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		CustomerAddress: o.CustomerAddress,
		Notes:           o.Notes,
		Type:            o.Type,
		State:           o.State,
		Total:           o.Total,
		CreatedAt:       o.CreatedAt,
		Items:           make([]ItemResponse, 0, len(o.Items)),
	}
	if o.Table != nil {
		n := o.Table.Number
		res.TableNumber = &n
	}
	for _, it := range o.Items {
		res.Items = append(res.Items, ItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.Product.Name,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		})
	}
	for _, p := range o.Payments {
		res.Payments = append(res.Payments, PaymentSummary{
			ID:        p.ID,
			ShiftID:   p.ShiftID,
			Method:    p.Method,
			Amount:    p.Amount,
			Status:    p.Status,
			CreatedAt: p.CreatedAt,
		})
	}
	return res
}

func createHandler(initial models.OrderState) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateInput
		if err := validation.Body(c, &body); err != nil {
			return err
		}

		o, err := Create(database.DB, body, initial)
		if err != nil {
			return err
		}

		metrics.OrdersCreated.WithLabelValues(string(o.Type)).Inc()
		metrics.PaymentsAmount.WithLabelValues(string(body.PaymentMethod)).Add(o.Total.InexactFloat64())

		userID, userName := auth.Actor(c)
		audit.Record(database.DB, audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  audit.EntityOrder,
			EntityID:    o.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Pedido %s por %s (%s)", o.Type, o.Total.StringFixed(2), body.PaymentMethod),
			After:       ToResponse(o),
		})

		return c.Status(fiber.StatusCreated).JSON(ToResponse(o))
	}
}

// POST /api/pedidos
func CreateOrderHandler() fiber.Handler {
	return createHandler(models.OrderPending)
}

// POST /api/pedidos/autoservicio
// Pedido cargado por el cliente; queda a confirmar por el local.
func CreateSelfServiceOrderHandler() fiber.Handler {
	return createHandler(models.OrderToConfirm)
}

// GET /api/pedidos?estado=pendiente&tipo=mesa&mesa_id=3
func ListOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		f := Filter{
			State: models.OrderState(c.Query("estado")),
			Type:  models.OrderType(c.Query("tipo")),
		}
		if f.State != "" && !f.State.Valid() {
			return apperr.Validation("Estado inválido")
		}
		if f.Type != "" && !f.Type.Valid() {
			return apperr.Validation("Tipo de pedido inválido")
		}
		tableID, err := validation.QueryID(c, "mesa_id")
		if err != nil {
			return err
		}
		f.TableID = tableID

		list, err := List(database.DB, f)
		if err != nil {
			return err
		}
		res := make([]OrderResponse, 0, len(list))
		for i := range list {
			res = append(res, ToResponse(&list[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/pedidos/:id
func GetOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ParamID(c)
		if err != nil {
			return err
		}
		o, err := Get(database.DB, id)
		if err != nil {
			return err
		}
		return c.JSON(ToResponse(o))
	}
}

// PUT /api/pedidos/:id/estado
func UpdateOrderStateHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ParamID(c)
		if err != nil {
			return err
		}
		var body UpdateStateRequest
		if err := validation.Body(c, &body); err != nil {
			return err
		}

		before, after, err := UpdateState(database.DB, id, body.State, cfg.StrictOrderTransitions)
		if err != nil {
			return err
		}

		userID, userName := auth.Actor(c)
		audit.Record(database.DB, audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  audit.EntityOrder,
			EntityID:    id,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Estado %s -> %s", before.State, after.State),
			Before:      fiber.Map{"estado": before.State},
			After:       fiber.Map{"estado": after.State},
		})
		return c.JSON(ToResponse(after))
	}
}

// DELETE /api/pedidos/:id
func DeleteOrderHandler() fiber.Handler {
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
			EntityType:  audit.EntityOrder,
			EntityID:    id,
			Action:      models.AuditActionDelete,
			Description: "Pedido eliminado",
			Before:      ToResponse(before),
		})
		return c.SendStatus(fiber.StatusNoContent)
	}
}
