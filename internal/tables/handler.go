package tables

import (
	"github.com/Nicoczyruk/standburg-project-sub000/internal/apperr"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/database"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/models"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type TableResponse struct {
	ID       uint              `json:"id"`
	Number   int               `json:"numero"`
	Capacity int               `json:"capacidad"`
	State    models.TableState `json:"estado"`
}

func toResponse(t *models.Table) TableResponse {
	return TableResponse{ID: t.ID, Number: t.Number, Capacity: t.Capacity, State: t.State}
}

// GET /api/mesas?estado=libre
func ListTablesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		state := models.TableState(c.Query("estado"))
		if state != "" && !state.Valid() {
			return apperr.Validation("Estado de mesa inválido")
		}

		list, err := List(database.DB, state)
		if err != nil {
			return err
		}

		res := make([]TableResponse, 0, len(list))
		for i := range list {
			res = append(res, toResponse(&list[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/mesas/:id
func GetTableHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ParamID(c)
		if err != nil {
			return err
		}
		t, err := Get(database.DB, id)
		if err != nil {
			return err
		}
		return c.JSON(toResponse(t))
	}
}

// POST /api/mesas
func CreateTableHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body TableInput
		if err := validation.Body(c, &body); err != nil {
			return err
		}
		t, err := Create(database.DB, body)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(toResponse(t))
	}
}

// PUT /api/mesas/:id
func UpdateTableHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ParamID(c)
		if err != nil {
			return err
		}
		var body TableInput
		if err := validation.Body(c, &body); err != nil {
			return err
		}
		t, err := Update(database.DB, id, body)
		if err != nil {
			return err
		}
		return c.JSON(toResponse(t))
	}
}

// DELETE /api/mesas/:id
func DeleteTableHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ParamID(c)
		if err != nil {
			return err
		}
		if err := Delete(database.DB, id); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
