package catalog

import (
	"github.com/Nicoczyruk/standburg-project-sub000/internal/cache"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/database"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/models"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const (
	cachePrefix        = "catalogo:"
	cacheKeyCategories = cachePrefix + "categorias"
)

type CategoryResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"nombre"`
	Description string `json:"descripcion"`
	CreatedAt   string `json:"created_at"`
}

func toCategoryResponse(cat *models.Category) CategoryResponse {
	return CategoryResponse{
		ID:          cat.ID,
		Name:        cat.Name,
		Description: cat.Description,
		CreatedAt:   cat.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// GET /api/categorias
func ListCategoriesHandler(store *cache.Cache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var res []CategoryResponse
		if store.GetJSON(c.Context(), cacheKeyCategories, &res) {
			return c.JSON(res)
		}

		categories, err := ListCategories(database.DB)
		if err != nil {
			return err
		}

		res = make([]CategoryResponse, 0, len(categories))
		for i := range categories {
			res = append(res, toCategoryResponse(&categories[i]))
		}
		store.SetJSON(c.Context(), cacheKeyCategories, res)
		return c.JSON(res)
	}
}

// GET /api/categorias/:id
func GetCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ParamID(c)
		if err != nil {
			return err
		}
		cat, err := GetCategory(database.DB, id)
		if err != nil {
			return err
		}
		return c.JSON(toCategoryResponse(cat))
	}
}

// GET /api/categorias/:id/productos
func ListCategoryProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ParamID(c)
		if err != nil {
			return err
		}
		products, err := ListProductsByCategory(database.DB, id)
		if err != nil {
			return err
		}
		return c.JSON(toProductResponses(products))
	}
}

// POST /api/categorias
func CreateCategoryHandler(store *cache.Cache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CategoryInput
		if err := validation.Body(c, &body); err != nil {
			return err
		}

		cat, err := CreateCategory(database.DB, body)
		if err != nil {
			return err
		}

		store.Invalidate(c.Context(), cachePrefix)
		return c.Status(fiber.StatusCreated).JSON(toCategoryResponse(cat))
	}
}

// PUT /api/categorias/:id
func UpdateCategoryHandler(store *cache.Cache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ParamID(c)
		if err != nil {
			return err
		}
		var body CategoryInput
		if err := validation.Body(c, &body); err != nil {
			return err
		}

		cat, err := UpdateCategory(database.DB, id, body)
		if err != nil {
			return err
		}

		store.Invalidate(c.Context(), cachePrefix)
		return c.JSON(toCategoryResponse(cat))
	}
}

// DELETE /api/categorias/:id
func DeleteCategoryHandler(store *cache.Cache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ParamID(c)
		if err != nil {
			return err
		}
		if err := DeleteCategory(database.DB, id); err != nil {
			return err
		}

		store.Invalidate(c.Context(), cachePrefix)
		return c.SendStatus(fiber.StatusNoContent)
	}
}
