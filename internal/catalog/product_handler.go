package catalog

import (
	"fmt"

	"github.com/Nicoczyruk/standburg-project-sub000/internal/cache"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/database"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/models"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type ProductResponse struct {
	ID           uint            `json:"id"`
	Name         string          `json:"nombre"`
	Description  string          `json:"descripcion"`
	Price        decimal.Decimal `json:"precio"`
	CategoryID   uint            `json:"categoria_id"`
	CategoryName string          `json:"categoria"`
	Image        string          `json:"imagen"`
}

func toProductResponse(p *models.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		CategoryID:   p.CategoryID,
		CategoryName: p.Category.Name,
		Image:        p.Image,
	}
}

func toProductResponses(products []models.Product) []ProductResponse {
	res := make([]ProductResponse, 0, len(products))
	for i := range products {
		res = append(res, toProductResponse(&products[i]))
	}
	return res
}

// GET /api/productos?categoria_id=1
func ListProductsHandler(store *cache.Cache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		categoryID, err := validation.QueryID(c, "categoria_id")
		if err != nil {
			return err
		}

		key := cachePrefix + "productos"
		if categoryID != nil {
			key = fmt.Sprintf("%s:%d", key, *categoryID)
		}

		var res []ProductResponse
		if store.GetJSON(c.Context(), key, &res) {
			return c.JSON(res)
		}

		products, err := ListProducts(database.DB, categoryID)
		if err != nil {
			return err
		}
		res = toProductResponses(products)
		store.SetJSON(c.Context(), key, res)
		return c.JSON(res)
	}
}

// GET /api/productos/:id
func GetProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ParamID(c)
		if err != nil {
			return err
		}
		p, err := GetProduct(database.DB, id)
		if err != nil {
			return err
		}
		return c.JSON(toProductResponse(p))
	}
}

// POST /api/productos
func CreateProductHandler(store *cache.Cache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ProductInput
		if err := validation.Body(c, &body); err != nil {
			return err
		}

		p, err := CreateProduct(database.DB, body)
		if err != nil {
			return err
		}

		store.Invalidate(c.Context(), cachePrefix)
		return c.Status(fiber.StatusCreated).JSON(toProductResponse(p))
	}
}

// PUT /api/productos/:id
func UpdateProductHandler(store *cache.Cache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ParamID(c)
		if err != nil {
			return err
		}
		var body ProductInput
		if err := validation.Body(c, &body); err != nil {
			return err
		}

		p, err := UpdateProduct(database.DB, id, body)
		if err != nil {
			return err
		}

		store.Invalidate(c.Context(), cachePrefix)
		return c.JSON(toProductResponse(p))
	}
}

// DELETE /api/productos/:id
func DeleteProductHandler(store *cache.Cache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ParamID(c)
		if err != nil {
			return err
		}
		if err := DeleteProduct(database.DB, id); err != nil {
			return err
		}

		store.Invalidate(c.Context(), cachePrefix)
		return c.SendStatus(fiber.StatusNoContent)
	}
}
