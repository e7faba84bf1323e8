package catalog

import (
	"strings"

	"github.com/Nicoczyruk/standburg-project-sub000/internal/apperr"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/models"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/validation"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	msgCategoryNotFound = "Categoría no encontrada"
	msgProductNotFound  = "Producto no encontrado"
)

type CategoryInput struct {
	Name        string `json:"nombre" validate:"required,max=100"`
	Description string `json:"descripcion" validate:"max=255"`
}

type ProductInput struct {
	Name        string           `json:"nombre" validate:"required,max=100"`
	Description string           `json:"descripcion" validate:"max=255"`
	Price       *decimal.Decimal `json:"precio" validate:"required,gte=0"`
	CategoryID  uint             `json:"categoria_id" validate:"required"`
	Image       string           `json:"imagen" validate:"max=255"`
}

func (in *CategoryInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
}

func (in *ProductInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Image = strings.TrimSpace(in.Image)
}

// -------------------------
// Categorías
// -------------------------

func ListCategories(db *gorm.DB) ([]models.Category, error) {
	var categories []models.Category
	if err := db.Order("name asc").Find(&categories).Error; err != nil {
		return nil, apperr.FromDB(err, "")
	}
	return categories, nil
}

func GetCategory(db *gorm.DB, id uint) (*models.Category, error) {
	var cat models.Category
	if err := db.First(&cat, id).Error; err != nil {
		return nil, apperr.FromDB(err, msgCategoryNotFound)
	}
	return &cat, nil
}

func categoryNameTaken(db *gorm.DB, name string, exceptID uint) (bool, error) {
	var count int64
	err := db.Model(&models.Category{}).
		Where("LOWER(name) = LOWER(?) AND id <> ?", name, exceptID).
		Count(&count).Error
	return count > 0, err
}

func CreateCategory(db *gorm.DB, in CategoryInput) (*models.Category, error) {
	in.normalize()
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	taken, err := categoryNameTaken(db, in.Name, 0)
	if err != nil {
		return nil, apperr.FromDB(err, "")
	}
	if taken {
		return nil, apperr.Conflict("Ya existe una categoría con ese nombre")
	}

	cat := models.Category{Name: in.Name, Description: in.Description}
	if err := db.Create(&cat).Error; err != nil {
		return nil, apperr.FromDB(err, "")
	}
	return &cat, nil
}

func UpdateCategory(db *gorm.DB, id uint, in CategoryInput) (*models.Category, error) {
	in.normalize()
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	cat, err := GetCategory(db, id)
	if err != nil {
		return nil, err
	}

	taken, err := categoryNameTaken(db, in.Name, id)
	if err != nil {
		return nil, apperr.FromDB(err, "")
	}
	if taken {
		return nil, apperr.Conflict("Ya existe una categoría con ese nombre")
	}

	cat.Name = in.Name
	cat.Description = in.Description
	if err := db.Save(cat).Error; err != nil {
		return nil, apperr.FromDB(err, "")
	}
	return cat, nil
}

// DeleteCategory falla con conflicto mientras haya productos en la categoría.
func DeleteCategory(db *gorm.DB, id uint) error {
	if _, err := GetCategory(db, id); err != nil {
		return err
	}

	var count int64
	if err := db.Model(&models.Product{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
		return apperr.FromDB(err, "")
	}
	if count > 0 {
		return apperr.Conflict("No se puede eliminar la categoría: tiene productos asociados")
	}

	if err := db.Delete(&models.Category{}, id).Error; err != nil {
		return apperr.FromDB(err, msgCategoryNotFound)
	}
	return nil
}

// -------------------------
// Productos
// -------------------------

// ListProducts lista el catálogo; categoryID filtra cuando no es nil.
func ListProducts(db *gorm.DB, categoryID *uint) ([]models.Product, error) {
	q := db.Preload("Category").Order("name asc")
	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}

	var products []models.Product
	if err := q.Find(&products).Error; err != nil {
		return nil, apperr.FromDB(err, "")
	}
	return products, nil
}

func ListProductsByCategory(db *gorm.DB, categoryID uint) ([]models.Product, error) {
	if _, err := GetCategory(db, categoryID); err != nil {
		return nil, err
	}
	return ListProducts(db, &categoryID)
}

func GetProduct(db *gorm.DB, id uint) (*models.Product, error) {
	var p models.Product
	if err := db.Preload("Category").First(&p, id).Error; err != nil {
		return nil, apperr.FromDB(err, msgProductNotFound)
	}
	return &p, nil
}

func checkCategory(db *gorm.DB, id uint) error {
	var count int64
	if err := db.Model(&models.Category{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return apperr.FromDB(err, "")
	}
	if count == 0 {
		return apperr.Validation("La categoría indicada no existe")
	}
	return nil
}

func CreateProduct(db *gorm.DB, in ProductInput) (*models.Product, error) {
	in.normalize()
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if err := checkCategory(db, in.CategoryID); err != nil {
		return nil, err
	}

	p := models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price.Round(2),
		CategoryID:  in.CategoryID,
		Image:       in.Image,
	}
	if err := db.Create(&p).Error; err != nil {
		return nil, apperr.FromDB(err, "")
	}
	return GetProduct(db, p.ID)
}

// UpdateProduct reemplaza el producto. Los pedidos existentes conservan
// el precio con el que se registraron.
func UpdateProduct(db *gorm.DB, id uint, in ProductInput) (*models.Product, error) {
	in.normalize()
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	p, err := GetProduct(db, id)
	if err != nil {
		return nil, err
	}
	if err := checkCategory(db, in.CategoryID); err != nil {
		return nil, err
	}

	err = db.Model(&models.Product{}).Where("id = ?", p.ID).Updates(map[string]any{
		"name":        in.Name,
		"description": in.Description,
		"price":       in.Price.Round(2),
		"category_id": in.CategoryID,
		"image":       in.Image,
	}).Error
	if err != nil {
		return nil, apperr.FromDB(err, msgProductNotFound)
	}
	return GetProduct(db, id)
}

// DeleteProduct falla con conflicto si algún pedido lo referencia.
func DeleteProduct(db *gorm.DB, id uint) error {
	if _, err := GetProduct(db, id); err != nil {
		return err
	}

	var count int64
	if err := db.Model(&models.OrderItem{}).Where("product_id = ?", id).Count(&count).Error; err != nil {
		return apperr.FromDB(err, "")
	}
	if count > 0 {
		return apperr.Conflict("No se puede eliminar el producto: figura en pedidos registrados")
	}

	if err := db.Delete(&models.Product{}, id).Error; err != nil {
		return apperr.FromDB(err, msgProductNotFound)
	}
	return nil
}
