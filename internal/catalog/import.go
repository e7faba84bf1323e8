package catalog

import (
	"io"
	"strings"

	"github.com/Nicoczyruk/standburg-project-sub000/internal/apperr"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/cache"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/database"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ImportRowError struct {
	Row     int    `json:"fila"`
	Message string `json:"mensaje"`
}

type ImportResult struct {
	Created []string         `json:"creados"`
	Updated []string         `json:"actualizados"`
	Errors  []ImportRowError `json:"errores"`
}

var accents = strings.NewReplacer("á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u")

// normalizeName compara nombres sin mayúsculas, acentos ni espacios repetidos.
func normalizeName(s string) string {
	s = accents.Replace(strings.ToLower(strings.TrimSpace(s)))
	return strings.Join(strings.Fields(s), " ")
}

// parsePrice acepta "1234.50", "1.234,50" y "$ 1234".
func parsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return decimal.NewFromString(strings.TrimSpace(s))
}

func isHeader(row []string) bool {
	if len(row) == 0 {
		return false
	}
	first := normalizeName(row[0])
	return first == "nombre" || first == "producto"
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

// ImportProducts lee la primera hoja de un .xlsx con columnas
// nombre | precio | categoria | descripcion. Las categorías faltantes se
// crean; un producto existente con el mismo nombre actualiza precio y
// descripción. Las filas inválidas se informan y no frenan el resto.
func ImportProducts(db *gorm.DB, r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperr.Validation("No se pudo leer el archivo Excel")
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperr.Validation("El archivo Excel no tiene hojas")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperr.Validation("No se pudo leer la hoja " + sheets[0])
	}
	if len(rows) == 0 {
		return nil, apperr.Validation("El archivo Excel está vacío")
	}

	res := &ImportResult{Created: []string{}, Updated: []string{}, Errors: []ImportRowError{}}

	err = db.Transaction(func(tx *gorm.DB) error {
		var categories []models.Category
		if err := tx.Find(&categories).Error; err != nil {
			return apperr.FromDB(err, "")
		}
		catByName := make(map[string]uint, len(categories))
		for _, c := range categories {
			catByName[normalizeName(c.Name)] = c.ID
		}

		var products []models.Product
		if err := tx.Find(&products).Error; err != nil {
			return apperr.FromDB(err, "")
		}
		prodByName := make(map[string]*models.Product, len(products))
		for i := range products {
			prodByName[normalizeName(products[i].Name)] = &products[i]
		}

		start := 0
		if isHeader(rows[0]) {
			start = 1
		}

		for i := start; i < len(rows); i++ {
			row := rows[i]
			line := i + 1
			name := cell(row, 0)
			if name == "" {
				continue
			}

			price, err := parsePrice(cell(row, 1))
			if err != nil || price.IsNegative() {
				res.Errors = append(res.Errors, ImportRowError{Row: line, Message: "precio inválido"})
				continue
			}
			catName := cell(row, 2)
			if catName == "" {
				res.Errors = append(res.Errors, ImportRowError{Row: line, Message: "falta la categoría"})
				continue
			}
			if len(name) > 100 || len(catName) > 100 {
				res.Errors = append(res.Errors, ImportRowError{Row: line, Message: "nombre demasiado largo"})
				continue
			}

			catID, ok := catByName[normalizeName(catName)]
			if !ok {
				cat := models.Category{Name: catName}
				if err := tx.Create(&cat).Error; err != nil {
					return apperr.FromDB(err, "")
				}
				catID = cat.ID
				catByName[normalizeName(catName)] = catID
			}

			price = price.Round(2)
			if p, ok := prodByName[normalizeName(name)]; ok {
				updates := map[string]any{"price": price, "category_id": catID}
				if desc := cell(row, 3); desc != "" {
					updates["description"] = desc
				}
				if err := tx.Model(p).Updates(updates).Error; err != nil {
					return apperr.FromDB(err, "")
				}
				res.Updated = append(res.Updated, p.Name)
				continue
			}

			p := models.Product{Name: name, Description: cell(row, 3), Price: price, CategoryID: catID}
			if err := tx.Omit("Category").Create(&p).Error; err != nil {
				return apperr.FromDB(err, "")
			}
			prodByName[normalizeName(name)] = &p
			res.Created = append(res.Created, p.Name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// -------------------------
// POST /api/productos/importar (multipart, campo "archivo")
// -------------------------
func ImportProductsHandler(store *cache.Cache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("archivo")
		if err != nil {
			return apperr.Validation("Falta el archivo (campo archivo)")
		}
		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			return apperr.Validation("Solo se aceptan archivos .xlsx")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return apperr.Internal("No se pudo abrir el archivo", err)
		}
		defer file.Close()

		res, err := ImportProducts(database.DB, file)
		if err != nil {
			return err
		}

		zap.L().Info("importación de productos",
			zap.String("archivo", fileHeader.Filename),
			zap.Int("creados", len(res.Created)),
			zap.Int("actualizados", len(res.Updated)),
			zap.Int("errores", len(res.Errors)),
		)
		if len(res.Created)+len(res.Updated) > 0 {
			store.Invalidate(c.Context(), cachePrefix)
		}
		return c.JSON(res)
	}
}
