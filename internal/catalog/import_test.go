package catalog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Nicoczyruk/standburg-project-sub000/internal/apperr"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/models"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func xlsx(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, v := range row {
			ref, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, ref, v))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestParsePrice(t *testing.T) {
	for in, want := range map[string]string{
		"1234.50":  "1234.5",
		"1.234,50": "1234.5",
		"$ 99":     "99",
	} {
		got, err := parsePrice(in)
		require.NoError(t, err, in)
		assert.True(t, decimal.RequireFromString(want).Equal(got), in)
	}
	_, err := parsePrice("gratis")
	assert.Error(t, err)
}

func TestImportProducts(t *testing.T) {
	db := testutil.NewDB(t)
	bebidas, err := CreateCategory(db, CategoryInput{Name: "Bebidas"})
	require.NoError(t, err)
	price := decimal.RequireFromString("2.00")
	_, err = CreateProduct(db, ProductInput{Name: "Agua", Price: &price, CategoryID: bebidas.ID})
	require.NoError(t, err)

	buf := xlsx(t, [][]any{
		{"Nombre", "Precio", "Categoria", "Descripcion"},
		{"agua", "2,50", "bebidas", "500 ml"},
		{"Milanesa", 5, "Cocina", ""},
		{"Flan", "gratis", "Postres", ""},
		{"Café", "1.80", "", ""},
	})

	res, err := ImportProducts(db, buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"Milanesa"}, res.Created)
	assert.Equal(t, []string{"Agua"}, res.Updated)
	require.Len(t, res.Errors, 2)
	assert.Equal(t, 4, res.Errors[0].Row)
	assert.Equal(t, 5, res.Errors[1].Row)

	var agua models.Product
	require.NoError(t, db.Where("name = ?", "Agua").First(&agua).Error)
	assert.True(t, decimal.RequireFromString("2.50").Equal(agua.Price))
	assert.Equal(t, "500 ml", agua.Description)

	var cocina models.Category
	require.NoError(t, db.Where("name = ?", "Cocina").First(&cocina).Error)
}

func TestImportProducts_NotExcel(t *testing.T) {
	db := testutil.NewDB(t)
	_, err := ImportProducts(db, strings.NewReader("nombre,precio"))
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}
