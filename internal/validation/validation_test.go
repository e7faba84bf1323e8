package validation

import (
	"testing"

	"github.com/Nicoczyruk/standburg-project-sub000/internal/apperr"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type line struct {
	ProductID uint `json:"producto_id" validate:"required"`
	Quantity  int  `json:"cantidad" validate:"gt=0"`
}

type sample struct {
	Name   string               `json:"nombre" validate:"required"`
	Method models.PaymentMethod `json:"metodo" validate:"required,enum"`
	Amount decimal.Decimal      `json:"monto" validate:"gt=0"`
	Items  []line               `json:"items" validate:"min=1,dive"`
}

func valid() sample {
	return sample{
		Name:   "Ana",
		Method: models.PaymentCash,
		Amount: decimal.RequireFromString("10.50"),
		Items:  []line{{ProductID: 1, Quantity: 2}},
	}
}

func TestStruct(t *testing.T) {
	require.NoError(t, Struct(valid()))

	tests := []struct {
		name   string
		mutate func(s *sample)
		want   string
	}{
		{"missing name", func(s *sample) { s.Name = "" }, "El campo nombre es obligatorio"},
		{"unknown method", func(s *sample) { s.Method = "cheque" }, "El valor de metodo no es válido: cheque"},
		{"zero amount", func(s *sample) { s.Amount = decimal.Zero }, "El campo monto debe ser mayor a 0"},
		{"negative amount", func(s *sample) { s.Amount = decimal.RequireFromString("-1") }, "El campo monto debe ser mayor a 0"},
		{"empty items", func(s *sample) { s.Items = nil }, "El campo items debe tener al menos 1 elemento(s)"},
		{"bad quantity", func(s *sample) { s.Items[0].Quantity = 0 }, "El campo items[0].cantidad debe ser mayor a 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(&s)

			err := Struct(s)
			require.Error(t, err)
			assert.True(t, apperr.Is(err, apperr.KindValidation))
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestStruct_RequiredPointerAcceptsZero(t *testing.T) {
	type closing struct {
		Real *decimal.Decimal `json:"monto_real" validate:"required,gte=0"`
	}

	zero := decimal.Zero
	assert.NoError(t, Struct(closing{Real: &zero}))

	err := Struct(closing{})
	require.Error(t, err)
	assert.Equal(t, "El campo monto_real es obligatorio", err.Error())

	neg := decimal.RequireFromString("-0.01")
	assert.Error(t, Struct(closing{Real: &neg}))
}
