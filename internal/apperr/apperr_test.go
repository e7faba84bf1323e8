package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		err  *Error
		want int
	}{
		{Validation("x"), 400},
		{Unauthorized("x"), 401},
		{NotFound("x"), 404},
		{Conflict("x"), 409},
		{Internal("x", nil), 500},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Status(), string(tt.err.Kind))
	}
}

func TestFromDB(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, FromDB(nil, "x"))
	})

	t.Run("record not found becomes 404 with the given message", func(t *testing.T) {
		err := FromDB(fmt.Errorf("wrap: %w", gorm.ErrRecordNotFound), "Mesa no encontrada")
		var appErr *Error
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, KindNotFound, appErr.Kind)
		assert.Equal(t, "Mesa no encontrada", appErr.Message)
	})

	t.Run("translated constraint errors become conflicts", func(t *testing.T) {
		assert.True(t, Is(FromDB(gorm.ErrDuplicatedKey, ""), KindConflict))
		assert.True(t, Is(FromDB(gorm.ErrForeignKeyViolated, ""), KindConflict))
	})

	t.Run("untranslated driver messages are inspected", func(t *testing.T) {
		fk := errors.New(`ERROR: update or delete on table "productos" violates foreign key constraint`)
		uq := errors.New("UNIQUE constraint failed: tables.number")
		assert.True(t, Is(FromDB(fk, ""), KindConflict))
		assert.True(t, Is(FromDB(uq, ""), KindConflict))
	})

	t.Run("classified errors pass through", func(t *testing.T) {
		orig := Validation("monto inválido")
		assert.Same(t, orig, FromDB(fmt.Errorf("ctx: %w", orig), "x"))
	})

	t.Run("anything else is internal", func(t *testing.T) {
		err := FromDB(errors.New("connection reset"), "x")
		assert.True(t, Is(err, KindInternal))
		assert.Contains(t, err.Error(), "connection reset")
	})
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, 409, StatusOf(fmt.Errorf("x: %w", Conflict("ya abierto"))))
	assert.Equal(t, 405, StatusOf(fiber.ErrMethodNotAllowed))
	assert.Equal(t, 500, StatusOf(errors.New("boom")))
}
