package shifts

import (
	"errors"
	"time"

	"github.com/Nicoczyruk/standburg-project-sub000/internal/apperr"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/database"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/models"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/validation"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const msgNotFound = "Turno no encontrado"

func alreadyOpen() error {
	return apperr.Conflict("Ya hay un turno abierto")
}

type OpenInput struct {
	OpeningAmount *decimal.Decimal `json:"monto_apertura" validate:"required,gte=0"`
}

type CloseInput struct {
	ActualAmount *decimal.Decimal `json:"monto_real" validate:"required,gte=0"`
}

// OpenID devuelve el id del turno abierto, o nil si no hay ninguno.
func OpenID(db *gorm.DB) (*uint, error) {
	var ids []uint
	err := db.Model(&models.Shift{}).
		Where("closed_at IS NULL").
		Limit(1).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, apperr.FromDB(err, "")
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return &ids[0], nil
}

func List(db *gorm.DB) ([]models.Shift, error) {
	var shifts []models.Shift
	if err := db.Order("opened_at DESC, id DESC").Find(&shifts).Error; err != nil {
		return nil, apperr.FromDB(err, "")
	}
	return shifts, nil
}

func Get(db *gorm.DB, id uint) (*models.Shift, error) {
	var s models.Shift
	if err := db.First(&s, id).Error; err != nil {
		return nil, apperr.FromDB(err, msgNotFound)
	}
	return &s, nil
}

func Active(db *gorm.DB) (*models.Shift, error) {
	var s models.Shift
	if err := db.Where("closed_at IS NULL").First(&s).Error; err != nil {
		return nil, apperr.FromDB(err, "No hay un turno abierto")
	}
	return &s, nil
}

// Open abre un turno. El índice único sobre open_slot rechaza un segundo
// turno abierto aunque dos aperturas compitan.
func Open(db *gorm.DB, userID uint, in OpenInput) (*models.Shift, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	open := true
	shift := models.Shift{
		OpenedBy:      userID,
		OpenedAt:      time.Now(),
		OpeningAmount: in.OpeningAmount.Round(2),
		OpenSlot:      &open,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		current, err := OpenID(tx)
		if err != nil {
			return err
		}
		if current != nil {
			return alreadyOpen()
		}
		return tx.Create(&shift).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, alreadyOpen()
	}
	if err != nil {
		return nil, apperr.FromDB(err, "")
	}
	return &shift, nil
}

// PaymentsTotal suma los pagos atribuidos al turno.
func PaymentsTotal(db *gorm.DB, shiftID uint) (decimal.Decimal, error) {
	total, err := database.SumAmount(db.Model(&models.Payment{}).Where("shift_id = ?", shiftID))
	if err != nil {
		return decimal.Zero, apperr.FromDB(err, "")
	}
	return total, nil
}

// Close cierra el turno id, que debe ser el abierto. estimado = apertura +
// pagos del turno; diferencia = contado - estimado.
func Close(db *gorm.DB, id, userID uint, in CloseInput) (*models.Shift, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		current, err := Active(tx)
		if err != nil {
			return err
		}
		if current.ID != id {
			return apperr.Conflict("El turno indicado no es el turno abierto")
		}

		paid, err := PaymentsTotal(tx, id)
		if err != nil {
			return err
		}
		estimated := current.OpeningAmount.Add(paid)
		actual := in.ActualAmount.Round(2)
		variance := actual.Sub(estimated)
		now := time.Now()

		res := tx.Model(&models.Shift{}).
			Where("id = ? AND closed_at IS NULL", id).
			Updates(map[string]any{
				"closed_by":        userID,
				"closed_at":        now,
				"estimated_amount": estimated,
				"actual_amount":    actual,
				"variance":         variance,
				"open_slot":        nil,
			})
		if res.Error != nil {
			return apperr.FromDB(res.Error, "")
		}
		if res.RowsAffected == 0 {
			return apperr.Conflict("El turno ya fue cerrado")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return Get(db, id)
}
