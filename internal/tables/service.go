package tables

import (
	"github.com/Nicoczyruk/standburg-project-sub000/internal/apperr"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/models"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/validation"

	"gorm.io/gorm"
)

const msgNotFound = "Mesa no encontrada"

type TableInput struct {
	Number   int               `json:"numero" validate:"gt=0"`
	Capacity int               `json:"capacidad" validate:"gt=0"`
	State    models.TableState `json:"estado" validate:"omitempty,enum"`
}

func List(db *gorm.DB, state models.TableState) ([]models.Table, error) {
	q := db.Order("number asc")
	if state != "" {
		q = q.Where("state = ?", state)
	}

	var tables []models.Table
	if err := q.Find(&tables).Error; err != nil {
		return nil, apperr.FromDB(err, "")
	}
	return tables, nil
}

func Get(db *gorm.DB, id uint) (*models.Table, error) {
	var t models.Table
	if err := db.First(&t, id).Error; err != nil {
		return nil, apperr.FromDB(err, msgNotFound)
	}
	return &t, nil
}

func numberTaken(db *gorm.DB, number int, exceptID uint) error {
	var count int64
	if err := db.Model(&models.Table{}).Where("number = ? AND id <> ?", number, exceptID).Count(&count).Error; err != nil {
		return apperr.FromDB(err, "")
	}
	if count > 0 {
		return apperr.Conflict("Ya existe una mesa con ese número")
	}
	return nil
}

func Create(db *gorm.DB, in TableInput) (*models.Table, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if err := numberTaken(db, in.Number, 0); err != nil {
		return nil, err
	}

	t := models.Table{Number: in.Number, Capacity: in.Capacity, State: in.State}
	if t.State == "" {
		t.State = models.TableFree
	}
	if err := db.Create(&t).Error; err != nil {
		return nil, apperr.FromDB(err, "")
	}
	return &t, nil
}

// Update reemplaza número, capacidad y estado. Sin estado conserva el actual.
func Update(db *gorm.DB, id uint, in TableInput) (*models.Table, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	t, err := Get(db, id)
	if err != nil {
		return nil, err
	}
	if err := numberTaken(db, in.Number, id); err != nil {
		return nil, err
	}

	t.Number = in.Number
	t.Capacity = in.Capacity
	if in.State != "" {
		t.State = in.State
	}
	if err := db.Save(t).Error; err != nil {
		return nil, apperr.FromDB(err, "")
	}
	return t, nil
}

// Delete desvincula los pedidos de la mesa y la elimina, en una transacción.
func Delete(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := Get(tx, id); err != nil {
			return err
		}
		if err := tx.Model(&models.Order{}).Where("table_id = ?", id).Update("table_id", nil).Error; err != nil {
			return apperr.FromDB(err, "")
		}
		if err := tx.Delete(&models.Table{}, id).Error; err != nil {
			return apperr.FromDB(err, msgNotFound)
		}
		return nil
	})
}
