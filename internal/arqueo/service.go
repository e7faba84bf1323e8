package arqueo

import (
	"errors"
	"strings"
	"time"

	"github.com/Nicoczyruk/standburg-project-sub000/internal/apperr"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/models"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/validation"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	msgNotFound = "Arqueo no encontrado"
	msgNoneOpen = "No hay un arqueo abierto"
)

type OpenInput struct {
	OpeningAmount *decimal.Decimal `json:"monto_apertura" validate:"required,gte=0"`
}

type CloseInput struct {
	RealCash     *decimal.Decimal `json:"efectivo_real" validate:"required,gte=0"`
	RealCard     *decimal.Decimal `json:"tarjeta_real" validate:"required,gte=0"`
	RealTransfer *decimal.Decimal `json:"transferencia_real" validate:"required,gte=0"`
	Notes        string           `json:"notas" validate:"max=500"`
}

func alreadyOpen() error {
	return apperr.Conflict("Ya hay un arqueo abierto")
}

// OpenID devuelve el id del arqueo abierto, o nil si no hay ninguno.
func OpenID(db *gorm.DB) (*uint, error) {
	var ids []uint
	if err := db.Model(&models.Arqueo{}).Where("closed_at IS NULL").Limit(1).Pluck("id", &ids).Error; err != nil {
		return nil, apperr.FromDB(err, "")
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return &ids[0], nil
}

func Get(db *gorm.DB, id uint) (*models.Arqueo, error) {
	var a models.Arqueo
	if err := db.First(&a, id).Error; err != nil {
		return nil, apperr.FromDB(err, msgNotFound)
	}
	return &a, nil
}

// Active devuelve el arqueo abierto con sus cifras recalculadas.
func Active(db *gorm.DB) (*models.Arqueo, Summary, error) {
	var a models.Arqueo
	if err := db.Where("closed_at IS NULL").First(&a).Error; err != nil {
		return nil, Summary{}, apperr.FromDB(err, msgNoneOpen)
	}
	s, err := Compute(db, &a)
	if err != nil {
		return nil, Summary{}, err
	}
	return &a, s, nil
}

// History lista los arqueos cerrados, el más reciente primero.
func History(db *gorm.DB) ([]models.Arqueo, error) {
	var list []models.Arqueo
	err := db.Where("closed_at IS NOT NULL").Order("closed_at DESC, id DESC").Find(&list).Error
	if err != nil {
		return nil, apperr.FromDB(err, "")
	}
	return list, nil
}

func Open(db *gorm.DB, userID uint, in OpenInput) (*models.Arqueo, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	open := true
	a := models.Arqueo{
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
		return tx.Create(&a).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, alreadyOpen()
	}
	if err != nil {
		return nil, apperr.FromDB(err, "")
	}
	return &a, nil
}

// Close congela el resumen del arqueo abierto junto con lo contado por
// método. Diferencia = real - calculado; para tarjeta y transferencia lo
// calculado son sus ventas.
func Close(db *gorm.DB, userID uint, in CloseInput) (*models.Arqueo, error) {
	in.Notes = strings.TrimSpace(in.Notes)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	var id uint
	err := db.Transaction(func(tx *gorm.DB) error {
		a, s, err := Active(tx)
		if err != nil {
			return err
		}
		id = a.ID

		realCash := in.RealCash.Round(2)
		realCard := in.RealCard.Round(2)
		realTransfer := in.RealTransfer.Round(2)

		res := tx.Model(&models.Arqueo{}).
			Where("id = ? AND closed_at IS NULL", a.ID).
			Updates(map[string]any{
				"closed_by":         userID,
				"closed_at":         time.Now(),
				"notes":             in.Notes,
				"cash_sales":        s.CashSales,
				"card_sales":        s.CardSales,
				"transfer_sales":    s.TransferSales,
				"expenses":          s.Expenses,
				"manual_income":     s.ManualIncome,
				"manual_expense":    s.ManualExpense,
				"expected_cash":     s.ExpectedCash,
				"real_cash":         realCash,
				"real_card":         realCard,
				"real_transfer":     realTransfer,
				"cash_variance":     realCash.Sub(s.ExpectedCash),
				"card_variance":     realCard.Sub(s.CardSales),
				"transfer_variance": realTransfer.Sub(s.TransferSales),
				"open_slot":         nil,
			})
		if res.Error != nil {
			return apperr.FromDB(res.Error, "")
		}
		if res.RowsAffected == 0 {
			return apperr.Conflict("El arqueo ya fue cerrado")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return Get(db, id)
}
