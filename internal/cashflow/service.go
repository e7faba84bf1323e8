package cashflow

import (
	"strings"
	"time"

	"github.com/Nicoczyruk/standburg-project-sub000/internal/apperr"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/arqueo"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/models"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/validation"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const msgNotFound = "Movimiento de caja no encontrado"

type CreateInput struct {
	Type          models.MovementType `json:"tipo" validate:"required,enum"`
	Description   string              `json:"descripcion" validate:"required,max=255"`
	Amount        decimal.Decimal     `json:"monto" validate:"gt=0"`
	PaymentMethod string              `json:"metodo_pago" validate:"max=50"`
}

type Filter struct {
	Type     models.MovementType
	ArqueoID *uint
	From     *time.Time
	To       *time.Time // exclusivo
}

// Create registra el movimiento y lo asocia al arqueo abierto, si hay uno.
func Create(db *gorm.DB, userID uint, in CreateInput) (*models.CashMovement, error) {
	in.Description = strings.TrimSpace(in.Description)
	in.PaymentMethod = strings.TrimSpace(in.PaymentMethod)
	// se valida el monto ya redondeado a centavos: 0.004 no es un monto positivo
	in.Amount = in.Amount.Round(2)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	arqueoID, err := arqueo.OpenID(db)
	if err != nil {
		return nil, err
	}

	mov := models.CashMovement{
		Type:          in.Type,
		Description:   in.Description,
		Amount:        in.Amount,
		PaymentMethod: in.PaymentMethod,
		ArqueoID:      arqueoID,
		CreatedBy:     userID,
	}
	if err := db.Create(&mov).Error; err != nil {
		return nil, apperr.FromDB(err, "")
	}
	return &mov, nil
}

func Get(db *gorm.DB, id uint) (*models.CashMovement, error) {
	var mov models.CashMovement
	if err := db.First(&mov, id).Error; err != nil {
		return nil, apperr.FromDB(err, msgNotFound)
	}
	return &mov, nil
}

func List(db *gorm.DB, f Filter) ([]models.CashMovement, error) {
	q := db.Order("created_at DESC, id DESC")
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.ArqueoID != nil {
		q = q.Where("arqueo_id = ?", *f.ArqueoID)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", *f.To)
	}

	var list []models.CashMovement
	if err := q.Find(&list).Error; err != nil {
		return nil, apperr.FromDB(err, "")
	}
	return list, nil
}
