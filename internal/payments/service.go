package payments

import (
	"fmt"

	"github.com/Nicoczyruk/standburg-project-sub000/internal/apperr"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/models"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/shifts"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/validation"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const msgNotFound = "Pago no encontrado"

type CreateInput struct {
	OrderID uint                 `json:"pedido_id" validate:"required"`
	ShiftID *uint                `json:"turno_id"`
	Method  models.PaymentMethod `json:"metodo" validate:"required,enum"`
	Amount  decimal.Decimal      `json:"monto" validate:"gte=0"`
}

func List(db *gorm.DB, orderID *uint) ([]models.Payment, error) {
	q := db.Order("created_at DESC, id DESC")
	if orderID != nil {
		q = q.Where("order_id = ?", *orderID)
	}

	var list []models.Payment
	if err := q.Find(&list).Error; err != nil {
		return nil, apperr.FromDB(err, "")
	}
	return list, nil
}

func Get(db *gorm.DB, id uint) (*models.Payment, error) {
	var p models.Payment
	if err := db.Preload("Order").First(&p, id).Error; err != nil {
		return nil, apperr.FromDB(err, msgNotFound)
	}
	return &p, nil
}

// Create registra el cobro de un pedido existente y lo marca pagado. El
// monto tiene que coincidir exactamente con el total del pedido.
func Create(db *gorm.DB, in CreateInput) (*models.Payment, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	var paymentID uint
	err := db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, in.OrderID).Error; err != nil {
			return apperr.FromDB(err, "Pedido no encontrado")
		}
		switch order.State {
		case models.OrderPaid:
			return apperr.Conflict("El pedido ya está pagado")
		case models.OrderCanceled:
			return apperr.Conflict("El pedido está cancelado")
		}
		if !in.Amount.Equal(order.Total) {
			return apperr.Validation(fmt.Sprintf("El monto %s no coincide con el total del pedido %s",
				in.Amount.StringFixed(2), order.Total.StringFixed(2)))
		}

		shiftID := in.ShiftID
		if shiftID == nil {
			id, err := shifts.OpenID(tx)
			if err != nil {
				return err
			}
			shiftID = id
		} else if _, err := shifts.Get(tx, *shiftID); err != nil {
			return err
		}

		payment := models.Payment{
			OrderID: order.ID,
			ShiftID: shiftID,
			Method:  in.Method,
			Amount:  order.Total,
			Status:  models.PaymentCompleted,
		}
		if err := tx.Omit(clause.Associations).Create(&payment).Error; err != nil {
			return apperr.FromDB(err, "")
		}

		res := tx.Model(&models.Order{}).
			Where("id = ? AND state NOT IN ?", order.ID, []models.OrderState{models.OrderPaid, models.OrderCanceled}).
			Update("state", models.OrderPaid)
		if res.Error != nil {
			return apperr.FromDB(res.Error, "")
		}
		if res.RowsAffected == 0 {
			return apperr.Conflict("El pedido cambió de estado, reintentá")
		}

		paymentID = payment.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return Get(db, paymentID)
}

// Delete anula el pago. Si el pedido estaba pagado vuelve a entregado;
// cualquier otro estado queda como está.
func Delete(db *gorm.DB, id uint) (*models.Payment, error) {
	var before *models.Payment
	err := db.Transaction(func(tx *gorm.DB) error {
		p, err := Get(tx, id)
		if err != nil {
			return err
		}
		before = p

		err = tx.Model(&models.Order{}).
			Where("id = ? AND state = ?", p.OrderID, models.OrderPaid).
			Update("state", models.OrderDelivered).Error
		if err != nil {
			return apperr.FromDB(err, "")
		}

		if err := tx.Delete(&models.Payment{}, id).Error; err != nil {
			return apperr.FromDB(err, msgNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return before, nil
}
