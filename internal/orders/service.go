package orders

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Nicoczyruk/standburg-project-sub000/internal/apperr"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/models"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/shifts"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/validation"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const msgNotFound = "Pedido no encontrado"

type ItemInput struct {
	ProductID uint `json:"producto_id" validate:"required"`
	Quantity  int  `json:"cantidad" validate:"gt=0"`
}

type CreateInput struct {
	TableID         *uint                `json:"mesa_id"`
	CustomerName    string               `json:"cliente_nombre" validate:"required,max=100"`
	CustomerPhone   *string              `json:"cliente_telefono" validate:"omitempty,max=50"`
	CustomerAddress *string              `json:"cliente_direccion" validate:"omitempty,max=255"`
	Notes           string               `json:"notas" validate:"max=500"`
	Type            models.OrderType     `json:"tipo" validate:"required,enum"`
	Items           []ItemInput          `json:"items" validate:"min=1,dive"`
	PaymentMethod   models.PaymentMethod `json:"metodo_pago" validate:"required,enum"`
}

type Filter struct {
	State   models.OrderState
	Type    models.OrderType
	TableID *uint
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func (in *CreateInput) normalize() {
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.CustomerPhone = trimPtr(in.CustomerPhone)
	in.CustomerAddress = trimPtr(in.CustomerAddress)
	in.Notes = strings.TrimSpace(in.Notes)
}

// validate aplica las reglas que dependen del tipo de pedido.
func (in *CreateInput) validate() error {
	if err := validation.Struct(in); err != nil {
		return err
	}
	switch in.Type {
	case models.OrderTypeTable:
		if in.TableID == nil || *in.TableID == 0 {
			return apperr.Validation("Los pedidos de mesa requieren mesa_id")
		}
	case models.OrderTypeDelivery:
		if in.CustomerAddress == nil {
			return apperr.Validation("Los pedidos delivery requieren cliente_direccion")
		}
	}
	return nil
}

// Create registra el pedido, sus ítems y el pago por el total en una sola
// transacción. Los precios se toman del producto dentro de la transacción y
// quedan copiados en cada ítem.
func Create(db *gorm.DB, in CreateInput, initial models.OrderState) (*models.Order, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}

	var orderID uint
	err := db.Transaction(func(tx *gorm.DB) error {
		var tableID *uint
		if in.Type == models.OrderTypeTable {
			var count int64
			if err := tx.Model(&models.Table{}).Where("id = ?", *in.TableID).Count(&count).Error; err != nil {
				return apperr.FromDB(err, "")
			}
			if count == 0 {
				return apperr.Validation(fmt.Sprintf("La mesa %d no existe", *in.TableID))
			}
			tableID = in.TableID
		}

		prices := make(map[uint]decimal.Decimal, len(in.Items))
		for _, it := range in.Items {
			if _, ok := prices[it.ProductID]; ok {
				continue
			}
			var p models.Product
			err := tx.Select("id", "price").First(&p, it.ProductID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.Validation(fmt.Sprintf("El producto %d no existe", it.ProductID))
			}
			if err != nil {
				return apperr.FromDB(err, "")
			}
			prices[it.ProductID] = p.Price
		}

		order := models.Order{
			TableID:         tableID,
			CustomerName:    in.CustomerName,
			CustomerPhone:   in.CustomerPhone,
			CustomerAddress: in.CustomerAddress,
			Notes:           in.Notes,
			Type:            in.Type,
			State:           initial,
			Total:           decimal.Zero,
		}
		if err := tx.Omit(clause.Associations).Create(&order).Error; err != nil {
			return apperr.FromDB(err, "")
		}

		total := decimal.Zero
		for _, it := range in.Items {
			price := prices[it.ProductID]
			subtotal := price.Mul(decimal.NewFromInt(int64(it.Quantity))).Round(2)
			item := models.OrderItem{
				OrderID:   order.ID,
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				UnitPrice: price,
				Subtotal:  subtotal,
			}
			if err := tx.Omit(clause.Associations).Create(&item).Error; err != nil {
				return apperr.FromDB(err, "")
			}
			total = total.Add(subtotal)
		}

		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).Update("total", total).Error; err != nil {
			return apperr.FromDB(err, "")
		}

		shiftID, err := shifts.OpenID(tx)
		if err != nil {
			return err
		}
		payment := models.Payment{
			OrderID: order.ID,
			ShiftID: shiftID,
			Method:  in.PaymentMethod,
			Amount:  total,
			Status:  models.PaymentCompleted,
		}
		if err := tx.Omit(clause.Associations).Create(&payment).Error; err != nil {
			return apperr.FromDB(err, "")
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return Get(db, orderID)
}

func Get(db *gorm.DB, id uint) (*models.Order, error) {
	var o models.Order
	err := db.
		Preload("Table").
		Preload("Items", func(q *gorm.DB) *gorm.DB { return q.Order("id") }).
		Preload("Items.Product").
		Preload("Payments", func(q *gorm.DB) *gorm.DB { return q.Order("id") }).
		First(&o, id).Error
	if err != nil {
		return nil, apperr.FromDB(err, msgNotFound)
	}
	return &o, nil
}

func List(db *gorm.DB, f Filter) ([]models.Order, error) {
	q := db.
		Preload("Table").
		Preload("Items", func(q *gorm.DB) *gorm.DB { return q.Order("id") }).
		Preload("Items.Product").
		Order("created_at DESC, id DESC")
	if f.State != "" {
		q = q.Where("state = ?", f.State)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.TableID != nil {
		q = q.Where("table_id = ?", *f.TableID)
	}

	var list []models.Order
	if err := q.Find(&list).Error; err != nil {
		return nil, apperr.FromDB(err, "")
	}
	return list, nil
}

// UpdateState aplica el estado pedido. Con strict, el movimiento debe
// figurar en Transitions; sin strict se aplica cualquier estado válido.
func UpdateState(db *gorm.DB, id uint, target models.OrderState, strict bool) (*models.Order, *models.Order, error) {
	if !target.Valid() {
		return nil, nil, apperr.Validation(fmt.Sprintf("Estado inválido: %s", target))
	}

	before, err := Get(db, id)
	if err != nil {
		return nil, nil, err
	}
	if strict && !CanTransition(before.State, target) {
		return nil, nil, apperr.Conflict(fmt.Sprintf("No se puede pasar de %s a %s", before.State, target))
	}

	res := db.Model(&models.Order{}).Where("id = ?", id).Update("state", target)
	if res.Error != nil {
		return nil, nil, apperr.FromDB(res.Error, msgNotFound)
	}
	if res.RowsAffected == 0 {
		return nil, nil, apperr.NotFound(msgNotFound)
	}

	after, err := Get(db, id)
	if err != nil {
		return nil, nil, err
	}
	return before, after, nil
}

// Delete borra pagos, ítems y pedido en una transacción. Devuelve el pedido
// tal como estaba.
func Delete(db *gorm.DB, id uint) (*models.Order, error) {
	var before *models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		o, err := Get(tx, id)
		if err != nil {
			return err
		}
		before = o

		if err := tx.Where("order_id = ?", id).Delete(&models.Payment{}).Error; err != nil {
			return apperr.FromDB(err, "")
		}
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return apperr.FromDB(err, "")
		}
		if err := tx.Delete(&models.Order{}, id).Error; err != nil {
			return apperr.FromDB(err, msgNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return before, nil
}
