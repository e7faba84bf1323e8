package payments

import (
	"testing"

	"github.com/Nicoczyruk/standburg-project-sub000/internal/apperr"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/models"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func amount(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newOrder(t *testing.T, db *gorm.DB, state models.OrderState, total string) models.Order {
	t.Helper()
	o := models.Order{CustomerName: "Ana", Type: models.OrderTypeCounter, State: state, Total: amount(total)}
	require.NoError(t, db.Create(&o).Error)
	return o
}

func reload(t *testing.T, db *gorm.DB, id uint) models.Order {
	t.Helper()
	var o models.Order
	require.NoError(t, db.First(&o, id).Error)
	return o
}

func TestCreate_StrictAmount(t *testing.T) {
	db := testutil.NewDB(t)
	o := newOrder(t, db, models.OrderDelivered, "13.00")

	_, err := Create(db, CreateInput{OrderID: o.ID, Method: models.PaymentCash, Amount: amount("12.99")})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Equal(t, models.OrderDelivered, reload(t, db, o.ID).State)

	p, err := Create(db, CreateInput{OrderID: o.ID, Method: models.PaymentCash, Amount: amount("13.00")})
	require.NoError(t, err)
	assert.True(t, amount("13").Equal(p.Amount))
	assert.Equal(t, models.PaymentCompleted, p.Status)
	assert.Equal(t, models.OrderPaid, reload(t, db, o.ID).State)
}

func TestCreate_Preconditions(t *testing.T) {
	db := testutil.NewDB(t)
	paid := newOrder(t, db, models.OrderPaid, "10")
	canceled := newOrder(t, db, models.OrderCanceled, "10")
	ready := newOrder(t, db, models.OrderReady, "10")
	missingShift := uint(77)

	tests := []struct {
		name string
		in   CreateInput
		kind apperr.Kind
	}{
		{"unknown order", CreateInput{OrderID: 999, Method: models.PaymentCash, Amount: amount("10")}, apperr.KindNotFound},
		{"already paid", CreateInput{OrderID: paid.ID, Method: models.PaymentCash, Amount: amount("10")}, apperr.KindConflict},
		{"canceled", CreateInput{OrderID: canceled.ID, Method: models.PaymentCash, Amount: amount("10")}, apperr.KindConflict},
		{"bad method", CreateInput{OrderID: ready.ID, Method: "cheque", Amount: amount("10")}, apperr.KindValidation},
		{"zero amount", CreateInput{OrderID: ready.ID, Method: models.PaymentCash}, apperr.KindValidation},
		{"unknown shift", CreateInput{OrderID: ready.ID, ShiftID: &missingShift, Method: models.PaymentCash, Amount: amount("10")}, apperr.KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Create(db, tt.in)
			assert.True(t, apperr.Is(err, tt.kind), "got %v", err)
		})
	}

	var n int64
	require.NoError(t, db.Model(&models.Payment{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestCreate_ShiftAttribution(t *testing.T) {
	db := testutil.NewDB(t)
	open := true
	shift := models.Shift{OpenedBy: 1, OpeningAmount: decimal.Zero, OpenSlot: &open}
	require.NoError(t, db.Create(&shift).Error)

	o := newOrder(t, db, models.OrderDelivered, "4.50")
	p, err := Create(db, CreateInput{OrderID: o.ID, Method: models.PaymentDebit, Amount: amount("4.5")})
	require.NoError(t, err)
	require.NotNil(t, p.ShiftID)
	assert.Equal(t, shift.ID, *p.ShiftID)
}

func TestDelete_RevertsOnlyPaidOrders(t *testing.T) {
	db := testutil.NewDB(t)

	o := newOrder(t, db, models.OrderDelivered, "8")
	p, err := Create(db, CreateInput{OrderID: o.ID, Method: models.PaymentTransfer, Amount: amount("8")})
	require.NoError(t, err)
	require.Equal(t, models.OrderPaid, reload(t, db, o.ID).State)

	_, err = Delete(db, p.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderDelivered, reload(t, db, o.ID).State)

	// un pago sobre un pedido que ya no está pagado no toca el estado
	other := newOrder(t, db, models.OrderInPreparation, "8")
	raw := models.Payment{OrderID: other.ID, Method: models.PaymentCash, Amount: amount("8"), Status: models.PaymentCompleted}
	require.NoError(t, db.Omit("Order").Create(&raw).Error)

	_, err = Delete(db, raw.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderInPreparation, reload(t, db, other.ID).State)

	_, err = Delete(db, raw.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestList_ByOrder(t *testing.T) {
	db := testutil.NewDB(t)
	a := newOrder(t, db, models.OrderDelivered, "1")
	b := newOrder(t, db, models.OrderDelivered, "2")
	_, err := Create(db, CreateInput{OrderID: a.ID, Method: models.PaymentCash, Amount: amount("1")})
	require.NoError(t, err)
	_, err = Create(db, CreateInput{OrderID: b.ID, Method: models.PaymentCash, Amount: amount("2")})
	require.NoError(t, err)

	all, err := List(db, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	onlyA, err := List(db, &a.ID)
	require.NoError(t, err)
	require.Len(t, onlyA, 1)
	assert.Equal(t, a.ID, onlyA[0].OrderID)
}

func TestCreate_ZeroTotalOrder(t *testing.T) {
	db := testutil.NewDB(t)
	o := newOrder(t, db, models.OrderDelivered, "0.00")

	_, err := Create(db, CreateInput{OrderID: o.ID, Method: models.PaymentOther, Amount: amount("0.01")})
	assert.True(t, apperr.Is(err, apperr.KindValidation), "amount must still match the total")

	_, err = Create(db, CreateInput{OrderID: o.ID, Method: models.PaymentOther, Amount: amount("-1")})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	p, err := Create(db, CreateInput{OrderID: o.ID, Method: models.PaymentOther, Amount: decimal.Zero})
	require.NoError(t, err)
	assert.True(t, p.Amount.IsZero())
	assert.Equal(t, models.OrderPaid, reload(t, db, o.ID).State)
}
