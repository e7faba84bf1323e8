package dashboard

import (
	"testing"
	"time"

	"github.com/Nicoczyruk/standburg-project-sub000/internal/models"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestBucketStart(t *testing.T) {
	// miércoles
	ts := time.Date(2025, 12, 10, 15, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2025, 12, 10, 0, 0, 0, 0, time.UTC), bucketStart(PeriodDaily, ts))
	assert.Equal(t, time.Date(2025, 12, 8, 0, 0, 0, 0, time.UTC), bucketStart(PeriodWeekly, ts))
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), bucketStart(PeriodMonthly, ts))

	sunday := time.Date(2025, 12, 14, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 12, 8, 0, 0, 0, 0, time.UTC), bucketStart(PeriodWeekly, sunday))
}

func seedPayment(t *testing.T, db *gorm.DB, method models.PaymentMethod, amount string, at time.Time) {
	t.Helper()
	o := models.Order{CustomerName: "c", Type: models.OrderTypeCounter, State: models.OrderPaid, Total: d(amount)}
	require.NoError(t, db.Create(&o).Error)
	p := models.Payment{OrderID: o.ID, Method: method, Amount: d(amount), Status: models.PaymentCompleted}
	require.NoError(t, db.Omit("Order").Create(&p).Error)
	require.NoError(t, db.Model(&p).Update("created_at", at).Error)
}

func TestSalesChart_Daily(t *testing.T) {
	db := testutil.NewDB(t)
	now := time.Now()
	today := bucketStart(PeriodDaily, now).Add(time.Hour)

	seedPayment(t, db, models.PaymentCash, "10", today)
	seedPayment(t, db, models.PaymentDebit, "20", today)
	seedPayment(t, db, models.PaymentCredit, "5", today.AddDate(0, 0, -1))
	seedPayment(t, db, models.PaymentTransfer, "7", today.AddDate(0, 0, -2))
	// fuera de la ventana de 3 días
	seedPayment(t, db, models.PaymentCash, "100", today.AddDate(0, 0, -3))

	resp, err := SalesChart(db, PeriodDaily, 3, now)
	require.NoError(t, err)

	require.Len(t, resp.Points, 3)
	assert.True(t, d("7").Equal(resp.Points[0].Transfer))
	assert.True(t, d("5").Equal(resp.Points[1].Card))
	assert.True(t, d("10").Equal(resp.Points[2].Cash))
	assert.True(t, d("30").Equal(resp.Points[2].Total))

	assert.True(t, d("42").Equal(resp.GrandTotals.Total))
	assert.True(t, d("25").Equal(resp.GrandTotals.Card))
	assert.Equal(t, now.Format("2006-01-02"), resp.To)
}

func TestSalesChart_MonthlyEmptyBuckets(t *testing.T) {
	db := testutil.NewDB(t)

	resp, err := SalesChart(db, PeriodMonthly, 12, time.Now())
	require.NoError(t, err)
	assert.Len(t, resp.Points, 12)
	assert.True(t, resp.GrandTotals.Total.IsZero())
}
