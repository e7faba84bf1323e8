package arqueo

import (
	"github.com/Nicoczyruk/standburg-project-sub000/internal/apperr"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/database"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Summary son las cifras calculadas del período. Mientras el arqueo está
// abierto se recalculan en cada lectura; al cerrar se copian a la fila.
type Summary struct {
	CashSales     decimal.Decimal `json:"ventas_efectivo"`
	CardSales     decimal.Decimal `json:"ventas_tarjeta"`
	TransferSales decimal.Decimal `json:"ventas_transferencia"`
	Expenses      decimal.Decimal `json:"gastos"`
	ManualIncome  decimal.Decimal `json:"ingresos_manuales"`
	ManualExpense decimal.Decimal `json:"egresos_manuales"`
	ExpectedCash  decimal.Decimal `json:"efectivo_esperado"`
}

// ExpectedCash = apertura + ventas en efectivo + ingresos manuales
// - egresos manuales - gastos.
func expectedCash(opening decimal.Decimal, s Summary) decimal.Decimal {
	return opening.
		Add(s.CashSales).
		Add(s.ManualIncome).
		Sub(s.ManualExpense).
		Sub(s.Expenses)
}

func sum(q *gorm.DB) (decimal.Decimal, error) {
	total, err := database.SumAmount(q)
	if err != nil {
		return decimal.Zero, apperr.FromDB(err, "")
	}
	return total, nil
}

// Compute recalcula el resumen de a desde la base. Pagos y gastos se
// filtran por fecha de apertura; los movimientos manuales por arqueo_id.
func Compute(db *gorm.DB, a *models.Arqueo) (Summary, error) {
	var (
		s   Summary
		err error
	)

	payments := func(methods ...models.PaymentMethod) *gorm.DB {
		return db.Model(&models.Payment{}).
			Where("created_at >= ? AND method IN ?", a.OpenedAt, methods)
	}
	movements := func(t models.MovementType) *gorm.DB {
		return db.Model(&models.CashMovement{}).
			Where("arqueo_id = ? AND type = ?", a.ID, t)
	}

	if s.CashSales, err = sum(payments(models.PaymentCash)); err != nil {
		return s, err
	}
	if s.CardSales, err = sum(payments(models.PaymentDebit, models.PaymentCredit)); err != nil {
		return s, err
	}
	if s.TransferSales, err = sum(payments(models.PaymentTransfer)); err != nil {
		return s, err
	}
	if s.Expenses, err = sum(db.Model(&models.Expense{}).Where("created_at >= ?", a.OpenedAt)); err != nil {
		return s, err
	}
	if s.ManualIncome, err = sum(movements(models.MovementIncome)); err != nil {
		return s, err
	}
	if s.ManualExpense, err = sum(movements(models.MovementExpense)); err != nil {
		return s, err
	}

	s.ExpectedCash = expectedCash(a.OpeningAmount, s)
	return s, nil
}

// Frozen devuelve el resumen guardado de un arqueo cerrado.
func Frozen(a *models.Arqueo) Summary {
	val := func(d *decimal.Decimal) decimal.Decimal {
		if d == nil {
			return decimal.Zero
		}
		return *d
	}
	return Summary{
		CashSales:     val(a.CashSales),
		CardSales:     val(a.CardSales),
		TransferSales: val(a.TransferSales),
		Expenses:      val(a.Expenses),
		ManualIncome:  val(a.ManualIncome),
		ManualExpense: val(a.ManualExpense),
		ExpectedCash:  val(a.ExpectedCash),
	}
}
