package cashflow

import (
	"time"

	"github.com/Nicoczyruk/standburg-project-sub000/internal/apperr"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/database"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	dayLayout   = "2006-01-02"
	maxRangeDay = 366
)

type FinancialSummaryResponse struct {
	StartDate      string          `json:"desde"`
	EndDate        string          `json:"hasta"`
	TotalSales     decimal.Decimal `json:"ventas"`
	TotalExpenses  decimal.Decimal `json:"gastos"`
	ManualIncome   decimal.Decimal `json:"ingresos_manuales"`
	ManualExpense  decimal.Decimal `json:"egresos_manuales"`
	Net            decimal.Decimal `json:"neto"`
	DailyBreakdown []DailyRevenue  `json:"detalle_diario"`
}

type DailyRevenue struct {
	Date          string          `json:"fecha"`
	Sales         decimal.Decimal `json:"ventas"`
	Expenses      decimal.Decimal `json:"gastos"`
	ManualIncome  decimal.Decimal `json:"ingresos_manuales"`
	ManualExpense decimal.Decimal `json:"egresos_manuales"`
}

// Summarize arma el resumen de [from, to], ambos días inclusive.
// Ventas y movimientos se fechan por created_at, los gastos por su fecha.
func Summarize(db *gorm.DB, from, to time.Time) (*FinancialSummaryResponse, error) {
	end := to.AddDate(0, 0, 1)

	var payments []models.Payment
	if err := db.Where("status = ? AND created_at >= ? AND created_at < ?", models.PaymentCompleted, from, end).
		Find(&payments).Error; err != nil {
		return nil, apperr.FromDB(err, "")
	}

	var expenses []models.Expense
	if err := db.Where("date >= ? AND date < ?", from, end).Find(&expenses).Error; err != nil {
		return nil, apperr.FromDB(err, "")
	}

	var movements []models.CashMovement
	if err := db.Where("created_at >= ? AND created_at < ?", from, end).Find(&movements).Error; err != nil {
		return nil, apperr.FromDB(err, "")
	}

	days := make([]DailyRevenue, 0)
	index := make(map[string]int)
	for cur := from; cur.Before(end); cur = cur.AddDate(0, 0, 1) {
		key := cur.Format(dayLayout)
		index[key] = len(days)
		days = append(days, DailyRevenue{
			Date:          key,
			Sales:         decimal.Zero,
			Expenses:      decimal.Zero,
			ManualIncome:  decimal.Zero,
			ManualExpense: decimal.Zero,
		})
	}
	day := func(t time.Time) *DailyRevenue {
		if i, ok := index[t.In(from.Location()).Format(dayLayout)]; ok {
			return &days[i]
		}
		return nil
	}

	for _, p := range payments {
		if dr := day(p.CreatedAt); dr != nil {
			dr.Sales = dr.Sales.Add(p.Amount)
		}
	}
	for _, e := range expenses {
		if dr := day(e.Date); dr != nil {
			dr.Expenses = dr.Expenses.Add(e.Amount)
		}
	}
	for _, m := range movements {
		dr := day(m.CreatedAt)
		if dr == nil {
			continue
		}
		if m.Type == models.MovementIncome {
			dr.ManualIncome = dr.ManualIncome.Add(m.Amount)
		} else {
			dr.ManualExpense = dr.ManualExpense.Add(m.Amount)
		}
	}

	resp := &FinancialSummaryResponse{
		StartDate:      from.Format(dayLayout),
		EndDate:        to.Format(dayLayout),
		TotalSales:     decimal.Zero,
		TotalExpenses:  decimal.Zero,
		ManualIncome:   decimal.Zero,
		ManualExpense:  decimal.Zero,
		DailyBreakdown: days,
	}
	for _, dr := range days {
		resp.TotalSales = resp.TotalSales.Add(dr.Sales)
		resp.TotalExpenses = resp.TotalExpenses.Add(dr.Expenses)
		resp.ManualIncome = resp.ManualIncome.Add(dr.ManualIncome)
		resp.ManualExpense = resp.ManualExpense.Add(dr.ManualExpense)
	}
	resp.Net = resp.TotalSales.
		Add(resp.ManualIncome).
		Sub(resp.ManualExpense).
		Sub(resp.TotalExpenses)

	return resp, nil
}

// GET /api/resumen-financiero?desde=2025-12-01&hasta=2025-12-07
func GetFinancialSummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Query("desde") == "" || c.Query("hasta") == "" {
			return apperr.Validation("desde y hasta son obligatorios (YYYY-MM-DD)")
		}
		from, err := parseDay(c, "desde")
		if err != nil {
			return err
		}
		to, err := parseDay(c, "hasta")
		if err != nil {
			return err
		}
		if to.Before(*from) {
			return apperr.Validation("hasta no puede ser anterior a desde")
		}
		if to.Sub(*from) > maxRangeDay*24*time.Hour {
			return apperr.Validation("El rango no puede superar un año")
		}

		resp, err := Summarize(database.DB, *from, *to)
		if err != nil {
			return err
		}
		return c.JSON(resp)
	}
}
