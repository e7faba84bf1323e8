package dashboard

import (
	"strconv"
	"time"

	"github.com/Nicoczyruk/standburg-project-sub000/internal/apperr"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/database"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Period string

const (
	PeriodDaily   Period = "diario"
	PeriodWeekly  Period = "semanal"
	PeriodMonthly Period = "mensual"
)

const maxCount = 366

func (p Period) Valid() bool {
	return p == PeriodDaily || p == PeriodWeekly || p == PeriodMonthly
}

func (p Period) defaultCount() int {
	switch p {
	case PeriodWeekly:
		return 8
	case PeriodMonthly:
		return 12
	default:
		return 7
	}
}

type SalesChartPoint struct {
	Label    string          `json:"etiqueta"` // día / lunes de la semana / primer día del mes
	Cash     decimal.Decimal `json:"efectivo"`
	Card     decimal.Decimal `json:"tarjeta"`
	Transfer decimal.Decimal `json:"transferencia"`
	Other    decimal.Decimal `json:"otro"`
	Total    decimal.Decimal `json:"total"`
}

func (p *SalesChartPoint) add(m models.PaymentMethod, amount decimal.Decimal) {
	switch m {
	case models.PaymentCash:
		p.Cash = p.Cash.Add(amount)
	case models.PaymentDebit, models.PaymentCredit:
		p.Card = p.Card.Add(amount)
	case models.PaymentTransfer:
		p.Transfer = p.Transfer.Add(amount)
	default:
		p.Other = p.Other.Add(amount)
	}
	p.Total = p.Total.Add(amount)
}

type SalesChartResponse struct {
	Period      Period            `json:"periodo"`
	From        string            `json:"desde"`
	To          string            `json:"hasta"`
	Points      []SalesChartPoint `json:"puntos"`
	GrandTotals SalesChartPoint   `json:"totales"`
}

// bucketStart lleva t al inicio de su día, semana (lunes) o mes.
func bucketStart(p Period, t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	switch p {
	case PeriodWeekly:
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case PeriodMonthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	default:
		return day
	}
}

func next(p Period, t time.Time) time.Time {
	switch p {
	case PeriodWeekly:
		return t.AddDate(0, 0, 7)
	case PeriodMonthly:
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}

// SalesChart agrupa los pagos completados en count períodos terminando en
// el que contiene now. La agrupación se hace en Go para no depender de
// date_trunc.
func SalesChart(db *gorm.DB, p Period, count int, now time.Time) (*SalesChartResponse, error) {
	last := bucketStart(p, now)
	start := last
	for i := 1; i < count; i++ {
		switch p {
		case PeriodWeekly:
			start = start.AddDate(0, 0, -7)
		case PeriodMonthly:
			start = start.AddDate(0, -1, 0)
		default:
			start = start.AddDate(0, 0, -1)
		}
	}
	end := next(p, last)

	var payments []models.Payment
	if err := db.Where("status = ? AND created_at >= ? AND created_at < ?", models.PaymentCompleted, start, end).
		Order("created_at ASC").
		Find(&payments).Error; err != nil {
		return nil, apperr.FromDB(err, "")
	}

	points := make([]SalesChartPoint, 0, count)
	index := make(map[string]int, count)
	for b := start; b.Before(end); b = next(p, b) {
		label := b.Format("2006-01-02")
		index[label] = len(points)
		points = append(points, SalesChartPoint{Label: label})
	}

	grand := SalesChartPoint{Label: "total"}
	for _, pay := range payments {
		i, ok := index[bucketStart(p, pay.CreatedAt.In(now.Location())).Format("2006-01-02")]
		if !ok {
			continue
		}
		points[i].add(pay.Method, pay.Amount)
		grand.add(pay.Method, pay.Amount)
	}

	return &SalesChartResponse{
		Period:      p,
		From:        start.Format("2006-01-02"),
		To:          end.AddDate(0, 0, -1).Format("2006-01-02"),
		Points:      points,
		GrandTotals: grand,
	}, nil
}

// GET /api/dashboard/ventas?periodo=diario&cantidad=7
func SalesChartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		period := Period(c.Query("periodo", string(PeriodDaily)))
		if !period.Valid() {
			return apperr.Validation("periodo inválido (diario|semanal|mensual)")
		}

		count := period.defaultCount()
		if s := c.Query("cantidad"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > maxCount {
				return apperr.Validation("cantidad inválida")
			}
			count = n
		}

		resp, err := SalesChart(database.DB, period, count, time.Now())
		if err != nil {
			return err
		}
		return c.JSON(resp)
	}
}
