package expense

import (
	"strings"
	"time"

	"github.com/Nicoczyruk/standburg-project-sub000/internal/apperr"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/models"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/validation"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	dateLayout  = "2006-01-02"
	msgNotFound = "Gasto no encontrado"
)

type Input struct {
	Type    models.ExpenseType `json:"tipo" validate:"required,enum"`
	Concept string             `json:"concepto" validate:"required,max=255"`
	Amount  decimal.Decimal    `json:"monto" validate:"gt=0"`
	Date    string             `json:"fecha" validate:"required,datetime=2006-01-02"`
}

func (in *Input) normalize() (time.Time, error) {
	in.Concept = strings.TrimSpace(in.Concept)
	in.Date = strings.TrimSpace(in.Date)
	in.Amount = in.Amount.Round(2)
	if err := validation.Struct(*in); err != nil {
		return time.Time{}, err
	}
	date, err := time.ParseInLocation(dateLayout, in.Date, time.Local)
	if err != nil {
		return time.Time{}, apperr.Validation("El campo fecha debe tener formato YYYY-MM-DD")
	}
	return date, nil
}

type Filter struct {
	Type models.ExpenseType
	From *time.Time
	To   *time.Time // inclusive
}

func List(db *gorm.DB, f Filter) ([]models.Expense, error) {
	q := db.Order("date DESC, id DESC")
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.From != nil {
		q = q.Where("date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("date < ?", f.To.AddDate(0, 0, 1))
	}

	var list []models.Expense
	if err := q.Find(&list).Error; err != nil {
		return nil, apperr.FromDB(err, "")
	}
	return list, nil
}

func Get(db *gorm.DB, id uint) (*models.Expense, error) {
	var e models.Expense
	if err := db.First(&e, id).Error; err != nil {
		return nil, apperr.FromDB(err, msgNotFound)
	}
	return &e, nil
}

func Create(db *gorm.DB, in Input) (*models.Expense, error) {
	date, err := in.normalize()
	if err != nil {
		return nil, err
	}

	e := models.Expense{
		Type:    in.Type,
		Concept: in.Concept,
		Amount:  in.Amount,
		Date:    date,
	}
	if err := db.Create(&e).Error; err != nil {
		return nil, apperr.FromDB(err, "")
	}
	return &e, nil
}

// Update reemplaza todos los campos del gasto. Devuelve la versión previa
// para la auditoría.
func Update(db *gorm.DB, id uint, in Input) (before, after *models.Expense, err error) {
	date, err := in.normalize()
	if err != nil {
		return nil, nil, err
	}

	cur, err := Get(db, id)
	if err != nil {
		return nil, nil, err
	}
	prev := *cur

	cur.Type = in.Type
	cur.Concept = in.Concept
	cur.Amount = in.Amount
	cur.Date = date
	if err := db.Save(cur).Error; err != nil {
		return nil, nil, apperr.FromDB(err, msgNotFound)
	}
	return &prev, cur, nil
}

func Delete(db *gorm.DB, id uint) (*models.Expense, error) {
	e, err := Get(db, id)
	if err != nil {
		return nil, err
	}
	if err := db.Delete(&models.Expense{}, id).Error; err != nil {
		return nil, apperr.FromDB(err, msgNotFound)
	}
	return e, nil
}

type MonthlyItem struct {
	Type  models.ExpenseType `json:"tipo"`
	Total decimal.Decimal    `json:"total"`
}

type MonthlySummary struct {
	Year       int             `json:"anio"`
	Month      int             `json:"mes"`
	Items      []MonthlyItem   `json:"items"`
	GrandTotal decimal.Decimal `json:"total"`
}

// Monthly agrupa los gastos del mes por tipo. Los tipos sin gastos
// aparecen con total cero.
func Monthly(db *gorm.DB, year int, month time.Month) (*MonthlySummary, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0)

	var list []models.Expense
	if err := db.Where("date >= ? AND date < ?", start, end).Find(&list).Error; err != nil {
		return nil, apperr.FromDB(err, "")
	}

	totals := map[models.ExpenseType]decimal.Decimal{}
	grand := decimal.Zero
	for _, e := range list {
		totals[e.Type] = totals[e.Type].Add(e.Amount)
		grand = grand.Add(e.Amount)
	}

	items := make([]MonthlyItem, 0, 3)
	for _, t := range []models.ExpenseType{models.ExpenseFixed, models.ExpenseVariable, models.ExpenseRunningAccount} {
		items = append(items, MonthlyItem{Type: t, Total: totals[t]})
	}

	return &MonthlySummary{
		Year:       year,
		Month:      int(month),
		Items:      items,
		GrandTotal: grand,
	}, nil
}
