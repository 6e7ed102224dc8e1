package services

import (
	"time"

	"gorm.io/gorm"

	"tally/internal/dates"
	apperrors "tally/internal/errors"
	"tally/internal/models"
)

// reportService derives aggregates from the ledger. Every call re-scans
// the underlying transaction set; at the expected data volumes (thousands
// of rows) this is deliberate and cheap.
type reportService struct {
	db *gorm.DB
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB) ReportServicer {
	return &reportService{db: db}
}

// MonthlySpending returns the summed expense amount within the calendar
// month, from the first day through the actual last day of the month.
func (s *reportService) MonthlySpending(year int, month time.Month) (int64, error) {
	first, _ := dates.MonthBounds(year, month)
	next := first.AddDate(0, 1, 0)

	var total int64
	err := s.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("kind = ? AND date >= ? AND date < ?", models.TransactionKindExpense, first, next).
		Scan(&total).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total, nil
}

// DailySpending returns one (date, sum) pair per date in the inclusive
// range that has at least one expense. Dates without transactions are
// absent; filling gaps is the chart layer's concern.
func (s *reportService) DailySpending(start, end time.Time) ([]DailyTotal, error) {
	start, end = dates.Truncate(start), dates.Truncate(end)
	if end.Before(start) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "end date precedes start date")
	}

	totals := []DailyTotal{}
	err := s.db.Model(&models.Transaction{}).
		Select("date, SUM(amount) AS amount").
		Where("kind = ? AND date >= ? AND date <= ?", models.TransactionKindExpense, start, end).
		Group("date").
		Order("date ASC").
		Scan(&totals).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return totals, nil
}

// CumulativeSpending returns the running expense total per day-of-month,
// ascending. Totals are monotonically non-decreasing since amounts are
// stored non-negative.
func (s *reportService) CumulativeSpending(year int, month time.Month) ([]DayCumulative, error) {
	first, last := dates.MonthBounds(year, month)
	daily, err := s.DailySpending(first, last)
	if err != nil {
		return nil, err
	}

	cumulative := make([]DayCumulative, 0, len(daily))
	var running int64
	for _, d := range daily {
		running += d.Amount
		cumulative = append(cumulative, DayCumulative{Day: d.Date.Day(), Total: running})
	}
	return cumulative, nil
}

// ExpensesByCategory returns one (category, sum) pair per category with at
// least one expense in the inclusive range, largest first. A range with no
// transactions yields an empty slice.
func (s *reportService) ExpensesByCategory(start, end time.Time) ([]CategoryTotal, error) {
	start, end = dates.Truncate(start), dates.Truncate(end)
	if end.Before(start) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "end date precedes start date")
	}

	totals := []CategoryTotal{}
	err := s.db.Model(&models.Transaction{}).
		Select("category, SUM(amount) AS amount").
		Where("kind = ? AND date >= ? AND date <= ?", models.TransactionKindExpense, start, end).
		Group("category").
		Order("amount DESC").
		Scan(&totals).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return totals, nil
}

// monthRow carries a grouped month as text until parsed; SQLite's
// strftime yields strings, not native dates.
type monthRow struct {
	Month  string
	Amount int64
}

// ExpensesByMonth returns one (monthStart, sum) pair per calendar month in
// the trailing window, most recent first.
func (s *reportService) ExpensesByMonth(trailingMonths int) ([]MonthTotal, error) {
	if trailingMonths < 1 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "trailing months must be at least 1")
	}
	windowStart := dates.MonthStart(time.Now()).AddDate(0, -(trailingMonths - 1), 0)

	var rows []monthRow
	err := s.db.Model(&models.Transaction{}).
		Select("strftime('%Y-%m-01', date) AS month, SUM(amount) AS amount").
		Where("kind = ? AND date >= ?", models.TransactionKindExpense, windowStart).
		Group("month").
		Order("month DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	totals := make([]MonthTotal, 0, len(rows))
	for _, r := range rows {
		m, perr := time.ParseInLocation(dates.LayoutISO, r.Month, time.UTC)
		if perr != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, perr)
		}
		totals = append(totals, MonthTotal{Month: m, Amount: r.Amount})
	}
	return totals, nil
}

// ExpensesByTag sums expenses per tag over the trailing window, sorted
// descending by amount. A transaction's full amount is attributed to every
// tag it carries: a purchase tagged both "Fruits" and "Organic" counts
// wholly toward each total, never divided between them.
func (s *reportService) ExpensesByTag(trailingMonths int) ([]TagTotal, error) {
	if trailingMonths < 1 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "trailing months must be at least 1")
	}
	windowStart := dates.MonthStart(time.Now()).AddDate(0, -(trailingMonths - 1), 0)

	totals := []TagTotal{}
	err := s.db.Raw(`
		SELECT t.name AS tag, SUM(tr.amount) AS amount
		FROM transactions tr
		JOIN transaction_tags tt ON tt.transaction_id = tr.id
		JOIN tags t ON t.id = tt.tag_id
		WHERE tr.kind = ? AND tr.date >= ?
		GROUP BY t.name
		ORDER BY amount DESC`,
		models.TransactionKindExpense, windowStart,
	).Scan(&totals).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return totals, nil
}

// ExpensesByCategoryAndMonth returns (month, category, sum) triples over
// the inclusive range, grouped by month ascending and amount descending
// within each month.
func (s *reportService) ExpensesByCategoryAndMonth(start, end time.Time) ([]MonthCategoryTotal, error) {
	start, end = dates.Truncate(start), dates.Truncate(end)
	if end.Before(start) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "end date precedes start date")
	}

	type row struct {
		Month    string
		Category string
		Amount   int64
	}
	var rows []row
	err := s.db.Model(&models.Transaction{}).
		Select("strftime('%Y-%m-01', date) AS month, category, SUM(amount) AS amount").
		Where("kind = ? AND date >= ? AND date <= ?", models.TransactionKindExpense, start, end).
		Group("month, category").
		Order("month ASC, amount DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	totals := make([]MonthCategoryTotal, 0, len(rows))
	for _, r := range rows {
		m, perr := time.ParseInLocation(dates.LayoutISO, r.Month, time.UTC)
		if perr != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, perr)
		}
		totals = append(totals, MonthCategoryTotal{Month: m, Category: r.Category, Amount: r.Amount})
	}
	return totals, nil
}
