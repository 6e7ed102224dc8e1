package handlers

import (
	"time"

	"tally/internal/models"
	"tally/internal/pagination"
	"tally/internal/services"
)

// --- mock ledger service ---

type mockLedgerService struct {
	addTransactionFn        func(amount, category, date string, kind models.TransactionKind, storeName, item string, tags []string, quantity float64) (*models.Transaction, error)
	getTransactionsPageFn   func(page pagination.PageRequest, category string) (*pagination.PageResponse[models.Transaction], error)
	getCategoriesFn         func() ([]string, error)
	getBalanceFn            func() (int64, error)
	recordBalanceSnapshotFn func() (*models.BalanceSnapshot, error)
	clearAllDataFn          func() error
	seedDemoDataFn          func() (int, error)
	addNoteFn               func(date time.Time, text, color string) (*models.Note, error)
	deleteNoteFn            func(noteID uint) error
	getNotesFn              func(date time.Time) ([]models.Note, error)
	getDatesWithNotesFn     func() ([]time.Time, error)
}

func (m *mockLedgerService) AddTransaction(amount, category, date string, kind models.TransactionKind, storeName, item string, tags []string, quantity float64) (*models.Transaction, error) {
	if m.addTransactionFn != nil {
		return m.addTransactionFn(amount, category, date, kind, storeName, item, tags, quantity)
	}
	return &models.Transaction{}, nil
}

func (m *mockLedgerService) GetTransactions() ([]models.Transaction, error) {
	return []models.Transaction{}, nil
}

func (m *mockLedgerService) GetTransactionsPage(page pagination.PageRequest, category string) (*pagination.PageResponse[models.Transaction], error) {
	if m.getTransactionsPageFn != nil {
		return m.getTransactionsPageFn(page, category)
	}
	resp := pagination.NewPageResponse([]models.Transaction{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockLedgerService) GetCategories() ([]string, error) {
	if m.getCategoriesFn != nil {
		return m.getCategoriesFn()
	}
	return []string{}, nil
}

func (m *mockLedgerService) GetBalance() (int64, error) {
	if m.getBalanceFn != nil {
		return m.getBalanceFn()
	}
	return 0, nil
}

func (m *mockLedgerService) RecordBalanceSnapshot() (*models.BalanceSnapshot, error) {
	if m.recordBalanceSnapshotFn != nil {
		return m.recordBalanceSnapshotFn()
	}
	return &models.BalanceSnapshot{}, nil
}

func (m *mockLedgerService) GetLoanTotal() (int64, error) { return 0, nil }

func (m *mockLedgerService) GetSavingsTotal() (int64, error) { return 0, nil }

func (m *mockLedgerService) ClearAllData() error {
	if m.clearAllDataFn != nil {
		return m.clearAllDataFn()
	}
	return nil
}

func (m *mockLedgerService) SeedDemoData() (int, error) {
	if m.seedDemoDataFn != nil {
		return m.seedDemoDataFn()
	}
	return 0, nil
}

func (m *mockLedgerService) AddNote(date time.Time, text, color string) (*models.Note, error) {
	if m.addNoteFn != nil {
		return m.addNoteFn(date, text, color)
	}
	return &models.Note{}, nil
}

func (m *mockLedgerService) DeleteNote(noteID uint) error {
	if m.deleteNoteFn != nil {
		return m.deleteNoteFn(noteID)
	}
	return nil
}

func (m *mockLedgerService) GetNotes(date time.Time) ([]models.Note, error) {
	if m.getNotesFn != nil {
		return m.getNotesFn(date)
	}
	return []models.Note{}, nil
}

func (m *mockLedgerService) GetDatesWithNotes() ([]time.Time, error) {
	if m.getDatesWithNotesFn != nil {
		return m.getDatesWithNotesFn()
	}
	return []time.Time{}, nil
}

var _ services.LedgerServicer = (*mockLedgerService)(nil)

// --- mock report service ---

type mockReportService struct {
	monthlySpendingFn    func(year int, month time.Month) (int64, error)
	dailySpendingFn      func(start, end time.Time) ([]services.DailyTotal, error)
	cumulativeSpendingFn func(year int, month time.Month) ([]services.DayCumulative, error)
	expensesByCategoryFn func(start, end time.Time) ([]services.CategoryTotal, error)
	expensesByMonthFn    func(trailingMonths int) ([]services.MonthTotal, error)
	expensesByTagFn      func(trailingMonths int) ([]services.TagTotal, error)
	expensesByCatMonthFn func(start, end time.Time) ([]services.MonthCategoryTotal, error)
}

func (m *mockReportService) MonthlySpending(year int, month time.Month) (int64, error) {
	if m.monthlySpendingFn != nil {
		return m.monthlySpendingFn(year, month)
	}
	return 0, nil
}

func (m *mockReportService) DailySpending(start, end time.Time) ([]services.DailyTotal, error) {
	if m.dailySpendingFn != nil {
		return m.dailySpendingFn(start, end)
	}
	return []services.DailyTotal{}, nil
}

func (m *mockReportService) CumulativeSpending(year int, month time.Month) ([]services.DayCumulative, error) {
	if m.cumulativeSpendingFn != nil {
		return m.cumulativeSpendingFn(year, month)
	}
	return []services.DayCumulative{}, nil
}

func (m *mockReportService) ExpensesByCategory(start, end time.Time) ([]services.CategoryTotal, error) {
	if m.expensesByCategoryFn != nil {
		return m.expensesByCategoryFn(start, end)
	}
	return []services.CategoryTotal{}, nil
}

func (m *mockReportService) ExpensesByMonth(trailingMonths int) ([]services.MonthTotal, error) {
	if m.expensesByMonthFn != nil {
		return m.expensesByMonthFn(trailingMonths)
	}
	return []services.MonthTotal{}, nil
}

func (m *mockReportService) ExpensesByTag(trailingMonths int) ([]services.TagTotal, error) {
	if m.expensesByTagFn != nil {
		return m.expensesByTagFn(trailingMonths)
	}
	return []services.TagTotal{}, nil
}

func (m *mockReportService) ExpensesByCategoryAndMonth(start, end time.Time) ([]services.MonthCategoryTotal, error) {
	if m.expensesByCatMonthFn != nil {
		return m.expensesByCatMonthFn(start, end)
	}
	return []services.MonthCategoryTotal{}, nil
}

var _ services.ReportServicer = (*mockReportService)(nil)
