package services

import (
	"time"

	"tally/internal/models"
	"tally/internal/pagination"
)

// LedgerServicer defines the contract for the transaction ledger: the
// single owner of write access to transactions, categories, and notes.
type LedgerServicer interface {
	// AddTransaction appends one ledger entry. Amount must be a
	// non-negative decimal string, date must be DD-MM-YYYY or YYYY-MM-DD,
	// kind must be income or expense. A quantity of zero defaults to 1.
	AddTransaction(amount, category, date string, kind models.TransactionKind, storeName, item string, tags []string, quantity float64) (*models.Transaction, error)
	GetTransactions() ([]models.Transaction, error)
	GetTransactionsPage(page pagination.PageRequest, category string) (*pagination.PageResponse[models.Transaction], error)
	GetCategories() ([]string, error)
	GetBalance() (int64, error)
	RecordBalanceSnapshot() (*models.BalanceSnapshot, error)
	GetLoanTotal() (int64, error)
	GetSavingsTotal() (int64, error)
	ClearAllData() error
	SeedDemoData() (int, error)

	AddNote(date time.Time, text, color string) (*models.Note, error)
	DeleteNote(noteID uint) error
	GetNotes(date time.Time) ([]models.Note, error)
	GetDatesWithNotes() ([]time.Time, error)
}

// DailyTotal is the summed expense amount for one calendar date.
type DailyTotal struct {
	Date   time.Time `json:"date"`
	Amount int64     `json:"amount"`
}

// DayCumulative is the running expense total up to a day of month.
type DayCumulative struct {
	Day   int   `json:"day"`
	Total int64 `json:"total"`
}

// CategoryTotal is the summed expense amount for one category.
type CategoryTotal struct {
	Category string `json:"category"`
	Amount   int64  `json:"amount"`
}

// MonthTotal is the summed expense amount for one calendar month,
// identified by the first day of the month.
type MonthTotal struct {
	Month  time.Time `json:"month"`
	Amount int64     `json:"amount"`
}

// TagTotal is the summed expense amount attributed to one tag. A
// transaction's full amount counts toward every tag it carries.
type TagTotal struct {
	Tag    string `json:"tag"`
	Amount int64  `json:"amount"`
}

// MonthCategoryTotal is the summed expense amount for one category within
// one calendar month.
type MonthCategoryTotal struct {
	Month    time.Time `json:"month"`
	Category string    `json:"category"`
	Amount   int64     `json:"amount"`
}

// ReportServicer defines the contract for derived aggregates. All methods
// are pure reads over the ledger's current state; nothing is cached or
// stored, and an empty ledger yields empty results, never errors.
type ReportServicer interface {
	MonthlySpending(year int, month time.Month) (int64, error)
	DailySpending(start, end time.Time) ([]DailyTotal, error)
	CumulativeSpending(year int, month time.Month) ([]DayCumulative, error)
	ExpensesByCategory(start, end time.Time) ([]CategoryTotal, error)
	ExpensesByMonth(trailingMonths int) ([]MonthTotal, error)
	ExpensesByTag(trailingMonths int) ([]TagTotal, error)
	ExpensesByCategoryAndMonth(start, end time.Time) ([]MonthCategoryTotal, error)
}
