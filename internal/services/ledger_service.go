package services

import (
	"math/rand"
	"strings"
	"time"

	"gorm.io/gorm"

	"tally/internal/dates"
	apperrors "tally/internal/errors"
	"tally/internal/models"
	"tally/internal/money"
	"tally/internal/pagination"
)

// ledgerService handles ledger-related business logic.
type ledgerService struct {
	db *gorm.DB
}

// NewLedgerService creates a new LedgerServicer.
func NewLedgerService(db *gorm.DB) LedgerServicer {
	return &ledgerService{db: db}
}

// AddTransaction appends one record to the ledger. The write is durable
// and visible to subsequent reads immediately; there is no caching layer.
func (s *ledgerService) AddTransaction(
	amount string,
	category string,
	date string,
	kind models.TransactionKind,
	storeName string,
	item string,
	tags []string,
	quantity float64,
) (*models.Transaction, error) {
	if item == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "item is required")
	}
	if kind != models.TransactionKindIncome && kind != models.TransactionKindExpense {
		return nil, apperrors.ErrInvalidTransactionKind
	}
	if quantity < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "quantity must be non-negative")
	}
	if quantity == 0 {
		quantity = 1
	}

	cents, err := money.ParseAmount(amount)
	if err != nil {
		return nil, err
	}

	day, err := dates.ParseLedgerDate(date)
	if err != nil {
		return nil, err
	}

	// Category names absent from the categories table are accepted: the
	// historical schema has no referential integrity on category.
	transaction := &models.Transaction{
		Item:      item,
		Quantity:  quantity,
		Category:  category,
		Date:      dates.Truncate(day),
		Kind:      kind,
		StoreName: storeName,
		Amount:    cents,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, name := range NormalizeTags(tags) {
			var tag models.Tag
			if err := tx.Where("name = ?", name).FirstOrCreate(&tag, models.Tag{Name: name}).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			transaction.Tags = append(transaction.Tags, tag)
		}
		if err := tx.Create(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

// NormalizeTags trims whitespace and drops empty fragments, preserving
// case and order. "Fruits, Organic " becomes {"Fruits", "Organic"}.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// SplitTagField splits a legacy comma-delimited tag field into normalized
// tag names.
func SplitTagField(field string) []string {
	return NormalizeTags(strings.Split(field, ","))
}

// GetTransactions retrieves all transactions ordered by date descending.
// Ties are broken by id descending, i.e. reverse insertion order.
func (s *ledgerService) GetTransactions() ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := s.db.Preload("Tags").
		Order("date DESC, id DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// GetTransactionsPage retrieves a paginated list of transactions, newest
// first, optionally filtered by category name.
func (s *ledgerService) GetTransactionsPage(page pagination.PageRequest, category string) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{})
	if category != "" {
		base = base.Where("category = ?", category)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Preload("Tags").
		Scopes(pagination.Paginate(page)).
		Order("date DESC, id DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetCategories returns all category names in insertion order.
func (s *ledgerService) GetCategories() ([]string, error) {
	var names []string
	if err := s.db.Model(&models.Category{}).
		Order("id ASC").
		Pluck("name", &names).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return names, nil
}

// GetBalance returns the signed sum over all transactions in cents:
// income counts positive, expense negative. An empty ledger yields 0.
func (s *ledgerService) GetBalance() (int64, error) {
	var balance int64
	err := s.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(CASE WHEN kind = ? THEN amount ELSE -amount END), 0)", models.TransactionKindIncome).
		Scan(&balance).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return balance, nil
}

// RecordBalanceSnapshot stores the current computed balance. Snapshots
// are never read back by GetBalance, which always recomputes.
func (s *ledgerService) RecordBalanceSnapshot() (*models.BalanceSnapshot, error) {
	balance, err := s.GetBalance()
	if err != nil {
		return nil, err
	}
	snapshot := &models.BalanceSnapshot{Amount: balance, TakenAt: time.Now().UTC()}
	if err := s.db.Create(snapshot).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return snapshot, nil
}

// GetLoanTotal returns the summed outstanding loan amount in cents.
func (s *ledgerService) GetLoanTotal() (int64, error) {
	var total int64
	if err := s.db.Model(&models.Loan{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total, nil
}

// GetSavingsTotal returns the summed savings amount in cents.
func (s *ledgerService) GetSavingsTotal() (int64, error) {
	var total int64
	if err := s.db.Model(&models.Saving{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total, nil
}

// ClearAllData deletes every transaction and its tag associations.
// Categories and notes are untouched.
func (s *ledgerService) ClearAllData() error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM transaction_tags").Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Exec("DELETE FROM transactions").Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// AddNote creates a calendar note on the given date. An empty color gets
// the default.
func (s *ledgerService) AddNote(date time.Time, text, color string) (*models.Note, error) {
	if text == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "note text is required")
	}
	if color == "" {
		color = models.DefaultNoteColor
	}
	note := &models.Note{Date: dates.Truncate(date), Text: text, Color: color}
	if err := s.db.Create(note).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return note, nil
}

// DeleteNote removes a single note by id.
func (s *ledgerService) DeleteNote(noteID uint) error {
	result := s.db.Delete(&models.Note{}, noteID)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNoteNotFound
	}
	return nil
}

// GetNotes returns all notes on the given calendar date, oldest first.
func (s *ledgerService) GetNotes(date time.Time) ([]models.Note, error) {
	var notes []models.Note
	if err := s.db.Where("date = ?", dates.Truncate(date)).
		Order("id ASC").
		Find(&notes).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return notes, nil
}

// GetDatesWithNotes returns the distinct dates carrying at least one note,
// ascending.
func (s *ledgerService) GetDatesWithNotes() ([]time.Time, error) {
	var dateList []time.Time
	if err := s.db.Model(&models.Note{}).
		Distinct("date").
		Order("date ASC").
		Pluck("date", &dateList).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return dateList, nil
}

// Demo data vocabularies, kept from the original dashboard seeding.
var (
	demoCategories = []string{
		"Housing", "Utilities", "Transportation", "Groceries", "Healthcare",
		"Insurance", "Savings and Investments", "Debt Repayment",
		"Personal Care", "Entertainment and Leisure",
	}
	demoStores = []string{"Amazon", "Walmart", "Target", "Costco", "Safeway", "CVS", "Home Depot"}
	demoItems  = []string{"Groceries", "Electronics", "Clothes", "Books", "Furniture", "Medicine", "Tools"}
	demoTags   = []string{"Fruits", "Vegetables", "Meat", "Dairy", "Electronics", "Household", "Personal"}
)

// SeedDemoData populates an empty ledger with ~30 days of randomized
// expenses plus occasional income rows. A non-empty ledger is left
// untouched. Returns the number of rows inserted.
func (s *ledgerService) SeedDemoData() (int, error) {
	var count int64
	if err := s.db.Model(&models.Transaction{}).Count(&count).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return 0, nil
	}

	today := dates.Truncate(time.Now())
	inserted := 0
	for i := 0; i < 30; i++ {
		day := today.AddDate(0, 0, -i).Format(dates.LayoutISO)

		for n := rand.Intn(3) + 1; n > 0; n-- {
			amount := money.Format(int64(rand.Intn(19000) + 1000))
			_, err := s.AddTransaction(
				amount,
				demoCategories[rand.Intn(len(demoCategories))],
				day,
				models.TransactionKindExpense,
				demoStores[rand.Intn(len(demoStores))],
				demoItems[rand.Intn(len(demoItems))],
				[]string{demoTags[rand.Intn(len(demoTags))]},
				float64(rand.Intn(5)+1),
			)
			if err != nil {
				return inserted, err
			}
			inserted++
		}

		if rand.Float64() < 0.2 {
			amount := money.Format(int64(rand.Intn(250000) + 50000))
			_, err := s.AddTransaction(
				amount, "Income", day, models.TransactionKindIncome,
				"Employer", "Salary", []string{"Wages"}, 1,
			)
			if err != nil {
				return inserted, err
			}
			inserted++
		}
	}
	return inserted, nil
}
