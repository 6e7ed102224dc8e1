package models

import "time"

// TransactionKind represents the direction of a transaction.
type TransactionKind string

const (
	TransactionKindIncome  TransactionKind = "income"
	TransactionKindExpense TransactionKind = "expense"
)

// Transaction represents one ledger entry. Amount is stored in cents and
// is always non-negative; the sign is inferred from Kind at aggregation
// time. Category is referenced by name, not by foreign key; names absent
// from the categories table are accepted, matching the historical schema.
type Transaction struct {
	Base
	Item      string          `gorm:"not null" json:"item"`
	Quantity  float64         `gorm:"not null;default:1" json:"quantity"`
	Category  string          `gorm:"not null" json:"category"`
	Date      time.Time       `gorm:"not null;index" json:"date"`
	Kind      TransactionKind `gorm:"column:kind;not null" json:"kind"`
	StoreName string          `json:"store_name"`
	Amount    int64           `gorm:"type:bigint;not null" json:"amount"`

	// Tags is a proper join-table relation; the legacy schema stored a
	// comma-delimited string, migrated by 0003_transaction_tags.
	Tags []Tag `gorm:"many2many:transaction_tags" json:"tags"`
}

// TagNames returns the transaction's tag names in association order.
func (t *Transaction) TagNames() []string {
	names := make([]string, 0, len(t.Tags))
	for _, tag := range t.Tags {
		names = append(names, tag.Name)
	}
	return names
}
