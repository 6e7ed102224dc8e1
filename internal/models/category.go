package models

// Category represents a transaction category. The fixed seed list is
// inserted by migration with insert-if-absent semantics and is never
// removed; the base schema does not support user-added categories.
type Category struct {
	Base
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// SeedCategories is the fixed category list inserted at initialization.
var SeedCategories = []string{
	"Housing", "Utilities", "Transportation", "Groceries", "Healthcare",
	"Insurance", "Savings and Investments", "Debt Repayment",
	"Personal Care", "Entertainment and Leisure", "Income", "Other",
}
