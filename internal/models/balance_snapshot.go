package models

import "time"

// BalanceSnapshot is a point-in-time record of the computed balance.
// Snapshots are an audit trail only: balance reads always recompute from
// transactions and never consult this table.
type BalanceSnapshot struct {
	Base
	Amount  int64     `gorm:"type:bigint;not null" json:"amount"`
	TakenAt time.Time `gorm:"not null" json:"taken_at"`
}

// Loan is a named outstanding loan amount shown on the dashboard summary.
type Loan struct {
	Base
	Name   string `gorm:"not null" json:"name"`
	Amount int64  `gorm:"type:bigint;not null" json:"amount"`
}

// Saving is a named savings amount shown on the dashboard summary.
type Saving struct {
	Base
	Name   string `gorm:"not null" json:"name"`
	Amount int64  `gorm:"type:bigint;not null" json:"amount"`
}
