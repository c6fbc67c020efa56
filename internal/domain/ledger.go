package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ledger transaction types
const (
	TxInflow     = "inflow"
	TxOutflow    = "outflow"
	TxAdjustment = "adjustment"
	TxLiability  = "liability"
)

// Ledger transaction statuses
const (
	TxPending  = "pending"
	TxCleared  = "cleared"
	TxReversed = "reversed"
)

// ValidTxType reports whether t is a known transaction type
func ValidTxType(t string) bool {
	switch t {
	case TxInflow, TxOutflow, TxAdjustment, TxLiability:
		return true
	}
	return false
}

// LedgerTransaction append-only finance ledger entry.
// Amount is signed (outflows and liabilities are stored negative) and
// BalanceAfter is written inside the same DB transaction as the insert, so
// the running balance never needs a full-history recompute. Reversal flips
// the original's status to reversed and inserts a negating contra entry
// referencing it; the original's amount is never mutated.
type LedgerTransaction struct {
	ID           uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UUID         string          `gorm:"column:uuid;type:char(36);uniqueIndex" json:"uuid"`
	Type         string          `gorm:"column:type;type:varchar(12);not null;index" json:"type"`
	Category     string          `gorm:"column:category;type:varchar(50);index" json:"category"`
	Amount       decimal.Decimal `gorm:"column:amount;type:decimal(20,4);not null" json:"amount"`
	BalanceAfter decimal.Decimal `gorm:"column:balance_after;type:decimal(20,4);not null" json:"balance_after"`
	Status       string          `gorm:"column:status;type:varchar(10);not null;default:'pending';index" json:"status"`
	Description  string          `gorm:"column:description;type:text" json:"description"`
	IsReversal   bool            `gorm:"column:is_reversal;default:false" json:"is_reversal"`
	ReversesID   *uint64         `gorm:"column:reverses_id;index" json:"reverses_id"`
	RecordedByID uint64          `gorm:"column:recorded_by_id;not null" json:"recorded_by_id"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
}

func (LedgerTransaction) TableName() string { return "ledger_transactions" }
