package repository

import (
	"errors"

	"github.com/craftlab-hq/ops-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrTxNotFound         = errors.New("ledger transaction not found")
	ErrAlreadyReversed    = errors.New("ledger transaction already reversed")
	ErrReversalOfReversal = errors.New("cannot reverse a reversal entry")
)

// LedgerFilter list filters for ledger transactions
type LedgerFilter struct {
	Type     string
	Status   string
	Category string
	Page     int
	PerPage  int
}

// LedgerRepository append-only finance ledger data access
type LedgerRepository interface {
	CreateWithBalance(tx *domain.LedgerTransaction) error
	Reverse(id uint64, actorID uint64) (*domain.LedgerTransaction, error)
	FindByID(id uint64) (*domain.LedgerTransaction, error)
	List(filter LedgerFilter) ([]*domain.LedgerTransaction, int64, error)
	CurrentBalance() (decimal.Decimal, error)
	SetStatus(id uint64, status string) error
}

type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

// CreateWithBalance inserts the transaction with its running balance
// computed inside the same DB transaction. The latest row is locked so two
// concurrent inserts serialize and the balance chain stays consistent.
func (r *ledgerRepository) CreateWithBalance(entry *domain.LedgerTransaction) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		prev, err := latestBalance(tx)
		if err != nil {
			return err
		}
		entry.BalanceAfter = prev.Add(entry.Amount)
		return tx.Create(entry).Error
	})
}

// Reverse marks the original as reversed and inserts a negating contra entry
// referencing it, both in one DB transaction. The original's amount is never
// touched.
func (r *ledgerRepository) Reverse(id uint64, actorID uint64) (*domain.LedgerTransaction, error) {
	var contra *domain.LedgerTransaction

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var original domain.LedgerTransaction
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&original, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTxNotFound
			}
			return err
		}

		if original.Status == domain.TxReversed {
			return ErrAlreadyReversed
		}
		if original.IsReversal {
			return ErrReversalOfReversal
		}

		if err := tx.Model(&domain.LedgerTransaction{}).
			Where("id = ?", original.ID).
			Update("status", domain.TxReversed).Error; err != nil {
			return err
		}

		prev, err := latestBalance(tx)
		if err != nil {
			return err
		}

		originalID := original.ID
		contra = &domain.LedgerTransaction{
			UUID:         uuid.NewString(),
			Type:         original.Type,
			Category:     original.Category,
			Amount:       original.Amount.Neg(),
			BalanceAfter: prev.Sub(original.Amount),
			Status:       domain.TxCleared,
			Description:  "Reversal of " + original.UUID,
			IsReversal:   true,
			ReversesID:   &originalID,
			RecordedByID: actorID,
		}
		return tx.Create(contra).Error
	})
	if err != nil {
		return nil, err
	}
	return contra, nil
}

// latestBalance reads the balance after the newest row, locking it so
// concurrent writers queue up behind each other.
func latestBalance(tx *gorm.DB) (decimal.Decimal, error) {
	var latest domain.LedgerTransaction
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Order("id DESC").
		First(&latest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return latest.BalanceAfter, nil
}

func (r *ledgerRepository) FindByID(id uint64) (*domain.LedgerTransaction, error) {
	var entry domain.LedgerTransaction
	err := r.db.First(&entry, id).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *ledgerRepository) List(filter LedgerFilter) ([]*domain.LedgerTransaction, int64, error) {
	var entries []*domain.LedgerTransaction
	var total int64

	q := r.db.Model(&domain.LedgerTransaction{})
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 || perPage > 100 {
		perPage = 50
	}

	err := q.Order("id DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&entries).Error
	return entries, total, err
}

func (r *ledgerRepository) CurrentBalance() (decimal.Decimal, error) {
	var latest domain.LedgerTransaction
	err := r.db.Order("id DESC").First(&latest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return latest.BalanceAfter, nil
}

func (r *ledgerRepository) SetStatus(id uint64, status string) error {
	result := r.db.Model(&domain.LedgerTransaction{}).
		Where("id = ? AND status = ?", id, domain.TxPending).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
