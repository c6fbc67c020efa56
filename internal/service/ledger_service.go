package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/craftlab-hq/ops-backend/internal/domain"
	"github.com/craftlab-hq/ops-backend/internal/repository"
	"github.com/craftlab-hq/ops-backend/internal/workflow"
	"github.com/craftlab-hq/ops-backend/pkg/cache"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrInvalidTxType     = errors.New("invalid transaction type")
	ErrAmountNotPositive = errors.New("amount must be positive")
	ErrTxNotFound        = errors.New("ledger transaction not found")
)

// RecordTransactionInput fields for a new ledger entry
type RecordTransactionInput struct {
	Type        string
	Category    string
	Amount      decimal.Decimal
	Description string
	Cleared     bool
}

// LedgerService handles the append-only finance ledger
type LedgerService struct {
	ledgerRepo repository.LedgerRepository
	cache      cache.Service
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(ledgerRepo repository.LedgerRepository, cacheSvc cache.Service) *LedgerService {
	return &LedgerService{ledgerRepo: ledgerRepo, cache: cacheSvc}
}

// Record appends a transaction. Callers always submit positive amounts; the
// sign is derived from the type here so outflows and liabilities subtract
// from the running balance.
func (s *LedgerService) Record(actor workflow.Actor, input RecordTransactionInput) (*domain.LedgerTransaction, error) {
	switch actor.Role {
	case domain.RoleFinance, domain.RoleCEO, domain.RoleAdmin:
	default:
		return nil, ErrRoleNotAllowed
	}
	if !domain.ValidTxType(input.Type) {
		return nil, ErrInvalidTxType
	}
	if !input.Amount.IsPositive() {
		return nil, ErrAmountNotPositive
	}

	amount := input.Amount
	if input.Type == domain.TxOutflow || input.Type == domain.TxLiability {
		amount = amount.Neg()
	}

	status := domain.TxPending
	if input.Cleared {
		status = domain.TxCleared
	}

	entry := &domain.LedgerTransaction{
		UUID:         uuid.NewString(),
		Type:         input.Type,
		Category:     input.Category,
		Amount:       amount,
		Status:       status,
		Description:  input.Description,
		RecordedByID: actor.UserID,
	}
	if err := s.ledgerRepo.CreateWithBalance(entry); err != nil {
		return nil, err
	}

	s.invalidateBalanceCache()
	return entry, nil
}

// Reverse reverses a transaction by contra entry. The original keeps its
// amount and gains reversed status; a negating entry referencing it is
// appended. Reversing twice fails.
func (s *LedgerService) Reverse(actor workflow.Actor, id uint64) (*domain.LedgerTransaction, error) {
	switch actor.Role {
	case domain.RoleFinance, domain.RoleCEO, domain.RoleAdmin:
	default:
		return nil, ErrRoleNotAllowed
	}

	contra, err := s.ledgerRepo.Reverse(id, actor.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrTxNotFound) {
			return nil, ErrTxNotFound
		}
		return nil, err
	}

	s.invalidateBalanceCache()
	return contra, nil
}

// MarkCleared moves a pending transaction to cleared
func (s *LedgerService) MarkCleared(actor workflow.Actor, id uint64) error {
	switch actor.Role {
	case domain.RoleFinance, domain.RoleCEO, domain.RoleAdmin:
	default:
		return ErrRoleNotAllowed
	}
	if err := s.ledgerRepo.SetStatus(id, domain.TxCleared); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTxNotFound
		}
		return err
	}
	s.invalidateBalanceCache()
	return nil
}

// List returns filtered transactions, newest first
func (s *LedgerService) List(filter repository.LedgerFilter) ([]*domain.LedgerTransaction, int64, error) {
	return s.ledgerRepo.List(filter)
}

// Balance returns the current running balance, cache first
func (s *LedgerService) Balance() (decimal.Decimal, error) {
	if s.cache != nil {
		if data, err := s.cache.GetBalance(context.Background()); err == nil {
			var cached decimal.Decimal
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	balance, err := s.ledgerRepo.CurrentBalance()
	if err != nil {
		return decimal.Zero, err
	}

	if s.cache != nil {
		if err := s.cache.SetBalance(context.Background(), balance); err != nil {
			log.Printf("[WARN] balance cache set failed: %v", err)
		}
	}
	return balance, nil
}

func (s *LedgerService) invalidateBalanceCache() {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateBalance(context.Background()); err != nil {
		log.Printf("[WARN] balance cache invalidation failed: %v", err)
	}
}
