package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/craftlab-hq/ops-backend/internal/domain"
	"github.com/craftlab-hq/ops-backend/internal/repository"
	"github.com/craftlab-hq/ops-backend/pkg/cache"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type mockContentRepo struct{ mock.Mock }

func (m *mockContentRepo) Create(item *domain.ContentItem) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *mockContentRepo) FindByID(id uint64) (*domain.ContentItem, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContentItem), args.Error(1)
}

func (m *mockContentRepo) FindByUUID(uuid string) (*domain.ContentItem, error) {
	args := m.Called(uuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContentItem), args.Error(1)
}

func (m *mockContentRepo) List(filter repository.ContentFilter) ([]*domain.ContentItem, int64, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*domain.ContentItem), args.Get(1).(int64), args.Error(2)
}

func (m *mockContentRepo) UpdateDetails(id uint64, updates map[string]interface{}) error {
	args := m.Called(id, updates)
	return args.Error(0)
}

func (m *mockContentRepo) UpdateStatusWithLock(id uint64, newStatus string, lockVersion uint) error {
	args := m.Called(id, newStatus, lockVersion)
	return args.Error(0)
}

func (m *mockContentRepo) SetArchived(id uint64, archived bool) error {
	args := m.Called(id, archived)
	return args.Error(0)
}

func (m *mockContentRepo) DeleteCascade(id uint64) error {
	args := m.Called(id)
	return args.Error(0)
}

type mockChecklistRepo struct{ mock.Mock }

func (m *mockChecklistRepo) Upsert(checklist *domain.Checklist) error {
	args := m.Called(checklist)
	return args.Error(0)
}

func (m *mockChecklistRepo) FindByItem(itemID uint64) (*domain.Checklist, error) {
	args := m.Called(itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Checklist), args.Error(1)
}

type mockDelegationRepo struct{ mock.Mock }

func (m *mockDelegationRepo) Set(delegation *domain.Delegation) error {
	args := m.Called(delegation)
	return args.Error(0)
}

func (m *mockDelegationRepo) Revoke(vertical string) error {
	args := m.Called(vertical)
	return args.Error(0)
}

func (m *mockDelegationRepo) FindActiveByVertical(vertical string) (*domain.Delegation, error) {
	args := m.Called(vertical)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Delegation), args.Error(1)
}

func (m *mockDelegationRepo) ListActive() ([]*domain.Delegation, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Delegation), args.Error(1)
}

func (m *mockDelegationRepo) ListHistory(vertical string) ([]*domain.Delegation, error) {
	args := m.Called(vertical)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Delegation), args.Error(1)
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(user *domain.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *mockUserRepo) FindByID(id uint64) (*domain.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) FindByUUID(uuid string) (*domain.User, error) {
	args := m.Called(uuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) FindByEmail(email string) (*domain.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) ListActiveByRole(role string) ([]*domain.User, error) {
	args := m.Called(role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

type mockApprovalRepo struct{ mock.Mock }

func (m *mockApprovalRepo) AppendWithStatus(approval *domain.Approval, newStatus string, lockVersion uint) error {
	args := m.Called(approval, newStatus, lockVersion)
	return args.Error(0)
}

func (m *mockApprovalRepo) ListByItem(itemID uint64) ([]*domain.Approval, error) {
	args := m.Called(itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Approval), args.Error(1)
}

func (m *mockApprovalRepo) LatestByItemAndLevel(itemID uint64, level string) (*domain.Approval, error) {
	args := m.Called(itemID, level)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Approval), args.Error(1)
}

type mockVersionRepo struct{ mock.Mock }

func (m *mockVersionRepo) CreateNext(version *domain.ContentVersion) error {
	args := m.Called(version)
	return args.Error(0)
}

func (m *mockVersionRepo) FindByID(id uint64) (*domain.ContentVersion, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContentVersion), args.Error(1)
}

func (m *mockVersionRepo) ListByItem(itemID uint64) ([]*domain.ContentVersion, error) {
	args := m.Called(itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ContentVersion), args.Error(1)
}

func (m *mockVersionRepo) SubmitFeedback(id uint64, status string, feedback *string) error {
	args := m.Called(id, status, feedback)
	return args.Error(0)
}

type mockCommentRepo struct{ mock.Mock }

func (m *mockCommentRepo) Create(comment *domain.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *mockCommentRepo) ListByItem(itemID uint64) ([]*domain.Comment, error) {
	args := m.Called(itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Comment), args.Error(1)
}

type mockModuleRepo struct{ mock.Mock }

func (m *mockModuleRepo) Create(module *domain.ContentModule) error {
	args := m.Called(module)
	return args.Error(0)
}

func (m *mockModuleRepo) FindByID(id uint64) (*domain.ContentModule, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContentModule), args.Error(1)
}

func (m *mockModuleRepo) List(includeArchived bool) ([]*domain.ContentModule, error) {
	args := m.Called(includeArchived)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ContentModule), args.Error(1)
}

func (m *mockModuleRepo) SetArchived(id uint64, archived bool) error {
	args := m.Called(id, archived)
	return args.Error(0)
}

func (m *mockModuleRepo) DeleteCascade(id uint64) error {
	args := m.Called(id)
	return args.Error(0)
}

type mockLedgerRepo struct{ mock.Mock }

func (m *mockLedgerRepo) CreateWithBalance(tx *domain.LedgerTransaction) error {
	args := m.Called(tx)
	return args.Error(0)
}

func (m *mockLedgerRepo) Reverse(id uint64, actorID uint64) (*domain.LedgerTransaction, error) {
	args := m.Called(id, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerTransaction), args.Error(1)
}

func (m *mockLedgerRepo) FindByID(id uint64) (*domain.LedgerTransaction, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerTransaction), args.Error(1)
}

func (m *mockLedgerRepo) List(filter repository.LedgerFilter) ([]*domain.LedgerTransaction, int64, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*domain.LedgerTransaction), args.Get(1).(int64), args.Error(2)
}

func (m *mockLedgerRepo) CurrentBalance() (decimal.Decimal, error) {
	args := m.Called()
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockLedgerRepo) SetStatus(id uint64, status string) error {
	args := m.Called(id, status)
	return args.Error(0)
}

var errCacheMiss = errors.New("cache miss")

// fakeCache is an in-memory cache.Service for exercising read-through paths
type fakeCache struct {
	store map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string][]byte)}
}

func (f *fakeCache) read(key string) ([]byte, error) {
	data, ok := f.store[key]
	if !ok {
		return nil, errCacheMiss
	}
	return data, nil
}

func (f *fakeCache) write(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.store[key] = data
	return nil
}

func (f *fakeCache) dropPrefix(prefix string) {
	for key := range f.store {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(f.store, key)
		}
	}
}

func (f *fakeCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := f.read(key)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return f.write(key, value)
}

func (f *fakeCache) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.store, key)
	}
	return nil
}

func (f *fakeCache) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := f.store[key]
	return ok, nil
}

func (f *fakeCache) GetContents(ctx context.Context, filterKey string) ([]byte, error) {
	return f.read(cache.PrefixContents + filterKey)
}

func (f *fakeCache) SetContents(ctx context.Context, filterKey string, data interface{}) error {
	return f.write(cache.PrefixContents+filterKey, data)
}

func (f *fakeCache) InvalidateContents(ctx context.Context) error {
	f.dropPrefix(cache.PrefixContents)
	return nil
}

func (f *fakeCache) GetContent(ctx context.Context, itemID string) ([]byte, error) {
	return f.read(cache.PrefixContent + itemID)
}

func (f *fakeCache) SetContent(ctx context.Context, itemID string, data interface{}) error {
	return f.write(cache.PrefixContent+itemID, data)
}

func (f *fakeCache) InvalidateContent(ctx context.Context, itemID string) error {
	delete(f.store, cache.PrefixContent+itemID)
	return nil
}

func (f *fakeCache) GetModules(ctx context.Context) ([]byte, error) {
	return f.read(cache.PrefixModules + "all")
}

func (f *fakeCache) SetModules(ctx context.Context, data interface{}) error {
	return f.write(cache.PrefixModules+"all", data)
}

func (f *fakeCache) InvalidateModules(ctx context.Context) error {
	f.dropPrefix(cache.PrefixModules)
	return nil
}

func (f *fakeCache) GetDelegations(ctx context.Context) ([]byte, error) {
	return f.read(cache.PrefixDelegations + "active")
}

func (f *fakeCache) SetDelegations(ctx context.Context, data interface{}) error {
	return f.write(cache.PrefixDelegations+"active", data)
}

func (f *fakeCache) InvalidateDelegations(ctx context.Context) error {
	f.dropPrefix(cache.PrefixDelegations)
	return nil
}

func (f *fakeCache) GetBalance(ctx context.Context) ([]byte, error) {
	return f.read(cache.PrefixBalance)
}

func (f *fakeCache) SetBalance(ctx context.Context, data interface{}) error {
	return f.write(cache.PrefixBalance, data)
}

func (f *fakeCache) InvalidateBalance(ctx context.Context) error {
	delete(f.store, cache.PrefixBalance)
	return nil
}

func (f *fakeCache) IsAvailable() bool { return true }

func (f *fakeCache) Ping(ctx context.Context) error { return nil }
