package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/investhub/backend/internal/domain"
)

// Store keeps all entities in-memory. Useful for tests or ephemeral runs
// where persistence is not required. Atomically serializes all writes under
// one mutex and applies them copy-on-commit, so a failed unit of work leaves
// the prior state intact.
type Store struct {
	mu           sync.RWMutex
	users        map[uuid.UUID]domain.User
	usersByName  map[string]uuid.UUID
	assets       map[string]domain.Asset
	holdings     map[uuid.UUID]domain.Holding
	transactions []domain.Transaction
	watchlist    map[uuid.UUID]domain.WatchlistEntry
	inTx         bool
}

var _ domain.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		users:       make(map[uuid.UUID]domain.User),
		usersByName: make(map[string]uuid.UUID),
		assets:      make(map[string]domain.Asset),
		holdings:    make(map[uuid.UUID]domain.Holding),
		watchlist:   make(map[uuid.UUID]domain.WatchlistEntry),
	}
}

func (s *Store) Users() domain.UserRepository               { return &userRepo{s} }
func (s *Store) Assets() domain.AssetRepository             { return &assetRepo{s} }
func (s *Store) Holdings() domain.HoldingRepository         { return &holdingRepo{s} }
func (s *Store) Transactions() domain.TransactionRepository { return &transactionRepo{s} }
func (s *Store) Watchlist() domain.WatchlistRepository      { return &watchlistRepo{s} }

// Atomically runs fn against a scratch copy of the store and adopts the copy
// only if fn succeeds. The store-wide lock is held for the duration, which
// over-serializes compared to the per-user contract but never violates it.
func (s *Store) Atomically(ctx context.Context, userID uuid.UUID, fn func(domain.Store) error) error {
	if s.inTx {
		return fn(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.cloneLocked()
	if err := fn(tx); err != nil {
		return err
	}
	s.adoptLocked(tx)
	return nil
}

func (s *Store) cloneLocked() *Store {
	tx := &Store{
		users:        make(map[uuid.UUID]domain.User, len(s.users)),
		usersByName:  make(map[string]uuid.UUID, len(s.usersByName)),
		assets:       make(map[string]domain.Asset, len(s.assets)),
		holdings:     make(map[uuid.UUID]domain.Holding, len(s.holdings)),
		transactions: make([]domain.Transaction, len(s.transactions)),
		watchlist:    make(map[uuid.UUID]domain.WatchlistEntry, len(s.watchlist)),
		inTx:         true,
	}
	for k, v := range s.users {
		tx.users[k] = v
	}
	for k, v := range s.usersByName {
		tx.usersByName[k] = v
	}
	for k, v := range s.assets {
		tx.assets[k] = v
	}
	for k, v := range s.holdings {
		tx.holdings[k] = v
	}
	copy(tx.transactions, s.transactions)
	for k, v := range s.watchlist {
		tx.watchlist[k] = v
	}
	return tx
}

func (s *Store) adoptLocked(tx *Store) {
	s.users = tx.users
	s.usersByName = tx.usersByName
	s.assets = tx.assets
	s.holdings = tx.holdings
	s.transactions = tx.transactions
	s.watchlist = tx.watchlist
}

// --- users ---

type userRepo struct{ s *Store }

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.usersByName[user.Username]; ok {
		return &domain.AlreadyExistsError{Resource: "User", Identifier: user.Username}
	}
	r.s.users[user.ID] = *user
	r.s.usersByName[user.Username] = user.ID
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "User", Identifier: id.String()}
	}
	return &u, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	id, ok := r.s.usersByName[username]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "User", Identifier: username}
	}
	u := r.s.users[id]
	return &u, nil
}

func (r *userRepo) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return &domain.NotFoundError{Resource: "User", Identifier: id.String()}
	}
	u.USDBalance = balance
	r.s.users[id] = u
	return nil
}

// --- assets ---

type assetRepo struct{ s *Store }

func (r *assetRepo) Create(ctx context.Context, asset *domain.Asset) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.assets[asset.Symbol]; ok {
		return &domain.AlreadyExistsError{Resource: "Asset", Identifier: asset.Symbol}
	}
	r.s.assets[asset.Symbol] = *asset
	return nil
}

func (r *assetRepo) GetBySymbol(ctx context.Context, symbol string) (*domain.Asset, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.assets[symbol]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "Asset", Identifier: symbol}
	}
	return &a, nil
}

func (r *assetRepo) List(ctx context.Context) ([]*domain.Asset, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*domain.Asset, 0, len(r.s.assets))
	for _, a := range r.s.assets {
		asset := a
		out = append(out, &asset)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out, nil
}

func (r *assetRepo) Search(ctx context.Context, query string) ([]*domain.Asset, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	q := strings.ToUpper(query)
	out := make([]*domain.Asset, 0)
	for _, a := range r.s.assets {
		if strings.Contains(a.Symbol, q) || strings.Contains(strings.ToUpper(a.Name), q) {
			asset := a
			out = append(out, &asset)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out, nil
}

// --- holdings ---

type holdingRepo struct{ s *Store }

func (r *holdingRepo) GetByUserAndSymbol(ctx context.Context, userID uuid.UUID, symbol string) (*domain.Holding, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, h := range r.s.holdings {
		if h.UserID == userID && h.AssetSymbol == symbol {
			holding := h
			return &holding, nil
		}
	}
	return nil, &domain.NotFoundError{Resource: "Holding", Identifier: symbol}
}

func (r *holdingRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Holding, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*domain.Holding, 0)
	for _, h := range r.s.holdings {
		if h.UserID == userID {
			holding := h
			out = append(out, &holding)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AssetSymbol < out[j].AssetSymbol })
	return out, nil
}

func (r *holdingRepo) Upsert(ctx context.Context, holding *domain.Holding) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.holdings[holding.ID] = *holding
	return nil
}

func (r *holdingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.holdings, id)
	return nil
}

func (r *holdingRepo) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, h := range r.s.holdings {
		if h.UserID == userID {
			delete(r.s.holdings, id)
		}
	}
	return nil
}

// --- transactions ---

type transactionRepo struct{ s *Store }

func (r *transactionRepo) Create(ctx context.Context, tx *domain.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.transactions = append(r.s.transactions, *tx)
	return nil
}

func (r *transactionRepo) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, tx := range r.s.transactions {
		if tx.ID == id {
			t := tx
			return &t, nil
		}
	}
	return nil, &domain.NotFoundError{Resource: "Transaction", Identifier: id}
}

func (r *transactionRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*domain.Transaction, 0)
	for i := len(r.s.transactions) - 1; i >= 0; i-- {
		if r.s.transactions[i].UserID == userID {
			tx := r.s.transactions[i]
			out = append(out, &tx)
		}
	}
	return out, nil
}

func (r *transactionRepo) ListByUserAndType(ctx context.Context, userID uuid.UUID, txType domain.TransactionType) ([]*domain.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*domain.Transaction, 0)
	for i := len(r.s.transactions) - 1; i >= 0; i-- {
		if r.s.transactions[i].UserID == userID && r.s.transactions[i].Type == txType {
			tx := r.s.transactions[i]
			out = append(out, &tx)
		}
	}
	return out, nil
}

func (r *transactionRepo) TotalAmountByUserAndType(ctx context.Context, userID uuid.UUID, txType domain.TransactionType) (decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	total := decimal.Zero
	for _, tx := range r.s.transactions {
		if tx.UserID == userID && tx.Type == txType {
			total = total.Add(tx.TotalPrice())
		}
	}
	return total, nil
}

func (r *transactionRepo) CountByUserAndSymbol(ctx context.Context, userID uuid.UUID, symbol string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var count int64
	for _, tx := range r.s.transactions {
		if tx.UserID == userID && tx.AssetSymbol == symbol {
			count++
		}
	}
	return count, nil
}

func (r *transactionRepo) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	kept := r.s.transactions[:0]
	for _, tx := range r.s.transactions {
		if tx.UserID != userID {
			kept = append(kept, tx)
		}
	}
	r.s.transactions = kept
	return nil
}

// --- watchlist ---

type watchlistRepo struct{ s *Store }

func (r *watchlistRepo) Add(ctx context.Context, entry *domain.WatchlistEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.watchlist[entry.ID] = *entry
	return nil
}

func (r *watchlistRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.WatchlistEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*domain.WatchlistEntry, 0)
	for _, e := range r.s.watchlist {
		if e.UserID == userID {
			entry := e
			out = append(out, &entry)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AssetSymbol < out[j].AssetSymbol })
	return out, nil
}

func (r *watchlistRepo) Remove(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.watchlist, id)
	return nil
}

func (r *watchlistRepo) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, e := range r.s.watchlist {
		if e.UserID == userID {
			delete(r.s.watchlist, id)
		}
	}
	return nil
}
