package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/investhub/backend/internal/domain"
)

func seedUser(t *testing.T, s *Store, username string) *domain.User {
	t.Helper()
	user := domain.NewUser(username, "hash")
	require.NoError(t, s.Users().Create(context.Background(), user))
	return user
}

func seedAsset(t *testing.T, s *Store, symbol, name string) *domain.Asset {
	t.Helper()
	asset := &domain.Asset{ID: uuid.New(), Symbol: symbol, Name: name}
	require.NoError(t, s.Assets().Create(context.Background(), asset))
	return asset
}

func TestAtomicallyCommitsOnSuccess(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	user := seedUser(t, s, "alice")

	err := s.Atomically(ctx, user.ID, func(st domain.Store) error {
		return st.Users().UpdateBalance(ctx, user.ID, decimal.RequireFromString("100.00"))
	})
	require.NoError(t, err)

	got, err := s.Users().GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, got.USDBalance.Equal(decimal.RequireFromString("100.00")))
}

func TestAtomicallyRollsBackOnError(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	user := seedUser(t, s, "alice")
	asset := seedAsset(t, s, "BTCUSDT", "Bitcoin")

	boom := errors.New("boom")
	err := s.Atomically(ctx, user.ID, func(st domain.Store) error {
		if err := st.Users().UpdateBalance(ctx, user.ID, decimal.Zero); err != nil {
			return err
		}
		holding := domain.NewHolding(user.ID, asset)
		holding.ApplyBuy(decimal.NewFromInt(1), decimal.NewFromInt(100))
		if err := st.Holdings().Upsert(ctx, holding); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	// Neither write is visible.
	got, err := s.Users().GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, got.USDBalance.Equal(domain.StartingBalance))

	holdings, err := s.Holdings().ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, holdings)
}

func TestAtomicallySerializesConcurrentWrites(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	user := seedUser(t, s, "alice")

	// 50 concurrent debits of 100 each. If two units of work could both
	// read the same pre-debit balance, the final balance would be too high.
	const workers = 50
	debit := decimal.NewFromInt(100)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Atomically(ctx, user.ID, func(st domain.Store) error {
				u, err := st.Users().GetByID(ctx, user.ID)
				if err != nil {
					return err
				}
				return st.Users().UpdateBalance(ctx, user.ID, u.USDBalance.Sub(debit))
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := s.Users().GetByID(ctx, user.ID)
	require.NoError(t, err)
	want := domain.StartingBalance.Sub(debit.Mul(decimal.NewFromInt(workers)))
	assert.True(t, got.USDBalance.Equal(want), "got %s, want %s", got.USDBalance, want)
}

func TestUsernameUniqueness(t *testing.T) {
	s := NewStore()
	seedUser(t, s, "alice")

	err := s.Users().Create(context.Background(), domain.NewUser("alice", "other"))
	var exists *domain.AlreadyExistsError
	require.ErrorAs(t, err, &exists)
}

func TestTransactionsListNewestFirst(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	user := seedUser(t, s, "alice")
	asset := seedAsset(t, s, "BTCUSDT", "Bitcoin")

	first := domain.NewTransaction(user.ID, asset, domain.TransactionTypeBuy, decimal.NewFromInt(1), decimal.NewFromInt(100))
	second := domain.NewTransaction(user.ID, asset, domain.TransactionTypeSell, decimal.NewFromInt(1), decimal.NewFromInt(200))
	require.NoError(t, s.Transactions().Create(ctx, first))
	require.NoError(t, s.Transactions().Create(ctx, second))

	txs, err := s.Transactions().ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, second.ID, txs[0].ID)
	assert.Equal(t, first.ID, txs[1].ID)
}

func TestDeleteAllForUserLeavesOthersIntact(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	alice := seedUser(t, s, "alice")
	bob := seedUser(t, s, "bob")
	asset := seedAsset(t, s, "BTCUSDT", "Bitcoin")

	for _, u := range []*domain.User{alice, bob} {
		holding := domain.NewHolding(u.ID, asset)
		holding.ApplyBuy(decimal.NewFromInt(1), decimal.NewFromInt(100))
		require.NoError(t, s.Holdings().Upsert(ctx, holding))
		tx := domain.NewTransaction(u.ID, asset, domain.TransactionTypeBuy, decimal.NewFromInt(1), decimal.NewFromInt(100))
		require.NoError(t, s.Transactions().Create(ctx, tx))
	}

	require.NoError(t, s.Holdings().DeleteAllForUser(ctx, alice.ID))
	require.NoError(t, s.Transactions().DeleteAllForUser(ctx, alice.ID))

	holdings, err := s.Holdings().ListByUser(ctx, bob.ID)
	require.NoError(t, err)
	assert.Len(t, holdings, 1)

	txs, err := s.Transactions().ListByUser(ctx, bob.ID)
	require.NoError(t, err)
	assert.Len(t, txs, 1)
}
