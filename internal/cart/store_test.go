package cart

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fjod/go_checkout/internal/domain"
)

type fetcherMock struct {
	calls   atomic.Int32
	summary *domain.OrderSummary
	err     error
	release chan struct{}
}

func (f *fetcherMock) FetchSummary(ctx context.Context) (*domain.OrderSummary, error) {
	f.calls.Add(1)
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.summary.Clone(), nil
}

func headphones() *domain.OrderSummary {
	return &domain.OrderSummary{
		Items: []domain.OrderItem{
			{ID: "1", Name: "Sony Wireless Headphones", Price: decimal.RequireFromString("320.45"), Image: "/sony_headphones.jpg", Quantity: 1},
		},
		Subtotal: decimal.RequireFromString("320.45"),
		Tax:      decimal.Zero,
		Shipping: decimal.Zero,
		Total:    decimal.RequireFromString("320.45"),
		Currency: "GBP",
	}
}

func setupStore(t *testing.T, f *fetcherMock) *Store {
	t.Helper()
	return NewStore(f, nil)
}

func TestStore_StartsLoadingWithoutSummary(t *testing.T) {
	store := setupStore(t, &fetcherMock{summary: headphones()})

	assert.True(t, store.Loading())
	assert.Nil(t, store.Summary())
	assert.Equal(t, 0, store.ItemCount())
}

func TestStore_Load_Success(t *testing.T) {
	f := &fetcherMock{summary: headphones()}
	store := setupStore(t, f)

	require.NoError(t, store.Load(context.Background()))

	assert.False(t, store.Loading())
	require.NotNil(t, store.Summary())
	assert.Len(t, store.Summary().Items, 1)
	assert.Equal(t, 1, store.ItemCount())
	assert.NoError(t, store.Err())
}

func TestStore_Load_OnlyOnce(t *testing.T) {
	f := &fetcherMock{summary: headphones()}
	store := setupStore(t, f)

	require.NoError(t, store.Load(context.Background()))
	first := store.Summary()
	require.NoError(t, store.Load(context.Background()))

	assert.Equal(t, int32(1), f.calls.Load())
	assert.Same(t, first, store.Summary())
}

func TestStore_Load_ConcurrentCallersShareOneFetch(t *testing.T) {
	f := &fetcherMock{summary: headphones(), release: make(chan struct{})}
	store := setupStore(t, f)

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- store.Load(context.Background())
		}()
	}

	// Hold the first fetch open so the other callers join it.
	require.Eventually(t, func() bool { return f.calls.Load() == 1 }, time.Second, time.Millisecond)
	close(f.release)
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.NotNil(t, store.Summary())
}

func TestStore_Load_FailureLeavesSummaryAbsent(t *testing.T) {
	boom := errors.New("connection refused")
	f := &fetcherMock{err: boom}
	store := setupStore(t, f)

	err := store.Load(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.False(t, store.Loading())
	assert.Nil(t, store.Summary())
	assert.ErrorIs(t, store.Err(), boom)
	assert.Equal(t, int32(1), f.calls.Load())
}

func TestStore_Load_ExplicitRetryAfterFailure(t *testing.T) {
	f := &fetcherMock{err: errors.New("down")}
	store := setupStore(t, f)
	require.Error(t, store.Load(context.Background()))

	f.err = nil
	f.summary = headphones()
	require.NoError(t, store.Load(context.Background()))

	assert.NotNil(t, store.Summary())
	assert.NoError(t, store.Err())
	assert.Equal(t, int32(2), f.calls.Load())
}

func TestStore_UpdateQuantity_NoSummary(t *testing.T) {
	store := setupStore(t, &fetcherMock{summary: headphones()})

	err := store.UpdateQuantity("1", 1)

	assert.ErrorIs(t, err, ErrSummaryNotLoaded)
	assert.Nil(t, store.Summary())
}

func TestStore_UpdateQuantity_ReplacesSummary(t *testing.T) {
	store := setupStore(t, &fetcherMock{summary: headphones()})
	require.NoError(t, store.Load(context.Background()))
	before := store.Summary()

	require.NoError(t, store.UpdateQuantity("1", 1))
	after := store.Summary()

	assert.NotSame(t, before, after)
	assert.Equal(t, 1, before.Items[0].Quantity)
	assert.Equal(t, 2, after.Items[0].Quantity)
	assert.True(t, decimal.RequireFromString("640.90").Equal(after.Subtotal))
	assert.True(t, decimal.RequireFromString("640.90").Equal(after.Total))
	assert.Equal(t, 2, store.ItemCount())
}

func TestStore_UpdateQuantity_ClampsAtOne(t *testing.T) {
	store := setupStore(t, &fetcherMock{summary: headphones()})
	require.NoError(t, store.Load(context.Background()))

	require.NoError(t, store.UpdateQuantity("1", -100))

	s := store.Summary()
	assert.Equal(t, 1, s.Items[0].Quantity)
	assert.True(t, s.Total.Equal(s.Subtotal.Add(s.Tax).Add(s.Shipping)))
}

func TestStore_UpdateQuantity_UnknownItem(t *testing.T) {
	store := setupStore(t, &fetcherMock{summary: headphones()})
	require.NoError(t, store.Load(context.Background()))
	before := store.Summary()

	err := store.UpdateQuantity("42", 1)

	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.Same(t, before, store.Summary())
}

func TestStore_TotalsInvariantAcrossMutations(t *testing.T) {
	store := setupStore(t, &fetcherMock{summary: headphones()})
	require.NoError(t, store.Load(context.Background()))

	for _, delta := range []int{3, -1, 7, -20, 2, -2, 1} {
		require.NoError(t, store.UpdateQuantity("1", delta))
		s := store.Summary()
		assert.GreaterOrEqual(t, s.Items[0].Quantity, 1)
		assert.True(t, s.Total.Equal(s.Subtotal.Add(s.Tax).Add(s.Shipping)))
	}
}

func TestStore_SubscribersSeeEveryReplacement(t *testing.T) {
	store := setupStore(t, &fetcherMock{summary: headphones()})

	var seen []*domain.OrderSummary
	unsubscribe := store.Subscribe(func(s *domain.OrderSummary) { seen = append(seen, s) })

	require.NoError(t, store.Load(context.Background()))
	require.NoError(t, store.UpdateQuantity("1", 1))
	unsubscribe()
	require.NoError(t, store.UpdateQuantity("1", 1))

	require.Len(t, seen, 2)
	assert.NotSame(t, seen[0], seen[1])
	assert.Equal(t, 2, seen[1].Items[0].Quantity)
	assert.Equal(t, 3, store.ItemCount())
}
