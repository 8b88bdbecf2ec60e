package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSummary() *OrderSummary {
	return &OrderSummary{
		Items: []OrderItem{
			{ID: "1", Name: "Sony Wireless Headphones", Price: decimal.RequireFromString("320.45"), Quantity: 1},
			{ID: "2", Name: "Cable", Price: decimal.RequireFromString("9.99"), Quantity: 2},
		},
		Subtotal: decimal.RequireFromString("340.43"),
		Tax:      decimal.RequireFromString("1.50"),
		Shipping: decimal.RequireFromString("5.00"),
		Total:    decimal.RequireFromString("346.93"),
		Currency: "GBP",
	}
}

func assertTotalsHold(t *testing.T, s *OrderSummary) {
	t.Helper()
	subtotal := decimal.Zero
	for _, item := range s.Items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	assert.True(t, subtotal.Equal(s.Subtotal), "subtotal %s != %s", s.Subtotal, subtotal)
	assert.True(t, s.Total.Equal(s.Subtotal.Add(s.Tax).Add(s.Shipping)), "total %s broken", s.Total)
}

func TestWithQuantityDelta_RecomputesTotals(t *testing.T) {
	s := sampleSummary()

	out, err := s.WithQuantityDelta("1", 2)
	require.NoError(t, err)

	item, ok := out.Item("1")
	require.True(t, ok)
	assert.Equal(t, 3, item.Quantity)
	assert.True(t, decimal.RequireFromString("981.33").Equal(out.Subtotal))
	assert.True(t, decimal.RequireFromString("987.83").Equal(out.Total))
	assert.True(t, s.Tax.Equal(out.Tax))
	assert.True(t, s.Shipping.Equal(out.Shipping))
	assertTotalsHold(t, out)
}

func TestWithQuantityDelta_DoesNotMutateReceiver(t *testing.T) {
	s := sampleSummary()

	out, err := s.WithQuantityDelta("2", 5)
	require.NoError(t, err)

	assert.NotSame(t, s, out)
	assert.Equal(t, 2, s.Items[1].Quantity)
	assert.Equal(t, 7, out.Items[1].Quantity)
	assert.True(t, decimal.RequireFromString("346.93").Equal(s.Total))
}

func TestWithQuantityDelta_ClampsAtOne(t *testing.T) {
	s := sampleSummary()

	out, err := s.WithQuantityDelta("1", -100)
	require.NoError(t, err)

	item, _ := out.Item("1")
	assert.Equal(t, 1, item.Quantity)
	assertTotalsHold(t, out)
}

func TestWithQuantityDelta_InvariantAcrossSequence(t *testing.T) {
	s := sampleSummary()
	deltas := []struct {
		id    string
		delta int
	}{
		{"1", 1}, {"2", -1}, {"2", -1}, {"1", 10}, {"1", -3}, {"2", 4}, {"1", -50},
	}

	for _, d := range deltas {
		next, err := s.WithQuantityDelta(d.id, d.delta)
		require.NoError(t, err)
		for _, item := range next.Items {
			assert.GreaterOrEqual(t, item.Quantity, 1)
		}
		assertTotalsHold(t, next)
		s = next
	}
}

func TestWithQuantityDelta_UnknownItem(t *testing.T) {
	_, err := sampleSummary().WithQuantityDelta("nope", 1)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestOrderSummary_ItemCount(t *testing.T) {
	assert.Equal(t, 3, sampleSummary().ItemCount())

	var empty *OrderSummary
	assert.Equal(t, 0, empty.ItemCount())
}

func TestOrderSummary_JSONUsesNumbers(t *testing.T) {
	raw, err := json.Marshal(OrderItem{ID: "1", Price: decimal.RequireFromString("320.45"), Quantity: 1})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"price":320.45`)

	var item OrderItem
	require.NoError(t, json.Unmarshal([]byte(`{"id":"1","price":320.45,"quantity":1}`), &item))
	assert.True(t, decimal.RequireFromString("320.45").Equal(item.Price))
}
