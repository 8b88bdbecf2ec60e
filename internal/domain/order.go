package domain

import "github.com/shopspring/decimal"

func init() {
	// The checkout API speaks plain JSON numbers for money.
	decimal.MarshalJSONWithoutQuotes = true
}

// OrderItem is a single line of the order summary.
type OrderItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	Quantity int             `json:"quantity"`
}

// LineTotal is price × quantity.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// OrderSummary holds the cart's line items and totals. Tax and shipping are
// supplied by the API and never recomputed locally.
type OrderSummary struct {
	Items    []OrderItem     `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
	Currency string          `json:"currency"`
}

// Clone returns a deep copy of s.
func (s *OrderSummary) Clone() *OrderSummary {
	if s == nil {
		return nil
	}
	out := *s
	out.Items = append([]OrderItem(nil), s.Items...)
	return &out
}

// Recalculate sets Subtotal to the sum of line totals and Total to
// Subtotal + Tax + Shipping.
func (s *OrderSummary) Recalculate() {
	subtotal := decimal.Zero
	for _, item := range s.Items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	s.Subtotal = subtotal
	s.Total = subtotal.Add(s.Tax).Add(s.Shipping)
}

// ItemCount is the total number of units across all lines.
func (s *OrderSummary) ItemCount() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, item := range s.Items {
		n += item.Quantity
	}
	return n
}

// Item looks up a line by id.
func (s *OrderSummary) Item(id string) (OrderItem, bool) {
	for _, item := range s.Items {
		if item.ID == id {
			return item, true
		}
	}
	return OrderItem{}, false
}

// WithQuantityDelta returns a new summary with delta applied to the quantity of
// item id. Quantities are clamped at 1 and totals are recomputed using the
// existing tax and shipping. The receiver is left untouched.
func (s *OrderSummary) WithQuantityDelta(id string, delta int) (*OrderSummary, error) {
	out := s.Clone()
	found := false
	for i := range out.Items {
		if out.Items[i].ID == id {
			out.Items[i].Quantity = max(1, out.Items[i].Quantity+delta)
			found = true
		}
	}
	if !found {
		return nil, ErrItemNotFound
	}
	out.Recalculate()
	return out, nil
}
