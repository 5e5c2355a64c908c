package cart

import (
	"github.com/shopspring/decimal"
)

type ActionKind string

const (
	ActionDecrement ActionKind = "decrement"
	ActionIncrement ActionKind = "increment"
	ActionDelete    ActionKind = "delete"
)

// Action is a trigger bound to one row. ID stays valid across re-renders; Index is the
// row position at render time.
type Action struct {
	Kind  ActionKind `json:"kind"`
	Index int        `json:"index"`
	ID    string     `json:"id"`
}

type Row struct {
	Index     int      `json:"index"`
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	UnitPrice string   `json:"unit_price"`
	Quantity  int      `json:"quantity"`
	LineTotal string   `json:"line_total"`
	Actions   []Action `json:"actions"`
}

// View is the full projection of a cart: one row per line plus the aggregates.
type View struct {
	Rows       []Row  `json:"rows"`
	TotalCount int    `json:"total_count"`
	TotalPrice string `json:"total_price"`
}

// Render rebuilds the projection from scratch. Calling it twice without a mutation in
// between yields an identical View.
func (s *Store) Render() View {
	view := View{Rows: make([]Row, 0, len(s.items))}
	total := decimal.Zero
	for i, item := range s.items {
		id := item.ID()
		lineTotal := item.LineTotal()
		view.Rows = append(view.Rows, Row{
			Index:     i,
			ID:        id,
			Name:      item.Name,
			UnitPrice: s.formatMoney(item.UnitPrice),
			Quantity:  item.Quantity,
			LineTotal: s.formatMoney(lineTotal),
			Actions: []Action{
				{Kind: ActionDecrement, Index: i, ID: id},
				{Kind: ActionIncrement, Index: i, ID: id},
				{Kind: ActionDelete, Index: i, ID: id},
			},
		})
		view.TotalCount += item.Quantity
		total = total.Add(lineTotal)
	}
	view.TotalPrice = s.formatMoney(total)
	return view
}

func (s *Store) formatMoney(amount decimal.Decimal) string {
	return s.currency + amount.StringFixed(2)
}
