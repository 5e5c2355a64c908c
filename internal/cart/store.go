package cart

import (
	"context"
	"fmt"

	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
)

// DefaultCurrencySymbol prefixes every rendered amount unless overridden.
const DefaultCurrencySymbol = "$"

// Store owns one session's cart. It is not safe for concurrent use; Service serializes
// access per session.
//
// Every successful mutation is written to the slot before it becomes visible in memory,
// so the in-memory cart and the persisted slot never disagree.
type Store struct {
	slot     Slot
	logg     *logger.Logger
	currency string

	items     []LineItem
	view      View
	discarded bool
}

type Option func(*Store)

func WithLogger(logg *logger.Logger) Option {
	return func(s *Store) {
		if logg != nil {
			s.logg = logg
		}
	}
}

func WithCurrencySymbol(symbol string) Option {
	return func(s *Store) {
		if symbol != "" {
			s.currency = symbol
		}
	}
}

func NewStore(slot Slot, opts ...Option) *Store {
	s := &Store{
		slot:     slot,
		logg:     logger.Nop(),
		currency: DefaultCurrencySymbol,
		items:    []LineItem{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.view = s.Render()
	return s
}

// Initialize loads the persisted slot. A missing or malformed payload yields an empty
// cart; only a failing backend is reported.
func (s *Store) Initialize(ctx context.Context) error {
	s.items = []LineItem{}
	s.discarded = false

	payload, found, err := s.slot.Load(ctx)
	if err != nil {
		s.view = s.Render()
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart slot")
	}
	if found {
		items, decodeErr := Decode(payload)
		if decodeErr != nil {
			s.discarded = true
			s.logg.Warn(s.logg.WithField(ctx, "decode_error", decodeErr.Error()), "cart.slot.malformed")
		} else if items != nil {
			s.items = items
		}
	}

	s.view = s.Render()
	return nil
}

// DiscardedSlot reports whether the last Initialize threw away an unreadable payload.
func (s *Store) DiscardedSlot() bool {
	return s.discarded
}

// AddItem increments an existing line or appends a new one at quantity 1. priceText must
// parse either way; the price of an existing line is kept even when priceText differs.
func (s *Store) AddItem(ctx context.Context, name, priceText string) error {
	key, err := normalizeName(name)
	if err != nil {
		return err
	}
	price, err := ParsePrice(priceText)
	if err != nil {
		return err
	}
	return s.mutate(ctx, func(items []LineItem) ([]LineItem, error) {
		if i := indexOf(items, key); i >= 0 {
			items[i].Quantity++
			return items, nil
		}
		return append(items, LineItem{Name: key, UnitPrice: price, Quantity: 1}), nil
	})
}

func (s *Store) IncrementItem(ctx context.Context, index int) error {
	return s.mutate(ctx, func(items []LineItem) ([]LineItem, error) {
		if err := checkIndex(items, index); err != nil {
			return nil, err
		}
		items[index].Quantity++
		return items, nil
	})
}

// DecrementItem lowers the quantity, removing the line instead of reaching zero.
func (s *Store) DecrementItem(ctx context.Context, index int) error {
	return s.mutate(ctx, func(items []LineItem) ([]LineItem, error) {
		if err := checkIndex(items, index); err != nil {
			return nil, err
		}
		if items[index].Quantity > 1 {
			items[index].Quantity--
			return items, nil
		}
		return removeAt(items, index), nil
	})
}

func (s *Store) DeleteItem(ctx context.Context, index int) error {
	return s.mutate(ctx, func(items []LineItem) ([]LineItem, error) {
		if err := checkIndex(items, index); err != nil {
			return nil, err
		}
		return removeAt(items, index), nil
	})
}

func (s *Store) IncrementByName(ctx context.Context, name string) error {
	i, err := s.resolve(name)
	if err != nil {
		return err
	}
	return s.IncrementItem(ctx, i)
}

func (s *Store) DecrementByName(ctx context.Context, name string) error {
	i, err := s.resolve(name)
	if err != nil {
		return err
	}
	return s.DecrementItem(ctx, i)
}

func (s *Store) DeleteByName(ctx context.Context, name string) error {
	i, err := s.resolve(name)
	if err != nil {
		return err
	}
	return s.DeleteItem(ctx, i)
}

// Clear empties the cart, e.g. once checkout completes.
func (s *Store) Clear(ctx context.Context) error {
	return s.mutate(ctx, func([]LineItem) ([]LineItem, error) {
		return []LineItem{}, nil
	})
}

// Persist overwrites the slot with the current cart.
func (s *Store) Persist(ctx context.Context) error {
	return s.save(ctx, s.items)
}

// Items returns a copy of the line items in display order.
func (s *Store) Items() []LineItem {
	return cloneItems(s.items)
}

// View returns the projection produced by the most recent render.
func (s *Store) View() View {
	return s.view
}

func (s *Store) mutate(ctx context.Context, fn func([]LineItem) ([]LineItem, error)) error {
	next, err := fn(cloneItems(s.items))
	if err != nil {
		return err
	}
	if err := s.save(ctx, next); err != nil {
		return err
	}
	s.items = next
	s.view = s.Render()
	return nil
}

func (s *Store) save(ctx context.Context, items []LineItem) error {
	payload, err := Encode(items)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	if err := s.slot.Save(ctx, payload); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart slot")
	}
	return nil
}

func (s *Store) resolve(name string) (int, error) {
	key, err := normalizeName(name)
	if err != nil {
		return -1, err
	}
	i := indexOf(s.items, key)
	if i < 0 {
		return -1, pkgerrors.New(pkgerrors.CodeNotFound, "item not in cart").WithDetails(map[string]any{"name": key})
	}
	return i, nil
}

func checkIndex(items []LineItem, index int) error {
	if index < 0 || index >= len(items) {
		return pkgerrors.New(pkgerrors.CodeInvalidIndex, fmt.Sprintf("no cart item at position %d", index)).
			WithDetails(map[string]any{"index": index, "size": len(items)})
	}
	return nil
}

func removeAt(items []LineItem, index int) []LineItem {
	return append(items[:index], items[index+1:]...)
}
