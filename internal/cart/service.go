package cart

import (
	"context"
	"fmt"
	"sync"
	"time"

	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
)

// Service exposes cart operations keyed by browsing session. Every call returns the
// view rendered after the operation, or the unchanged view alongside a rejection.
type Service interface {
	View(ctx context.Context, sessionID string) (View, error)
	Add(ctx context.Context, sessionID, name, priceText string) (View, error)
	Increment(ctx context.Context, sessionID, itemID string) (View, error)
	Decrement(ctx context.Context, sessionID, itemID string) (View, error)
	Delete(ctx context.Context, sessionID, itemID string) (View, error)
	ApplyAt(ctx context.Context, sessionID string, kind ActionKind, index int) (View, error)
	Clear(ctx context.Context, sessionID string) (View, error)
}

type ServiceOption func(*service)

func WithServiceCurrency(symbol string) ServiceOption {
	return func(s *service) {
		if symbol != "" {
			s.currency = symbol
		}
	}
}

func WithMetrics(m *metrics.CartMetrics) ServiceOption {
	return func(s *service) {
		s.metrics = m
	}
}

type service struct {
	slots    SlotFactory
	logg     *logger.Logger
	metrics  *metrics.CartMetrics
	currency string
	locks    *sessionLocks
}

// NewService wires the slot backend into a session-aware cart service.
func NewService(slots SlotFactory, logg *logger.Logger, opts ...ServiceOption) (Service, error) {
	if slots == nil {
		return nil, fmt.Errorf("slot factory required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	s := &service{
		slots:    slots,
		logg:     logg,
		currency: DefaultCurrencySymbol,
		locks:    newSessionLocks(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *service) View(ctx context.Context, sessionID string) (View, error) {
	return s.run(ctx, "view", sessionID, nil)
}

func (s *service) Add(ctx context.Context, sessionID, name, priceText string) (View, error) {
	return s.run(ctx, "add", sessionID, func(store *Store) error {
		return store.AddItem(ctx, name, priceText)
	})
}

func (s *service) Increment(ctx context.Context, sessionID, itemID string) (View, error) {
	return s.runByID(ctx, "increment", sessionID, itemID, (*Store).IncrementByName)
}

func (s *service) Decrement(ctx context.Context, sessionID, itemID string) (View, error) {
	return s.runByID(ctx, "decrement", sessionID, itemID, (*Store).DecrementByName)
}

func (s *service) Delete(ctx context.Context, sessionID, itemID string) (View, error) {
	return s.runByID(ctx, "delete", sessionID, itemID, (*Store).DeleteByName)
}

// ApplyAt runs a positional trigger. Positions are only stable until the next mutation.
func (s *service) ApplyAt(ctx context.Context, sessionID string, kind ActionKind, index int) (View, error) {
	var apply func(*Store, context.Context, int) error
	switch kind {
	case ActionIncrement:
		apply = (*Store).IncrementItem
	case ActionDecrement:
		apply = (*Store).DecrementItem
	case ActionDelete:
		apply = (*Store).DeleteItem
	default:
		return View{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown cart action").
			WithDetails(map[string]any{"action": string(kind)})
	}
	return s.run(ctx, string(kind)+"_at", sessionID, func(store *Store) error {
		return apply(store, ctx, index)
	})
}

func (s *service) Clear(ctx context.Context, sessionID string) (View, error) {
	return s.run(ctx, "clear", sessionID, func(store *Store) error {
		return store.Clear(ctx)
	})
}

func (s *service) runByID(ctx context.Context, op, sessionID, itemID string, apply func(*Store, context.Context, string) error) (View, error) {
	name, err := NameFromID(itemID)
	if err != nil {
		s.metrics.Observe(op, metrics.OutcomeRejected, 0)
		return View{}, err
	}
	return s.run(ctx, op, sessionID, func(store *Store) error {
		return apply(store, ctx, name)
	})
}

func (s *service) run(ctx context.Context, op, sessionID string, mutate func(*Store) error) (View, error) {
	if sessionID == "" {
		return View{}, pkgerrors.New(pkgerrors.CodeValidation, "session id required")
	}
	started := time.Now()
	ctx = s.logg.WithFields(ctx, map[string]any{"session_id": sessionID, "cart_op": op})

	unlock := s.locks.lock(sessionID)
	defer unlock()

	store := NewStore(s.slots.Slot(sessionID), WithLogger(s.logg), WithCurrencySymbol(s.currency))
	if err := store.Initialize(ctx); err != nil {
		s.logg.Error(ctx, "cart.initialize_failed", err)
		s.metrics.Observe(op, metrics.OutcomeError, time.Since(started))
		return View{}, err
	}
	if store.DiscardedSlot() {
		s.metrics.IncMalformedSlot()
		if err := store.Persist(ctx); err != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "cart.slot.repair_failed")
		}
	}

	if mutate != nil {
		if err := mutate(store); err != nil {
			outcome := metrics.OutcomeRejected
			if pkgerrors.MetadataFor(codeOf(err)).Retryable {
				outcome = metrics.OutcomeError
				s.logg.Error(ctx, "cart.mutation_failed", err)
			}
			s.metrics.Observe(op, outcome, time.Since(started))
			return store.View(), err
		}
	}

	s.metrics.Observe(op, metrics.OutcomeOK, time.Since(started))
	return store.View(), nil
}

func codeOf(err error) pkgerrors.Code {
	if typed := pkgerrors.As(err); typed != nil {
		return typed.Code()
	}
	return pkgerrors.CodeInternal
}

// sessionLocks hands out one mutex per session, dropping it once no caller holds it.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[string]*sessionLock)}
}

func (l *sessionLocks) lock(key string) func() {
	l.mu.Lock()
	entry, ok := l.locks[key]
	if !ok {
		entry = &sessionLock{}
		l.locks[key] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}
}

func (l *sessionLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
