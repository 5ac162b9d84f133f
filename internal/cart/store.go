package cart

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/angelmondragon/ridegear-backend/internal/catalog"
	"github.com/angelmondragon/ridegear-backend/internal/notifications"
	"github.com/angelmondragon/ridegear-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/ridegear-backend/pkg/errors"
	"github.com/angelmondragon/ridegear-backend/pkg/logger"
	"github.com/angelmondragon/ridegear-backend/pkg/metrics"
	"github.com/angelmondragon/ridegear-backend/pkg/storage"
)

const (
	msgAdded   = "Added %s to cart"
	msgUpdated = "Updated %s quantity in cart"
	msgRemoved = "Item removed from cart"
	msgCleared = "Cart cleared"
)

const hydrateTimeout = 5 * time.Second

var errStoreClosed = pkgerrors.New(pkgerrors.CodeConflict, "cart was released, retry the request")

// Options wires a Store's collaborators. Storage defaults to memory.
type Options struct {
	Storage  storage.Storage
	Notifier notifications.Notifier
	Logger   *logger.Logger
	Metrics  *metrics.CartMetrics
	// IdleTTL is how long the Registry keeps an unused cart open. Zero means
	// DefaultIdleTTL.
	IdleTTL time.Duration
	Now     func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Storage == nil {
		o.Storage = storage.NewMemory()
	}
	if o.Notifier == nil {
		o.Notifier = notifications.NewHub(o.Logger)
	}
	if o.Logger == nil {
		o.Logger = logger.Nop()
	}
	if o.IdleTTL <= 0 {
		o.IdleTTL = DefaultIdleTTL
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Store owns one cart. Every operation runs to completion under the store lock
// and persists the full list. Subscribers are notified in transition order;
// they must not mutate the store from inside the callback.
type Store struct {
	key  string
	opts Options

	mu     sync.Mutex
	items  []Item
	closed bool

	// pubMu is taken before mu is released so snapshots go out in order.
	pubMu sync.Mutex

	subMu       sync.Mutex
	subscribers map[int]func(Snapshot)
	nextSubID   int

	lastUsed atomic.Int64
}

// Open rehydrates the cart stored under key. A missing key yields an empty cart
// and a corrupt value is logged and replaced by an empty cart. Any other read
// failure is returned as a dependency error so the stored cart is never
// overwritten by an empty one.
func Open(ctx context.Context, key string, opts Options) (*Store, error) {
	opts = opts.withDefaults()
	s := &Store{
		key:         key,
		opts:        opts,
		items:       []Item{},
		subscribers: map[int]func(Snapshot){},
	}
	items, err := s.hydrate(ctx)
	if err != nil {
		return nil, err
	}
	s.items = items
	s.touch()
	return s, nil
}

func (s *Store) hydrate(ctx context.Context) ([]Item, error) {
	ctx, cancel := context.WithTimeout(s.opts.Logger.Detach(ctx), hydrateTimeout)
	defer cancel()
	ctx = s.opts.Logger.WithField(ctx, "cart_key", s.key)

	raw, err := s.opts.Storage.GetItem(ctx, s.key)
	if err != nil {
		if stdErrors.Is(err, storage.ErrNotFound) {
			s.opts.Metrics.IncHydration("empty")
			return []Item{}, nil
		}
		s.opts.Metrics.IncHydration("error")
		s.opts.Logger.Error(ctx, "failed to load cart from storage", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	var stored []Item
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		s.opts.Metrics.IncHydration("corrupt")
		logCtx := s.opts.Logger.WithField(ctx, "error", err.Error())
		s.opts.Logger.Warn(logCtx, "failed to parse stored cart, starting empty")
		return []Item{}, nil
	}

	items := make([]Item, 0, len(stored))
	for _, item := range stored {
		if item.Quantity >= 1 {
			items = append(items, item)
		}
	}
	if dropped := len(stored) - len(items); dropped > 0 {
		logCtx := s.opts.Logger.WithField(ctx, "dropped_lines", dropped)
		s.opts.Logger.Warn(logCtx, "dropped stored cart lines without a positive quantity")
	}
	s.opts.Metrics.IncHydration("restored")
	return items, nil
}

func (s *Store) touch() {
	s.lastUsed.Store(s.opts.Now().UnixNano())
}

func (s *Store) idleSince(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, s.lastUsed.Load()))
}

func (s *Store) hasSubscribers() bool {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	return len(s.subscribers) > 0
}

// close marks the store as released by the Registry. Later mutations through a
// stale handle fail instead of racing the reopened store.
func (s *Store) close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// Key is the storage key the cart persists under.
func (s *Store) Key() string {
	return s.key
}

// AddToCart merges quantity into the (product, size) line or appends a new one.
// Size is not validated here.
func (s *Store) AddToCart(ctx context.Context, product catalog.Product, quantity int, size string) error {
	if quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	op := enums.CartOperationAdd
	message := fmt.Sprintf(msgAdded, product.Name)

	err := s.mutate(ctx, func(items []Item) []Item {
		for i := range items {
			if items[i].sameVariant(product.ID, size) {
				items[i].Quantity += quantity
				op = enums.CartOperationIncrement
				message = fmt.Sprintf(msgUpdated, product.Name)
				return items
			}
		}
		return append(items, Item{Product: product, Quantity: quantity, Size: size})
	}, &op)

	s.notify(ctx, err, message)
	return err
}

// RemoveFromCart drops every line for productID, whatever its size.
func (s *Store) RemoveFromCart(ctx context.Context, productID int) error {
	op := enums.CartOperationRemove
	err := s.mutate(ctx, func(items []Item) []Item {
		kept := items[:0]
		for _, item := range items {
			if item.ID != productID {
				kept = append(kept, item)
			}
		}
		return kept
	}, &op)
	s.notify(ctx, err, msgRemoved)
	return err
}

// RemoveVariant drops only the (productID, size) line.
func (s *Store) RemoveVariant(ctx context.Context, productID int, size string) error {
	op := enums.CartOperationRemoveVariant
	err := s.mutate(ctx, func(items []Item) []Item {
		kept := items[:0]
		for _, item := range items {
			if !item.sameVariant(productID, size) {
				kept = append(kept, item)
			}
		}
		return kept
	}, &op)
	s.notify(ctx, err, msgRemoved)
	return err
}

// UpdateQuantity sets quantity on every line for productID. Lines left at zero
// or below are dropped.
func (s *Store) UpdateQuantity(ctx context.Context, productID int, quantity int) error {
	op := enums.CartOperationUpdate
	return s.mutate(ctx, func(items []Item) []Item {
		kept := items[:0]
		for _, item := range items {
			if item.ID == productID {
				item.Quantity = quantity
			}
			if item.Quantity > 0 {
				kept = append(kept, item)
			}
		}
		return kept
	}, &op)
}

func (s *Store) ClearCart(ctx context.Context) error {
	op := enums.CartOperationClear
	err := s.mutate(ctx, func([]Item) []Item {
		return []Item{}
	}, &op)
	s.notify(ctx, err, msgCleared)
	return err
}

// Items returns a copy of the ordered lines.
func (s *Store) Items() []Item {
	s.touch()
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneItems(s.items)
}

// Total is the sum of price times quantity.
func (s *Store) Total() int64 {
	s.touch()
	s.mu.Lock()
	defer s.mu.Unlock()
	return total(s.items)
}

// Count is the sum of quantities.
func (s *Store) Count() int {
	s.touch()
	s.mu.Lock()
	defer s.mu.Unlock()
	return count(s.items)
}

func (s *Store) Snapshot() Snapshot {
	s.touch()
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshotOf(s.items)
}

// Subscribe registers fn for every later transition and returns its cancel func.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subscribers, id)
			s.subMu.Unlock()
		})
	}
}

func snapshotOf(items []Item) Snapshot {
	return Snapshot{Items: cloneItems(items), Count: count(items), Total: total(items)}
}

// mutate applies fn to a private copy of the lines, swaps it in and persists it.
// A failed write keeps the new state; the next successful write carries it.
func (s *Store) mutate(ctx context.Context, fn func([]Item) []Item, op *enums.CartOperation) error {
	s.touch()
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return errStoreClosed
	}
	next := fn(cloneItems(s.items))
	if next == nil {
		next = []Item{}
	}
	s.items = next
	snap := snapshotOf(next)
	err := s.persistLocked(ctx, next)
	s.pubMu.Lock()
	s.mu.Unlock()

	s.publish(snap)
	s.pubMu.Unlock()

	s.opts.Metrics.IncOperation(op.String())
	if err != nil {
		s.opts.Metrics.IncPersistFailure(op.String())
		logCtx := s.opts.Logger.WithFields(ctx, map[string]any{
			"cart_key": s.key,
			"op":       op.String(),
		})
		s.opts.Logger.Error(logCtx, "failed to persist cart", err)
	}
	return err
}

// notify reports a transition that was applied, even if persisting it failed.
func (s *Store) notify(ctx context.Context, err error, message string) {
	if stdErrors.Is(err, errStoreClosed) {
		return
	}
	s.opts.Notifier.Notify(ctx, notifications.Success(message))
}

func (s *Store) persistLocked(ctx context.Context, items []Item) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	if err := s.opts.Storage.SetItem(ctx, s.key, string(payload)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart")
	}
	return nil
}

func (s *Store) publish(snap Snapshot) {
	s.subMu.Lock()
	listeners := make([]func(Snapshot), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		listeners = append(listeners, fn)
	}
	s.subMu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
}
