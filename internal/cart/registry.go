package cart

import (
	"context"
	"strings"
	"sync"
	"time"

	pkgerrors "github.com/angelmondragon/ridegear-backend/pkg/errors"
)

const storageKeyPrefix = "cart:"

// DefaultIdleTTL is how long an untouched cart stays open before the Registry
// releases it. Released carts rehydrate from storage on the next Get.
const DefaultIdleTTL = 30 * time.Minute

const maxSweepInterval = time.Minute

// StorageKey is the key a cart's snapshot is persisted under.
func StorageKey(cartID string) string {
	return storageKeyPrefix + cartID
}

type registryEntry struct {
	mu       sync.Mutex
	store    *Store
	released bool
}

// Registry opens each cart at most once at a time and hands out its Store.
// Carts idle for longer than Options.IdleTTL are released on a later Get.
type Registry struct {
	opts Options

	mu        sync.Mutex
	stores    map[string]*registryEntry
	lastSweep time.Time
}

func NewRegistry(opts Options) *Registry {
	opts = opts.withDefaults()
	return &Registry{
		opts:      opts,
		stores:    map[string]*registryEntry{},
		lastSweep: opts.Now(),
	}
}

// Get returns the Store for cartID, rehydrating it on first use. A failed
// rehydration is not cached; the next Get tries storage again.
func (r *Registry) Get(ctx context.Context, cartID string) (*Store, error) {
	cartID = strings.TrimSpace(cartID)
	if cartID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart id is required")
	}

	for {
		entry := r.entry(cartID)

		entry.mu.Lock()
		if entry.released {
			entry.mu.Unlock()
			continue
		}
		if entry.store != nil {
			store := entry.store
			entry.mu.Unlock()
			store.touch()
			return store, nil
		}

		store, err := Open(ctx, StorageKey(cartID), r.opts)
		if err != nil {
			entry.released = true
			entry.mu.Unlock()
			r.forget(cartID, entry)
			return nil, err
		}
		entry.store = store
		entry.mu.Unlock()
		return store, nil
	}
}

func (r *Registry) entry(cartID string) *registryEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweepLocked(r.opts.Now())
	entry, ok := r.stores[cartID]
	if !ok {
		entry = &registryEntry{}
		r.stores[cartID] = entry
	}
	return entry
}

func (r *Registry) forget(cartID string, entry *registryEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stores[cartID] == entry {
		delete(r.stores, cartID)
	}
}

// sweepLocked releases idle carts without subscribers. Entries busy opening are
// skipped.
func (r *Registry) sweepLocked(now time.Time) {
	if now.Sub(r.lastSweep) < min(r.opts.IdleTTL, maxSweepInterval) {
		return
	}
	r.lastSweep = now

	for cartID, entry := range r.stores {
		if !entry.mu.TryLock() {
			continue
		}
		store := entry.store
		if store != nil && store.idleSince(now) >= r.opts.IdleTTL && !store.hasSubscribers() {
			store.close()
			entry.released = true
			delete(r.stores, cartID)
		}
		entry.mu.Unlock()
	}
}

// Len reports how many carts are open.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stores)
}

// Ping checks the backing storage.
func (r *Registry) Ping(ctx context.Context) error {
	return r.opts.Storage.Ping(ctx)
}
