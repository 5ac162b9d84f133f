package cart

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	pkgerrors "github.com/angelmondragon/ridegear-backend/pkg/errors"
	"github.com/angelmondragon/ridegear-backend/pkg/storage"
)

func TestRegistryOpensEachCartOnce(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	_ = mem.SetItem(ctx, StorageKey("abc"), `[{"id":3,"name":"N-Gage Performance Air Filter","price":1450,"quantity":2}]`)

	reg := NewRegistry(Options{Storage: mem})
	first, err := reg.Get(ctx, "abc")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if first.Count() != 2 || first.Key() != "cart:abc" {
		t.Fatalf("unexpected hydrated store key=%s count=%d", first.Key(), first.Count())
	}

	second, _ := reg.Get(ctx, "abc")
	if first != second {
		t.Fatal("expected the same store for the same cart id")
	}
	other, _ := reg.Get(ctx, "xyz")
	if other == first || other.Count() != 0 {
		t.Fatal("expected a separate empty store for another cart")
	}
	if reg.Len() != 2 {
		t.Fatalf("expected 2 open carts got %d", reg.Len())
	}
	if err := reg.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestRegistryRequiresCartID(t *testing.T) {
	reg := NewRegistry(Options{})
	if _, err := reg.Get(context.Background(), "  "); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestRegistryRetriesAfterFailedLoad(t *testing.T) {
	ctx := context.Background()
	backend := &flakyStorage{Memory: storage.NewMemory(), failReads: 1}
	_ = backend.Memory.SetItem(ctx, StorageKey("abc"), `[{"id":1,"name":"Full Face Helmet","price":4599,"quantity":3}]`)

	reg := NewRegistry(Options{Storage: backend})
	if _, err := reg.Get(ctx, "abc"); !pkgerrors.HasCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if reg.Len() != 0 {
		t.Fatalf("failed load must not stay cached, %d open", reg.Len())
	}

	store, err := reg.Get(ctx, "abc")
	if err != nil {
		t.Fatalf("retry get: %v", err)
	}
	if store.Count() != 3 {
		t.Fatalf("expected 3 saved helmets, got %d", store.Count())
	}
	if err := store.AddToCart(ctx, gloves, 1, "M"); err != nil {
		t.Fatalf("add: %v", err)
	}
	reopened := mustOpen(t, StorageKey("abc"), Options{Storage: backend.Memory})
	if reopened.Count() != 4 {
		t.Fatalf("expected helmets kept alongside gloves, count %d", reopened.Count())
	}
}

func TestRegistryReleasesIdleCarts(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	mem := storage.NewMemory()
	reg := NewRegistry(Options{Storage: mem, IdleTTL: 10 * time.Minute, Now: clock.Now})

	kept, _ := reg.Get(ctx, "kept")
	_ = kept.AddToCart(ctx, filter, 2, "")
	for i := 0; i < 10000; i++ {
		if _, err := reg.Get(ctx, fmt.Sprintf("visitor-%d", i)); err != nil {
			t.Fatalf("get: %v", err)
		}
	}
	if reg.Len() != 10001 {
		t.Fatalf("expected 10001 open carts got %d", reg.Len())
	}

	clock.Advance(11 * time.Minute)
	if _, err := reg.Get(ctx, "fresh"); err != nil {
		t.Fatalf("get fresh: %v", err)
	}
	if reg.Len() != 1 {
		t.Fatalf("expected idle carts released, %d open", reg.Len())
	}

	if err := kept.AddToCart(ctx, filter, 1, ""); !pkgerrors.HasCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("stale handle must be rejected, got %v", err)
	}
	reopened, err := reg.Get(ctx, "kept")
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened == kept || reopened.Count() != 2 {
		t.Fatalf("expected a rehydrated cart with 2 items, count %d", reopened.Count())
	}
}

func TestRegistryKeepsSubscribedAndActiveCarts(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	reg := NewRegistry(Options{Storage: storage.NewMemory(), IdleTTL: 10 * time.Minute, Now: clock.Now})

	watched, _ := reg.Get(ctx, "watched")
	cancel := watched.Subscribe(func(Snapshot) {})
	defer cancel()
	active, _ := reg.Get(ctx, "active")

	clock.Advance(8 * time.Minute)
	_ = active.Count()
	clock.Advance(3 * time.Minute)
	_, _ = reg.Get(ctx, "other")

	if reg.Len() != 3 {
		t.Fatalf("expected watched, active and other open, got %d", reg.Len())
	}
}
