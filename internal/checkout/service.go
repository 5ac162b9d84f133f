package checkout

import (
	"context"
	"sync"
	"time"

	"github.com/angelmondragon/ridegear-backend/internal/cart"
	"github.com/angelmondragon/ridegear-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/ridegear-backend/pkg/errors"
	"github.com/angelmondragon/ridegear-backend/pkg/logger"
	"github.com/angelmondragon/ridegear-backend/pkg/metrics"
	"github.com/google/uuid"
)

// DefaultDelay is how long the simulated checkout "processes" before clearing.
const DefaultDelay = 2 * time.Second

// DefaultRetention is how long a completed checkout stays visible to Status.
const DefaultRetention = time.Hour

// Checkout is one simulated checkout run for a cart.
type Checkout struct {
	ID          uuid.UUID            `json:"id"`
	CartID      string               `json:"cart_id"`
	Status      enums.CheckoutStatus `json:"status"`
	StartedAt   time.Time            `json:"started_at"`
	CompletedAt *time.Time           `json:"completed_at,omitempty"`
	Count       int                  `json:"count"`
	Total       int64                `json:"total"`
}

type Service interface {
	Begin(ctx context.Context, cartID string) (Checkout, error)
	Status(cartID string) Checkout
	// Shutdown stops accepting checkouts and completes every pending one right
	// away. Runs still pending when ctx ends are logged and returned as an error.
	Shutdown(ctx context.Context) error
}

type ServiceParams struct {
	Registry  *cart.Registry
	Logger    *logger.Logger
	Metrics   *metrics.CheckoutMetrics
	Delay     time.Duration
	Retention time.Duration
	// AfterFunc and Now default to time.AfterFunc and time.Now.
	AfterFunc func(d time.Duration, f func()) *time.Timer
	Now       func() time.Time
}

type pendingRun struct {
	once   sync.Once
	timer  *time.Timer
	record Checkout
	run    func()
}

type service struct {
	registry  *cart.Registry
	logg      *logger.Logger
	metrics   *metrics.CheckoutMetrics
	delay     time.Duration
	retention time.Duration
	afterFunc func(d time.Duration, f func()) *time.Timer
	now       func() time.Time

	mu        sync.Mutex
	latest    map[string]Checkout
	pending   map[uuid.UUID]*pendingRun
	lastPrune time.Time
	closed    bool
}

func NewService(params ServiceParams) (Service, error) {
	if params.Registry == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart registry required")
	}
	if params.Delay <= 0 {
		params.Delay = DefaultDelay
	}
	if params.Logger == nil {
		params.Logger = logger.Nop()
	}
	if params.AfterFunc == nil {
		params.AfterFunc = time.AfterFunc
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	if params.Retention <= 0 {
		params.Retention = DefaultRetention
	}
	return &service{
		registry:  params.Registry,
		logg:      params.Logger,
		metrics:   params.Metrics,
		delay:     params.Delay,
		retention: params.Retention,
		afterFunc: params.AfterFunc,
		now:       params.Now,
		latest:    map[string]Checkout{},
		pending:   map[uuid.UUID]*pendingRun{},
		lastPrune: params.Now(),
	}, nil
}

// Begin starts processing the cart. The cart is cleared once the delay elapses;
// nothing cancels it.
func (s *service) Begin(ctx context.Context, cartID string) (Checkout, error) {
	store, err := s.registry.Get(ctx, cartID)
	if err != nil {
		return Checkout{}, err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return Checkout{}, pkgerrors.New(pkgerrors.CodeDependency, "checkout is shutting down")
	}
	s.pruneLocked(s.now())
	if current, ok := s.latest[cartID]; ok && current.Status == enums.CheckoutStatusProcessing {
		s.mu.Unlock()
		s.metrics.IncOutcome("rejected_processing")
		return Checkout{}, pkgerrors.New(pkgerrors.CodeStateConflict, "checkout already processing").
			WithDetails(map[string]any{"checkout_id": current.ID})
	}

	snap := store.Snapshot()
	if snap.Count == 0 {
		s.mu.Unlock()
		s.metrics.IncOutcome("rejected_empty")
		return Checkout{}, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
	}

	record := Checkout{
		ID:        uuid.New(),
		CartID:    cartID,
		Status:    enums.CheckoutStatusProcessing,
		StartedAt: s.now().UTC(),
		Count:     snap.Count,
		Total:     snap.Total,
	}
	s.latest[cartID] = record

	bg := s.logg.WithFields(s.logg.Detach(ctx), map[string]any{
		"checkout_id": record.ID.String(),
		"cart_id":     cartID,
	})
	run := &pendingRun{record: record}
	run.run = func() {
		run.once.Do(func() { s.complete(bg, record) })
	}
	s.pending[record.ID] = run
	s.mu.Unlock()

	s.logg.Info(bg, "checkout started")
	timer := s.afterFunc(s.delay, run.run)
	s.mu.Lock()
	run.timer = timer
	s.mu.Unlock()
	return record, nil
}

// pruneLocked forgets completed checkouts older than the retention window. It
// runs at most once per retention/4.
func (s *service) pruneLocked(now time.Time) {
	if now.Sub(s.lastPrune) < s.retention/4 {
		return
	}
	s.lastPrune = now
	for cartID, record := range s.latest {
		if record.CompletedAt != nil && now.Sub(*record.CompletedAt) >= s.retention {
			delete(s.latest, cartID)
		}
	}
}

// complete looks the cart up again since the registry may have released the
// handle Begin used.
func (s *service) complete(ctx context.Context, record Checkout) {
	store, err := s.registry.Get(ctx, record.CartID)
	if err == nil {
		err = store.ClearCart(ctx)
	}
	if err != nil {
		s.logg.Error(ctx, "failed to clear cart after checkout", err)
	}

	finished := s.now().UTC()
	s.mu.Lock()
	delete(s.pending, record.ID)
	if current, ok := s.latest[record.CartID]; ok && current.ID == record.ID {
		current.Status = enums.CheckoutStatusCompleted
		current.CompletedAt = &finished
		s.latest[record.CartID] = current
	}
	s.mu.Unlock()

	s.metrics.Observe("completed", finished.Sub(record.StartedAt))
	s.logg.Info(ctx, "checkout completed")
}

// Status reports the latest checkout for the cart, or an idle placeholder.
func (s *service) Status(cartID string) Checkout {
	s.mu.Lock()
	defer s.mu.Unlock()
	if current, ok := s.latest[cartID]; ok {
		return current
	}
	return Checkout{CartID: cartID, Status: enums.CheckoutStatusIdle}
}

func (s *service) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	runs := make([]*pendingRun, 0, len(s.pending))
	for _, run := range s.pending {
		runs = append(runs, run)
	}
	s.mu.Unlock()

	for i, run := range runs {
		if ctx.Err() != nil {
			for _, dropped := range runs[i:] {
				dropCtx := s.logg.WithFields(ctx, map[string]any{
					"checkout_id": dropped.record.ID.String(),
					"cart_id":     dropped.record.CartID,
				})
				s.logg.Warn(dropCtx, "checkout dropped during shutdown")
				s.metrics.IncOutcome("dropped")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, ctx.Err(), "checkout drain interrupted")
		}
		s.mu.Lock()
		timer := run.timer
		s.mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		run.run()
	}
	if len(runs) > 0 {
		s.logg.Info(ctx, "pending checkouts completed before shutdown")
	}
	return nil
}
