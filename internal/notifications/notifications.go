// Package notifications carries user-facing toasts from domain code to the
// response that triggered them.
package notifications

import (
	"context"
	"sync"

	"github.com/angelmondragon/ridegear-backend/pkg/enums"
	"github.com/angelmondragon/ridegear-backend/pkg/logger"
	"github.com/angelmondragon/ridegear-backend/pkg/types"
)

// Notifier receives transient user-facing notices.
type Notifier interface {
	Notify(ctx context.Context, notice types.Notice)
}

type inboxKey struct{}

type inbox struct {
	mu      sync.Mutex
	notices []types.Notice
}

// WithInbox attaches a request-scoped inbox that Hub appends to.
func WithInbox(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, inboxKey{}, &inbox{})
}

// Drain returns and clears the notices collected on ctx.
func Drain(ctx context.Context) []types.Notice {
	if ctx == nil {
		return nil
	}
	box, ok := ctx.Value(inboxKey{}).(*inbox)
	if !ok {
		return nil
	}
	box.mu.Lock()
	defer box.mu.Unlock()
	out := box.notices
	box.notices = nil
	return out
}

// Hub logs every notice and queues it on the request inbox when one exists.
type Hub struct {
	logg *logger.Logger
}

func NewHub(logg *logger.Logger) *Hub {
	if logg == nil {
		logg = logger.Nop()
	}
	return &Hub{logg: logg}
}

func (h *Hub) Notify(ctx context.Context, notice types.Notice) {
	if ctx == nil {
		ctx = context.Background()
	}
	logCtx := h.logg.WithFields(ctx, map[string]any{
		"notice_level": notice.Level,
	})
	h.logg.Debug(logCtx, notice.Message)

	box, ok := ctx.Value(inboxKey{}).(*inbox)
	if !ok {
		return
	}
	box.mu.Lock()
	box.notices = append(box.notices, notice)
	box.mu.Unlock()
}

func Success(message string) types.Notice {
	return types.Notice{Level: enums.NoticeLevelSuccess.String(), Message: message}
}

func Warning(message string) types.Notice {
	return types.Notice{Level: enums.NoticeLevelWarning.String(), Message: message}
}

func Failure(message string) types.Notice {
	return types.Notice{Level: enums.NoticeLevelError.String(), Message: message}
}

// Recorder keeps every notice in memory. Useful in tests and background jobs.
type Recorder struct {
	mu      sync.Mutex
	notices []types.Notice
}

func (r *Recorder) Notify(_ context.Context, notice types.Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, notice)
}

func (r *Recorder) Notices() []types.Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]types.Notice, len(r.notices))
	copy(out, r.notices)
	return out
}
