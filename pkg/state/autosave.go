package state

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/rotaplan/rota/pkg/api"
	"github.com/rotaplan/rota/pkg/bus"
)

// DefaultAutoSaveInterval matches the cadence the planner UI expects.
const DefaultAutoSaveInterval = 30 * time.Second

// Syncer pushes a snapshot to the server. *api.Client satisfies it.
type Syncer interface {
	Sync(ctx context.Context, snap api.Snapshot) error
}

// AutoSaver periodically syncs the store to the server while it is dirty.
type AutoSaver struct {
	store    *Store
	syncer   Syncer
	events   *bus.Bus
	interval time.Duration
	logger   *log.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

// AutoSaverOption configures an AutoSaver.
type AutoSaverOption func(*AutoSaver)

// WithInterval overrides the save cadence.
func WithInterval(d time.Duration) AutoSaverOption {
	return func(a *AutoSaver) {
		if d > 0 {
			a.interval = d
		}
	}
}

// WithSaveLogger enables save tracing.
func WithSaveLogger(l *log.Logger) AutoSaverOption {
	return func(a *AutoSaver) { a.logger = l }
}

// NewAutoSaver wires an auto saver over store and syncer. The bus may be nil.
func NewAutoSaver(store *Store, syncer Syncer, events *bus.Bus, opts ...AutoSaverOption) *AutoSaver {
	a := &AutoSaver{
		store:    store,
		syncer:   syncer,
		events:   events,
		interval: DefaultAutoSaveInterval,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Start launches the save loop. Calling Start on a running saver is a no-op.
func (a *AutoSaver) Start(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.running {
		return
	}
	ctx, a.cancel = context.WithCancel(ctx)
	a.done = make(chan struct{})
	a.running = true
	go a.loop(ctx)
}

// Stop halts the save loop and waits for it to exit.
func (a *AutoSaver) Stop() {
	a.mu.Lock()
	if !a.running {
		a.mu.Unlock()
		return
	}
	cancel, done := a.cancel, a.done
	a.running = false
	a.mu.Unlock()

	cancel()
	<-done
}

func (a *AutoSaver) loop(ctx context.Context) {
	defer close(a.done)
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.SaveNow(ctx)
		}
	}
}

// SaveNow syncs immediately when the store is dirty. Returns the sync error,
// nil when clean or on success.
func (a *AutoSaver) SaveNow(ctx context.Context) error {
	if !a.store.Dirty() {
		return nil
	}

	snap := a.store.Export()
	if err := a.syncer.Sync(ctx, snap); err != nil {
		if a.logger != nil {
			a.logger.Printf("state: auto-save failed: %v", err)
		}
		return err
	}

	a.store.MarkClean()
	if a.events != nil {
		a.events.Publish(bus.TopicSyncCompleted, snap.Meta)
	}
	return nil
}
