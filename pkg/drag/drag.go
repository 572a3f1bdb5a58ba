// Package drag implements the pick-up/carry/drop protocol for moving shifts
// between grid cells, with optimistic local moves and rollback on a failed
// remote commit.
package drag

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rotaplan/rota/pkg/bus"
	"github.com/rotaplan/rota/pkg/schedule"
	"github.com/rotaplan/rota/pkg/state"
)

// Phase is the controller's position in the move lifecycle.
type Phase string

const (
	Idle       Phase = "idle"
	Dragging   Phase = "dragging"
	Dropped    Phase = "dropped"
	Committing Phase = "committing"
	Committed  Phase = "committed"
	RolledBack Phase = "rolledback"
)

var (
	// ErrBusy is returned when a drag is attempted while a commit is in
	// flight. Finish or fail the current move first.
	ErrBusy = errors.New("drag: commit in flight")

	// ErrNotDragging is returned by Drop and Cancel outside a drag.
	ErrNotDragging = errors.New("drag: no shift picked up")

	// ErrConflict is returned when the target cell would overlap another
	// shift of the same employee. Nothing is sent to the server.
	ErrConflict = errors.New("drag: target slot conflicts with an existing shift")

	// ErrInvalidSlot is returned for drops outside the grid.
	ErrInvalidSlot = errors.New("drag: target slot outside opening hours")
)

// Mover commits a relocation remotely. *api.Client satisfies it.
type Mover interface {
	MoveShift(ctx context.Context, id int, day schedule.Weekday, hour, minutes int) error
}

// Result describes a finished drop.
type Result struct {
	Phase    Phase
	Shift    schedule.Shift
	NoOp     bool
	CommitAt time.Time
}

// Controller serializes shift moves. One shift may be in motion at a time.
type Controller struct {
	store  *state.Store
	mover  Mover
	events *bus.Bus

	commitTimeout time.Duration

	mu       sync.Mutex
	phase    Phase
	shiftID  int
	original schedule.Shift
}

// Option configures a Controller.
type Option func(*Controller)

// WithCommitTimeout bounds the Committing phase. Zero disables the bound.
func WithCommitTimeout(d time.Duration) Option {
	return func(c *Controller) { c.commitTimeout = d }
}

// DefaultCommitTimeout keeps a wedged server from pinning the controller in
// Committing forever.
const DefaultCommitTimeout = 15 * time.Second

// NewController wires a drag controller. The bus may be nil.
func NewController(store *state.Store, mover Mover, events *bus.Bus, opts ...Option) *Controller {
	c := &Controller{
		store:         store,
		mover:         mover,
		events:        events,
		commitTimeout: DefaultCommitTimeout,
		phase:         Idle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Phase returns the current lifecycle phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Carrying returns the shift currently picked up, if any.
func (c *Controller) Carrying() (schedule.Shift, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != Dragging {
		return schedule.Shift{}, false
	}
	return c.original, true
}

// Start picks up a shift. Only valid from Idle; a commit in flight returns
// ErrBusy.
func (c *Controller) Start(shiftID int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.phase {
	case Committing:
		return ErrBusy
	case Dragging, Dropped:
		return fmt.Errorf("drag: shift %d already picked up", c.shiftID)
	}

	sh, ok := c.store.Shift(shiftID)
	if !ok {
		return fmt.Errorf("drag: unknown shift %d", shiftID)
	}

	c.phase = Dragging
	c.shiftID = shiftID
	c.original = sh
	c.publish(bus.TopicDragStarted, sh)
	return nil
}

// Cancel puts a picked-up shift back untouched.
func (c *Controller) Cancel() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != Dragging {
		return ErrNotDragging
	}
	c.reset()
	return nil
}

// Drop places the carried shift in the target cell. A drop on the origin
// cell is a no-op with no network traffic. Invalid slots and local conflicts
// are rejected before anything is sent and put the controller back to Idle;
// the shift stays where it was. Otherwise the shift moves locally first and
// the relocation is committed remotely; a failed commit restores the
// original position.
func (c *Controller) Drop(ctx context.Context, day schedule.Weekday, hour, minutes int) (Result, error) {
	c.mu.Lock()
	if c.phase != Dragging {
		c.mu.Unlock()
		return Result{}, ErrNotDragging
	}
	original := c.original

	if day == original.Day && hour == original.StartHour && minutes == original.StartMinutes {
		c.reset()
		c.mu.Unlock()
		return Result{Phase: Idle, Shift: original, NoOp: true}, nil
	}

	if !day.Valid() || !schedule.ValidSlot(hour, minutes) {
		c.reset()
		c.mu.Unlock()
		return Result{Phase: Idle, Shift: original}, ErrInvalidSlot
	}

	moved := original
	moved.Day = day
	moved.StartHour = hour
	moved.StartMinutes = minutes

	if c.conflictsLocally(moved) {
		c.reset()
		c.mu.Unlock()
		return Result{Phase: Idle, Shift: original}, ErrConflict
	}

	c.phase = Committing
	c.mu.Unlock()

	wasDirty := c.store.Dirty()
	if err := c.store.SetShift(moved); err != nil {
		c.mu.Lock()
		c.reset()
		c.mu.Unlock()
		return Result{Phase: RolledBack, Shift: original}, fmt.Errorf("drag: local move: %w", err)
	}

	if c.commitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.commitTimeout)
		defer cancel()
	}

	if err := c.mover.MoveShift(ctx, moved.ID, day, hour, minutes); err != nil {
		// Restore the exact pre-drag shift. A completed rollback is a net
		// no-op, so the dirty flag goes back to what it was before the drop.
		if restoreErr := c.store.SetShift(original); restoreErr != nil {
			err = errors.Join(err, fmt.Errorf("drag: rollback: %w", restoreErr))
		} else {
			c.store.ResetDirty(wasDirty)
		}
		c.mu.Lock()
		c.phase = RolledBack
		c.reset()
		c.mu.Unlock()
		c.publish(bus.TopicDragRolledBack, original)
		return Result{Phase: RolledBack, Shift: original}, fmt.Errorf("drag: commit: %w", err)
	}

	c.mu.Lock()
	c.phase = Committed
	c.reset()
	c.mu.Unlock()
	c.publish(bus.TopicDragCommitted, moved)
	c.publish(bus.TopicShiftMoved, moved)
	return Result{Phase: Committed, Shift: moved, CommitAt: time.Now()}, nil
}

// conflictsLocally checks the target against the employee's other shifts.
// The dragged shift itself is excluded by id inside Overlaps.
func (c *Controller) conflictsLocally(moved schedule.Shift) bool {
	for _, other := range c.store.ShiftsFor(moved.EmployeeID) {
		if schedule.Overlaps(moved, other) {
			return true
		}
	}
	return false
}

// reset returns to Idle; callers hold the lock.
func (c *Controller) reset() {
	c.phase = Idle
	c.shiftID = 0
	c.original = schedule.Shift{}
}

func (c *Controller) publish(topic string, payload any) {
	if c.events == nil {
		return
	}
	c.events.Publish(topic, payload)
}
