// Package events defines the typed Bubble Tea messages exchanged between the
// planner components and the root model.
package events

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/rotaplan/rota/pkg/drag"
	"github.com/rotaplan/rota/pkg/schedule"
)

// ComponentID uniquely identifies a component instance emitting events.
type ComponentID string

// CellRef names a grid cell in cross-component events.
type CellRef struct {
	Day     schedule.Weekday
	Hour    int
	Minutes int
}

// Label renders the cell for logs and status lines.
func (r CellRef) Label() string {
	return fmt.Sprintf("%s %s", r.Day, schedule.SlotLabel(r.Hour, r.Minutes))
}

// ShiftMovedMsg announces a committed relocation.
type ShiftMovedMsg struct {
	Component ComponentID
	Shift     schedule.Shift
	From      CellRef
	To        CellRef
}

// Describe renders the move in a human-friendly format for logs.
func (m ShiftMovedMsg) Describe() string {
	return fmt.Sprintf(`shift:%d from:%q to:%q`, m.Shift.ID, m.From.Label(), m.To.Label())
}

// ShiftMovedCmd wraps ShiftMovedMsg into a tea.Cmd for callers that want to
// emit the event as part of an Update result.
func ShiftMovedCmd(component ComponentID, shift schedule.Shift, from, to CellRef) tea.Cmd {
	return func() tea.Msg {
		return ShiftMovedMsg{Component: component, Shift: shift, From: from, To: to}
	}
}

// DragStateMsg announces a drag phase transition.
type DragStateMsg struct {
	Component ComponentID
	Phase     drag.Phase
	Shift     schedule.Shift
}

// Describe implements the logging helper.
func (m DragStateMsg) Describe() string {
	return fmt.Sprintf(`phase:%q shift:%d`, m.Phase, m.Shift.ID)
}

// DragStateCmd wraps DragStateMsg in a tea.Cmd.
func DragStateCmd(component ComponentID, phase drag.Phase, shift schedule.Shift) tea.Cmd {
	return func() tea.Msg {
		return DragStateMsg{Component: component, Phase: phase, Shift: shift}
	}
}

// SyncStatusMsg reports the save pipeline state for the status bar.
type SyncStatusMsg struct {
	Component ComponentID
	Dirty     bool
	LastSaved time.Time
	Err       error
}

// Describe implements the logging helper.
func (m SyncStatusMsg) Describe() string {
	state := "clean"
	if m.Dirty {
		state = "dirty"
	}
	if m.Err != nil {
		state = "failed"
	}
	return fmt.Sprintf(`state:%q`, state)
}

// SyncStatusCmd wraps SyncStatusMsg in a tea.Cmd.
func SyncStatusCmd(component ComponentID, dirty bool, lastSaved time.Time, err error) tea.Cmd {
	return func() tea.Msg {
		return SyncStatusMsg{Component: component, Dirty: dirty, LastSaved: lastSaved, Err: err}
	}
}

// ErrorMsg surfaces a failure to the root model.
type ErrorMsg struct {
	Component ComponentID
	Context   string
	Err       error
}

// Describe implements the logging helper.
func (m ErrorMsg) Describe() string {
	return fmt.Sprintf(`context:%q err:%q`, m.Context, m.Err)
}

// ErrorCmd wraps ErrorMsg in a tea.Cmd.
func ErrorCmd(component ComponentID, context string, err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Component: component, Context: context, Err: err}
	}
}

// RefreshMsg asks the root model to reload state from the server.
type RefreshMsg struct {
	Component ComponentID
}

// Describe implements the logging helper.
func (m RefreshMsg) Describe() string {
	return fmt.Sprintf(`component:%q`, m.Component)
}

// RefreshCmd wraps RefreshMsg in a tea.Cmd.
func RefreshCmd(component ComponentID) tea.Cmd {
	return func() tea.Msg {
		return RefreshMsg{Component: component}
	}
}
