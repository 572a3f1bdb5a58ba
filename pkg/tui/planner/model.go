// Package planner renders the week grid and drives the pick-up/carry/drop
// protocol over the drag controller.
package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/rotaplan/rota/pkg/app"
	"github.com/rotaplan/rota/pkg/drag"
	"github.com/rotaplan/rota/pkg/schedule"
	"github.com/rotaplan/rota/pkg/tui/events"
	"github.com/rotaplan/rota/pkg/tui/theme"
)

const componentID = events.ComponentID("planner")

const cellWidth = 14

// Model is the planner root component.
type Model struct {
	app   *app.App
	state *State
	theme theme.Theme

	width  int
	height int

	carrying  bool
	carried   schedule.Shift
	status    string
	statusErr bool

	lastSaved time.Time
}

// New constructs the planner over a wired App.
func New(a *app.App) Model {
	return Model{
		app:   a,
		state: NewState(),
		theme: theme.Default(),
	}
}

// Init requests the initial refresh.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		events.RefreshCmd(componentID),
		tickCmd(),
	)
}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles input and application events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		m.state.SetViewHeight(m.gridRows())
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(v)

	case tickMsg:
		return m, tickCmd()

	case events.RefreshMsg:
		return m, m.refreshCmd()

	case refreshDoneMsg:
		if v.err != nil {
			m.status = fmt.Sprintf("refresh failed: %v", v.err)
			m.statusErr = true
		} else {
			m.status = "loaded"
			m.statusErr = false
		}
		return m, nil

	case events.ShiftMovedMsg:
		m.status = fmt.Sprintf("moved shift %d to %s", v.Shift.ID, v.To.Label())
		m.statusErr = false
		return m, nil

	case events.DragStateMsg:
		if v.Phase == drag.Idle {
			m.status = "shift left in place"
			m.statusErr = false
		}
		return m, nil

	case dropDoneMsg:
		if v.err != nil {
			m.status = fmt.Sprintf("move failed, restored: %v", v.err)
			m.statusErr = true
		}
		return m, nil

	case events.ErrorMsg:
		m.status = fmt.Sprintf("%s: %v", v.Context, v.Err)
		m.statusErr = true
		return m, nil

	case events.SyncStatusMsg:
		if v.Err != nil {
			m.status = fmt.Sprintf("save failed: %v", v.Err)
			m.statusErr = true
		} else if !v.LastSaved.IsZero() {
			m.lastSaved = v.LastSaved
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		m.state.MoveSlot(-1)
	case "down", "j":
		m.state.MoveSlot(1)
	case "left", "h":
		m.state.MoveDay(-1)
	case "right", "l":
		m.state.MoveDay(1)

	case "r":
		return m, m.refreshCmd()

	case "esc":
		if m.carrying {
			if err := m.app.Drag.Cancel(); err == nil {
				m.carrying = false
				m.status = "drop cancelled"
				m.statusErr = false
			}
		}

	case "enter", "space":
		if m.carrying {
			return m.dropCarried()
		}
		return m.pickUp()
	}
	return m, nil
}

// pickUp starts a drag for the first shift in the cursor cell.
func (m Model) pickUp() (tea.Model, tea.Cmd) {
	day, hour, minutes := m.state.Cell()
	shifts := m.app.Store.ShiftsAt(day, hour, minutes)
	if len(shifts) == 0 {
		m.status = "nothing to pick up here"
		m.statusErr = false
		return m, nil
	}

	sh := shifts[0]
	if err := m.app.Drag.Start(sh.ID); err != nil {
		if errors.Is(err, drag.ErrBusy) {
			m.status = "previous move still committing"
		} else {
			m.status = err.Error()
		}
		m.statusErr = true
		return m, nil
	}

	m.carrying = true
	m.carried = sh
	m.status = fmt.Sprintf("carrying shift %d (%s)", sh.ID, sh.Label())
	m.statusErr = false
	return m, nil
}

type dropDoneMsg struct {
	result drag.Result
	err    error
}

// dropCarried commits the carried shift into the cursor cell.
func (m Model) dropCarried() (tea.Model, tea.Cmd) {
	day, hour, minutes := m.state.Cell()
	origin := events.CellRef{Day: m.carried.Day, Hour: m.carried.StartHour, Minutes: m.carried.StartMinutes}
	target := events.CellRef{Day: day, Hour: hour, Minutes: minutes}
	ctrl := m.app.Drag
	carried := m.carried

	m.carrying = false
	m.status = fmt.Sprintf("committing shift %d to %s", carried.ID, target.Label())
	m.statusErr = false

	return m, func() tea.Msg {
		result, err := ctrl.Drop(context.Background(), day, hour, minutes)
		if err != nil {
			return dropDoneMsg{result: result, err: err}
		}
		if result.NoOp {
			return events.DragStateMsg{Component: componentID, Phase: drag.Idle, Shift: carried}
		}
		return events.ShiftMovedMsg{Component: componentID, Shift: result.Shift, From: origin, To: target}
	}
}

type refreshDoneMsg struct{ err error }

func (m Model) refreshCmd() tea.Cmd {
	a := m.app
	return func() tea.Msg {
		return refreshDoneMsg{err: a.Refresh(context.Background())}
	}
}

// View renders the grid, one column per day, with the status footer.
func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderGrid())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	cols := []string{m.theme.Grid.SlotLabel.Render(pad("", 6))}
	for _, day := range m.state.Days() {
		cols = append(cols, m.theme.Grid.Header.Render(pad(string(day), cellWidth)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (m Model) renderGrid() string {
	start, end := m.state.VisibleRows()
	cursorDay, cursorSlot := m.state.Cursor()

	var rows []string
	for i := start; i < end; i++ {
		slot := m.state.Row(i)
		cols := []string{m.theme.Grid.SlotLabel.Render(pad(schedule.SlotLabel(slot.Hour, slot.Minutes), 6))}

		for d, day := range m.state.Days() {
			cell := m.renderCell(day, slot)
			style := m.theme.Grid.Cell
			if d == cursorDay && i == cursorSlot {
				style = m.theme.Grid.Cursor
			}
			cols = append(cols, style.Render(pad(cell, cellWidth)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	}
	return strings.Join(rows, "\n")
}

// renderCell shows the occupant of a cell: the carried shift marker, the
// employee's name, or an empty slot.
func (m Model) renderCell(day schedule.Weekday, slot Slot) string {
	shifts := m.app.Store.ShiftsAt(day, slot.Hour, slot.Minutes)
	if len(shifts) == 0 {
		return "·"
	}

	sh := shifts[0]
	if m.carrying && sh.ID == m.carried.ID {
		return m.theme.Grid.Carrying.Render("[" + truncate(m.nameFor(sh), cellWidth-4) + "]")
	}

	label := truncate(m.nameFor(sh), cellWidth-2)
	if m.app.Colors != nil {
		if c, err := m.app.Colors.ColorFor(sh.EmployeeID); err == nil {
			return theme.EmployeeStyle(c).Render(label)
		}
	}
	return label
}

func (m Model) nameFor(sh schedule.Shift) string {
	if e, ok := m.app.Store.Employee(sh.EmployeeID); ok {
		return e.Name
	}
	return fmt.Sprintf("#%d", sh.EmployeeID)
}

func (m Model) renderFooter() string {
	ft := m.theme.Footer

	var save string
	if m.app.Store.Dirty() {
		save = ft.Dirty.Render("● unsaved")
	} else if last := m.app.Store.LastSaved(); !last.IsZero() {
		save = ft.Saved.Render("saved " + last.Format("15:04:05"))
	} else {
		save = ft.Status.Render("clean")
	}

	status := m.status
	style := ft.Status
	if m.statusErr {
		style = ft.Error
	}

	help := ft.Help.Render("arrows: move  enter: pick up / drop  esc: cancel  r: reload  q: quit")
	return strings.Join([]string{style.Render(status), save, help}, ft.Status.Render("  |  "))
}

// gridRows leaves room for the header and footer.
func (m Model) gridRows() int {
	rows := m.height - 4
	if rows < 1 {
		rows = 1
	}
	return rows
}

func pad(s string, width int) string {
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
