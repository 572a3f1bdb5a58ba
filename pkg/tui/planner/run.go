package planner

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/rotaplan/rota/pkg/api"
	"github.com/rotaplan/rota/pkg/app"
	"github.com/rotaplan/rota/pkg/bus"
	"github.com/rotaplan/rota/pkg/tui/events"
)

// Run starts the planner in the alternate screen, with the auto saver
// running for the session. Bus events from the save and sync pipelines are
// forwarded into the program as messages.
func Run(a *app.App) error {
	saver, err := a.AutoSaver()
	if err != nil {
		return fmt.Errorf("planner: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	saver.Start(ctx)
	defer saver.Stop()

	p := tea.NewProgram(New(a), tea.WithAltScreen())

	savedID := a.Bus.Subscribe(bus.TopicSyncCompleted, func(payload any) error {
		p.Send(events.SyncStatusMsg{Component: componentID, LastSaved: time.Now()})
		return nil
	})
	defer a.Bus.Unsubscribe(bus.TopicSyncCompleted, savedID)

	failID := a.Bus.Subscribe(bus.TopicAPIError, func(payload any) error {
		if f, ok := payload.(api.Failure); ok {
			p.Send(events.ErrorMsg{Component: componentID, Context: "api", Err: f.Err})
		}
		return nil
	})
	defer a.Bus.Unsubscribe(bus.TopicAPIError, failID)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("planner: %w", err)
	}
	return nil
}
