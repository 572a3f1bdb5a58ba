// Package syncrun implements the sync command: one-shot snapshot push, or a
// long-running watch that saves on the auto-save cadence.
package syncrun

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"github.com/rotaplan/rota/pkg/app"
)

type Sync struct {
	// Watch keeps running, saving dirty state on the configured interval,
	// until interrupted.
	Watch bool
	App   *app.App
}

func (s *Sync) Do(ctx context.Context) error {
	if s.App == nil {
		return errors.New("sync: no app configured")
	}
	if err := s.App.Refresh(ctx); err != nil {
		return err
	}

	if !s.Watch {
		snap := s.App.Store.Export()
		if err := s.App.Client.Sync(ctx, snap); err != nil {
			return fmt.Errorf("sync: %w", err)
		}
		s.App.Store.MarkClean()
		ok := color.New(color.FgGreen)
		_, _ = ok.Printf("synced %d employees and %d shifts\n", snap.Meta.Employees, snap.Meta.Shifts)
		return nil
	}

	saver, err := s.App.AutoSaver()
	if err != nil {
		return fmt.Errorf("sync: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	saver.Start(ctx)
	defer saver.Stop()

	fmt.Printf("watching; saving every %s (ctrl+c to stop)\n", s.App.Config.AutoSaveInterval)
	<-ctx.Done()
	return nil
}
