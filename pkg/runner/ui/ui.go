// Package ui launches the interactive planner.
package ui

import (
	"context"
	"errors"

	"github.com/rotaplan/rota/pkg/app"
	"github.com/rotaplan/rota/pkg/tui/planner"
)

type UI struct {
	App *app.App
}

func (u *UI) Do(ctx context.Context) error {
	if u.App == nil {
		return errors.New("ui: no app configured")
	}
	if err := u.App.Refresh(ctx); err != nil {
		return err
	}
	return planner.Run(u.App)
}
