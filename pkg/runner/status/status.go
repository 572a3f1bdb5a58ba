// Package status probes the scheduling service's health and version.
package status

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"github.com/rotaplan/rota/pkg/app"
)

type Status struct {
	App *app.App
}

func (s *Status) Do(ctx context.Context) error {
	if s.App == nil {
		return errors.New("status: no app configured")
	}

	fmt.Printf("server: %s\n", s.App.Config.BaseURL)

	if err := s.App.Client.Health(ctx); err != nil {
		down := color.New(color.FgRed, color.Bold)
		_, _ = down.Println("health: unreachable")
		return err
	}
	up := color.New(color.FgGreen)
	_, _ = up.Println("health: ok")

	info, err := s.App.Client.Version(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("version: %s", info.Version)
	if info.Commit != "" {
		fmt.Printf(" (%s)", info.Commit)
	}
	fmt.Println("")
	return nil
}
