// Package colors manages the persisted employee palette.
package colors

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/rotaplan/rota/pkg/app"
	"github.com/rotaplan/rota/pkg/colorstore"
)

type Colors struct {
	// Reset drops every stored assignment.
	Reset bool

	// Pin overrides the palette for one employee. Foreground and
	// Background are ANSI-256 codes; both are required with Pin.
	Pin        int
	Foreground string
	Background string

	App *app.App
}

func (c *Colors) Do(ctx context.Context) error {
	if c.App == nil {
		return errors.New("colors: no app configured")
	}
	if c.App.Colors == nil {
		return errors.New("colors: no color store configured")
	}

	if c.Reset {
		if err := c.App.Colors.Reset(); err != nil {
			return err
		}
		ok := color.New(color.FgGreen)
		_, _ = ok.Println("palette reset")
		return nil
	}

	if c.Pin > 0 {
		return c.pin()
	}

	if err := c.App.Refresh(ctx); err != nil {
		return err
	}

	table := uitable.New()
	table.AddRow("ID", "NAME", "FG", "BG")
	for _, e := range c.App.Store.Employees() {
		assigned, err := c.App.Colors.ColorFor(e.ID)
		if err != nil {
			return err
		}
		table.AddRow(e.ID, e.Name, assigned.Foreground, assigned.Background)
	}
	fmt.Println(table)
	return nil
}

// pin validates and stores an explicit color for one employee.
func (c *Colors) pin() error {
	fg, err := colorstore.ParseANSI(c.Foreground)
	if err != nil {
		return fmt.Errorf("colors: foreground: %w", err)
	}
	bg, err := colorstore.ParseANSI(c.Background)
	if err != nil {
		return fmt.Errorf("colors: background: %w", err)
	}

	pinned := colorstore.Color{
		Foreground: fmt.Sprintf("%d", fg),
		Background: fmt.Sprintf("%d", bg),
	}
	if err := c.App.Colors.SetColor(c.Pin, pinned); err != nil {
		return err
	}
	ok := color.New(color.FgGreen)
	_, _ = ok.Printf("employee %d pinned to fg=%d bg=%d\n", c.Pin, fg, bg)
	return nil
}
