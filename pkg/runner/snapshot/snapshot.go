// Package snapshot implements export and import of schedule snapshots as
// JSON files.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/rotaplan/rota/pkg/api"
	"github.com/rotaplan/rota/pkg/app"
)

// Export writes the current schedule to a JSON file ("-" for stdout).
type Export struct {
	Path string
	App  *app.App
}

func (e *Export) Do(ctx context.Context) error {
	if e.App == nil {
		return errors.New("snapshot: no app configured")
	}
	if err := e.App.Refresh(ctx); err != nil {
		return err
	}

	snap := e.App.Store.Export()
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("snapshot: encoding: %w", err)
	}

	if e.Path == "" || e.Path == "-" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(e.Path, data, 0o644); err != nil {
		return fmt.Errorf("snapshot: writing %s: %w", e.Path, err)
	}

	ok := color.New(color.FgGreen)
	_, _ = ok.Printf("exported %d employees and %d shifts to %s\n",
		snap.Meta.Employees, snap.Meta.Shifts, e.Path)
	return nil
}

// Import loads a JSON snapshot into local state and pushes it to the server.
type Import struct {
	Path string
	// Local skips the server push.
	Local bool
	App   *app.App
}

func (i *Import) Do(ctx context.Context) error {
	if i.App == nil {
		return errors.New("snapshot: no app configured")
	}

	data, err := os.ReadFile(i.Path)
	if err != nil {
		return fmt.Errorf("snapshot: reading %s: %w", i.Path, err)
	}
	var snap api.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("snapshot: decoding %s: %w", i.Path, err)
	}

	if err := i.App.Store.Import(snap); err != nil {
		return err
	}

	if !i.Local {
		if err := i.App.Client.Sync(ctx, i.App.Store.Export()); err != nil {
			return fmt.Errorf("snapshot: pushing imported data: %w", err)
		}
		i.App.Store.MarkClean()
	}

	ok := color.New(color.FgGreen)
	_, _ = ok.Printf("imported %d employees and %d shifts\n",
		len(snap.Employees), len(snap.Shifts))
	return nil
}
