// Package doctor implements the reconciliation command: analyze the
// schedule, repair orphaned shifts, and remove dead employee records.
package doctor

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"github.com/rotaplan/rota/pkg/app"
	"github.com/rotaplan/rota/pkg/printers"
	"github.com/rotaplan/rota/pkg/reconcile"
)

type Doctor struct {
	// Apply executes repairs; the default is a dry run report.
	Apply bool
	// Fuzzy prints name-similarity suggestions for orphans whose original
	// owner name is still known. Suggestions are never applied silently.
	Fuzzy bool
	// OrphanNames maps orphaned employee ids to their last known names,
	// when the caller has them (from an imported snapshot).
	OrphanNames map[int]string
	// Clean drops locally cached corrupted records before analysis.
	Clean bool

	App *app.App
}

func (d *Doctor) Do(ctx context.Context) error {
	if d.App == nil {
		return errors.New("doctor: no app configured")
	}
	if err := d.App.Refresh(ctx); err != nil {
		return err
	}

	pp := printers.PrettyPrint{}

	if d.Clean {
		removed := d.App.Store.CleanCorrupted()
		if !removed.Empty() {
			warn := color.New(color.FgYellow)
			_, _ = warn.Printf("dropped %d corrupted employees and %d corrupted shifts locally\n\n",
				len(removed.Employees), len(removed.Shifts))
		}
	}

	var report reconcile.Report
	if d.Apply {
		report = d.App.Reconciler.ExecuteAll(ctx)
	} else {
		report = d.App.Reconciler.Analyze()
	}
	pp.Report(report)

	if d.Fuzzy {
		matches := d.App.FuzzySuggestions(d.OrphanNames)
		pp.NewLine()
		pp.Title("fuzzy reassignment suggestions")
		pp.Matches(matches...)
	}

	if !d.Apply && !report.Clean() {
		hint := color.New(color.Faint)
		_, _ = hint.Println("dry run; pass --apply to repair")
	}

	if len(report.Errors) > 0 {
		return fmt.Errorf("doctor: %d repairs failed", len(report.Errors))
	}
	return nil
}
