package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/rotaplan/rota/pkg/commands/options"
	"github.com/rotaplan/rota/pkg/runner/get"
	"github.com/rotaplan/rota/pkg/schedule"
	"github.com/rotaplan/rota/pkg/timeutil"
)

func addGet(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "get [employees|shifts|conflicts|grid]",
		Short: "Fetch and display schedule data.",
		Example: `
rota get employees
rota get shifts --day friday
rota get conflicts
rota get grid
`,
		ValidArgs: []string{"employees", "shifts", "conflicts", "grid"},
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("tell me what to get: employees, shifts, conflicts, or grid")
			}
			if len(args) > 1 {
				return errors.New("one kind at a time")
			}
			_, err := get.KindForAlias(args[0])
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := get.KindForAlias(args[0])
			if err != nil {
				return err
			}
			var day schedule.Weekday
			if oo.Day != "" {
				if day, err = timeutil.ParseDay(oo.Day); err != nil {
					return err
				}
			}
			a, err := loadApp()
			if err != nil {
				return err
			}
			s := get.Get{
				Kind:     kind,
				Day:      day,
				ShowRate: oo.ShowRate,
				App:      a,
			}
			return s.Do(context.Background())
		},
	}

	options.AddOutputArgs(cmd, oo)
	options.AddDayFilterArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
