package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rotaplan/rota/pkg/runner/move"
	"github.com/rotaplan/rota/pkg/timeutil"
)

func addMove(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "move <shift-id> <day> <time>",
		Short: "Move a shift to another grid cell.",
		Example: `
rota move 42 friday 18:00
`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fmt.Errorf("shift id must be a positive number, got %q", args[0])
			}
			day, err := timeutil.ParseDay(args[1])
			if err != nil {
				return err
			}
			hour, minutes, err := timeutil.ParseSlot(args[2])
			if err != nil {
				return err
			}

			a, err := loadApp()
			if err != nil {
				return err
			}
			s := move.Move{
				ShiftID: id,
				Day:     day,
				Hour:    hour,
				Minutes: minutes,
				App:     a,
			}
			return s.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
