package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rotaplan/rota/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive week planner.",
		Example: `
rota ui
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			s := ui.UI{App: a}
			return s.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
