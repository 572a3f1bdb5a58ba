package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rotaplan/rota/pkg/runner/colors"
	"github.com/rotaplan/rota/pkg/runner/status"
)

func addStatus(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check the scheduling server's health and version.",
		Example: `
rota status
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			s := status.Status{App: a}
			return s.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}

func addColors(topLevel *cobra.Command) {
	reset := false
	pin := 0
	fg := ""
	bg := ""

	cmd := &cobra.Command{
		Use:   "colors",
		Short: "Show, pin, or reset the employee color palette.",
		Example: `
rota colors
rota colors --reset
rota colors --pin 7 --fg 231 --bg 25
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			s := colors.Colors{Reset: reset, Pin: pin, Foreground: fg, Background: bg, App: a}
			return s.Do(context.Background())
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "Drop every stored color assignment.")
	cmd.Flags().IntVar(&pin, "pin", 0, "Pin a color for this employee id.")
	cmd.Flags().StringVar(&fg, "fg", "", "ANSI-256 foreground code to pin.")
	cmd.Flags().StringVar(&bg, "bg", "", "ANSI-256 background code to pin.")
	topLevel.AddCommand(cmd)
}
