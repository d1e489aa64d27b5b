package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newReapCmd(app *App) *cobra.Command {
	var once bool

	cmd := &cobra.Command{
		Use:   "reap",
		Short: "Terminate abandoned timers whose heartbeats went stale",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if once {
				n, err := app.Reaper.Sweep(ctx)
				if err != nil {
					return err
				}
				fmt.Printf("Reaped %d session(s)\n", n)
				return nil
			}

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			fmt.Println("Reaper running; Ctrl-C to stop.")
			app.Reaper.Run(ctx)
			return nil
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "Run a single sweep and exit")

	return cmd
}
