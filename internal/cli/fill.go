package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formstep/pkg/controller"
	"github.com/goliatone/go-formstep/pkg/renderers/tui"
)

func newFillCmd(opts *globalOptions) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill in the form interactively",
		Long: `Prompts for each field of the active step, then offers Next, Back,
Submit or Quit. Progress is saved after every completed step; quitting or
interrupting keeps it for the next run. Submitting clears it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			rt, err := opts.runtime(ctx, cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			sessionOpts := []tui.Option{
				tui.WithLayout(rt.Layout),
				tui.WithOutput(cmd.OutOrStdout()),
			}
			if plain {
				sessionOpts = append(sessionOpts, tui.WithTheme(tui.PlainTheme()), tui.WithStyles(tui.PlainStyles()))
			}
			session := tui.New(sessionOpts...)
			ctrl, err := controller.New(rt.Store, session,
				controller.WithKey(rt.Config.StorageKey),
				controller.WithLogger(rt.Logger),
				controller.WithAcknowledgement(rt.Layout.Acknowledgement),
			)
			if err != nil {
				return err
			}

			err = session.Run(ctx, ctrl)
			switch {
			case err == nil:
				return nil
			case errors.Is(err, tui.ErrAborted):
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted. Saved progress is kept.")
				return nil
			default:
				rt.Logger.Error("fill session failed", zap.String("key", ctrl.Key()), zap.Error(err))
				return err
			}
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "ASCII prefixes and no colours")
	return cmd
}
