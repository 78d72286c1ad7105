package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResetCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Discard the saved record",
		Long:  `Deletes the saved record so the next session starts from an empty form.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := opts.runtime(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.Store.Delete(cmd.Context(), rt.Config.StorageKey); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %q.\n", rt.Config.StorageKey)
			return nil
		},
	}
	return cmd
}
