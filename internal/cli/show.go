package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstep/pkg/renderers/tui"
	"github.com/goliatone/go-formstep/pkg/storage"
)

func newShowCmd(opts *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the saved record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := opts.runtime(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			out := cmd.OutOrStdout()
			data, err := storage.LoadRecord(cmd.Context(), rt.Store, rt.Config.StorageKey)
			switch {
			case errors.Is(err, storage.ErrNotFound):
				fmt.Fprintf(out, "No saved progress under %q.\n", rt.Config.StorageKey)
				return nil
			case err != nil:
				return err
			}

			switch strings.ToLower(strings.TrimSpace(format)) {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(data)
			case "summary", "":
				summary := data.Summary()
				for i := range summary {
					summary[i].Label = rt.Layout.Field(summary[i].Field).Label
				}
				fmt.Fprintln(out, tui.RenderSummary(summary, tui.DefaultStyles()))
				return nil
			default:
				return fmt.Errorf("unknown format %q (want summary or json)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "o", "summary", "output format: summary or json")
	return cmd
}
