package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstep/internal/web"
	"github.com/goliatone/go-formstep/pkg/controller"
	"github.com/goliatone/go-formstep/pkg/renderers/vanilla"
)

func newServeCmd(opts *globalOptions) *cobra.Command {
	var (
		addr         string
		templatesDir string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the form as an HTML page",
		Long: `Serves the form over HTTP. Each browser gets a session cookie and its
own saved record, stored under "<key>:<session id>". Reloading the page starts
again from the first step with the saved answers filled in.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			rt, err := opts.runtime(ctx, cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			if cmd.Flags().Changed("addr") {
				rt.Config.HTTPAddr = addr
			}
			if cmd.Flags().Changed("templates-dir") {
				rt.Config.TemplatesDir = templatesDir
			}

			renderer, err := vanilla.New(
				vanilla.WithLayout(rt.Layout),
				vanilla.WithTemplatesDir(rt.Config.TemplatesDir),
			)
			if err != nil {
				return err
			}
			srv, err := web.New(rt.Store, renderer,
				web.WithLogger(rt.Logger),
				web.WithKeyPrefix(rt.Config.StorageKey),
				web.WithSessionLimit(rt.Config.MaxSessions),
				web.WithSessionTTL(rt.Config.SessionTTL),
				web.WithControllerOptions(controller.WithAcknowledgement(rt.Layout.Acknowledgement)),
			)
			if err != nil {
				return err
			}
			return srv.ListenAndServe(ctx, rt.Config.HTTPAddr, rt.Config.ShutdownGrace)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (FORMSTEP_HTTP_ADDR)")
	cmd.Flags().StringVar(&templatesDir, "templates-dir", "", "directory holding templates/form.tmpl overrides (FORMSTEP_TEMPLATES_DIR)")
	return cmd
}
