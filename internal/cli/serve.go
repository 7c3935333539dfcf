package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/cargoauthors/internal/server"
	"github.com/matzehuels/cargoauthors/pkg/render"
)

// serveCommand creates the serve command, which exposes the report over HTTP.
// The root's option flags become the defaults for query parameters.
func (c *CLI) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the authors report over HTTP",
		Long: `Serve the authors report of a Cargo project over HTTP.

The project is resolved again on every request unless --cache-ttl is set.
Query parameters override the option flags given on the command line:

  GET /authors?format=json&hide_emails=true&ignore_self=true&by_crate=false
  GET /healthz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			format := render.FormatJSON
			if cmd.Flags().Changed("format") || cfg.JSON {
				if format, err = cfg.OutputFormat(); err != nil {
					return err
				}
			}

			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			srv := server.New(c.servedSource(cfg, logger), server.Config{
				Path:     cfg.Path,
				Defaults: cfg.Options(),
				Format:   format,
				Logger:   logger,
			})

			printInfo("Serving authors of %s on %s", StyleValue.Render(cfg.Path), StyleLink.Render(displayURL(cfg.Addr)))
			printDetail("GET /authors?format=%s", format)
			printDetail("GET /healthz")

			if err := srv.ListenAndServe(ctx, cfg.Addr); err != nil {
				return err
			}
			printSuccess("Server stopped")
			return nil
		},
	}

	cmd.Flags().String("addr", defaultAddr, "listen address")
	cmd.Flags().Duration("cache-ttl", 0, "share a resolution across requests for this long (0 resolves on every request)")
	return cmd
}

// displayURL turns a listen address into a URL a browser can open.
func displayURL(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
