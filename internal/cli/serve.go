package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/glossary/internal/feedback"
	"github.com/mesh-intelligence/glossary/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the glossary and feedback form over HTTP",
		Long: "Serve a JSON API (/api/sources, /api/categories, /api/entries,\n" +
			"/api/feedback), an HTML result page at /, and Prometheus metrics at\n" +
			"/metrics. Stops gracefully on SIGINT or SIGTERM.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = s.cfg.Server.Addr
			}
			store, err := s.loadGlossary()
			if err != nil {
				return err
			}
			log, err := s.openFeedback()
			if err != nil {
				return err
			}
			defer log.Close()

			sub := feedback.NewSubmitter(log, s.cfg.Feedback.RequireName, s.logger)
			srv := server.New(store, sub, server.Options{
				Style:  s.cfg.Presentation.Style,
				Logger: s.logger,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := server.ListenAndServe(ctx, addr, srv.Handler(), s.logger); err != nil {
				return sysError(fmt.Errorf("serve %s: %w", addr, err))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}
