package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration and feedback storage",
		Long: "Create the configuration directory with a default config.yaml, create\n" +
			"the data directory, and prepare the configured feedback backend.\n" +
			"Running init again leaves existing files untouched.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, a)
		},
	}
}

func runInit(cmd *cobra.Command, a *app) error {
	// open writes config.yaml when it is missing.
	s, err := a.open(cmd)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return sysError(fmt.Errorf("create data directory: %w", err))
	}

	log, err := s.openFeedback()
	if err != nil {
		return err
	}
	if err := log.Close(); err != nil {
		return sysError(fmt.Errorf("close feedback log: %w", err))
	}

	s.logger.Info("initialized",
		slog.String("config_dir", s.configDir),
		slog.String("data_dir", s.dataDir),
		slog.String("backend", s.cfg.Feedback.Backend),
	)

	out := cmd.OutOrStdout()
	if s.json {
		return writeJSON(out, map[string]string{
			"config":   filepath.Join(s.configDir, configFileExt),
			"data_dir": s.dataDir,
			"glossary": s.cfg.Glossary.Path,
		})
	}
	fmt.Fprintln(out, "Glossary initialized successfully")
	fmt.Fprintf(out, "config:   %s\n", filepath.Join(s.configDir, configFileExt))
	fmt.Fprintf(out, "data dir: %s\n", s.dataDir)
	fmt.Fprintf(out, "glossary: %s\n", s.cfg.Glossary.Path)
	return nil
}
