package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/glossary/internal/feedback"
	"github.com/mesh-intelligence/glossary/internal/glossary"
	"github.com/mesh-intelligence/glossary/internal/paths"
	"github.com/mesh-intelligence/glossary/pkg/types"
)

// app carries the global flags into subcommands.
type app struct {
	flags rootFlags
}

// session is the resolved runtime for one command invocation.
type session struct {
	configDir string
	dataDir   string
	cfg       types.Config
	logger    *slog.Logger
	json      bool
}

// open resolves directories, loads config.yaml and builds the logger.
func (a *app) open(cmd *cobra.Command) (*session, error) {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return nil, sysError(fmt.Errorf("resolve config dir: %w", err))
	}

	cfg, err := loadConfig(configDir)
	if err != nil {
		return nil, err
	}

	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, cfg.DataDir)
	if err != nil {
		return nil, sysError(fmt.Errorf("resolve data dir: %w", err))
	}

	glossaryPath, err := paths.ResolveGlossaryPath(a.flags.glossaryPath, cfg.Glossary.Path, configDir, types.DefaultGlossaryPath)
	if err != nil {
		return nil, sysError(fmt.Errorf("resolve glossary path: %w", err))
	}
	cfg.Glossary.Path = glossaryPath

	level := cfg.LogLevel
	if a.flags.logLevel != "" {
		level = a.flags.logLevel
	}
	logger, err := newLogger(cmd.ErrOrStderr(), level)
	if err != nil {
		return nil, userError(err)
	}

	return &session{
		configDir: configDir,
		dataDir:   dataDir,
		cfg:       cfg,
		logger:    logger,
		json:      a.flags.jsonMode,
	}, nil
}

// newLogger returns a text slog.Logger writing to w at the named level.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if level != "" {
		if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
			return nil, fmt.Errorf("invalid log level %q", level)
		}
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// loadGlossary loads the configured glossary file.
func (s *session) loadGlossary() (*glossary.Store, error) {
	store, err := glossary.Load(s.cfg.Glossary)
	if err != nil {
		s.logger.Error("glossary load failed", slog.String("path", s.cfg.Glossary.Path), slog.String("error", err.Error()))
		return nil, err
	}
	s.logger.Debug("glossary loaded",
		slog.String("path", store.Path()),
		slog.Int("entries", store.Len()),
		slog.Int("sources", len(store.Sources())),
	)
	return store, nil
}

// openFeedback opens the configured feedback log.
func (s *session) openFeedback() (types.FeedbackLog, error) {
	log, err := feedback.Open(s.cfg.Feedback, s.dataDir)
	if err != nil {
		return nil, sysError(fmt.Errorf("open feedback log: %w", err))
	}
	return log, nil
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
