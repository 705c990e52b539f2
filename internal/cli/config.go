package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/glossary/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	envPrefix = "GLOSSARY"

	cfgKeyDataDir = "data_dir"
)

// configHeader is prepended to the generated config.yaml.
const configHeader = `# Glossary configuration.
# Every key can be overridden by a GLOSSARY_ environment variable,
# e.g. GLOSSARY_FEEDBACK_BACKEND=sqlite. data_dir is resolved as
# --data-dir > data_dir > GLOSSARY_DATA_DIR > ./.glossary-data.

`

// errConfigInvalid wraps the types.Err*Unknown family for configuration
// files that parse but hold unsupported values.
var errConfigInvalid = errors.New("invalid configuration")

// configDefaults returns every config key with its default value. Keys are
// bound to environment variables, except data_dir whose environment
// override sits below config.yaml in the precedence chain.
func configDefaults() map[string]any {
	d := types.DefaultConfig()
	return map[string]any{
		"log_level":                   d.LogLevel,
		"glossary.path":               d.Glossary.Path,
		"glossary.format":             d.Glossary.Format,
		"glossary.delimiter":          d.Glossary.Delimiter,
		"glossary.sheet":              d.Glossary.Sheet,
		"feedback.backend":            d.Feedback.Backend,
		"feedback.file":               d.Feedback.File,
		"feedback.require_name":       d.Feedback.RequireName,
		"presentation.style":          d.Presentation.Style,
		"presentation.source_control": d.Presentation.SourceControl,
		"server.addr":                 d.Server.Addr,
	}
}

// loadConfig reads config.yaml from the resolved config directory using Viper.
// It creates the config directory and a default config.yaml on first run.
// A missing config.yaml is not an error.
func loadConfig(configDir string) (types.Config, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return types.Config{}, sysError(fmt.Errorf("ensure config dir: %w", err))
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return types.Config{}, sysError(fmt.Errorf("ensure default config: %w", err))
	}

	v := viper.New()
	v.SetDefault(cfgKeyDataDir, "")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for key, value := range configDefaults() {
		v.SetDefault(key, value)
		if err := v.BindEnv(key); err != nil {
			return types.Config{}, fmt.Errorf("bind env %s: %w", key, err)
		}
	}
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return types.Config{}, userError(fmt.Errorf("read config: %w", err))
		}
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, userError(fmt.Errorf("decode config: %w", err))
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, userError(fmt.Errorf("%w: %s: %w", errConfigInvalid, filepath.Join(configDir, configFileExt), err))
	}
	return cfg, nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does
// not exist in the config directory. An existing file is left alone.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return writeConfig(path, types.DefaultConfig())
}

// writeConfig marshals cfg to YAML under configHeader.
func writeConfig(path string, cfg types.Config) error {
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, append([]byte(configHeader), data...), 0o644)
}
