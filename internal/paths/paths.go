// Package paths resolves configuration and data directory locations.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// appName names the per-user platform directories.
const appName = "glossary"

// CWD-relative default data directory name.
const DefaultDataDirName = ".glossary-data"

// Environment variable names for overrides.
const (
	EnvConfigDir = "GLOSSARY_CONFIG_DIR"
	EnvDataDir   = "GLOSSARY_DATA_DIR"
	EnvGlossary  = "GLOSSARY_FILE"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	goos          string
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	goos:          runtime.GOOS,
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/glossary (fallback ~/.config/glossary)
// macOS:   ~/Library/Application Support/glossary
// Windows: %APPDATA%/glossary
func DefaultConfigDir() (string, error) {
	switch platformDir.goos {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", appName), nil
	default:
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appName), nil
	}
}

// ResolveConfigDir returns the configuration directory following the precedence
// chain: flag > GLOSSARY_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > configYAMLValue > GLOSSARY_DATA_DIR env > $(CWD)/.glossary-data.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}

// ResolveGlossaryPath returns the glossary file following the precedence
// chain: flag > GLOSSARY_FILE env > configValue > defaultName in the working
// directory. Relative config values resolve against configDir so a
// config.yaml can point at a file stored beside it; relative flag and env
// values resolve against the working directory.
func ResolveGlossaryPath(flag, configValue, configDir, defaultName string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvGlossary); env != "" {
		return filepath.Abs(env)
	}
	if configValue != "" {
		if filepath.IsAbs(configValue) {
			return configValue, nil
		}
		if configDir != "" {
			candidate := filepath.Join(configDir, configValue)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
		return filepath.Abs(configValue)
	}
	return filepath.Abs(defaultName)
}
