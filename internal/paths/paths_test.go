package paths

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withPlatform swaps the platform hooks for the duration of a test.
func withPlatform(t *testing.T, goos, home, userConfig string) {
	t.Helper()
	saved := platformDir
	t.Cleanup(func() { platformDir = saved })

	platformDir.goos = goos
	platformDir.homeDir = func() (string, error) { return home, nil }
	platformDir.userConfigDir = func() (string, error) { return userConfig, nil }
}

func TestDefaultConfigDir(t *testing.T) {
	t.Run("linux uses XDG_CONFIG_HOME when set", func(t *testing.T) {
		withPlatform(t, "linux", "/home/ada", "")
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
		got, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/xdg-config/glossary", got)
	})

	t.Run("linux falls back to ~/.config", func(t *testing.T) {
		withPlatform(t, "linux", "/home/ada", "")
		t.Setenv("XDG_CONFIG_HOME", "")
		got, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, "/home/ada/.config/glossary", got)
	})

	t.Run("darwin uses the user config dir", func(t *testing.T) {
		withPlatform(t, "darwin", "/Users/ada", "/Users/ada/Library/Application Support")
		got, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, "/Users/ada/Library/Application Support/glossary", got)
	})

	t.Run("home lookup failure is returned", func(t *testing.T) {
		withPlatform(t, "linux", "", "")
		platformDir.homeDir = func() (string, error) { return "", errors.New("no home") }
		t.Setenv("XDG_CONFIG_HOME", "")
		_, err := DefaultConfigDir()
		assert.Error(t, err)
	})
}

func TestResolveConfigDir(t *testing.T) {
	tests := []struct {
		name   string
		flag   string
		envVal string
		want   string
	}{
		{name: "flag wins over env", flag: "/explicit/config", envVal: "/env/config", want: "/explicit/config"},
		{name: "env wins when flag empty", envVal: "/env/config", want: "/env/config"},
		{name: "platform default when both empty", want: "/home/ada/.config/glossary"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withPlatform(t, "linux", "/home/ada", "")
			t.Setenv("XDG_CONFIG_HOME", "")
			t.Setenv(EnvConfigDir, tt.envVal)
			got, err := ResolveConfigDir(tt.flag)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveDataDir(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)

	tests := []struct {
		name          string
		flag          string
		configYAMLVal string
		envVal        string
		want          string
	}{
		{name: "flag wins over all", flag: "/flag/data", configYAMLVal: "/config/data", envVal: "/env/data", want: "/flag/data"},
		{name: "config.yaml wins over env", configYAMLVal: "/config/data", envVal: "/env/data", want: "/config/data"},
		{name: "env wins when flag and config empty", envVal: "/env/data", want: "/env/data"},
		{name: "CWD default when all empty", want: filepath.Join(cwd, DefaultDataDirName)},
		{name: "relative flag becomes absolute", flag: "rel/data", want: filepath.Join(cwd, "rel", "data")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvDataDir, tt.envVal)
			got, err := ResolveDataDir(tt.flag, tt.configYAMLVal)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveGlossaryPath(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)

	configDir := t.TempDir()
	beside := filepath.Join(configDir, "terms.csv")
	require.NoError(t, os.WriteFile(beside, []byte("x"), 0o644))

	tests := []struct {
		name        string
		flag        string
		envVal      string
		configValue string
		want        string
	}{
		{name: "flag wins", flag: "/flag/g.csv", envVal: "/env/g.csv", configValue: "terms.csv", want: "/flag/g.csv"},
		{name: "env beats config", envVal: "/env/g.csv", configValue: "terms.csv", want: "/env/g.csv"},
		{name: "absolute config value", configValue: "/abs/g.xlsx", want: "/abs/g.xlsx"},
		{name: "relative config found beside config.yaml", configValue: "terms.csv", want: beside},
		{name: "relative config not beside config.yaml uses CWD", configValue: "other.csv", want: filepath.Join(cwd, "other.csv")},
		{name: "default name in CWD", want: filepath.Join(cwd, "glossary.csv")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvGlossary, tt.envVal)
			got, err := ResolveGlossaryPath(tt.flag, tt.configValue, configDir, "glossary.csv")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
