package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigDirIsCreated(t *testing.T) {
	env := NewTestEnv(t)
	work := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(work, "glossary.csv"), []byte(FixtureCSV), 0o644))

	result := env.RunGlossaryWith(nil, work, "sources")
	require.Equal(t, 0, result.ExitCode, result.Stderr)
	assert.Equal(t, "RPI\nSAA\n", result.Stdout)
	assert.FileExists(t, filepath.Join(env.TempDir, "xdg", "glossary", "config.yaml"))
}

func TestConfigDirFromEnv(t *testing.T) {
	env := NewTestEnv(t)

	result := env.RunGlossaryWith([]string{"GLOSSARY_CONFIG_DIR=" + env.Config}, "", "feedback", "submit", "--text", "via env")
	require.Equal(t, 0, result.ExitCode, result.Stderr)
	assert.FileExists(t, env.FeedbackFile())
}

func TestDataDirPrecedence(t *testing.T) {
	env := NewTestEnv(t)
	flagDir := filepath.Join(env.TempDir, "flag-data")
	envDir := filepath.Join(env.TempDir, "env-data")
	extra := []string{"GLOSSARY_DATA_DIR=" + envDir}

	// config.yaml data_dir beats the environment.
	result := env.RunGlossaryWith(extra, "", "--config-dir", env.Config, "feedback", "submit", "--text", "a")
	require.Equal(t, 0, result.ExitCode, result.Stderr)
	assert.FileExists(t, env.FeedbackFile())
	assert.NoDirExists(t, envDir)

	// The flag beats config.yaml.
	result = env.RunGlossaryWith(extra, "", "--config-dir", env.Config, "--data-dir", flagDir, "feedback", "submit", "--text", "b")
	require.Equal(t, 0, result.ExitCode, result.Stderr)
	assert.FileExists(t, filepath.Join(flagDir, "feedback.csv"))

	// Without data_dir in config.yaml the environment applies.
	env.WriteConfig("glossary:\n  path: " + env.Glossary + "\n")
	result = env.RunGlossaryWith(extra, "", "--config-dir", env.Config, "feedback", "submit", "--text", "c")
	require.Equal(t, 0, result.ExitCode, result.Stderr)
	assert.FileExists(t, filepath.Join(envDir, "feedback.csv"))
}

func TestGlossaryPathPrecedence(t *testing.T) {
	env := NewTestEnv(t)
	other := filepath.Join(env.TempDir, "other.csv")
	require.NoError(t, os.WriteFile(other, []byte("Source;Category;Definition;Link\nIPCC;Mitigation;Reducing emissions.;\n"), 0o644))

	result := env.RunGlossaryWith([]string{"GLOSSARY_FILE=" + other}, "", "--config-dir", env.Config, "sources")
	require.Equal(t, 0, result.ExitCode, result.Stderr)
	assert.Equal(t, "IPCC\n", result.Stdout, "GLOSSARY_FILE beats config.yaml")

	result = env.RunGlossaryWith([]string{"GLOSSARY_FILE=" + other}, "", "--config-dir", env.Config, "--glossary", env.Glossary, "sources")
	require.Equal(t, 0, result.ExitCode, result.Stderr)
	assert.Equal(t, "RPI\nSAA\n", result.Stdout, "--glossary beats GLOSSARY_FILE")
}

func TestConfigEnvOverride(t *testing.T) {
	env := NewTestEnv(t)

	result := env.RunGlossaryWith([]string{"GLOSSARY_FEEDBACK_REQUIRE_NAME=true"}, "", "--config-dir", env.Config, "feedback", "submit", "--text", "x")
	assert.Equal(t, 1, result.ExitCode)
	assert.Contains(t, result.Stderr, "Please enter your name before submitting.")
}

func TestInvalidConfigValue(t *testing.T) {
	env := NewTestEnv(t)
	env.WriteConfig("feedback:\n  backend: postgres\n")

	result := env.RunGlossary("sources")
	assert.Equal(t, 1, result.ExitCode)
	assert.Contains(t, result.Stderr, "unknown feedback backend")
}
