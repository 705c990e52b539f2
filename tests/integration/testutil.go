// Package integration provides CLI integration tests for glossary. The
// tests build the binary once and drive it through os/exec.
package integration

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

var (
	// glossaryBin is the path to the built glossary binary.
	glossaryBin string
	// buildErr captures any build error.
	buildErr error
)

// BuildError wraps a build error with output.
type BuildError struct {
	Err    error
	Output string
}

func (e *BuildError) Error() string {
	return e.Err.Error() + ": " + e.Output
}

// FindProjectRoot finds the project root by walking up and looking for go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// FixtureCSV is the glossary every TestEnv starts with.
const FixtureCSV = "Source;Category;Definition;Link\n" +
	"RPI;Net Zero;A balance between emissions produced and removed.;\n" +
	"SAA;Divestment;Selling assets for ethical reasons.;http://x\n" +
	"RPI;Carbon Budget;Cumulative emissions allowed.;\n"

// TestEnv provides an isolated test environment with its own config
// directory, data directory and glossary file.
type TestEnv struct {
	t        *testing.T
	TempDir  string
	Config   string
	DataDir  string
	Glossary string
}

// NewTestEnv creates a new isolated test environment. The config.yaml
// points data_dir and glossary.path into the temp directory.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	if buildErr != nil {
		t.Fatalf("failed to build glossary: %v", buildErr)
	}
	if glossaryBin == "" {
		t.Fatal("glossary binary not built (glossaryBin is empty)")
	}

	tempDir := t.TempDir()
	env := &TestEnv{
		t:        t,
		TempDir:  tempDir,
		Config:   filepath.Join(tempDir, "config"),
		DataDir:  filepath.Join(tempDir, "data"),
		Glossary: filepath.Join(tempDir, "glossary.csv"),
	}

	if err := os.MkdirAll(env.Config, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	env.WriteConfig("data_dir: " + env.DataDir + "\nglossary:\n  path: " + env.Glossary + "\n")
	if err := os.WriteFile(env.Glossary, []byte(FixtureCSV), 0o644); err != nil {
		t.Fatalf("failed to write glossary: %v", err)
	}
	return env
}

// WriteConfig replaces config.yaml.
func (e *TestEnv) WriteConfig(content string) {
	e.t.Helper()
	if err := os.WriteFile(filepath.Join(e.Config, "config.yaml"), []byte(content), 0o644); err != nil {
		e.t.Fatalf("failed to write config: %v", err)
	}
}

// FeedbackFile is the default CSV feedback log in the data directory.
func (e *TestEnv) FeedbackFile() string {
	return filepath.Join(e.DataDir, "feedback.csv")
}

// CmdResult holds the result of a glossary command execution.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// cleanEnv returns os.Environ() without GLOSSARY_* and XDG_* variables.
func cleanEnv() []string {
	var env []string
	for _, e := range os.Environ() {
		if strings.HasPrefix(e, "GLOSSARY_") || strings.HasPrefix(e, "XDG_") {
			continue
		}
		env = append(env, e)
	}
	return env
}

// RunGlossary executes the glossary CLI with --config-dir set.
func (e *TestEnv) RunGlossary(args ...string) CmdResult {
	e.t.Helper()
	return e.RunGlossaryWith(nil, "", append([]string{"--config-dir", e.Config}, args...)...)
}

// RunGlossaryWith executes the glossary CLI with args unchanged, extra
// environment variables, and an optional working directory.
func (e *TestEnv) RunGlossaryWith(extraEnv []string, workDir string, args ...string) CmdResult {
	e.t.Helper()

	cmd := exec.Command(glossaryBin, args...)
	cmd.Env = append(cleanEnv(), "XDG_CONFIG_HOME="+filepath.Join(e.TempDir, "xdg"))
	cmd.Env = append(cmd.Env, extraEnv...)
	if workDir != "" {
		cmd.Dir = workDir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			e.t.Fatalf("failed to run glossary: %v", err)
		}
	}

	return CmdResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}

// MustRunGlossary executes the glossary CLI and fails the test if it returns non-zero.
func (e *TestEnv) MustRunGlossary(args ...string) CmdResult {
	e.t.Helper()
	result := e.RunGlossary(args...)
	if result.ExitCode != 0 {
		e.t.Fatalf("glossary %v failed with exit code %d:\nstdout: %s\nstderr: %s",
			args, result.ExitCode, result.Stdout, result.Stderr)
	}
	return result
}

// ParseJSON parses JSON output into the target type.
func ParseJSON[T any](t *testing.T, jsonStr string) T {
	t.Helper()
	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		t.Fatalf("failed to parse JSON %q: %v", jsonStr, err)
	}
	return result
}

// ReadCSVFile reads every row of a comma-delimited file, header included.
func ReadCSVFile(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open CSV file %s: %v", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		t.Fatalf("failed to parse CSV file %s: %v", path, err)
	}
	return rows
}
