// Package cli implements the glossary command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/glossary/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir    string
	dataDir      string
	glossaryPath string
	logLevel     string
	jsonMode     bool
}

// NewRootCmd creates the top-level "glossary" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "glossary",
		Short: "Browse a glossary of terms and collect feedback",
		Long: "Glossary loads a table of terms (Source, Category, Definition, Link),\n" +
			"filters it by source and keyword, and records user feedback to an\n" +
			"append-only log.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
		// Execute prints the error once, with the exit code it maps to.
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: ./.glossary-data)")
	root.PersistentFlags().StringVar(&a.flags.glossaryPath, "glossary", "", "glossary file (default: glossary.path from config.yaml)")
	root.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newSourcesCmd(a))
	root.AddCommand(newCategoriesCmd(a))
	root.AddCommand(newSearchCmd(a))
	root.AddCommand(newFeedbackCmd(a))
	root.AddCommand(newBrowseCmd(a))
	root.AddCommand(newServeCmd(a))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(run(NewRootCmd(), os.Args[1:], os.Stderr))
}

// run executes root with args and returns the process exit code. Errors
// are printed to stderr.
func run(root *cobra.Command, args []string, stderr io.Writer) int {
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return exitCode(err)
	}
	return exitSuccess
}

// exitError carries an explicit exit code and, optionally, the message to
// show instead of the underlying error text.
type exitError struct {
	code int
	msg  string
	err  error
}

func (e *exitError) Error() string {
	if e.msg != "" {
		return e.msg
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func userError(err error) error {
	return &exitError{code: exitUserError, err: err}
}

func sysError(err error) error {
	return &exitError{code: exitSysError, err: err}
}

// exitCode maps an error to a process exit code. Glossary load and
// feedback write failures are system errors; everything else (bad flags,
// validation, bad configuration) is the user's to fix.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	if errors.Is(err, types.ErrDataUnavailable) || errors.Is(err, types.ErrWriteFailure) {
		return exitSysError
	}
	return exitUserError
}
