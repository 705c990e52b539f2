package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/glossary/internal/feedback"
	"github.com/mesh-intelligence/glossary/pkg/types"
)

func newFeedbackCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Submit and review feedback",
	}
	cmd.AddCommand(newFeedbackSubmitCmd(a))
	cmd.AddCommand(newFeedbackListCmd(a))
	cmd.AddCommand(newFeedbackExportCmd(a))
	return cmd
}

func newFeedbackSubmitCmd(a *app) *cobra.Command {
	var name, text string
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Append one feedback record",
		Long: "Append one feedback record to the configured log. --text is required;\n" +
			"--name is required when feedback.require_name is true.",
		Example: "  glossary feedback submit --text \"Add a definition for offsetting\"\n" +
			"  glossary feedback submit --name Ada --text \"Great resource\"",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			log, err := s.openFeedback()
			if err != nil {
				return err
			}
			defer log.Close()

			sub := feedback.NewSubmitter(log, s.cfg.Feedback.RequireName, s.logger)
			res, err := sub.Submit(name, text)

			out := cmd.OutOrStdout()
			if s.json {
				if jerr := writeJSON(out, res); jerr != nil {
					return jerr
				}
			}
			if err != nil {
				code := exitUserError
				if errors.Is(err, types.ErrWriteFailure) {
					code = exitSysError
				}
				return &exitError{code: code, msg: res.Message, err: err}
			}
			if !s.json {
				fmt.Fprintln(out, res.Message)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "your name")
	cmd.Flags().StringVar(&text, "text", "", "feedback text")
	return cmd
}

func newFeedbackListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every stored feedback record in submission order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			records, err := readFeedback(s)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if s.json {
				if records == nil {
					records = []types.FeedbackRecord{}
				}
				return writeJSON(out, records)
			}
			for _, r := range records {
				if r.Name != "" {
					fmt.Fprintf(out, "%s  %s: %s\n", r.Timestamp.Format(types.TimestampLayout), r.Name, r.Text)
					continue
				}
				fmt.Fprintf(out, "%s  %s\n", r.Timestamp.Format(types.TimestampLayout), r.Text)
			}
			return nil
		},
	}
}

func newFeedbackExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Write every feedback record to a JSON Lines file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			records, err := readFeedback(s)
			if err != nil {
				return err
			}
			if err := feedback.ExportJSONL(args[0], records); err != nil {
				return sysError(fmt.Errorf("export feedback: %w", err))
			}
			s.logger.Info("feedback exported", slog.String("path", args[0]), slog.Int("records", len(records)))
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d record(s) to %s\n", len(records), args[0])
			return nil
		},
	}
}

// readFeedback opens the configured log and returns its records.
func readFeedback(s *session) ([]types.FeedbackRecord, error) {
	log, err := s.openFeedback()
	if err != nil {
		return nil, err
	}
	defer log.Close()

	records, err := log.Records()
	if err != nil {
		return nil, sysError(fmt.Errorf("read feedback: %w", err))
	}
	return records, nil
}
