package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/glossary/internal/feedback"
	"github.com/mesh-intelligence/glossary/internal/tui"
)

func newBrowseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the glossary interactively and leave feedback",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd)
			if err != nil {
				return err
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
			model := tui.New(store, sub, tui.Options{
				Style:         s.cfg.Presentation.Style,
				SourceControl: s.cfg.Presentation.SourceControl,
			})
			return tui.Run(model)
		},
	}
}
