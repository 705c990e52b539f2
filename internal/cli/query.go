package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/glossary/internal/filter"
	"github.com/mesh-intelligence/glossary/internal/render"
	"github.com/mesh-intelligence/glossary/pkg/types"
)

func newSourcesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List the distinct Source values",
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
			return printList(cmd.OutOrStdout(), s.json, store.Sources())
		},
	}
}

func newCategoriesCmd(a *app) *cobra.Command {
	var source string
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List the Category values selectable as keywords",
		Long: "List the distinct Category values of entries whose Source equals\n" +
			"--source, or of all entries when --source is empty or None.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			store, err := s.loadGlossary()
			if err != nil {
				return err
			}
			q := filter.NewQuery(source, "")
			return printList(cmd.OutOrStdout(), s.json, store.Categories(q.Source))
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "restrict to one Source")
	return cmd
}

func newSearchCmd(a *app) *cobra.Command {
	var (
		source  string
		keyword string
		style   string
		table   bool
	)
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Show entries matching a Source and keyword",
		Long: "Show entries whose Source equals --source and whose Definition,\n" +
			"Source, or Category contains --keyword (case-insensitive). Either\n" +
			"filter may be empty or None.",
		Example: "  glossary search --source RPI\n" +
			"  glossary search --keyword \"net zero\" --style plain\n" +
			"  glossary search --table",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd)
			if err != nil {
				return err
			}
			if style == "" {
				style = s.cfg.Presentation.Style
			}
			if style != types.StyleCard && style != types.StylePlain {
				return userError(fmt.Errorf("%w: %q", types.ErrStyleUnknown, style))
			}

			store, err := s.loadGlossary()
			if err != nil {
				return err
			}

			q := filter.NewQuery(source, keyword)
			entries := store.Filter(q.Source, q.Keyword)

			out := cmd.OutOrStdout()
			switch {
			case s.json:
				if entries == nil {
					entries = []types.Entry{}
				}
				return writeJSON(out, entries)
			case table:
				return render.Table(out, entries)
			}
			if q.IsZero() {
				fmt.Fprintln(out, render.NoFiltersInfo(store.Sources()))
				fmt.Fprintln(out)
			}
			fmt.Fprint(out, render.New(style, 0).Entries(entries))
			return nil
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "exact Source to keep")
	cmd.Flags().StringVar(&keyword, "keyword", "", "case-insensitive substring to match")
	cmd.Flags().StringVar(&style, "style", "", "result style: card or plain (default from config)")
	cmd.Flags().BoolVar(&table, "table", false, "print a plain table instead of styled results")
	return cmd
}

// printList prints values one per line, or as a JSON array.
func printList(w io.Writer, jsonMode bool, values []string) error {
	if jsonMode {
		if values == nil {
			values = []string{}
		}
		return writeJSON(w, values)
	}
	for _, v := range values {
		fmt.Fprintln(w, v)
	}
	return nil
}
