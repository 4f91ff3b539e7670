package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/designlint/designlint/internal/adapters/outbound/document"
	"github.com/designlint/designlint/internal/adapters/outbound/gitinfo"
	"github.com/designlint/designlint/internal/adapters/outbound/history"
	"github.com/designlint/designlint/internal/adapters/outbound/scanner"
	"github.com/designlint/designlint/internal/adapters/outbound/storage"
	"github.com/designlint/designlint/internal/adapters/outbound/tui"
	"github.com/designlint/designlint/internal/application"
	"github.com/designlint/designlint/internal/domain"
	"github.com/designlint/designlint/internal/logger"
)

func newLintCmd(opts *globalOptions) *cobra.Command {
	var (
		jsonOutput  bool
		ciMode      bool
		selectAll   bool
		selectIDs   []string
		showIgnored bool
		showHistory bool
		exclude     []string
	)

	cmd := &cobra.Command{
		Use:   "lint [path]",
		Short: "Lint the selection of one or more design documents",
		Long: "Lint the stored selection of a design document, or of every document under a directory. " +
			"Diagnostics listed in the ignored errors are hidden unless --show-ignored is set.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			if selectAll && len(selectIDs) > 0 {
				return errors.New("--all and --select are mutually exclusive")
			}

			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			docs, err := scanner.New().Scan(path, exclude...)
			if err != nil {
				return fmt.Errorf("scanning %s: %w", path, err)
			}
			if len(docs) == 0 {
				return fmt.Errorf("no documents found in %s", path)
			}

			svc := application.NewLintService(cfg, gitinfo.New())
			store := storage.New(cfg.StorageDir)
			hist := history.New(cfg.StorageDir)
			docLog := logger.For(logger.ComponentDocument)
			storeLog := logger.For(logger.ComponentStorage)

			var reports []domain.Report
			for _, p := range docs {
				doc, err := document.Load(p, document.WithLogger(docLog.With("path", p)))
				if err != nil {
					return err
				}
				if err := applySelection(doc, selectAll, selectIDs); err != nil {
					return fmt.Errorf("%s: %w", p, err)
				}

				report, err := svc.Run(cmd.Context(), application.LintTarget{
					Host:        doc,
					Name:        doc.Name(),
					Path:        p,
					Storage:     store,
					ShowIgnored: showIgnored,
				})
				if errors.Is(err, domain.ErrEmptySelection) {
					fmt.Fprintf(cmd.ErrOrStderr(), "skipping %s: nothing selected (use --all or --select)\n", p)
					continue
				}
				if err != nil {
					return fmt.Errorf("linting %s: %w", p, err)
				}
				reports = append(reports, report)

				if err := hist.Save(domain.NewRunEntry(report, time.Now().Format(time.RFC3339))); err != nil {
					storeLog.Warnw("lint history not saved", "document", report.Document, "error", err)
				}
			}

			if len(reports) == 0 {
				return fmt.Errorf("%w in %s", domain.ErrEmptySelection, path)
			}

			switch {
			case showHistory:
				for _, r := range reports {
					entries, err := hist.Load(r.Document)
					if err != nil {
						return fmt.Errorf("loading history: %w", err)
					}
					fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(r.Document, entries))
				}
				return nil
			case jsonOutput:
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(reports); err != nil {
					return err
				}
			default:
				for _, r := range reports {
					fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(r))
				}
			}

			if ciMode {
				total := 0
				for _, r := range reports {
					total += r.IssueCount()
				}
				if total > 0 {
					return fmt.Errorf("found %d design lint issues", total)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output reports as JSON")
	cmd.Flags().BoolVar(&ciMode, "ci", false, "CI mode: exit 1 if any issue is found")
	cmd.Flags().BoolVar(&selectAll, "all", false, "Lint every top-level layer instead of the stored selection")
	cmd.Flags().StringSliceVar(&selectIDs, "select", nil, "Comma-separated layer ids to lint instead of the stored selection")
	cmd.Flags().BoolVar(&showIgnored, "show-ignored", false, "Include diagnostics listed in the ignored errors")
	cmd.Flags().BoolVar(&showHistory, "history", false, "Show lint history for each document")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Directory or file names to skip when scanning")

	return cmd
}

func applySelection(doc *document.Document, all bool, ids []string) error {
	switch {
	case all:
		doc.SelectAll()
	case len(ids) > 0:
		nodes := make([]*domain.Node, 0, len(ids))
		for _, id := range ids {
			n, err := doc.NodeByID(strings.TrimSpace(id))
			if err != nil {
				return err
			}
			nodes = append(nodes, n)
		}
		doc.SetSelection(nodes)
	}
	return nil
}
