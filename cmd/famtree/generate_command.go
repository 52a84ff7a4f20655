package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"famtree/internal/config"
	"famtree/internal/generator"
)

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var gedcomPath string
	var outputDir string
	var clean bool
	var workers int

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the site from the GEDCOM file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := applyPathOverrides(cfg, gedcomPath, outputDir); err != nil {
				return err
			}
			if workers < 0 {
				return fmt.Errorf("--workers must be positive, got %d", workers)
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			summary, err := generator.New(cfg, logger).Run(cmd.Context(), generator.Options{
				Clean:   clean,
				Workers: workers,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			status := newStatusReport(out)
			status.section("Generation")
			status.fact("Run", summary.RunID)
			status.fact("Output", summary.OutputDir)
			status.line("People", statusOK, fmt.Sprintf("%d pages", summary.People))
			status.line("Surnames", statusOK, fmt.Sprintf("%d pages", summary.Surnames))
			status.line("Documents", statusOK, fmt.Sprintf("%d written in %s", summary.Documents, summary.Duration.Round(time.Millisecond)))
			status.tally("Fallback links", summary.FallbackLinks, statusNotice, "")
			status.tally("Duplicate pointers", len(summary.Duplicates), statusNotice, strings.Join(summary.Duplicates, " "))
			status.tally("Path collisions", len(summary.Collisions), statusNotice, strings.Join(summary.Collisions, " "))
			status.tally("Extra parent unions", summary.AlternativeParents, statusFact, "")
			if summary.Drift != nil {
				kind := statusOK
				if len(summary.Drift.Changes) > 0 && summary.Drift.SameInput() {
					kind = statusNotice
				}
				status.line("Link drift", kind, fmt.Sprintf("%d changes since %s", len(summary.Drift.Changes), shortID(summary.Drift.Previous.ID)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&gedcomPath, "gedcom", "", "GEDCOM file to read (overrides paths.gedcom_file)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (overrides paths.output_dir)")
	cmd.Flags().BoolVar(&clean, "clean", false, "Remove existing people and surname pages before writing")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Person page render workers (overrides render.workers)")
	return cmd
}

func applyPathOverrides(cfg *config.Config, gedcomPath, outputDir string) error {
	if strings.TrimSpace(gedcomPath) != "" {
		expanded, err := config.ExpandPath(strings.TrimSpace(gedcomPath))
		if err != nil {
			return fmt.Errorf("resolve --gedcom: %w", err)
		}
		cfg.Paths.GEDCOMFile = expanded
	}
	if strings.TrimSpace(outputDir) != "" {
		expanded, err := config.ExpandPath(strings.TrimSpace(outputDir))
		if err != nil {
			return fmt.Errorf("resolve --output: %w", err)
		}
		cfg.Paths.OutputDir = expanded
	}
	return nil
}
