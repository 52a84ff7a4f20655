package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"famtree/internal/linkcheck"
	"famtree/internal/manifest"
)

const maxBrokenRows = 50

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify that every link in the generated site resolves",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := applyPathOverrides(cfg, "", outputDir); err != nil {
				return err
			}
			root := cfg.Paths.OutputDir
			if info, err := os.Stat(root); err != nil || !info.IsDir() {
				return fmt.Errorf("output directory %s not found; run `famtree generate` first", root)
			}

			report, err := linkcheck.Check(cmd.Context(), root, cfg.Site.Extension)
			if err != nil {
				return err
			}
			missing, listed, err := missingDocuments(root)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			status := newStatusReport(out)
			status.section("Site check")
			status.fact("Documents", fmt.Sprint(report.Documents))
			status.fact("Links", fmt.Sprintf("%d local, %d external", report.Links, report.External))
			status.tally("Broken links", len(report.Broken), statusBroken, "")
			if listed {
				status.tally("Missing documents", len(missing), statusBroken, "listed in "+manifest.FileName)
			} else {
				status.fact("Manifest", "not present")
			}

			if len(report.Broken) > 0 {
				rows := make([][]string, 0, min(len(report.Broken), maxBrokenRows))
				for _, b := range report.Broken[:min(len(report.Broken), maxBrokenRows)] {
					rows = append(rows, []string{b.Document, b.Href, b.Target})
				}
				fmt.Fprintln(out, renderTable([]column{{header: "Document"}, {header: "Href"}, {header: "Target"}}, rows))
				if len(report.Broken) > maxBrokenRows {
					fmt.Fprintf(out, "... and %d more\n", len(report.Broken)-maxBrokenRows)
				}
			}
			for _, doc := range missing {
				fmt.Fprintf(out, "missing: %s\n", doc)
			}

			if !report.OK() || len(missing) > 0 {
				return errors.New("site check failed")
			}
			fmt.Fprintln(out, "Site check passed")
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory to check (overrides paths.output_dir)")
	return cmd
}

// missingDocuments lists manifest documents absent from root. listed is false
// when no manifest was written.
func missingDocuments(root string) (missing []string, listed bool, err error) {
	m, err := manifest.Read(filepath.Join(root, manifest.FileName))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	docs := m.Documents()
	if m.Stylesheet != "" {
		docs = append(docs, m.Stylesheet)
	}
	for _, doc := range docs {
		if _, statErr := os.Stat(filepath.Join(root, filepath.FromSlash(doc))); statErr != nil {
			missing = append(missing, doc)
		}
	}
	return missing, true, nil
}
