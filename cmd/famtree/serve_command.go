package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"famtree/internal/logging"
	"famtree/internal/preview"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string
	var outputDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the generated site for local preview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := applyPathOverrides(cfg, "", outputDir); err != nil {
				return err
			}
			if strings.TrimSpace(bind) == "" {
				bind = cfg.Preview.Bind
			}
			if info, err := os.Stat(cfg.Paths.OutputDir); err != nil || !info.IsDir() {
				return fmt.Errorf("output directory %s not found; run `famtree generate` first", cfg.Paths.OutputDir)
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			logger = logging.NewComponentLogger(logger, "preview")

			fmt.Fprintf(cmd.OutOrStdout(), "Serving %s on http://%s (Ctrl+C to stop)\n", cfg.Paths.OutputDir, bind)
			return preview.ListenAndServe(cmd.Context(), bind, preview.NewServer(cfg.Paths.OutputDir, logger), logger)
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Listen address (overrides preview.bind)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Site directory to serve (overrides paths.output_dir)")
	return cmd
}
