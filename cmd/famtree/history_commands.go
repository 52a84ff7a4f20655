package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"famtree/internal/store"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent generator runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openHistory(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			runs, err := st.Runs(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					shortID(run.ID),
					run.StartedAt.Local().Format("2006-01-02 15:04:05"),
					run.Status,
					strconv.Itoa(run.People),
					strconv.Itoa(run.Surnames),
					strconv.Itoa(run.FallbackLinks),
					run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond).String(),
					shortID(run.GEDCOMSHA256),
				})
			}
			fmt.Fprintln(out, renderTable([]column{
				{header: "Run"},
				{header: "Started"},
				{header: "Status"},
				{header: "People", align: alignRight},
				{header: "Surnames", align: alignRight},
				{header: "Fallbacks", align: alignRight},
				{header: "Duration", align: alignRight},
				{header: "Input"},
			}, rows))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of runs to show (0 for all)")
	return cmd
}

func newDriftCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "drift",
		Short: "Compare link paths of the last two successful runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openHistory(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			report, err := st.Drift(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if report == nil {
				fmt.Fprintln(out, "Fewer than two successful runs recorded")
				return nil
			}

			status := newStatusReport(out)
			status.fact("Previous run", shortID(report.Previous.ID))
			status.fact("Current run", shortID(report.Current.ID))
			status.fact("Same input", yesNo(report.SameInput()))
			kind := statusFact
			if report.SameInput() {
				kind = statusNotice
			}
			status.tally("Changed links", len(report.Changes), kind, "")
			if len(report.Changes) == 0 {
				return nil
			}

			rows := make([][]string, 0, len(report.Changes))
			for _, change := range report.Changes {
				rows = append(rows, []string{change.Pointer, string(change.Kind), change.Before, change.After})
			}
			fmt.Fprintln(out, renderTable([]column{
				{header: "Pointer"},
				{header: "Change"},
				{header: "Before"},
				{header: "After"},
			}, rows))
			return nil
		},
	}
}

func openHistory(ctx *commandContext) (*store.Store, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.History.Enabled {
		return nil, fmt.Errorf("run history is disabled (history.enabled = false)")
	}
	st, err := store.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	return st, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
