package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"famtree/internal/generator"
	"famtree/internal/views"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <pointer>",
		Short: "Show how one individual resolves without writing pages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			inspection, err := generator.New(cfg, logger).Inspect(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			status := newStatusReport(out)
			view := inspection.View
			status.section(view.Summary.Name)
			status.fact("Pointer", view.Pointer)
			status.fact("Identifier", view.ID)
			status.fact("Link path", view.LinkPath)
			status.fact("Surname key", inspection.Entry.SurnameKey)
			status.fact("Born", view.Summary.Birth.Value)
			status.fact("Died", view.Summary.Death.Value)
			if view.Chart != nil {
				status.line("Ancestor chart", statusOK, fmt.Sprintf("%d boxes", len(view.Chart.Boxes)))
			}

			var rows [][]string
			if view.Parents != nil {
				for _, row := range view.Parents.Rows {
					rows = append(rows, relativeRow(row))
				}
				if view.Parents.Alternatives > 0 {
					status.line("Other parents", statusNotice, fmt.Sprintf("%d unions not shown", view.Parents.Alternatives))
				}
			}
			for _, fam := range view.Families {
				rows = append(rows, []string{string(fam.Role), fam.Spouse.Name, fam.SpouseBirth, fam.SpouseDeath, fam.Spouse.Href})
				for _, child := range fam.Children {
					rows = append(rows, relativeRow(child))
				}
			}
			if len(rows) == 0 {
				fmt.Fprintln(out, "No relatives recorded")
				return nil
			}
			fmt.Fprintln(out, renderTable([]column{
				{header: "Relation"},
				{header: "Name"},
				{header: "Born", align: alignRight},
				{header: "Died", align: alignRight},
				{header: "Link"},
			}, rows))
			return nil
		},
	}
}

func relativeRow(row views.Row) []string {
	href := row.Link.Href
	if row.Link.Fallback {
		href += " (fallback)"
	}
	return []string{row.Relation, row.Link.Name, row.Birth, row.Death, href}
}
