package main

import (
	"github.com/spf13/cobra"

	"kinosync/internal/library"
)

func newActivityCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show recent activity log entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *library.Store) error {
				entries, err := store.RecentActivity(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					cmd.Println("No activity.")
					return nil
				}
				rows := make([][]string, 0, len(entries))
				for _, entry := range entries {
					rows = append(rows, []string{entry.CreatedAt, entry.ShortSummary, entry.Summary})
				}
				cmd.Println(renderTable(
					[]string{"When", "Event", "Details"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum entries to show")
	return cmd
}
