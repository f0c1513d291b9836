package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vadcut/internal/catalog"
)

func newClipsCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var runID string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "clips",
		Short: "List clips recorded in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *catalog.Store) error {
				var entries []catalog.Entry
				var err error
				if runID != "" {
					entries, err = store.ListRun(cmd.Context(), runID)
				} else {
					entries, err = store.List(cmd.Context(), limit)
				}
				if err != nil {
					return err
				}

				if jsonOut {
					return writeJSON(cmd, entries)
				}
				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(out, "No clips recorded")
					return nil
				}
				if !isTerminal(out) {
					for _, entry := range entries {
						fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%s\t%s\n",
							entry.ClipName, entry.RunID, entry.Source,
							formatSeconds(entry.StartTime), formatSeconds(entry.EndTime), formatSeconds(entry.Duration))
					}
					return nil
				}
				fmt.Fprintln(out, renderEntryTable(entries))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of clips to show")
	cmd.Flags().StringVar(&runID, "run", "", "Show clips from a single run")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit entries as JSON")
	return cmd
}

func renderEntryTable(entries []catalog.Entry) string {
	headers := []string{"Clip", "Run", "Source", "Start", "End", "Duration", "Created"}
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []string{
			entry.ClipName,
			shortRunID(entry.RunID),
			entry.Source,
			formatSeconds(entry.StartTime),
			formatSeconds(entry.EndTime),
			formatSeconds(entry.Duration),
			entry.CreatedAt.Local().Format("2006-01-02 15:04:05"),
		})
	}
	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft}
	return renderTable(headers, rows, aligns)
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
