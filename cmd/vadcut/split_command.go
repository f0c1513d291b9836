package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"vadcut/internal/catalog"
	"vadcut/internal/clip"
	"vadcut/internal/pipeline"
)

func newSplitCommand(ctx *commandContext) *cobra.Command {
	var failFast bool
	var noCatalog bool
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "split <audio.wav>",
		Short: "Detect speech in a WAV file and write clips",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			run := func(store *catalog.Store) error {
				report, err := pipeline.New(cfg, store, logger).Run(cmd.Context(), args[0], failFast)
				if err != nil {
					return err
				}
				return renderReport(cmd, report, jsonOut)
			}
			if noCatalog {
				return run(nil)
			}
			return ctx.withStore(run)
		},
	}

	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "Abort the run on the first clip failure")
	cmd.Flags().BoolVar(&noCatalog, "no-catalog", false, "Skip recording clip metadata in the catalog")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the run report as JSON")
	return cmd
}

func renderReport(cmd *cobra.Command, report *pipeline.Report, jsonOut bool) error {
	if jsonOut {
		return writeJSON(cmd, report)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run %s: %d segment(s), %d clip(s), %d skipped (%s)\n",
		report.RunID, report.Segments, len(report.Clips), len(report.Skipped), report.Elapsed.Round(timePrecision))

	if len(report.Clips) > 0 {
		fmt.Fprintln(out, renderClipTable(report.Clips))
	}
	for _, skipped := range report.Skipped {
		fmt.Fprintf(out, "skipped %s: %v\n", skipped.Name, skipped.Err)
	}
	return nil
}

func renderClipTable(records []clip.Record) string {
	headers := []string{"Clip", "Start", "End", "Duration", "Padded"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.ClipName,
			formatSeconds(record.StartTime),
			formatSeconds(record.EndTime),
			formatSeconds(record.Duration),
			formatSeconds(record.PaddedDuration),
		})
	}
	aligns := []columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight}
	return renderTable(headers, rows, aligns)
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + "s"
}
