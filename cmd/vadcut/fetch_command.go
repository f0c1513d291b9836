package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"vadcut/internal/deps"
	"vadcut/internal/fetch"
	"vadcut/internal/wav"
)

func newFetchCommand(ctx *commandContext) *cobra.Command {
	var outputPath string
	var sampleRate int

	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Download remote audio and normalize it to mono 16-bit WAV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !wav.SupportedRate(sampleRate) {
				return fmt.Errorf("unsupported sample rate %d (supported: 8000, 16000, 32000, 48000)", sampleRate)
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			statuses := deps.CheckBinaries(deps.Requirements(cfg))
			for _, status := range statuses {
				if !status.Available {
					return fmt.Errorf("%s is not available (%s); run `vadcut deps` for details", status.Name, status.Detail)
				}
			}

			dest := strings.TrimSpace(outputPath)
			if dest == "" {
				dest = filepath.Join(cfg.Paths.WorkDir, "source.wav")
			}

			fetcher := fetch.New(cfg.YtDlpBinary(), cfg.FFmpegBinary(), cfg.Paths.WorkDir, logger)
			if err := fetcher.Fetch(cmd.Context(), args[0], dest, sampleRate); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote normalized audio to %s\n", dest)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination WAV path (defaults to the work directory)")
	cmd.Flags().IntVar(&sampleRate, "sample-rate", fetch.DefaultSampleRate, "Target sample rate in Hz")
	return cmd
}
