package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/handiism/episode-combiner/internal/config"
	"github.com/handiism/episode-combiner/internal/logging"
	"github.com/handiism/episode-combiner/internal/tui"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configFlag string

	cmd := &cobra.Command{
		Use:           "episode-combiner-tui",
		Short:         "Interactive episode combiner",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := strings.TrimSpace(configFlag)
			if path == "" {
				path = config.DefaultPath()
			}
			settings, err := config.Load(path)
			if err != nil {
				return err
			}

			// The alternate screen owns stderr, so logs only go to log_file.
			logger, closeLog, err := logging.NewFromSettings(settings, false)
			if err != nil {
				return fmt.Errorf("init logging: %w", err)
			}
			defer closeLog()

			return tui.Run(settings, logger)
		},
	}

	cmd.Flags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	return cmd
}
