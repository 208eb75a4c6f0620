package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/handiism/episode-combiner/internal/episode"
)

func newShowsCommand(ctx *commandContext) *cobra.Command {
	var ext string

	cmd := &cobra.Command{
		Use:         "shows [dir]",
		Short:       "List the show names found in a media directory",
		Long:        "List the distinct show names in a media directory. A show name is the part of a file name before its first digit.",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var dir string
			if len(args) == 1 {
				dir = args[0]
			} else {
				settings, err := ctx.ensureSettings()
				if err != nil {
					return err
				}
				dir = settings.SourceDir
				if !cmd.Flags().Changed("ext") {
					ext = settings.FileFormat
				}
			}

			shows, err := episode.ShowCheck(dir, ext)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, show := range episode.SortedShows(shows) {
				fmt.Fprintln(out, show)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&ext, "ext", "mp3", "File extension to inspect")
	return cmd
}
