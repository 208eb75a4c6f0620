package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/handiism/episode-combiner/internal/audio"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the tags of the published episodes",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := ctx.ensureSettings()
			if err != nil {
				return err
			}

			entries, err := os.ReadDir(settings.DestinationDir)
			if err != nil {
				return fmt.Errorf("read destination: %w", err)
			}

			type listed struct {
				name string
				info *audio.TagInfo
			}
			var episodes []listed
			for _, entry := range entries {
				if !entry.Type().IsRegular() || !strings.HasSuffix(entry.Name(), "."+settings.FileFormat) {
					continue
				}
				info, err := audio.ReadTags(filepath.Join(settings.DestinationDir, entry.Name()))
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s %s: %v\n", warningPrefix, entry.Name(), err)
					continue
				}
				episodes = append(episodes, listed{name: entry.Name(), info: info})
			}

			out := cmd.OutOrStdout()
			if len(episodes) == 0 {
				fmt.Fprintf(out, "No episodes in %s\n", settings.DestinationDir)
				return nil
			}

			sort.SliceStable(episodes, func(i, j int) bool { return episodes[i].info.Track < episodes[j].info.Track })

			rows := make([][]string, 0, len(episodes))
			for _, ep := range episodes {
				rows = append(rows, []string{
					strconv.Itoa(ep.info.Track),
					ep.info.Title,
					ep.info.Artist,
					ep.info.Album,
					ep.info.Genre,
					yesNo(ep.info.HasCover),
					ep.name,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Track", "Title", "Artist", "Album", "Genre", "Cover", "File"},
				rows,
				[]columnAlignment{alignRight},
			))
			return nil
		},
	}
}
