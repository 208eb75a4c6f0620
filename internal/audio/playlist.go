package audio

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/handiism/episode-combiner/internal/model"
)

// PlaylistCreator generates a playlist of a show's published episodes.
//
// Entries are file names relative to the playlist, which is written into
// the destination directory next to the episodes, in track order.
//
// Example:
//
//	creator := NewPlaylistCreator(model.PlaylistFormatM3U, true)
//	content := creator.CreatePlaylist(show, published)
//	os.WriteFile(show.PlaylistPath, []byte(content), 0644)
//
//	// Result:
//	// #EXTM3U
//	// #EXTINF:-1,ShowA - Ep01
//	// Ep01.mp3
type PlaylistCreator struct {
	format   model.PlaylistFormat
	extended bool // For M3U: include EXTINF lines
}

// NewPlaylistCreator creates a new PlaylistCreator.
//
// extended only applies to M3U.
func NewPlaylistCreator(format model.PlaylistFormat, extended bool) *PlaylistCreator {
	return &PlaylistCreator{
		format:   format,
		extended: extended,
	}
}

// CreatePlaylist generates playlist content for the given episodes.
func (p *PlaylistCreator) CreatePlaylist(show *model.Show, episodes []*model.Episode) string {
	switch p.format {
	case model.PlaylistFormatPLS:
		return p.createPLS(episodes)
	default:
		return p.createM3U(show, episodes)
	}
}

// createM3U generates an M3U playlist. Durations are unknown, so extended
// entries use -1.
func (p *PlaylistCreator) createM3U(show *model.Show, episodes []*model.Episode) string {
	var sb strings.Builder

	if p.extended {
		sb.WriteString("#EXTM3U\n")
	}

	for _, ep := range episodes {
		if p.extended {
			sb.WriteString(fmt.Sprintf("#EXTINF:-1,%s - %s\n", show.Name, ep.Key))
		}
		sb.WriteString(filepath.Base(ep.Path) + "\n")
	}

	return sb.String()
}

// createPLS generates a PLS playlist.
//
//	[playlist]
//	File1=Ep01.mp3
//	Title1=Ep01
//	Length1=-1
//	NumberOfEntries=1
//	Version=2
func (p *PlaylistCreator) createPLS(episodes []*model.Episode) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")

	for i, ep := range episodes {
		idx := i + 1
		sb.WriteString(fmt.Sprintf("File%d=%s\n", idx, filepath.Base(ep.Path)))
		sb.WriteString(fmt.Sprintf("Title%d=%s\n", idx, ep.Key))
		sb.WriteString(fmt.Sprintf("Length%d=-1\n", idx))
	}

	sb.WriteString(fmt.Sprintf("NumberOfEntries=%d\n", len(episodes)))
	sb.WriteString("Version=2\n")

	return sb.String()
}
