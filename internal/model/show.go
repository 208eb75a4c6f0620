package model

import (
	"path/filepath"
	"strings"

	ioutils "github.com/handiism/episode-combiner/internal/io"
)

// Show represents one show and the episodes produced for it in a run.
//
// Show carries the metadata written into every episode:
//   - Name is used as both artist and album
//   - Genre is copied verbatim
//
// Example:
//
//	show := NewShow("ShowA", "Podcast", "/srv/podcasts/ShowA", PlaylistFormatM3U)
//	// show.PlaylistPath = "/srv/podcasts/ShowA/ShowA.m3u"
type Show struct {
	// Name is the show name; artist and album tags are set to it.
	Name string

	// Genre is the free-form genre tag.
	Genre string

	// Episodes holds the planned episodes in track order.
	Episodes []*Episode

	// Path is the destination directory for published episodes.
	Path string

	// PlaylistPath is where the show playlist is written, if enabled.
	PlaylistPath string
}

// NewShow creates a Show publishing into destinationDir.
func NewShow(name, genre, destinationDir string, format PlaylistFormat) *Show {
	show := &Show{
		Name:  name,
		Genre: genre,
		Path:  destinationDir,
	}
	show.PlaylistPath = filepath.Join(destinationDir, ioutils.SanitizeFileName(name)+format.Extension())
	return show
}

// PlaylistFormat represents the playlist file type.
type PlaylistFormat int

const (
	// PlaylistFormatM3U generates .m3u files.
	PlaylistFormatM3U PlaylistFormat = iota

	// PlaylistFormatPLS generates .pls files.
	PlaylistFormatPLS
)

// ParsePlaylistFormat maps a config value to a PlaylistFormat.
// Unknown values fall back to M3U.
func ParsePlaylistFormat(s string) PlaylistFormat {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pls":
		return PlaylistFormatPLS
	default:
		return PlaylistFormatM3U
	}
}

// Extension returns the file extension for the playlist format.
func (pf PlaylistFormat) Extension() string {
	switch pf {
	case PlaylistFormatPLS:
		return ".pls"
	default:
		return ".m3u"
	}
}
