package model

import (
	"path/filepath"
	"sort"
)

// Groups maps an episode key to the source files sharing that key.
//
// Member lists are kept sorted so the concatenation order is stable.
type Groups map[string][]string

// Keys returns the episode keys in ascending lexicographic order.
func (g Groups) Keys() []string {
	keys := make([]string, 0, len(g))
	for key := range g {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Files returns every member file across all groups, sorted.
func (g Groups) Files() []string {
	var files []string
	for _, members := range g {
		files = append(files, members...)
	}
	sort.Strings(files)
	return files
}

// Episode represents one output file built from a group of source files.
//
// Example:
//
//	ep := NewEpisode(show, "Ep01", 1, []string{"Ep01a.mp3", "Ep01b.mp3"}, "mp3")
//	// ep.FileName = "Ep01.mp3"
//	// ep.Path     = "<show.Path>/Ep01.mp3"
type Episode struct {
	// Show is a reference to the parent show.
	Show *Show

	// Key is the fixed-length filename prefix shared by all members.
	// It is also the episode title.
	Key string

	// Track is the 1-based position of Key among all keys of the run.
	Track int

	// Members are the source file names, sorted.
	Members []string

	// FileName is the output file name, "<Key>.<ext>".
	FileName string

	// Path is the published location in the destination directory.
	Path string
}

// NewEpisode creates an Episode with its output name and published path.
func NewEpisode(show *Show, key string, track int, members []string, fileFormat string) *Episode {
	sorted := append([]string(nil), members...)
	sort.Strings(sorted)

	ep := &Episode{
		Show:     show,
		Key:      key,
		Track:    track,
		Members:  sorted,
		FileName: key + "." + fileFormat,
	}
	ep.Path = filepath.Join(show.Path, ep.FileName)
	return ep
}

// Plan turns groups into episodes for show, numbering tracks 1..N in key
// order, and records them on the show.
func Plan(show *Show, groups Groups, fileFormat string) []*Episode {
	keys := groups.Keys()
	episodes := make([]*Episode, 0, len(keys))
	for i, key := range keys {
		episodes = append(episodes, NewEpisode(show, key, i+1, groups[key], fileFormat))
	}
	show.Episodes = episodes
	return episodes
}
