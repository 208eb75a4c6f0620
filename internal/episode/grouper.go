package episode

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/handiism/episode-combiner/internal/config"
	"github.com/handiism/episode-combiner/internal/model"
)

// ErrEmptyShow is returned when no file in the source directory matches the show.
var ErrEmptyShow = errors.New("no episodes found")

// FileTypeSearch returns every regular file in dir whose name ends with
// "."+fileFormat and contains showName. Matching is case-sensitive and
// hidden files are skipped.
// The order is the directory listing order; callers sort where it matters.
func FileTypeSearch(dir, showName, fileFormat string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	suffix := "." + fileFormat
	var files []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if strings.HasSuffix(name, suffix) && strings.Contains(name, showName) {
			files = append(files, name)
		}
	}
	return files, nil
}

// Collect partitions files by their first index characters.
//
// Every file lands in exactly one group. A file name shorter than index
// would produce a truncated key, so it is rejected as a configuration error.
func Collect(files []string, index int) (model.Groups, error) {
	if index <= 0 {
		return nil, fmt.Errorf("%w: episode_index must be positive, got %d", config.ErrConfiguration, index)
	}

	groups := make(model.Groups)
	for _, file := range files {
		key, ok := prefix(file, index)
		if !ok {
			return nil, fmt.Errorf("%w: episode_index %d is longer than file name %q", config.ErrConfiguration, index, file)
		}
		groups[key] = append(groups[key], file)
	}
	for key := range groups {
		groups[key] = sortedCopy(groups[key])
	}
	return groups, nil
}

// Scan lists the source directory and groups the show's files into episodes.
func Scan(settings *config.Settings) (model.Groups, error) {
	files, err := FileTypeSearch(settings.SourceDir, settings.ShowName, settings.FileFormat)
	if err != nil {
		return nil, err
	}

	groups, err := Collect(files, settings.EpisodeIndex)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("%w: no %q files for %q in %s", ErrEmptyShow, "."+settings.FileFormat, settings.ShowName, settings.SourceDir)
	}
	return groups, nil
}

// prefix returns the first n runes of s.
func prefix(s string, n int) (string, bool) {
	for i := range s {
		if n == 0 {
			return s[:i], true
		}
		n--
	}
	return s, n == 0
}

func sortedCopy(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}
