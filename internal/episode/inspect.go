package episode

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrPattern is returned when a file name has no digit to split on.
var ErrPattern = errors.New("no digit in file name")

// ShowCheck returns the distinct show prefixes among the files in dir with
// extension ext. The prefix is everything before the first ASCII digit.
func ShowCheck(dir, ext string) (map[string]struct{}, error) {
	files, err := FileTypeSearch(dir, "", strings.TrimPrefix(ext, "."))
	if err != nil {
		return nil, err
	}
	return ShowPrefixes(files)
}

// ShowPrefixes extracts the show prefix of every file name.
func ShowPrefixes(files []string) (map[string]struct{}, error) {
	shows := make(map[string]struct{})
	for _, file := range files {
		idx := strings.IndexAny(file, "0123456789")
		if idx < 0 {
			return nil, fmt.Errorf("%w: %q", ErrPattern, file)
		}
		shows[file[:idx]] = struct{}{}
	}
	return shows, nil
}

// SortedShows returns the prefixes of a ShowCheck result in order.
func SortedShows(shows map[string]struct{}) []string {
	out := make([]string, 0, len(shows))
	for show := range shows {
		out = append(out, show)
	}
	sort.Strings(out)
	return out
}
