package combine

import (
	"sort"
	"time"

	"github.com/handiism/episode-combiner/internal/model"
)

// Report is the outcome of one Run.
type Report struct {
	RunID       string
	Show        string
	Destination string

	// Published lists the episodes copied to the destination, in track order.
	Published []*model.Episode

	// Failed lists the episodes that failed, in track order.
	Failed []*EpisodeError

	// Playlist is the written playlist path, empty when none was written.
	Playlist string

	Duration time.Duration
}

// OK reports whether every processed episode was published.
func (r *Report) OK() bool {
	return len(r.Failed) == 0
}

// SucceededKeys returns the keys of the published episodes.
func (r *Report) SucceededKeys() []string {
	keys := make([]string, len(r.Published))
	for i, ep := range r.Published {
		keys[i] = ep.Key
	}
	return keys
}

// FailedKeys returns the keys of the failed episodes.
func (r *Report) FailedKeys() []string {
	keys := make([]string, len(r.Failed))
	for i, e := range r.Failed {
		keys[i] = e.Key
	}
	return keys
}

func (r *Report) sortByTrack() {
	sort.Slice(r.Published, func(i, j int) bool { return r.Published[i].Track < r.Published[j].Track })
	sort.Slice(r.Failed, func(i, j int) bool { return r.Failed[i].Track < r.Failed[j].Track })
}
