package combine

import (
	"errors"
	"fmt"

	"github.com/handiism/episode-combiner/internal/concat"
)

var (
	// ErrMissingOutput is returned when the concatenation tool exited
	// cleanly but left no output file. It also matches concat.ErrConcatenation.
	ErrMissingOutput = fmt.Errorf("%w: output missing", concat.ErrConcatenation)

	// ErrCleanup is logged when a staging directory cannot be removed.
	ErrCleanup = errors.New("staging cleanup failed")

	// ErrStagingBusy is returned when another run holds the staging lock.
	ErrStagingBusy = errors.New("staging area is in use by another run")
)

// Stage names the step of episode processing that failed.
type Stage string

const (
	StageStage   Stage = "stage"
	StageConcat  Stage = "concat"
	StageTag     Stage = "tag"
	StagePublish Stage = "publish"
)

// EpisodeError records the failure of one episode.
type EpisodeError struct {
	Key   string
	Track int
	Stage Stage
	Err   error
}

func (e *EpisodeError) Error() string {
	return fmt.Sprintf("episode %s (track %d) %s: %v", e.Key, e.Track, e.Stage, e.Err)
}

func (e *EpisodeError) Unwrap() error { return e.Err }
