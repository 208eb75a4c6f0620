package combine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/handiism/episode-combiner/internal/audio"
	"github.com/handiism/episode-combiner/internal/concat"
	"github.com/handiism/episode-combiner/internal/config"
	"github.com/handiism/episode-combiner/internal/episode"
	ioutils "github.com/handiism/episode-combiner/internal/io"
	"github.com/handiism/episode-combiner/internal/logging"
	"github.com/handiism/episode-combiner/internal/model"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess

	// LevelProgress events carry a Label and Fraction for a progress bar.
	LevelProgress
)

// ProgressEvent represents a combine progress update.
type ProgressEvent struct {
	Message  string
	Level    ProgressLevel
	Label    string
	Fraction float64
}

// HookLabelPrefix starts the progress label of a find-hook run.
const HookLabelPrefix = "Possible hook for "

// Concatenator joins staged input files into output inside dir.
type Concatenator interface {
	Concat(ctx context.Context, dir string, inputs []string, output string) error
}

// Tagger writes episode metadata into the file at path.
type Tagger interface {
	SaveTags(path string, tags audio.EpisodeTags, artwork []byte) error
}

// RunOptions control a single Run.
type RunOptions struct {
	// FindHook reports the first episode as a possible hook, processes
	// it, and stops.
	FindHook bool
}

// Manager coordinates combining the episodes of one show.
type Manager struct {
	settings     *config.Settings
	logger       *slog.Logger
	concat       Concatenator
	tagger       Tagger
	playlist     *audio.PlaylistCreator
	imageService *ioutils.ImageService

	totalEpisodes int32
	doneEpisodes  int32

	onProgress func(ProgressEvent)
}

// NewManager creates a new Manager. A nil concatenator runs the configured
// mp3_cat command and a nil tagger writes ID3 tags.
//
// onProgress is called from several goroutines when max_concurrent_episodes
// is above 1.
func NewManager(settings *config.Settings, logger *slog.Logger, concatenator Concatenator, tagger Tagger, onProgress func(ProgressEvent)) *Manager {
	if logger == nil {
		logger = logging.NewNop()
	}
	if concatenator == nil {
		concatenator = concat.NewCommand(settings.ConcatCommand, settings.ConcatArgs, settings.ConcatTimeoutDuration())
	}
	if tagger == nil {
		tagger = audio.NewTagger(audio.DefaultTagConfig())
	}

	return &Manager{
		settings:     settings,
		logger:       logger.With(logging.String("component", "combine")),
		concat:       concatenator,
		tagger:       tagger,
		playlist:     audio.NewPlaylistCreator(model.ParsePlaylistFormat(settings.PlaylistFormat), true),
		imageService: ioutils.NewImageService(),
		onProgress:   onProgress,
	}
}

// GetProgress returns how many episodes have finished out of the total.
func (m *Manager) GetProgress() (done, total int32) {
	return atomic.LoadInt32(&m.doneEpisodes), atomic.LoadInt32(&m.totalEpisodes)
}

// run holds the state of one Run.
type run struct {
	logger  *slog.Logger
	opts    RunOptions
	total   int
	artwork []byte

	mu     sync.Mutex
	report *Report
}

// Run groups the show's files and combines every episode.
//
// Grouping and setup errors abort before any episode is touched. Episode
// failures are collected in the Report and do not stop the run. The
// returned error is non-nil only for setup failures and cancellation.
func (m *Manager) Run(ctx context.Context, opts RunOptions) (*Report, error) {
	start := time.Now()
	runID := uuid.NewString()
	logger := m.logger.With(logging.String(logging.FieldRunID, runID))

	if err := m.settings.CheckStaging(); err != nil {
		logger.Error("unsafe staging directory", logging.Error(err))
		return nil, err
	}

	groups, err := episode.Scan(m.settings)
	if err != nil {
		logger.Error("grouping failed", logging.Error(err))
		return nil, err
	}

	show := model.NewShow(m.settings.ShowName, m.settings.Genre, m.settings.DestinationDir, model.ParsePlaylistFormat(m.settings.PlaylistFormat))
	episodes := model.Plan(show, groups, m.settings.FileFormat)

	r := &run{
		logger: logger,
		opts:   opts,
		total:  len(episodes),
		report: &Report{RunID: runID, Show: show.Name, Destination: show.Path},
	}
	if opts.FindHook {
		episodes = episodes[:1]
	}
	atomic.StoreInt32(&m.totalEpisodes, int32(len(episodes)))
	atomic.StoreInt32(&m.doneEpisodes, 0)

	logger.Info("combine started",
		logging.String(logging.FieldEventType, "run_start"),
		logging.String("show", show.Name),
		logging.Int("episodes", len(episodes)),
		logging.Bool("find_hook", opts.FindHook),
	)
	m.progress(ProgressEvent{Message: fmt.Sprintf("Found %d episodes of %s", r.total, show.Name), Level: LevelInfo})

	if err := ioutils.EnsureDir(show.Path); err != nil {
		return nil, fmt.Errorf("create destination %s: %w", show.Path, err)
	}

	unlock, err := m.lockStaging()
	if err != nil {
		return nil, err
	}
	defer unlock()

	r.artwork = m.loadArtwork(ctx, logger)

	if m.settings.MaxConcurrentEpisodes > 1 && len(episodes) > 1 {
		m.runConcurrent(ctx, r, episodes)
		m.cleanup(logger, m.settings.StagingDir)
	} else {
		for i, ep := range episodes {
			if ctx.Err() != nil {
				break
			}
			m.processEpisode(ctx, r, ep, i+1, m.settings.StagingDir)
		}
	}

	r.report.sortByTrack()

	if m.settings.CreatePlaylist && len(r.report.Published) > 0 && ctx.Err() == nil {
		m.writePlaylist(r, show)
	}

	r.report.Duration = time.Since(start)
	logger.Info("combine finished",
		logging.String(logging.FieldEventType, "run_complete"),
		logging.String("show", show.Name),
		logging.String("destination", show.Path),
		logging.Int("published", len(r.report.Published)),
		logging.Int("failed", len(r.report.Failed)),
		logging.Duration("duration", r.report.Duration),
	)

	summary := fmt.Sprintf("%s saved to %s", show.Name, show.Path)
	if r.report.OK() {
		m.progress(ProgressEvent{Message: summary, Level: LevelSuccess})
	} else {
		m.progress(ProgressEvent{Message: fmt.Sprintf("%s, %d episodes failed", summary, len(r.report.Failed)), Level: LevelWarning})
	}

	return r.report, ctx.Err()
}

func (m *Manager) runConcurrent(ctx context.Context, r *run, episodes []*model.Episode) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.settings.MaxConcurrentEpisodes)

	for i, ep := range episodes {
		ep := ep
		position := i + 1
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			staging := filepath.Join(m.settings.StagingDir, ioutils.SanitizeFileName(ep.Key))
			m.processEpisode(ctx, r, ep, position, staging)
			return nil // Continue with other episodes
		})
	}

	_ = g.Wait()
}

// processEpisode stages, concatenates, tags and publishes one episode.
// The staging directory is removed whatever the outcome.
func (m *Manager) processEpisode(ctx context.Context, r *run, ep *model.Episode, position int, staging string) {
	logger := r.logger.With(
		logging.String(logging.FieldEpisode, ep.Key),
		logging.Int(logging.FieldTrack, ep.Track),
	)

	if r.opts.FindHook {
		m.progress(ProgressEvent{Label: HookLabelPrefix + ep.Key, Fraction: 1, Level: LevelProgress})
	} else {
		m.progress(ProgressEvent{Label: ep.Key, Fraction: float64(position) / float64(r.total), Level: LevelProgress})
	}

	defer atomic.AddInt32(&m.doneEpisodes, 1)
	defer m.cleanup(logger, staging)

	stage, err := m.combineEpisode(ctx, r, ep, staging)
	if err != nil {
		epErr := &EpisodeError{Key: ep.Key, Track: ep.Track, Stage: stage, Err: err}
		logger.Error("episode failed",
			logging.String(logging.FieldEventType, "episode_failed"),
			logging.String(logging.FieldStage, string(stage)),
			logging.Error(err),
		)
		m.progress(ProgressEvent{Message: epErr.Error(), Level: LevelError})

		r.mu.Lock()
		r.report.Failed = append(r.report.Failed, epErr)
		r.mu.Unlock()
		return
	}

	logger.Info("episode published",
		logging.String(logging.FieldEventType, "episode_published"),
		logging.String("path", ep.Path),
	)
	m.progress(ProgressEvent{Message: fmt.Sprintf("Published: %s", ep.FileName), Level: LevelVerbose})

	r.mu.Lock()
	r.report.Published = append(r.report.Published, ep)
	r.mu.Unlock()
}

func (m *Manager) combineEpisode(ctx context.Context, r *run, ep *model.Episode, staging string) (Stage, error) {
	if err := ioutils.EnsureDir(staging); err != nil {
		return StageStage, fmt.Errorf("create staging dir: %w", err)
	}
	if err := ioutils.CopyFiles(ctx, m.settings.SourceDir, staging, ep.Members); err != nil {
		return StageStage, fmt.Errorf("copy members: %w", err)
	}

	if delay := m.settings.SettleDelayDuration(); delay > 0 {
		select {
		case <-ctx.Done():
			return StageStage, ctx.Err()
		case <-time.After(delay):
		}
	}

	if err := m.concat.Concat(ctx, staging, ep.Members, ep.FileName); err != nil {
		return StageConcat, err
	}

	output := filepath.Join(staging, ep.FileName)
	if !ioutils.FileExists(output) {
		return StageConcat, fmt.Errorf("%w: %s", ErrMissingOutput, ep.FileName)
	}

	if err := m.tagger.SaveTags(output, audio.TagsFor(ep), r.artwork); err != nil {
		return StageTag, err
	}

	if err := ioutils.CopyFile(ctx, output, ep.Path); err != nil {
		return StagePublish, fmt.Errorf("copy to destination: %w", err)
	}
	return "", nil
}

// loadArtwork reads and prepares the cover art once per run. An unreadable
// or undecodable cover is a warning and the episodes get no art.
func (m *Manager) loadArtwork(ctx context.Context, logger *slog.Logger) []byte {
	if m.settings.CoverArt == "" {
		return nil
	}

	data, err := os.ReadFile(m.settings.CoverArt)
	if err != nil {
		logger.Warn("cover art unreadable", logging.String("path", m.settings.CoverArt), logging.Error(err))
		m.progress(ProgressEvent{Message: fmt.Sprintf("Cover art unreadable, continuing without it: %v", err), Level: LevelWarning})
		return nil
	}

	maxSize := 0
	if m.settings.CoverArtResize {
		maxSize = m.settings.CoverArtMaxSize
	}
	artwork, err := m.imageService.PrepareCover(ctx, data, maxSize)
	if err != nil {
		logger.Warn("cover art not usable", logging.String("path", m.settings.CoverArt), logging.Error(err))
		m.progress(ProgressEvent{Message: fmt.Sprintf("Cover art not usable, continuing without it: %v", err), Level: LevelWarning})
		return nil
	}
	return artwork
}

// lockStaging takes an exclusive lock next to the staging directory.
func (m *Manager) lockStaging() (func(), error) {
	lockPath := filepath.Clean(m.settings.StagingDir) + ".lock"
	if err := ioutils.EnsureDir(filepath.Dir(lockPath)); err != nil {
		return nil, fmt.Errorf("ensure lock dir: %w", err)
	}

	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire staging lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrStagingBusy, lockPath)
	}

	return func() {
		if err := lock.Unlock(); err != nil {
			m.logger.Warn("failed to release staging lock", logging.String("lock", lockPath), logging.Error(err))
		}
	}, nil
}

func (m *Manager) cleanup(logger *slog.Logger, dir string) {
	if err := ioutils.RemoveDir(dir); err != nil {
		err = fmt.Errorf("%w: %s: %v", ErrCleanup, dir, err)
		logger.Warn("staging cleanup failed", logging.Error(err))
		m.progress(ProgressEvent{Message: err.Error(), Level: LevelWarning})
	}
}

func (m *Manager) writePlaylist(r *run, show *model.Show) {
	content := m.playlist.CreatePlaylist(show, r.report.Published)
	if err := os.WriteFile(show.PlaylistPath, []byte(content), 0644); err != nil {
		r.logger.Warn("playlist not written", logging.String("path", show.PlaylistPath), logging.Error(err))
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error creating playlist: %v", err), Level: LevelWarning})
		return
	}
	r.report.Playlist = show.PlaylistPath
	m.progress(ProgressEvent{Message: fmt.Sprintf("Created playlist for %s", show.Name), Level: LevelSuccess})
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}

