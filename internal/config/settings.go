package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrConfiguration is returned for missing or invalid configuration values.
var ErrConfiguration = errors.New("configuration error")

// DefaultFileName is the config file looked up in the working directory.
const DefaultFileName = "episode_information.yml"

// Duration is a time.Duration that reads and writes as a string like "2s".
type Duration time.Duration

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText renders the duration in Go syntax.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Settings holds all configuration options.
//
// The key names of the core fields match the episode_information.yml files
// the combiner has always read, so existing configs keep working.
type Settings struct {
	// Show metadata
	ShowName string `yaml:"show_name" toml:"show_name" json:"show_name"`
	Genre    string `yaml:"genre" toml:"genre" json:"genre"`
	CoverArt string `yaml:"cover_art" toml:"cover_art" json:"cover_art"`

	// File selection
	FileFormat   string `yaml:"file_format" toml:"file_format" json:"file_format"`
	EpisodeIndex int    `yaml:"episode_index" toml:"episode_index" json:"episode_index"`

	// Directories
	SourceDir      string `yaml:"anki_media" toml:"anki_media" json:"anki_media"`
	StagingDir     string `yaml:"temp_folder" toml:"temp_folder" json:"temp_folder"`
	DestinationDir string `yaml:"save_path" toml:"save_path" json:"save_path"`
	ReturnDir      string `yaml:"home_dir" toml:"home_dir" json:"home_dir"`

	// Concatenation
	ConcatCommand string   `yaml:"mp3_cat" toml:"mp3_cat" json:"mp3_cat"`
	ConcatArgs    []string `yaml:"mp3_cat_args" toml:"mp3_cat_args" json:"mp3_cat_args"`
	ConcatTimeout Duration `yaml:"concat_timeout" toml:"concat_timeout" json:"concat_timeout"`
	SettleDelay   Duration `yaml:"settle_delay" toml:"settle_delay" json:"settle_delay"`

	MaxConcurrentEpisodes int `yaml:"max_concurrent_episodes" toml:"max_concurrent_episodes" json:"max_concurrent_episodes"`

	// Cover art settings
	CoverArtResize  bool `yaml:"cover_art_resize" toml:"cover_art_resize" json:"cover_art_resize"`
	CoverArtMaxSize int  `yaml:"cover_art_max_size" toml:"cover_art_max_size" json:"cover_art_max_size"`

	// Playlist settings
	CreatePlaylist bool   `yaml:"create_playlist" toml:"create_playlist" json:"create_playlist"`
	PlaylistFormat string `yaml:"playlist_format" toml:"playlist_format" json:"playlist_format"` // m3u, pls

	// Logging
	LogFile   string `yaml:"log_file" toml:"log_file" json:"log_file"`
	LogLevel  string `yaml:"log_level" toml:"log_level" json:"log_level"`
	LogFormat string `yaml:"log_format" toml:"log_format" json:"log_format"` // console, json
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		FileFormat:            "mp3",
		ConcatCommand:         "mp3cat",
		ConcatArgs:            []string{"{output}"},
		ConcatTimeout:         Duration(10 * time.Minute),
		MaxConcurrentEpisodes: 1,
		CoverArtResize:        false,
		CoverArtMaxSize:       1000,
		PlaylistFormat:        "m3u",
		LogLevel:              "info",
		LogFormat:             "console",
	}
}

// DefaultPath returns the config file to use when none is given.
// The working directory wins, then the XDG config directories.
func DefaultPath() string {
	if _, err := os.Stat(DefaultFileName); err == nil {
		return DefaultFileName
	}
	if path, err := xdg.SearchConfigFile(filepath.Join("episode-combiner", "config.yml")); err == nil {
		return path
	}
	return DefaultFileName
}

// Load reads settings from a YAML, TOML or JSON file, picked by extension,
// then normalizes and validates them.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrConfiguration, path, err)
	}

	settings := DefaultSettings()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, settings)
	case ".json":
		err = json.Unmarshal(data, settings)
	default:
		err = yaml.Unmarshal(data, settings)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrConfiguration, path, err)
	}

	settings.normalize()
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// Save writes settings to a YAML file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// normalize trims values and resolves relative directories against ReturnDir.
func (s *Settings) normalize() {
	s.ShowName = strings.TrimSpace(s.ShowName)
	s.FileFormat = strings.TrimPrefix(strings.TrimSpace(s.FileFormat), ".")
	s.PlaylistFormat = strings.ToLower(strings.TrimSpace(s.PlaylistFormat))
	if len(s.ConcatArgs) == 0 {
		s.ConcatArgs = []string{"{output}"}
	}
	if s.MaxConcurrentEpisodes == 0 {
		s.MaxConcurrentEpisodes = 1
	}

	s.SourceDir = s.resolve(s.SourceDir)
	s.StagingDir = s.resolve(s.StagingDir)
	s.DestinationDir = s.resolve(s.DestinationDir)
	s.CoverArt = s.resolve(s.CoverArt)
	s.LogFile = s.resolve(s.LogFile)
}

func (s *Settings) resolve(path string) string {
	path = strings.TrimSpace(path)
	if path == "" || filepath.IsAbs(path) || s.ReturnDir == "" {
		return path
	}
	return filepath.Join(s.ReturnDir, path)
}

// Validate reports every missing or inconsistent field at once.
func (s *Settings) Validate() error {
	var errs []error
	required := map[string]string{
		"show_name":   s.ShowName,
		"file_format": s.FileFormat,
		"anki_media":  s.SourceDir,
		"temp_folder": s.StagingDir,
		"save_path":   s.DestinationDir,
		"mp3_cat":     s.ConcatCommand,
	}
	for _, key := range []string{"show_name", "file_format", "anki_media", "temp_folder", "save_path", "mp3_cat"} {
		if strings.TrimSpace(required[key]) == "" {
			errs = append(errs, fmt.Errorf("%w: %s is required", ErrConfiguration, key))
		}
	}

	if s.EpisodeIndex <= 0 {
		errs = append(errs, fmt.Errorf("%w: episode_index must be positive, got %d", ErrConfiguration, s.EpisodeIndex))
	}
	if s.MaxConcurrentEpisodes < 1 {
		errs = append(errs, fmt.Errorf("%w: max_concurrent_episodes must be at least 1", ErrConfiguration))
	}
	if s.ConcatTimeout < 0 || s.SettleDelay < 0 {
		errs = append(errs, fmt.Errorf("%w: durations must not be negative", ErrConfiguration))
	}
	if s.CoverArtResize && s.CoverArtMaxSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: cover_art_max_size must be positive when resizing", ErrConfiguration))
	}
	switch s.PlaylistFormat {
	case "", "m3u", "pls":
	default:
		errs = append(errs, fmt.Errorf("%w: unsupported playlist_format %q", ErrConfiguration, s.PlaylistFormat))
	}

	if err := s.CheckStaging(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// CheckStaging rejects a staging directory that is, contains or sits inside
// the source or destination directory. Staging is removed after every episode.
func (s *Settings) CheckStaging() error {
	if s.StagingDir == "" {
		return nil
	}
	var errs []error
	if s.SourceDir != "" && overlaps(s.StagingDir, s.SourceDir) {
		errs = append(errs, fmt.Errorf("%w: temp_folder must not equal, contain or sit inside anki_media", ErrConfiguration))
	}
	if s.DestinationDir != "" && overlaps(s.StagingDir, s.DestinationDir) {
		errs = append(errs, fmt.Errorf("%w: temp_folder must not equal, contain or sit inside save_path", ErrConfiguration))
	}
	return errors.Join(errs...)
}

// overlaps reports whether a and b are the same directory or one is nested in the other.
func overlaps(a, b string) bool {
	return within(a, b) || within(b, a)
}

// within reports whether path is dir or lies beneath it.
func within(path, dir string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// ConcatTimeoutDuration returns the subprocess timeout; zero means none.
func (s *Settings) ConcatTimeoutDuration() time.Duration {
	return time.Duration(s.ConcatTimeout)
}

// SettleDelayDuration returns the pause between staging and concatenation.
func (s *Settings) SettleDelayDuration() time.Duration {
	return time.Duration(s.SettleDelay)
}

// OutputName returns the published file name for an episode key.
func (s *Settings) OutputName(key string) string {
	return key + "." + s.FileFormat
}
