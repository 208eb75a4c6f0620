package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `show_name: ShowA
file_format: .mp3
episode_index: 4
anki_media: media
temp_folder: /tmp/combiner-staging
save_path: /srv/podcasts
home_dir: /home/me/combiner
mp3_cat: mp3cat
cover_art: cover.jpg
genre: Podcast
settle_delay: 2s
concat_timeout: 90s
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_YAML(t *testing.T) {
	settings, err := Load(writeFile(t, "episode_information.yml", sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "ShowA", settings.ShowName)
	assert.Equal(t, "mp3", settings.FileFormat)
	assert.Equal(t, 4, settings.EpisodeIndex)
	assert.Equal(t, filepath.Join("/home/me/combiner", "media"), settings.SourceDir)
	assert.Equal(t, "/tmp/combiner-staging", settings.StagingDir)
	assert.Equal(t, filepath.Join("/home/me/combiner", "cover.jpg"), settings.CoverArt)
	assert.Equal(t, 2*time.Second, settings.SettleDelayDuration())
	assert.Equal(t, 90*time.Second, settings.ConcatTimeoutDuration())
	assert.Equal(t, []string{"{output}"}, settings.ConcatArgs)
	assert.Equal(t, 1, settings.MaxConcurrentEpisodes)
	assert.Equal(t, "Ep01.mp3", settings.OutputName("Ep01"))
}

func TestLoad_TOML(t *testing.T) {
	content := `show_name = "ShowB"
file_format = "mp3"
episode_index = 6
anki_media = "/media"
temp_folder = "/tmp/stage"
save_path = "/out"
mp3_cat = "/usr/bin/mp3cat"
mp3_cat_args = ["-o", "{output}", "{inputs}"]
max_concurrent_episodes = 3
`
	settings, err := Load(writeFile(t, "config.toml", content))
	require.NoError(t, err)

	assert.Equal(t, "ShowB", settings.ShowName)
	assert.Equal(t, []string{"-o", "{output}", "{inputs}"}, settings.ConcatArgs)
	assert.Equal(t, 3, settings.MaxConcurrentEpisodes)
	assert.Equal(t, 10*time.Minute, settings.ConcatTimeoutDuration())
}

func TestLoad_JSON(t *testing.T) {
	content := `{"show_name":"ShowC","file_format":"mp3","episode_index":3,
"anki_media":"/media","temp_folder":"/tmp/stage","save_path":"/out","mp3_cat":"mp3cat",
"settle_delay":"500ms"}`
	settings, err := Load(writeFile(t, "config.json", content))
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, settings.SettleDelayDuration())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfiguration))
}

func TestValidate(t *testing.T) {
	valid := func() *Settings {
		s := DefaultSettings()
		s.ShowName = "ShowA"
		s.EpisodeIndex = 4
		s.SourceDir = "/media"
		s.StagingDir = "/stage"
		s.DestinationDir = "/out"
		return s
	}

	tests := []struct {
		name    string
		mutate  func(s *Settings)
		wantErr bool
	}{
		{"valid", func(s *Settings) {}, false},
		{"missing show name", func(s *Settings) { s.ShowName = "" }, true},
		{"zero episode index", func(s *Settings) { s.EpisodeIndex = 0 }, true},
		{"missing command", func(s *Settings) { s.ConcatCommand = " " }, true},
		{"staging equals source", func(s *Settings) { s.StagingDir = "/media/" }, true},
		{"staging equals destination", func(s *Settings) { s.StagingDir = "/out" }, true},
		{"staging contains source", func(s *Settings) { s.SourceDir = "/stage/media" }, true},
		{"staging inside source", func(s *Settings) { s.StagingDir = "/media/tmp" }, true},
		{"staging contains destination", func(s *Settings) { s.DestinationDir = "/stage/out" }, true},
		{"staging inside destination", func(s *Settings) { s.StagingDir = "/out/.staging" }, true},
		{"staging is filesystem root", func(s *Settings) { s.StagingDir = "/" }, true},
		{"staging sibling with shared prefix", func(s *Settings) { s.StagingDir = "/media-staging" }, false},
		{"staging named like parent ref", func(s *Settings) { s.StagingDir = "/..stage" }, false},
		{"bad playlist format", func(s *Settings) { s.PlaylistFormat = "wpl" }, true},
		{"negative settle delay", func(s *Settings) { s.SettleDelay = Duration(-time.Second) }, true},
		{"resize without size", func(s *Settings) { s.CoverArtResize = true; s.CoverArtMaxSize = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(s)
			err := s.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrConfiguration))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	s := DefaultSettings()
	s.ShowName = "ShowA"
	s.EpisodeIndex = 4
	s.SourceDir = "/media"
	s.StagingDir = "/stage"
	s.DestinationDir = "/out"
	s.SettleDelay = Duration(3 * time.Second)

	path := filepath.Join(t.TempDir(), "nested", "config.yml")
	require.NoError(t, s.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s.ShowName, loaded.ShowName)
	assert.Equal(t, 3*time.Second, loaded.SettleDelayDuration())
}
