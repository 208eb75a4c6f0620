package audio

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/episode-combiner/internal/model"
)

func testJPEG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4)), nil))
	return buf.Bytes()
}

func audioFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Ep01.mp3")
	require.NoError(t, os.WriteFile(path, []byte("fake audio frames"), 0644))
	return path
}

func TestTagsFor(t *testing.T) {
	show := model.NewShow("ShowA", "Podcast", "/podcasts", model.PlaylistFormatM3U)
	ep := model.NewEpisode(show, "Ep02", 2, []string{"Ep02a.mp3"}, "mp3")

	assert.Equal(t, EpisodeTags{Title: "Ep02", Track: 2, Artist: "ShowA", Album: "ShowA", Genre: "Podcast"}, TagsFor(ep))
}

func TestTagger_SaveTags(t *testing.T) {
	path := audioFile(t)
	tags := EpisodeTags{Title: "Ep01", Track: 1, Artist: "ShowA", Album: "ShowA", Genre: "Podcast"}

	require.NoError(t, NewTagger(nil).SaveTags(path, tags, testJPEG(t)))

	info, err := ReadTags(path)
	require.NoError(t, err)
	assert.Equal(t, tags, info.EpisodeTags)
	assert.True(t, info.HasCover)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasSuffix(data, []byte("fake audio frames")), "audio data must be preserved")
}

func TestTagger_SaveTags_Retag(t *testing.T) {
	path := audioFile(t)
	tagger := NewTagger(DefaultTagConfig())

	require.NoError(t, tagger.SaveTags(path, EpisodeTags{Title: "Old", Track: 9}, nil))
	require.NoError(t, tagger.SaveTags(path, EpisodeTags{Title: "Ep01", Track: 1}, nil))

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	require.NoError(t, err)
	defer tag.Close()

	assert.Equal(t, "Ep01", tag.Title())
	assert.Len(t, tag.GetFrames("TRCK"), 1)
	assert.Equal(t, "1", tag.GetTextFrame("TRCK").Text)
	assert.Empty(t, tag.GetFrames(tag.CommonID("Attached picture")))
}

func TestTagger_DoNotModify(t *testing.T) {
	path := audioFile(t)
	require.NoError(t, NewTagger(nil).SaveTags(path, EpisodeTags{Title: "Ep01", Genre: "Podcast"}, nil))

	cfg := DefaultTagConfig()
	cfg.Genre = TagDoNotModify
	require.NoError(t, NewTagger(cfg).SaveTags(path, EpisodeTags{Title: "Ep01", Genre: "Rock"}, nil))

	info, err := ReadTags(path)
	require.NoError(t, err)
	assert.Equal(t, "Podcast", info.Genre)
}

func TestTagger_MissingFile(t *testing.T) {
	err := NewTagger(nil).SaveTags(filepath.Join(t.TempDir(), "missing.mp3"), EpisodeTags{}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTagging))
}
