package audio

import (
	"strings"
	"testing"

	"github.com/handiism/episode-combiner/internal/model"
)

func TestPlaylistCreator_M3U(t *testing.T) {
	show, episodes := createTestShow()
	creator := NewPlaylistCreator(model.PlaylistFormatM3U, false)

	content := creator.CreatePlaylist(show, episodes)

	if content != "Ep01.mp3\nEp02.mp3\n" {
		t.Errorf("M3U content = %q", content)
	}
}

func TestPlaylistCreator_M3UExtended(t *testing.T) {
	show, episodes := createTestShow()
	creator := NewPlaylistCreator(model.PlaylistFormatM3U, true)

	content := creator.CreatePlaylist(show, episodes)

	if !strings.HasPrefix(content, "#EXTM3U") {
		t.Error("Extended M3U should start with #EXTM3U")
	}
	if !strings.Contains(content, "#EXTINF:-1,ShowA - Ep01\nEp01.mp3\n") {
		t.Errorf("Extended M3U missing entry for Ep01:\n%s", content)
	}
}

func TestPlaylistCreator_PLS(t *testing.T) {
	show, episodes := createTestShow()
	creator := NewPlaylistCreator(model.PlaylistFormatPLS, false)

	content := creator.CreatePlaylist(show, episodes)

	if !strings.HasPrefix(content, "[playlist]") {
		t.Error("PLS should start with [playlist]")
	}
	if !strings.Contains(content, "File2=Ep02.mp3") {
		t.Error("PLS should contain File2=Ep02.mp3")
	}
	if !strings.Contains(content, "NumberOfEntries=2") {
		t.Error("PLS should contain NumberOfEntries=2")
	}
}

func createTestShow() (*model.Show, []*model.Episode) {
	show := model.NewShow("ShowA", "Podcast", "/podcasts", model.PlaylistFormatM3U)
	episodes := model.Plan(show, model.Groups{
		"Ep01": {"Ep01a.mp3", "Ep01b.mp3"},
		"Ep02": {"Ep02a.mp3"},
	}, "mp3")
	return show, episodes
}
