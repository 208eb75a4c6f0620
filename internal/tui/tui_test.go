package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/handiism/episode-combiner/internal/combine"
	"github.com/handiism/episode-combiner/internal/config"
	"github.com/handiism/episode-combiner/internal/logging"
	"github.com/handiism/episode-combiner/internal/model"
)

func newTestModel() Model {
	settings := config.DefaultSettings()
	settings.ShowName = "ShowA"
	settings.SourceDir = "/media"
	settings.DestinationDir = "/podcasts/ShowA"
	return NewModel(settings, logging.NewNop())
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_ToggleOptions(t *testing.T) {
	m := newTestModel()

	m = update(t, m, key("h"))
	m = update(t, m, key("p"))
	m = update(t, m, key("v"))

	if !m.findHook || !m.playlist || !m.verbose {
		t.Errorf("options = hook %v, playlist %v, verbose %v; want all on", m.findHook, m.playlist, m.verbose)
	}
	if !strings.Contains(m.View(), "[x] Find hook") {
		t.Errorf("view does not show find hook enabled:\n%s", m.View())
	}
}

func TestModel_ProgressEvents(t *testing.T) {
	m := newTestModel()
	m.state = StateCombining

	m = update(t, m, ProgressMsg{Event: combine.ProgressEvent{Label: "Ep01", Fraction: 0.5, Level: combine.LevelProgress}})
	m = update(t, m, ProgressMsg{Event: combine.ProgressEvent{Message: "Published: Ep01.mp3", Level: combine.LevelVerbose}})
	m = update(t, m, ProgressMsg{Event: combine.ProgressEvent{Message: "Cover art unreadable", Level: combine.LevelWarning}})

	if m.current != "Ep01" {
		t.Errorf("current = %q, want Ep01", m.current)
	}
	if len(m.logs) != 1 || m.logs[0].Level != combine.LevelWarning {
		t.Errorf("logs = %+v, want only the warning", m.logs)
	}
}

func TestModel_LogsAreBounded(t *testing.T) {
	m := newTestModel()
	for i := 0; i < maxLogs+5; i++ {
		m = update(t, m, ProgressMsg{Event: combine.ProgressEvent{Message: "info", Level: combine.LevelInfo}})
	}
	if len(m.logs) != maxLogs {
		t.Errorf("len(logs) = %d, want %d", len(m.logs), maxLogs)
	}
}

func TestModel_Done(t *testing.T) {
	show := model.NewShow("ShowA", "", "/podcasts/ShowA", model.PlaylistFormatM3U)
	report := &combine.Report{
		Show:        "ShowA",
		Destination: "/podcasts/ShowA",
		Published:   []*model.Episode{model.NewEpisode(show, "Ep01", 1, []string{"Ep01a.mp3"}, "mp3")},
		Failed:      []*combine.EpisodeError{{Key: "Ep02", Track: 2, Stage: combine.StageConcat, Err: errors.New("exit status 1")}},
	}

	m := newTestModel()
	m.state = StateCombining
	m = update(t, m, CombineDoneMsg{Report: report})

	if m.state != StateComplete {
		t.Fatalf("state = %v, want StateComplete", m.state)
	}
	view := m.View()
	for _, want := range []string{"Published: 1", "Failed: 1", "Ep02"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestModel_DoneWithError(t *testing.T) {
	m := newTestModel()
	m.state = StateCombining
	m = update(t, m, CombineDoneMsg{Err: errors.New("no files")})

	if m.state != StateError || m.err == nil {
		t.Errorf("state = %v, err = %v; want StateError", m.state, m.err)
	}
}

func TestModel_CancelledRun(t *testing.T) {
	m := newTestModel()
	m.state = StateCombining
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m = update(t, m, CombineDoneMsg{Report: &combine.Report{}})

	if !errors.Is(m.err, errCancelled) {
		t.Errorf("err = %v, want %v", m.err, errCancelled)
	}
}
