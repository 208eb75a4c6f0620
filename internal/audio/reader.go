package audio

import (
	"fmt"
	"os"

	"github.com/dhowden/tag"
)

// TagInfo is what ReadTags finds in a published episode.
type TagInfo struct {
	EpisodeTags
	HasCover bool
}

// ReadTags reads the metadata of an audio file.
func ReadTags(path string) (*TagInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("read tags %s: %w", path, err)
	}

	track, _ := m.Track()
	return &TagInfo{
		EpisodeTags: EpisodeTags{
			Title:  m.Title(),
			Track:  track,
			Artist: m.Artist(),
			Album:  m.Album(),
			Genre:  m.Genre(),
		},
		HasCover: m.Picture() != nil,
	}, nil
}
