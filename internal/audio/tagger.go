package audio

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/bogem/id3v2"
	"github.com/handiism/episode-combiner/internal/model"
)

// ErrTagging is returned when metadata cannot be written to a file.
var ErrTagging = errors.New("tagging failed")

// TagEditAction defines how to handle individual ID3 tags.
type TagEditAction int

const (
	// TagEmpty clears the tag value.
	TagEmpty TagEditAction = iota

	// TagModify updates the tag with the episode's value.
	TagModify

	// TagDoNotModify leaves the existing tag value unchanged.
	TagDoNotModify
)

// TagConfig holds tagging configuration for each ID3 field.
type TagConfig struct {
	// ModifyTags is a master switch. If false, no text frames are modified.
	ModifyTags bool

	// Title controls the TIT2 frame.
	Title TagEditAction

	// TrackNumber controls the TRCK frame.
	TrackNumber TagEditAction

	// Artist controls the TPE1 frame.
	Artist TagEditAction

	// Album controls the TALB frame.
	Album TagEditAction

	// Genre controls the TCON frame.
	Genre TagEditAction

	// Comments controls the COMM frame.
	Comments TagEditAction
}

// DefaultTagConfig returns the default tag configuration: every field the
// combiner knows is written and comments left by the source files are cleared.
func DefaultTagConfig() *TagConfig {
	return &TagConfig{
		ModifyTags:  true,
		Title:       TagModify,
		TrackNumber: TagModify,
		Artist:      TagModify,
		Album:       TagModify,
		Genre:       TagModify,
		Comments:    TagEmpty,
	}
}

// EpisodeTags are the values written into a combined episode.
type EpisodeTags struct {
	Title  string
	Track  int
	Artist string
	Album  string
	Genre  string
}

// TagsFor derives the tags of an episode: the key is the title and the
// show name is both artist and album.
func TagsFor(ep *model.Episode) EpisodeTags {
	return EpisodeTags{
		Title:  ep.Key,
		Track:  ep.Track,
		Artist: ep.Show.Name,
		Album:  ep.Show.Name,
		Genre:  ep.Show.Genre,
	}
}

// Tagger writes ID3 tags to audio files.
//
// Example:
//
//	tagger := NewTagger(DefaultTagConfig())
//	err := tagger.SaveTags("/tmp/stage/Ep01.mp3", TagsFor(ep), coverJPEG)
type Tagger struct {
	config *TagConfig
}

// NewTagger creates a new Tagger with the given configuration.
//
// If config is nil, DefaultTagConfig() is used.
func NewTagger(config *TagConfig) *Tagger {
	if config == nil {
		config = DefaultTagConfig()
	}
	return &Tagger{config: config}
}

// SaveTags writes tags and, when artwork is non-nil, a JPEG front cover to
// the file at path. The file is rewritten in place.
//
// Every failure is wrapped in ErrTagging.
func (t *Tagger) SaveTags(path string, tags EpisodeTags, artwork []byte) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", ErrTagging, path, err)
	}
	defer tag.Close()

	if t.config.ModifyTags {
		t.updateStringTags(tag, tags)
	}

	if artwork != nil {
		t.updateArtwork(tag, artwork)
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("%w: save %s: %v", ErrTagging, path, err)
	}
	return nil
}

// updateStringTags updates text-based ID3 frames based on configuration.
func (t *Tagger) updateStringTags(tag *id3v2.Tag, tags EpisodeTags) {
	switch t.config.Title {
	case TagEmpty:
		tag.SetTitle("")
	case TagModify:
		tag.SetTitle(tags.Title)
	}

	switch t.config.TrackNumber {
	case TagEmpty:
		tag.DeleteFrames("TRCK")
	case TagModify:
		tag.DeleteFrames("TRCK")
		tag.AddTextFrame("TRCK", id3v2.EncodingUTF8, strconv.Itoa(tags.Track))
	}

	switch t.config.Artist {
	case TagEmpty:
		tag.SetArtist("")
	case TagModify:
		tag.SetArtist(tags.Artist)
	}

	switch t.config.Album {
	case TagEmpty:
		tag.SetAlbum("")
	case TagModify:
		tag.SetAlbum(tags.Album)
	}

	switch t.config.Genre {
	case TagEmpty:
		tag.SetGenre("")
	case TagModify:
		tag.SetGenre(tags.Genre)
	}

	if t.config.Comments == TagEmpty {
		tag.DeleteFrames(tag.CommonID("Comments"))
	}
}

// updateArtwork embeds cover art as an attached picture frame.
func (t *Tagger) updateArtwork(tag *id3v2.Tag, artwork []byte) {
	tag.DeleteFrames(tag.CommonID("Attached picture"))

	pic := id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    "image/jpeg",
		PictureType: id3v2.PTFrontCover,
		Description: "Cover",
		Picture:     artwork,
	}
	tag.AddAttachedPicture(pic)
}
