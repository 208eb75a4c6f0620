// Package audio provides audio file metadata services: ID3 tag writing,
// tag reading, and playlist generation.
//
// # ID3 Tagging
//
// Use the Tagger to write the episode tags into a combined file:
//
//	tagger := audio.NewTagger(audio.DefaultTagConfig())
//	err := tagger.SaveTags(path, audio.TagsFor(ep), coverJPEG)
//
// The tagger writes:
//   - Title (the episode key)
//   - Track Number
//   - Artist and Album (both the show name)
//   - Genre
//   - Cover Art (JPEG front cover)
//
// Failures wrap ErrTagging.
//
// # Reading Tags
//
//	info, err := audio.ReadTags("/srv/podcasts/ShowA/Ep01.mp3")
//	fmt.Println(info.Track, info.Title, info.HasCover)
//
// # Playlist Generation
//
//	creator := audio.NewPlaylistCreator(model.PlaylistFormatM3U, true)
//	content := creator.CreatePlaylist(show, episodes)
//
// Supported formats:
//   - M3U (with optional extended info)
//   - PLS
package audio
