// Package config provides configuration management for episode-combiner.
//
// This package handles:
//   - Loading settings from YAML, TOML or JSON files
//   - Default configuration values
//   - Validation, reported as ErrConfiguration
//
// # Loading from File
//
//	settings, err := config.Load("episode_information.yml")
//	if errors.Is(err, config.ErrConfiguration) {
//	    // missing or invalid field
//	}
//
// A minimal YAML file:
//
//	show_name: ShowA
//	file_format: mp3
//	episode_index: 4
//	anki_media: /data/anki/collection.media
//	temp_folder: /tmp/episode-combiner
//	save_path: /data/podcasts/ShowA
//	home_dir: /home/me/episode-combiner
//	mp3_cat: mp3cat
//	cover_art: cover.jpg
//	genre: Podcast
//
// Relative paths are resolved against home_dir.
//
// # Concatenation Command
//
// mp3_cat is run inside the staging directory with mp3_cat_args. Two
// placeholders are expanded:
//   - {output}: the output file name, "<episode key>.<file_format>"
//   - {inputs}: the staged member files, sorted, one argument each
//
// The default argument list is ["{output}"].
package config
