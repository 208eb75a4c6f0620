// Package episode finds a show's files and groups them into episodes.
//
// Grouping uses a fixed-length filename prefix, the episode key:
//
//	files := []string{"Ep01a.mp3", "Ep01b.mp3", "Ep02a.mp3"}
//	groups, _ := episode.Collect(files, 4)
//	// groups = {"Ep01": [Ep01a.mp3 Ep01b.mp3], "Ep02": [Ep02a.mp3]}
//
// The source directory is rescanned on every call; nothing is cached.
//
// ShowCheck is a diagnostic that lists the show prefixes present in a
// directory, taking everything before the first digit of each name.
package episode
