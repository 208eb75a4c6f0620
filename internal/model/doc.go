// Package model defines the core data structures used throughout
// episode-combiner.
//
// # Show
//
// Show holds the metadata shared by every episode and the destination
// directory they are published into:
//
//	show := model.NewShow("ShowA", "Podcast", "/srv/podcasts", model.PlaylistFormatM3U)
//
// # Groups and Episodes
//
// Groups maps an episode key (a fixed-length filename prefix) to its member
// files. Plan numbers the keys in sorted order and builds one Episode per key:
//
//	groups := model.Groups{
//	    "Ep02": {"Ep02a.mp3"},
//	    "Ep01": {"Ep01b.mp3", "Ep01a.mp3"},
//	}
//	episodes := model.Plan(show, groups, "mp3")
//	// episodes[0].Key = "Ep01", Track = 1, Members = [Ep01a.mp3 Ep01b.mp3]
//	// episodes[1].Key = "Ep02", Track = 2
package model
