// Package combine runs the episode pipeline for one show.
//
// A run groups the show's source files into episodes, then for each
// episode in key order:
//
//  1. copies the members into a staging directory
//  2. joins them with the concatenation tool
//  3. writes ID3 tags and cover art
//  4. publishes the result to the destination directory
//  5. removes the staging directory
//
// An episode that fails at any step is recorded in the Report and the
// run moves on. The staging area is guarded by a lock file so two runs
// cannot share it.
//
// Example:
//
//	m := combine.NewManager(settings, logger, nil, nil, func(e combine.ProgressEvent) {
//	    fmt.Println(e.Message)
//	})
//	report, err := m.Run(ctx, combine.RunOptions{})
package combine
