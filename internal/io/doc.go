// Package ioutils provides file system and image processing utilities.
//
// This package contains functions for:
//   - File copying and staging
//   - Filename sanitization for cross-platform compatibility
//   - Directory creation and removal
//   - Cover art resizing and JPEG conversion
//
// # File Operations
//
//	// Stage an episode's members
//	err := ioutils.CopyFiles(ctx, "/media", "/tmp/stage", members)
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/srv/podcasts/ShowA")
//
// # Image Processing
//
//	svc := ioutils.NewImageService()
//	jpeg, _ := svc.PrepareCover(ctx, pngData, 500)
package ioutils
