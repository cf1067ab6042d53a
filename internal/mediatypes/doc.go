// Package mediatypes holds the dependency-free types shared by the explorer,
// matcher, playlist and search packages.
//
// # Remote entries
//
// DirectoryEntry is the shape a listing capability returns for each child of
// a remote folder:
//
//	mediatypes.DirectoryEntry{Name: "Show.S01E01.mkv", Kind: mediatypes.KindFile, Size: 734003200}
//
// # Matched media
//
// MediaEntry is what a search produces and what a playlist consumes. Season
// and Episode are pointers so that "unknown" survives JSON round trips as null.
//
// # Extensions
//
// NormalizeExtensions and HasExtension implement the file-type filter:
//
//	exts := mediatypes.NormalizeExtensions([]string{"MP4", ".mkv"}) // [".mp4" ".mkv"]
//	mediatypes.HasExtension("Movie.MKV", exts)                     // true
package mediatypes
