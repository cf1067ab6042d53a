// Package playlist builds and reads M3U playlists.
//
// [Compose] sorts matched media entries by season and episode, optionally
// groups them by season, and writes extended M3U:
//
//	#EXTM3U
//	#EXTINF:-1 group-title="TV S01",Breaking Bad - S01E01
//	ftp.example.com:21/TV/Breaking.Bad.S01E01.mkv
//
// Entry titles come from [FormatTitle], which strips release tags such as
// resolution and codec markers, bracketed text and filename separators, and
// appends an SxxEyy tag when the season and episode are known.
//
// [Parse] reads an M3U document back into its items. It is used to count the
// entries of stored playlists.
package playlist
