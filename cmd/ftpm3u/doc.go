// Command ftpm3u searches FTP servers for media files and builds M3U
// playlists from the command line, without the web application.
//
// # Usage
//
//	ftpm3u search --host <host> [--port 21] [--user anonymous] [--types mkv,mp4] <term>
//	ftpm3u generate [--group <title>] [--flat] [--no-sort] [-o out.m3u] [entries.json]
//
// search prints matching files as a JSON array. Each element has the same
// shape the web API returns:
//
//	{"url": "nas:21/TV/Show/Show.S01E01.mkv", "name": "Show.S01E01.mkv",
//	 "season": 1, "episode": 1, "size": "1.2GB", "selected": true}
//
// generate reads such an array from a file or standard input and writes
// the selected entries as an M3U playlist. Entries without a "selected"
// field are included.
//
// # Environment Variables
//
//   - FTP_PASSWORD: password used when --password is not given
//   - LOG_LEVEL: logging level (debug/info/warn/error)
package main
