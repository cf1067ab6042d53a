// Package database provides SQLite storage for the ftp-m3u application.
//
// It handles storage and retrieval of:
//   - Saved FTP servers (credentials only kept when the user asks for it)
//   - Generated M3U playlists
//   - Application settings
//   - The single user account and its authentication sessions
//
// The database uses WAL mode for improved concurrent read performance
// and includes automatic schema initialization and migrations. Lookups of
// missing records return [ErrNotFound]; rejected input wraps [ErrInvalidInput].
package database
