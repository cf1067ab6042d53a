// Package handlers provides the HTTP API of ftp-m3u.
//
// It includes handlers for:
//   - Saved FTP servers (CRUD)
//   - Connection tests and media searches against an FTP server
//   - Playlist preview, storage and .m3u download
//   - Settings and search cache control
//   - Optional single-password authentication with session cookies
//   - Health, readiness and version endpoints
//
// Errors are returned as {"error": "..."} with a status derived from the
// error: validation failures are 400, unknown records 404 and FTP
// connection failures 502.
package handlers
