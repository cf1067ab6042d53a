// Command resetpw manages the optional web UI password of ftp-m3u.
//
// Usage:
//
//	resetpw <command>
//
// Commands:
//
//	reset   Reset the password. A password must already have been set up
//	        through the web interface. All existing sessions are invalidated.
//
//	status  Report whether a password is configured and how many sessions
//	        are active.
//
//	logout  Invalidate every active session without changing the password.
//
// Environment:
//
//	DATABASE_DIR - Path to database directory (default: /database)
package main
