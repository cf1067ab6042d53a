// Package logging provides the leveled logger used across ftp-m3u.
//
// Levels, lowest first: DEBUG, INFO, WARN, ERROR. FATAL always prints and
// exits. The level is read once from DEBUG (any truthy value selects debug)
// or LOG_LEVEL, and can be overridden at runtime with SetLevel.
package logging
