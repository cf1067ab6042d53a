// Package middleware provides the HTTP middleware chain of the ftp-m3u
// server: W3C Extended Log Format access logging, Prometheus request
// metrics and gzip response compression.
package middleware
