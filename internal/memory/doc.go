// Package memory sizes the Go runtime memory limit for containers.
//
// When GOMEMLIMIT is unset and MEMORY_LIMIT carries the container limit
// (bytes, or a Kubernetes quantity such as 512Mi), [Configure] sets the
// soft limit to MEMORY_RATIO of it (default 0.85).
package memory
