package ftpclient

import (
	"context"
	"time"

	"ftp-m3u/internal/mediatypes"
	"ftp-m3u/internal/metrics"
)

// Instrument wraps a session so every listing is recorded in the FTP
// metrics.
func Instrument(s Session) Session {
	return &instrumentedSession{Session: s}
}

type instrumentedSession struct {
	Session
}

func (s *instrumentedSession) List(ctx context.Context, path string) ([]mediatypes.DirectoryEntry, error) {
	start := time.Now()
	entries, err := s.Session.List(ctx, path)

	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.FTPListingsTotal.WithLabelValues(status).Inc()
	metrics.FTPListDuration.Observe(time.Since(start).Seconds())
	if err == nil {
		metrics.FTPEntriesListed.Add(float64(len(entries)))
	}
	return entries, err
}

// InstrumentedDialer wraps a Dialer so sessions it opens are instrumented
// and connection attempts are counted.
type InstrumentedDialer struct {
	Dialer Dialer
}

// Dial opens an instrumented session.
func (d InstrumentedDialer) Dial(ctx context.Context, info ConnectionInfo) (Session, error) {
	s, err := d.Dialer.Dial(ctx, info)
	if err != nil {
		metrics.FTPConnectionsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.FTPConnectionsTotal.WithLabelValues("success").Inc()
	return Instrument(s), nil
}
