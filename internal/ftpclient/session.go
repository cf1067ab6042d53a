package ftpclient

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"ftp-m3u/internal/logging"
	"ftp-m3u/internal/mediatypes"

	"github.com/jlaffaye/ftp"
)

// DefaultPort is the FTP control port used when none is given.
const DefaultPort = 21

// DefaultUsername is used when no username is given.
const DefaultUsername = "anonymous"

// ConnectionInfo identifies an FTP server and the credentials to use.
type ConnectionInfo struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// WithDefaults fills in the default port and username.
func (c ConnectionInfo) WithDefaults() ConnectionInfo {
	c.Host = strings.TrimSpace(c.Host)
	if c.Port <= 0 {
		c.Port = DefaultPort
	}
	if c.Username == "" {
		c.Username = DefaultUsername
	}
	return c
}

// Addr returns host:port, bracketing IPv6 hosts.
func (c ConnectionInfo) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Origin returns the host:port prefix used in generated media URLs.
// Unlike Addr it never brackets the host.
func (c ConnectionInfo) Origin() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// Lister lists one remote directory.
type Lister interface {
	List(ctx context.Context, path string) ([]mediatypes.DirectoryEntry, error)
}

// Session is an open FTP session.
type Session interface {
	Lister
	Close() error
}

// Dialer opens sessions.
type Dialer interface {
	Dial(ctx context.Context, info ConnectionInfo) (Session, error)
}

// FTPDialer dials real FTP servers.
type FTPDialer struct {
	timeout time.Duration
}

// NewDialer returns a dialer whose connect and per-command timeout is
// timeout. A zero timeout leaves the library default in place.
func NewDialer(timeout time.Duration) *FTPDialer {
	return &FTPDialer{timeout: timeout}
}

// Dial connects and logs in. Any failure is returned as a *ConnectionError
// and leaves no open connection behind.
func (d *FTPDialer) Dial(ctx context.Context, info ConnectionInfo) (Session, error) {
	info = info.WithDefaults()
	addr := info.Addr()

	opts := []ftp.DialOption{ftp.DialWithContext(ctx)}
	if d.timeout > 0 {
		opts = append(opts, ftp.DialWithTimeout(d.timeout))
	}

	logging.Debug("Dialing FTP server %s as %s", addr, info.Username)
	conn, err := ftp.Dial(addr, opts...)
	if err != nil {
		return nil, &ConnectionError{Addr: addr, Err: err}
	}

	if err := conn.Login(info.Username, info.Password); err != nil {
		if quitErr := conn.Quit(); quitErr != nil {
			logging.Debug("failed to quit FTP connection after login failure: %v", quitErr)
		}
		return nil, &ConnectionError{Addr: addr, Err: fmt.Errorf("login failed: %w", err)}
	}

	return &ftpSession{conn: conn, addr: addr}, nil
}

type ftpSession struct {
	conn *ftp.ServerConn
	addr string
}

func (s *ftpSession) List(ctx context.Context, path string) ([]mediatypes.DirectoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, &ListingError{Path: path, Err: err}
	}

	raw, err := s.conn.List(path)
	if err != nil {
		return nil, &ListingError{Path: path, Err: err}
	}
	return convertEntries(raw), nil
}

func (s *ftpSession) Close() error {
	return s.conn.Quit()
}

func convertEntries(raw []*ftp.Entry) []mediatypes.DirectoryEntry {
	entries := make([]mediatypes.DirectoryEntry, 0, len(raw))
	for _, e := range raw {
		if e == nil {
			continue
		}
		entries = append(entries, mediatypes.DirectoryEntry{
			Name: e.Name,
			Kind: kindOf(e.Type),
			Size: sizeOf(e.Size),
		})
	}
	return entries
}

func kindOf(t ftp.EntryType) mediatypes.EntryKind {
	switch t {
	case ftp.EntryTypeFolder:
		return mediatypes.KindDirectory
	case ftp.EntryTypeLink:
		return mediatypes.KindLink
	default:
		return mediatypes.KindFile
	}
}

func sizeOf(n uint64) int64 {
	if n > uint64(1<<63-1) {
		return -1
	}
	return int64(n)
}
