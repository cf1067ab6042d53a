// Package ftptest provides an in-memory FTP tree for tests.
package ftptest

import (
	"context"
	"errors"
	"path"
	"sort"
	"strings"
	"sync"

	"ftp-m3u/internal/ftpclient"
	"ftp-m3u/internal/mediatypes"
)

// ErrListing is returned for paths registered with FailPath.
var ErrListing = errors.New("simulated listing failure")

// Tree is a fake remote filesystem. The zero value is not usable; call NewTree.
type Tree struct {
	mu      sync.Mutex
	entries map[string][]mediatypes.DirectoryEntry
	failing map[string]bool
	listed  []string
}

// NewTree returns an empty tree containing only "/".
func NewTree() *Tree {
	return &Tree{
		entries: map[string][]mediatypes.DirectoryEntry{"/": nil},
		failing: map[string]bool{},
	}
}

// AddDir registers a directory and all of its ancestors.
func (t *Tree) AddDir(p string) *Tree {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.addDirLocked(clean(p))
	return t
}

// AddFile registers a file with the given size, creating parent directories.
func (t *Tree) AddFile(p string, size int64) *Tree {
	t.mu.Lock()
	defer t.mu.Unlock()
	p = clean(p)
	dir, name := path.Split(p)
	dir = clean(dir)
	t.addDirLocked(dir)
	t.entries[dir] = append(t.entries[dir], mediatypes.DirectoryEntry{
		Name: name,
		Kind: mediatypes.KindFile,
		Size: size,
	})
	return t
}

// AddEntry appends a raw entry to dir, for names such as "." or links.
func (t *Tree) AddEntry(dir string, e mediatypes.DirectoryEntry) *Tree {
	t.mu.Lock()
	defer t.mu.Unlock()
	dir = clean(dir)
	t.addDirLocked(dir)
	t.entries[dir] = append(t.entries[dir], e)
	return t
}

// FailPath makes List fail for p.
func (t *Tree) FailPath(p string) *Tree {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failing[clean(p)] = true
	return t
}

func (t *Tree) addDirLocked(p string) {
	if _, ok := t.entries[p]; ok {
		return
	}
	t.entries[p] = nil
	if p == "/" {
		return
	}
	parent, name := path.Split(p)
	parent = clean(parent)
	t.addDirLocked(parent)
	t.entries[parent] = append(t.entries[parent], mediatypes.DirectoryEntry{
		Name: name,
		Kind: mediatypes.KindDirectory,
	})
}

// List implements ftpclient.Lister.
func (t *Tree) List(ctx context.Context, p string) ([]mediatypes.DirectoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, &ftpclient.ListingError{Path: p, Err: err}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	p = clean(p)
	t.listed = append(t.listed, p)

	if t.failing[p] {
		return nil, &ftpclient.ListingError{Path: p, Err: ErrListing}
	}
	entries, ok := t.entries[p]
	if !ok {
		return nil, &ftpclient.ListingError{Path: p, Err: errors.New("no such directory")}
	}
	return append([]mediatypes.DirectoryEntry(nil), entries...), nil
}

// Listed returns the paths passed to List, in call order.
func (t *Tree) Listed() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.listed...)
}

// Dirs returns every registered directory, sorted.
func (t *Tree) Dirs() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	dirs := make([]string, 0, len(t.entries))
	for d := range t.entries {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	return dirs
}

func clean(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// Dialer hands out sessions over a Tree and records how they were used.
type Dialer struct {
	Tree *Tree
	// Err, when set, is returned from Dial wrapped in a ConnectionError.
	Err error

	mu     sync.Mutex
	dials  int
	closes int
	last   ftpclient.ConnectionInfo
}

// Dial implements ftpclient.Dialer.
func (d *Dialer) Dial(ctx context.Context, info ftpclient.ConnectionInfo) (ftpclient.Session, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dials++
	d.last = info
	if d.Err != nil {
		return nil, &ftpclient.ConnectionError{Addr: info.WithDefaults().Addr(), Err: d.Err}
	}
	return &session{tree: d.Tree, dialer: d}, nil
}

// Dials returns how many times Dial was called.
func (d *Dialer) Dials() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dials
}

// Closes returns how many sessions were closed.
func (d *Dialer) Closes() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closes
}

// LastInfo returns the connection info of the most recent Dial.
func (d *Dialer) LastInfo() ftpclient.ConnectionInfo {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last
}

type session struct {
	tree   *Tree
	dialer *Dialer
}

func (s *session) List(ctx context.Context, p string) ([]mediatypes.DirectoryEntry, error) {
	return s.tree.List(ctx, p)
}

func (s *session) Close() error {
	s.dialer.mu.Lock()
	defer s.dialer.mu.Unlock()
	s.dialer.closes++
	return nil
}
