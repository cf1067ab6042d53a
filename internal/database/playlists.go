package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

const playlistColumns = "id, name, description, group_title, content, created_at, server_id, entry_count"

func scanPlaylist(row interface{ Scan(...any) error }) (*Playlist, error) {
	var (
		p         Playlist
		createdAt int64
		serverID  sql.NullInt64
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.GroupTitle, &p.Content,
		&createdAt, &serverID, &p.EntryCount); err != nil {
		return nil, err
	}
	p.CreatedAt = time.Unix(createdAt, 0).UTC()
	if serverID.Valid {
		id := serverID.Int64
		p.ServerID = &id
	}
	return &p, nil
}

// ListPlaylists returns all playlists, newest first.
func (d *Database) ListPlaylists(ctx context.Context) ([]Playlist, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("list_playlists", start, err) }()

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := d.db.QueryContext(ctx, "SELECT "+playlistColumns+" FROM playlists ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	defer rows.Close()

	playlists := []Playlist{}
	for rows.Next() {
		p, scanErr := scanPlaylist(rows)
		if scanErr != nil {
			err = scanErr
			return nil, fmt.Errorf("failed to scan playlist: %w", err)
		}
		playlists = append(playlists, *p)
	}
	err = rows.Err()
	return playlists, err
}

// GetPlaylist returns one playlist or ErrNotFound.
func (d *Database) GetPlaylist(ctx context.Context, id int64) (*Playlist, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("get_playlist", start, err) }()

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	p, err := scanPlaylist(d.db.QueryRowContext(ctx, "SELECT "+playlistColumns+" FROM playlists WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist %d: %w", id, err)
	}
	return p, nil
}

// CreatePlaylist stores a playlist. A zero CreatedAt is set to now.
func (d *Database) CreatePlaylist(ctx context.Context, p Playlist) (*Playlist, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("create_playlist", start, err) }()

	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		err = fmt.Errorf("%w: playlist name is required", ErrInvalidInput)
		return nil, err
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	p.CreatedAt = p.CreatedAt.UTC().Truncate(time.Second)

	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := d.db.ExecContext(ctx, `
		INSERT INTO playlists (name, description, group_title, content, created_at, server_id, entry_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, p.Name, p.Description, p.GroupTitle, p.Content, p.CreatedAt.Unix(), p.ServerID, p.EntryCount)
	if err != nil {
		return nil, fmt.Errorf("failed to create playlist: %w", err)
	}

	p.ID, err = result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read playlist id: %w", err)
	}
	return &p, nil
}

// DeletePlaylist removes a playlist.
func (d *Database) DeletePlaylist(ctx context.Context, id int64) error {
	start := time.Now()
	var err error
	defer func() { recordQuery("delete_playlist", start, err) }()

	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := d.db.ExecContext(ctx, "DELETE FROM playlists WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete playlist %d: %w", id, err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}
