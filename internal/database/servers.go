package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

const serverColumns = "id, name, host, port, username, password, icon, save_password"

// normalizeServer trims input, applies defaults and drops the password
// unless it should be saved.
func normalizeServer(s FTPServer) (FTPServer, error) {
	s.Name = strings.TrimSpace(s.Name)
	s.Host = strings.TrimSpace(s.Host)
	if s.Name == "" {
		return s, fmt.Errorf("%w: server name is required", ErrInvalidInput)
	}
	if s.Host == "" {
		return s, fmt.Errorf("%w: server host is required", ErrInvalidInput)
	}
	if s.Port <= 0 {
		s.Port = DefaultServerPort
	}
	if s.Port > 65535 {
		return s, fmt.Errorf("%w: port %d out of range", ErrInvalidInput, s.Port)
	}
	if s.Username == "" {
		s.Username = DefaultServerUsername
	}
	if s.Icon == "" {
		s.Icon = DefaultServerIcon
	}
	if !s.SavePassword {
		s.Password = ""
	}
	return s, nil
}

func scanServer(row interface{ Scan(...any) error }) (*FTPServer, error) {
	var s FTPServer
	if err := row.Scan(&s.ID, &s.Name, &s.Host, &s.Port, &s.Username, &s.Password, &s.Icon, &s.SavePassword); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListServers returns all saved servers ordered by name.
func (d *Database) ListServers(ctx context.Context) ([]FTPServer, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("list_servers", start, err) }()

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := d.db.QueryContext(ctx, "SELECT "+serverColumns+" FROM ftp_servers ORDER BY name COLLATE NOCASE, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list servers: %w", err)
	}
	defer rows.Close()

	servers := []FTPServer{}
	for rows.Next() {
		s, scanErr := scanServer(rows)
		if scanErr != nil {
			err = scanErr
			return nil, fmt.Errorf("failed to scan server: %w", err)
		}
		servers = append(servers, *s)
	}
	err = rows.Err()
	return servers, err
}

// GetServer returns one server or ErrNotFound.
func (d *Database) GetServer(ctx context.Context, id int64) (*FTPServer, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("get_server", start, err) }()

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	s, err := scanServer(d.db.QueryRowContext(ctx, "SELECT "+serverColumns+" FROM ftp_servers WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get server %d: %w", id, err)
	}
	return s, nil
}

// CreateServer stores a server and returns it with its new ID.
func (d *Database) CreateServer(ctx context.Context, s FTPServer) (*FTPServer, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("create_server", start, err) }()

	s, err = normalizeServer(s)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := d.db.ExecContext(ctx, `
		INSERT INTO ftp_servers (name, host, port, username, password, icon, save_password)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, s.Name, s.Host, s.Port, s.Username, s.Password, s.Icon, s.SavePassword)
	if err != nil {
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	s.ID, err = result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read server id: %w", err)
	}
	return &s, nil
}

// UpdateServer replaces a saved server.
func (d *Database) UpdateServer(ctx context.Context, id int64, s FTPServer) (*FTPServer, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("update_server", start, err) }()

	s, err = normalizeServer(s)
	if err != nil {
		return nil, err
	}
	s.ID = id

	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := d.db.ExecContext(ctx, `
		UPDATE ftp_servers
		SET name = ?, host = ?, port = ?, username = ?, password = ?, icon = ?, save_password = ?
		WHERE id = ?
	`, s.Name, s.Host, s.Port, s.Username, s.Password, s.Icon, s.SavePassword, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update server %d: %w", id, err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return nil, ErrNotFound
	}
	return &s, nil
}

// DeleteServer removes a server. Playlists generated from it are kept and
// lose their server reference.
func (d *Database) DeleteServer(ctx context.Context, id int64) error {
	start := time.Now()
	var err error
	defer func() { recordQuery("delete_server", start, err) }()

	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := d.db.ExecContext(ctx, "DELETE FROM ftp_servers WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete server %d: %w", id, err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}
