package database

import "time"

// Defaults applied to saved servers.
const (
	DefaultServerPort     = 21
	DefaultServerUsername = "anonymous"
	DefaultServerIcon     = "storage"
)

// FTPServer is a saved FTP server.
type FTPServer struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Host         string `json:"host"`
	Port         int    `json:"port"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	Icon         string `json:"icon"`
	SavePassword bool   `json:"savePassword"`
}

// Playlist is a generated and stored M3U playlist.
type Playlist struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	GroupTitle  string    `json:"groupTitle"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"createdAt"`
	ServerID    *int64    `json:"serverId"`
	EntryCount  int       `json:"entryCount"`
}

// Stats summarizes stored records.
type Stats struct {
	TotalServers   int `json:"totalServers"`
	TotalPlaylists int `json:"totalPlaylists"`
	ActiveSessions int `json:"activeSessions"`
}
