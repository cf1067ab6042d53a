package metrics

// MatchTiers lists the matcher tier labels in evaluation order.
var MatchTiers = []string{"phrase", "separator_phrase", "token_ratio", "token_pair", "year"}

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	for _, file := range []string{"main", "wal", "shm"} {
		DBSizeBytes.WithLabelValues(file)
	}

	for _, status := range []string{"success", "error"} {
		FTPConnectionsTotal.WithLabelValues(status)
		FTPListingsTotal.WithLabelValues(status)
		AuthAttemptsTotal.WithLabelValues(status)
	}

	for _, status := range []string{"success", "invalid", "connection_error", "error"} {
		SearchRequestsTotal.WithLabelValues(status)
	}

	for _, tier := range MatchTiers {
		SearchMatchesTotal.WithLabelValues(tier)
	}

	for _, op := range []string{"initialize_schema", "list_servers", "get_server", "create_server",
		"update_server", "delete_server", "list_playlists", "get_playlist", "create_playlist",
		"delete_playlist", "get_setting", "set_setting"} {
		DBQueryTotal.WithLabelValues(op, "success")
		DBQueryTotal.WithLabelValues(op, "error")
		DBQueryDuration.WithLabelValues(op)
	}
}
