package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsExist(t *testing.T) {
	tests := []struct {
		name   string
		metric interface{}
	}{
		{"HTTPRequestsTotal", HTTPRequestsTotal},
		{"HTTPRequestDuration", HTTPRequestDuration},
		{"HTTPRequestsInFlight", HTTPRequestsInFlight},
		{"DBQueryTotal", DBQueryTotal},
		{"DBQueryDuration", DBQueryDuration},
		{"DBConnectionsOpen", DBConnectionsOpen},
		{"DBSizeBytes", DBSizeBytes},
		{"FTPConnectionsTotal", FTPConnectionsTotal},
		{"FTPListingsTotal", FTPListingsTotal},
		{"FTPListDuration", FTPListDuration},
		{"FTPEntriesListed", FTPEntriesListed},
		{"SearchRequestsTotal", SearchRequestsTotal},
		{"SearchDuration", SearchDuration},
		{"SearchCandidateFolders", SearchCandidateFolders},
		{"SearchMatchesTotal", SearchMatchesTotal},
		{"SearchCacheHits", SearchCacheHits},
		{"SearchCacheMisses", SearchCacheMisses},
		{"PlaylistsGeneratedTotal", PlaylistsGeneratedTotal},
		{"PlaylistEntries", PlaylistEntries},
		{"ServersTotal", ServersTotal},
		{"PlaylistsTotal", PlaylistsTotal},
		{"AuthAttemptsTotal", AuthAttemptsTotal},
		{"ActiveSessions", ActiveSessions},
		{"AppInfo", AppInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.metric == nil {
				t.Errorf("%s metric is nil", tt.name)
			}
		})
	}
}

func TestSetAppInfo(t *testing.T) {
	SetAppInfo("1.2.3", "abc123", "go1.25")

	if got := testutil.ToFloat64(AppInfo.WithLabelValues("1.2.3", "abc123", "go1.25")); got != 1 {
		t.Errorf("AppInfo = %v, want 1", got)
	}
}

func TestInitializeMetricsPrepopulatesLabels(t *testing.T) {
	InitializeMetrics()

	if got := testutil.CollectAndCount(SearchMatchesTotal); got < len(MatchTiers) {
		t.Errorf("SearchMatchesTotal series = %d, want at least %d", got, len(MatchTiers))
	}
	if got := testutil.CollectAndCount(SearchRequestsTotal); got < 4 {
		t.Errorf("SearchRequestsTotal series = %d, want at least 4", got)
	}
	if got := testutil.CollectAndCount(DBSizeBytes); got < 3 {
		t.Errorf("DBSizeBytes series = %d, want at least 3", got)
	}
}
