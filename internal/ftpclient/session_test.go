package ftpclient

import (
	"errors"
	"fmt"
	"testing"

	"ftp-m3u/internal/mediatypes"

	"github.com/google/go-cmp/cmp"
	"github.com/jlaffaye/ftp"
)

func TestConnectionInfoWithDefaults(t *testing.T) {
	tests := []struct {
		name string
		in   ConnectionInfo
		want ConnectionInfo
	}{
		{
			name: "fills port and user",
			in:   ConnectionInfo{Host: " ftp.example.com "},
			want: ConnectionInfo{Host: "ftp.example.com", Port: 21, Username: "anonymous"},
		},
		{
			name: "keeps explicit values",
			in:   ConnectionInfo{Host: "10.0.0.2", Port: 2121, Username: "me", Password: "pw"},
			want: ConnectionInfo{Host: "10.0.0.2", Port: 2121, Username: "me", Password: "pw"},
		},
		{
			name: "negative port",
			in:   ConnectionInfo{Host: "h", Port: -5},
			want: ConnectionInfo{Host: "h", Port: 21, Username: "anonymous"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.in.WithDefaults()); diff != "" {
				t.Errorf("WithDefaults() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConnectionInfoAddrAndOrigin(t *testing.T) {
	info := ConnectionInfo{Host: "ftp.example.com", Port: 21}
	if got := info.Addr(); got != "ftp.example.com:21" {
		t.Errorf("Addr() = %q", got)
	}
	if got := info.Origin(); got != "ftp.example.com:21" {
		t.Errorf("Origin() = %q", got)
	}

	v6 := ConnectionInfo{Host: "::1", Port: 2121}
	if got := v6.Addr(); got != "[::1]:2121" {
		t.Errorf("Addr() = %q, want bracketed host", got)
	}
}

func TestConvertEntries(t *testing.T) {
	raw := []*ftp.Entry{
		{Name: "Shows", Type: ftp.EntryTypeFolder},
		{Name: "a.mkv", Type: ftp.EntryTypeFile, Size: 2048},
		{Name: "latest", Type: ftp.EntryTypeLink, Target: "Shows"},
		nil,
	}

	want := []mediatypes.DirectoryEntry{
		{Name: "Shows", Kind: mediatypes.KindDirectory},
		{Name: "a.mkv", Kind: mediatypes.KindFile, Size: 2048},
		{Name: "latest", Kind: mediatypes.KindLink},
	}

	if diff := cmp.Diff(want, convertEntries(raw)); diff != "" {
		t.Errorf("convertEntries() mismatch (-want +got):\n%s", diff)
	}
}

func TestSizeOfOverflow(t *testing.T) {
	if got := sizeOf(1 << 63); got != -1 {
		t.Errorf("sizeOf(1<<63) = %d, want -1", got)
	}
	if got := sizeOf(10); got != 10 {
		t.Errorf("sizeOf(10) = %d", got)
	}
}

func TestErrorClassification(t *testing.T) {
	cause := errors.New("boom")

	connErr := fmt.Errorf("search: %w", &ConnectionError{Addr: "h:21", Err: cause})
	if !IsConnectionError(connErr) {
		t.Error("IsConnectionError should see through wrapping")
	}
	if IsListingError(connErr) {
		t.Error("connection error misclassified as listing error")
	}
	if !errors.Is(connErr, cause) {
		t.Error("ConnectionError should unwrap to its cause")
	}

	listErr := &ListingError{Path: "/Shows", Err: cause}
	if !IsListingError(listErr) {
		t.Error("IsListingError should match")
	}
	if got := listErr.Error(); got != "failed to list /Shows: boom" {
		t.Errorf("Error() = %q", got)
	}
}
