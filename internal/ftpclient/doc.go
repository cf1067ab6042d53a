// Package ftpclient is the FTP session capability consumed by the search
// engine: connect, list a path, disconnect.
//
// The wire protocol belongs to github.com/jlaffaye/ftp. This package adapts
// its listings into mediatypes.DirectoryEntry values and classifies failures
// into the two errors the search engine cares about:
//
//   - ConnectionError: the session could not be established. Fatal to the
//     operation that asked for it.
//   - ListingError: a single directory could not be listed. Callers skip the
//     directory and carry on.
//
// Sessions are not safe for concurrent use; one session serves one
// operation and is closed when that operation returns.
package ftpclient
