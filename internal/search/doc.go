// Package search runs media searches against FTP servers.
//
// A search validates the request, opens one FTP session, explores the tree
// from "/" for candidate folders, matches files in those folders and closes
// the session on every exit path. Results are cached per server, user,
// term and file types for a configurable time.
//
//	svc := search.NewService(ftpclient.NewDialer(30*time.Second), search.Config{
//		MaxDepth: explorer.DefaultMaxDepth,
//		Policy:   matcher.DefaultPolicy(),
//		CacheTTL: 5 * time.Minute,
//	})
//	entries, err := svc.Search(ctx, search.Request{Host: "ftp.example.com", SearchTerm: "Breaking Bad"})
//
// Errors are typed: *ValidationError for bad requests (no network activity
// happens), *ftpclient.ConnectionError when the server cannot be reached.
// Folders that fail to list are skipped and only logged.
package search
