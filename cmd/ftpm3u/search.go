package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"ftp-m3u/internal/mediatypes"
	"ftp-m3u/internal/search"

	"github.com/spf13/cobra"
)

type searchOptions struct {
	request  search.Request
	types    string
	timeout  time.Duration
	maxDepth int
}

func newSearchCmd() *cobra.Command {
	opts := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search an FTP server for media files",
		Long: `Search walks the server from / looking for folders related to the term,
then lists those folders for media files whose names match it.

The password can also be supplied through FTP_PASSWORD.`,
		Example: `  ftpm3u search --host nas.local "Breaking Bad" > results.json
  ftpm3u search --host nas.local --types mkv,mp4 --user me "The Matrix 1999"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.request.SearchTerm = strings.Join(args, " ")
			return runSearch(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.request.Host, "host", "", "FTP server host name or address")
	f.IntVarP(&opts.request.Port, "port", "p", 21, "FTP server port")
	f.StringVarP(&opts.request.Username, "user", "u", "anonymous", "FTP user name")
	f.StringVar(&opts.request.Password, "password", "", "FTP password")
	f.StringVarP(&opts.types, "types", "t", "", "Comma-separated file extensions (default mp4,mkv,avi)")
	f.DurationVar(&opts.timeout, "timeout", 30*time.Second, "FTP dial and command timeout")
	f.IntVar(&opts.maxDepth, "max-depth", search.DefaultConfig().MaxDepth, "Folder depth explored below /")
	_ = cmd.MarkFlagRequired("host")

	return cmd
}

func runSearch(cmd *cobra.Command, opts *searchOptions) error {
	req := opts.request
	if req.Password == "" {
		req.Password = os.Getenv("FTP_PASSWORD")
	}
	req.FileTypes = splitList(opts.types)

	cfg := search.DefaultConfig()
	cfg.MaxDepth = opts.maxDepth
	cfg.CacheTTL = 0
	svc := search.NewService(newDialer(opts.timeout), cfg)

	results, err := svc.Search(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Found %d matching files\n", len(results))

	if results == nil {
		results = []mediatypes.MediaEntry{}
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
