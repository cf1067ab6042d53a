package main

import (
	"time"

	"ftp-m3u/internal/ftpclient"
	"ftp-m3u/internal/logging"
	"ftp-m3u/internal/startup"

	"github.com/spf13/cobra"
)

// newDialer opens FTP sessions for the search command. Tests replace it.
var newDialer = func(timeout time.Duration) ftpclient.Dialer {
	return ftpclient.InstrumentedDialer{Dialer: ftpclient.NewDialer(timeout)}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "ftpm3u",
		Short: "Search FTP servers for media and build M3U playlists",
		Long: `ftpm3u searches an FTP server's folders for media files matching a title
and turns the results into an M3U playlist.

Search results are printed as JSON so they can be edited (for example to
deselect entries) and fed back into the generate command.`,
		Version:       startup.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if verbose {
				logging.SetLevel(logging.LevelDebug)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(newSearchCmd(), newGenerateCmd())
	return root
}
