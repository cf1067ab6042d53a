package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"ftp-m3u/internal/mediatypes"
	"ftp-m3u/internal/playlist"
	"ftp-m3u/internal/search"

	"github.com/spf13/cobra"
)

// inputEntry mirrors mediatypes.MediaEntry but treats a missing "selected"
// as selected, so hand-written files need not repeat it.
type inputEntry struct {
	URL      string `json:"url"`
	Name     string `json:"name"`
	Season   *int   `json:"season"`
	Episode  *int   `json:"episode"`
	Size     string `json:"size"`
	Selected *bool  `json:"selected"`
}

type generateOptions struct {
	playlist mediatypes.PlaylistOptions
	flat     bool
	unsorted bool
	output   string
}

func newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate [entries.json]",
		Short: "Build an M3U playlist from search results",
		Long: `Generate reads a JSON array of entries, as printed by the search command,
and writes an M3U playlist containing the selected ones. With no file
argument, or "-", entries are read from standard input.`,
		Example: `  ftpm3u search --host nas.local "Breaking Bad" | ftpm3u generate --group "Breaking Bad" -o bb.m3u`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "-"
			if len(args) == 1 {
				input = args[0]
			}
			return runGenerate(cmd, input, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.playlist.Name, "name", "n", "", "Playlist name (informational)")
	f.StringVarP(&opts.playlist.GroupTitle, "group", "g", "", "group-title attribute for every entry")
	f.BoolVar(&opts.flat, "flat", false, "Do not group entries by season")
	f.BoolVar(&opts.unsorted, "no-sort", false, "Keep the input order inside each group")
	f.StringVarP(&opts.output, "output", "o", "", "Write the playlist to this file instead of stdout")

	return cmd
}

func runGenerate(cmd *cobra.Command, input string, opts *generateOptions) error {
	var r io.Reader = cmd.InOrStdin()
	if input != "-" {
		f, err := os.Open(input)
		if err != nil {
			return fmt.Errorf("failed to open entries: %w", err)
		}
		defer f.Close()
		r = f
	}

	entries, err := readEntries(r)
	if err != nil {
		return err
	}

	selected := search.Selected(entries)
	if len(selected) == 0 {
		return errors.New("no selected entries to write")
	}

	options := opts.playlist
	options.OrganizeBySeasons = !opts.flat
	options.SortNumerically = !opts.unsorted
	content := playlist.Compose(selected, options)

	count := len(selected)
	if pl, err := playlist.Parse(strings.NewReader(content)); err == nil {
		count = pl.Count
	}

	if opts.output == "" {
		_, err = io.WriteString(cmd.OutOrStdout(), content)
		return err
	}
	if err := os.WriteFile(opts.output, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write playlist: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d entries to %s\n", count, opts.output)
	return nil
}

func readEntries(r io.Reader) ([]mediatypes.MediaEntry, error) {
	var raw []inputEntry
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode entries: %w", err)
	}

	entries := make([]mediatypes.MediaEntry, 0, len(raw))
	for i, e := range raw {
		if strings.TrimSpace(e.URL) == "" {
			return nil, fmt.Errorf("entry %d has no url", i)
		}
		entries = append(entries, mediatypes.MediaEntry{
			URL:      e.URL,
			Name:     e.Name,
			Season:   e.Season,
			Episode:  e.Episode,
			Size:     e.Size,
			Selected: e.Selected == nil || *e.Selected,
		})
	}
	return entries, nil
}
