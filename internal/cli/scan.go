package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/llehouerou/zeedle/internal/catalog"
)

func newScanCmd(opts *options) *cobra.Command {
	var sortBy string
	var descending bool

	cmd := &cobra.Command{
		Use:   "scan [dir]",
		Short: "List the tracks the player would see in a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, cfgErr := opts.loadConfig()
			if err := initLogger(cfg, opts.verbose); err != nil {
				return err
			}
			if cfgErr != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning:", cfgErr)
			}

			root := cfg.LibraryRoot
			if len(args) == 1 {
				root = args[0]
			}
			key := cfg.Sort()
			ascending := cfg.SortAscending
			if cmd.Flags().Changed("sort") {
				k, err := catalog.ParseSortKey(sortBy)
				if err != nil {
					return err
				}
				key = k
			}
			if cmd.Flags().Changed("desc") {
				ascending = !descending
			}

			res, err := (&catalog.Scanner{}).Scan(cmd.Context(), root, key, ascending)
			if err != nil {
				return err
			}
			writeScan(cmd.OutOrStdout(), res)
			return nil
		},
	}
	cmd.Flags().StringVarP(&sortBy, "sort", "s", "title", "sort key: title, artist or duration")
	cmd.Flags().BoolVar(&descending, "desc", false, "sort in descending order")
	return cmd
}

// writeScan prints the catalog as a table followed by totals and the
// entries that could not be read.
func writeScan(w io.Writer, res catalog.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	style := table.StyleLight
	style.Format.Footer = text.FormatDefault
	t.SetStyle(style)
	t.AppendHeader(table.Row{"#", "Title", "Artist", "Duration", "Size"})

	var total time.Duration
	var bytes uint64
	for _, tr := range res.Tracks {
		size := fileSize(tr.Path)
		bytes += size
		total += tr.Length
		t.AppendRow(table.Row{
			tr.ID + 1,
			catalog.Truncate(tr.Title, 40),
			catalog.Truncate(tr.Artist, 30),
			tr.Duration,
			humanize.IBytes(size),
		})
	}
	t.AppendFooter(table.Row{
		"",
		fmt.Sprintf("%d tracks", len(res.Tracks)),
		"",
		catalog.FormatDuration(total),
		humanize.IBytes(bytes),
	})
	t.Render()

	fmt.Fprintf(w, "scanned in %s\n", res.Elapsed.Round(time.Millisecond))
	for _, s := range res.Skipped {
		fmt.Fprintf(w, "skipped %s\n", s.Error())
	}
}

func fileSize(path string) uint64 {
	fi, err := os.Stat(path)
	if err != nil || fi.Size() < 0 {
		return 0
	}
	return uint64(fi.Size())
}
