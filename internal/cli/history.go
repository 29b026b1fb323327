package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/llehouerou/zeedle/internal/catalog"
	"github.com/llehouerou/zeedle/internal/state"
)

// openStore opens the listening history. Tests point it elsewhere.
var openStore = func() (state.Interface, error) { return state.Open() }

func newHistoryCmd(opts *options) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the most recent plays",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _ := opts.loadConfig()
			if err := initLogger(cfg, opts.verbose); err != nil {
				return err
			}
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			plays, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			writeHistory(cmd.OutOrStdout(), plays, time.Now())
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of plays to show")
	return cmd
}

// writeHistory prints plays newest first with the run that played them.
func writeHistory(w io.Writer, plays []state.Play, now time.Time) {
	if len(plays) == 0 {
		fmt.Fprintln(w, "no plays recorded")
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"When", "Title", "Artist", "How", "Run"})
	for _, p := range plays {
		t.AppendRow(table.Row{
			humanize.RelTime(p.PlayedAt, now, "ago", "from now"),
			catalog.Truncate(p.Title, 40),
			catalog.Truncate(p.Artist, 30),
			p.Trigger,
			shortSession(p.Session),
		})
	}
	t.Render()
}

func shortSession(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
