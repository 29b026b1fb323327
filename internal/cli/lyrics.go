package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/llehouerou/zeedle/internal/catalog"
	"github.com/llehouerou/zeedle/internal/lyrics"
)

func newLyricsCmd(_ *options) *cobra.Command {
	var at time.Duration

	cmd := &cobra.Command{
		Use:   "lyrics <file>",
		Short: "Print the time-tagged lyric found for an audio file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, src := lyrics.Load(args[0])
			active := -1
			if cmd.Flags().Changed("at") {
				active = lyrics.ActiveLine(lines, at)
			}
			return writeLyrics(cmd.OutOrStdout(), lines, src, active)
		},
	}
	cmd.Flags().DurationVar(&at, "at", 0, "mark the line active at this position, e.g. 1m05s")
	return cmd
}

func writeLyrics(w io.Writer, lines []lyrics.Line, src lyrics.Source, active int) error {
	if len(lines) == 0 {
		_, err := fmt.Fprintln(w, "no lyrics")
		return err
	}
	if _, err := fmt.Fprintf(w, "source: %s\n", src); err != nil {
		return err
	}
	for i, l := range lines {
		marker := "  "
		if i == active {
			marker = "▶ "
		}
		ms := l.Time.Milliseconds() % 1000
		if _, err := fmt.Fprintf(w, "%s[%s.%02d] %s\n", marker, catalog.FormatDuration(l.Time), ms/10, l.Text); err != nil {
			return err
		}
	}
	return nil
}
