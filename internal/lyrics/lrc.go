// Package lyrics parses time-tagged LRC lyrics and locates them for a track.
package lyrics

import (
	"bufio"
	"errors"
	"io"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// LastLineSpan is the span given to the final line of a lyric.
const LastLineSpan = 100 * time.Second

// Line represents a single timestamped lyric line.
type Line struct {
	Time time.Duration
	Text string
	// Span is the time until the next line, or LastLineSpan for the last one.
	Span time.Duration
}

// Lyrics contains parsed lyrics with optional metadata.
type Lyrics struct {
	Lines  []Line
	Title  string
	Artist string
	Album  string
}

// End returns the moment the line stops being active.
func (l Line) End() time.Duration {
	return l.Time + l.Span
}

// ActiveLine returns the index of the line whose [Time, Time+Span) window
// contains pos, or -1 when pos falls before the first line. The last line
// stays active from its time onwards.
func ActiveLine(lines []Line, pos time.Duration) int {
	// First line starting after pos; the candidate is the one before it.
	i := sort.Search(len(lines), func(i int) bool { return lines[i].Time > pos })
	if i == 0 {
		return -1
	}
	if i == len(lines) || pos < lines[i-1].End() {
		return i - 1
	}
	return -1
}

// LineAt returns the index of the lyric line at the given playback position.
func (l *Lyrics) LineAt(pos time.Duration) int {
	if l == nil {
		return -1
	}
	return ActiveLine(l.Lines, pos)
}

// metadataRe matches metadata tags like [ar:Artist Name].
var metadataRe = regexp.MustCompile(`^\[([a-zA-Z]+):(.+)\]$`)

// Parse parses an LRC blob into lines. It never fails: lines without a
// usable positive timestamp or without text are dropped, and malformed
// timestamp segments count as zero.
func Parse(text string) []Line {
	l, _ := ParseLRC(strings.NewReader(text))
	return l.Lines
}

// ParseLRC parses LRC format lyrics from a reader. Lines have no length
// limit. A read error stops the parse; the lines read so far are still
// ordered and given spans.
func ParseLRC(r io.Reader) (*Lyrics, error) {
	lyrics := &Lyrics{}
	br := bufio.NewReader(r)

	var readErr error
	for {
		raw, err := br.ReadString('\n')
		lyrics.parseLine(raw)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				readErr = err
			}
			break
		}
	}

	sort.SliceStable(lyrics.Lines, func(i, j int) bool {
		return lyrics.Lines[i].Time < lyrics.Lines[j].Time
	})
	fillSpans(lyrics.Lines)

	return lyrics, readErr
}

// parseLine adds one raw LRC line, either a metadata tag or timed text.
func (l *Lyrics) parseLine(raw string) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return
	}

	if meta := metadataRe.FindStringSubmatch(line); meta != nil {
		switch strings.ToLower(meta[1]) {
		case "ar":
			l.Artist = strings.TrimSpace(meta[2])
		case "ti":
			l.Title = strings.TrimSpace(meta[2])
		case "al":
			l.Album = strings.TrimSpace(meta[2])
		}
		return
	}

	stamps, text := splitTimestamps(line)
	if text == "" {
		return
	}
	// LRC can have multiple timestamps for the same text: [00:12.34][00:45.67]Text
	for _, stamp := range stamps {
		ts := parseTimestamp(stamp)
		if ts <= 0 {
			continue
		}
		l.Lines = append(l.Lines, Line{Time: ts, Text: text})
	}
}

// splitTimestamps strips the leading bracketed groups of a line and returns
// their contents along with the remaining text.
func splitTimestamps(line string) (stamps []string, text string) {
	rest := line
	for strings.HasPrefix(rest, "[") {
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			break
		}
		stamps = append(stamps, rest[1:end])
		rest = rest[end+1:]
	}
	return stamps, strings.TrimSpace(rest)
}

// parseTimestamp folds colon-separated segments into seconds, so "01:02.50"
// is 62.5s, rounded to the millisecond. A segment that is not a number counts as zero.
func parseTimestamp(s string) time.Duration {
	var seconds float64
	for part := range strings.SplitSeq(s, ":") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil || v < 0 {
			v = 0
		}
		seconds = seconds*60 + v
	}
	return time.Duration(math.Round(seconds*1000)) * time.Millisecond
}

// fillSpans sets each line's span to the gap before the next line.
func fillSpans(lines []Line) {
	for i := range lines {
		if i == len(lines)-1 {
			lines[i].Span = LastLineSpan
			break
		}
		lines[i].Span = lines[i+1].Time - lines[i].Time
	}
}
