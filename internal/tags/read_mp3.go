package tags

import (
	"github.com/bogem/id3v2/v2"
)

// usltFrameID is the ID3v2 frame holding unsynchronised lyrics.
const usltFrameID = "USLT"

// readMP3Extended fills the lyric blob and cover from ID3v2 frames when
// dhowden/tag left them empty.
func readMP3Extended(path string, t *Tag) {
	if t.Lyrics != "" && t.Cover != nil {
		return
	}
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return
	}
	defer id3tag.Close()

	if t.Lyrics == "" {
		t.Lyrics = getID3Lyrics(id3tag)
	}
	if t.Cover == nil {
		t.Cover = getID3Picture(id3tag)
	}
}

// readMP3WithID3v2Fallback reads MP3 metadata using only the id3v2 library.
// This is used as a fallback when dhowden/tag fails (e.g., on some UTF-16 encoded tags).
func readMP3WithID3v2Fallback(path string) (*Tag, error) {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, err
	}
	defer id3tag.Close()

	title := id3tag.Title()
	if title == "" {
		title = Stem(path)
	}

	artist := id3tag.Artist()
	if artist == "" {
		artist = getID3TextFrame(id3tag, "TPE2") // Album artist frame
	}

	return &Tag{
		Path:   path,
		Title:  title,
		Artist: artist,
		Album:  id3tag.Album(),
		Lyrics: getID3Lyrics(id3tag),
		Cover:  getID3Picture(id3tag),
	}, nil
}

// getID3Lyrics returns the first non-empty USLT frame.
func getID3Lyrics(id3tag *id3v2.Tag) string {
	for _, frame := range id3tag.GetFrames(usltFrameID) {
		if uslf, ok := frame.(id3v2.UnsynchronisedLyricsFrame); ok && uslf.Lyrics != "" {
			return uslf.Lyrics
		}
	}
	return ""
}

// getID3Picture returns the front cover, or the first picture when no
// front cover is present.
func getID3Picture(id3tag *id3v2.Tag) *Picture {
	var first *Picture
	for _, frame := range id3tag.GetFrames(id3tag.CommonID("Attached picture")) {
		pf, ok := frame.(id3v2.PictureFrame)
		if !ok || len(pf.Picture) == 0 {
			continue
		}
		pic := &Picture{Data: pf.Picture, MIMEType: pf.MimeType}
		if pf.PictureType == id3v2.PTFrontCover {
			return pic
		}
		if first == nil {
			first = pic
		}
	}
	return first
}

// getID3TextFrame reads a text frame value from an ID3v2 tag.
func getID3TextFrame(id3tag *id3v2.Tag, frameID string) string {
	frames := id3tag.GetFrames(frameID)
	if len(frames) == 0 {
		return ""
	}
	if tf, ok := frames[0].(id3v2.TextFrame); ok {
		return tf.Text
	}
	return ""
}
