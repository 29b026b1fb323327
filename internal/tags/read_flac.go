package tags

import (
	goflac "github.com/go-flac/go-flac"
	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
)

// Vorbis comment keys that may hold a lyric blob, in lookup order.
var vorbisLyricKeys = []string{"LYRICS", "UNSYNCEDLYRICS", "UNSYNCED LYRICS"}

// flacMeta holds what we read from FLAC metadata blocks.
type flacMeta struct {
	title  string
	artist string
	album  string
	lyrics string
	cover  *Picture
}

// readFLACMeta parses the Vorbis comment and picture blocks of a FLAC file.
func readFLACMeta(path string) (*flacMeta, error) {
	f, err := goflac.ParseFile(path)
	if err != nil {
		return nil, err
	}

	fm := &flacMeta{}
	var fallbackCover *Picture
	for _, meta := range f.Meta {
		switch meta.Type {
		case goflac.VorbisComment:
			cmts, err := flacvorbis.ParseFromMetaDataBlock(*meta)
			if err != nil {
				continue
			}
			fm.title = firstComment(cmts, flacvorbis.FIELD_TITLE)
			fm.artist = firstComment(cmts, flacvorbis.FIELD_ARTIST)
			fm.album = firstComment(cmts, flacvorbis.FIELD_ALBUM)
			fm.lyrics = firstComment(cmts, vorbisLyricKeys...)
		case goflac.Picture:
			pic, err := flacpicture.ParseFromMetaDataBlock(*meta)
			if err != nil || len(pic.ImageData) == 0 {
				continue
			}
			p := &Picture{Data: pic.ImageData, MIMEType: pic.MIME}
			if pic.PictureType == flacpicture.PictureTypeFrontCover {
				fm.cover = p
			} else if fallbackCover == nil {
				fallbackCover = p
			}
		}
	}
	if fm.cover == nil {
		fm.cover = fallbackCover
	}
	return fm, nil
}

// readFLACExtended fills the lyric blob and cover from FLAC metadata
// blocks when dhowden/tag left them empty.
func readFLACExtended(path string, t *Tag) {
	if t.Lyrics != "" && t.Cover != nil {
		return
	}
	fm, err := readFLACMeta(path)
	if err != nil {
		return
	}
	if t.Lyrics == "" {
		t.Lyrics = fm.lyrics
	}
	if t.Cover == nil {
		t.Cover = fm.cover
	}
}

// readFLACWithFallback reads FLAC metadata when dhowden/tag fails. It tries
// the go-flac block parser first and TagLib second, which also copes with
// files carrying a prepended ID3v2 header.
func readFLACWithFallback(path string) (*Tag, error) {
	fm, err := readFLACMeta(path)
	if err != nil {
		return readWithTaglib(path)
	}

	title := fm.title
	if title == "" {
		title = Stem(path)
	}
	return &Tag{
		Path:   path,
		Title:  title,
		Artist: fm.artist,
		Album:  fm.album,
		Lyrics: fm.lyrics,
		Cover:  fm.cover,
	}, nil
}

// firstComment returns the first non-empty value among keys.
func firstComment(cmts *flacvorbis.MetaDataBlockVorbisComment, keys ...string) string {
	for _, key := range keys {
		values, err := cmts.Get(key)
		if err != nil {
			continue
		}
		for _, v := range values {
			if v != "" {
				return v
			}
		}
	}
	return ""
}
