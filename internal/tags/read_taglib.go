package tags

import (
	"go.senan.xyz/taglib"
)

// readWithTaglib reads metadata using TagLib as fallback when dhowden/tag
// fails or does not support the container (WAV).
func readWithTaglib(path string) (*Tag, error) {
	rawTags, err := taglib.ReadTags(path)
	if err != nil {
		return nil, err
	}
	tags := taglibTags(rawTags)

	title := tags.get(taglib.Title)
	if title == "" {
		title = Stem(path)
	}

	return &Tag{
		Path:   path,
		Title:  title,
		Artist: tags.get(taglib.Artist, taglib.AlbumArtist),
		Album:  tags.get(taglib.Album),
		Lyrics: tags.get(vorbisLyricKeys...),
	}, nil
}
