package tags

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"

	"github.com/llehouerou/zeedle/internal/testutil"
)

func TestIsMusicFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"song.mp3", true},
		{"SONG.MP3", true},
		{"a/b/song.flac", true},
		{"song.wav", true},
		{"song.ogg", true},
		{"song.opus", false},
		{"song.m4a", false},
		{"cover.jpg", false},
		{"noext", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := IsMusicFile(tt.path); got != tt.want {
				t.Errorf("IsMusicFile(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestStem(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/music/My Song.mp3", "My Song"},
		{"track.flac", "track"},
		{"/music/a.b.ogg", "a.b"},
		{"noext", "noext"},
	}
	for _, tt := range tests {
		if got := Stem(tt.path); got != tt.want {
			t.Errorf("Stem(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestRead_MP3(t *testing.T) {
	dir := t.TempDir()
	lrc := "[00:05.00]Hello\n[00:08.00]World"
	path := testutil.WriteMP3(t, dir, "test.mp3", testutil.MP3Tags{
		Title:  "Test Title",
		Artist: "Test Artist",
		Lyrics: lrc,
	})

	result, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}

	assertEqual(t, "Title", result.Title, "Test Title")
	assertEqual(t, "Artist", result.Artist, "Test Artist")
	assertEqual(t, "Path", result.Path, path)
	if !strings.Contains(result.Lyrics, "Hello") || !strings.Contains(result.Lyrics, "World") {
		t.Errorf("Lyrics = %q, want it to contain the embedded blob", result.Lyrics)
	}
}

func TestRead_TitleFallbackToStem(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteMP3(t, dir, "My Song.mp3", testutil.MP3Tags{Artist: "Test Artist"})

	result, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	assertEqual(t, "Title", result.Title, "My Song")
}

func TestRead_NonexistentFile(t *testing.T) {
	_, err := Read("/nonexistent/path/file.mp3")
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestReadWithAudio_WAV(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteWAV(t, dir, "Quiet Track.wav", 2)

	info, err := ReadWithAudio(path)
	if err != nil {
		t.Fatalf("ReadWithAudio() error: %v", err)
	}

	assertEqual(t, "Title", info.Title, "Quiet Track")
	assertEqual(t, "Format", info.Format, "WAV")
	assertEqual(t, "SampleRate", info.SampleRate, int(testutil.FixtureRate))
	assertEqual(t, "Duration", info.Duration, 2*time.Second)
}

func TestReadWithAudio_UndecodableFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.wav")
	if err := os.WriteFile(path, []byte("definitely not riff"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadWithAudio(path); err == nil {
		t.Error("expected error for undecodable file")
	}
}

func TestReadAudioInfo_MP3(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteMP3(t, dir, "test.mp3", testutil.MP3Tags{})

	info, err := ReadAudioInfo(path)
	if err != nil {
		t.Fatalf("ReadAudioInfo() error: %v", err)
	}

	assertEqual(t, "Format", info.Format, "MP3")
	assertEqual(t, "SampleRate", info.SampleRate, 44100)
	assertEqual(t, "BitDepth", info.BitDepth, 16)
}

func TestReadAudioInfo_UnsupportedFormat(t *testing.T) {
	_, err := ReadAudioInfo("/music/song.m4a")
	if err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestFirstComment(t *testing.T) {
	cmts := flacvorbis.New()
	for _, kv := range [][2]string{
		{"TITLE", "Vorbis Title"},
		{"UNSYNCEDLYRICS", "[00:01.00]line"},
	} {
		if err := cmts.Add(kv[0], kv[1]); err != nil {
			t.Fatalf("Add(%s): %v", kv[0], err)
		}
	}
	block := cmts.Marshal()

	parsed, err := flacvorbis.ParseFromMetaDataBlock(block)
	if err != nil {
		t.Fatalf("ParseFromMetaDataBlock: %v", err)
	}

	assertEqual(t, "title", firstComment(parsed, flacvorbis.FIELD_TITLE), "Vorbis Title")
	assertEqual(t, "lyrics", firstComment(parsed, vorbisLyricKeys...), "[00:01.00]line")
	assertEqual(t, "missing", firstComment(parsed, "GENRE"), "")
}

func TestFLACPictureBlock(t *testing.T) {
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	data := buf.Bytes()
	pic, err := flacpicture.NewFromImageData(flacpicture.PictureTypeFrontCover, "Front Cover", data, "image/png")
	if err != nil {
		t.Fatalf("NewFromImageData: %v", err)
	}
	block := pic.Marshal()

	parsed, err := flacpicture.ParseFromMetaDataBlock(block)
	if err != nil {
		t.Fatalf("ParseFromMetaDataBlock: %v", err)
	}
	assertEqual(t, "MIME", parsed.MIME, "image/png")
	assertEqual(t, "PictureType", parsed.PictureType, flacpicture.PictureTypeFrontCover)
}

func TestCoverArt_FolderFallback(t *testing.T) {
	dir := t.TempDir()
	img := []byte("jpeg bytes")
	if err := os.WriteFile(filepath.Join(dir, "cover.jpg"), img, 0o600); err != nil {
		t.Fatal(err)
	}

	pic := CoverArt(&Tag{Path: filepath.Join(dir, "song.mp3")})
	if pic == nil {
		t.Fatal("CoverArt() = nil, want folder image")
	}
	assertEqual(t, "MIMEType", pic.MIMEType, "image/jpeg")
	assertEqual(t, "Data", string(pic.Data), string(img))
}

func TestCoverArt_EmbeddedWins(t *testing.T) {
	embedded := &Picture{Data: []byte("x"), MIMEType: "image/png"}
	if got := CoverArt(&Tag{Path: "/nowhere/song.mp3", Cover: embedded}); got != embedded {
		t.Errorf("CoverArt() = %v, want embedded picture", got)
	}
}

func TestCoverArt_None(t *testing.T) {
	if got := CoverArt(&Tag{Path: filepath.Join(t.TempDir(), "song.mp3")}); got != nil {
		t.Errorf("CoverArt() = %v, want nil", got)
	}
}

func assertEqual[T comparable](t *testing.T, field string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", field, got, want)
	}
}

func TestFolderCover_RankAndCase(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"Front.PNG", "FOLDER.jpg", "notes.txt", "cover.gif"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(name), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	name, mime := folderCover(dir)
	assertEqual(t, "name", name, "FOLDER.jpg")
	assertEqual(t, "mime", mime, "image/jpeg")
}
