// Package i18n holds the presentation strings and picks a language for a
// locale tag.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys. The English text is the key itself.
const (
	Playing      = "Playing"
	Paused       = "Paused"
	Stopped      = "Stopped"
	ModeInOrder  = "In order"
	ModeRandom   = "Random"
	ModeRepeat   = "Repeat one"
	NoLyrics     = "No lyrics"
	EmptyLibrary = "No music found in %s"
	TrackCount   = "%d tracks"
	SortedBy     = "Sorted by %s"
	SortTitle    = "title"
	SortArtist   = "artist"
	SortDuration = "duration"
	Help         = "space play/pause · n/p next/prev · ←/→ seek · m mode · s sort · r rescan · q quit"
)

// Supported lists the available languages; the first is the fallback.
var Supported = []language.Tag{
	language.English,
	language.SimplifiedChinese,
}

var matcher = language.NewMatcher(Supported)

var zh = map[string]string{
	Playing:      "播放中",
	Paused:       "已暂停",
	Stopped:      "已停止",
	ModeInOrder:  "顺序播放",
	ModeRandom:   "随机播放",
	ModeRepeat:   "单曲循环",
	NoLyrics:     "暂无歌词",
	EmptyLibrary: "%s 中没有找到音乐",
	TrackCount:   "%d 首歌曲",
	SortedBy:     "按%s排序",
	SortTitle:    "标题",
	SortArtist:   "艺术家",
	SortDuration: "时长",
	Help:         "空格 播放/暂停 · n/p 下一首/上一首 · ←/→ 快进/快退 · m 模式 · s 排序 · r 重新扫描 · q 退出",
}

func init() {
	for key, text := range zh {
		_ = message.SetString(language.SimplifiedChinese, key, text)
	}
}

// Match returns the supported language closest to locale, falling back to
// English for unknown or malformed tags.
func Match(locale string) language.Tag {
	tag, err := language.Parse(locale)
	if err != nil {
		return Supported[0]
	}
	_, idx, _ := matcher.Match(tag)
	return Supported[idx]
}

// Printer returns a printer for locale.
func Printer(locale string) *message.Printer {
	return message.NewPrinter(Match(locale))
}
