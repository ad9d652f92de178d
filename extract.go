package bilicopy

import (
	"regexp"
	"strings"
	"time"
)

// Selectors on the video page.
const (
	selAuthorMeta = `meta[name="author"]`
	selUpName     = ".up-name"
	selFollow     = ".follow-btn-inner"
	selView       = ".view-text"
	selLike       = ".video-like-info"
	selCoin       = ".video-coin-info"
	selFavorite   = ".video-fav-info"
	selShare      = ".video-share-info"
	selPubdate    = ".pubdate-ip-text"
)

var followRe = regexp.MustCompile(`关注\s*([\d.万亿]+)`)

var pubdateLayouts = []string{"2006-01-02", "2006/01/02", "2006-1-2", "2006/1/2"}

// Field is one copyable value on the page.
type Field struct {
	Key     string
	Label   string
	Extract func(Page) (string, bool)
}

// Fields lists the plain copy buttons in display order.
func Fields() []Field {
	return []Field{
		{Key: "nickname", Label: "昵称", Extract: UpName},
		{Key: "follow", Label: "关注", Extract: countString(FollowCount)},
		{Key: "play", Label: "播放", Extract: countString(PlayCount)},
		{Key: "like", Label: "点赞", Extract: countString(LikeCount)},
		{Key: "coin", Label: "投币", Extract: countString(CoinCount)},
		{Key: "favorite", Label: "收藏", Extract: countString(FavoriteCount)},
		{Key: "share", Label: "分享", Extract: countString(ShareCount)},
	}
}

// FieldByKey looks up a plain field.
func FieldByKey(key string) (Field, bool) {
	for _, f := range Fields() {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

func countString(fn func(Page) (Count, bool)) func(Page) (string, bool) {
	return func(p Page) (string, bool) {
		c, ok := fn(p)
		if !ok {
			return "", false
		}
		return c.String(), true
	}
}

// text is Page.Text with empty text treated as missing.
func text(p Page, selector string) (string, bool) {
	s, ok := p.Text(selector)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// UpName returns the uploader's nickname from the author meta tag, or from
// the up-name link when the tag is missing or empty.
func UpName(p Page) (string, bool) {
	if name, ok := p.Attr(selAuthorMeta, "content"); ok && name != "" {
		return name, true
	}
	return text(p, selUpName)
}

// FollowCount parses the count out of the follow button label ("关注 3.4万").
func FollowCount(p Page) (Count, bool) {
	label, ok := text(p, selFollow)
	if !ok {
		return Count{}, false
	}
	m := followRe.FindStringSubmatch(label)
	if m == nil {
		return Count{}, false
	}
	return ParseCount(m[1]), true
}

func PlayCount(p Page) (Count, bool)     { return selectorCount(p, selView) }
func LikeCount(p Page) (Count, bool)     { return selectorCount(p, selLike) }
func CoinCount(p Page) (Count, bool)     { return selectorCount(p, selCoin) }
func FavoriteCount(p Page) (Count, bool) { return selectorCount(p, selFavorite) }
func ShareCount(p Page) (Count, bool)    { return selectorCount(p, selShare) }

func selectorCount(p Page, selector string) (Count, bool) {
	s, ok := text(p, selector)
	if !ok {
		return Count{}, false
	}
	return ParseCount(s), true
}

// PublishDate returns the date part of the publish line formatted as
// YYYY.MM.DD. Text that does not start with a date counts as missing.
func PublishDate(p Page) (string, bool) {
	s, ok := text(p, selPubdate)
	if !ok {
		return "", false
	}
	datePart, _, _ := strings.Cut(s, " ")
	for _, layout := range pubdateLayouts {
		if t, err := time.Parse(layout, datePart); err == nil {
			return t.Format("2006.01.02"), true
		}
	}
	return "", false
}
