package bilicopy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const videoPageHTML = `<!doctype html><html><head>
<meta charset="utf-8">
<meta name="author" content="某UP主">
<title>test video</title>
</head><body>
<a class="up-name"> 备用名 </a>
<div class="follow-btn-inner"> 关注 3.4万 </div>
<span class="view-text">12.3万</span>
<span class="video-like-info">8.8万</span>
<span class="video-coin-info">1.2亿</span>
<span class="video-fav-info">5000</span>
<span class="video-share-info">  </span>
<div class="pubdate-ip-text">2024-03-07 18:30:00</div>
</body></html>`

func mustPage(t *testing.T, html, pageURL string) *HTMLPage {
	t.Helper()
	p, err := NewHTMLPage([]byte(html), "text/html; charset=utf-8", pageURL)
	require.NoError(t, err)
	return p
}

func TestFields_Order(t *testing.T) {
	t.Parallel()
	var labels []string
	for _, f := range Fields() {
		labels = append(labels, f.Label)
	}
	assert.Equal(t, []string{"昵称", "关注", "播放", "点赞", "投币", "收藏", "分享"}, labels)
}

func TestExtractFields(t *testing.T) {
	t.Parallel()
	p := mustPage(t, videoPageHTML, "https://www.bilibili.com/video/BV1xx411c7mD/")

	tests := []struct {
		key  string
		want string
		ok   bool
	}{
		{"nickname", "某UP主", true},
		{"follow", "34000", true},
		{"play", "123000", true},
		{"like", "88000", true},
		{"coin", "120000000", true},
		{"favorite", "5000", true},
		{"share", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			f, ok := FieldByKey(tt.key)
			require.True(t, ok)
			got, ok := f.Extract(p)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFollowCount(t *testing.T) {
	t.Parallel()
	p := mustPage(t, `<div class="follow-btn-inner">关注 3.4万</div>`, "")
	c, ok := FollowCount(p)
	require.True(t, ok)
	assert.True(t, c.IsNumeric())
	assert.Equal(t, float64(34000), c.Value())

	p = mustPage(t, `<div class="follow-btn-inner">关注 1234</div>`, "")
	c, ok = FollowCount(p)
	require.True(t, ok)
	assert.False(t, c.IsNumeric())
	assert.Equal(t, "1234", c.String())

	p = mustPage(t, `<div class="follow-btn-inner">已关注</div>`, "")
	_, ok = FollowCount(p)
	assert.False(t, ok)
}

func TestUpName_FallsBackToLink(t *testing.T) {
	t.Parallel()
	p := mustPage(t, `<html><head><meta name="author" content=""></head><body><a class="up-name"> 备用名 </a></body></html>`, "")
	name, ok := UpName(p)
	require.True(t, ok)
	assert.Equal(t, "备用名", name)

	p = mustPage(t, `<html><body></body></html>`, "")
	_, ok = UpName(p)
	assert.False(t, ok)
}

func TestPlayCount_Missing(t *testing.T) {
	t.Parallel()
	p := mustPage(t, `<html><body><span class="other">1万</span></body></html>`, "")
	_, ok := PlayCount(p)
	assert.False(t, ok)
}

func TestPublishDate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		html string
		want string
		ok   bool
	}{
		{`<div class="pubdate-ip-text">2024-03-07 18:30:00</div>`, "2024.03.07", true},
		{`<div class="pubdate-ip-text">2023/12/1 09:00</div>`, "2023.12.01", true},
		{`<div class="pubdate-ip-text">昨天 18:30</div>`, "", false},
		{`<div class="other">2024-03-07</div>`, "", false},
	}
	for _, tt := range tests {
		p := mustPage(t, tt.html, "")
		got, ok := PublishDate(p)
		assert.Equal(t, tt.ok, ok, tt.html)
		assert.Equal(t, tt.want, got, tt.html)
	}
}
