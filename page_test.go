package bilicopy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"
)

func TestHTMLPage_TextAndAttr(t *testing.T) {
	t.Parallel()
	p := mustPage(t, `<html><head><meta name="author" content=" 作者 "></head>
<body><span class="a">  first </span><span class="a">second</span></body></html>`, "https://example.com/video/BV1/")

	txt, ok := p.Text(".a")
	require.True(t, ok)
	assert.Equal(t, "first", txt)

	_, ok = p.Text(".missing")
	assert.False(t, ok)

	v, ok := p.Attr(`meta[name="author"]`, "content")
	require.True(t, ok)
	assert.Equal(t, "作者", v)

	_, ok = p.Attr(`meta[name="author"]`, "nope")
	assert.False(t, ok)

	assert.Equal(t, "https://example.com/video/BV1/", p.URL())
}

func TestHTMLPage_DecodesGBK(t *testing.T) {
	t.Parallel()
	gbk, err := simplifiedchinese.GBK.NewEncoder().String(`<html><body><span class="view-text">2.5万</span></body></html>`)
	require.NoError(t, err)

	p, err := NewHTMLPage([]byte(gbk), "text/html; charset=gbk", "")
	require.NoError(t, err)

	c, ok := PlayCount(p)
	require.True(t, ok)
	assert.Equal(t, float64(25000), c.Value())
}

func TestVideoID(t *testing.T) {
	t.Parallel()
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.bilibili.com/video/BV1xx411c7mD/", "BV1xx411c7mD"},
		{"https://www.bilibili.com/video/BV1xx411c7mD?p=2", "BV1xx411c7mD"},
		{"https://www.bilibili.com/video", ""},
		{"https://www.bilibili.com/", ""},
		{"://bad", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, VideoID(tt.url), tt.url)
	}
}
