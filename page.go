package bilicopy

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
)

// Page is a read-only view of a video page. Lookups return the first element
// matching the CSS selector; the bool is false when nothing matches.
type Page interface {
	Text(selector string) (string, bool)
	Attr(selector, name string) (string, bool)
	URL() string
}

// HTMLPage is a Page over a server-rendered HTML document.
type HTMLPage struct {
	doc  *goquery.Document
	url  string
	body []byte
}

// NewHTMLPage parses body as HTML, decoding it to UTF-8 first according to
// contentType and any <meta charset> in the document.
func NewHTMLPage(body []byte, contentType, pageURL string) (*HTMLPage, error) {
	enc, _, _ := charset.DetermineEncoding(body, contentType)
	data, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		if !utf8.Valid(body) {
			return nil, fmt.Errorf("decode page: %w", err)
		}
		data = body
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	return &HTMLPage{doc: doc, url: pageURL, body: data}, nil
}

func (p *HTMLPage) Text(selector string) (string, bool) {
	sel := p.doc.Find(selector).First()
	if sel.Length() == 0 {
		return "", false
	}
	return strings.TrimSpace(sel.Text()), true
}

func (p *HTMLPage) Attr(selector, name string) (string, bool) {
	sel := p.doc.Find(selector).First()
	if sel.Length() == 0 {
		return "", false
	}
	v, ok := sel.Attr(name)
	return strings.TrimSpace(v), ok
}

func (p *HTMLPage) URL() string { return p.url }

// Body returns the decoded HTML.
func (p *HTMLPage) Body() []byte { return p.body }

// VideoID returns the third path segment of rawURL, which on video pages is
// the BV id: "/video/BV1xx411c7mD/" gives "BV1xx411c7mD". Empty if the path
// is shorter.
func VideoID(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	parts := strings.Split(u.Path, "/")
	if len(parts) < 3 {
		return ""
	}
	return parts[2]
}
