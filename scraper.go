package bilicopy

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"golang.org/x/net/proxy"
)

const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

const (
	defaultBaseURL    = "https://www.bilibili.com"
	defaultAPIBaseURL = "https://api.bilibili.com"
)

// maxPageSize caps how much of a video page is read.
const maxPageSize = 8 << 20

var bilibiliURL, _ = url.Parse(defaultBaseURL)

// Scraper fetches Bilibili video pages over HTTP and drives a browser for
// the overlay. The browser is only launched by InitBrowser or RunOverlay.
type Scraper struct {
	client     *http.Client
	proxy      string
	userAgent  string
	isLogged   bool
	baseURL    string // defaults to "https://www.bilibili.com"
	apiBaseURL string // defaults to "https://api.bilibili.com"
	logger     *log.Logger

	browser   *rod.Browser
	page      *rod.Page
	headless  bool
	browserMu sync.Mutex

	// Per-operation pacing. Zero disables.
	pageDelay time.Duration
	apiDelay  time.Duration
	lastPage  time.Time
	lastAPI   time.Time
	pageMu    sync.Mutex
	apiMu     sync.Mutex

	sessData string
}

// defaultTransport returns an http.Transport with connection pooling,
// keep-alive and TLS handshake caching.
func defaultTransport() *http.Transport {
	return &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	}
}

// New creates a Scraper with sensible defaults.
func New() *Scraper {
	jar, _ := cookiejar.New(nil)
	return &Scraper{
		client: &http.Client{
			Jar:       jar,
			Timeout:   15 * time.Second,
			Transport: defaultTransport(),
		},
		baseURL:    defaultBaseURL,
		apiBaseURL: defaultAPIBaseURL,
		userAgent:  defaultUserAgent,
		logger:     defaultLogger(),
		headless:   true,
		pageDelay:  1 * time.Second,
		apiDelay:   500 * time.Millisecond,
	}
}

// WithPageDelay sets the minimum delay between video page fetches.
func (s *Scraper) WithPageDelay(d time.Duration) *Scraper {
	s.pageDelay = d
	return s
}

// WithAPIDelay sets the minimum delay between API requests.
func (s *Scraper) WithAPIDelay(d time.Duration) *Scraper {
	s.apiDelay = d
	return s
}

// WithLogger sets the diagnostic logger. A nil logger discards output.
func (s *Scraper) WithLogger(l *log.Logger) *Scraper {
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	s.logger = l
	return s
}

// WithUserAgent overrides the User-Agent sent on every request.
func (s *Scraper) WithUserAgent(ua string) *Scraper {
	if ua != "" {
		s.userAgent = ua
	}
	return s
}

// WithAPIBaseURL points API calls at another host.
func (s *Scraper) WithAPIBaseURL(u string) *Scraper {
	if u != "" {
		s.apiBaseURL = u
	}
	return s
}

// WithHeadless controls whether InitBrowser starts a headless browser.
// RunOverlay always starts a visible one.
func (s *Scraper) WithHeadless(headless bool) *Scraper {
	s.headless = headless
	return s
}

// Logger returns the diagnostic logger.
func (s *Scraper) Logger() *log.Logger { return s.logger }

// SetProxy configures an HTTP/HTTPS or SOCKS5 proxy for the HTTP client.
// Connection pooling and keep-alive settings are preserved.
func (s *Scraper) SetProxy(proxyAddr string) error {
	if proxyAddr == "" {
		s.client.Transport = defaultTransport()
		s.proxy = ""
		return nil
	}

	u, err := url.Parse(proxyAddr)
	if err != nil {
		return fmt.Errorf("parse proxy url: %w", err)
	}

	base := defaultTransport()

	switch u.Scheme {
	case "http", "https":
		base.Proxy = http.ProxyURL(u)
		s.client.Transport = base
	case "socks5":
		var auth *proxy.Auth
		if u.User != nil {
			pass, _ := u.User.Password()
			auth = &proxy.Auth{User: u.User.Username(), Password: pass}
		}
		dialer, err := proxy.SOCKS5("tcp", u.Host, auth, proxy.Direct)
		if err != nil {
			return fmt.Errorf("socks5 proxy: %w", err)
		}
		dc, ok := dialer.(proxy.ContextDialer)
		if !ok {
			return fmt.Errorf("socks5: context dialer not supported")
		}
		base.DialContext = dc.DialContext
		s.client.Transport = base
	default:
		return fmt.Errorf("unsupported proxy scheme: %s", u.Scheme)
	}

	s.proxy = proxyAddr
	return nil
}

// doRequest builds and executes an HTTP request with the headers a desktop
// browser sends to bilibili.com. Pacing is up to the caller.
func (s *Scraper) doRequest(ctx context.Context, method, urlStr, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", accept)
	req.Header.Set("Accept-Language", "zh-CN,zh;q=0.9,en;q=0.8")
	req.Header.Set("Referer", "https://www.bilibili.com/")
	req.Header.Set("Origin", "https://www.bilibili.com")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		resp.Body.Close()
		return nil, ErrRateLimited
	case http.StatusNotFound:
		resp.Body.Close()
		return nil, ErrNotFound
	}

	return resp, nil
}

func (s *Scraper) waitForPage() {
	s.pageMu.Lock()
	defer s.pageMu.Unlock()
	s.throttle(&s.lastPage, s.pageDelay)
}

func (s *Scraper) waitForAPI() {
	s.apiMu.Lock()
	defer s.apiMu.Unlock()
	s.throttle(&s.lastAPI, s.apiDelay)
}

// throttle sleeps if needed to enforce min delay + jitter between requests.
func (s *Scraper) throttle(lastReq *time.Time, delay time.Duration) {
	if delay == 0 {
		return
	}
	elapsed := time.Since(*lastReq)
	jitter := time.Duration(rand.Int64N(int64(250 * time.Millisecond)))
	wait := delay + jitter - elapsed
	if wait > 0 {
		time.Sleep(wait)
	}
	*lastReq = time.Now()
}

// FetchPage downloads a video page and parses it for selector lookups.
func (s *Scraper) FetchPage(ctx context.Context, pageURL string) (*HTMLPage, error) {
	totalStart := time.Now()
	s.waitForPage()

	resp, err := s.doRequest(ctx, http.MethodGet, pageURL, "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	if err != nil {
		return nil, fmt.Errorf("fetch page %q: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch page %q: %w: http status %d", pageURL, ErrInvalidResponse, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		return nil, fmt.Errorf("read page %q: %w", pageURL, err)
	}
	httpDur := time.Since(totalStart)

	page, err := NewHTMLPage(body, resp.Header.Get("Content-Type"), resp.Request.URL.String())
	if err != nil {
		return nil, fmt.Errorf("parse page %q: %w", pageURL, err)
	}

	perfLog("FetchPage: url=%s http=%v total=%v body=%d bytes", pageURL, httpDur, time.Since(totalStart), len(body))
	return page, nil
}

// VideoURL returns the canonical page URL for a BV id.
func (s *Scraper) VideoURL(id string) string {
	return s.baseURL + "/video/" + id + "/"
}

// GetCookies returns the current session cookies for bilibili.com.
func (s *Scraper) GetCookies() []*http.Cookie {
	return s.client.Jar.Cookies(bilibiliURL)
}

// SetCookies sets session cookies and remembers SESSDATA.
func (s *Scraper) SetCookies(cookies []*http.Cookie) {
	s.client.Jar.SetCookies(bilibiliURL, cookies)
	for _, c := range cookies {
		if c.Name == "SESSDATA" {
			s.sessData = c.Value
		}
	}
}

// SaveCookies writes session cookies to a JSON file.
func (s *Scraper) SaveCookies(path string) error {
	data, err := json.Marshal(s.GetCookies())
	if err != nil {
		return fmt.Errorf("marshal cookies: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

// LoadCookies reads cookies from a JSON file and sets them on the client.
func (s *Scraper) LoadCookies(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read cookies file: %w", err)
	}
	var cookies []*http.Cookie
	if err := json.Unmarshal(data, &cookies); err != nil {
		return fmt.Errorf("unmarshal cookies: %w", err)
	}
	s.SetCookies(cookies)
	s.isLogged = s.sessData != ""
	return nil
}

// IsLoggedIn reports whether a SESSDATA session cookie is loaded.
func (s *Scraper) IsLoggedIn() bool {
	return s.isLogged
}

// Close releases all resources including the browser if running.
func (s *Scraper) Close() error {
	return s.closeBrowser()
}
