//go:build !unittest

package bilicopy

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/ysmood/gson"
)

// InitBrowser launches Chrome with stealth mode, headless unless
// WithHeadless(false) was set.
func (s *Scraper) InitBrowser() error {
	s.browserMu.Lock()
	defer s.browserMu.Unlock()
	if s.browser != nil {
		return nil
	}
	return s.launchBrowser(s.headless)
}

// launchBrowser starts the browser. Caller must hold browserMu.
func (s *Scraper) launchBrowser(headless bool) error {
	l := launcher.New().Headless(headless)
	if s.proxy != "" {
		l = l.Proxy(s.proxy)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("connect browser: %w", err)
	}

	page, err := stealth.Page(browser)
	if err != nil {
		return fmt.Errorf("create stealth page: %w", err)
	}

	s.browser = browser
	s.page = page

	// Headless lookups only need the DOM.
	if headless {
		s.setupResourceBlocking()
	}

	if s.IsLoggedIn() {
		return s.pushCookiesToBrowser()
	}
	return nil
}

func (s *Scraper) setupResourceBlocking() {
	router := s.browser.HijackRequests()
	blocked := []string{"*.png", "*.jpg", "*.jpeg", "*.webp", "*.gif", "*.mp4", "*.m4s", "*.flv", "*.woff*", "*.svg"}
	for _, pattern := range blocked {
		router.MustAdd(pattern, func(ctx *rod.Hijack) {
			ctx.Response.Fail(proto.NetworkErrorReasonBlockedByClient)
		})
	}
	go router.Run()
}

// OpenPage renders a video page in the browser and returns a live Page over
// it. Lookups on the result see the DOM as it is at call time.
func (s *Scraper) OpenPage(ctx context.Context, pageURL string) (Page, error) {
	if err := s.InitBrowser(); err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}

	start := time.Now()
	page := s.page.Context(ctx)
	if err := page.Navigate(pageURL); err != nil {
		return nil, fmt.Errorf("navigate to %q: %w", pageURL, err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait for load %q: %w", pageURL, err)
	}
	if err := page.WaitStable(2 * time.Second); err != nil {
		return nil, fmt.Errorf("wait for page stable %q: %w", pageURL, err)
	}
	perfLog("OpenPage: url=%s render=%v", pageURL, time.Since(start))

	return &browserPage{page: s.page}, nil
}

// RunOverlay opens pageURL in a visible browser and installs the copy
// button stack, once per page load. Clicks run on their own goroutine and
// are not deduplicated. Blocks until ctx is done.
func (s *Scraper) RunOverlay(ctx context.Context, pageURL string, clip Clipboard) error {
	s.browserMu.Lock()
	if s.browser == nil {
		if err := s.launchBrowser(false); err != nil {
			s.browserMu.Unlock()
			return fmt.Errorf("run overlay: %w", err)
		}
	}
	s.browserMu.Unlock()

	page := s.page.Context(ctx)
	live := &browserPage{page: s.page}
	copier := NewCopier(live, clip, &pageToast{page: s.page}, s).WithLogger(s.logger)

	stop, err := page.Expose(bindingName, func(arg gson.JSON) (interface{}, error) {
		key := arg.Str()
		go func() {
			if err := copier.Run(ctx, key); err != nil {
				s.logger.Printf("action %s: %v", key, err)
			}
		}()
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("expose action binding: %w", err)
	}
	defer stop()

	go page.EachEvent(func(e *proto.PageLoadEventFired) {
		go s.installOverlay(page)
	})()

	if err := page.Navigate(pageURL); err != nil {
		return fmt.Errorf("navigate to %q: %w", pageURL, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("wait for load %q: %w", pageURL, err)
	}
	s.installOverlay(page)

	<-ctx.Done()
	if err := s.syncCookiesFromBrowser(); err != nil {
		s.logger.Printf("sync cookies: %v", err)
	}
	return nil
}

// installOverlay injects the button stack unless the page already has one.
func (s *Scraper) installOverlay(page *rod.Page) {
	installed, _, err := page.Has("#" + containerID)
	if err != nil {
		s.logger.Printf("check overlay: %v", err)
		return
	}
	if installed {
		return
	}
	res, err := page.Eval(installJS, containerID, bindingName, Buttons())
	if err != nil {
		s.logger.Printf("install overlay: %v", err)
		return
	}
	if res.Value.Bool() {
		perfLog("installOverlay: installed on %s", (&browserPage{page: page}).URL())
	}
}

func (s *Scraper) closeBrowser() error {
	s.browserMu.Lock()
	defer s.browserMu.Unlock()
	if s.page != nil {
		if err := s.page.Close(); err != nil {
			return fmt.Errorf("close page: %w", err)
		}
		s.page = nil
	}
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			return fmt.Errorf("close browser: %w", err)
		}
		s.browser = nil
	}
	return nil
}

// browserPage is a Page over a live browser tab. Lookups never wait: an
// element that has not rendered yet is reported as missing.
type browserPage struct {
	page *rod.Page
}

func (p *browserPage) Text(selector string) (string, bool) {
	has, el, err := p.page.Has(selector)
	if err != nil || !has {
		return "", false
	}
	txt, err := el.Text()
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(txt), true
}

func (p *browserPage) Attr(selector, name string) (string, bool) {
	has, el, err := p.page.Has(selector)
	if err != nil || !has {
		return "", false
	}
	v, err := el.Attribute(name)
	if err != nil || v == nil {
		return "", false
	}
	return strings.TrimSpace(*v), true
}

func (p *browserPage) URL() string {
	info, err := p.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

// pageToast renders notifications inside the page.
type pageToast struct {
	page *rod.Page
}

func (t *pageToast) Notify(msg string) {
	_, _ = t.page.Eval(toastJS, msg, toastVisibleMs, toastFadeMs)
}
