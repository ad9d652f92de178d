//go:build !unittest

package bilicopy

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-rod/rod/lib/proto"
)

const loginURL = "https://passport.bilibili.com/login"

// Login opens the passport page in a visible browser and waits for the user
// to sign in (QR code or password). Once SESSDATA shows up the browser
// cookies are copied to the HTTP client.
func (s *Scraper) Login(ctx context.Context) error {
	s.browserMu.Lock()
	if s.browser == nil {
		if err := s.launchBrowser(false); err != nil {
			s.browserMu.Unlock()
			return fmt.Errorf("login: %w", err)
		}
	}
	s.browserMu.Unlock()

	page := s.page.Context(ctx)
	if err := page.Navigate(loginURL); err != nil {
		return fmt.Errorf("navigate to login: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("wait for login page: %w", err)
	}

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("login: %w", ctx.Err())
		case <-ticker.C:
		}
		cookies, err := s.page.Cookies([]string{defaultBaseURL})
		if err != nil {
			return fmt.Errorf("get browser cookies: %w", err)
		}
		for _, c := range cookies {
			if c.Name == "SESSDATA" && c.Value != "" {
				return s.syncCookiesFromBrowser()
			}
		}
	}
}

// syncCookiesFromBrowser copies browser cookies to the HTTP client's cookie jar.
func (s *Scraper) syncCookiesFromBrowser() error {
	if s.page == nil {
		return ErrBrowserNotReady
	}
	cookies, err := s.page.Cookies([]string{defaultBaseURL})
	if err != nil {
		return fmt.Errorf("get browser cookies: %w", err)
	}

	httpCookies := make([]*http.Cookie, 0, len(cookies))
	for _, c := range cookies {
		httpCookies = append(httpCookies, &http.Cookie{
			Name:    c.Name,
			Value:   c.Value,
			Domain:  c.Domain,
			Path:    c.Path,
			Expires: time.Unix(int64(c.Expires), 0),
		})
	}

	s.SetCookies(httpCookies)
	s.isLogged = s.sessData != ""
	return nil
}

// pushCookiesToBrowser sets the client's cookies on the browser page so the
// rendered page sees the same session.
func (s *Scraper) pushCookiesToBrowser() error {
	if s.page == nil {
		return ErrBrowserNotReady
	}
	for _, c := range s.GetCookies() {
		if err := s.page.SetCookies([]*proto.NetworkCookieParam{{
			Name:   c.Name,
			Value:  c.Value,
			Domain: ".bilibili.com",
			Path:   "/",
		}}); err != nil {
			return fmt.Errorf("set browser cookie %q: %w", c.Name, err)
		}
	}
	return nil
}

// LoginWithCookies loads saved cookies and, if a browser is running, hands
// them to it as well.
func (s *Scraper) LoginWithCookies(path string) error {
	if err := s.LoadCookies(path); err != nil {
		return fmt.Errorf("login with cookies: %w", err)
	}
	if s.page == nil {
		return nil
	}
	return s.pushCookiesToBrowser()
}
