//go:build unittest

package bilicopy

import (
	"context"
	"fmt"
)

func (s *Scraper) Login(ctx context.Context) error {
	return fmt.Errorf("login: %w (build tag: unittest)", ErrBrowserNotReady)
}

func (s *Scraper) syncCookiesFromBrowser() error {
	return fmt.Errorf("sync cookies: %w (build tag: unittest)", ErrBrowserNotReady)
}

func (s *Scraper) pushCookiesToBrowser() error {
	return fmt.Errorf("push cookies: %w (build tag: unittest)", ErrBrowserNotReady)
}

func (s *Scraper) LoginWithCookies(path string) error {
	if err := s.LoadCookies(path); err != nil {
		return fmt.Errorf("login with cookies: %w", err)
	}
	return nil
}
