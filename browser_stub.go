//go:build unittest

package bilicopy

import (
	"context"
	"fmt"
)

func (s *Scraper) InitBrowser() error {
	return fmt.Errorf("browser: %w (build tag: unittest)", ErrBrowserNotReady)
}

func (s *Scraper) launchBrowser(headless bool) error {
	return fmt.Errorf("browser: %w (build tag: unittest)", ErrBrowserNotReady)
}

func (s *Scraper) setupResourceBlocking() {}

func (s *Scraper) OpenPage(ctx context.Context, pageURL string) (Page, error) {
	return nil, fmt.Errorf("open page: %w (build tag: unittest)", ErrBrowserNotReady)
}

func (s *Scraper) RunOverlay(ctx context.Context, pageURL string, clip Clipboard) error {
	return fmt.Errorf("run overlay: %w (build tag: unittest)", ErrBrowserNotReady)
}

func (s *Scraper) closeBrowser() error {
	s.page = nil
	s.browser = nil
	return nil
}
