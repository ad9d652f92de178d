package bilicopy

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds settings read from BILICOPY_* environment variables.
type Config struct {
	Proxy       string        `envconfig:"PROXY"`
	CookiesFile string        `envconfig:"COOKIES"`
	Headless    bool          `envconfig:"HEADLESS" default:"true"`
	PageDelay   time.Duration `envconfig:"PAGE_DELAY" default:"1s"`
	APIDelay    time.Duration `envconfig:"API_DELAY" default:"500ms"`
	APIBaseURL  string        `envconfig:"API_BASE_URL" default:"https://api.bilibili.com"`
	UserAgent   string        `envconfig:"USER_AGENT"`
	Debug       bool          `envconfig:"DEBUG"`
}

// LoadConfig loads an optional .env file, then the environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// Only worth a warning if the file exists but could not be read.
		if _, statErr := os.Stat(".env"); statErr == nil {
			log.Printf("warning: .env file found but could not be loaded: %v", err)
		}
	}

	var cfg Config
	if err := envconfig.Process("bilicopy", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

// Apply configures s from cfg.
func (cfg *Config) Apply(s *Scraper) error {
	s.WithPageDelay(cfg.PageDelay).
		WithAPIDelay(cfg.APIDelay).
		WithAPIBaseURL(cfg.APIBaseURL).
		WithUserAgent(cfg.UserAgent).
		WithHeadless(cfg.Headless)

	if cfg.Proxy != "" {
		if err := s.SetProxy(cfg.Proxy); err != nil {
			return fmt.Errorf("apply config: %w", err)
		}
	}
	if cfg.CookiesFile != "" {
		if err := s.LoadCookies(cfg.CookiesFile); err != nil {
			return fmt.Errorf("apply config: %w", err)
		}
	}
	return nil
}
