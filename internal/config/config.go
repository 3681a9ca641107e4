package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"mspro-labs/tapboard/internal/models"
)

const (
	DefaultConfigPath = "config.yaml"
	DefaultPort       = "3001"
	DefaultStaticDir  = "client/dist"
	DefaultBeersFile  = "beers.txt"
)

// Fetch modes for the upstream pages.
const (
	FetchHTTP    = "http"
	FetchBrowser = "browser"
)

// AppConfig holds infrastructure config from standard env vars
type AppConfig struct {
	ConfigPath string // Path to the YAML config file
	Port       string
	StaticDir  string // Built display client, served with SPA fallback
	BeersFile  string
	FetchMode  string
}

// SiteConfig holds all target-site specific settings (from YAML)
type SiteConfig struct {
	CheckinsURL  string        `yaml:"checkins_url"`
	TapsURL      string        `yaml:"taps_url"`
	UserAgent    string        `yaml:"user_agent"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
	Selectors    Selectors     `yaml:"selectors"`
}

type Selectors struct {
	Checkins CheckinSelectors `yaml:"checkins"`
	Taps     TapSelectors     `yaml:"taps"`
}

// CheckinSelectors locate the fields of one check-in block.
type CheckinSelectors struct {
	Item        string `yaml:"item"`
	UserName    string `yaml:"user_name"`
	UserAvatar  string `yaml:"user_avatar"`
	Time        string `yaml:"time"`
	Caption     string `yaml:"caption"`
	BeerIcon    string `yaml:"beer_icon"`
	Rating      string `yaml:"rating"`
	Comment     string `yaml:"comment"`
	CommentJunk string `yaml:"comment_junk"` // removed from the comment before reading its text
	Photo       string `yaml:"photo"`
}

// TapSelectors locate the fields of one tap panel.
type TapSelectors struct {
	Panel     string `yaml:"panel"`
	Body      string `yaml:"body"`
	TapNumber string `yaml:"tap_number"`
	Brewery   string `yaml:"brewery"`
	BeerBlock string `yaml:"beer_block"`
	Style     string `yaml:"style"`
	Price     string `yaml:"price"`
	OnTap     string `yaml:"on_tap"`
	Tags      string `yaml:"tags"`
}

// DefaultSiteConfig returns the settings matching the public check-in feed
// and the tap-list panel layout.
func DefaultSiteConfig() *SiteConfig {
	return &SiteConfig{
		CheckinsURL:  "https://untappd.com/v/beer-brothers/9593498",
		UserAgent:    "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
		FetchTimeout: 15 * time.Second,
		Selectors: Selectors{
			Checkins: DefaultCheckinSelectors(),
			Taps:     DefaultTapSelectors(),
		},
	}
}

func DefaultCheckinSelectors() CheckinSelectors {
	return CheckinSelectors{
		Item:        ".item",
		UserName:    "a.user",
		UserAvatar:  ".avatar img",
		Time:        "a.time",
		Caption:     "p.text",
		BeerIcon:    "a.label img",
		Rating:      ".rating-serving .caps",
		Comment:     ".checkin-comment",
		CommentJunk: "a, span, .badge, .rating-serving, .translate, .tagged-friends, .checkin-venue",
		Photo:       ".photo img",
	}
}

func DefaultTapSelectors() TapSelectors {
	return TapSelectors{
		Panel:     ".panel",
		Body:      ".panel-body",
		TapNumber: ".panel-heading .badge",
		Brewery:   ".brewery",
		BeerBlock: "h4",
		Style:     ".style b",
		Price:     ".panel-footer .price",
		OnTap:     ".on-tap .label",
		Tags:      "small.label",
	}
}

// URLFor returns the upstream page for kind.
func (c *SiteConfig) URLFor(kind models.Kind) (string, error) {
	var url string
	switch kind {
	case models.KindCheckins:
		url = c.CheckinsURL
	case models.KindTaps:
		url = c.TapsURL
	default:
		return "", fmt.Errorf("unknown page kind %q", kind)
	}
	if url == "" {
		return "", fmt.Errorf("no URL configured for %s (set %s_url in the site config)", kind, kind)
	}
	return url, nil
}

// GetAppConfig reads basic infrastructure settings from environment variables.
// A .env file in the working directory is loaded first when present.
func GetAppConfig() (AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Ignoring unreadable .env file: %v", err)
	}

	cfg := AppConfig{
		ConfigPath: getEnv("CONFIG_PATH", DefaultConfigPath),
		Port:       getEnv("PORT", DefaultPort),
		StaticDir:  getEnv("STATIC_DIR", DefaultStaticDir),
		BeersFile:  getEnv("BEERS_FILE", DefaultBeersFile),
		FetchMode:  getEnv("FETCH_MODE", FetchHTTP),
	}

	if cfg.FetchMode != FetchHTTP && cfg.FetchMode != FetchBrowser {
		return AppConfig{}, fmt.Errorf("FETCH_MODE must be %q or %q, got %q", FetchHTTP, FetchBrowser, cfg.FetchMode)
	}
	return cfg, nil
}

// LoadSiteConfig reads the YAML file on top of DefaultSiteConfig.
// A missing file at the default path is not an error.
func LoadSiteConfig(path string) (*SiteConfig, error) {
	cfg := DefaultSiteConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && path == DefaultConfigPath {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file at '%s': %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
