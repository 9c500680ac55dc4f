// Package config loads and validates pagectl configuration.
//
// Configuration comes from a YAML file plus environment overrides. The page
// credential list is the only mandatory piece: without it no command can run,
// so a missing or empty list is a hard startup failure. The app-level upload
// credentials are optional and only gate the local-file video path.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Sentinel errors callers branch on.
var (
	// ErrNoPages indicates that no page credentials were configured.
	ErrNoPages = errors.New("no pages configured")

	// ErrUnknownPage indicates a slug lookup miss.
	ErrUnknownPage = errors.New("unknown page")
)

// PageCredential identifies one manageable page on the remote platform.
// Slug is the local lookup key used by every command; PageID is the remote
// object id; AccessToken authenticates every request made on the page's
// behalf.
type PageCredential struct {
	PageID      string `yaml:"page_id" json:"page_id"`
	Slug        string `yaml:"slug" json:"slug"`
	Name        string `yaml:"name" json:"name"`
	AccessToken string `yaml:"access_token" json:"access_token"`
}

// PageSummary is the listing view of a credential. It deliberately has no
// token field: tokens must never appear in listing-style output.
type PageSummary struct {
	Slug   string `json:"slug"`
	PageID string `json:"page_id"`
	Name   string `json:"name"`
}

// AppUpload holds the app-scoped credential pair used by the resumable
// local-file upload protocol. Distinct from the per-page tokens.
type AppUpload struct {
	AppID       string `yaml:"app_id" json:"app_id"`
	AccessToken string `yaml:"access_token" json:"access_token"`
}

// LoggingConfig configures diagnostic logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Config holds all pagectl configuration.
type Config struct {
	// GraphVersion is the remote API version segment, e.g. "v21.0".
	GraphVersion string `yaml:"graph_version"`

	// BaseURL is the REST endpoint root.
	BaseURL string `yaml:"base_url"`

	// UploadBaseURL is the media-upload endpoint root.
	UploadBaseURL string `yaml:"upload_base_url"`

	// Pages are the credentials this binary may act as.
	Pages []PageCredential `yaml:"pages"`

	// App is the optional app-scoped upload credential pair.
	App AppUpload `yaml:"app"`

	// Logging configures diagnostics.
	Logging LoggingConfig `yaml:"logging"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		GraphVersion:  "v21.0",
		BaseURL:       "https://graph.facebook.com",
		UploadBaseURL: "https://graph-video.facebook.com",
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// Load loads configuration from a YAML file, applies environment overrides
// and validates the result. A missing file is not an error — the environment
// alone may carry the page list — but a present-and-malformed file is.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides layers environment values over the file config.
//
// PAGECTL_PAGES_JSON replaces the whole page list and is parsed strictly:
// unknown fields are rejected so a typo'd key fails loudly at startup
// instead of producing a silently unusable credential.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("PAGECTL_PAGES_JSON"); v != "" {
		var pages []PageCredential
		dec := json.NewDecoder(bytes.NewReader([]byte(v)))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&pages); err != nil {
			return fmt.Errorf("parse PAGECTL_PAGES_JSON: %w", err)
		}
		c.Pages = pages
	}
	if v := os.Getenv("PAGECTL_APP_ID"); v != "" {
		c.App.AppID = v
	}
	if v := os.Getenv("PAGECTL_APP_TOKEN"); v != "" {
		c.App.AccessToken = v
	}
	if v := os.Getenv("PAGECTL_GRAPH_VERSION"); v != "" {
		c.GraphVersion = v
	}
	if v := os.Getenv("PAGECTL_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("PAGECTL_UPLOAD_BASE_URL"); v != "" {
		c.UploadBaseURL = v
	}
	if v := os.Getenv("PAGECTL_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	return nil
}

// Validate checks that the configuration is usable. Pages must be present,
// complete, and carry unique slugs. Duplicate slugs are rejected rather than
// letting one silently shadow another.
func (c *Config) Validate() error {
	if len(c.Pages) == 0 {
		return fmt.Errorf("%w: set pages in the config file or PAGECTL_PAGES_JSON", ErrNoPages)
	}
	seen := make(map[string]bool, len(c.Pages))
	for i, p := range c.Pages {
		if p.Slug == "" {
			return fmt.Errorf("page %d: slug is required", i)
		}
		if p.PageID == "" {
			return fmt.Errorf("page %q: page_id is required", p.Slug)
		}
		if p.AccessToken == "" {
			return fmt.Errorf("page %q: access_token is required", p.Slug)
		}
		if seen[p.Slug] {
			return fmt.Errorf("duplicate page slug %q", p.Slug)
		}
		seen[p.Slug] = true
	}
	if c.GraphVersion == "" {
		return fmt.Errorf("graph_version is required")
	}
	return nil
}

// ResolvePage returns the credential for an exact slug match. On a miss the
// error enumerates every configured slug (and never any token) so the caller
// can see what would have matched.
func (c *Config) ResolvePage(slug string) (*PageCredential, error) {
	for i := range c.Pages {
		if c.Pages[i].Slug == slug {
			return &c.Pages[i], nil
		}
	}
	return nil, fmt.Errorf("%w %q: known pages are %s", ErrUnknownPage, slug, strings.Join(c.Slugs(), ", "))
}

// Slugs returns all configured slugs, sorted.
func (c *Config) Slugs() []string {
	slugs := make([]string, 0, len(c.Pages))
	for _, p := range c.Pages {
		slugs = append(slugs, p.Slug)
	}
	sort.Strings(slugs)
	return slugs
}

// Summaries returns the token-free listing view of every configured page,
// in configuration order.
func (c *Config) Summaries() []PageSummary {
	out := make([]PageSummary, 0, len(c.Pages))
	for _, p := range c.Pages {
		out = append(out, PageSummary{Slug: p.Slug, PageID: p.PageID, Name: p.Name})
	}
	return out
}

// HasAppUpload reports whether the app-scoped upload protocol is usable:
// the app id is required, and the token comes from either the app
// credential pair or, failing that, the first configured page (see
// UploadToken).
func (c *Config) HasAppUpload() bool {
	return c.App.AppID != "" && (c.App.AccessToken != "" || len(c.Pages) > 0)
}

// UploadToken returns the token used for the app-scoped upload protocol,
// which is not page-scoped: the app-level token when configured, otherwise
// the first configured page's token. The fallback is deliberate — a
// page-token upload session still works for media later published to any
// page the same user manages.
func (c *Config) UploadToken() string {
	if c.App.AccessToken != "" {
		return c.App.AccessToken
	}
	if len(c.Pages) > 0 {
		return c.Pages[0].AccessToken
	}
	return ""
}
