// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads paperwatch settings from a YAML file, PAPERWATCH_*
// environment variables, and built-in defaults, in that order of
// precedence below command-line flags.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"github.com/pdiddy/paperwatch/internal/cite"
	"github.com/pdiddy/paperwatch/internal/curate"
	"github.com/pdiddy/paperwatch/internal/feed"
	"github.com/pdiddy/paperwatch/internal/query"
	"github.com/pdiddy/paperwatch/pkg/types"
)

const (
	appName    = "paperwatch"
	envPrefix  = "PAPERWATCH"
	configName = "paperwatch"
)

// DefaultConfigDir is where the config file is looked up after the
// working directory.
func DefaultConfigDir() string {
	return filepath.Join(xdg.ConfigHome, appName)
}

// DefaultBookmarksPath is the bookmark file used when none is configured.
func DefaultBookmarksPath(format types.BookmarkFormat) string {
	name := "bookmarks.json"
	if format == types.BookmarkSQLite {
		name = "bookmarks.db"
	}
	return filepath.Join(xdg.DataHome, appName, name)
}

// SetDefaults registers every key with its default so environment
// variables are honored on Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("feed.base_url", feed.DefaultBaseURL)
	v.SetDefault("feed.keywords", []string{})
	v.SetDefault("feed.subjects", []string{})
	v.SetDefault("feed.max_results", query.DefaultMaxResults)
	v.SetDefault("feed.start", 0)
	v.SetDefault("feed.sort_by", query.DefaultSortBy)
	v.SetDefault("feed.sort_order", query.DefaultSortOrder)
	v.SetDefault("feed.timeout", 30*time.Second)
	v.SetDefault("feed.user_agent", appName+"/0.1")

	v.SetDefault("normalize.doi_policy", string(types.DOIPolicyLenient))

	v.SetDefault("bookmarks.path", "")
	v.SetDefault("bookmarks.format", string(types.BookmarkJSON))

	v.SetDefault("citation.base_url", cite.DefaultBaseURL)
	v.SetDefault("citation.accept", cite.DefaultAccept)
	v.SetDefault("citation.timeout", 15*time.Second)
	v.SetDefault("citation.user_agent", appName+"/0.1")

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.pretty", true)
}

// Setup wires the config search path, environment binding, and defaults
// into v and reads the config file. cfgFile overrides the search path. It
// returns the file used, or "" when none was found; a missing file is not
// an error but an explicit cfgFile that cannot be read is.
func Setup(v *viper.Viper, cfgFile string) (string, error) {
	SetDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(DefaultConfigDir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("reading config: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// Load decodes v into a Config, fills derived defaults, and validates it.
func Load(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.Bookmarks.Path == "" {
		cfg.Bookmarks.Path = DefaultBookmarksPath(cfg.Bookmarks.Format)
	}
	cfg.Feed.Keywords = trimAll(cfg.Feed.Keywords)
	cfg.Feed.Subjects = trimAll(cfg.Feed.Subjects)

	if err := Validate(cfg); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated values and URLs.
func Validate(cfg types.Config) error {
	for name, raw := range map[string]string{
		"feed.base_url":     cfg.Feed.BaseURL,
		"citation.base_url": cfg.Citation.BaseURL,
	} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("%s: invalid url: %w", name, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("%s: url scheme must be http or https, got %q", name, u.Scheme)
		}
	}

	if cfg.Feed.MaxResults < 0 {
		return fmt.Errorf("feed.max_results must not be negative, got %d", cfg.Feed.MaxResults)
	}
	if cfg.Feed.Start < 0 {
		return fmt.Errorf("feed.start must not be negative, got %d", cfg.Feed.Start)
	}
	switch cfg.Feed.SortBy {
	case "", "submittedDate", "lastUpdatedDate", "relevance":
	default:
		return fmt.Errorf("feed.sort_by: unknown value %q (valid: submittedDate, lastUpdatedDate, relevance)", cfg.Feed.SortBy)
	}
	switch curate.Direction(cfg.Feed.SortOrder) {
	case "", curate.Ascending, curate.Descending:
	default:
		return fmt.Errorf("feed.sort_order: unknown value %q (valid: ascending, descending)", cfg.Feed.SortOrder)
	}
	switch cfg.Normalize.DOIPolicy {
	case "", types.DOIPolicyLenient, types.DOIPolicyStrict:
	default:
		return fmt.Errorf("normalize.doi_policy: unknown value %q (valid: lenient, strict)", cfg.Normalize.DOIPolicy)
	}
	switch cfg.Bookmarks.Format {
	case "", types.BookmarkJSON, types.BookmarkSQLite:
	default:
		return fmt.Errorf("bookmarks.format: unknown value %q (valid: json, sqlite)", cfg.Bookmarks.Format)
	}
	return nil
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
