package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paperwatch/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// FeedConfig holds the search criteria and endpoint settings for the feed fetch.
type FeedConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the feed query endpoint (default https://export.arxiv.org/api/query).
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// Keywords must all appear in the title.
	Keywords []string `json:"keywords" yaml:"keywords" mapstructure:"keywords"`

	// Subjects are category codes; a paper matches if it carries any of them.
	Subjects []string `json:"subjects" yaml:"subjects" mapstructure:"subjects"`

	// MaxResults bounds the number of records returned per fetch (default 50).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`

	// Start is the result offset passed to the endpoint.
	Start int `json:"start" yaml:"start" mapstructure:"start"`

	// SortBy is the endpoint-side sort field: submittedDate, lastUpdatedDate, or relevance.
	SortBy string `json:"sort_by" yaml:"sort_by" mapstructure:"sort_by"`

	// SortOrder is the endpoint-side sort order: ascending or descending.
	SortOrder string `json:"sort_order" yaml:"sort_order" mapstructure:"sort_order"`
}

// DOIPolicy selects what normalization does when no DOI is supplied and
// none can be derived from the link.
type DOIPolicy string

const (
	// DOIPolicyLenient leaves the DOI empty.
	DOIPolicyLenient DOIPolicy = "lenient"
	// DOIPolicyStrict rejects the entry with a ParseError.
	DOIPolicyStrict DOIPolicy = "strict"
)

// NormalizeConfig holds settings for feed record normalization.
type NormalizeConfig struct {
	DOIPolicy DOIPolicy `json:"doi_policy" yaml:"doi_policy" mapstructure:"doi_policy"`
}

// BookmarkFormat selects the on-disk representation of the bookmark store.
type BookmarkFormat string

const (
	BookmarkJSON   BookmarkFormat = "json"
	BookmarkSQLite BookmarkFormat = "sqlite"
)

// BookmarkConfig holds settings for the bookmark store.
type BookmarkConfig struct {
	// Path is the bookmark file (default $XDG_DATA_HOME/paperwatch/bookmarks.json).
	Path string `json:"path" yaml:"path" mapstructure:"path"`

	// Format selects json or sqlite.
	Format BookmarkFormat `json:"format" yaml:"format" mapstructure:"format"`
}

// CitationConfig holds settings for the DOI citation lookup.
type CitationConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the DOI resolver (default https://doi.org/).
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// Accept is the citation media type requested (default application/x-bibtex).
	Accept string `json:"accept" yaml:"accept" mapstructure:"accept"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Pretty selects the console encoder instead of JSON.
	Pretty bool `json:"pretty" yaml:"pretty" mapstructure:"pretty"`
}

// Config groups all stage configurations.
type Config struct {
	Feed      FeedConfig      `json:"feed" yaml:"feed" mapstructure:"feed"`
	Normalize NormalizeConfig `json:"normalize" yaml:"normalize" mapstructure:"normalize"`
	Bookmarks BookmarkConfig  `json:"bookmarks" yaml:"bookmarks" mapstructure:"bookmarks"`
	Citation  CitationConfig  `json:"citation" yaml:"citation" mapstructure:"citation"`
	Log       LogConfig       `json:"log" yaml:"log" mapstructure:"log"`
}
