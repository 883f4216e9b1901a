// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network
// requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout (default 10s).
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "curator/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// CollectConfig holds settings for the collection stage.
type CollectConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Topic is the research topic driving all source queries.
	Topic string `json:"topic" yaml:"topic" mapstructure:"topic"`

	// MaxResults caps the results requested per source query (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`

	// IncludeDomains restricts web search to these hosts.
	IncludeDomains []string `json:"include_domains" yaml:"include_domains" mapstructure:"include_domains"`

	// Per-source enable switches.
	EnableGitHub bool `json:"enable_github" yaml:"enable_github" mapstructure:"enable_github"`
	EnableArxiv  bool `json:"enable_arxiv" yaml:"enable_arxiv" mapstructure:"enable_arxiv"`
	EnableTavily bool `json:"enable_tavily" yaml:"enable_tavily" mapstructure:"enable_tavily"`
	EnableLabs   bool `json:"enable_labs" yaml:"enable_labs" mapstructure:"enable_labs"`

	// LabSites maps lab names to their research pages for the lab-site
	// collector.
	LabSites map[string]string `json:"lab_sites,omitempty" yaml:"lab_sites,omitempty" mapstructure:"lab_sites"`

	// GitHubToken authenticates repository search and metrics lookups.
	GitHubToken string `json:"github_token,omitempty" yaml:"github_token,omitempty" mapstructure:"github_token"`

	// TavilyAPIKey authenticates the web search API.
	TavilyAPIKey string `json:"tavily_api_key,omitempty" yaml:"tavily_api_key,omitempty" mapstructure:"tavily_api_key"`
}

// ScoringConfig holds settings for the impact scoring stage.
type ScoringConfig struct {
	// Strategy selects the scoring formula: "weighted" (default) or
	// "authority".
	Strategy string `json:"strategy" yaml:"strategy" mapstructure:"strategy"`

	// RecencyWindow drops records older than this before scoring
	// (default ~6 months). Zero disables the filter.
	RecencyWindow time.Duration `json:"recency_window" yaml:"recency_window" mapstructure:"recency_window"`

	// Importance lists consulted by the authority strategy.
	ImportantAuthors []string `json:"important_authors,omitempty" yaml:"important_authors,omitempty" mapstructure:"important_authors"`
	ImportantVenues  []string `json:"important_venues,omitempty" yaml:"important_venues,omitempty" mapstructure:"important_venues"`
	ImportantLabs    []string `json:"important_labs,omitempty" yaml:"important_labs,omitempty" mapstructure:"important_labs"`
}

// AIConfig holds shared settings for stages that call a generative
// language API.
type AIConfig struct {
	// Model is the model identifier (e.g. "gemini-2.0-flash").
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// APIKey is the authentication key for the API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// Temperature is the sampling temperature for curation calls.
	Temperature float64 `json:"temperature" yaml:"temperature" mapstructure:"temperature"`

	// MaxTokens is the response token cap (default 4000).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens" mapstructure:"max_tokens"`
}

// MergeConfig holds settings for the merge stage.
type MergeConfig struct {
	AI AIConfig `json:"ai" yaml:"ai" mapstructure:"ai"`

	// TargetPath is the curated markdown document the pipeline owns.
	TargetPath string `json:"target_path" yaml:"target_path" mapstructure:"target_path"`

	// Sections maps section keys to the exact markdown headers the
	// document uses (e.g. foundation_models → "## Foundation Models &
	// World Models"). Headers are preserved verbatim by the merge.
	Sections map[string]string `json:"sections" yaml:"sections" mapstructure:"sections"`
}

// PublishConfig holds settings for the social publishing stage.
type PublishConfig struct {
	// TopN is the number of top-ranked items to post (default 3).
	TopN int `json:"top_n" yaml:"top_n" mapstructure:"top_n"`

	// Hashtags are appended to every post.
	Hashtags []string `json:"hashtags,omitempty" yaml:"hashtags,omitempty" mapstructure:"hashtags"`

	// Engage enables reply/repost/like of the most relevant discovered
	// social post about the topic.
	Engage bool `json:"engage" yaml:"engage" mapstructure:"engage"`

	// APIKey is the bearer token for the primary posting API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// LegacyAPIKey is the bearer token for the fallback posting API.
	LegacyAPIKey string `json:"legacy_api_key,omitempty" yaml:"legacy_api_key,omitempty" mapstructure:"legacy_api_key"`

	// UserID identifies the posting account for repost/like endpoints.
	UserID string `json:"user_id,omitempty" yaml:"user_id,omitempty" mapstructure:"user_id"`
}

// GitConfig holds settings for committing the updated document.
type GitConfig struct {
	// Push enables commit and push after a successful merge.
	Push bool `json:"push" yaml:"push" mapstructure:"push"`

	// RepoDir is the working tree containing the target document.
	RepoDir string `json:"repo_dir" yaml:"repo_dir" mapstructure:"repo_dir"`

	// Remote and Branch name the push destination (default origin/main).
	Remote string `json:"remote" yaml:"remote" mapstructure:"remote"`
	Branch string `json:"branch" yaml:"branch" mapstructure:"branch"`

	// CommitMessage is used for the update commit.
	CommitMessage string `json:"commit_message" yaml:"commit_message" mapstructure:"commit_message"`
}

// ArchiveConfig holds settings for the optional run audit store.
type ArchiveConfig struct {
	// Path is the SQLite database file. Empty disables archiving.
	Path string `json:"path,omitempty" yaml:"path,omitempty" mapstructure:"path"`
}

// PipelineConfig groups all stage configurations. It is loaded once at
// startup and immutable for the run.
type PipelineConfig struct {
	Collect CollectConfig `json:"collect" yaml:"collect" mapstructure:"collect"`
	Scoring ScoringConfig `json:"scoring" yaml:"scoring" mapstructure:"scoring"`
	Merge   MergeConfig   `json:"merge" yaml:"merge" mapstructure:"merge"`
	Publish PublishConfig `json:"publish" yaml:"publish" mapstructure:"publish"`
	Git     GitConfig     `json:"git" yaml:"git" mapstructure:"git"`
	Archive ArchiveConfig `json:"archive" yaml:"archive" mapstructure:"archive"`
}

// DiscoveriesPath is where the pipeline saves the ranked record set for a
// run when no explicit path is configured.
const DiscoveriesPath = "discoveries.yaml"
