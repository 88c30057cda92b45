package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// ErrConfig marks configuration problems detected before any network call
var ErrConfig = errors.New("config error")

// supported source types
const (
	SourceTianAPI = "tianapi"
	SourceRSS     = "rss"
)

// supported llm providers
const (
	ProviderHeuristic = "heuristic"
	ProviderOpenAI    = "openai"
	ProviderZhipu     = "zhipu"
	ProviderGemini    = "gemini"
)

// Config holds the application configuration
type Config struct {
	Source     SourceConfig     `yaml:"source" json:"source" jsonschema:"description=News source configuration"`
	LLM        LLMConfig        `yaml:"llm" json:"llm" jsonschema:"description=LLM configuration for topic analysis"`
	Scoring    ScoringConfig    `yaml:"scoring" json:"scoring" jsonschema:"description=Keyword lists for heuristic scoring"`
	Extraction ExtractionConfig `yaml:"extraction" json:"extraction" jsonschema:"description=Content extraction configuration"`
	Report     ReportConfig     `yaml:"report" json:"report" jsonschema:"description=Report output configuration"`
	Archive    ArchiveConfig    `yaml:"archive" json:"archive" jsonschema:"description=Run history archive"`
	Server     ServerConfig     `yaml:"server" json:"server" jsonschema:"description=Report server configuration"`
}

// SourceConfig holds news source settings
type SourceConfig struct {
	Type        string        `yaml:"type" json:"type" jsonschema:"default=tianapi,enum=tianapi,enum=rss,description=Source type"`
	APIEndpoint string        `yaml:"api_endpoint" json:"api_endpoint" jsonschema:"default=https://apis.tianapi.com/ai/index,description=News API endpoint"`
	APIKey      string        `yaml:"api_key" json:"api_key" jsonschema:"description=News API key (can use environment variable)"`
	MaxTopics   int           `yaml:"max_topics" json:"max_topics" jsonschema:"default=20,minimum=1,description=Number of news items to request"`
	APITimeout  time.Duration `yaml:"api_timeout" json:"api_timeout" jsonschema:"default=30s,description=News API request timeout"`
	Feeds       []string      `yaml:"feeds" json:"feeds" jsonschema:"description=RSS/Atom feed URLs used when type is rss"`
}

// LLMConfig holds settings of the LLM backend used for topic analysis
type LLMConfig struct {
	Provider     string        `yaml:"provider" json:"provider" jsonschema:"default=openai,enum=heuristic,enum=openai,enum=zhipu,enum=gemini,description=Analyzer backend"`
	Endpoint     string        `yaml:"endpoint" json:"endpoint" jsonschema:"description=API endpoint (OpenAI-compatible base URL or Gemini endpoint)"`
	APIKey       string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model        string        `yaml:"model" json:"model" jsonschema:"description=Model name (e.g. glm-4-flash or gemini-1.5-flash)"`
	Temperature  float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.3,minimum=0,maximum=2,description=Temperature for response generation"`
	TopP         float64       `yaml:"top_p" json:"top_p" jsonschema:"default=0.7,minimum=0,maximum=1,description=Nucleus sampling probability"`
	MaxTokens    int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=2000,description=Maximum tokens in response"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=60s,description=Request timeout per topic"`
	SystemPrompt string        `yaml:"system_prompt" json:"system_prompt" jsonschema:"description=System prompt for the LLM (optional)"`
}

// ScoringConfig holds keyword lists used by the heuristic scorer, empty lists use built-in defaults
type ScoringConfig struct {
	Breakthrough  []string `yaml:"breakthrough" json:"breakthrough" jsonschema:"description=Title markers of a breakthrough or first release"`
	CoreAI        []string `yaml:"core_ai" json:"core_ai" jsonschema:"description=Title markers of core AI topics"`
	Organizations []string `yaml:"organizations" json:"organizations" jsonschema:"description=Names of top-tier AI organizations"`
	Substance     []string `yaml:"substance" json:"substance" jsonschema:"description=Description markers of research or releases"`
	Applicability []string `yaml:"applicability" json:"applicability" jsonschema:"description=Description markers of practical applications"`
	Openness      []string `yaml:"openness" json:"openness" jsonschema:"description=Title markers of open or free offerings"`
}

// ExtractionConfig holds content extraction settings
type ExtractionConfig struct {
	Enabled       bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Extract article text to enrich LLM prompts"`
	Timeout       time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Extraction timeout per article"`
	UserAgent     string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=AINews/1.0,description=User agent for HTTP requests"`
	MinTextLength int           `yaml:"min_text_length" json:"min_text_length" jsonschema:"default=100,description=Minimum text length to consider valid"`
}

// ReportConfig holds report output settings
type ReportConfig struct {
	Dir   string `yaml:"dir" json:"dir" jsonschema:"default=reports,description=Directory for raw, analyzed and report artifacts"`
	Title string `yaml:"title" json:"title" jsonschema:"default=AI行业资讯分析报告,description=Report title"`
}

// ArchiveConfig holds run history settings
type ArchiveConfig struct {
	DSN string `yaml:"dsn" json:"dsn" jsonschema:"description=SQLite DSN for run history, empty disables the archive"`
}

// ServerConfig holds report server settings
type ServerConfig struct {
	Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	BaseURL string        `yaml:"base_url" json:"base_url" jsonschema:"default=http://localhost:8080,description=Public base URL used for RSS links"`
}

// Load reads configuration from a YAML file. Empty path returns defaults.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		// expand environment variables
		expanded := os.ExpandEnv(string(data))

		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.SetDefaults()
	return &cfg, nil
}

// SetDefaults fills unset fields with default values
func (c *Config) SetDefaults() {
	// set defaults for source
	if c.Source.Type == "" {
		c.Source.Type = SourceTianAPI
	}
	if c.Source.APIEndpoint == "" {
		c.Source.APIEndpoint = "https://apis.tianapi.com/ai/index"
	}
	if c.Source.MaxTopics == 0 {
		c.Source.MaxTopics = 20
	}
	if c.Source.APITimeout == 0 {
		c.Source.APITimeout = 30 * time.Second
	}

	// set defaults for LLM
	if c.LLM.Provider == "" {
		c.LLM.Provider = ProviderOpenAI
	}
	switch c.LLM.Provider {
	case ProviderOpenAI, ProviderZhipu:
		if c.LLM.Endpoint == "" {
			c.LLM.Endpoint = "https://open.bigmodel.cn/api/paas/v4"
		}
		if c.LLM.Model == "" {
			c.LLM.Model = "glm-4-flash"
		}
	case ProviderGemini:
		if c.LLM.Model == "" {
			c.LLM.Model = "gemini-1.5-flash"
		}
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.3
	}
	if c.LLM.TopP == 0 {
		c.LLM.TopP = 0.7
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 2000
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = 60 * time.Second
	}

	// set defaults for extraction
	if c.Extraction.Timeout == 0 {
		c.Extraction.Timeout = 30 * time.Second
	}
	if c.Extraction.UserAgent == "" {
		c.Extraction.UserAgent = "AINews/1.0"
	}
	if c.Extraction.MinTextLength == 0 {
		c.Extraction.MinTextLength = 100
	}

	// set defaults for report
	if c.Report.Dir == "" {
		c.Report.Dir = "reports"
	}
	if c.Report.Title == "" {
		c.Report.Title = "AI行业资讯分析报告"
	}

	// set defaults for server
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = "http://localhost:8080"
	}
}

// Validate checks configuration for correctness. All failures wrap ErrConfig.
func (c *Config) Validate() error {
	if err := validate(c); err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(c); err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return nil
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	// validate source config
	switch cfg.Source.Type {
	case SourceTianAPI:
		if cfg.Source.APIEndpoint == "" {
			return fmt.Errorf("source.api_endpoint is required")
		}
		if cfg.Source.APIKey == "" {
			return fmt.Errorf("source.api_key is required")
		}
	case SourceRSS:
		if len(cfg.Source.Feeds) == 0 {
			return fmt.Errorf("source.feeds is required for rss source")
		}
	default:
		return fmt.Errorf("unknown source.type %q", cfg.Source.Type)
	}
	if cfg.Source.MaxTopics < 1 {
		return fmt.Errorf("source.max_topics must be at least 1")
	}
	if cfg.Source.APITimeout < time.Second {
		return fmt.Errorf("source.api_timeout must be at least 1 second")
	}

	// validate LLM config
	switch cfg.LLM.Provider {
	case ProviderHeuristic:
	case ProviderOpenAI, ProviderZhipu, ProviderGemini:
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("llm.api_key is required for provider %s", cfg.LLM.Provider)
		}
		if cfg.LLM.Model == "" {
			return fmt.Errorf("llm.model is required")
		}
	default:
		return fmt.Errorf("unknown llm.provider %q", cfg.LLM.Provider)
	}
	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}
	if cfg.LLM.TopP < 0 || cfg.LLM.TopP > 1 {
		return fmt.Errorf("llm.top_p must be between 0 and 1")
	}

	// validate extraction config
	if cfg.Extraction.Enabled {
		if cfg.Extraction.Timeout < time.Second {
			return fmt.Errorf("extraction timeout must be at least 1 second")
		}
		if cfg.Extraction.MinTextLength < 0 {
			return fmt.Errorf("extraction min_text_length must be non-negative")
		}
	}

	// validate server config
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetFeedConfig returns the title and public base URL used for the RSS export
func (c *Config) GetFeedConfig() (title, baseURL string) {
	return c.Report.Title, c.Server.BaseURL
}
