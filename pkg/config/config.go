// Package config loads process configuration: environment variables with
// .env.local/.env file support, plus an optional aria.yaml for values
// that are awkward as env vars (the search instance list, long prompts).
// Configuration is read once at startup and treated as immutable.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/aria-chat/aria/pkg/shared/stringutil"
)

// Search backend modes.
const (
	SearchModeLangSearch = "langsearch"
	SearchModeSearXNG    = "searxng"
)

// DefaultSystemPrompt is used when no prompt is configured.
const DefaultSystemPrompt = `You are Aria, a helpful and creative AI design assistant. You excel at:
- Web design and development advice
- Creating React components and modern UI/UX patterns
- CSS animations and styling best practices
- Email template design
- Frontend performance optimization
- Providing clear, concise, and actionable advice

Keep responses friendly, professional, and formatted with proper markdown when appropriate. Use bullet points and code examples when helpful.`

// Config is the full process configuration.
type Config struct {
	Port string

	CompletionAPIKey  string
	CompletionBaseURL string
	Model             string
	SystemPrompt      string

	SearchMode         string
	LangSearchAPIKey   string
	LangSearchEndpoint string
	SearchInstances    []string

	StaticDir string
	LogLevel  string
}

// fileConfig is the optional aria.yaml shape.
type fileConfig struct {
	SystemPrompt string `yaml:"system_prompt"`
	Search       struct {
		Mode      string   `yaml:"mode"`
		Instances []string `yaml:"instances"`
	} `yaml:"search"`
}

// Load reads .env.local then .env (earlier files win, matching dotenv
// semantics), applies the optional yaml file, and validates.
func Load() (*Config, error) {
	return LoadFrom("aria.yaml")
}

// LoadFrom is Load with an explicit yaml path, for tests.
func LoadFrom(yamlPath string) (*Config, error) {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	cfg := &Config{
		Port:              stringutil.EnvOr(os.Getenv("PORT"), "3000"),
		CompletionAPIKey:  os.Getenv("GROQ_API_KEY"),
		CompletionBaseURL: os.Getenv("GROQ_BASE_URL"),
		Model:             os.Getenv("GROQ_MODEL"),
		SystemPrompt: stringutil.Coalesce(
			os.Getenv("CHAT_PROMPT"),
			os.Getenv("SYSTEM_PROMPT"),
			os.Getenv("GROQ_SYSTEM_PROMPT"),
		),
		SearchMode:         stringutil.EnvOr(os.Getenv("SEARCH_MODE"), SearchModeLangSearch),
		LangSearchAPIKey:   os.Getenv("LANGSEARCH_API_KEY"),
		LangSearchEndpoint: os.Getenv("LANGSEARCH_ENDPOINT"),
		StaticDir:          os.Getenv("STATIC_DIR"),
		LogLevel:           stringutil.EnvOr(os.Getenv("LOG_LEVEL"), "info"),
	}

	if err := applyFile(cfg, yamlPath); err != nil {
		return nil, err
	}

	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = DefaultSystemPrompt
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFile merges the optional yaml file. Env vars take precedence over
// file values; a missing file is not an error.
func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = fc.SystemPrompt
	}
	if os.Getenv("SEARCH_MODE") == "" && fc.Search.Mode != "" {
		cfg.SearchMode = fc.Search.Mode
	}
	cfg.SearchInstances = fc.Search.Instances
	return nil
}

func (c *Config) validate() error {
	if c.CompletionAPIKey == "" {
		return fmt.Errorf("GROQ_API_KEY is required")
	}
	switch c.SearchMode {
	case SearchModeLangSearch, SearchModeSearXNG:
	default:
		return fmt.Errorf("unknown search mode %q", c.SearchMode)
	}
	if c.SearchMode == SearchModeLangSearch && c.LangSearchAPIKey == "" {
		return fmt.Errorf("LANGSEARCH_API_KEY is required for langsearch mode")
	}
	return nil
}
