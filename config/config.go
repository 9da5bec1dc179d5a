// Package config loads the service configuration from YAML and applies
// environment overrides for secrets.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Env var names for secrets, never read from the YAML file.
const (
	EnvOpenAIKey = "OPEN_AI_API_KEY"
	EnvTavilyKey = "TAVILY_API_KEY"
)

type Config struct {
	Server    Server    `yaml:"server"`
	LLM       LLM       `yaml:"llm"`
	Embedding Embedding `yaml:"embedding"`
	RAG       RAG       `yaml:"rag"`
	Data      Data      `yaml:"data"`
}

type Server struct {
	Addr         string   `yaml:"addr"`
	AllowOrigins []string `yaml:"allow_origins"`
}

type LLM struct {
	Provider    string  `yaml:"provider"`
	Model       string  `yaml:"model"`
	BaseURL     string  `yaml:"base_url"`
	Temperature float32 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	// APIKey comes from the environment
	APIKey string `yaml:"-"`
}

type Embedding struct {
	Model string `yaml:"model"`
}

type RAG struct {
	Collection string `yaml:"collection"`
	TopK       int    `yaml:"k"`
	// TavilyMaxResults caps web search results per query
	TavilyMaxResults int `yaml:"tavily_search_max_results"`
	// TavilyAPIKey comes from the environment
	TavilyAPIKey string `yaml:"-"`
}

type Data struct {
	LocalFile   string `yaml:"local_file"`
	BackupFile  string `yaml:"backup_file"`
	DatabaseURL string `yaml:"travel_db_url"`
	FAQURL      string `yaml:"swiss_faq_url"`
	// Overwrite re-downloads the database even when the local file exists
	Overwrite bool `yaml:"overwrite"`
}

// Default carries the values the original deployment uses; Load overlays the
// YAML file on top of it.
func Default() Config {
	return Config{
		Server: Server{
			Addr: ":8080",
		},
		LLM: LLM{
			Provider:    "openai",
			Model:       "gpt-4-turbo-preview",
			Temperature: 1,
		},
		Embedding: Embedding{
			Model: "text-embedding-3-small",
		},
		RAG: RAG{
			Collection:       "policies",
			TopK:             2,
			TavilyMaxResults: 1,
		},
		Data: Data{
			LocalFile:   "travel2.sqlite",
			BackupFile:  "travel2.backup.sqlite",
			DatabaseURL: "https://storage.googleapis.com/benchmarks-artifacts/travel-db/travel2.sqlite",
			FAQURL:      "https://storage.googleapis.com/benchmarks-artifacts/travel-db/swiss_faq.md",
		},
	}
}

// Load reads the YAML file at path over the defaults and pulls secrets from
// the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &OpError{
			Op:   "config.load",
			Kind: KindNotFound,
			Path: path,
			Err:  err,
		}
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, &OpError{
			Op:   "config.load",
			Kind: KindInvalid,
			Path: path,
			Err:  err,
		}
	}
	cfg.FromEnv()
	return cfg, nil
}

// FromEnv pulls the API keys from the environment.
func (c *Config) FromEnv() {
	if v := os.Getenv(EnvOpenAIKey); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv(EnvTavilyKey); v != "" {
		c.RAG.TavilyAPIKey = v
	}
}

// Validate reports missing secrets for the configured providers.
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return &OpError{Op: "config.validate", Kind: KindMissingVar, Err: errMissing(EnvOpenAIKey)}
	}
	if c.RAG.TavilyAPIKey == "" {
		return &OpError{Op: "config.validate", Kind: KindMissingVar, Err: errMissing(EnvTavilyKey)}
	}
	return nil
}

type missingVarError string

func errMissing(name string) error {
	return missingVarError(name)
}

func (e missingVarError) Error() string {
	return string(e) + " is not set"
}
