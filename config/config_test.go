package config

import (
	"testing"
)

func TestLoad(t *testing.T) {
	t.Setenv(EnvOpenAIKey, "sk-test")
	t.Setenv(EnvTavilyKey, "tvly-test")
	cfg, err := Load("testdata/config.yml")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("server addr: %s", cfg.Server.Addr)
	}
	if cfg.LLM.Model != "gpt-4o-mini" || cfg.LLM.Temperature != 0.3 {
		t.Errorf("llm: %+v", cfg.LLM)
	}
	if cfg.RAG.Collection != "swiss-policies" || cfg.RAG.TopK != 3 || cfg.RAG.TavilyMaxResults != 2 {
		t.Errorf("rag: %+v", cfg.RAG)
	}
	// defaults survive partial files
	if cfg.Data.DatabaseURL == "" || cfg.Data.FAQURL == "" {
		t.Errorf("data defaults lost: %+v", cfg.Data)
	}
	if cfg.Data.LocalFile != "testdata/travel2.sqlite" {
		t.Errorf("data overrides lost: %+v", cfg.Data)
	}
	if cfg.LLM.APIKey != "sk-test" || cfg.RAG.TavilyAPIKey != "tvly-test" {
		t.Error("env secrets not applied")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("validate: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("testdata/nope.yml")
	if !IsKind(err, KindNotFound) {
		t.Errorf("want not_found kind, got %v", err)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	_, err := Load("testdata/invalid.yml")
	if !IsKind(err, KindInvalid) {
		t.Errorf("want invalid_config kind, got %v", err)
	}
}

func TestValidateMissingSecrets(t *testing.T) {
	t.Setenv(EnvOpenAIKey, "")
	t.Setenv(EnvTavilyKey, "")
	cfg := Default()
	cfg.FromEnv()
	if err := cfg.Validate(); !IsKind(err, KindMissingVar) {
		t.Errorf("want missing_variable kind, got %v", err)
	}
}
