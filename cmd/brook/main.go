package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/philippgille/chromem-go"

	"github.com/brook-ai/brook/chatbot"
	"github.com/brook-ai/brook/components"
	"github.com/brook-ai/brook/components/embedder"
	openaiembedder "github.com/brook-ai/brook/components/embedder/providers/openai"
	"github.com/brook-ai/brook/components/llm"
	"github.com/brook-ai/brook/components/vectordb/engines"
	"github.com/brook-ai/brook/config"
	"github.com/brook-ai/brook/rag"
	"github.com/brook-ai/brook/server"
	"github.com/brook-ai/brook/tools/tavily"
	"github.com/brook-ai/brook/travel"

	openai "github.com/sashabaranov/go-openai"
)

func main() {
	configPath := flag.String("config", "config.yml", "path to the YAML config file")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(*configPath); err != nil {
		slog.Error("brook exited", "error", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	boot := travel.BootstrapConfig{
		DatabaseURL: cfg.Data.DatabaseURL,
		LocalFile:   cfg.Data.LocalFile,
		BackupFile:  cfg.Data.BackupFile,
		Overwrite:   cfg.Data.Overwrite,
	}
	if err := travel.Download(ctx, boot); err != nil {
		return err
	}

	db, err := sql.Open("sqlite3", cfg.Data.LocalFile)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := travel.ShiftToPresent(ctx, db, time.Now()); err != nil {
		return err
	}
	store := travel.NewStore(db)

	oaiCfg := openai.DefaultConfig(cfg.LLM.APIKey)
	if cfg.LLM.BaseURL != "" {
		oaiCfg.BaseURL = cfg.LLM.BaseURL
	}
	oaiClient := openai.NewClientWithConfig(oaiCfg)

	emb := openaiembedder.New(oaiClient, embedder.WithModel(cfg.Embedding.Model))
	engine := engines.FromChromem(chromem.NewDB())
	retriever := rag.NewRetriever(emb, engine,
		rag.WithCollection(cfg.RAG.Collection),
		rag.WithTopK(cfg.RAG.TopK))

	var usage components.ApiUsage
	if err := retriever.IngestURL(ctx, cfg.Data.FAQURL, nil, &usage); err != nil {
		return err
	}
	slog.Info("policy document indexed",
		"url", cfg.Data.FAQURL,
		"prompt_tokens", usage.InputTokens,
		"completion_tokens", usage.OutputTokens)

	completer := llm.NewOpenAI(oaiClient)
	search := tavily.New(
		tavily.WithApiKey(cfg.RAG.TavilyAPIKey),
		tavily.WithMaxResults(cfg.RAG.TavilyMaxResults))

	bot := chatbot.New(store, retriever, completer,
		chatbot.WithModel(cfg.LLM.Model),
		chatbot.WithTemperature(cfg.LLM.Temperature),
		chatbot.WithMaxTokens(cfg.LLM.MaxTokens),
		chatbot.WithWebSearch(search))

	srv := server.New(bot,
		server.WithAddr(cfg.Server.Addr),
		server.WithAllowOrigins(cfg.Server.AllowOrigins))
	return srv.Start(ctx)
}
