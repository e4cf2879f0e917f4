// go_portfolio: career portfolio MCP server and site.
//
// Loads a portfolio document (file, URL or PostgreSQL), groups the career
// history into continuous engagements, computes per-technology experience,
// and serves the results as MCP tools and as a small HTTP site.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-kit/llm"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"

	"github.com/anatolykoptev/go_portfolio/internal/careerserver"
	"github.com/anatolykoptev/go_portfolio/internal/engine"
	"github.com/anatolykoptev/go_portfolio/internal/engine/source"
	"github.com/anatolykoptev/go_portfolio/internal/engine/techdict"
	"github.com/anatolykoptev/go_portfolio/internal/siteserver"
)

var version = "dev"

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to read .env", slog.Any("error", err))
	}
	initLogging(env.Str("LOG_LEVEL", "info"))

	mcpPort := env.Str("MCP_PORT", "8893")
	sitePort := env.Str("SITE_PORT", "8080")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	initEngine()

	loader, closeSources := initLoader(ctx)
	defer closeSources()
	if err := loader.Refresh(ctx); err != nil {
		slog.Warn("initial load failed, serving 503 until a refresh succeeds", slog.Any("error", err))
	}

	dict := techdict.Default()
	slog.Info("starting go_portfolio",
		slog.String("mcp_port", mcpPort),
		slog.String("site_port", sitePort),
		slog.Int("technologies", dict.Len()),
	)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_portfolio",
		Version: version,
	}, nil)
	n := careerserver.RegisterTools(server, loader, dict)
	slog.Info("tools registered", slog.Int("count", n))

	gin.SetMode(env.Str("GIN_MODE", gin.ReleaseMode))
	site := siteserver.New(loader, dict)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		loader.RefreshLoop(gctx, engine.Cfg.RefreshInterval)
		return nil
	})
	if sitePort != "" {
		g.Go(func() error {
			return site.Run(gctx, ":"+sitePort)
		})
	}
	g.Go(func() error {
		return mcpserver.Run(server, mcpserver.Config{
			Name:         "go_portfolio",
			Version:      version,
			Port:         mcpPort,
			WriteTimeout: 120 * time.Second,
			Metrics:      engine.FormatMetrics,
		})
	})

	if err := g.Wait(); err != nil {
		slog.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func initLogging(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

func initEngine() {
	home, _ := os.UserHomeDir()
	c := engine.Config{
		DataFile:             env.Str("DATA_FILE", "portfolio.json"),
		DataURL:              env.Str("DATA_URL", ""),
		DatabaseURL:          env.Str("DATABASE_URL", ""),
		SnapshotDB:           env.Str("SNAPSHOT_DB", filepath.Join(home, ".go_portfolio", "snapshots.db")),
		RefreshInterval:      env.Duration("REFRESH_INTERVAL", 10*time.Minute),
		LLMAPIKey:            env.Str("LLM_API_KEY", ""),
		LLMAPIKeyFallbacks:   env.List("LLM_API_KEY_FALLBACKS", ""),
		LLMAPIBase:           env.Str("LLM_API_BASE", "https://generativelanguage.googleapis.com/v1beta/openai"),
		LLMModel:             env.Str("LLM_MODEL", "gemini-2.5-flash"),
		LLMTemperature:       env.Float("LLM_TEMPERATURE", 0.3),
		LLMMaxTokens:         env.Int("LLM_MAX_TOKENS", 1024),
		CacheMaxEntries:      env.Int("CACHE_MAX_ENTRIES", 200),
		CacheCleanupInterval: env.Duration("CACHE_CLEANUP_INTERVAL", 300*time.Second),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	}

	if c.LLMAPIKey != "" {
		c.LLMClient = llm.NewClient(c.LLMAPIBase, c.LLMAPIKey, c.LLMModel,
			llm.WithFallbackKeys(c.LLMAPIKeyFallbacks),
			llm.WithMaxTokens(c.LLMMaxTokens),
			llm.WithTemperature(c.LLMTemperature),
			llm.WithHTTPClient(&http.Client{Timeout: 60 * time.Second}),
		)
	} else {
		slog.Info("LLM_API_KEY not set, career_summary disabled")
	}

	engine.Init(c)

	cacheTTL := env.Duration("CACHE_TTL", 15*time.Minute)
	engine.InitCache(env.Str("REDIS_URL", ""), cacheTTL, c.CacheMaxEntries, c.CacheCleanupInterval)
}

// initLoader picks the primary source (PostgreSQL, then URL, then file) and
// opens the snapshot store. The returned func closes what was opened.
func initLoader(ctx context.Context) (*source.Loader, func()) {
	c := engine.Cfg
	var closers []func()

	var primary source.Source
	switch {
	case c.DatabaseURL != "":
		pg := source.NewPostgresSource(c.DatabaseURL)
		closers = append(closers, pg.Close)
		if seed := env.Str("SEED_FILE", ""); seed != "" {
			seedPostgres(ctx, pg, seed)
		}
		primary = pg
	case c.DataURL != "":
		primary = source.NewHTTPSource(c.DataURL)
	case c.DataFile != "":
		primary = source.FileSource{Path: c.DataFile}
	}
	if primary != nil {
		slog.Info("portfolio source selected", slog.String("source", primary.Name()))
	}

	var snapshots *source.SnapshotStore
	if c.SnapshotDB != "" {
		s, err := source.OpenSnapshotStore(c.SnapshotDB)
		if err != nil {
			slog.Warn("snapshot store init failed, running without fallback", slog.Any("error", err))
		} else {
			snapshots = s
			closers = append(closers, func() { _ = s.Close() })
		}
	}

	return source.NewLoader(primary, snapshots), func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
}

// seedPostgres replaces the database contents with a JSON document file.
func seedPostgres(ctx context.Context, pg *source.PostgresSource, path string) {
	doc, err := source.FileSource{Path: path}.Load(ctx)
	if err != nil {
		slog.Warn("seed: load failed", slog.String("file", path), slog.Any("error", err))
		return
	}
	if err := pg.Replace(ctx, doc); err != nil {
		slog.Warn("seed: replace failed", slog.Any("error", err))
		return
	}
	slog.Info("seed: postgres replaced from file", slog.String("file", path))
}
