// Command hc-export exports a help-center knowledge base into two NDJSON
// streams: full per-locale article records and token-bounded chunks for
// retrieval indexing. Configuration arrives via environment variables;
// there are no flags.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/helpcenter-tools/hc-export/internal/config"
	"github.com/helpcenter-tools/hc-export/internal/export"
	"github.com/helpcenter-tools/hc-export/pkg/chunker"
	"github.com/helpcenter-tools/hc-export/pkg/client"
	"github.com/helpcenter-tools/hc-export/pkg/helpcenter"
	"github.com/helpcenter-tools/hc-export/pkg/htmlmd"
	"github.com/helpcenter-tools/hc-export/pkg/logging"
	"github.com/helpcenter-tools/hc-export/pkg/tokens"
)

func main() {
	// Optional .env for local runs; absence is fine.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fallback := logging.Setup(logging.DefaultConfig())
		fallback.Fatal().Err(err).Msg("Failed to load .env")
	}

	cfg, err := config.FromEnv()
	if err != nil {
		fallback := logging.Setup(logging.DefaultConfig())
		fallback.Fatal().Err(err).Msg("Invalid configuration")
	}

	logger := logging.Setup(logging.Config{
		Level:  logging.LogLevel(cfg.LogLevel),
		Pretty: cfg.LogPretty,
		Output: os.Stderr,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clientCfg := client.DefaultConfig(cfg.BaseURL(), cfg.Email, cfg.APIToken)
	clientCfg.RequestsPerSecond = cfg.RequestsPerSecond
	clientCfg.Redis = connectRedis(ctx, cfg.RedisURL, logger)

	hcClient, err := client.New(clientCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create help-center client")
	}

	counter := tokens.NewCounter(logger)
	textChunker := chunker.New(counter)
	textChunker.Target = cfg.TargetTokens
	textChunker.Max = cfg.MaxTokens

	pipeline := export.NewPipeline(
		helpcenter.NewLoader(hcClient, cfg.BaseURL()),
		htmlmd.Select(logger),
		textChunker,
		export.NewFilter(cfg.AllowedCategories, cfg.AllowedSections),
		cfg.BaseURL(),
		cfg.OutDir,
	)

	summary, err := pipeline.Run(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("Export failed")
	}

	logger.Info().
		Str("articles_file", summary.ArticlesPath).
		Str("chunks_file", summary.ChunksPath).
		Msg("Done")
}

// connectRedis returns a Redis client for the response cache, or nil when
// no URL is configured or the instance is unreachable. The export does
// not require Redis; the cache is an optimization.
func connectRedis(ctx context.Context, redisURL string, logger zerolog.Logger) *redis.Client {
	if redisURL == "" {
		return nil
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: redisURL,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn().Err(err).Str("redis_url", redisURL).Msg("Redis unreachable, caching disabled")
		redisClient.Close()
		return nil
	}

	logger.Info().Str("redis_url", redisURL).Msg("Response caching enabled")
	return redisClient
}
