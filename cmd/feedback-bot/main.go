package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"feedback-bot/internal/adapters/discord"
	"feedback-bot/internal/domain"
	"feedback-bot/internal/infra/cache"
	"feedback-bot/internal/infra/config"
	httpserver "feedback-bot/internal/infra/http"
	"feedback-bot/internal/infra/log"
	"feedback-bot/internal/infra/metrics"
)

func main() {
	cfg := config.Load()
	logger := log.NewLogger(cfg.AppEnv)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.MustRegister(registry)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var dedup domain.Deduplicator
	if cfg.Dedup.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Dedup.RedisAddr})
		defer client.Close()
		redisDedup := cache.NewRedis(client)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := redisDedup.Ping(pingCtx); err != nil {
			logger.Warn().Err(err).Str("addr", cfg.Dedup.RedisAddr).Msg("Redis недоступен, дедупликация отключена")
		} else {
			dedup = redisDedup
		}
		cancel()
	}

	var srv *httpserver.Server
	if cfg.MetricsAddr != "" {
		srv = httpserver.NewServer(logger, registry)
		srv.Start(cfg.MetricsAddr)
	}

	session, err := discord.NewSession(cfg.Discord.Token)
	if err != nil {
		logger.Fatal().Err(err).Msg("не удалось создать сессию Discord")
	}

	handler := discord.NewHandler(discord.NewCachedSession(session), logger, discord.HandlerConfig{
		ChannelID:    cfg.Feedback.ChannelID,
		AllowedRoles: cfg.Feedback.AllowedRoles,
		Dedup:        dedup,
		DedupTTL:     cfg.Dedup.TTL,
	})
	bot := discord.NewBot(session, handler, logger)

	logger.Info().
		Str("channel", cfg.Feedback.ChannelID).
		Strs("roles", cfg.Feedback.AllowedRoles).
		Bool("dedup", dedup != nil).
		Msg("запуск бота отзывов")

	if err := bot.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("бот остановлен с ошибкой")
		if ctx.Err() == nil {
			os.Exit(1)
		}
	}

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("HTTP сервер не остановился корректно")
		}
	}
	logger.Info().Msg("остановка бота")
}
