package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/wishwatch/wishwatch/internal/config"
	"github.com/wishwatch/wishwatch/internal/handlers"
	"github.com/wishwatch/wishwatch/internal/ingest"
	"github.com/wishwatch/wishwatch/internal/metrics"
	redisrepo "github.com/wishwatch/wishwatch/internal/repository/redis"
	"github.com/wishwatch/wishwatch/internal/service"
	"github.com/wishwatch/wishwatch/internal/telegram"
	"github.com/wishwatch/wishwatch/pkg/logger"
)

func main() {
	// A missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	l := logger.New(cfg.LogLevel)
	l.Info("Starting WishWatch...")

	// Store
	client := config.NewRedis(cfg.RedisAddr, cfg.RedisDB, l)
	defer client.Close()
	store := redisrepo.NewWishlistStore(client)

	// Wishlist service
	wishlist := service.NewWishlist(store, l)
	if err := wishlist.Load(context.Background()); err != nil {
		// Non-fatal: operate on an empty in-memory list for this session.
		l.Warnf("Could not hydrate wishlist, starting empty: %v", err)
	}

	// Telegram bot
	bot, err := telegram.NewBot(cfg.TelegramToken, cfg.OwnerChatID, l)
	if err != nil {
		l.Fatalf("Failed to create Telegram bot: %v", err)
	}

	// Ingestion pipeline: links shared while the bot was offline, then live.
	shares := ingest.New(bot.API(), l)
	bot.SetShares(shares)
	if _, err := shares.ColdStart(); err != nil {
		l.Warnf("Cold-start share scan failed: %v", err)
	}

	// Register command handlers
	bot.RegisterCommand("start", handlers.NewStartHandler(l))
	bot.RegisterCommand("help", handlers.NewHelpHandler(l))
	bot.RegisterCommand("wish", handlers.NewWishAddHandler(wishlist, shares, l))
	bot.RegisterCommand("list", handlers.NewWishListHandler(wishlist, l))
	bot.RegisterCommand("price", handlers.NewPriceHandler(wishlist, l))
	bot.RegisterCommand("drop", handlers.NewDropHandler(wishlist, l))

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		l.Info("Received shutdown signal...")
		cancel()
	}()

	// Surface swallowed ingest errors for diagnostics.
	go func() {
		for err := range shares.Errs() {
			l.Debugf("Ingest error observed: %v", err)
		}
	}()

	// Metrics endpoint
	metricsServer := &http.Server{
		Addr:    ":" + cfg.PrometheusPort,
		Handler: metrics.Handler(),
	}
	go func() {
		l.Infof("Metrics listening on :%s", cfg.PrometheusPort)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Errorf("Metrics server error: %v", err)
		}
	}()

	// Start Telegram bot polling from the acknowledged offset
	go func() {
		if err := bot.Start(ctx, shares.Offset()); err != nil {
			l.Errorf("Bot error: %v", err)
		}
	}()

	l.Info("WishWatch started successfully")

	<-ctx.Done()

	l.Info("Shutting down metrics server...")
	metricsServer.Close()

	l.Info("WishWatch stopped")
}
