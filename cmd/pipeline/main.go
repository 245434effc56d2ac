package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"CryptoPulse/internal/analyst"
	"CryptoPulse/internal/collector"
	"CryptoPulse/internal/config"
	"CryptoPulse/internal/dashboard"
	"CryptoPulse/internal/llm"
	"CryptoPulse/internal/logger"
	"CryptoPulse/internal/notifier"
	"CryptoPulse/internal/runner"
	"CryptoPulse/internal/store"
	"CryptoPulse/internal/strategy"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	godotenv.Load()

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.New("info").Fatalf("load config: %v", err)
	}
	log := logger.New(cfg.Log.Level)
	log.Info("CryptoPulse starting...")

	if err := cfg.Validate(); err != nil {
		log.Fatalf("config validation: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Store
	var st store.Store
	if cfg.UsePostgres() {
		pg, err := store.NewPostgres(cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("init postgres: %v", err)
		}
		st = pg
		log.Info("storage: postgres")
	} else {
		sq, err := store.NewSQLite(cfg.Database.SQLitePath)
		if err != nil {
			log.Fatalf("init sqlite: %v", err)
		}
		st = sq
		log.Infof("storage: sqlite (%s)", cfg.Database.SQLitePath)
	}
	defer st.Close()
	if err := st.Init(ctx); err != nil {
		log.Fatalf("init schema: %v", err)
	}

	// Collector with all providers
	col := collector.New(collector.NewYahooFetcher(cfg.Proxy), log)
	if cfg.Providers.CoinGlassKey != "" {
		col.Derivatives = collector.NewCoinGlassClient(cfg.Providers.CoinGlassKey, cfg.Proxy)
	}
	if cfg.Providers.SantimentKey != "" {
		col.OnChain = collector.NewSantimentClient(cfg.Providers.SantimentKey, cfg.Proxy)
	}
	if cfg.Providers.LunarCrushKey != "" {
		col.Social = collector.NewLunarCrushClient(cfg.Providers.LunarCrushKey, cfg.Proxy)
	}
	if cfg.Providers.CoinGeckoKey != "" {
		col.Fundamentals = collector.NewCoinGeckoClient(cfg.Providers.CoinGeckoKey, cfg.Proxy)
	}
	if cfg.Providers.NewsAPIKey != "" {
		col.News = collector.NewNewsAPIClient(cfg.Providers.NewsAPIKey, cfg.Proxy)
	}

	// LLM-backed generators
	llmClient, err := llm.NewClient(ctx, cfg, log)
	if err != nil {
		log.Fatalf("init llm client: %v", err)
	}

	r := &runner.Runner{
		Coins:     cfg.Coins,
		Collector: col,
		Analyst:   analyst.New(llmClient, log),
		Strategy:  strategy.New(llmClient, log),
		Store:     st,
		Format:    notifier.FormatRunSummary,
		Log:       log,
	}
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		r.Notifier = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, log)
		log.Info("telegram notifications enabled")
	}

	sched := runner.NewScheduler(ctx, r, log)
	if err := sched.Register(cfg.Schedule.DailyCron); err != nil {
		log.Fatalf("register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Dashboard API
	srv := dashboard.NewServer(st, log)
	go func() {
		if err := srv.Start(ctx, cfg.Server.Addr); err != nil {
			log.Errorf("dashboard server: %v", err)
			cancel()
		}
	}()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Info("RUN_ON_START enabled, executing daily run now")
		go sched.RunNow()
	}

	log.Info("CryptoPulse is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received, stopping...")
	cancel()
	log.Info("CryptoPulse stopped")
}
