package main

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ganeshai/config"
	"ganeshai/internal/database"
	"ganeshai/internal/jobs"
	"ganeshai/internal/repository"
	"ganeshai/internal/responder"
	"ganeshai/internal/router"
	"ganeshai/internal/service"
	"ganeshai/internal/telegram"
	"ganeshai/pkg/openai"

	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	chatRepo := repository.NewChatRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	ledger := service.NewLedgerService(db, cfg)
	accounts := service.NewAccountService(cfg, db, userRepo, ledger)

	adminCode, err := accounts.GenerateReferralCode()
	if err != nil {
		log.Fatalf("generate admin referral code: %v", err)
	}
	if err := database.SeedAdmin(db, cfg, adminCode); err != nil {
		log.Fatalf("seed admin: %v", err)
	}

	var remote *openai.Client
	if cfg.OpenAI.APIKey != "" {
		remote = openai.NewClient(cfg.OpenAI.BaseURL, cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.Timeout)
		log.WithField("model", cfg.OpenAI.Model).Info("remote model enabled")
	} else {
		log.Info("no OPENAI_API_KEY set, using local replies only")
	}
	rsp := responder.New(cfg, remote, rand.New(rand.NewSource(time.Now().UnixNano())))

	engine := router.Setup(cfg, db, router.Deps{
		Accounts:  accounts,
		Ledger:    ledger,
		Responder: rsp,
		UserRepo:  userRepo,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scheduler := jobs.NewScheduler(userRepo, chatRepo, ledgerRepo, statsRepo)
	if err := scheduler.Start(cfg.StatsInterval); err != nil {
		log.Fatalf("start scheduler: %v", err)
	}
	defer scheduler.Stop()

	if cfg.Telegram.Token != "" {
		bot, err := telegram.NewBot(cfg, accounts, ledger, rsp, userRepo, ledgerRepo, chatRepo)
		if err != nil {
			log.Fatalf("start telegram bot: %v", err)
		}
		go bot.Run(ctx)
	} else {
		log.Info("no TELEGRAM_TOKEN set, telegram bot disabled")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.WithField("port", cfg.Server.Port).Info("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("http shutdown failed")
		os.Exit(1)
	}
	log.Info("bye")
}
