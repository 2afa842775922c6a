package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"FundScope/internal/config"
	"FundScope/internal/engine"
	"FundScope/internal/recorder"
	"FundScope/internal/scheduler"
	"FundScope/internal/server"
	"FundScope/internal/store"
	"FundScope/pkg/logger"
)

func main() {
	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		errLog := logger.New(logger.Config{Level: "error"})
		errLog.Fatal().Err(err).Msg("load config")
	}
	if err := cfg.Validate(); err != nil {
		errLog := logger.New(logger.Config{Level: "error"})
		errLog.Fatal().Err(err).Msg("config validation")
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	log.Info().Msg("FundScope starting")

	// Persistence store
	st, err := store.NewSQLiteStore(cfg.Database.SQLitePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Database.SQLitePath).Msg("open store")
	}
	defer st.Close()
	log.Info().Str("path", cfg.Database.SQLitePath).Msg("store opened")

	// Snapshot history recorder, noop when the history db cannot be opened
	var rec recorder.Recorder
	if sr, err := recorder.NewSQLiteRecorder(cfg.Database.HistoryPath); err != nil {
		log.Warn().Err(err).Msg("open history recorder failed, using noop")
		rec = recorder.NewNoopRecorder()
	} else {
		rec = sr
		defer sr.Close()
	}

	// Engine service
	svc := engine.NewService(st, cfg.ScenarioSet(), log)

	// Snapshot scheduler
	sched := scheduler.New(svc, st, rec, log)
	if err := sched.Register(cfg.Schedule.SnapshotCron); err != nil {
		log.Fatal().Err(err).Msg("register snapshot task")
	}
	sched.Start()
	defer sched.Stop()

	// HTTP server
	srv := server.New(server.Config{
		Port:    cfg.Server.Port,
		Log:     log,
		Store:   st,
		Service: svc,
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server")
		}
	}()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Info().Msg("RUN_ON_START enabled, executing snapshot now")
		go sched.RunSnapshotNow()
	}

	log.Info().Int("port", cfg.Server.Port).Msg("FundScope is running")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutdown signal received, stopping")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("FundScope stopped")
}
