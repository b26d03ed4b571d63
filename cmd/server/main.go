package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/openroom/chat-api/internal/config"
	"github.com/openroom/chat-api/internal/room"
	"github.com/openroom/chat-api/internal/server"
	"github.com/openroom/chat-api/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.SetOutput(os.Stdout)
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := store.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		logrus.WithError(err).Fatal("mongo connection failed")
	}

	participants := client.Participants()
	messages := client.Messages()

	registry := room.NewRegistry(participants)
	ledger := room.NewLedger(messages, participants)
	sweeper := room.NewSweeper(participants, messages, cfg.SweepInterval, cfg.StaleAfter)

	go sweeper.Run(ctx)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: server.New(registry, ledger),
	}

	go func() {
		<-ctx.Done()
		logrus.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logrus.WithError(err).Warn("http shutdown")
		}
		if err := client.Close(shutdownCtx); err != nil {
			logrus.WithError(err).Warn("mongo close")
		}
	}()

	logrus.WithFields(logrus.Fields{
		"listen_addr":    cfg.ListenAddr,
		"mongo_database": cfg.MongoDatabase,
		"sweep_interval": cfg.SweepInterval,
		"stale_after":    cfg.StaleAfter,
	}).Info("room-chat server starting")

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logrus.WithError(err).Fatal("server error")
	}
}
