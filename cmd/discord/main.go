// cmd/discord/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/keshon/styrobot/internal/bot"
	"github.com/keshon/styrobot/internal/config"
	"github.com/keshon/styrobot/internal/discord"
	"github.com/keshon/styrobot/internal/storage"
	v "github.com/keshon/styrobot/internal/version"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	cfg.SetupLogging()
	log.Infof("Starting %v bot...", v.AppName)

	if err := cfg.RequireToken(); err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := storage.New(cfg.StoragePath)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.WithError(err).Error("failed to flush storage")
		}
	}()

	dbot, err := discord.New(cfg.DiscordToken, cfg.SendRate, log.StandardLogger())
	if err != nil {
		log.Fatal(err)
	}
	router, err := bot.NewRouter(cfg, store, log.StandardLogger(), dbot.Latency)
	if err != nil {
		log.Fatal(err)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := dbot.Run(ctx, router); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Infof("Received signal %s, shutting down...", s)
		cancel()
		<-errCh
	case err := <-errCh:
		if err != nil {
			log.WithError(err).Error("Discord bot error")
		}
		cancel()
	}

	log.Info("Discord bot exited cleanly")
}
