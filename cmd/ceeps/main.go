package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Nick-Wu5/ceeps/internal/config"
	"github.com/Nick-Wu5/ceeps/internal/logger"
	"github.com/Nick-Wu5/ceeps/internal/metrics"
	"github.com/Nick-Wu5/ceeps/internal/service"
	"github.com/Nick-Wu5/ceeps/internal/storage"
	"github.com/Nick-Wu5/ceeps/internal/storage/memory"
	"github.com/Nick-Wu5/ceeps/internal/storage/postgres"
	"github.com/Nick-Wu5/ceeps/internal/storage/sqlite"
	"github.com/Nick-Wu5/ceeps/internal/tgbot"
	"github.com/Nick-Wu5/ceeps/internal/web"

	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "configs/server.toml", "path to the server config")
	flag.Parse()

	cfg, err := config.New(*configPath)
	if err != nil {
		return err
	}
	log := logger.New(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStorage(ctx, log, cfg.Storage)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.WithError(err).Error("closing storage")
		}
	}()

	m := metrics.NewRecorder()
	league := service.New(store, log, m, cfg.League)
	defer league.Close()
	if err := league.SeedRoster(ctx); err != nil {
		return fmt.Errorf("seed roster: %w", err)
	}

	if cfg.TgBot.Enabled {
		bot, err := tgbot.New(league, cfg.TgBot, log)
		if err != nil {
			return err
		}
		league.Subscribe(bot)
		go bot.Run(ctx)
		defer bot.Stop()
	}

	server := web.New(league, cfg.Server, log, m)
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info("shutting down")
	return errors.Join(server.Shutdown(shutdownTimeout), <-errCh)
}

func openStorage(ctx context.Context, log *logrus.Logger, cfg config.Storage) (storage.Storage, error) {
	log.WithField("driver", cfg.Driver).Info("opening storage")
	switch cfg.Driver {
	case config.DriverMemory:
		return memory.New(), nil
	case config.DriverSQLite:
		return sqlite.New(log, cfg)
	case config.DriverPostgres:
		return postgres.New(ctx, log, cfg)
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}
