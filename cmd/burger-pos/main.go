package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"burger-pos/internal/app/pos"
	"burger-pos/internal/checkout"
	"burger-pos/internal/common/config"
	"burger-pos/internal/common/db"
	"burger-pos/internal/common/logger"
	"burger-pos/internal/common/mq"
	"burger-pos/internal/notify"
	"burger-pos/internal/pickup"
)

func main() {
	cfgPath := flag.String("config", "", "path to config.yaml (optional)")
	flag.Parse()

	lg := logger.New("burger-pos")
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		lg.Error("config_load", err, nil)
		os.Exit(1)
	}

	sink, cleanup, err := buildSink(ctx, cfg, lg)
	if err != nil {
		lg.Error("pickup_sink_init", err, nil)
		os.Exit(1)
	}
	defer cleanup()

	notifier, mqCleanup, err := buildNotifier(cfg, lg)
	if err != nil {
		lg.Error("rabbitmq_init", err, nil)
		os.Exit(1)
	}
	defer mqCleanup()

	lg.Info("service_started", map[string]any{
		"postgres_sink": cfg.Database.Enabled(),
		"rabbitmq":      cfg.Rabbit.Enabled(),
		"pickup_dir":    cfg.Pickup.Directory,
	})
	if err := pos.New(sink, notifier, lg).Run(ctx); err != nil {
		lg.Error("fatal", err, nil)
		os.Exit(1)
	}
}

func loadConfig(path string) (config.App, error) {
	if path == "" {
		found, err := config.FindConfig()
		if errors.Is(err, fs.ErrNotExist) {
			return config.Default(), nil
		}
		path = found
	}
	return config.Load(path)
}

func buildSink(ctx context.Context, cfg config.App, lg *logger.Logger) (checkout.PickupSink, func(), error) {
	if !cfg.Database.Enabled() {
		return pickup.NewFileSink(cfg.Pickup.Directory), func() {}, nil
	}
	conn, err := db.Connect(ctx, cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Pass, cfg.Database.Name)
	if err != nil {
		return nil, nil, err
	}
	sink, err := pickup.NewPostgresSink(ctx, conn)
	if err != nil {
		conn.Close()
		return nil, nil, err
	}
	lg.Info("postgres_connected", map[string]any{"host": cfg.Database.Host})
	return sink, conn.Close, nil
}

func buildNotifier(cfg config.App, lg *logger.Logger) (checkout.Notifier, func(), error) {
	if !cfg.Rabbit.Enabled() {
		return checkout.NopNotifier{}, func() {}, nil
	}
	client, err := mq.Dial(cfg.Rabbit.Host, cfg.Rabbit.Port, cfg.Rabbit.User, cfg.Rabbit.Pass)
	if err != nil {
		return nil, nil, err
	}
	if err := client.DeclareAll(); err != nil {
		client.Close()
		return nil, nil, err
	}
	lg.Info("rabbitmq_connected", map[string]any{"host": cfg.Rabbit.Host})
	return notify.NewPublisher(client), client.Close, nil
}
