package main

import (
	"context"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/TouhidPavel/Project-CRUD/config"
	"github.com/TouhidPavel/Project-CRUD/internal/bootstrap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	log := config.NewLogger(cfg.App.LogLevel)
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// No retry: a storage we cannot reach at startup is fatal.
	store, err := bootstrap.OpenStore(ctx, bootstrap.StoreOptions{
		URI:       cfg.Database.URI,
		Database:  cfg.Database.Name,
		ConnectTO: cfg.Database.ConnectTimeout,
	})
	if err != nil {
		log.WithField("reason", err.Error()).Fatal("Database Connection Failed!")
	}
	log.Info("Database Connection Success!")

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    cfg.App.Name,
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Store:          store,
		Logger:         log,
	})

	srv := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ln, err := net.Listen("tcp", ":"+cfg.Server.Port)
	if err != nil {
		_ = store.Close(context.Background())
		log.WithError(err).Fatal("listen failed")
	}
	log.Infof("Server Running at http://localhost:%s", cfg.Server.Port)

	serveErr := bootstrap.Serve(ctx, srv, ln, log)

	closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Close(closeCtx); err != nil {
		log.WithError(err).Error("database close error")
	}
	if serveErr != nil {
		log.WithError(serveErr).Fatal("server error")
	}
	log.Info("server stopped")
}
