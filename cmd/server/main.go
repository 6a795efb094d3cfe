package main

import (
	"io/fs"
	"log"
	"net/http"

	"go.uber.org/zap"

	"loteria"
	"loteria/internal/config"
	"loteria/internal/server"
	"loteria/internal/session"
	"loteria/internal/storage"
)

func main() {
	cfg := config.FromEnv()
	if cfg.DBPath == "" {
		cfg.DBPath = config.DefaultDBPath
	}

	logger, err := newLogger(cfg.Dev)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	store, err := storage.New(cfg.DBPath)
	if err != nil {
		logger.Fatal("open database", zap.String("path", cfg.DBPath), zap.Error(err))
	}
	defer store.Close()

	table, err := session.New(session.Config{MaxPlayers: cfg.MaxPlayers, BoardSize: cfg.BoardSize},
		session.WithStore(store), session.WithLogger(logger.Named("table")))
	if err != nil {
		logger.Fatal("create table", zap.Error(err))
	}

	webFS, err := fs.Sub(loteria.WebFS, "web")
	if err != nil {
		logger.Fatal("web assets", zap.Error(err))
	}
	srv := server.New(table, webFS, logger.Named("http"))

	logger.Info("listening", zap.String("addr", cfg.Addr),
		zap.Int("maxPlayers", cfg.MaxPlayers), zap.Int("boardSize", cfg.BoardSize))
	if err := http.ListenAndServe(cfg.Addr, srv); err != nil {
		logger.Fatal("server", zap.Error(err))
	}
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
