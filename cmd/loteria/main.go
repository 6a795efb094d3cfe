package main

import (
	"os"

	"github.com/pterm/pterm"
	"go.uber.org/zap"

	"loteria/internal/config"
	"loteria/internal/session"
	"loteria/internal/storage"
)

func main() {
	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.Dev)
	if err != nil {
		pterm.Error.Printfln("init logger: %v", err)
		os.Exit(1)
	}
	defer logger.Sync()

	opts := []session.Option{session.WithLogger(logger)}
	if cfg.DBPath != "" {
		store, err := storage.New(cfg.DBPath)
		if err != nil {
			pterm.Error.Printfln("open database %s: %v", cfg.DBPath, err)
			os.Exit(1)
		}
		defer store.Close()
		opts = append(opts, session.WithStore(store))
	}

	table, err := session.New(session.Config{MaxPlayers: cfg.MaxPlayers, BoardSize: cfg.BoardSize}, opts...)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	r := newREPL(table, os.Stdout)
	if err := r.run(os.Stdin); err != nil {
		pterm.Error.Println(err)
	}
}

// newLogger builds the development logger in dev mode and otherwise the
// production logger raised to warn, so routine game logs stay off the prompt.
func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}
