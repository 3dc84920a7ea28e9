package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/apps/go-server/internal/config"
	"github.com/robalobadob/hangman/apps/go-server/internal/httpserver"
	"github.com/robalobadob/hangman/apps/go-server/internal/store"
	"github.com/robalobadob/hangman/apps/go-server/internal/words"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)

	st, closeStore, err := openStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("failed to open game store")
	}

	src, err := words.NewFixed(cfg.Word)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid secret word")
	}

	srv := httpserver.New(st, src, httpserver.Options{
		ClientOrigin:   cfg.ClientOrigin,
		RequestTimeout: cfg.RequestTimeout,
	})
	log.Info().Str("port", cfg.Port).Str("store", cfg.StoreDriver).Msg("starting hangman server")
	if err := srv.Start(cfg.Addr()); err != nil {
		log.Error().Err(err).Msg("server exited")
		closeStore()
		os.Exit(1)
	}
}

// openStore builds the configured game store and a func releasing it.
func openStore(cfg config.Config) (store.Store, func(), error) {
	if cfg.StoreDriver == config.DriverSQLite {
		s, err := store.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("path", cfg.DBPath).Msg("sqlite game store ready")
		return s, func() {
			if err := s.Close(); err != nil {
				log.Warn().Err(err).Msg("close sqlite store")
			}
		}, nil
	}
	return store.NewMemoryStore(), func() {}, nil
}
