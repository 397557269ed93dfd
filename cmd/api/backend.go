package main

import (
	"context"
	"fmt"

	"medistock/internal/adapters/storage/file"
	"medistock/internal/adapters/storage/memory"
	pg "medistock/internal/adapters/storage/postgres"
	"medistock/internal/adapters/suggest/gemini"
	"medistock/internal/adapters/suggest/remote"
	"medistock/internal/config"
	"medistock/internal/domain/suggestions"
	"medistock/internal/router"
)

// openBackend abre el almacenamiento configurado. close libera la conexión o el store.
func openBackend(ctx context.Context, cfg *config.Config) (b router.Backend, closeFn func() error, err error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := pg.Open(cfg.DBDSN)
		if err != nil {
			return router.Backend{}, nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := pg.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return router.Backend{}, nil, err
		}
		return router.Backend{
			Doctors:  pg.NewDoctorsRepo(db),
			Products: pg.NewProductsRepo(db),
			Ledger:   pg.NewLedgerStore(db),
		}, db.Close, nil

	case config.StorageFile:
		s, err := file.Open(cfg.DataDir)
		if err != nil {
			return router.Backend{}, nil, fmt.Errorf("open data dir: %w", err)
		}
		return memoryBackend(s), s.Close, nil

	default:
		s := memory.New()
		return memoryBackend(s), s.Close, nil
	}
}

func memoryBackend(s *memory.Store) router.Backend {
	return router.Backend{Doctors: s.Doctors(), Products: s.Products(), Ledger: s}
}

// newSuggester devuelve nil si no hay proveedor configurado.
func newSuggester(ctx context.Context, cfg *config.Config) (suggestions.Suggester, error) {
	switch cfg.SuggestionsProvider {
	case config.SuggestionsGemini:
		return gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	case config.SuggestionsRemote:
		return remote.New(cfg.SuggestionsURL, cfg.SuggestionsToken, cfg.SuggestionsTimeout)
	default:
		return nil, nil
	}
}
