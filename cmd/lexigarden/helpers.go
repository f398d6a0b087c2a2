package main

import (
	"fmt"

	"github.com/lexigarden/lexigarden/internal/chunk"
	"github.com/lexigarden/lexigarden/internal/config"
	"github.com/lexigarden/lexigarden/internal/database"
	"github.com/lexigarden/lexigarden/internal/garden"
	"github.com/lexigarden/lexigarden/internal/service"
	"github.com/lexigarden/lexigarden/internal/srs"
	"github.com/lexigarden/lexigarden/internal/store"
	"github.com/lexigarden/lexigarden/internal/store/pocketbase"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// stores bundles the persistence ports behind the configured backend.
type stores struct {
	chunks store.UserChunkStore
	trees  store.UserTreeStore
	logs   store.ReviewLogStore
	close  func() error
}

func openStores(cfg *config.Config) (*stores, error) {
	switch cfg.Store.Backend {
	case "mysql":
		db, err := database.Open(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("database.Open() > %w", err)
		}
		return &stores{
			chunks: store.NewDBUserChunkRepository(db),
			trees:  store.NewDBUserTreeRepository(db),
			logs:   store.NewDBReviewLogRepository(db),
			close:  db.Close,
		}, nil
	case "pocketbase":
		if cfg.PocketBase.URL == "" {
			return nil, fmt.Errorf("pocketbase.url is required when store.backend is %q", cfg.Store.Backend)
		}
		client := pocketbase.NewClient(cfg.PocketBase.URL, cfg.PocketBase.Token, cfg.PocketBase.RetryAttempts)
		return &stores{
			chunks: pocketbase.NewUserChunkRepository(client),
			trees:  pocketbase.NewUserTreeRepository(client),
			logs:   pocketbase.NewReviewLogRepository(client),
			close:  func() error { return nil },
		}, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func buildServices(cfg *config.Config, st *stores) (*service.ReviewService, *service.GardenService) {
	scheduler := srs.NewScheduler(srs.Config{
		FailurePenalty:          cfg.SRS.FailurePenalty,
		AcquisitionRepetitions:  cfg.SRS.AcquisitionRepetitions,
		AcquisitionEase:         cfg.SRS.AcquisitionEase,
		MaxIntervalDays:         cfg.SRS.MaxIntervalDays,
		ConfidenceSmoothing:     cfg.SRS.ConfidenceSmoothing,
		ConfidenceRecencyWeight: cfg.SRS.ConfidenceRecencyWeight,
	})
	engine := garden.NewEngine(garden.Config{
		DecayPerDay:        cfg.Garden.DecayPerDay,
		LowHealthThreshold: cfg.Garden.LowHealthThreshold,
		GraceDays:          cfg.Garden.GraceDays,
	})
	reviews := service.NewReviewService(st.chunks, st.logs, scheduler, nil)
	gardens := service.NewGardenService(st.trees, engine, nil)
	return reviews, gardens
}

func loadCatalog(cfg *config.Config) (*chunk.Catalog, error) {
	catalog, err := chunk.NewCatalog(cfg.Chunks.PackDirectories)
	if err != nil {
		return nil, fmt.Errorf("chunk.NewCatalog() > %w", err)
	}
	return catalog, nil
}
