package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/ms2go/internal/config"
	"github.com/udisondev/ms2go/internal/data"
	"github.com/udisondev/ms2go/internal/db"
	"github.com/udisondev/ms2go/internal/field"
	"github.com/udisondev/ms2go/internal/gameserver"
)

const GameConfigPath = "config/gameserver.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load config FIRST to determine log level
	cfgPath := config.ConfigPath(GameConfigPath)
	cfg, err := config.LoadGameServer(cfgPath)
	if err != nil {
		return fmt.Errorf("loading game config: %w", err)
	}

	logLevel, _ := cfg.SlogLevel()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	slog.Info("ms2go game server starting",
		"config", cfgPath,
		"log_level", cfg.LogLevel,
		"bind", cfg.Addr())

	// Connect to database
	database, err := db.New(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()
	slog.Info("database connected")

	if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database migrations applied")

	npcMetadata, err := loadNpcCatalog(ctx, cfg.Data, db.NewNpcMetadataRepository(database.Pool()))
	if err != nil {
		return err
	}

	maps, err := data.LoadMaps(cfg.Data.MapDir)
	if err != nil {
		return fmt.Errorf("loading maps: %w", err)
	}

	fields := field.NewManager(maps, npcMetadata, cfg.Field.EmptyFieldDelay,
		field.WithTickInterval(cfg.Field.TickInterval),
		field.WithItemLifetime(cfg.Field.ItemLifetime))
	defer fields.Shutdown()

	for _, mapID := range cfg.Field.PreloadMaps {
		if _, err := fields.GetOrCreate(mapID, 0); err != nil {
			slog.Warn("preloading field failed", "mapID", mapID, "error", err)
		}
	}
	slog.Info("fields preloaded", "count", fields.Count())

	gameServer := gameserver.NewServer(cfg, fields, db.NewCharacterRepository(database.Pool()))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("starting game server", "port", cfg.Port)
		if err := gameServer.Run(gctx); err != nil {
			return fmt.Errorf("game server: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// loadNpcCatalog loads the NPC catalog file and, if enabled, overlays the
// templates stored in the database.
func loadNpcCatalog(ctx context.Context, cfg config.DataConfig, repo *db.NpcMetadataRepository) (*data.NpcMetadataStorage, error) {
	catalog := data.NewNpcMetadataStorage()
	if cfg.NpcFile != "" {
		loaded, err := data.LoadNpcMetadata(cfg.NpcFile)
		if err != nil {
			return nil, fmt.Errorf("loading npc catalog: %w", err)
		}
		catalog = loaded
	}

	if cfg.NpcFromDatabase {
		npcs, err := repo.LoadAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading npc catalog from database: %w", err)
		}
		for _, npc := range npcs {
			catalog.Add(npc)
		}
		slog.Info("loaded NPC metadata from database", "count", len(npcs))
	}

	return catalog, nil
}
