// Command npcimport copies an NPC catalog file into the game database, so
// that the game server can run with data.npc_from_database.
//
// Usage:
//
//	go run ./cmd/npcimport -file data/npcs.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/udisondev/ms2go/internal/config"
	"github.com/udisondev/ms2go/internal/data"
	"github.com/udisondev/ms2go/internal/db"
)

func main() {
	file := flag.String("file", "", "npc catalog (.yaml or .yaml.zst); defaults to data.npc_file of the config")
	cfgPath := flag.String("config", config.ConfigPath("config/gameserver.yaml"), "game server config")
	flag.Parse()

	if err := run(context.Background(), *cfgPath, *file); err != nil {
		slog.Error("npc import failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfgPath, file string) error {
	cfg, err := config.LoadGameServer(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if file == "" {
		file = cfg.Data.NpcFile
	}

	catalog, err := data.LoadNpcMetadata(file)
	if err != nil {
		return err
	}

	database, err := db.New(ctx, cfg.Database.DSN())
	if err != nil {
		return err
	}
	defer database.Close()

	if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
		return err
	}

	repo := db.NewNpcMetadataRepository(database.Pool())
	ids := catalog.IDs()
	slices.Sort(ids)
	for _, id := range ids {
		npc, _ := catalog.TryGet(id)
		if err := repo.Save(ctx, npc); err != nil {
			return err
		}
	}

	fmt.Printf("imported %d npc templates from %s\n", len(ids), file)
	return nil
}
