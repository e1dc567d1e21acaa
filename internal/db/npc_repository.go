package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/ms2go/internal/model"
)

// NpcMetadataRepository handles NPC catalog rows.
type NpcMetadataRepository struct {
	pool *pgxpool.Pool
}

// NewNpcMetadataRepository creates a new NPC metadata repository.
func NewNpcMetadataRepository(pool *pgxpool.Pool) *NpcMetadataRepository {
	return &NpcMetadataRepository{pool: pool}
}

// LoadAll loads every NPC template together with its tags (sorted).
func (r *NpcMetadataRepository) LoadAll(ctx context.Context) ([]*model.NpcMetadata, error) {
	query := `
		SELECT m.npc_id, m.name, m.model, m.level, m.hp, m.corpse_time,
		       COALESCE(array_agg(t.tag ORDER BY t.tag) FILTER (WHERE t.tag IS NOT NULL), '{}')
		FROM npc_metadata m
		LEFT JOIN npc_tags t ON t.npc_id = m.npc_id
		GROUP BY m.npc_id
		ORDER BY m.npc_id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("loading npc metadata: %w", err)
	}
	defer rows.Close()

	var npcs []*model.NpcMetadata
	for rows.Next() {
		npc := &model.NpcMetadata{}
		if err := rows.Scan(&npc.ID, &npc.Name, &npc.Model, &npc.Level, &npc.HP, &npc.CorpseTime, &npc.Tags); err != nil {
			return nil, fmt.Errorf("scanning npc metadata: %w", err)
		}
		npcs = append(npcs, npc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating npc metadata: %w", err)
	}

	return npcs, nil
}

// Save inserts or replaces a template and its tag set in one transaction.
func (r *NpcMetadataRepository) Save(ctx context.Context, npc *model.NpcMetadata) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction for npc %d: %w", npc.ID, err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	_, err = tx.Exec(ctx, `
		INSERT INTO npc_metadata (npc_id, name, model, level, hp, corpse_time)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (npc_id) DO UPDATE SET
			name = EXCLUDED.name,
			model = EXCLUDED.model,
			level = EXCLUDED.level,
			hp = EXCLUDED.hp,
			corpse_time = EXCLUDED.corpse_time`,
		npc.ID, npc.Name, npc.Model, npc.Level, npc.HP, npc.CorpseTime,
	)
	if err != nil {
		return fmt.Errorf("saving npc %d: %w", npc.ID, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM npc_tags WHERE npc_id = $1`, npc.ID); err != nil {
		return fmt.Errorf("clearing tags of npc %d: %w", npc.ID, err)
	}

	if len(npc.Tags) > 0 {
		batch := &pgx.Batch{}
		for _, tag := range npc.Tags {
			batch.Queue(`INSERT INTO npc_tags (npc_id, tag) VALUES ($1, $2) ON CONFLICT DO NOTHING`, npc.ID, tag)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("saving tags of npc %d: %w", npc.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit npc %d: %w", npc.ID, err)
	}
	return nil
}
