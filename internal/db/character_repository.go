package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/ms2go/internal/model"
)

// CharacterRepository управляет персонажами в БД.
type CharacterRepository struct {
	db *pgxpool.Pool
}

// NewCharacterRepository создаёт новый CharacterRepository.
func NewCharacterRepository(db *pgxpool.Pool) *CharacterRepository {
	return &CharacterRepository{db: db}
}

// LoadByID загружает персонажа по ID.
// Returns ErrCharacterNotFound if there is no such character.
func (r *CharacterRepository) LoadByID(ctx context.Context, characterID int64) (*model.Character, error) {
	query := `
		SELECT character_id, account_id, name, level, map_id, x, y, z
		FROM characters
		WHERE character_id = $1
	`

	c := &model.Character{}
	err := r.db.QueryRow(ctx, query, characterID).Scan(
		&c.ID, &c.AccountID, &c.Name, &c.Level, &c.MapID,
		&c.Position.X, &c.Position.Y, &c.Position.Z,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("character %d: %w", characterID, ErrCharacterNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading character %d: %w", characterID, err)
	}

	return c, nil
}

// Create inserts a new character and assigns its ID.
func (r *CharacterRepository) Create(ctx context.Context, c *model.Character) error {
	query := `
		INSERT INTO characters (account_id, name, level, map_id, x, y, z)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING character_id
	`

	err := r.db.QueryRow(ctx, query,
		c.AccountID, c.Name, c.Level, c.MapID,
		c.Position.X, c.Position.Y, c.Position.Z,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("creating character %q: %w", c.Name, err)
	}
	return nil
}

// SaveLocation stores the map and position a character left the game at.
func (r *CharacterRepository) SaveLocation(ctx context.Context, characterID int64, mapID int32, position model.Vector3) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE characters SET map_id = $2, x = $3, y = $4, z = $5
		WHERE character_id = $1`,
		characterID, mapID, position.X, position.Y, position.Z,
	)
	if err != nil {
		return fmt.Errorf("saving location of character %d: %w", characterID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("character %d: %w", characterID, ErrCharacterNotFound)
	}
	return nil
}

// TouchLastLogin sets last_login to now.
func (r *CharacterRepository) TouchLastLogin(ctx context.Context, characterID int64) error {
	_, err := r.db.Exec(ctx, `UPDATE characters SET last_login = $2 WHERE character_id = $1`, characterID, time.Now())
	if err != nil {
		return fmt.Errorf("updating last login of character %d: %w", characterID, err)
	}
	return nil
}
