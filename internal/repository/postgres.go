package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Kose-dev-T/line-weather-bot-final/internal/models"
)

// Repository persists per-user conversation state and resolved locations in
// PostgreSQL. State tokens are opaque strings here; the engine owns their
// meaning. Writes are plain upserts: last write wins, no optimistic locking.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a PostgreSQL repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// InitSchema creates the users table if it does not exist.
func (r *Repository) InitSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			user_id      TEXT PRIMARY KEY,
			state        TEXT NOT NULL DEFAULT '',
			display_name TEXT,
			station_code TEXT,
			latitude     DOUBLE PRECISION,
			longitude    DOUBLE PRECISION,
			updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return fmt.Errorf("repository: create users table: %w", err)
	}
	return nil
}

// GetState returns the stored conversation state token for a user. An
// unknown user reads as the empty token.
func (r *Repository) GetState(ctx context.Context, userID string) (string, error) {
	var state string
	err := r.db.QueryRow(ctx, "SELECT state FROM users WHERE user_id = $1", userID).Scan(&state)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("repository: get state: %w", err)
	}
	return state, nil
}

// SetState stores the conversation state token for a user.
func (r *Repository) SetState(ctx context.Context, userID, token string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (user_id, state, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (user_id) DO UPDATE SET state = $2, updated_at = now()
	`, userID, token)
	if err != nil {
		return fmt.Errorf("repository: set state: %w", err)
	}
	return nil
}

// SetLocation stores a user's resolved location and clears any in-flight
// conversation state in the same write.
func (r *Repository) SetLocation(ctx context.Context, userID string, loc models.ResolvedLocation) error {
	var (
		code     *string
		lat, lon *float64
	)
	if loc.HasStationCode() {
		code = &loc.StationCode
	} else {
		lat = &loc.Latitude
		lon = &loc.Longitude
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO users (user_id, state, display_name, station_code, latitude, longitude, updated_at)
		VALUES ($1, '', $2, $3, $4, $5, now())
		ON CONFLICT (user_id) DO UPDATE SET
			state = '', display_name = $2, station_code = $3,
			latitude = $4, longitude = $5, updated_at = now()
	`, userID, loc.DisplayName, code, lat, lon)
	if err != nil {
		return fmt.Errorf("repository: set location: %w", err)
	}
	return nil
}

// GetLocation returns a user's resolved location, or nil when none is
// registered.
func (r *Repository) GetLocation(ctx context.Context, userID string) (*models.ResolvedLocation, error) {
	var (
		name     *string
		code     *string
		lat, lon *float64
	)
	err := r.db.QueryRow(ctx,
		"SELECT display_name, station_code, latitude, longitude FROM users WHERE user_id = $1",
		userID,
	).Scan(&name, &code, &lat, &lon)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("repository: get location: %w", err)
	}
	return buildLocation(name, code, lat, lon), nil
}

// ListUsersWithLocation returns every user who has a resolved location, for
// the daily notifier.
func (r *Repository) ListUsersWithLocation(ctx context.Context) ([]models.UserLocation, error) {
	rows, err := r.db.Query(ctx, `
		SELECT user_id, display_name, station_code, latitude, longitude
		FROM users
		WHERE station_code IS NOT NULL OR latitude IS NOT NULL
		ORDER BY user_id
	`)
	if err != nil {
		return nil, fmt.Errorf("repository: list users with location: %w", err)
	}
	defer rows.Close()

	var users []models.UserLocation
	for rows.Next() {
		var (
			userID   string
			name     *string
			code     *string
			lat, lon *float64
		)
		if err := rows.Scan(&userID, &name, &code, &lat, &lon); err != nil {
			return nil, fmt.Errorf("repository: scan user location: %w", err)
		}
		loc := buildLocation(name, code, lat, lon)
		if loc == nil {
			continue
		}
		users = append(users, models.UserLocation{UserID: userID, Location: *loc})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: iterate user locations: %w", err)
	}
	return users, nil
}

// ListUsersWithoutLocation returns users who interacted with the bot but
// never finished registering a location.
func (r *Repository) ListUsersWithoutLocation(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT user_id FROM users
		WHERE station_code IS NULL AND latitude IS NULL
		ORDER BY user_id
	`)
	if err != nil {
		return nil, fmt.Errorf("repository: list users without location: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("repository: scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: iterate user ids: %w", err)
	}
	return ids, nil
}

func buildLocation(name, code *string, lat, lon *float64) *models.ResolvedLocation {
	if code == nil && (lat == nil || lon == nil) {
		return nil
	}
	loc := &models.ResolvedLocation{}
	if name != nil {
		loc.DisplayName = *name
	}
	if code != nil {
		loc.StationCode = *code
		return loc
	}
	loc.Latitude = *lat
	loc.Longitude = *lon
	return loc
}
