package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/shenikar/safety_heatmap/internal/models"
	"github.com/shenikar/safety_heatmap/internal/service"
)

const neighborhoodColumns = `id, name, ST_AsGeoJSON(boundary), incident_count, average_color, last_incident_at, updated_at`

type NeighborhoodRepository struct {
	db *pgxpool.Pool
}

func NewNeighborhoodRepository(db *pgxpool.Pool) service.NeighborhoodRepository {
	return &NeighborhoodRepository{db: db}
}

func scanNeighborhood(row pgx.Row) (*models.Neighborhood, error) {
	n := &models.Neighborhood{}
	var boundary []byte
	if err := row.Scan(&n.ID, &n.Name, &boundary, &n.IncidentCount, &n.AverageColor, &n.LastIncidentAt, &n.UpdatedAt); err != nil {
		return nil, err
	}
	geometry, err := geojson.UnmarshalGeometry(boundary)
	if err != nil {
		return nil, fmt.Errorf("failed to decode boundary of %s: %w", n.Name, err)
	}
	switch g := geometry.Geometry().(type) {
	case orb.MultiPolygon:
		n.Boundary = g
	case orb.Polygon:
		n.Boundary = orb.MultiPolygon{g}
	}
	return n, nil
}

func (r *NeighborhoodRepository) List(ctx context.Context) ([]*models.Neighborhood, error) {
	rows, err := r.db.Query(ctx, `SELECT `+neighborhoodColumns+` FROM neighborhoods ORDER BY name;`)
	if err != nil {
		return nil, fmt.Errorf("failed to list neighborhoods: %w", err)
	}
	defer rows.Close()

	neighborhoods := make([]*models.Neighborhood, 0)
	for rows.Next() {
		n, err := scanNeighborhood(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan neighborhood row: %w", err)
		}
		neighborhoods = append(neighborhoods, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return neighborhoods, nil
}

func (r *NeighborhoodRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Neighborhood, error) {
	n, err := scanNeighborhood(r.db.QueryRow(ctx, `SELECT `+neighborhoodColumns+` FROM neighborhoods WHERE id = $1;`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("neighborhood with id %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get neighborhood: %w", err)
	}
	return n, nil
}

// UpdateRollup сохраняет агрегаты района, полигон не меняется
func (r *NeighborhoodRepository) UpdateRollup(ctx context.Context, n *models.Neighborhood) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE neighborhoods SET
			incident_count = $2,
			average_color = $3,
			last_incident_at = $4,
			updated_at = $5
		WHERE id = $1;
	`, n.ID, n.IncidentCount, n.AverageColor, n.LastIncidentAt, n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update neighborhood rollup: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("neighborhood with id %s: %w", n.ID, models.ErrNotFound)
	}
	return nil
}

// UpsertBoundary создает район или заменяет его имя и полигон
func (r *NeighborhoodRepository) UpsertBoundary(ctx context.Context, n *models.Neighborhood) error {
	boundary, err := geojson.NewGeometry(n.Boundary).MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode boundary: %w", err)
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO neighborhoods (id, name, boundary, updated_at)
		VALUES ($1, $2, ST_Multi(ST_SetSRID(ST_GeomFromGeoJSON($3), 4326)), $4)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			boundary = EXCLUDED.boundary,
			updated_at = EXCLUDED.updated_at;
	`, n.ID, n.Name, string(boundary), n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert neighborhood: %w", err)
	}
	return nil
}
