package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/safety_heatmap/internal/models"
	"github.com/shenikar/safety_heatmap/internal/service"
)

const heatCellColumns = `geohash, score, incident_count, last_incident_at, color, percentile, latitude, longitude, updated_at`

type HeatCellRepository struct {
	db *pgxpool.Pool
}

func NewHeatCellRepository(db *pgxpool.Pool) service.HeatCellRepository {
	return &HeatCellRepository{db: db}
}

func scanHeatCell(row pgx.Row) (*models.HeatCell, error) {
	cell := &models.HeatCell{}
	err := row.Scan(
		&cell.Geohash,
		&cell.Score,
		&cell.IncidentCount,
		&cell.LastIncidentAt,
		&cell.Color,
		&cell.Percentile,
		&cell.Latitude,
		&cell.Longitude,
		&cell.UpdatedAt,
	)
	return cell, err
}

func collectHeatCells(rows pgx.Rows) ([]*models.HeatCell, error) {
	defer rows.Close()
	cells := make([]*models.HeatCell, 0)
	for rows.Next() {
		cell, err := scanHeatCell(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan heat cell row: %w", err)
		}
		cells = append(cells, cell)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return cells, nil
}

// Upsert перезаписывает агрегат ячейки. Цвет и перцентиль меняет только ApplyColors.
func (r *HeatCellRepository) Upsert(ctx context.Context, cell *models.HeatCell) error {
	query := `
		INSERT INTO heat_cells (geohash, score, incident_count, last_incident_at, latitude, longitude, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (geohash) DO UPDATE SET
			score = EXCLUDED.score,
			incident_count = EXCLUDED.incident_count,
			last_incident_at = EXCLUDED.last_incident_at,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			updated_at = EXCLUDED.updated_at
		RETURNING color, percentile;
	`
	err := r.db.QueryRow(ctx, query,
		cell.Geohash,
		cell.Score,
		cell.IncidentCount,
		cell.LastIncidentAt,
		cell.Latitude,
		cell.Longitude,
		cell.UpdatedAt,
	).Scan(&cell.Color, &cell.Percentile)
	if err != nil {
		return fmt.Errorf("failed to upsert heat cell: %w", err)
	}
	return nil
}

func (r *HeatCellRepository) Delete(ctx context.Context, geohash string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM heat_cells WHERE geohash = $1;`, geohash); err != nil {
		return fmt.Errorf("failed to delete heat cell: %w", err)
	}
	return nil
}

// ListNonZero возвращает все ячейки с положительным score
func (r *HeatCellRepository) ListNonZero(ctx context.Context) ([]*models.HeatCell, error) {
	rows, err := r.db.Query(ctx, `SELECT `+heatCellColumns+` FROM heat_cells WHERE score > 0;`)
	if err != nil {
		return nil, fmt.Errorf("failed to list heat cells: %w", err)
	}
	return collectHeatCells(rows)
}

func (r *HeatCellRepository) ListGeohashes(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT geohash FROM heat_cells;`)
	if err != nil {
		return nil, fmt.Errorf("failed to list heat cell geohashes: %w", err)
	}
	return collectStrings(rows)
}

// ListByPrefixes возвращает ячейки, geohash которых начинается с одного из префиксов
func (r *HeatCellRepository) ListByPrefixes(ctx context.Context, prefixes []string) ([]*models.HeatCell, error) {
	if len(prefixes) == 0 {
		return []*models.HeatCell{}, nil
	}
	patterns := make([]string, len(prefixes))
	for i, p := range prefixes {
		patterns[i] = strings.ToLower(p) + "%"
	}
	query := `SELECT ` + heatCellColumns + ` FROM heat_cells WHERE geohash LIKE ANY($1) AND score > 0;`
	rows, err := r.db.Query(ctx, query, patterns)
	if err != nil {
		return nil, fmt.Errorf("failed to query heat cells by prefix: %w", err)
	}
	return collectHeatCells(rows)
}

// ApplyColors записывает цвета и перцентили одной транзакцией: читатели видят либо старую, либо новую раскладку
func (r *HeatCellRepository) ApplyColors(ctx context.Context, cells []*models.HeatCell) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin rebalance transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	batch := &pgx.Batch{}
	for _, cell := range cells {
		batch.Queue(`UPDATE heat_cells SET color = $2, percentile = $3 WHERE geohash = $1;`,
			cell.Geohash, cell.Color, cell.Percentile)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to apply colors: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit rebalance: %w", err)
	}
	return nil
}
