package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/safety_heatmap/internal/models"
	"github.com/shenikar/safety_heatmap/internal/news"
)

const (
	newsStatusPending    = "pending"
	newsStatusReconciled = "reconciled"
)

type NewsRepository struct {
	db *pgxpool.Pool
}

func NewNewsRepository(db *pgxpool.Pool) news.Store {
	return &NewsRepository{db: db}
}

// Processed сообщает, что новость уже сверена или отброшена
func (r *NewsRepository) Processed(ctx context.Context, url string) (bool, error) {
	var processed bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM news_events WHERE url = $1 AND status <> $2);`,
		url, newsStatusPending,
	).Scan(&processed)
	if err != nil {
		return false, fmt.Errorf("failed to check news event: %w", err)
	}
	return processed, nil
}

// Register сохраняет новость; дубликат по url или dedup_key не вставляется
func (r *NewsRepository) Register(ctx context.Context, event *models.NewsEvent) (bool, error) {
	query := `
		INSERT INTO news_events (
			id, url, dedup_key, title, source, category, severity, description,
			location, country_code, published_at, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, ST_SetSRID(ST_MakePoint($9, $10), 4326), $11, $12, $13)
		ON CONFLICT DO NOTHING
		RETURNING id;
	`
	var id string
	err := r.db.QueryRow(ctx, query,
		event.ID,
		event.URL,
		event.DedupKey,
		event.Title,
		event.Source,
		event.Category,
		event.Severity,
		event.Description,
		event.Longitude,
		event.Latitude,
		event.CountryCode,
		event.Date,
		newsStatusPending,
	).Scan(&id)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return false, fmt.Errorf("failed to register news event: %w", err)
	}

	// Конфликт: повторная регистрация той же несверенной новости разрешена
	var existingID, status string
	err = r.db.QueryRow(ctx,
		`SELECT id, status FROM news_events WHERE url = $1 OR dedup_key = $2 ORDER BY (id = $3) DESC LIMIT 1;`,
		event.URL, event.DedupKey, event.ID,
	).Scan(&existingID, &status)
	if err != nil {
		return false, fmt.Errorf("failed to look up conflicting news event: %w", err)
	}
	return existingID == event.ID && status == newsStatusPending, nil
}

func (r *NewsRepository) MarkReconciled(ctx context.Context, newsID string, incidentID uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE news_events SET status = $2, incident_id = $3, reconciled_at = NOW() WHERE id = $1;`,
		newsID, newsStatusReconciled, incidentID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark news event reconciled: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("news event %s: %w", newsID, models.ErrNotFound)
	}
	return nil
}

// MarkSkipped запоминает отброшенную новость, чтобы не классифицировать ее повторно
func (r *NewsRepository) MarkSkipped(ctx context.Context, article news.Article, reason string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO news_events (id, url, title, source, published_at, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT DO NOTHING;
	`, article.ID, article.URL, article.Title, article.Source, article.PublishedAt, reason)
	if err != nil {
		return fmt.Errorf("failed to mark news event skipped: %w", err)
	}
	return nil
}
