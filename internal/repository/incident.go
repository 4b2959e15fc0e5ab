package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/safety_heatmap/internal/models"
	"github.com/shenikar/safety_heatmap/internal/service"
)

const incidentCacheTTL = 5 * time.Minute

const incidentColumns = `
	id,
	type,
	severity,
	description,
	ST_Y(location::geometry) AS latitude,
	ST_X(location::geometry) AS longitude,
	geohash,
	neighborhood_id,
	status,
	hidden,
	reporter_id,
	reporter_reputation,
	validation_score,
	validation_count,
	vote_weight,
	source_news,
	created_at,
	updated_at`

const countableFilter = `status IN ('verified', 'auto_verified') AND NOT hidden`

type IncidentRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
}

func NewIncidentRepository(db *pgxpool.Pool, redisClient *redis.Client) service.IncidentRepository {
	return &IncidentRepository{
		db:          db,
		redisClient: redisClient,
	}
}

func scanIncident(row pgx.Row) (*models.Incident, error) {
	incident := &models.Incident{}
	var sourceNews []byte
	err := row.Scan(
		&incident.ID,
		&incident.Type,
		&incident.Severity,
		&incident.Description,
		&incident.Latitude,
		&incident.Longitude,
		&incident.Geohash,
		&incident.NeighborhoodID,
		&incident.Status,
		&incident.Hidden,
		&incident.ReporterID,
		&incident.ReporterRep,
		&incident.Score,
		&incident.Count,
		&incident.VoteWeight,
		&sourceNews,
		&incident.CreatedAt,
		&incident.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(sourceNews) > 0 {
		if err := json.Unmarshal(sourceNews, &incident.SourceNews); err != nil {
			return nil, fmt.Errorf("failed to decode source_news: %w", err)
		}
	}
	return incident, nil
}

func collectIncidents(rows pgx.Rows, op string) ([]*models.Incident, error) {
	defer rows.Close()
	incidents := make([]*models.Incident, 0)
	for rows.Next() {
		incident, err := scanIncident(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan incident row in %s: %w", op, err)
		}
		incidents = append(incidents, incident)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration in %s: %w", op, err)
	}
	return incidents, nil
}

// Create создает новую запись об инциденте в бд
func (r *IncidentRepository) Create(ctx context.Context, incident *models.Incident) error {
	if incident.SourceNews == nil {
		incident.SourceNews = []models.SourceNewsRef{}
	}
	sourceNews, err := json.Marshal(incident.SourceNews)
	if err != nil {
		return fmt.Errorf("failed to encode source_news: %w", err)
	}

	query := `
		INSERT INTO incidents (
			type, severity, description, location, geohash, neighborhood_id, status, hidden,
			reporter_id, reporter_reputation, validation_score, validation_count, vote_weight,
			source_news, created_at
		)
		VALUES ($1, $2, $3, ST_SetSRID(ST_MakePoint($4, $5), 4326), $6, $7, $8, $9, $10, $11, $12, $13, $14, $15::jsonb, $16)
		RETURNING id, updated_at;
	`
	err = r.db.QueryRow(ctx, query,
		incident.Type,
		incident.Severity,
		incident.Description,
		incident.Longitude,
		incident.Latitude,
		incident.Geohash,
		incident.NeighborhoodID,
		incident.Status,
		incident.Hidden,
		incident.ReporterID,
		incident.ReporterRep,
		incident.Score,
		incident.Count,
		incident.VoteWeight,
		string(sourceNews),
		incident.CreatedAt,
	).Scan(&incident.ID, &incident.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create incident: %w", err)
	}
	return nil
}

// GetByID возвращает инцидент по его UUID
func (r *IncidentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	query := `SELECT ` + incidentColumns + ` FROM incidents WHERE id = $1;`
	incident, err := scanIncident(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("incident with id %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get incident by id: %w", err)
	}
	return incident, nil
}

// CastVote в одной транзакции блокирует строку инцидента, применяет голос и сохраняет его
func (r *IncidentRepository) CastVote(ctx context.Context, validation *models.Validation, apply func(incident *models.Incident) error) (*models.Incident, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to begin vote transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	query := `SELECT ` + incidentColumns + ` FROM incidents WHERE id = $1 FOR UPDATE;`
	incident, err := scanIncident(tx.QueryRow(ctx, query, validation.IncidentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("incident with id %s: %w", validation.IncidentID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to lock incident: %w", err)
	}

	var voted bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM validations WHERE incident_id = $1 AND validator_id = $2);`,
		validation.IncidentID, validation.ValidatorID,
	).Scan(&voted)
	if err != nil {
		return nil, fmt.Errorf("failed to check previous vote: %w", err)
	}
	if voted {
		return nil, models.ErrAlreadyVoted
	}

	if err := apply(incident); err != nil {
		return nil, err
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO validations (incident_id, validator_id, vote, confidence, validator_reputation, created_at)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id;
	`,
		validation.IncidentID,
		validation.ValidatorID,
		int(validation.Vote),
		validation.Confidence,
		validation.ValidatorRep,
		validation.CreatedAt,
	).Scan(&validation.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, models.ErrAlreadyVoted
		}
		return nil, fmt.Errorf("failed to save validation: %w", err)
	}

	err = tx.QueryRow(ctx, `
		UPDATE incidents SET
			status = $1,
			validation_score = $2,
			validation_count = $3,
			vote_weight = $4,
			updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at;
	`,
		incident.Status,
		incident.Score,
		incident.Count,
		incident.VoteWeight,
		incident.ID,
	).Scan(&incident.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to update incident consensus: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit vote: %w", err)
	}
	return incident, nil
}

// SetHidden переключает флаг модерации
func (r *IncidentRepository) SetHidden(ctx context.Context, id uuid.UUID, hidden bool) (*models.Incident, error) {
	query := `
		UPDATE incidents SET
			hidden = $2,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + incidentColumns + `;`
	incident, err := scanIncident(r.db.QueryRow(ctx, query, id, hidden))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("incident with id %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to set hidden flag: %w", err)
	}
	return incident, nil
}

// SetNeighborhood сохраняет привязку инцидента к району
func (r *IncidentRepository) SetNeighborhood(ctx context.Context, id uuid.UUID, neighborhoodID *uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE incidents SET neighborhood_id = $2, updated_at = NOW() WHERE id = $1;`,
		id, neighborhoodID,
	)
	if err != nil {
		return fmt.Errorf("failed to set neighborhood: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("incident with id %s: %w", id, models.ErrNotFound)
	}
	return nil
}

// AppendSourceNews атомарно добавляет новость в source_news, если ее там еще нет
func (r *IncidentRepository) AppendSourceNews(ctx context.Context, id uuid.UUID, ref models.SourceNewsRef) (bool, error) {
	payload, err := json.Marshal(ref)
	if err != nil {
		return false, fmt.Errorf("failed to encode source news: %w", err)
	}

	query := `
		UPDATE incidents SET
			source_news = source_news || jsonb_build_array($2::jsonb),
			updated_at = NOW()
		WHERE id = $1
			AND NOT source_news @> jsonb_build_array(jsonb_build_object('news_id', $3::text));
	`
	cmdTag, err := r.db.Exec(ctx, query, id, string(payload), ref.NewsID)
	if err != nil {
		return false, fmt.Errorf("failed to append source news: %w", err)
	}
	if cmdTag.RowsAffected() > 0 {
		return true, nil
	}

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM incidents WHERE id = $1);`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check incident: %w", err)
	}
	if !exists {
		return false, fmt.Errorf("incident with id %s: %w", id, models.ErrNotFound)
	}
	return false, nil
}

// FindRecentByType находит инциденты того же типа не старше since в радиусе от точки, ближайшие первыми
func (r *IncidentRepository) FindRecentByType(ctx context.Context, incidentType models.IncidentType, since time.Time, lat, lon, radiusMeters float64) ([]*models.Incident, error) {
	query := `
		SELECT ` + incidentColumns + `
		FROM incidents
		WHERE
			type = $1
			AND created_at >= $2
			AND ST_DWithin(location, ST_SetSRID(ST_MakePoint($3, $4), 4326)::geography, $5)
		ORDER BY ST_Distance(location, ST_SetSRID(ST_MakePoint($3, $4), 4326)::geography);
	`
	rows, err := r.db.Query(ctx, query, incidentType, since, lon, lat, radiusMeters)
	if err != nil {
		return nil, fmt.Errorf("failed to find recent incidents: %w", err)
	}
	return collectIncidents(rows, "FindRecentByType")
}

// ListCountableByGeohash возвращает учитываемые инциденты ячейки
func (r *IncidentRepository) ListCountableByGeohash(ctx context.Context, geohash string) ([]*models.Incident, error) {
	query := `SELECT ` + incidentColumns + ` FROM incidents WHERE geohash = $1 AND ` + countableFilter + `;`
	rows, err := r.db.Query(ctx, query, geohash)
	if err != nil {
		return nil, fmt.Errorf("failed to list incidents by geohash: %w", err)
	}
	return collectIncidents(rows, "ListCountableByGeohash")
}

// ListCountableByNeighborhood возвращает учитываемые инциденты района
func (r *IncidentRepository) ListCountableByNeighborhood(ctx context.Context, neighborhoodID uuid.UUID) ([]*models.Incident, error) {
	query := `SELECT ` + incidentColumns + ` FROM incidents WHERE neighborhood_id = $1 AND ` + countableFilter + `;`
	rows, err := r.db.Query(ctx, query, neighborhoodID)
	if err != nil {
		return nil, fmt.Errorf("failed to list incidents by neighborhood: %w", err)
	}
	return collectIncidents(rows, "ListCountableByNeighborhood")
}

// ListCountableGeohashes возвращает ячейки, в которых есть учитываемые инциденты
func (r *IncidentRepository) ListCountableGeohashes(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT geohash FROM incidents WHERE `+countableFilter+`;`)
	if err != nil {
		return nil, fmt.Errorf("failed to list incident geohashes: %w", err)
	}
	return collectStrings(rows)
}

// ListUnassigned возвращает инциденты без района
func (r *IncidentRepository) ListUnassigned(ctx context.Context) ([]*models.Incident, error) {
	query := `SELECT ` + incidentColumns + ` FROM incidents WHERE neighborhood_id IS NULL;`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list unassigned incidents: %w", err)
	}
	return collectIncidents(rows, "ListUnassigned")
}

// GetIncidentFromCache пытается получить инцидент из Redis
func (r *IncidentRepository) GetIncidentFromCache(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	val, err := r.redisClient.Get(ctx, incidentCacheKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get incident from cache: %w", err)
	}

	incident := &models.Incident{}
	if err := json.Unmarshal(val, incident); err != nil {
		return nil, fmt.Errorf("failed to unmarshal incident from cache: %w", err)
	}
	return incident, nil
}

// setIfGenerationScript пишет значение, только если поколение не менялось
var setIfGenerationScript = redis.NewScript(`
local gen = redis.call("GET", KEYS[2]) or "0"
if gen ~= ARGV[2] then
	return 0
end
redis.call("SET", KEYS[1], ARGV[1], "PX", ARGV[3])
return 1
`)

// IncidentCacheGeneration возвращает текущее поколение кеша инцидента
func (r *IncidentRepository) IncidentCacheGeneration(ctx context.Context, id uuid.UUID) (int64, error) {
	gen, err := r.redisClient.Get(ctx, incidentGenerationKey(id)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get incident cache generation: %w", err)
	}
	return gen, nil
}

// SetIncidentCache сохраняет инцидент в Redis, если с момента чтения generation
// кеш не инвалидировался
func (r *IncidentRepository) SetIncidentCache(ctx context.Context, incident *models.Incident, generation int64) error {
	val, err := json.Marshal(incident)
	if err != nil {
		return fmt.Errorf("failed to marshal incident for cache: %w", err)
	}
	keys := []string{incidentCacheKey(incident.ID), incidentGenerationKey(incident.ID)}
	err = setIfGenerationScript.Run(ctx, r.redisClient, keys, val, generation, incidentCacheTTL.Milliseconds()).Err()
	if err != nil {
		return fmt.Errorf("failed to set incident in cache: %w", err)
	}
	return nil
}

// InvalidateIncidentCache удаляет инцидент из Redis кэша и увеличивает поколение
func (r *IncidentRepository) InvalidateIncidentCache(ctx context.Context, id uuid.UUID) error {
	genKey := incidentGenerationKey(id)
	_, err := r.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, incidentCacheKey(id))
		pipe.Incr(ctx, genKey)
		pipe.Expire(ctx, genKey, 2*incidentCacheTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to invalidate incident cache: %w", err)
	}
	return nil
}

func incidentCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("incident:%s", id.String())
}

func incidentGenerationKey(id uuid.UUID) string {
	return fmt.Sprintf("incident:%s:gen", id.String())
}

func collectStrings(rows pgx.Rows) ([]string, error) {
	defer rows.Close()
	out := make([]string, 0)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return out, nil
}
