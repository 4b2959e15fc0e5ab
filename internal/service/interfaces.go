package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/safety_heatmap/internal/models"
)

// IncidentRepository определяет контракт для работы с бд инцидентов
type IncidentRepository interface {
	Create(ctx context.Context, incident *models.Incident) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	// CastVote атомарно блокирует инцидент, вызывает apply, сохраняет голос и новое состояние.
	// Повторный голос того же валидатора возвращает models.ErrAlreadyVoted.
	CastVote(ctx context.Context, validation *models.Validation, apply func(incident *models.Incident) error) (*models.Incident, error)
	SetHidden(ctx context.Context, id uuid.UUID, hidden bool) (*models.Incident, error)
	SetNeighborhood(ctx context.Context, id uuid.UUID, neighborhoodID *uuid.UUID) error
	// AppendSourceNews добавляет подтверждение, если новости еще нет в списке; возвращает true при добавлении
	AppendSourceNews(ctx context.Context, id uuid.UUID, ref models.SourceNewsRef) (bool, error)
	FindRecentByType(ctx context.Context, incidentType models.IncidentType, since time.Time, lat, lon, radiusMeters float64) ([]*models.Incident, error)
	ListCountableByGeohash(ctx context.Context, geohash string) ([]*models.Incident, error)
	ListCountableByNeighborhood(ctx context.Context, neighborhoodID uuid.UUID) ([]*models.Incident, error)
	ListCountableGeohashes(ctx context.Context) ([]string, error)
	ListUnassigned(ctx context.Context) ([]*models.Incident, error)

	GetIncidentFromCache(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	// IncidentCacheGeneration возвращает поколение кеша; InvalidateIncidentCache его увеличивает
	IncidentCacheGeneration(ctx context.Context, id uuid.UUID) (int64, error)
	// SetIncidentCache пишет в кеш, только если поколение не изменилось с момента чтения
	SetIncidentCache(ctx context.Context, incident *models.Incident, generation int64) error
	InvalidateIncidentCache(ctx context.Context, id uuid.UUID) error
}

// HeatCellRepository - хранилище кеша ячеек тепловой карты
type HeatCellRepository interface {
	Upsert(ctx context.Context, cell *models.HeatCell) error
	Delete(ctx context.Context, geohash string) error
	ListNonZero(ctx context.Context) ([]*models.HeatCell, error)
	ListGeohashes(ctx context.Context) ([]string, error)
	ListByPrefixes(ctx context.Context, prefixes []string) ([]*models.HeatCell, error)
	// ApplyColors записывает цвета и перцентили всех ячеек одной транзакцией
	ApplyColors(ctx context.Context, cells []*models.HeatCell) error
}

// NeighborhoodRepository - полигоны районов и их агрегаты
type NeighborhoodRepository interface {
	List(ctx context.Context) ([]*models.Neighborhood, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Neighborhood, error)
	UpdateRollup(ctx context.Context, neighborhood *models.Neighborhood) error
	UpsertBoundary(ctx context.Context, neighborhood *models.Neighborhood) error
}

// ReputationStore - внешнее хранилище репутации пользователей
type ReputationStore interface {
	Get(ctx context.Context, userID string) (int, error)
}

// Locker - распределенная блокировка для single-flight задач
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (unlock func(), acquired bool, err error)
}

// AggregationTrigger - асинхронный запуск пересчета кешей, не блокирует вызывающего
type AggregationTrigger interface {
	CellChanged(geohash string)
	NeighborhoodChanged(id uuid.UUID)
	IncidentPlaced(id uuid.UUID)
}
