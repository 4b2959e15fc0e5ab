// Package news собирает новости о преступлениях, классифицирует и геокодирует их
// и передает в сверку с инцидентами.
package news

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/safety_heatmap/internal/models"
)

// Article - новость из ленты до классификации
type Article struct {
	ID          string
	Title       string
	URL         string
	Source      string
	Summary     string
	PublishedAt time.Time
}

// Classification - результат разбора новости классификатором
type Classification struct {
	Relevant     bool                `json:"relevant"`
	Category     models.IncidentType `json:"category"`
	Severity     int                 `json:"severity"`
	Description  string              `json:"description"`
	LocationText string              `json:"location"`
}

// Location - результат геокодирования
type Location struct {
	Latitude    float64
	Longitude   float64
	CountryCode string
}

type Fetcher interface {
	Fetch(ctx context.Context) ([]Article, error)
}

type Classifier interface {
	Classify(ctx context.Context, article Article) (*Classification, error)
}

// Geocoder переводит название места в координаты; nil без ошибки означает, что место не найдено
type Geocoder interface {
	Geocode(ctx context.Context, place string) (*Location, error)
}

// Причины, по которым новость не дошла до сверки
const (
	SkipIrrelevant = "irrelevant"
	SkipUnlocated  = "unlocated"
)

// Store - реестр обработанных новостей
type Store interface {
	// Processed сообщает, что новость с этим url уже сверена или отброшена
	Processed(ctx context.Context, url string) (bool, error)
	// Register сохраняет новость перед сверкой. false означает дубликат из другого источника
	// (совпал url или dedup_key). Несверенная запись с тем же id регистрируется повторно.
	Register(ctx context.Context, event *models.NewsEvent) (bool, error)
	MarkReconciled(ctx context.Context, newsID string, incidentID uuid.UUID) error
	MarkSkipped(ctx context.Context, article Article, reason string) error
}
