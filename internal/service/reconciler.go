package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shenikar/safety_heatmap/internal/events"
	"github.com/shenikar/safety_heatmap/internal/geoindex"
	"github.com/shenikar/safety_heatmap/internal/models"
	"github.com/shenikar/safety_heatmap/internal/observability"
	"github.com/sirupsen/logrus"
)

const (
	NewsReporterID        = "news-reconciler"
	defaultNewsSeverity   = 3
	defaultReconcileRange = 200.0
)

// ReconcileConfig - окно поиска и радиус сопоставления
type ReconcileConfig struct {
	Window             time.Duration
	RadiusMeters       float64
	ReporterReputation int
}

// Reconciler сопоставляет новости с существующими инцидентами
type Reconciler interface {
	Reconcile(ctx context.Context, event *models.NewsEvent) (*models.ReconcileResult, error)
}

type reconciler struct {
	repo      IncidentRepository
	trigger   AggregationTrigger
	publisher events.Publisher
	cfg       ReconcileConfig
	logger    *logrus.Logger
	clock     clockwork.Clock
	metrics   *observability.Metrics
}

func NewReconciler(
	repo IncidentRepository,
	trigger AggregationTrigger,
	publisher events.Publisher,
	cfg ReconcileConfig,
	logger *logrus.Logger,
	clock clockwork.Clock,
	metrics *observability.Metrics,
) Reconciler {
	if cfg.Window <= 0 {
		cfg.Window = 7 * 24 * time.Hour
	}
	if cfg.RadiusMeters <= 0 {
		cfg.RadiusMeters = defaultReconcileRange
	}
	return &reconciler{
		repo:      repo,
		trigger:   trigger,
		publisher: publisher,
		cfg:       cfg,
		logger:    logger,
		clock:     clock,
		metrics:   metrics,
	}
}

// Reconcile добавляет новость в source_news ближайшего инцидента того же типа в окне и радиусе,
// иначе создает auto_verified инцидент. Повторная обработка той же новости ничего не меняет.
func (r *reconciler) Reconcile(ctx context.Context, event *models.NewsEvent) (*models.ReconcileResult, error) {
	log := r.logger.WithFields(logrus.Fields{
		"service": "reconciler",
		"method":  "Reconcile",
		"news_id": event.ID,
	})

	if err := r.validate(event); err != nil {
		r.metrics.ReconcileOutcomes.WithLabelValues("skipped").Inc()
		log.WithError(err).Warn("News event rejected")
		return nil, err
	}

	now := r.clock.Now().UTC()
	candidates, err := r.repo.FindRecentByType(ctx, event.Category, now.Add(-r.cfg.Window),
		event.Latitude, event.Longitude, r.cfg.RadiusMeters)
	if err != nil {
		r.metrics.ReconcileOutcomes.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("service: could not search incidents: %w", err)
	}

	for _, inc := range candidates {
		if inc.HasSourceNews(event.ID) {
			r.metrics.ReconcileOutcomes.WithLabelValues("duplicate").Inc()
			log.WithField("incident_id", inc.ID).Debug("News already attached")
			return &models.ReconcileResult{IncidentID: inc.ID, Created: false}, nil
		}
	}

	if match := r.closest(event, candidates); match != nil {
		return r.corroborate(ctx, log, event, match, now)
	}
	return r.createAutoVerified(ctx, log, event, now)
}

func (r *reconciler) validate(event *models.NewsEvent) error {
	if strings.TrimSpace(event.ID) == "" {
		return fmt.Errorf("%w: news id is required", models.ErrInvalidInput)
	}
	if !event.Category.Valid() {
		return fmt.Errorf("%w: unknown news category %q", models.ErrInvalidInput, event.Category)
	}
	if event.Severity == 0 {
		event.Severity = defaultNewsSeverity
	}
	if event.Severity < models.MinSeverity || event.Severity > models.MaxSeverity {
		return fmt.Errorf("%w: severity %d out of range", models.ErrInvalidInput, event.Severity)
	}
	return models.ValidateCoordinates(event.Latitude, event.Longitude)
}

// closest выбирает ближайший инцидент в радиусе; отклоненные инциденты не подтверждаются
func (r *reconciler) closest(event *models.NewsEvent, candidates []*models.Incident) *models.Incident {
	var best *models.Incident
	bestDistance := math.MaxFloat64
	for _, inc := range candidates {
		if inc.Type != event.Category || inc.Status == models.StatusRejected {
			continue
		}
		d := geoindex.DistanceMeters(event.Latitude, event.Longitude, inc.Latitude, inc.Longitude)
		if d <= r.cfg.RadiusMeters && d < bestDistance {
			best, bestDistance = inc, d
		}
	}
	return best
}

func (r *reconciler) corroborate(ctx context.Context, log *logrus.Entry, event *models.NewsEvent, incident *models.Incident, now time.Time) (*models.ReconcileResult, error) {
	log = log.WithField("incident_id", incident.ID)

	appended, err := r.repo.AppendSourceNews(ctx, incident.ID, event.Ref(now))
	if err != nil {
		r.metrics.ReconcileOutcomes.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("service: could not attach news: %w", err)
	}
	if !appended {
		r.metrics.ReconcileOutcomes.WithLabelValues("duplicate").Inc()
		return &models.ReconcileResult{IncidentID: incident.ID, Created: false}, nil
	}

	if err := r.repo.InvalidateIncidentCache(ctx, incident.ID); err != nil {
		log.WithError(err).Warn("Failed to invalidate incident cache")
	}
	r.metrics.ReconcileOutcomes.WithLabelValues("corroborated").Inc()
	log.Info("Incident corroborated by news")

	incident.SourceNews = append(incident.SourceNews, event.Ref(now))
	emit(ctx, r.publisher, log, events.IncidentCorroborated, incident, now)
	r.trigger.CellChanged(incident.Geohash)
	if incident.NeighborhoodID != nil {
		r.trigger.NeighborhoodChanged(*incident.NeighborhoodID)
	}
	return &models.ReconcileResult{IncidentID: incident.ID, Created: false}, nil
}

func (r *reconciler) createAutoVerified(ctx context.Context, log *logrus.Entry, event *models.NewsEvent, now time.Time) (*models.ReconcileResult, error) {
	description := event.Description
	if description == "" {
		description = event.Title
	}
	incident := &models.Incident{
		Type:        event.Category,
		Severity:    event.Severity,
		Description: description,
		Status:      models.StatusAutoVerified,
		ReporterID:  NewsReporterID,
		ReporterRep: r.cfg.ReporterReputation,
		Score:       1,
		Count:       1,
		VoteWeight:  1,
		SourceNews:  []models.SourceNewsRef{event.Ref(now)},
		CreatedAt:   now,
	}
	if err := incident.SetLocation(event.Latitude, event.Longitude); err != nil {
		return nil, err
	}

	if err := r.repo.Create(ctx, incident); err != nil {
		r.metrics.ReconcileOutcomes.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("service: could not create incident from news: %w", err)
	}
	r.metrics.ReconcileOutcomes.WithLabelValues("created").Inc()
	log.WithField("incident_id", incident.ID).Info("Auto-verified incident created from news")

	emit(ctx, r.publisher, log, events.IncidentCreated, incident, now)
	r.trigger.CellChanged(incident.Geohash)
	r.trigger.IncidentPlaced(incident.ID)
	return &models.ReconcileResult{IncidentID: incident.ID, Created: true}, nil
}
