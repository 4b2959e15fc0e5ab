package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"github.com/shenikar/safety_heatmap/internal/events"
	"github.com/shenikar/safety_heatmap/internal/models"
	"github.com/shenikar/safety_heatmap/internal/observability"
	"github.com/sirupsen/logrus"
)

// neighborhoodNamespace - пространство имен для стабильных id районов без явного id в GeoJSON
var neighborhoodNamespace = uuid.MustParse("6f1c2d0e-4b9a-4f5e-9a57-3c1d8e2b7a10")

// NeighborhoodService определяет контракт для привязки инцидентов к районам и агрегатов по районам
type NeighborhoodService interface {
	AssignNeighborhood(ctx context.Context, incident *models.Incident) (*uuid.UUID, error)
	AssignByID(ctx context.Context, incidentID uuid.UUID) error
	RecomputeNeighborhood(ctx context.Context, id uuid.UUID) (*models.Neighborhood, error)
	QueryNeighborhoods(ctx context.Context, withIncidentsOnly bool) ([]*models.Neighborhood, error)
	ImportGeoJSON(ctx context.Context, data []byte) (int, error)
	Reload(ctx context.Context) error
}

type boundaryEntry struct {
	id      uuid.UUID
	bound   orb.Bound
	polygon orb.MultiPolygon
}

type neighborhoodService struct {
	incidents     IncidentRepository
	neighborhoods NeighborhoodRepository
	publisher     events.Publisher
	logger        *logrus.Logger
	clock         clockwork.Clock
	metrics       *observability.Metrics

	mu         sync.RWMutex
	loaded     bool
	boundaries []boundaryEntry
}

func NewNeighborhoodService(
	incidents IncidentRepository,
	neighborhoods NeighborhoodRepository,
	publisher events.Publisher,
	logger *logrus.Logger,
	clock clockwork.Clock,
	metrics *observability.Metrics,
) NeighborhoodService {
	return &neighborhoodService{
		incidents:     incidents,
		neighborhoods: neighborhoods,
		publisher:     publisher,
		logger:        logger,
		clock:         clock,
		metrics:       metrics,
	}
}

// Reload перечитывает полигоны районов из хранилища
func (s *neighborhoodService) Reload(ctx context.Context) error {
	list, err := s.neighborhoods.List(ctx)
	if err != nil {
		return fmt.Errorf("service: could not load neighborhoods: %w", err)
	}
	entries := make([]boundaryEntry, 0, len(list))
	for _, n := range list {
		if len(n.Boundary) == 0 {
			continue
		}
		entries = append(entries, boundaryEntry{id: n.ID, bound: n.Boundary.Bound(), polygon: n.Boundary})
	}

	s.mu.Lock()
	s.boundaries = entries
	s.loaded = true
	s.mu.Unlock()

	s.logger.WithField("neighborhoods", len(entries)).Info("Neighborhood boundaries loaded")
	return nil
}

func (s *neighborhoodService) ensureLoaded(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}
	return s.Reload(ctx)
}

// locate возвращает первый район, полигон которого содержит точку
func (s *neighborhoodService) locate(lat, lon float64) (uuid.UUID, bool) {
	point := orb.Point{lon, lat}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, entry := range s.boundaries {
		if !entry.bound.Contains(point) {
			continue
		}
		if planar.MultiPolygonContains(entry.polygon, point) {
			return entry.id, true
		}
	}
	return uuid.Nil, false
}

// AssignNeighborhood находит район по координатам инцидента и сохраняет привязку.
// Точка вне всех районов не считается ошибкой: возвращается nil.
func (s *neighborhoodService) AssignNeighborhood(ctx context.Context, incident *models.Incident) (*uuid.UUID, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "neighborhood",
		"method":      "AssignNeighborhood",
		"incident_id": incident.ID,
	})

	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	id, ok := s.locate(incident.Latitude, incident.Longitude)
	if !ok {
		log.WithFields(logrus.Fields{
			"latitude":  incident.Latitude,
			"longitude": incident.Longitude,
		}).Info("Incident is outside of all neighborhoods")
		return nil, nil
	}
	if incident.NeighborhoodID != nil && *incident.NeighborhoodID == id {
		return &id, nil
	}

	if err := s.incidents.SetNeighborhood(ctx, incident.ID, &id); err != nil {
		return nil, fmt.Errorf("service: could not assign neighborhood: %w", err)
	}
	incident.NeighborhoodID = &id
	if err := s.incidents.InvalidateIncidentCache(ctx, incident.ID); err != nil {
		log.WithError(err).Warn("Failed to invalidate incident cache")
	}
	log.WithField("neighborhood_id", id).Debug("Incident assigned to neighborhood")
	return &id, nil
}

// AssignByID привязывает сохраненный инцидент к району и пересчитывает район
func (s *neighborhoodService) AssignByID(ctx context.Context, incidentID uuid.UUID) error {
	incident, err := s.incidents.GetByID(ctx, incidentID)
	if err != nil {
		return err
	}
	id, err := s.AssignNeighborhood(ctx, incident)
	if err != nil || id == nil {
		return err
	}
	_, err = s.RecomputeNeighborhood(ctx, *id)
	return err
}

// RecomputeNeighborhood пересчитывает агрегаты района по учитываемым инцидентам
func (s *neighborhoodService) RecomputeNeighborhood(ctx context.Context, id uuid.UUID) (*models.Neighborhood, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":         "neighborhood",
		"method":          "RecomputeNeighborhood",
		"neighborhood_id": id,
	})

	neighborhood, err := s.neighborhoods.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	incidents, err := s.incidents.ListCountableByNeighborhood(ctx, id)
	if err != nil {
		s.metrics.NeighborhoodUpdate.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: list incidents for neighborhood %s: %v", models.ErrAggregationFailure, id, err)
	}

	counted := make([]*models.Incident, 0, len(incidents))
	for _, inc := range incidents {
		if inc.Status.Countable() && !inc.Hidden {
			counted = append(counted, inc)
		}
	}

	neighborhood.IncidentCount = len(counted)
	neighborhood.AverageColor = AverageColor(counted)
	neighborhood.LastIncidentAt = nil
	for _, inc := range counted {
		if neighborhood.LastIncidentAt == nil || inc.CreatedAt.After(*neighborhood.LastIncidentAt) {
			at := inc.CreatedAt
			neighborhood.LastIncidentAt = &at
		}
	}
	neighborhood.UpdatedAt = s.clock.Now().UTC()

	if err := s.neighborhoods.UpdateRollup(ctx, neighborhood); err != nil {
		s.metrics.NeighborhoodUpdate.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: update neighborhood %s: %v", models.ErrAggregationFailure, id, err)
	}
	s.metrics.NeighborhoodUpdate.WithLabelValues("success").Inc()
	log.WithField("count", neighborhood.IncidentCount).Debug("Neighborhood recomputed")

	emit(ctx, s.publisher, log, events.NeighborhoodUpdated, neighborhood, neighborhood.UpdatedAt)
	return neighborhood, nil
}

// AverageColor усредняет цвета типов инцидентов покомпонентно. Пустой список дает пустую строку.
func AverageColor(incidents []*models.Incident) string {
	if len(incidents) == 0 {
		return ""
	}
	var r, g, b float64
	for _, inc := range incidents {
		hex, ok := models.TypeColors[inc.Type]
		if !ok {
			hex = models.TypeColors[models.TypeOther]
		}
		cr, cg, cb := parseHexColor(hex)
		r += float64(cr)
		g += float64(cg)
		b += float64(cb)
	}
	n := float64(len(incidents))
	return fmt.Sprintf("#%02x%02x%02x",
		uint8(math.Round(r/n)), uint8(math.Round(g/n)), uint8(math.Round(b/n)))
}

func parseHexColor(hex string) (uint8, uint8, uint8) {
	v, err := strconv.ParseUint(strings.TrimPrefix(hex, "#"), 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v)
}

// QueryNeighborhoods возвращает районы; withIncidentsOnly оставляет только районы с инцидентами
func (s *neighborhoodService) QueryNeighborhoods(ctx context.Context, withIncidentsOnly bool) ([]*models.Neighborhood, error) {
	list, err := s.neighborhoods.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: could not list neighborhoods: %w", err)
	}
	if !withIncidentsOnly {
		return list, nil
	}
	out := make([]*models.Neighborhood, 0, len(list))
	for _, n := range list {
		if n.IncidentCount > 0 {
			out = append(out, n)
		}
	}
	return out, nil
}

// ImportGeoJSON загружает границы районов из FeatureCollection.
// Имя берется из свойства "name", id из свойства "id" или выводится из имени.
func (s *neighborhoodService) ImportGeoJSON(ctx context.Context, data []byte) (int, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return 0, fmt.Errorf("%w: geojson: %v", models.ErrInvalidInput, err)
	}

	imported := 0
	for _, feature := range fc.Features {
		var boundary orb.MultiPolygon
		switch g := feature.Geometry.(type) {
		case orb.Polygon:
			boundary = orb.MultiPolygon{g}
		case orb.MultiPolygon:
			boundary = g
		case nil:
			continue
		default:
			s.logger.WithField("geometry", feature.Geometry.GeoJSONType()).Warn("Skipping non-polygon neighborhood feature")
			continue
		}

		name := feature.Properties.MustString("name", "")
		if name == "" {
			s.logger.Warn("Skipping neighborhood feature without name")
			continue
		}
		id, err := uuid.Parse(feature.Properties.MustString("id", ""))
		if err != nil {
			id = uuid.NewSHA1(neighborhoodNamespace, []byte(name))
		}

		if err := s.neighborhoods.UpsertBoundary(ctx, &models.Neighborhood{
			ID:        id,
			Name:      name,
			Boundary:  boundary,
			UpdatedAt: s.clock.Now().UTC(),
		}); err != nil {
			return imported, fmt.Errorf("service: could not store neighborhood %q: %w", name, err)
		}
		imported++
	}

	if err := s.Reload(ctx); err != nil {
		return imported, err
	}
	return imported, nil
}
