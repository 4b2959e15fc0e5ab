package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shenikar/safety_heatmap/internal/events"
	"github.com/shenikar/safety_heatmap/internal/geoindex"
	"github.com/shenikar/safety_heatmap/internal/models"
	"github.com/shenikar/safety_heatmap/internal/observability"
	"github.com/shenikar/safety_heatmap/internal/scoring"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const (
	rebalanceLockKey = "heatmap:rebalance"
	rebalanceLockTTL = 2 * time.Minute
	maxQueryPrefixes = 512
)

// HeatmapService - агрегатор ячеек тепловой карты
type HeatmapService interface {
	RecomputeCell(ctx context.Context, geohash string) (*models.HeatCell, error)
	RebalanceColors(ctx context.Context) error
	MarkDirty()
	RunRebalanceLoop(ctx context.Context, interval, debounce time.Duration)
	QueryHeatCells(ctx context.Context, bbox models.BBox) ([]*models.HeatCell, error)
}

type heatmapService struct {
	incidents IncidentRepository
	cells     HeatCellRepository
	locker    Locker
	publisher events.Publisher
	scorer    scoring.Scorer
	logger    *logrus.Logger
	clock     clockwork.Clock
	metrics   *observability.Metrics

	flight singleflight.Group
	dirty  chan struct{}
}

// NewHeatmapService создает агрегатор. locker может быть nil для одного экземпляра.
func NewHeatmapService(
	incidents IncidentRepository,
	cells HeatCellRepository,
	locker Locker,
	publisher events.Publisher,
	scorer scoring.Scorer,
	logger *logrus.Logger,
	clock clockwork.Clock,
	metrics *observability.Metrics,
) HeatmapService {
	return &heatmapService{
		incidents: incidents,
		cells:     cells,
		locker:    locker,
		publisher: publisher,
		scorer:    scorer,
		logger:    logger,
		clock:     clock,
		metrics:   metrics,
		dirty:     make(chan struct{}, 1),
	}
}

// RecomputeCell пересчитывает ячейку с нуля по исходным инцидентам и перезаписывает ее.
// Пустая ячейка удаляется из кеша.
func (s *heatmapService) RecomputeCell(ctx context.Context, geohash string) (*models.HeatCell, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "heatmap",
		"method":  "RecomputeCell",
		"geohash": geohash,
	})

	center, err := geoindex.Decode(geohash)
	if err != nil {
		return nil, err
	}

	incidents, err := s.incidents.ListCountableByGeohash(ctx, geohash)
	if err != nil {
		s.metrics.CellRecomputes.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: list incidents for %s: %v", models.ErrAggregationFailure, geohash, err)
	}

	now := s.clock.Now()
	cell := &models.HeatCell{
		Geohash:   geohash,
		Latitude:  center.Lat,
		Longitude: center.Lon,
		Color:     models.ColorGreen,
		UpdatedAt: now.UTC(),
	}
	for _, inc := range incidents {
		if !inc.Status.Countable() || inc.Hidden || inc.Geohash != geohash {
			continue
		}
		cell.Score += s.scorer.IncidentScore(inc, inc.ReporterRep, now)
		cell.IncidentCount++
		if inc.CreatedAt.After(cell.LastIncidentAt) {
			cell.LastIncidentAt = inc.CreatedAt
		}
	}

	if cell.IncidentCount == 0 {
		if err := s.cells.Delete(ctx, geohash); err != nil {
			s.metrics.CellRecomputes.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("%w: delete empty cell %s: %v", models.ErrAggregationFailure, geohash, err)
		}
		s.metrics.CellRecomputes.WithLabelValues("success").Inc()
		log.Debug("Cell is empty, removed")
		s.MarkDirty()
		return cell, nil
	}

	if err := s.cells.Upsert(ctx, cell); err != nil {
		s.metrics.CellRecomputes.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: upsert cell %s: %v", models.ErrAggregationFailure, geohash, err)
	}
	s.metrics.CellRecomputes.WithLabelValues("success").Inc()
	log.WithFields(logrus.Fields{"score": cell.Score, "count": cell.IncidentCount}).Debug("Cell recomputed")

	emit(ctx, s.publisher, log, events.CellUpdated, cell, now)
	s.MarkDirty()
	return cell, nil
}

// RebalanceColors пересчитывает цвета всех ненулевых ячеек. Одновременно выполняется
// не более одного пересчета: внутри процесса через singleflight, между экземплярами через Locker.
func (s *heatmapService) RebalanceColors(ctx context.Context) error {
	_, err, _ := s.flight.Do(rebalanceLockKey, func() (any, error) {
		return nil, s.rebalance(ctx)
	})
	return err
}

func (s *heatmapService) rebalance(ctx context.Context) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "heatmap",
		"method":  "RebalanceColors",
	})

	if s.locker != nil {
		unlock, acquired, err := s.locker.TryLock(ctx, rebalanceLockKey, rebalanceLockTTL)
		if err != nil {
			return fmt.Errorf("%w: acquire rebalance lock: %v", models.ErrAggregationFailure, err)
		}
		if !acquired {
			log.Info("Rebalance already running elsewhere, skipping")
			return nil
		}
		defer unlock()
	}

	start := s.clock.Now()
	cells, err := s.cells.ListNonZero(ctx)
	if err != nil {
		return fmt.Errorf("%w: list cells: %v", models.ErrAggregationFailure, err)
	}

	AssignColors(cells)

	if err := s.cells.ApplyColors(ctx, cells); err != nil {
		log.WithError(err).Error("Rebalance not applied, colors stay stale")
		return fmt.Errorf("%w: apply colors: %v", models.ErrAggregationFailure, err)
	}

	s.metrics.RebalanceCells.Set(float64(len(cells)))
	s.metrics.RebalanceDuration.Observe(s.clock.Since(start).Seconds())
	log.WithField("cells", len(cells)).Info("Colors rebalanced")
	return nil
}

// AssignColors сортирует ячейки по score и назначает цвет по 50-му и 75-му перцентилю.
// Ячейки с нулевым score отбрасываются вызывающим.
func AssignColors(cells []*models.HeatCell) {
	n := len(cells)
	if n == 0 {
		return
	}
	sort.SliceStable(cells, func(i, j int) bool {
		if cells[i].Score == cells[j].Score {
			return cells[i].Geohash < cells[j].Geohash
		}
		return cells[i].Score < cells[j].Score
	})

	p50 := cells[nearestRank(50, n)].Score
	p75 := cells[nearestRank(75, n)].Score

	for i, cell := range cells {
		cell.Percentile = float64(i+1) / float64(n) * 100
		switch {
		case cell.Score >= p75:
			cell.Color = models.ColorRed
		case cell.Score >= p50:
			cell.Color = models.ColorYellow
		default:
			cell.Color = models.ColorGreen
		}
	}
}

func nearestRank(p float64, n int) int {
	idx := int(math.Ceil(p/100*float64(n))) - 1
	if idx < 0 {
		return 0
	}
	if idx >= n {
		return n - 1
	}
	return idx
}

// MarkDirty помечает таблицу цветов как устаревшую; вызовы схлопываются
func (s *heatmapService) MarkDirty() {
	select {
	case s.dirty <- struct{}{}:
	default:
	}
}

// RunRebalanceLoop пересчитывает цвета по таймеру и после изменений ячеек (с задержкой debounce)
func (s *heatmapService) RunRebalanceLoop(ctx context.Context, interval, debounce time.Duration) {
	ticker := s.clock.NewTicker(interval)
	defer ticker.Stop()

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			s.runRebalance(ctx)
		case <-s.dirty:
			if pending == nil {
				pending = s.clock.After(debounce)
			}
		case <-pending:
			pending = nil
			s.runRebalance(ctx)
		}
	}
}

func (s *heatmapService) runRebalance(ctx context.Context) {
	if err := s.RebalanceColors(ctx); err != nil {
		s.logger.WithError(err).Error("Scheduled rebalance failed")
	}
}

// QueryHeatCells возвращает ячейки, пересекающие область
func (s *heatmapService) QueryHeatCells(ctx context.Context, bbox models.BBox) ([]*models.HeatCell, error) {
	if err := geoindex.ValidateBBox(bbox); err != nil {
		return nil, err
	}

	precision := uint(models.GeohashPrecision)
	for precision > 1 && geoindex.EstimateCells(bbox, precision) > maxQueryPrefixes {
		precision--
	}
	prefixes, err := geoindex.CellsCoveringBbox(bbox, precision)
	if err != nil {
		return nil, err
	}

	cells, err := s.cells.ListByPrefixes(ctx, prefixes)
	if err != nil {
		return nil, fmt.Errorf("service: could not query heat cells: %w", err)
	}

	out := make([]*models.HeatCell, 0, len(cells))
	for _, cell := range cells {
		b, err := geoindex.Bounds(cell.Geohash)
		if err != nil {
			continue
		}
		if b.Intersects(bbox) {
			out = append(out, cell)
		}
	}
	return out, nil
}
