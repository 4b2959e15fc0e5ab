package service

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/jonboulle/clockwork"
	"github.com/shenikar/safety_heatmap/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// MaintenanceService - обслуживание производных кешей
type MaintenanceService interface {
	RebuildAll(ctx context.Context) (*models.RebuildReport, error)
}

type maintenanceService struct {
	incidents     IncidentRepository
	cells         HeatCellRepository
	neighborhoods NeighborhoodRepository
	heatmap       HeatmapService
	hoods         NeighborhoodService
	logger        *logrus.Logger
	clock         clockwork.Clock
	concurrency   int

	running atomic.Bool
}

func NewMaintenanceService(
	incidents IncidentRepository,
	cells HeatCellRepository,
	neighborhoods NeighborhoodRepository,
	heatmap HeatmapService,
	hoods NeighborhoodService,
	logger *logrus.Logger,
	clock clockwork.Clock,
	concurrency int,
) MaintenanceService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &maintenanceService{
		incidents:     incidents,
		cells:         cells,
		neighborhoods: neighborhoods,
		heatmap:       heatmap,
		hoods:         hoods,
		logger:        logger,
		clock:         clock,
		concurrency:   concurrency,
	}
}

// RebuildAll пересчитывает все ячейки и районы из исходных инцидентов и затем цвета.
// Ошибка отдельной ячейки или района не прерывает пересчет.
func (s *maintenanceService) RebuildAll(ctx context.Context) (*models.RebuildReport, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, models.ErrRebuildInProgress
	}
	defer s.running.Store(false)

	log := s.logger.WithFields(logrus.Fields{
		"service": "maintenance",
		"method":  "RebuildAll",
	})
	start := s.clock.Now()
	report := &models.RebuildReport{}

	geohashes, err := s.collectGeohashes(ctx)
	if err != nil {
		return nil, err
	}
	var cellFailures atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, gh := range geohashes {
		g.Go(func() error {
			if _, err := s.heatmap.RecomputeCell(gctx, gh); err != nil {
				cellFailures.Add(1)
				log.WithError(err).WithField("geohash", gh).Error("Cell rebuild failed")
			}
			return nil
		})
	}
	_ = g.Wait()
	report.Cells = len(geohashes)
	report.CellFailures = int(cellFailures.Load())

	unassigned, err := s.incidents.ListUnassigned(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to list unassigned incidents")
	}
	for _, inc := range unassigned {
		id, err := s.hoods.AssignNeighborhood(ctx, inc)
		if err != nil {
			log.WithError(err).WithField("incident_id", inc.ID).Warn("Neighborhood assignment failed")
			continue
		}
		if id != nil {
			report.Assigned++
		}
	}

	list, err := s.neighborhoods.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: could not list neighborhoods: %w", err)
	}
	var hoodFailures atomic.Int64
	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, n := range list {
		id := n.ID
		g.Go(func() error {
			if _, err := s.hoods.RecomputeNeighborhood(gctx, id); err != nil {
				hoodFailures.Add(1)
				log.WithError(err).WithField("neighborhood_id", id).Error("Neighborhood rebuild failed")
			}
			return nil
		})
	}
	_ = g.Wait()
	report.Neighborhoods = len(list)
	report.NeighborhoodFailures = int(hoodFailures.Load())

	if err := s.heatmap.RebalanceColors(ctx); err != nil {
		log.WithError(err).Error("Rebalance after rebuild failed")
	}

	report.Duration = s.clock.Since(start)
	log.WithFields(logrus.Fields{
		"cells":         report.Cells,
		"cell_failures": report.CellFailures,
		"assigned":      report.Assigned,
		"neighborhoods": report.Neighborhoods,
	}).Info("Rebuild finished")
	return report, nil
}

// collectGeohashes объединяет ячейки с учитываемыми инцидентами и уже сохраненные ячейки,
// чтобы устаревшие ячейки были удалены
func (s *maintenanceService) collectGeohashes(ctx context.Context) ([]string, error) {
	fromIncidents, err := s.incidents.ListCountableGeohashes(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: could not list incident geohashes: %w", err)
	}
	fromCells, err := s.cells.ListGeohashes(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: could not list cell geohashes: %w", err)
	}
	seen := make(map[string]struct{}, len(fromIncidents)+len(fromCells))
	out := make([]string, 0, len(fromIncidents)+len(fromCells))
	for _, gh := range append(fromIncidents, fromCells...) {
		if _, ok := seen[gh]; ok {
			continue
		}
		seen[gh] = struct{}{}
		out = append(out, gh)
	}
	return out, nil
}
