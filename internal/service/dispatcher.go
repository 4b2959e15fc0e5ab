package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/safety_heatmap/internal/observability"
	"github.com/sirupsen/logrus"
)

const defaultTaskTimeout = 30 * time.Second

type aggregationTask struct {
	key string
	run func(ctx context.Context) error
}

// Dispatcher выполняет пересчеты кешей в пуле воркеров. Повторные задачи с тем же ключом,
// еще стоящие в очереди, схлопываются; при переполненной очереди задача отбрасывается,
// ночной RebuildAll восстанавливает согласованность.
type Dispatcher struct {
	heatmap       HeatmapService
	neighborhoods NeighborhoodService
	logger        *logrus.Logger
	metrics       *observability.Metrics
	workers       int
	taskTimeout   time.Duration

	queue   chan aggregationTask
	mu      sync.Mutex
	pending map[string]struct{}
	wg      sync.WaitGroup
}

func NewDispatcher(
	heatmap HeatmapService,
	neighborhoods NeighborhoodService,
	logger *logrus.Logger,
	metrics *observability.Metrics,
	workers, queueSize int,
) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	return &Dispatcher{
		heatmap:       heatmap,
		neighborhoods: neighborhoods,
		logger:        logger,
		metrics:       metrics,
		workers:       workers,
		taskTimeout:   defaultTaskTimeout,
		queue:         make(chan aggregationTask, queueSize),
		pending:       make(map[string]struct{}),
	}
}

// Start запускает воркеры; они завершаются при отмене ctx
func (d *Dispatcher) Start(ctx context.Context) {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(ctx, i)
	}
}

// Wait ждет завершения всех воркеров
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) worker(ctx context.Context, id int) {
	defer d.wg.Done()
	log := d.logger.WithField("worker", id)
	for {
		select {
		case <-ctx.Done():
			return
		case task := <-d.queue:
			d.mu.Lock()
			delete(d.pending, task.key)
			d.metrics.DispatcherQueued.Set(float64(len(d.pending)))
			d.mu.Unlock()

			taskCtx, cancel := context.WithTimeout(ctx, d.taskTimeout)
			if err := task.run(taskCtx); err != nil {
				log.WithError(err).WithField("task", task.key).Error("Aggregation task failed")
			}
			cancel()
		}
	}
}

func (d *Dispatcher) enqueue(key string, run func(ctx context.Context) error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.pending[key]; ok {
		return
	}
	select {
	case d.queue <- aggregationTask{key: key, run: run}:
		d.pending[key] = struct{}{}
		d.metrics.DispatcherQueued.Set(float64(len(d.pending)))
	default:
		d.metrics.DispatcherDropped.Inc()
		d.logger.WithField("task", key).Warn("Aggregation queue is full, task dropped")
	}
}

// CellChanged ставит в очередь пересчет ячейки
func (d *Dispatcher) CellChanged(geohash string) {
	d.enqueue("cell:"+geohash, func(ctx context.Context) error {
		_, err := d.heatmap.RecomputeCell(ctx, geohash)
		return err
	})
}

// NeighborhoodChanged ставит в очередь пересчет района
func (d *Dispatcher) NeighborhoodChanged(id uuid.UUID) {
	d.enqueue("neighborhood:"+id.String(), func(ctx context.Context) error {
		_, err := d.neighborhoods.RecomputeNeighborhood(ctx, id)
		return err
	})
}

// IncidentPlaced ставит в очередь привязку нового инцидента к району
func (d *Dispatcher) IncidentPlaced(id uuid.UUID) {
	d.enqueue("placement:"+id.String(), func(ctx context.Context) error {
		return d.neighborhoods.AssignByID(ctx, id)
	})
}
