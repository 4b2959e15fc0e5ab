package news

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/jonboulle/clockwork"
	"github.com/robfig/cron/v3"
	"github.com/shenikar/safety_heatmap/internal/models"
	"github.com/shenikar/safety_heatmap/internal/service"
	"github.com/sirupsen/logrus"
)

// RunReport - итог одного прогона
type RunReport struct {
	Fetched      int `json:"fetched"`
	Processed    int `json:"processed"`
	Duplicates   int `json:"duplicates"`
	Irrelevant   int `json:"irrelevant"`
	Unlocated    int `json:"unlocated"`
	Created      int `json:"created"`
	Corroborated int `json:"corroborated"`
	Failed       int `json:"failed"`
}

// Job - периодический сбор новостей и их сверка с инцидентами
type Job struct {
	fetcher    Fetcher
	classifier Classifier
	geocoder   Geocoder
	store      Store
	reconciler service.Reconciler
	logger     *logrus.Logger
	clock      clockwork.Clock

	running atomic.Bool
}

func NewJob(
	fetcher Fetcher,
	classifier Classifier,
	geocoder Geocoder,
	store Store,
	reconciler service.Reconciler,
	logger *logrus.Logger,
	clock clockwork.Clock,
) *Job {
	return &Job{
		fetcher:    fetcher,
		classifier: classifier,
		geocoder:   geocoder,
		store:      store,
		reconciler: reconciler,
		logger:     logger,
		clock:      clock,
	}
}

// Schedule регистрирует прогоны по cron-расписанию
func (j *Job) Schedule(ctx context.Context, c *cron.Cron, spec string) error {
	_, err := c.AddFunc(spec, func() {
		if _, err := j.Run(ctx); err != nil {
			j.logger.WithError(err).Error("News job failed")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid news schedule %q: %w", spec, err)
	}
	return nil
}

// Run выполняет один прогон. Пока прогон идет, следующий пропускается.
// Ошибка обработки одной новости не прерывает прогон.
func (j *Job) Run(ctx context.Context) (*RunReport, error) {
	log := j.logger.WithField("job", "news")
	if !j.running.CompareAndSwap(false, true) {
		log.Info("Previous news run still in progress, skipping")
		return &RunReport{}, nil
	}
	defer j.running.Store(false)

	start := j.clock.Now()
	articles, err := j.fetcher.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch news: %w", err)
	}

	report := &RunReport{Fetched: len(articles)}
	for _, article := range articles {
		if ctx.Err() != nil {
			break
		}
		if err := j.process(ctx, article, report); err != nil {
			report.Failed++
			log.WithError(err).WithField("url", article.URL).Warn("Failed to process article")
		}
	}

	log.WithFields(logrus.Fields{
		"fetched":      report.Fetched,
		"created":      report.Created,
		"corroborated": report.Corroborated,
		"duplicates":   report.Duplicates,
		"failed":       report.Failed,
		"duration":     j.clock.Since(start).String(),
	}).Info("News run finished")
	return report, nil
}

func (j *Job) process(ctx context.Context, article Article, report *RunReport) error {
	processed, err := j.store.Processed(ctx, article.URL)
	if err != nil {
		return err
	}
	if processed {
		report.Duplicates++
		return nil
	}
	report.Processed++

	cls, err := j.classifier.Classify(ctx, article)
	if err != nil {
		return err
	}
	if !cls.Relevant || cls.LocationText == "" {
		report.Irrelevant++
		return j.store.MarkSkipped(ctx, article, SkipIrrelevant)
	}

	loc, err := j.geocoder.Geocode(ctx, cls.LocationText)
	if err != nil {
		return err
	}
	if loc == nil || models.ValidateCoordinates(loc.Latitude, loc.Longitude) != nil {
		report.Unlocated++
		return j.store.MarkSkipped(ctx, article, SkipUnlocated)
	}

	description := cls.Description
	if description == "" {
		description = article.Title
	}
	event := &models.NewsEvent{
		ID:          article.ID,
		Title:       article.Title,
		URL:         article.URL,
		Source:      article.Source,
		Category:    cls.Category,
		Severity:    cls.Severity,
		Description: description,
		Latitude:    loc.Latitude,
		Longitude:   loc.Longitude,
		CountryCode: loc.CountryCode,
		DedupKey:    DedupKey(article.Title, article.PublishedAt, loc.Latitude, loc.Longitude),
		Date:        article.PublishedAt,
	}

	registered, err := j.store.Register(ctx, event)
	if err != nil {
		return err
	}
	if !registered {
		report.Duplicates++
		return nil
	}

	result, err := j.reconciler.Reconcile(ctx, event)
	if err != nil {
		return err
	}
	if result.Created {
		report.Created++
	} else {
		report.Corroborated++
	}
	return j.store.MarkReconciled(ctx, event.ID, result.IncidentID)
}
