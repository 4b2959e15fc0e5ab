package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/shenikar/safety_heatmap/internal/events"
	"github.com/shenikar/safety_heatmap/internal/models"
	"github.com/shenikar/safety_heatmap/internal/observability"
	"github.com/shenikar/safety_heatmap/internal/scoring"
	"github.com/sirupsen/logrus"
)

// IncidentService определяет контракт для записи инцидентов и голосования
type IncidentService interface {
	SubmitIncident(ctx context.Context, report *models.Incident) (*models.Incident, error)
	CastVote(ctx context.Context, incidentID uuid.UUID, validatorID string, vote models.Vote, confidence float64) (*models.VoteResult, error)
	GetIncident(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	SetHidden(ctx context.Context, id uuid.UUID, hidden bool) (*models.Incident, error)
}

type incidentService struct {
	repo       IncidentRepository
	consensus  ConsensusEngine
	reputation ReputationStore
	trigger    AggregationTrigger
	publisher  events.Publisher
	logger     *logrus.Logger
	clock      clockwork.Clock
	metrics    *observability.Metrics
}

func NewIncidentService(
	repo IncidentRepository,
	consensus ConsensusEngine,
	reputation ReputationStore,
	trigger AggregationTrigger,
	publisher events.Publisher,
	logger *logrus.Logger,
	clock clockwork.Clock,
	metrics *observability.Metrics,
) IncidentService {
	return &incidentService{
		repo:       repo,
		consensus:  consensus,
		reputation: reputation,
		trigger:    trigger,
		publisher:  publisher,
		logger:     logger,
		clock:      clock,
		metrics:    metrics,
	}
}

// SubmitIncident проверяет сообщение, фиксирует репутацию автора и сохраняет инцидент в статусе pending
func (s *incidentService) SubmitIncident(ctx context.Context, report *models.Incident) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "SubmitIncident",
		"reporter_id": report.ReporterID,
	})

	if report.ReporterID == "" {
		return nil, fmt.Errorf("%w: reporter id is required", models.ErrInvalidInput)
	}
	if err := report.Validate(); err != nil {
		log.WithError(err).Warn("Rejected malformed incident")
		return nil, err
	}

	incident := &models.Incident{
		Type:        report.Type,
		Severity:    report.Severity,
		Description: report.Description,
		Status:      models.StatusPending,
		ReporterID:  report.ReporterID,
		ReporterRep: s.reputationOf(ctx, log, report.ReporterID),
		CreatedAt:   s.clock.Now().UTC(),
	}
	if err := incident.SetLocation(report.Latitude, report.Longitude); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, incident); err != nil {
		log.WithError(err).Error("Failed to create incident in repository")
		return nil, fmt.Errorf("service: could not create incident: %w", err)
	}

	log = log.WithField("incident_id", incident.ID)
	log.Info("Incident submitted")

	emit(ctx, s.publisher, log, events.IncidentCreated, incident, s.clock.Now())
	s.trigger.IncidentPlaced(incident.ID)
	return incident, nil
}

// CastVote учитывает голос валидатора атомарно с обновлением агрегата инцидента
func (s *incidentService) CastVote(ctx context.Context, incidentID uuid.UUID, validatorID string, vote models.Vote, confidence float64) (*models.VoteResult, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":      "incident",
		"method":       "CastVote",
		"incident_id":  incidentID,
		"validator_id": validatorID,
	})

	validation := &models.Validation{
		IncidentID:  incidentID,
		ValidatorID: validatorID,
		Vote:        vote,
		Confidence:  confidence,
	}
	if err := validation.Validate(); err != nil {
		s.metrics.VotesCast.WithLabelValues("rejected").Inc()
		return nil, err
	}
	validation.ValidatorRep = s.reputationOf(ctx, log, validatorID)
	validation.CreatedAt = s.clock.Now().UTC()

	incident, err := s.repo.CastVote(ctx, validation, func(inc *models.Incident) error {
		_, err := s.consensus.Apply(inc, validation)
		return err
	})
	if err != nil {
		if errors.Is(err, models.ErrAlreadyVoted) {
			s.metrics.VotesCast.WithLabelValues("duplicate").Inc()
			log.Info("Duplicate vote rejected")
		} else {
			s.metrics.VotesCast.WithLabelValues("rejected").Inc()
			log.WithError(err).Warn("Vote not applied")
		}
		return nil, fmt.Errorf("service: could not cast vote: %w", err)
	}
	s.metrics.VotesCast.WithLabelValues("accepted").Inc()

	if err := s.repo.InvalidateIncidentCache(ctx, incidentID); err != nil {
		log.WithError(err).Warn("Failed to invalidate incident cache")
	}

	log = log.WithFields(logrus.Fields{
		"status": incident.Status,
		"score":  incident.Score,
		"count":  incident.Count,
	})
	log.Info("Vote applied")

	switch incident.Status {
	case models.StatusVerified:
		s.metrics.StatusTransitions.WithLabelValues(string(incident.Status)).Inc()
		emit(ctx, s.publisher, log, events.IncidentVerified, incident, s.clock.Now())
		s.trigger.CellChanged(incident.Geohash)
		if incident.NeighborhoodID != nil {
			s.trigger.NeighborhoodChanged(*incident.NeighborhoodID)
		}
	case models.StatusRejected:
		s.metrics.StatusTransitions.WithLabelValues(string(incident.Status)).Inc()
		emit(ctx, s.publisher, log, events.IncidentRejected, incident, s.clock.Now())
	}

	return &models.VoteResult{
		Status:          incident.Status,
		ValidationScore: incident.Score,
		ValidationCount: incident.Count,
	}, nil
}

// GetIncident получает инцидент по ID, сначала из кеша
func (s *incidentService) GetIncident(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "GetIncident",
		"incident_id": id,
	})

	cached, err := s.repo.GetIncidentFromCache(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to read incident cache")
	}
	if cached != nil {
		return cached, nil
	}

	// поколение читается до БД: запись, пересекшаяся с инвалидацией, отбрасывается
	generation, genErr := s.repo.IncidentCacheGeneration(ctx, id)
	if genErr != nil {
		log.WithError(genErr).Warn("Failed to read incident cache generation")
	}

	incident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not get incident: %w", err)
	}
	if genErr == nil {
		if err := s.repo.SetIncidentCache(ctx, incident, generation); err != nil {
			log.WithError(err).Warn("Failed to write incident cache")
		}
	}
	return incident, nil
}

// SetHidden переключает флаг модерации и пересчитывает затронутые агрегаты
func (s *incidentService) SetHidden(ctx context.Context, id uuid.UUID, hidden bool) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "SetHidden",
		"incident_id": id,
		"hidden":      hidden,
	})

	incident, err := s.repo.SetHidden(ctx, id, hidden)
	if err != nil {
		log.WithError(err).Warn("Failed to change hidden flag")
		return nil, fmt.Errorf("service: could not change hidden flag: %w", err)
	}
	if err := s.repo.InvalidateIncidentCache(ctx, id); err != nil {
		log.WithError(err).Warn("Failed to invalidate incident cache")
	}

	if incident.Status.Countable() {
		s.trigger.CellChanged(incident.Geohash)
		if incident.NeighborhoodID != nil {
			s.trigger.NeighborhoodChanged(*incident.NeighborhoodID)
		}
	}
	log.Info("Hidden flag updated")
	return incident, nil
}

// reputationOf возвращает снимок репутации; недоступное хранилище дает 0
func (s *incidentService) reputationOf(ctx context.Context, log *logrus.Entry, userID string) int {
	rep, err := s.reputation.Get(ctx, userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Reputation lookup failed, using 0")
		return 0
	}
	return scoring.ClampReputation(rep)
}
