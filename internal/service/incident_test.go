package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shenikar/safety_heatmap/internal/events"
	event_mocks "github.com/shenikar/safety_heatmap/internal/events/mocks"
	"github.com/shenikar/safety_heatmap/internal/models"
	"github.com/shenikar/safety_heatmap/internal/observability"
	"github.com/shenikar/safety_heatmap/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type incidentFixture struct {
	service    *incidentService
	repo       *mocks.MockIncidentRepository
	reputation *mocks.MockReputationStore
	trigger    *mocks.MockAggregationTrigger
	publisher  *event_mocks.MockPublisher
}

// newTestIncidentService - вспомогательная функция для создания инстанса сервиса с моками.
func newTestIncidentService(t *testing.T) *incidentFixture {
	ctrl := gomock.NewController(t)
	f := &incidentFixture{
		repo:       mocks.NewMockIncidentRepository(ctrl),
		reputation: mocks.NewMockReputationStore(ctrl),
		trigger:    mocks.NewMockAggregationTrigger(ctrl),
		publisher:  event_mocks.NewMockPublisher(ctrl),
	}
	svc := NewIncidentService(
		f.repo,
		NewConsensusEngine(DefaultConsensusPolicy()),
		f.reputation,
		f.trigger,
		f.publisher,
		newTestLogger(),
		newTestClock(t),
		observability.NewMetricsForTesting(),
	)
	f.service = svc.(*incidentService)
	return f
}

func eventNamed(name string) gomock.Matcher {
	return gomock.Cond(func(e events.Event) bool { return e.Name == name })
}

func TestSubmitIncident_Success(t *testing.T) {
	// Подготовка
	f := newTestIncidentService(t)
	ctx := context.Background()
	report := &models.Incident{
		Type:        models.TypeRobbery,
		Severity:    4,
		Description: "Ограбление у метро",
		Latitude:    57.64911,
		Longitude:   10.40744,
		ReporterID:  "reporter-1",
	}

	// Ожидания
	f.reputation.EXPECT().Get(ctx, "reporter-1").Return(80, nil)
	f.repo.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, inc *models.Incident) error {
			inc.ID = uuid.New()
			return nil
		})
	f.publisher.EXPECT().Publish(gomock.Any(), eventNamed(events.IncidentCreated)).Return(nil)
	f.trigger.EXPECT().IncidentPlaced(gomock.Any())

	// Действие
	incident, err := f.service.SubmitIncident(ctx, report)

	// Проверки
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, incident.ID)
	assert.Equal(t, models.StatusPending, incident.Status)
	assert.Equal(t, 80, incident.ReporterRep)
	assert.Equal(t, "u4pruydqqvj"[:models.GeohashPrecision], incident.Geohash)
	assert.Equal(t, testNow, incident.CreatedAt)
	assert.Zero(t, incident.Count)
}

func TestSubmitIncident_ReputationUnavailable(t *testing.T) {
	f := newTestIncidentService(t)
	ctx := context.Background()
	report := &models.Incident{
		Type:       models.TypeTheft,
		Severity:   2,
		Latitude:   10,
		Longitude:  10,
		ReporterID: "reporter-1",
	}

	f.reputation.EXPECT().Get(ctx, "reporter-1").Return(0, errors.New("timeout"))
	f.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)
	f.trigger.EXPECT().IncidentPlaced(gomock.Any())

	incident, err := f.service.SubmitIncident(ctx, report)

	require.NoError(t, err)
	assert.Equal(t, 0, incident.ReporterRep)
}

func TestSubmitIncident_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		report *models.Incident
	}{
		{"unknown type", &models.Incident{Type: "arson", Severity: 3, ReporterID: "r"}},
		{"severity too high", &models.Incident{Type: models.TypeTheft, Severity: 6, ReporterID: "r"}},
		{"severity zero", &models.Incident{Type: models.TypeTheft, Severity: 0, ReporterID: "r"}},
		{"latitude out of range", &models.Incident{Type: models.TypeTheft, Severity: 3, Latitude: 91, ReporterID: "r"}},
		{"longitude out of range", &models.Incident{Type: models.TypeTheft, Severity: 3, Longitude: -181, ReporterID: "r"}},
		{"no reporter", &models.Incident{Type: models.TypeTheft, Severity: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestIncidentService(t)

			_, err := f.service.SubmitIncident(context.Background(), tt.report)

			require.Error(t, err)
			assert.ErrorIs(t, err, models.ErrInvalidInput)
		})
	}
}

func TestSubmitIncident_RepositoryError(t *testing.T) {
	f := newTestIncidentService(t)
	ctx := context.Background()
	report := &models.Incident{Type: models.TypeTheft, Severity: 2, ReporterID: "r"}

	f.reputation.EXPECT().Get(ctx, "r").Return(50, nil)
	f.repo.EXPECT().Create(ctx, gomock.Any()).Return(errors.New("db down"))

	_, err := f.service.SubmitIncident(ctx, report)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}

// expectCastVote эмулирует транзакцию репозитория: применяет apply к копии инцидента
func expectCastVote(f *incidentFixture, stored *models.Incident) {
	f.repo.EXPECT().
		CastVote(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, v *models.Validation, apply func(*models.Incident) error) (*models.Incident, error) {
			if v.ValidatorID == "duplicate" {
				return nil, models.ErrAlreadyVoted
			}
			inc := *stored
			if err := apply(&inc); err != nil {
				return nil, err
			}
			*stored = inc
			return &inc, nil
		}).
		AnyTimes()
}

func TestCastVote_ThirdUpvoteVerifiesAndTriggersAggregation(t *testing.T) {
	// Подготовка
	f := newTestIncidentService(t)
	ctx := context.Background()
	neighborhoodID := uuid.New()
	stored := &models.Incident{
		ID:             uuid.New(),
		Type:           models.TypeRobbery,
		Severity:       3,
		Geohash:        "u4pruyd",
		NeighborhoodID: &neighborhoodID,
		Status:         models.StatusPending,
		ReporterID:     "reporter",
	}

	// Ожидания
	expectCastVote(f, stored)
	f.reputation.EXPECT().Get(gomock.Any(), gomock.Any()).Return(100, nil).Times(3)
	f.repo.EXPECT().InvalidateIncidentCache(ctx, stored.ID).Return(nil).Times(3)
	f.publisher.EXPECT().Publish(gomock.Any(), eventNamed(events.IncidentVerified)).Return(nil)
	f.trigger.EXPECT().CellChanged("u4pruyd")
	f.trigger.EXPECT().NeighborhoodChanged(neighborhoodID)

	// Действие
	var result *models.VoteResult
	var err error
	for _, validator := range []string{"v1", "v2", "v3"} {
		result, err = f.service.CastVote(ctx, stored.ID, validator, models.VoteUp, 1)
		require.NoError(t, err)
	}

	// Проверки
	assert.Equal(t, models.StatusVerified, result.Status)
	assert.Equal(t, 3, result.ValidationCount)
	assert.InDelta(t, 1.0, result.ValidationScore, 1e-12)
}

func TestCastVote_ThreeDownvotesReject(t *testing.T) {
	f := newTestIncidentService(t)
	ctx := context.Background()
	stored := &models.Incident{ID: uuid.New(), Status: models.StatusPending, ReporterID: "reporter", Geohash: "u4pruyd"}

	expectCastVote(f, stored)
	f.reputation.EXPECT().Get(gomock.Any(), gomock.Any()).Return(100, nil).Times(3)
	f.repo.EXPECT().InvalidateIncidentCache(ctx, stored.ID).Return(nil).Times(3)
	f.publisher.EXPECT().Publish(gomock.Any(), eventNamed(events.IncidentRejected)).Return(nil)

	var result *models.VoteResult
	var err error
	for _, validator := range []string{"v1", "v2", "v3"} {
		result, err = f.service.CastVote(ctx, stored.ID, validator, models.VoteDown, 1)
		require.NoError(t, err)
	}

	assert.Equal(t, models.StatusRejected, result.Status)
	assert.InDelta(t, -1.0, result.ValidationScore, 1e-12)
}

func TestCastVote_DuplicateVote(t *testing.T) {
	f := newTestIncidentService(t)
	ctx := context.Background()
	stored := &models.Incident{ID: uuid.New(), Status: models.StatusPending, ReporterID: "reporter"}

	expectCastVote(f, stored)
	f.reputation.EXPECT().Get(gomock.Any(), "duplicate").Return(50, nil)

	_, err := f.service.CastVote(ctx, stored.ID, "duplicate", models.VoteUp, 1)

	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrAlreadyVoted)
	assert.Zero(t, stored.Count)
}

func TestCastVote_PreconditionsLeaveIncidentUntouched(t *testing.T) {
	tests := []struct {
		name      string
		status    models.Status
		validator string
		wantErr   error
	}{
		{"already verified", models.StatusVerified, "v1", models.ErrNotPending},
		{"auto verified", models.StatusAutoVerified, "v1", models.ErrNotPending},
		{"self vote", models.StatusPending, "reporter", models.ErrSelfVote},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestIncidentService(t)
			stored := &models.Incident{ID: uuid.New(), Status: tt.status, ReporterID: "reporter"}
			expectCastVote(f, stored)
			f.reputation.EXPECT().Get(gomock.Any(), tt.validator).Return(50, nil)

			_, err := f.service.CastVote(context.Background(), stored.ID, tt.validator, models.VoteUp, 1)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, stored.Count)
			assert.Equal(t, tt.status, stored.Status)
		})
	}
}

func TestCastVote_InvalidVote(t *testing.T) {
	f := newTestIncidentService(t)

	_, err := f.service.CastVote(context.Background(), uuid.New(), "v1", 0, 1)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = f.service.CastVote(context.Background(), uuid.New(), "v1", models.VoteUp, 1.5)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestGetIncident_Success_FromCache(t *testing.T) {
	// Подготовка
	f := newTestIncidentService(t)
	ctx := context.Background()
	incidentID := uuid.New()
	expectedIncident := &models.Incident{ID: incidentID, Description: "из кеша"}

	// Ожидания
	f.repo.EXPECT().
		GetIncidentFromCache(ctx, incidentID).
		Return(expectedIncident, nil).
		Times(1)

	// Действие
	incident, err := f.service.GetIncident(ctx, incidentID)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expectedIncident, incident)
}

func TestGetIncident_Success_FromDB(t *testing.T) {
	f := newTestIncidentService(t)
	ctx := context.Background()
	incidentID := uuid.New()
	expectedIncident := &models.Incident{ID: incidentID, Description: "из БД"}

	// 1. Промах кеша
	f.repo.EXPECT().GetIncidentFromCache(ctx, incidentID).Return(nil, nil)
	// 2. Поколение кеша до чтения БД
	gen := f.repo.EXPECT().IncidentCacheGeneration(ctx, incidentID).Return(int64(4), nil)
	// 3. Попадание в БД
	f.repo.EXPECT().GetByID(ctx, incidentID).Return(expectedIncident, nil).After(gen)
	// 4. Запись в кеш с тем же поколением
	f.repo.EXPECT().SetIncidentCache(ctx, expectedIncident, int64(4)).Return(nil)

	incident, err := f.service.GetIncident(ctx, incidentID)

	require.NoError(t, err)
	assert.Equal(t, expectedIncident, incident)
}

func TestGetIncident_GenerationUnavailableSkipsCacheWrite(t *testing.T) {
	f := newTestIncidentService(t)
	ctx := context.Background()
	incidentID := uuid.New()
	expectedIncident := &models.Incident{ID: incidentID}

	f.repo.EXPECT().GetIncidentFromCache(ctx, incidentID).Return(nil, nil)
	f.repo.EXPECT().IncidentCacheGeneration(ctx, incidentID).Return(int64(0), errors.New("redis down"))
	f.repo.EXPECT().GetByID(ctx, incidentID).Return(expectedIncident, nil)
	f.repo.EXPECT().SetIncidentCache(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	incident, err := f.service.GetIncident(ctx, incidentID)

	require.NoError(t, err)
	assert.Equal(t, expectedIncident, incident)
}

func TestGetIncident_NotFound(t *testing.T) {
	f := newTestIncidentService(t)
	ctx := context.Background()
	incidentID := uuid.New()

	f.repo.EXPECT().GetIncidentFromCache(ctx, incidentID).Return(nil, nil)
	f.repo.EXPECT().IncidentCacheGeneration(ctx, incidentID).Return(int64(0), nil)
	f.repo.EXPECT().GetByID(ctx, incidentID).Return(nil, models.ErrNotFound)

	_, err := f.service.GetIncident(ctx, incidentID)

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSetHidden_CountableIncidentTriggersRecompute(t *testing.T) {
	f := newTestIncidentService(t)
	ctx := context.Background()
	id := uuid.New()
	hidden := &models.Incident{ID: id, Status: models.StatusVerified, Hidden: true, Geohash: "u4pruyd"}

	f.repo.EXPECT().SetHidden(ctx, id, true).Return(hidden, nil)
	f.repo.EXPECT().InvalidateIncidentCache(ctx, id).Return(nil)
	f.trigger.EXPECT().CellChanged("u4pruyd")

	incident, err := f.service.SetHidden(ctx, id, true)

	require.NoError(t, err)
	assert.True(t, incident.Hidden)
}

func TestSetHidden_PendingIncidentSkipsRecompute(t *testing.T) {
	f := newTestIncidentService(t)
	ctx := context.Background()
	id := uuid.New()

	f.repo.EXPECT().SetHidden(ctx, id, true).Return(&models.Incident{ID: id, Status: models.StatusPending, Hidden: true}, nil)
	f.repo.EXPECT().InvalidateIncidentCache(ctx, id).Return(nil)

	_, err := f.service.SetHidden(ctx, id, true)

	require.NoError(t, err)
}
