package service

import (
	"context"
	"errors"
	"testing"
	"time"

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

type reconcilerFixture struct {
	service   *reconciler
	repo      *mocks.MockIncidentRepository
	trigger   *mocks.MockAggregationTrigger
	publisher *event_mocks.MockPublisher
}

func newTestReconciler(t *testing.T) *reconcilerFixture {
	ctrl := gomock.NewController(t)
	f := &reconcilerFixture{
		repo:      mocks.NewMockIncidentRepository(ctrl),
		trigger:   mocks.NewMockAggregationTrigger(ctrl),
		publisher: event_mocks.NewMockPublisher(ctrl),
	}
	svc := NewReconciler(
		f.repo,
		f.trigger,
		f.publisher,
		ReconcileConfig{Window: 7 * 24 * time.Hour, RadiusMeters: 200, ReporterReputation: 100},
		newTestLogger(),
		newTestClock(t),
		observability.NewMetricsForTesting(),
	)
	f.service = svc.(*reconciler)
	return f
}

// ~150 м к северу от точки новости
const offset150m = 0.00135

func robberyNews() *models.NewsEvent {
	return &models.NewsEvent{
		ID:          "news-1",
		Title:       "Assalto na avenida",
		URL:         "https://example.org/news/1",
		Source:      "example.org",
		Category:    models.TypeRobbery,
		Severity:    4,
		Description: "Assalto a mão armada",
		Latitude:    -22.9068,
		Longitude:   -43.1729,
		Date:        testNow,
	}
}

func TestReconcile_CorroboratesNearbyIncident(t *testing.T) {
	// Подготовка
	f := newTestReconciler(t)
	ctx := context.Background()
	news := robberyNews()
	neighborhoodID := uuid.New()
	existing := &models.Incident{
		ID:             uuid.New(),
		Type:           models.TypeRobbery,
		Status:         models.StatusVerified,
		Latitude:       news.Latitude + offset150m,
		Longitude:      news.Longitude,
		Geohash:        "75cm2tx",
		NeighborhoodID: &neighborhoodID,
		CreatedAt:      testNow.Add(-48 * time.Hour),
	}

	// Ожидания
	f.repo.EXPECT().
		FindRecentByType(ctx, models.TypeRobbery, testNow.Add(-7*24*time.Hour), news.Latitude, news.Longitude, 200.0).
		Return([]*models.Incident{existing}, nil)
	f.repo.EXPECT().
		AppendSourceNews(ctx, existing.ID, gomock.Cond(func(ref models.SourceNewsRef) bool { return ref.NewsID == "news-1" })).
		Return(true, nil)
	f.repo.EXPECT().InvalidateIncidentCache(ctx, existing.ID).Return(nil)
	f.publisher.EXPECT().Publish(gomock.Any(), eventNamed(events.IncidentCorroborated)).Return(nil)
	f.trigger.EXPECT().CellChanged("75cm2tx")
	f.trigger.EXPECT().NeighborhoodChanged(neighborhoodID)

	// Действие
	result, err := f.service.Reconcile(ctx, news)

	// Проверки
	require.NoError(t, err)
	assert.False(t, result.Created)
	assert.Equal(t, existing.ID, result.IncidentID)
	assert.True(t, existing.HasSourceNews("news-1"))
}

func TestReconcile_CreatesAutoVerifiedWhenFar(t *testing.T) {
	// Подготовка
	f := newTestReconciler(t)
	ctx := context.Background()
	news := robberyNews()
	// ~5 км: репозиторий не должен был вернуть такой инцидент, но радиус проверяется повторно
	far := &models.Incident{
		ID:        uuid.New(),
		Type:      models.TypeRobbery,
		Status:    models.StatusVerified,
		Latitude:  news.Latitude + 0.045,
		Longitude: news.Longitude,
	}

	var created *models.Incident
	f.repo.EXPECT().FindRecentByType(ctx, models.TypeRobbery, gomock.Any(), news.Latitude, news.Longitude, 200.0).
		Return([]*models.Incident{far}, nil)
	f.repo.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, inc *models.Incident) error {
			inc.ID = uuid.New()
			created = inc
			return nil
		})
	f.publisher.EXPECT().Publish(gomock.Any(), eventNamed(events.IncidentCreated)).Return(nil)
	f.trigger.EXPECT().CellChanged(gomock.Any())
	f.trigger.EXPECT().IncidentPlaced(gomock.Any())

	// Действие
	result, err := f.service.Reconcile(ctx, news)

	// Проверки
	require.NoError(t, err)
	assert.True(t, result.Created)
	require.NotNil(t, created)
	assert.Equal(t, created.ID, result.IncidentID)
	assert.Equal(t, models.StatusAutoVerified, created.Status)
	assert.Equal(t, 1.0, created.Score)
	assert.Equal(t, 1, created.Count)
	assert.Equal(t, 4, created.Severity)
	assert.Equal(t, 100, created.ReporterRep)
	assert.Equal(t, "Assalto a mão armada", created.Description)
	require.Len(t, created.SourceNews, 1)
	assert.Equal(t, "news-1", created.SourceNews[0].NewsID)
	assert.Len(t, created.Geohash, models.GeohashPrecision)
}

func TestReconcile_UnknownSeverityGetsDefault(t *testing.T) {
	f := newTestReconciler(t)
	ctx := context.Background()
	news := robberyNews()
	news.Severity = 0

	var created *models.Incident
	f.repo.EXPECT().FindRecentByType(ctx, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, nil)
	f.repo.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, inc *models.Incident) error {
			inc.ID = uuid.New()
			created = inc
			return nil
		})
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)
	f.trigger.EXPECT().CellChanged(gomock.Any())
	f.trigger.EXPECT().IncidentPlaced(gomock.Any())

	_, err := f.service.Reconcile(ctx, news)

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, defaultNewsSeverity, created.Severity)
}

func TestReconcile_SameNewsTwiceIsNoop(t *testing.T) {
	f := newTestReconciler(t)
	ctx := context.Background()
	news := robberyNews()
	existing := &models.Incident{
		ID:         uuid.New(),
		Type:       models.TypeRobbery,
		Status:     models.StatusAutoVerified,
		Latitude:   news.Latitude,
		Longitude:  news.Longitude,
		SourceNews: []models.SourceNewsRef{news.Ref(testNow)},
	}

	f.repo.EXPECT().FindRecentByType(ctx, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]*models.Incident{existing}, nil)

	result, err := f.service.Reconcile(ctx, news)

	require.NoError(t, err)
	assert.False(t, result.Created)
	assert.Equal(t, existing.ID, result.IncidentID)
	assert.Len(t, existing.SourceNews, 1)
}

func TestReconcile_ConcurrentAppendLost(t *testing.T) {
	f := newTestReconciler(t)
	ctx := context.Background()
	news := robberyNews()
	existing := &models.Incident{ID: uuid.New(), Type: models.TypeRobbery, Status: models.StatusPending,
		Latitude: news.Latitude, Longitude: news.Longitude}

	f.repo.EXPECT().FindRecentByType(ctx, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]*models.Incident{existing}, nil)
	f.repo.EXPECT().AppendSourceNews(ctx, existing.ID, gomock.Any()).Return(false, nil)

	result, err := f.service.Reconcile(ctx, news)

	require.NoError(t, err)
	assert.False(t, result.Created)
}

func TestReconcile_PicksClosestAndSkipsRejected(t *testing.T) {
	f := newTestReconciler(t)
	ctx := context.Background()
	news := robberyNews()
	rejected := &models.Incident{ID: uuid.New(), Type: models.TypeRobbery, Status: models.StatusRejected,
		Latitude: news.Latitude, Longitude: news.Longitude}
	farther := &models.Incident{ID: uuid.New(), Type: models.TypeRobbery, Status: models.StatusVerified,
		Latitude: news.Latitude + offset150m, Longitude: news.Longitude}
	closer := &models.Incident{ID: uuid.New(), Type: models.TypeRobbery, Status: models.StatusPending,
		Latitude: news.Latitude + offset150m/3, Longitude: news.Longitude}

	f.repo.EXPECT().FindRecentByType(ctx, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]*models.Incident{rejected, farther, closer}, nil)
	f.repo.EXPECT().AppendSourceNews(ctx, closer.ID, gomock.Any()).Return(true, nil)
	f.repo.EXPECT().InvalidateIncidentCache(ctx, closer.ID).Return(nil)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)
	f.trigger.EXPECT().CellChanged(gomock.Any())

	result, err := f.service.Reconcile(ctx, news)

	require.NoError(t, err)
	assert.Equal(t, closer.ID, result.IncidentID)
}

func TestReconcile_InvalidEvent(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(e *models.NewsEvent)
	}{
		{"no id", func(e *models.NewsEvent) { e.ID = "" }},
		{"unknown category", func(e *models.NewsEvent) { e.Category = "weather" }},
		{"bad coordinates", func(e *models.NewsEvent) { e.Latitude = 123 }},
		{"bad severity", func(e *models.NewsEvent) { e.Severity = 9 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestReconciler(t)
			news := robberyNews()
			tt.mutate(news)

			_, err := f.service.Reconcile(context.Background(), news)

			assert.ErrorIs(t, err, models.ErrInvalidInput)
		})
	}
}

func TestReconcile_RepositoryError(t *testing.T) {
	f := newTestReconciler(t)
	ctx := context.Background()

	f.repo.EXPECT().FindRecentByType(ctx, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("db down"))

	_, err := f.service.Reconcile(ctx, robberyNews())

	require.Error(t, err)
}
