package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	event_mocks "github.com/shenikar/safety_heatmap/internal/events/mocks"
	"github.com/shenikar/safety_heatmap/internal/models"
	"github.com/shenikar/safety_heatmap/internal/observability"
	"github.com/shenikar/safety_heatmap/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type neighborhoodFixture struct {
	service       *neighborhoodService
	incidents     *mocks.MockIncidentRepository
	neighborhoods *mocks.MockNeighborhoodRepository
	publisher     *event_mocks.MockPublisher
}

func newTestNeighborhoodService(t *testing.T) *neighborhoodFixture {
	ctrl := gomock.NewController(t)
	f := &neighborhoodFixture{
		incidents:     mocks.NewMockIncidentRepository(ctrl),
		neighborhoods: mocks.NewMockNeighborhoodRepository(ctrl),
		publisher:     event_mocks.NewMockPublisher(ctrl),
	}
	svc := NewNeighborhoodService(
		f.incidents,
		f.neighborhoods,
		f.publisher,
		newTestLogger(),
		newTestClock(t),
		observability.NewMetricsForTesting(),
	)
	f.service = svc.(*neighborhoodService)
	return f
}

// square строит квадратный полигон района
func square(minLon, minLat, maxLon, maxLat float64) orb.MultiPolygon {
	return orb.MultiPolygon{{{
		{minLon, minLat}, {maxLon, minLat}, {maxLon, maxLat}, {minLon, maxLat}, {minLon, minLat},
	}}}
}

func TestAssignNeighborhood_PointInsidePolygon(t *testing.T) {
	// Подготовка
	f := newTestNeighborhoodService(t)
	ctx := context.Background()
	centro := &models.Neighborhood{ID: uuid.New(), Name: "Centro", Boundary: square(-47.0, -23.0, -46.0, -22.0)}
	norte := &models.Neighborhood{ID: uuid.New(), Name: "Norte", Boundary: square(-47.0, -22.0, -46.0, -21.0)}
	incident := &models.Incident{ID: uuid.New(), Latitude: -22.5, Longitude: -46.5}

	// Ожидания
	f.neighborhoods.EXPECT().List(ctx).Return([]*models.Neighborhood{norte, centro}, nil)
	f.incidents.EXPECT().SetNeighborhood(ctx, incident.ID, &centro.ID).Return(nil)
	f.incidents.EXPECT().InvalidateIncidentCache(ctx, incident.ID).Return(nil)

	// Действие
	id, err := f.service.AssignNeighborhood(ctx, incident)

	// Проверки
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, centro.ID, *id)
	assert.Equal(t, centro.ID, *incident.NeighborhoodID)
}

func TestAssignNeighborhood_OutsideAllPolygons(t *testing.T) {
	f := newTestNeighborhoodService(t)
	ctx := context.Background()
	centro := &models.Neighborhood{ID: uuid.New(), Name: "Centro", Boundary: square(-47.0, -23.0, -46.0, -22.0)}
	incident := &models.Incident{ID: uuid.New(), Latitude: 10, Longitude: 10}

	f.neighborhoods.EXPECT().List(ctx).Return([]*models.Neighborhood{centro}, nil)

	id, err := f.service.AssignNeighborhood(ctx, incident)

	require.NoError(t, err)
	assert.Nil(t, id)
	assert.Nil(t, incident.NeighborhoodID)
}

func TestAssignNeighborhood_PolygonsLoadedOnce(t *testing.T) {
	f := newTestNeighborhoodService(t)
	ctx := context.Background()

	f.neighborhoods.EXPECT().List(ctx).Return(nil, nil).Times(1)

	for i := 0; i < 3; i++ {
		_, err := f.service.AssignNeighborhood(ctx, &models.Incident{ID: uuid.New()})
		require.NoError(t, err)
	}
}

func TestRecomputeNeighborhood_Rollup(t *testing.T) {
	// Подготовка
	f := newTestNeighborhoodService(t)
	ctx := context.Background()
	id := uuid.New()
	older := testNow.Add(-48 * time.Hour)
	incidents := []*models.Incident{
		{Type: models.TypeHomicide, Status: models.StatusVerified, CreatedAt: older},
		{Type: models.TypeTheft, Status: models.StatusAutoVerified, CreatedAt: testNow},
		{Type: models.TypeRobbery, Status: models.StatusVerified, Hidden: true, CreatedAt: testNow.Add(time.Hour)},
	}

	// Ожидания
	f.neighborhoods.EXPECT().GetByID(ctx, id).Return(&models.Neighborhood{ID: id, Name: "Centro"}, nil)
	f.incidents.EXPECT().ListCountableByNeighborhood(ctx, id).Return(incidents, nil)
	f.neighborhoods.EXPECT().UpdateRollup(ctx, gomock.Any()).Return(nil)
	f.publisher.EXPECT().Publish(gomock.Any(), eventNamed("neighborhood-updated")).Return(nil)

	// Действие
	n, err := f.service.RecomputeNeighborhood(ctx, id)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, 2, n.IncidentCount)
	require.NotNil(t, n.LastIncidentAt)
	assert.Equal(t, testNow, *n.LastIncidentAt)
	// #b71c1c и #f9a825
	assert.Equal(t, "#d86221", n.AverageColor)
}

func TestRecomputeNeighborhood_EmptyClearsRollup(t *testing.T) {
	f := newTestNeighborhoodService(t)
	ctx := context.Background()
	id := uuid.New()
	last := testNow
	stale := &models.Neighborhood{ID: id, IncidentCount: 4, AverageColor: "#ffffff", LastIncidentAt: &last}

	f.neighborhoods.EXPECT().GetByID(ctx, id).Return(stale, nil)
	f.incidents.EXPECT().ListCountableByNeighborhood(ctx, id).Return(nil, nil)
	f.neighborhoods.EXPECT().UpdateRollup(ctx, stale).Return(nil)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	n, err := f.service.RecomputeNeighborhood(ctx, id)

	require.NoError(t, err)
	assert.Zero(t, n.IncidentCount)
	assert.Empty(t, n.AverageColor)
	assert.Nil(t, n.LastIncidentAt)
}

func TestAverageColor(t *testing.T) {
	tests := []struct {
		name  string
		types []models.IncidentType
		want  string
	}{
		{"empty", nil, ""},
		{"single", []models.IncidentType{models.TypeTheft}, "#f9a825"},
		{"same type", []models.IncidentType{models.TypeSiege, models.TypeSiege}, "#4a148c"},
		{"unknown type falls back to other", []models.IncidentType{"arson"}, "#616161"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			incidents := make([]*models.Incident, 0, len(tt.types))
			for _, typ := range tt.types {
				incidents = append(incidents, &models.Incident{Type: typ})
			}
			assert.Equal(t, tt.want, AverageColor(incidents))
		})
	}
}

func TestQueryNeighborhoods_WithIncidentsOnly(t *testing.T) {
	f := newTestNeighborhoodService(t)
	ctx := context.Background()
	empty := &models.Neighborhood{ID: uuid.New(), Name: "Empty"}
	busy := &models.Neighborhood{ID: uuid.New(), Name: "Busy", IncidentCount: 3}

	f.neighborhoods.EXPECT().List(ctx).Return([]*models.Neighborhood{empty, busy}, nil).Times(2)

	all, err := f.service.QueryNeighborhoods(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := f.service.QueryNeighborhoods(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, []*models.Neighborhood{busy}, filtered)
}

func TestImportGeoJSON(t *testing.T) {
	f := newTestNeighborhoodService(t)
	ctx := context.Background()
	data := []byte(`{
		"type": "FeatureCollection",
		"features": [
			{"type": "Feature", "properties": {"name": "Centro"},
			 "geometry": {"type": "Polygon", "coordinates": [[[-47,-23],[-46,-23],[-46,-22],[-47,-22],[-47,-23]]]}},
			{"type": "Feature", "properties": {"name": "Ponto"},
			 "geometry": {"type": "Point", "coordinates": [-46.5,-22.5]}},
			{"type": "Feature", "properties": {},
			 "geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,1],[0,0]]]}}
		]
	}`)

	var stored *models.Neighborhood
	f.neighborhoods.EXPECT().
		UpsertBoundary(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, n *models.Neighborhood) error {
			stored = n
			return nil
		})
	f.neighborhoods.EXPECT().List(ctx).DoAndReturn(func(context.Context) ([]*models.Neighborhood, error) {
		return []*models.Neighborhood{stored}, nil
	})

	imported, err := f.service.ImportGeoJSON(ctx, data)

	require.NoError(t, err)
	assert.Equal(t, 1, imported)
	assert.Equal(t, "Centro", stored.Name)
	assert.Equal(t, uuid.NewSHA1(neighborhoodNamespace, []byte("Centro")), stored.ID)
	id, ok := f.service.locate(-22.5, -46.5)
	assert.True(t, ok)
	assert.Equal(t, stored.ID, id)
}

func TestImportGeoJSON_Malformed(t *testing.T) {
	f := newTestNeighborhoodService(t)

	_, err := f.service.ImportGeoJSON(context.Background(), []byte(`{"type":`))

	assert.ErrorIs(t, err, models.ErrInvalidInput)
}
