package news

import (
	"context"
	"testing"
	"time"

	"github.com/shenikar/safety_heatmap/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedGeocoder_CachesHitsAndMisses(t *testing.T) {
	inner := &fakeGeocoder{places: map[string]*Location{"Centro": {Latitude: 1, Longitude: 2}}}
	g, err := NewCachedGeocoder(inner, 10)
	require.NoError(t, err)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		loc, err := g.Geocode(ctx, "Centro")
		require.NoError(t, err)
		assert.Equal(t, 1.0, loc.Latitude)

		missing, err := g.Geocode(ctx, "Atlantis")
		require.NoError(t, err)
		assert.Nil(t, missing)
	}

	assert.Equal(t, 2, inner.calls)
}

func TestRateLimitedGeocoder_CanceledContext(t *testing.T) {
	g := NewRateLimitedGeocoder(&fakeGeocoder{}, 0.001, time.Second)
	ctx := context.Background()

	// первый запрос расходует единственный токен
	_, err := g.Geocode(ctx, "Centro")
	require.NoError(t, err)

	_, err = g.Geocode(ctx, "Centro")

	assert.ErrorIs(t, err, models.ErrUpstreamUnavailable)
}
