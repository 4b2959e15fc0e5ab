package news

import (
	"context"
	"fmt"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/shenikar/safety_heatmap/internal/models"
	"golang.org/x/time/rate"
	"googlemaps.github.io/maps"
)

// GoogleGeocoder - геокодер на Google Maps Geocoding API
type GoogleGeocoder struct {
	client *maps.Client
}

func NewGoogleGeocoder(apiKey string) (*GoogleGeocoder, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GoogleGeocoder{client: client}, nil
}

func (g *GoogleGeocoder) Geocode(ctx context.Context, place string) (*Location, error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: place})
	if err != nil {
		if strings.Contains(err.Error(), "ZERO_RESULTS") {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: geocoder: %v", models.ErrUpstreamUnavailable, err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	return locationFromResult(results[0]), nil
}

func locationFromResult(result maps.GeocodingResult) *Location {
	loc := &Location{
		Latitude:  result.Geometry.Location.Lat,
		Longitude: result.Geometry.Location.Lng,
	}
	for _, component := range result.AddressComponents {
		for _, t := range component.Types {
			if t == "country" {
				loc.CountryCode = component.ShortName
			}
		}
	}
	return loc
}

// CachedGeocoder запоминает результаты, включая "не найдено"
type CachedGeocoder struct {
	next  Geocoder
	cache *lru.Cache
}

func NewCachedGeocoder(next Geocoder, size int) (*CachedGeocoder, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create geocoder cache: %w", err)
	}
	return &CachedGeocoder{next: next, cache: cache}, nil
}

func (g *CachedGeocoder) Geocode(ctx context.Context, place string) (*Location, error) {
	key := strings.ToLower(strings.TrimSpace(place))
	if v, ok := g.cache.Get(key); ok {
		loc, _ := v.(*Location)
		return loc, nil
	}
	loc, err := g.next.Geocode(ctx, place)
	if err != nil {
		return nil, err
	}
	g.cache.Add(key, loc)
	return loc, nil
}

// RateLimitedGeocoder ограничивает частоту запросов и время ожидания ответа
type RateLimitedGeocoder struct {
	next    Geocoder
	limiter *rate.Limiter
	timeout time.Duration
}

func NewRateLimitedGeocoder(next Geocoder, perSecond float64, timeout time.Duration) *RateLimitedGeocoder {
	return &RateLimitedGeocoder{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(perSecond), 1),
		timeout: timeout,
	}
}

func (g *RateLimitedGeocoder) Geocode(ctx context.Context, place string) (*Location, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: geocoder rate limit: %v", models.ErrUpstreamUnavailable, err)
	}
	return g.next.Geocode(ctx, place)
}
