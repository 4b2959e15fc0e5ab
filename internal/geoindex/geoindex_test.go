package geoindex

import (
	"testing"

	"github.com/shenikar/safety_heatmap/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_KnownValue(t *testing.T) {
	hash, err := Encode(57.64911, 10.40744, 11)
	require.NoError(t, err)
	assert.Equal(t, "u4pruydqqvj", hash)
}

func TestEncode_InvalidCoordinates(t *testing.T) {
	_, err := Encode(91, 0, models.GeohashPrecision)
	require.ErrorIs(t, err, models.ErrInvalidCoordinates)
	require.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = Encode(0, -180.5, models.GeohashPrecision)
	require.ErrorIs(t, err, models.ErrInvalidCoordinates)
}

func TestDecode_RoundTripWithinCell(t *testing.T) {
	lat, lon := -23.55052, -46.633308
	hash, err := Encode(lat, lon, models.GeohashPrecision)
	require.NoError(t, err)

	p, err := Decode(hash)
	require.NoError(t, err)
	h, w := CellSize(models.GeohashPrecision)
	assert.InDelta(t, lat, p.Lat, h/2)
	assert.InDelta(t, lon, p.Lon, w/2)
}

func TestDecode_InvalidHash(t *testing.T) {
	_, err := Decode("abc!")
	require.ErrorIs(t, err, models.ErrInvalidInput)
	_, err = Decode("")
	require.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestNeighbors(t *testing.T) {
	hash, err := Encode(40.7128, -74.0060, models.GeohashPrecision)
	require.NoError(t, err)

	ns, err := Neighbors(hash)
	require.NoError(t, err)
	require.Len(t, ns, 8)

	seen := map[string]bool{}
	for _, n := range ns {
		assert.Len(t, n, models.GeohashPrecision)
		assert.NotEqual(t, hash, n)
		seen[n] = true
	}
	assert.Len(t, seen, 8)
}

func TestCellSize_Precision7(t *testing.T) {
	h, w := CellSize(7)
	// ~153m x 153m на экваторе
	assert.InDelta(t, 0.001373, h, 0.00001)
	assert.InDelta(t, 0.001373, w, 0.00001)
}

func TestCellsCoveringBbox_CoversEveryInteriorPoint(t *testing.T) {
	b := models.BBox{MinLat: 4.60, MinLon: -74.09, MaxLat: 4.61, MaxLon: -74.08}
	cells, err := CellsCoveringBbox(b, models.GeohashPrecision)
	require.NoError(t, err)

	set := make(map[string]bool, len(cells))
	for _, c := range cells {
		set[c] = true
	}
	assert.Len(t, set, len(cells), "cells must be unique")

	for lat := b.MinLat; lat <= b.MaxLat; lat += 0.0003 {
		for lon := b.MinLon; lon <= b.MaxLon; lon += 0.0003 {
			hash, err := Encode(lat, lon, models.GeohashPrecision)
			require.NoError(t, err)
			assert.True(t, set[hash], "point %f,%f not covered", lat, lon)
		}
	}
	assert.LessOrEqual(t, len(cells), EstimateCells(b, models.GeohashPrecision))
}

func TestCellsCoveringBbox_SinglePoint(t *testing.T) {
	b := models.BBox{MinLat: 10, MinLon: 10, MaxLat: 10, MaxLon: 10}
	cells, err := CellsCoveringBbox(b, models.GeohashPrecision)
	require.NoError(t, err)
	assert.Len(t, cells, 1)
}

func TestCellsCoveringBbox_Inverted(t *testing.T) {
	_, err := CellsCoveringBbox(models.BBox{MinLat: 10, MinLon: 10, MaxLat: 9, MaxLon: 11}, 7)
	require.ErrorIs(t, err, models.ErrInvalidCoordinates)
}

func TestCellsCoveringBbox_TooManyCells(t *testing.T) {
	b := models.BBox{MinLat: -10, MinLon: -10, MaxLat: 10, MaxLon: 10}
	_, err := CellsCoveringBbox(b, models.GeohashPrecision)
	require.ErrorIs(t, err, models.ErrInvalidInput)

	cells, err := CellsCoveringBbox(b, 3)
	require.NoError(t, err)
	assert.NotEmpty(t, cells)
}

func TestDistanceMeters(t *testing.T) {
	// ~111km на градус широты
	d := DistanceMeters(0, 0, 1, 0)
	assert.InDelta(t, 111195, d, 500)
	assert.Zero(t, DistanceMeters(5, 5, 5, 5))
}

func TestBounds_ContainEncodedPoint(t *testing.T) {
	lat, lon := 51.5072, -0.1276
	hash, err := Encode(lat, lon, models.GeohashPrecision)
	require.NoError(t, err)

	b, err := Bounds(hash)
	require.NoError(t, err)
	assert.True(t, b.Contains(lat, lon))
	assert.True(t, b.Intersects(models.BBox{MinLat: lat, MinLon: lon, MaxLat: lat + 1, MaxLon: lon + 1}))
	assert.False(t, b.Intersects(models.BBox{MinLat: lat + 1, MinLon: lon, MaxLat: lat + 2, MaxLon: lon + 1}))
}
