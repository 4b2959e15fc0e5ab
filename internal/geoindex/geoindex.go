// Package geoindex кодирует координаты в geohash и строит покрытия областей ячейками.
package geoindex

import (
	"fmt"
	"math"
	"strings"

	"github.com/mmcloughlin/geohash"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/shenikar/safety_heatmap/internal/models"
)

const base32Alphabet = "0123456789bcdefghjkmnpqrstuvwxyz"

// MaxCoverCells - верхняя граница размера покрытия
const MaxCoverCells = 1 << 16

// Point - декодированный центр ячейки
type Point struct {
	Lat float64
	Lon float64
}

// Encode возвращает geohash заданной точности
func Encode(lat, lon float64, precision uint) (string, error) {
	if err := models.ValidateCoordinates(lat, lon); err != nil {
		return "", err
	}
	if precision < 1 || precision > 12 {
		return "", fmt.Errorf("%w: precision %d out of range [1,12]", models.ErrInvalidInput, precision)
	}
	return geohash.EncodeWithPrecision(lat, lon, precision), nil
}

// Decode возвращает центр ячейки
func Decode(hash string) (Point, error) {
	if err := validateHash(hash); err != nil {
		return Point{}, err
	}
	lat, lon := geohash.DecodeCenter(hash)
	return Point{Lat: lat, Lon: lon}, nil
}

// Neighbors возвращает 8 соседних ячеек (N, NE, E, SE, S, SW, W, NW)
func Neighbors(hash string) ([]string, error) {
	if err := validateHash(hash); err != nil {
		return nil, err
	}
	return geohash.Neighbors(hash), nil
}

// Bounds возвращает границы ячейки
func Bounds(hash string) (models.BBox, error) {
	if err := validateHash(hash); err != nil {
		return models.BBox{}, err
	}
	box := geohash.BoundingBox(hash)
	return models.BBox{MinLat: box.MinLat, MinLon: box.MinLng, MaxLat: box.MaxLat, MaxLon: box.MaxLng}, nil
}

// CellSize возвращает размеры ячейки заданной точности в градусах
func CellSize(precision uint) (latDeg, lonDeg float64) {
	box := geohash.BoundingBox(geohash.EncodeWithPrecision(0, 0, precision))
	return box.MaxLat - box.MinLat, box.MaxLng - box.MinLng
}

// EstimateCells - оценка числа ячеек, покрывающих область
func EstimateCells(b models.BBox, precision uint) int {
	h, w := CellSize(precision)
	rows := math.Floor((b.MaxLat-b.MinLat)/h) + 2
	cols := math.Floor((b.MaxLon-b.MinLon)/w) + 2
	return int(rows * cols)
}

// CellsCoveringBbox возвращает множество ячеек, пересекающих область.
// Область не должна пересекать антимеридиан. Покрытие больше MaxCoverCells
// отклоняется, вызывающий код должен понизить точность.
func CellsCoveringBbox(b models.BBox, precision uint) ([]string, error) {
	if err := ValidateBBox(b); err != nil {
		return nil, err
	}
	if precision < 1 || precision > 12 {
		return nil, fmt.Errorf("%w: precision %d out of range [1,12]", models.ErrInvalidInput, precision)
	}
	if n := EstimateCells(b, precision); n > MaxCoverCells {
		return nil, fmt.Errorf("%w: bbox needs ~%d cells at precision %d, limit %d", models.ErrInvalidInput, n, precision, MaxCoverCells)
	}

	h, w := CellSize(precision)
	lats := samples(b.MinLat, b.MaxLat, h)
	lons := samples(b.MinLon, b.MaxLon, w)

	seen := make(map[string]struct{}, len(lats)*len(lons))
	cells := make([]string, 0, len(lats)*len(lons))
	for _, lat := range lats {
		for _, lon := range lons {
			hash := geohash.EncodeWithPrecision(lat, lon, precision)
			if _, ok := seen[hash]; ok {
				continue
			}
			seen[hash] = struct{}{}
			cells = append(cells, hash)
		}
	}
	return cells, nil
}

// DistanceMeters - расстояние по большому кругу между двумя точками
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	return geo.Distance(orb.Point{lon1, lat1}, orb.Point{lon2, lat2})
}

func ValidateBBox(b models.BBox) error {
	if err := models.ValidateCoordinates(b.MinLat, b.MinLon); err != nil {
		return err
	}
	if err := models.ValidateCoordinates(b.MaxLat, b.MaxLon); err != nil {
		return err
	}
	if b.MinLat > b.MaxLat || b.MinLon > b.MaxLon {
		return fmt.Errorf("%w: inverted bbox %+v", models.ErrInvalidCoordinates, b)
	}
	return nil
}

// samples - точки с шагом step от min до max включительно; каждая ячейка
// размера step, пересекающая [min, max], содержит хотя бы одну точку
func samples(min, max, step float64) []float64 {
	out := make([]float64, 0, int((max-min)/step)+2)
	for v := min; v < max; v += step {
		out = append(out, v)
	}
	return append(out, max)
}

func validateHash(hash string) error {
	if hash == "" || len(hash) > 12 {
		return fmt.Errorf("%w: geohash %q", models.ErrInvalidInput, hash)
	}
	for _, r := range hash {
		if !strings.ContainsRune(base32Alphabet, r) {
			return fmt.Errorf("%w: geohash %q", models.ErrInvalidInput, hash)
		}
	}
	return nil
}
