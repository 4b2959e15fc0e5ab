package models

import "time"

type Color string

const (
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorRed    Color = "red"
)

// HeatCell - агрегированный риск по одной ячейке geohash.
// Значения score и incident_count - кеш, который всегда можно пересчитать из инцидентов.
type HeatCell struct {
	Geohash        string    `json:"geohash"`
	Score          float64   `json:"score"`
	IncidentCount  int       `json:"incident_count"`
	LastIncidentAt time.Time `json:"last_incident_at"`
	Color          Color     `json:"color"`
	Percentile     float64   `json:"percentile"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// BBox - прямоугольная область запроса в градусах
type BBox struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

func (b BBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

func (b BBox) Intersects(o BBox) bool {
	return b.MinLat <= o.MaxLat && o.MinLat <= b.MaxLat && b.MinLon <= o.MaxLon && o.MinLon <= b.MaxLon
}
