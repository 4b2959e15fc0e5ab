package v1

import (
	"time"

	"github.com/google/uuid"
)

// SubmitIncidentRequest DTO для отправки сообщения об инциденте
// @Description DTO для отправки сообщения об инциденте
type SubmitIncidentRequest struct {
	Type        string   `json:"type" validate:"required,oneof=homicide robbery theft siege domestic-violence drug-trafficking other"`
	Severity    int      `json:"severity" validate:"required,min=1,max=5"`
	Description string   `json:"description,omitempty" validate:"max=2000"`
	Latitude    *float64 `json:"latitude" validate:"required,latitude"`
	Longitude   *float64 `json:"longitude" validate:"required,longitude"`
	ReporterID  string   `json:"reporter_id" validate:"required,max=128"`
}

// SubmitIncidentResponse DTO с id и статусом нового инцидента
// @Description DTO с id и статусом нового инцидента
type SubmitIncidentResponse struct {
	ID     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

// VoteRequest DTO для голоса валидатора
// @Description DTO для голоса валидатора
type VoteRequest struct {
	ValidatorID string   `json:"validator_id" validate:"required,max=128"`
	Vote        int      `json:"vote" validate:"required,oneof=1 -1"`
	Confidence  *float64 `json:"confidence" validate:"required,min=0,max=1"`
}

// VoteResponse DTO с состоянием инцидента после голоса
// @Description DTO с состоянием инцидента после голоса
type VoteResponse struct {
	Status          string  `json:"status"`
	ValidationScore float64 `json:"validation_score"`
	ValidationCount int     `json:"validation_count"`
}

// HiddenRequest DTO для модерации
// @Description DTO для модерации
type HiddenRequest struct {
	Hidden *bool `json:"hidden" validate:"required"`
}

// SourceNewsResponse - новость, подтверждающая инцидент
type SourceNewsResponse struct {
	NewsID  string    `json:"news_id"`
	Title   string    `json:"title"`
	URL     string    `json:"url"`
	Source  string    `json:"source"`
	AddedAt time.Time `json:"added_at"`
}

// IncidentResponse DTO для ответа с информацией об инциденте
// @Description DTO для ответа с информацией об инциденте
type IncidentResponse struct {
	ID              uuid.UUID            `json:"id"`
	Type            string               `json:"type"`
	Severity        int                  `json:"severity"`
	Description     string               `json:"description,omitempty"`
	Latitude        float64              `json:"latitude"`
	Longitude       float64              `json:"longitude"`
	Geohash         string               `json:"geohash"`
	NeighborhoodID  *uuid.UUID           `json:"neighborhood_id,omitempty"`
	Status          string               `json:"status"`
	Hidden          bool                 `json:"hidden"`
	ReporterID      string               `json:"reporter_id"`
	ValidationScore float64              `json:"validation_score"`
	ValidationCount int                  `json:"validation_count"`
	SourceNews      []SourceNewsResponse `json:"source_news"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// BBoxQuery - параметры запроса ячеек в прямоугольнике
type BBoxQuery struct {
	MinLat *float64 `form:"min_lat" validate:"required,latitude"`
	MinLon *float64 `form:"min_lon" validate:"required,longitude"`
	MaxLat *float64 `form:"max_lat" validate:"required,latitude"`
	MaxLon *float64 `form:"max_lon" validate:"required,longitude"`
}

// HeatCellResponse DTO ячейки тепловой карты
// @Description DTO ячейки тепловой карты
type HeatCellResponse struct {
	Geohash        string    `json:"geohash"`
	Score          float64   `json:"score"`
	IncidentCount  int       `json:"incident_count"`
	LastIncidentAt time.Time `json:"last_incident_at"`
	Color          string    `json:"color"`
	Percentile     float64   `json:"percentile"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
}

// NeighborhoodResponse DTO района
// @Description DTO района
type NeighborhoodResponse struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	IncidentCount  int        `json:"incident_count"`
	AverageColor   string     `json:"average_color"`
	LastIncidentAt *time.Time `json:"last_incident_at,omitempty"`
}

// NewsEventRequest DTO для сверки новости с инцидентами
// @Description DTO для сверки новости с инцидентами
type NewsEventRequest struct {
	ID          string    `json:"id" validate:"required,max=128"`
	Title       string    `json:"title" validate:"required"`
	URL         string    `json:"url" validate:"required,url"`
	Source      string    `json:"source"`
	Category    string    `json:"category" validate:"required,oneof=homicide robbery theft siege domestic-violence drug-trafficking other"`
	Severity    int       `json:"severity" validate:"omitempty,min=1,max=5"`
	Description string    `json:"description,omitempty"`
	Latitude    *float64  `json:"latitude" validate:"required,latitude"`
	Longitude   *float64  `json:"longitude" validate:"required,longitude"`
	CountryCode string    `json:"country_code,omitempty" validate:"omitempty,len=2"`
	DedupKey    string    `json:"dedup_key,omitempty"`
	Date        time.Time `json:"date" validate:"required"`
}

// ReconcileResponse DTO результата сверки
// @Description DTO результата сверки
type ReconcileResponse struct {
	IncidentID uuid.UUID `json:"incident_id"`
	Created    bool      `json:"created"`
}

// RebuildResponse DTO отчета о полном пересчете
// @Description DTO отчета о полном пересчете
type RebuildResponse struct {
	Cells                int    `json:"cells"`
	CellFailures         int    `json:"cell_failures"`
	Assigned             int    `json:"assigned"`
	Neighborhoods        int    `json:"neighborhoods"`
	NeighborhoodFailures int    `json:"neighborhood_failures"`
	Duration             string `json:"duration"`
}

// ImportResponse DTO результата импорта границ
type ImportResponse struct {
	Imported int `json:"imported"`
}
