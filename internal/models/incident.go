package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mmcloughlin/geohash"
)

// GeohashPrecision - точность geohash для агрегации (~153m x 153m)
const GeohashPrecision = 7

type IncidentType string

const (
	TypeHomicide         IncidentType = "homicide"
	TypeRobbery          IncidentType = "robbery"
	TypeTheft            IncidentType = "theft"
	TypeSiege            IncidentType = "siege"
	TypeDomesticViolence IncidentType = "domestic-violence"
	TypeDrugTrafficking  IncidentType = "drug-trafficking"
	TypeOther            IncidentType = "other"
)

var incidentTypes = map[IncidentType]struct{}{
	TypeHomicide:         {},
	TypeRobbery:          {},
	TypeTheft:            {},
	TypeSiege:            {},
	TypeDomesticViolence: {},
	TypeDrugTrafficking:  {},
	TypeOther:            {},
}

func (t IncidentType) Valid() bool {
	_, ok := incidentTypes[t]
	return ok
}

type Status string

const (
	StatusPending      Status = "pending"
	StatusVerified     Status = "verified"
	StatusRejected     Status = "rejected"
	StatusHidden       Status = "hidden"
	StatusAutoVerified Status = "auto_verified"
)

// Countable сообщает, учитывается ли инцидент в тепловой карте и районах
func (s Status) Countable() bool {
	return s == StatusVerified || s == StatusAutoVerified
}

const (
	MinSeverity = 1
	MaxSeverity = 5
)

// SourceNewsRef - ссылка на новость, подтверждающую инцидент
type SourceNewsRef struct {
	NewsID  string    `json:"news_id"`
	Title   string    `json:"title"`
	URL     string    `json:"url"`
	Source  string    `json:"source"`
	AddedAt time.Time `json:"added_at"`
}

type Incident struct {
	ID             uuid.UUID       `json:"id"`
	Type           IncidentType    `json:"type"`
	Severity       int             `json:"severity"`
	Description    string          `json:"description"`
	Latitude       float64         `json:"latitude"`
	Longitude      float64         `json:"longitude"`
	Geohash        string          `json:"geohash"`
	NeighborhoodID *uuid.UUID      `json:"neighborhood_id,omitempty"`
	Status         Status          `json:"status"`
	Hidden         bool            `json:"hidden"`
	ReporterID     string          `json:"reporter_id"`
	ReporterRep    int             `json:"reporter_reputation_at_report"`
	Score          float64         `json:"validation_score"`
	Count          int             `json:"validation_count"`
	VoteWeight     float64         `json:"-"`
	SourceNews     []SourceNewsRef `json:"source_news"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// SetLocation задает координаты и пересчитывает geohash
func (i *Incident) SetLocation(lat, lon float64) error {
	if err := ValidateCoordinates(lat, lon); err != nil {
		return err
	}
	i.Latitude = lat
	i.Longitude = lon
	i.Geohash = geohash.EncodeWithPrecision(lat, lon, GeohashPrecision)
	return nil
}

// Validate проверяет форму инцидента перед сохранением
func (i *Incident) Validate() error {
	if !i.Type.Valid() {
		return fmt.Errorf("%w: unknown incident type %q", ErrInvalidInput, i.Type)
	}
	if i.Severity < MinSeverity || i.Severity > MaxSeverity {
		return fmt.Errorf("%w: severity %d out of range [%d,%d]", ErrInvalidInput, i.Severity, MinSeverity, MaxSeverity)
	}
	return ValidateCoordinates(i.Latitude, i.Longitude)
}

// HasSourceNews проверяет, есть ли новость в списке подтверждений
func (i *Incident) HasSourceNews(newsID string) bool {
	for _, ref := range i.SourceNews {
		if ref.NewsID == newsID {
			return true
		}
	}
	return false
}

func ValidateCoordinates(lat, lon float64) error {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 || lat != lat || lon != lon {
		return fmt.Errorf("%w: lat=%f lon=%f", ErrInvalidCoordinates, lat, lon)
	}
	return nil
}
