package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

type Neighborhood struct {
	ID             uuid.UUID        `json:"id"`
	Name           string           `json:"name"`
	Boundary       orb.MultiPolygon `json:"-"`
	IncidentCount  int              `json:"incident_count"`
	AverageColor   string           `json:"average_color"`
	LastIncidentAt *time.Time       `json:"last_incident_at,omitempty"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// TypeColors - палитра цветов по типу инцидента
var TypeColors = map[IncidentType]string{
	TypeHomicide:         "#b71c1c",
	TypeRobbery:          "#e65100",
	TypeTheft:            "#f9a825",
	TypeSiege:            "#4a148c",
	TypeDomesticViolence: "#ad1457",
	TypeDrugTrafficking:  "#1b5e20",
	TypeOther:            "#616161",
}
