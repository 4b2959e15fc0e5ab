package models

import (
	"time"

	"github.com/google/uuid"
)

// NewsEvent - классифицированная и геокодированная новость-кандидат
type NewsEvent struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	URL         string       `json:"url"`
	Source      string       `json:"source"`
	Category    IncidentType `json:"category"`
	Severity    int          `json:"severity"`
	Description string       `json:"description"`
	Latitude    float64      `json:"latitude"`
	Longitude   float64      `json:"longitude"`
	CountryCode string       `json:"country_code,omitempty"`
	DedupKey    string       `json:"dedup_key"`
	Date        time.Time    `json:"date"`
}

// Ref возвращает запись-подтверждение для списка source_news инцидента
func (n *NewsEvent) Ref(addedAt time.Time) SourceNewsRef {
	return SourceNewsRef{
		NewsID:  n.ID,
		Title:   n.Title,
		URL:     n.URL,
		Source:  n.Source,
		AddedAt: addedAt,
	}
}

// ReconcileResult - итог сопоставления новости с инцидентами
type ReconcileResult struct {
	IncidentID uuid.UUID `json:"incident_id"`
	Created    bool      `json:"created"`
}
