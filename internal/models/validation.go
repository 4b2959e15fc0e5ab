package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Vote int

const (
	VoteUp   Vote = 1
	VoteDown Vote = -1
)

// Validation - голос одного валидатора по одному инциденту
type Validation struct {
	ID           int64     `json:"id"`
	IncidentID   uuid.UUID `json:"incident_id"`
	ValidatorID  string    `json:"validator_id"`
	Vote         Vote      `json:"vote"`
	Confidence   float64   `json:"confidence"`
	ValidatorRep int       `json:"validator_reputation_at_vote"`
	CreatedAt    time.Time `json:"created_at"`
}

func (v *Validation) Validate() error {
	if v.Vote != VoteUp && v.Vote != VoteDown {
		return fmt.Errorf("%w: vote must be +1 or -1, got %d", ErrInvalidInput, v.Vote)
	}
	if v.Confidence < 0 || v.Confidence > 1 || v.Confidence != v.Confidence {
		return fmt.Errorf("%w: confidence %f out of range [0,1]", ErrInvalidInput, v.Confidence)
	}
	if v.ValidatorID == "" {
		return fmt.Errorf("%w: validator id is required", ErrInvalidInput)
	}
	return nil
}

// VoteResult - состояние инцидента после учета голоса
type VoteResult struct {
	Status          Status  `json:"status"`
	ValidationScore float64 `json:"validation_score"`
	ValidationCount int     `json:"validation_count"`
}
