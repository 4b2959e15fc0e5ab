package service

import (
	"fmt"

	"github.com/shenikar/safety_heatmap/internal/models"
	"github.com/shenikar/safety_heatmap/internal/scoring"
)

// WeightFunc возвращает вес голоса по репутации валидатора и его уверенности
type WeightFunc func(reputation int, confidence float64) float64

// ReputationWeight - вес 0.5 + 0.5*rep/100, умноженный на уверенность
func ReputationWeight(reputation int, confidence float64) float64 {
	return scoring.ReputationFactor(reputation) * confidence
}

// ConsensusPolicy - пороги перехода и функция веса
type ConsensusPolicy struct {
	MinVotes          int
	PositiveThreshold float64
	NegativeThreshold float64
	Weight            WeightFunc
}

func DefaultConsensusPolicy() ConsensusPolicy {
	return ConsensusPolicy{
		MinVotes:          3,
		PositiveThreshold: 0.5,
		NegativeThreshold: -0.5,
		Weight:            ReputationWeight,
	}
}

// ConsensusEngine подсчитывает голоса и ведет машину состояний инцидента
type ConsensusEngine interface {
	// Apply проверяет предусловия, добавляет голос в агрегат и возвращает новый статус
	Apply(incident *models.Incident, validation *models.Validation) (models.Status, error)
}

type consensusEngine struct {
	policy ConsensusPolicy
}

func NewConsensusEngine(policy ConsensusPolicy) ConsensusEngine {
	if policy.Weight == nil {
		policy.Weight = ReputationWeight
	}
	if policy.MinVotes < 1 {
		policy.MinVotes = 1
	}
	return &consensusEngine{policy: policy}
}

func (e *consensusEngine) Apply(incident *models.Incident, validation *models.Validation) (models.Status, error) {
	if err := validation.Validate(); err != nil {
		return incident.Status, err
	}
	if incident.Status != models.StatusPending {
		return incident.Status, fmt.Errorf("%w: status is %s", models.ErrNotPending, incident.Status)
	}
	if validation.ValidatorID == incident.ReporterID {
		return incident.Status, models.ErrSelfVote
	}

	w := e.policy.Weight(validation.ValidatorRep, validation.Confidence)
	if w < 0 {
		w = 0
	}

	// score хранится как взвешенное среднее, VoteWeight - сумма весов
	weighted := incident.Score*incident.VoteWeight + float64(validation.Vote)*w
	incident.VoteWeight += w
	incident.Count++
	if incident.VoteWeight > 0 {
		incident.Score = clampUnit(weighted / incident.VoteWeight)
	} else {
		incident.Score = 0
	}

	incident.Status = e.next(incident)
	return incident.Status, nil
}

func (e *consensusEngine) next(incident *models.Incident) models.Status {
	if incident.Count < e.policy.MinVotes {
		return models.StatusPending
	}
	switch {
	case incident.Score >= e.policy.PositiveThreshold:
		return models.StatusVerified
	case incident.Score <= e.policy.NegativeThreshold:
		return models.StatusRejected
	default:
		return models.StatusPending
	}
}

func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
