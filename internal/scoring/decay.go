// Package scoring считает вклад инцидента в риск с учетом давности, тяжести и доверия к автору.
package scoring

import (
	"math"
	"time"

	"github.com/shenikar/safety_heatmap/internal/models"
)

const DefaultHalfLifeDays = 7.0

// MaxHalfLives - число периодов полураспада, до которого Decay строго убывает.
// Дальше float64 уходит в денормализованные числа и обнуляется, поэтому
// результат зажимается снизу до SmallestNonzeroFloat64.
const MaxHalfLives = 1000

// Decay возвращает exp(-ln2 * age / halfLife) в диапазоне (0,1].
// Отрицательный возраст (расхождение часов) считается нулевым.
// Строго убывает при age <= MaxHalfLives*halfLife.
func Decay(ageDays, halfLifeDays float64) float64 {
	if halfLifeDays <= 0 {
		halfLifeDays = DefaultHalfLifeDays
	}
	if ageDays <= 0 {
		return 1
	}
	d := math.Exp(-math.Ln2 * ageDays / halfLifeDays)
	if d <= 0 {
		return math.SmallestNonzeroFloat64
	}
	return d
}

// ReputationFactor возвращает 0.5 + 0.5*clamp(rep,0,100)/100
func ReputationFactor(reputation int) float64 {
	return 0.5 + 0.5*float64(ClampReputation(reputation))/100
}

func ClampReputation(reputation int) int {
	if reputation < 0 {
		return 0
	}
	if reputation > 100 {
		return 100
	}
	return reputation
}

// Scorer считает вклад инцидента на момент now
type Scorer struct {
	HalfLifeDays float64
}

func NewScorer(halfLifeDays float64) Scorer {
	if halfLifeDays <= 0 {
		halfLifeDays = DefaultHalfLifeDays
	}
	return Scorer{HalfLifeDays: halfLifeDays}
}

// IncidentScore = decay(age) * severity * (0.5 + 0.5*reputation/100)
func (s Scorer) IncidentScore(inc *models.Incident, reputation int, now time.Time) float64 {
	age := now.Sub(inc.CreatedAt).Hours() / 24
	return Decay(age, s.HalfLifeDays) * float64(inc.Severity) * ReputationFactor(reputation)
}
