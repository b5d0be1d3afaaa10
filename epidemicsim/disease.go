package epidemicsim

import (
	"fmt"
	"math/rand"
)

// Fallback parameters used by the daily update when a region has no disease
// introduced yet.
const (
	fallbackMinDaysInfected = 7
	fallbackMortalityRate   = 0.02
	fallbackRecoveryRate    = 0.1
)

// RecoveredInfectionModifier scales the infection draw for Recovered
// targets. A modifier below 1 shrinks the draw, so it makes reinfection
// easier relative to the transmission rate, representing only partial
// immunity.
const RecoveredInfectionModifier = 0.5

// Disease is the parameter bundle shared by every region of a world. One
// pointer is handed to all regions, so a parameter edit is visible
// everywhere on the next simulated day.
type Disease struct {
	Name             string  `json:"name"`
	TransmissionRate float64 `json:"transmission_rate"`
	MortalityRate    float64 `json:"mortality_rate"`
	RecoveryRate     float64 `json:"recovery_rate"`
	MinDaysInfected  int     `json:"min_days_infected"`
}

// NewDisease validates the parameters and builds a disease. Rates are
// probabilities in [0,1]; mortality and recovery need not sum to 1, the
// remainder is the chance of staying infected on a given day's roll.
func NewDisease(name string, transmissionRate, mortalityRate, recoveryRate float64, minDaysInfected int) (*Disease, error) {
	if name == "" {
		return nil, fmt.Errorf("disease name must not be empty")
	}
	for _, r := range []struct {
		label string
		value float64
	}{
		{"transmission rate", transmissionRate},
		{"mortality rate", mortalityRate},
		{"recovery rate", recoveryRate},
	} {
		if r.value < 0 || r.value > 1 {
			return nil, fmt.Errorf("%s %v out of range [0,1]", r.label, r.value)
		}
	}
	if minDaysInfected < 0 {
		return nil, fmt.Errorf("min days infected %d must not be negative", minDaysInfected)
	}
	return &Disease{
		Name:             name,
		TransmissionRate: transmissionRate,
		MortalityRate:    mortalityRate,
		RecoveryRate:     recoveryRate,
		MinDaysInfected:  minDaysInfected,
	}, nil
}

// DefaultDisease returns the disease seeded into the default world.
func DefaultDisease() *Disease {
	return &Disease{
		Name:             "COVID-19",
		TransmissionRate: 0.3,
		MortalityRate:    0.02,
		RecoveryRate:     0.1,
		MinDaysInfected:  5,
	}
}

// RollForInfection draws a uniform value in [0,1) and reports infection when
// draw*modifier < TransmissionRate. The modifier scales the draw rather than
// the rate: a modifier below 1 raises the effective chance of the draw
// passing. Pass 1.0 for an unmodified roll.
func (d *Disease) RollForInfection(rng *rand.Rand, modifier float64) bool {
	return rng.Float64()*modifier < d.TransmissionRate
}

// EffectiveTransmissionRate applies a policy modifier directly to the rate.
// Used as the comparison threshold of the region-level contact roll; note
// that this multiplies the rate while RollForInfection multiplies the draw.
func (d *Disease) EffectiveTransmissionRate(policyModifier float64) float64 {
	return d.TransmissionRate * policyModifier
}

// Setters below are the disease-parameter update surface. Each field is
// independently settable and takes effect on the next simulated day.

func (d *Disease) SetName(name string) error {
	if name == "" {
		return fmt.Errorf("disease name must not be empty")
	}
	d.Name = name
	return nil
}

func (d *Disease) SetTransmissionRate(rate float64) error {
	if rate < 0 || rate > 1 {
		return fmt.Errorf("transmission rate %v out of range [0,1]", rate)
	}
	d.TransmissionRate = rate
	return nil
}

func (d *Disease) SetMortalityRate(rate float64) error {
	if rate < 0 || rate > 1 {
		return fmt.Errorf("mortality rate %v out of range [0,1]", rate)
	}
	d.MortalityRate = rate
	return nil
}

func (d *Disease) SetRecoveryRate(rate float64) error {
	if rate < 0 || rate > 1 {
		return fmt.Errorf("recovery rate %v out of range [0,1]", rate)
	}
	d.RecoveryRate = rate
	return nil
}

func (d *Disease) SetMinDaysInfected(days int) error {
	if days < 0 {
		return fmt.Errorf("min days infected %d must not be negative", days)
	}
	d.MinDaysInfected = days
	return nil
}
