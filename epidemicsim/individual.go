package epidemicsim

import "math/rand"

// Individual is one simulated person. The region pointer is a back-reference
// only; the region owns the individual through its population slice.
type Individual struct {
	Id          int
	State       HealthState
	DaysInState int
	Region      *Region
}

// CreateIndividual builds a healthy individual with zero days in state.
func CreateIndividual(id int, r *Region) Individual {
	return Individual{
		Id:     id,
		State:  Healthy,
		Region: r,
	}
}

// SetState replaces the state and resets the days-in-state counter. All
// state changes go through here so the counter can never go stale.
func (p *Individual) SetState(s HealthState) {
	p.State = s
	p.DaysInState = 0
}

func (p *Individual) IncrementDaysInState() {
	p.DaysInState++
}

func (p *Individual) CanInfect() bool {
	return p.State.CanInfect()
}

func (p *Individual) CanBeInfected() bool {
	return p.State.CanBeInfected()
}

// UpdateDaily advances the individual by one day. Only Infected has a
// transition: after the minimum infectious period one roll decides between
// death, recovery and staying infected. Healthy, Recovered and Deceased do
// nothing.
func (p *Individual) UpdateDaily(rng *rand.Rand) {
	if p.State != Infected {
		return
	}
	p.IncrementDaysInState()

	var disease *Disease
	if p.Region != nil {
		disease = p.Region.Disease
	}

	minDays := fallbackMinDaysInfected
	mortality := fallbackMortalityRate
	recovery := fallbackRecoveryRate
	if disease != nil {
		minDays = disease.MinDaysInfected
		mortality = disease.MortalityRate
		recovery = disease.RecoveryRate
	}

	if p.DaysInState >= minDays {
		roll := rng.Float64()
		if roll < mortality {
			p.SetState(Deceased)
		} else if roll < mortality+recovery {
			p.SetState(Recovered)
		}
		// else: remain infected, roll again tomorrow
	}
}

// AttemptInfection is the individual-level transmission gate. It re-checks
// eligibility and performs the disease's own roll, with the reduced draw
// modifier for Recovered targets. Reports whether the individual became
// infected.
func (p *Individual) AttemptInfection(disease *Disease, rng *rand.Rand) bool {
	if disease == nil || !p.CanBeInfected() {
		return false
	}
	modifier := 1.0
	if p.State == Recovered {
		modifier = RecoveredInfectionModifier
	}
	if disease.RollForInfection(rng, modifier) {
		p.SetState(Infected)
		return true
	}
	return false
}
