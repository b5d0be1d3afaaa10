package epidemicsim

type HealthState int

const (
	Healthy HealthState = iota
	Infected
	Recovered
	Deceased
)

// AllHealthStates lists every state in reporting order. Statistics maps are
// keyed by these names and always carry all four.
var AllHealthStates = [...]HealthState{Healthy, Infected, Recovered, Deceased}

func (h HealthState) String() string {
	return [...]string{"Healthy", "Infected", "Recovered", "Deceased"}[h]
}

// CanInfect reports whether an individual in this state spreads the disease.
func (h HealthState) CanInfect() bool {
	return h == Infected
}

// CanBeInfected reports whether an individual in this state is a valid
// transmission target. Recovered individuals stay eligible; their partial
// immunity is modelled by the draw modifier in Disease.RollForInfection,
// not by this predicate.
func (h HealthState) CanBeInfected() bool {
	return h == Healthy || h == Recovered
}
