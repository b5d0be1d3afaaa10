package epidemicsim

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

type LatLng struct {
	Lat float64
	Lng float64
}

// Region is one populated area: a population of individuals, the set of
// active policies, a reference to the world's shared disease and a density
// in [0,1] that drives the daily contact count. An optional boundary
// polygon supports map lookups; it plays no part in the simulation itself.
type Region struct {
	Name       string
	Population []*Individual
	Disease    *Disease
	Density    float64
	Boundary   []LatLng
	Polygon    orb.Polygon

	policies map[string]Policy
	rng      *rand.Rand
}

// SetupRegion validates the configuration and builds a region with an
// all-healthy population. The caller supplies the region's own random
// generator so parallel regions never share RNG state.
func SetupRegion(name string, populationSize int, density float64, rng *rand.Rand) (*Region, error) {
	if name == "" {
		return nil, fmt.Errorf("region name must not be empty")
	}
	if populationSize <= 0 {
		return nil, fmt.Errorf("region %v: population size %d must be positive", name, populationSize)
	}
	if density < 0 || density > 1 {
		return nil, fmt.Errorf("region %v: density %v out of range [0,1]", name, density)
	}

	r := &Region{
		Name:     name,
		Density:  density,
		policies: make(map[string]Policy),
		rng:      rng,
	}
	r.Population = make([]*Individual, 0, populationSize)
	for i := 0; i < populationSize; i++ {
		p := CreateIndividual(i, r)
		r.Population = append(r.Population, &p)
	}
	return r, nil
}

// SetBoundary attaches a boundary polygon for map lookups.
func (r *Region) SetBoundary(coords []LatLng) {
	r.Boundary = coords
	r.Polygon = ConvertLatLngArrayToPolygon(coords)
}

// ContainsPoint reports whether the point lies inside the region boundary.
// Regions without a boundary contain nothing.
func (r *Region) ContainsPoint(point orb.Point) bool {
	if r.Polygon == nil {
		return false
	}
	return planar.PolygonContains(r.Polygon, point)
}

// IntroduceDisease attaches the shared disease and seeds initialInfected
// individuals, picked uniformly at random among those still eligible.
func (r *Region) IntroduceDisease(disease *Disease, initialInfected int) {
	r.Disease = disease

	r.rng.Shuffle(len(r.Population), func(i, j int) {
		r.Population[i], r.Population[j] = r.Population[j], r.Population[i]
	})
	infected := 0
	for _, p := range r.Population {
		if infected >= initialInfected {
			break
		}
		if p.CanBeInfected() {
			p.SetState(Infected)
			infected++
		}
	}
}

// SetInitialInfected re-seeds the region on its current disease. No-op
// until a disease has been introduced.
func (r *Region) SetInitialInfected(count int) {
	if r.Disease != nil {
		r.IntroduceDisease(r.Disease, count)
	}
}

// ResetToInitialState returns every individual to Healthy and clears the
// active policies. Population size, density and the disease reference are
// kept.
func (r *Region) ResetToInitialState() {
	for _, p := range r.Population {
		p.SetState(Healthy)
	}
	r.policies = make(map[string]Policy)
}

// SimulateDay advances the region by one day: one round of contact
// attempts from every infectious individual, then exactly one daily update
// per population member. The infectious/susceptible partition is taken
// once at the start, so someone infected during the contact phase is not
// targeted again as susceptible the same day.
func (r *Region) SimulateDay() {
	infectious := make([]*Individual, 0)
	susceptible := make([]*Individual, 0)
	for _, p := range r.Population {
		if p.CanInfect() {
			infectious = append(infectious, p)
		} else if p.CanBeInfected() {
			susceptible = append(susceptible, p)
		}
	}

	modifier := r.PolicyModifier()
	for _, infected := range infectious {
		r.simulateContacts(infected, susceptible, modifier)
	}

	for _, p := range r.Population {
		p.UpdateDaily(r.rng)
	}
}

// simulateContacts runs one infectious individual's contact attempts for
// the day. Targets are sampled with replacement; each attempt passes two
// independent gates, the region-level effective-rate roll and the target's
// own infection roll.
func (r *Region) simulateContacts(infected *Individual, susceptible []*Individual, policyModifier float64) {
	if r.Disease == nil || len(susceptible) == 0 {
		return
	}
	contactsPerDay := int(r.Density * 10 * policyModifier)
	for i := 0; i < contactsPerDay && i < len(susceptible); i++ {
		target := susceptible[r.rng.Intn(len(susceptible))]
		if r.rng.Float64() < r.Disease.EffectiveTransmissionRate(policyModifier) {
			target.AttemptInfection(r.Disease, r.rng)
		}
	}
}

// PolicyModifier is the product of every active policy's transmission
// modifier. An empty set composes to exactly 1.0.
func (r *Region) PolicyModifier() float64 {
	modifier := 1.0
	for _, p := range r.policies {
		modifier *= p.TransmissionModifier
	}
	return modifier
}

// AddPolicy activates a policy. A same-named policy that is already active
// is replaced, so a kind is never counted twice in the modifier product.
func (r *Region) AddPolicy(p Policy) {
	r.policies[p.Name] = p
}

// RemovePolicy deactivates the named policy. Unknown names are a no-op.
func (r *Region) RemovePolicy(name string) {
	delete(r.policies, name)
}

func (r *Region) HasPolicyActive(name string) bool {
	_, ok := r.policies[name]
	return ok
}

// ActivePolicies returns a defensive copy of the active set, sorted by name
// for stable reporting.
func (r *Region) ActivePolicies() []Policy {
	out := make([]Policy, 0, len(r.policies))
	for _, p := range r.policies {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Statistics counts the population per health state. All four state names
// are always present, zero counts included.
func (r *Region) Statistics() map[string]int {
	stats := make(map[string]int, len(AllHealthStates))
	for _, s := range AllHealthStates {
		stats[s.String()] = 0
	}
	for _, p := range r.Population {
		stats[p.State.String()]++
	}
	return stats
}

func (r *Region) PopulationSize() int {
	return len(r.Population)
}

// InfectedCount is a shortcut for the auto-policy controller's threshold
// checks.
func (r *Region) InfectedCount() int {
	count := 0
	for _, p := range r.Population {
		if p.State == Infected {
			count++
		}
	}
	return count
}

func ConvertLatLngArrayToPolygon(coords []LatLng) orb.Polygon {
	if len(coords) == 0 {
		return nil
	}
	ring := make(orb.Ring, 0, len(coords)+1)
	for _, c := range coords {
		ring = append(ring, orb.Point{c.Lng, c.Lat})
	}
	if ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return orb.Polygon{ring}
}

func latlngToArrayFloat(l LatLng) []float64 {
	return []float64{l.Lat, l.Lng}
}

func twoLatLngtoArrayFloat(coords []LatLng) [][]float64 {
	out := make([][]float64, 0, len(coords))
	for _, c := range coords {
		out = append(out, latlngToArrayFloat(c))
	}
	return out
}
