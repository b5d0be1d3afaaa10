package epidemicsim

import (
	"math/rand"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/suite"
)

func orbPoint(lng, lat float64) orb.Point {
	return orb.Point{lng, lat}
}

type RegionSuite struct {
	suite.Suite
	rng *rand.Rand
}

func (s *RegionSuite) SetupTest() {
	s.rng = rand.New(rand.NewSource(1234))
}

func TestRegionSuite(t *testing.T) {
	suite.Run(t, new(RegionSuite))
}

func (s *RegionSuite) newRegion(name string, size int, density float64) *Region {
	r, err := SetupRegion(name, size, density, rand.New(rand.NewSource(s.rng.Int63())))
	s.Require().NoError(err)
	return r
}

func (s *RegionSuite) sum(stats map[string]int) int {
	total := 0
	for _, c := range stats {
		total += c
	}
	return total
}

func (s *RegionSuite) TestSetupValidation() {
	_, err := SetupRegion("", 100, 0.5, s.rng)
	s.Error(err)

	_, err = SetupRegion("Town", 0, 0.5, s.rng)
	s.Error(err)

	_, err = SetupRegion("Town", 100, 1.5, s.rng)
	s.Error(err)

	r := s.newRegion("Town", 100, 0.5)
	s.Equal(100, r.PopulationSize())
	s.Equal(map[string]int{"Healthy": 100, "Infected": 0, "Recovered": 0, "Deceased": 0}, r.Statistics())
}

func (s *RegionSuite) TestIntroduceDiseaseSeedsExactCount() {
	r := s.newRegion("Town", 200, 0.5)
	r.IntroduceDisease(DefaultDisease(), 25)

	stats := r.Statistics()
	s.Equal(25, stats["Infected"])
	s.Equal(175, stats["Healthy"])
	s.Equal(25, r.InfectedCount())
}

func (s *RegionSuite) TestConservationAcrossTicks() {
	r := s.newRegion("Town", 500, 0.8)
	r.IntroduceDisease(DefaultDisease(), 20)

	for day := 0; day < 30; day++ {
		r.SimulateDay()
		s.Equal(500, s.sum(r.Statistics()), "day %d", day)
	}
}

func (s *RegionSuite) TestDeceasedMonotonicallyNonDecreasing() {
	disease := &Disease{Name: "lethal", TransmissionRate: 0.5, MortalityRate: 0.5, RecoveryRate: 0.3, MinDaysInfected: 2}
	r := s.newRegion("Town", 300, 0.9)
	r.IntroduceDisease(disease, 30)

	lastDeceased := 0
	for day := 0; day < 40; day++ {
		r.SimulateDay()
		deceased := r.Statistics()["Deceased"]
		s.GreaterOrEqual(deceased, lastDeceased)
		lastDeceased = deceased
	}
}

// One-day scenario with certain transmission and certain recovery: every
// individual infected at any point during the day (the 100 seeded plus
// everyone reached in the contact phase) holds the state for the one-day
// minimum and recovers in the same daily update.
func (s *RegionSuite) TestOneDayCertainRecoveryScenario() {
	disease := &Disease{Name: "flash", TransmissionRate: 1.0, MortalityRate: 0, RecoveryRate: 1.0, MinDaysInfected: 1}
	r := s.newRegion("Town", 1000, 0.5)
	r.IntroduceDisease(disease, 100)

	r.SimulateDay()
	stats := r.Statistics()

	// 100 seeded infectious x 5 contacts each, rate 1.0: at least one new
	// infection and at most 500
	s.Equal(0, stats["Infected"])
	s.Equal(0, stats["Deceased"])
	s.GreaterOrEqual(stats["Recovered"], 101)
	s.LessOrEqual(stats["Recovered"], 600)
	s.Equal(1000, s.sum(stats))
}

func (s *RegionSuite) TestNoDiseaseMeansNoTransmission() {
	r := s.newRegion("Town", 100, 1.0)
	// force an infected individual without introducing a disease
	r.Population[0].SetState(Infected)

	for day := 0; day < 5; day++ {
		r.SimulateDay()
	}

	stats := r.Statistics()
	s.Equal(99, stats["Healthy"])
	s.Equal(1, stats["Infected"]+stats["Recovered"]+stats["Deceased"])
}

func (s *RegionSuite) TestZeroDensityMeansNoContacts() {
	disease := &Disease{Name: "X", TransmissionRate: 1.0, MortalityRate: 0, RecoveryRate: 0, MinDaysInfected: 100}
	r := s.newRegion("Town", 100, 0.0)
	r.IntroduceDisease(disease, 10)

	for day := 0; day < 10; day++ {
		r.SimulateDay()
	}
	s.Equal(10, r.Statistics()["Infected"])
	s.Equal(90, r.Statistics()["Healthy"])
}

func (s *RegionSuite) TestResetToInitialState() {
	r := s.newRegion("Town", 100, 0.5)
	r.IntroduceDisease(DefaultDisease(), 10)
	r.AddPolicy(MaskPolicy())

	r.ResetToInitialState()

	s.Equal(100, r.Statistics()["Healthy"])
	s.Empty(r.ActivePolicies())
	s.Equal(1.0, r.PolicyModifier())
	// population size and disease reference survive the reset
	s.Equal(100, r.PopulationSize())
	s.NotNil(r.Disease)
}

func (s *RegionSuite) TestSetInitialInfectedReappliesCurrentDisease() {
	r := s.newRegion("Town", 100, 0.5)

	// no disease yet: must be a no-op
	r.SetInitialInfected(10)
	s.Equal(0, r.InfectedCount())

	r.IntroduceDisease(DefaultDisease(), 5)
	r.SetInitialInfected(20)
	s.Equal(25, r.InfectedCount())
}

func (s *RegionSuite) TestBoundaryContainsPoint() {
	r := s.newRegion("Town", 10, 0.5)
	s.False(r.ContainsPoint(orbPoint(0.5, 0.5)))

	r.SetBoundary([]LatLng{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}, {Lat: 1, Lng: 1}, {Lat: 1, Lng: 0}})
	s.True(r.ContainsPoint(orbPoint(0.5, 0.5)))
	s.False(r.ContainsPoint(orbPoint(2, 2)))
}
