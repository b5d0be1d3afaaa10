package epidemicsim

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type WorldSuite struct {
	suite.Suite
	world *World
}

func (s *WorldSuite) SetupTest() {
	s.world = SetupWorld(99)
}

func TestWorldSuite(t *testing.T) {
	suite.Run(t, new(WorldSuite))
}

func (s *WorldSuite) TestEmptyWorldStatistics() {
	s.Equal(map[string]int{"Healthy": 0, "Infected": 0, "Recovered": 0, "Deceased": 0},
		s.world.GlobalStatistics())
}

func (s *WorldSuite) TestGlobalStatisticsSumRegions() {
	a, err := s.world.AddRegion("A", 100, 0.5)
	s.Require().NoError(err)
	b, err := s.world.AddRegion("B", 50, 0.5)
	s.Require().NoError(err)

	s.world.Disease = DefaultDisease()
	a.IntroduceDisease(s.world.Disease, 10)
	b.IntroduceDisease(s.world.Disease, 5)

	global := s.world.GlobalStatistics()
	s.Equal(15, global["Infected"])
	s.Equal(135, global["Healthy"])

	// element-wise: global equals the sum of the per-region maps
	for _, state := range AllHealthStates {
		key := state.String()
		s.Equal(a.Statistics()[key]+b.Statistics()[key], global[key])
	}
}

func (s *WorldSuite) TestDuplicateRegionNameRejected() {
	_, err := s.world.AddRegion("A", 100, 0.5)
	s.Require().NoError(err)
	_, err = s.world.AddRegion("A", 200, 0.2)
	s.Error(err)
	s.Len(s.world.Regions, 1)
}

func (s *WorldSuite) TestSimulateDayRequiresRunning() {
	_, err := s.world.AddRegion("A", 100, 0.5)
	s.Require().NoError(err)
	s.world.Disease = DefaultDisease()
	s.Require().NoError(s.world.IntroduceDisease("A", 10))

	before := s.world.GlobalStatistics()

	// paused: nothing moves, the day counter included
	s.world.SimulateDay()
	s.Equal(0, s.world.CurrentDay())
	s.Equal(before, s.world.GlobalStatistics())

	s.world.Start()
	s.True(s.world.IsRunning())
	s.world.SimulateDay()
	s.Equal(1, s.world.CurrentDay())

	s.world.Pause()
	s.world.SimulateDay()
	s.Equal(1, s.world.CurrentDay())
}

func (s *WorldSuite) TestStartPauseDoNotTouchState() {
	_, err := s.world.AddRegion("A", 100, 0.5)
	s.Require().NoError(err)
	before := s.world.GlobalStatistics()

	s.world.Start()
	s.world.Pause()
	s.Equal(0, s.world.CurrentDay())
	s.Equal(before, s.world.GlobalStatistics())
}

func (s *WorldSuite) TestResetRestoresDefaultWorld() {
	s.world.InitializeWorld()
	s.world.Start()
	s.world.SimulateDays(3, nil)
	s.Require().Equal(3, s.world.CurrentDay())

	s.world.Reset()

	s.Equal(0, s.world.CurrentDay())
	s.False(s.world.IsRunning())
	s.Len(s.world.Regions, 3)
	s.NotNil(s.world.RegionByName("Metro City"))
	s.NotNil(s.world.RegionByName("Suburbs"))
	s.NotNil(s.world.RegionByName("Rural Town"))
	s.Equal(30, s.world.GlobalStatistics()["Infected"])
	s.Empty(s.world.History.Days)
}

func (s *WorldSuite) TestRemoveRegion() {
	_, err := s.world.AddRegion("A", 100, 0.5)
	s.Require().NoError(err)

	s.False(s.world.RemoveRegion("B"))
	s.True(s.world.RemoveRegion("A"))
	s.Nil(s.world.RegionByName("A"))
	s.Empty(s.world.Regions)
}

func (s *WorldSuite) TestResetToInitialStateKeepsRegions() {
	s.world.InitializeWorld()
	s.world.RegionByName("Suburbs").AddPolicy(LockdownPolicy())

	s.world.ResetToInitialState()

	s.Len(s.world.Regions, 3)
	global := s.world.GlobalStatistics()
	s.Equal(0, global["Infected"])
	s.Equal(220000, global["Healthy"])
	s.Empty(s.world.RegionByName("Suburbs").ActivePolicies())
}

func (s *WorldSuite) TestHistoryRecordsEachDay() {
	s.world.InitializeWorld()
	s.world.Start()
	s.world.SimulateDays(5, nil)

	s.Require().Len(s.world.History.Days, 5)
	s.Equal(1, s.world.History.Days[0].Day)
	s.Equal(5, s.world.History.Days[4].Day)
	for _, d := range s.world.History.Days {
		s.Equal(220000, d.Healthy+d.Infected+d.Recovered+d.Deceased)
	}
}

func (s *WorldSuite) TestParallelSteppingConservesIndividuals() {
	for _, name := range []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"} {
		_, err := s.world.AddRegion(name, 200, 0.6)
		s.Require().NoError(err)
	}
	s.world.Disease = DefaultDisease()
	for _, r := range s.world.Regions {
		r.IntroduceDisease(s.world.Disease, 5)
	}

	s.world.Start()
	s.world.SimulateDays(10, nil)

	total := 0
	for _, c := range s.world.GlobalStatistics() {
		total += c
	}
	s.Equal(2000, total)
	s.Equal(10, s.world.CurrentDay())
}

func (s *WorldSuite) TestSetDisease() {
	_, err := s.world.SetDisease("Measles", 0.9, 0.01, 0.2, 4)
	s.Require().NoError(err)
	s.Equal("Measles", s.world.Disease.Name)

	_, err = s.world.SetDisease("Bad", 2.0, 0.01, 0.2, 4)
	s.Error(err)
	s.Equal("Measles", s.world.Disease.Name)
}
