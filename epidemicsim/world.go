package epidemicsim

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// Regions step independently within a day, so above this count the world
// fans the daily step out to one goroutine per region. Each region owns its
// own RNG, and statistics are only read after the WaitGroup barrier.
const parallelRegionThreshold = 8

// World owns the regions, the shared disease, the day counter and the
// run/pause flag. Region order is insertion order and only matters for
// reporting.
type World struct {
	Regions []*Region
	Disease *Disease
	History *StatsHistory

	currentDay int
	isRunning  bool
	rng        *rand.Rand
}

// SetupWorld builds an empty, paused world. Seed 0 selects a time-based
// seed; any other value makes the run reproducible. Every region is dealt
// an independent child generator off this seed.
func SetupWorld(seed int64) *World {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &World{
		Regions: make([]*Region, 0),
		History: &StatsHistory{},
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// InitializeWorld populates the default configuration: three regions, the
// default disease and ten initially infected individuals per region.
func (w *World) InitializeWorld() {
	w.Disease = DefaultDisease()
	for _, def := range []struct {
		name       string
		population int
		density    float64
	}{
		{"Metro City", 150000, 0.8},
		{"Suburbs", 55000, 0.4},
		{"Rural Town", 15000, 0.2},
	} {
		region, err := w.AddRegion(def.name, def.population, def.density)
		if err != nil {
			// defaults are static and valid
			panic(err)
		}
		region.IntroduceDisease(w.Disease, 10)
	}
}

// AddRegion validates the configuration, rejects duplicate names and
// appends a fresh all-healthy region.
func (w *World) AddRegion(name string, populationSize int, density float64) (*Region, error) {
	if w.RegionByName(name) != nil {
		return nil, fmt.Errorf("region %v already exists", name)
	}
	region, err := SetupRegion(name, populationSize, density, rand.New(rand.NewSource(w.rng.Int63())))
	if err != nil {
		return nil, err
	}
	w.Regions = append(w.Regions, region)
	return region, nil
}

// RemoveRegion drops the named region. Reports whether anything was
// removed. Auto-policy rules pointing at it become silent no-ops.
func (w *World) RemoveRegion(name string) bool {
	for i, r := range w.Regions {
		if r.Name == name {
			w.Regions = append(w.Regions[:i], w.Regions[i+1:]...)
			return true
		}
	}
	return false
}

func (w *World) RegionByName(name string) *Region {
	for _, r := range w.Regions {
		if r.Name == name {
			return r
		}
	}
	return nil
}

// IntroduceDisease hands the shared disease to the named region and seeds
// its initial infections.
func (w *World) IntroduceDisease(regionName string, initialInfected int) error {
	region := w.RegionByName(regionName)
	if region == nil {
		return fmt.Errorf("region %v not found", regionName)
	}
	if w.Disease == nil {
		return fmt.Errorf("no disease configured")
	}
	region.IntroduceDisease(w.Disease, initialInfected)
	return nil
}

// SetDisease replaces the world's disease. Existing regions keep spreading
// their previously introduced disease until it is re-introduced; parameter
// edits on a live outbreak go through the Disease setters instead.
func (w *World) SetDisease(name string, transmissionRate, mortalityRate, recoveryRate float64, minDaysInfected int) (*Disease, error) {
	disease, err := NewDisease(name, transmissionRate, mortalityRate, recoveryRate, minDaysInfected)
	if err != nil {
		return nil, err
	}
	w.Disease = disease
	return disease, nil
}

// SimulateDay advances the whole world by one day. While paused this is a
// no-op and the day counter does not move. The day's statistics snapshot is
// recorded after every region has finished its step.
func (w *World) SimulateDay() {
	if !w.isRunning {
		return
	}

	if len(w.Regions) >= parallelRegionThreshold {
		var wg sync.WaitGroup
		for _, region := range w.Regions {
			wg.Add(1)
			go func(r *Region) {
				defer wg.Done()
				r.SimulateDay()
			}(region)
		}
		wg.Wait()
	} else {
		for _, region := range w.Regions {
			region.SimulateDay()
		}
	}

	w.currentDay++
	w.History.Record(w.currentDay, w.GlobalStatistics())
}

// SimulateDays runs n days, evaluating the auto-policy controller before
// each day as the driver loop does. A nil controller just runs the days.
func (w *World) SimulateDays(n int, controller *AutoPolicyController) {
	for i := 0; i < n; i++ {
		if controller != nil {
			controller.Evaluate(w)
		}
		w.SimulateDay()
	}
}

// GlobalStatistics sums the per-region counts into one map. All four state
// names are present even for an empty world.
func (w *World) GlobalStatistics() map[string]int {
	global := make(map[string]int, len(AllHealthStates))
	for _, s := range AllHealthStates {
		global[s.String()] = 0
	}
	for _, region := range w.Regions {
		for state, count := range region.Statistics() {
			global[state] += count
		}
	}
	return global
}

func (w *World) Start() {
	w.isRunning = true
}

func (w *World) Pause() {
	w.isRunning = false
}

func (w *World) IsRunning() bool {
	return w.isRunning
}

func (w *World) CurrentDay() int {
	return w.currentDay
}

// Reset discards all regions and restores the default configuration:
// day zero, paused, fresh default world.
func (w *World) Reset() {
	w.currentDay = 0
	w.isRunning = false
	w.Regions = w.Regions[:0]
	w.History = &StatsHistory{}
	w.InitializeWorld()
}

// ResetToInitialState keeps the regions but returns every population to
// all-Healthy and clears all active policies.
func (w *World) ResetToInitialState() {
	for _, region := range w.Regions {
		region.ResetToInitialState()
	}
}
