package epidemicsim

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/pquerna/ffjson/ffjson"

	"github.com/amir-mohammad-maghrooni/DiseaseSim/regiondata"
)

// Session is one client's simulation: a world, an auto-policy controller
// and the two websocket-facing channels. The server side pumps raw strings
// into Recieve and drains Send back to the connection; Run is the command
// loop in between.
type Session struct {
	Id         uuid.UUID
	World      *World
	Controller *AutoPolicyController
	Config     Config
	Recieve    chan string // recieve from websocket
	Send       chan string // send to websocket
	Quit       chan struct{}
}

func SetupSession(cfg Config) *Session {
	world := SetupWorld(cfg.Seed)
	world.InitializeWorld()

	return &Session{
		Id:         uuid.New(),
		World:      world,
		Controller: SetupAutoPolicyController(),
		Config:     cfg,
		Recieve:    make(chan string, 10000),
		Send:       make(chan string, 10000),
		Quit:       make(chan struct{}),
	}
}

// Run processes commands until the connection goes away. Commands are JSON
// arrays [command, subcommand, payload].
func (s *Session) Run() {
	fmt.Printf("[Session %v]Started\n", s.Id)
	if s.Config.RegionsFile != "" {
		if err := s.loadRegions(s.Config.RegionsFile); err != nil {
			fmt.Printf("[Session %v]%v\n", s.Id, err)
		}
	}
	s.SendGlobalStats()
	s.SendRegionStats()

	for {
		select {
		case <-s.Quit:
			fmt.Printf("[Session %v]Ended\n", s.Id)
			return
		case recieveCommand := <-s.Recieve:
			command, err := stringToArrayString(recieveCommand)
			if err != nil {
				s.SendMessageToClient(err.Error())
				continue
			}
			parts, ok := command.([]interface{})
			if !ok || len(parts) < 2 {
				s.SendMessageToClient("Invalid command")
				continue
			}
			commandType, ok1 := parts[0].(float64)
			commandSecond, ok2 := parts[1].(float64)
			if !ok1 || !ok2 {
				s.SendMessageToClient("Invalid command")
				continue
			}
			var payload interface{}
			if len(parts) > 2 {
				payload = parts[2]
			}

			switch commandType {
			case 0:
				s.handleControl(commandSecond, payload)
			case 1:
				s.handleRegion(commandSecond, payload)
			case 2:
				s.handleSimulate(commandSecond, payload)
			case 3:
				s.handlePolicy(commandSecond, payload)
			case 4:
				s.handleExport(commandSecond, payload)
			default:
				s.SendMessageToClient("Unknown command")
			}
		}
	}
}

func (s *Session) handleControl(commandSecond float64, payload interface{}) {
	switch commandSecond {
	case 0: // pause
		s.World.Pause()
		s.SendMessageToClient("Simulation paused")
	case 1: // start
		s.World.Start()
		s.SendMessageToClient("Simulation started")
	case 2: // reset
		s.World.Reset()
		s.Controller.Rules = s.Controller.Rules[:0]
		s.SendMessageToClient("Simulation reset")
		s.SendGlobalStats()
		s.SendRegionStats()
	case 3: // disease parameters
		var df DiseaseParametersFormat
		if err := decodePayload(payload, &df); err != nil {
			s.SendMessageToClient("Invalid disease parameters")
			return
		}
		s.applyDiseaseParameters(df)
	}
}

// applyDiseaseParameters edits the shared disease in place so the change is
// visible to every region on the next simulated day. Validation happens
// up front; a rejected payload leaves the current disease untouched.
func (s *Session) applyDiseaseParameters(df DiseaseParametersFormat) {
	disease, err := NewDisease(df.Name, df.TransmissionRate, df.MortalityRate, df.RecoveryRate, df.MinDaysInfected)
	if err != nil {
		s.SendMessageToClient(err.Error())
		return
	}

	if s.World.Disease == nil {
		s.World.Disease = disease
		s.SendMessageToClient("Disease configured")
		return
	}

	*s.World.Disease = *disease
	s.SendMessageToClient("Parameters applied")
	fmt.Printf("[Session %v]Disease: %+v\n", s.Id, *s.World.Disease)
}

func (s *Session) handleRegion(commandSecond float64, payload interface{}) {
	switch commandSecond {
	case 0: // add region
		var rf RegionFormat
		if err := decodePayload(payload, &rf); err != nil {
			s.SendMessageToClient("Invalid region definition")
			return
		}
		region, err := s.World.AddRegion(rf.Name, rf.Population, rf.Density)
		if err != nil {
			s.SendMessageToClient(err.Error())
			return
		}
		if len(rf.Boundary) > 0 {
			region.SetBoundary(coordsToLatLngs(rf.Boundary))
		}
		if rf.InitialInfected > 0 && s.World.Disease != nil {
			region.IntroduceDisease(s.World.Disease, rf.InitialInfected)
		}
		s.SendMessageToClient(fmt.Sprintf("Region %v added", rf.Name))
		s.SendRegionStats()
		s.SendRegionBoundaries()
	case 1: // remove region
		name, ok := payload.(string)
		if !ok || !s.World.RemoveRegion(name) {
			s.SendMessageToClient("Region not found")
			return
		}
		s.SendMessageToClient(fmt.Sprintf("Region %v removed", name))
		s.SendRegionStats()
	case 2: // locate region at point
		coords, ok := payload.([]interface{})
		if !ok || len(coords) != 2 {
			s.SendMessageToClient("Invalid point")
			return
		}
		lat, ok1 := coords[0].(float64)
		lng, ok2 := coords[1].(float64)
		if !ok1 || !ok2 {
			s.SendMessageToClient("Invalid point")
			return
		}
		s.sendRegionAtPoint(orb.Point{lng, lat})
	case 3: // set initial infected
		var f InitialInfectedFormat
		if err := decodePayload(payload, &f); err != nil || f.Count < 0 {
			s.SendMessageToClient("Invalid initial infected")
			return
		}
		region := s.World.RegionByName(f.Region)
		if region == nil {
			s.SendMessageToClient("Region not found")
			return
		}
		region.SetInitialInfected(f.Count)
		s.SendRegionStats()
	}
}

func (s *Session) handleSimulate(commandSecond float64, payload interface{}) {
	days := 1
	if commandSecond == 1 {
		n, ok := payload.(float64)
		if !ok || n < 1 {
			s.SendMessageToClient("Invalid day count")
			return
		}
		days = int(n)
	}
	if !s.World.IsRunning() {
		s.SendMessageToClient("Simulation is paused")
		return
	}
	s.World.SimulateDays(days, s.Controller)
	s.SendGlobalStats()
	s.SendRegionStats()
}

func (s *Session) handlePolicy(commandSecond float64, payload interface{}) {
	switch commandSecond {
	case 0, 1: // add/remove policy on region
		var pf PolicyCommandFormat
		if err := decodePayload(payload, &pf); err != nil {
			s.SendMessageToClient("Invalid policy command")
			return
		}
		region := s.World.RegionByName(pf.Region)
		if region == nil {
			s.SendMessageToClient("Region not found")
			return
		}
		if commandSecond == 0 {
			policy, ok := s.Controller.LookupPolicy(pf.Policy)
			if !ok {
				s.SendMessageToClient("Unknown policy")
				return
			}
			region.AddPolicy(policy)
			s.SendMessageToClient(fmt.Sprintf("Added %v to %v", policy.Name, region.Name))
		} else {
			region.RemovePolicy(pf.Policy)
			s.SendMessageToClient(fmt.Sprintf("Removed %v from %v", pf.Policy, region.Name))
		}
		s.SendRegionStats()
	case 2: // register custom policy
		var cf CustomPolicyFormat
		if err := decodePayload(payload, &cf); err != nil {
			s.SendMessageToClient("Invalid custom policy")
			return
		}
		policy, err := CustomPolicy(cf.Name, cf.Description, cf.TransmissionModifier)
		if err != nil {
			s.SendMessageToClient(err.Error())
			return
		}
		s.Controller.RegisterCustomPolicy(policy)
		s.SendMessageToClient(fmt.Sprintf("Registered policy %v", policy.Name))
	case 3: // add auto-policy rule
		var rule AutoPolicyRule
		if err := decodePayload(payload, &rule); err != nil || rule.AddThreshold < 0 || rule.RemoveThreshold < 0 {
			s.SendMessageToClient("Invalid auto-policy rule")
			return
		}
		s.Controller.AddRule(rule)
		s.SendMessageToClient(fmt.Sprintf("Rule added: %v on %v >%d/<%d",
			rule.PolicyName, rule.RegionName, rule.AddThreshold, rule.RemoveThreshold))
	case 4: // remove auto-policy rule
		var rule AutoPolicyRule
		if err := decodePayload(payload, &rule); err != nil {
			s.SendMessageToClient("Invalid auto-policy rule")
			return
		}
		s.Controller.RemoveRule(rule)
		s.SendMessageToClient("Rule removed")
	}
}

func (s *Session) handleExport(commandSecond float64, payload interface{}) {
	var ef ExportFormat
	if payload != nil {
		if err := decodePayload(payload, &ef); err != nil {
			s.SendMessageToClient("Invalid export command")
			return
		}
	}

	switch commandSecond {
	case 0: // stats CSV
		path := ef.Path
		if path == "" {
			path = filepath.Join(s.Config.StatsDir, fmt.Sprintf("stats_%v.csv", s.Id))
		}
		if err := s.World.History.WriteCSV(path); err != nil {
			s.SendMessageToClient(err.Error())
			return
		}
		s.SendMessageToClient("Stats exported to " + path)
	case 1: // save region definitions
		records := make([]regiondata.RegionRecord, 0, len(s.World.Regions))
		for _, r := range s.World.Regions {
			records = append(records, regiondata.RegionRecord{
				Name:       r.Name,
				Population: r.PopulationSize(),
				Density:    r.Density,
				Boundary:   twoLatLngtoArrayFloat(r.Boundary),
			})
		}
		if err := regiondata.SaveRegions(ef.Path, records); err != nil {
			s.SendMessageToClient(err.Error())
			return
		}
		s.SendMessageToClient("Regions saved to " + ef.Path)
	case 2: // load region definitions
		if err := s.loadRegions(ef.Path); err != nil {
			s.SendMessageToClient(err.Error())
			return
		}
		s.SendMessageToClient("Regions loaded from " + ef.Path)
		s.SendRegionStats()
		s.SendRegionBoundaries()
	case 3: // timeline summary
		s.SendTimelineSummary()
	}
}

// loadRegions reconstructs regions from saved records: fresh all-Healthy
// populations, no policies, no disease until explicitly introduced.
func (s *Session) loadRegions(path string) error {
	records, err := regiondata.LoadRegions(path)
	if err != nil {
		return err
	}
	for _, rec := range records {
		region, err := s.World.AddRegion(rec.Name, rec.Population, rec.Density)
		if err != nil {
			return err
		}
		if len(rec.Boundary) > 0 {
			region.SetBoundary(coordsToLatLngs(rec.Boundary))
		}
	}
	return nil
}

func (s *Session) sendRegionAtPoint(point orb.Point) {
	for _, r := range s.World.Regions {
		if r.ContainsPoint(point) {
			s.SendMessageToClient(fmt.Sprintf("Point is in %v", r.Name))
			return
		}
	}
	s.SendMessageToClient("Point is in no region")
}

func (s *Session) SendMessageToClient(message string) {
	sendformat := &SendFormat{
		Command:       1,
		CommandSecond: 0,
		Data:          message,
	}

	f, err := json.Marshal(sendformat)
	if err != nil {
		fmt.Println(err)
		return
	}
	s.Send <- string(f)
}

func (s *Session) SendGlobalStats() {
	global := s.World.GlobalStatistics()
	sendformat := &SendFormat{
		Command:       1,
		CommandSecond: 1,
		Data: &StatsGlobalFormat{
			Day:       s.World.CurrentDay(),
			Running:   s.World.IsRunning(),
			Healthy:   global[Healthy.String()],
			Infected:  global[Infected.String()],
			Recovered: global[Recovered.String()],
			Deceased:  global[Deceased.String()],
		},
	}

	e, err := ffjson.Marshal(sendformat)
	if err != nil {
		fmt.Println(err)
		return
	}
	s.Send <- string(e)
}

func (s *Session) SendRegionStats() {
	regions := make([]StatsRegionFormat, 0, len(s.World.Regions))
	for _, r := range s.World.Regions {
		stats := r.Statistics()
		policies := make([]string, 0)
		for _, p := range r.ActivePolicies() {
			policies = append(policies, p.Name)
		}
		regions = append(regions, StatsRegionFormat{
			Name:           r.Name,
			Population:     r.PopulationSize(),
			Density:        r.Density,
			Healthy:        stats[Healthy.String()],
			Infected:       stats[Infected.String()],
			Recovered:      stats[Recovered.String()],
			Deceased:       stats[Deceased.String()],
			ActivePolicies: policies,
		})
	}

	sendformat := &SendFormat{
		Command:       1,
		CommandSecond: 2,
		Data: &StatsRegionsFormat{
			Day:     s.World.CurrentDay(),
			Regions: regions,
		},
	}

	e, err := ffjson.Marshal(sendformat)
	if err != nil {
		fmt.Println(err)
		return
	}
	s.Send <- string(e)
}

func (s *Session) SendTimelineSummary() {
	sendformat := &SendFormat{
		Command:       1,
		CommandSecond: 3,
		Data:          s.World.History.Summary(),
	}

	e, err := json.Marshal(sendformat)
	if err != nil {
		fmt.Println(err)
		return
	}
	s.Send <- string(e)
}

func (s *Session) SendRegionBoundaries() {
	geojson := &GeoJSONFormat{
		Type:     "FeatureCollection",
		Features: make([]Feature, 0),
	}

	for _, r := range s.World.Regions {
		if len(r.Boundary) == 0 {
			continue
		}
		feature := Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Polygon",
				Coordinates: [][][]float64{boundaryToLngLat(r.Boundary)},
			},
			Properties: Properties{
				Type: "Region",
				Information: RegionInfoFormat{
					Name:       r.Name,
					Population: r.PopulationSize(),
					Density:    r.Density,
					Infected:   r.InfectedCount(),
				},
			},
		}
		geojson.Features = append(geojson.Features, feature)
	}

	sendformat := &SendFormat{
		Command:       1,
		CommandSecond: 4,
		Data:          geojson,
	}

	e, err := ffjson.Marshal(sendformat)
	if err != nil {
		fmt.Println(err)
		return
	}
	s.Send <- string(e)
}

func coordsToLatLngs(coords [][]float64) []LatLng {
	out := make([]LatLng, 0, len(coords))
	for _, c := range coords {
		if len(c) != 2 {
			continue
		}
		out = append(out, LatLng{Lat: c[0], Lng: c[1]})
	}
	return out
}

// GeoJSON wants lng,lat order.
func boundaryToLngLat(coords []LatLng) [][]float64 {
	out := make([][]float64, 0, len(coords))
	for _, c := range coords {
		out = append(out, []float64{c.Lng, c.Lat})
	}
	return out
}
