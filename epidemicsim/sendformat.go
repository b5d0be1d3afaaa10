package epidemicsim

// Outbound websocket payloads. Everything leaves the server wrapped in a
// SendFormat envelope; command_first/command_second tell the client which
// panel the data belongs to.

type SendFormat struct {
	Command       int         `json:"command_first"`
	CommandSecond int         `json:"command_second"`
	Data          interface{} `json:"data"`
}

// 1,1
type StatsGlobalFormat struct {
	Day       int  `json:"day"`
	Running   bool `json:"running"`
	Healthy   int  `json:"healthy"`
	Infected  int  `json:"infected"`
	Recovered int  `json:"recovered"`
	Deceased  int  `json:"deceased"`
}

// 1,2
type StatsRegionFormat struct {
	Name           string   `json:"name"`
	Population     int      `json:"population"`
	Density        float64  `json:"density"`
	Healthy        int      `json:"healthy"`
	Infected       int      `json:"infected"`
	Recovered      int      `json:"recovered"`
	Deceased       int      `json:"deceased"`
	ActivePolicies []string `json:"active_policies"`
}

type StatsRegionsFormat struct {
	Day     int                 `json:"day"`
	Regions []StatsRegionFormat `json:"regions"`
}

// 1,4 region boundaries for the map panel
type GeoJSONFormat struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

type Feature struct {
	Type       string     `json:"type"`
	Geometry   Geometry   `json:"geometry"`
	Properties Properties `json:"properties"`
}

type Geometry struct {
	Type        string        `json:"type"`
	Coordinates [][][]float64 `json:"coordinates"`
}

type Properties struct {
	Type        string      `json:"type"`
	Information interface{} `json:"information"`
}

type RegionInfoFormat struct {
	Name       string  `json:"name"`
	Population int     `json:"population"`
	Density    float64 `json:"density"`
	Infected   int     `json:"infected"`
}
