package epidemicsim

// Inbound command payloads. The client sends JSON arrays of the form
// [command_first, command_second, payload]; these are the typed payload
// shapes the session decodes into.

// 0,3
type DiseaseParametersFormat struct {
	Name             string  `json:"name"`
	TransmissionRate float64 `json:"transmission_rate"`
	MortalityRate    float64 `json:"mortality_rate"`
	RecoveryRate     float64 `json:"recovery_rate"`
	MinDaysInfected  int     `json:"min_days_infected"`
}

// 1,0
type RegionFormat struct {
	Name            string      `json:"name"`
	Population      int         `json:"population"`
	Density         float64     `json:"density"`
	Boundary        [][]float64 `json:"boundary,omitempty"` // lat,lng pairs
	InitialInfected int         `json:"initial_infected"`
}

// 1,3
type InitialInfectedFormat struct {
	Region string `json:"region"`
	Count  int    `json:"count"`
}

// 3,0 and 3,1
type PolicyCommandFormat struct {
	Region string `json:"region"`
	Policy string `json:"policy"`
}

// 3,2
type CustomPolicyFormat struct {
	Name                 string  `json:"name"`
	Description          string  `json:"description"`
	TransmissionModifier float64 `json:"transmission_modifier"`
}

// 4,0 and 4,1/4,2
type ExportFormat struct {
	Path string `json:"path"`
}
