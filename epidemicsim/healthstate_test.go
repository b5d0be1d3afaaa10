package epidemicsim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthStatePredicates(t *testing.T) {
	cases := []struct {
		state         HealthState
		canInfect     bool
		canBeInfected bool
	}{
		{Healthy, false, true},
		{Infected, true, false},
		{Recovered, false, true},
		{Deceased, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.state.String(), func(t *testing.T) {
			assert.Equal(t, tc.canInfect, tc.state.CanInfect())
			assert.Equal(t, tc.canBeInfected, tc.state.CanBeInfected())
		})
	}
}

func TestHealthStateNames(t *testing.T) {
	assert.Equal(t, "Healthy", Healthy.String())
	assert.Equal(t, "Infected", Infected.String())
	assert.Equal(t, "Recovered", Recovered.String())
	assert.Equal(t, "Deceased", Deceased.String())
}
