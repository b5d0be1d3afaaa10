package epidemicsim

import "fmt"

// Policy is an immutable named multiplicative transmission modifier.
// A region's effective modifier is the product over its active set, so
// composition is order-independent. Identity for add/remove/has is the
// policy name, never the modifier value.
type Policy struct {
	Name                 string  `json:"name"`
	Description          string  `json:"description"`
	TransmissionModifier float64 `json:"transmission_modifier"`
}

func NoPolicy() Policy {
	return Policy{Name: "No Policy", Description: "No restrictions", TransmissionModifier: 1.0}
}

func MaskPolicy() Policy {
	return Policy{Name: "Mask Mandate", Description: "Reduces transmission by 30%", TransmissionModifier: 0.7}
}

func SocialDistancingPolicy() Policy {
	return Policy{Name: "Social Distancing", Description: "Reduces transmission by 50%", TransmissionModifier: 0.5}
}

func LockdownPolicy() Policy {
	return Policy{Name: "Lockdown", Description: "Reduces transmission by 70%", TransmissionModifier: 0.3}
}

// CustomPolicy builds a user-defined policy. The modifier must be positive;
// values above 1 are allowed and model transmission-increasing measures.
func CustomPolicy(name, description string, transmissionModifier float64) (Policy, error) {
	if name == "" {
		return Policy{}, fmt.Errorf("policy name must not be empty")
	}
	if transmissionModifier <= 0 {
		return Policy{}, fmt.Errorf("transmission modifier %v must be positive", transmissionModifier)
	}
	return Policy{Name: name, Description: description, TransmissionModifier: transmissionModifier}, nil
}

// BuiltinPolicy resolves one of the preset policies by name.
func BuiltinPolicy(name string) (Policy, bool) {
	for _, p := range []Policy{MaskPolicy(), SocialDistancingPolicy(), LockdownPolicy()} {
		if p.Name == name {
			return p, true
		}
	}
	return Policy{}, false
}
