package epidemicsim

import "fmt"

// AutoPolicyRule is pure configuration: add the named policy to the named
// region when its infected count rises above AddThreshold, remove it again
// when the count falls below RemoveThreshold. The two thresholds are
// independent; keeping them apart gives the hysteresis that stops a policy
// from flapping around a single boundary.
type AutoPolicyRule struct {
	RegionName      string `json:"region_name"`
	PolicyName      string `json:"policy_name"`
	AddThreshold    int    `json:"add_threshold"`
	RemoveThreshold int    `json:"remove_threshold"`
}

// AutoPolicyController evaluates its rules against live region state every
// tick, before the day is simulated. Rules are applied in list order; the
// controller never mutates them. Custom policies registered here extend the
// built-in catalog for rule resolution.
type AutoPolicyController struct {
	Rules          []AutoPolicyRule
	CustomPolicies []Policy
}

func SetupAutoPolicyController() *AutoPolicyController {
	return &AutoPolicyController{
		Rules:          make([]AutoPolicyRule, 0),
		CustomPolicies: make([]Policy, 0),
	}
}

func (c *AutoPolicyController) AddRule(rule AutoPolicyRule) {
	c.Rules = append(c.Rules, rule)
}

// RemoveRule drops every rule matching all four fields.
func (c *AutoPolicyController) RemoveRule(rule AutoPolicyRule) {
	kept := c.Rules[:0]
	for _, r := range c.Rules {
		if r != rule {
			kept = append(kept, r)
		}
	}
	c.Rules = kept
}

// RegisterCustomPolicy makes a user-defined policy resolvable by rule name.
// A same-named registration replaces the earlier one.
func (c *AutoPolicyController) RegisterCustomPolicy(p Policy) {
	for i, existing := range c.CustomPolicies {
		if existing.Name == p.Name {
			c.CustomPolicies[i] = p
			return
		}
	}
	c.CustomPolicies = append(c.CustomPolicies, p)
}

// LookupPolicy resolves a policy name against the built-in presets, then
// the registered custom policies.
func (c *AutoPolicyController) LookupPolicy(name string) (Policy, bool) {
	if p, ok := BuiltinPolicy(name); ok {
		return p, true
	}
	for _, p := range c.CustomPolicies {
		if p.Name == name {
			return p, true
		}
	}
	return Policy{}, false
}

// Evaluate applies every rule against the world's current state. Rules
// naming a missing region or an unknown policy are silently skipped; rules
// are data, not guaranteed-valid references. Each rule reads live state, so
// on conflicting actions within one tick the last rule wins.
func (c *AutoPolicyController) Evaluate(w *World) {
	for _, rule := range c.Rules {
		region := w.RegionByName(rule.RegionName)
		if region == nil {
			continue
		}
		policy, ok := c.LookupPolicy(rule.PolicyName)
		if !ok {
			continue
		}

		infected := region.InfectedCount()
		if infected > rule.AddThreshold && !region.HasPolicyActive(policy.Name) {
			region.AddPolicy(policy)
			c.logf("[AutoPolicy]Added %v to %v (Infected: %d)\n", policy.Name, region.Name, infected)
		} else if infected < rule.RemoveThreshold && region.HasPolicyActive(policy.Name) {
			region.RemovePolicy(policy.Name)
			c.logf("[AutoPolicy]Removed %v from %v (Infected: %d)\n", policy.Name, region.Name, infected)
		}
	}
}

func (c *AutoPolicyController) logf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
	if Log != nil {
		Log.Printf(format, args...)
	}
}
