package calendar

// RuleSet selects which holiday scopes a computation honors.  It is an
// immutable value object; the packed bit form keys the memoization cache.
type RuleSet struct {
	National     bool `json:"national"`
	State        bool `json:"state"`
	CourtGeneral bool `json:"court_general"` // also gates the automatic recess
	CourtLocal   bool `json:"court_local"`
	Municipal    bool `json:"municipal"`
}

// DefaultRuleSet honors every scope, which is the correct posture for an
// ordinary state-court deadline.
func DefaultRuleSet() RuleSet {
	return RuleSet{
		National:     true,
		State:        true,
		CourtGeneral: true,
		CourtLocal:   true,
		Municipal:    true,
	}
}

// allows reports whether a resolved scope is honored by this rule set.
// ScopeUnknown is never allowed.
func (r RuleSet) allows(s Scope) bool {
	switch s {
	case ScopeNational:
		return r.National
	case ScopeState:
		return r.State
	case ScopeCourtGeneral:
		return r.CourtGeneral
	case ScopeCourtLocal:
		return r.CourtLocal
	case ScopeMunicipal:
		return r.Municipal
	}
	return false
}

// bits packs the five flags for use in cache keys.
func (r RuleSet) bits() uint8 {
	var b uint8
	if r.National {
		b |= 1 << 0
	}
	if r.State {
		b |= 1 << 1
	}
	if r.CourtGeneral {
		b |= 1 << 2
	}
	if r.CourtLocal {
		b |= 1 << 3
	}
	if r.Municipal {
		b |= 1 << 4
	}
	return b
}

// Query bundles the per-call jurisdiction parameters.  Comarca and
// Municipality are free text exactly as entered by the end user; the engine
// normalizes them internally.
type Query struct {
	Comarca      string
	Municipality string
	ApplyLocal   bool
	Rules        RuleSet
}

// DefaultQuery applies every scope with no jurisdiction, which covers
// nationwide and statewide holidays plus the recess.
func DefaultQuery() Query {
	return Query{ApplyLocal: true, Rules: DefaultRuleSet()}
}
