// Package calendar implements the procedural-deadline engine: it decides
// which calendar days count as business days for a given jurisdiction and
// rule set, and derives DJE publication dates and deadlines from them.
package calendar

import (
	"strings"
	"time"

	"github.com/juristech/prazojus/pkg/errors"
)

// Scope is the jurisdictional breadth of a holiday record.
type Scope string

const (
	// ScopeNational applies everywhere regardless of locality.
	ScopeNational Scope = "NATIONAL"

	// ScopeState applies statewide; locality is ignored.
	ScopeState Scope = "STATE"

	// ScopeCourtGeneral applies to the whole court system; it also gates the
	// automatic year-end recess.
	ScopeCourtGeneral Scope = "COURT_GENERAL"

	// ScopeCourtLocal applies only to a matching judicial district (comarca).
	ScopeCourtLocal Scope = "COURT_LOCAL"

	// ScopeMunicipal applies only to a matching municipality.
	ScopeMunicipal Scope = "MUNICIPAL"

	// ScopeUnknown is the explicit variant for labels the alias table does not
	// recognise.  An unknown scope never matches any rule flag; it is not an
	// error, so a bad row can never crash a deadline computation.
	ScopeUnknown Scope = "UNKNOWN"
)

// scopeAliases folds historical and alternate labels into canonical scopes.
// The Portuguese labels are the ones the legacy holiday data was recorded
// with; the CPC/ART variants all denote the statutory recess scope.
var scopeAliases = map[string]Scope{
	"NATIONAL": ScopeNational,
	"NACIONAL": ScopeNational,

	"STATE":       ScopeState,
	"ESTADUAL":    ScopeState,
	"ESTADUAL_SP": ScopeState,
	"SP_ESTADUAL": ScopeState,
	"ESTADUAL-SP": ScopeState,
	"ESTADUAL SP": ScopeState,

	"COURT_GENERAL": ScopeCourtGeneral,
	"TJSP":          ScopeCourtGeneral,
	"TJSP_GERAL":    ScopeCourtGeneral,
	"RECESSO_TJSP":  ScopeCourtGeneral,
	"RECESSO TJSP":  ScopeCourtGeneral,
	"CPC220":        ScopeCourtGeneral,
	"CPC 220":       ScopeCourtGeneral,
	"CPC_220":       ScopeCourtGeneral,
	"CPC-220":       ScopeCourtGeneral,
	"ART_220":       ScopeCourtGeneral,
	"ART 220":       ScopeCourtGeneral,
	"ARTIGO_220":    ScopeCourtGeneral,
	"ARTIGO 220":    ScopeCourtGeneral,

	"COURT_LOCAL":  ScopeCourtLocal,
	"TJSP_COMARCA": ScopeCourtLocal,

	"MUNICIPAL": ScopeMunicipal,
}

// ResolveScope maps a raw holiday-scope label to its canonical Scope.
// Input is trimmed and upper-cased before lookup; unrecognised labels
// resolve to ScopeUnknown rather than failing.
func ResolveScope(raw string) Scope {
	label := strings.ToUpper(strings.TrimSpace(raw))
	if s, ok := scopeAliases[label]; ok {
		return s
	}
	return ScopeUnknown
}

// IsFixed reports whether the scope applies everywhere, independent of the
// target jurisdiction.  Fixed-scope rows carry no locality.
func (s Scope) IsFixed() bool {
	switch s {
	case ScopeNational, ScopeState, ScopeCourtGeneral:
		return true
	}
	return false
}

// IsLocal reports whether the scope requires a locality match.
func (s Scope) IsLocal() bool {
	return s == ScopeMunicipal || s == ScopeCourtLocal
}

// Holiday is a single non-business day as recorded in the holiday store.
// Rows are created and maintained by the store's own tooling; the engine
// only reads them.
type Holiday struct {
	ID          int64     `json:"id"`
	Date        time.Time `json:"date"` // day granularity; time-of-day irrelevant
	Scope       string    `json:"scope"`
	Locality    string    `json:"locality,omitempty"`
	Description string    `json:"description,omitempty"`
	Source      string    `json:"source,omitempty"`
}

// ResolvedScope folds the recorded scope label through the alias table.
func (h *Holiday) ResolvedScope() Scope {
	return ResolveScope(h.Scope)
}

// Validate checks a row before it enters the store (import tooling only; the
// read path tolerates anything).  Fixed scopes must not carry a locality and
// local scopes must carry one, matching the producer-side invariant.
func (h *Holiday) Validate() error {
	if h.Date.IsZero() {
		return errors.New(errors.ErrCodeHolidayInvalid, "holiday date must not be zero")
	}
	scope := h.ResolvedScope()
	if scope == ScopeUnknown {
		return errors.Newf(errors.ErrCodeHolidayInvalid, "unrecognised holiday scope %q", h.Scope)
	}
	locality := strings.TrimSpace(h.Locality)
	if scope.IsFixed() && locality != "" {
		return errors.Newf(errors.ErrCodeHolidayInvalid, "scope %s must not carry a locality", scope)
	}
	if scope.IsLocal() && locality == "" {
		return errors.Newf(errors.ErrCodeHolidayInvalid, "scope %s requires a locality", scope)
	}
	return nil
}
