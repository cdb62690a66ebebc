// Package deadline manages persisted deadline records for legal cases: the
// dates the calendar engine computes, tracked through to completion.
package deadline

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/juristech/prazojus/pkg/errors"
)

// Priority ranks how urgently a record needs attention.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// priorityAliases folds legacy Portuguese labels into canonical priorities.
var priorityAliases = map[string]Priority{
	"LOW":    PriorityLow,
	"BAIXA":  PriorityLow,
	"MEDIUM": PriorityMedium,
	"MEDIA":  PriorityMedium,
	"MÉDIA":  PriorityMedium,
	"HIGH":   PriorityHigh,
	"ALTA":   PriorityHigh,
}

// ParsePriority resolves a raw priority label.  Blank input defaults to
// medium; unrecognised labels are an error.
func ParsePriority(raw string) (Priority, error) {
	label := strings.ToUpper(strings.TrimSpace(raw))
	if label == "" {
		return PriorityMedium, nil
	}
	if p, ok := priorityAliases[label]; ok {
		return p, nil
	}
	return "", errors.Newf(errors.ErrCodeDeadlineInvalid, "unrecognised priority %q", raw)
}

// Record is a tracked deadline for a case.
type Record struct {
	ID        uuid.UUID `json:"id"`
	CaseRef   string    `json:"case_ref"` // CNJ number or free-form case reference
	Event     string    `json:"event"`
	DueDate   time.Time `json:"due_date"`
	Priority  Priority  `json:"priority"`
	Completed bool      `json:"completed"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateInput carries the fields needed to register a record directly.
type CreateInput struct {
	CaseRef  string    `json:"case_ref"`
	Event    string    `json:"event"`
	DueDate  time.Time `json:"due_date"`
	Priority string    `json:"priority,omitempty"`
	Notes    string    `json:"notes,omitempty"`
}

func (in *CreateInput) validate() (Priority, error) {
	if strings.TrimSpace(in.CaseRef) == "" {
		return "", errors.New(errors.ErrCodeDeadlineInvalid, "case reference is required")
	}
	if strings.TrimSpace(in.Event) == "" {
		return "", errors.New(errors.ErrCodeDeadlineInvalid, "event is required")
	}
	if in.DueDate.IsZero() {
		return "", errors.New(errors.ErrCodeDeadlineInvalid, "due date is required")
	}
	return ParsePriority(in.Priority)
}

// UpdateInput applies a partial update; nil fields are left untouched.
type UpdateInput struct {
	Event     *string    `json:"event,omitempty"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	Priority  *string    `json:"priority,omitempty"`
	Completed *bool      `json:"completed,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
}

// Filter narrows a listing.
type Filter struct {
	CaseRef  string // empty means all cases
	OnlyOpen *bool  // nil: both; true: open only; false: completed only
}
