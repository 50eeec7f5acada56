// Package view defines the view specification: which slice of the budget
// flow a request is asking for, and how many top-ranked entities to keep at
// each level.
package view

import (
	"errors"
	"fmt"

	"github.com/rsviz/budgetflow/internal/record"
)

// Mode is one of the four mutually-exclusive view modes.
type Mode int

const (
	ModeGlobal Mode = iota
	ModeMinistry
	ModeProject
	ModeRecipient
)

func (m Mode) String() string {
	switch m {
	case ModeGlobal:
		return "global"
	case ModeMinistry:
		return "ministry"
	case ModeProject:
		return "project"
	case ModeRecipient:
		return "recipient"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Default limits, substituted by Normalize when a field is absent (zero).
// Focused modes widen the per-level defaults because a single entity is the
// whole universe there.
const (
	DefaultGlobalMinistryLimit   = 3
	DefaultGlobalProjectLimit    = 3
	DefaultFocusedProjectLimit   = 10
	DefaultRecipientMinistryKeep = 10
	DefaultSpendingLimit         = 10
)

// ErrAmbiguousTarget is returned when more than one target field is set.
// Exactly one target selects a focused mode; none selects Global.
var ErrAmbiguousTarget = errors.New("at most one of targetMinistryName, targetProjectName, targetRecipientName may be set")

// Spec is the request-side view specification. Zero values mean "absent";
// Normalize substitutes defaults and canonicalizes target names.
type Spec struct {
	MinistryLimit         int    `json:"ministryLimit"`
	ProjectLimit          int    `json:"projectLimit"`
	SpendingLimit         int    `json:"spendingLimit"`
	DrilldownLevel        int    `json:"drilldownLevel"`
	ProjectDrilldownLevel int    `json:"projectDrilldownLevel"`
	TargetMinistry        string `json:"targetMinistryName,omitempty"`
	TargetProject         string `json:"targetProjectName,omitempty"`
	TargetRecipient       string `json:"targetRecipientName,omitempty"`
}

// Mode derives the view mode from which target field is present.
func (s Spec) Mode() (Mode, error) {
	set := 0
	mode := ModeGlobal
	if s.TargetMinistry != "" {
		set++
		mode = ModeMinistry
	}
	if s.TargetProject != "" {
		set++
		mode = ModeProject
	}
	if s.TargetRecipient != "" {
		set++
		mode = ModeRecipient
	}
	if set > 1 {
		return ModeGlobal, ErrAmbiguousTarget
	}
	return mode, nil
}

// Normalize returns the fully-resolved spec: mode-dependent defaults for
// absent limits, negative offsets clamped to zero, and target names run
// through the record store's canonical form so that equivalent requests
// produce the same cache key.
func (s Spec) Normalize() (Spec, Mode, error) {
	mode, err := s.Mode()
	if err != nil {
		return Spec{}, ModeGlobal, err
	}

	n := s
	n.TargetMinistry = record.CanonicalName(s.TargetMinistry)
	n.TargetProject = record.CanonicalName(s.TargetProject)
	n.TargetRecipient = record.CanonicalName(s.TargetRecipient)

	if n.MinistryLimit <= 0 {
		if mode == ModeRecipient {
			n.MinistryLimit = DefaultRecipientMinistryKeep
		} else {
			n.MinistryLimit = DefaultGlobalMinistryLimit
		}
	}
	if n.ProjectLimit <= 0 {
		if mode == ModeGlobal {
			n.ProjectLimit = DefaultGlobalProjectLimit
		} else {
			n.ProjectLimit = DefaultFocusedProjectLimit
		}
	}
	if n.SpendingLimit <= 0 {
		n.SpendingLimit = DefaultSpendingLimit
	}
	if n.DrilldownLevel < 0 {
		n.DrilldownLevel = 0
	}
	if n.ProjectDrilldownLevel < 0 {
		n.ProjectDrilldownLevel = 0
	}

	return n, mode, nil
}

// Key returns the canonical cache key of a normalized spec. Two requests that
// normalize to the same tuple always produce the same key.
func (s Spec) Key() string {
	return fmt.Sprintf("ml=%d&pl=%d&sl=%d&dl=%d&pdl=%d&tm=%s&tp=%s&tr=%s",
		s.MinistryLimit, s.ProjectLimit, s.SpendingLimit,
		s.DrilldownLevel, s.ProjectDrilldownLevel,
		s.TargetMinistry, s.TargetProject, s.TargetRecipient,
	)
}
