package selector

import (
	"github.com/rsviz/budgetflow/internal/record"
	"github.com/rsviz/budgetflow/internal/view"
)

// Strategy selects the kept/leftover partition for one view mode.
// Implementations receive an already-normalized spec (defaults substituted,
// target names canonicalized) and must not mutate the dataset.
type Strategy interface {
	Select(ds *record.Dataset, spec view.Spec) (*Selection, error)
}

// For returns the strategy implementing the given view mode.
func For(mode view.Mode) Strategy {
	switch mode {
	case view.ModeMinistry:
		return ministryStrategy{}
	case view.ModeProject:
		return projectStrategy{}
	case view.ModeRecipient:
		return recipientStrategy{}
	default:
		return globalStrategy{}
	}
}

// Select runs the strategy for the spec's mode. The spec must be normalized.
func Select(ds *record.Dataset, spec view.Spec, mode view.Mode) (*Selection, error) {
	return For(mode).Select(ds, spec)
}
