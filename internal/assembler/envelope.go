package assembler

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rsviz/budgetflow/internal/graph"
	"github.com/rsviz/budgetflow/internal/selector"
	"github.com/rsviz/budgetflow/internal/view"
)

// Envelope is the complete response payload: the flow graph plus the
// metadata describing how it was produced.
type Envelope struct {
	Metadata Metadata     `json:"metadata"`
	Graph    *graph.Graph `json:"graph"`
}

// Metadata describes the generation context of one envelope.
type Metadata struct {
	GeneratedAt    time.Time `json:"generatedAt"`
	FiscalYear     int       `json:"fiscalYear"`
	ViewMode       string    `json:"viewMode"`
	FilterSettings view.Spec `json:"filterSettings"`
	Summary        Summary   `json:"summary"`
}

// Summary reports how much of the dataset survived selection. Coverage is
// the selected share of the relevant budget as a percentage, rounded to two
// decimal places.
type Summary struct {
	TotalMinistries       int     `json:"totalMinistries"`
	SelectedMinistries    int     `json:"selectedMinistries"`
	TotalProjects         int     `json:"totalProjects"`
	SelectedProjects      int     `json:"selectedProjects"`
	TotalSpendings        int     `json:"totalSpendings"`
	SelectedSpendings     int     `json:"selectedSpendings"`
	TotalBudget           float64 `json:"totalBudget"`
	SelectedBudget        float64 `json:"selectedBudget"`
	CoverageRate          float64 `json:"coverageRate"`
	MinistryTotalProjects *int    `json:"ministryTotalProjects,omitempty"`
}

func summarize(sel *selector.Selection) Summary {
	s := Summary{
		TotalMinistries:    sel.TotalMinistries,
		SelectedMinistries: sel.SelectedMinistries,
		TotalProjects:      sel.TotalProjects,
		SelectedProjects:   sel.SelectedProjects,
		TotalSpendings:     sel.TotalSpendings,
		SelectedSpendings:  sel.SelectedSpendings,
		TotalBudget:        sel.TotalBudget,
		SelectedBudget:     sel.SelectedBudget,
		CoverageRate:       coverageRate(sel.SelectedBudget, sel.TotalBudget),
	}
	if sel.Mode == view.ModeMinistry {
		n := sel.MinistryTotalProjects
		s.MinistryTotalProjects = &n
	}
	return s
}

// coverageRate computes selected/total as a percentage in decimal arithmetic
// so that the reported figure is an exact two-place value instead of a float
// artifact. The result is clamped to [0, 100].
func coverageRate(selected, total float64) float64 {
	if total <= 0 {
		return 0
	}
	rate := decimal.NewFromFloat(selected).
		Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromFloat(total), 2)
	f, _ := rate.Float64()
	if f > 100 {
		return 100
	}
	if f < 0 {
		return 0
	}
	return f
}
