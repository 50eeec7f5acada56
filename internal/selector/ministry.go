package selector

import (
	"github.com/rsviz/budgetflow/internal/record"
	"github.com/rsviz/budgetflow/internal/view"
)

// ministryStrategy treats a single named ministry as the universe: its
// projects are ranked and paged, recipients are ranked by contribution from
// the current page's projects only, and leftovers bucket per this ministry.
type ministryStrategy struct{}

func (ministryStrategy) Select(ds *record.Dataset, spec view.Spec) (*Selection, error) {
	m, ok := ds.MinistryByName(spec.TargetMinistry)
	if !ok {
		return nil, &NotFoundError{Kind: "ministry", Name: spec.TargetMinistry}
	}

	all := rankProjects(ds.ProjectsOfMinistry(m.Name))
	page, rest := pageSlice(all, spec.ProjectDrilldownLevel, spec.ProjectLimit)

	keptProj := make(map[int]bool, len(page))
	projPicks := make([]ProjectPick, 0, len(page))
	var keptBudget float64
	for _, p := range page {
		projPicks = append(projPicks, ProjectPick{
			Project:       p,
			Value:         p.TotalBudget,
			NoDestination: len(ds.PaymentsOfProject(p.ProjectID)) == 0,
		})
		keptProj[p.ProjectID] = true
		keptBudget += p.TotalBudget
	}

	var leftover *ProjectLeftover
	if len(rest) > 0 {
		budget := m.TotalBudget - keptBudget
		if budget < 0 {
			budget = 0
		}
		var spending float64
		for _, p := range rest {
			spending += p.TotalSpendingAmount
		}
		leftover = &ProjectLeftover{Count: len(rest), Budget: budget, Spending: spending}
	}

	totals := make(map[int]float64)
	for _, p := range page {
		for _, pay := range ds.PaymentsOfProject(p.ProjectID) {
			if pay.Recipient.IsReservedOther() {
				continue
			}
			totals[pay.Recipient.SpendingID] += pay.Contribution.Amount
		}
	}
	keptRecipients := topRecipientIDs(totals, spec.SpendingLimit)

	sel := &Selection{
		Mode: view.ModeMinistry,
		Spec: spec,
		Ministries: []MinistryPick{{
			Ministry:         m,
			Name:             m.Name,
			Value:            m.TotalBudget,
			Projects:         projPicks,
			LeftoverProjects: leftover,
		}},
		TotalMinistries:       len(ds.Ministries()),
		TotalProjects:         len(ds.Projects()),
		TotalSpendings:        len(ds.Recipients()),
		SelectedMinistries:    1,
		SelectedProjects:      len(projPicks),
		SelectedSpendings:     len(keptRecipients),
		TotalBudget:           ds.TotalBudget(),
		SelectedBudget:        keptBudget,
		MinistryTotalProjects: len(all),
	}

	// Scope is this ministry's projects only; contributions from any other
	// ministry's projects are out of scope and dropped.
	ministryKey := record.CanonicalName(m.Name)
	inScope := make(map[int]bool, len(all))
	for _, p := range all {
		inScope[p.ProjectID] = true
	}
	classify := func(projectID int) (SourceKind, string, bool) {
		if !inScope[projectID] {
			return 0, "", false
		}
		if keptProj[projectID] {
			return SourceProject, "", true
		}
		return SourceLeftoverProjects, ministryKey, true
	}
	attributeInflows(ds, sel, keptRecipients, classify)

	return sel, nil
}
