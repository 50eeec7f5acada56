package selector

import (
	"github.com/rsviz/budgetflow/internal/record"
	"github.com/rsviz/budgetflow/internal/view"
)

// projectStrategy treats a single named project as the universe. The owning
// ministry is looked up for display only; the root node carries its name.
type projectStrategy struct{}

func (projectStrategy) Select(ds *record.Dataset, spec view.Spec) (*Selection, error) {
	p, ok := ds.ProjectByName(spec.TargetProject)
	if !ok {
		return nil, &NotFoundError{Kind: "project", Name: spec.TargetProject}
	}

	ministryName := p.Ministry
	var ministry *record.Ministry
	if m, ok := ds.MinistryByName(p.Ministry); ok {
		ministry = m
		ministryName = m.Name
	}

	payments := ds.PaymentsOfProject(p.ProjectID)

	totals := make(map[int]float64)
	for _, pay := range payments {
		if pay.Recipient.IsReservedOther() {
			continue
		}
		totals[pay.Recipient.SpendingID] += pay.Contribution.Amount
	}
	keptRecipients := topRecipientIDs(totals, spec.SpendingLimit)

	sel := &Selection{
		Mode:      view.ModeProject,
		Spec:      spec,
		HasRoot:   true,
		RootName:  ministryName,
		RootValue: p.TotalBudget,
		Ministries: []MinistryPick{{
			Ministry: ministry,
			Name:     ministryName,
			Value:    p.TotalBudget,
			Projects: []ProjectPick{{
				Project:       p,
				Value:         p.TotalBudget,
				NoDestination: len(payments) == 0,
			}},
		}},
		TotalMinistries:    len(ds.Ministries()),
		TotalProjects:      len(ds.Projects()),
		TotalSpendings:     len(ds.Recipients()),
		SelectedMinistries: 1,
		SelectedProjects:   1,
		SelectedSpendings:  len(keptRecipients),
		TotalBudget:        ds.TotalBudget(),
		SelectedBudget:     p.TotalBudget,
	}

	// Scope is this one project.
	classify := func(projectID int) (SourceKind, string, bool) {
		if projectID != p.ProjectID {
			return 0, "", false
		}
		return SourceProject, "", true
	}
	attributeInflows(ds, sel, keptRecipients, classify)

	return sel, nil
}
