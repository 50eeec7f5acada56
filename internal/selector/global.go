package selector

import (
	"github.com/rsviz/budgetflow/internal/record"
	"github.com/rsviz/budgetflow/internal/view"
)

// RootTotalName is the display name of the global root node.
const RootTotalName = "予算総額"

// globalStrategy ranks every ministry, keeps the drilldown page of top-K,
// keeps top-K' projects inside each kept ministry, and ranks recipients
// globally by what they receive from those kept projects only.
type globalStrategy struct{}

func (globalStrategy) Select(ds *record.Dataset, spec view.Spec) (*Selection, error) {
	ranked := rankMinistries(ds.Ministries())
	page, rest := pageSlice(ranked, spec.DrilldownLevel, spec.MinistryLimit)

	keptMin := make(map[string]bool, len(page))
	keptProj := make(map[int]bool)

	picks := make([]MinistryPick, 0, len(page))
	var keptBudget float64
	var selectedProjects int

	for _, m := range page {
		projects := rankProjects(ds.ProjectsOfMinistry(m.Name))
		projPage, projRest := pageSlice(projects, 0, spec.ProjectLimit)

		projPicks := make([]ProjectPick, 0, len(projPage))
		var projBudget float64
		for _, p := range projPage {
			projPicks = append(projPicks, ProjectPick{
				Project:       p,
				Value:         p.TotalBudget,
				NoDestination: len(ds.PaymentsOfProject(p.ProjectID)) == 0,
			})
			keptProj[p.ProjectID] = true
			projBudget += p.TotalBudget
		}

		var leftover *ProjectLeftover
		if len(projRest) > 0 {
			// Budget residue against the pre-aggregated ministry total so the
			// ministry node's outgoing edges reconcile with its value.
			budget := m.TotalBudget - projBudget
			if budget < 0 {
				budget = 0
			}
			var spending float64
			for _, p := range projRest {
				spending += p.TotalSpendingAmount
			}
			leftover = &ProjectLeftover{Count: len(projRest), Budget: budget, Spending: spending}
		}

		keptMin[record.CanonicalName(m.Name)] = true
		keptBudget += m.TotalBudget
		selectedProjects += len(projPicks)
		picks = append(picks, MinistryPick{
			Ministry:         m,
			Name:             m.Name,
			Value:            m.TotalBudget,
			Projects:         projPicks,
			LeftoverProjects: leftover,
		})
	}

	var minLeftover *MinistryLeftover
	if len(rest) > 0 {
		budget := ds.TotalBudget() - keptBudget
		if budget < 0 {
			budget = 0
		}
		var spending float64
		for _, m := range rest {
			spending += ministrySpending(ds, m.Name)
		}
		minLeftover = &MinistryLeftover{Count: len(rest), Budget: budget, Spending: spending}
	}

	// Recipients are ranked by what they receive from the kept ministries'
	// kept projects only, not by their dataset-wide totals.
	totals := make(map[int]float64)
	for _, mp := range picks {
		for _, pp := range mp.Projects {
			for _, pay := range ds.PaymentsOfProject(pp.Project.ProjectID) {
				if pay.Recipient.IsReservedOther() {
					continue
				}
				totals[pay.Recipient.SpendingID] += pay.Contribution.Amount
			}
		}
	}
	keptRecipients := topRecipientIDs(totals, spec.SpendingLimit)

	sel := &Selection{
		Mode:               view.ModeGlobal,
		Spec:               spec,
		HasRoot:            true,
		RootName:           RootTotalName,
		RootValue:          ds.TotalBudget(),
		Ministries:         picks,
		LeftoverMinistries: minLeftover,
		TotalMinistries:    len(ds.Ministries()),
		TotalProjects:      len(ds.Projects()),
		TotalSpendings:     len(ds.Recipients()),
		SelectedMinistries: len(picks),
		SelectedProjects:   selectedProjects,
		SelectedSpendings:  len(keptRecipients),
		TotalBudget:        ds.TotalBudget(),
		SelectedBudget:     keptBudget,
	}

	// Attribution pass over the whole dataset: every contribution to a kept
	// recipient or to a reserved-"その他" payee is routed to its source node;
	// everything else stays in the sources' residuals and surfaces as the
	// generic leftover-recipients node at build time.
	classify := func(projectID int) (SourceKind, string, bool) {
		if keptProj[projectID] {
			return SourceProject, "", true
		}
		p, ok := ds.ProjectByID(projectID)
		if !ok {
			return SourceLeftoverMinistries, "", true
		}
		min := record.CanonicalName(p.Ministry)
		if keptMin[min] {
			return SourceLeftoverProjects, min, true
		}
		return SourceLeftoverMinistries, "", true
	}
	attributeInflows(ds, sel, keptRecipients, classify)

	return sel, nil
}

// ministrySpending resolves a ministry's total spending from the precomputed
// stats table, falling back to summing its projects when no stats row exists.
func ministrySpending(ds *record.Dataset, ministryName string) float64 {
	if st, ok := ds.StatsOfMinistry(ministryName); ok {
		return st.TotalSpending
	}
	var sum float64
	for _, p := range ds.ProjectsOfMinistry(ministryName) {
		sum += p.TotalSpendingAmount
	}
	return sum
}

// topRecipientIDs ranks accumulated per-recipient amounts and keeps the top
// K ids in rank order.
func topRecipientIDs(totals map[int]float64, limit int) []int {
	entries := make([]rankedAmount, 0, len(totals))
	for id, amount := range totals {
		entries = append(entries, rankedAmount{id: id, amount: amount})
	}
	rankAmounts(entries)
	if limit < len(entries) {
		entries = entries[:limit]
	}
	ids := make([]int, len(entries))
	for i, e := range entries {
		ids[i] = e.id
	}
	return ids
}

// attributeInflows fills sel.Recipients and sel.ReservedOther by walking the
// dataset's recipients in stable input order and classifying every
// contribution through classify. A classify result of ok=false means the
// contribution is outside the view's scope and is dropped entirely.
func attributeInflows(ds *record.Dataset, sel *Selection, keptIDs []int, classify func(projectID int) (SourceKind, string, bool)) {
	pickIndex := make(map[int]int, len(keptIDs))
	sel.Recipients = make([]RecipientPick, len(keptIDs))
	for i, id := range keptIDs {
		r, _ := ds.RecipientByID(id)
		name := ""
		if r != nil {
			name = r.SpendingName
		}
		sel.Recipients[i] = RecipientPick{Recipient: r, Name: name, ID: id, Inflows: newInflows()}
		pickIndex[id] = i
	}

	reserved := newInflows()

	recipients := ds.Recipients()
	for i := range recipients {
		r := &recipients[i]
		isOther := r.IsReservedOther()
		idx, isKept := pickIndex[r.SpendingID]
		if !isOther && !isKept {
			continue
		}
		target := &reserved
		if !isOther {
			target = &sel.Recipients[idx].Inflows
		}
		for _, c := range r.Projects {
			kind, ministry, ok := classify(c.ProjectID)
			if !ok {
				continue
			}
			switch kind {
			case SourceProject:
				target.addProject(c.ProjectID, c)
			case SourceLeftoverProjects:
				target.addLeftoverProjects(ministry, c.Amount)
			case SourceLeftoverMinistries:
				target.addLeftoverMinistries(c.Amount)
			}
		}
	}

	if reserved.Total > 0 {
		sel.ReservedOther = &reserved
	}
}
