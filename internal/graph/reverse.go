package graph

import "github.com/rsviz/budgetflow/internal/record"

// buildReverse assembles the recipient-focused layout. The direction flips:
// contributing ministries sit on the left, their paging projects in the
// middle, the single recipient on the right. Every node carries the amount
// this recipient received through it, so all flows conserve exactly, with no
// budget/spending transition in between.
func (b *builder) buildReverse() {
	sel := b.sel
	rp := &sel.Recipients[0]
	recipientID := recipientNodeID(rp.ID)

	for i := range sel.Ministries {
		mp := &sel.Ministries[i]
		n := Node{
			ID:       ministryNodeID(ministryKey(mp)),
			Name:     mp.Name,
			Category: CategoryMinistryBudget,
			Value:    valueFor(mp.Value),
		}
		if mp.Ministry != nil {
			n.OriginalID = mp.Ministry.ID
			n.Details = map[string]any{
				"bureauCount":  mp.Ministry.BureauCount,
				"projectCount": len(mp.Ministry.ProjectIDs),
			}
		}
		b.addNode(n)
	}
	if lm := sel.LeftoverMinistries; lm != nil {
		b.addNode(Node{
			ID:            leftoverMinistriesID,
			Name:          leftoverMinistriesName,
			Category:      CategoryMinistryBudget,
			Value:         valueFor(lm.Spending),
			IsAggregate:   true,
			AggregateKind: AggregateLeftover,
			Details:       map[string]any{"count": lm.Count},
		})
	}

	for i := range sel.Ministries {
		mp := &sel.Ministries[i]
		for _, pp := range mp.Projects {
			p := pp.Project
			b.addNode(Node{
				ID:         projectSpendingID(p.ProjectID),
				Name:       p.ProjectName,
				Category:   CategoryProjectSpending,
				Value:      valueFor(pp.Value),
				OriginalID: p.ProjectID,
				Details:    projectBudgetDetails(p),
			})
		}
		if lp := mp.LeftoverProjects; lp != nil {
			b.addNode(Node{
				ID:            leftoverProjectsSpendingID(ministryKey(mp)),
				Name:          leftoverProjectsName(mp.Name),
				Category:      CategoryProjectSpending,
				Value:         valueFor(lp.Spending),
				IsAggregate:   true,
				AggregateKind: AggregateLeftover,
				Details:       map[string]any{"count": lp.Count},
			})
		}
	}

	rn := Node{
		ID:       recipientID,
		Name:     rp.Name,
		Category: CategoryRecipient,
		Value:    valueFor(rp.Inflows.Total),
	}
	if rp.Recipient != nil {
		rn.OriginalID = rp.Recipient.SpendingID
		rn.Details = map[string]any{
			"corporateNumber": rp.Recipient.CorporateNumber,
			"location":        rp.Recipient.Location,
			"projectCount":    rp.Recipient.ProjectCount,
		}
	}
	if rp.Name == record.ReservedOtherName {
		rn.IsAggregate = true
		rn.AggregateKind = AggregateReservedOther
	}
	b.addNode(rn)

	for i := range sel.Ministries {
		mp := &sel.Ministries[i]
		source := ministryNodeID(ministryKey(mp))
		for _, pp := range mp.Projects {
			b.addStructuralEdge(source, projectSpendingID(pp.Project.ProjectID), pp.Value)
		}
		if lp := mp.LeftoverProjects; lp != nil {
			b.addStructuralEdge(source, leftoverProjectsSpendingID(ministryKey(mp)), lp.Spending)
		}
	}

	for i := range sel.Ministries {
		mp := &sel.Ministries[i]
		for _, pp := range mp.Projects {
			pid := pp.Project.ProjectID
			var details *EdgeDetails
			if flow, ok := rp.Inflows.ByProject[pid]; ok {
				details = &EdgeDetails{
					ContractMethod: flow.ContractMethod,
					BlockName:      flow.BlockName,
				}
			}
			b.addEdge(projectSpendingID(pid), recipientID, pp.Value, details)
		}
		if mp.LeftoverProjects != nil {
			b.addEdge(
				leftoverProjectsSpendingID(ministryKey(mp)),
				recipientID,
				rp.Inflows.ByLeftoverProjects[ministryKey(mp)],
				nil,
			)
		}
	}
	if sel.LeftoverMinistries != nil {
		b.addEdge(leftoverMinistriesID, recipientID, rp.Inflows.FromLeftoverMinistries, nil)
	}
}
