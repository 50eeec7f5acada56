package graph

import (
	"github.com/rsviz/budgetflow/internal/record"
	"github.com/rsviz/budgetflow/internal/selector"
	"github.com/rsviz/budgetflow/internal/view"
)

// Build converts a Selection into the node/edge lists. It assumes the
// selection is internally consistent (it only ever comes from the selector)
// and does not re-validate it; a negative residual caused by inconsistent
// upstream data is clamped to zero rather than propagated.
func Build(sel *selector.Selection) *Graph {
	b := &builder{sel: sel}
	if sel.Mode == view.ModeRecipient {
		b.buildReverse()
	} else {
		b.buildForward()
	}
	return b.finish()
}

type builder struct {
	sel   *selector.Selection
	nodes []Node
	edges []Edge
}

func (b *builder) addNode(n Node) {
	b.nodes = append(b.nodes, n)
}

// addEdge emits a flow edge; non-positive amounts are simply not emitted.
func (b *builder) addEdge(source, target string, value float64, details *EdgeDetails) {
	if value <= 0 {
		return
	}
	b.edges = append(b.edges, Edge{Source: source, Target: target, Value: value, Details: details})
}

// addStructuralEdge emits an edge that must exist to keep its endpoints
// connected even when the flow amount is zero; the zero case becomes a
// render-only edge carrying the dummy value on the wire.
func (b *builder) addStructuralEdge(source, target string, value float64) {
	if value <= 0 {
		b.edges = append(b.edges, Edge{Source: source, Target: target, RenderOnly: true})
		return
	}
	b.edges = append(b.edges, Edge{Source: source, Target: target, Value: value})
}

// clamp guards residual subtractions against inconsistent upstream data
// (recorded spending exceeding what the source node can emit). A soft
// recovery: the residual is floored at zero and construction proceeds.
func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// buildForward assembles the Global, Ministry and Project mode layouts:
// root → ministries → project budgets → project spendings → recipients.
func (b *builder) buildForward() {
	sel := b.sel
	projectMode := sel.Mode == view.ModeProject

	if sel.HasRoot {
		b.addNode(Node{
			ID:       rootNodeID,
			Name:     sel.RootName,
			Category: CategoryMinistryBudget,
			Value:    valueFor(sel.RootValue),
		})
	}

	if !projectMode {
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
				Value:         valueFor(lm.Budget),
				IsAggregate:   true,
				AggregateKind: AggregateLeftover,
				Details:       map[string]any{"count": lm.Count},
			})
		}
	}

	for i := range sel.Ministries {
		mp := &sel.Ministries[i]
		for _, pp := range mp.Projects {
			p := pp.Project
			b.addNode(Node{
				ID:         projectBudgetID(p.ProjectID),
				Name:       p.ProjectName,
				Category:   CategoryProjectBudget,
				Value:      valueFor(p.TotalBudget),
				OriginalID: p.ProjectID,
				Details:    projectBudgetDetails(p),
			})
		}
		if lp := mp.LeftoverProjects; lp != nil {
			b.addNode(Node{
				ID:            leftoverProjectsBudgetID(ministryKey(mp)),
				Name:          leftoverProjectsName(mp.Name),
				Category:      CategoryProjectBudget,
				Value:         valueFor(lp.Budget),
				IsAggregate:   true,
				AggregateKind: AggregateLeftover,
				Details:       map[string]any{"count": lp.Count},
			})
		}
	}

	for i := range sel.Ministries {
		mp := &sel.Ministries[i]
		for _, pp := range mp.Projects {
			p := pp.Project
			b.addNode(Node{
				ID:         projectSpendingID(p.ProjectID),
				Name:       p.ProjectName,
				Category:   CategoryProjectSpending,
				Value:      valueFor(p.TotalSpendingAmount),
				OriginalID: p.ProjectID,
				Details:    map[string]any{"totalSpendingAmount": p.TotalSpendingAmount},
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

	residuals := b.computeResiduals()

	b.emitRecipientNodes(residuals.leftoverTotal)

	// Edges, layer by layer.
	if sel.HasRoot && !projectMode {
		for i := range sel.Ministries {
			mp := &sel.Ministries[i]
			b.addStructuralEdge(rootNodeID, ministryNodeID(ministryKey(mp)), mp.Value)
		}
		if lm := sel.LeftoverMinistries; lm != nil {
			b.addStructuralEdge(rootNodeID, leftoverMinistriesID, lm.Budget)
		}
	}

	for i := range sel.Ministries {
		mp := &sel.Ministries[i]
		source := ministryNodeID(ministryKey(mp))
		if projectMode {
			source = rootNodeID
		}
		for _, pp := range mp.Projects {
			b.addStructuralEdge(source, projectBudgetID(pp.Project.ProjectID), pp.Project.TotalBudget)
		}
		if lp := mp.LeftoverProjects; lp != nil {
			b.addStructuralEdge(source, leftoverProjectsBudgetID(ministryKey(mp)), lp.Budget)
		}
	}

	// Budget-to-spending transitions carry what actually proceeded to be
	// spent, never exceeding either side.
	for i := range sel.Ministries {
		mp := &sel.Ministries[i]
		for _, pp := range mp.Projects {
			p := pp.Project
			b.addStructuralEdge(
				projectBudgetID(p.ProjectID),
				projectSpendingID(p.ProjectID),
				minAmount(p.TotalBudget, p.TotalSpendingAmount),
			)
		}
		if lp := mp.LeftoverProjects; lp != nil {
			b.addStructuralEdge(
				leftoverProjectsBudgetID(ministryKey(mp)),
				leftoverProjectsSpendingID(ministryKey(mp)),
				minAmount(lp.Budget, lp.Spending),
			)
		}
	}

	for i := range sel.Ministries {
		mp := &sel.Ministries[i]
		for _, pp := range mp.Projects {
			pid := pp.Project.ProjectID
			source := projectSpendingID(pid)
			for r := range sel.Recipients {
				rp := &sel.Recipients[r]
				if flow, ok := rp.Inflows.ByProject[pid]; ok {
					b.addEdge(source, recipientNodeID(rp.ID), flow.Amount, &EdgeDetails{
						ContractMethod: flow.ContractMethod,
						BlockName:      flow.BlockName,
					})
				}
			}
			if sel.ReservedOther != nil {
				if flow, ok := sel.ReservedOther.ByProject[pid]; ok {
					b.addEdge(source, reservedOtherID, flow.Amount, nil)
				}
			}
			b.addEdge(source, leftoverRecipientsID, residuals.byProject[pid], nil)
			if pp.NoDestination {
				b.addNode(Node{
					ID:            noDestinationID(pid),
					Name:          noDestinationName,
					Category:      CategoryRecipient,
					Value:         RenderOnly(),
					IsAggregate:   true,
					AggregateKind: AggregateNoDestination,
				})
				b.addStructuralEdge(source, noDestinationID(pid), 0)
			}
		}
		if mp.LeftoverProjects != nil {
			source := leftoverProjectsSpendingID(ministryKey(mp))
			for r := range sel.Recipients {
				rp := &sel.Recipients[r]
				b.addEdge(source, recipientNodeID(rp.ID), rp.Inflows.ByLeftoverProjects[ministryKey(mp)], nil)
			}
			if sel.ReservedOther != nil {
				b.addEdge(source, reservedOtherID, sel.ReservedOther.ByLeftoverProjects[ministryKey(mp)], nil)
			}
			b.addEdge(source, leftoverRecipientsID, residuals.byMinistryBucket[ministryKey(mp)], nil)
		}
	}

	if sel.LeftoverMinistries != nil {
		for r := range sel.Recipients {
			rp := &sel.Recipients[r]
			b.addEdge(leftoverMinistriesID, recipientNodeID(rp.ID), rp.Inflows.FromLeftoverMinistries, nil)
		}
		if sel.ReservedOther != nil {
			b.addEdge(leftoverMinistriesID, reservedOtherID, sel.ReservedOther.FromLeftoverMinistries, nil)
		}
		b.addEdge(leftoverMinistriesID, leftoverRecipientsID, residuals.fromLeftoverMinistries, nil)
	}
}

// residualSet is what remains unattributed at each spending source after the
// kept recipients and the reserved-"その他" bucket took their explicit shares;
// it feeds the generic leftover-recipients node.
type residualSet struct {
	byProject              map[int]float64
	byMinistryBucket       map[string]float64
	fromLeftoverMinistries float64
	leftoverTotal          float64
}

func (b *builder) computeResiduals() residualSet {
	sel := b.sel
	res := residualSet{
		byProject:        make(map[int]float64),
		byMinistryBucket: make(map[string]float64),
	}

	attributedByProject := make(map[int]float64)
	attributedByBucket := make(map[string]float64)
	var attributedFromMinistries float64

	accumulate := func(in *selector.Inflows) {
		for pid, flow := range in.ByProject {
			attributedByProject[pid] += flow.Amount
		}
		for key, amount := range in.ByLeftoverProjects {
			attributedByBucket[key] += amount
		}
		attributedFromMinistries += in.FromLeftoverMinistries
	}
	for i := range sel.Recipients {
		accumulate(&sel.Recipients[i].Inflows)
	}
	if sel.ReservedOther != nil {
		accumulate(sel.ReservedOther)
	}

	for i := range sel.Ministries {
		mp := &sel.Ministries[i]
		for _, pp := range mp.Projects {
			pid := pp.Project.ProjectID
			r := clamp(pp.Project.TotalSpendingAmount - attributedByProject[pid])
			res.byProject[pid] = r
			res.leftoverTotal += r
		}
		if lp := mp.LeftoverProjects; lp != nil {
			r := clamp(lp.Spending - attributedByBucket[ministryKey(mp)])
			res.byMinistryBucket[ministryKey(mp)] = r
			res.leftoverTotal += r
		}
	}
	if lm := sel.LeftoverMinistries; lm != nil {
		res.fromLeftoverMinistries = clamp(lm.Spending - attributedFromMinistries)
		res.leftoverTotal += res.fromLeftoverMinistries
	}

	return res
}

// emitRecipientNodes appends the recipient layer: kept recipients, the
// reserved-"その他" node, then the generic leftover node when anything
// remained unattributed.
func (b *builder) emitRecipientNodes(leftoverTotal float64) {
	sel := b.sel
	for i := range sel.Recipients {
		rp := &sel.Recipients[i]
		n := Node{
			ID:       recipientNodeID(rp.ID),
			Name:     rp.Name,
			Category: CategoryRecipient,
			Value:    valueFor(rp.Inflows.Total),
		}
		if rp.Recipient != nil {
			n.OriginalID = rp.Recipient.SpendingID
			n.Details = map[string]any{
				"corporateNumber": rp.Recipient.CorporateNumber,
				"location":        rp.Recipient.Location,
				"projectCount":    rp.Recipient.ProjectCount,
			}
		}
		b.addNode(n)
	}
	if sel.ReservedOther != nil {
		b.addNode(Node{
			ID:            reservedOtherID,
			Name:          record.ReservedOtherName,
			Category:      CategoryRecipient,
			Value:         valueFor(sel.ReservedOther.Total),
			IsAggregate:   true,
			AggregateKind: AggregateReservedOther,
		})
	}
	if leftoverTotal > 0 {
		b.addNode(Node{
			ID:            leftoverRecipientsID,
			Name:          leftoverRecipientsName,
			Category:      CategoryRecipient,
			Value:         Real(leftoverTotal),
			IsAggregate:   true,
			AggregateKind: AggregateLeftover,
		})
	}
}

func ministryKey(mp *selector.MinistryPick) string {
	return record.CanonicalName(mp.Name)
}

func projectBudgetDetails(p *record.Project) map[string]any {
	return map[string]any{
		"ministry":        p.Ministry,
		"bureau":          p.Bureau,
		"totalBudget":     p.TotalBudget,
		"executionRate":   p.ExecutionRate,
		"accountCategory": p.AccountCategory,
	}
}

func minAmount(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
