package selector

import (
	"sort"

	"github.com/rsviz/budgetflow/internal/record"
	"github.com/rsviz/budgetflow/internal/view"
)

// recipientStrategy traverses the flow in reverse: the named recipient is the
// universe, contributing projects are ranked by contribution amount and
// paged, and ministries are selected in a separate first stage by their
// aggregate contribution. A paged project survives only when its ministry is
// in the kept set; everything else flows through one of two structurally
// distinct leftovers (per-kept-ministry project residue vs. the non-kept
// ministries bucket).
//
// Requesting the reserved "その他" name aggregates every record carrying it.
type recipientStrategy struct{}

func (recipientStrategy) Select(ds *record.Dataset, spec view.Spec) (*Selection, error) {
	recs := ds.RecipientsByName(spec.TargetRecipient)
	if len(recs) == 0 {
		return nil, &NotFoundError{Kind: "recipient", Name: spec.TargetRecipient}
	}
	displayName := recs[0].SpendingName

	// Aggregate contributions per paying project across every matched record.
	perProject := make(map[int]float64)
	meta := make(map[int]record.Contribution)
	var total float64
	for _, r := range recs {
		for _, c := range r.Projects {
			if _, seen := meta[c.ProjectID]; !seen {
				meta[c.ProjectID] = c
			}
			perProject[c.ProjectID] += c.Amount
			total += c.Amount
		}
	}

	entries := make([]rankedAmount, 0, len(perProject))
	for id, amount := range perProject {
		entries = append(entries, rankedAmount{id: id, amount: amount})
	}
	rankAmounts(entries)

	page, _ := pageSlice(entries, spec.ProjectDrilldownLevel, spec.ProjectLimit)

	// Stage one: rank the contributing ministries by aggregate contribution.
	type ministryRank struct {
		key      string
		name     string
		id       int
		amount   float64
		projects int
	}
	perMinistry := make(map[string]*ministryRank)
	ministryOf := make(map[int]string, len(entries))
	for _, e := range entries {
		key, name, id := "", "(不明)", int(^uint(0)>>1)
		if p, ok := ds.ProjectByID(e.id); ok {
			key = record.CanonicalName(p.Ministry)
			name = p.Ministry
			if m, ok := ds.MinistryByName(p.Ministry); ok {
				id = m.ID
			}
		}
		ministryOf[e.id] = key
		mr, ok := perMinistry[key]
		if !ok {
			mr = &ministryRank{key: key, name: name, id: id}
			perMinistry[key] = mr
		}
		mr.amount += e.amount
		mr.projects++
	}

	ranks := make([]*ministryRank, 0, len(perMinistry))
	for _, mr := range perMinistry {
		ranks = append(ranks, mr)
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].amount != ranks[j].amount {
			return ranks[i].amount > ranks[j].amount
		}
		if ranks[i].id != ranks[j].id {
			return ranks[i].id < ranks[j].id
		}
		return ranks[i].key < ranks[j].key
	})

	keptRanks := ranks
	if spec.MinistryLimit < len(keptRanks) {
		keptRanks = keptRanks[:spec.MinistryLimit]
	}
	keptSet := make(map[string]bool, len(keptRanks))
	for _, mr := range keptRanks {
		keptSet[mr.key] = true
	}

	// Stage two: of the paged projects, keep those whose ministry survived.
	keptByMinistry := make(map[string][]rankedAmount)
	var selectedBudget float64
	var selectedProjects int
	for _, e := range page {
		key := ministryOf[e.id]
		if !keptSet[key] {
			continue
		}
		keptByMinistry[key] = append(keptByMinistry[key], e)
		selectedBudget += e.amount
		selectedProjects++
	}

	inflows := newInflows()
	picks := make([]MinistryPick, 0, len(keptRanks))
	for _, mr := range keptRanks {
		kept := keptByMinistry[mr.key]
		projPicks := make([]ProjectPick, 0, len(kept))
		var keptAmount float64
		for _, e := range kept {
			p, _ := ds.ProjectByID(e.id)
			projPicks = append(projPicks, ProjectPick{Project: p, Value: e.amount})
			keptAmount += e.amount
			c := meta[e.id]
			inflows.addProject(e.id, record.Contribution{
				ProjectID:      e.id,
				Amount:         e.amount,
				ContractMethod: c.ContractMethod,
				BlockName:      c.BlockName,
			})
		}

		var leftover *ProjectLeftover
		if residue := mr.amount - keptAmount; residue > 0 {
			leftover = &ProjectLeftover{
				Count:    mr.projects - len(kept),
				Budget:   residue,
				Spending: residue,
			}
			inflows.addLeftoverProjects(mr.key, residue)
		}

		var ministry *record.Ministry
		if m, ok := ds.MinistryByName(mr.name); ok {
			ministry = m
		}
		picks = append(picks, MinistryPick{
			Ministry:         ministry,
			Name:             mr.name,
			Value:            mr.amount,
			Projects:         projPicks,
			LeftoverProjects: leftover,
		})
	}

	var minLeftover *MinistryLeftover
	if len(ranks) > len(keptRanks) {
		var amount float64
		for _, mr := range ranks[len(keptRanks):] {
			amount += mr.amount
		}
		if amount > 0 {
			minLeftover = &MinistryLeftover{
				Count:    len(ranks) - len(keptRanks),
				Budget:   amount,
				Spending: amount,
			}
			inflows.addLeftoverMinistries(amount)
		}
	}

	var rec *record.Recipient
	if len(recs) == 1 {
		rec = recs[0]
	}

	return &Selection{
		Mode:               view.ModeRecipient,
		Spec:               spec,
		Ministries:         picks,
		LeftoverMinistries: minLeftover,
		Recipients: []RecipientPick{{
			Recipient: rec,
			Name:      displayName,
			ID:        recs[0].SpendingID,
			Inflows:   inflows,
		}},
		TotalMinistries:    len(ranks),
		TotalProjects:      len(entries),
		TotalSpendings:     len(recs),
		SelectedMinistries: len(keptRanks),
		SelectedProjects:   selectedProjects,
		SelectedSpendings:  1,
		TotalBudget:        total,
		SelectedBudget:     selectedBudget,
	}, nil
}
