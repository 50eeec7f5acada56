package selector

import (
	"sort"

	"github.com/rsviz/budgetflow/internal/record"
)

// rankMinistries returns all ministries sorted by total budget descending,
// ties broken by ascending id. The input slice is not modified.
func rankMinistries(ministries []record.Ministry) []*record.Ministry {
	ranked := make([]*record.Ministry, len(ministries))
	for i := range ministries {
		ranked[i] = &ministries[i]
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].TotalBudget != ranked[j].TotalBudget {
			return ranked[i].TotalBudget > ranked[j].TotalBudget
		}
		return ranked[i].ID < ranked[j].ID
	})
	return ranked
}

// rankProjects sorts projects by total budget descending, ties broken by
// ascending project id.
func rankProjects(projects []*record.Project) []*record.Project {
	ranked := make([]*record.Project, len(projects))
	copy(ranked, projects)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].TotalBudget != ranked[j].TotalBudget {
			return ranked[i].TotalBudget > ranked[j].TotalBudget
		}
		return ranked[i].ProjectID < ranked[j].ProjectID
	})
	return ranked
}

// rankedAmount is a generic (id, amount) ranking entry for recipient and
// contribution rankings.
type rankedAmount struct {
	id     int
	amount float64
}

// rankAmounts sorts by amount descending, ties broken by ascending id.
func rankAmounts(entries []rankedAmount) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].amount != entries[j].amount {
			return entries[i].amount > entries[j].amount
		}
		return entries[i].id < entries[j].id
	})
}

// pageSlice keeps ranks level*size+1 .. (level+1)*size (1-based) of a ranked
// slice and returns the page plus everything outside it.
func pageSlice[T any](ranked []T, level, size int) (page, rest []T) {
	if size <= 0 {
		return nil, ranked
	}
	start := level * size
	if start >= len(ranked) {
		return nil, ranked
	}
	end := start + size
	if end > len(ranked) {
		end = len(ranked)
	}
	page = ranked[start:end]
	rest = make([]T, 0, len(ranked)-len(page))
	rest = append(rest, ranked[:start]...)
	rest = append(rest, ranked[end:]...)
	return page, rest
}
