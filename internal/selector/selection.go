package selector

import (
	"github.com/rsviz/budgetflow/internal/record"
	"github.com/rsviz/budgetflow/internal/view"
)

// SourceKind identifies which spending-side node an attributed amount flows
// out of.
type SourceKind int

const (
	// SourceProject: a kept project's spending node.
	SourceProject SourceKind = iota
	// SourceLeftoverProjects: the per-ministry bucket of excluded projects.
	SourceLeftoverProjects
	// SourceLeftoverMinistries: the bucket of excluded ministries.
	SourceLeftoverMinistries
)

// ProjectFlow is the amount a single kept project contributes to one
// recipient, with the contract metadata of the underlying payment record.
// When several payment records collapse onto the same (project, recipient)
// pair the amounts sum and the metadata of the first record is kept.
type ProjectFlow struct {
	Amount         float64
	ContractMethod string
	BlockName      string
}

// Inflows is the full attribution of a recipient-side node: how much reaches
// it from each kept project, from each kept ministry's leftover-projects
// bucket, and from the leftover-ministries bucket.
type Inflows struct {
	ByProject              map[int]ProjectFlow
	ByLeftoverProjects     map[string]float64 // canonical ministry name
	FromLeftoverMinistries float64
	Total                  float64
}

func newInflows() Inflows {
	return Inflows{
		ByProject:          make(map[int]ProjectFlow),
		ByLeftoverProjects: make(map[string]float64),
	}
}

func (in *Inflows) addProject(projectID int, c record.Contribution) {
	flow, seen := in.ByProject[projectID]
	if !seen {
		flow = ProjectFlow{ContractMethod: c.ContractMethod, BlockName: c.BlockName}
	}
	flow.Amount += c.Amount
	in.ByProject[projectID] = flow
	in.Total += c.Amount
}

func (in *Inflows) addLeftoverProjects(ministry string, amount float64) {
	in.ByLeftoverProjects[ministry] += amount
	in.Total += amount
}

func (in *Inflows) addLeftoverMinistries(amount float64) {
	in.FromLeftoverMinistries += amount
	in.Total += amount
}

// ProjectPick is one kept project. Value is the amount the project node
// carries in the graph: its total budget in the forward modes, its
// contribution to the focused recipient in reverse mode.
type ProjectPick struct {
	Project *record.Project
	Value   float64

	// NoDestination is set when the project has no payment records at all;
	// the builder routes it to a synthetic "no spending destination" node.
	NoDestination bool
}

// ProjectLeftover sums everything excluded from a ministry's kept projects.
// Budget is the budget-side residue, Spending the spending-side one; in
// reverse mode both carry the same contribution residue.
type ProjectLeftover struct {
	Count    int
	Budget   float64
	Spending float64
}

// MinistryPick is one kept ministry with its kept projects and per-ministry
// leftover bucket. Value is the ministry node's amount: total budget in the
// forward modes, contribution to the focused recipient in reverse mode.
type MinistryPick struct {
	Ministry         *record.Ministry
	Name             string // display name; Ministry may be nil in reverse mode
	Value            float64
	Projects         []ProjectPick
	LeftoverProjects *ProjectLeftover // nil when nothing was excluded
}

// MinistryLeftover sums everything belonging to ministries outside the kept
// set.
type MinistryLeftover struct {
	Count    int
	Budget   float64
	Spending float64
}

// RecipientPick is one kept recipient with its attributed inflows.
type RecipientPick struct {
	Recipient *record.Recipient // nil when reverse mode aggregated several records
	Name      string
	ID        int // representative spending id
	Inflows   Inflows
}

// Selection is the Selector's complete output: everything the graph builder
// needs, with no further dataset access.
type Selection struct {
	Mode view.Mode
	Spec view.Spec // normalized

	// Root node, present in Global and Project modes only.
	HasRoot   bool
	RootName  string
	RootValue float64

	Ministries         []MinistryPick
	LeftoverMinistries *MinistryLeftover // nil when empty

	Recipients    []RecipientPick
	ReservedOther *Inflows // contributions to the reserved "その他" payee; nil when zero

	// Summary inputs.
	TotalMinistries       int
	TotalProjects         int
	TotalSpendings        int
	SelectedMinistries    int
	SelectedProjects      int
	SelectedSpendings     int
	TotalBudget           float64
	SelectedBudget        float64
	MinistryTotalProjects int // ministry mode only; 0 elsewhere
}
