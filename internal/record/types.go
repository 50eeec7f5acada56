package record

// ReservedOtherName is the literal payee name the source data uses for an
// unspecified/miscellaneous recipient. Records with this name are first-class
// data but are never ranked into a top-K list; they always roll up into a
// dedicated aggregate node, separate from the engine's own leftover buckets.
const ReservedOtherName = "その他"

// Ministry is a top-level organizational budget holder.
// TotalBudget is pre-aggregated at ingestion time as the sum of all project
// budgets anywhere in the ministry's subtree.
type Ministry struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	TotalBudget float64 `json:"totalBudget"`
	BureauCount int     `json:"bureauCount"`
	ProjectIDs  []int   `json:"projectIds"`
}

// Project is a funded initiative under one ministry.
//
// TotalSpendingAmount is the sum of per-recipient contribution amounts
// recorded for the project. It may be less than, equal to, or (with
// inconsistent source data) greater than TotalBudget.
type Project struct {
	ProjectID           int     `json:"projectId"`
	ProjectName         string  `json:"projectName"`
	Ministry            string  `json:"ministry"`
	Bureau              string  `json:"bureau"`
	FiscalYear          int     `json:"fiscalYear"`
	InitialBudget       float64 `json:"initialBudget"`
	SupplementaryBudget float64 `json:"supplementaryBudget"`
	CarryoverBudget     float64 `json:"carryoverBudget"`
	ReserveFund         float64 `json:"reserveFund"`
	TotalBudget         float64 `json:"totalBudget"`
	ExecutedAmount      float64 `json:"executedAmount"`
	ExecutionRate       float64 `json:"executionRate"`
	CarryoverToNext     float64 `json:"carryoverToNext"`
	AccountCategory     string  `json:"accountCategory"`
	SpendingIDs         []int   `json:"spendingIds"`
	TotalSpendingAmount float64 `json:"totalSpendingAmount"`
}

// Contribution is one (project, amount) payment record on a recipient.
type Contribution struct {
	ProjectID      int     `json:"projectId"`
	Amount         float64 `json:"amount"`
	BlockName      string  `json:"blockName"`
	ContractMethod string  `json:"contractMethod"`
}

// Recipient is a payee. TotalSpendingAmount equals the sum of the per-project
// contribution amounts.
type Recipient struct {
	SpendingID          int            `json:"spendingId"`
	SpendingName        string         `json:"spendingName"`
	CorporateNumber     string         `json:"corporateNumber"`
	Location            string         `json:"location"`
	TotalSpendingAmount float64        `json:"totalSpendingAmount"`
	ProjectCount        int            `json:"projectCount"`
	Projects            []Contribution `json:"projects"`
}

// IsReservedOther reports whether the recipient carries the reserved
// "unspecified payee" name.
func (r *Recipient) IsReservedOther() bool {
	return CanonicalName(r.SpendingName) == ReservedOtherName
}

// MinistryStats is the per-ministry aggregate the ingestion batch precomputes
// so that ministry-level leftover spending does not require re-summing every
// excluded project.
type MinistryStats struct {
	Ministry      string  `json:"ministry"`
	TotalSpending float64 `json:"totalSpending"`
}
