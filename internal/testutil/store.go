package testutil

import (
	"encoding/json"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rsviz/budgetflow/internal/record"
)

// WriteStore materializes the dataset as a SQLite file under t.TempDir and
// returns its path, for tests that go through the real store loading path.
func WriteStore(t *testing.T, ds *record.Dataset) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "records.db")
	store, err := record.Create(path)
	require.NoError(t, err)
	defer store.Close()

	db := store.DB()
	_, err = db.Exec(`INSERT INTO meta (key, value) VALUES ('fiscal_year', ?)`,
		strconv.Itoa(ds.FiscalYear()))
	require.NoError(t, err)

	for _, m := range ds.Ministries() {
		_, err = db.Exec(
			`INSERT INTO ministries (id, name, total_budget, bureau_count, project_ids)
			 VALUES (?, ?, ?, ?, ?)`,
			m.ID, m.Name, m.TotalBudget, m.BureauCount, mustJSON(t, m.ProjectIDs),
		)
		require.NoError(t, err)
		if st, ok := ds.StatsOfMinistry(m.Name); ok {
			_, err = db.Exec(
				`INSERT INTO ministry_stats (ministry, total_spending) VALUES (?, ?)`,
				st.Ministry, st.TotalSpending,
			)
			require.NoError(t, err)
		}
	}

	for _, p := range ds.Projects() {
		_, err = db.Exec(
			`INSERT INTO projects (
				project_id, project_name, ministry, bureau, fiscal_year,
				initial_budget, supplementary_budget, carryover_budget, reserve_fund,
				total_budget, executed_amount, execution_rate, carryover_to_next,
				account_category, spending_ids, total_spending_amount
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ProjectID, p.ProjectName, p.Ministry, p.Bureau, p.FiscalYear,
			p.InitialBudget, p.SupplementaryBudget, p.CarryoverBudget, p.ReserveFund,
			p.TotalBudget, p.ExecutedAmount, p.ExecutionRate, p.CarryoverToNext,
			p.AccountCategory, mustJSON(t, p.SpendingIDs), p.TotalSpendingAmount,
		)
		require.NoError(t, err)
	}

	for _, r := range ds.Recipients() {
		_, err = db.Exec(
			`INSERT INTO recipients (
				spending_id, spending_name, corporate_number, location,
				total_spending_amount, project_count, projects
			) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.SpendingID, r.SpendingName, r.CorporateNumber, r.Location,
			r.TotalSpendingAmount, r.ProjectCount, mustJSON(t, r.Projects),
		)
		require.NoError(t, err)
	}

	return path
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	// A nil slice marshals to null; the store expects a list.
	if string(raw) == "null" {
		return "[]"
	}
	return string(raw)
}
