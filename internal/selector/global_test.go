package selector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsviz/budgetflow/internal/selector"
	"github.com/rsviz/budgetflow/internal/testutil"
	"github.com/rsviz/budgetflow/internal/view"
)

func normalize(t *testing.T, spec view.Spec) (view.Spec, view.Mode) {
	t.Helper()
	n, mode, err := spec.Normalize()
	require.NoError(t, err)
	return n, mode
}

func TestGlobalDefaultSelection(t *testing.T) {
	ds := testutil.SampleDataset()
	spec, mode := normalize(t, view.Spec{})

	sel, err := selector.Select(ds, spec, mode)
	require.NoError(t, err)

	assert.True(t, sel.HasRoot)
	assert.Equal(t, selector.RootTotalName, sel.RootName)
	assert.Equal(t, 2410.0, sel.RootValue)

	// Top three ministries by budget, descending.
	require.Len(t, sel.Ministries, 3)
	assert.Equal(t, "デジタル庁", sel.Ministries[0].Name)
	assert.Equal(t, "環境省", sel.Ministries[1].Name)
	assert.Equal(t, "国土交通省", sel.Ministries[2].Name)

	// Every ministry holds at most three projects, so no per-ministry leftovers.
	for _, mp := range sel.Ministries {
		assert.Nil(t, mp.LeftoverProjects, "ministry %s", mp.Name)
	}

	// 復興庁 is the only excluded ministry: all budget, no spending.
	require.NotNil(t, sel.LeftoverMinistries)
	assert.Equal(t, 1, sel.LeftoverMinistries.Count)
	assert.Equal(t, 10.0, sel.LeftoverMinistries.Budget)
	assert.Equal(t, 0.0, sel.LeftoverMinistries.Spending)

	// Recipients ranked by what they receive from kept projects.
	require.Len(t, sel.Recipients, 4)
	assert.Equal(t, "日本建設コンソーシアム", sel.Recipients[0].Name)
	assert.Equal(t, 550.0, sel.Recipients[0].Inflows.Total)
	assert.Equal(t, "一般財団法人日本環境協会", sel.Recipients[1].Name)
	assert.Equal(t, "富士通株式会社", sel.Recipients[2].Name)
	assert.Equal(t, 400.0, sel.Recipients[2].Inflows.Total)
	assert.Equal(t, "株式会社NTTデータ", sel.Recipients[3].Name)

	// The reserved payee's contributions never enter the ranking but are
	// fully attributed to their source projects.
	require.NotNil(t, sel.ReservedOther)
	assert.Equal(t, 250.0, sel.ReservedOther.Total)
	assert.Equal(t, 150.0, sel.ReservedOther.ByProject[102].Amount)
	assert.Equal(t, 100.0, sel.ReservedOther.ByProject[201].Amount)

	assert.Equal(t, 4, sel.TotalMinistries)
	assert.Equal(t, 9, sel.TotalProjects)
	assert.Equal(t, 5, sel.TotalSpendings)
	assert.Equal(t, 3, sel.SelectedMinistries)
	assert.Equal(t, 8, sel.SelectedProjects)
	assert.Equal(t, 4, sel.SelectedSpendings)
	assert.Equal(t, 2410.0, sel.TotalBudget)
	assert.Equal(t, 2400.0, sel.SelectedBudget)
}

func TestGlobalNarrowLimits(t *testing.T) {
	ds := testutil.SampleDataset()
	spec, mode := normalize(t, view.Spec{MinistryLimit: 1, ProjectLimit: 1, SpendingLimit: 1})

	sel, err := selector.Select(ds, spec, mode)
	require.NoError(t, err)

	require.Len(t, sel.Ministries, 1)
	mp := sel.Ministries[0]
	assert.Equal(t, "デジタル庁", mp.Name)
	require.Len(t, mp.Projects, 1)
	assert.Equal(t, 101, mp.Projects[0].Project.ProjectID)

	// Two excluded projects: budget residue 400, their recorded spending 300.
	require.NotNil(t, mp.LeftoverProjects)
	assert.Equal(t, 2, mp.LeftoverProjects.Count)
	assert.Equal(t, 400.0, mp.LeftoverProjects.Budget)
	assert.Equal(t, 300.0, mp.LeftoverProjects.Spending)

	require.NotNil(t, sel.LeftoverMinistries)
	assert.Equal(t, 3, sel.LeftoverMinistries.Count)
	assert.Equal(t, 1410.0, sel.LeftoverMinistries.Budget)
	assert.Equal(t, 1250.0, sel.LeftoverMinistries.Spending)

	// 富士通 tops the ranking over project 101 and keeps all its inflows,
	// including the out-of-selection one routed through the ministries bucket.
	require.Len(t, sel.Recipients, 1)
	rp := sel.Recipients[0]
	assert.Equal(t, "富士通株式会社", rp.Name)
	assert.Equal(t, 300.0, rp.Inflows.ByProject[101].Amount)
	assert.Equal(t, 100.0, rp.Inflows.FromLeftoverMinistries)
	assert.Equal(t, 400.0, rp.Inflows.Total)

	require.NotNil(t, sel.ReservedOther)
	assert.Equal(t, 150.0, sel.ReservedOther.ByLeftoverProjects["デジタル庁"])
	assert.Equal(t, 100.0, sel.ReservedOther.FromLeftoverMinistries)
	assert.Equal(t, 250.0, sel.ReservedOther.Total)
}

func TestGlobalDrilldownSecondPage(t *testing.T) {
	ds := testutil.SampleDataset()
	spec, mode := normalize(t, view.Spec{DrilldownLevel: 1})

	sel, err := selector.Select(ds, spec, mode)
	require.NoError(t, err)

	// Page two of a four-ministry ranking at size three: 復興庁 alone, the
	// top three fold into the leftover bucket.
	require.Len(t, sel.Ministries, 1)
	assert.Equal(t, "復興庁", sel.Ministries[0].Name)
	require.NotNil(t, sel.LeftoverMinistries)
	assert.Equal(t, 3, sel.LeftoverMinistries.Count)
	assert.Equal(t, 2400.0, sel.LeftoverMinistries.Budget)
	assert.Equal(t, 2050.0, sel.LeftoverMinistries.Spending)

	// 復興庁's only project pays nobody.
	require.Len(t, sel.Ministries[0].Projects, 1)
	assert.True(t, sel.Ministries[0].Projects[0].NoDestination)
	assert.Empty(t, sel.Recipients)

	// Reserved contributions to out-of-page projects stay attributed via the
	// leftover-ministries bucket instead of disappearing.
	require.NotNil(t, sel.ReservedOther)
	assert.Equal(t, 250.0, sel.ReservedOther.FromLeftoverMinistries)
}

func TestGlobalDrilldownPastEnd(t *testing.T) {
	ds := testutil.SampleDataset()
	spec, mode := normalize(t, view.Spec{DrilldownLevel: 9})

	sel, err := selector.Select(ds, spec, mode)
	require.NoError(t, err)
	assert.Empty(t, sel.Ministries)
	require.NotNil(t, sel.LeftoverMinistries)
	assert.Equal(t, 4, sel.LeftoverMinistries.Count)
	assert.Equal(t, 2410.0, sel.LeftoverMinistries.Budget)
}
