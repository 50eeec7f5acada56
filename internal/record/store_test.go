package record_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsviz/budgetflow/internal/record"
	"github.com/rsviz/budgetflow/internal/testutil"
)

func TestOpenMissingFile(t *testing.T) {
	_, err := record.Open(filepath.Join(t.TempDir(), "missing.db"))
	require.Error(t, err)
	assert.True(t, record.IsUnavailable(err), "expected an unavailable error, got %v", err)
}

func TestLoadRoundTrip(t *testing.T) {
	want := testutil.SampleDataset()
	path := testutil.WriteStore(t, want)

	store, err := record.Open(path)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, want.FiscalYear(), got.FiscalYear())
	assert.Equal(t, want.TotalBudget(), got.TotalBudget())
	assert.Len(t, got.Ministries(), len(want.Ministries()))
	assert.Len(t, got.Projects(), len(want.Projects()))
	assert.Len(t, got.Recipients(), len(want.Recipients()))

	m, ok := got.MinistryByName("デジタル庁")
	require.True(t, ok)
	assert.Equal(t, 1000.0, m.TotalBudget)
	assert.Equal(t, []int{101, 102, 103}, m.ProjectIDs)

	p, ok := got.ProjectByID(201)
	require.True(t, ok)
	assert.Equal(t, "脱炭素推進事業", p.ProjectName)
	assert.Equal(t, 450.0, p.TotalSpendingAmount)

	pays := got.PaymentsOfProject(101)
	require.Len(t, pays, 2)
	assert.Equal(t, "富士通株式会社", pays[0].Recipient.SpendingName)
	assert.Equal(t, 300.0, pays[0].Contribution.Amount)

	st, ok := got.StatsOfMinistry("環境省")
	require.True(t, ok)
	assert.Equal(t, 700.0, st.TotalSpending)
}

func TestOpenedStoreIsReadOnly(t *testing.T) {
	path := testutil.WriteStore(t, testutil.SampleDataset())

	store, err := record.Open(path)
	require.NoError(t, err)
	defer store.Close()

	_, err = store.DB().Exec(`INSERT INTO meta (key, value) VALUES ('x', 'y')`)
	assert.Error(t, err)
}

func TestLookupsUseCanonicalNames(t *testing.T) {
	ds := testutil.SampleDataset()

	// Half-width katakana request form resolves the full-width stored name.
	m, ok := ds.MinistryByName("ﾃﾞｼﾞﾀﾙ庁")
	require.True(t, ok)
	assert.Equal(t, "デジタル庁", m.Name)

	recs := ds.RecipientsByName("株式会社ＮＴＴデータ")
	require.Len(t, recs, 1)
	assert.Equal(t, 1002, recs[0].SpendingID)
}
