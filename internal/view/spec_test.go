package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModeFromTargets(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		want Mode
	}{
		{"no target is global", Spec{}, ModeGlobal},
		{"ministry target", Spec{TargetMinistry: "環境省"}, ModeMinistry},
		{"project target", Spec{TargetProject: "道路維持管理"}, ModeProject},
		{"recipient target", Spec{TargetRecipient: "富士通株式会社"}, ModeRecipient},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, err := tt.spec.Mode()
			require.NoError(t, err)
			assert.Equal(t, tt.want, mode)
		})
	}
}

func TestModeRejectsMultipleTargets(t *testing.T) {
	_, err := Spec{TargetMinistry: "環境省", TargetProject: "道路維持管理"}.Mode()
	assert.ErrorIs(t, err, ErrAmbiguousTarget)

	_, err = Spec{TargetMinistry: "環境省", TargetProject: "x", TargetRecipient: "y"}.Mode()
	assert.ErrorIs(t, err, ErrAmbiguousTarget)
}

func TestNormalizeDefaults(t *testing.T) {
	tests := []struct {
		name              string
		spec              Spec
		wantMode          Mode
		wantMinistryLimit int
		wantProjectLimit  int
	}{
		{"global", Spec{}, ModeGlobal, DefaultGlobalMinistryLimit, DefaultGlobalProjectLimit},
		{"ministry", Spec{TargetMinistry: "環境省"}, ModeMinistry, DefaultGlobalMinistryLimit, DefaultFocusedProjectLimit},
		{"project", Spec{TargetProject: "x"}, ModeProject, DefaultGlobalMinistryLimit, DefaultFocusedProjectLimit},
		{"recipient", Spec{TargetRecipient: "y"}, ModeRecipient, DefaultRecipientMinistryKeep, DefaultFocusedProjectLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, mode, err := tt.spec.Normalize()
			require.NoError(t, err)
			assert.Equal(t, tt.wantMode, mode)
			assert.Equal(t, tt.wantMinistryLimit, n.MinistryLimit)
			assert.Equal(t, tt.wantProjectLimit, n.ProjectLimit)
			assert.Equal(t, DefaultSpendingLimit, n.SpendingLimit)
		})
	}
}

func TestNormalizeKeepsExplicitLimits(t *testing.T) {
	n, _, err := Spec{MinistryLimit: 7, ProjectLimit: 2, SpendingLimit: 5}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, 7, n.MinistryLimit)
	assert.Equal(t, 2, n.ProjectLimit)
	assert.Equal(t, 5, n.SpendingLimit)
}

func TestNormalizeClampsNegativeLevels(t *testing.T) {
	n, _, err := Spec{DrilldownLevel: -2, ProjectDrilldownLevel: -1}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, 0, n.DrilldownLevel)
	assert.Equal(t, 0, n.ProjectDrilldownLevel)
}

func TestNormalizeCanonicalizesTargets(t *testing.T) {
	n, _, err := Spec{TargetMinistry: " ﾃﾞｼﾞﾀﾙ庁 "}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, "デジタル庁", n.TargetMinistry)
}

func TestKeyDistinguishesSpecs(t *testing.T) {
	a, _, err := Spec{}.Normalize()
	require.NoError(t, err)
	b, _, err := Spec{DrilldownLevel: 1}.Normalize()
	require.NoError(t, err)
	assert.NotEqual(t, a.Key(), b.Key())

	// Equivalent request forms collapse onto one key.
	c, _, err := Spec{TargetMinistry: "デジタル庁"}.Normalize()
	require.NoError(t, err)
	d, _, err := Spec{TargetMinistry: "ﾃﾞｼﾞﾀﾙ庁"}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, c.Key(), d.Key())
}
