package v1alpha1_test

import (
	"testing"

	v1alpha1 "github.com/devantler-tech/vmprep/pkg/apis/host/v1alpha1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFamilyNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"debian", "rhel", "fedora", "alpine"}, v1alpha1.FamilyNames())
}

func TestFamily_InitSystem(t *testing.T) {
	t.Parallel()

	tests := []struct {
		family v1alpha1.Family
		want   v1alpha1.InitSystem
	}{
		{family: v1alpha1.FamilyDebian, want: v1alpha1.InitSystemSystemd},
		{family: v1alpha1.FamilyRHEL, want: v1alpha1.InitSystemSystemd},
		{family: v1alpha1.FamilyFedora, want: v1alpha1.InitSystemSystemd},
		{family: v1alpha1.FamilyAlpine, want: v1alpha1.InitSystemOpenRC},
	}

	for _, testCase := range tests {
		t.Run(string(testCase.family), func(t *testing.T) {
			t.Parallel()

			family := testCase.family
			assert.Equal(t, testCase.want, family.InitSystem())
		})
	}
}

func TestLogLevel_Set(t *testing.T) {
	t.Parallel()

	var level v1alpha1.LogLevel

	require.NoError(t, level.Set("DEBUG"))
	assert.Equal(t, v1alpha1.LogLevelDebug, level)
	assert.Equal(t, "LogLevel", level.Type())

	err := level.Set("loud")
	require.ErrorIs(t, err, v1alpha1.ErrInvalidLogLevel)
	assert.Contains(t, err.Error(), "error, warn, info, debug, trace")
	assert.Equal(t, v1alpha1.LogLevelDebug, level)
}

func TestDistroProfile_Codename(t *testing.T) {
	t.Parallel()

	mint := v1alpha1.DistroProfile{VersionCodename: "wilma", UbuntuCodename: "noble"}
	debian := v1alpha1.DistroProfile{VersionCodename: "bookworm"}

	assert.Equal(t, "noble", mint.Codename())
	assert.Equal(t, "bookworm", debian.Codename())
}

func TestDistroProfile_DisplayName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Alpine Linux", v1alpha1.DistroProfile{ID: "alpine", Name: "Alpine Linux"}.DisplayName())
	assert.Equal(t, "alpine", v1alpha1.DistroProfile{ID: "alpine"}.DisplayName())
}

func TestLogLevel_Verbose(t *testing.T) {
	t.Parallel()

	for _, level := range v1alpha1.ValidLogLevels() {
		want := level == v1alpha1.LogLevelDebug || level == v1alpha1.LogLevelTrace
		assert.Equal(t, want, level.Verbose(), string(level))
	}
}
