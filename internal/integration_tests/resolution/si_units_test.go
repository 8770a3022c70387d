package integration_tests

import (
	"testing"

	"github.com/specialistvlad/dimgrid/internal/entry"
	"github.com/specialistvlad/dimgrid/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dimensionsHCL = `
dimension "Length" {}
dimension "Time" {}
dimension "Mass" {}

dimension "Velocity" {
  value = Length / Time
}

dimension "Force" {
  value = Mass * Length / pow(Time, 2)
}
`

const siHCL = `
unit "meters" {
  symbol = "m"
  base   = Length
}

unit "seconds" {
  symbol = "s"
  base   = Time
}

unit "kilograms" {
  symbol = "kg"
  base   = Mass
}

unit "newton" {
  symbol    = "N"
  dimension = Force
  value     = kilograms * meters / pow(seconds, 2)
}
`

const imperialHCL = `
unit "inch" {
  value = 0.0254 * meters
}

unit "foot" {
  value = 12 * inch
}

unit "mile" {
  dimension = Length
  value     = 5280 * foot
}
`

const constantsHCL = `
constant "c" {
  dimension = Velocity
  value     = 299792458 * meters / seconds
}
`

func TestResolution_DefinitionsSpreadAcrossFiles(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"dimensions.hcl":     dimensionsHCL,
		"units/si.hcl":       siHCL,
		"units/imperial.hcl": imperialHCL,
		"constants.hcl":      constantsHCL,
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, testutil.Options{})

	// --- Assert ---
	require.NoError(t, result.Err)
	require.Empty(t, result.Diagnostics, "a consistent definition set must resolve cleanly")

	res := result.Resolution
	require.Equal(t, 13, res.Len())
	assert.Equal(t, []string{"Length", "Mass", "Time"}, res.Basis.Names())
	assert.Len(t, res.Dimensions(), 5)
	assert.Len(t, res.Units(), 7)
	assert.Len(t, res.Constants(), 1)

	force, ok := res.Lookup("Force")
	require.True(t, ok)
	newton, ok := res.Lookup("newton")
	require.True(t, ok)
	assert.True(t, force.Dim.Equal(newton.Dim), "newton measures force")
	assert.Equal(t, 1.0, newton.Mag.Float64())

	mile, ok := res.Lookup("mile")
	require.True(t, ok)
	assert.Equal(t, entry.KindUnit, mile.Kind)
	assert.InDelta(t, 1609.344, mile.Mag.Float64(), 1e-9)

	c, ok := res.Lookup("c")
	require.True(t, ok)
	assert.Equal(t, 299792458.0, c.Mag.Float64())

	dense, err := res.Dense(c)
	require.NoError(t, err)
	assert.Equal(t, "1", dense[0].String(), "Length")
	assert.Equal(t, "0", dense[1].String(), "Mass")
	assert.Equal(t, "-1", dense[2].String(), "Time")

	assert.Contains(t, result.Report, "newton")
	assert.Contains(t, result.Report, "13 resolved over basis [Length Mass Time]")
	assert.Contains(t, result.LogOutput, "Definitions resolved.")
}
