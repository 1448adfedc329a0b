package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pzfreo/wormgear-sub002/internal/cli"
)

// execute runs the full command tree like main does, capturing stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root, app := cli.NewRoot("1.2.3-test")
	root.AddCommand(All(app)...)
	defer app.Close()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3-test", strings.TrimSpace(out))
}

func TestCalcCommandTables(t *testing.T) {
	out, err := execute(t, "calc", "--module", "2", "--ratio", "30")
	require.NoError(t, err)
	assert.Contains(t, out, "38.000 mm") // centre distance
	assert.Contains(t, out, "Assembly")
}

func TestCalcCommandJSON(t *testing.T) {
	out, err := execute(t, "calc", "--module", "2", "--ratio", "30", "--json")
	require.NoError(t, err)

	var got calcOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.InDelta(t, 38.0, got.Pair.Assembly.CentreDistance, 1e-9)
	assert.InDelta(t, 16.0, got.Pair.Worm.PitchDiameter, 1e-9)
	assert.False(t, got.Pair.Assembly.SelfLocking)
}

func TestCalcCommandSnap(t *testing.T) {
	out, err := execute(t, "calc", "--module", "1.55", "--ratio", "30", "--snap", "--json")
	require.NoError(t, err)

	var got calcOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.True(t, got.Snapped)
	assert.Equal(t, 1.5, got.Pair.Worm.Module)
}

func TestCalcCommandBlockingFindings(t *testing.T) {
	// Ratio 10 undercuts the wheel; the command must fail.
	_, err := execute(t, "calc", "--module", "2", "--ratio", "10")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blocking")
}

func TestCalcCommandMissingInput(t *testing.T) {
	_, err := execute(t, "calc", "--ratio", "30")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "module")
}

func TestStandardsCommand(t *testing.T) {
	out, err := execute(t, "standards")
	require.NoError(t, err)
	assert.Contains(t, out, "module series")
	assert.Contains(t, out, "Keyways")
}
