package numdiffbench

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"numdiffbench/config"
	"numdiffbench/registry"
	"numdiffbench/report"
	"numdiffbench/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Sizes = []int{4, 6}
	cfg.Out = t.TempDir()
	return cfg
}

func TestRun(t *testing.T) {
	cfg := testConfig(t)
	cfg.HTML = true
	cfg.JSON = true
	cfg.SetupCharts = true
	b, err := New(cfg)
	require.NoError(t, err)

	var out bytes.Buffer
	res, err := b.Run(&out)
	require.NoError(t, err)
	for _, tensor := range res.Tensors() {
		assert.Equal(t, []int{4, 6}, tensor.Sizes)
		require.Len(t, tensor.Labels, 7)
		assert.Equal(t, registry.BaselineLabel, tensor.Labels[0])
		for s := range tensor.Rows {
			assert.Equal(t, types.Floor, tensor.At(s, 0, types.RelativeError))
		}
	}
	assert.Equal(t, types.Gradient, res.Gradient.Kind)
	assert.Equal(t, types.HessianDiag, res.Hessian.Kind)
	assert.Contains(t, out.String(), "complex_adaptive_14_1.6_0")

	for _, name := range []string{
		"jacobian_run_times.png", "hessian_run_times.png",
		"jacobian_errors.png", "hessian_errors.png",
		"jacobian_setup_times.png", "hessian_setup_times.png",
		HTMLFile, JSONFile,
	} {
		_, err := os.Stat(filepath.Join(cfg.Out, name))
		assert.NoError(t, err, name)
	}

	data, err := os.ReadFile(filepath.Join(cfg.Out, JSONFile))
	require.NoError(t, err)
	var records []report.Record
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 2)
	assert.Equal(t, "Jacobian", records[0].Kind)
	assert.Equal(t, "Hessian", records[1].Kind)
	assert.Equal(t, []int{4, 6}, records[1].Sizes)
}

func TestRunWithoutExtras(t *testing.T) {
	cfg := testConfig(t)
	b, err := New(cfg)
	require.NoError(t, err)
	_, err = b.Run(&bytes.Buffer{})
	require.NoError(t, err)

	entries, err := os.ReadDir(cfg.Out)
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestComputeFailure(t *testing.T) {
	cfg := testConfig(t)
	cfg.Sizes = []int{4, 1}
	b, err := New(cfg)
	require.NoError(t, err)
	res, err := b.Compute()
	assert.Nil(t, res)
	var de *types.DegenerateReferenceError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, 1, de.Size)
}

func TestReportFailureKeepsResults(t *testing.T) {
	cfg := testConfig(t)
	blocker := filepath.Join(cfg.Out, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	cfg.Out = blocker
	b, err := New(cfg)
	require.NoError(t, err)

	res, err := b.Run(&bytes.Buffer{})
	require.NotNil(t, res)
	var re *types.RenderError
	assert.ErrorAs(t, err, &re)
}

func TestNewValidates(t *testing.T) {
	cfg := config.Default()
	cfg.StepRatio = 0.5
	_, err := New(cfg)
	assert.Error(t, err)

	cfg = config.Default()
	cfg.ErrorLegend = "middle"
	_, err = New(cfg)
	assert.Error(t, err)
}

func TestNewParsesLegendCorners(t *testing.T) {
	cfg := config.Default()
	cfg.RuntimeLegend = "bottom-left"
	b, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, report.BottomLeft, b.runtimeCorner)
	assert.Equal(t, report.CenterRight, b.errorCorner)
}
