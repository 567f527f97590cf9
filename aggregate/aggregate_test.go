package aggregate

import (
	"testing"

	"numdiffbench/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tensor(t *testing.T) *types.ResultTensor {
	t.Helper()
	res := types.NewResultTensor(types.HessianDiag, []string{"a", "b"})
	require.NoError(t, res.AppendRow(4, []types.TrialResult{
		{Runtime: 1, RelativeError: 2, SetupTime: 3},
		{Runtime: 4, RelativeError: 5, SetupTime: 6},
	}))
	require.NoError(t, res.AppendRow(8, []types.TrialResult{
		{Runtime: 7, RelativeError: 8, SetupTime: 9},
		{Runtime: 10, RelativeError: 11, SetupTime: 12},
	}))
	return res
}

func TestSeries(t *testing.T) {
	res := tensor(t)
	tests := map[string]struct {
		metric types.Metric
		want   [][]float64
	}{
		"runtime": {types.Runtime, [][]float64{{1, 7}, {4, 10}}},
		"error":   {types.RelativeError, [][]float64{{2, 8}, {5, 11}}},
		"setup":   {types.SetupTime, [][]float64{{3, 9}, {6, 12}}},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := Series(res, res.Labels, tc.metric)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			for _, s := range got {
				assert.Len(t, s, len(res.Sizes))
			}
		})
	}
}

func TestSeriesShapeError(t *testing.T) {
	_, err := Series(tensor(t), []string{"a"}, types.Runtime)
	var se *types.ShapeError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 2, se.Want)
	assert.Equal(t, 1, se.Got)
}

func TestSeriesUnknownMetric(t *testing.T) {
	res := tensor(t)
	assert.NotPanics(t, func() {
		_, err := Series(res, res.Labels, types.Metric(7))
		assert.EqualError(t, err, "series: unknown metric Metric(7)")
	})
	_, err := Group(res, res.Labels, types.Metric(7), types.Gradient)
	assert.Error(t, err)
}

func TestGroup(t *testing.T) {
	res := tensor(t)
	g, err := Group(res, res.Labels, types.Runtime, types.Gradient)
	require.NoError(t, err)
	assert.Equal(t, "Jacobian run times", g.Title)
	assert.Equal(t, []string{"a", "b"}, g.Labels)

	g, err = Group(res, res.Labels, types.RelativeError, types.HessianDiag)
	require.NoError(t, err)
	assert.Equal(t, "Hessian errors", g.Title)
	assert.Equal(t, types.RelativeError, g.Metric)
}

func TestGroups(t *testing.T) {
	res := tensor(t)
	groups, err := Groups(res, false)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Hessian run times", groups[0].Title)
	assert.Equal(t, "Hessian errors", groups[1].Title)

	groups, err = Groups(res, true)
	require.NoError(t, err)
	require.Len(t, groups, 3)
	assert.Equal(t, "Hessian setup times", groups[2].Title)
}

func TestEmptyTensor(t *testing.T) {
	res := types.NewResultTensor(types.Gradient, []string{"a"})
	got, err := Series(res, res.Labels, types.Runtime)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{}}, got)
}
