package sweep

import (
	"errors"
	"io"
	"math"
	"testing"
	"time"

	"numdiffbench/estimator"
	"numdiffbench/registry"
	"numdiffbench/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEstimator 返回固定结果或错误的估计器
type stubEstimator struct {
	kind    types.Kind
	value   func(n int) []float64
	bindErr error
	evalErr error
}

func (s *stubEstimator) Kind() types.Kind { return s.kind }

func (s *stubEstimator) Bind(fn types.Function) (estimator.Evaluator, error) {
	if s.bindErr != nil {
		return nil, s.bindErr
	}
	return stubEvaluator{s: s, n: fn.Dim()}, nil
}

type stubEvaluator struct {
	s *stubEstimator
	n int
}

func (e stubEvaluator) Evaluate([]float64) ([]float64, error) {
	if e.s.evalErr != nil {
		return nil, e.s.evalErr
	}
	return e.s.value(e.n), nil
}

func constant(v float64) func(int) []float64 {
	return func(n int) []float64 {
		out := make([]float64, n)
		for i := range out {
			out[i] = v
		}
		return out
	}
}

// tickClock 每次读取前进 step
func tickClock(step time.Duration) func() time.Time {
	now := time.Unix(0, 0)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func mustDifference(t *testing.T, kind types.Kind, method estimator.Method, steps estimator.Steps) *estimator.Difference {
	t.Helper()
	d, err := estimator.NewDifference(kind, method, 2, steps)
	require.NoError(t, err)
	return d
}

func TestReferenceAndFixedForward(t *testing.T) {
	reg := registry.New(types.Gradient)
	require.NoError(t, reg.Add("reference", estimator.NewDual(types.Gradient)))
	require.NoError(t, reg.Add("fixed_forward",
		mustDifference(t, types.Gradient, estimator.Forward, estimator.FixedSteps())))

	res, err := Run(reg, []int{4, 8})
	require.NoError(t, err)
	assert.Equal(t, []int{4, 8}, res.Sizes)
	assert.Equal(t, []string{"reference", "fixed_forward"}, res.Labels)
	require.Equal(t, 2, res.Len())
	for i := range res.Rows {
		require.Len(t, res.Rows[i], 2)
		assert.Equal(t, types.Floor, res.At(i, 0, types.RelativeError))
		assert.GreaterOrEqual(t, res.At(i, 1, types.RelativeError), types.Floor)
		assert.Less(t, res.At(i, 1, types.RelativeError), 1e-5)
		for m := range res.Rows[i] {
			for _, metric := range []types.Metric{types.Runtime, types.RelativeError, types.SetupTime} {
				assert.GreaterOrEqual(t, res.At(i, m, metric), types.Floor)
			}
		}
	}
}

func TestStandardRegistry(t *testing.T) {
	for _, build := range []func(registry.Options) (*registry.Registry, error){
		registry.NewGradient, registry.NewHessianDiag,
	} {
		reg, err := build(registry.DefaultOptions())
		require.NoError(t, err)
		res, err := Run(reg, []int{4})
		require.NoError(t, err)
		assert.Equal(t, reg.Labels(), res.Labels)
		assert.Equal(t, types.Floor, res.At(0, 0, types.RelativeError))
		for m := 1; m < res.Methods(); m++ {
			assert.Less(t, res.At(0, m, types.RelativeError), 1e-4, res.Labels[m])
		}
	}
}

func TestTimingIsolation(t *testing.T) {
	reg := registry.New(types.Gradient)
	require.NoError(t, reg.Add("a", &stubEstimator{kind: types.Gradient, value: constant(1)}))

	res, err := Run(reg, []int{3}, WithClock(tickClock(time.Millisecond)))
	require.NoError(t, err)
	assert.Equal(t, 0.001+types.Floor, res.At(0, 0, types.SetupTime))
	assert.Equal(t, 0.001+types.Floor, res.At(0, 0, types.Runtime))
}

func TestColumnOrderFollowsRegistration(t *testing.T) {
	run := func(labels ...string) *types.ResultTensor {
		t.Helper()
		ests := map[string]estimator.Estimator{
			"forward": mustDifference(t, types.HessianDiag, estimator.Forward, estimator.FixedSteps()),
			"dual":    estimator.NewDual(types.HessianDiag),
		}
		reg := registry.New(types.HessianDiag)
		for _, l := range labels {
			require.NoError(t, reg.Add(l, ests[l]))
		}
		require.NoError(t, reg.SetReference("dual"))
		res, err := Run(reg, []int{5, 7}, WithClock(tickClock(time.Millisecond)))
		require.NoError(t, err)
		return res
	}

	a := run("forward", "dual")
	b := run("dual", "forward")
	assert.Equal(t, []string{"forward", "dual"}, a.Labels)
	assert.Equal(t, []string{"dual", "forward"}, b.Labels)
	for s := range a.Rows {
		assert.Equal(t, types.Floor, a.At(s, 1, types.RelativeError))
		assert.Greater(t, a.At(s, 0, types.RelativeError), types.Floor)
		assert.Equal(t, []types.TrialResult{a.Rows[s][1], a.Rows[s][0]}, b.Rows[s])
	}
}

func TestErrorsAreRepeatable(t *testing.T) {
	reg, err := registry.NewGradient(registry.DefaultOptions())
	require.NoError(t, err)
	a, err := Run(reg, []int{4, 6})
	require.NoError(t, err)
	b, err := Run(reg, []int{4, 6})
	require.NoError(t, err)
	for i := range a.Rows {
		for m := range a.Rows[i] {
			assert.Equal(t, a.At(i, m, types.RelativeError), b.At(i, m, types.RelativeError))
		}
	}
}

func TestDegenerateReference(t *testing.T) {
	reg, err := registry.NewGradient(registry.DefaultOptions())
	require.NoError(t, err)
	res, err := Run(reg, []int{1})
	assert.Nil(t, res)
	var de *types.DegenerateReferenceError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, 1, de.Size)
	assert.Equal(t, registry.BaselineLabel, de.Label)

	reg = registry.New(types.Gradient)
	require.NoError(t, reg.Add("nan", &stubEstimator{kind: types.Gradient, value: constant(math.NaN())}))
	_, err = Run(reg, []int{2})
	assert.ErrorAs(t, err, &de)
}

func TestEstimatorFailure(t *testing.T) {
	boom := errors.New("boom")
	tests := map[string]*stubEstimator{
		"bind":     {kind: types.Gradient, bindErr: boom},
		"evaluate": {kind: types.Gradient, evalErr: boom},
	}
	for name, bad := range tests {
		t.Run(name, func(t *testing.T) {
			reg := registry.New(types.Gradient)
			require.NoError(t, reg.Add("ok", &stubEstimator{kind: types.Gradient, value: constant(1)}))
			require.NoError(t, reg.Add("bad", bad))

			rec := &countingRecorder{}
			res, err := Run(reg, []int{2, 4}, WithRecorder(rec))
			assert.Nil(t, res)
			var fe *types.EstimatorFailure
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, 2, fe.Size)
			assert.Equal(t, "bad", fe.Label)
			assert.ErrorIs(t, err, boom)
			assert.Equal(t, 0, rec.rows)
			assert.Equal(t, 1, rec.errs)
		})
	}
}

func TestShapeErrors(t *testing.T) {
	reg := registry.New(types.Gradient)
	require.NoError(t, reg.Add("short", &stubEstimator{
		kind:  types.Gradient,
		value: func(n int) []float64 { return make([]float64, n-1) },
	}))
	_, err := Run(reg, []int{3})
	var se *types.ShapeError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 3, se.Want)
	assert.Equal(t, 2, se.Got)

	reg = registry.New(types.Gradient)
	require.NoError(t, reg.Add("a", &stubEstimator{kind: types.Gradient, value: constant(1)}))
	_, err = Run(reg, []int{2, 0})
	assert.ErrorAs(t, err, &se)

	_, err = Run(registry.New(types.Gradient), []int{2})
	assert.Error(t, err, "empty registry")
}

func TestRecorder(t *testing.T) {
	reg := registry.New(types.Gradient)
	require.NoError(t, reg.Add("a", &stubEstimator{kind: types.Gradient, value: constant(2)}))
	require.NoError(t, reg.Add("b", &stubEstimator{kind: types.Gradient, value: constant(1)}))

	rec := &countingRecorder{}
	res, err := Run(reg, []int{2, 3, 4}, WithRecorder(rec), WithProbe(1))
	require.NoError(t, err)
	assert.Equal(t, types.Gradient, rec.kind)
	assert.Equal(t, []string{"a", "b"}, rec.labels)
	assert.Equal(t, 3, rec.rows)
	assert.Equal(t, 0, rec.errs)
	assert.InDelta(t, 0.5, res.At(2, 1, types.RelativeError), 1e-12)
}

type countingRecorder struct {
	kind   types.Kind
	labels []string
	rows   int
	errs   int
}

func (r *countingRecorder) Init(kind types.Kind, labels []string) {
	r.kind, r.labels = kind, labels
}
func (r *countingRecorder) Update(int, []types.TrialResult) { r.rows++ }
func (r *countingRecorder) Render(io.Writer) error          { return nil }
func (r *countingRecorder) Error(error)                     { r.errs++ }
