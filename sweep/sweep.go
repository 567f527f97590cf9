// Package sweep 在一组问题规模上测量注册表中的每个估计器。
//
// 每个规模构造一个测试函数，按注册顺序绑定并求值所有估计器，
// 整行求值完成后再以参考估计器的结果计算相对误差。任何失败都会中止整个扫描。
package sweep

import (
	"math"
	"time"

	"numdiffbench/bench"
	"numdiffbench/estimator"
	"numdiffbench/registry"
	"numdiffbench/types"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

// Option 扫描选项
type Option func(*runner)

// WithProbe 设置求值点各分量的取值
func WithProbe(v float64) Option {
	return func(r *runner) { r.probe = v }
}

// WithRecorder 设置逐行记录器
func WithRecorder(rec types.Recorder) Option {
	return func(r *runner) { r.recorder = rec }
}

// WithClock 设置计时时钟
func WithClock(now func() time.Time) Option {
	return func(r *runner) { r.now = now }
}

type runner struct {
	probe    float64
	recorder types.Recorder
	now      func() time.Time
}

// trial 单个估计器在某一规模下的原始测量
type trial struct {
	value   []float64
	runtime time.Duration
	setup   time.Duration
}

// Run 依次在 sizes 上测量 reg 中的所有估计器，返回结果张量。
// 出错时不返回部分结果。
func Run(reg *registry.Registry, sizes []int, opts ...Option) (*types.ResultTensor, error) {
	r := &runner{probe: types.ProbeValue, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	refLabel, refIdx, err := reg.Reference()
	if err != nil {
		return nil, err
	}
	entries := reg.Entries()
	labels := reg.Labels()
	if r.recorder != nil {
		r.recorder.Init(reg.Kind(), labels)
	}

	t := types.NewResultTensor(reg.Kind(), labels)
	for _, n := range sizes {
		row, err := r.measure(n, entries, refLabel, refIdx)
		if err != nil {
			if r.recorder != nil {
				r.recorder.Error(err)
			}
			return nil, err
		}
		if err := t.AppendRow(n, row); err != nil {
			return nil, err
		}
		if r.recorder != nil {
			r.recorder.Update(n, row)
		}
	}
	return t, nil
}

// measure 测量一个规模下的整行结果
func (r *runner) measure(n int, entries []registry.Entry, refLabel string, refIdx int) ([]types.TrialResult, error) {
	if n <= 0 {
		return nil, &types.ShapeError{What: "problem size", Want: 1, Got: n}
	}
	fn, err := bench.New(n)
	if err != nil {
		return nil, err
	}
	x := make([]float64, n)
	for i := range x {
		x[i] = r.probe
	}

	trials := make([]trial, len(entries))
	for i, e := range entries {
		logger := log.WithFields(log.Fields{"size": n, "label": e.Label})
		tr, err := r.run(e.Estimator, fn, x)
		if err != nil {
			logger.WithError(err).Error("estimator failed")
			return nil, &types.EstimatorFailure{Size: n, Label: e.Label, Err: err}
		}
		logger.WithFields(log.Fields{
			"setup":   tr.setup,
			"runtime": tr.runtime,
		}).Debug("estimator measured")
		trials[i] = tr
	}

	ref := trials[refIdx].value
	norm := floats.Norm(ref, 2)
	if !(norm > types.DegenerateNorm) || math.IsInf(norm, 0) {
		return nil, &types.DegenerateReferenceError{Size: n, Label: refLabel, Norm: norm}
	}

	row := make([]types.TrialResult, len(entries))
	for i, tr := range trials {
		res := types.TrialResult{
			Runtime:   tr.runtime.Seconds(),
			SetupTime: tr.setup.Seconds(),
		}
		if i != refIdx {
			res.RelativeError = floats.Distance(tr.value, ref, 2) / norm
		}
		row[i] = res.Floored()
	}
	log.WithFields(log.Fields{"size": n, "methods": len(row)}).Info("size measured")
	return row, nil
}

// run 分别计时绑定与求值
func (r *runner) run(est estimator.Estimator, fn *bench.Function, x []float64) (trial, error) {
	start := r.now()
	ev, err := est.Bind(fn)
	setup := r.now().Sub(start)
	if err != nil {
		return trial{}, errors.Wrap(err, "bind")
	}

	start = r.now()
	v, err := ev.Evaluate(x)
	runtime := r.now().Sub(start)
	if err != nil {
		return trial{}, errors.Wrap(err, "evaluate")
	}
	if len(v) != len(x) {
		return trial{}, &types.ShapeError{What: "estimate", Want: len(x), Got: len(v)}
	}
	return trial{value: v, runtime: runtime, setup: setup}, nil
}
