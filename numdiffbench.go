// Package numdiffbench 比较数值微分估计器在一族二次型测试函数上的耗时与精度。
//
// 梯度与海森对角线各扫描一次，结果按指标汇总后输出为图表、HTML 页面和 JSON 记录。
package numdiffbench

import (
	"io"
	"os"
	"path/filepath"

	"numdiffbench/aggregate"
	"numdiffbench/config"
	"numdiffbench/registry"
	"numdiffbench/report"
	"numdiffbench/sweep"
	"numdiffbench/types"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	HTMLFile = "report.html"  // 交互式报告文件名
	JSONFile = "results.json" // 结果记录文件名
)

// Results 两类估计目标的扫描结果
type Results struct {
	Gradient *types.ResultTensor
	Hessian  *types.ResultTensor
}

// Tensors 按梯度、海森对角线顺序返回结果张量
func (r *Results) Tensors() []*types.ResultTensor {
	return []*types.ResultTensor{r.Gradient, r.Hessian}
}

// Benchmark 基准运行器
type Benchmark struct {
	cfg           config.Config
	runtimeCorner report.Corner // 耗时图表的图例位置
	errorCorner   report.Corner // 误差图表的图例位置
	records       report.Records
	opts          []sweep.Option
}

// New 创建基准运行器，opts 附加到每次扫描
func New(cfg config.Config, opts ...sweep.Option) (*Benchmark, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	runtimeCorner, err := report.ParseCorner(cfg.RuntimeLegend)
	if err != nil {
		return nil, errors.Wrap(err, "runtime-legend")
	}
	errorCorner, err := report.ParseCorner(cfg.ErrorLegend)
	if err != nil {
		return nil, errors.Wrap(err, "error-legend")
	}
	return &Benchmark{cfg: cfg, runtimeCorner: runtimeCorner, errorCorner: errorCorner, opts: opts}, nil
}

// Compute 依次扫描梯度与海森对角线
func (b *Benchmark) Compute() (*Results, error) {
	b.records = nil
	gradient, err := b.sweep(registry.NewGradient)
	if err != nil {
		return nil, err
	}
	hessian, err := b.sweep(registry.NewHessianDiag)
	if err != nil {
		return nil, err
	}
	return &Results{Gradient: gradient, Hessian: hessian}, nil
}

func (b *Benchmark) sweep(build func(registry.Options) (*registry.Registry, error)) (*types.ResultTensor, error) {
	reg, err := build(b.cfg.RegistryOptions())
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"kind": reg.Kind(), "methods": reg.Len()}).Info("starting sweep")
	rec := &report.Record{}
	b.records = append(b.records, rec)
	opts := append([]sweep.Option{sweep.WithProbe(b.cfg.Probe), sweep.WithRecorder(rec)}, b.opts...)
	return sweep.Run(reg, b.cfg.Sizes, opts...)
}

// Print 以表格输出结果
func (b *Benchmark) Print(w io.Writer, res *Results) error {
	for _, t := range res.Tensors() {
		if err := report.Table(w, t); err != nil {
			return err
		}
	}
	return nil
}

// chartSet 共用图例位置的一组图表
type chartSet struct {
	groups []*types.Group
	corner report.Corner
}

// Report 渲染图表，并按配置写出 HTML 与 JSON
func (b *Benchmark) Report(res *Results) error {
	var runtimes, errs, setups []*types.Group
	for _, t := range res.Tensors() {
		gs, err := aggregate.Groups(t, true)
		if err != nil {
			return err
		}
		runtimes = append(runtimes, gs[0])
		errs = append(errs, gs[1])
		setups = append(setups, gs[2])
	}
	symbols, err := report.Symbols(len(res.Gradient.Labels))
	if err != nil {
		return err
	}

	charts := []chartSet{{runtimes, b.runtimeCorner}, {errs, b.errorCorner}}
	if b.cfg.SetupCharts {
		charts = append(charts, chartSet{setups, b.runtimeCorner})
	}
	for _, c := range charts {
		style := report.DefaultStyle(c.corner)
		style.Dir = b.cfg.Out
		if err := report.Plot(c.groups, res.Gradient.Sizes, symbols, style); err != nil {
			return err
		}
	}

	if b.cfg.HTML {
		all := append(append([]*types.Group(nil), runtimes...), errs...)
		if b.cfg.SetupCharts {
			all = append(all, setups...)
		}
		if err := b.writeFile(HTMLFile, func(w io.Writer) error {
			return report.HTML(w, all, res.Gradient.Sizes)
		}); err != nil {
			return err
		}
	}
	if b.cfg.JSON {
		if err := b.writeFile(JSONFile, b.records.Render); err != nil {
			return err
		}
	}
	return nil
}

func (b *Benchmark) writeFile(name string, render func(io.Writer) error) error {
	path := filepath.Join(b.cfg.Out, name)
	if err := os.MkdirAll(b.cfg.Out, 0o755); err != nil {
		return &types.RenderError{Title: name, File: path, Err: err}
	}
	f, err := os.Create(path)
	if err != nil {
		return &types.RenderError{Title: name, File: path, Err: err}
	}
	if err := render(f); err != nil {
		f.Close()
		return &types.RenderError{Title: name, File: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &types.RenderError{Title: name, File: path, Err: errors.Wrap(err, "close")}
	}
	log.WithField("file", path).Info("report written")
	return nil
}

// Run 扫描后输出表格并渲染报告。渲染失败时仍返回数值结果。
func (b *Benchmark) Run(w io.Writer) (*Results, error) {
	res, err := b.Compute()
	if err != nil {
		return nil, err
	}
	if err := b.Print(w, res); err != nil {
		return res, err
	}
	return res, b.Report(res)
}
