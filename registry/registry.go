// Package registry 维护按注册顺序排列的估计器集合。
//
// 列顺序即注册顺序，报告阶段按位置把方法与绘图符号配对，因此从不排序。
// 参考估计器显式指定，默认为第一个注册的估计器。
package registry

import (
	"fmt"
	"strconv"

	"numdiffbench/estimator"
	"numdiffbench/types"

	"github.com/pkg/errors"
)

// BaselineLabel 自动微分基线的标签
const BaselineLabel = "ad_dual_forward"

// Entry 估计器条目
type Entry struct {
	Label     string
	Estimator estimator.Estimator
}

// Registry 有序估计器集合
type Registry struct {
	kind      types.Kind
	entries   []Entry
	index     map[string]int
	reference string
}

// New 创建空集合
func New(kind types.Kind) *Registry {
	return &Registry{kind: kind, index: make(map[string]int)}
}

// Kind 估计目标
func (r *Registry) Kind() types.Kind { return r.kind }

// Add 追加估计器，标签必须唯一
func (r *Registry) Add(label string, est estimator.Estimator) error {
	switch {
	case label == "":
		return errors.New("registry: empty label")
	case est == nil:
		return errors.Errorf("registry: nil estimator for %q", label)
	case est.Kind() != r.kind:
		return errors.Errorf("registry: %q estimates %s, registry holds %s", label, est.Kind(), r.kind)
	}
	if _, ok := r.index[label]; ok {
		return errors.Errorf("registry: duplicate label %q", label)
	}
	r.index[label] = len(r.entries)
	r.entries = append(r.entries, Entry{Label: label, Estimator: est})
	return nil
}

// Len 返回估计器数量
func (r *Registry) Len() int { return len(r.entries) }

// Entries 返回按注册顺序排列的条目副本
func (r *Registry) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

// Labels 返回按注册顺序排列的标签
func (r *Registry) Labels() []string {
	labels := make([]string, len(r.entries))
	for i, e := range r.entries {
		labels[i] = e.Label
	}
	return labels
}

// SetReference 指定参考估计器
func (r *Registry) SetReference(label string) error {
	if _, ok := r.index[label]; !ok {
		return errors.Errorf("registry: unknown reference %q", label)
	}
	r.reference = label
	return nil
}

// Reference 返回参考估计器的标签与位置，未显式指定时为第一个条目
func (r *Registry) Reference() (string, int, error) {
	if len(r.entries) == 0 {
		return "", -1, errors.New("registry: empty")
	}
	if r.reference == "" {
		return r.entries[0].Label, 0, nil
	}
	return r.reference, r.index[r.reference], nil
}

// Options 标准估计器集合的配置
type Options struct {
	Order         int     // 差分公式误差阶
	AdaptiveSteps int     // 自适应步长数量
	StepRatio     float64 // 自适应步长比例
	Offset        int     // 自适应步长偏移
}

// DefaultOptions 默认配置
func DefaultOptions() Options {
	return Options{
		Order:         types.DefaultOrder,
		AdaptiveSteps: types.AdaptiveSteps,
		StepRatio:     types.StepRatio,
		Offset:        types.StepOffset,
	}
}

// FixedLabel 固定步长估计器标签，如 forward_fixed_1_0
func FixedLabel(method estimator.Method, steps estimator.Steps) string {
	return fmt.Sprintf("%s_fixed_%d_%d", method, steps.Num, steps.Offset)
}

// AdaptiveLabel 自适应步长估计器标签，如 central_adaptive_14_1.6_0
func AdaptiveLabel(method estimator.Method, steps estimator.Steps) string {
	return fmt.Sprintf("%s_adaptive_%d_%s_%d", method, steps.Num,
		strconv.FormatFloat(steps.Ratio, 'g', -1, 64), steps.Offset)
}

// NewGradient 创建标准梯度估计器集合
func NewGradient(opts Options) (*Registry, error) {
	return newStandard(types.Gradient, opts)
}

// NewHessianDiag 创建标准海森对角线估计器集合
func NewHessianDiag(opts Options) (*Registry, error) {
	return newStandard(types.HessianDiag, opts)
}

// newStandard 注册顺序：自动微分基线，然后每个差分方法族依次为固定步长与自适应步长。
// 误差阶按方法族提升到最近的可用阶。
func newStandard(kind types.Kind, opts Options) (*Registry, error) {
	r := New(kind)
	if err := r.Add(BaselineLabel, estimator.NewDual(kind)); err != nil {
		return nil, err
	}
	fixed := estimator.FixedSteps()
	adaptive := estimator.AdaptiveSteps(opts.AdaptiveSteps, opts.StepRatio, opts.Offset)
	for _, method := range estimator.Methods {
		order, err := estimator.NormalizeOrder(method, kind, opts.Order)
		if err != nil {
			return nil, err
		}
		f, err := estimator.NewDifference(kind, method, order, fixed)
		if err != nil {
			return nil, errors.Wrapf(err, "%s fixed step", method)
		}
		if err := r.Add(FixedLabel(method, fixed), f); err != nil {
			return nil, err
		}
		a, err := estimator.NewDifference(kind, method, order, adaptive)
		if err != nil {
			return nil, errors.Wrapf(err, "%s adaptive step", method)
		}
		if err := r.Add(AdaptiveLabel(method, adaptive), a); err != nil {
			return nil, err
		}
	}
	if err := r.SetReference(BaselineLabel); err != nil {
		return nil, err
	}
	return r, nil
}
