// Package aggregate 把结果张量按指标切分为每个方法一条的序列。
package aggregate

import (
	"numdiffbench/types"

	"github.com/pkg/errors"
)

// Series 返回每个方法在所有规模上的指标值，索引为 [method][size]
func Series(t *types.ResultTensor, labels []string, metric types.Metric) ([][]float64, error) {
	if !metric.Valid() {
		return nil, errors.Errorf("series: unknown metric %s", metric)
	}
	if t.Methods() != len(labels) {
		return nil, &types.ShapeError{What: "series labels", Want: t.Methods(), Got: len(labels)}
	}
	out := make([][]float64, len(labels))
	for m := range out {
		out[m] = make([]float64, t.Len())
		for s := range out[m] {
			out[m][s] = t.At(s, m, metric)
		}
	}
	return out, nil
}

// Title 分组标题，如 "Jacobian run times"
func Title(kind types.Kind, metric types.Metric) string {
	return kind.String() + " " + metric.String()
}

// Group 创建单个指标的报告分组
func Group(t *types.ResultTensor, labels []string, metric types.Metric, kind types.Kind) (*types.Group, error) {
	series, err := Series(t, labels, metric)
	if err != nil {
		return nil, err
	}
	return &types.Group{
		Title:  Title(kind, metric),
		Kind:   kind,
		Metric: metric,
		Labels: append([]string(nil), labels...),
		Series: series,
	}, nil
}

// Groups 创建求值耗时与相对误差两个分组，绑定耗时仅在 withSetup 时附加
func Groups(t *types.ResultTensor, withSetup bool) ([]*types.Group, error) {
	metrics := []types.Metric{types.Runtime, types.RelativeError}
	if withSetup {
		metrics = append(metrics, types.SetupTime)
	}
	groups := make([]*types.Group, 0, len(metrics))
	for _, m := range metrics {
		g, err := Group(t, t.Labels, m, t.Kind)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}
