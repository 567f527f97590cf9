package types

import "fmt"

// Kind 估计目标类型（分组键）
type Kind uint8

const (
	Gradient    Kind = iota // 梯度（雅可比）
	HessianDiag             // 海森矩阵对角线
)

// String 返回类型名称
func (k Kind) String() string {
	switch k {
	case Gradient:
		return "Jacobian"
	case HessianDiag:
		return "Hessian"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Metric 结果指标，顺序与 TrialResult 三元组一致
type Metric uint8

const (
	Runtime       Metric = iota // 求值耗时
	RelativeError               // 相对误差
	SetupTime                   // 绑定耗时
)

// String 返回指标名称
func (m Metric) String() string {
	switch m {
	case Runtime:
		return "run times"
	case RelativeError:
		return "errors"
	case SetupTime:
		return "setup times"
	}
	return fmt.Sprintf("Metric(%d)", uint8(m))
}

// Valid 是否为已定义的指标
func (m Metric) Valid() bool { return m <= SetupTime }

// TrialResult 单次试验结果，单位为秒
type TrialResult struct {
	Runtime       float64 `json:"runtime"`
	RelativeError float64 `json:"relative_error"`
	SetupTime     float64 `json:"setup_time"`
}

// Floored 返回各字段加上下限后的结果
func (r TrialResult) Floored() TrialResult {
	return TrialResult{
		Runtime:       r.Runtime + Floor,
		RelativeError: r.RelativeError + Floor,
		SetupTime:     r.SetupTime + Floor,
	}
}

// Value 按指标取值
func (r TrialResult) Value(m Metric) float64 {
	switch m {
	case Runtime:
		return r.Runtime
	case RelativeError:
		return r.RelativeError
	case SetupTime:
		return r.SetupTime
	}
	panic(fmt.Sprintf("unknown metric %d", m))
}

// ResultTensor 结果张量，索引为 [size][method][metric]
// 行顺序为问题规模顺序，列顺序为估计器注册顺序。
type ResultTensor struct {
	Kind   Kind            `json:"kind"`
	Sizes  []int           `json:"sizes"`
	Labels []string        `json:"labels"`
	Rows   [][]TrialResult `json:"rows"`
}

// NewResultTensor 创建空结果张量
func NewResultTensor(kind Kind, labels []string) *ResultTensor {
	return &ResultTensor{
		Kind:   kind,
		Labels: append([]string(nil), labels...),
	}
}

// AppendRow 追加一行结果
func (t *ResultTensor) AppendRow(size int, row []TrialResult) error {
	if len(row) != len(t.Labels) {
		return &ShapeError{What: "result row", Want: len(t.Labels), Got: len(row)}
	}
	t.Sizes = append(t.Sizes, size)
	t.Rows = append(t.Rows, append([]TrialResult(nil), row...))
	return nil
}

// Len 返回行数
func (t *ResultTensor) Len() int { return len(t.Rows) }

// Methods 返回记录的方法数量
func (t *ResultTensor) Methods() int {
	if len(t.Rows) == 0 {
		return len(t.Labels)
	}
	return len(t.Rows[0])
}

// At 获取指定位置的指标值
func (t *ResultTensor) At(size, method int, m Metric) float64 {
	return t.Rows[size][method].Value(m)
}

// Group 报告分组，每个方法一条序列
type Group struct {
	Title  string
	Kind   Kind
	Metric Metric
	Labels []string
	Series [][]float64 // [method][size]
}
