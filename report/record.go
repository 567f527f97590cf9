package report

import (
	"encoding/json"
	"io"

	"numdiffbench/types"

	log "github.com/sirupsen/logrus"
)

// Record 记录扫描过程，渲染为 JSON
type Record struct {
	Kind   string                `json:"kind"`             // 估计目标
	Labels []string              `json:"labels"`           // 方法标签
	Sizes  []int                 `json:"sizes"`            // 问题规模
	Rows   [][]types.TrialResult `json:"rows"`             // [size][method]
	Errors []string              `json:"errors,omitempty"` // 扫描错误
}

// Init 初始化
func (r *Record) Init(kind types.Kind, labels []string) {
	r.Kind = kind.String()
	r.Labels = append([]string(nil), labels...)
	r.Sizes, r.Rows, r.Errors = nil, nil, nil
}

// Update 记录一行结果
func (r *Record) Update(size int, row []types.TrialResult) {
	r.Sizes = append(r.Sizes, size)
	r.Rows = append(r.Rows, append([]types.TrialResult(nil), row...))
}

// Render 格式和输出内容
func (r *Record) Render(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func (r *Record) Error(err error) {
	log.WithError(err).Warn("sweep aborted")
	r.Errors = append(r.Errors, err.Error())
}

// Records 多个扫描记录，按估计目标分组输出
type Records []*Record

// Render 输出 JSON 数组
func (rs Records) Render(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rs)
}

var _ types.Recorder = (*Record)(nil)
