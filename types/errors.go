package types

import "fmt"

// ShapeError 维度或形状不匹配
type ShapeError struct {
	What string
	Want int
	Got  int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: shape mismatch, want %d, got %d", e.What, e.Want, e.Got)
}

// DegenerateReferenceError 参考值范数接近零，相对误差无定义
type DegenerateReferenceError struct {
	Size  int
	Label string
	Norm  float64
}

func (e *DegenerateReferenceError) Error() string {
	return fmt.Sprintf("size %d: reference %q has degenerate norm %g", e.Size, e.Label, e.Norm)
}

// EstimatorFailure 估计器在绑定或求值时失败
type EstimatorFailure struct {
	Size  int
	Label string
	Err   error
}

func (e *EstimatorFailure) Error() string {
	return fmt.Sprintf("size %d: estimator %q failed: %v", e.Size, e.Label, e.Err)
}

func (e *EstimatorFailure) Unwrap() error { return e.Err }

// LabelSymbolMismatchError 方法标签与绘图符号数量不一致
type LabelSymbolMismatchError struct {
	Title   string
	Labels  int
	Symbols int
}

func (e *LabelSymbolMismatchError) Error() string {
	return fmt.Sprintf("%s: %d methods but %d plot symbols", e.Title, e.Labels, e.Symbols)
}

// RenderError 图表渲染或写入失败
type RenderError struct {
	Title string
	File  string
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %q to %s: %v", e.Title, e.File, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
