package types

import "io"

// Recorder 扫描记录接口
type Recorder interface {
	Init(kind Kind, labels []string)
	Update(size int, row []TrialResult)
	Render(w io.Writer) error
	Error(err error)
}
