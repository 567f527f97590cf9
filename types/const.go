package types

// 默认参数常量定义
var (
	Floor          = 1e-16  // 结果下限，避免对数坐标出现零值
	ProbeValue     = 3.0    // 求值点各分量取值
	DegenerateNorm = 1e-300 // 参考值范数下限
	DefaultOrder   = 2      // 差分公式误差阶
	AdaptiveSteps  = 14     // 自适应步长数量
	StepRatio      = 1.6    // 自适应步长比例
	StepOffset     = 0      // 步长偏移
	DefaultSizes   = []int{4, 8, 16, 32, 64, 96}
)
