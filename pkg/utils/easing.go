package utils

import "math"

// 缓动函数：输入进度 t ∈ [0, 1]，返回缓动后的进度，超出范围的输入先截断

// EaseOutCubic 三次方缓出，开始快结束慢
// f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	t = clamp01(t)
	return 1 - math.Pow(1-t, 3)
}

// EaseInOutCubic 三次方缓入缓出
func EaseInOutCubic(t float64) float64 {
	t = clamp01(t)
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EaseOutQuad 二次方缓出，比 Cubic 柔和
func EaseOutQuad(t float64) float64 {
	t = clamp01(t)
	return 1 - (1-t)*(1-t)
}

// LerpFloat 在 a 与 b 之间线性插值
func LerpFloat(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}
