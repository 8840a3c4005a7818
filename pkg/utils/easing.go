package utils

import "math"

// Easing Functions (缓动函数)
//
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值。
// 参考：https://easings.net/

// EaseOutCubic 三次方缓出
// 特点：开始快，结束慢
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseOutBack 回弹缓出
// 特点：略微越过终点再回到 1（用于文字弹出）
func EaseOutBack(t float64) float64 {
	const c1 = 1.70158
	const c3 = c1 + 1
	return 1 + c3*math.Pow(t-1, 3) + c1*math.Pow(t-1, 2)
}

// Progress 把帧计数转换为 [0, 1] 的动画进度
func Progress(frames, total int) float64 {
	if total <= 0 || frames >= total {
		return 1
	}
	if frames <= 0 {
		return 0
	}
	return float64(frames) / float64(total)
}

// Lerp 线性插值
// 公式：result = a + (b - a) * t
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
