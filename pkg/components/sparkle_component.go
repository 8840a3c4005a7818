package components

// SparkleComponent 进度条上的闪光标记
//
// 位置以进度条外框为参考：U 横向 0-1，V 纵向 0-1（0 为顶部）。
// 标记在 Delay 帧后开始闪烁，此后按 Period 循环，直到收到清除请求。
type SparkleComponent struct {
	U, V   float64
	Delay  int // 剩余延迟帧数
	Phase  int // 当前闪烁相位（帧）
	Period int // 闪烁周期（帧）
}
