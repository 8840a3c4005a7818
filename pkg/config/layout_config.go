package config

// 布局配置常量
// 本文件定义了窗口尺寸和 HUD 元素（状态条、工具栏、提示）的位置参数
// 所有坐标为屏幕坐标（相对于窗口左上角）

// Window Configuration (窗口配置)
const (
	// WindowWidth 默认窗口宽度
	WindowWidth = 960

	// WindowHeight 默认窗口高度
	WindowHeight = 640

	// WindowTitle 窗口标题
	WindowTitle = "Dog Pet"

	// HUDMargin 是 HUD 元素距窗口边缘的距离
	HUDMargin = 16.0
)

// Status Bars (状态条配置)
// 进度条和快乐值条竖直放置在窗口右上角，进度条在最右侧
const (
	// BarWidth 是状态条宽度
	BarWidth = 24.0

	// BarHeight 是状态条高度（对应 100%）
	BarHeight = 220.0

	// BarGap 是两个状态条之间的间距
	BarGap = 12.0

	// FullTextOffsetY 是"FULL"文字在进度条下方的偏移
	FullTextOffsetY = 8.0
)

// Toolbar (底部工具栏配置)
const (
	// ButtonWidth 是品种/喂食按钮宽度
	ButtonWidth = 104.0

	// ButtonHeight 是按钮高度
	ButtonHeight = 36.0

	// ButtonGap 是按钮间距
	ButtonGap = 8.0

	// SwatchSize 是颜色色块边长
	SwatchSize = 28.0

	// SliderWidth 是大小滑块的轨道宽度
	SliderWidth = 160.0

	// SliderHandleRadius 是滑块手柄半径
	SliderHandleRadius = 9.0
)

// Pet Size (宠物大小滑块范围)
const (
	SizeMin     = 0.5
	SizeMax     = 2.0
	SizeDefault = 1.0
)

// ProgressBarRect 返回进度条的屏幕矩形
//
// 参数：
//   - screenW: 当前窗口宽度
//
// 返回：
//   - x, y, w, h: 状态条外框（100% 高度）
func ProgressBarRect(screenW int) (x, y, w, h float64) {
	return float64(screenW) - HUDMargin - BarWidth, HUDMargin, BarWidth, BarHeight
}

// HappinessBarRect 返回快乐值条的屏幕矩形（位于进度条左侧）
func HappinessBarRect(screenW int) (x, y, w, h float64) {
	px, py, pw, ph := ProgressBarRect(screenW)
	return px - BarGap - pw, py, pw, ph
}

// BarFill 计算状态条填充部分
// 填充从底部向上生长，percent 超出 [0,100] 时截断
//
// 返回：
//   - fillY: 填充区域顶部 Y
//   - fillH: 填充高度
func BarFill(barY, barH, percent float64) (fillY, fillH float64) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	fillH = barH * percent / 100
	return barY + barH - fillH, fillH
}

// ToolbarY 返回底部工具栏顶部 Y
func ToolbarY(screenH int) float64 {
	return float64(screenH) - HUDMargin - ButtonHeight
}

// ClampSize 将大小限制在滑块范围内
func ClampSize(s float64) float64 {
	if s < SizeMin {
		return SizeMin
	}
	if s > SizeMax {
		return SizeMax
	}
	return s
}

// SizeToSlider 将大小映射为滑块位置 [0,1]
func SizeToSlider(s float64) float64 {
	return (ClampSize(s) - SizeMin) / (SizeMax - SizeMin)
}

// SliderToSize 将滑块位置 [0,1] 映射为大小
func SliderToSize(t float64) float64 {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return SizeMin + t*(SizeMax-SizeMin)
}
