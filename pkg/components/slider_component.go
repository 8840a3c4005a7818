package components

// SliderComponent 滑动条组件
// 用于宠物大小等需要滑动调整数值的 UI 元素
type SliderComponent struct {
	// 轨道位置（左端点，竖直居中）与宽度
	X, Y  float64
	Width float64

	// 当前值（0.0 - 1.0）
	Value float64

	// Label 标签文字
	Label string

	// 状态
	IsDragging bool

	// OnValueChange 值改变时的回调
	OnValueChange func(value float64)
}
