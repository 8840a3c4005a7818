package components

import "image/color"

// ButtonComponent 按钮组件
// 包含按钮的所有数据：位置、文字、状态、回调
//
// 设计原则：
//   - 纯数据组件，不包含任何方法
//   - Fill 非零时按色块绘制（颜色选择），否则按文字按钮绘制
type ButtonComponent struct {
	// 屏幕矩形（左上角 + 尺寸）
	X, Y          float64
	Width, Height float64

	// Label 按钮文字，色块按钮为空
	Label string
	// Fill 色块颜色
	Fill color.RGBA

	// Group 同组按钮中最多一个处于选中状态（如品种按钮）
	Group    string
	Selected bool

	Enabled bool

	// OnClick 点击回调函数
	OnClick func()
}
