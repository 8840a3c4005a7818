package components

// PositionComponent 实体位置（模型坐标，Y 轴向上）
// Z 为深度，仅用于绘制排序
type PositionComponent struct {
	X float64
	Y float64
	Z float64
}
