package components

// LifetimeComponent 管理实体的生命周期
// 用于自动清理存在帧数超过上限的实体（如抚摸爱心）
type LifetimeComponent struct {
	MaxFrames     int  // 最大存活帧数
	CurrentFrames int  // 已存在帧数
	IsExpired     bool // 是否已过期
}
