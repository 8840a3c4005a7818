package components

import "image/color"

// ParticleKind 粒子外观
type ParticleKind int

const (
	// ParticleFood 喂食粒子（小方块）
	ParticleFood ParticleKind = iota
	// ParticleHeart 抚摸粒子（爱心）
	ParticleHeart
)

// ParticleComponent 单个粒子的运行时状态
//
// 纯数据组件，由 EffectSystem 每帧推进，位置保存在 PositionComponent 中。
// 所有速率单位为"每帧"。
type ParticleComponent struct {
	Kind ParticleKind

	// 速度（模型单位/帧）
	VelocityX float64
	VelocityY float64

	// 旋转（弧度）
	Rotation      float64
	RotationSpeed float64

	// Size 边长（模型单位）
	Size float64

	// 透明度 0-1，降到 0 后粒子被移除
	Alpha     float64
	AlphaFade float64

	Color color.RGBA
}
