package components

import (
	"image/color"

	"github.com/gonewx/dogpet/pkg/config"
)

// PetComponent 已加载的宠物模型
// 场景中最多存在一个带此组件的实体
type PetComponent struct {
	Breed  string
	Model  *config.PetModelConfig
	HitTag string

	// Color 当前模型颜色，部件未指定固定颜色时使用
	Color color.RGBA

	// Size 用户设置的大小倍数（滑块），与 Model.Scale 相乘
	Size float64
}

// PetPoseComponent 宠物的纯视觉姿态，不影响交互状态
type PetPoseComponent struct {
	// Rotation 摇摆角度（弧度），抚摸时及中断后的短暂回落期间非零
	Rotation float64
	// WiggleFrames 摇摆相位帧计数，每帧递增
	WiggleFrames int
	// SinceContact 距最近一次接触的帧数（封顶）
	SinceContact int

	// 喂食跳跃
	HopOffset    float64 // 当前抬高（模型单位）
	HopRemaining int     // 剩余帧数
	HopTotal     int     // 总帧数
}
