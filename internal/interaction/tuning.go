// Package interaction 实现宠物交互的核心逻辑
//
// 包含指针/触摸追踪、接触检测、交互状态机、特效触发器和帧驱动器。
// 本包不依赖任何渲染库：渲染表面、展示层和特效执行者均以接口形式注入，
// 因此 ebiten 窗口和终端前端可以共用同一套规则。
package interaction

// DisplayMax 进度条显示上限（百分比）
// 内部进度可以超过该值（缓冲区），但展示层永远只看到截断后的值
const DisplayMax = 100.0

// HappinessMax 快乐值上限
const HappinessMax = 100.0

// Tuning 交互模型的可调参数
//
// 所有速率都以"每帧"为单位，帧率由宿主环境决定（ebiten 默认 60 TPS）。
type Tuning struct {
	// PMax 进度内部上限（100 为严格上限，115 允许超出显示上限形成缓冲）
	PMax float64

	// GrowRate 接触时每帧进度增长量
	GrowRate float64

	// DecayRate 无接触时每帧进度衰减量
	DecayRate float64

	// HappinessDecay 每帧快乐值被动衰减量（无论是否接触）
	HappinessDecay float64

	// PetGain 接触时每帧快乐值加成（在衰减之后施加）
	PetGain float64

	// FeedGain 单次喂食的快乐值加成
	FeedGain float64

	// InitialProgress 会话开始时的进度
	InitialProgress float64

	// InitialHappiness 会话开始时的快乐值
	InitialHappiness float64

	// MoveThreshold 判定指针移动的像素阈值（严格大于）
	MoveThreshold float64

	// FeedCooldownFrames 两次喂食之间的最小帧数，0 表示不限制
	FeedCooldownFrames int

	// PetTag 宠物碰撞体的稳定标签
	PetTag string

	// PetBurstHoldFrames 接触中断不超过该帧数时不重新产生抚摸爱心
	PetBurstHoldFrames int
}

// DefaultTuning 返回默认参数
//
// 采用功能最完整的一组规则：带快乐值、支持触摸、PMax = 115。
func DefaultTuning() Tuning {
	return Tuning{
		PMax:               115,
		GrowRate:           0.5,
		DecayRate:          0.05,
		HappinessDecay:     0.02,
		PetGain:            0.1,
		FeedGain:           15,
		InitialProgress:    0,
		InitialHappiness:   50,
		MoveThreshold:      5,
		FeedCooldownFrames: 0,
		PetTag:             "dog",
		PetBurstHoldFrames: 30,
	}
}
