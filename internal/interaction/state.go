package interaction

import "math"

// PetState 宠物的交互状态
//
// 由 StateMachine 独占持有，每帧更新一次，喂食时额外更新。
// 从不持久化，会话开始时由 NewPetState 重建。
type PetState struct {
	Progress    float64 // 进度 ∈ [0, PMax]
	Happiness   float64 // 快乐值 ∈ [0, 100]
	IsContacted bool    // 本帧是否处于接触（悬停且移动/触摸）
	IsMoving    bool    // 本帧指针是否移动
}

// NewPetState 按参数创建初始状态
func NewPetState(t Tuning) PetState {
	return PetState{
		Progress:  clamp(t.InitialProgress, 0, t.PMax),
		Happiness: clamp(t.InitialHappiness, 0, HappinessMax),
	}
}

// DisplayProgress 返回截断到显示上限的进度
func (s PetState) DisplayProgress() float64 {
	return math.Min(s.Progress, DisplayMax)
}

// IsFull 判断是否处于"满"状态（使用截断后的显示值）
func (s PetState) IsFull() bool {
	return s.DisplayProgress() >= DisplayMax
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
