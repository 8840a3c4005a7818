package interaction

import "math"

// Signal 单帧输入信号
type Signal struct {
	IsOverPet  bool // 指针是否位于宠物碰撞体上
	IsMoving   bool // 指针本帧是否移动
	IsTouching bool // 是否有单指触摸按下
}

// Contact 接触 = 悬停 且 (移动 或 触摸)
func (s Signal) Contact() bool {
	return s.IsOverPet && (s.IsMoving || s.IsTouching)
}

// Step 计算一帧的状态转移（纯函数）
//
// 规则：
//   - 接触时进度增长 GrowRate（上限 PMax），否则衰减 DecayRate（下限 0）
//   - 快乐值每帧被动衰减 HappinessDecay
//   - 接触时在衰减之后再加 PetGain（上限 100）
func Step(s PetState, sig Signal, t Tuning) PetState {
	contact := sig.Contact()

	next := s
	if contact {
		next.Progress = math.Min(s.Progress+t.GrowRate, t.PMax)
	} else {
		next.Progress = math.Max(s.Progress-t.DecayRate, 0)
	}

	next.Happiness = math.Max(s.Happiness-t.HappinessDecay, 0)
	if contact {
		next.Happiness = math.Min(next.Happiness+t.PetGain, HappinessMax)
	}

	next.Progress = clamp(next.Progress, 0, t.PMax)
	next.Happiness = clamp(next.Happiness, 0, HappinessMax)
	next.IsContacted = contact
	next.IsMoving = sig.IsMoving
	return next
}

// StateMachine 交互状态机
// 持有唯一的 PetState，只能通过 Advance 和 Feed 修改
type StateMachine struct {
	tuning       Tuning
	state        PetState
	feedCooldown int // 剩余冷却帧数
}

// NewStateMachine 创建状态机
func NewStateMachine(t Tuning) *StateMachine {
	return &StateMachine{
		tuning: t,
		state:  NewPetState(t),
	}
}

// State 返回当前状态的副本
func (m *StateMachine) State() PetState {
	return m.state
}

// Tuning 返回状态机使用的参数
func (m *StateMachine) Tuning() Tuning {
	return m.tuning
}

// Advance 推进一帧，返回转移前后的状态
func (m *StateMachine) Advance(sig Signal) (prev, next PetState) {
	prev = m.state
	m.state = Step(prev, sig, m.tuning)
	if m.feedCooldown > 0 {
		m.feedCooldown--
	}
	return prev, m.state
}

// Feed 喂食：快乐值立即增加 FeedGain（上限 100）
//
// 返回：
//   - bool: 是否生效（冷却中返回 false）
func (m *StateMachine) Feed() bool {
	if m.feedCooldown > 0 {
		return false
	}
	m.state.Happiness = math.Min(m.state.Happiness+m.tuning.FeedGain, HappinessMax)
	m.feedCooldown = m.tuning.FeedCooldownFrames
	return true
}

// Reset 重新开始会话
func (m *StateMachine) Reset() {
	m.state = NewPetState(m.tuning)
	m.feedCooldown = 0
}
