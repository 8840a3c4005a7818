package interaction

// EffectKind 特效请求类型
type EffectKind int

const (
	// EffectSparkle 进度条闪光（进入满状态）
	EffectSparkle EffectKind = iota
	// EffectSparkleClear 移除闪光（离开满状态）
	EffectSparkleClear
	// EffectFoodBurst 喂食粒子
	EffectFoodBurst
	// EffectPetBurst 抚摸粒子（在接触点）
	EffectPetBurst
)

// String 返回特效名称
func (k EffectKind) String() string {
	switch k {
	case EffectSparkle:
		return "Sparkle"
	case EffectSparkleClear:
		return "SparkleClear"
	case EffectFoodBurst:
		return "FoodBurst"
	case EffectPetBurst:
		return "PetBurst"
	default:
		return "Unknown"
	}
}

// EffectRequest 一次瞬时特效请求
// Point 仅对 PetBurst 有效
type EffectRequest struct {
	Kind  EffectKind
	Point *Point3
}

// EffectTrigger 根据状态变化产生特效请求
//
// 满状态特效只比较前后两帧。抚摸爱心只在连续 holdFrames 帧以上
// 无接触之后的第一帧接触产生，更短的中断仍属于同一次抚摸。
type EffectTrigger struct {
	holdFrames int
	// idleFrames 连续无接触帧数（达到 holdFrames+1 后不再增加）
	idleFrames int
}

// NewEffectTrigger 创建特效触发器
// holdFrames: 接触中断不超过该帧数时仍视为同一次抚摸，0 表示每个上升沿都触发
func NewEffectTrigger(holdFrames int) *EffectTrigger {
	if holdFrames < 0 {
		holdFrames = 0
	}
	return &EffectTrigger{holdFrames: holdFrames, idleFrames: holdFrames + 1}
}

// OnStateChange 检测满状态的进入/离开
func (t *EffectTrigger) OnStateChange(prev, next PetState) []EffectRequest {
	switch {
	case !prev.IsFull() && next.IsFull():
		return []EffectRequest{{Kind: EffectSparkle}}
	case prev.IsFull() && !next.IsFull():
		return []EffectRequest{{Kind: EffectSparkleClear}}
	}
	return nil
}

// OnContact 每帧调用一次；新一次抚摸开始的那一帧在接触点产生 PetBurst
func (t *EffectTrigger) OnContact(next PetState, result ContactResult) []EffectRequest {
	if !next.IsContacted {
		if t.idleFrames <= t.holdFrames {
			t.idleFrames++
		}
		return nil
	}

	fresh := t.idleFrames > t.holdFrames
	t.idleFrames = 0
	if !fresh || result.ContactPoint == nil {
		return nil
	}
	point := *result.ContactPoint
	return []EffectRequest{{Kind: EffectPetBurst, Point: &point}}
}

// OnFeed 喂食特效
func (t *EffectTrigger) OnFeed() EffectRequest {
	return EffectRequest{Kind: EffectFoodBurst}
}
