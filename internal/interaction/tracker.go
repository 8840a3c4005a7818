package interaction

import "math"

// SourceKind 指针来源
type SourceKind int

const (
	// SourceMouse 鼠标
	SourceMouse SourceKind = iota
	// SourceTouch 单指触摸
	SourceTouch
)

// String 返回来源名称
func (k SourceKind) String() string {
	switch k {
	case SourceMouse:
		return "mouse"
	case SourceTouch:
		return "touch"
	default:
		return "unknown"
	}
}

// PointerSample 一次原始输入采样（设备像素坐标）
type PointerSample struct {
	X, Y   float64
	Source SourceKind
}

// PointerTracker 将鼠标和单指触摸统一为"指针位置 + 是否移动"信号
//
// 移动是边沿触发的：只在观察到超过阈值的位移的那一帧为 true，
// 每帧结束时由 EndFrame 清零。
type PointerTracker struct {
	threshold float64

	current      PointerSample
	lastPosition PointerSample // 上次判定为移动时的位置
	moving       bool

	touching   bool // 单指按下
	multiTouch bool // 多指手势进行中（被抑制）
}

// NewPointerTracker 创建追踪器
// threshold: 移动阈值（设备像素，严格大于才算移动）
func NewPointerTracker(threshold float64) *PointerTracker {
	return &PointerTracker{threshold: threshold}
}

// OnRawInput 接收一次原始输入
func (t *PointerTracker) OnRawInput(s PointerSample) {
	switch s.Source {
	case SourceTouch:
		if t.multiTouch {
			return
		}
	case SourceMouse:
		// 手指按下时触摸独占指针，忽略浏览器/系统合成的鼠标事件
		if t.touching {
			return
		}
	}

	t.current = s
	if math.Abs(s.X-t.lastPosition.X) > t.threshold || math.Abs(s.Y-t.lastPosition.Y) > t.threshold {
		t.moving = true
		t.lastPosition = s
	}
}

// OnTouchCount 更新当前按下的手指数量
//
// n == 0: 手指抬起；n == 1: 单指触摸；n > 1: 多指手势，触摸被抑制直到全部抬起
func (t *PointerTracker) OnTouchCount(n int) {
	switch {
	case n <= 0:
		t.touching = false
		t.multiTouch = false
	case n == 1:
		if !t.multiTouch {
			t.touching = true
		}
	default:
		t.touching = false
		t.multiTouch = true
	}
}

// CurrentPointer 返回最近一次被接受的采样
func (t *PointerTracker) CurrentPointer() PointerSample {
	return t.current
}

// IsMoving 本帧是否观察到超过阈值的移动
func (t *PointerTracker) IsMoving() bool {
	return t.moving
}

// IsTouching 是否有单指触摸按下
func (t *PointerTracker) IsTouching() bool {
	return t.touching
}

// EndFrame 帧结束时调用，清除边沿触发的移动标志
func (t *PointerTracker) EndFrame() {
	t.moving = false
}
