// Package utils 提供 ebiten 相关的通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gonewx/dogpet/internal/interaction"
)

// Pointer 统一鼠标与触摸输入
//
// 每帧开始时调用 Update 采样一次，之后的查询都基于这次采样，
// 同一帧内多个系统看到一致的输入。实现 systems.PointerInput。
type Pointer struct {
	touchIDs []ebiten.TouchID

	x, y         int
	cursorX      int
	cursorY      int
	cursorMoved  bool
	pressed      bool
	justPressed  bool
	justReleased bool

	// 保存最后一次触摸位置（用于触摸释放时获取位置）
	lastTouchX, lastTouchY int
}

// NewPointer 创建指针输入
func NewPointer() *Pointer {
	return &Pointer{cursorX: -1, cursorY: -1}
}

// Update 采样当前帧的输入状态（每帧调用一次）
func (p *Pointer) Update() {
	p.touchIDs = ebiten.AppendTouchIDs(p.touchIDs[:0])

	cx, cy := ebiten.CursorPosition()
	p.cursorMoved = cx != p.cursorX || cy != p.cursorY
	p.cursorX, p.cursorY = cx, cy

	releasedTouches := len(inpututil.AppendJustReleasedTouchIDs(nil)) > 0

	if len(p.touchIDs) > 0 {
		// 优先使用触摸输入（移动设备）
		p.x, p.y = ebiten.TouchPosition(p.touchIDs[0])
		p.lastTouchX, p.lastTouchY = p.x, p.y
		p.pressed = true
		p.justPressed = len(inpututil.AppendJustPressedTouchIDs(nil)) > 0
		p.justReleased = false
		return
	}

	if releasedTouches {
		// 触摸释放时使用保存的最后触摸位置
		p.x, p.y = p.lastTouchX, p.lastTouchY
		p.pressed = false
		p.justPressed = false
		p.justReleased = true
		return
	}

	p.x, p.y = cx, cy
	p.pressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	p.justPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	p.justReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
}

// PointerPosition 当前指针位置（触摸优先）
func (p *Pointer) PointerPosition() (int, int) {
	return p.x, p.y
}

// IsPointerPressed 是否有指针按下（鼠标左键或触摸）
func (p *Pointer) IsPointerPressed() bool {
	return p.pressed
}

// IsPointerJustPressed 本帧是否刚按下
func (p *Pointer) IsPointerJustPressed() bool {
	return p.justPressed
}

// IsPointerJustReleased 本帧是否刚释放
func (p *Pointer) IsPointerJustReleased() bool {
	return p.justReleased
}

// TouchCount 当前按在屏幕上的手指数量
func (p *Pointer) TouchCount() int {
	return len(p.touchIDs)
}

// FeedTracker 把本帧的原始输入交给指针追踪器
//
// 触摸：先上报手指数量，单指时上报触摸位置。
// 鼠标：仅在光标移动时上报，对应浏览器的 mousemove 事件。
// blocked 返回 true 的位置（HUD 区域）不上报给追踪器。
func (p *Pointer) FeedTracker(tracker *interaction.PointerTracker, blocked func(x, y float64) bool) {
	tracker.OnTouchCount(len(p.touchIDs))

	if len(p.touchIDs) == 1 {
		x, y := float64(p.x), float64(p.y)
		if blocked == nil || !blocked(x, y) {
			tracker.OnRawInput(interaction.PointerSample{X: x, Y: y, Source: interaction.SourceTouch})
		}
		return
	}
	if len(p.touchIDs) > 1 {
		// 多指手势由追踪器抑制，这里不再上报位置
		return
	}

	if p.cursorMoved {
		x, y := float64(p.cursorX), float64(p.cursorY)
		if blocked == nil || !blocked(x, y) {
			tracker.OnRawInput(interaction.PointerSample{X: x, Y: y, Source: interaction.SourceMouse})
		}
	}
}
