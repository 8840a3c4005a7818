package systems

import (
	"log"

	"github.com/gonewx/dogpet/internal/interaction"
)

// HUDSystem 状态条展示层
//
// 实现 interaction.PresentationSink：保存最近一帧的数值供渲染阶段读取，
// 只读快照，从不回写交互状态。
type HUDSystem struct {
	frame      interaction.Frame
	presented  bool
	fullFrames int // 连续处于满状态的帧数（用于"FULL"文字动画）
}

// NewHUDSystem 创建 HUD 展示层
func NewHUDSystem() *HUDSystem {
	return &HUDSystem{}
}

// Present 实现 PresentationSink
func (h *HUDSystem) Present(f interaction.Frame) {
	if f.IsFull != h.frame.IsFull && h.presented {
		log.Printf("[HUD] 满状态指示: %v", f.IsFull)
	}
	if f.IsFull {
		h.fullFrames++
	} else {
		h.fullFrames = 0
	}
	h.frame = f
	h.presented = true
}

// Frame 最近一帧的数值
func (h *HUDSystem) Frame() interaction.Frame {
	return h.frame
}

// FullFrames 连续处于满状态的帧数
func (h *HUDSystem) FullFrames() int {
	return h.fullFrames
}
