package systems

import (
	"log"

	"github.com/gonewx/dogpet/pkg/components"
	"github.com/gonewx/dogpet/pkg/ecs"
)

// PointerInput UI 系统使用的指针输入接口
// 用于依赖注入，支持测试时 mock
type PointerInput interface {
	PointerPosition() (int, int)
	IsPointerPressed() bool
	IsPointerJustReleased() bool
}

// ButtonSystem 按钮交互系统
// 负责处理按钮的指针悬停、点击等交互逻辑
//
// 职责：
//   - 检测指针悬停（更新按钮状态为 UIHovered）
//   - 检测指针释放（触发 OnClick 回调）
//   - 根据 Enabled 状态决定是否响应交互
//   - 维护同组按钮的选中状态
type ButtonSystem struct {
	entityManager *ecs.EntityManager
	input         PointerInput
}

// NewButtonSystem 创建按钮交互系统
func NewButtonSystem(em *ecs.EntityManager, input PointerInput) *ButtonSystem {
	return &ButtonSystem{
		entityManager: em,
		input:         input,
	}
}

// Update 更新按钮交互状态
// 检测指针位置和释放，更新按钮状态并触发回调
func (s *ButtonSystem) Update() {
	px, py := s.input.PointerPosition()
	mouseX, mouseY := float64(px), float64(py)
	pressed := s.input.IsPointerPressed()
	released := s.input.IsPointerJustReleased()

	var clicked []func()
	for _, id := range ecs.GetEntitiesWith2[*components.ButtonComponent, *components.UIComponent](s.entityManager) {
		button, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, id)
		ui, _ := ecs.GetComponent[*components.UIComponent](s.entityManager, id)

		// 禁用状态不响应交互
		if !button.Enabled {
			ui.State = components.UIDisabled
			continue
		}

		if !inRect(mouseX, mouseY, button.X, button.Y, button.Width, button.Height) {
			ui.State = components.UINormal
			continue
		}

		switch {
		case pressed:
			ui.State = components.UIClicked
		case released:
			// 释放瞬间触发回调，回调可能修改按钮集合，延后到遍历结束再执行
			if button.OnClick != nil {
				clicked = append(clicked, button.OnClick)
			}
			ui.State = components.UIHovered
		default:
			ui.State = components.UIHovered
		}
	}

	for _, fn := range clicked {
		fn()
	}
}

// Select 选中按钮，同组其他按钮取消选中
func (s *ButtonSystem) Select(id ecs.EntityID) {
	target, ok := ecs.GetComponent[*components.ButtonComponent](s.entityManager, id)
	if !ok {
		return
	}
	for _, other := range ecs.GetEntitiesWith1[*components.ButtonComponent](s.entityManager) {
		b, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, other)
		if b.Group == target.Group && target.Group != "" {
			b.Selected = false
		}
	}
	target.Selected = true
	log.Printf("[ButtonSystem] 选中按钮: %s", target.Label)
}

// HitTest 指定位置是否落在任一 UI 元素上
// 命中 UI 的指针输入不会传递给宠物
func (s *ButtonSystem) HitTest(x, y float64) bool {
	for _, id := range ecs.GetEntitiesWith1[*components.ButtonComponent](s.entityManager) {
		b, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, id)
		if inRect(x, y, b.X, b.Y, b.Width, b.Height) {
			return true
		}
	}
	for _, id := range ecs.GetEntitiesWith1[*components.SliderComponent](s.entityManager) {
		sl, _ := ecs.GetComponent[*components.SliderComponent](s.entityManager, id)
		if sliderHit(sl, x, y) {
			return true
		}
	}
	return false
}

// inRect 检测点是否在矩形范围内
func inRect(x, y, rx, ry, rw, rh float64) bool {
	return x >= rx && x <= rx+rw && y >= ry && y <= ry+rh
}
