package systems

import (
	"github.com/gonewx/dogpet/pkg/components"
	"github.com/gonewx/dogpet/pkg/config"
	"github.com/gonewx/dogpet/pkg/ecs"
)

// SliderSystem 滑块交互系统
// 负责处理滑块的指针拖拽交互
//
// 职责：
//   - 检测指针是否在滑槽区域内
//   - 检测按下/拖拽状态
//   - 计算点击位置并转换为 0.0~1.0 的 Value
//   - 更新 SliderComponent.Value 并调用 OnValueChange 回调
type SliderSystem struct {
	entityManager *ecs.EntityManager
	input         PointerInput
}

// NewSliderSystem 创建滑块交互系统
func NewSliderSystem(em *ecs.EntityManager, input PointerInput) *SliderSystem {
	return &SliderSystem{
		entityManager: em,
		input:         input,
	}
}

// Update 更新滑块交互状态
func (s *SliderSystem) Update() {
	px, py := s.input.PointerPosition()
	mouseX, mouseY := float64(px), float64(py)
	pressed := s.input.IsPointerPressed()

	for _, id := range ecs.GetEntitiesWith1[*components.SliderComponent](s.entityManager) {
		slider, _ := ecs.GetComponent[*components.SliderComponent](s.entityManager, id)

		if !pressed {
			// 释放，停止拖拽
			slider.IsDragging = false
			continue
		}

		// 按下且在滑槽内，或者正在拖拽
		if !slider.IsDragging && !sliderHit(slider, mouseX, mouseY) {
			continue
		}
		slider.IsDragging = true

		newValue := calculateSliderValue(mouseX, slider.X, slider.Width)
		if newValue != slider.Value {
			slider.Value = newValue
			if slider.OnValueChange != nil {
				slider.OnValueChange(newValue)
			}
		}
	}
}

// IsDragging 是否有滑块正在被拖拽
func (s *SliderSystem) IsDragging() bool {
	for _, id := range ecs.GetEntitiesWith1[*components.SliderComponent](s.entityManager) {
		slider, _ := ecs.GetComponent[*components.SliderComponent](s.entityManager, id)
		if slider.IsDragging {
			return true
		}
	}
	return false
}

// sliderHit 滑槽命中区域：轨道上下各扩展一个手柄半径
func sliderHit(slider *components.SliderComponent, x, y float64) bool {
	r := config.SliderHandleRadius
	return inRect(x, y, slider.X-r, slider.Y-r, slider.Width+2*r, 2*r)
}

// calculateSliderValue 根据指针 X 坐标计算滑块值，限制在 0.0 ~ 1.0
func calculateSliderValue(mouseX, slotX, slotWidth float64) float64 {
	if slotWidth <= 0 {
		return 0.0
	}
	v := (mouseX - slotX) / slotWidth
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
