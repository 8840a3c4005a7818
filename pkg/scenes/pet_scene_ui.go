package scenes

import (
	"image/color"

	"github.com/gonewx/dogpet/pkg/components"
	"github.com/gonewx/dogpet/pkg/config"
	"github.com/gonewx/dogpet/pkg/ecs"
	"github.com/gonewx/dogpet/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// breedGroup 品种按钮组
const breedGroup = "breed"

// swatchColors 颜色选择色块
var swatchColors = []color.RGBA{
	{R: 0x8b, G: 0x45, B: 0x13, A: 0xff}, // 棕
	{R: 0xd2, G: 0x9b, B: 0x4a, A: 0xff}, // 金
	{R: 0xf5, G: 0xf0, B: 0xe6, A: 0xff}, // 奶白
	{R: 0x2b, G: 0x2b, B: 0x2b, A: 0xff}, // 黑
	{R: 0x9e, G: 0x9e, B: 0x9e, A: 0xff}, // 灰
	{R: 0xc0, G: 0x5a, B: 0x2e, A: 0xff}, // 红棕
}

// UI 颜色
var (
	buttonColor         = color.RGBA{R: 0x3a, G: 0x4a, B: 0x6b, A: 0xff}
	buttonHoverColor    = color.RGBA{R: 0x4c, G: 0x61, B: 0x8c, A: 0xff}
	buttonPressedColor  = color.RGBA{R: 0x2c, G: 0x38, B: 0x52, A: 0xff}
	buttonSelectedColor = color.RGBA{R: 0xff, G: 0xc1, B: 0x07, A: 0xff}
	feedButtonColor     = color.RGBA{R: 0x2e, G: 0x7d, B: 0x32, A: 0xff}
	labelColor          = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	sliderTrackColor    = color.RGBA{R: 0xcf, G: 0xd8, B: 0xdc, A: 0xff}
	sliderHandleColor   = color.RGBA{R: 0xff, G: 0xc1, B: 0x07, A: 0xff}
)

// rect 屏幕矩形
type rect struct {
	X, Y, W, H float64
}

// toolbarLayout 底部工具栏布局
// 上排：品种按钮 + 喂食按钮；下排：颜色色块 + 大小滑块
type toolbarLayout struct {
	Breeds   []rect
	Feed     rect
	Swatches []rect
	// 滑块轨道左端点（竖直居中）与宽度
	SliderX, SliderY, SliderW float64
}

// computeToolbarLayout 计算工具栏布局
//
// 参数：
//   - breeds: 品种按钮数量
//   - swatches: 色块数量
//   - screenH: 窗口高度
//   - scale: UI 缩放（移动端放大）
func computeToolbarLayout(breeds, swatches, screenH int, scale float64) toolbarLayout {
	bw, bh := config.ButtonWidth*scale, config.ButtonHeight*scale
	gap := config.ButtonGap * scale
	sw := config.SwatchSize * scale

	bottomY := float64(screenH) - config.HUDMargin - bh
	topY := bottomY - bh - gap

	var l toolbarLayout
	x := config.HUDMargin
	for i := 0; i < breeds; i++ {
		l.Breeds = append(l.Breeds, rect{X: x, Y: topY, W: bw, H: bh})
		x += bw + gap
	}
	l.Feed = rect{X: x + gap, Y: topY, W: bw, H: bh}

	x = config.HUDMargin
	swatchY := bottomY + (bh-sw)/2
	for i := 0; i < swatches; i++ {
		l.Swatches = append(l.Swatches, rect{X: x, Y: swatchY, W: sw, H: sw})
		x += sw + gap
	}

	// 色块与滑块之间留出标签位置
	l.SliderX = x + gap + sliderLabelWidth*scale
	l.SliderY = bottomY + bh/2
	l.SliderW = config.SliderWidth * scale
	return l
}

// sliderLabelWidth 滑块左侧 "Size" 标签宽度
const sliderLabelWidth = 44.0

func uiScale() float64 {
	if utils.IsMobile() {
		return 1.5
	}
	return 1
}

// createUI 创建按钮和滑块实体
func (s *PetScene) createUI() {
	em := s.world.EntityManager()

	if s.breeds != nil {
		for _, b := range s.breeds.Breeds {
			breed := b.ID
			label := b.Label
			if label == "" {
				label = breed
			}
			id := em.CreateEntity()
			ecs.AddComponent(em, id, &components.ButtonComponent{
				Label:   label,
				Group:   breedGroup,
				Enabled: true,
				OnClick: func() { s.selectBreed(breed) },
			})
			ecs.AddComponent(em, id, &components.UIComponent{State: components.UINormal})
			s.breedButtons = append(s.breedButtons, id)
		}
	}

	s.feedButton = em.CreateEntity()
	ecs.AddComponent(em, s.feedButton, &components.ButtonComponent{
		Label:   "Feed (F)",
		Enabled: true,
		OnClick: s.feed,
	})
	ecs.AddComponent(em, s.feedButton, &components.UIComponent{State: components.UINormal})

	for _, c := range swatchColors {
		c := c
		id := em.CreateEntity()
		ecs.AddComponent(em, id, &components.ButtonComponent{
			Fill:    c,
			Enabled: true,
			OnClick: func() { s.selectColor(c) },
		})
		ecs.AddComponent(em, id, &components.UIComponent{State: components.UINormal})
		s.swatchButtons = append(s.swatchButtons, id)
	}

	s.sizeSlider = em.CreateEntity()
	ecs.AddComponent(em, s.sizeSlider, &components.SliderComponent{
		Label:         "Size",
		Value:         config.SizeToSlider(s.world.Surface().Scale()),
		OnValueChange: s.setSize,
	})

	s.layoutUI()
}

// layoutUI 按当前窗口尺寸摆放 UI
func (s *PetScene) layoutUI() {
	em := s.world.EntityManager()
	l := computeToolbarLayout(len(s.breedButtons), len(s.swatchButtons), s.height, uiScale())

	place := func(id ecs.EntityID, r rect) {
		if b, ok := ecs.GetComponent[*components.ButtonComponent](em, id); ok {
			b.X, b.Y, b.Width, b.Height = r.X, r.Y, r.W, r.H
		}
	}
	for i, id := range s.breedButtons {
		place(id, l.Breeds[i])
	}
	place(s.feedButton, l.Feed)
	for i, id := range s.swatchButtons {
		place(id, l.Swatches[i])
	}
	if sl, ok := ecs.GetComponent[*components.SliderComponent](em, s.sizeSlider); ok {
		sl.X, sl.Y, sl.Width = l.SliderX, l.SliderY, l.SliderW
	}
}

// syncBreedSelection 高亮当前显示的品种
func (s *PetScene) syncBreedSelection() {
	current := s.world.Surface().Breed()
	if current == "" || s.breeds == nil {
		return
	}
	em := s.world.EntityManager()
	for i, id := range s.breedButtons {
		if s.breeds.Breeds[i].ID != current {
			continue
		}
		if b, ok := ecs.GetComponent[*components.ButtonComponent](em, id); ok && !b.Selected {
			s.buttons.Select(id)
		}
		return
	}
}

// drawUI 绘制按钮和滑块
func (s *PetScene) drawUI(screen *ebiten.Image) {
	em := s.world.EntityManager()

	for _, id := range ecs.GetEntitiesWith2[*components.ButtonComponent, *components.UIComponent](em) {
		b, _ := ecs.GetComponent[*components.ButtonComponent](em, id)
		ui, _ := ecs.GetComponent[*components.UIComponent](em, id)
		s.drawButton(screen, b, ui, id == s.feedButton)
	}

	if sl, ok := ecs.GetComponent[*components.SliderComponent](em, s.sizeSlider); ok {
		s.drawSlider(screen, sl)
	}
}

func (s *PetScene) drawButton(screen *ebiten.Image, b *components.ButtonComponent, ui *components.UIComponent, isFeed bool) {
	x, y, w, h := float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height)

	// 色块按钮
	if b.Label == "" {
		vector.DrawFilledRect(screen, x, y, w, h, b.Fill, false)
		if ui.State == components.UIHovered || ui.State == components.UIClicked {
			vector.StrokeRect(screen, x-2, y-2, w+4, h+4, 2, labelColor, false)
		}
		return
	}

	fill := buttonColor
	if isFeed {
		fill = feedButtonColor
	}
	switch ui.State {
	case components.UIHovered:
		fill = buttonHoverColor
	case components.UIClicked:
		fill = buttonPressedColor
	}
	vector.DrawFilledRect(screen, x, y, w, h, fill, false)
	if b.Selected {
		vector.StrokeRect(screen, x, y, w, h, 3, buttonSelectedColor, false)
	}

	if s.labelFont != nil {
		tw, th := text.Measure(b.Label, s.labelFont, 0)
		op := &text.DrawOptions{}
		op.GeoM.Translate(b.X+(b.Width-tw)/2, b.Y+(b.Height-th)/2)
		op.ColorScale.ScaleWithColor(labelColor)
		text.Draw(screen, b.Label, s.labelFont, op)
	}
}

func (s *PetScene) drawSlider(screen *ebiten.Image, sl *components.SliderComponent) {
	if s.labelFont != nil && sl.Label != "" {
		_, th := text.Measure(sl.Label, s.labelFont, 0)
		op := &text.DrawOptions{}
		op.GeoM.Translate(sl.X-sliderLabelWidth*uiScale(), sl.Y-th/2)
		op.ColorScale.ScaleWithColor(labelColor)
		text.Draw(screen, sl.Label, s.labelFont, op)
	}

	vector.StrokeLine(screen, float32(sl.X), float32(sl.Y), float32(sl.X+sl.Width), float32(sl.Y), 4, sliderTrackColor, true)
	hx := float32(sl.X + sl.Width*sl.Value)
	vector.DrawFilledCircle(screen, hx, float32(sl.Y), float32(config.SliderHandleRadius), sliderHandleColor, true)
}
