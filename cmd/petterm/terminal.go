package main

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/dogpet/internal/interaction"
	"github.com/gonewx/dogpet/pkg/components"
	"github.com/gonewx/dogpet/pkg/config"
	"github.com/gonewx/dogpet/pkg/ecs"
	"github.com/gonewx/dogpet/pkg/loader"
	"github.com/gonewx/dogpet/pkg/systems"
)

// 一个字符格对应的虚拟像素，宠物世界按像素工作
// 每格用半块字符绘制上下两个采样点
const (
	cellWidth  = 8
	cellHeight = 16
)

const (
	// sidebarCols 右侧状态条区域宽度
	sidebarCols = 8
	// statusRows 底部状态行
	statusRows = 1
	// sizeStep +/- 每次调整的大小
	sizeStep = 0.1
	// farLayerShade 最远层的亮度系数
	farLayerShade = 0.7
	// minParticleAlpha 低于该透明度的粒子不绘制
	minParticleAlpha = 0.15
)

var (
	styleDefault   = tcell.StyleDefault
	styleStatus    = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
	styleError     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorMaroon)
	styleLoading   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	styleFull      = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleBarTrack  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleSparkle   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.NewRGBColor(0x4c, 0xaf, 0x50))
	progressColor  = tcell.NewRGBColor(0x4c, 0xaf, 0x50)
	happinessColor = tcell.NewRGBColor(0xff, 0x98, 0x00)
)

// Terminal 终端前端
//
// 采集鼠标和键盘事件交给 PetWorld，每 16ms 推进一帧并重绘。
// 坐标换算：字符格 (x, y) 的中心对应虚拟像素 (x*8+4, y*16+8)。
type Terminal struct {
	screen tcell.Screen
	world  *systems.PetWorld
	breeds *config.BreedListConfig

	breedIndex int
	width      int
	height     int
	button     bool

	// sortedParts 按深度层从近到远排列的部件缓存
	sortedFor   *config.PetModelConfig
	sortedParts []config.ModelPartConfig
}

// NewTerminal 创建终端前端
//
// 参数：
//   - screen: 已初始化的 tcell 屏幕（测试时用 SimulationScreen）
//   - tuning: 交互参数
//   - breeds: 品种列表
//   - ml: 模型加载器，可为 nil
//   - rng: 随机数源
func NewTerminal(screen tcell.Screen, tuning *config.PetTuningConfig, breeds *config.BreedListConfig, ml *loader.ModelLoader, rng *rand.Rand) *Terminal {
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	w, h := screen.Size()
	t := &Terminal{
		screen: screen,
		breeds: breeds,
		width:  w,
		height: h,
	}
	vw, vh := t.viewport()
	t.world = systems.NewPetWorld(tuning, ml, vw, vh, rng)
	return t
}

// World 返回宠物世界
func (t *Terminal) World() *systems.PetWorld {
	return t.world
}

// petArea 宠物绘制区域（字符格）
func (t *Terminal) petArea() (cols, rows int) {
	cols = t.width - sidebarCols
	rows = t.height - statusRows
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

// viewport 宠物区域的虚拟像素尺寸
func (t *Terminal) viewport() (int, int) {
	cols, rows := t.petArea()
	return cols * cellWidth, rows * cellHeight
}

func cellCenter(x, y int) (float64, float64) {
	return float64(x*cellWidth) + cellWidth/2, float64(y*cellHeight) + cellHeight/2
}

// SelectBreed 切换到指定品种（异步加载）
func (t *Terminal) SelectBreed(id string) {
	for i, b := range t.breeds.Breeds {
		if b.ID == id {
			t.breedIndex = i
		}
	}
	t.world.RequestBreed(id)
}

func (t *Terminal) cycleBreed() {
	if len(t.breeds.Breeds) == 0 {
		return
	}
	next := (t.breedIndex + 1) % len(t.breeds.Breeds)
	t.SelectBreed(t.breeds.Breeds[next].ID)
}

func (t *Terminal) adjustSize(delta float64) {
	surface := t.world.Surface()
	size := config.ClampSize(math.Round((surface.Scale()+delta)*10) / 10)
	surface.SetScale(size)
}

// HandleEvent 处理一个终端事件，返回 false 表示退出
func (t *Terminal) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return t.handleKey(ev)
	case *tcell.EventMouse:
		t.handleMouse(ev)
	case *tcell.EventResize:
		t.handleResize()
	}
	return true
}

func (t *Terminal) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return false
	case tcell.KeyEscape:
		t.world.Driver().Escape()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return false
		case 'f', 'F':
			t.world.Feed()
		case 'b', 'B':
			t.cycleBreed()
		case 'c', 'C':
			t.world.Surface().SetColor(t.world.RandomColor())
		case '+', '=':
			t.adjustSize(sizeStep)
		case '-', '_':
			t.adjustSize(-sizeStep)
		case 'x', 'X':
			t.world.Notifications().DismissAll()
		}
	}
	return true
}

func (t *Terminal) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	px, py := cellCenter(x, y)

	pressed := ev.Buttons()&tcell.Button1 != 0
	clicked := pressed && !t.button
	t.button = pressed
	if clicked && t.world.Notifications().HandleClick(px, py) {
		return
	}

	cols, rows := t.petArea()
	if x < 0 || y < 0 || x >= cols || y >= rows {
		return
	}
	t.world.Tracker().OnRawInput(interaction.PointerSample{X: px, Y: py, Source: interaction.SourceMouse})
}

func (t *Terminal) handleResize() {
	t.width, t.height = t.screen.Size()
	vw, vh := t.viewport()
	t.world.Surface().SetViewport(vw, vh)
	t.screen.Sync()
}

// Tick 推进一帧
func (t *Terminal) Tick() {
	t.world.Tick()
}

// Run 事件循环：事件随到随处理，约 60 FPS 推进与重绘
func (t *Terminal) Run() {
	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev := <-events:
			if !t.HandleEvent(ev) {
				log.Printf("[Terminal] 退出")
				return
			}
		case <-ticker.C:
			t.Tick()
			t.Draw()
		}
	}
}

// Draw 重绘整个屏幕
func (t *Terminal) Draw() {
	t.screen.Clear()
	t.drawPet()
	t.drawParticles()
	t.drawBars()
	t.drawNotifications()
	t.drawStatus()
	t.screen.Show()
}

// drawPet 每格取上下两个采样点，用半块字符绘制
func (t *Terminal) drawPet() {
	if !t.world.Surface().HasModel() {
		return
	}
	cols, rows := t.petArea()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			px := float64(x*cellWidth) + cellWidth/2
			top, topOK := t.colorAt(px, float64(y*cellHeight)+cellHeight/4)
			bottom, bottomOK := t.colorAt(px, float64(y*cellHeight)+cellHeight*3/4)

			switch {
			case topOK && bottomOK:
				t.screen.SetContent(x, y, '▀', nil, styleDefault.Foreground(top).Background(bottom))
			case topOK:
				t.screen.SetContent(x, y, '▀', nil, styleDefault.Foreground(top))
			case bottomOK:
				t.screen.SetContent(x, y, '▄', nil, styleDefault.Foreground(bottom))
			}
		}
	}
}

// colorAt 返回虚拟像素处最近部件的颜色
func (t *Terminal) colorAt(px, py float64) (tcell.Color, bool) {
	surface := t.world.Surface()
	pet, _, ok := surface.Pet()
	if !ok {
		return tcell.ColorDefault, false
	}
	vw, vh := surface.Viewport()
	wx, wy, ok := surface.Camera().ScreenToWorld(px, py, vw, vh)
	if !ok {
		return tcell.ColorDefault, false
	}
	lx, ly := surface.WorldToLocal(wx, wy)

	parts := t.partsByDepth(pet.Model)
	maxLayer := 0
	if len(parts) > 0 {
		maxLayer = parts[0].Layer
	}
	for _, part := range parts {
		if !systems.PartContains(part, lx, ly) {
			continue
		}
		return toTcell(partColor(part, pet.Color, maxLayer)), true
	}
	return tcell.ColorDefault, false
}

func (t *Terminal) partsByDepth(model *config.PetModelConfig) []config.ModelPartConfig {
	if t.sortedFor == model {
		return t.sortedParts
	}
	parts := make([]config.ModelPartConfig, len(model.Parts))
	copy(parts, model.Parts)
	sort.SliceStable(parts, func(i, j int) bool { return parts[i].Layer > parts[j].Layer })
	t.sortedFor, t.sortedParts = model, parts
	return parts
}

// partColor 固定颜色优先，否则使用模型颜色并按深度层变暗
func partColor(part config.ModelPartConfig, base color.RGBA, maxLayer int) color.RGBA {
	if part.Color != "" {
		if fixed, err := config.ParseHexColor(part.Color); err == nil {
			return fixed
		}
	}
	if maxLayer <= 0 {
		return base
	}
	return shade(base, farLayerShade+(1-farLayerShade)*float64(part.Layer)/float64(maxLayer))
}

func shade(c color.RGBA, k float64) color.RGBA {
	return color.RGBA{
		R: uint8(math.Min(255, float64(c.R)*k)),
		G: uint8(math.Min(255, float64(c.G)*k)),
		B: uint8(math.Min(255, float64(c.B)*k)),
		A: c.A,
	}
}

func toTcell(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// drawParticles 喂食粒子和爱心，透明度用变暗近似
func (t *Terminal) drawParticles() {
	em := t.world.EntityManager()
	surface := t.world.Surface()
	camera := surface.Camera()
	if cam := camera.Camera(); cam == nil || cam.PixelsPerUnit <= 0 {
		return
	}
	vw, vh := surface.Viewport()
	cols, rows := t.petArea()

	for _, id := range ecs.GetEntitiesWith2[*components.ParticleComponent, *components.PositionComponent](em) {
		p, _ := ecs.GetComponent[*components.ParticleComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		if p.Alpha < minParticleAlpha {
			continue
		}

		sx, sy := camera.WorldToScreen(pos.X, pos.Y, vw, vh)
		x, y := int(math.Floor(sx/cellWidth)), int(math.Floor(sy/cellHeight))
		if x < 0 || y < 0 || x >= cols || y >= rows {
			continue
		}

		ch := '■'
		if p.Kind == components.ParticleHeart {
			ch = '♥'
		}
		fg := toTcell(shade(p.Color, p.Alpha))
		_, _, style, _ := t.screen.GetContent(x, y)
		_, bg, _ := style.Decompose()
		t.screen.SetContent(x, y, ch, nil, styleDefault.Foreground(fg).Background(bg))
	}
}

// barColumns 快乐值条和进度条所在的列
func (t *Terminal) barColumns() (happinessX, progressX int) {
	progressX = t.width - 3
	return progressX - 3, progressX
}

// barRows 状态条的顶部行和高度
func (t *Terminal) barRows() (top, height int) {
	top = 1
	height = t.height - statusRows - 4
	if height < 2 {
		height = 2
	}
	return top, height
}

// drawBars 两个竖直状态条，满时显示闪光和 FULL
func (t *Terminal) drawBars() {
	frame := t.world.HUD().Frame()
	hx, px := t.barColumns()
	top, height := t.barRows()

	t.drawBar(hx, top, height, frame.HappinessHeightPercent, happinessColor)
	t.drawBar(px, top, height, frame.ProgressHeightPercent, progressColor)
	t.drawText(hx, top+height, "H", styleDefault)
	t.drawText(px, top+height, "P", styleDefault)

	em := t.world.EntityManager()
	for _, id := range ecs.GetEntitiesWith1[*components.SparkleComponent](em) {
		sp, _ := ecs.GetComponent[*components.SparkleComponent](em, id)
		if systems.SparkleIntensity(sp) < 0.5 {
			continue
		}
		x := px + int(sp.U*2)
		if x > px+1 {
			x = px + 1
		}
		y := top + int(sp.V*float64(height))
		if y >= top+height {
			y = top + height - 1
		}
		t.screen.SetContent(x, y, '✦', nil, styleSparkle)
	}

	if frame.IsFull {
		t.drawText(px-2, top+height+1, "FULL", styleFull)
	}
}

// drawBar 两列宽的竖直条，填充自底向上
func (t *Terminal) drawBar(x, top, height int, percent float64, fill tcell.Color) {
	fillY, _ := config.BarFill(float64(top), float64(height), percent)
	firstFilled := int(math.Round(fillY))
	for y := top; y < top+height; y++ {
		for dx := 0; dx < 2; dx++ {
			if y >= firstFilled {
				t.screen.SetContent(x+dx, y, '█', nil, styleDefault.Foreground(fill))
			} else {
				t.screen.SetContent(x+dx, y, '░', nil, styleBarTrack)
			}
		}
	}
}

// drawNotifications 错误消息从左上角向下排列，加载指示居中
// 消息的点击区域按虚拟像素回填
func (t *Terminal) drawNotifications() {
	em := t.world.EntityManager()
	notes := t.world.Notifications()
	cols, rows := t.petArea()

	for i, id := range notes.Errors() {
		n, _ := ecs.GetComponent[*components.NotificationComponent](em, id)
		msg := truncate(" ✕ "+n.Message+" ", cols)
		t.drawText(0, i, msg, styleError)
		n.X = 0
		n.Y = float64(i * cellHeight)
		n.Width = float64(len([]rune(msg)) * cellWidth)
		n.Height = cellHeight
	}

	if notes.IsLoading() {
		msg := " Loading... "
		x := (cols - len(msg)) / 2
		if x < 0 {
			x = 0
		}
		t.drawText(x, rows/2, msg, styleLoading)
	}
}

func (t *Terminal) drawStatus() {
	label := "-"
	if b, ok := t.breeds.Find(t.world.Surface().Breed()); ok {
		label = b.Label
	}
	state := t.world.Driver().Snapshot()
	line := fmt.Sprintf(" %s  size %.1f  happy %3.0f%%  [f]eed [b]reed [c]olor [+/-]size [x]dismiss [q]uit",
		label, t.world.Surface().Scale(), state.Happiness)

	y := t.height - 1
	for x := 0; x < t.width; x++ {
		t.screen.SetContent(x, y, ' ', nil, styleStatus)
	}
	t.drawText(0, y, truncate(line, t.width), styleStatus)
}

func (t *Terminal) drawText(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if max <= 0 {
		return ""
	}
	if len(r) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}
