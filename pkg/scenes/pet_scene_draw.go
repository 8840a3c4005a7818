package scenes

import (
	"bytes"
	"image"
	"image/color"
	"log"
	"math"
	"sort"

	"github.com/gonewx/dogpet/pkg/components"
	"github.com/gonewx/dogpet/pkg/config"
	"github.com/gonewx/dogpet/pkg/ecs"
	"github.com/gonewx/dogpet/pkg/systems"
	"github.com/gonewx/dogpet/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// 绘制颜色
var (
	backgroundColor   = color.RGBA{R: 0xe8, G: 0xf4, B: 0xf8, A: 0xff}
	groundColor       = color.RGBA{R: 0xa5, G: 0xd6, B: 0xa7, A: 0xff}
	barFrameColor     = color.RGBA{R: 0x37, G: 0x47, B: 0x4f, A: 0xff}
	barEmptyColor     = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xb0}
	progressFillColor = color.RGBA{R: 0x4c, G: 0xaf, B: 0x50, A: 0xff}
	happyFillColor    = color.RGBA{R: 0xff, G: 0x98, B: 0x00, A: 0xff}
	fullTextColor     = color.RGBA{R: 0xff, G: 0xc1, B: 0x07, A: 0xff}
	errorBoxColor     = color.NRGBA{R: 0xc6, G: 0x28, B: 0x28, A: 0xe6}
	loadingBoxColor   = color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xb3}
)

const (
	// ellipseSegments 椭圆和胶囊端部的采样段数
	ellipseSegments = 32
	// farLayerShade 最远层部件的亮度系数
	farLayerShade = 0.8
	// fullPopFrames "FULL" 文字弹出动画帧数
	fullPopFrames = 20
	// notificationPadding 提示框内边距
	notificationPadding = 8.0
)

var whiteSubImage *ebiten.Image

// solidImage 1×1 白色纹理，用于 DrawTriangles 填充
func solidImage() *ebiten.Image {
	if whiteSubImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// loadFonts 加载内置字体，失败时返回 nil（不绘制文字）
func loadFonts() (label, full *text.GoTextFace) {
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Printf("[PetScene] Warning: failed to load font: %v", err)
		return nil, nil
	}
	bold, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		log.Printf("[PetScene] Warning: failed to load bold font: %v", err)
		bold = regular
	}
	scale := uiScale()
	return &text.GoTextFace{Source: regular, Size: 15 * scale}, &text.GoTextFace{Source: bold, Size: 22 * scale}
}

// Draw 绘制场景
func (s *PetScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	s.drawGround(screen)
	s.drawPet(screen)
	s.drawParticles(screen)
	s.drawBars(screen)
	s.drawUI(screen)
	s.drawNotifications(screen)
}

// drawGround 宠物脚下的地面
func (s *PetScene) drawGround(screen *ebiten.Image) {
	_, minY, _, _, ok := s.modelBounds()
	if !ok {
		return
	}
	_, gy := s.world.Surface().LocalToScreen(0, minY)
	if gy >= float64(s.height) {
		return
	}
	vector.DrawFilledRect(screen, 0, float32(gy), float32(s.width), float32(float64(s.height)-gy), groundColor, false)
}

func (s *PetScene) modelBounds() (minX, minY, maxX, maxY float64, ok bool) {
	pet, _, ok := s.world.Surface().Pet()
	if !ok {
		return 0, 0, 0, 0, false
	}
	minX, minY, maxX, maxY = pet.Model.Bounds()
	return minX, minY, maxX, maxY, true
}

// drawPet 按深度层从远到近绘制部件
func (s *PetScene) drawPet(screen *ebiten.Image) {
	surface := s.world.Surface()
	pet, _, ok := surface.Pet()
	if !ok {
		return
	}

	parts := make([]config.ModelPartConfig, len(pet.Model.Parts))
	copy(parts, pet.Model.Parts)
	sort.SliceStable(parts, func(i, j int) bool { return parts[i].Layer < parts[j].Layer })

	maxLayer := 0
	for _, p := range parts {
		if p.Layer > maxLayer {
			maxLayer = p.Layer
		}
	}

	for _, part := range parts {
		c := pet.Color
		if part.Color != "" {
			if fixed, err := config.ParseHexColor(part.Color); err == nil {
				c = fixed
			}
		} else if maxLayer > 0 {
			c = shade(c, farLayerShade+(1-farLayerShade)*float64(part.Layer)/float64(maxLayer))
		}

		local := partOutline(part)
		pts := make([][2]float64, len(local))
		for i, p := range local {
			pts[i][0], pts[i][1] = surface.LocalToScreen(p[0], p[1])
		}
		fillPolygon(screen, pts, c)
	}
}

// drawParticles 绘制喂食粒子和爱心
func (s *PetScene) drawParticles(screen *ebiten.Image) {
	em := s.world.EntityManager()
	camera := s.world.Surface().Camera()
	cam := camera.Camera()
	if cam == nil || cam.PixelsPerUnit <= 0 {
		return
	}

	for _, id := range ecs.GetEntitiesWith2[*components.ParticleComponent, *components.PositionComponent](em) {
		p, _ := ecs.GetComponent[*components.ParticleComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)

		sx, sy := camera.WorldToScreen(pos.X, pos.Y, s.width, s.height)
		size := p.Size * cam.PixelsPerUnit
		c := withAlpha(p.Color, p.Alpha)

		switch p.Kind {
		case components.ParticleHeart:
			fillPolygon(screen, heartOutline(sx, sy, size), c)
		default:
			fillPolygon(screen, squareOutline(sx, sy, size, p.Rotation), c)
		}
	}
}

// drawBars 绘制进度条、快乐值条、闪光和 "FULL" 文字
func (s *PetScene) drawBars(screen *ebiten.Image) {
	frame := s.world.HUD().Frame()

	px, py, pw, ph := config.ProgressBarRect(s.width)
	drawBar(screen, px, py, pw, ph, frame.ProgressHeightPercent, progressFillColor)

	hx, hy, hw, hh := config.HappinessBarRect(s.width)
	drawBar(screen, hx, hy, hw, hh, frame.HappinessHeightPercent, happyFillColor)

	em := s.world.EntityManager()
	for _, id := range ecs.GetEntitiesWith1[*components.SparkleComponent](em) {
		sp, _ := ecs.GetComponent[*components.SparkleComponent](em, id)
		intensity := systems.SparkleIntensity(sp)
		if intensity <= 0 {
			continue
		}
		x := float32(px + sp.U*pw)
		y := float32(py + sp.V*ph)
		vector.DrawFilledCircle(screen, x, y, float32(1+3*intensity), withAlpha(color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, intensity), true)
	}

	if frame.IsFull && s.fullFont != nil {
		t := utils.EaseOutBack(utils.Progress(s.world.HUD().FullFrames(), fullPopFrames))
		const label = "FULL"
		tw, _ := text.Measure(label, s.fullFont, 0)
		op := &text.DrawOptions{}
		op.GeoM.Translate(-tw/2, 0)
		op.GeoM.Scale(t, t)
		op.GeoM.Translate(px+pw/2, py+ph+config.FullTextOffsetY)
		op.ColorScale.ScaleWithColor(fullTextColor)
		text.Draw(screen, label, s.fullFont, op)
	}
}

func drawBar(screen *ebiten.Image, x, y, w, h, percent float64, fill color.Color) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), barEmptyColor, false)
	fy, fh := config.BarFill(y, h, percent)
	if fh > 0 {
		vector.DrawFilledRect(screen, float32(x), float32(fy), float32(w), float32(fh), fill, false)
	}
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 2, barFrameColor, false)
}

// drawNotifications 左上角错误消息（点击关闭）和居中的加载指示
// 错误框的位置回填到组件中，供点击测试使用
func (s *PetScene) drawNotifications(screen *ebiten.Image) {
	em := s.world.EntityManager()
	y := config.HUDMargin

	for _, id := range ecs.GetEntitiesWith1[*components.NotificationComponent](em) {
		n, _ := ecs.GetComponent[*components.NotificationComponent](em, id)

		tw, th := 240.0, 16.0
		if s.labelFont != nil {
			tw, th = text.Measure(n.Message, s.labelFont, 0)
		}
		w, h := tw+2*notificationPadding, th+2*notificationPadding

		if n.Kind == components.NotificationLoading {
			x := (float64(s.width) - w) / 2
			ly := (float64(s.height) - h) / 2
			vector.DrawFilledRect(screen, float32(x), float32(ly), float32(w), float32(h), loadingBoxColor, false)
			s.drawLabel(screen, n.Message, x+notificationPadding, ly+notificationPadding)
			continue
		}

		n.X, n.Y, n.Width, n.Height = config.HUDMargin, y, w, h
		vector.DrawFilledRect(screen, float32(n.X), float32(n.Y), float32(w), float32(h), errorBoxColor, false)
		s.drawLabel(screen, n.Message, n.X+notificationPadding, n.Y+notificationPadding)
		y += h + notificationPadding
	}
}

func (s *PetScene) drawLabel(screen *ebiten.Image, msg string, x, y float64) {
	if s.labelFont == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(labelColor)
	text.Draw(screen, msg, s.labelFont, op)
}

// fillPolygon 填充屏幕坐标多边形
func fillPolygon(screen *ebiten.Image, pts [][2]float64, clr color.Color) {
	c := color.NRGBAModel.Convert(clr).(color.NRGBA)
	if len(pts) < 3 || c.A == 0 {
		return
	}

	var path vector.Path
	path.MoveTo(float32(pts[0][0]), float32(pts[0][1]))
	for _, p := range pts[1:] {
		path.LineTo(float32(p[0]), float32(p[1]))
	}
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	r, g, b, a := float32(c.R)/0xff, float32(c.G)/0xff, float32(c.B)/0xff, float32(c.A)/0xff
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR, vs[i].ColorG, vs[i].ColorB, vs[i].ColorA = r, g, b, a
	}

	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true
	op.FillRule = ebiten.FillRuleNonZero
	screen.DrawTriangles(vs, is, solidImage(), op)
}

// partOutline 部件轮廓（模型局部坐标）
func partOutline(p config.ModelPartConfig) [][2]float64 {
	switch p.Shape {
	case config.ShapeEllipse:
		pts := make([][2]float64, 0, ellipseSegments)
		for i := 0; i < ellipseSegments; i++ {
			a := 2 * math.Pi * float64(i) / ellipseSegments
			pts = append(pts, [2]float64{p.X + math.Cos(a)*p.Width/2, p.Y + math.Sin(a)*p.Height/2})
		}
		return pts
	case config.ShapeRect:
		hw, hh := p.Width/2, p.Height/2
		return [][2]float64{
			{p.X - hw, p.Y - hh},
			{p.X + hw, p.Y - hh},
			{p.X + hw, p.Y + hh},
			{p.X - hw, p.Y + hh},
		}
	case config.ShapeCapsule:
		return capsuleOutline(p.X, p.Y, p.X2, p.Y2, p.Radius)
	}
	return nil
}

// capsuleOutline 线段两端各接半圆
func capsuleOutline(x1, y1, x2, y2, r float64) [][2]float64 {
	angle := math.Atan2(y2-y1, x2-x1)
	half := ellipseSegments / 2
	pts := make([][2]float64, 0, 2*(half+1))
	for i := 0; i <= half; i++ {
		a := angle - math.Pi/2 + math.Pi*float64(i)/float64(half)
		pts = append(pts, [2]float64{x2 + math.Cos(a)*r, y2 + math.Sin(a)*r})
	}
	for i := 0; i <= half; i++ {
		a := angle + math.Pi/2 + math.Pi*float64(i)/float64(half)
		pts = append(pts, [2]float64{x1 + math.Cos(a)*r, y1 + math.Sin(a)*r})
	}
	return pts
}

// heartOutline 屏幕坐标的爱心，size 为宽度
func heartOutline(cx, cy, size float64) [][2]float64 {
	k := size / 32
	pts := make([][2]float64, 0, ellipseSegments)
	for i := 0; i < ellipseSegments; i++ {
		t := 2 * math.Pi * float64(i) / ellipseSegments
		x := 16 * math.Pow(math.Sin(t), 3)
		y := 13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t)
		pts = append(pts, [2]float64{cx + x*k, cy - y*k})
	}
	return pts
}

// squareOutline 绕中心旋转的正方形
func squareOutline(cx, cy, size, rotation float64) [][2]float64 {
	h := size / 2
	sin, cos := math.Sincos(rotation)
	corners := [][2]float64{{-h, -h}, {h, -h}, {h, h}, {-h, h}}
	for i, c := range corners {
		corners[i] = [2]float64{cx + c[0]*cos - c[1]*sin, cy + c[0]*sin + c[1]*cos}
	}
	return corners
}

// shade 按系数调整亮度
func shade(c color.RGBA, k float64) color.RGBA {
	scale := func(v uint8) uint8 {
		return uint8(math.Max(0, math.Min(255, float64(v)*k)))
	}
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
}

// withAlpha 按透明度缩放 alpha（0-1），返回非预乘颜色
func withAlpha(c color.RGBA, alpha float64) color.NRGBA {
	alpha = math.Max(0, math.Min(1, alpha))
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(float64(c.A) * alpha)}
}
