package systems

import (
	"image/color"
	"log"
	"math"
	"sort"

	"github.com/gonewx/dogpet/internal/interaction"
	"github.com/gonewx/dogpet/pkg/components"
	"github.com/gonewx/dogpet/pkg/config"
	"github.com/gonewx/dogpet/pkg/ecs"
)

const (
	// wiggleFrequency 摇摆角频率（弧度/帧），相当于 0.005 弧度/毫秒
	wiggleFrequency = 0.005 * 1000 / 60
	// wiggleAmplitude 摇摆幅度（弧度）
	wiggleAmplitude = 0.1
	// wiggleHoldFrames 接触中断后保持满幅摇摆的帧数
	wiggleHoldFrames = 10
	// wiggleReleaseFrames 之后幅度线性回落到 0 所用的帧数
	wiggleReleaseFrames = 10
	// hopHeight 喂食跳跃高度（模型单位，乘缩放前）
	hopHeight = 0.6
)

// PetSurfaceSystem 宠物渲染表面
//
// 实现 interaction.RenderSurface：持有当前宠物实体、相机与视口尺寸，
// 负责模型变换（缩放、颜色、摇摆、跳跃）以及按部件的命中测试。
// 命中结果使用世界坐标，Z 为部件深度层。
type PetSurfaceSystem struct {
	entityManager *ecs.EntityManager
	camera        *CameraSystem

	petEntity ecs.EntityID
	width     int
	height    int
	size      float64
}

// NewPetSurfaceSystem 创建渲染表面
func NewPetSurfaceSystem(em *ecs.EntityManager, width, height int) *PetSurfaceSystem {
	return &PetSurfaceSystem{
		entityManager: em,
		camera:        NewCameraSystem(em),
		width:         width,
		height:        height,
		size:          config.SizeDefault,
	}
}

// Camera 返回相机系统
func (s *PetSurfaceSystem) Camera() *CameraSystem {
	return s.camera
}

// Viewport 实现 RenderSurface
func (s *PetSurfaceSystem) Viewport() (int, int) {
	return s.width, s.height
}

// HasModel 实现 RenderSurface
func (s *PetSurfaceSystem) HasModel() bool {
	return s.petEntity != 0 && s.entityManager.Exists(s.petEntity)
}

// SetViewport 窗口大小变化时调用，同时重新取景
func (s *PetSurfaceSystem) SetViewport(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.width, s.height = width, height
	log.Printf("[PetSurface] 视口大小变化: %dx%d", width, height)
	s.FrameModel()
}

// SetModel 替换宠物模型
//
// 旧模型先被移除，新模型使用给定颜色，并立即重新取景。
//
// 参数：
//   - breed: 品种ID
//   - model: 已验证的模型配置
//   - hitTag: 模型未指定 hitTag 时使用的标签
//   - c: 初始颜色
func (s *PetSurfaceSystem) SetModel(breed string, model *config.PetModelConfig, hitTag string, c color.RGBA) {
	s.ClearModel()

	tag := model.HitTag
	if tag == "" {
		tag = hitTag
	}

	s.petEntity = s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, s.petEntity, &components.PetComponent{
		Breed:  breed,
		Model:  model,
		HitTag: tag,
		Color:  c,
		Size:   s.size,
	})
	ecs.AddComponent(s.entityManager, s.petEntity, &components.PetPoseComponent{
		SinceContact: wiggleHoldFrames + wiggleReleaseFrames,
	})
	ecs.AddComponent(s.entityManager, s.petEntity, &components.PositionComponent{})

	log.Printf("[PetSurface] 模型已加载: %s (%d 个部件, tag=%s)", breed, len(model.Parts), tag)
	s.FrameModel()
}

// ClearModel 移除当前模型
func (s *PetSurfaceSystem) ClearModel() {
	if s.petEntity == 0 {
		return
	}
	s.entityManager.DestroyEntity(s.petEntity)
	s.entityManager.RemoveMarkedEntities()
	s.petEntity = 0
}

// Pet 返回当前宠物组件（无模型时 ok=false）
func (s *PetSurfaceSystem) Pet() (*components.PetComponent, *components.PetPoseComponent, bool) {
	if !s.HasModel() {
		return nil, nil, false
	}
	pet, ok1 := ecs.GetComponent[*components.PetComponent](s.entityManager, s.petEntity)
	pose, ok2 := ecs.GetComponent[*components.PetPoseComponent](s.entityManager, s.petEntity)
	return pet, pose, ok1 && ok2
}

// Breed 当前品种，无模型时为空
func (s *PetSurfaceSystem) Breed() string {
	if pet, _, ok := s.Pet(); ok {
		return pet.Breed
	}
	return ""
}

// SetScale 设置用户大小倍数（s > 0），并重新取景
func (s *PetSurfaceSystem) SetScale(size float64) {
	if size <= 0 {
		return
	}
	s.size = size
	if pet, _, ok := s.Pet(); ok {
		pet.Size = size
		s.FrameModel()
	}
}

// Scale 当前用户大小倍数
func (s *PetSurfaceSystem) Scale() float64 {
	return s.size
}

// SetColor 修改模型颜色（固定颜色的部件不受影响）
func (s *PetSurfaceSystem) SetColor(c color.RGBA) {
	if pet, _, ok := s.Pet(); ok {
		pet.Color = c
	}
}

// Color 当前模型颜色
func (s *PetSurfaceSystem) Color() (color.RGBA, bool) {
	if pet, _, ok := s.Pet(); ok {
		return pet.Color, true
	}
	return color.RGBA{}, false
}

// FrameModel 按当前模型包围盒设置相机目标
func (s *PetSurfaceSystem) FrameModel() {
	pet, _, ok := s.Pet()
	if !ok {
		return
	}
	minX, minY, maxX, maxY := pet.Model.Bounds()
	k := effectiveScale(pet)
	s.camera.FrameBounds(minX*k, minY*k, maxX*k, maxY*k, s.width, s.height)
}

// StartHop 开始喂食跳跃
func (s *PetSurfaceSystem) StartHop(frames int) {
	if _, pose, ok := s.Pet(); ok && frames > 0 {
		pose.HopRemaining = frames
		pose.HopTotal = frames
	}
}

// Update 推进一帧视觉动画：摇摆、跳跃与相机过渡
//
// 参数：
//   - contacted: 本帧是否处于抚摸状态
func (s *PetSurfaceSystem) Update(contacted bool) {
	s.camera.Update()

	_, pose, ok := s.Pet()
	if !ok {
		return
	}

	// 相位自由运行，接触只控制幅度
	pose.WiggleFrames++
	if contacted {
		pose.SinceContact = 0
	} else if pose.SinceContact < wiggleHoldFrames+wiggleReleaseFrames {
		pose.SinceContact++
	}
	pose.Rotation = math.Sin(float64(pose.WiggleFrames)*wiggleFrequency) * wiggleAmplitude * wiggleWeight(pose.SinceContact)

	if pose.HopRemaining > 0 {
		pose.HopRemaining--
		t := 1 - float64(pose.HopRemaining)/float64(pose.HopTotal)
		pose.HopOffset = math.Sin(math.Pi*t) * hopHeight
	} else {
		pose.HopOffset = 0
	}
}

// Origin 宠物原点的世界坐标（含跳跃偏移）
func (s *PetSurfaceSystem) Origin() (float64, float64) {
	pet, pose, ok := s.Pet()
	if !ok {
		return 0, 0
	}
	return 0, pose.HopOffset * effectiveScale(pet)
}

// LocalToWorld 模型局部坐标 → 世界坐标（缩放、旋转、跳跃）
func (s *PetSurfaceSystem) LocalToWorld(lx, ly float64) (float64, float64) {
	pet, pose, ok := s.Pet()
	if !ok {
		return lx, ly
	}
	k := effectiveScale(pet)
	sin, cos := math.Sincos(pose.Rotation)
	x, y := lx*k, ly*k
	return x*cos - y*sin, x*sin + y*cos + pose.HopOffset*k
}

// WorldToLocal 世界坐标 → 模型局部坐标
func (s *PetSurfaceSystem) WorldToLocal(wx, wy float64) (float64, float64) {
	pet, pose, ok := s.Pet()
	if !ok {
		return wx, wy
	}
	k := effectiveScale(pet)
	wy -= pose.HopOffset * k
	sin, cos := math.Sincos(-pose.Rotation)
	x, y := wx*cos-wy*sin, wx*sin+wy*cos
	return x / k, y / k
}

// LocalToScreen 模型局部坐标 → 屏幕像素
func (s *PetSurfaceSystem) LocalToScreen(lx, ly float64) (float64, float64) {
	wx, wy := s.LocalToWorld(lx, ly)
	return s.camera.WorldToScreen(wx, wy, s.width, s.height)
}

// PixelsPerLocalUnit 一个模型局部单位对应的像素数
func (s *PetSurfaceSystem) PixelsPerLocalUnit() float64 {
	pet, _, ok := s.Pet()
	cam := s.camera.Camera()
	if !ok || cam == nil {
		return 0
	}
	return cam.PixelsPerUnit * effectiveScale(pet)
}

// IntersectAt 实现 RenderSurface
// 按深度层从近到远返回所有命中的部件
func (s *PetSurfaceSystem) IntersectAt(ndcX, ndcY float64) []interaction.Intersection {
	pet, _, ok := s.Pet()
	if !ok {
		return nil
	}

	sx, sy := interaction.FromNDC(ndcX, ndcY, s.width, s.height)
	wx, wy, ok := s.camera.ScreenToWorld(sx, sy, s.width, s.height)
	if !ok {
		return nil
	}
	lx, ly := s.WorldToLocal(wx, wy)

	maxLayer := 0
	for _, part := range pet.Model.Parts {
		if part.Layer > maxLayer {
			maxLayer = part.Layer
		}
	}

	var hits []interaction.Intersection
	for _, part := range pet.Model.Parts {
		if !PartContains(part, lx, ly) {
			continue
		}
		hits = append(hits, interaction.Intersection{
			Tag:      pet.HitTag,
			Point:    interaction.Point3{X: wx, Y: wy, Z: float64(part.Layer)},
			Distance: float64(maxLayer - part.Layer),
		})
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits
}

// PartContains 判断模型局部坐标点是否落在部件内
func PartContains(p config.ModelPartConfig, x, y float64) bool {
	switch p.Shape {
	case config.ShapeEllipse:
		rx, ry := p.Width/2, p.Height/2
		dx, dy := (x-p.X)/rx, (y-p.Y)/ry
		return dx*dx+dy*dy <= 1
	case config.ShapeRect:
		return math.Abs(x-p.X) <= p.Width/2 && math.Abs(y-p.Y) <= p.Height/2
	case config.ShapeCapsule:
		return distanceToSegment(x, y, p.X, p.Y, p.X2, p.Y2) <= p.Radius
	}
	return false
}

func distanceToSegment(px, py, ax, ay, bx, by float64) float64 {
	abx, aby := bx-ax, by-ay
	lenSq := abx*abx + aby*aby
	t := 0.0
	if lenSq > 0 {
		t = ((px-ax)*abx + (py-ay)*aby) / lenSq
		t = math.Max(0, math.Min(1, t))
	}
	cx, cy := ax+t*abx, ay+t*aby
	return math.Hypot(px-cx, py-cy)
}

// wiggleWeight 摇摆幅度系数：中断 wiggleHoldFrames 帧内为 1，随后线性降到 0
func wiggleWeight(sinceContact int) float64 {
	fade := float64(sinceContact-wiggleHoldFrames) / wiggleReleaseFrames
	return math.Max(0, math.Min(1, 1-fade))
}

func effectiveScale(pet *components.PetComponent) float64 {
	return pet.Model.Scale * pet.Size
}
