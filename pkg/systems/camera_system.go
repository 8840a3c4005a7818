package systems

import (
	"math"

	"github.com/gonewx/dogpet/pkg/components"
	"github.com/gonewx/dogpet/pkg/ecs"
)

const (
	// CameraFrameMargin 取景时包围盒外留出的余量倍数
	CameraFrameMargin = 1.5
	// CameraDamping 每帧向目标逼近的比例
	CameraDamping = 0.25
	// cameraSnapEpsilon 与目标差值小于该值时直接对齐
	cameraSnapEpsilon = 1e-4
)

// CameraSystem 管理取景相机和平滑过渡
// 负责把宠物包围盒放进视口中央，并在缩放、窗口大小变化时平滑过渡。
type CameraSystem struct {
	entityManager *ecs.EntityManager
	cameraEntity  ecs.EntityID
}

// NewCameraSystem 创建相机系统（同时创建相机实体）
func NewCameraSystem(em *ecs.EntityManager) *CameraSystem {
	cs := &CameraSystem{entityManager: em}
	cs.cameraEntity = em.CreateEntity()
	ecs.AddComponent(em, cs.cameraEntity, &components.CameraComponent{
		Damping: CameraDamping,
	})
	return cs
}

// Camera 返回相机组件
func (cs *CameraSystem) Camera() *components.CameraComponent {
	cam, _ := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	return cam
}

// FrameBounds 设置取景目标，让包围盒（乘以余量）完整落在视口内
//
// 参数：
//   - minX, minY, maxX, maxY: 世界坐标包围盒
//   - viewportW, viewportH: 视口尺寸（像素）
//
// 相机尚未初始化（PixelsPerUnit 为 0）时直接对齐到目标。
func (cs *CameraSystem) FrameBounds(minX, minY, maxX, maxY float64, viewportW, viewportH int) {
	cam := cs.Camera()
	if cam == nil || viewportW <= 0 || viewportH <= 0 {
		return
	}

	w := (maxX - minX) * CameraFrameMargin
	h := (maxY - minY) * CameraFrameMargin
	if w <= 0 || h <= 0 {
		return
	}

	cam.TargetCenterX = (minX + maxX) / 2
	cam.TargetCenterY = (minY + maxY) / 2
	cam.TargetPixelsPerUnit = math.Min(float64(viewportW)/w, float64(viewportH)/h)

	if cam.PixelsPerUnit == 0 {
		cs.Snap()
	}
}

// Snap 立即对齐到目标
func (cs *CameraSystem) Snap() {
	cam := cs.Camera()
	if cam == nil {
		return
	}
	cam.CenterX = cam.TargetCenterX
	cam.CenterY = cam.TargetCenterY
	cam.PixelsPerUnit = cam.TargetPixelsPerUnit
}

// Update 推进一帧：按阻尼向目标逼近
func (cs *CameraSystem) Update() {
	cam := cs.Camera()
	if cam == nil {
		return
	}
	cam.CenterX = approach(cam.CenterX, cam.TargetCenterX, cam.Damping)
	cam.CenterY = approach(cam.CenterY, cam.TargetCenterY, cam.Damping)
	cam.PixelsPerUnit = approach(cam.PixelsPerUnit, cam.TargetPixelsPerUnit, cam.Damping)
}

// IsSettled 相机是否已到达目标
func (cs *CameraSystem) IsSettled() bool {
	cam := cs.Camera()
	return cam == nil || (cam.CenterX == cam.TargetCenterX &&
		cam.CenterY == cam.TargetCenterY &&
		cam.PixelsPerUnit == cam.TargetPixelsPerUnit)
}

// WorldToScreen 世界坐标 → 屏幕像素（Y 轴翻转）
func (cs *CameraSystem) WorldToScreen(x, y float64, viewportW, viewportH int) (float64, float64) {
	cam := cs.Camera()
	if cam == nil {
		return 0, 0
	}
	sx := float64(viewportW)/2 + (x-cam.CenterX)*cam.PixelsPerUnit
	sy := float64(viewportH)/2 - (y-cam.CenterY)*cam.PixelsPerUnit
	return sx, sy
}

// ScreenToWorld 屏幕像素 → 世界坐标
// 相机未初始化时返回 ok=false
func (cs *CameraSystem) ScreenToWorld(sx, sy float64, viewportW, viewportH int) (x, y float64, ok bool) {
	cam := cs.Camera()
	if cam == nil || cam.PixelsPerUnit <= 0 {
		return 0, 0, false
	}
	x = (sx-float64(viewportW)/2)/cam.PixelsPerUnit + cam.CenterX
	y = -(sy-float64(viewportH)/2)/cam.PixelsPerUnit + cam.CenterY
	return x, y, true
}

func approach(cur, target, damping float64) float64 {
	d := target - cur
	if math.Abs(d) < cameraSnapEpsilon {
		return target
	}
	return cur + d*damping
}
