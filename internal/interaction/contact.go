package interaction

// Point3 三维点
// 在 2D 渲染中 Z 表示被命中部件的深度层（越大越靠近观察者）
type Point3 struct {
	X, Y, Z float64
}

// Intersection 射线与场景中某个表面的一次相交
type Intersection struct {
	Tag      string  // 表面所属碰撞体的标签
	Point    Point3  // 相交点（模型坐标）
	Distance float64 // 到观察者的距离，越小越近
}

// RenderSurface 渲染表面
//
// 核心只依赖命中测试；模型变换（缩放、颜色、相机取景）由实现方自行管理。
type RenderSurface interface {
	// Viewport 返回视口尺寸（设备像素）
	Viewport() (width, height int)

	// HasModel 当前是否有已加载的宠物模型
	HasModel() bool

	// IntersectAt 以标准化设备坐标发射射线，返回按距离由近到远排序的相交结果
	IntersectAt(ndcX, ndcY float64) []Intersection
}

// ContactResult 单帧接触检测结果
type ContactResult struct {
	IsOverPet    bool
	ContactPoint *Point3
}

// ContactDetector 判断指针是否位于宠物碰撞体上
//
// 只做单帧几何测试，没有历史和平滑；轮廓边缘的闪烁是预期行为。
// 通过标签而非对象身份识别宠物，重新加载的模型立即可被检测。
type ContactDetector struct {
	tag string
}

// NewContactDetector 创建接触检测器
func NewContactDetector(tag string) *ContactDetector {
	return &ContactDetector{tag: tag}
}

// Test 对当前指针执行一次命中测试
func (d *ContactDetector) Test(p PointerSample, surface RenderSurface) ContactResult {
	if surface == nil || !surface.HasModel() {
		return ContactResult{}
	}

	w, h := surface.Viewport()
	if w <= 0 || h <= 0 {
		return ContactResult{}
	}

	ndcX, ndcY := ToNDC(p.X, p.Y, w, h)
	for _, hit := range surface.IntersectAt(ndcX, ndcY) {
		if hit.Tag == d.tag {
			point := hit.Point
			return ContactResult{IsOverPet: true, ContactPoint: &point}
		}
	}
	return ContactResult{}
}

// ToNDC 将设备像素坐标转换为标准化设备坐标
// x: 左 -1 → 右 1；y: 下 -1 → 上 1
func ToNDC(x, y float64, width, height int) (float64, float64) {
	return x/float64(width)*2 - 1, -(y/float64(height))*2 + 1
}

// FromNDC 将标准化设备坐标转换回设备像素坐标
func FromNDC(ndcX, ndcY float64, width, height int) (float64, float64) {
	return (ndcX + 1) / 2 * float64(width), (1 - ndcY) / 2 * float64(height)
}
