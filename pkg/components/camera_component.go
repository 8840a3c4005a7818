package components

// CameraComponent 2D 取景相机
//
// 相机把模型坐标映射到屏幕：屏幕中心对应 (CenterX, CenterY)，
// 1 个模型单位对应 PixelsPerUnit 个像素。
// 每帧按阻尼向目标值逼近，实现平滑取景。
type CameraComponent struct {
	CenterX       float64
	CenterY       float64
	PixelsPerUnit float64

	TargetCenterX       float64
	TargetCenterY       float64
	TargetPixelsPerUnit float64

	// Damping 每帧向目标逼近的比例 (0,1]
	Damping float64
}
