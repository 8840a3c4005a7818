package systems

import (
	"math"
	"testing"

	"github.com/gonewx/dogpet/pkg/ecs"
)

// TestCameraFrameBoundsSnapsFirstTime 首次取景直接对齐
func TestCameraFrameBoundsSnapsFirstTime(t *testing.T) {
	cs := NewCameraSystem(ecs.NewEntityManager())
	cs.FrameBounds(-2, -1, 2, 1, 800, 600)

	cam := cs.Camera()
	// 宽 4*1.5=6 → 800/6；高 2*1.5=3 → 600/3=200；取较小值
	want := 800.0 / 6
	if math.Abs(cam.PixelsPerUnit-want) > 1e-9 {
		t.Errorf("PixelsPerUnit: got %v, want %v", cam.PixelsPerUnit, want)
	}
	if cam.CenterX != 0 || cam.CenterY != 0 {
		t.Errorf("center: got (%v, %v), want (0, 0)", cam.CenterX, cam.CenterY)
	}
	if !cs.IsSettled() {
		t.Error("camera should be settled after the first framing")
	}
}

// TestCameraEasing 之后的取景按 0.25 阻尼逼近
func TestCameraEasing(t *testing.T) {
	cs := NewCameraSystem(ecs.NewEntityManager())
	cs.FrameBounds(-2, -1, 2, 1, 800, 600)
	before := cs.Camera().PixelsPerUnit

	cs.FrameBounds(-4, -2, 4, 2, 800, 600)
	target := cs.Camera().TargetPixelsPerUnit
	if math.Abs(target-before/2) > 1e-9 {
		t.Fatalf("target should halve: got %v, want %v", target, before/2)
	}

	cs.Update()
	want := before + (target-before)*CameraDamping
	if got := cs.Camera().PixelsPerUnit; math.Abs(got-want) > 1e-9 {
		t.Errorf("after one frame: got %v, want %v", got, want)
	}

	for i := 0; i < 200 && !cs.IsSettled(); i++ {
		cs.Update()
	}
	if !cs.IsSettled() {
		t.Error("camera should settle eventually")
	}
}

func TestCameraScreenRoundTrip(t *testing.T) {
	cs := NewCameraSystem(ecs.NewEntityManager())
	cs.FrameBounds(0, 0, 4, 2, 640, 480)

	sx, sy := cs.WorldToScreen(3, 0.5, 640, 480)
	x, y, ok := cs.ScreenToWorld(sx, sy, 640, 480)
	if !ok {
		t.Fatal("ScreenToWorld should succeed")
	}
	if math.Abs(x-3) > 1e-9 || math.Abs(y-0.5) > 1e-9 {
		t.Errorf("round trip: got (%v, %v), want (3, 0.5)", x, y)
	}

	// Y 轴向上：世界坐标更高的点在屏幕上更靠上
	_, top := cs.WorldToScreen(0, 2, 640, 480)
	_, bottom := cs.WorldToScreen(0, 0, 640, 480)
	if top >= bottom {
		t.Errorf("world up should be screen up: top=%v bottom=%v", top, bottom)
	}
}

func TestCameraUninitialized(t *testing.T) {
	cs := NewCameraSystem(ecs.NewEntityManager())
	if _, _, ok := cs.ScreenToWorld(10, 10, 800, 600); ok {
		t.Error("uninitialized camera should not map screen points")
	}
	cs.FrameBounds(0, 0, 0, 0, 800, 600)
	if cs.Camera().PixelsPerUnit != 0 {
		t.Error("empty bounds should be ignored")
	}
}
