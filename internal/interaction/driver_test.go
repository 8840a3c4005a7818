package interaction

import (
	"math"
	"testing"
)

// fakeSurface 测试用渲染表面：宠物占据 NDC 空间中的一个矩形
type fakeSurface struct {
	width, height int
	hasModel      bool
	tag           string
	minX, maxX    float64
	minY, maxY    float64
	extraHits     []Intersection // 宠物之前（更近）的其他表面
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{
		width: 800, height: 600,
		hasModel: true,
		tag:      "dog",
		minX:     -0.5, maxX: 0.5,
		minY: -0.5, maxY: 0.5,
	}
}

func (s *fakeSurface) Viewport() (int, int) { return s.width, s.height }

func (s *fakeSurface) HasModel() bool { return s.hasModel }

func (s *fakeSurface) IntersectAt(x, y float64) []Intersection {
	hits := append([]Intersection(nil), s.extraHits...)
	if x >= s.minX && x <= s.maxX && y >= s.minY && y <= s.maxY {
		hits = append(hits, Intersection{Tag: s.tag, Point: Point3{X: x, Y: y, Z: 1}, Distance: 10})
	}
	return hits
}

type recordingSink struct {
	frames []Frame
}

func (r *recordingSink) Present(f Frame) { r.frames = append(r.frames, f) }

func (r *recordingSink) last() Frame { return r.frames[len(r.frames)-1] }

type recordingEffects struct {
	spawned []EffectRequest
	steps   int
}

func (r *recordingEffects) Spawn(req EffectRequest) { r.spawned = append(r.spawned, req) }

func (r *recordingEffects) Step() { r.steps++ }

func (r *recordingEffects) count(kind EffectKind) int {
	n := 0
	for _, req := range r.spawned {
		if req.Kind == kind {
			n++
		}
	}
	return n
}

// 屏幕中心（宠物上）
const centerX, centerY = 400.0, 300.0

func TestContactDetectorTagMatch(t *testing.T) {
	surface := newFakeSurface()
	d := NewContactDetector("dog")

	res := d.Test(PointerSample{X: centerX, Y: centerY}, surface)
	if !res.IsOverPet || res.ContactPoint == nil {
		t.Fatalf("center should hit the pet, got %+v", res)
	}

	res = d.Test(PointerSample{X: 5, Y: 5}, surface)
	if res.IsOverPet || res.ContactPoint != nil {
		t.Errorf("corner should miss the pet, got %+v", res)
	}
}

// TestContactDetectorUsesTagNotOrder 其他表面挡在前面时，只要射线穿过宠物仍算接触
func TestContactDetectorUsesTagNotOrder(t *testing.T) {
	surface := newFakeSurface()
	surface.extraHits = []Intersection{{Tag: "ground", Distance: 1}}

	res := NewContactDetector("dog").Test(PointerSample{X: centerX, Y: centerY}, surface)
	if !res.IsOverPet {
		t.Error("pet behind another surface should still count")
	}

	surface.tag = "cat"
	res = NewContactDetector("dog").Test(PointerSample{X: centerX, Y: centerY}, surface)
	if res.IsOverPet {
		t.Error("surfaces with other tags must not count")
	}
}

func TestContactDetectorNoModel(t *testing.T) {
	surface := newFakeSurface()
	surface.hasModel = false

	if res := NewContactDetector("dog").Test(PointerSample{X: centerX, Y: centerY}, surface); res.IsOverPet {
		t.Error("no model should never report contact")
	}
	if res := NewContactDetector("dog").Test(PointerSample{}, nil); res.IsOverPet {
		t.Error("nil surface should never report contact")
	}
}

func TestNDCRoundTrip(t *testing.T) {
	x, y := ToNDC(0, 0, 800, 600)
	if x != -1 || y != 1 {
		t.Errorf("top-left: got (%v, %v), want (-1, 1)", x, y)
	}
	x, y = ToNDC(800, 600, 800, 600)
	if x != 1 || y != -1 {
		t.Errorf("bottom-right: got (%v, %v), want (1, -1)", x, y)
	}

	px, py := FromNDC(0.25, -0.5, 800, 600)
	bx, by := ToNDC(px, py, 800, 600)
	if math.Abs(bx-0.25) > 1e-12 || math.Abs(by+0.5) > 1e-12 {
		t.Errorf("round trip: got (%v, %v)", bx, by)
	}
}

// touchPet 在宠物中心保持单指触摸
func touchPet(d *FrameDriver) {
	d.Tracker().OnTouchCount(1)
	d.Tracker().OnRawInput(PointerSample{X: centerX, Y: centerY, Source: SourceTouch})
}

// TestDriverFullEdgeFiresOnce 99.6 + 一帧接触 → 满，闪光只触发一次
func TestDriverFullEdgeFiresOnce(t *testing.T) {
	tuning := DefaultTuning()
	tuning.InitialProgress = 99.6
	sink := &recordingSink{}
	effects := &recordingEffects{}
	d := NewFrameDriver(tuning, newFakeSurface(), sink, effects)

	touchPet(d)
	d.Tick()

	s := d.Snapshot()
	if math.Abs(s.Progress-100.1) > 1e-9 {
		t.Errorf("progress: got %v, want 100.1", s.Progress)
	}
	f := sink.last()
	if f.ProgressHeightPercent != 100 || !f.IsFull {
		t.Errorf("presented frame: got %+v, want capped 100 and full", f)
	}
	if got := effects.count(EffectSparkle); got != 1 {
		t.Fatalf("sparkle after crossing: got %d, want 1", got)
	}

	for i := 0; i < 30; i++ {
		d.Tick()
	}
	if got := effects.count(EffectSparkle); got != 1 {
		t.Errorf("sparkle must fire only on the crossing frame, got %d", got)
	}
	if effects.steps != 31 {
		t.Errorf("effects should be stepped every frame, got %d", effects.steps)
	}
}

func TestDriverLeavingFullClearsSparkle(t *testing.T) {
	tuning := DefaultTuning()
	tuning.PMax = 100
	tuning.InitialProgress = 100
	effects := &recordingEffects{}
	sink := &recordingSink{}
	d := NewFrameDriver(tuning, newFakeSurface(), sink, effects)

	d.Tick()
	if got := effects.count(EffectSparkleClear); got != 1 {
		t.Errorf("leaving full: got %d SparkleClear, want 1", got)
	}
	if sink.last().IsFull {
		t.Error("presented frame should not be full")
	}
}

// TestDriverPresentsAfterTransition 展示层看到的是本帧转移之后的值
func TestDriverPresentsAfterTransition(t *testing.T) {
	sink := &recordingSink{}
	d := NewFrameDriver(DefaultTuning(), newFakeSurface(), sink, nil)

	d.Tracker().OnRawInput(PointerSample{X: centerX, Y: centerY})
	d.Tick()

	f := sink.last()
	if f.ProgressHeightPercent != 0.5 {
		t.Errorf("progress height: got %v, want 0.5", f.ProgressHeightPercent)
	}
	if math.Abs(f.HappinessHeightPercent-50.08) > 1e-9 {
		t.Errorf("happiness height: got %v, want 50.08", f.HappinessHeightPercent)
	}

	// 指针不再移动：边沿移动标志已被清除
	d.Tick()
	if d.Snapshot().IsContacted {
		t.Error("hovering without movement should not be contact")
	}
	if f := sink.last(); math.Abs(f.ProgressHeightPercent-0.45) > 1e-9 {
		t.Errorf("progress should decay: got %v, want 0.45", f.ProgressHeightPercent)
	}
}

func TestDriverPetBurstOnContactStart(t *testing.T) {
	effects := &recordingEffects{}
	d := NewFrameDriver(DefaultTuning(), newFakeSurface(), nil, effects)

	touchPet(d)
	for i := 0; i < 10; i++ {
		d.Tick()
	}
	if got := effects.count(EffectPetBurst); got != 1 {
		t.Fatalf("pet burst: got %d, want 1", got)
	}
	if effects.spawned[0].Point == nil {
		t.Error("pet burst should carry the contact point")
	}

	hold := DefaultTuning().PetBurstHoldFrames

	// 短暂离开不算新的抚摸
	d.Tracker().OnTouchCount(0)
	for i := 0; i < hold; i++ {
		d.Tick()
	}
	touchPet(d)
	d.Tick()
	if got := effects.count(EffectPetBurst); got != 1 {
		t.Errorf("pet burst after a %d-frame gap: got %d, want 1", hold, got)
	}

	// 离开超过 hold 帧后再次接触会再触发一次
	d.Tracker().OnTouchCount(0)
	for i := 0; i < hold+1; i++ {
		d.Tick()
	}
	touchPet(d)
	d.Tick()
	if got := effects.count(EffectPetBurst); got != 2 {
		t.Errorf("pet burst after re-contact: got %d, want 2", got)
	}
}

// TestDriverSlowStrokeBurstsOnce 慢速抚摸（每帧 3 像素）时接触隔帧出现，
// 爱心只产生一次，进度按接触帧增长
func TestDriverSlowStrokeBurstsOnce(t *testing.T) {
	effects := &recordingEffects{}
	d := NewFrameDriver(DefaultTuning(), newFakeSurface(), nil, effects)

	contacted := 0
	for i := 0; i < 60; i++ {
		d.Tracker().OnRawInput(PointerSample{X: centerX - 90 + float64(i)*3, Y: centerY})
		d.Tick()
		if d.Snapshot().IsContacted {
			contacted++
		}
	}

	if contacted != 30 {
		t.Errorf("contacted frames: got %d, want 30", contacted)
	}
	if got := effects.count(EffectPetBurst); got != 1 {
		t.Errorf("pet burst during one slow stroke: got %d, want 1", got)
	}
	if p := d.Snapshot().Progress; math.Abs(p-13.5) > 1e-9 {
		t.Errorf("progress: got %v, want 13.5", p)
	}
}

func TestEffectTriggerHold(t *testing.T) {
	hit := ContactResult{IsOverPet: true, ContactPoint: &Point3{X: 1, Y: 2}}
	on := PetState{IsContacted: true}
	off := PetState{}

	tests := []struct {
		name  string
		hold  int
		steps []bool // 每帧是否接触
		want  int
	}{
		{"无间隔每个上升沿都触发", 0, []bool{true, false, true, false, true}, 3},
		{"持续接触只触发一次", 5, []bool{true, true, true, true}, 1},
		{"隔帧接触只触发一次", 5, []bool{true, false, true, false, true, false, true}, 1},
		{"间隔等于 hold 不触发", 2, []bool{true, false, false, true}, 1},
		{"间隔超过 hold 再次触发", 2, []bool{true, false, false, false, true}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewEffectTrigger(tt.hold)
			got := 0
			for _, contact := range tt.steps {
				state, result := off, ContactResult{}
				if contact {
					state, result = on, hit
				}
				for _, req := range tr.OnContact(state, result) {
					if req.Kind == EffectPetBurst {
						got++
					}
				}
			}
			if got != tt.want {
				t.Errorf("bursts: got %d, want %d", got, tt.want)
			}
		})
	}
}

// TestDriverNoModelIsNoop 无模型时状态转移为空操作，但展示层照常更新
func TestDriverNoModelIsNoop(t *testing.T) {
	surface := newFakeSurface()
	surface.hasModel = false
	sink := &recordingSink{}
	effects := &recordingEffects{}
	d := NewFrameDriver(DefaultTuning(), surface, sink, effects)

	touchPet(d)
	for i := 0; i < 10; i++ {
		d.Tick()
	}

	if s := d.Snapshot(); s.Progress != 0 || s.Happiness != 50 {
		t.Errorf("state changed without a model: %+v", s)
	}
	if len(sink.frames) != 10 {
		t.Errorf("sink should be updated every frame, got %d", len(sink.frames))
	}
	if d.Feed() {
		t.Error("feed should be ignored without a model")
	}
	if len(effects.spawned) != 0 {
		t.Errorf("no effects expected, got %v", effects.spawned)
	}

	// 模型加载后立即生效
	surface.hasModel = true
	d.Tick()
	if d.Snapshot().Progress != 0.5 {
		t.Errorf("progress after model appears: got %v, want 0.5", d.Snapshot().Progress)
	}
}

func TestDriverFeedEmitsFoodBurst(t *testing.T) {
	tuning := DefaultTuning()
	tuning.InitialHappiness = 90
	effects := &recordingEffects{}
	d := NewFrameDriver(tuning, newFakeSurface(), nil, effects)

	if !d.Feed() {
		t.Fatal("Feed() should succeed")
	}
	if got := d.Snapshot().Happiness; got != 100 {
		t.Errorf("happiness: got %v, want 100", got)
	}
	if effects.count(EffectFoodBurst) != 1 {
		t.Errorf("expected one FoodBurst, got %v", effects.spawned)
	}
}

func TestDriverEscapeKeepsState(t *testing.T) {
	d := NewFrameDriver(DefaultTuning(), newFakeSurface(), nil, nil)
	before := d.Snapshot()
	d.Escape()
	if d.Snapshot() != before {
		t.Error("Escape must not change state")
	}
}

func TestEffectTriggerKinds(t *testing.T) {
	tr := NewEffectTrigger(0)
	empty := PetState{Progress: 50}
	full := PetState{Progress: 110}

	if got := tr.OnStateChange(empty, empty); len(got) != 0 {
		t.Errorf("no edge: got %v", got)
	}
	if got := tr.OnStateChange(full, full); len(got) != 0 {
		t.Errorf("staying full: got %v", got)
	}
	if got := tr.OnFeed(); got.Kind != EffectFoodBurst {
		t.Errorf("OnFeed: got %v", got.Kind)
	}

	names := map[EffectKind]string{
		EffectSparkle:      "Sparkle",
		EffectSparkleClear: "SparkleClear",
		EffectFoodBurst:    "FoodBurst",
		EffectPetBurst:     "PetBurst",
	}
	for kind, want := range names {
		if kind.String() != want {
			t.Errorf("%d.String() = %s, want %s", kind, kind.String(), want)
		}
	}
}
