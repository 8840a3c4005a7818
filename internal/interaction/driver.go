package interaction

import "log"

// Frame 推送给展示层的单帧数值
type Frame struct {
	ProgressHeightPercent  float64 // 0–100
	HappinessHeightPercent float64 // 0–100
	IsFull                 bool
}

// PresentationSink 展示层：只接收数值快照，从不回写状态
type PresentationSink interface {
	Present(f Frame)
}

// EffectSink 特效执行者
//
// Spawn 接收新的特效请求；Step 由帧驱动器每帧调用一次，
// 推进所有进行中的特效并移除已结束的特效。
type EffectSink interface {
	Spawn(req EffectRequest)
	Step()
}

// FrameDriver 帧驱动器
//
// 每帧按固定顺序执行：
//  1. 读取追踪器的指针和移动标志
//  2. 接触检测（无模型时跳过，状态转移成为空操作）
//  3. 状态机推进一帧
//  4. 分发特效请求并推进特效
//  5. 推送数值到展示层
//  6. 清除追踪器的边沿移动标志
type FrameDriver struct {
	tracker  *PointerTracker
	detector *ContactDetector
	machine  *StateMachine
	trigger  *EffectTrigger

	surface RenderSurface
	sink    PresentationSink
	effects EffectSink

	frame       uint64
	lastContact ContactResult
}

// NewFrameDriver 按参数创建帧驱动器及其全部核心组件
//
// 参数：
//   - t: 交互参数
//   - surface: 渲染表面（可为 nil，视为无模型）
//   - sink: 展示层（可为 nil）
//   - effects: 特效执行者（可为 nil）
func NewFrameDriver(t Tuning, surface RenderSurface, sink PresentationSink, effects EffectSink) *FrameDriver {
	return &FrameDriver{
		tracker:  NewPointerTracker(t.MoveThreshold),
		detector: NewContactDetector(t.PetTag),
		machine:  NewStateMachine(t),
		trigger:  NewEffectTrigger(t.PetBurstHoldFrames),
		surface:  surface,
		sink:     sink,
		effects:  effects,
	}
}

// Tracker 返回指针追踪器，输入层通过它上报原始输入
func (d *FrameDriver) Tracker() *PointerTracker {
	return d.tracker
}

// Tick 执行一帧
func (d *FrameDriver) Tick() {
	d.frame++

	pointer := d.tracker.CurrentPointer()
	moving := d.tracker.IsMoving()
	touching := d.tracker.IsTouching()

	var requests []EffectRequest
	if d.surface != nil && d.surface.HasModel() {
		contact := d.detector.Test(pointer, d.surface)
		prev, next := d.machine.Advance(Signal{
			IsOverPet:  contact.IsOverPet,
			IsMoving:   moving,
			IsTouching: touching,
		})
		d.lastContact = contact

		requests = append(requests, d.trigger.OnStateChange(prev, next)...)
		requests = append(requests, d.trigger.OnContact(next, contact)...)
		if !prev.IsFull() && next.IsFull() {
			log.Printf("[FrameDriver] 进度已满 (frame=%d, progress=%.2f)", d.frame, next.Progress)
		}
	} else {
		d.lastContact = ContactResult{}
	}

	if d.effects != nil {
		for _, req := range requests {
			d.effects.Spawn(req)
		}
		d.effects.Step()
	}

	if d.sink != nil {
		d.sink.Present(d.frameValues())
	}

	d.tracker.EndFrame()
}

// Feed 喂食事件
//
// 无模型时忽略；生效时立即发出 FoodBurst 请求。
// 返回：是否生效
func (d *FrameDriver) Feed() bool {
	if d.surface == nil || !d.surface.HasModel() {
		log.Printf("[FrameDriver] 无宠物模型，忽略喂食")
		return false
	}
	if !d.machine.Feed() {
		log.Printf("[FrameDriver] 喂食冷却中")
		return false
	}
	if d.effects != nil {
		d.effects.Spawn(d.trigger.OnFeed())
	}
	return true
}

// Escape 退出信号：仅记录，不改变状态
func (d *FrameDriver) Escape() {
	log.Printf("[FrameDriver] Exiting simulation")
}

// Snapshot 返回当前状态的副本
func (d *FrameDriver) Snapshot() PetState {
	return d.machine.State()
}

// LastContact 返回最近一帧的接触结果
func (d *FrameDriver) LastContact() ContactResult {
	return d.lastContact
}

// FrameCount 已执行的帧数
func (d *FrameDriver) FrameCount() uint64 {
	return d.frame
}

// SetSurface 替换渲染表面
func (d *FrameDriver) SetSurface(surface RenderSurface) {
	d.surface = surface
}

func (d *FrameDriver) frameValues() Frame {
	s := d.machine.State()
	return Frame{
		ProgressHeightPercent:  s.DisplayProgress(),
		HappinessHeightPercent: clamp(s.Happiness, 0, HappinessMax),
		IsFull:                 s.IsFull(),
	}
}
