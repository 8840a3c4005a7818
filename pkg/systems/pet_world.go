package systems

import (
	"image/color"
	"log"
	"math/rand"

	"github.com/gonewx/dogpet/internal/interaction"
	"github.com/gonewx/dogpet/pkg/config"
	"github.com/gonewx/dogpet/pkg/ecs"
	"github.com/gonewx/dogpet/pkg/loader"
)

// PetWorld 宠物世界
//
// 组装帧驱动器与渲染表面、特效、HUD、提示系统，并在每帧轮询模型加载结果。
// 图形界面和终端界面共用同一个 PetWorld，只有输入采集和绘制不同。
type PetWorld struct {
	entityManager *ecs.EntityManager
	tuning        *config.PetTuningConfig
	rng           *rand.Rand

	surface       *PetSurfaceSystem
	effects       *EffectSystem
	hud           *HUDSystem
	notifications *NotificationSystem
	driver        *interaction.FrameDriver
	loader        *loader.ModelLoader

	// nextColor 下一次加载模型时使用的颜色，为 nil 时随机
	nextColor *color.RGBA
	// onModel 模型加载完成回调，可为 nil
	onModel func(breed string, c color.RGBA)
}

// NewPetWorld 创建宠物世界
//
// 参数：
//   - tuning: 交互参数，nil 时使用默认值
//   - ml: 模型加载器，nil 时只能通过 ApplyModel 设置模型
//   - width, height: 视口尺寸
//   - rng: 随机数源（颜色和粒子），nil 时使用固定种子
func NewPetWorld(tuning *config.PetTuningConfig, ml *loader.ModelLoader, width, height int, rng *rand.Rand) *PetWorld {
	if tuning == nil {
		tuning = config.DefaultPetTuningConfig()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	em := ecs.NewEntityManager()
	w := &PetWorld{
		entityManager: em,
		tuning:        tuning,
		rng:           rng,
		loader:        ml,
	}
	w.surface = NewPetSurfaceSystem(em, width, height)
	w.effects = NewEffectSystem(em, tuning.Effects, rng)
	w.effects.SetOrigin(w.surface.Origin)
	w.hud = NewHUDSystem()
	w.notifications = NewNotificationSystem(em)
	w.driver = interaction.NewFrameDriver(tuning.Tuning(), w.surface, w.hud, w.effects)
	return w
}

// EntityManager 返回实体管理器（UI 实体也创建在这里）
func (w *PetWorld) EntityManager() *ecs.EntityManager { return w.entityManager }

// Surface 返回渲染表面
func (w *PetWorld) Surface() *PetSurfaceSystem { return w.surface }

// Effects 返回特效系统
func (w *PetWorld) Effects() *EffectSystem { return w.effects }

// HUD 返回状态条展示层
func (w *PetWorld) HUD() *HUDSystem { return w.hud }

// Notifications 返回提示系统
func (w *PetWorld) Notifications() *NotificationSystem { return w.notifications }

// Driver 返回帧驱动器
func (w *PetWorld) Driver() *interaction.FrameDriver { return w.driver }

// Tracker 返回指针追踪器
func (w *PetWorld) Tracker() *interaction.PointerTracker { return w.driver.Tracker() }

// SetModelHook 设置模型加载完成回调
func (w *PetWorld) SetModelHook(hook func(breed string, c color.RGBA)) {
	w.onModel = hook
}

// SetNextColor 指定下一次加载模型时的颜色（仅生效一次）
func (w *PetWorld) SetNextColor(c color.RGBA) {
	w.nextColor = &c
}

// RequestBreed 开始加载品种模型，加载期间显示加载指示
// 旧模型保留到新模型加载完成
func (w *PetWorld) RequestBreed(breed string) {
	if w.loader == nil {
		log.Printf("[PetWorld] 没有模型加载器，忽略品种请求: %s", breed)
		return
	}
	w.loader.Request(breed)
	w.notifications.SetLoading(true)
}

// IsLoading 是否有模型正在加载
func (w *PetWorld) IsLoading() bool {
	return w.loader != nil && w.loader.IsLoading()
}

// ApplyModel 替换当前模型
// 使用 SetNextColor 指定的颜色，否则随机一个颜色
func (w *PetWorld) ApplyModel(breed string, model *config.PetModelConfig) {
	c := w.RandomColor()
	if w.nextColor != nil {
		c = *w.nextColor
		w.nextColor = nil
	}
	w.surface.SetModel(breed, model, w.tuning.Input.PetTag, c)
	if w.onModel != nil {
		w.onModel(breed, c)
	}
}

// RandomColor 随机不透明颜色
func (w *PetWorld) RandomColor() color.RGBA {
	return color.RGBA{
		R: uint8(w.rng.Intn(256)),
		G: uint8(w.rng.Intn(256)),
		B: uint8(w.rng.Intn(256)),
		A: 0xff,
	}
}

// Feed 喂食：状态机生效时宠物跳一下
func (w *PetWorld) Feed() bool {
	if !w.driver.Feed() {
		return false
	}
	w.surface.StartHop(w.tuning.Effects.FeedHopFrames)
	return true
}

// Tick 推进一帧
//
// 顺序：取回模型加载结果 → 帧驱动器 → 宠物动画与相机 → 提示
func (w *PetWorld) Tick() {
	w.pollModel()
	w.driver.Tick()
	w.surface.Update(w.driver.Snapshot().IsContacted)
	w.notifications.Update()
}

func (w *PetWorld) pollModel() {
	if w.loader == nil {
		return
	}
	res, ok := w.loader.Poll()
	if !ok {
		return
	}

	w.notifications.SetLoading(false)
	for _, msg := range res.Notices {
		w.notifications.ShowError(msg)
	}

	if res.Model == nil {
		// 默认品种也失败：保持无模型，接触检测和状态转移成为空操作
		log.Printf("[PetWorld] 没有可用模型: %v", res.Err)
		w.surface.ClearModel()
		return
	}
	w.ApplyModel(res.Breed, res.Model)
}
