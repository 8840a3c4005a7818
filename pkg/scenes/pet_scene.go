package scenes

import (
	"image/color"
	"log"
	"math/rand"
	"time"

	"github.com/gonewx/dogpet/pkg/config"
	"github.com/gonewx/dogpet/pkg/ecs"
	"github.com/gonewx/dogpet/pkg/game"
	"github.com/gonewx/dogpet/pkg/loader"
	"github.com/gonewx/dogpet/pkg/systems"
	"github.com/gonewx/dogpet/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// PetSceneOptions 宠物场景参数
type PetSceneOptions struct {
	Tuning *config.PetTuningConfig
	Breeds *config.BreedListConfig
	// Breed 启动品种，为空时使用上次保存的品种
	Breed    string
	Settings *game.SettingsManager
	// Audio 可为 nil（无声运行）
	Audio  *game.AudioManager
	Loader *loader.ModelLoader
	Width  int
	Height int
	// Rng 颜色和粒子的随机数源，nil 时按时间播种
	Rng *rand.Rand
}

// PetScene 宠物互动场景
//
// 每帧：采样输入 → UI 系统 → 上报指针给追踪器 → PetWorld.Tick。
// 宠物、特效、状态条和提示都从 PetWorld 读取后绘制。
type PetScene struct {
	world    *systems.PetWorld
	settings *game.SettingsManager
	audio    *game.AudioManager
	breeds   *config.BreedListConfig

	pointer *utils.Pointer
	buttons *systems.ButtonSystem
	sliders *systems.SliderSystem

	breedButtons  []ecs.EntityID
	feedButton    ecs.EntityID
	swatchButtons []ecs.EntityID
	sizeSlider    ecs.EntityID

	width  int
	height int

	labelFont *text.GoTextFace
	fullFont  *text.GoTextFace
}

// NewPetScene 创建宠物场景并开始加载初始品种
func NewPetScene(opts PetSceneOptions) *PetScene {
	if opts.Settings == nil {
		opts.Settings = game.NewSettingsManager(nil)
	}
	if opts.Rng == nil {
		opts.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = config.WindowWidth, config.WindowHeight
	}

	s := &PetScene{
		world:    systems.NewPetWorld(opts.Tuning, opts.Loader, opts.Width, opts.Height, opts.Rng),
		settings: opts.Settings,
		audio:    opts.Audio,
		breeds:   opts.Breeds,
		pointer:  utils.NewPointer(),
		width:    opts.Width,
		height:   opts.Height,
	}

	em := s.world.EntityManager()
	s.buttons = systems.NewButtonSystem(em, s.pointer)
	s.sliders = systems.NewSliderSystem(em, s.pointer)
	s.labelFont, s.fullFont = loadFonts()

	if s.audio != nil {
		s.audio.PreloadSounds()
		s.world.Effects().SetSpawnHook(s.audio.OnEffect)
	}

	prefs := s.settings.GetSettings()
	s.world.Surface().SetScale(prefs.Size)
	if prefs.Color != "" {
		if c, err := config.ParseHexColor(prefs.Color); err == nil {
			s.world.SetNextColor(c)
		}
	}
	s.world.SetModelHook(s.onModelLoaded)

	s.createUI()

	breed := opts.Breed
	if breed == "" {
		breed = prefs.Breed
	}
	if breed == "" {
		breed = config.DefaultBreedID
	}
	s.world.RequestBreed(breed)

	return s
}

// World 返回宠物世界
func (s *PetScene) World() *systems.PetWorld {
	return s.world
}

// Update 更新场景逻辑（按帧推进，忽略 deltaTime）
func (s *PetScene) Update(deltaTime float64) {
	s.pointer.Update()

	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		s.feed()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.world.Driver().Escape()
	}

	if s.pointer.IsPointerJustReleased() {
		x, y := s.pointer.PointerPosition()
		s.world.Notifications().HandleClick(float64(x), float64(y))
	}

	s.buttons.Update()
	s.sliders.Update()
	s.pointer.FeedTracker(s.world.Tracker(), s.blocksPet)

	s.world.Tick()
	s.syncBreedSelection()
}

// Resize 实现 game.Resizable
func (s *PetScene) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.width, s.height = width, height
	s.world.Surface().SetViewport(width, height)
	s.layoutUI()
}

// SaveOnExit 实现 game.Saveable：保存外观偏好
func (s *PetScene) SaveOnExit() bool {
	if err := s.settings.Save(); err != nil {
		log.Printf("[PetScene] Warning: failed to save settings: %v", err)
		return false
	}
	return true
}

// blocksPet 指针落在 UI 上或正在拖动滑块时不传给宠物
func (s *PetScene) blocksPet(x, y float64) bool {
	return s.sliders.IsDragging() || s.buttons.HitTest(x, y)
}

func (s *PetScene) feed() {
	if s.world.Feed() {
		log.Printf("[PetScene] 喂食")
	}
}

func (s *PetScene) selectBreed(breed string) {
	if s.world.IsLoading() && s.world.Surface().Breed() == breed {
		return
	}
	log.Printf("[PetScene] 选择品种: %s", breed)
	s.world.RequestBreed(breed)
}

func (s *PetScene) selectColor(c color.RGBA) {
	s.world.Surface().SetColor(c)
	s.settings.SetColor(config.FormatHexColor(c))
}

func (s *PetScene) setSize(v float64) {
	size := config.SliderToSize(v)
	s.world.Surface().SetScale(size)
	s.settings.SetSize(size)
}

// onModelLoaded 新模型出现后记住品种和颜色
func (s *PetScene) onModelLoaded(breed string, c color.RGBA) {
	s.settings.SetBreed(breed)
	s.settings.SetColor(config.FormatHexColor(c))
}
