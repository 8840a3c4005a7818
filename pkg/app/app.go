// Package app 提供宠物应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"io"
	"log"

	"github.com/gonewx/dogpet/pkg/config"
	"github.com/gonewx/dogpet/pkg/game"
	"github.com/gonewx/dogpet/pkg/loader"
	"github.com/gonewx/dogpet/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Breed 启动品种，为空则使用上次的品种
	Breed string
	// TuningPath 交互参数文件，为空则使用 data/pet_tuning.yaml
	TuningPath string
	// Mute 关闭音效输出
	Mute bool
}

// App 是宠物应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	verbose      bool
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
// 配置文件错误视为致命错误直接返回。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	tuningPath := cfg.TuningPath
	if tuningPath == "" {
		tuningPath = config.PetTuningPath
	}
	tuning, err := config.LoadPetTuningConfig(tuningPath)
	if err != nil {
		return nil, fmt.Errorf("交互参数加载失败: %w", err)
	}
	log.Printf("[Config] 加载交互参数: %s", tuningPath)

	breeds, err := config.LoadBreedListConfig(config.BreedsPath)
	if err != nil {
		return nil, fmt.Errorf("品种列表加载失败: %w", err)
	}
	log.Printf("[Config] 加载品种 %d 个，默认 %s", len(breeds.Breeds), breeds.Default)

	gameState := game.GetGameState()
	settings := gameState.GetSettingsManager()

	var audioManager *game.AudioManager
	if !cfg.Mute {
		audioManager = game.NewAudioManager(audio.NewContext(48000), settings)
		gameState.SetAudioManager(audioManager)
		log.Printf("[App] AudioManager initialized")
	}

	ml := loader.NewModelLoader(loader.NewConfigAssetResolver(), breeds.Default)

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(scenes.NewPetScene(scenes.PetSceneOptions{
		Tuning:   tuning,
		Breeds:   breeds,
		Breed:    cfg.Breed,
		Settings: settings,
		Audio:    audioManager,
		Loader:   ml,
		Width:    config.WindowWidth,
		Height:   config.WindowHeight,
	}))

	return &App{
		sceneManager: sceneManager,
		verbose:      cfg.Verbose,
	}, nil
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// Layout 返回逻辑屏幕尺寸
// 逻辑尺寸跟随窗口，场景在尺寸变化时重新取景和排版
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.sceneManager.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// GetSceneManager 返回场景管理器
// 用于在关闭时保存偏好
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
