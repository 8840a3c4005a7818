package main

import (
	"errors"
	"flag"
	"log"

	"github.com/gonewx/dogpet/pkg/app"
	"github.com/gonewx/dogpet/pkg/config"
	"github.com/gonewx/dogpet/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	breed := flag.String("breed", "", "启动品种（如 dog, corgi），为空则使用上次的品种")
	tuning := flag.String("tuning", "", "交互参数文件路径（默认使用内置 data/pet_tuning.yaml）")
	mute := flag.Bool("mute", false, "关闭音效")
	flag.Parse()

	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		Breed:      *breed,
		TuningPath: *tuning,
		Mute:       *mute,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	game := &closingGame{App: gameApp}
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}

// closingGame 在窗口关闭时保存偏好后退出
type closingGame struct {
	*app.App
}

func (g *closingGame) Update() error {
	if ebiten.IsWindowBeingClosed() {
		g.GetSceneManager().SaveOnExit()
		return ebiten.Termination
	}
	return g.App.Update()
}
