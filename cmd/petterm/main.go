// petterm 在终端里运行的宠物
//
// 与图形版共用交互逻辑和模型加载，只把宠物按字符格绘制。
// 鼠标在宠物上移动即为抚摸；f 喂食，b 换品种，c 换颜色，+/- 调大小，q 退出。
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/dogpet/pkg/config"
	"github.com/gonewx/dogpet/pkg/embedded"
	"github.com/gonewx/dogpet/pkg/loader"
	"github.com/gonewx/dogpet/pkg/systems"
)

func main() {
	dataRoot := flag.String("data", ".", "directory containing data/")
	breed := flag.String("breed", "", "breed to load at startup")
	logPath := flag.String("log", "", "write logs to this file")
	mute := flag.Bool("mute", false, "disable sound effects")
	volume := flag.Float64("volume", 0.8, "sound volume 0-1")
	flag.Parse()

	// 终端被 tcell 占用，日志只能写文件
	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
		log.SetFlags(log.Ltime | log.Lmicroseconds)
	}

	embedded.Init(os.DirFS(*dataRoot))

	tuning, err := config.LoadPetTuningConfig(config.PetTuningPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load tuning: %v\n", err)
		os.Exit(1)
	}
	breeds, err := config.LoadBreedListConfig(config.BreedsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load breeds: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}

	ml := loader.NewModelLoader(&loader.ConfigAssetResolver{Root: *dataRoot}, breeds.Default)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	term := NewTerminal(screen, tuning, breeds, ml, rng)

	var sound *SoundPlayer
	if !*mute {
		sound = NewSoundPlayer(*volume)
		if err := sound.Initialize(); err != nil {
			log.Printf("[Sound] 音频初始化失败，无声运行: %v", err)
		} else {
			term.World().Effects().SetSpawnHook(sound.OnEffect)
		}
	}

	start := *breed
	if start == "" {
		start = breeds.Default
	}
	term.SelectBreed(start)

	term.Run()

	if sound != nil {
		sound.Close()
	}
	screen.Fini()
}
