// checkdata 检查数据文件：交互参数、品种列表和每个品种的模型
//
// 用法: go run ./cmd/checkdata [-data dir]
// 默认品种的模型缺失或任何文件解析失败时以状态码 1 退出；
// 其他品种缺少模型只是警告（运行时会回退到默认品种）。
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/gonewx/dogpet/pkg/config"
	"github.com/gonewx/dogpet/pkg/embedded"
	"github.com/gonewx/dogpet/pkg/loader"
)

func main() {
	dataRoot := flag.String("data", ".", "directory containing data/")
	flag.Parse()

	embedded.Init(os.DirFS(*dataRoot))
	resolver := &loader.ConfigAssetResolver{Root: *dataRoot}

	if failures := check(os.Stdout, resolver); failures > 0 {
		fmt.Printf("❌ 发现 %d 个错误\n", failures)
		os.Exit(1)
	}
	fmt.Printf("✅ 数据文件检查通过\n")
}

// check 输出检查报告，返回错误数
func check(w io.Writer, resolver loader.AssetResolver) int {
	failures := 0

	tuning, err := config.LoadPetTuningConfig(config.PetTuningPath)
	if err != nil {
		fmt.Fprintf(w, "❌ %v\n", err)
		failures++
	} else {
		t := tuning.Tuning()
		fmt.Fprintf(w, "✅ 交互参数: pMax=%.0f growRate=%.2f decayRate=%.2f feedGain=%.0f\n",
			t.PMax, t.GrowRate, t.DecayRate, t.FeedGain)
	}

	breeds, err := config.LoadBreedListConfig(config.BreedsPath)
	if err != nil {
		fmt.Fprintf(w, "❌ %v\n", err)
		return failures + 1
	}
	fmt.Fprintf(w, "✅ 品种数量: %d (默认 %s)\n", len(breeds.Breeds), breeds.Default)

	ctx := context.Background()
	listed := make(map[string]bool)
	for _, b := range breeds.Breeds {
		listed[b.ID] = true
		isDefault := b.ID == breeds.Default

		if !resolver.Exists(ctx, b.ID) {
			if isDefault {
				fmt.Fprintf(w, "❌ %s: 默认品种缺少模型 %s\n", b.ID, config.ModelPath(b.ID))
				failures++
			} else {
				fmt.Fprintf(w, "⚠️  %s: 没有模型，运行时回退到 %s\n", b.ID, breeds.Default)
			}
			continue
		}

		model, err := resolver.Load(ctx, b.ID)
		if err != nil {
			fmt.Fprintf(w, "❌ %s: %v\n", b.ID, err)
			failures++
			continue
		}
		fmt.Fprintf(w, "✅ %s: %d 个部件\n", b.ID, len(model.Parts))
	}

	files, _ := embedded.Glob("data/models/*.yaml")
	for _, f := range files {
		id := strings.TrimSuffix(path.Base(f), ".yaml")
		if !listed[id] {
			fmt.Fprintf(w, "⚠️  %s: 模型文件未出现在品种列表中\n", f)
		}
	}

	return failures
}
