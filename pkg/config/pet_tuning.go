package config

import (
	"fmt"
	"os"

	"github.com/gonewx/dogpet/internal/interaction"
	"github.com/gonewx/dogpet/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// PetTuningPath 默认交互参数配置文件
const PetTuningPath = "data/pet_tuning.yaml"

// PetTuningConfig 宠物交互参数配置
//
// 配置文件位置: data/pet_tuning.yaml
// 所有速率单位为"每帧"。
type PetTuningConfig struct {
	Progress  ProgressTuning  `yaml:"progress"`
	Happiness HappinessTuning `yaml:"happiness"`
	Input     InputTuning     `yaml:"input"`
	Feed      FeedTuning      `yaml:"feed"`
	Effects   EffectTuning    `yaml:"effects"`
}

// ProgressTuning 进度参数
type ProgressTuning struct {
	Max       float64 `yaml:"max"`       // 内部上限（100 或 115）
	Initial   float64 `yaml:"initial"`   // 初始进度
	GrowRate  float64 `yaml:"growRate"`  // 接触时每帧增长
	DecayRate float64 `yaml:"decayRate"` // 无接触时每帧衰减
}

// HappinessTuning 快乐值参数
type HappinessTuning struct {
	Initial   float64 `yaml:"initial"`   // 初始快乐值
	DecayRate float64 `yaml:"decayRate"` // 每帧被动衰减
	PetGain   float64 `yaml:"petGain"`   // 接触时每帧加成
}

// InputTuning 输入参数
type InputTuning struct {
	MoveThreshold float64 `yaml:"moveThreshold"` // 移动判定阈值（像素，严格大于）
	PetTag        string  `yaml:"petTag"`        // 宠物碰撞体标签
}

// FeedTuning 喂食参数
type FeedTuning struct {
	Gain           float64 `yaml:"gain"`           // 单次喂食快乐值加成
	CooldownFrames int     `yaml:"cooldownFrames"` // 冷却帧数，0 = 不限制
}

// EffectTuning 特效参数
type EffectTuning struct {
	FoodParticles   int     `yaml:"foodParticles"`   // 喂食粒子数量
	FoodRise        float64 `yaml:"foodRise"`        // 每帧上升（模型单位）
	FoodSpin        float64 `yaml:"foodSpin"`        // 每帧自转（弧度）
	FoodFade        float64 `yaml:"foodFade"`        // 每帧透明度衰减
	PetParticles    int     `yaml:"petParticles"`    // 抚摸粒子数量
	PetFrames       int     `yaml:"petFrames"`       // 抚摸粒子持续帧数
	PetHoldFrames   int     `yaml:"petHoldFrames"`   // 接触中断多少帧内不重新产生爱心
	SparkleCount    int     `yaml:"sparkleCount"`    // 闪光数量
	SparkleMaxDelay int     `yaml:"sparkleMaxDelay"` // 闪光最大延迟帧数
	SparklePeriod   int     `yaml:"sparklePeriod"`   // 闪烁周期帧数
	FeedHopFrames   int     `yaml:"feedHopFrames"`   // 喂食跳跃持续帧数
}

// DefaultPetTuningConfig 返回默认配置（与 data/pet_tuning.yaml 一致）
func DefaultPetTuningConfig() *PetTuningConfig {
	t := interaction.DefaultTuning()
	return &PetTuningConfig{
		Progress: ProgressTuning{
			Max:       t.PMax,
			Initial:   t.InitialProgress,
			GrowRate:  t.GrowRate,
			DecayRate: t.DecayRate,
		},
		Happiness: HappinessTuning{
			Initial:   t.InitialHappiness,
			DecayRate: t.HappinessDecay,
			PetGain:   t.PetGain,
		},
		Input: InputTuning{
			MoveThreshold: t.MoveThreshold,
			PetTag:        t.PetTag,
		},
		Feed: FeedTuning{
			Gain:           t.FeedGain,
			CooldownFrames: t.FeedCooldownFrames,
		},
		Effects: EffectTuning{
			FoodParticles:   20,
			FoodRise:        0.01,
			FoodSpin:        0.01,
			FoodFade:        0.02,
			PetParticles:    6,
			PetFrames:       40,
			PetHoldFrames:   t.PetBurstHoldFrames,
			SparkleCount:    10,
			SparkleMaxDelay: 60,
			SparklePeriod:   60,
			FeedHopFrames:   30,
		},
	}
}

// LoadPetTuningConfig 加载交互参数配置
//
// 路径以 "data/" 开头时优先从嵌入资源读取，否则从本地文件系统读取
// （方便通过 --tuning 参数调试）。
//
// 参数:
//   - path: 配置文件路径
//
// 返回:
//   - *PetTuningConfig: 加载成功后的配置
//   - error: 读取、解析或验证失败
func LoadPetTuningConfig(path string) (*PetTuningConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pet tuning config: %w", err)
	}
	return ParsePetTuningConfig(data)
}

// ParsePetTuningConfig 解析 YAML 内容
// 未出现的字段保留默认值
func ParsePetTuningConfig(data []byte) (*PetTuningConfig, error) {
	cfg := DefaultPetTuningConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse pet tuning config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pet tuning config: %w", err)
	}
	return cfg, nil
}

// Validate 验证配置有效性
func (c *PetTuningConfig) Validate() error {
	if c.Progress.Max < interaction.DisplayMax {
		return fmt.Errorf("progress.max must be >= %.0f, got %.2f", interaction.DisplayMax, c.Progress.Max)
	}
	if c.Progress.Initial < 0 || c.Progress.Initial > c.Progress.Max {
		return fmt.Errorf("progress.initial must be in [0, %.2f], got %.2f", c.Progress.Max, c.Progress.Initial)
	}
	if c.Happiness.Initial < 0 || c.Happiness.Initial > interaction.HappinessMax {
		return fmt.Errorf("happiness.initial must be in [0, 100], got %.2f", c.Happiness.Initial)
	}

	rates := map[string]float64{
		"progress.growRate":   c.Progress.GrowRate,
		"progress.decayRate":  c.Progress.DecayRate,
		"happiness.decayRate": c.Happiness.DecayRate,
		"happiness.petGain":   c.Happiness.PetGain,
		"feed.gain":           c.Feed.Gain,
		"input.moveThreshold": c.Input.MoveThreshold,
	}
	for name, v := range rates {
		if v < 0 {
			return fmt.Errorf("%s cannot be negative, got %.4f", name, v)
		}
	}

	if c.Feed.CooldownFrames < 0 {
		return fmt.Errorf("feed.cooldownFrames cannot be negative, got %d", c.Feed.CooldownFrames)
	}
	if c.Effects.PetHoldFrames < 0 {
		return fmt.Errorf("effects.petHoldFrames cannot be negative, got %d", c.Effects.PetHoldFrames)
	}
	if c.Input.PetTag == "" {
		return fmt.Errorf("input.petTag is required")
	}
	if c.Effects.FoodFade <= 0 {
		return fmt.Errorf("effects.foodFade must be positive, got %.4f", c.Effects.FoodFade)
	}
	if c.Effects.PetFrames <= 0 || c.Effects.SparklePeriod <= 0 {
		return fmt.Errorf("effects.petFrames and effects.sparklePeriod must be positive")
	}
	return nil
}

// Tuning 转换为核心交互参数
func (c *PetTuningConfig) Tuning() interaction.Tuning {
	return interaction.Tuning{
		PMax:               c.Progress.Max,
		GrowRate:           c.Progress.GrowRate,
		DecayRate:          c.Progress.DecayRate,
		HappinessDecay:     c.Happiness.DecayRate,
		PetGain:            c.Happiness.PetGain,
		FeedGain:           c.Feed.Gain,
		InitialProgress:    c.Progress.Initial,
		InitialHappiness:   c.Happiness.Initial,
		MoveThreshold:      c.Input.MoveThreshold,
		FeedCooldownFrames: c.Feed.CooldownFrames,
		PetTag:             c.Input.PetTag,
		PetBurstHoldFrames: c.Effects.PetHoldFrames,
	}
}

// readConfigFile 读取配置文件：嵌入资源优先，其次本地文件
func readConfigFile(path string) ([]byte, error) {
	if embedded.IsInitialized() && embedded.Exists(path) {
		return embedded.ReadFile(path)
	}
	return os.ReadFile(path)
}
