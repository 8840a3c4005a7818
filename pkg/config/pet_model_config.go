package config

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// 模型部件形状
const (
	ShapeEllipse = "ellipse" // 以 (X,Y) 为中心，Width×Height 为直径
	ShapeRect    = "rect"    // 以 (X,Y) 为中心，Width×Height 为边长
	ShapeCapsule = "capsule" // (X,Y)→(X2,Y2) 线段，Radius 为半径
)

// PetModelConfig 宠物模型配置
//
// 配置文件位置: data/models/<breed>.yaml
// 坐标为模型单位（Y 轴向上），渲染时由相机取景换算到屏幕像素。
type PetModelConfig struct {
	Name      string            `yaml:"name"`      // 模型名称
	HitTag    string            `yaml:"hitTag"`    // 碰撞体标签，空则使用交互参数中的 petTag
	BaseColor string            `yaml:"baseColor"` // 基础颜色 #RRGGBB
	Scale     float64           `yaml:"scale"`     // 模型整体缩放
	Parts     []ModelPartConfig `yaml:"parts"`
}

// ModelPartConfig 模型部件
type ModelPartConfig struct {
	Name   string  `yaml:"name"`
	Shape  string  `yaml:"shape"` // ellipse / rect / capsule
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	X2     float64 `yaml:"x2"`     // 仅 capsule
	Y2     float64 `yaml:"y2"`     // 仅 capsule
	Radius float64 `yaml:"radius"` // 仅 capsule
	Layer  int     `yaml:"layer"`  // 深度层，越大越靠近观察者
	// Color 固定颜色；为空时跟随模型颜色（换色时一起改变）
	Color string `yaml:"color,omitempty"`
}

// ParsePetModelConfig 解析模型 YAML
//
// 参数:
//   - data: YAML 内容
//
// 返回:
//   - *PetModelConfig: 解析后的模型（Scale 缺省为 1）
//   - error: 解析或验证失败
func ParsePetModelConfig(data []byte) (*PetModelConfig, error) {
	var cfg PetModelConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse pet model: %w", err)
	}
	if cfg.Scale == 0 {
		cfg.Scale = 1
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pet model %q: %w", cfg.Name, err)
	}
	return &cfg, nil
}

// LoadPetModelConfig 从文件加载模型
func LoadPetModelConfig(path string) (*PetModelConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pet model %s: %w", path, err)
	}
	return ParsePetModelConfig(data)
}

// Validate 验证模型
func (c *PetModelConfig) Validate() error {
	if len(c.Parts) == 0 {
		return fmt.Errorf("model has no parts")
	}
	if c.Scale <= 0 {
		return fmt.Errorf("scale must be positive, got %.2f", c.Scale)
	}
	if _, err := ParseHexColor(c.BaseColor); err != nil {
		return fmt.Errorf("baseColor: %w", err)
	}

	for i, p := range c.Parts {
		switch p.Shape {
		case ShapeEllipse, ShapeRect:
			if p.Width <= 0 || p.Height <= 0 {
				return fmt.Errorf("part %d (%s): width and height must be positive", i, p.Name)
			}
		case ShapeCapsule:
			if p.Radius <= 0 {
				return fmt.Errorf("part %d (%s): radius must be positive", i, p.Name)
			}
		default:
			return fmt.Errorf("part %d (%s): unknown shape %q", i, p.Name, p.Shape)
		}
		if p.Color != "" {
			if _, err := ParseHexColor(p.Color); err != nil {
				return fmt.Errorf("part %d (%s): %w", i, p.Name, err)
			}
		}
	}
	return nil
}

// Bounds 返回部件包围盒（模型单位，未乘 Scale）
func (c *PetModelConfig) Bounds() (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range c.Parts {
		x0, y0, x1, y1 := p.Bounds()
		minX = math.Min(minX, x0)
		minY = math.Min(minY, y0)
		maxX = math.Max(maxX, x1)
		maxY = math.Max(maxY, y1)
	}
	if len(c.Parts) == 0 {
		return 0, 0, 0, 0
	}
	return minX, minY, maxX, maxY
}

// Bounds 返回单个部件的包围盒
func (p ModelPartConfig) Bounds() (minX, minY, maxX, maxY float64) {
	switch p.Shape {
	case ShapeCapsule:
		return math.Min(p.X, p.X2) - p.Radius, math.Min(p.Y, p.Y2) - p.Radius,
			math.Max(p.X, p.X2) + p.Radius, math.Max(p.Y, p.Y2) + p.Radius
	default:
		return p.X - p.Width/2, p.Y - p.Height/2, p.X + p.Width/2, p.Y + p.Height/2
	}
}

// ParseHexColor 解析 #RRGGBB 或 RRGGBB 格式的颜色
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q: want #RRGGBB", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// FormatHexColor 将颜色格式化为 #rrggbb
func FormatHexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
