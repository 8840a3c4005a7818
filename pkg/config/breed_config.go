package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// BreedsPath 品种列表配置文件
const BreedsPath = "data/breeds.yaml"

// DefaultBreedID 默认品种，模型加载失败时回退到该品种
const DefaultBreedID = "dog"

// BreedConfig 单个品种
type BreedConfig struct {
	ID    string `yaml:"id"`    // 品种ID，同时决定模型文件名 data/models/<id>.yaml
	Label string `yaml:"label"` // 显示名称
}

// BreedListConfig 品种列表
type BreedListConfig struct {
	Default string        `yaml:"default"`
	Breeds  []BreedConfig `yaml:"breeds"`
}

// LoadBreedListConfig 加载品种列表
func LoadBreedListConfig(path string) (*BreedListConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read breed list %s: %w", path, err)
	}

	var cfg BreedListConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse breed list %s: %w", path, err)
	}
	if cfg.Default == "" {
		cfg.Default = DefaultBreedID
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid breed list %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate 验证品种列表
//   - 至少一个品种
//   - ID 非空且不重复
//   - 默认品种必须在列表中
func (c *BreedListConfig) Validate() error {
	if len(c.Breeds) == 0 {
		return fmt.Errorf("at least one breed is required")
	}

	seen := make(map[string]bool, len(c.Breeds))
	for i, b := range c.Breeds {
		if b.ID == "" {
			return fmt.Errorf("breed %d: id is required", i)
		}
		if seen[b.ID] {
			return fmt.Errorf("duplicate breed id %q", b.ID)
		}
		seen[b.ID] = true
	}

	if !seen[c.Default] {
		return fmt.Errorf("default breed %q not in breed list", c.Default)
	}
	return nil
}

// Find 查找品种
func (c *BreedListConfig) Find(id string) (BreedConfig, bool) {
	for _, b := range c.Breeds {
		if b.ID == id {
			return b, true
		}
	}
	return BreedConfig{}, false
}

// IDs 返回所有品种ID（配置顺序）
func (c *BreedListConfig) IDs() []string {
	ids := make([]string, len(c.Breeds))
	for i, b := range c.Breeds {
		ids[i] = b.ID
	}
	return ids
}

// ModelPath 品种模型文件路径
func ModelPath(breedID string) string {
	return fmt.Sprintf("data/models/%s.yaml", breedID)
}
