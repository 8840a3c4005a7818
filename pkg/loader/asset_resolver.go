package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gonewx/dogpet/pkg/config"
	"github.com/gonewx/dogpet/pkg/embedded"
)

// AssetResolver 宠物模型资源的查询与加载
type AssetResolver interface {
	// Exists 探测品种模型是否存在
	Exists(ctx context.Context, breed string) bool
	// Load 加载并验证品种模型
	Load(ctx context.Context, breed string) (*config.PetModelConfig, error)
}

// ConfigAssetResolver 从 data/models/<breed>.yaml 读取模型
// 优先使用嵌入文件系统，未初始化时回退到工作目录
type ConfigAssetResolver struct {
	// Root 文件系统回退时的根目录，为空表示当前目录
	Root string
}

// NewConfigAssetResolver 创建默认资源解析器
func NewConfigAssetResolver() *ConfigAssetResolver {
	return &ConfigAssetResolver{}
}

// Exists 实现 AssetResolver
func (r *ConfigAssetResolver) Exists(ctx context.Context, breed string) bool {
	if breed == "" || ctx.Err() != nil {
		return false
	}
	path := config.ModelPath(breed)
	if embedded.IsInitialized() && embedded.Exists(path) {
		return true
	}
	_, err := os.Stat(r.fsPath(path))
	return err == nil
}

// Load 实现 AssetResolver
func (r *ConfigAssetResolver) Load(ctx context.Context, breed string) (*config.PetModelConfig, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := config.ModelPath(breed)
	if embedded.IsInitialized() && embedded.Exists(path) {
		return config.LoadPetModelConfig(path)
	}

	data, err := os.ReadFile(r.fsPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read model %s: %w", path, err)
	}
	return config.ParsePetModelConfig(data)
}

func (r *ConfigAssetResolver) fsPath(path string) string {
	if r.Root == "" {
		return path
	}
	return filepath.Join(r.Root, filepath.FromSlash(path))
}
