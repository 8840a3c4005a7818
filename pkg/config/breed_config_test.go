package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadBreedListConfig(t *testing.T) {
	cfg, err := LoadBreedListConfig("../../data/breeds.yaml")
	if err != nil {
		t.Fatalf("LoadBreedListConfig failed: %v", err)
	}

	if cfg.Default != DefaultBreedID {
		t.Errorf("default: got %q, want %q", cfg.Default, DefaultBreedID)
	}
	if b, ok := cfg.Find("corgi"); !ok || b.Label != "Corgi" {
		t.Errorf("Find(corgi): got %+v, %v", b, ok)
	}
	if _, ok := cfg.Find("unknown"); ok {
		t.Error("Find(unknown) should fail")
	}

	ids := cfg.IDs()
	if len(ids) == 0 || ids[0] != "dog" {
		t.Errorf("IDs(): got %v, want dog first", ids)
	}
}

// TestBreedModelsExist 默认品种必须有模型文件，其余品种可以缺失（走回退）
func TestBreedModelsExist(t *testing.T) {
	if _, err := os.Stat(filepath.Join("../..", ModelPath(DefaultBreedID))); err != nil {
		t.Fatalf("default breed model missing: %v", err)
	}
}

func TestBreedListValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  BreedListConfig
	}{
		{"空列表", BreedListConfig{Default: "dog"}},
		{"空ID", BreedListConfig{Default: "dog", Breeds: []BreedConfig{{ID: "dog"}, {ID: ""}}}},
		{"重复ID", BreedListConfig{Default: "dog", Breeds: []BreedConfig{{ID: "dog"}, {ID: "dog"}}}},
		{"默认品种不在列表", BreedListConfig{Default: "cat", Breeds: []BreedConfig{{ID: "dog"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestModelPath(t *testing.T) {
	if got := ModelPath("corgi"); got != "data/models/corgi.yaml" {
		t.Errorf("ModelPath: got %q", got)
	}
}
