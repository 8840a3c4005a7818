package loader

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gonewx/dogpet/pkg/config"
)

// fakeResolver 可控的资源解析器
type fakeResolver struct {
	models  map[string]*config.PetModelConfig
	failing map[string]error
	block   chan struct{}
}

func (f *fakeResolver) Exists(ctx context.Context, breed string) bool {
	if f.block != nil {
		<-f.block
	}
	_, ok := f.models[breed]
	_, bad := f.failing[breed]
	return ok || bad
}

func (f *fakeResolver) Load(ctx context.Context, breed string) (*config.PetModelConfig, error) {
	if err, ok := f.failing[breed]; ok {
		return nil, err
	}
	return f.models[breed], nil
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{
		models: map[string]*config.PetModelConfig{
			"dog":   {Name: "dog", Scale: 1},
			"corgi": {Name: "corgi", Scale: 1},
		},
		failing: map[string]error{},
	}
}

// TestResolve 测试加载与回退策略
func TestResolve(t *testing.T) {
	tests := []struct {
		name        string
		breed       string
		setup       func(f *fakeResolver)
		wantBreed   string
		wantNotices []string
		wantErr     error
	}{
		{
			name:      "直接加载成功",
			breed:     "corgi",
			wantBreed: "corgi",
		},
		{
			name:        "不存在的品种回退到 dog",
			breed:       "unknown",
			wantBreed:   "dog",
			wantNotices: []string{"Model for unknown is not available. Using default."},
			wantErr:     ErrModelUnavailable,
		},
		{
			name:  "加载失败回退到 dog",
			breed: "corgi",
			setup: func(f *fakeResolver) {
				f.failing["corgi"] = errors.New("bad yaml")
			},
			wantBreed:   "dog",
			wantNotices: []string{"Failed to load corgi model. bad yaml"},
		},
		{
			name:  "默认品种失败为终态",
			breed: "unknown",
			setup: func(f *fakeResolver) {
				delete(f.models, "dog")
			},
			wantNotices: []string{
				"Model for unknown is not available. Using default.",
				"Model for dog is not available.",
			},
			wantErr: ErrDefaultModelFailed,
		},
		{
			name:  "直接请求默认品种失败不重试",
			breed: "dog",
			setup: func(f *fakeResolver) {
				f.failing["dog"] = errors.New("broken")
			},
			wantNotices: []string{"Failed to load dog model. broken"},
			wantErr:     ErrDefaultModelFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeResolver()
			if tt.setup != nil {
				tt.setup(f)
			}
			l := NewModelLoader(f, "")

			res := l.Resolve(context.Background(), tt.breed)

			if res.Breed != tt.wantBreed {
				t.Errorf("Breed = %q, want %q", res.Breed, tt.wantBreed)
			}
			if (res.Model != nil) != (tt.wantBreed != "") {
				t.Errorf("Model = %v, want loaded=%v", res.Model, tt.wantBreed != "")
			}
			if strings.Join(res.Notices, "|") != strings.Join(tt.wantNotices, "|") {
				t.Errorf("Notices = %q, want %q", res.Notices, tt.wantNotices)
			}
			if tt.wantErr != nil && !errors.Is(res.Err, tt.wantErr) {
				t.Errorf("Err = %v, want %v", res.Err, tt.wantErr)
			}
			if tt.wantErr == nil && len(tt.wantNotices) == 0 && res.Err != nil {
				t.Errorf("Err = %v, want nil", res.Err)
			}
			if res.FellBack() != (tt.wantBreed != "" && tt.wantBreed != tt.breed) {
				t.Errorf("FellBack = %v", res.FellBack())
			}
		})
	}
}

// TestRequestPoll 测试异步请求与轮询
func TestRequestPoll(t *testing.T) {
	l := NewModelLoader(newFakeResolver(), "dog")

	if _, ok := l.Poll(); ok {
		t.Fatal("没有请求时 Poll 不应返回结果")
	}

	l.Request("corgi")
	if !l.IsLoading() {
		t.Fatal("请求后应处于加载中")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	res, err := l.Wait(ctx)
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if res.Breed != "corgi" {
		t.Errorf("Breed = %q, want corgi", res.Breed)
	}
	if l.IsLoading() {
		t.Error("结果取回后不应处于加载中")
	}
}

// TestPollNonBlocking 测试 Poll 在加载未完成时立即返回
func TestPollNonBlocking(t *testing.T) {
	f := newFakeResolver()
	f.block = make(chan struct{})
	l := NewModelLoader(f, "dog")

	l.Request("corgi")
	if _, ok := l.Poll(); ok {
		t.Fatal("加载未完成时 Poll 不应返回结果")
	}
	if !l.IsLoading() {
		t.Fatal("应仍处于加载中")
	}

	close(f.block)
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if res, ok := l.Poll(); ok {
			if res.Breed != "corgi" {
				t.Errorf("Breed = %q, want corgi", res.Breed)
			}
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("超时未取回结果")
}

// TestNewerRequestSupersedes 测试新请求取代旧请求
func TestNewerRequestSupersedes(t *testing.T) {
	l := NewModelLoader(newFakeResolver(), "dog")

	l.Request("unknown")
	l.Request("corgi")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	res, err := l.Wait(ctx)
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if res.Requested != "corgi" || len(res.Notices) != 0 {
		t.Errorf("应只取回最新请求的结果, got %+v", res)
	}
	if _, ok := l.Poll(); ok {
		t.Error("旧请求的结果不应再出现")
	}
}

// TestWaitWithoutRequest 测试没有请求时 Wait 报错
func TestWaitWithoutRequest(t *testing.T) {
	l := NewModelLoader(newFakeResolver(), "dog")
	if _, err := l.Wait(context.Background()); err == nil {
		t.Error("没有请求时 Wait 应返回错误")
	}
}

// TestConfigAssetResolver 测试从仓库 data 目录加载模型
func TestConfigAssetResolver(t *testing.T) {
	r := &ConfigAssetResolver{Root: "../.."}
	ctx := context.Background()

	if !r.Exists(ctx, "dog") {
		t.Fatal("dog 模型应存在")
	}
	if r.Exists(ctx, "poodle") {
		t.Error("poodle 没有模型文件")
	}
	if r.Exists(ctx, "") {
		t.Error("空品种不应存在")
	}

	m, err := r.Load(ctx, "dog")
	if err != nil {
		t.Fatalf("Load(dog): %v", err)
	}
	if m.HitTag != "dog" || len(m.Parts) == 0 {
		t.Errorf("dog 模型内容异常: %+v", m)
	}

	if _, err := r.Load(ctx, "poodle"); err == nil {
		t.Error("Load(poodle) 应失败")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := r.Load(cancelled, "dog"); !errors.Is(err, context.Canceled) {
		t.Errorf("取消的 ctx 应返回 context.Canceled, got %v", err)
	}
}

// TestUnknownBreedFallsBackToDog 测试真实资源下未知品种回退
func TestUnknownBreedFallsBackToDog(t *testing.T) {
	l := NewModelLoader(&ConfigAssetResolver{Root: "../.."}, "")

	res := l.Resolve(context.Background(), "unknown")
	if res.Breed != "dog" || res.Model == nil {
		t.Fatalf("应回退到 dog, got %+v", res)
	}
	if len(res.Notices) != 1 || res.Notices[0] != "Model for unknown is not available. Using default." {
		t.Errorf("Notices = %q", res.Notices)
	}
}
