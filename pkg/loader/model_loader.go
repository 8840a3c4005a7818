// Package loader 异步加载宠物模型，失败时回退到默认品种
//
// 加载在后台 goroutine 中进行，帧循环通过 Poll 非阻塞地取回结果。
package loader

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gonewx/dogpet/pkg/config"
)

var (
	// ErrModelUnavailable 品种模型不存在
	ErrModelUnavailable = errors.New("model not available")
	// ErrDefaultModelFailed 默认品种也无法加载，没有可用模型
	ErrDefaultModelFailed = errors.New("default model failed")
)

// DefaultLoadTimeout 单次加载（含回退）的超时
const DefaultLoadTimeout = 10 * time.Second

// ModelResult 一次加载请求的结果
type ModelResult struct {
	// Requested 请求的品种
	Requested string
	// Breed 实际加载的品种（回退时为默认品种），失败时为空
	Breed string
	// Model 加载成功的模型，默认品种也失败时为 nil
	Model *config.PetModelConfig
	// Notices 需要展示给用户的消息
	Notices []string
	// Err 第一处失败的原因，成功加载请求的品种时为 nil
	Err error
}

// FellBack 是否回退到了默认品种
func (r ModelResult) FellBack() bool {
	return r.Model != nil && r.Breed != r.Requested
}

// ModelLoader 异步模型加载器
//
// Request 在后台 goroutine 中探测并加载模型，帧循环每帧调用 Poll 取回结果，
// 永不阻塞。新的请求会取代尚未完成的旧请求，旧结果被丢弃。
type ModelLoader struct {
	resolver     AssetResolver
	defaultBreed string
	timeout      time.Duration

	pending chan ModelResult
	cancel  context.CancelFunc
	seq     uint64
}

// NewModelLoader 创建加载器
//
// 参数：
//   - resolver: 资源解析器
//   - defaultBreed: 回退品种，为空时使用 config.DefaultBreedID
func NewModelLoader(resolver AssetResolver, defaultBreed string) *ModelLoader {
	if defaultBreed == "" {
		defaultBreed = config.DefaultBreedID
	}
	return &ModelLoader{
		resolver:     resolver,
		defaultBreed: defaultBreed,
		timeout:      DefaultLoadTimeout,
	}
}

// DefaultBreed 回退品种
func (l *ModelLoader) DefaultBreed() string {
	return l.defaultBreed
}

// Request 开始加载品种模型，返回请求序号
func (l *ModelLoader) Request(breed string) uint64 {
	if l.cancel != nil {
		l.cancel()
	}
	l.seq++

	ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
	ch := make(chan ModelResult, 1)
	l.pending = ch
	l.cancel = cancel

	log.Printf("[ModelLoader] 请求加载品种: %s (#%d)", breed, l.seq)
	go func() {
		defer cancel()
		ch <- l.Resolve(ctx, breed)
	}()

	return l.seq
}

// IsLoading 是否有未完成的请求
func (l *ModelLoader) IsLoading() bool {
	return l.pending != nil
}

// Poll 取回当前请求的结果（非阻塞）
// 没有结果时 ok=false
func (l *ModelLoader) Poll() (ModelResult, bool) {
	if l.pending == nil {
		return ModelResult{}, false
	}
	select {
	case res := <-l.pending:
		l.pending = nil
		l.cancel = nil
		return res, true
	default:
		return ModelResult{}, false
	}
}

// Wait 阻塞等待当前请求完成，供命令行工具和测试使用
func (l *ModelLoader) Wait(ctx context.Context) (ModelResult, error) {
	if l.pending == nil {
		return ModelResult{}, fmt.Errorf("no pending request")
	}
	select {
	case res := <-l.pending:
		l.pending = nil
		l.cancel = nil
		return res, nil
	case <-ctx.Done():
		return ModelResult{}, ctx.Err()
	}
}

// Resolve 同步执行一次加载：探测、加载，失败时回退一次到默认品种
func (l *ModelLoader) Resolve(ctx context.Context, breed string) ModelResult {
	res := ModelResult{Requested: breed}

	model, notice, err := l.try(ctx, breed)
	if err == nil {
		res.Breed = breed
		res.Model = model
		return res
	}
	res.Err = err
	res.Notices = append(res.Notices, notice)
	log.Printf("[ModelLoader] %s", notice)

	if breed == l.defaultBreed {
		res.Err = fmt.Errorf("%w: %v", ErrDefaultModelFailed, res.Err)
		return res
	}

	model, notice, err = l.try(ctx, l.defaultBreed)
	if err != nil {
		res.Notices = append(res.Notices, notice)
		res.Err = fmt.Errorf("%w: %v", ErrDefaultModelFailed, err)
		log.Printf("[ModelLoader] %s", notice)
		return res
	}

	log.Printf("[ModelLoader] 已回退到默认品种: %s", l.defaultBreed)
	res.Breed = l.defaultBreed
	res.Model = model
	return res
}

// try 探测并加载一个品种，失败时返回用户可见的消息
func (l *ModelLoader) try(ctx context.Context, breed string) (*config.PetModelConfig, string, error) {
	if !l.resolver.Exists(ctx, breed) {
		notice := fmt.Sprintf("Model for %s is not available. Using default.", breed)
		if breed == l.defaultBreed {
			notice = fmt.Sprintf("Model for %s is not available.", breed)
		}
		return nil, notice, fmt.Errorf("%s: %w", breed, ErrModelUnavailable)
	}

	model, err := l.resolver.Load(ctx, breed)
	if err != nil {
		return nil, fmt.Sprintf("Failed to load %s model. %v", breed, err), fmt.Errorf("load %s: %w", breed, err)
	}
	return model, "", nil
}
