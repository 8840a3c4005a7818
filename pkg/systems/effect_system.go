package systems

import (
	"image/color"
	"log"
	"math/rand"

	"github.com/gonewx/dogpet/internal/interaction"
	"github.com/gonewx/dogpet/pkg/components"
	"github.com/gonewx/dogpet/pkg/config"
	"github.com/gonewx/dogpet/pkg/ecs"
)

// alphaEpsilon 透明度低于该值视为完全透明
// 0.02 累减 50 次的浮点误差会留下约 1e-16 的残值
const alphaEpsilon = 1e-9

// 抚摸爱心的固定参数
const (
	heartRise = 0.02
	heartSize = 0.18
)

var heartColor = color.RGBA{R: 0xff, G: 0x4f, B: 0x7b, A: 0xff}

// EffectSystem 特效系统
//
// 实现 interaction.EffectSink：每个特效都是带显式帧计数的实体，
// 由帧驱动器每帧调用 Step 推进一次，结束后移除。
// 随机数源由调用者注入，相同种子产生相同的粒子布局。
type EffectSystem struct {
	entityManager *ecs.EntityManager
	lifetime      *LifetimeSystem
	rng           *rand.Rand
	tuning        config.EffectTuning

	// origin 返回宠物原点（模型坐标），喂食粒子围绕它生成
	origin func() (x, y float64)

	// onSpawn 特效生成回调（播放音效等），可为 nil
	onSpawn func(kind interaction.EffectKind)
}

// NewEffectSystem 创建特效系统
//
// 参数：
//   - em: 实体管理器
//   - tuning: 特效参数
//   - rng: 随机数源（nil 时使用固定种子 1）
func NewEffectSystem(em *ecs.EntityManager, tuning config.EffectTuning, rng *rand.Rand) *EffectSystem {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &EffectSystem{
		entityManager: em,
		lifetime:      NewLifetimeSystem(em),
		rng:           rng,
		tuning:        tuning,
		origin:        func() (float64, float64) { return 0, 0 },
	}
}

// SetOrigin 设置喂食粒子的生成中心
func (s *EffectSystem) SetOrigin(origin func() (x, y float64)) {
	if origin != nil {
		s.origin = origin
	}
}

// SetSpawnHook 设置特效生成回调
func (s *EffectSystem) SetSpawnHook(hook func(kind interaction.EffectKind)) {
	s.onSpawn = hook
}

// Spawn 处理一个特效请求
func (s *EffectSystem) Spawn(req interaction.EffectRequest) {
	switch req.Kind {
	case interaction.EffectFoodBurst:
		s.spawnFood()
	case interaction.EffectPetBurst:
		if req.Point == nil {
			return
		}
		s.spawnHearts(req.Point.X, req.Point.Y)
	case interaction.EffectSparkle:
		if s.SparkleCount() > 0 {
			log.Printf("[EffectSystem] 闪光已存在，忽略重复请求")
			return
		}
		s.spawnSparkles()
	case interaction.EffectSparkleClear:
		s.clearSparkles()
	default:
		log.Printf("[EffectSystem] 未知特效类型: %v", req.Kind)
		return
	}

	if s.onSpawn != nil {
		s.onSpawn(req.Kind)
	}
}

// Step 推进所有特效一帧并清理已结束的实体
func (s *EffectSystem) Step() {
	s.updateParticles()
	s.updateSparkles()
	s.lifetime.Update()
	s.entityManager.RemoveMarkedEntities()
}

// ParticleCount 当前粒子数量（喂食 + 爱心）
func (s *EffectSystem) ParticleCount() int {
	return len(ecs.GetEntitiesWith1[*components.ParticleComponent](s.entityManager))
}

// SparkleCount 当前闪光标记数量
func (s *EffectSystem) SparkleCount() int {
	return len(ecs.GetEntitiesWith1[*components.SparkleComponent](s.entityManager))
}

// Clear 立即移除所有特效
func (s *EffectSystem) Clear() {
	for _, id := range ecs.GetEntitiesWith1[*components.ParticleComponent](s.entityManager) {
		s.entityManager.DestroyEntity(id)
	}
	s.clearSparkles()
	s.entityManager.RemoveMarkedEntities()
}

// spawnFood 在宠物周围 2×2×2 的范围内生成随机颜色的喂食粒子
func (s *EffectSystem) spawnFood() {
	ox, oy := s.origin()
	for i := 0; i < s.tuning.FoodParticles; i++ {
		id := s.entityManager.CreateEntity()
		ecs.AddComponent(s.entityManager, id, &components.PositionComponent{
			X: ox + s.rng.Float64()*2 - 1,
			Y: oy + s.rng.Float64()*2 - 1,
			Z: s.rng.Float64()*2 - 1,
		})
		ecs.AddComponent(s.entityManager, id, &components.ParticleComponent{
			Kind:          components.ParticleFood,
			VelocityY:     s.tuning.FoodRise,
			RotationSpeed: s.tuning.FoodSpin,
			Size:          0.1,
			Alpha:         1,
			AlphaFade:     s.tuning.FoodFade,
			Color: color.RGBA{
				R: uint8(s.rng.Intn(256)),
				G: uint8(s.rng.Intn(256)),
				B: uint8(s.rng.Intn(256)),
				A: 0xff,
			},
		})
	}
	log.Printf("[EffectSystem] 生成喂食粒子 %d 个", s.tuning.FoodParticles)
}

// spawnHearts 在接触点生成向上飘散的爱心
func (s *EffectSystem) spawnHearts(x, y float64) {
	frames := s.tuning.PetFrames
	for i := 0; i < s.tuning.PetParticles; i++ {
		id := s.entityManager.CreateEntity()
		ecs.AddComponent(s.entityManager, id, &components.PositionComponent{X: x, Y: y, Z: 1})
		ecs.AddComponent(s.entityManager, id, &components.ParticleComponent{
			Kind:      components.ParticleHeart,
			VelocityX: (s.rng.Float64() - 0.5) * 0.02,
			VelocityY: heartRise * (0.75 + s.rng.Float64()*0.5),
			Size:      heartSize,
			Alpha:     1,
			AlphaFade: 1 / float64(frames),
			Color:     heartColor,
		})
		ecs.AddComponent(s.entityManager, id, &components.LifetimeComponent{MaxFrames: frames})
	}
}

// spawnSparkles 在进度条上生成闪光标记
func (s *EffectSystem) spawnSparkles() {
	for i := 0; i < s.tuning.SparkleCount; i++ {
		id := s.entityManager.CreateEntity()
		ecs.AddComponent(s.entityManager, id, &components.SparkleComponent{
			U:      s.rng.Float64(),
			V:      s.rng.Float64(),
			Delay:  s.rng.Intn(s.tuning.SparkleMaxDelay + 1),
			Period: s.tuning.SparklePeriod,
		})
	}
	log.Printf("[EffectSystem] 进度已满，生成闪光 %d 个", s.tuning.SparkleCount)
}

func (s *EffectSystem) clearSparkles() {
	for _, id := range ecs.GetEntitiesWith1[*components.SparkleComponent](s.entityManager) {
		s.entityManager.DestroyEntity(id)
	}
}

func (s *EffectSystem) updateParticles() {
	entities := ecs.GetEntitiesWith2[*components.ParticleComponent, *components.PositionComponent](s.entityManager)
	for _, id := range entities {
		p, _ := ecs.GetComponent[*components.ParticleComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		pos.X += p.VelocityX
		pos.Y += p.VelocityY
		p.Rotation += p.RotationSpeed
		p.Alpha -= p.AlphaFade

		if p.Alpha <= alphaEpsilon {
			p.Alpha = 0
			s.entityManager.DestroyEntity(id)
		}
	}
}

func (s *EffectSystem) updateSparkles() {
	for _, id := range ecs.GetEntitiesWith1[*components.SparkleComponent](s.entityManager) {
		sp, _ := ecs.GetComponent[*components.SparkleComponent](s.entityManager, id)
		if sp.Delay > 0 {
			sp.Delay--
			continue
		}
		if sp.Period > 0 {
			sp.Phase = (sp.Phase + 1) % sp.Period
		}
	}
}

// SparkleIntensity 闪光当前亮度 0-1（延迟期间为 0，之后按三角波闪烁）
func SparkleIntensity(sp *components.SparkleComponent) float64 {
	if sp.Delay > 0 || sp.Period <= 0 {
		return 0
	}
	half := float64(sp.Period) / 2
	d := float64(sp.Phase) - half
	if d < 0 {
		d = -d
	}
	return 1 - d/half
}
