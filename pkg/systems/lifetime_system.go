package systems

import (
	"github.com/gonewx/dogpet/pkg/components"
	"github.com/gonewx/dogpet/pkg/ecs"
)

// LifetimeSystem 管理实体的生命周期
// 每帧推进一次，过期实体被标记删除，由调用者在帧末统一清理
type LifetimeSystem struct {
	entityManager *ecs.EntityManager
}

// NewLifetimeSystem 创建一个新的生命周期系统
func NewLifetimeSystem(em *ecs.EntityManager) *LifetimeSystem {
	return &LifetimeSystem{
		entityManager: em,
	}
}

// Update 推进一帧
func (s *LifetimeSystem) Update() {
	entities := ecs.GetEntitiesWith1[*components.LifetimeComponent](s.entityManager)

	for _, id := range entities {
		lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		if !ok {
			continue
		}

		lifetime.CurrentFrames++
		if lifetime.CurrentFrames >= lifetime.MaxFrames {
			lifetime.IsExpired = true
		}

		if lifetime.IsExpired {
			s.entityManager.DestroyEntity(id)
		}
	}
}
