package systems

import (
	"math/rand"
	"testing"

	"github.com/gonewx/dogpet/internal/interaction"
	"github.com/gonewx/dogpet/pkg/components"
	"github.com/gonewx/dogpet/pkg/config"
	"github.com/gonewx/dogpet/pkg/ecs"
)

func newTestEffectSystem(seed int64) (*ecs.EntityManager, *EffectSystem) {
	em := ecs.NewEntityManager()
	tuning := config.DefaultPetTuningConfig().Effects
	return em, NewEffectSystem(em, tuning, rand.New(rand.NewSource(seed)))
}

// TestFoodBurstLifecycle 20 个粒子，每帧淡出 0.02，第 50 帧全部移除
func TestFoodBurstLifecycle(t *testing.T) {
	em, s := newTestEffectSystem(42)
	s.Spawn(interaction.EffectRequest{Kind: interaction.EffectFoodBurst})

	if got := s.ParticleCount(); got != 20 {
		t.Fatalf("particles after spawn: got %d, want 20", got)
	}

	ids := ecs.GetEntitiesWith1[*components.ParticleComponent](em)
	startY := make(map[ecs.EntityID]float64)
	for _, id := range ids {
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		if pos.X < -1 || pos.X > 1 || pos.Y < -1 || pos.Y > 1 || pos.Z < -1 || pos.Z > 1 {
			t.Errorf("particle %d outside the 2x2x2 box: %+v", id, pos)
		}
		startY[id] = pos.Y
	}

	s.Step()
	for _, id := range ids {
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		p, _ := ecs.GetComponent[*components.ParticleComponent](em, id)
		if d := pos.Y - startY[id]; d < 0.0099 || d > 0.0101 {
			t.Errorf("particle should rise 0.01 per frame, rose %v", d)
		}
		if p.Rotation < 0.0099 || p.Rotation > 0.0101 {
			t.Errorf("particle should spin 0.01 per frame, got %v", p.Rotation)
		}
	}

	for i := 1; i < 49; i++ {
		s.Step()
	}
	if got := s.ParticleCount(); got != 20 {
		t.Fatalf("particles after 49 frames: got %d, want 20", got)
	}

	s.Step()
	if got := s.ParticleCount(); got != 0 {
		t.Errorf("particles after 50 frames: got %d, want 0", got)
	}
	if em.EntityCount() != 0 {
		t.Errorf("all entities should be removed, %d left", em.EntityCount())
	}
}

func TestFoodBurstFollowsOrigin(t *testing.T) {
	em, s := newTestEffectSystem(1)
	s.SetOrigin(func() (float64, float64) { return 10, 20 })
	s.Spawn(interaction.EffectRequest{Kind: interaction.EffectFoodBurst})

	for _, id := range ecs.GetEntitiesWith1[*components.PositionComponent](em) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		if pos.X < 9 || pos.X > 11 || pos.Y < 19 || pos.Y > 21 {
			t.Errorf("particle should be around the origin, got %+v", pos)
		}
	}
}

func TestPetBurstLifecycle(t *testing.T) {
	em, s := newTestEffectSystem(7)
	s.Spawn(interaction.EffectRequest{Kind: interaction.EffectPetBurst, Point: &interaction.Point3{X: 0.5, Y: 0.25}})

	if got := s.ParticleCount(); got != 6 {
		t.Fatalf("hearts: got %d, want 6", got)
	}
	for _, id := range ecs.GetEntitiesWith1[*components.ParticleComponent](em) {
		p, _ := ecs.GetComponent[*components.ParticleComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		if p.Kind != components.ParticleHeart {
			t.Errorf("kind: got %v, want heart", p.Kind)
		}
		if pos.X != 0.5 || pos.Y != 0.25 {
			t.Errorf("hearts should start at the contact point, got %+v", pos)
		}
	}

	for i := 0; i < 39; i++ {
		s.Step()
	}
	if got := s.ParticleCount(); got != 6 {
		t.Fatalf("hearts after 39 frames: got %d, want 6", got)
	}
	s.Step()
	if got := s.ParticleCount(); got != 0 {
		t.Errorf("hearts after 40 frames: got %d, want 0", got)
	}
}

func TestPetBurstWithoutPointIgnored(t *testing.T) {
	_, s := newTestEffectSystem(7)
	s.Spawn(interaction.EffectRequest{Kind: interaction.EffectPetBurst})
	if s.ParticleCount() != 0 {
		t.Error("PetBurst without a point should be ignored")
	}
}

// TestSparklePersistsUntilCleared 闪光不会自行结束，重复请求被忽略
func TestSparklePersistsUntilCleared(t *testing.T) {
	em, s := newTestEffectSystem(3)
	s.Spawn(interaction.EffectRequest{Kind: interaction.EffectSparkle})
	if got := s.SparkleCount(); got != 10 {
		t.Fatalf("sparkles: got %d, want 10", got)
	}

	for _, id := range ecs.GetEntitiesWith1[*components.SparkleComponent](em) {
		sp, _ := ecs.GetComponent[*components.SparkleComponent](em, id)
		if sp.Delay < 0 || sp.Delay > 60 {
			t.Errorf("delay out of range: %d", sp.Delay)
		}
		if sp.U < 0 || sp.U > 1 || sp.V < 0 || sp.V > 1 {
			t.Errorf("sparkle outside the bar: %+v", sp)
		}
	}

	s.Spawn(interaction.EffectRequest{Kind: interaction.EffectSparkle})
	if got := s.SparkleCount(); got != 10 {
		t.Errorf("duplicate sparkle request: got %d markers, want 10", got)
	}

	for i := 0; i < 500; i++ {
		s.Step()
	}
	if got := s.SparkleCount(); got != 10 {
		t.Errorf("sparkles should persist, got %d", got)
	}

	s.Spawn(interaction.EffectRequest{Kind: interaction.EffectSparkleClear})
	s.Step()
	if got := s.SparkleCount(); got != 0 {
		t.Errorf("sparkles after clear: got %d, want 0", got)
	}
}

func TestEffectSystemDeterministic(t *testing.T) {
	emA, a := newTestEffectSystem(99)
	emB, b := newTestEffectSystem(99)
	a.Spawn(interaction.EffectRequest{Kind: interaction.EffectFoodBurst})
	b.Spawn(interaction.EffectRequest{Kind: interaction.EffectFoodBurst})

	idsA := ecs.GetEntitiesWith1[*components.PositionComponent](emA)
	idsB := ecs.GetEntitiesWith1[*components.PositionComponent](emB)
	for i := range idsA {
		pa, _ := ecs.GetComponent[*components.PositionComponent](emA, idsA[i])
		pb, _ := ecs.GetComponent[*components.PositionComponent](emB, idsB[i])
		if *pa != *pb {
			t.Fatalf("same seed should give same layout: %+v vs %+v", pa, pb)
		}
	}
}

func TestEffectSpawnHook(t *testing.T) {
	_, s := newTestEffectSystem(1)
	var kinds []interaction.EffectKind
	s.SetSpawnHook(func(k interaction.EffectKind) { kinds = append(kinds, k) })

	s.Spawn(interaction.EffectRequest{Kind: interaction.EffectFoodBurst})
	s.Spawn(interaction.EffectRequest{Kind: interaction.EffectSparkle})
	s.Spawn(interaction.EffectRequest{Kind: interaction.EffectSparkle}) // 重复，被忽略

	if len(kinds) != 2 || kinds[0] != interaction.EffectFoodBurst || kinds[1] != interaction.EffectSparkle {
		t.Errorf("hook calls: got %v", kinds)
	}
}

func TestEffectClear(t *testing.T) {
	em, s := newTestEffectSystem(1)
	s.Spawn(interaction.EffectRequest{Kind: interaction.EffectFoodBurst})
	s.Spawn(interaction.EffectRequest{Kind: interaction.EffectSparkle})
	s.Clear()
	if em.EntityCount() != 0 {
		t.Errorf("Clear should remove everything, %d left", em.EntityCount())
	}
}

func TestSparkleIntensity(t *testing.T) {
	tests := []struct {
		name string
		sp   components.SparkleComponent
		want float64
	}{
		{"延迟中", components.SparkleComponent{Delay: 5, Period: 60}, 0},
		{"相位起点", components.SparkleComponent{Phase: 0, Period: 60}, 0},
		{"半周期最亮", components.SparkleComponent{Phase: 30, Period: 60}, 1},
		{"四分之一", components.SparkleComponent{Phase: 15, Period: 60}, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SparkleIntensity(&tt.sp); got != tt.want {
				t.Errorf("SparkleIntensity: got %v, want %v", got, tt.want)
			}
		})
	}
}
