package systems

import (
	"slices"
	"testing"

	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/config"
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/entities"
	"github.com/gonewx/towerdefense/pkg/game"
	"github.com/gonewx/towerdefense/pkg/types"
	"github.com/gonewx/towerdefense/pkg/utils"
)

// addTower 创建并注册一座防御塔
func (w *testWorld) addTower(t types.TowerType, pos utils.Point) ecs.EntityID {
	stats, _ := config.DefaultTowerStats().Get(t)
	id := entities.NewTowerEntity(w.em, t, stats, pos, -1)
	w.registry.Add(id)
	return id
}

func (w *testWorld) firing(id ecs.EntityID) *components.FiringComponent {
	f, _ := ecs.GetComponent[*components.FiringComponent](w.em, id)
	return f
}

func TestFiringSystem_Cooldown(t *testing.T) {
	w := newTestWorld(nil)
	var shots []ecs.EntityID
	firingSys := NewFiringSystem(w.em, w.registry, func(tower, target ecs.EntityID, _ *components.FiringComponent) {
		shots = append(shots, target)
	})
	w.registry.RegisterSystem(firingSys)

	tower := w.addTower(types.TowerWood, utils.Pt(300, 300))
	enemy := w.addEnemy(types.EnemyLight, utils.Pt(300, 384))

	// 无目标时不倒计时
	firingSys.Update(5)
	if len(shots) != 0 || w.firing(tower).Cooldown != 0 {
		t.Fatalf("idle tower fired or cooled down: shots=%v cooldown=%v", shots, w.firing(tower).Cooldown)
	}

	w.firing(tower).Target = enemy
	firingSys.Update(0.1)
	if len(shots) != 1 {
		t.Fatalf("shots = %d, want 1 (ready immediately)", len(shots))
	}
	firingSys.Update(0.5)
	if len(shots) != 1 {
		t.Errorf("fired during cooldown")
	}
	firingSys.Update(0.5)
	if len(shots) != 2 {
		t.Errorf("shots = %d, want 2 after FireRate elapsed", len(shots))
	}

	anim, _ := ecs.GetComponent[*components.AnimationComponent](w.em, tower)
	if state, ok := anim.Requested(); !ok || state != components.AnimationAttacking {
		t.Errorf("requested = %v/%v, want Attacking", state, ok)
	}
}

func TestFiringSystem_StaleTargetCleared(t *testing.T) {
	w := newTestWorld(nil)
	firingSys := NewFiringSystem(w.em, w.registry, nil)
	w.registry.RegisterSystem(firingSys)

	tower := w.addTower(types.TowerWood, utils.Pt(300, 300))
	enemy := w.addEnemy(types.EnemyLight, utils.Pt(300, 384))
	w.firing(tower).Target = enemy
	w.registry.Remove(enemy)

	firingSys.Update(1)
	if w.firing(tower).Target != 0 {
		t.Errorf("target = %d, want 0 after enemy left", w.firing(tower).Target)
	}
}

func TestProjectileSystem_HitAppliesDamageAndSlow(t *testing.T) {
	w := newTestWorld(nil)
	projSys := NewProjectileSystem(w.em, w.registry, w.paths, w.bus)
	w.registry.RegisterSystem(projSys)

	tower := w.addTower(types.TowerRock, utils.Pt(300, 300))
	enemy := w.addEnemy(types.EnemyLight, utils.Pt(300, 400))
	proj := entities.NewProjectileEntity(w.em, tower, enemy, utils.Pt(300, 300), utils.Pt(300, 400), w.firing(tower))
	w.registry.Add(proj)

	projSys.Update(0.1) // 500 px/s * 0.1 = 50 px
	if y := w.sprite(proj).Y; y != 350 {
		t.Fatalf("projectile y = %v, want 350", y)
	}
	projSys.Update(0.1)

	if w.registry.Contains(proj) {
		t.Error("projectile should be removed on arrival")
	}
	if h := w.health(enemy).CurrentHealth; h != 50 {
		t.Errorf("enemy health = %d, want 50", h)
	}
	enemyComp, _ := ecs.GetComponent[*components.EnemyComponent](w.em, enemy)
	if !enemyComp.HasBeenSlowed || enemyComp.SpeedFactor != 0.5 {
		t.Errorf("slowed=%v factor=%v", enemyComp.HasBeenSlowed, enemyComp.SpeedFactor)
	}
	anim, _ := ecs.GetComponent[*components.AnimationComponent](w.em, enemy)
	if state, _ := anim.Requested(); state != components.AnimationHit {
		t.Errorf("requested = %v, want Hit", state)
	}
	if got := eventTypes(w.bus.Drain()); !slices.Equal(got, []game.EventType{game.EventDamaged}) {
		t.Errorf("events = %v", got)
	}
}

func TestProjectileSystem_TracksMovingTarget(t *testing.T) {
	w := newTestWorld(nil)
	projSys := NewProjectileSystem(w.em, w.registry, w.paths, w.bus)
	w.registry.RegisterSystem(projSys)

	tower := w.addTower(types.TowerWood, utils.Pt(0, 0))
	enemy := w.addEnemy(types.EnemyLight, utils.Pt(1000, 0))
	proj := entities.NewProjectileEntity(w.em, tower, enemy, utils.Pt(0, 0), utils.Pt(1000, 0), w.firing(tower))
	w.registry.Add(proj)

	w.sprite(enemy).SetPosition(utils.Pt(0, 1000))
	projSys.Update(0.5)

	pc, _ := ecs.GetComponent[*components.ProjectileComponent](w.em, proj)
	if !pc.LastTargetPosition.Equal(utils.Pt(0, 1000)) {
		t.Errorf("last target position = %v, want (0,1000)", pc.LastTargetPosition)
	}
	if y := w.sprite(proj).Y; y != 300 {
		t.Errorf("projectile y = %v, want 300", y)
	}
}

func TestProjectileSystem_MissWhenTargetGone(t *testing.T) {
	w := newTestWorld(nil)
	projSys := NewProjectileSystem(w.em, w.registry, w.paths, w.bus)
	w.registry.RegisterSystem(projSys)

	tower := w.addTower(types.TowerWood, utils.Pt(300, 300))
	enemy := w.addEnemy(types.EnemyLight, utils.Pt(300, 320))
	proj := entities.NewProjectileEntity(w.em, tower, enemy, utils.Pt(300, 300), utils.Pt(300, 320), w.firing(tower))
	w.registry.Add(proj)
	w.registry.Remove(enemy)

	projSys.Update(1)

	if w.registry.Contains(proj) {
		t.Error("projectile should be removed at the last known position")
	}
	if h := w.health(enemy).CurrentHealth; h != 60 {
		t.Errorf("enemy health = %d, want 60 (no hit)", h)
	}
	if len(w.bus.Drain()) != 0 {
		t.Error("a miss should not publish events")
	}
}
