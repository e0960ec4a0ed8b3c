package systems

import (
	"github.com/charmbracelet/log"
	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/game"
)

const (
	// CorpseDuration 死亡动画播放多久后移除尸体（秒）
	CorpseDuration = 2.0

	corpseTimerKey = "corpse"
)

// CombatSystem 结算敌人的死亡与漏过
//
// 每个敌人先检查血量（死亡优先），再检查是否越过终点线。
// 遍历期间只收集待处理实体，遍历结束后统一处理：
// 漏过的敌人立即移除，被击杀的敌人留作尸体播放死亡动画，CorpseDuration 后移除。
type CombatSystem struct {
	entityManager *ecs.EntityManager
	registry      *EntityRegistry
	paths         *PathAssignment
	waves         *WaveScheduler
	economy       *game.GameState
	machine       *game.StateMachine
	presenter     game.Presenter
	bus           *game.EventBus
	timers        *game.TimerQueue
	goalThreshold float64
	refreshHUD    func()
}

// CombatDeps CombatSystem 的依赖
type CombatDeps struct {
	EntityManager *ecs.EntityManager
	Registry      *EntityRegistry
	Paths         *PathAssignment
	Waves         *WaveScheduler
	Economy       *game.GameState
	Machine       *game.StateMachine
	Presenter     game.Presenter
	Bus           *game.EventBus
	// Timers 尸体移除的定时器，为 nil 时尸体立即移除
	Timers        *game.TimerQueue
	GoalThreshold float64
	RefreshHUD    func()
}

// NewCombatSystem 创建结算系统
func NewCombatSystem(deps CombatDeps) *CombatSystem {
	presenter := deps.Presenter
	if presenter == nil {
		presenter = game.NopPresenter{}
	}
	refresh := deps.RefreshHUD
	if refresh == nil {
		refresh = func() {}
	}
	return &CombatSystem{
		entityManager: deps.EntityManager,
		registry:      deps.Registry,
		paths:         deps.Paths,
		waves:         deps.Waves,
		economy:       deps.Economy,
		machine:       deps.Machine,
		presenter:     presenter,
		bus:           deps.Bus,
		timers:        deps.Timers,
		goalThreshold: deps.GoalThreshold,
		refreshHUD:    refresh,
	}
}

// Resolve 按顺序结算敌人，返回本次结算（击杀或漏过）的实体
func (s *CombatSystem) Resolve(enemies []ecs.EntityID) []ecs.EntityID {
	var resolved, removals, corpses []ecs.EntityID
	removing := make(map[ecs.EntityID]bool)

	for _, id := range enemies {
		if IsCorpse(s.entityManager, id) {
			continue
		}
		enemy, ok := ecs.GetComponent[*components.EnemyComponent](s.entityManager, id)
		if !ok {
			continue
		}
		sprite, ok := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)
		if !ok {
			continue
		}
		health, hasHealth := ecs.GetComponent[*components.HealthComponent](s.entityManager, id)

		switch {
		case hasHealth && health.IsDepleted():
			removing[id] = true
			corpses = append(corpses, id)
			resolved = append(resolved, id)
			s.resolveDeath(id, enemy, sprite, removing)
		case sprite.X > s.goalThreshold:
			removing[id] = true
			removals = append(removals, id)
			resolved = append(resolved, id)
			s.resolveLeak(id, enemy, sprite, removing)
		}
	}

	for _, id := range removals {
		s.registry.Remove(id)
	}
	for _, id := range corpses {
		s.leaveCorpse(id)
	}
	return resolved
}

// leaveCorpse 把被击杀的敌人留在场上播放死亡动画，到期后移除
func (s *CombatSystem) leaveCorpse(id ecs.EntityID) {
	if s.timers == nil {
		s.registry.Remove(id)
		return
	}
	ecs.AddComponent(s.entityManager, id, &components.CorpseComponent{})
	s.timers.Schedule(corpseTimerKey, CorpseDuration, func() {
		s.registry.Remove(id)
	})
}

// IsCorpse 实体是否是等待移除的尸体
func IsCorpse(em *ecs.EntityManager, id ecs.EntityID) bool {
	return ecs.HasComponent[*components.CorpseComponent](em, id)
}

func (s *CombatSystem) resolveDeath(id ecs.EntityID, enemy *components.EnemyComponent, sprite *components.SpriteComponent, removing map[ecs.EntityID]bool) {
	exhausted := s.waves.RemoveEnemyFromWave()
	s.checkWin(exhausted, removing)

	if anim, ok := ecs.GetComponent[*components.AnimationComponent](s.entityManager, id); ok {
		anim.Request(components.AnimationDead)
	}
	s.presenter.PlaySound(enemy.Type.DeadSound())
	s.paths.StopEnemyMoving(id)

	s.economy.AddGold(enemy.GoldReward)
	s.refreshHUD()

	log.Debugf("[CombatSystem] 敌人 %d (%s) 被击杀，奖励 %d 金币", id, enemy.Type, enemy.GoldReward)
	s.publish(game.Event{
		Type:      game.EventDied,
		Entity:    id,
		EnemyType: enemy.Type,
		Position:  sprite.Position(),
		Amount:    enemy.GoldReward,
	})
}

func (s *CombatSystem) resolveLeak(id ecs.EntityID, enemy *components.EnemyComponent, sprite *components.SpriteComponent, removing map[ecs.EntityID]bool) {
	exhausted := s.waves.RemoveEnemyFromWave()

	lives := s.economy.LoseLives(enemy.BaseDamage)
	s.refreshHUD()
	s.presenter.PlaySound(game.SoundLifeLost)

	if lives <= 0 {
		s.machine.Enter(game.StateLose)
	} else {
		s.checkWin(exhausted, removing)
	}

	s.paths.StopEnemyMoving(id)

	log.Debugf("[CombatSystem] 敌人 %d (%s) 到达终点，剩余生命 %d", id, enemy.Type, lives)
	s.publish(game.Event{
		Type:      game.EventLeaked,
		Entity:    id,
		EnemyType: enemy.Type,
		Position:  sprite.Position(),
		Amount:    enemy.BaseDamage,
	})
}

// checkWin 波次用完、场上无存活敌人且没有待生成的敌人时进入胜利
func (s *CombatSystem) checkWin(exhausted bool, removing map[ecs.EntityID]bool) bool {
	if !exhausted || s.waves.PendingSpawns() > 0 {
		return false
	}
	if s.LiveEnemyCount(removing) > 0 {
		return false
	}
	return s.machine.Enter(game.StateWin)
}

// LiveEnemyCount 场上血量大于 0 的敌人数量，尸体与 exclude 中的实体不计入
func (s *CombatSystem) LiveEnemyCount(exclude map[ecs.EntityID]bool) int {
	n := 0
	for _, id := range s.registry.Entities() {
		if exclude[id] || !ecs.HasComponent[*components.EnemyComponent](s.entityManager, id) || IsCorpse(s.entityManager, id) {
			continue
		}
		if health, ok := ecs.GetComponent[*components.HealthComponent](s.entityManager, id); ok && health.IsDepleted() {
			continue
		}
		n++
	}
	return n
}

func (s *CombatSystem) publish(e game.Event) {
	if s.bus != nil {
		s.bus.Publish(e)
	}
}
