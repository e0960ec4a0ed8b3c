package scenes

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/config"
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/entities"
	"github.com/gonewx/towerdefense/pkg/game"
	"github.com/gonewx/towerdefense/pkg/navigation"
	"github.com/gonewx/towerdefense/pkg/systems"
	"github.com/gonewx/towerdefense/pkg/types"
	"github.com/gonewx/towerdefense/pkg/utils"
)

// NewGameScene 创建处于 Ready 状态的游戏场景
//
// 关卡的静态障碍物在创建时加入寻路图，并显示 Ready 覆盖层。
func NewGameScene(cfg Config) *GameScene {
	s := &GameScene{
		level:      cfg.Level,
		enemyStats: cfg.EnemyStats,
		towerStats: cfg.TowerStats,
		presenter:  cfg.Presenter,
		recorder:   cfg.Recorder,
		rng:        rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
		usedSlots:  make(map[int]bool),
		speed:      1,
	}
	if s.level == nil {
		s.level = config.DefaultLevel()
	}
	if s.enemyStats == nil {
		s.enemyStats = config.DefaultEnemyStats()
	}
	if s.towerStats == nil {
		s.towerStats = config.DefaultTowerStats()
	}
	if s.presenter == nil {
		s.presenter = game.NopPresenter{}
	}

	s.initECS()
	s.initStateHooks()
	s.loadLevelObstacles()

	s.presenter.ShowOverlay(game.OverlayReady)
	s.refreshHUD()

	log.Infof("[GameScene] 关卡 %s (%s): %d 波, %d 个障碍物, %d 个建塔位",
		s.level.ID, s.level.Name, len(s.level.Waves), len(s.level.Obstacles), len(s.level.TowerSlots))
	return s
}

// initECS 创建实体管理器、寻路图与各个系统，并把组件系统注册到注册表
func (s *GameScene) initECS() {
	s.entityManager = ecs.NewEntityManager()
	s.registry = systems.NewEntityRegistry(s.entityManager)
	s.bus = game.NewEventBus()
	s.timers = game.NewTimerQueue()
	s.economy = game.NewGameState(s.level.InitialLives, s.level.InitialGold)
	s.machine = game.NewStateMachine()

	s.graph = navigation.NewObstacleGraph(s.level.BufferRadius)
	s.paths = systems.NewPathAssignment(s.entityManager, s.registry, s.graph, s.level.EndPoint)
	s.waves = systems.NewWaveScheduler(s.level.Waves, s.timers, s.spawnFromWave, s.onWaveStarted)

	s.animationSystem = systems.NewAnimationSystem(s.entityManager)
	s.firingSystem = systems.NewFiringSystem(s.entityManager, s.registry, s.spawnProjectile)
	s.agentSystem = systems.NewAgentSystem(s.entityManager)
	s.movementSystem = systems.NewMovementSystem(s.entityManager)
	s.projectileSystem = systems.NewProjectileSystem(s.entityManager, s.registry, s.paths, s.bus)

	s.registry.RegisterSystem(s.animationSystem)
	s.registry.RegisterSystem(s.firingSystem)
	s.registry.RegisterSystem(s.agentSystem)
	s.registry.RegisterSystem(s.movementSystem)
	s.registry.RegisterSystem(s.projectileSystem)

	s.targetingSystem = systems.NewTargetingSystem(s.entityManager)
	s.combatSystem = systems.NewCombatSystem(systems.CombatDeps{
		EntityManager: s.entityManager,
		Registry:      s.registry,
		Paths:         s.paths,
		Waves:         s.waves,
		Economy:       s.economy,
		Machine:       s.machine,
		Presenter:     s.presenter,
		Bus:           s.bus,
		Timers:        s.timers,
		GoalThreshold: s.level.GoalThreshold,
		RefreshHUD:    s.refreshHUD,
	})
	s.zOrderSystem = systems.NewZOrderSystem(s.entityManager, s.registry)
}

// initStateHooks 注册状态进入时的效果
func (s *GameScene) initStateHooks() {
	s.machine.OnChange(func(from, to game.State) {
		s.bus.Publish(game.Event{Type: game.EventStateChanged, From: from, To: to})
	})
	s.machine.OnEnter(game.StateActive, func(game.State) {
		s.presenter.HideOverlay(game.OverlayReady)
		s.presenter.PlayMusic()
		s.waves.StartNextWave()
	})
	s.machine.OnEnter(game.StateWin, func(game.State) {
		s.enterEnd(true)
	})
	s.machine.OnEnter(game.StateLose, func(game.State) {
		s.enterEnd(false)
	})
	s.machine.OnEnter(game.StateReady, func(game.State) {
		s.resetRun()
		s.presenter.ShowOverlay(game.OverlayReady)
	})
}

// enterEnd 胜负效果：音效、停止音乐、覆盖层，1 秒后场景减速
func (s *GameScene) enterEnd(won bool) {
	sound, overlay := game.SoundYouLose, game.OverlayLose
	if won {
		sound, overlay = game.SoundYouWin, game.OverlayWin
	}

	s.waves.CancelPending()
	s.ceaseFire()
	s.presenter.PlaySound(sound)
	s.presenter.StopMusic()
	s.presenter.ShowOverlay(overlay)
	s.timers.Schedule(endSlowdownKey, EndSlowdownDelay, func() {
		s.setSpeed(EndSceneSpeed)
	})

	lives := max(0, s.economy.Lives)
	log.Infof("[GameScene] 对局结束: %s, 剩余生命 %d", overlay, lives)
	if s.recorder != nil {
		if err := s.recorder.RecordResult(s.level.ID, won, lives); err != nil {
			log.Warnf("[GameScene] 保存对局记录失败: %v", err)
		}
	}
}

// ceaseFire 清空所有防御塔的目标并移除飞行中的投射物
func (s *GameScene) ceaseFire() {
	for _, id := range s.registry.Entities() {
		if firing, ok := ecs.GetComponent[*components.FiringComponent](s.entityManager, id); ok {
			firing.Target = 0
		}
		if ecs.HasComponent[*components.ProjectileComponent](s.entityManager, id) {
			s.registry.Remove(id)
		}
	}
}

// resetRun 清空场景并恢复关卡初始状态
func (s *GameScene) resetRun() {
	s.registry.Clear()
	s.entityManager.RemoveMarkedEntities()

	s.timers.Reset()
	s.waves.Reset()
	s.economy.Reset()
	clear(s.usedSlots)

	s.graph.Reset()
	s.loadLevelObstacles()

	s.setSpeed(1)
	s.refreshHUD()
	log.Debugf("[GameScene] 对局已重置")
}

// loadLevelObstacles 创建关卡静态障碍物并一次性加入寻路图
func (s *GameScene) loadLevelObstacles() {
	if len(s.level.Obstacles) == 0 {
		return
	}
	footprints := make([]utils.Polygon, 0, len(s.level.Obstacles))
	for _, obstacle := range s.level.Obstacles {
		s.registry.Add(entities.NewObstacleEntity(s.entityManager, obstacle))
		footprints = append(footprints, obstacle.ShadowFootprint())
	}
	s.graph.AddObstacles(footprints)
}

// spawnFromWave 波次定时器触发的生成
func (s *GameScene) spawnFromWave(enemyType types.EnemyType) {
	if _, err := s.AddEnemy(enemyType); err != nil {
		log.Warnf("[GameScene] 波次生成失败: %v", err)
	}
}

func (s *GameScene) onWaveStarted(wave, total int) {
	s.presenter.PlaySound(game.SoundNewWave)
	s.refreshHUD()
	s.bus.Publish(game.Event{Type: game.EventWaveStarted, Amount: wave})
	log.Debugf("[GameScene] 第 %d/%d 波开始", wave, total)
}

// spawnProjectile 防御塔开火时从塔身发射投射物
func (s *GameScene) spawnProjectile(tower, target ecs.EntityID, firing *components.FiringComponent) {
	towerSprite, ok := ecs.GetComponent[*components.SpriteComponent](s.entityManager, tower)
	if !ok {
		return
	}
	targetSprite, ok := ecs.GetComponent[*components.SpriteComponent](s.entityManager, target)
	if !ok {
		return
	}
	id := entities.NewProjectileEntity(s.entityManager, tower, target,
		towerSprite.Position(), targetSprite.Position(), firing)
	s.registry.Add(id)
}
