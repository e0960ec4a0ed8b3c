package scenes

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/config"
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/game"
	"github.com/gonewx/towerdefense/pkg/navigation"
	"github.com/gonewx/towerdefense/pkg/systems"
	"github.com/gonewx/towerdefense/pkg/utils"
)

const (
	// EndSceneSpeed 胜负覆盖层出现后的场景速度
	EndSceneSpeed = 0.1
	// EndSlowdownDelay 进入胜负状态到减速之间的延迟（秒）
	EndSlowdownDelay = 1.0
	// SlotSnapRadius 点击位置与建塔位的最大距离
	SlotSnapRadius = 48.0

	endSlowdownKey = "end-slowdown"
)

// RunRecorder 记录已结束对局的结果，由 game.RecordManager 实现
type RunRecorder interface {
	RecordResult(levelID string, won bool, livesLeft int) error
}

// Config 游戏场景配置，零值字段使用内置默认值
type Config struct {
	Level      *config.LevelConfig
	EnemyStats *config.EnemyStatsConfig
	TowerStats *config.TowerStatsConfig
	Presenter  game.Presenter
	Recorder   RunRecorder
	// Seed 敌人生成点抖动的随机种子
	Seed uint64
}

// GameScene 塔防模拟核心
//
// 宿主每帧调用一次 Update；AddEnemy/AddTower/AddObstacle/Tap/Reset 是全部的外部修改入口。
// 所有状态只在 Update 与这些入口中同步修改。
type GameScene struct {
	level      *config.LevelConfig
	enemyStats *config.EnemyStatsConfig
	towerStats *config.TowerStatsConfig
	presenter  game.Presenter
	recorder   RunRecorder
	rng        *rand.Rand

	// ECS 与系统
	entityManager    *ecs.EntityManager
	registry         *systems.EntityRegistry
	animationSystem  *systems.AnimationSystem
	firingSystem     *systems.FiringSystem
	agentSystem      *systems.AgentSystem
	movementSystem   *systems.MovementSystem
	projectileSystem *systems.ProjectileSystem
	targetingSystem  *systems.TargetingSystem
	combatSystem     *systems.CombatSystem
	zOrderSystem     *systems.ZOrderSystem

	graph   *navigation.ObstacleGraph
	paths   *systems.PathAssignment
	timers  *game.TimerQueue
	waves   *systems.WaveScheduler
	economy *game.GameState
	machine *game.StateMachine
	bus     *game.EventBus

	// usedSlots 本局已占用的建塔位
	usedSlots map[int]bool
	// speed 场景速度倍率，作用于 Update 的 deltaTime
	speed float64
}

// Update 推进一帧
//
// 顺序：定时器 → 状态机 → 组件系统（动画、开火、代理、移动、投射物）
// → 目标选择与结算 → 延迟销毁 → Z 序。开火、目标选择与结算只在 Active 时进行。
func (s *GameScene) Update(deltaTime float64) {
	if deltaTime <= 0 {
		return
	}
	dt := deltaTime * s.speed

	s.timers.Advance(dt)
	s.machine.Update(dt)

	active := s.machine.Current() == game.StateActive
	s.animationSystem.Update(dt)
	if active {
		s.firingSystem.Update(dt)
	}
	s.agentSystem.Update(dt)
	s.movementSystem.Update(dt)
	s.projectileSystem.Update(dt)

	if active {
		enemies := s.liveEntitiesWith(isEnemy)
		s.targetingSystem.Update(enemies, s.liveEntitiesWith(isTower))
		s.combatSystem.Resolve(enemies)
	}

	s.entityManager.RemoveMarkedEntities()
	s.zOrderSystem.Update()
}

// Tap 玩家的点击/触摸：Ready 时开始对局，胜负状态时重新开始
func (s *GameScene) Tap() bool {
	switch s.machine.Current() {
	case game.StateReady:
		s.presenter.PlaySound(game.SoundMenu)
		return s.machine.Enter(game.StateActive)
	case game.StateWin, game.StateLose:
		s.presenter.PlaySound(game.SoundMenu)
		return s.Reset()
	}
	return false
}

// Reset 从胜负状态回到 Ready 并重置对局；其他状态下返回 false
func (s *GameScene) Reset() bool {
	return s.machine.Enter(game.StateReady)
}

// Events 事件总线
func (s *GameScene) Events() *game.EventBus {
	return s.bus
}

// State 当前对局状态
func (s *GameScene) State() game.State {
	return s.machine.Current()
}

// HUD 当前界面数据
func (s *GameScene) HUD() game.HUD {
	return game.HUD{
		Lives:      max(0, s.economy.Lives),
		Gold:       s.economy.Gold,
		Wave:       s.waves.CurrentWave(),
		TotalWaves: s.waves.TotalWaves(),
	}
}

// Level 当前关卡配置
func (s *GameScene) Level() *config.LevelConfig {
	return s.level
}

// TowerStats 防御塔属性表
func (s *GameScene) TowerStats() *config.TowerStatsConfig {
	return s.towerStats
}

// Speed 场景速度倍率
func (s *GameScene) Speed() float64 {
	return s.speed
}

// EntityManager 底层实体管理器，宿主绘制时只读访问
func (s *GameScene) EntityManager() *ecs.EntityManager {
	return s.entityManager
}

// Entities 场景中的实体（ID 升序）
func (s *GameScene) Entities() []ecs.EntityID {
	return s.registry.Entities()
}

// LiveEnemyCount 场上存活敌人数
func (s *GameScene) LiveEnemyCount() int {
	return s.combatSystem.LiveEnemyCount(nil)
}

// PendingSpawns 尚未生成的敌人数
func (s *GameScene) PendingSpawns() int {
	return s.waves.PendingSpawns()
}

// Obstacles 寻路图中的障碍物多边形
func (s *GameScene) Obstacles() []utils.Polygon {
	return s.graph.Obstacles()
}

func (s *GameScene) refreshHUD() {
	s.presenter.RefreshHUD(s.HUD())
}

func (s *GameScene) setSpeed(speed float64) {
	s.speed = speed
	s.presenter.SetSceneSpeed(speed)
	log.Debugf("[GameScene] 场景速度 %.2f", speed)
}

// isEnemy 存活的敌人，尸体不计入
func isEnemy(em *ecs.EntityManager, id ecs.EntityID) bool {
	return ecs.HasComponent[*components.EnemyComponent](em, id) && !systems.IsCorpse(em, id)
}

func isTower(em *ecs.EntityManager, id ecs.EntityID) bool {
	return ecs.HasComponent[*components.TowerComponent](em, id)
}

// liveEntitiesWith 按 ID 升序返回注册表中满足条件的实体
func (s *GameScene) liveEntitiesWith(match func(*ecs.EntityManager, ecs.EntityID) bool) []ecs.EntityID {
	var out []ecs.EntityID
	for _, id := range s.registry.Entities() {
		if match(s.entityManager, id) {
			out = append(out, id)
		}
	}
	return out
}
