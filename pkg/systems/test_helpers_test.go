package systems

import (
	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/config"
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/entities"
	"github.com/gonewx/towerdefense/pkg/game"
	"github.com/gonewx/towerdefense/pkg/navigation"
	"github.com/gonewx/towerdefense/pkg/types"
	"github.com/gonewx/towerdefense/pkg/utils"
)

// recordingPresenter 记录收到的表现层指令
type recordingPresenter struct {
	sounds  []string
	huds    []game.HUD
	shown   []game.OverlayKind
	hidden  []game.OverlayKind
	speeds  []float64
	musicOn bool
	stopped int
}

func (p *recordingPresenter) PlaySound(name string) { p.sounds = append(p.sounds, name) }
func (p *recordingPresenter) PlayMusic() { p.musicOn = true }
func (p *recordingPresenter) StopMusic() {
	p.musicOn = false
	p.stopped++
}
func (p *recordingPresenter) RefreshHUD(h game.HUD) { p.huds = append(p.huds, h) }
func (p *recordingPresenter) ShowOverlay(k game.OverlayKind) { p.shown = append(p.shown, k) }
func (p *recordingPresenter) HideOverlay(k game.OverlayKind) { p.hidden = append(p.hidden, k) }
func (p *recordingPresenter) SetSceneSpeed(s float64) { p.speeds = append(p.speeds, s) }

// testWorld 组装结算相关的系统
type testWorld struct {
	em        *ecs.EntityManager
	registry  *EntityRegistry
	graph     *navigation.ObstacleGraph
	paths     *PathAssignment
	timers    *game.TimerQueue
	waves     *WaveScheduler
	economy   *game.GameState
	machine   *game.StateMachine
	presenter *recordingPresenter
	bus       *game.EventBus
	combat    *CombatSystem
	spawned   []types.EnemyType
}

func newTestWorld(waves []config.WaveConfig) *testWorld {
	w := &testWorld{
		em:        ecs.NewEntityManager(),
		graph:     navigation.NewObstacleGraph(navigation.DefaultBufferRadius),
		timers:    game.NewTimerQueue(),
		economy:   game.NewGameState(5, 75),
		machine:   game.NewStateMachine(),
		presenter: &recordingPresenter{},
		bus:       game.NewEventBus(),
	}
	w.registry = NewEntityRegistry(w.em)
	w.paths = NewPathAssignment(w.em, w.registry, w.graph, utils.Pt(1224, 384))
	w.waves = NewWaveScheduler(waves, w.timers, func(t types.EnemyType) {
		w.spawned = append(w.spawned, t)
	}, nil)
	w.combat = NewCombatSystem(CombatDeps{
		EntityManager: w.em,
		Registry:      w.registry,
		Paths:         w.paths,
		Waves:         w.waves,
		Economy:       w.economy,
		Machine:       w.machine,
		Presenter:     w.presenter,
		Bus:           w.bus,
		Timers:        w.timers,
		GoalThreshold: 1124,
	})
	return w
}

// addEnemy 创建并注册一个敌人
func (w *testWorld) addEnemy(t types.EnemyType, pos utils.Point) ecs.EntityID {
	stats, _ := config.DefaultEnemyStats().Get(t)
	id := entities.NewEnemyEntity(w.em, t, stats, pos)
	w.registry.Add(id)
	return id
}

func (w *testWorld) health(id ecs.EntityID) *components.HealthComponent {
	h, _ := ecs.GetComponent[*components.HealthComponent](w.em, id)
	return h
}

func (w *testWorld) sprite(id ecs.EntityID) *components.SpriteComponent {
	s, _ := ecs.GetComponent[*components.SpriteComponent](w.em, id)
	return s
}

func eventTypes(events []game.Event) []game.EventType {
	out := make([]game.EventType, len(events))
	for i, e := range events {
		out[i] = e.Type
	}
	return out
}
