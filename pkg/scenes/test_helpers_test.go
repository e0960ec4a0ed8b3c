package scenes

import (
	"slices"

	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/config"
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/game"
	"github.com/gonewx/towerdefense/pkg/types"
	"github.com/gonewx/towerdefense/pkg/utils"
)

const frame = 1.0 / 60

// recordingPresenter 记录收到的表现层指令
type recordingPresenter struct {
	sounds  []string
	huds    []game.HUD
	shown   []game.OverlayKind
	hidden  []game.OverlayKind
	speeds  []float64
	musicOn bool
}

func (p *recordingPresenter) PlaySound(name string) { p.sounds = append(p.sounds, name) }
func (p *recordingPresenter) PlayMusic() { p.musicOn = true }
func (p *recordingPresenter) StopMusic() { p.musicOn = false }
func (p *recordingPresenter) RefreshHUD(h game.HUD) { p.huds = append(p.huds, h) }
func (p *recordingPresenter) ShowOverlay(k game.OverlayKind) { p.shown = append(p.shown, k) }
func (p *recordingPresenter) HideOverlay(k game.OverlayKind) { p.hidden = append(p.hidden, k) }
func (p *recordingPresenter) SetSceneSpeed(s float64) { p.speeds = append(p.speeds, s) }
func (p *recordingPresenter) played(name string) bool { return slices.Contains(p.sounds, name) }
func (p *recordingPresenter) lastHUD() game.HUD { return p.huds[len(p.huds)-1] }

// fakeRecorder 记录对局结果
type fakeRecorder struct {
	levels []string
	wins   []bool
	lives  []int
}

func (r *fakeRecorder) RecordResult(levelID string, won bool, livesLeft int) error {
	r.levels = append(r.levels, levelID)
	r.wins = append(r.wins, won)
	r.lives = append(r.lives, livesLeft)
	return nil
}

// openLevel 无障碍物、单建塔位、生成点无抖动的测试关卡
func openLevel(waves ...config.WaveConfig) *config.LevelConfig {
	level := config.DefaultLevel()
	level.ID = "test"
	level.Obstacles = nil
	level.TowerSlots = []utils.Point{utils.Pt(220, 300)}
	level.SpawnJitter = 1e-6
	if len(waves) > 0 {
		level.Waves = waves
	}
	return level
}

func newTestScene(level *config.LevelConfig) (*GameScene, *recordingPresenter, *fakeRecorder) {
	p := &recordingPresenter{}
	r := &fakeRecorder{}
	s := NewGameScene(Config{Level: level, Presenter: p, Recorder: r, Seed: 7})
	return s, p, r
}

// runUntil 推进直到状态离开 Active 或超过 seconds 秒
func runUntil(s *GameScene, seconds float64) {
	for t := 0.0; t < seconds && s.State() == game.StateActive; t += frame {
		s.Update(frame)
	}
}

func spriteOf(s *GameScene, id ecs.EntityID) *components.SpriteComponent {
	sprite, _ := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)
	return sprite
}

// moveLength 离散移动敌人当前移动链的总长度
func moveLength(s *GameScene, id ecs.EntityID) float64 {
	actions, ok := ecs.GetComponent[*components.ActionComponent](s.entityManager, id)
	if !ok {
		return 0
	}
	seq, ok := actions.Get(components.MoveActionKey)
	if !ok {
		return 0
	}
	total := 0.0
	for _, seg := range seq.Segments {
		total += seg.From.DistanceTo(seg.To)
	}
	return total
}

func lightWave(count int) config.WaveConfig {
	return config.WaveConfig{EnemyCount: count, EnemyDelay: 1, EnemyType: types.EnemyLight}
}

func eventTypes(events []game.Event) []game.EventType {
	out := make([]game.EventType, len(events))
	for i, e := range events {
		out[i] = e.Type
	}
	return out
}
