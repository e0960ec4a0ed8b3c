// Package app 把塔防模拟核心接入 Ebitengine 窗口
//
// App 实现 ebiten.Game：读取鼠标/触摸/键盘输入，按固定步长推进 GameScene，
// 并根据 ScreenPresenter 记录的状态绘制画面、播放合成音效。
package app

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/gonewx/towerdefense/pkg/config"
	"github.com/gonewx/towerdefense/pkg/game"
	"github.com/gonewx/towerdefense/pkg/scenes"
	"github.com/gonewx/towerdefense/pkg/types"
	"github.com/gonewx/towerdefense/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// FrameTime 固定步长（秒）
const FrameTime = 1.0 / 60.0

// maxEventLog 屏幕底部保留的事件条数
const maxEventLog = 6

// Config 应用启动配置
type Config struct {
	Level      *config.LevelConfig
	EnemyStats *config.EnemyStatsConfig
	TowerStats *config.TowerStatsConfig
	Seed       uint64

	Settings *game.SettingsManager // 必填
	Records  *game.RecordManager   // 可为 nil，不保存对局记录
	// Mute 不创建音频上下文
	Mute bool
}

// App 游戏应用，实现 ebiten.Game 接口
type App struct {
	scene     *scenes.GameScene
	presenter *ScreenPresenter
	audio     *ToneAudio
	settings  *game.SettingsManager
	fonts     *fonts

	selectedTower  types.TowerType
	showFootprints bool
	message        string
	eventLog       []string

	pendingWindowSizeReset   bool // 退出全屏后延迟重设窗口大小
	windowSizeResetCountdown int
	pointer                  pointerState

	overlay    game.OverlayKind
	hasOverlay bool
	overlayAge float64 // 当前覆盖层已显示的时长（秒）
}

// NewApp 创建应用与游戏场景
func NewApp(cfg Config) (*App, error) {
	if cfg.Settings == nil {
		return nil, fmt.Errorf("new app: settings manager is required")
	}

	fnts, err := loadFonts()
	if err != nil {
		return nil, fmt.Errorf("new app: %w", err)
	}

	settings := cfg.Settings.GetSettings()
	a := &App{
		fonts:          fnts,
		settings:       cfg.Settings,
		selectedTower:  settings.SelectedTower,
		showFootprints: settings.ShowFootprints,
	}

	var sound SoundPlayer
	if !cfg.Mute {
		a.audio = NewToneAudio(audio.NewContext(SampleRate), cfg.Settings)
		sound = a.audio
	}
	a.presenter = NewScreenPresenter(sound)

	sceneCfg := scenes.Config{
		Level:      cfg.Level,
		EnemyStats: cfg.EnemyStats,
		TowerStats: cfg.TowerStats,
		Presenter:  a.presenter,
		Seed:       cfg.Seed,
	}
	if cfg.Records != nil {
		sceneCfg.Recorder = cfg.Records
	}
	a.scene = scenes.NewGameScene(sceneCfg)

	if settings.Fullscreen {
		ebiten.SetFullscreen(true)
	}
	log.Infof("[App] 初始化完成，关卡 %s", a.scene.Level().ID)
	return a, nil
}

// Update 处理输入并推进一帧
func (a *App) Update() error {
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
			a.pendingWindowSizeReset = false
		}
	}

	a.handleKeys()
	a.pointer = a.pointer.read()
	for _, pos := range a.pointer.pressed {
		a.handleTap(pos)
	}

	a.scene.Update(FrameTime)

	for _, event := range a.scene.Events().Drain() {
		a.logEvent(event)
	}
	a.updateOverlayAge()
	return nil
}

// updateOverlayAge 覆盖层切换时重新开始淡入
func (a *App) updateOverlayAge() {
	kind, ok := a.visibleOverlay()
	if ok != a.hasOverlay || kind != a.overlay {
		a.overlay, a.hasOverlay, a.overlayAge = kind, ok, 0
		return
	}
	a.overlayAge += FrameTime
}

func (a *App) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 窗口管理器需要几帧处理退出全屏
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
		fullscreen := ebiten.IsFullscreen()
		a.settings.Update(func(s *game.GameSettings) { s.Fullscreen = fullscreen })
		a.saveSettings()
	}

	if inpututil.IsKeyJustPressed(ebiten.Key1) {
		a.selectTower(types.TowerWood)
	}
	if inpututil.IsKeyJustPressed(ebiten.Key2) {
		a.selectTower(types.TowerRock)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		a.showFootprints = !a.showFootprints
		show := a.showFootprints
		a.settings.Update(func(s *game.GameSettings) { s.ShowFootprints = show })
		a.saveSettings()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		a.scene.Reset()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		enabled := a.settings.ToggleMusic()
		if a.audio != nil {
			a.audio.ApplySettings()
			if enabled && a.scene.State() == game.StateActive {
				a.audio.PlayMusic()
			}
		}
		a.saveSettings()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		a.settings.ToggleSound()
		a.saveSettings()
	}
}

// selectTower 切换建造类型并记住选择
func (a *App) selectTower(towerType types.TowerType) {
	a.selectedTower = towerType
	a.settings.Update(func(s *game.GameSettings) { s.SelectedTower = towerType })
	a.saveSettings()
}

func (a *App) saveSettings() {
	if err := a.settings.Save(); err != nil {
		log.Warnf("[App] Failed to save settings: %v", err)
	}
}

// handleTap 进行中时在点击处建塔，其他状态交给 Tap
func (a *App) handleTap(pos utils.Point) {
	if a.scene.State() != game.StateActive {
		a.scene.Tap()
		a.message = ""
		return
	}
	err := a.scene.AddTower(a.selectedTower, pos)
	switch {
	case err == nil:
		a.message = ""
	case errors.Is(err, game.ErrInsufficientGold):
		a.message = "Not enough gold"
	case errors.Is(err, game.ErrSlotUnavailable):
		a.message = "Towers can only be built on a free slot"
	default:
		a.message = err.Error()
	}
}

func (a *App) logEvent(event game.Event) {
	var line string
	switch event.Type {
	case game.EventDied:
		line = fmt.Sprintf("%s defeated, +%d gold", event.EnemyType, event.Amount)
	case game.EventLeaked:
		line = fmt.Sprintf("%s got through, -%d lives", event.EnemyType, event.Amount)
	case game.EventTowerPlaced:
		line = fmt.Sprintf("%s tower built, -%d gold", event.TowerType, event.Amount)
	case game.EventWaveStarted:
		line = a.presenter.HUD().WaveText()
	case game.EventStateChanged:
		line = fmt.Sprintf("%s -> %s", event.From, event.To)
	default:
		return
	}
	a.eventLog = append(a.eventLog, line)
	if len(a.eventLog) > maxEventLog {
		a.eventLog = a.eventLog[len(a.eventLog)-maxEventLog:]
	}
}

// Draw 绘制当前画面
func (a *App) Draw(screen *ebiten.Image) {
	a.drawScene(screen)
}

// DrawFinalScreen 全屏时用黑边填充并线性缩放
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// Scene 游戏场景
func (a *App) Scene() *scenes.GameScene {
	return a.scene
}
