package app

import (
	"github.com/gonewx/towerdefense/pkg/game"
)

// SoundPlayer 音频输出，由 ToneAudio 实现
type SoundPlayer interface {
	PlaySound(name string)
	PlayMusic()
	StopMusic()
}

// ScreenPresenter 把核心的表现层指令转为窗口状态与声音
type ScreenPresenter struct {
	sound SoundPlayer // 可为 nil（静音）

	hud      game.HUD
	overlays map[game.OverlayKind]bool
	speed    float64
}

// NewScreenPresenter 创建表现层
func NewScreenPresenter(sound SoundPlayer) *ScreenPresenter {
	return &ScreenPresenter{
		sound:    sound,
		overlays: make(map[game.OverlayKind]bool),
		speed:    1,
	}
}

func (p *ScreenPresenter) PlaySound(name string) {
	if p.sound != nil {
		p.sound.PlaySound(name)
	}
}

func (p *ScreenPresenter) PlayMusic() {
	if p.sound != nil {
		p.sound.PlayMusic()
	}
}

func (p *ScreenPresenter) StopMusic() {
	if p.sound != nil {
		p.sound.StopMusic()
	}
}

func (p *ScreenPresenter) RefreshHUD(hud game.HUD) {
	p.hud = hud
}

func (p *ScreenPresenter) ShowOverlay(kind game.OverlayKind) {
	p.overlays[kind] = true
}

func (p *ScreenPresenter) HideOverlay(kind game.OverlayKind) {
	delete(p.overlays, kind)
}

func (p *ScreenPresenter) SetSceneSpeed(speed float64) {
	p.speed = speed
	if speed >= 1 {
		// 重新开始时收起胜负覆盖层
		delete(p.overlays, game.OverlayWin)
		delete(p.overlays, game.OverlayLose)
	}
}

// HUD 最近一次刷新的界面数据
func (p *ScreenPresenter) HUD() game.HUD {
	return p.hud
}

// OverlayVisible 覆盖层是否可见
func (p *ScreenPresenter) OverlayVisible(kind game.OverlayKind) bool {
	return p.overlays[kind]
}

// Speed 最近一次设置的场景速度
func (p *ScreenPresenter) Speed() float64 {
	return p.speed
}
