package game

import "fmt"

// 音效名称
const (
	SoundNewWave      = "NewWave"
	SoundLifeLost     = "LifeLost"
	SoundYouWin       = "YouWin"
	SoundYouLose      = "YouLose"
	SoundBuildTower   = "BuildTower"
	SoundNoBuildTower = "NoBuildTower"
	SoundMenu         = "Menu"
)

// OverlayKind 覆盖层类型
type OverlayKind int

const (
	OverlayReady OverlayKind = iota
	OverlayWin
	OverlayLose
)

// String 返回覆盖层名称
func (o OverlayKind) String() string {
	switch o {
	case OverlayReady:
		return "Ready"
	case OverlayWin:
		return "Win"
	case OverlayLose:
		return "Lose"
	default:
		return "Unknown"
	}
}

// HUD 界面显示数据
type HUD struct {
	Lives      int // 已截断为非负
	Gold       int
	Wave       int
	TotalWaves int
}

// WaveText 返回 "Wave n/N"
func (h HUD) WaveText() string {
	return fmt.Sprintf("Wave %d/%d", h.Wave, h.TotalWaves)
}

// Presenter 核心向宿主发出的表现层指令，均为即发即弃
type Presenter interface {
	PlaySound(name string)
	PlayMusic()
	StopMusic()
	RefreshHUD(hud HUD)
	ShowOverlay(kind OverlayKind)
	HideOverlay(kind OverlayKind)
	SetSceneSpeed(speed float64)
}

// NopPresenter 不做任何事的 Presenter，用于无界面运行
type NopPresenter struct{}

func (NopPresenter) PlaySound(string) {}
func (NopPresenter) PlayMusic() {}
func (NopPresenter) StopMusic() {}
func (NopPresenter) RefreshHUD(HUD) {}
func (NopPresenter) ShowOverlay(OverlayKind) {}
func (NopPresenter) HideOverlay(OverlayKind) {}
func (NopPresenter) SetSceneSpeed(float64) {}
