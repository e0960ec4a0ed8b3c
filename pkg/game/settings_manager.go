package game

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	"github.com/gonewx/towerdefense/pkg/types"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// GameSettings 玩家偏好，跨对局保存
type GameSettings struct {
	MusicVolume  float64 `yaml:"musicVolume"` // 0.0 ~ 1.0
	SoundVolume  float64 `yaml:"soundVolume"` // 0.0 ~ 1.0
	MusicEnabled bool    `yaml:"musicEnabled"`
	SoundEnabled bool    `yaml:"soundEnabled"`
	Fullscreen   bool    `yaml:"fullscreen"`

	// SelectedTower 上次选中的防御塔类型
	SelectedTower types.TowerType `yaml:"selectedTower"`
	// ShowFootprints 是否绘制寻路障碍多边形
	ShowFootprints bool `yaml:"showFootprints"`
}

// DefaultSettings 返回默认设置
func DefaultSettings() *GameSettings {
	return &GameSettings{
		MusicVolume:   0.7,
		SoundVolume:   0.8,
		MusicEnabled:  true,
		SoundEnabled:  true,
		SelectedTower: types.TowerWood,
	}
}

// normalize 截断音量并补齐缺失的防御塔类型
func (s *GameSettings) normalize() {
	s.MusicVolume = math.Max(0, math.Min(1, s.MusicVolume))
	s.SoundVolume = math.Max(0, math.Min(1, s.SoundVolume))
	if s.SelectedTower == types.TowerUnknown {
		s.SelectedTower = types.TowerWood
	}
}

// SettingsManager 读写玩家偏好
//
// 存储使用 gdata 的 settings/global 属性，内容为 YAML。
// gdataManager 为 nil 时只在内存中保存。
type SettingsManager struct {
	gdataManager *gdata.Manager
	settings     *GameSettings
}

const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// NewSettingsManager 创建设置管理器并加载已保存的设置，失败时使用默认值
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{gdataManager: gdataManager, settings: DefaultSettings()}
	if err := sm.Load(); err != nil {
		log.Warnf("[SettingsManager] %v (using defaults)", err)
	}
	return sm
}

// Load 重新读取设置；没有已保存的设置时恢复默认值
func (sm *SettingsManager) Load() error {
	sm.settings = DefaultSettings()
	if sm.gdataManager == nil || !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return fmt.Errorf("decode settings: %w", err)
	}
	loaded.normalize()
	sm.settings = loaded
	log.Debugf("[SettingsManager] 已加载设置 %+v", *loaded)
	return nil
}

// Save 写入设置，无存储时直接返回 nil
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}
	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// GetSettings 当前设置（只读使用，修改请走 Update）
func (sm *SettingsManager) GetSettings() *GameSettings {
	return sm.settings
}

// Update 修改设置并截断越界的值，需要持久化时再调用 Save
func (sm *SettingsManager) Update(fn func(s *GameSettings)) {
	fn(sm.settings)
	sm.settings.normalize()
}

// ToggleMusic 切换音乐开关，返回新的状态
func (sm *SettingsManager) ToggleMusic() bool {
	sm.Update(func(s *GameSettings) { s.MusicEnabled = !s.MusicEnabled })
	return sm.settings.MusicEnabled
}

// ToggleSound 切换音效开关，返回新的状态
func (sm *SettingsManager) ToggleSound() bool {
	sm.Update(func(s *GameSettings) { s.SoundEnabled = !s.SoundEnabled })
	return sm.settings.SoundEnabled
}
