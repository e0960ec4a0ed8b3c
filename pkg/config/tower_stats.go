package config

import (
	"fmt"

	"github.com/gonewx/towerdefense/pkg/embedded"
	"github.com/gonewx/towerdefense/pkg/types"
	"gopkg.in/yaml.v3"
)

// TowerStats 单个防御塔类型的属性配置
type TowerStats struct {
	Cost             int     `yaml:"cost"`             // 建造花费
	Range            float64 `yaml:"range"`            // 射程（欧氏距离，严格小于）
	FireRate         float64 `yaml:"fireRate"`         // 开火间隔（秒）
	Damage           int     `yaml:"damage"`           // 单发伤害
	HasSlowingEffect bool    `yaml:"hasSlowingEffect"` // 是否减速
	SlowFactor       float64 `yaml:"slowFactor"`       // 减速后的速度倍率
	ProjectileSpeed  float64 `yaml:"projectileSpeed"`  // 投射物飞行速度
	Width            float64 `yaml:"width"`
	Height           float64 `yaml:"height"`
}

// TowerStatsConfig 防御塔属性配置文件结构
type TowerStatsConfig struct {
	Towers map[string]TowerStats `yaml:"towers"`
}

// DefaultTowerStats 返回内置的防御塔属性表
func DefaultTowerStats() *TowerStatsConfig {
	return &TowerStatsConfig{
		Towers: map[string]TowerStats{
			types.TowerWood.String(): {
				Cost: 50, Range: 200, FireRate: 1.0, Damage: 20, SlowFactor: 1,
				ProjectileSpeed: 600, Width: 80, Height: 160,
			},
			types.TowerRock.String(): {
				Cost: 85, Range: 250, FireRate: 1.5, Damage: 10,
				HasSlowingEffect: true, SlowFactor: 0.5,
				ProjectileSpeed: 500, Width: 90, Height: 170,
			},
		},
	}
}

// LoadTowerStats 从嵌入的 YAML 文件加载防御塔属性配置
func LoadTowerStats(filepath string) (*TowerStatsConfig, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read tower stats file %s: %w", filepath, err)
	}
	cfg, err := ParseTowerStats(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath, err)
	}
	return cfg, nil
}

// ParseTowerStats 解析防御塔属性 YAML
func ParseTowerStats(data []byte) (*TowerStatsConfig, error) {
	var config TowerStatsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse tower stats YAML: %w", err)
	}

	applyTowerDefaults(&config)

	if err := validateTowerStats(&config); err != nil {
		return nil, fmt.Errorf("invalid tower stats: %w", err)
	}
	return &config, nil
}

func applyTowerDefaults(config *TowerStatsConfig) {
	for name, stats := range config.Towers {
		// 未配置减速倍率时不减速
		if stats.HasSlowingEffect && stats.SlowFactor == 0 {
			stats.SlowFactor = 0.5
		}
		if !stats.HasSlowingEffect {
			stats.SlowFactor = 1
		}
		if stats.ProjectileSpeed == 0 {
			stats.ProjectileSpeed = 600
		}
		config.Towers[name] = stats
	}
}

func validateTowerStats(config *TowerStatsConfig) error {
	if len(config.Towers) == 0 {
		return fmt.Errorf("at least one tower type is required")
	}

	for name, stats := range config.Towers {
		if _, err := types.ParseTowerType(name); err != nil {
			return err
		}
		if stats.Cost < 0 {
			return fmt.Errorf("tower %s: cost cannot be negative, got %d", name, stats.Cost)
		}
		if stats.Range <= 0 {
			return fmt.Errorf("tower %s: range must be positive, got %v", name, stats.Range)
		}
		if stats.FireRate <= 0 {
			return fmt.Errorf("tower %s: fireRate must be positive, got %v", name, stats.FireRate)
		}
		if stats.Damage < 0 {
			return fmt.Errorf("tower %s: damage cannot be negative, got %d", name, stats.Damage)
		}
		if stats.SlowFactor <= 0 || stats.SlowFactor > 1 {
			return fmt.Errorf("tower %s: slowFactor must be in (0, 1], got %v", name, stats.SlowFactor)
		}
		if stats.Width <= 0 || stats.Height <= 0 {
			return fmt.Errorf("tower %s: size must be positive, got %vx%v", name, stats.Width, stats.Height)
		}
	}
	return nil
}

// Get 获取指定防御塔类型的属性
func (c *TowerStatsConfig) Get(towerType types.TowerType) (TowerStats, bool) {
	stats, ok := c.Towers[towerType.String()]
	return stats, ok
}
