package config

import (
	"fmt"

	"github.com/gonewx/towerdefense/pkg/embedded"
	"github.com/gonewx/towerdefense/pkg/types"
	"gopkg.in/yaml.v3"
)

// MovementStyle 敌人的移动方式
type MovementStyle string

const (
	// MovementDiscrete 沿路点逐段匀速移动
	MovementDiscrete MovementStyle = "discrete"
	// MovementSteering 由转向代理连续驱动
	MovementSteering MovementStyle = "steering"
)

// EnemyStats 单个敌人类型的属性配置
type EnemyStats struct {
	Health     int     `yaml:"health"`     // 初始血量
	Speed      float64 `yaml:"speed"`      // 移动速度（单位/秒）
	BaseDamage int     `yaml:"baseDamage"` // 到达终点时扣除的生命
	GoldReward int     `yaml:"goldReward"` // 击杀奖励金币
	Width      float64 `yaml:"width"`      // 精灵宽度
	Height     float64 `yaml:"height"`     // 精灵高度

	Movement        MovementStyle `yaml:"movement"`        // 移动方式
	MaxAcceleration float64       `yaml:"maxAcceleration"` // 仅转向移动：最大加速度
	Mass            float64       `yaml:"mass"`            // 仅转向移动：质量
}

// EnemyStatsConfig 敌人属性配置文件结构
type EnemyStatsConfig struct {
	Enemies map[string]EnemyStats `yaml:"enemies"` // 敌人类型名称到属性的映射
}

// DefaultEnemyStats 返回内置的敌人属性表
func DefaultEnemyStats() *EnemyStatsConfig {
	return &EnemyStatsConfig{
		Enemies: map[string]EnemyStats{
			types.EnemyLight.String(): {
				Health: 60, Speed: 100, BaseDamage: 2, GoldReward: 10,
				Width: 203, Height: 110, Movement: MovementDiscrete,
			},
			types.EnemyMedium.String(): {
				Health: 40, Speed: 150, BaseDamage: 1, GoldReward: 5,
				Width: 142, Height: 74, Movement: MovementSteering,
				MaxAcceleration: 200, Mass: 0.1,
			},
			types.EnemyHeavy.String(): {
				Health: 1000, Speed: 50, BaseDamage: 5, GoldReward: 50,
				Width: 400, Height: 200, Movement: MovementDiscrete,
			},
		},
	}
}

// LoadEnemyStats 从嵌入的 YAML 文件加载敌人属性配置
func LoadEnemyStats(filepath string) (*EnemyStatsConfig, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read enemy stats file %s: %w", filepath, err)
	}
	cfg, err := ParseEnemyStats(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath, err)
	}
	return cfg, nil
}

// ParseEnemyStats 解析敌人属性 YAML
func ParseEnemyStats(data []byte) (*EnemyStatsConfig, error) {
	var config EnemyStatsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse enemy stats YAML: %w", err)
	}

	applyEnemyDefaults(&config)

	if err := validateEnemyStats(&config); err != nil {
		return nil, fmt.Errorf("invalid enemy stats: %w", err)
	}
	return &config, nil
}

// applyEnemyDefaults 为缺失的可选字段设置默认值
func applyEnemyDefaults(config *EnemyStatsConfig) {
	for name, stats := range config.Enemies {
		if stats.Movement == "" {
			stats.Movement = MovementDiscrete
		}
		if stats.Movement == MovementSteering {
			if stats.MaxAcceleration == 0 {
				stats.MaxAcceleration = 200
			}
			if stats.Mass == 0 {
				stats.Mass = 0.1
			}
		}
		config.Enemies[name] = stats
	}
}

// validateEnemyStats 验证敌人属性配置的完整性和合法性
func validateEnemyStats(config *EnemyStatsConfig) error {
	if len(config.Enemies) == 0 {
		return fmt.Errorf("at least one enemy type is required")
	}

	for name, stats := range config.Enemies {
		if _, err := types.ParseEnemyType(name); err != nil {
			return err
		}
		if stats.Health <= 0 {
			return fmt.Errorf("enemy %s: health must be positive, got %d", name, stats.Health)
		}
		if stats.Speed <= 0 {
			return fmt.Errorf("enemy %s: speed must be positive, got %v", name, stats.Speed)
		}
		if stats.BaseDamage < 0 {
			return fmt.Errorf("enemy %s: baseDamage cannot be negative, got %d", name, stats.BaseDamage)
		}
		if stats.GoldReward < 0 {
			return fmt.Errorf("enemy %s: goldReward cannot be negative, got %d", name, stats.GoldReward)
		}
		if stats.Width <= 0 || stats.Height <= 0 {
			return fmt.Errorf("enemy %s: size must be positive, got %vx%v", name, stats.Width, stats.Height)
		}
		if stats.Movement != MovementDiscrete && stats.Movement != MovementSteering {
			return fmt.Errorf("enemy %s: unknown movement style %q", name, stats.Movement)
		}
	}
	return nil
}

// Get 获取指定敌人类型的属性
func (c *EnemyStatsConfig) Get(enemyType types.EnemyType) (EnemyStats, bool) {
	stats, ok := c.Enemies[enemyType.String()]
	return stats, ok
}
