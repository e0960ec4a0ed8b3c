package config

import (
	"fmt"

	"github.com/gonewx/towerdefense/pkg/embedded"
	"github.com/gonewx/towerdefense/pkg/types"
	"github.com/gonewx/towerdefense/pkg/utils"
	"gopkg.in/yaml.v3"
)

// WaveConfig 单波敌人配置（只读）
type WaveConfig struct {
	EnemyCount int             `yaml:"enemyCount"` // 本波敌人数量
	EnemyDelay float64         `yaml:"enemyDelay"` // 相邻两次生成的间隔（秒）
	EnemyType  types.EnemyType `yaml:"enemyType"`  // 敌人类型
}

// ObstacleConfig 场景中的静态障碍物
// 障碍物的碰撞多边形由其阴影决定，见 ShadowFootprint
type ObstacleConfig struct {
	Name     string      `yaml:"name"`
	Position utils.Point `yaml:"position"`
	Width    float64     `yaml:"width"`
	Height   float64     `yaml:"height"`
}

// LevelConfig 关卡配置
type LevelConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`

	InitialLives int `yaml:"initialLives"` // 初始生命，默认 5
	InitialGold  int `yaml:"initialGold"`  // 初始金币，默认 75

	SpawnPoint    utils.Point `yaml:"spawnPoint"`    // 敌人生成基准点
	SpawnJitter   float64     `yaml:"spawnJitter"`   // 生成点纵向抖动步长：y += (d20-10)*spawnJitter
	EndPoint      utils.Point `yaml:"endPoint"`      // 寻路终点
	GoalThreshold float64     `yaml:"goalThreshold"` // X 超过该值视为漏过
	BufferRadius  float64     `yaml:"bufferRadius"`  // 障碍物扩张半径

	Waves      []WaveConfig     `yaml:"waves"`
	Obstacles  []ObstacleConfig `yaml:"obstacles"`
	TowerSlots []utils.Point    `yaml:"towerSlots"` // 可建塔位置，每个位置只能使用一次
}

// DefaultWaves 内置波次表
func DefaultWaves() []WaveConfig {
	return []WaveConfig{
		{EnemyCount: 5, EnemyDelay: 3, EnemyType: types.EnemyLight},
		{EnemyCount: 8, EnemyDelay: 2, EnemyType: types.EnemyMedium},
		{EnemyCount: 10, EnemyDelay: 2, EnemyType: types.EnemyLight},
		{EnemyCount: 25, EnemyDelay: 1, EnemyType: types.EnemyMedium},
		{EnemyCount: 1, EnemyDelay: 1, EnemyType: types.EnemyHeavy},
	}
}

// DefaultLevel 返回内置关卡
func DefaultLevel() *LevelConfig {
	level := &LevelConfig{
		ID:    "level-1",
		Name:  "Outpost",
		Waves: DefaultWaves(),
		Obstacles: []ObstacleConfig{
			{Name: "Obstacle_Rock", Position: utils.Pt(330, 620), Width: 160, Height: 120},
			{Name: "Obstacle_Tree", Position: utils.Pt(600, 200), Width: 140, Height: 180},
			{Name: "Obstacle_Crate", Position: utils.Pt(880, 560), Width: 120, Height: 120},
		},
		TowerSlots: []utils.Point{
			utils.Pt(220, 300),
			utils.Pt(460, 470),
			utils.Pt(640, 420),
			utils.Pt(760, 300),
			utils.Pt(950, 360),
		},
	}
	applyLevelDefaults(level)
	return level
}

// LoadLevelConfig 从嵌入的 YAML 文件加载关卡配置
func LoadLevelConfig(filepath string) (*LevelConfig, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read level config file %s: %w", filepath, err)
	}
	cfg, err := ParseLevelConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath, err)
	}
	return cfg, nil
}

// LevelsGlob 内置关卡文件的匹配模式
const LevelsGlob = "data/levels/*.yaml"

// LoadLevels 加载所有匹配 pattern 的关卡，按文件名排序；任一文件无效即返回错误
func LoadLevels(pattern string) ([]*LevelConfig, error) {
	paths, err := embedded.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("list levels %s: %w", pattern, err)
	}
	levels := make([]*LevelConfig, 0, len(paths))
	for _, path := range paths {
		level, err := LoadLevelConfig(path)
		if err != nil {
			return nil, err
		}
		levels = append(levels, level)
	}
	return levels, nil
}

// ParseLevelConfig 解析关卡 YAML
func ParseLevelConfig(data []byte) (*LevelConfig, error) {
	var levelConfig LevelConfig
	if err := yaml.Unmarshal(data, &levelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse level config YAML: %w", err)
	}

	// 应用默认值
	applyLevelDefaults(&levelConfig)

	if err := validateLevelConfig(&levelConfig); err != nil {
		return nil, fmt.Errorf("invalid level config: %w", err)
	}
	return &levelConfig, nil
}

// applyLevelDefaults 为 LevelConfig 中缺失的可选字段设置默认值
func applyLevelDefaults(config *LevelConfig) {
	if config.InitialLives == 0 {
		config.InitialLives = 5
	}
	if config.InitialGold == 0 {
		config.InitialGold = 75
	}
	if config.SpawnPoint == (utils.Point{}) {
		config.SpawnPoint = utils.Pt(-200, 384)
	}
	if config.SpawnJitter == 0 {
		config.SpawnJitter = 10
	}
	if config.EndPoint == (utils.Point{}) {
		config.EndPoint = utils.Pt(1224, 384)
	}
	if config.GoalThreshold == 0 {
		config.GoalThreshold = 1124
	}
	if config.BufferRadius == 0 {
		config.BufferRadius = 32
	}
	if len(config.Waves) == 0 {
		config.Waves = DefaultWaves()
	}
}

// validateLevelConfig 验证关卡配置
func validateLevelConfig(config *LevelConfig) error {
	if config.ID == "" {
		return fmt.Errorf("level id is required")
	}
	if config.InitialLives < 0 || config.InitialGold < 0 {
		return fmt.Errorf("initialLives and initialGold cannot be negative")
	}
	if config.BufferRadius < 0 {
		return fmt.Errorf("bufferRadius cannot be negative, got %v", config.BufferRadius)
	}
	for i, wave := range config.Waves {
		if wave.EnemyCount <= 0 {
			return fmt.Errorf("wave %d: enemyCount must be positive, got %d", i+1, wave.EnemyCount)
		}
		if wave.EnemyDelay <= 0 {
			return fmt.Errorf("wave %d: enemyDelay must be positive, got %v", i+1, wave.EnemyDelay)
		}
		if wave.EnemyType == types.EnemyUnknown {
			return fmt.Errorf("wave %d: enemyType is required", i+1)
		}
	}
	for i, obs := range config.Obstacles {
		if obs.Width <= 0 || obs.Height <= 0 {
			return fmt.Errorf("obstacle %d (%s): size must be positive", i, obs.Name)
		}
	}
	return nil
}

// ShadowFootprint 返回障碍物阴影的多边形（宽 1.1w，高 0.6h，中心下移 0.35h）
func (o ObstacleConfig) ShadowFootprint() utils.Polygon {
	return utils.Rect(o.Position.X, o.Position.Y-0.35*o.Height, o.Width*1.1, o.Height*0.6)
}

// TowerFootprint 返回防御塔底部阴影的多边形（宽 w，高 0.3h，贴底）
func (s TowerStats) TowerFootprint(pos utils.Point) utils.Polygon {
	return utils.Rect(pos.X, pos.Y-0.35*s.Height, s.Width, s.Height*0.3)
}
