package components

import "github.com/gonewx/towerdefense/pkg/utils"

// ObstacleComponent 静态障碍物
type ObstacleComponent struct {
	Name      string
	Footprint utils.Polygon // 不可通行区域（阴影范围）
}
