package entities

import (
	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/config"
	"github.com/gonewx/towerdefense/pkg/ecs"
)

// NewObstacleEntity 创建静态障碍物，不可通行区域取其阴影范围
func NewObstacleEntity(em *ecs.EntityManager, cfg config.ObstacleConfig) ecs.EntityID {
	id := em.CreateEntity()

	ecs.AddComponent(em, id, &components.SpriteComponent{
		X:      cfg.Position.X,
		Y:      cfg.Position.Y,
		Width:  cfg.Width,
		Height: cfg.Height,
		Label:  cfg.Name,
	})
	ecs.AddComponent(em, id, &components.ShadowComponent{
		Width:   cfg.Width * 1.1,
		Height:  cfg.Height * 0.6,
		OffsetY: -cfg.Height * 0.35,
	})
	ecs.AddComponent(em, id, &components.ObstacleComponent{
		Name:      cfg.Name,
		Footprint: cfg.ShadowFootprint(),
	})

	return id
}
