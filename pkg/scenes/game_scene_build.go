package scenes

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/gonewx/towerdefense/pkg/config"
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/entities"
	"github.com/gonewx/towerdefense/pkg/game"
	"github.com/gonewx/towerdefense/pkg/types"
	"github.com/gonewx/towerdefense/pkg/utils"
)

// AddEnemy 在生成点生成敌人，纵坐标按 d20 抖动：y += (d20-10)*jitter
func (s *GameScene) AddEnemy(enemyType types.EnemyType) (ecs.EntityID, error) {
	d20 := s.rng.IntN(20) + 1
	pos := s.level.SpawnPoint.Add(utils.Pt(0, float64(d20-10)*s.level.SpawnJitter))
	return s.AddEnemyAt(enemyType, pos)
}

// AddEnemyAt 在指定位置生成敌人并寻路到终点
func (s *GameScene) AddEnemyAt(enemyType types.EnemyType, pos utils.Point) (ecs.EntityID, error) {
	stats, ok := s.enemyStats.Get(enemyType)
	if !ok {
		return 0, fmt.Errorf("add enemy %s: %w", enemyType, game.ErrUnknownEnemyType)
	}
	id := entities.NewEnemyEntity(s.entityManager, enemyType, stats, pos)
	s.registry.Add(id)
	s.paths.AssignPath(id)
	log.Debugf("[GameScene] 生成敌人 %d (%s) 于 (%.0f, %.0f)", id, enemyType, pos.X, pos.Y)
	return id, nil
}

// AddTower 在建塔位建造防御塔
//
// 拓扑变化是一个同步步骤：扣除金币、创建防御塔、合并障碍物、为所有敌人重新寻路。
// 被拒绝时播放 NoBuildTower 并发布 TowerRejected，金币与实体不变。
func (s *GameScene) AddTower(towerType types.TowerType, pos utils.Point) error {
	stats, ok := s.towerStats.Get(towerType)
	if !ok {
		return s.rejectTower(towerType, pos, fmt.Errorf("add tower %s: %w", towerType, game.ErrUnknownTowerType))
	}
	if s.machine.Current() != game.StateActive {
		return s.rejectTower(towerType, pos, fmt.Errorf("add tower %s in %s: %w", towerType, s.machine.Current(), game.ErrNotActive))
	}

	slot := -1
	if len(s.level.TowerSlots) > 0 {
		var found bool
		slot, found = s.FreeSlotAt(pos)
		if !found {
			return s.rejectTower(towerType, pos, fmt.Errorf("add tower %s at (%.0f, %.0f): %w", towerType, pos.X, pos.Y, game.ErrSlotUnavailable))
		}
		pos = s.level.TowerSlots[slot]
	}

	if !s.economy.SpendGold(stats.Cost) {
		return s.rejectTower(towerType, pos, fmt.Errorf("add tower %s: cost %d, gold %d: %w", towerType, stats.Cost, s.economy.Gold, game.ErrInsufficientGold))
	}
	if slot >= 0 {
		s.usedSlots[slot] = true
	}

	id := entities.NewTowerEntity(s.entityManager, towerType, stats, pos, slot)
	s.registry.Add(id)
	s.graph.AddObstacles([]utils.Polygon{stats.TowerFootprint(pos)})
	s.paths.RecalculateEnemyPaths()

	s.presenter.PlaySound(game.SoundBuildTower)
	s.refreshHUD()
	s.bus.Publish(game.Event{
		Type:      game.EventTowerPlaced,
		Entity:    id,
		TowerType: towerType,
		Position:  pos,
		Amount:    stats.Cost,
	})
	log.Debugf("[GameScene] 建造 %s 于建塔位 %d，剩余金币 %d", towerType, slot, s.economy.Gold)
	return nil
}

func (s *GameScene) rejectTower(towerType types.TowerType, pos utils.Point, err error) error {
	s.presenter.PlaySound(game.SoundNoBuildTower)
	s.bus.Publish(game.Event{
		Type:      game.EventTowerRejected,
		TowerType: towerType,
		Position:  pos,
		Err:       err,
	})
	log.Debugf("[GameScene] 拒绝建造: %v", err)
	return err
}

// AddObstacle 加入静态障碍物并为所有敌人重新寻路
func (s *GameScene) AddObstacle(cfg config.ObstacleConfig) ecs.EntityID {
	id := entities.NewObstacleEntity(s.entityManager, cfg)
	s.registry.Add(id)
	s.graph.AddObstacles([]utils.Polygon{cfg.ShadowFootprint()})
	s.paths.RecalculateEnemyPaths()
	return id
}

// FreeSlotAt 返回距 pos 最近且未占用的建塔位（距离不超过 SlotSnapRadius）
func (s *GameScene) FreeSlotAt(pos utils.Point) (int, bool) {
	best, bestDist := -1, SlotSnapRadius
	for i, slot := range s.level.TowerSlots {
		if s.usedSlots[i] {
			continue
		}
		if d := slot.DistanceTo(pos); d <= bestDist {
			best, bestDist = i, d
		}
	}
	return best, best >= 0
}

// FreeSlots 未占用的建塔位
func (s *GameScene) FreeSlots() []utils.Point {
	out := make([]utils.Point, 0, len(s.level.TowerSlots))
	for i, slot := range s.level.TowerSlots {
		if !s.usedSlots[i] {
			out = append(out, slot)
		}
	}
	return out
}
