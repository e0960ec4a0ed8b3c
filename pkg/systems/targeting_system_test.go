package systems

import (
	"testing"

	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/types"
	"github.com/gonewx/towerdefense/pkg/utils"
)

func TestSelectTarget(t *testing.T) {
	tower := utils.Pt(0, 0)
	tests := []struct {
		name       string
		slows      bool
		candidates []TargetCandidate
		want       ecs.EntityID
	}{
		{"无候选", false, nil, 0},
		{"射程外", false, []TargetCandidate{{ID: 1, Position: utils.Pt(300, 0)}}, 0},
		{"射程边界不算", false, []TargetCandidate{{ID: 1, Position: utils.Pt(200, 0)}}, 0},
		{"选 X 最大", false, []TargetCandidate{
			{ID: 1, Position: utils.Pt(10, 0)},
			{ID: 2, Position: utils.Pt(50, 10)},
			{ID: 3, Position: utils.Pt(30, -10)},
		}, 2},
		{"X 相同保留先扫描到的", false, []TargetCandidate{
			{ID: 1, Position: utils.Pt(50, 0)},
			{ID: 2, Position: utils.Pt(50, 20)},
		}, 1},
		{"减速武器优先未减速", true, []TargetCandidate{
			{ID: 1, Position: utils.Pt(90, 0), Slowed: true},
			{ID: 2, Position: utils.Pt(10, 0)},
		}, 2},
		{"减速武器同状态选 X 大", true, []TargetCandidate{
			{ID: 1, Position: utils.Pt(10, 0)},
			{ID: 2, Position: utils.Pt(60, 0)},
			{ID: 3, Position: utils.Pt(90, 0), Slowed: true},
		}, 2},
		{"减速武器全部已减速", true, []TargetCandidate{
			{ID: 1, Position: utils.Pt(10, 0), Slowed: true},
			{ID: 2, Position: utils.Pt(60, 0), Slowed: true},
		}, 2},
		{"普通武器忽略减速状态", false, []TargetCandidate{
			{ID: 1, Position: utils.Pt(90, 0), Slowed: true},
			{ID: 2, Position: utils.Pt(10, 0)},
		}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SelectTarget(tower, 200, tt.slows, tt.candidates); got != tt.want {
				t.Errorf("SelectTarget() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTargetingSystem_SkipsDeadEnemies(t *testing.T) {
	w := newTestWorld(nil)
	near := w.addEnemy(types.EnemyLight, utils.Pt(100, 384))
	far := w.addEnemy(types.EnemyLight, utils.Pt(150, 384))
	w.health(far).CurrentHealth = 0

	towerID := w.em.CreateEntity()
	ecs.AddComponent(w.em, towerID, &components.SpriteComponent{X: 120, Y: 300})
	firing := &components.FiringComponent{Range: 200}
	ecs.AddComponent(w.em, towerID, firing)

	NewTargetingSystem(w.em).Update([]ecs.EntityID{near, far}, []ecs.EntityID{towerID})
	if firing.Target != near {
		t.Errorf("Target = %d, want %d (dead enemy skipped)", firing.Target, near)
	}

	w.health(near).CurrentHealth = 0
	NewTargetingSystem(w.em).Update([]ecs.EntityID{near, far}, []ecs.EntityID{towerID})
	if firing.Target != 0 {
		t.Errorf("Target = %d, want 0", firing.Target)
	}
}
