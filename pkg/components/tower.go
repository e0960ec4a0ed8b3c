package components

import "github.com/gonewx/towerdefense/pkg/types"

// TowerComponent 防御塔标记
type TowerComponent struct {
	Type types.TowerType
	Slot int // 占用的建塔位索引，-1 表示不在预设位置上
}
