package types

import "fmt"

// TowerType 定义防御塔的类型
type TowerType int

const (
	// TowerUnknown 未知防御塔类型
	TowerUnknown TowerType = iota
	// TowerWood 木塔
	TowerWood
	// TowerRock 石塔（减速）
	TowerRock
)

var towerTypeNames = map[TowerType]string{
	TowerWood: "Wood",
	TowerRock: "Rock",
}

// AllTowerTypes 所有已知防御塔类型
func AllTowerTypes() []TowerType {
	return []TowerType{TowerWood, TowerRock}
}

// String 返回防御塔类型的字符串表示
func (t TowerType) String() string {
	if name, ok := towerTypeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// ParseTowerType 将名称解析为防御塔类型
func ParseTowerType(name string) (TowerType, error) {
	for t, n := range towerTypeNames {
		if n == name {
			return t, nil
		}
	}
	return TowerUnknown, fmt.Errorf("unknown tower type %q", name)
}

// MarshalYAML 以名称形式写出
func (t TowerType) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}

// UnmarshalYAML 从名称读取
func (t *TowerType) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	parsed, err := ParseTowerType(name)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
