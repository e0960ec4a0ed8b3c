// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import "fmt"

// EnemyType 定义敌人的类型
type EnemyType int

const (
	// EnemyUnknown 未知敌人类型
	EnemyUnknown EnemyType = iota
	// EnemyLight 轻型（离散路点移动）
	EnemyLight
	// EnemyMedium 中型（连续转向移动）
	EnemyMedium
	// EnemyHeavy 重型（离散路点移动，血量高）
	EnemyHeavy
)

var enemyTypeNames = map[EnemyType]string{
	EnemyLight:  "Light",
	EnemyMedium: "Medium",
	EnemyHeavy:  "Heavy",
}

// AllEnemyTypes 所有已知敌人类型
func AllEnemyTypes() []EnemyType {
	return []EnemyType{EnemyLight, EnemyMedium, EnemyHeavy}
}

// String 返回敌人类型的字符串表示
func (e EnemyType) String() string {
	if name, ok := enemyTypeNames[e]; ok {
		return name
	}
	return "Unknown"
}

// ParseEnemyType 将名称解析为敌人类型（区分大小写）
func ParseEnemyType(name string) (EnemyType, error) {
	for t, n := range enemyTypeNames {
		if n == name {
			return t, nil
		}
	}
	return EnemyUnknown, fmt.Errorf("unknown enemy type %q", name)
}

// MarshalYAML 以名称形式写出
func (e EnemyType) MarshalYAML() (interface{}, error) {
	return e.String(), nil
}

// UnmarshalYAML 从名称读取
func (e *EnemyType) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	t, err := ParseEnemyType(name)
	if err != nil {
		return err
	}
	*e = t
	return nil
}

// DeadSound 死亡音效名称，例如 "LightDead"
func (e EnemyType) DeadSound() string {
	return e.String() + "Dead"
}
