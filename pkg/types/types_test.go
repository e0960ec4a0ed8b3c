package types

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEnemyType_String(t *testing.T) {
	tests := []struct {
		typ  EnemyType
		want string
	}{
		{EnemyLight, "Light"},
		{EnemyMedium, "Medium"},
		{EnemyHeavy, "Heavy"},
		{EnemyUnknown, "Unknown"},
		{EnemyType(99), "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.typ.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
	if got := EnemyHeavy.DeadSound(); got != "HeavyDead" {
		t.Errorf("DeadSound() = %q, want HeavyDead", got)
	}
}

func TestParseTypes(t *testing.T) {
	for _, e := range AllEnemyTypes() {
		got, err := ParseEnemyType(e.String())
		if err != nil || got != e {
			t.Errorf("ParseEnemyType(%q) = %v, %v", e.String(), got, err)
		}
	}
	for _, tw := range AllTowerTypes() {
		got, err := ParseTowerType(tw.String())
		if err != nil || got != tw {
			t.Errorf("ParseTowerType(%q) = %v, %v", tw.String(), got, err)
		}
	}
	if _, err := ParseEnemyType("ClassX"); err == nil {
		t.Error("expected error for unknown enemy type")
	}
	if _, err := ParseTowerType("Gold"); err == nil {
		t.Error("expected error for unknown tower type")
	}
}

func TestTypes_YAML(t *testing.T) {
	var doc struct {
		Enemy EnemyType `yaml:"enemy"`
		Tower TowerType `yaml:"tower"`
	}
	if err := yaml.Unmarshal([]byte("enemy: Medium\ntower: Rock\n"), &doc); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if doc.Enemy != EnemyMedium || doc.Tower != TowerRock {
		t.Errorf("got %v/%v, want Medium/Rock", doc.Enemy, doc.Tower)
	}
	if err := yaml.Unmarshal([]byte("enemy: Giant\n"), &doc); err == nil {
		t.Error("expected error for unknown enemy name")
	}
}
