package game

import (
	"testing"

	"github.com/gonewx/towerdefense/pkg/types"
	"github.com/quasilyte/gdata/v2"
)

// openTestGdata 在临时 HOME 下创建 gdata manager
func openTestGdata(t *testing.T, app string) *gdata.Manager {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)
	m, err := gdata.Open(gdata.Config{AppName: app})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return m
}

func TestSettingsManager_NilGdata(t *testing.T) {
	sm := NewSettingsManager(nil)
	if sm.GetSettings().MusicVolume != 0.7 {
		t.Errorf("MusicVolume = %v, want 0.7", sm.GetSettings().MusicVolume)
	}
	sm.Update(func(s *GameSettings) { s.SoundVolume = 2 })
	if sm.GetSettings().SoundVolume != 1 {
		t.Errorf("SoundVolume should clamp to 1, got %v", sm.GetSettings().SoundVolume)
	}
	if sm.ToggleMusic() {
		t.Error("ToggleMusic() should turn music off")
	}
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode: %v", err)
	}
}

func TestSettingsManager_Persistence(t *testing.T) {
	m := openTestGdata(t, "td_test_settings")

	sm1 := NewSettingsManager(m)
	sm1.Update(func(s *GameSettings) {
		s.MusicVolume = -1
		s.SelectedTower = types.TowerRock
		s.ShowFootprints = true
	})
	if got := sm1.GetSettings().MusicVolume; got != 0 {
		t.Errorf("MusicVolume should clamp to 0, got %v", got)
	}
	sm1.Update(func(s *GameSettings) { s.MusicVolume = 0.3 })
	sm1.ToggleSound()
	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	sm2 := NewSettingsManager(m)
	s := sm2.GetSettings()
	if s.MusicVolume != 0.3 || s.SoundEnabled || s.SelectedTower != types.TowerRock || !s.ShowFootprints {
		t.Errorf("loaded settings = %+v", s)
	}
}

func TestRecordManager(t *testing.T) {
	m := openTestGdata(t, "td_test_records")

	rm := NewRecordManager(m)
	if err := rm.RecordResult("level-1", true, 3); err != nil {
		t.Fatalf("RecordResult: %v", err)
	}
	if err := rm.RecordResult("level-1", true, 2); err != nil {
		t.Fatalf("RecordResult: %v", err)
	}
	if err := rm.RecordResult("level-1", false, 0); err != nil {
		t.Fatalf("RecordResult: %v", err)
	}

	reloaded := NewRecordManager(m)
	r, ok := reloaded.Get("level-1")
	if !ok {
		t.Fatal("record not persisted")
	}
	if r.Wins != 2 || r.Losses != 1 || r.BestLives != 3 {
		t.Errorf("record = %+v", r)
	}
	if _, ok := reloaded.Get("level-9"); ok {
		t.Error("unexpected record for unknown level")
	}

	degraded := NewRecordManager(nil)
	if err := degraded.RecordResult("x", true, 1); err != nil {
		t.Errorf("degraded RecordResult: %v", err)
	}
	if len(degraded.All()) != 1 {
		t.Errorf("All() = %v", degraded.All())
	}
}
