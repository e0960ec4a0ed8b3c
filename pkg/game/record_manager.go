package game

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// RunRecord 某关卡已结束对局的统计
// 只记录结果，不保存进行中的对局
type RunRecord struct {
	LevelID   string `yaml:"levelId"`
	Wins      int    `yaml:"wins"`
	Losses    int    `yaml:"losses"`
	BestLives int    `yaml:"bestLives"` // 胜利时剩余生命的最大值
}

// RecordManager 对局记录管理器
type RecordManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式）
	records      map[string]*RunRecord
}

const (
	recordsObject   = "records"
	recordsProperty = "runs"
)

// NewRecordManager 创建记录管理器并尝试加载已有记录
func NewRecordManager(gdataManager *gdata.Manager) *RecordManager {
	rm := &RecordManager{
		gdataManager: gdataManager,
		records:      make(map[string]*RunRecord),
	}
	if err := rm.Load(); err != nil {
		log.Warnf("[RecordManager] Failed to load records: %v", err)
	}
	return rm
}

// Load 从 gdata 加载记录
func (rm *RecordManager) Load() error {
	rm.records = make(map[string]*RunRecord)
	if rm.gdataManager == nil || !rm.gdataManager.ObjectPropExists(recordsObject, recordsProperty) {
		return nil
	}

	data, err := rm.gdataManager.LoadObjectProp(recordsObject, recordsProperty)
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}

	var list []*RunRecord
	if err := yaml.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("failed to unmarshal records: %w", err)
	}
	for _, r := range list {
		if r != nil && r.LevelID != "" {
			rm.records[r.LevelID] = r
		}
	}
	return nil
}

// Save 保存全部记录
func (rm *RecordManager) Save() error {
	if rm.gdataManager == nil {
		return nil
	}
	data, err := yaml.Marshal(rm.All())
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}
	if err := rm.gdataManager.SaveObjectProp(recordsObject, recordsProperty, data); err != nil {
		return fmt.Errorf("failed to save records: %w", err)
	}
	return nil
}

// RecordResult 记录一局结果并保存
func (rm *RecordManager) RecordResult(levelID string, won bool, livesLeft int) error {
	r, ok := rm.records[levelID]
	if !ok {
		r = &RunRecord{LevelID: levelID}
		rm.records[levelID] = r
	}
	if won {
		r.Wins++
		if livesLeft > r.BestLives {
			r.BestLives = livesLeft
		}
	} else {
		r.Losses++
	}
	log.Infof("[RecordManager] %s: wins=%d losses=%d best=%d", levelID, r.Wins, r.Losses, r.BestLives)
	return rm.Save()
}

// Get 获取关卡记录
func (rm *RecordManager) Get(levelID string) (RunRecord, bool) {
	r, ok := rm.records[levelID]
	if !ok {
		return RunRecord{}, false
	}
	return *r, true
}

// All 按关卡 ID 排序返回全部记录
func (rm *RecordManager) All() []*RunRecord {
	out := make([]*RunRecord, 0, len(rm.records))
	for _, r := range rm.records {
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b *RunRecord) int {
		switch {
		case a.LevelID < b.LevelID:
			return -1
		case a.LevelID > b.LevelID:
			return 1
		}
		return 0
	})
	return out
}
