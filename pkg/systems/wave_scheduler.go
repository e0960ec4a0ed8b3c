package systems

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/gonewx/towerdefense/pkg/config"
	"github.com/gonewx/towerdefense/pkg/game"
	"github.com/gonewx/towerdefense/pkg/types"
)

// SpawnFunc 生成一个敌人
type SpawnFunc func(enemyType types.EnemyType)

// WaveStartedFunc 新一波开始时调用，wave 从 1 开始
type WaveStartedFunc func(wave, total int)

// WaveScheduler 把波次表转换为定时生成
//
// 每一波的生成挂在定时器队列上，分组键为波次索引；
// 本波所有敌人都被移除（击杀或漏过）后自动开始下一波。
type WaveScheduler struct {
	waves         []config.WaveConfig
	timers        *game.TimerQueue
	spawn         SpawnFunc
	onWaveStarted WaveStartedFunc

	currentWave int // 下一波的索引
	remaining   int // 本波尚未移除的敌人数（含未生成的）
}

// NewWaveScheduler 创建波次调度器
func NewWaveScheduler(waves []config.WaveConfig, timers *game.TimerQueue, spawn SpawnFunc, onWaveStarted WaveStartedFunc) *WaveScheduler {
	return &WaveScheduler{
		waves:         waves,
		timers:        timers,
		spawn:         spawn,
		onWaveStarted: onWaveStarted,
	}
}

func waveKey(index int) string {
	return fmt.Sprintf("wave-%d", index)
}

// StartNextWave 开始下一波；波次已用完时返回 true 且不生成任何敌人
func (w *WaveScheduler) StartNextWave() bool {
	if w.Exhausted() {
		return true
	}

	index := w.currentWave
	wave := w.waves[index]
	w.remaining = wave.EnemyCount

	log.Infof("[WaveScheduler] 第 %d/%d 波: %d x %s, 间隔 %.1fs",
		index+1, len(w.waves), wave.EnemyCount, wave.EnemyType, wave.EnemyDelay)
	for i := 1; i <= wave.EnemyCount; i++ {
		enemyType := wave.EnemyType
		w.timers.Schedule(waveKey(index), wave.EnemyDelay*float64(i), func() {
			if w.spawn != nil {
				w.spawn(enemyType)
			}
		})
	}

	w.currentWave++
	if w.onWaveStarted != nil {
		w.onWaveStarted(w.currentWave, len(w.waves))
	}
	return false
}

// RemoveEnemyFromWave 本波一个敌人离场
// 本波清空时开始下一波并返回其结果；多余的调用记录警告并返回 Exhausted()
func (w *WaveScheduler) RemoveEnemyFromWave() bool {
	if w.remaining <= 0 {
		log.Warnf("[WaveScheduler] 本波敌人数已为 0，忽略多余的移除通知")
		return w.Exhausted()
	}
	w.remaining--
	if w.remaining == 0 {
		return w.StartNextWave()
	}
	return false
}

// Exhausted 是否已没有剩余波次
func (w *WaveScheduler) Exhausted() bool {
	return w.currentWave >= len(w.waves)
}

// CurrentWave 已开始的波数（1 起，未开始时为 0）
func (w *WaveScheduler) CurrentWave() int {
	return w.currentWave
}

// TotalWaves 总波数
func (w *WaveScheduler) TotalWaves() int {
	return len(w.waves)
}

// Remaining 本波尚未移除的敌人数
func (w *WaveScheduler) Remaining() int {
	return w.remaining
}

// PendingSpawns 尚未触发的生成数
func (w *WaveScheduler) PendingSpawns() int {
	n := 0
	for i := range w.waves {
		n += w.timers.PendingFor(waveKey(i))
	}
	return n
}

// CancelPending 取消所有尚未触发的生成
func (w *WaveScheduler) CancelPending() {
	for i := range w.waves {
		w.timers.CancelKey(waveKey(i))
	}
}

// Reset 取消生成并回到第一波之前
func (w *WaveScheduler) Reset() {
	w.CancelPending()
	w.currentWave = 0
	w.remaining = 0
}
