package game

import (
	"slices"

	"github.com/charmbracelet/log"
)

// TimerID 定时器标识
type TimerID uint64

type timer struct {
	id     TimerID
	key    string
	fireAt float64
	fn     func()
}

// TimerQueue 逻辑时钟驱动的一次性定时器队列
//
// 定时器按 (触发时间, 创建顺序) 排序，只随 Advance 推进，不使用墙钟。
// 每个定时器带一个分组键，可以按键批量取消。
type TimerQueue struct {
	now    float64
	timers []*timer
	nextID TimerID
}

// NewTimerQueue 创建定时器队列
func NewTimerQueue() *TimerQueue {
	return &TimerQueue{nextID: 1}
}

// Now 当前逻辑时间（秒）
func (q *TimerQueue) Now() float64 {
	return q.now
}

// Schedule 在 delay 秒后执行 fn
func (q *TimerQueue) Schedule(key string, delay float64, fn func()) TimerID {
	if delay < 0 {
		delay = 0
	}
	t := &timer{id: q.nextID, key: key, fireAt: q.now + delay, fn: fn}
	q.nextID++

	// 相同触发时间保持插入顺序
	idx, _ := slices.BinarySearchFunc(q.timers, t, func(a, b *timer) int {
		switch {
		case a.fireAt < b.fireAt:
			return -1
		case a.fireAt > b.fireAt:
			return 1
		case a.id < b.id:
			return -1
		case a.id > b.id:
			return 1
		}
		return 0
	})
	q.timers = slices.Insert(q.timers, idx, t)
	return t.id
}

// Cancel 取消单个定时器
func (q *TimerQueue) Cancel(id TimerID) bool {
	for i, t := range q.timers {
		if t.id == id {
			q.timers = slices.Delete(q.timers, i, i+1)
			return true
		}
	}
	return false
}

// CancelKey 取消指定分组的全部定时器，返回取消数量
func (q *TimerQueue) CancelKey(key string) int {
	before := len(q.timers)
	q.timers = slices.DeleteFunc(q.timers, func(t *timer) bool { return t.key == key })
	cancelled := before - len(q.timers)
	if cancelled > 0 {
		log.Debugf("[TimerQueue] 取消 %s 的 %d 个定时器", key, cancelled)
	}
	return cancelled
}

// CancelAll 取消所有定时器
func (q *TimerQueue) CancelAll() {
	q.timers = nil
}

// Pending 未触发的定时器数量
func (q *TimerQueue) Pending() int {
	return len(q.timers)
}

// PendingFor 指定分组未触发的定时器数量
func (q *TimerQueue) PendingFor(key string) int {
	n := 0
	for _, t := range q.timers {
		if t.key == key {
			n++
		}
	}
	return n
}

// Advance 推进逻辑时间并依次执行到期的定时器
// 回调中新建的、同样已到期的定时器在本次调用内一并执行
func (q *TimerQueue) Advance(deltaTime float64) {
	if deltaTime > 0 {
		q.now += deltaTime
	}
	for len(q.timers) > 0 && q.timers[0].fireAt <= q.now {
		t := q.timers[0]
		q.timers = q.timers[1:]
		t.fn()
	}
}

// Reset 清空队列并把时间归零
func (q *TimerQueue) Reset() {
	q.now = 0
	q.timers = nil
}
