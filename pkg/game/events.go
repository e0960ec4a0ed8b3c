package game

import (
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/types"
	"github.com/gonewx/towerdefense/pkg/utils"
)

// EventType 事件类型
type EventType string

const (
	EventDied          EventType = "Died"          // 敌人被击杀
	EventLeaked        EventType = "Leaked"        // 敌人到达终点
	EventDamaged       EventType = "Damaged"       // 敌人被命中
	EventTowerPlaced   EventType = "TowerPlaced"   // 防御塔建造成功
	EventTowerRejected EventType = "TowerRejected" // 防御塔建造被拒绝
	EventWaveStarted   EventType = "WaveStarted"   // 新一波开始
	EventStateChanged  EventType = "StateChanged"  // 对局状态变化
)

// Event 纯数据事件，由宿主决定如何表现
type Event struct {
	Type      EventType
	Entity    ecs.EntityID
	EnemyType types.EnemyType
	TowerType types.TowerType
	Position  utils.Point
	Amount    int // 伤害值/奖励金币/扣除生命/波次编号
	From, To  State
	Err       error
}

// Listener 事件订阅者
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc 函数形式的订阅者
type ListenerFunc func(event Event)

// OnEvent 实现 Listener
func (f ListenerFunc) OnEvent(event Event) { f(event) }

// EventBus 同步事件总线
// 发布时立即通知订阅者，同时保留一份待取队列供宿主按帧拉取
type EventBus struct {
	listeners map[EventType][]Listener
	pending   []Event
}

// NewEventBus 创建事件总线
func NewEventBus() *EventBus {
	return &EventBus{listeners: make(map[EventType][]Listener)}
}

// Subscribe 订阅事件
func (b *EventBus) Subscribe(eventType EventType, listener Listener) {
	b.listeners[eventType] = append(b.listeners[eventType], listener)
}

// Publish 发布事件
func (b *EventBus) Publish(event Event) {
	b.pending = append(b.pending, event)
	for _, l := range b.listeners[event.Type] {
		l.OnEvent(event)
	}
}

// Drain 取出并清空待取队列
func (b *EventBus) Drain() []Event {
	out := b.pending
	b.pending = nil
	return out
}
