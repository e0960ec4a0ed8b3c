package game

import (
	"github.com/charmbracelet/log"
)

// State 对局状态
type State int

const (
	StateReady State = iota
	StateActive
	StateWin
	StateLose
)

// String 返回状态名称
func (s State) String() string {
	switch s {
	case StateReady:
		return "Ready"
	case StateActive:
		return "Active"
	case StateWin:
		return "Win"
	case StateLose:
		return "Lose"
	default:
		return "Unknown"
	}
}

// EnterFunc 进入状态时的回调，from 为上一个状态
type EnterFunc func(from State)

// StateMachine 对局状态机
//
// 合法转换: Ready→Active, Active→Win, Active→Lose, Win→Ready, Lose→Ready。
// 其余转换（包括进入当前状态）被拒绝且不改变状态。
type StateMachine struct {
	current     State
	timeInState float64
	transitions map[State][]State
	onEnter     map[State]EnterFunc
	onChange    func(from, to State)
}

// NewStateMachine 创建处于 Ready 状态的状态机
func NewStateMachine() *StateMachine {
	return &StateMachine{
		current: StateReady,
		transitions: map[State][]State{
			StateReady:  {StateActive},
			StateActive: {StateWin, StateLose},
			StateWin:    {StateReady},
			StateLose:   {StateReady},
		},
		onEnter: make(map[State]EnterFunc),
	}
}

// OnEnter 注册进入某状态时的回调（覆盖已有回调）
func (sm *StateMachine) OnEnter(state State, fn EnterFunc) {
	sm.onEnter[state] = fn
}

// OnChange 注册任意状态变化的回调，在 OnEnter 回调之前执行
func (sm *StateMachine) OnChange(fn func(from, to State)) {
	sm.onChange = fn
}

// Current 当前状态
func (sm *StateMachine) Current() State {
	return sm.current
}

// TimeInState 进入当前状态后经过的时间（秒）
func (sm *StateMachine) TimeInState() float64 {
	return sm.timeInState
}

// CanEnter 判断能否从当前状态进入 to
func (sm *StateMachine) CanEnter(to State) bool {
	for _, s := range sm.transitions[sm.current] {
		if s == to {
			return true
		}
	}
	return false
}

// Enter 尝试进入状态 to，非法转换返回 false 且状态不变
func (sm *StateMachine) Enter(to State) bool {
	if !sm.CanEnter(to) {
		log.Debugf("[StateMachine] 拒绝转换 %s -> %s", sm.current, to)
		return false
	}
	from := sm.current
	sm.current = to
	sm.timeInState = 0
	log.Debugf("[StateMachine] %s -> %s", from, to)

	if sm.onChange != nil {
		sm.onChange(from, to)
	}
	if fn, ok := sm.onEnter[to]; ok && fn != nil {
		fn(from)
	}
	return true
}

// Update 累计状态内时间
func (sm *StateMachine) Update(deltaTime float64) {
	sm.timeInState += deltaTime
}
