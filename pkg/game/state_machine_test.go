package game

import "testing"

func TestStateMachine_Transitions(t *testing.T) {
	tests := []struct {
		name string
		path []State
		to   State
		want bool
	}{
		{"Ready→Active", nil, StateActive, true},
		{"Ready→Win 拒绝", nil, StateWin, false},
		{"Ready→Ready 拒绝", nil, StateReady, false},
		{"Active→Win", []State{StateActive}, StateWin, true},
		{"Active→Lose", []State{StateActive}, StateLose, true},
		{"Active→Ready 拒绝", []State{StateActive}, StateReady, false},
		{"Win→Ready", []State{StateActive, StateWin}, StateReady, true},
		{"Win→Active 拒绝", []State{StateActive, StateWin}, StateActive, false},
		{"Win→Lose 拒绝", []State{StateActive, StateWin}, StateLose, false},
		{"Lose→Ready", []State{StateActive, StateLose}, StateReady, true},
		{"Lose→Lose 拒绝", []State{StateActive, StateLose}, StateLose, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := NewStateMachine()
			for _, s := range tt.path {
				if !sm.Enter(s) {
					t.Fatalf("setup transition to %s failed", s)
				}
			}
			before := sm.Current()
			got := sm.Enter(tt.to)
			if got != tt.want {
				t.Errorf("Enter(%s) = %v, want %v", tt.to, got, tt.want)
			}
			if !got && sm.Current() != before {
				t.Errorf("rejected transition changed state to %s", sm.Current())
			}
		})
	}
}

func TestStateMachine_Hooks(t *testing.T) {
	sm := NewStateMachine()
	var entered []State
	var froms []State
	sm.OnEnter(StateActive, func(from State) {
		entered = append(entered, StateActive)
		froms = append(froms, from)
	})
	changes := 0
	sm.OnChange(func(from, to State) { changes++ })

	sm.Enter(StateActive)
	sm.Enter(StateActive) // 重复进入被拒绝，不触发回调

	if len(entered) != 1 || froms[0] != StateReady || changes != 1 {
		t.Errorf("entered=%v froms=%v changes=%d", entered, froms, changes)
	}

	sm.Update(0.5)
	sm.Update(0.25)
	if sm.TimeInState() != 0.75 {
		t.Errorf("TimeInState = %v, want 0.75", sm.TimeInState())
	}
	sm.Enter(StateWin)
	if sm.TimeInState() != 0 {
		t.Error("TimeInState should reset on transition")
	}
}
