package components

// AnimationState 动画状态
type AnimationState int

const (
	AnimationIdle AnimationState = iota
	AnimationWalk
	AnimationHit
	AnimationDead
	AnimationAttacking
)

var animationStateNames = [...]string{"Idle", "Walk", "Hit", "Dead", "Attacking"}

// String 返回动画状态名称
func (s AnimationState) String() string {
	if int(s) >= 0 && int(s) < len(animationStateNames) {
		return animationStateNames[s]
	}
	return "Unknown"
}

// DefaultFrameSpeed 默认帧间隔（秒）
const DefaultFrameSpeed = 1.0 / 30

// AnimationClip 单个状态对应的帧序列
type AnimationClip struct {
	Name       string // 帧名前缀，如 "Light_Walk"
	FrameCount int
	Looping    bool
}

// AnimationComponent 状态驱动的帧动画
//
// 外部通过 Request 请求切换状态；AnimationSystem 每帧最多应用一次请求并清空。
type AnimationComponent struct {
	CurrentState AnimationState
	HasCurrent   bool // 是否已经播放过任何状态

	requested    AnimationState
	hasRequested bool

	Clips map[AnimationState]AnimationClip

	FrameSpeed   float64 // 每帧之间的延迟时间(秒)
	FrameCounter float64 // 当前帧计时器(秒)
	CurrentFrame int     // 当前显示的帧索引(0-based)
	IsFinished   bool    // 非循环动画是否已播完
}

// NewAnimationComponent 创建动画组件
func NewAnimationComponent(clips map[AnimationState]AnimationClip) *AnimationComponent {
	return &AnimationComponent{
		Clips:      clips,
		FrameSpeed: DefaultFrameSpeed,
	}
}

// Request 请求切换到指定状态（下一次更新时生效）
func (a *AnimationComponent) Request(state AnimationState) {
	a.requested = state
	a.hasRequested = true
}

// Requested 返回待处理的请求
func (a *AnimationComponent) Requested() (AnimationState, bool) {
	return a.requested, a.hasRequested
}

// ClearRequest 清空待处理的请求
func (a *AnimationComponent) ClearRequest() {
	a.hasRequested = false
}
