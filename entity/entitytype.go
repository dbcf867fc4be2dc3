package entity

import (
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("module", "entity")

// Phase 信号灯相位
// 功能：表示信号灯的当前相位，固定循环为红→绿→黄→红
// 说明：零值为UNSPECIFIED（proto风格），仅用于"无预测/前方无信号灯"的输出哨兵，
// 信号灯实体本身只会处于红/绿/黄三种相位之一
type Phase int32

const (
	PhaseUnspecified Phase = iota // 未指定（输出哨兵，不是合法的信号灯相位）
	PhaseRed                      // 红灯
	PhaseGreen                    // 绿灯
	PhaseYellow                   // 黄灯
)

// Next 获取固定循环中的下一个相位
// 功能：按红→绿→黄→红的固定顺序返回下一个相位
// 说明：相位枚举是封闭的，出现其他值属于程序不变量被破坏，直接panic而不是
// 退化为某个看似合理的相位
func (p Phase) Next() Phase {
	switch p {
	case PhaseRed:
		return PhaseGreen
	case PhaseGreen:
		return PhaseYellow
	case PhaseYellow:
		return PhaseRed
	default:
		log.Panicf("entity: invalid phase %d in cycle", p)
		return PhaseUnspecified
	}
}

func (p Phase) String() string {
	switch p {
	case PhaseUnspecified:
		return "-"
	case PhaseRed:
		return "red"
	case PhaseGreen:
		return "green"
	case PhaseYellow:
		return "yellow"
	default:
		log.Panicf("entity: invalid phase %d", p)
		return ""
	}
}

// Suggestion 速度建议标签
// 功能：表示控制器每个tick产生的原始建议与滤波后的稳定建议
type Suggestion int32

const (
	SuggestionMaintain Suggestion = iota // 维持当前速度（默认中性标签）
	SuggestionSpeedUp                    // 加速
	SuggestionSlowDown                   // 减速
)

func (s Suggestion) String() string {
	switch s {
	case SuggestionMaintain:
		return "Maintain"
	case SuggestionSpeedUp:
		return "Speed Up"
	case SuggestionSlowDown:
		return "Slow Down"
	default:
		log.Panicf("entity: invalid suggestion %d", s)
		return ""
	}
}

// entity/signal/signal.go的依赖倒置
type ISignal interface {
	Label() string     // 获取信号灯标签（唯一标识）
	Position() float64 // 获取信号灯在路线上的位置（距离单位）
	Phase() Phase      // 获取当前相位
	Timer() float64    // 获取当前相位剩余时间（秒）
}

// entity/signal/manager.go的依赖倒置
type ISignalManager interface {
	Update(dt float64)                  // 推进所有信号灯的相位状态机
	NextAhead(position float64) ISignal // 查询位置前方最近的信号灯，越过最后一个信号灯后返回nil
	Get(label string) ISignal           // 根据标签获取信号灯，不存在则panic
	GetOrError(label string) (ISignal, error)
	Signals() []ISignal // 按路线顺序获取所有信号灯
}

// entity/vehicle/vehicle.go的依赖倒置
type IVehicle interface {
	Position() float64 // 获取车辆在路线上的位置（非递减）
	V() float64        // 获取车辆速度（km/h）
	IsWaiting() bool   // 判断车辆是否停在信号灯前等待
	WaitingAt() string // 获取等待的信号灯标签，不在等待时为空串
}
