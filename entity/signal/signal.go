package signal

import (
	"fmt"

	"github.com/tsinghua-fib-lab/greenwave-sim/entity"
	"github.com/tsinghua-fib-lab/greenwave-sim/utils/config"
	"github.com/tsinghua-fib-lab/greenwave-sim/utils/randengine"
)

// 相位时长常量（秒）
const (
	GreenDuration  = 45 // 绿灯固定时长
	YellowDuration = 5  // 黄灯固定时长
	RedDurationMin = 30 // 红灯时长采样下界
	RedDurationMax = 60 // 红灯时长采样上界

	initTimerMin = 10 // 初始相位剩余时间采样下界（红/绿）
	initTimerMax = 45 // 初始相位剩余时间采样上界（红/绿）
)

// Signal 信号灯实体
// 功能：维护单个信号灯的相位状态机，固定循环红→绿→黄→红
// 说明：绿灯与黄灯时长固定，红灯时长在每次进入红灯时从[RedDurationMin,
// RedDurationMax]均匀重新采样，这是初始化之后仿真中唯一的随机性来源。
// 仅由Manager.Update修改，生命周期与一次仿真运行一致
type Signal struct {
	// 静态属性

	label    string  // 唯一标签
	position float64 // 在路线上的位置（距离单位）

	generator *randengine.Engine // 随机数生成器，种子由运行种子与路线序号导出

	// 运行时数据

	phase entity.Phase // 当前相位
	timer float64      // 当前相位剩余时间（秒），update后恒大于0
}

// newSignal 创建并初始化一个信号灯
// 功能：随机采样初始相位与初始剩余时间
// 参数：item-信号灯配置，generator-该信号灯独占的随机数生成器
// 说明：初始相位在红/绿/黄中均匀选取；黄灯的初始剩余时间固定为黄灯时长，
// 红灯与绿灯的初始剩余时间在[initTimerMin, initTimerMax]中均匀采样
func newSignal(item config.SignalItem, generator *randengine.Engine) *Signal {
	s := &Signal{
		label:     item.Label,
		position:  item.Position,
		generator: generator,
	}
	s.phase = entity.PhaseRed + entity.Phase(generator.Intn(3))
	if s.phase == entity.PhaseYellow {
		s.timer = YellowDuration
	} else {
		s.timer = float64(generator.UniformInt(initTimerMin, initTimerMax))
	}
	return s
}

// update 推进相位状态机
// 功能：将剩余时间减去dt，触发时执行恰好一次相位切换
// 参数：dt-时间步长（秒）
// 说明：timer<=0作为切换触发条件，切换后将timer重置为新相位的完整时长，
// 不结转欠量，单个tick内不跳过相位，update返回后timer恒大于0
func (s *Signal) update(dt float64) {
	s.timer -= dt
	if s.timer <= 0 {
		s.phase = s.phase.Next()
		s.timer = s.sampleDuration(s.phase)
	}
}

// sampleDuration 获取进入指定相位时的完整时长
// 说明：红灯时长在进入时均匀重新采样，绿灯与黄灯为固定常量
func (s *Signal) sampleDuration(p entity.Phase) float64 {
	switch p {
	case entity.PhaseGreen:
		return GreenDuration
	case entity.PhaseYellow:
		return YellowDuration
	case entity.PhaseRed:
		return float64(s.generator.UniformInt(RedDurationMin, RedDurationMax))
	default:
		log.Panicf("signal: invalid phase %v entered by %s", p, s.label)
		return 0
	}
}

func (s *Signal) String() string {
	return fmt.Sprintf("Signal %s@%v [%v %.0fs]", s.label, s.position, s.phase, s.timer)
}

// getter

// Label 获取信号灯标签
func (s *Signal) Label() string {
	return s.label
}

// Position 获取信号灯在路线上的位置
func (s *Signal) Position() float64 {
	return s.position
}

// Phase 获取当前相位
func (s *Signal) Phase() entity.Phase {
	return s.phase
}

// Timer 获取当前相位剩余时间（秒）
func (s *Signal) Timer() float64 {
	return s.timer
}
