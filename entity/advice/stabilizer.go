package advice

import (
	"git.fiblab.net/general/common/v2/mathutil"
	"github.com/tsinghua-fib-lab/greenwave-sim/entity"
	"github.com/tsinghua-fib-lab/greenwave-sim/telemetry"
)

// stableRunLength 原始建议至少连续保持的tick数，达到后才对外呈现
const stableRunLength = 2

// State 建议稳定器
// 功能：对原始建议流做滞回滤波，防止呈现/播报的建议抖动，并对告警事件
// 做最小重报间隔门控
// 说明：全部状态由仿真循环独占持有、每tick修改一次，不依赖任何
// 会话级全局量
type State struct {
	debounceWindow float64 // 两次告警的最小间隔（秒）

	// 运行时数据

	raw       entity.Suggestion // 当前原始建议
	stable    entity.Suggestion // 当前稳定建议
	runLength int               // 原始建议连续保持不变的tick数

	lastAlertPhase entity.Phase // 上次告警时的预测相位
	lastAlertT     float64      // 上次告警的仿真时刻（秒）
	hasAlerted     bool         // 是否已产生过告警
}

// NewState 创建建议稳定器
// 参数：debounceWindow-两次告警的最小间隔秒数
func NewState(debounceWindow float64) *State {
	return &State{
		debounceWindow: debounceWindow,
		raw:            entity.SuggestionMaintain,
		stable:         entity.SuggestionMaintain,
		lastAlertT:     -mathutil.INF,
	}
}

// Observe 观察本tick的原始建议并返回稳定建议
// 算法说明：原始建议与上一tick相同则累加运行长度，变化则重置为1；
// 运行长度达到stableRunLength后稳定建议才等于原始建议，否则退回中性的
// Maintain。单tick的建议闪烁永远不会改变稳定建议
func (s *State) Observe(raw entity.Suggestion) entity.Suggestion {
	if raw == s.raw {
		s.runLength++
	} else {
		s.raw = raw
		s.runLength = 1
	}
	if s.runLength >= stableRunLength {
		s.stable = s.raw
	} else {
		s.stable = entity.SuggestionMaintain
	}
	return s.stable
}

// GateAlert 告警门控
// 功能：判定本tick是否产生告警事件并据此更新门控状态
// 参数：predicted-本tick的预测相位（无信号灯时为Unspecified），now-仿真时刻
// 返回：通过门控的告警事件，未通过为nil
// 说明：告警在预测相位相对上次告警发生变化、且距上次告警至少
// debounceWindow秒时触发。触发时记录新的预测相位与时刻。
// 去抖按仿真时钟计量，实时节拍运行时与墙钟一致
func (s *State) GateAlert(predicted entity.Phase, now float64) *telemetry.AlertEvent {
	if s.hasAlerted && predicted == s.lastAlertPhase {
		return nil
	}
	if now-s.lastAlertT < s.debounceWindow {
		return nil
	}
	s.hasAlerted = true
	s.lastAlertPhase = predicted
	s.lastAlertT = now
	return &telemetry.AlertEvent{
		Phase: predicted,
		Text:  alertText(s.stable),
	}
}

// alertText 生成播报文本
// 说明：文本由核心产生，投递由外部协作方负责
func alertText(stable entity.Suggestion) string {
	switch stable {
	case entity.SuggestionSpeedUp:
		return "Signal is green. You can speed up."
	case entity.SuggestionSlowDown:
		return "Red signal ahead. Please slow down."
	default:
		return "Maintain your current speed."
	}
}

// getter

// Raw 获取当前原始建议
func (s *State) Raw() entity.Suggestion {
	return s.raw
}

// Stable 获取当前稳定建议
func (s *State) Stable() entity.Suggestion {
	return s.stable
}

// RunLength 获取原始建议连续保持不变的tick数
func (s *State) RunLength() int {
	return s.runLength
}
