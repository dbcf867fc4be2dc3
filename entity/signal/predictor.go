package signal

import (
	"math"

	"github.com/tsinghua-fib-lab/greenwave-sim/entity"
)

// NominalRedDuration 相位预测使用的红灯名义规划时长（秒）
// 说明：未来红灯的实际时长只在信号灯真正进入红灯的时刻采样，预测跨越
// 未来红灯时只能使用固定的名义时长。这是被建模的真实不确定性，
// 不是待修复的缺陷
const NominalRedDuration = 40

// planningDuration 获取相位预测使用的名义时长
func planningDuration(p entity.Phase) float64 {
	switch p {
	case entity.PhaseGreen:
		return GreenDuration
	case entity.PhaseYellow:
		return YellowDuration
	case entity.PhaseRed:
		return NominalRedDuration
	default:
		log.Panicf("signal: invalid phase %v in planning", p)
		return 0
	}
}

// PredictAtArrival 预测车辆到达时信号灯所处的相位（纯函数）
// 参数：phase-信号灯当前相位，timer-当前相位剩余秒数，eta-预计到达秒数
// （车辆静止时为+Inf）
// 返回：到达时刻预计处于的相位
// 算法说明：
// 1. eta <= timer：车辆在任何相位切换之前到达，返回当前相位
// 2. eta无界（车辆静止）：没有有意义的到达时刻，返回当前相位
// 3. 否则沿当前相位之后的确定性循环向前走：逐个减去后续相位的名义时长，
//    直到残差落入某个相位的窗口内，该相位即为预测结果；残差超过一整圈时
//    继续下一圈（循环是可重入的惰性展开序列，实践中信号灯间距使eta有界，
//    至多多走一圈）
func PredictAtArrival(phase entity.Phase, timer, eta float64) entity.Phase {
	if math.IsInf(eta, 1) || eta <= timer {
		return phase
	}
	residual := eta - timer
	p := phase
	for {
		p = p.Next()
		if d := planningDuration(p); residual <= d {
			return p
		} else {
			residual -= d
		}
	}
}
