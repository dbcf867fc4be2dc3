package vehicle

import (
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/greenwave-sim/entity"
	"github.com/tsinghua-fib-lab/greenwave-sim/utils/config"
)

// controller 车辆速度控制器
// 功能：管理车辆的速度决策逻辑，包括红灯停车、绿灯起步与绿灯窗口的比例控制
type controller struct {
	// 控制器保持的参数

	self              *Vehicle // 模块所在车辆
	minV              float64  // 行驶状态下的速度下界（km/h）
	maxV              float64  // 速度上界（km/h）
	resumeV           float64  // 红灯起步速度（km/h），固定常量起步是对连续起步曲线的刻意简化
	kp                float64  // 比例增益
	scale             float64  // 增益缩放
	stoppingThreshold float64  // 红灯停车距离阈值（距离单位）
	yellowPolicy      string   // 黄灯策略
}

// newController 创建新的车辆控制器
// 参数：self-车辆实体，vehCfg-车辆配置，ctrlCfg-控制器配置
// 返回：初始化完成的控制器实例
func newController(self *Vehicle, vehCfg config.Vehicle, ctrlCfg config.Controller) *controller {
	return &controller{
		self:              self,
		minV:              vehCfg.MinSpeed,
		maxV:              vehCfg.MaxSpeed,
		resumeV:           vehCfg.ResumeSpeed,
		kp:                ctrlCfg.Kp,
		scale:             ctrlCfg.Scale,
		stoppingThreshold: ctrlCfg.StoppingThreshold,
		yellowPolicy:      ctrlCfg.YellowPolicy,
	}
}

// update 执行一个tick的速度决策
// 功能：推进{行驶, 等待}状态机并按相位调整速度
// 参数：next-前方最近信号灯（可为nil），eta-到该信号灯的预计秒数
// 返回：本tick的原始速度建议
// 算法说明：
// 1. 等待状态：所等信号灯变绿则起步（速度置为resumeV），否则保持停车
// 2. 前方无信号灯：维持速度
// 3. 红灯且距离进入停车阈值：停车并进入等待状态
// 4. 绿灯：应用比例控制律
// 5. 黄灯：按配置策略处理（默认维持，可选对黄灯剩余窗口应用比例控制律）
func (c *controller) update(next entity.ISignal, eta float64) entity.Suggestion {
	v := c.self
	if v.waitingAt != "" {
		// 停车期间位置不变，前方最近信号灯必然仍是所等信号灯
		if next == nil || next.Label() != v.waitingAt {
			log.Panicf("vehicle: waiting at %s but next signal ahead is %v", v.waitingAt, next)
		}
		if next.Phase() == entity.PhaseGreen {
			v.waitingAt = ""
			v.v = c.resumeV
			return entity.SuggestionSpeedUp
		}
		return entity.SuggestionSlowDown
	}

	if next == nil {
		return entity.SuggestionMaintain
	}
	switch next.Phase() {
	case entity.PhaseRed:
		if next.Position()-v.position <= c.stoppingThreshold {
			v.v = 0
			v.waitingAt = next.Label()
			return entity.SuggestionSlowDown
		}
		return entity.SuggestionMaintain
	case entity.PhaseGreen:
		return c.proportional(next.Timer(), eta)
	case entity.PhaseYellow:
		if c.yellowPolicy == config.YellowPolicyProportional {
			return c.proportional(next.Timer(), eta)
		}
		return entity.SuggestionMaintain
	default:
		log.Panicf("vehicle: invalid phase %v at signal %s", next.Phase(), next.Label())
		return entity.SuggestionMaintain
	}
}

// proportional 比例控制律
// 功能：按相位窗口剩余时间与到达时间之差调整速度
// 参数：timeLeft-当前相位窗口剩余秒数，eta-预计到达秒数
// 返回：原始速度建议
// 算法说明：误差error = timeLeft - eta。误差为正表示窗口相对到达时间富余，
// 可以减速；误差为负表示赶不上当前窗口，应加速争取在相位切换前通过。
// deltaSpeed = kp * error * scale，新速度为当前速度减去deltaSpeed后
// 截断到[minV, maxV]。新速度高于当前速度时建议加速，否则建议减速
func (c *controller) proportional(timeLeft, eta float64) entity.Suggestion {
	v := c.self
	errT := timeLeft - eta
	deltaSpeed := c.kp * errT * c.scale
	newV := lo.Clamp(v.v-deltaSpeed, c.minV, c.maxV)
	suggestion := entity.SuggestionSlowDown
	if newV > v.v {
		suggestion = entity.SuggestionSpeedUp
	}
	v.v = newV
	return suggestion
}
