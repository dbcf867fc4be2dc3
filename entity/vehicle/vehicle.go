package vehicle

import (
	"fmt"
	"math"

	"github.com/tsinghua-fib-lab/greenwave-sim/entity"
	"github.com/tsinghua-fib-lab/greenwave-sim/utils/config"
)

// SpeedToDistanceFactor 速度到位移的换算系数
// 说明：速度1 km/h每模拟秒贡献0.1距离单位，由此固定了路线距离单位与
// 真实秒之间的关系：eta = distance / (speed * 0.1)
const SpeedToDistanceFactor = 0.1

// Vehicle 车辆实体
// 功能：维护车辆的位置、速度与等待状态，位置沿路线单调非减
// 说明：状态机为{行驶, 信号灯前等待}两态；等待状态下速度恒为0，
// 行驶状态下速度被约束在[minV, maxV]内。仅由仿真循环每tick修改一次
type Vehicle struct {
	controller *controller // 速度控制器

	// 运行时数据

	position  float64 // 在路线上的位置（距离单位），单调非减
	v         float64 // 当前速度（km/h）
	waitingAt string  // 等待的信号灯标签，空串表示行驶中
}

// New 创建并初始化车辆
// 功能：按配置设置初始速度并构造速度控制器
// 参数：vehCfg-车辆配置，ctrlCfg-控制器配置（均已通过校验并补全默认值）
func New(vehCfg config.Vehicle, ctrlCfg config.Controller) *Vehicle {
	v := &Vehicle{
		position: 0,
		v:        vehCfg.InitialSpeed,
	}
	v.controller = newController(v, vehCfg, ctrlCfg)
	return v
}

// Update 执行一个tick的车辆更新
// 功能：先由控制器做速度决策（含停车/起步状态切换），再按决策后的速度移动
// 参数：dt-时间步长（秒），next-前方最近信号灯（可为nil），eta-到该信号灯的
// 预计秒数（无信号灯时无意义）
// 返回：本tick的原始速度建议，交给建议稳定器滤波
func (v *Vehicle) Update(dt float64, next entity.ISignal, eta float64) entity.Suggestion {
	raw := v.controller.update(next, eta)
	if v.v > 0 {
		v.position += v.v * SpeedToDistanceFactor * dt
	}
	return raw
}

// EtaTo 计算到前方给定距离处的预计到达秒数
// 说明：速度为0时没有语言层面的除零错误，返回显式的无界哨兵+Inf
func (v *Vehicle) EtaTo(distance float64) float64 {
	if v.v <= 0 {
		return math.Inf(1)
	}
	return distance / (v.v * SpeedToDistanceFactor)
}

func (v *Vehicle) String() string {
	if v.IsWaiting() {
		return fmt.Sprintf("Vehicle@%.1f waiting at %s", v.position, v.waitingAt)
	}
	return fmt.Sprintf("Vehicle@%.1f %.1fkm/h", v.position, v.v)
}

// getter

// Position 获取车辆在路线上的位置
func (v *Vehicle) Position() float64 {
	return v.position
}

// V 获取车辆当前速度（km/h）
func (v *Vehicle) V() float64 {
	return v.v
}

// IsWaiting 判断车辆是否停在信号灯前等待
func (v *Vehicle) IsWaiting() bool {
	return v.waitingAt != ""
}

// WaitingAt 获取等待的信号灯标签，不在等待时为空串
func (v *Vehicle) WaitingAt() string {
	return v.waitingAt
}
