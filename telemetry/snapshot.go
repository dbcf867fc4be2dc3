package telemetry

import (
	"fmt"
	"math"

	"github.com/tsinghua-fib-lab/greenwave-sim/entity"
)

// AlertEvent 告警事件
// 功能：携带通过去抖门控的播报内容
// 说明：文本由核心产生，投递方式（语音、日志、界面）由外部协作方决定
type AlertEvent struct {
	Phase entity.Phase // 触发告警时的预测相位
	Text  string       // 播报文本
}

// Snapshot 单个tick结束时的遥测快照
// 功能：在tick边界向外部观察者暴露的不可变状态副本
// 说明：值类型；仪表盘、语音投递、指标展示等消费方只读取快照，
// 从不直接修改核心状态
type Snapshot struct {
	RunID string  // 本次仿真运行的UUID
	Step  int32   // tick序号
	T     float64 // 仿真时间（秒）

	// 车辆

	Speed     float64 // 当前速度（km/h）
	Position  float64 // 在路线上的位置
	Waiting   bool    // 是否停车等待
	WaitingAt string  // 等待的信号灯标签，不在等待时为空串

	// 前方信号灯，NextSignal为空串表示已越过最后一个信号灯

	NextSignal     string       // 前方信号灯标签
	Distance       float64      // 到前方信号灯的距离
	CurrentPhase   entity.Phase // 前方信号灯当前相位
	Eta            float64      // 预计到达秒数，车辆静止时为+Inf
	PredictedPhase entity.Phase // 到达时的预测相位，无信号灯时为Unspecified

	// 建议

	RawAdvice    entity.Suggestion // 本tick的原始建议
	StableAdvice entity.Suggestion // 滤波后的稳定建议
	Alert        *AlertEvent       // 本tick触发的告警，未触发为nil
}

// EtaUnbounded 判断预计到达时间是否无界（车辆静止）
func (s *Snapshot) EtaUnbounded() bool {
	return math.IsInf(s.Eta, 1)
}

// EtaString 格式化预计到达时间，无界时为N/A
func (s *Snapshot) EtaString() string {
	if s.EtaUnbounded() {
		return "N/A"
	}
	return fmt.Sprintf("%.0fs", s.Eta)
}

func (s *Snapshot) String() string {
	return fmt.Sprintf(
		"STEP %d (%.0fs): v=%.1fkm/h x=%.1f next=%s dist=%.1f phase=%v eta=%s predicted=%v advice=%v",
		s.Step, s.T, s.Speed, s.Position,
		s.NextSignal, s.Distance, s.CurrentPhase, s.EtaString(), s.PredictedPhase, s.StableAdvice,
	)
}
