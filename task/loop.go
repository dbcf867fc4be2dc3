package task

import (
	"flag"
	"math"
	"time"

	"github.com/tsinghua-fib-lab/greenwave-sim/entity"
	"github.com/tsinghua-fib-lab/greenwave-sim/entity/signal"
	"github.com/tsinghua-fib-lab/greenwave-sim/telemetry"
)

var (
	heartBeatInterval = flag.Int("log.heartbeat_interval", 100, "心跳日志间隔步数")
)

// Step 执行一个tick
// 功能：以严格顺序推进一个模拟秒并返回tick边界的遥测快照
// 算法说明：
// 1. 推进时钟
// 2. 推进所有信号灯的相位状态机
// 3. 定位车辆前方最近的信号灯，计算距离与eta
// 4. 预测车辆到达时信号灯所处的相位
// 5. 车辆决策（停车/起步/比例控制）并移动
// 6. 建议滤波与告警门控
// 7. 检查路线完成，组装快照
// 说明：整个tick单线程原子执行，不与其他tick交错；外部观察者只通过
// 返回的快照读取状态
func (ctx *Context) Step() *telemetry.Snapshot {
	c := ctx.clock
	c.InternalStep++
	c.T = float64(c.InternalStep) * c.DT

	if c.InternalStep%int32(*heartBeatInterval) == 0 {
		hour, minute, second := c.GetHourMinuteSecond()
		log.Infof("STEP: %d(%d:%d:%.2f)", c.InternalStep, hour, minute, second)
	}

	dt := c.DT
	ctx.signalManager.Update(dt)

	veh := ctx.vehicle
	next := ctx.signalManager.NextAhead(veh.Position())
	var (
		label        string
		distance     float64
		eta          = math.Inf(1)
		currentPhase = entity.PhaseUnspecified
		predicted    = entity.PhaseUnspecified
	)
	if next != nil {
		label = next.Label()
		distance = next.Position() - veh.Position()
		currentPhase = next.Phase()
		eta = veh.EtaTo(distance)
		predicted = signal.PredictAtArrival(currentPhase, next.Timer(), eta)
	}

	raw := veh.Update(dt, next, eta)
	stable := ctx.advice.Observe(raw)
	alert := ctx.advice.GateAlert(predicted, c.T)

	if veh.Position() > ctx.runtimeConfig.All.Route.Length {
		ctx.done = true
	}

	return &telemetry.Snapshot{
		RunID: ctx.runID,
		Step:  c.InternalStep,
		T:     c.T,

		Speed:     veh.V(),
		Position:  veh.Position(),
		Waiting:   veh.IsWaiting(),
		WaitingAt: veh.WaitingAt(),

		NextSignal:     label,
		Distance:       distance,
		CurrentPhase:   currentPhase,
		Eta:            eta,
		PredictedPhase: predicted,

		RawAdvice:    raw,
		StableAdvice: stable,
		Alert:        alert,
	}
}

// Run 运行仿真直到结束
// 功能：宿主循环，逐tick调用Step直到路线完成或收到停止指令
// 说明：实时节拍只是表现层特性，不是正确性依赖；无节拍的批处理运行对
// 相同种子产生完全相同的决策序列
func (ctx *Context) Run() {
	var pacer *time.Ticker
	if ctx.runtimeConfig.C.Realtime {
		pacer = time.NewTicker(time.Duration(ctx.clock.DT * float64(time.Second)))
		defer pacer.Stop()
	}
	for !ctx.Done() {
		snapshot := ctx.Step()
		log.Debugf("%v", snapshot)
		if snapshot.Alert != nil {
			log.Infof("alert (%v): %s", snapshot.Alert.Phase, snapshot.Alert.Text)
		}
		if pacer != nil {
			<-pacer.C
		}
	}
	log.Infof("engine complete: %d steps, final position %.1f",
		ctx.clock.InternalStep, ctx.vehicle.Position())
}
