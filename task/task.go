package task

import (
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/tsinghua-fib-lab/greenwave-sim/clock"
	"github.com/tsinghua-fib-lab/greenwave-sim/entity"
	"github.com/tsinghua-fib-lab/greenwave-sim/entity/advice"
	"github.com/tsinghua-fib-lab/greenwave-sim/entity/signal"
	"github.com/tsinghua-fib-lab/greenwave-sim/entity/vehicle"
	"github.com/tsinghua-fib-lab/greenwave-sim/utils/config"
)

// Context 仿真任务上下文
// 功能：包含一次仿真运行的所有变量和状态，不使用任何全局变量
// 说明：独占持有一个信号灯管理器、一辆车与一个建议稳定器，生命周期与
// 一次仿真运行一致，运行之间不共享任何实体
type Context struct {
	// 运行ID
	runID string
	// 外部停止指令，每个tick边界检查一次
	closed atomic.Bool
	// 路线完成标志
	done bool

	// 时钟
	clock *clock.Clock
	// 运行时配置
	runtimeConfig *config.RuntimeConfig

	// 信号灯管理器
	signalManager entity.ISignalManager
	// 车辆
	vehicle *vehicle.Vehicle
	// 建议稳定器
	advice *advice.State
}

// NewContext 创建新的仿真任务上下文
// 功能：校验配置并初始化仿真系统的所有组件
// 参数：c-配置对象，seed-随机数种子（相同种子产生完全相同的决策序列）
// 返回：初始化完成的Context实例，配置非法时返回错误且不构造任何部分状态
func NewContext(c config.Config, seed uint64) (*Context, error) {
	rc, err := config.NewRuntimeConfig(c)
	if err != nil {
		return nil, err
	}
	ctx := &Context{
		runID:         uuid.NewString(),
		runtimeConfig: rc,
	}
	ctx.clock = clock.New(rc.C.Step)

	// 新建各类模拟对象
	signalManager := signal.NewManager()
	signalManager.Init(rc.All.Route.Signals, seed)
	ctx.signalManager = signalManager
	ctx.vehicle = vehicle.New(rc.All.Vehicle, rc.All.Controller)
	ctx.advice = advice.NewState(rc.All.Advice.DebounceWindow)

	log.Infof("run %s: %d signals, route length %v", ctx.runID, len(rc.All.Route.Signals), rc.All.Route.Length)
	return ctx, nil
}

func (ctx *Context) RunID() string {
	return ctx.runID
}

func (ctx *Context) Clock() *clock.Clock {
	return ctx.clock
}

func (ctx *Context) SignalManager() entity.ISignalManager {
	return ctx.signalManager
}

func (ctx *Context) Vehicle() entity.IVehicle {
	return ctx.vehicle
}

func (ctx *Context) RuntimeConfig() *config.RuntimeConfig {
	return ctx.runtimeConfig
}

// Stop 外部停止指令
// 说明：取消是外部且粗粒度的，在下一个tick边界生效，不要求tick内中断
func (ctx *Context) Stop() {
	ctx.closed.Store(true)
}

// Done 判断仿真是否应当结束
// 说明：路线完成、达到tick数量安全上界或收到外部停止指令
func (ctx *Context) Done() bool {
	return ctx.done || ctx.clock.InternalStep >= ctx.clock.END_STEP || ctx.closed.Load()
}
