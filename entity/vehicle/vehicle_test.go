package vehicle_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/greenwave-sim/entity"
	"github.com/tsinghua-fib-lab/greenwave-sim/entity/vehicle"
	"github.com/tsinghua-fib-lab/greenwave-sim/utils/config"
)

type stubSignal struct {
	label    string
	position float64
	phase    entity.Phase
	timer    float64
}

func (s stubSignal) Label() string     { return s.label }
func (s stubSignal) Position() float64 { return s.position }
func (s stubSignal) Phase() entity.Phase {
	return s.phase
}
func (s stubSignal) Timer() float64 { return s.timer }

func newTestVehicle(initialSpeed float64, yellowPolicy string) *vehicle.Vehicle {
	return vehicle.New(
		config.Vehicle{
			InitialSpeed: initialSpeed,
			MinSpeed:     10,
			MaxSpeed:     60,
			ResumeSpeed:  15,
		},
		config.Controller{
			Kp:                0.1,
			Scale:             10,
			StoppingThreshold: 40,
			YellowPolicy:      yellowPolicy,
		},
	)
}

func TestEta(t *testing.T) {
	v := newTestVehicle(20, config.YellowPolicyMaintain)
	// eta = distance / (speed * 0.1)
	assert.Equal(t, 50.0, v.EtaTo(100))

	// 速度为0时eta为显式的无界哨兵而不是算术错误
	sig := stubSignal{label: "B", position: 30, phase: entity.PhaseRed, timer: 20}
	v.Update(1, sig, v.EtaTo(30))
	require.True(t, v.IsWaiting())
	assert.True(t, math.IsInf(v.EtaTo(30), 1))
}

func TestStopAtRedSignal(t *testing.T) {
	v := newTestVehicle(20, config.YellowPolicyMaintain)
	sig := stubSignal{label: "B", position: 30, phase: entity.PhaseRed, timer: 20}

	// 红灯且距离30进入停车阈值40，停车等待
	raw := v.Update(1, sig, v.EtaTo(30))
	assert.Equal(t, entity.SuggestionSlowDown, raw)
	assert.True(t, v.IsWaiting())
	assert.Equal(t, "B", v.WaitingAt())
	assert.Equal(t, 0.0, v.V())
	assert.Equal(t, 0.0, v.Position())

	// 仍为红灯时保持停车
	raw = v.Update(1, sig, v.EtaTo(30))
	assert.Equal(t, entity.SuggestionSlowDown, raw)
	assert.True(t, v.IsWaiting())
	assert.Equal(t, 0.0, v.V())
}

func TestRedSignalBeyondThreshold(t *testing.T) {
	v := newTestVehicle(20, config.YellowPolicyMaintain)
	sig := stubSignal{label: "B", position: 100, phase: entity.PhaseRed, timer: 20}

	// 红灯但距离100未进入停车阈值，维持行驶
	raw := v.Update(1, sig, v.EtaTo(100))
	assert.Equal(t, entity.SuggestionMaintain, raw)
	assert.False(t, v.IsWaiting())
	assert.Equal(t, 20.0, v.V())
	assert.Equal(t, 2.0, v.Position())
}

func TestResumeOnGreen(t *testing.T) {
	v := newTestVehicle(20, config.YellowPolicyMaintain)
	red := stubSignal{label: "B", position: 30, phase: entity.PhaseRed, timer: 2}
	v.Update(1, red, v.EtaTo(30))
	require.True(t, v.IsWaiting())

	// 所等信号灯变绿后以固定起步速度恢复行驶
	green := stubSignal{label: "B", position: 30, phase: entity.PhaseGreen, timer: 45}
	raw := v.Update(1, green, v.EtaTo(30))
	assert.Equal(t, entity.SuggestionSpeedUp, raw)
	assert.False(t, v.IsWaiting())
	assert.Equal(t, 15.0, v.V())
	assert.Equal(t, 1.5, v.Position())
}

func TestProportionalControlOnGreen(t *testing.T) {
	// 绿灯窗口赶不上（error = 10 - 50 = -40）：加速，截断到上界
	v := newTestVehicle(20, config.YellowPolicyMaintain)
	sig := stubSignal{label: "B", position: 100, phase: entity.PhaseGreen, timer: 10}
	raw := v.Update(1, sig, v.EtaTo(100))
	assert.Equal(t, entity.SuggestionSpeedUp, raw)
	assert.Equal(t, 60.0, v.V())

	// 绿灯窗口富余（error = 60 - 50 = 10）：减速，delta = 0.1*10*10 = 10
	v = newTestVehicle(20, config.YellowPolicyMaintain)
	sig = stubSignal{label: "B", position: 100, phase: entity.PhaseGreen, timer: 60}
	raw = v.Update(1, sig, v.EtaTo(100))
	assert.Equal(t, entity.SuggestionSlowDown, raw)
	assert.Equal(t, 10.0, v.V())

	// 减速被截断到下界
	v = newTestVehicle(20, config.YellowPolicyMaintain)
	sig = stubSignal{label: "B", position: 100, phase: entity.PhaseGreen, timer: 200}
	raw = v.Update(1, sig, v.EtaTo(100))
	assert.Equal(t, entity.SuggestionSlowDown, raw)
	assert.Equal(t, 10.0, v.V())
}

func TestNoSignalAhead(t *testing.T) {
	v := newTestVehicle(25, config.YellowPolicyMaintain)
	raw := v.Update(1, nil, math.Inf(1))
	assert.Equal(t, entity.SuggestionMaintain, raw)
	assert.Equal(t, 25.0, v.V())
	assert.Equal(t, 2.5, v.Position())
}

func TestYellowPolicy(t *testing.T) {
	// 默认策略：黄灯不做特殊处理
	v := newTestVehicle(20, config.YellowPolicyMaintain)
	sig := stubSignal{label: "B", position: 100, phase: entity.PhaseYellow, timer: 3}
	raw := v.Update(1, sig, v.EtaTo(100))
	assert.Equal(t, entity.SuggestionMaintain, raw)
	assert.Equal(t, 20.0, v.V())

	// proportional策略：对黄灯剩余窗口应用与绿灯相同的控制律
	v = newTestVehicle(20, config.YellowPolicyProportional)
	raw = v.Update(1, sig, v.EtaTo(100))
	assert.Equal(t, entity.SuggestionSpeedUp, raw)
	assert.Equal(t, 60.0, v.V())
}

func TestSpeedBoundsAndMonotonicPosition(t *testing.T) {
	v := newTestVehicle(25, config.YellowPolicyMaintain)
	sig := stubSignal{label: "B", position: 1e9, phase: entity.PhaseGreen, timer: 30}

	lastPosition := v.Position()
	for tick := 0; tick < 500; tick++ {
		v.Update(1, sig, v.EtaTo(sig.position-v.Position()))
		if v.IsWaiting() {
			require.Equal(t, 0.0, v.V())
		} else {
			require.GreaterOrEqual(t, v.V(), 10.0)
			require.LessOrEqual(t, v.V(), 60.0)
		}
		require.GreaterOrEqual(t, v.Position(), lastPosition)
		lastPosition = v.Position()
	}
}
