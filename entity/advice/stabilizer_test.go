package advice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/greenwave-sim/entity"
	"github.com/tsinghua-fib-lab/greenwave-sim/entity/advice"
)

func TestStableRequiresTwoTicks(t *testing.T) {
	s := advice.NewState(5)

	// 基准序列：[SpeedUp, SpeedUp, SlowDown] → [Maintain, SpeedUp, Maintain]
	assert.Equal(t, entity.SuggestionMaintain, s.Observe(entity.SuggestionSpeedUp))
	assert.Equal(t, entity.SuggestionSpeedUp, s.Observe(entity.SuggestionSpeedUp))
	assert.Equal(t, entity.SuggestionMaintain, s.Observe(entity.SuggestionSlowDown))
}

func TestSingleFlickerNeverSurfaces(t *testing.T) {
	s := advice.NewState(5)
	s.Observe(entity.SuggestionSlowDown)
	s.Observe(entity.SuggestionSlowDown)
	require.Equal(t, entity.SuggestionSlowDown, s.Stable())

	// 单tick闪烁不会改变稳定建议
	assert.Equal(t, entity.SuggestionMaintain, s.Observe(entity.SuggestionSpeedUp))
	assert.Equal(t, 1, s.RunLength())
	// 闪烁消退后重新累计
	assert.Equal(t, entity.SuggestionMaintain, s.Observe(entity.SuggestionSlowDown))
	assert.Equal(t, entity.SuggestionSlowDown, s.Observe(entity.SuggestionSlowDown))
}

func TestRunLengthTracking(t *testing.T) {
	s := advice.NewState(5)
	s.Observe(entity.SuggestionSpeedUp)
	assert.Equal(t, 1, s.RunLength())
	s.Observe(entity.SuggestionSpeedUp)
	s.Observe(entity.SuggestionSpeedUp)
	assert.Equal(t, 3, s.RunLength())
	assert.Equal(t, entity.SuggestionSpeedUp, s.Raw())
}

func TestAlertGate(t *testing.T) {
	s := advice.NewState(5)
	s.Observe(entity.SuggestionSlowDown)
	s.Observe(entity.SuggestionSlowDown)

	// 第一个预测相位触发告警
	ev := s.GateAlert(entity.PhaseRed, 1)
	require.NotNil(t, ev)
	assert.Equal(t, entity.PhaseRed, ev.Phase)
	assert.Equal(t, "Red signal ahead. Please slow down.", ev.Text)

	// 相同预测相位不重报
	assert.Nil(t, s.GateAlert(entity.PhaseRed, 2))

	// 预测相位变化但仍在去抖窗口内：不触发
	assert.Nil(t, s.GateAlert(entity.PhaseGreen, 3))

	// 窗口之外且相位变化：触发
	s.Observe(entity.SuggestionSpeedUp)
	s.Observe(entity.SuggestionSpeedUp)
	ev = s.GateAlert(entity.PhaseGreen, 7)
	require.NotNil(t, ev)
	assert.Equal(t, entity.PhaseGreen, ev.Phase)
	assert.Equal(t, "Signal is green. You can speed up.", ev.Text)

	// 相同相位即使远超窗口也不重报
	assert.Nil(t, s.GateAlert(entity.PhaseGreen, 100))
}

func TestAlertTextForMaintain(t *testing.T) {
	s := advice.NewState(5)
	ev := s.GateAlert(entity.PhaseGreen, 10)
	require.NotNil(t, ev)
	assert.Equal(t, "Maintain your current speed.", ev.Text)
}
