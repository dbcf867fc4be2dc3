package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/greenwave-sim/utils/config"
)

// baseConfig 返回一份合法的基准配置，各用例在其上做局部修改
func baseConfig() config.Config {
	return config.Config{
		Control: config.Control{
			Step: config.ControlStep{Total: 1000, Interval: 1},
		},
		Route: config.Route{
			Length: 1100,
			Signals: []config.SignalItem{
				{Label: "B", Position: 150},
				{Label: "C", Position: 350},
				{Label: "D", Position: 550},
			},
		},
		Vehicle: config.Vehicle{
			InitialSpeed: 25,
			MinSpeed:     10,
			MaxSpeed:     60,
		},
	}
}

func TestNewRuntimeConfigDefaults(t *testing.T) {
	c := baseConfig()
	c.Control.Step = config.ControlStep{}

	rc, err := config.NewRuntimeConfig(c)
	require.NoError(t, err)

	assert.Equal(t, float64(1), rc.C.Step.Interval)
	assert.Equal(t, int32(86400), rc.C.Step.Total)
	assert.Equal(t, float64(15), rc.All.Vehicle.ResumeSpeed)
	assert.Equal(t, 0.1, rc.All.Controller.Kp)
	assert.Equal(t, float64(10), rc.All.Controller.Scale)
	assert.Equal(t, float64(40), rc.All.Controller.StoppingThreshold)
	assert.Equal(t, config.YellowPolicyMaintain, rc.All.Controller.YellowPolicy)
	assert.Equal(t, float64(5), rc.All.Advice.DebounceWindow)
}

func TestNewRuntimeConfigSpeedBounds(t *testing.T) {
	c := baseConfig()
	c.Vehicle.MinSpeed = 70
	_, err := config.NewRuntimeConfig(c)
	assert.ErrorContains(t, err, "greater than max_speed")

	c = baseConfig()
	c.Vehicle.InitialSpeed = 5
	_, err = config.NewRuntimeConfig(c)
	assert.ErrorContains(t, err, "outside")

	c = baseConfig()
	c.Vehicle.InitialSpeed = 80
	_, err = config.NewRuntimeConfig(c)
	assert.ErrorContains(t, err, "outside")

	c = baseConfig()
	c.Vehicle.MinSpeed = -1
	c.Vehicle.InitialSpeed = -1
	_, err = config.NewRuntimeConfig(c)
	assert.ErrorContains(t, err, "non-negative")
}

func TestNewRuntimeConfigSignals(t *testing.T) {
	c := baseConfig()
	c.Route.Signals = nil
	_, err := config.NewRuntimeConfig(c)
	assert.ErrorContains(t, err, "no signals")

	c = baseConfig()
	c.Route.Signals[1].Label = ""
	_, err = config.NewRuntimeConfig(c)
	assert.ErrorContains(t, err, "empty label")

	c = baseConfig()
	c.Route.Signals[2].Label = "B"
	_, err = config.NewRuntimeConfig(c)
	assert.ErrorContains(t, err, "duplicated signal label")

	c = baseConfig()
	c.Route.Signals[0].Position = -10
	_, err = config.NewRuntimeConfig(c)
	assert.ErrorContains(t, err, "non-negative")

	c = baseConfig()
	c.Route.Signals[1].Position = 150
	_, err = config.NewRuntimeConfig(c)
	assert.ErrorContains(t, err, "strictly increasing")

	c = baseConfig()
	c.Route.Signals[2].Position = 100
	_, err = config.NewRuntimeConfig(c)
	assert.ErrorContains(t, err, "strictly increasing")
}

func TestNewRuntimeConfigRouteLength(t *testing.T) {
	c := baseConfig()
	c.Route.Length = 550
	_, err := config.NewRuntimeConfig(c)
	assert.ErrorContains(t, err, "route length")

	c = baseConfig()
	c.Route.Length = 550.5
	rc, err := config.NewRuntimeConfig(c)
	require.NoError(t, err)
	assert.Equal(t, 550.5, rc.All.Route.Length)
}

func TestNewRuntimeConfigYellowPolicy(t *testing.T) {
	c := baseConfig()
	c.Controller.YellowPolicy = "stop"
	_, err := config.NewRuntimeConfig(c)
	assert.ErrorContains(t, err, "yellow_policy")

	c = baseConfig()
	c.Controller.YellowPolicy = config.YellowPolicyProportional
	rc, err := config.NewRuntimeConfig(c)
	require.NoError(t, err)
	assert.Equal(t, config.YellowPolicyProportional, rc.All.Controller.YellowPolicy)
}

func TestNewRuntimeConfigStep(t *testing.T) {
	c := baseConfig()
	c.Control.Step.Interval = -0.5
	_, err := config.NewRuntimeConfig(c)
	assert.ErrorContains(t, err, "interval")

	c = baseConfig()
	c.Control.Step.Total = -1
	_, err = config.NewRuntimeConfig(c)
	assert.ErrorContains(t, err, "total")
}
