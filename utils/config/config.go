package config

import (
	"fmt"
)

// 默认值，取自系统的基准场景
const (
	defaultInterval          = 1     // 每tick一个模拟秒
	defaultMaxStep           = 86400 // tick数量安全上界
	defaultResumeSpeed       = 15    // 红灯起步速度（km/h）
	defaultKp                = 0.1   // 比例增益
	defaultScale             = 10    // 增益缩放
	defaultStoppingThreshold = 40    // 红灯停车距离阈值（距离单位）
	defaultDebounceWindow    = 5     // 告警去抖窗口（秒）
)

// RuntimeConfig 运行时配置
// 功能：存储补全默认值并通过校验后的配置，仿真各组件只读取该对象
// 说明：校验失败时不构造任何运行时状态，所有配置错误都在第一个tick之前暴露
type RuntimeConfig struct {
	All Config  // 补全默认值后的全部配置
	C   Control // 全局控制配置
}

// NewRuntimeConfig 根据配置初始化运行时配置
// 功能：补全默认值、校验配置合法性
// 参数：config-原始配置对象
// 返回：运行时配置指针与校验错误
// 算法说明：
// 1. 补全默认值：tick间隔、tick上界、起步速度、控制器增益、去抖窗口
// 2. 校验车辆速度区间：min <= initial <= max
// 3. 校验信号灯列表：非空、标签唯一非空、位置非负且严格递增
// 4. 校验路线长度大于最后一个信号灯的位置
func NewRuntimeConfig(config Config) (*RuntimeConfig, error) {
	rc := &RuntimeConfig{}
	rc.All = config

	c := &rc.All
	if c.Control.Step.Interval == 0 {
		c.Control.Step.Interval = defaultInterval
	}
	if c.Control.Step.Total == 0 {
		c.Control.Step.Total = defaultMaxStep
	}
	if c.Vehicle.ResumeSpeed == 0 {
		c.Vehicle.ResumeSpeed = defaultResumeSpeed
	}
	if c.Controller.Kp == 0 {
		c.Controller.Kp = defaultKp
	}
	if c.Controller.Scale == 0 {
		c.Controller.Scale = defaultScale
	}
	if c.Controller.StoppingThreshold == 0 {
		c.Controller.StoppingThreshold = defaultStoppingThreshold
	}
	if c.Controller.YellowPolicy == "" {
		c.Controller.YellowPolicy = YellowPolicyMaintain
	}
	if c.Advice.DebounceWindow == 0 {
		c.Advice.DebounceWindow = defaultDebounceWindow
	}

	if c.Control.Step.Interval <= 0 {
		return nil, fmt.Errorf("config: step interval must be positive, got %v", c.Control.Step.Interval)
	}
	if c.Control.Step.Total <= 0 {
		return nil, fmt.Errorf("config: step total must be positive, got %v", c.Control.Step.Total)
	}
	switch c.Controller.YellowPolicy {
	case YellowPolicyMaintain, YellowPolicyProportional:
	default:
		return nil, fmt.Errorf("config: yellow_policy must be %q or %q, got %q",
			YellowPolicyMaintain, YellowPolicyProportional, c.Controller.YellowPolicy)
	}

	v := c.Vehicle
	if v.MinSpeed > v.MaxSpeed {
		return nil, fmt.Errorf("config: min_speed %v is greater than max_speed %v", v.MinSpeed, v.MaxSpeed)
	}
	if v.InitialSpeed < v.MinSpeed || v.InitialSpeed > v.MaxSpeed {
		return nil, fmt.Errorf("config: initial_speed %v is outside [%v, %v]", v.InitialSpeed, v.MinSpeed, v.MaxSpeed)
	}
	if v.MinSpeed < 0 {
		return nil, fmt.Errorf("config: min_speed %v must be non-negative", v.MinSpeed)
	}
	if v.ResumeSpeed <= 0 {
		return nil, fmt.Errorf("config: resume_speed %v must be positive", v.ResumeSpeed)
	}

	if len(c.Route.Signals) == 0 {
		return nil, fmt.Errorf("config: route has no signals")
	}
	seen := make(map[string]struct{}, len(c.Route.Signals))
	lastPosition := -1.0
	for i, s := range c.Route.Signals {
		if s.Label == "" {
			return nil, fmt.Errorf("config: signal %d has empty label", i)
		}
		if _, ok := seen[s.Label]; ok {
			return nil, fmt.Errorf("config: duplicated signal label %q", s.Label)
		}
		seen[s.Label] = struct{}{}
		if s.Position < 0 {
			return nil, fmt.Errorf("config: signal %q position %v must be non-negative", s.Label, s.Position)
		}
		if s.Position <= lastPosition {
			return nil, fmt.Errorf("config: signal positions must be strictly increasing, %q at %v after %v",
				s.Label, s.Position, lastPosition)
		}
		lastPosition = s.Position
	}
	if c.Route.Length <= lastPosition {
		return nil, fmt.Errorf("config: route length %v must be greater than the last signal position %v",
			c.Route.Length, lastPosition)
	}

	rc.C = c.Control
	return rc, nil
}
