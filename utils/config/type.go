package config

// ControlStep 指定模拟器tick数量与时间间隔的配置项
// 功能：定义仿真时间控制参数
// 说明：一个tick对应interval秒模拟时间，total给出tick数量安全上界，
// 保证即使路线配置有误仿真也一定会终止
type ControlStep struct {
	Total    int32   `yaml:"total"`    // 最大tick数（安全上界，0表示使用默认值）
	Interval float64 `yaml:"interval"` // 每个tick的模拟秒数（0表示默认1秒）
}

// Control 模拟器控制配置
type Control struct {
	Step     ControlStep `yaml:"step"`
	Realtime bool        `yaml:"realtime,omitempty"` // 按interval实时节拍运行（表现层特性，不影响决策序列）
}

// SignalItem 单个信号灯配置
type SignalItem struct {
	Label    string  `yaml:"label"`    // 唯一标签
	Position float64 `yaml:"position"` // 在路线上的位置（距离单位），要求严格递增
}

// Route 路线配置
// 说明：length为路线总长，必须大于最后一个信号灯的位置，车辆越过length后仿真结束
type Route struct {
	Length  float64      `yaml:"length"`
	Signals []SignalItem `yaml:"signals"`
}

// Vehicle 车辆配置
// 说明：要求 min_speed <= initial_speed <= max_speed，否则在初始化时拒绝
type Vehicle struct {
	InitialSpeed float64 `yaml:"initial_speed"` // 初始速度（km/h）
	MinSpeed     float64 `yaml:"min_speed"`     // 行驶状态下的速度下界（km/h）
	MaxSpeed     float64 `yaml:"max_speed"`     // 速度上界（km/h）
	ResumeSpeed  float64 `yaml:"resume_speed,omitempty"` // 红灯起步速度（0表示默认15）
}

// YellowPolicy 黄灯处理策略
// 说明：maintain-黄灯不做特殊处理，保持速度；proportional-对黄灯剩余窗口应用
// 与绿灯相同的比例控制律。两种处理方式各有合理性，作为显式配置项暴露
const (
	YellowPolicyMaintain     = "maintain"
	YellowPolicyProportional = "proportional"
)

// Controller 速度控制器配置
type Controller struct {
	Kp                float64 `yaml:"kp,omitempty"`                 // 比例增益（0表示默认0.1）
	Scale             float64 `yaml:"scale,omitempty"`              // 增益缩放（0表示默认10）
	StoppingThreshold float64 `yaml:"stopping_threshold,omitempty"` // 红灯停车距离阈值（0表示默认40）
	YellowPolicy      string  `yaml:"yellow_policy,omitempty"`      // 黄灯策略（空表示maintain）
}

// Advice 建议稳定器配置
type Advice struct {
	DebounceWindow float64 `yaml:"debounce_window,omitempty"` // 两次告警的最小间隔秒数（0表示默认5）
}

// Config YAML配置文件的根结构
type Config struct {
	Control    Control    `yaml:"control"`              // 模拟过程控制
	Route      Route      `yaml:"route"`                // 路线与信号灯
	Vehicle    Vehicle    `yaml:"vehicle"`              // 车辆
	Controller Controller `yaml:"controller,omitempty"` // 速度控制器
	Advice     Advice     `yaml:"advice,omitempty"`     // 建议稳定器
}
