package signal

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/greenwave-sim/entity"
	"github.com/tsinghua-fib-lab/greenwave-sim/utils/config"
	"github.com/tsinghua-fib-lab/greenwave-sim/utils/randengine"
)

// Manager 信号灯管理器
// 功能：持有路线上的全部信号灯，按路线顺序推进相位状态机，提供前方信号灯查询
type Manager struct {
	data    map[string]*Signal // 标签 -> 信号灯
	signals []*Signal          // 按路线位置严格递增排列
}

// NewManager 创建信号灯管理器实例
func NewManager() *Manager {
	return &Manager{
		data:    make(map[string]*Signal),
		signals: make([]*Signal, 0),
	}
}

// Init 初始化所有信号灯
// 功能：根据配置创建全部信号灯并建立标签索引
// 参数：items-信号灯配置列表（位置已由配置校验保证严格递增），seed-运行种子
// 说明：每个信号灯持有独立的随机数生成器，种子为运行种子加路线序号，
// 使初始化结果与遍历顺序无关、仅由种子决定
func (m *Manager) Init(items []config.SignalItem, seed uint64) {
	m.signals = lo.Map(items, func(item config.SignalItem, i int) *Signal {
		return newSignal(item, randengine.New(seed+uint64(i)))
	})
	m.data = lo.SliceToMap(m.signals, func(s *Signal) (string, *Signal) {
		return s.label, s
	})
	for _, s := range m.signals {
		log.Debugf("init %v", s)
	}
}

// Update 更新阶段，推进所有信号灯的相位状态机
// 参数：dt-时间步长（秒）
func (m *Manager) Update(dt float64) {
	for _, s := range m.signals {
		s.update(dt)
	}
}

// NextAhead 查询位置前方最近的信号灯
// 功能：返回位置严格大于position的第一个信号灯
// 参数：position-车辆当前位置
// 返回：前方最近的信号灯，车辆越过最后一个信号灯后返回nil
// 说明：信号灯按位置严格递增排列，顺序扫描即可，结果对给定输入是确定的
func (m *Manager) NextAhead(position float64) entity.ISignal {
	for _, s := range m.signals {
		if s.position > position {
			return s
		}
	}
	return nil
}

// Get 根据标签获取信号灯实例
// 功能：通过标签查找对应的信号灯对象，如果不存在则panic
func (m *Manager) Get(label string) entity.ISignal {
	if s, ok := m.data[label]; !ok {
		log.Panicf("no label %s in signal data", label)
		return nil
	} else {
		return s
	}
}

// GetOrError 根据标签获取信号灯实例（带错误处理）
func (m *Manager) GetOrError(label string) (entity.ISignal, error) {
	if s, ok := m.data[label]; !ok {
		return nil, fmt.Errorf("no label %s in signal data", label)
	} else {
		return s, nil
	}
}

// Signals 按路线顺序获取所有信号灯
func (m *Manager) Signals() []entity.ISignal {
	return lo.Map(m.signals, func(s *Signal, _ int) entity.ISignal { return s })
}
