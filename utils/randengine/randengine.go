// 随机数引擎，包装了golang.org/x/exp/rand，提供了一些常用的随机数生成方法
package randengine

import (
	"flag"
	"log"

	"golang.org/x/exp/rand"
)

var (
	seedOffset = flag.Uint64("rand.seed_offset", 0, "seed offset") // 种子偏移量，用于调整随机数生成
)

// Engine 随机数引擎
// 功能：为仿真提供可复现的随机数生成
// 说明：基于golang.org/x/exp/rand库。仿真循环是单线程的，所有随机状态由
// 各自的持有者独占，因此不提供加锁的线程安全变体
type Engine struct {
	*rand.Rand // 底层随机数生成器
}

// New 创建随机数引擎
// 功能：初始化一个新的随机数引擎实例
// 参数：seed-随机数种子
// 返回：随机数引擎指针
// 说明：种子偏移量允许在不修改代码的情况下调整随机数序列
func New(seed uint64) *Engine {
	return &Engine{Rand: rand.New(rand.NewSource(seed + *seedOffset))}
}

// UniformInt 在[min, max]双闭区间内均匀生成随机整数
// 功能：用于采样信号灯相位时长（如红灯时长[30, 60]）
// 参数：min-下界（包含），max-上界（包含）
// 返回：[min, max]范围内的随机整数
func (e *Engine) UniformInt(min, max int) int {
	if min > max {
		log.Panicf("randengine: UniformInt: min %d > max %d", min, max)
	}
	return min + e.Intn(max-min+1)
}
