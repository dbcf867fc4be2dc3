package entity

import (
	"github.com/tsinghua-fib-lab/greenwave-sim/clock"
	"github.com/tsinghua-fib-lab/greenwave-sim/utils/config"
)

type ITaskContext interface {
	Clock() *clock.Clock
	SignalManager() ISignalManager
	Vehicle() IVehicle
	RuntimeConfig() *config.RuntimeConfig
}
