package metrics

import "time"

type NoopCollector struct{}

func NewNoopCollector() *NoopCollector {
	nc := &NoopCollector{}
	return nc
}

func (nc *NoopCollector) OperationFinished(operation string, outcome string) {}
func (nc *NoopCollector) ActivityReset()                                     {}
func (nc *NoopCollector) InheritanceClaimed(mode string)                     {}
func (nc *NoopCollector) ReentrantCallRejected()                             {}
func (nc *NoopCollector) DispatchDuration(duration time.Duration)            {}
func (nc *NoopCollector) RegistrySize(size uint)                             {}
func (nc *NoopCollector) VaultBalance(balance uint64)                        {}
