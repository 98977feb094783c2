package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespaceGuard    = "inheritance_guard"
	subsystemVault    = "vault"
	subsystemDispatch = "dispatch"
)

// GuardCollector implements module.GuardMetrics backed by prometheus.
type GuardCollector struct {
	operations          *prometheus.CounterVec
	activityResets      prometheus.Counter
	inheritanceClaims   *prometheus.CounterVec
	reentrantRejections prometheus.Counter
	dispatchDuration    prometheus.Histogram
	registrySize        prometheus.Gauge
	vaultBalance        prometheus.Gauge
}

func NewGuardCollector() *GuardCollector {
	gc := &GuardCollector{
		operations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:      "operations_total",
			Namespace: namespaceGuard,
			Subsystem: subsystemVault,
			Help:      "number of guard operations, labelled by operation and outcome",
		}, []string{"operation", "outcome"}),
		activityResets: promauto.NewCounter(prometheus.CounterOpts{
			Name:      "activity_resets_total",
			Namespace: namespaceGuard,
			Subsystem: subsystemVault,
			Help:      "number of inactivity deadline resets",
		}),
		inheritanceClaims: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:      "inheritance_claims_total",
			Namespace: namespaceGuard,
			Subsystem: subsystemVault,
			Help:      "number of successful inheritance claims, labelled by mode",
		}, []string{"mode"}),
		reentrantRejections: promauto.NewCounter(prometheus.CounterOpts{
			Name:      "reentrant_calls_rejected_total",
			Namespace: namespaceGuard,
			Subsystem: subsystemDispatch,
			Help:      "number of dispatches rejected by the reentrancy guard",
		}),
		dispatchDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:      "duration_seconds",
			Namespace: namespaceGuard,
			Subsystem: subsystemDispatch,
			Help:      "time spent inside a guarded dispatch, external call included",
			Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		}),
		registrySize: promauto.NewGauge(prometheus.GaugeOpts{
			Name:      "registry_size",
			Namespace: namespaceGuard,
			Subsystem: subsystemVault,
			Help:      "current number of registered beneficiaries",
		}),
		vaultBalance: promauto.NewGauge(prometheus.GaugeOpts{
			Name:      "balance",
			Namespace: namespaceGuard,
			Subsystem: subsystemVault,
			Help:      "current vault balance in asset units",
		}),
	}
	return gc
}

func (gc *GuardCollector) OperationFinished(operation string, outcome string) {
	gc.operations.WithLabelValues(operation, outcome).Inc()
}

func (gc *GuardCollector) ActivityReset() {
	gc.activityResets.Inc()
}

func (gc *GuardCollector) InheritanceClaimed(mode string) {
	gc.inheritanceClaims.WithLabelValues(mode).Inc()
}

func (gc *GuardCollector) ReentrantCallRejected() {
	gc.reentrantRejections.Inc()
}

func (gc *GuardCollector) DispatchDuration(duration time.Duration) {
	gc.dispatchDuration.Observe(duration.Seconds())
}

func (gc *GuardCollector) RegistrySize(size uint) {
	gc.registrySize.Set(float64(size))
}

func (gc *GuardCollector) VaultBalance(balance uint64) {
	gc.vaultBalance.Set(float64(balance))
}
