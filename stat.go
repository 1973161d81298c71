package intervalreload

import (
	"github.com/prometheus/client_golang/prometheus"
)

type statistic struct {
	reqCounter  *prometheus.CounterVec
	offsetGauge prometheus.Gauge
	rttGauge    prometheus.Gauge
}

func newStatistic(reg prometheus.Registerer) *statistic {
	reqCounter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sntp",
		Subsystem: "requests",
		Name:      "total",
		Help:      "The total number of sntp requests by result",
	}, []string{"result"})
	reg.MustRegister(reqCounter)

	offsetGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "sntp",
		Subsystem: "stat",
		Name:      "offset_ms",
		Help:      "The corrected time minus the local clock",
	})
	reg.MustRegister(offsetGauge)

	rttGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "sntp",
		Subsystem: "stat",
		Name:      "round_trip_ms",
		Help:      "The round trip time of the last transaction",
	})
	reg.MustRegister(rttGauge)

	return &statistic{
		reqCounter:  reqCounter,
		offsetGauge: offsetGauge,
		rttGauge:    rttGauge,
	}
}

func (s *statistic) observe(r TransactionResult, err error) {
	s.reqCounter.WithLabelValues(errorLabel(err)).Inc()
	if err != nil {
		return
	}
	s.offsetGauge.Set(float64(r.Offset().Milliseconds()))
	s.rttGauge.Set(float64(r.RoundTripMillis))
}
