// Package metrics exposes Prometheus counters for configuration reads and
// resolutions served over HTTP.
package metrics

import (
	"net/http"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/eugenenazirov/siteconfig/internal/siteconfig"
)

// Recorder counts configuration traffic.
type Recorder struct {
	registry    *prom.Registry
	configReads *prom.CounterVec
	resolutions *prom.CounterVec
}

// NewRecorder registers the counters on reg, or on a fresh registry when reg is nil.
func NewRecorder(reg *prom.Registry) *Recorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	r := &Recorder{
		registry: reg,
		configReads: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "siteconfig",
			Name:      "config_reads_total",
			Help:      "Reads of the stored configuration snapshot by output format",
		}, []string{"format"}),
		resolutions: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "siteconfig",
			Name:      "resolutions_total",
			Help:      "On-demand resolutions by execution mode",
		}, []string{"mode"}),
	}
	reg.MustRegister(r.configReads, r.resolutions)
	return r
}

// ObserveConfigRead counts one snapshot read.
func (r *Recorder) ObserveConfigRead(format string) {
	if r == nil {
		return
	}
	r.configReads.WithLabelValues(format).Inc()
}

// ObserveResolution counts one resolution in the given mode.
func (r *Recorder) ObserveResolution(mode siteconfig.Mode) {
	if r == nil {
		return
	}
	r.resolutions.WithLabelValues(string(mode)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
