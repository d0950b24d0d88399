package monitor

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/davethiede/libtempest/pkg/tempest"
)

// Metrics counts packet outcomes for the monitor loop.
type Metrics struct {
	PacketsReceived prometheus.Counter
	PacketsDecoded  *prometheus.CounterVec
	DecodeErrors    *prometheus.CounterVec
}

// NewMetrics creates the monitor counters and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		PacketsReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tempest",
			Name:      "packets_received_total",
			Help:      "Total UDP packets received.",
		}),
		PacketsDecoded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tempest",
			Name:      "packets_decoded_total",
			Help:      "Total packets decoded successfully, by packet type.",
		}, []string{"type"}),
		DecodeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tempest",
			Name:      "decode_errors_total",
			Help:      "Total packets that failed to decode, by failure reason.",
		}, []string{"reason"}),
	}
	reg.MustRegister(m.PacketsReceived, m.PacketsDecoded, m.DecodeErrors)
	return m
}

// errorReason maps a decode error onto its metric label.
func errorReason(err error) string {
	var (
		syntaxErr *tempest.SyntaxError
		unknown   *tempest.UnknownVariantError
		missing   *tempest.MissingFieldError
		mismatch  *tempest.TypeMismatchError
		arity     *tempest.ArityMismatchError
	)
	switch {
	case errors.Is(err, tempest.ErrMissingDiscriminator):
		return "missing_discriminator"
	case errors.As(err, &syntaxErr):
		return "malformed"
	case errors.As(err, &unknown):
		return "unknown_variant"
	case errors.As(err, &missing):
		return "missing_field"
	case errors.As(err, &mismatch):
		return "type_mismatch"
	case errors.As(err, &arity):
		return "arity_mismatch"
	}
	return "other"
}
