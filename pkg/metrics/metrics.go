package metrics

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/adrianliechti/speechbridge/pkg/provider"

	"github.com/prometheus/client_golang/prometheus"
)

var RequestSecondsBuckets = []float64{0.1, 0.25, 0.5, 1, 2, 4, 8, 16, 32, 64}

type Metrics struct {
	TTSQueryTime *prometheus.HistogramVec
	TTSErrors    *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		TTSQueryTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Subsystem: "tts",
			Name:      "request_seconds",
			Buckets:   RequestSecondsBuckets,
		}, []string{"provider"}),
		TTSErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Subsystem: "tts",
			Name:      "errors_total",
		}, []string{"provider", "err_code"}),
	}
}

func (m *Metrics) Register(reg prometheus.Registerer) {
	reg.MustRegister(m.TTSQueryTime)
	reg.MustRegister(m.TTSErrors)
}

type measuredSynthesizer struct {
	name    string
	metrics *Metrics

	synthesizer provider.Synthesizer
}

func NewSynthesizer(name string, m *Metrics, p provider.Synthesizer) provider.Synthesizer {
	return &measuredSynthesizer{
		name:    name,
		metrics: m,

		synthesizer: p,
	}
}

func (s *measuredSynthesizer) Synthesize(ctx context.Context, content string, options *provider.SynthesizeOptions) (*provider.Synthesis, error) {
	start := time.Now()

	result, err := s.synthesizer.Synthesize(ctx, content, options)

	s.metrics.TTSQueryTime.WithLabelValues(s.name).Observe(time.Since(start).Seconds())

	if err != nil {
		s.metrics.TTSErrors.WithLabelValues(s.name, ErrorCode(err)).Inc()
	}

	return result, err
}

// ErrorCode maps a synthesis error to a low cardinality label.
func ErrorCode(err error) string {
	var transporterr *provider.TransportError
	var apierr *provider.APIError
	var readerr *provider.ReadError

	switch {
	case errors.As(err, &apierr):
		return "api_" + strconv.Itoa(apierr.StatusCode)
	case errors.As(err, &readerr):
		return "read"
	case errors.As(err, &transporterr):
		return "transport"
	}

	return "unknown"
}
