package feedback

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/example/checkin/internal/ports/secondary"
)

// MetricsSignaler counts submission outcomes. When a textfile path is set
// the registry is written there after every signal, in the format read by
// node_exporter's textfile collector.
type MetricsSignaler struct {
	registry     *prometheus.Registry
	submissions  *prometheus.CounterVec
	lastOutcome  *prometheus.GaugeVec
	textfilePath string
	logger       *slog.Logger
	now          func() time.Time
}

// NewMetricsSignaler creates a signaler with its own registry.
func NewMetricsSignaler(textfilePath string, logger *slog.Logger) *MetricsSignaler {
	s := &MetricsSignaler{
		registry: prometheus.NewRegistry(),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "checkin_submissions_total",
			Help: "Check-in submissions by outcome.",
		}, []string{"outcome"}),
		lastOutcome: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "checkin_last_submission_timestamp_seconds",
			Help: "Unix time of the most recent submission per outcome.",
		}, []string{"outcome"}),
		textfilePath: textfilePath,
		logger:       logger,
		now:          time.Now,
	}
	s.registry.MustRegister(s.submissions, s.lastOutcome)
	return s
}

// Registry exposes the collectors, for tests and in-process scraping.
func (s *MetricsSignaler) Registry() *prometheus.Registry { return s.registry }

// Signal implements secondary.OutcomeSignaler.
func (s *MetricsSignaler) Signal(ctx context.Context, outcome secondary.Outcome) {
	label := string(outcome)
	s.submissions.WithLabelValues(label).Inc()
	s.lastOutcome.WithLabelValues(label).Set(float64(s.now().Unix()))

	if s.textfilePath == "" {
		return
	}
	if err := prometheus.WriteToTextfile(s.textfilePath, s.registry); err != nil {
		s.logger.WarnContext(ctx, "failed to write metrics textfile", "path", s.textfilePath, "error", err)
	}
}
