package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds OTel metric instruments for the presentation pipeline.
type Metrics struct {
	DecksGenerated  metric.Int64Counter
	ReviewLatency   metric.Float64Histogram
	SlidesComposed  metric.Int64Counter
	ActivityCalls   metric.Int64Counter
	ExportSizeBytes metric.Int64Histogram
}

// NewMetrics creates the presentation metric instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter("presenton")

	decksGenerated, err := meter.Int64Counter("presenton.decks.generated",
		metric.WithDescription("Number of decks generated end to end"),
	)
	if err != nil {
		return nil, err
	}

	reviewLatency, err := meter.Float64Histogram("presenton.review.latency_seconds",
		metric.WithDescription("Time from outline pending to review decision"),
	)
	if err != nil {
		return nil, err
	}

	slidesComposed, err := meter.Int64Counter("presenton.slides.composed",
		metric.WithDescription("Number of slides composed"),
	)
	if err != nil {
		return nil, err
	}

	activityCalls, err := meter.Int64Counter("presenton.activity.calls",
		metric.WithDescription("Number of activity invocations"),
	)
	if err != nil {
		return nil, err
	}

	exportSize, err := meter.Int64Histogram("presenton.export.size_bytes",
		metric.WithDescription("Size of exported deck artifacts"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		DecksGenerated:  decksGenerated,
		ReviewLatency:   reviewLatency,
		SlidesComposed:  slidesComposed,
		ActivityCalls:   activityCalls,
		ExportSizeBytes: exportSize,
	}, nil
}

// RecordDeckGenerated records one completed deck.
func (m *Metrics) RecordDeckGenerated(ctx context.Context, templateID, format string) {
	m.DecksGenerated.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("template", templateID),
			attribute.String("format", format),
		),
	)
}

// RecordReviewLatency records the time from pending to decision.
func (m *Metrics) RecordReviewLatency(ctx context.Context, d time.Duration) {
	m.ReviewLatency.Record(ctx, d.Seconds())
}

// RecordSlides records composed slides.
func (m *Metrics) RecordSlides(ctx context.Context, n int) {
	m.SlidesComposed.Add(ctx, int64(n))
}

// RecordActivity records an activity invocation.
func (m *Metrics) RecordActivity(ctx context.Context, name string) {
	m.ActivityCalls.Add(ctx, 1,
		metric.WithAttributes(attribute.String("activity", name)),
	)
}

// RecordExportSize records the exported artifact size.
func (m *Metrics) RecordExportSize(ctx context.Context, size int64) {
	m.ExportSizeBytes.Record(ctx, size)
}
