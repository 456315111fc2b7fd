package scanner

import (
	"context"
	"time"

	"riskscanner/pkg/domain"
	"riskscanner/pkg/metrics"
	"riskscanner/pkg/serrors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

const instrumentationName = "riskscanner/internal/scanner"

// Telemetry configures WithTelemetry. Nil providers fall back to no-ops.
type Telemetry struct {
	// Backend labels every measurement, e.g. "rules" or "gemini".
	Backend        string
	MeterProvider  metric.MeterProvider
	TracerProvider trace.TracerProvider
}

type instrumented struct {
	next    Scanner
	backend attribute.KeyValue
	tracer  trace.Tracer

	scans    metric.Int64Counter
	risks    metric.Int64Counter
	duration metric.Float64Histogram
}

// WithTelemetry wraps next so that every scan is traced and counted.
func WithTelemetry(next Scanner, t Telemetry) (Scanner, error) {
	mp := t.MeterProvider
	if mp == nil {
		mp = metricnoop.NewMeterProvider()
	}
	tp := t.TracerProvider
	if tp == nil {
		tp = tracenoop.NewTracerProvider()
	}
	meter := mp.Meter(instrumentationName)

	scans, err := meter.Int64Counter("scanner.scans",
		metric.WithDescription("Number of scans by outcome."))
	if err != nil {
		return nil, err //nolint: wrapcheck
	}
	risks, err := meter.Int64Counter("scanner.risks",
		metric.WithDescription("Number of reported risks by category and severity."))
	if err != nil {
		return nil, err //nolint: wrapcheck
	}
	duration, err := meter.Float64Histogram("scanner.scan.duration",
		metric.WithDescription("Duration of a scan."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(metrics.DefaultBuckets...))
	if err != nil {
		return nil, err //nolint: wrapcheck
	}

	return &instrumented{
		next:     next,
		backend:  attribute.String("backend", t.Backend),
		tracer:   tp.Tracer(instrumentationName),
		scans:    scans,
		risks:    risks,
		duration: duration,
	}, nil
}

func (s *instrumented) Scan(ctx context.Context, req *domain.ScanRequest) (*domain.ScanResponse, error) {
	ctx, span := s.tracer.Start(ctx, "scanner.Scan", trace.WithAttributes(s.backend))
	defer span.End()

	start := time.Now()
	res, err := s.next.Scan(ctx, req)
	elapsed := time.Since(start).Seconds()

	outcome := "ok"
	if err != nil {
		outcome = "error"
		if k := serrors.KindOf(err); k != nil {
			outcome = k.Error()
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	attrs := metric.WithAttributes(s.backend, attribute.String("outcome", outcome))
	s.scans.Add(ctx, 1, attrs)
	s.duration.Record(ctx, elapsed, attrs)

	if res != nil {
		span.SetAttributes(
			attribute.Int("scan.risks", len(res.Risks)),
			attribute.Int("scan.score", res.Score),
		)
		for sev, n := range res.SeverityCounts() {
			span.SetAttributes(attribute.Int("scan.risks."+string(sev), n))
		}
		for _, r := range res.Risks {
			s.risks.Add(ctx, 1, metric.WithAttributes(
				s.backend,
				attribute.String("category", r.Category),
				attribute.String("severity", string(r.Severity)),
			))
		}
	}

	return res, err
}
