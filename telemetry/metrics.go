package telemetry

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

//////
// Const, vars, types.
//////

// meter is the package-level meter for campaign instrumentation.
var meter = otel.Meter("baybe")

var (
	campaignsTotal       metric.Int64Counter
	recommendationsTotal metric.Int64Counter
	batchSize            metric.Int64Histogram
	measurementsTotal    metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

//////
// Helper functions.
//////

// initMetrics initializes the instruments. Safe to call multiple times; when
// the host process installed no meter provider the instruments are no-ops.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		campaignsTotal, err = meter.Int64Counter(
			"baybe_campaigns_total",
			metric.WithDescription("Total campaigns created"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		recommendationsTotal, err = meter.Int64Counter(
			"baybe_recommendations_total",
			metric.WithDescription("Total experiments recommended"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		batchSize, err = meter.Int64Histogram(
			"baybe_recommendation_batch_size",
			metric.WithDescription("Served batch sizes by recommender"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		measurementsTotal, err = meter.Int64Counter(
			"baybe_measurements_total",
			metric.WithDescription("Total measurements added to campaigns"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})

	return metricsErr
}

//////
// Exported functionalities.
//////

// RecordCampaignCreated records that a campaign was created.
//
// Thread safety: safe for concurrent use.
func RecordCampaignCreated(ctx context.Context) {
	if err := initMetrics(); err != nil {
		return
	}

	campaignsTotal.Add(ctx, 1)
}

// RecordRecommendation records one served recommendation batch.
//
// Parameters:
//   - ctx: context for metric recording.
//   - recommender: name of the recommender that served the batch.
//   - served: number of experiments in the batch.
//
// Thread safety: safe for concurrent use.
func RecordRecommendation(ctx context.Context, recommender string, served int) {
	if err := initMetrics(); err != nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String("recommender", recommender))

	recommendationsTotal.Add(ctx, int64(served), attrs)
	batchSize.Record(ctx, int64(served), attrs)
}

// RecordMeasurements records measurements added to a campaign.
//
// Thread safety: safe for concurrent use.
func RecordMeasurements(ctx context.Context, count int) {
	if err := initMetrics(); err != nil {
		return
	}

	measurementsTotal.Add(ctx, int64(count))
}
