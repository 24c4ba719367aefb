package observability

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

// Metrics pushes application metrics to CloudWatch.
// A nil client disables publishing, which is what unit tests and local
// development use.
type Metrics struct {
	namespace string
	client    *cloudwatch.Client
	logger    *zap.Logger
}

// NewMetrics creates a new metrics instance
func NewMetrics(namespace string, client *cloudwatch.Client, logger *zap.Logger) *Metrics {
	return &Metrics{
		namespace: namespace,
		client:    client,
		logger:    logger,
	}
}

// RecordPipelineRun records one insight pipeline execution
func (m *Metrics) RecordPipelineRun(ctx context.Context, duration time.Duration, cacheTier string, err error) {
	if m.client == nil {
		return
	}

	status := "success"
	if err != nil {
		status = "failure"
	}

	metricData := []types.MetricDatum{
		{
			MetricName: aws.String("InsightPipelineDuration"),
			Dimensions: []types.Dimension{
				{Name: aws.String("CacheTier"), Value: aws.String(cacheTier)},
				{Name: aws.String("Status"), Value: aws.String(status)},
			},
			Value:     aws.Float64(float64(duration.Milliseconds())),
			Unit:      types.StandardUnitMilliseconds,
			Timestamp: aws.Time(time.Now()),
		},
		{
			MetricName: aws.String("InsightPipelineRuns"),
			Dimensions: []types.Dimension{
				{Name: aws.String("CacheTier"), Value: aws.String(cacheTier)},
				{Name: aws.String("Status"), Value: aws.String(status)},
			},
			Value:     aws.Float64(1),
			Unit:      types.StandardUnitCount,
			Timestamp: aws.Time(time.Now()),
		},
	}

	m.put(ctx, metricData)
}

// RecordCacheLookup records a cache lookup outcome for a given tier
func (m *Metrics) RecordCacheLookup(ctx context.Context, tier string, hit bool) {
	if m.client == nil {
		return
	}

	outcome := "miss"
	if hit {
		outcome = "hit"
	}

	m.put(ctx, []types.MetricDatum{
		{
			MetricName: aws.String("InsightCacheLookups"),
			Dimensions: []types.Dimension{
				{Name: aws.String("Tier"), Value: aws.String(tier)},
				{Name: aws.String("Outcome"), Value: aws.String(outcome)},
			},
			Value:     aws.Float64(1),
			Unit:      types.StandardUnitCount,
			Timestamp: aws.Time(time.Now()),
		},
	})
}

// RecordLatency records latency for any named operation
func (m *Metrics) RecordLatency(ctx context.Context, operation string, latency time.Duration) {
	if m.client == nil {
		return
	}

	m.put(ctx, []types.MetricDatum{
		{
			MetricName: aws.String("OperationLatency"),
			Dimensions: []types.Dimension{
				{Name: aws.String("Operation"), Value: aws.String(operation)},
			},
			Value:     aws.Float64(float64(latency.Milliseconds())),
			Unit:      types.StandardUnitMilliseconds,
			Timestamp: aws.Time(time.Now()),
		},
	})
}

// RecordError records error occurrences by type
func (m *Metrics) RecordError(ctx context.Context, errorType string) {
	if m.client == nil {
		return
	}

	m.put(ctx, []types.MetricDatum{
		{
			MetricName: aws.String("Errors"),
			Dimensions: []types.Dimension{
				{Name: aws.String("ErrorType"), Value: aws.String(errorType)},
			},
			Value:     aws.Float64(1),
			Unit:      types.StandardUnitCount,
			Timestamp: aws.Time(time.Now()),
		},
	})
}

// put sends metric data, logging and swallowing failures
func (m *Metrics) put(ctx context.Context, data []types.MetricDatum) {
	input := &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(m.namespace),
		MetricData: data,
	}

	if _, err := m.client.PutMetricData(ctx, input); err != nil && m.logger != nil {
		m.logger.Warn("Failed to publish metrics", zap.Error(err))
	}
}
