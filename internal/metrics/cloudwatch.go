package metrics

import (
	"context"
	"log"
	"sync"
	"time"

	appconfig "github.com/Conceptual-Machines/soul-vamp/internal/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

const (
	namespace                = "SoulVamp/Composer"
	cloudwatchTimeoutSeconds = 5
)

// putMetricDataAPI is the slice of the CloudWatch client the recorder uses
type putMetricDataAPI interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// Client wraps CloudWatch client for custom metrics
type Client struct {
	client      putMetricDataAPI
	enabled     bool
	environment string
	pending     sync.WaitGroup
}

// NewClient creates a new CloudWatch metrics client
func NewClient(ctx context.Context, appCfg *appconfig.Config) (*Client, error) {
	environment := appCfg.Environment
	// Only enable in production
	if !appCfg.IsProduction() {
		log.Printf("📊 CloudWatch Metrics: DISABLED (environment: %s)", environment)
		return &Client{
			enabled:     false,
			environment: environment,
		}, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		log.Printf("⚠️  Failed to load AWS config for CloudWatch: %v", err)
		return &Client{enabled: false, environment: environment}, nil
	}

	log.Printf("📊 CloudWatch Metrics: ✅ ENABLED (namespace: %s)", namespace)
	return &Client{
		client:      cloudwatch.NewFromConfig(cfg),
		enabled:     true,
		environment: environment,
	}, nil
}

// RecordParamsFetch records one session parameter request
func (m *Client) RecordParamsFetch(provider, model string, duration time.Duration, success bool) {
	m.publish(func(ctx context.Context) {
		dimensions := []types.Dimension{
			{Name: aws.String("Provider"), Value: aws.String(provider)},
			{Name: aws.String("Model"), Value: aws.String(model)},
			{Name: aws.String("Success"), Value: aws.String(boolToString(success))},
			{Name: aws.String("Environment"), Value: aws.String(m.environment)},
		}

		metricName := "ParamsRequests"
		if !success {
			metricName = "ParamsErrors"
		}
		if err := m.putMetric(ctx, metricName, 1, types.StandardUnitCount, dimensions); err != nil {
			log.Printf("Failed to record %s metric: %v", metricName, err)
		}

		latencyMs := float64(duration.Milliseconds())
		if err := m.putMetric(ctx, "ParamsLatency", latencyMs, types.StandardUnitMilliseconds, dimensions); err != nil {
			log.Printf("Failed to record ParamsLatency metric: %v", err)
		}
	})
}

// RecordTokenUsage records session leader token usage
func (m *Client) RecordTokenUsage(model string, totalTokens, inputTokens, outputTokens int) {
	m.publish(func(ctx context.Context) {
		dimensions := []types.Dimension{
			{Name: aws.String("Model"), Value: aws.String(model)},
			{Name: aws.String("Environment"), Value: aws.String(m.environment)},
		}

		for name, value := range map[string]int{
			"Tokens/Total":  totalTokens,
			"Tokens/Input":  inputTokens,
			"Tokens/Output": outputTokens,
		} {
			if err := m.putMetric(ctx, name, float64(value), types.StandardUnitCount, dimensions); err != nil {
				log.Printf("Failed to record %s metric: %v", name, err)
			}
		}
	})
}

// RecordRender records the duration and size of one rendered piece
func (m *Client) RecordRender(duration time.Duration, bars int, success bool) {
	m.publish(func(ctx context.Context) {
		dimensions := []types.Dimension{
			{Name: aws.String("Success"), Value: aws.String(boolToString(success))},
			{Name: aws.String("Environment"), Value: aws.String(m.environment)},
		}

		durationMs := float64(duration.Milliseconds())
		if err := m.putMetric(ctx, "RenderDuration", durationMs, types.StandardUnitMilliseconds, dimensions); err != nil {
			log.Printf("Failed to record RenderDuration metric: %v", err)
		}
		if err := m.putMetric(ctx, "RenderBars", float64(bars), types.StandardUnitCount, dimensions); err != nil {
			log.Printf("Failed to record RenderBars metric: %v", err)
		}
	})
}

// Wait blocks until every queued metric has been sent or has failed
func (m *Client) Wait() {
	m.pending.Wait()
}

// publish runs send in the background when metrics are enabled
func (m *Client) publish(send func(ctx context.Context)) {
	if m == nil || !m.enabled {
		return
	}

	m.pending.Add(1)
	go func() {
		defer m.pending.Done()
		send(context.Background())
	}()
}

// putMetric sends a metric to CloudWatch
func (m *Client) putMetric(
	ctx context.Context,
	metricName string,
	value float64,
	unit types.StandardUnit,
	dimensions []types.Dimension,
) error {
	if !m.enabled || m.client == nil {
		return nil
	}

	// Create context with timeout for CloudWatch call
	timeout := time.Duration(cloudwatchTimeoutSeconds) * time.Second
	cwCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_, err := m.client.PutMetricData(cwCtx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(namespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: aws.String(metricName),
				Value:      aws.Float64(value),
				Unit:       unit,
				Timestamp:  aws.Time(time.Now()),
				Dimensions: dimensions,
			},
		},
	})

	return err
}

func boolToString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
