package metrics

import (
	"context"
	"os"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"futurewire/config"
	"futurewire/logger"
)

type cloudWatchState struct {
	client    *cloudwatch.Client
	namespace string
	region    string
}

var cwState atomic.Pointer[cloudWatchState]

var (
	cloudWatchPublishInterval = time.Minute
	timeNow                   = time.Now
	publishMetricsFunc        = publishMetrics

	metricPublishMu    sync.Mutex
	metricPublishTimes = make(map[string]time.Time)
	pendingCounters    = make(map[string]*pendingCounter)
)

// pendingCounter sums counter values held back by the publish interval.
type pendingCounter struct {
	name string
	dims []cwtypes.Dimension
	unit cwtypes.StandardUnit
	sum  float64
}

func init() {
	cwState.Store(&cloudWatchState{namespace: "Futurewire"})
}

func resetMetricPublishTimes() {
	metricPublishMu.Lock()
	metricPublishTimes = make(map[string]time.Time)
	pendingCounters = make(map[string]*pendingCounter)
	metricPublishMu.Unlock()
}

// InitCloudWatch initialises the CloudWatch client. A disabled config leaves
// publishing off; metrics are still logged and dispatched to handlers.
func InitCloudWatch(ctx context.Context, cfg config.CloudWatchConfig) error {
	if !cfg.Enabled {
		return nil
	}
	log := logger.GetLogger().WithComponent("cloudwatch")

	region := cfg.Region
	if region == "" {
		region = os.Getenv("AWS_REGION")
	}

	opts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		log.WithError(err).Warn("failed to load AWS configuration; CloudWatch metrics disabled")
		return err
	}

	state := cloudWatchState{namespace: "Futurewire"}
	if current := cwState.Load(); current != nil {
		state = *current
	}
	state.client = cloudwatch.NewFromConfig(awsCfg)
	if cfg.Namespace != "" {
		state.namespace = cfg.Namespace
	}
	if awsCfg.Region != "" {
		state.region = awsCfg.Region
	} else {
		state.region = region
	}
	if cfg.PublishInterval > 0 {
		cloudWatchPublishInterval = cfg.PublishInterval
	}

	cwState.Store(&state)

	log.WithFields(logger.Fields{
		"region":    state.region,
		"namespace": state.namespace,
	}).Info("initialized CloudWatch client")
	return nil
}

// EmitMetric logs the metric locally and publishes it to CloudWatch when configured.
func EmitMetric(log *logger.Log, component string, metric string, value interface{}, metricType string, fields logger.Fields) {
	metricEvent, ok := recordMetric(log, component, metric, value, metricType, fields)
	if !ok {
		return
	}

	numericValue, ok := toFloat64(metricEvent.Value)
	if !ok {
		logger.GetLogger().WithComponent("cloudwatch").WithFields(logger.Fields{"metric": metricEvent.Name}).Debug("non-numeric metric value; skipping publish")
		return
	}

	publishMetricDatum(metricEvent, numericValue)
}

func metricKey(metric Metric, dims []cwtypes.Dimension) string {
	parts := make([]string, 0, len(dims)+1)
	parts = append(parts, metric.Name)
	for _, d := range dims {
		parts = append(parts, aws.ToString(d.Name)+"="+aws.ToString(d.Value))
	}
	return strings.Join(parts, "|")
}

// allowPublish reports whether key has not been published within the interval.
func allowPublish(key string, now time.Time) bool {
	metricPublishMu.Lock()
	defer metricPublishMu.Unlock()
	return allowPublishLocked(key, now)
}

func allowPublishLocked(key string, now time.Time) bool {
	if last, ok := metricPublishTimes[key]; ok && now.Sub(last) < cloudWatchPublishInterval {
		return false
	}
	metricPublishTimes[key] = now
	return true
}

// accumulate adds value to the counter for key and, once the interval has
// passed, returns the whole sum and clears it.
func accumulate(key string, metric Metric, dims []cwtypes.Dimension, unit cwtypes.StandardUnit, value float64, now time.Time) (float64, bool) {
	metricPublishMu.Lock()
	defer metricPublishMu.Unlock()

	p, ok := pendingCounters[key]
	if !ok {
		p = &pendingCounter{name: metric.Name, dims: dims, unit: unit}
		pendingCounters[key] = p
	}
	p.sum += value
	if !allowPublishLocked(key, now) {
		return 0, false
	}
	delete(pendingCounters, key)
	return p.sum, true
}

// FlushMetrics publishes every counter sum still held back by the publish
// interval. Call it before exit and periodically from long-running loops.
func FlushMetrics(ctx context.Context) {
	state := cwState.Load()
	if state == nil || state.client == nil {
		return
	}
	now := timeNow()

	metricPublishMu.Lock()
	data := make([]cwtypes.MetricDatum, 0, len(pendingCounters))
	for key, p := range pendingCounters {
		if p.sum != 0 {
			data = append(data, cwtypes.MetricDatum{
				MetricName: aws.String(p.name),
				Dimensions: p.dims,
				Unit:       p.unit,
				Timestamp:  aws.Time(now),
				Value:      aws.Float64(p.sum),
			})
		}
		metricPublishTimes[key] = now
	}
	pendingCounters = make(map[string]*pendingCounter)
	metricPublishMu.Unlock()

	// PutMetricData accepts at most 1000 datums per call.
	for len(data) > 0 {
		n := min(len(data), 1000)
		publishMetricsFunc(ctx, state, data[:n])
		data = data[n:]
	}
}

// StartFlusher calls FlushMetrics every publish interval until ctx is done,
// then once more.
func StartFlusher(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(cloudWatchPublishInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				FlushMetrics(ctx)
			case <-ctx.Done():
				FlushMetrics(context.Background())
				return
			}
		}
	}()
}

func metricDimensions(metric Metric) []cwtypes.Dimension {
	dims := []cwtypes.Dimension{{Name: aws.String("component"), Value: aws.String(metric.Component)}}
	keys := make([]string, 0, len(metric.Fields))
	for k := range metric.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if k == "metric" || k == "metric_type" || k == "value" || k == "unit" {
			continue
		}
		if s, ok := metric.Fields[k].(string); ok && s != "" {
			dims = append(dims, cwtypes.Dimension{Name: aws.String(k), Value: aws.String(s)})
		}
	}
	return dims
}

func publishMetricDatum(metric Metric, value float64) {
	state := cwState.Load()
	if state == nil || state.client == nil {
		return
	}

	unit := cwtypes.StandardUnitCount
	if rawUnit, ok := metric.Fields["unit"]; ok {
		if unitStr, ok := rawUnit.(string); ok {
			if parsedUnit, found := metricUnitFromString(unitStr); found {
				unit = parsedUnit
			} else {
				logger.GetLogger().WithComponent("cloudwatch").WithFields(logger.Fields{"metric": metric.Name, "unit": unitStr}).Debug("unsupported metric unit; defaulting to Count")
			}
		}
	}

	dims := metricDimensions(metric)
	key := metricKey(metric, dims)
	if metric.Type == "counter" {
		sum, ok := accumulate(key, metric, dims, unit, value, timeNow())
		if !ok {
			return
		}
		value = sum
	} else if !allowPublish(key, timeNow()) {
		return
	}

	ts := metric.Timestamp
	if ts.IsZero() {
		ts = timeNow()
	}
	data := []cwtypes.MetricDatum{{
		MetricName: aws.String(metric.Name),
		Dimensions: dims,
		Unit:       unit,
		Timestamp:  aws.Time(ts),
		Value:      aws.Float64(value),
	}}
	publishMetricsFunc(context.Background(), state, data)
}

func publishMetrics(ctx context.Context, state *cloudWatchState, data []cwtypes.MetricDatum) {
	if state == nil || state.client == nil {
		return
	}
	if len(data) == 0 {
		logger.GetLogger().WithComponent("cloudwatch").Debug("no metric data to publish")
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if _, err := state.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(state.namespace),
		MetricData: data,
	}); err != nil {
		logger.GetLogger().WithComponent("cloudwatch").WithError(err).Warn("failed to publish CloudWatch metrics")
		return
	}

	names := make([]string, 0, len(data))
	for _, datum := range data {
		if datum.MetricName != nil {
			names = append(names, *datum.MetricName)
		}
	}

	logger.GetLogger().WithComponent("cloudwatch").WithField("metrics", strings.Join(names, ",")).Debug("published metrics to CloudWatch")
}

func toFloat64(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}

func metricUnitFromString(unit string) (cwtypes.StandardUnit, bool) {
	switch strings.ToLower(unit) {
	case "count":
		return cwtypes.StandardUnitCount, true
	case "percent":
		return cwtypes.StandardUnitPercent, true
	case "bytes":
		return cwtypes.StandardUnitBytes, true
	case "milliseconds", "ms":
		return cwtypes.StandardUnitMilliseconds, true
	default:
		return cwtypes.StandardUnitCount, false
	}
}
