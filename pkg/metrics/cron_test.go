package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestCronJobMetricsExportFamilies(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewCronJobMetrics(reg)

	metrics.ObserveDuration("intake-retention", 250*time.Millisecond)
	metrics.IncSuccess("intake-retention")
	metrics.IncFailure("intake-retention")
	metrics.IncSuccess("intake-retention")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	if got := counterValue(t, mfs, "aje_cron_job_success_total", "intake-retention"); got != 2 {
		t.Fatalf("expected success=2, got %f", got)
	}
	if got := counterValue(t, mfs, "aje_cron_job_failure_total", "intake-retention"); got != 1 {
		t.Fatalf("expected failure=1, got %f", got)
	}
	if got := histogramSum(t, mfs, "aje_cron_job_duration_seconds", "intake-retention"); got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
}

func TestCronJobMetricsNilSafe(t *testing.T) {
	var metrics *CronJobMetrics
	metrics.ObserveDuration("x", time.Second)
	metrics.IncSuccess("x")
	metrics.IncFailure("x")

	unregistered := NewCronJobMetrics(nil)
	unregistered.IncSuccess("x")
}

// labeledMetric finds the sample in the named family carrying the
// label pair, failing the test when absent.
func labeledMetric(t *testing.T, mfs []*dto.MetricFamily, family, label, value string) *dto.Metric {
	t.Helper()
	for _, mf := range mfs {
		if mf.GetName() != family {
			continue
		}
		for _, metric := range mf.GetMetric() {
			for _, pair := range metric.GetLabel() {
				if pair.GetName() == label && pair.GetValue() == value {
					return metric
				}
			}
		}
	}
	t.Fatalf("family %q has no sample with %s=%s", family, label, value)
	return nil
}

func counterValue(t *testing.T, mfs []*dto.MetricFamily, family, job string) float64 {
	t.Helper()
	return labeledMetric(t, mfs, family, "job", job).GetCounter().GetValue()
}

func histogramSum(t *testing.T, mfs []*dto.MetricFamily, family, job string) float64 {
	t.Helper()
	return labeledMetric(t, mfs, family, "job", job).GetHistogram().GetSampleSum()
}
