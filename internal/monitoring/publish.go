package monitoring

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/monitoring/apiv3/v2/monitoringpb"
	metricpb "google.golang.org/genproto/googleapis/api/metric"
	"google.golang.org/genproto/googleapis/api/monitoredres"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/bayneri/yearcfg/internal/yearconf"
)

const (
	MetricPrefix         = "custom.googleapis.com/yearcfg/"
	MetricDocsLoaded     = MetricPrefix + "documents_loaded"
	MetricDocsFailed     = MetricPrefix + "documents_failed"
	MetricYearsAvailable = MetricPrefix + "years_available"

	ManagedByLabel = "managed_by"
	ManagedByValue = "yearcfg"
)

func BuildTimeSeries(project string, report yearconf.LoadReport, labels map[string]string, now time.Time) []*monitoringpb.TimeSeries {
	base := sanitizeLabels(labels)
	base[ManagedByLabel] = ManagedByValue

	resource := &monitoredres.MonitoredResource{
		Type:   "global",
		Labels: map[string]string{"project_id": project},
	}

	years := append([]yearconf.YearResult(nil), report.Years...)
	sort.Slice(years, func(i, j int) bool {
		return years[i].Year < years[j].Year
	})

	var series []*monitoringpb.TimeSeries
	available := 0
	for _, year := range years {
		if year.Status != yearconf.StatusError {
			available++
		}
		yearLabels := copyLabels(base)
		yearLabels["year"] = year.Year
		series = append(series,
			gauge(MetricDocsLoaded, yearLabels, resource, int64(year.Loaded()), now),
			gauge(MetricDocsFailed, copyLabels(yearLabels), resource, int64(year.Failed()), now),
		)
	}
	series = append(series, gauge(MetricYearsAvailable, copyLabels(base), resource, int64(available), now))
	return series
}

func Publish(ctx context.Context, client Client, project string, report yearconf.LoadReport, labels map[string]string, now time.Time) (int, error) {
	if strings.TrimSpace(project) == "" {
		return 0, errors.New("metrics project is required")
	}
	series := BuildTimeSeries(project, report, labels, now)
	if err := client.WriteTimeSeries(ctx, project, series); err != nil {
		return 0, fmt.Errorf("publish load metrics: %w", err)
	}
	return len(series), nil
}

func gauge(metricType string, labels map[string]string, resource *monitoredres.MonitoredResource, value int64, now time.Time) *monitoringpb.TimeSeries {
	return &monitoringpb.TimeSeries{
		Metric: &metricpb.Metric{
			Type:   metricType,
			Labels: labels,
		},
		Resource:   resource,
		MetricKind: metricpb.MetricDescriptor_GAUGE,
		ValueType:  metricpb.MetricDescriptor_INT64,
		Points: []*monitoringpb.Point{{
			Interval: &monitoringpb.TimeInterval{
				EndTime: timestamppb.New(now),
			},
			Value: &monitoringpb.TypedValue{
				Value: &monitoringpb.TypedValue_Int64Value{Int64Value: value},
			},
		}},
	}
}

func sanitizeLabels(labels map[string]string) map[string]string {
	out := map[string]string{}
	for k, v := range labels {
		key := sanitizeKey(k)
		if key == "" {
			continue
		}
		out[key] = v
	}
	return out
}

func sanitizeKey(key string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(key) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := strings.Trim(b.String(), "_")
	if out == "" {
		return ""
	}
	if out[0] >= '0' && out[0] <= '9' {
		out = "l_" + out
	}
	return out
}

func copyLabels(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
