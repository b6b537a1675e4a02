package monitoring

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/monitoring/apiv3/v2/monitoringpb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bayneri/yearcfg/internal/yearconf"
)

func sampleReport() yearconf.LoadReport {
	return yearconf.LoadReport{
		Status: yearconf.StatusPartial,
		Years: []yearconf.YearResult{
			{
				Year:   "2024",
				Status: yearconf.StatusError,
				Documents: []yearconf.DocumentResult{
					{Name: "robot", Status: yearconf.StatusError},
					{Name: "course", Status: yearconf.StatusError},
				},
			},
			{
				Year:   "2023",
				Status: yearconf.StatusPartial,
				Documents: []yearconf.DocumentResult{
					{Name: "robot", Status: yearconf.StatusError},
					{Name: "course", Status: yearconf.StatusOK},
					{Name: "sensors", Status: yearconf.StatusSkipped},
				},
			},
		},
	}
}

func TestBuildTimeSeries(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	series := BuildTimeSeries("demo", sampleReport(), map[string]string{"Team-Name": "blue"}, now)
	if len(series) != 5 {
		t.Fatalf("expected 5 series, got %d", len(series))
	}

	first := series[0]
	if first.GetMetric().GetType() != MetricDocsLoaded {
		t.Fatalf("expected years sorted with loaded first, got %s", first.GetMetric().GetType())
	}
	labels := first.GetMetric().GetLabels()
	if labels["year"] != "2023" || labels["team_name"] != "blue" || labels[ManagedByLabel] != ManagedByValue {
		t.Fatalf("unexpected labels %v", labels)
	}
	if got := first.GetPoints()[0].GetValue().GetInt64Value(); got != 1 {
		t.Fatalf("expected 1 loaded document for 2023, got %d", got)
	}
	if got := series[1].GetPoints()[0].GetValue().GetInt64Value(); got != 1 {
		t.Fatalf("expected 1 failed document for 2023, got %d", got)
	}
	if got := series[3].GetPoints()[0].GetValue().GetInt64Value(); got != 2 {
		t.Fatalf("expected 2 failed documents for 2024, got %d", got)
	}

	last := series[4]
	if last.GetMetric().GetType() != MetricYearsAvailable {
		t.Fatalf("expected years_available last, got %s", last.GetMetric().GetType())
	}
	if _, ok := last.GetMetric().GetLabels()["year"]; ok {
		t.Fatalf("years_available must not carry a year label")
	}
	if got := last.GetPoints()[0].GetValue().GetInt64Value(); got != 1 {
		t.Fatalf("expected 1 available year, got %d", got)
	}
	if last.GetResource().GetLabels()["project_id"] != "demo" {
		t.Fatalf("unexpected resource %v", last.GetResource())
	}
	if !last.GetPoints()[0].GetInterval().GetEndTime().AsTime().Equal(now) {
		t.Fatalf("unexpected point time")
	}
}

type fakeClient struct {
	project string
	series  []*monitoringpb.TimeSeries
	err     error
}

func (f *fakeClient) WriteTimeSeries(ctx context.Context, project string, series []*monitoringpb.TimeSeries) error {
	f.project = project
	f.series = series
	return f.err
}

func TestPublish(t *testing.T) {
	client := &fakeClient{}
	n, err := Publish(context.Background(), client, "demo", sampleReport(), nil, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 5 || len(client.series) != 5 || client.project != "demo" {
		t.Fatalf("unexpected publish: n=%d project=%q", n, client.project)
	}

	if _, err := Publish(context.Background(), client, " ", sampleReport(), nil, time.Now()); err == nil {
		t.Fatalf("expected error for missing project")
	}

	cause := errors.New("boom")
	client.err = cause
	if _, err := Publish(context.Background(), client, "demo", sampleReport(), nil, time.Now()); !errors.Is(err, cause) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestDescribeWriteError(t *testing.T) {
	err := describeWriteError("demo", status.Error(codes.PermissionDenied, "denied"))
	if !strings.Contains(err.Error(), "monitoring.metricWriter") {
		t.Fatalf("expected role hint, got %q", err)
	}
	if status.Code(errors.Unwrap(err)) != codes.PermissionDenied {
		t.Fatalf("expected grpc status to be preserved")
	}
}

func TestSanitizeKey(t *testing.T) {
	cases := map[string]string{
		"team":      "team",
		"Team-Name": "team_name",
		"9lives":    "l_9lives",
		"--":        "",
	}
	for input, want := range cases {
		if got := sanitizeKey(input); got != want {
			t.Fatalf("sanitizeKey(%q)=%q, want %q", input, got, want)
		}
	}
}
