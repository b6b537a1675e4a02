package monitoring

import (
	"context"
	"fmt"

	monitoring "cloud.google.com/go/monitoring/apiv3/v2"
	"cloud.google.com/go/monitoring/apiv3/v2/monitoringpb"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// maxSeriesPerRequest is the CreateTimeSeries limit.
const maxSeriesPerRequest = 200

type GCPClient struct {
	metricClient *monitoring.MetricClient
}

func NewGCPClient(ctx context.Context, opts ...option.ClientOption) (*GCPClient, error) {
	metricClient, err := monitoring.NewMetricClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create metric client: %w", err)
	}
	return &GCPClient{metricClient: metricClient}, nil
}

func (c *GCPClient) Close() error {
	if err := c.metricClient.Close(); err != nil {
		return fmt.Errorf("close metric client: %w", err)
	}
	return nil
}

func (c *GCPClient) WriteTimeSeries(ctx context.Context, project string, series []*monitoringpb.TimeSeries) error {
	for start := 0; start < len(series); start += maxSeriesPerRequest {
		end := start + maxSeriesPerRequest
		if end > len(series) {
			end = len(series)
		}
		err := c.metricClient.CreateTimeSeries(ctx, &monitoringpb.CreateTimeSeriesRequest{
			Name:       fmt.Sprintf("projects/%s", project),
			TimeSeries: series[start:end],
		})
		if err != nil {
			return describeWriteError(project, err)
		}
	}
	return nil
}

func describeWriteError(project string, err error) error {
	switch status.Code(err) {
	case codes.PermissionDenied:
		return fmt.Errorf("write time series to project %s: permission denied, the caller needs roles/monitoring.metricWriter: %w", project, err)
	case codes.NotFound:
		return fmt.Errorf("write time series: project %s not found: %w", project, err)
	case codes.InvalidArgument:
		return fmt.Errorf("write time series to project %s: rejected (points written too often or invalid labels): %w", project, err)
	default:
		return fmt.Errorf("write time series to project %s: %w", project, err)
	}
}
