package monitoring

import (
	"context"

	"cloud.google.com/go/monitoring/apiv3/v2/monitoringpb"
)

type Client interface {
	WriteTimeSeries(ctx context.Context, project string, series []*monitoringpb.TimeSeries) error
}
