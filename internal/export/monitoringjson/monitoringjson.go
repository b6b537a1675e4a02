package monitoringjson

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cloud.google.com/go/monitoring/apiv3/v2/monitoringpb"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"

	"github.com/bayneri/yearcfg/internal/monitoring"
	"github.com/bayneri/yearcfg/internal/yearconf"
)

const outputFile = "monitoring.json"

func Write(project string, report yearconf.LoadReport, labels map[string]string, now time.Time, outDir string) (string, error) {
	if outDir == "" {
		outDir = filepath.Join("out", "monitoring-json")
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", err
	}

	req := &monitoringpb.CreateTimeSeriesRequest{
		Name:       fmt.Sprintf("projects/%s", project),
		TimeSeries: monitoring.BuildTimeSeries(project, report, labels, now),
	}
	payload, err := protoToInterface(req)
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	data = append(data, '\n')
	path := filepath.Join(outDir, outputFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

func protoToInterface(msg proto.Message) (interface{}, error) {
	data, err := protojson.Marshal(msg)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
