package core

import (
	"context"
	"fmt"
	"strings"
)

// metricTagKeys are the operation fields promoted to metric tags. Everything
// else stays on the log line only, keeping tag cardinality bounded.
var metricTagKeys = []string{"service_type", "provider", "profile_id"}

// operationTags builds the tag set shared by an operation's counter and
// histogram: operation and status always, plus whichever bounded fields
// carry a value.
func operationTags(operation, status string, fields map[string]any) map[string]string {
	tags := map[string]string{
		"operation": operation,
		"status":    status,
	}
	for _, key := range metricTagKeys {
		value := strings.TrimSpace(fmt.Sprint(fields[key]))
		if value == "" || value == "<nil>" {
			continue
		}
		tags[key] = value
	}
	return tags
}

// metricName namespaces an operation metric under the catalog prefix,
// e.g. metricName("snapshot_save", "total") -> "catalog.snapshot_save.total".
func metricName(operation, suffix string) string {
	return "catalog." + operation + "." + suffix
}

func cloneTags(tags map[string]string) map[string]string {
	copied := make(map[string]string, len(tags))
	for key, value := range tags {
		copied[key] = value
	}
	return copied
}

// NopMetricsRecorder is the default recorder when no instrumentation is
// wired; operations still log, they just record nothing.
type NopMetricsRecorder struct{}

func (NopMetricsRecorder) IncCounter(context.Context, string, int64, map[string]string) {}

func (NopMetricsRecorder) ObserveHistogram(context.Context, string, float64, map[string]string) {}

var _ MetricsRecorder = NopMetricsRecorder{}
