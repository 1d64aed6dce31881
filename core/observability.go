package core

import (
	"context"
	"sort"
	"strings"
	"time"
)

const (
	operationInjectParameters = "inject_parameters"
	operationConsentURL       = "oauth_consent_url"
	operationCompleteOAuth    = "oauth_complete"
)

// Only these fields become metric tags; workspace ids would explode
// cardinality.
var metricTagFields = []string{"connector_kind", "definition_id", "mode"}

type logLevel int

const (
	levelInfo logLevel = iota
	levelWarn
	levelError
)

// operation accumulates the log fields of one service call and reports it
// exactly once through finish. Fields hold identifiers and key names only.
type operation struct {
	service   *Service
	ctx       context.Context
	name      string
	startedAt time.Time
	fields    map[string]any
}

func (s *Service) startOperation(
	ctx context.Context,
	name string,
	kind ConnectorKind,
	definitionID string,
	workspaceID string,
) *operation {
	return &operation{
		service:   s,
		ctx:       ctx,
		name:      name,
		startedAt: time.Now().UTC(),
		fields: map[string]any{
			"connector_kind": string(kind),
			"definition_id":  strings.TrimSpace(definitionID),
			"workspace_id":   strings.TrimSpace(workspaceID),
		},
	}
}

func (o *operation) set(key string, value any) {
	o.fields[key] = value
}

func (o *operation) finish(err error) {
	if o == nil || o.service == nil {
		return
	}
	elapsed := time.Since(o.startedAt)
	status := "success"
	if err != nil {
		status = "failure"
	}

	fields := cloneFields(o.fields)
	fields["event_type"] = o.name
	fields["status"] = status
	fields["duration_ms"] = elapsed.Milliseconds()
	if err != nil {
		fields["error"] = err.Error()
	}

	tags := map[string]string{
		"operation": o.name,
		"status":    status,
	}
	for _, key := range metricTagFields {
		if value, ok := o.fields[key].(string); ok && value != "" {
			tags[key] = value
		}
	}
	o.service.recordOperationMetrics(o.ctx, o.name, elapsed, tags)

	if err != nil {
		o.service.log(o.ctx, levelError, o.name+" failed", fields)
		return
	}
	o.service.log(o.ctx, levelInfo, o.name+" succeeded", fields)
}

func (s *Service) logWarn(ctx context.Context, message string, fields map[string]any) {
	s.log(ctx, levelWarn, message, fields)
}

func (s *Service) log(ctx context.Context, level logLevel, message string, fields map[string]any) {
	if s == nil || s.logger == nil {
		return
	}
	logger := s.logger
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	if fieldsLogger, ok := logger.(FieldsLogger); ok {
		logger = fieldsLogger.WithFields(cloneFields(fields))
	}
	args := sortedFieldArgs(fields)
	switch level {
	case levelError:
		logger.Error(message, args...)
	case levelWarn:
		logger.Warn(message, args...)
	default:
		logger.Info(message, args...)
	}
}

// recordOperationMetrics emits connectors.<operation>.total and
// connectors.<operation>.duration_ms.
func (s *Service) recordOperationMetrics(ctx context.Context, name string, elapsed time.Duration, tags map[string]string) {
	if s == nil || s.metricsRecorder == nil {
		return
	}
	prefix := "connectors." + name
	s.metricsRecorder.IncCounter(ctx, prefix+".total", 1, cloneTags(tags))
	s.metricsRecorder.ObserveHistogram(ctx, prefix+".duration_ms", float64(elapsed.Milliseconds()), cloneTags(tags))
}

func cloneFields(fields map[string]any) map[string]any {
	copied := make(map[string]any, len(fields))
	for key, value := range fields {
		copied[key] = value
	}
	return copied
}

func sortedFieldArgs(fields map[string]any) []any {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	args := make([]any, 0, len(keys)*2)
	for _, key := range keys {
		args = append(args, key, fields[key])
	}
	return args
}
