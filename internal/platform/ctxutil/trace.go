package ctxutil

import "context"

type traceDataKey struct{}

// TraceData identifies the request a generation runs under.
type TraceData struct {
	TraceID   string
	RequestID string
	// EditorID is the caller-supplied requester; loggers hash it.
	EditorID string
}

func WithTraceData(ctx context.Context, td *TraceData) context.Context {
	return context.WithValue(ctx, traceDataKey{}, td)
}

func GetTraceData(ctx context.Context) *TraceData {
	if ctx == nil {
		return nil
	}
	if td, ok := ctx.Value(traceDataKey{}).(*TraceData); ok {
		return td
	}
	return nil
}

// LogFields returns the non-empty trace identifiers as logger key/value pairs.
func LogFields(ctx context.Context) []any {
	td := GetTraceData(ctx)
	if td == nil {
		return nil
	}
	var kv []any
	if td.TraceID != "" {
		kv = append(kv, "trace_id", td.TraceID)
	}
	if td.RequestID != "" {
		kv = append(kv, "request_id", td.RequestID)
	}
	if td.EditorID != "" {
		kv = append(kv, "editor_id", td.EditorID)
	}
	return kv
}
