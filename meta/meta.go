// Package meta carries request metadata through context.Context so that logs,
// traces and error responses of one request can be correlated.
package meta

import (
	"context"
	"fmt"
)

// ContextKey is a type for keys used in context values for metadata.
type ContextKey string

const (
	// TraceID identifies a request across logs and spans.
	TraceID ContextKey = "trace_id"

	// IPAddress contains the client's IP address.
	IPAddress ContextKey = "ip_address"

	// UserAgent contains the user agent string from the request.
	UserAgent ContextKey = "user_agent"

	// RemoteAddr contains the network address that sent the request.
	RemoteAddr ContextKey = "remote_addr"

	// ServiceName identifies the name of current running service.
	ServiceName ContextKey = "service_name"

	// ServiceVersion indicates the version of the service.
	ServiceVersion ContextKey = "service_version"

	// Operation names the command or query being executed.
	Operation ContextKey = "operation"

	// EventID is the calendar event a command is acting on.
	EventID ContextKey = "event_id"
)

//nolint:gochecknoglobals // fixed lookup order for extraction
var allKeys = []ContextKey{
	TraceID,
	IPAddress,
	UserAgent,
	RemoteAddr,
	ServiceName,
	ServiceVersion,
	Operation,
	EventID,
}

// InjectMetaToContext adds metadata from the provided map to the context.
// Empty values are skipped.
func InjectMetaToContext(ctx context.Context, data map[ContextKey]string) context.Context {
	for k, v := range data {
		if v != "" {
			ctx = context.WithValue(ctx, k, v) //nolint:fatcontext // allow due to finite number of keys
		}
	}
	return ctx
}

// ExtractMetaFromContext returns every known, non-empty metadata value stored in ctx.
func ExtractMetaFromContext(ctx context.Context) map[ContextKey]string {
	data := make(map[ContextKey]string)
	for _, k := range allKeys {
		if v, ok := ctx.Value(k).(string); ok && v != "" {
			data[k] = v
		}
	}
	return data
}

// Find returns the metadata value for key or an empty string.
func Find(ctx context.Context, key ContextKey) string {
	v, _ := ctx.Value(key).(string)
	return v
}

// ShouldGetMeta returns the metadata value for key, failing when the key is
// missing or holds a non-string value.
func ShouldGetMeta(ctx context.Context, key ContextKey) (string, error) {
	raw := ctx.Value(key)
	if raw == nil {
		return "", fmt.Errorf("meta: key not found: %s", key)
	}
	v, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("meta: type mismatch for key %s: %T", key, raw)
	}
	return v, nil
}
