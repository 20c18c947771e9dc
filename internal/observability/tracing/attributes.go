package tracing

import (
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
)

// Key segments that identify personal or secret data. Customer names and
// emails are searchable, so raw search text is treated the same way.
var sensitiveSegments = map[string]struct{}{
	"password":      {},
	"secret":        {},
	"token":         {},
	"email":         {},
	"name":          {},
	"query":         {},
	"authorization": {},
	"cookie":        {},
}

// InvoiceID tags a span with the invoice it touches.
func InvoiceID(id string) attribute.KeyValue {
	return attribute.String("invoice.id", strings.TrimSpace(id))
}

// Search describes a table search without recording what was searched for.
func Search(query string, page int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Bool("search.filtered", strings.TrimSpace(query) != ""),
		attribute.Int("search.input_length", len(strings.TrimSpace(query))),
		attribute.Int("search.page", page),
	}
}

// SafeAttributes drops attributes whose key has a sensitive segment.
func SafeAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if isSensitiveKey(string(attr.Key)) {
			continue
		}
		filtered = append(filtered, attr)
	}
	return filtered
}

// SafeError replaces an error with its type so messages never reach the exporter.
func SafeError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%T", err)
}

func isSensitiveKey(key string) bool {
	segments := strings.FieldsFunc(strings.ToLower(key), func(r rune) bool {
		return r == '.' || r == '_' || r == '-'
	})
	for _, segment := range segments {
		if _, ok := sensitiveSegments[segment]; ok {
			return true
		}
	}
	return false
}
