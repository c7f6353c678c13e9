package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields contains structured fields automatically added to all logs
// within a context. Business context (plan ID, document name, the issue
// currently being created) flows through context enrichment so individual
// log statements never repeat it.
type LogFields struct {
	PlanID     *int64  // Plan run ID
	Document   *string // Design document name or path
	IssueTitle *string // Issue currently being pushed to the tracker
	Component  string  // Component name, e.g. "gameplan.service.push"
}

// WithLogFields enriches context with structured log fields.
// Multiple calls merge fields, with newer non-nil/non-empty values taking
// precedence. Context timeouts and cancellation are preserved.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	existing := GetLogFields(ctx)
	merged := mergeFields(existing, fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context.
// Returns empty LogFields if none are set.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, new LogFields) LogFields {
	result := existing

	if new.PlanID != nil {
		result.PlanID = new.PlanID
	}
	if new.Document != nil {
		result.Document = new.Document
	}
	if new.IssueTitle != nil {
		result.IssueTitle = new.IssueTitle
	}
	if new.Component != "" {
		result.Component = new.Component
	}

	return result
}

// Ptr is a helper to create a pointer from a value.
// Useful for setting LogFields inline.
func Ptr[T any](v T) *T {
	return &v
}
