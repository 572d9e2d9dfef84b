package logger

import (
	"context"

	"go.uber.org/zap"
)

type operationKey struct{}

// Operation describes the engine call a log line belongs to
type Operation struct {
	Name      string
	ProjectID string
	UserID    string
	SubjectID string
}

// Fields returns the non-empty operation attributes as zap fields
func (o Operation) Fields() []zap.Field {
	fields := []zap.Field{zap.String("operation", o.Name)}
	if o.ProjectID != "" {
		fields = append(fields, zap.String("project_id", o.ProjectID))
	}
	if o.UserID != "" {
		fields = append(fields, zap.String("user_id", o.UserID))
	}
	if o.SubjectID != "" {
		fields = append(fields, zap.String("subject_id", o.SubjectID))
	}
	return fields
}

// WithOperation stores op in ctx so every *Ctx log call made with it carries the operation fields
func WithOperation(ctx context.Context, op Operation) context.Context {
	return context.WithValue(ctx, operationKey{}, op)
}

// OperationFrom returns the operation stored in ctx
func OperationFrom(ctx context.Context) (Operation, bool) {
	op, ok := ctx.Value(operationKey{}).(Operation)
	return op, ok
}
