package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/smart-inventory/internal/catalog/domain"
)

var tracer = otel.Tracer("catalog-repository")

// SnapshotRepositoryWithTracing wraps SnapshotRepository with tracing
type SnapshotRepositoryWithTracing struct {
	inner *SnapshotRepository
}

// NewSnapshotRepositoryWithTracing creates a new repository with tracing
func NewSnapshotRepositoryWithTracing(inner *SnapshotRepository) *SnapshotRepositoryWithTracing {
	return &SnapshotRepositoryWithTracing{inner: inner}
}

// Snapshot with tracing
func (r *SnapshotRepositoryWithTracing) Snapshot(ctx context.Context) (domain.Aggregate, error) {
	ctx, span := tracer.Start(ctx, "repository.Snapshot")
	defer span.End()

	state, err := r.inner.Snapshot(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return domain.Aggregate{}, err
	}

	span.SetAttributes(
		attribute.Int("catalog.products", len(state.Products)),
		attribute.Int("catalog.bills", len(state.Bills)),
	)
	return state, nil
}

// Apply with tracing
func (r *SnapshotRepositoryWithTracing) Apply(ctx context.Context, reduce domain.Reducer) (domain.Aggregate, error) {
	ctx, span := tracer.Start(ctx, "repository.Apply",
		trace.WithAttributes(attribute.String("catalog.blob_key", BlobKey)),
	)
	defer span.End()

	state, err := r.inner.Apply(ctx, reduce)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return domain.Aggregate{}, err
	}

	span.SetAttributes(
		attribute.Int("catalog.products", len(state.Products)),
		attribute.Int("catalog.bills", len(state.Bills)),
	)
	return state, nil
}
