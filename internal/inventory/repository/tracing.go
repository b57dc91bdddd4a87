package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tair/warehouse-ledger/internal/inventory/domain"
)

var tracer = otel.Tracer("inventory-repository")

// AllocationRepositoryWithTracing wraps GormAllocationRepository with tracing
type AllocationRepositoryWithTracing struct {
	*GormAllocationRepository
}

// NewAllocationRepositoryWithTracing creates a new repository with tracing
func NewAllocationRepositoryWithTracing(db *gorm.DB) *AllocationRepositoryWithTracing {
	return &AllocationRepositoryWithTracing{
		GormAllocationRepository: NewGormAllocationRepository(db),
	}
}

// Create with tracing
func (r *AllocationRepositoryWithTracing) Create(ctx context.Context, allocation *domain.Allocation) error {
	ctx, span := tracer.Start(ctx, "repository.Allocation.Create",
		trace.WithAttributes(
			attribute.Int("allocation.batch_id", int(allocation.BatchID)),
			attribute.Int("allocation.type_id", int(allocation.AllocationTypeID)),
			attribute.Int("allocation.allocated_quantity", allocation.AllocatedQuantity),
			attribute.String("allocation.status", string(allocation.Status)),
		),
	)
	defer span.End()

	err := r.GormAllocationRepository.Create(ctx, allocation)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(attribute.Int("allocation.id", int(allocation.ID)))
	return nil
}

// FindByID with tracing
func (r *AllocationRepositoryWithTracing) FindByID(ctx context.Context, id uint) (*domain.Allocation, error) {
	ctx, span := tracer.Start(ctx, "repository.Allocation.FindByID",
		trace.WithAttributes(
			attribute.Int("allocation.id", int(id)),
		),
	)
	defer span.End()

	allocation, err := r.GormAllocationRepository.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("allocation.allocated_quantity", allocation.AllocatedQuantity),
		attribute.Int("allocation.available_quantity", allocation.AvailableQuantity()),
		attribute.String("allocation.status", string(allocation.Status)),
	)
	return allocation, nil
}

// FindByIDForUpdate with tracing
func (r *AllocationRepositoryWithTracing) FindByIDForUpdate(ctx context.Context, id uint) (*domain.Allocation, error) {
	ctx, span := tracer.Start(ctx, "repository.Allocation.FindByIDForUpdate",
		trace.WithAttributes(
			attribute.Int("allocation.id", int(id)),
			attribute.Bool("db.row_locked", true),
		),
	)
	defer span.End()

	allocation, err := r.GormAllocationRepository.FindByIDForUpdate(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return allocation, nil
}

// Update with tracing
func (r *AllocationRepositoryWithTracing) Update(ctx context.Context, allocation *domain.Allocation) error {
	ctx, span := tracer.Start(ctx, "repository.Allocation.Update",
		trace.WithAttributes(
			attribute.Int("allocation.id", int(allocation.ID)),
			attribute.Int("allocation.allocated_quantity", allocation.AllocatedQuantity),
			attribute.String("allocation.status", string(allocation.Status)),
		),
	)
	defer span.End()

	err := r.GormAllocationRepository.Update(ctx, allocation)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}
